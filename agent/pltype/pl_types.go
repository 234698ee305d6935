package pltype

// Namespace constants. Both of them are accepted in inbound messages but only
// DIDOrgAries is used for outbound messages.
const (
	Aries       = "did:sov:BzCbsNYhMrjHiqZDTUASHg;spec" // legacy prefix of Aries protocols
	DIDOrgAries = "https://didcomm.org"
)

// Coordinate Mediation protocol constants, RFC 0211.
const (
	ProtocolCoordinateMediation = "coordinate-mediation"

	HandlerMediateRequest        = "mediate-request"
	HandlerMediateGrant          = "mediate-grant"
	HandlerMediateDeny           = "mediate-deny"
	HandlerKeylistUpdate         = "keylist-update"
	HandlerKeylistUpdateResponse = "keylist-update-response"
	HandlerKeylistQuery          = "keylist-query"
	HandlerKeylist               = "keylist"

	CoordinateMediation               = DIDOrgAries + "/" + ProtocolCoordinateMediation
	CoordinateMediationRequest        = CoordinateMediation + "/1.0/" + HandlerMediateRequest
	CoordinateMediationGrant          = CoordinateMediation + "/1.0/" + HandlerMediateGrant
	CoordinateMediationDeny           = CoordinateMediation + "/1.0/" + HandlerMediateDeny
	CoordinateMediationKeylistUpdate  = CoordinateMediation + "/1.0/" + HandlerKeylistUpdate
	CoordinateMediationKeylistUpdResp = CoordinateMediation + "/1.0/" + HandlerKeylistUpdateResponse
	CoordinateMediationKeylistQuery   = CoordinateMediation + "/1.0/" + HandlerKeylistQuery
	CoordinateMediationKeylist        = CoordinateMediation + "/1.0/" + HandlerKeylist
)

// Push Notifications FCM protocol constants, RFC 0734.
const (
	ProtocolPushNotificationsFCM = "push-notifications-fcm"

	HandlerDeviceInfo    = "device-info"
	HandlerSetDeviceInfo = "set-device-info"
	HandlerGetDeviceInfo = "get-device-info"
	HandlerReportProblem = "report-problem"

	PushNotificationsFCM              = DIDOrgAries + "/" + ProtocolPushNotificationsFCM
	PushNotificationsFCMDeviceInfo    = PushNotificationsFCM + "/1.0/" + HandlerDeviceInfo
	PushNotificationsFCMSetDeviceInfo = PushNotificationsFCM + "/1.0/" + HandlerSetDeviceInfo
	PushNotificationsFCMGetDeviceInfo = PushNotificationsFCM + "/1.0/" + HandlerGetDeviceInfo
	PushNotificationsFCMReportProblem = PushNotificationsFCM + "/1.0/" + HandlerReportProblem
)

// Device platforms accepted by the push notification protocol.
const (
	PlatformAndroid = "android"
	PlatformIOS     = "ios"
)
