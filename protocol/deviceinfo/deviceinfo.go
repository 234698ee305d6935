// Package deviceinfo implements the mediator side of the push notification
// device registration. Every inbound message gets exactly one answer: a
// DeviceInfo or a ProblemReport.
package deviceinfo

import (
	"context"

	"github.com/findy-network/findy-mediator/agent/pltype"
	"github.com/findy-network/findy-mediator/agent/storage/api"
	"github.com/findy-network/findy-mediator/std/decorator"
	pn "github.com/findy-network/findy-mediator/std/pushnotification"
	"github.com/golang/glog"
)

const (
	ExplainDeviceInfoRequest = "DeviceInfo message should not be handled here."
	ExplainNotFound          = "Device info not found."
	ExplainPairing           = "Both device token and platform must be provided or omitted together."
	ExplainPlatform          = "Device platform must be one of: android, ios."
	ExplainSetFailed         = "Failed to set device info."
	ExplainNotSupported      = "This operation is not supported in the current context."
)

// Handle processes the push notification message of the caller.
func Handle(ctx context.Context, storage api.Mediator, im pn.Message, authKey string) pn.Message {
	thread := decorator.ReplyTo(im.ID())

	switch m := im.(type) {
	case *pn.GetDeviceInfo:
		return getDeviceInfo(ctx, storage, authKey, thread)
	case *pn.SetDeviceInfo:
		return setDeviceInfo(ctx, storage, m, authKey, thread)
	case *pn.DeviceInfo:
		return pn.NewProblemReport(pn.RequestNotAccepted, ExplainDeviceInfoRequest, thread)
	default:
		glog.Warningf("%s not supported from %s", im.MsgType().Kind, authKey)
		return pn.NewProblemReport(pn.RequestProcessingError, ExplainNotSupported, thread)
	}
}

func getDeviceInfo(ctx context.Context, storage api.Mediator, authKey string, thread *decorator.Thread) pn.Message {
	di, err := storage.RetrieveDeviceInfo(ctx, authKey)
	if err != nil {
		glog.V(3).Infof("device info of %s: %v", authKey, err)
		return pn.NewProblemReport(pn.RequestNotAccepted, ExplainNotFound, thread)
	}
	return pn.NewDeviceInfo(value(di.Token), value(di.Platform), thread)
}

func setDeviceInfo(
	ctx context.Context,
	storage api.Mediator,
	m *pn.SetDeviceInfo,
	authKey string,
	thread *decorator.Thread,
) pn.Message {
	token, platform := m.DeviceToken, m.DevicePlatform

	if (token == nil) != (platform == nil) {
		return pn.NewProblemReport(pn.RequestNotAccepted, ExplainPairing, thread)
	}
	if platform != nil && !ValidPlatform(*platform) {
		return pn.NewProblemReport(pn.RequestNotAccepted, ExplainPlatform, thread)
	}

	if err := storage.SetDeviceInfo(ctx, authKey, token, platform); err != nil {
		glog.Errorf("set device info of %s: %v", authKey, err)
		return pn.NewProblemReport(pn.ResponseProcessingError, ExplainSetFailed, thread)
	}
	glog.V(3).Infoln("device info set for", authKey, value(platform))
	return pn.NewDeviceInfo(value(token), value(platform), thread)
}

// ValidPlatform tells if the device platform is supported.
func ValidPlatform(p string) bool {
	return p == pltype.PlatformAndroid || p == pltype.PlatformIOS
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
