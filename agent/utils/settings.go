package utils

import (
	"time"

	"github.com/golang/glog"
)

const HTTPReqTimeout = 1 * time.Minute

var Settings = &Hub{}

type Hub struct {
	hostAddr     string   // URL of the mediator seen from internet
	serviceName  string   // name of the this service which is used in URLs, etc.
	routingKeys  []string // routing keys given in the mediation grant
	signingKey   string   // base58 verkey of the mediator
	didDocFile   string   // DID document of the mediator, JSON file
	allowReRegis bool     // existing accounts get a grant for a mediate request
	versionInfo  string   // Version number etc. in free format as a string
	timeout      time.Duration

	storageType string
	storagePath string
	storageName string
	storageKey  string // hex encoded AES key, empty for plain storage

	backupPath string
	backupTime string // HH:MM for the daily backup, empty for no backups

	certFileForAPNS   string // APNS certification file in P12
	certPasswordAPNS  string
	topicAPNS         string
	productionAPNS    bool
	pushNotifyTimeout time.Duration
}

// ServiceEndpoint returns the endpoint given in the mediation grants.
func (h *Hub) ServiceEndpoint() string {
	if h.serviceName == "" {
		return h.hostAddr
	}
	return h.hostAddr + "/" + h.serviceName
}

// SetHostAddr sets current host address of the mediator. The address is used
// in the service endpoint.
func (h *Hub) SetHostAddr(addr string) {
	h.hostAddr = addr
}

func (h *Hub) HostAddr() string {
	return h.hostAddr
}

// SetServiceName sets the service name of the mediator. Service name is the
// path of the service endpoint.
func (h *Hub) SetServiceName(n string) {
	h.serviceName = n
}

func (h *Hub) ServiceName() string {
	if h.serviceName == "" && glog.V(3) {
		glog.Info("warning service name is empty")
	}
	return h.serviceName
}

func (h *Hub) RoutingKeys() []string {
	return h.routingKeys
}

func (h *Hub) SetRoutingKeys(keys []string) {
	h.routingKeys = keys
}

func (h *Hub) SigningKey() string {
	return h.signingKey
}

func (h *Hub) SetSigningKey(k string) {
	h.signingKey = k
}

func (h *Hub) DIDDocFile() string {
	return h.didDocFile
}

func (h *Hub) SetDIDDocFile(name string) {
	h.didDocFile = name
}

// AllowReRegistration tells if existing accounts get a grant for a new
// mediate request.
func (h *Hub) AllowReRegistration() bool {
	return h.allowReRegis
}

func (h *Hub) SetAllowReRegistration(yes bool) {
	h.allowReRegis = yes
}

// SetVersionInfo sets current version info of the mediator.
func (h *Hub) SetVersionInfo(info string) {
	h.versionInfo = info
}

func (h *Hub) VersionInfo() string {
	return h.versionInfo
}

// SetTimeout sets the default timeout for outbound requests.
func (h *Hub) SetTimeout(to time.Duration) {
	h.timeout = to
}

func (h *Hub) Timeout() time.Duration {
	if h.timeout == 0 {
		return HTTPReqTimeout
	}
	return h.timeout
}

func (h *Hub) StorageType() string {
	return h.storageType
}

func (h *Hub) SetStorageType(t string) {
	h.storageType = t
}

func (h *Hub) StoragePath() string {
	return h.storagePath
}

func (h *Hub) SetStoragePath(path string) {
	h.storagePath = path
}

func (h *Hub) StorageName() string {
	return h.storageName
}

func (h *Hub) SetStorageName(name string) {
	h.storageName = name
}

func (h *Hub) StorageKey() string {
	return h.storageKey
}

func (h *Hub) SetStorageKey(key string) {
	h.storageKey = key
}

func (h *Hub) BackupPath() string {
	return h.backupPath
}

func (h *Hub) SetBackupPath(path string) {
	h.backupPath = path
}

func (h *Hub) BackupTime() string {
	return h.backupTime
}

func (h *Hub) SetBackupTime(t string) {
	h.backupTime = t
}

func (h *Hub) CertFileForAPNS() string {
	return h.certFileForAPNS
}

func (h *Hub) SetCertFileForAPNS(certFileForAPNS string) {
	h.certFileForAPNS = certFileForAPNS
}

func (h *Hub) CertPasswordAPNS() string {
	return h.certPasswordAPNS
}

func (h *Hub) SetCertPasswordAPNS(pw string) {
	h.certPasswordAPNS = pw
}

func (h *Hub) TopicAPNS() string {
	return h.topicAPNS
}

func (h *Hub) SetTopicAPNS(topic string) {
	h.topicAPNS = topic
}

func (h *Hub) ProductionAPNS() bool {
	return h.productionAPNS
}

func (h *Hub) SetProductionAPNS(yes bool) {
	h.productionAPNS = yes
}

func (h *Hub) PushNotifyTimeout() time.Duration {
	if h.pushNotifyTimeout == 0 {
		return h.Timeout()
	}
	return h.pushNotifyTimeout
}

func (h *Hub) SetPushNotifyTimeout(to time.Duration) {
	h.pushNotifyTimeout = to
}
