// Package apns sends background push notifications to the registered iOS
// devices of the mediator accounts.
package apns

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/findy-network/findy-mediator/agent/pltype"
	"github.com/findy-network/findy-mediator/agent/storage/api"
	"github.com/findy-network/findy-mediator/agent/utils"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/sideshow/apns2"
	"github.com/sideshow/apns2/certificate"
)

var (
	ErrNoDevice    = errors.New("no device registered")
	ErrUnsupported = errors.New("device platform not supported")
	ErrRejected    = errors.New("push rejected")
)

const payload = `{"aps":{"content-available":1}}`

// Pusher is the part of the apns2 client we use.
type Pusher interface {
	PushWithContext(ctx apns2.Context, n *apns2.Notification) (*apns2.Response, error)
}

type Notifier struct {
	pusher  Pusher
	topic   string
	timeout time.Duration
	storage api.Mediator
}

// New builds the notifier from utils.Settings. The P12 certificate file is
// required.
func New(storage api.Mediator) (n *Notifier, err error) {
	defer err2.Handle(&err, "apns init")

	certPath := utils.Settings.CertFileForAPNS()
	if certPath == "" {
		return nil, errors.New("no apns cert file in configuration")
	}
	cert := try.To1(certificate.FromP12File(certPath, utils.Settings.CertPasswordAPNS()))

	client := apns2.NewClient(cert)
	if utils.Settings.ProductionAPNS() {
		client = client.Production()
	} else {
		client = client.Development()
	}
	glog.V(1).Infoln("apns client ready, production:", utils.Settings.ProductionAPNS())

	return NewWithPusher(client, utils.Settings.TopicAPNS(), storage), nil
}

// NewWithPusher builds the notifier over the given pusher.
func NewWithPusher(p Pusher, topic string, storage api.Mediator) *Notifier {
	return &Notifier{
		pusher:  p,
		topic:   topic,
		timeout: utils.Settings.PushNotifyTimeout(),
		storage: storage,
	}
}

// Notify sends a background notification to the device of the account. Only
// iOS devices can be notified.
func (n *Notifier) Notify(ctx context.Context, authKey string) (err error) {
	defer err2.Handle(&err, "notify %s", authKey)

	di, err := n.storage.RetrieveDeviceInfo(ctx, authKey)
	if errors.Is(err, api.ErrNotFound) {
		return ErrNoDevice
	}
	try.To(err)

	if di.Token == nil || di.Platform == nil {
		return ErrNoDevice
	}
	if *di.Platform != pltype.PlatformIOS {
		glog.Warningf("cannot notify %s device of %s", *di.Platform, authKey)
		return fmt.Errorf("%w: %s", ErrUnsupported, *di.Platform)
	}
	return n.notifyDevice(ctx, *di.Token)
}

func (n *Notifier) notifyDevice(ctx context.Context, token string) (err error) {
	defer err2.Handle(&err)

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	res := try.To1(n.pusher.PushWithContext(ctx, n.newNotif(token)))
	if res.StatusCode != http.StatusOK {
		glog.Errorf("tried to notify device: %v %v %v",
			res.StatusCode, res.ApnsID, res.Reason)
		return fmt.Errorf("%w: %d %s", ErrRejected, res.StatusCode, res.Reason)
	}
	glog.V(3).Infoln("device notified, apns id:", res.ApnsID)
	return nil
}

func (n *Notifier) newNotif(token string) *apns2.Notification {
	return &apns2.Notification{
		DeviceToken: token,
		Topic:       n.topic,
		Payload:     []byte(payload),
		PushType:    apns2.PushTypeBackground,
		Priority:    apns2.PriorityLow,
	}
}
