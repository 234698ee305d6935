/*
Package mediator is the message core facade. It decodes the inbound message,
delivers it to the correct protocol handler and encodes the response.

The processing has 2 levels like in any didcomm agent. First level selects the
protocol by the name of the resolved protocol schema, and the protocol handler
selects the message handler by the message kind. The caller of the mediator is
identified by the authentication key the transport layer has verified.
*/
package mediator

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/findy-network/findy-mediator/agent/aries"
	"github.com/findy-network/findy-mediator/agent/bus"
	"github.com/findy-network/findy-mediator/agent/didcomm"
	"github.com/findy-network/findy-mediator/agent/pltype"
	"github.com/findy-network/findy-mediator/agent/storage/api"
	"github.com/findy-network/findy-mediator/agent/utils"
	"github.com/findy-network/findy-mediator/method"
	"github.com/findy-network/findy-mediator/protocol/coordination"
	"github.com/findy-network/findy-mediator/protocol/deviceinfo"
	cm "github.com/findy-network/findy-mediator/std/coordinatemediation"
	"github.com/findy-network/findy-mediator/std/decorator"
	pn "github.com/findy-network/findy-mediator/std/pushnotification"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// Config is the identity of the mediator and the content of the grants.
type Config struct {
	SigningKey string
	DIDDoc     []byte
	Grant      cm.GrantContent

	// AllowReRegistration grants mediation for existing accounts without
	// creating them again.
	AllowReRegistration bool
}

// ProtHandler processes all the messages of one protocol.
type ProtHandler func(ctx context.Context, m *Mediator, authKey string, im didcomm.Message) (didcomm.Message, error)

type Mediator struct {
	Config
	storage      api.Mediator
	protHandlers map[string]ProtHandler
	events       *bus.Station
}

// New returns the mediator over the storage. The changes of the accounts are
// broadcast to bus.Events.
func New(storage api.Mediator, cfg Config) *Mediator {
	m := &Mediator{Config: cfg, storage: storage, events: bus.Events}
	m.add(pltype.ProtocolCoordinateMediation, coordinate)
	m.add(pltype.ProtocolPushNotificationsFCM, pushNotification)
	return m
}

// NewFromSettings returns the mediator configured by utils.Settings. The DID
// document is read from the file if one is given. If not, a did:peer
// document is built from the signing key and the service endpoint.
func NewFromSettings(storage api.Mediator) (m *Mediator, err error) {
	defer err2.Handle(&err, "mediator from settings")

	s := utils.Settings
	grant := cm.GrantContent{
		Endpoint:    s.ServiceEndpoint(),
		RoutingKeys: s.RoutingKeys(),
	}
	if grant.RoutingKeys == nil {
		grant.RoutingKeys = []string{}
	}

	var didDoc []byte
	switch {
	case s.DIDDocFile() != "":
		didDoc = try.To1(os.ReadFile(s.DIDDocFile()))
	case s.SigningKey() != "":
		doc := try.To1(method.NewDoc(s.SigningKey(), grant.Endpoint, grant.RoutingKeys...))
		didDoc = try.To1(doc.JSONBytes())
	default:
		glog.Warning("no signing key, accounts are created without DID doc")
	}

	return New(storage, Config{
		SigningKey:          s.SigningKey(),
		DIDDoc:              didDoc,
		Grant:               grant,
		AllowReRegistration: s.AllowReRegistration(),
	}), nil
}

func (m *Mediator) add(protocol string, h ProtHandler) {
	if m.protHandlers == nil {
		m.protHandlers = make(map[string]ProtHandler)
	}
	m.protHandlers[protocol] = h
}

// Handle decodes the wire message of the caller, processes it and returns
// the wire form of the response. Decode errors and didcomm.ErrNotImplemented
// are returned to the caller, the transport layer decides what to do with
// them.
func (m *Mediator) Handle(ctx context.Context, authKey string, data []byte) (out []byte, err error) {
	defer err2.Handle(&err)

	pl := try.To1(aries.PayloadCreator.NewFromData(data))
	om := try.To1(m.HandleMessage(ctx, authKey, pl.Message))
	return aries.MsgCreator.Encode(om), nil
}

// HandleMessage delivers the typed message to the correct protocol handler.
func (m *Mediator) HandleMessage(ctx context.Context, authKey string, im didcomm.Message) (om didcomm.Message, err error) {
	defer err2.Handle(&err, "handle %s", im.MsgType().Kind)

	protocol := im.MsgType().Name
	h, ok := m.protHandlers[protocol]
	if !ok {
		return nil, fmt.Errorf("%w: protocol %s", didcomm.ErrNotImplemented, protocol)
	}
	glog.V(1).Infoln("PROTOCOL type", im.Type())
	om = try.To1(h(ctx, m, authKey, im))
	m.broadcast(authKey, im, om)
	return om, nil
}

// broadcast tells the listeners about the successful changes of the account.
func (m *Mediator) broadcast(authKey string, im, om didcomm.Message) {
	ev := bus.Event{AuthKey: authKey, ThreadID: im.ThreadID()}
	switch r := om.(type) {
	case *cm.MediateGrant:
		ev.Type = bus.AccountCreated
	case *cm.KeylistUpdateResponse:
		for _, item := range r.Updated {
			if item.Result == cm.ResultSuccess {
				ev.Type = bus.KeylistUpdated
				break
			}
		}
	case *pn.DeviceInfo:
		if _, ok := im.(*pn.SetDeviceInfo); ok {
			ev.Type = bus.DeviceInfoSet
		}
	}
	if ev.Type != 0 && m.events != nil {
		m.events.Broadcast(ev)
	}
}

// checkAccount returns api.ErrNoAccount if the caller hasn't got mediation.
// Only the keylist messages need it.
func (m *Mediator) checkAccount(ctx context.Context, authKey string) error {
	_, err := m.storage.GetAccount(ctx, authKey)
	if errors.Is(err, api.ErrNotFound) {
		return api.ErrNoAccount
	}
	return err
}

func coordinate(ctx context.Context, m *Mediator, authKey string, im didcomm.Message) (om didcomm.Message, err error) {
	defer err2.Handle(&err)

	msg, ok := im.(cm.Message)
	if !ok {
		return nil, fmt.Errorf("%w: %T", didcomm.ErrNotImplemented, im)
	}
	if req, ok := msg.(*cm.MediateRequest); ok {
		return m.mediateRequest(ctx, authKey, req), nil
	}
	try.To(m.checkAccount(ctx, authKey))
	return coordination.Handle(ctx, coordination.Packet{
		Message: msg,
		AuthKey: authKey,
		Storage: m.storage,
	})
}

func (m *Mediator) mediateRequest(ctx context.Context, authKey string, req *cm.MediateRequest) cm.Message {
	if m.AllowReRegistration {
		if _, err := m.storage.GetAccount(ctx, authKey); err == nil {
			glog.V(1).Infoln("re-registration of", authKey)
			return cm.NewMediateGrant(m.Grant, decorator.ReplyTo(req.ID()))
		}
	}
	return coordination.HandleMediateRequest(ctx, m.storage, coordination.MediateRequest{
		Request:    req,
		AuthKey:    authKey,
		SigningKey: m.SigningKey,
		DIDDoc:     m.DIDDoc,
		Grant:      m.Grant,
	})
}

// pushNotification answers every message in-band. Callers without an account
// get the problem report of the failed storage operation.
func pushNotification(ctx context.Context, m *Mediator, authKey string, im didcomm.Message) (om didcomm.Message, err error) {
	msg, ok := im.(pn.Message)
	if !ok {
		return nil, fmt.Errorf("%w: %T", didcomm.ErrNotImplemented, im)
	}
	return deviceinfo.Handle(ctx, m.storage, msg, authKey), nil
}
