/*
Package aries is implementation package for didcomm messages. It decodes
inbound wire messages to typed messages with the help of the Creator registry,
and encodes typed messages back to the wire form with the canonical @type.
Protocol message packages under std register their Go types to the Creator in
their init functions. We use statically typed JSON messages i.e. they are
always mapped to corresponding Go struct, and a @type which isn't registered
is an error.
*/
package aries

import (
	"encoding/json"
	"fmt"

	"github.com/findy-network/findy-mediator/agent/didcomm"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// Creator is the registry of all protocol messages of the mediator.
var Creator = didcomm.NewRegistry()

var PayloadCreator = PayloadFactor{}

type PayloadFactor struct{}

type typeOnly struct {
	Type string `json:"@type"`
}

// NewFromData decodes the wire message to the correct Go struct type. The
// @type selects the registered protocol schema and the message kind.
func (f PayloadFactor) NewFromData(data []byte) (pl *PayloadImpl, err error) {
	defer err2.Handle(&err, "decode message")

	var hdr typeOnly
	if jsonErr := json.Unmarshal(data, &hdr); jsonErr != nil {
		return nil, fmt.Errorf("%w: %v", didcomm.ErrMalformedContent, jsonErr)
	}
	if hdr.Type == "" {
		return nil, fmt.Errorf("%w: missing", didcomm.ErrInvalidType)
	}

	t := try.To1(didcomm.ParseType(hdr.Type))
	resolved, factor := try.To2(Creator.ResolveKind(t.ProtocolID, t.Kind))
	msg := try.To1(factor.NewMessage(data))

	glog.V(3).Infoln("decoded", hdr.Type, "as", msg.MsgType())

	received := t
	received.ProtocolID = resolved
	return &PayloadImpl{Message: msg, received: received, declared: t}, nil
}

// PayloadImpl is a decoded inbound message with the type information it was
// received with.
type PayloadImpl struct {
	didcomm.Message

	declared didcomm.MsgType // as in the wire form
	received didcomm.MsgType // resolved to registered schema
}

// Protocol returns the protocol name, e.g. coordinate-mediation.
func (pl *PayloadImpl) Protocol() string {
	return pl.received.Name
}

// ProtocolMsg returns the message kind of the Go type, e.g. keylist-update.
func (pl *PayloadImpl) ProtocolMsg() string {
	return pl.Message.MsgType().Kind
}

// Namespace returns the namespace the message was received with.
func (pl *PayloadImpl) Namespace() string {
	return pl.declared.Namespace
}

// DeclaredType returns the type as it was in the wire form.
func (pl *PayloadImpl) DeclaredType() didcomm.MsgType {
	return pl.declared
}

// ResolvedType returns the type resolved to the registered protocol schema.
func (pl *PayloadImpl) ResolvedType() didcomm.MsgType {
	return pl.received
}
