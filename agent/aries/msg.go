package aries

import (
	"github.com/findy-network/findy-mediator/agent/didcomm"
	"github.com/google/uuid"
)

var MsgCreator = MsgFactor{}

type MsgFactor struct{}

// NewID returns a new message ID.
func (f MsgFactor) NewID() string {
	return uuid.New().String()
}

// Encode returns the wire form of the typed message. The @type is always
// the canonical type of the Go type, and a missing @id is generated.
func (f MsgFactor) Encode(m didcomm.Message) []byte {
	m.SetType(m.MsgType().String())
	if m.ID() == "" {
		m.SetID(f.NewID())
	}
	return m.JSON()
}
