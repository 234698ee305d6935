/*
Package coordinatemediation includes the messages of the Aries RFC 0211
coordinate-mediation protocol. The messages are registered to the aries.Creator
when the package is initialized.
*/
package coordinatemediation

import (
	"github.com/findy-network/findy-common-go/dto"
	"github.com/findy-network/findy-mediator/agent/aries"
	"github.com/findy-network/findy-mediator/agent/didcomm"
	"github.com/findy-network/findy-mediator/agent/pltype"
	"github.com/findy-network/findy-mediator/std/decorator"
	"github.com/lainio/err2/assert"
)

var ProtocolV1_0 = didcomm.ProtocolID{
	Name:  pltype.ProtocolCoordinateMediation,
	Major: 1,
	Minor: 0,
}

// Message is a coordinate-mediation protocol message. The set of the
// implementations is closed to this package.
type Message interface {
	didcomm.Message
	coordinateMediation()
}

func msgType(kind string) didcomm.MsgType {
	return didcomm.NewMsgType(ProtocolV1_0.Name, ProtocolV1_0.Major,
		ProtocolV1_0.Minor, kind)
}

// Variants returns the message types of every message of the protocol.
func Variants() []didcomm.MsgType {
	return []didcomm.MsgType{
		msgType(pltype.HandlerMediateRequest),
		msgType(pltype.HandlerMediateGrant),
		msgType(pltype.HandlerMediateDeny),
		msgType(pltype.HandlerKeylistUpdate),
		msgType(pltype.HandlerKeylistUpdateResponse),
		msgType(pltype.HandlerKeylistQuery),
		msgType(pltype.HandlerKeylist),
	}
}

func init() {
	c := aries.Creator
	c.Add(ProtocolV1_0, pltype.HandlerMediateRequest, didcomm.NewFactor[MediateRequest]())
	c.Add(ProtocolV1_0, pltype.HandlerMediateGrant, didcomm.NewFactor[MediateGrant]())
	c.Add(ProtocolV1_0, pltype.HandlerMediateDeny, didcomm.NewFactor[MediateDeny]())
	c.Add(ProtocolV1_0, pltype.HandlerKeylistUpdate, didcomm.NewFactor[KeylistUpdate]())
	c.Add(ProtocolV1_0, pltype.HandlerKeylistUpdateResponse, didcomm.NewFactor[KeylistUpdateResponse]())
	c.Add(ProtocolV1_0, pltype.HandlerKeylistQuery, didcomm.NewFactor[KeylistQuery]())
	c.Add(ProtocolV1_0, pltype.HandlerKeylist, didcomm.NewFactor[Keylist]())

	assert.NoError(c.CheckTotal(Variants()...))
}

func newHeader(kind string, thread *decorator.Thread) didcomm.Header {
	return didcomm.NewHeader(msgType(kind), aries.MsgCreator.NewID(), thread)
}

func NewMediateRequest() *MediateRequest {
	return &MediateRequest{Header: newHeader(pltype.HandlerMediateRequest, nil)}
}

// NewMediateGrant returns a grant with the content. The thread is optional.
func NewMediateGrant(content GrantContent, thread *decorator.Thread) *MediateGrant {
	return &MediateGrant{
		Header:       newHeader(pltype.HandlerMediateGrant, thread),
		GrantContent: content,
	}
}

func NewMediateDeny(thread *decorator.Thread) *MediateDeny {
	return &MediateDeny{Header: newHeader(pltype.HandlerMediateDeny, thread)}
}

func NewKeylistUpdate(updates []KeylistUpdateItem) *KeylistUpdate {
	return &KeylistUpdate{
		Header:  newHeader(pltype.HandlerKeylistUpdate, nil),
		Updates: updates,
	}
}

func NewKeylistUpdateResponse(updated []KeylistUpdateResponseItem, thread *decorator.Thread) *KeylistUpdateResponse {
	if updated == nil {
		updated = []KeylistUpdateResponseItem{}
	}
	return &KeylistUpdateResponse{
		Header:  newHeader(pltype.HandlerKeylistUpdateResponse, thread),
		Updated: updated,
	}
}

func NewKeylistQuery(paginate *Paginate) *KeylistQuery {
	return &KeylistQuery{
		Header:   newHeader(pltype.HandlerKeylistQuery, nil),
		Paginate: paginate,
	}
}

// NewKeylist returns a keylist message with one item per key. Pagination
// isn't supported and is always omitted.
func NewKeylist(keys []string, thread *decorator.Thread) *Keylist {
	items := make([]KeylistItem, 0, len(keys))
	for _, k := range keys {
		items = append(items, KeylistItem{RecipientKey: k})
	}
	return &Keylist{
		Header: newHeader(pltype.HandlerKeylist, thread),
		Keys:   items,
	}
}

// MARK: Message interface

func (m *MediateRequest) MsgType() didcomm.MsgType { return msgType(pltype.HandlerMediateRequest) }
func (m *MediateRequest) JSON() []byte             { return dto.ToJSONBytes(m) }
func (m *MediateRequest) coordinateMediation()     {}

func (m *MediateGrant) MsgType() didcomm.MsgType { return msgType(pltype.HandlerMediateGrant) }
func (m *MediateGrant) JSON() []byte             { return dto.ToJSONBytes(m) }
func (m *MediateGrant) coordinateMediation()     {}

func (m *MediateDeny) MsgType() didcomm.MsgType { return msgType(pltype.HandlerMediateDeny) }
func (m *MediateDeny) JSON() []byte             { return dto.ToJSONBytes(m) }
func (m *MediateDeny) coordinateMediation()     {}

func (m *KeylistUpdate) MsgType() didcomm.MsgType { return msgType(pltype.HandlerKeylistUpdate) }
func (m *KeylistUpdate) JSON() []byte             { return dto.ToJSONBytes(m) }
func (m *KeylistUpdate) coordinateMediation()     {}

func (m *KeylistUpdateResponse) MsgType() didcomm.MsgType {
	return msgType(pltype.HandlerKeylistUpdateResponse)
}
func (m *KeylistUpdateResponse) JSON() []byte         { return dto.ToJSONBytes(m) }
func (m *KeylistUpdateResponse) coordinateMediation() {}

func (m *KeylistQuery) MsgType() didcomm.MsgType { return msgType(pltype.HandlerKeylistQuery) }
func (m *KeylistQuery) JSON() []byte             { return dto.ToJSONBytes(m) }
func (m *KeylistQuery) coordinateMediation()     {}

func (m *Keylist) MsgType() didcomm.MsgType { return msgType(pltype.HandlerKeylist) }
func (m *Keylist) JSON() []byte             { return dto.ToJSONBytes(m) }
func (m *Keylist) coordinateMediation()     {}
