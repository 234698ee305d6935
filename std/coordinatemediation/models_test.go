package coordinatemediation

import (
	"errors"
	"testing"

	"github.com/findy-network/findy-mediator/agent/aries"
	"github.com/findy-network/findy-mediator/agent/didcomm"
	"github.com/findy-network/findy-mediator/agent/pltype"
	"github.com/findy-network/findy-mediator/std/decorator"
	"github.com/lainio/err2/assert"
	"github.com/stretchr/testify/require"
)

var keylistUpdateJSON = `{
    "@type": "https://didcomm.org/coordinate-mediation/1.0/keylist-update",
    "@id": "6a4bb5a6-6e2e-4c0a-9d6b-5c3f1fd7a2a1",
    "updates": [
      {"recipient_key": "did:key:z6MkpTHR8VNsBxYAAWHut2Geadd9jSwuBV8xRoAnwWsdvktH", "action": "add"},
      {"recipient_key": "B12NYF8RrR3h41TDCTJojY59usg3mbtbjnFs7Eud1Y6u", "action": "remove"}
    ]
  }`

func TestKeylistUpdate_Decode(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	pl, err := aries.PayloadCreator.NewFromData([]byte(keylistUpdateJSON))
	assert.NoError(err)
	assert.Equal("6a4bb5a6-6e2e-4c0a-9d6b-5c3f1fd7a2a1", pl.ID())
	assert.Equal("6a4bb5a6-6e2e-4c0a-9d6b-5c3f1fd7a2a1", pl.ThreadID())
	assert.Equal(pltype.ProtocolCoordinateMediation, pl.Protocol())
	assert.Equal(pltype.HandlerKeylistUpdate, pl.ProtocolMsg())

	msg, ok := pl.Message.(*KeylistUpdate)
	assert.That(ok)
	assert.SLen(msg.Updates, 2)
	assert.Equal(ActionAdd, msg.Updates[0].Action)
	assert.Equal(ActionRemove, msg.Updates[1].Action)
	assert.Equal("B12NYF8RrR3h41TDCTJojY59usg3mbtbjnFs7Eud1Y6u", msg.Updates[1].RecipientKey)
}

func TestVersionTolerance(t *testing.T) {
	tests := []struct {
		name    string
		typeURI string
		err     error
	}{
		{"exact", "https://didcomm.org/coordinate-mediation/1.0/mediate-request", nil},
		{"future minor", "https://didcomm.org/coordinate-mediation/1.188/mediate-request", nil},
		{"legacy prefix", "did:sov:BzCbsNYhMrjHiqZDTUASHg;spec/coordinate-mediation/1.0/mediate-request", nil},
		{"snake case kind", "https://didcomm.org/coordinate-mediation/1.0/mediate_request", nil},
		{"unknown major", "https://didcomm.org/coordinate-mediation/2.0/mediate-request", didcomm.ErrUnsupportedVersion},
		{"unknown protocol", "https://didcomm.org/routing/1.0/forward", didcomm.ErrUnknownProtocol},
		{"unknown kind", "https://didcomm.org/coordinate-mediation/1.0/mediate-whatever", didcomm.ErrUnknownKind},
		{"bad version", "https://didcomm.org/coordinate-mediation/one/mediate-request", didcomm.ErrMalformedContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.PushTester(t)
			defer assert.PopTester()

			data := []byte(`{"@type":"` + tt.typeURI + `","@id":"1234"}`)
			pl, err := aries.PayloadCreator.NewFromData(data)
			if tt.err != nil {
				assert.Error(err)
				assert.That(errors.Is(err, tt.err), "got:", err)
				return
			}
			assert.NoError(err)
			_, ok := pl.Message.(*MediateRequest)
			assert.That(ok)
			assert.Equal(ProtocolV1_0, pl.ResolvedType().ProtocolID)
			assert.Equal(pltype.CoordinateMediationRequest, pl.MsgType().String())
		})
	}
}

func TestMalformedContent(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad action", `{"@type":"https://didcomm.org/coordinate-mediation/1.0/keylist-update","@id":"1","updates":[{"recipient_key":"k","action":"swap"}]}`},
		{"bad updates", `{"@type":"https://didcomm.org/coordinate-mediation/1.0/keylist-update","@id":"1","updates":"k"}`},
		{"bad result", `{"@type":"https://didcomm.org/coordinate-mediation/1.0/keylist-update-response","@id":"1","updated":[{"recipient_key":"k","action":"add","result":"ok"}]}`},
		{"no type", `{"@id":"1"}`},
		{"not json", `coordinate-mediation`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.PushTester(t)
			defer assert.PopTester()

			_, err := aries.PayloadCreator.NewFromData([]byte(tt.data))
			assert.Error(err)
			assert.That(errors.Is(err, didcomm.ErrMalformedContent), "got:", err)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	thread := decorator.ReplyTo("4f0e2ab8-51cc-4a02-a0a4-63f5c6a5b3b7")
	tests := []struct {
		name string
		msg  Message
	}{
		{"mediate-request", NewMediateRequest()},
		{"mediate-grant", NewMediateGrant(GrantContent{
			Endpoint:    "http://localhost:8080",
			RoutingKeys: []string{"did:key:z6MkpTHR8VNsBxYAAWHut2Geadd9jSwuBV8xRoAnwWsdvktH"},
		}, thread)},
		{"mediate-deny", NewMediateDeny(thread)},
		{"keylist-update", NewKeylistUpdate([]KeylistUpdateItem{
			{RecipientKey: "key1", Action: ActionAdd},
			{RecipientKey: "key2", Action: ActionRemove},
		})},
		{"keylist-update-response", NewKeylistUpdateResponse([]KeylistUpdateResponseItem{
			{RecipientKey: "key1", Action: ActionAdd, Result: ResultSuccess},
			{RecipientKey: "key2", Action: ActionRemove, Result: ResultServerError},
		}, thread)},
		{"keylist-query", NewKeylistQuery(&Paginate{Limit: 10, Offset: 0})},
		{"keylist", NewKeylist([]string{"key1", "key2"}, thread)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.PushTester(t)
			defer assert.PopTester()

			assert.Equal(tt.name, tt.msg.MsgType().Kind)
			assert.NotEmpty(tt.msg.ID())

			data := aries.MsgCreator.Encode(tt.msg)
			pl, err := aries.PayloadCreator.NewFromData(data)
			assert.NoError(err)
			assert.DeepEqual(tt.msg, pl.Message)
			require.JSONEq(t, string(data), string(pl.JSON()))
		})
	}
}

func TestEncode_WireForm(t *testing.T) {
	m := NewKeylist([]string{"key1"}, decorator.ReplyTo("req-id"))
	m.SetID("resp-id")

	require.JSONEq(t, `{
		"@type": "https://didcomm.org/coordinate-mediation/1.0/keylist",
		"@id": "resp-id",
		"~thread": {"thid": "req-id"},
		"keys": [{"recipient_key": "key1"}]
	}`, string(aries.MsgCreator.Encode(m)))

	q := NewKeylistQuery(nil)
	q.SetID("q-id")
	require.JSONEq(t, `{
		"@type": "https://didcomm.org/coordinate-mediation/1.0/keylist-query",
		"@id": "q-id"
	}`, string(aries.MsgCreator.Encode(q)))
}

func TestEncode_GeneratesID(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	m := &MediateDeny{}
	data := aries.MsgCreator.Encode(m)
	assert.NotEmpty(m.ID())
	assert.Equal(pltype.CoordinateMediationDeny, m.Type())

	pl, err := aries.PayloadCreator.NewFromData(data)
	assert.NoError(err)
	assert.Equal(m.ID(), pl.ID())
}

func TestRegistryIsTotal(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	assert.NoError(aries.Creator.CheckTotal(Variants()...))
	assert.SLen(Variants(), 7)
}
