package didcomm

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/findy-network/findy-mediator/std/decorator"
	"github.com/lainio/err2/assert"
)

type ping struct {
	Header
	Comment string `json:"comment,omitempty"`
}

func (p *ping) MsgType() MsgType {
	return NewMsgType("trust-ping", 1, 0, "ping")
}

func (p *ping) JSON() []byte {
	data, _ := json.Marshal(p)
	return data
}

func newRegistry() *Registry {
	r := NewRegistry()
	r.Add(ProtocolID{Name: "trust-ping", Major: 1, Minor: 0}, "ping", NewFactor[ping]())
	r.Add(ProtocolID{Name: "trust-ping", Major: 1, Minor: 2}, "ping", NewFactor[ping]())
	r.Add(ProtocolID{Name: "trust-ping", Major: 1, Minor: 2}, "ping-response", NewFactor[ping]())
	return r
}

func TestParseType(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    MsgType
		wantErr bool
	}{
		{"https", "https://didcomm.org/trust-ping/1.0/ping",
			MsgType{"https://didcomm.org", ProtocolID{"trust-ping", 1, 0}, "ping"}, false},
		{"legacy", "did:sov:BzCbsNYhMrjHiqZDTUASHg;spec/trust-ping/1.12/ping",
			MsgType{"did:sov:BzCbsNYhMrjHiqZDTUASHg;spec", ProtocolID{"trust-ping", 1, 12}, "ping"}, false},
		{"no namespace", "trust-ping/1.0/ping", MsgType{}, true},
		{"no kind", "https://didcomm.org/trust-ping/1.0", MsgType{}, true},
		{"no minor", "https://didcomm.org/trust-ping/1/ping", MsgType{}, true},
		{"negative", "https://didcomm.org/trust-ping/-1.0/ping", MsgType{}, true},
		{"letters", "https://didcomm.org/trust-ping/a.b/ping", MsgType{}, true},
		{"empty", "", MsgType{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.PushTester(t)
			defer assert.PopTester()

			got, err := ParseType(tt.in)
			if tt.wantErr {
				assert.Error(err)
				assert.That(errors.Is(err, ErrInvalidType))
				assert.That(errors.Is(err, ErrMalformedContent))
				return
			}
			assert.NoError(err)
			assert.DeepEqual(tt.want, got)
		})
	}
}

func TestMsgType_String(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	mt := NewMsgType("trust-ping", 1, 0, "ping")
	assert.Equal("https://didcomm.org/trust-ping/1.0/ping", mt.String())
	assert.Equal("trust-ping/1.0", mt.ProtocolID.String())

	// legacy namespace isn't written out
	mt.Namespace = "did:sov:BzCbsNYhMrjHiqZDTUASHg;spec"
	assert.Equal("https://didcomm.org/trust-ping/1.0/ping", mt.String())
}

func TestRegistry_Resolve(t *testing.T) {
	r := newRegistry()
	tests := []struct {
		name    string
		in      ProtocolID
		want    int
		wantErr error
	}{
		{"exact", ProtocolID{"trust-ping", 1, 0}, 0, nil},
		{"exact newer", ProtocolID{"trust-ping", 1, 2}, 2, nil},
		{"between", ProtocolID{"trust-ping", 1, 1}, 0, nil},
		{"above", ProtocolID{"trust-ping", 1, 188}, 2, nil},
		{"unknown major", ProtocolID{"trust-ping", 2, 0}, 0, ErrUnsupportedVersion},
		{"unknown protocol", ProtocolID{"basicmessage", 1, 0}, 0, ErrUnknownProtocol},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.PushTester(t)
			defer assert.PopTester()

			got, err := r.Resolve(tt.in)
			if tt.wantErr != nil {
				assert.Error(err)
				assert.That(errors.Is(err, tt.wantErr))
				return
			}
			assert.NoError(err)
			assert.Equal(tt.want, got.Minor)
			assert.Equal(tt.in.Major, got.Major)
		})
	}
}

func TestRegistry_ResolveBelowLowest(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	r := NewRegistry()
	r.Add(ProtocolID{Name: "trust-ping", Major: 1, Minor: 3}, "ping", NewFactor[ping]())

	got, err := r.Resolve(ProtocolID{Name: "trust-ping", Major: 1, Minor: 0})
	assert.NoError(err)
	assert.Equal(3, got.Minor)
}

func TestRegistry_ResolveKind(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()
	r := newRegistry()

	_, f, err := r.ResolveKind(ProtocolID{"trust-ping", 1, 5}, "ping_response")
	assert.NoError(err)
	assert.INotNil(f)

	// ping-response exists only in 1.2
	_, _, err = r.ResolveKind(ProtocolID{"trust-ping", 1, 0}, "ping-response")
	assert.Error(err)
	assert.That(errors.Is(err, ErrUnknownKind))

	_, f, err = r.ResolveKind(ProtocolID{"trust-ping", 1, 0}, "ping")
	assert.NoError(err)
	m, err := f.NewMessage([]byte(`{"@type":"x","@id":"1","comment":"hi"}`))
	assert.NoError(err)
	p, ok := m.(*ping)
	assert.That(ok)
	assert.Equal("hi", p.Comment)
	assert.Equal("1", p.ID())

	_, err = f.NewMessage([]byte(`{"comment":1}`))
	assert.Error(err)
	assert.That(errors.Is(err, ErrMalformedContent))
}

func TestRegistry_CheckTotal(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()
	r := newRegistry()

	assert.NoError(r.CheckTotal(
		NewMsgType("trust-ping", 1, 0, "ping"),
		NewMsgType("trust-ping", 1, 2, "ping-response"),
	))
	assert.That(r.Has(NewMsgType("trust-ping", 1, 2, "ping")))
	assert.That(!r.Has(NewMsgType("trust-ping", 1, 1, "ping")))
	assert.Error(r.CheckTotal(NewMsgType("trust-ping", 1, 0, "ping-response")))
}

func TestHeader_ThreadID(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	h := NewHeader(NewMsgType("trust-ping", 1, 0, "ping"), "id-1", nil)
	assert.Equal("id-1", h.ThreadID())
	assert.Equal("https://didcomm.org/trust-ping/1.0/ping", h.Type())

	h.SetThread(decorator.ReplyTo("th-1"))
	assert.Equal("th-1", h.ThreadID())
}
