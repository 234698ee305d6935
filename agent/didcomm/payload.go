/*
Package didcomm is package to offer interfaces for the didcomm messages the
mediator understands. It defines the protocol identifier and message type
parsing, the message header every protocol message embeds, and the registry
which maps protocol families and message kinds to Go types. Corresponding
implementation package is aries, which decodes and encodes the wire form with
the help of the registry.

The package offers needed interfaces, some helper functions and variables. More
information can be found from each individual type.
*/
package didcomm

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/findy-network/findy-mediator/agent/pltype"
	"github.com/findy-network/findy-mediator/std/decorator"
)

var (
	// ErrUnknownProtocol is returned when the protocol name of the @type is
	// not registered.
	ErrUnknownProtocol = errors.New("unknown protocol")

	// ErrUnknownKind is returned when the message kind isn't registered for
	// the resolved protocol schema.
	ErrUnknownKind = errors.New("unknown message kind")

	// ErrUnsupportedVersion is returned when the protocol is known but the
	// major version isn't.
	ErrUnsupportedVersion = errors.New("unsupported protocol version")

	// ErrMalformedContent is returned when the message fields cannot be
	// decoded to the resolved Go type.
	ErrMalformedContent = errors.New("malformed message content")

	// ErrInvalidType is a malformed content error for a missing or
	// unparseable @type field.
	ErrInvalidType = fmt.Errorf("%w: invalid @type", ErrMalformedContent)

	// ErrNotImplemented is returned by handlers for registered message kinds
	// they don't process. The transport layer decides the policy.
	ErrNotImplemented = errors.New("not implemented")
)

// ProtocolID identifies a protocol schema: name + major.minor version.
type ProtocolID struct {
	Name  string
	Major int
	Minor int
}

// String returns the protocol ID in the form it has in the @type URI, e.g.
// coordinate-mediation/1.0
func (p ProtocolID) String() string {
	return p.Name + "/" + strconv.Itoa(p.Major) + "." + strconv.Itoa(p.Minor)
}

// URI returns canonical protocol URI without the message kind.
func (p ProtocolID) URI() string {
	return pltype.DIDOrgAries + "/" + p.String()
}

// MsgType is a parsed @type of a message.
type MsgType struct {
	Namespace string
	ProtocolID
	Kind string
}

// String returns the type URI. Messages are always sent with the canonical
// https namespace.
func (t MsgType) String() string {
	return t.ProtocolID.URI() + "/" + t.Kind
}

// NewMsgType is a helper to build a canonical message type.
func NewMsgType(name string, major, minor int, kind string) MsgType {
	return MsgType{
		Namespace:  pltype.DIDOrgAries,
		ProtocolID: ProtocolID{Name: name, Major: major, Minor: minor},
		Kind:       kind,
	}
}

// ParseType splits the @type URI to the namespace, protocol ID and the
// message kind. Both the https and the legacy did:sov namespaces are
// accepted.
func ParseType(s string) (t MsgType, err error) {
	var rest string
	switch {
	case strings.HasPrefix(s, pltype.DIDOrgAries+"/"):
		t.Namespace = pltype.DIDOrgAries
		rest = strings.TrimPrefix(s, pltype.DIDOrgAries+"/")
	case strings.HasPrefix(s, pltype.Aries+"/"):
		t.Namespace = pltype.Aries
		rest = strings.TrimPrefix(s, pltype.Aries+"/")
	default:
		return t, fmt.Errorf("%w: unknown namespace in %q", ErrInvalidType, s)
	}

	parts := strings.Split(rest, "/")
	if len(parts) != 3 || parts[0] == "" || parts[2] == "" {
		return t, fmt.Errorf("%w: %q", ErrInvalidType, s)
	}
	major, minor, err := parseVersion(parts[1])
	if err != nil {
		return t, fmt.Errorf("%w: %q: %v", ErrInvalidType, s, err)
	}
	t.ProtocolID = ProtocolID{Name: parts[0], Major: major, Minor: minor}
	t.Kind = parts[2]
	return t, nil
}

func parseVersion(v string) (major, minor int, err error) {
	majorStr, minorStr, found := strings.Cut(v, ".")
	if !found {
		return 0, 0, fmt.Errorf("version %q has no minor", v)
	}
	if major, err = strconv.Atoi(majorStr); err != nil || major < 0 {
		return 0, 0, fmt.Errorf("bad major version %q", majorStr)
	}
	if minor, err = strconv.Atoi(minorStr); err != nil || minor < 0 {
		return 0, 0, fmt.Errorf("bad minor version %q", minorStr)
	}
	return major, minor, nil
}

type PayloadHdr interface {
	ID() string
	Type() string
}

type PayloadWriteHdr interface {
	SetID(id string)
	SetType(t string)
}

type JSONSpeaker interface {
	JSON() []byte
}

// MessageHdr is the base interface for all protocol messages. It has the
// minimum needed to handle and process inbound and outbound protocol messages.
type MessageHdr interface {
	PayloadHdr
	PayloadWriteHdr
	JSONSpeaker

	Thread() *decorator.Thread
	SetThread(t *decorator.Thread)
	ThreadID() string
}

// Message is a typed protocol message. MsgType returns the canonical type of
// the Go type regardless of what @type the message was received with.
type Message interface {
	MessageHdr
	MsgType() MsgType
}

// Header includes the fields every message has on the wire. Protocol message
// structs embed it so that the fields are flattened to the same JSON object
// with the content.
type Header struct {
	AType   string            `json:"@type"`
	AID     string            `json:"@id"`
	AThread *decorator.Thread `json:"~thread,omitempty"`
}

// NewHeader returns a header for a new outbound message.
func NewHeader(t MsgType, id string, thread *decorator.Thread) Header {
	return Header{AType: t.String(), AID: id, AThread: thread}
}

func (h *Header) ID() string {
	return h.AID
}

func (h *Header) Type() string {
	return h.AType
}

func (h *Header) SetID(id string) {
	h.AID = id
}

func (h *Header) SetType(t string) {
	h.AType = t
}

func (h *Header) Thread() *decorator.Thread {
	return h.AThread
}

func (h *Header) SetThread(t *decorator.Thread) {
	h.AThread = t
}

// ThreadID returns thread ID of the message if there is one. If not, the ID of
// the message is the thread ID.
func (h *Header) ThreadID() string {
	if id := decorator.ThreadID(h.AThread); id != "" {
		return id
	}
	return h.AID
}
