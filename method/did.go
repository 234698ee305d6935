/*
Package method offers helpers for the DID methods the mediator deals with.
Recipient keys arrive either as did:key identifiers or as raw base58 public
keys, and they are stored in the base58 form. The package also builds the
did:peer document of the mediator from its signing key.
*/
package method

import (
	"strings"

	"github.com/hyperledger/aries-framework-go/component/models/did/endpoint"
	"github.com/hyperledger/aries-framework-go/pkg/doc/did"
	"github.com/hyperledger/aries-framework-go/pkg/vdr/peer"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/mr-tron/base58"
)

type Method int

const (
	MethodKey Method = 0 + iota
	MethodPeer
	MethodSov
	MethodUnknown
)

const didPrefix = "did:"

// String returns the method name of the DID string, e.g. key for
// did:key:z6Mk... An empty string is returned for non-DID strings.
func String(s string) string {
	if !strings.HasPrefix(s, didPrefix) {
		return ""
	}
	name, _, _ := strings.Cut(strings.TrimPrefix(s, didPrefix), ":")
	return name
}

// DIDType returns the Method of the DID string.
func DIDType(s string) Method {
	switch String(s) {
	case "key":
		return MethodKey
	case "peer":
		return MethodPeer
	case "sov":
		return MethodSov
	}
	return MethodUnknown
}

// NewDoc builds a did:peer document with the base58 public key pk as a
// verification method and a didcomm service at addr. The routing keys are
// optional.
func NewDoc(pk, addr string, routingKeys ...string) (d *did.Doc, err error) {
	defer err2.Handle(&err, "new did doc")

	pubKey := try.To1(base58.Decode(pk))

	key := did.VerificationMethod{
		ID:         "1",
		Type:       "Ed25519VerificationKey2018",
		Controller: "",
		Value:      pubKey,
	}
	return try.To1(peer.NewDoc(
		[]did.VerificationMethod{key},
		did.WithAuthentication([]did.Verification{{
			VerificationMethod: key,
			Relationship:       0,
			Embedded:           true,
		}}),
		did.WithService([]did.Service{{
			ID:              "didcomm",
			Type:            "did-communication",
			Priority:        0,
			RecipientKeys:   []string{pk},
			RoutingKeys:     routingKeys,
			ServiceEndpoint: endpoint.NewDIDCommV1Endpoint(addr),
		}}),
	)), nil
}
