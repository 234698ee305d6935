package method

import (
	"strings"

	"github.com/golang/glog"
	"github.com/hyperledger/aries-framework-go/pkg/vdr/fingerprint"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/mr-tron/base58"
)

const didKeyPrefix = "did:key:"

// NormalizeKey returns the base58 form of the recipient key token. A did:key
// is decoded to its raw public key. All other tokens, and did:keys which
// cannot be decoded, are returned as is.
func NormalizeKey(token string) string {
	if !strings.HasPrefix(token, didKeyPrefix) {
		return token
	}
	pk, err := fingerprint.PubKeyFromDIDKey(token)
	if err != nil {
		glog.Warningf("cannot decode did:key %s, using it as is: %v", token, err)
		return token
	}
	return base58.Encode(pk)
}

// DIDKey returns the did:key form of the base58 encoded ed25519 public key.
func DIDKey(keyB58 string) (didKey string, err error) {
	defer err2.Handle(&err, "did:key from %s", keyB58)

	pk := try.To1(base58.Decode(keyB58))
	didKey, _ = fingerprint.CreateDIDKey(pk)
	return didKey, nil
}

// IsDIDKey tells if the token is in the did:key form.
func IsDIDKey(token string) bool {
	return DIDType(token) == MethodKey
}
