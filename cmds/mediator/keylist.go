package mediator

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/findy-network/findy-mediator/agent/storage/api"
	"github.com/findy-network/findy-mediator/cmds"
	"github.com/findy-network/findy-mediator/method"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// Keylist is the list of recipient keys of an account.
type Keylist []string

func (k Keylist) JSON() ([]byte, error) {
	return json.Marshal(k)
}

// KeylistCmd prints the recipient keys of the account. Keys are printed in
// the stored base58 form or as did:key.
type KeylistCmd struct {
	cmds.Cmd
	AuthKey string
	DIDKey  bool
}

func (c KeylistCmd) Validate() error {
	if err := c.Cmd.Validate(); err != nil {
		return err
	}
	if c.AuthKey == "" {
		return errors.New("auth key cannot be empty")
	}
	return nil
}

func (c KeylistCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err, "keylist cmd")

	var keys []string
	try.To(withStorage(c.Cmd, func(s api.Storage) (err error) {
		keys, err = s.ListRecipientKeys(context.Background(), c.AuthKey)
		return err
	}))

	list := make(Keylist, 0, len(keys))
	for _, k := range keys {
		// keys which weren't decodable are stored in their did:key form
		if c.DIDKey && !method.IsDIDKey(k) {
			k = try.To1(method.DIDKey(k))
		}
		list = append(list, k)
		cmds.Fprintln(w, k)
	}
	return list, nil
}
