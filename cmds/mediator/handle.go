// Package mediator includes the mediator commands of the CLI. The commands
// operate on the storage given in cmds.Cmd.
package mediator

import (
	"context"
	"errors"
	"io"

	"github.com/findy-network/findy-mediator/agent/mediator"
	"github.com/findy-network/findy-mediator/agent/storage/api"
	"github.com/findy-network/findy-mediator/agent/utils"
	"github.com/findy-network/findy-mediator/cmds"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// Response is the wire form of the response message.
type Response []byte

func (r Response) JSON() ([]byte, error) {
	return r, nil
}

// HandleCmd processes one inbound message of the caller identified by the
// AuthKey and writes the response.
type HandleCmd struct {
	cmds.Cmd
	AuthKey string
	Input   io.Reader
}

func (c HandleCmd) Validate() error {
	if err := c.Cmd.Validate(); err != nil {
		return err
	}
	if c.AuthKey == "" {
		return errors.New("auth key cannot be empty")
	}
	if c.Input == nil {
		return errors.New("input message is missing")
	}
	return nil
}

func (c HandleCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err, "handle cmd")

	data := try.To1(io.ReadAll(c.Input))

	var out []byte
	try.To(withStorage(c.Cmd, func(s api.Storage) (err error) {
		defer err2.Handle(&err)

		m := try.To1(mediator.NewFromSettings(s))
		ctx, cancel := context.WithTimeout(context.Background(), utils.Settings.Timeout())
		defer cancel()
		out = try.To1(m.Handle(ctx, c.AuthKey, data))
		return nil
	}))

	cmds.Fprintln(w, string(out))
	return Response(out), nil
}

// withStorage opens the storage of the command for the duration of f.
func withStorage(c cmds.Cmd, f func(s api.Storage) error) (err error) {
	defer err2.Handle(&err)

	as := c.AgentStorage()
	s := try.To1(as.Open())
	defer func() {
		if closeErr := as.Close(); err == nil {
			err = closeErr
		}
	}()
	return f(s)
}
