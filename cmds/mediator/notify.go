package mediator

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/findy-network/findy-mediator/agent/apns"
	"github.com/findy-network/findy-mediator/agent/storage/api"
	"github.com/findy-network/findy-mediator/agent/utils"
	"github.com/findy-network/findy-mediator/cmds"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// NotifyCmd sends a background push notification to the iOS device of the
// account.
type NotifyCmd struct {
	cmds.Cmd
	AuthKey      string
	CertFile     string
	CertPassword string
	Topic        string
	Production   bool
}

func (c NotifyCmd) Validate() error {
	if err := c.Cmd.Validate(); err != nil {
		return err
	}
	if c.AuthKey == "" {
		return errors.New("auth key cannot be empty")
	}
	if c.Topic == "" {
		return errors.New("apns topic cannot be empty")
	}
	if _, err := os.Stat(c.CertFile); err != nil {
		return errors.New("apns p12 cert file does not exist")
	}
	return nil
}

func (c NotifyCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err, "notify cmd")

	utils.Settings.SetCertFileForAPNS(c.CertFile)
	utils.Settings.SetCertPasswordAPNS(c.CertPassword)
	utils.Settings.SetTopicAPNS(c.Topic)
	utils.Settings.SetProductionAPNS(c.Production)

	try.To(withStorage(c.Cmd, func(s api.Storage) (err error) {
		defer err2.Handle(&err)

		n := try.To1(apns.New(s))
		return n.Notify(context.Background(), c.AuthKey)
	}))
	cmds.Fprintln(w, "notified:", c.AuthKey)
	return nil, nil
}
