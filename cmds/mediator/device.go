package mediator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/findy-network/findy-mediator/agent/storage/api"
	"github.com/findy-network/findy-mediator/cmds"
	"github.com/findy-network/findy-mediator/protocol/deviceinfo"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

type Device struct {
	Token    string `json:"device_token"`
	Platform string `json:"device_platform"`
}

func (d Device) JSON() ([]byte, error) {
	return json.Marshal(d)
}

// DeviceCmd shows the device info of the account. If Token and Platform are
// given, they are set first, and Clear removes the device info.
type DeviceCmd struct {
	cmds.Cmd
	AuthKey  string
	Token    string
	Platform string
	Clear    bool
}

func (c DeviceCmd) Validate() error {
	if err := c.Cmd.Validate(); err != nil {
		return err
	}
	if c.AuthKey == "" {
		return errors.New("auth key cannot be empty")
	}
	if (c.Token == "") != (c.Platform == "") {
		return errors.New("token and platform must be given together")
	}
	if c.Platform != "" && !deviceinfo.ValidPlatform(c.Platform) {
		return fmt.Errorf("unsupported platform: %s", c.Platform)
	}
	if c.Clear && c.Token != "" {
		return errors.New("clear cannot be used with token")
	}
	return nil
}

func (c DeviceCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err, "device cmd")

	ctx := context.Background()
	var di api.DeviceInfo
	try.To(withStorage(c.Cmd, func(s api.Storage) (err error) {
		defer err2.Handle(&err)

		switch {
		case c.Clear:
			try.To(s.SetDeviceInfo(ctx, c.AuthKey, nil, nil))
			return nil
		case c.Token != "":
			try.To(s.SetDeviceInfo(ctx, c.AuthKey, &c.Token, &c.Platform))
		}
		di = try.To1(s.RetrieveDeviceInfo(ctx, c.AuthKey))
		return nil
	}))
	if c.Clear {
		cmds.Fprintln(w, "device info cleared")
		return nil, nil
	}

	d := Device{Token: value(di.Token), Platform: value(di.Platform)}
	cmds.Fprintf(w, "%s %s\n", d.Platform, d.Token)
	return d, nil
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
