package mediator

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/findy-network/findy-mediator/agent/aries"
	"github.com/findy-network/findy-mediator/agent/storage/api"
	"github.com/findy-network/findy-mediator/agent/storage/mgddb"
	"github.com/findy-network/findy-mediator/cmds"
	cm "github.com/findy-network/findy-mediator/std/coordinatemediation"
	"github.com/go-co-op/gocron"
	"github.com/lainio/err2/assert"
	"github.com/lainio/err2/try"
)

const (
	authKey = "6ri8Tc8M9bX8A4jCvt4eWGJ8ZHj2BBWWp6v1HJ6VGGeM"
	keyB58  = "B12NYF8RrR3h41TDCTJojY59usg3mbtbjnFs7Eud1Y6u"
	didKey  = "did:key:z6MkpTHR8VNsBxYAAWHut2Geadd9jSwuBV8xRoAnwWsdvktH"
)

func TestMain(m *testing.M) {
	try.To(flag.Set("logtostderr", "true"))
	try.To(flag.Set("stderrthreshold", "WARNING"))
	flag.Parse()
	os.Exit(m.Run())
}

func newCmd(t *testing.T) cmds.Cmd {
	return cmds.Cmd{
		StorageType: "bolt",
		StoragePath: t.TempDir(),
		StorageName: "mediator",
	}
}

func handle(t *testing.T, c cmds.Cmd, m cm.Message) cm.Message {
	hc := HandleCmd{Cmd: c, AuthKey: authKey, Input: bytes.NewReader(aries.MsgCreator.Encode(m))}
	if err := hc.Validate(); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	r, err := hc.Exec(&out)
	if err != nil {
		t.Fatal(err)
	}
	data, _ := r.JSON()
	pl, err := aries.PayloadCreator.NewFromData(data)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out.String()) != string(data) {
		t.Fatalf("printed %s", out.String())
	}
	return pl.Message.(cm.Message)
}

func TestCommands(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()
	c := newCmd(t)

	_, ok := handle(t, c, cm.NewMediateRequest()).(*cm.MediateGrant)
	assert.That(ok)
	_, ok = handle(t, c, cm.NewKeylistUpdate([]cm.KeylistUpdateItem{
		{RecipientKey: didKey, Action: cm.ActionAdd},
	})).(*cm.KeylistUpdateResponse)
	assert.That(ok)

	var out bytes.Buffer
	kc := KeylistCmd{Cmd: c, AuthKey: authKey}
	assert.NoError(kc.Validate())
	r, err := kc.Exec(&out)
	assert.NoError(err)
	assert.Equal(keyB58+"\n", out.String())
	data, err := r.JSON()
	assert.NoError(err)
	assert.Equal(`["`+keyB58+`"]`, string(data))

	out.Reset()
	kc.DIDKey = true
	_, err = kc.Exec(&out)
	assert.NoError(err)
	assert.Equal(didKey+"\n", out.String())

	badKey := "did:key:zInvalid"
	_, ok = handle(t, c, cm.NewKeylistUpdate([]cm.KeylistUpdateItem{
		{RecipientKey: badKey, Action: cm.ActionAdd},
	})).(*cm.KeylistUpdateResponse)
	assert.That(ok)
	out.Reset()
	_, err = kc.Exec(&out)
	assert.NoError(err)
	assert.Equal(didKey+"\n"+badKey+"\n", out.String())

	out.Reset()
	dc := DeviceCmd{Cmd: c, AuthKey: authKey, Token: "tok", Platform: "android"}
	assert.NoError(dc.Validate())
	r, err = dc.Exec(&out)
	assert.NoError(err)
	assert.Equal("android tok\n", out.String())
	assert.Equal(Device{Token: "tok", Platform: "android"}, r.(Device))

	dc = DeviceCmd{Cmd: c, AuthKey: authKey, Clear: true}
	assert.NoError(dc.Validate())
	_, err = dc.Exec(nil)
	assert.NoError(err)

	dc = DeviceCmd{Cmd: c, AuthKey: authKey}
	_, err = dc.Exec(nil)
	assert.Error(err)
}

func TestDeviceCmd_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cmd     DeviceCmd
		wantErr bool
	}{
		{"get", DeviceCmd{AuthKey: authKey}, false},
		{"set", DeviceCmd{AuthKey: authKey, Token: "t", Platform: "ios"}, false},
		{"clear", DeviceCmd{AuthKey: authKey, Clear: true}, false},
		{"no auth key", DeviceCmd{}, true},
		{"token only", DeviceCmd{AuthKey: authKey, Token: "t"}, true},
		{"bad platform", DeviceCmd{AuthKey: authKey, Token: "t", Platform: "windows"}, true},
		{"clear and set", DeviceCmd{AuthKey: authKey, Token: "t", Platform: "ios", Clear: true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.PushTester(t)
			defer assert.PopTester()

			tt.cmd.Cmd = newCmd(t)
			err := tt.cmd.Validate()
			if tt.wantErr {
				assert.Error(err)
			} else {
				assert.NoError(err)
			}
		})
	}
}

func TestBackupCmd(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()
	c := newCmd(t)
	handle(t, c, cm.NewMediateRequest())

	bc := BackupCmd{Cmd: c, BackupPath: t.TempDir()}
	assert.NoError(bc.Validate())
	r, err := bc.Exec(nil)
	assert.NoError(err)
	name := string(r.(BackupName))
	assert.Equal(bc.BackupPath, filepath.Dir(name))
	_, err = os.Stat(name)
	assert.NoError(err)

	bc.BackupTime = "03:30"
	assert.NoError(bc.Validate())
	cron := gocron.NewScheduler(time.UTC)
	assert.NoError(bc.Schedule(cron))
	assert.Equal(1, cron.Len())

	bc.BackupTime = "25:00"
	assert.Error(bc.Validate())
	bc.BackupPath = ""
	assert.Error(bc.Validate())
}

func TestBackupCmd_ClosesOnError(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()
	c := newCmd(t)

	bc := BackupCmd{Cmd: c, BackupPath: filepath.Join(t.TempDir(), "missing")}
	_, err := bc.Backup()
	assert.Error(err)

	// the bolt file lock is free again
	s, err := mgddb.New(api.Config{FilePath: c.StoragePath, FileName: c.StorageName})
	assert.NoError(err)
	assert.NoError(s.Open())
	assert.NoError(s.Close())
}

func TestNotifyCmd_Validate(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	nc := NotifyCmd{Cmd: newCmd(t), AuthKey: authKey, Topic: "fi.findy.test",
		CertFile: filepath.Join(t.TempDir(), "missing.p12")}
	assert.Error(nc.Validate())

	nc.CertFile = filepath.Join(t.TempDir(), "cert.p12")
	assert.NoError(os.WriteFile(nc.CertFile, []byte("not a cert"), 0o600))
	assert.NoError(nc.Validate())

	// the file isn't a valid P12
	_, err := nc.Exec(nil)
	assert.Error(err)
}
