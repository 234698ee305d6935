package mediator

import (
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/findy-network/findy-mediator/agent/utils"
	"github.com/findy-network/findy-mediator/cmds"
	"github.com/go-co-op/gocron"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

type BackupName string

func (b BackupName) JSON() ([]byte, error) {
	return json.Marshal(string(b))
}

// BackupCmd takes a hot backup of the bolt storage to the BackupPath. If the
// BackupTime is given, the backup is taken daily at that time and Exec
// blocks.
type BackupCmd struct {
	cmds.Cmd
	BackupPath string
	BackupTime string
}

func (c BackupCmd) Validate() error {
	if err := c.Cmd.Validate(); err != nil {
		return err
	}
	if c.BackupPath == "" {
		return errors.New("backup path cannot be empty")
	}
	if c.BackupTime != "" {
		if err := cmds.ValidateTime(c.BackupTime); err != nil {
			return err
		}
	}
	return nil
}

func (c BackupCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err, "backup cmd")

	utils.Settings.SetBackupPath(c.BackupPath)
	utils.Settings.SetBackupTime(c.BackupTime)

	if c.BackupTime == "" {
		name := try.To1(c.Backup())
		cmds.Fprintln(w, name)
		return BackupName(name), nil
	}

	cron := gocron.NewScheduler(time.Now().Location())
	try.To(c.Schedule(cron))
	cmds.Fprintln(w, "daily backup at", c.BackupTime)
	cron.StartBlocking()
	return nil, nil
}

// Backup takes one backup and returns the name of the backup file.
func (c BackupCmd) Backup() (name string, err error) {
	defer err2.Handle(&err)

	as := c.AgentStorage()
	defer func() {
		if closeErr := as.Close(); err == nil {
			err = closeErr
		}
	}()
	name = try.To1(as.Backup(c.BackupPath))
	glog.V(1).Infoln("storage backup:", name)
	return name, nil
}

// Schedule adds the daily backup job to the scheduler.
func (c BackupCmd) Schedule(cron *gocron.Scheduler) (err error) {
	defer err2.Handle(&err, "schedule backup")

	glog.V(1).Infoln("storage backup time:", c.BackupTime)
	try.To1(cron.Every(1).Day().At(c.BackupTime).Do(func() {
		if _, err := c.Backup(); err != nil {
			glog.Errorln("storage backup error:", err)
		}
	}))
	return nil
}
