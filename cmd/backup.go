package cmd

import (
	"log"

	"github.com/findy-network/findy-mediator/cmds/mediator"
	"github.com/lainio/err2"
	"github.com/spf13/cobra"
)

var backupEnvs = map[string]string{
	"backup-path": "BACKUP_PATH",
	"backup-time": "BACKUP_TIME",
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Takes a backup of the mediator storage",
	Long: `
Takes a hot backup of the bolt storage. With --backup-time the backup is
taken daily at the given time and the command keeps running.

Example
	findy-mediator backup --backup-path /var/backups --backup-time 04:30
	`,
	PreRunE: func(_ *cobra.Command, _ []string) (err error) {
		return BindEnvs(backupEnvs, "BACKUP")
	},
	RunE: func(_ *cobra.Command, _ []string) (err error) {
		mediatorBackupCmd.Cmd = storageCmd
		return exec(mediatorBackupCmd)
	},
}

var mediatorBackupCmd = mediator.BackupCmd{}

func init() {
	defer err2.Catch(err2.Err(func(err error) {
		log.Println(err)
	}))

	flags := backupCmd.Flags()
	flags.StringVar(&mediatorBackupCmd.BackupPath, "backup-path", "", flagInfo("directory of the backups", backupCmd.Name(), backupEnvs["backup-path"]))
	flags.StringVar(&mediatorBackupCmd.BackupTime, "backup-time", "", flagInfo("daily backup time, HH:MM", backupCmd.Name(), backupEnvs["backup-time"]))

	rootCmd.AddCommand(backupCmd)
}
