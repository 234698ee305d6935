package cmd

import (
	"log"

	"github.com/findy-network/findy-mediator/cmds/mediator"
	"github.com/lainio/err2"
	"github.com/spf13/cobra"
)

var notifyEnvs = map[string]string{
	"auth-key":   "AUTH_KEY",
	"cert-file":  "CERT_FILE",
	"cert-pwd":   "CERT_PWD",
	"topic":      "TOPIC",
	"production": "PRODUCTION",
}

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Sends a push notification to the iOS device of the account",
	Long: `
Sends a background push notification to the iOS device of the account
through APNS.

Example
	findy-mediator notify \
		--auth-key 6ri8Tc8M9bX8A4jCvt4eWGJ8ZHj2BBWWp6v1HJ6VGGeM \
		--cert-file apns.p12 \
		--topic fi.findy.mediator.edge
	`,
	PreRunE: func(_ *cobra.Command, _ []string) (err error) {
		return BindEnvs(notifyEnvs, "NOTIFY")
	},
	RunE: func(_ *cobra.Command, _ []string) (err error) {
		mediatorNotifyCmd.Cmd = storageCmd
		return exec(mediatorNotifyCmd)
	},
}

var mediatorNotifyCmd = mediator.NotifyCmd{}

func init() {
	defer err2.Catch(err2.Err(func(err error) {
		log.Println(err)
	}))

	flags := notifyCmd.Flags()
	flags.StringVar(&mediatorNotifyCmd.AuthKey, "auth-key", "", flagInfo("auth key of the account", notifyCmd.Name(), notifyEnvs["auth-key"]))
	flags.StringVar(&mediatorNotifyCmd.CertFile, "cert-file", "", flagInfo("APNS certificate file in P12", notifyCmd.Name(), notifyEnvs["cert-file"]))
	flags.StringVar(&mediatorNotifyCmd.CertPassword, "cert-pwd", "", flagInfo("password of the P12 file", notifyCmd.Name(), notifyEnvs["cert-pwd"]))
	flags.StringVar(&mediatorNotifyCmd.Topic, "topic", "", flagInfo("APNS topic, the bundle ID of the app", notifyCmd.Name(), notifyEnvs["topic"]))
	flags.BoolVar(&mediatorNotifyCmd.Production, "production", false, flagInfo("use the production APNS", notifyCmd.Name(), notifyEnvs["production"]))

	rootCmd.AddCommand(notifyCmd)
}
