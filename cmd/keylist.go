package cmd

import (
	"log"

	"github.com/findy-network/findy-mediator/cmds/mediator"
	"github.com/lainio/err2"
	"github.com/spf13/cobra"
)

var keylistEnvs = map[string]string{
	"auth-key": "AUTH_KEY",
	"did-key":  "DID_KEY",
}

var keylistCmd = &cobra.Command{
	Use:   "keylist",
	Short: "Prints the recipient keys of the account",
	Long: `
Prints the recipient keys of the account

Example
	findy-mediator keylist --did-key \
		--auth-key 6ri8Tc8M9bX8A4jCvt4eWGJ8ZHj2BBWWp6v1HJ6VGGeM
	`,
	PreRunE: func(_ *cobra.Command, _ []string) (err error) {
		return BindEnvs(keylistEnvs, "KEYLIST")
	},
	RunE: func(_ *cobra.Command, _ []string) (err error) {
		mediatorKeylistCmd.Cmd = storageCmd
		return exec(mediatorKeylistCmd)
	},
}

var mediatorKeylistCmd = mediator.KeylistCmd{}

func init() {
	defer err2.Catch(err2.Err(func(err error) {
		log.Println(err)
	}))

	flags := keylistCmd.Flags()
	flags.StringVar(&mediatorKeylistCmd.AuthKey, "auth-key", "", flagInfo("auth key of the account", keylistCmd.Name(), keylistEnvs["auth-key"]))
	flags.BoolVar(&mediatorKeylistCmd.DIDKey, "did-key", false, flagInfo("print keys in did:key form", keylistCmd.Name(), keylistEnvs["did-key"]))

	rootCmd.AddCommand(keylistCmd)
}
