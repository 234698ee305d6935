package cmd

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/findy-network/findy-mediator/agent/utils"
	"github.com/findy-network/findy-mediator/cmds/mediator"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
)

var handleEnvs = map[string]string{
	"auth-key":              "AUTH_KEY",
	"host-addr":             "HOST_ADDR",
	"service-name":          "SERVICE_NAME",
	"routing-keys":          "ROUTING_KEYS",
	"signing-key":           "SIGNING_KEY",
	"did-doc":               "DID_DOC",
	"allow-re-registration": "ALLOW_RE_REGISTRATION",
	"timeout":               "TIMEOUT",
}

type handleFlags struct {
	hostAddr     string
	serviceName  string
	routingKeys  []string
	signingKey   string
	didDoc       string
	allowReRegis bool
	timeout      time.Duration
}

var handleSettings = handleFlags{}

var handleDoc = `
Processes one inbound message of a mediator client and prints the response.
The message is read from the file given as an argument or from stdin. The
auth key is the verified sender key of the message.

Example
	findy-mediator handle \
		--auth-key 6ri8Tc8M9bX8A4jCvt4eWGJ8ZHj2BBWWp6v1HJ6VGGeM \
		--host-addr http://localhost:8080 \
		--service-name mediator \
		keylist-query.json
`

var handleCmd = &cobra.Command{
	Use:   "handle [file]",
	Short: "Processes a mediator message",
	Long:  handleDoc,
	Args:  cobra.MaximumNArgs(1),
	PreRunE: func(_ *cobra.Command, _ []string) (err error) {
		return BindEnvs(handleEnvs, "HANDLE")
	},
	RunE: func(_ *cobra.Command, args []string) (err error) {
		defer err2.Handle(&err)

		var in io.Reader = os.Stdin
		if len(args) == 1 {
			f := try.To1(os.Open(args[0]))
			defer f.Close()
			in = f
		}
		handleSettings.apply()
		mediatorHandleCmd.Cmd = storageCmd
		mediatorHandleCmd.Input = in
		return exec(mediatorHandleCmd)
	},
}

var mediatorHandleCmd = mediator.HandleCmd{}

func (f handleFlags) apply() {
	utils.Settings.SetHostAddr(f.hostAddr)
	utils.Settings.SetServiceName(f.serviceName)
	utils.Settings.SetRoutingKeys(f.routingKeys)
	utils.Settings.SetSigningKey(f.signingKey)
	utils.Settings.SetDIDDocFile(f.didDoc)
	utils.Settings.SetAllowReRegistration(f.allowReRegis)
	utils.Settings.SetTimeout(f.timeout)
}

func init() {
	defer err2.Catch(err2.Err(func(err error) {
		log.Println(err)
	}))

	flags := handleCmd.Flags()
	flags.StringVar(&mediatorHandleCmd.AuthKey, "auth-key", "", flagInfo("verified sender key of the message", handleCmd.Name(), handleEnvs["auth-key"]))
	flags.StringVar(&handleSettings.hostAddr, "host-addr", "http://localhost:8080", flagInfo("mediator address seen from the internet", handleCmd.Name(), handleEnvs["host-addr"]))
	flags.StringVar(&handleSettings.serviceName, "service-name", "", flagInfo("path of the service endpoint", handleCmd.Name(), handleEnvs["service-name"]))
	flags.StringSliceVar(&handleSettings.routingKeys, "routing-keys", nil, flagInfo("routing keys of the mediation grant", handleCmd.Name(), handleEnvs["routing-keys"]))
	flags.StringVar(&handleSettings.signingKey, "signing-key", "", flagInfo("base58 signing key of the mediator", handleCmd.Name(), handleEnvs["signing-key"]))
	flags.StringVar(&handleSettings.didDoc, "did-doc", "", flagInfo("DID document file of the mediator", handleCmd.Name(), handleEnvs["did-doc"]))
	flags.BoolVar(&handleSettings.allowReRegis, "allow-re-registration", false, flagInfo("grant mediation for existing accounts", handleCmd.Name(), handleEnvs["allow-re-registration"]))
	flags.DurationVar(&handleSettings.timeout, "timeout", utils.HTTPReqTimeout, flagInfo("processing timeout", handleCmd.Name(), handleEnvs["timeout"]))

	rootCmd.AddCommand(handleCmd)
}
