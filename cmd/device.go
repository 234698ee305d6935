package cmd

import (
	"log"

	"github.com/findy-network/findy-mediator/cmds/mediator"
	"github.com/lainio/err2"
	"github.com/spf13/cobra"
)

var deviceEnvs = map[string]string{
	"auth-key": "AUTH_KEY",
	"token":    "TOKEN",
	"platform": "PLATFORM",
	"clear":    "CLEAR",
}

var deviceCmd = &cobra.Command{
	Use:   "device",
	Short: "Shows or sets the device info of the account",
	Long: `
Shows or sets the device info of the account. Token and platform are given
together, and --clear removes the device info.

Example
	findy-mediator device \
		--auth-key 6ri8Tc8M9bX8A4jCvt4eWGJ8ZHj2BBWWp6v1HJ6VGGeM \
		--token 740f4707bebcf74f9b7c25d48e3358945f6aa01da5ddb387462c7eaf61bb78ad \
		--platform ios
	`,
	PreRunE: func(_ *cobra.Command, _ []string) (err error) {
		return BindEnvs(deviceEnvs, "DEVICE")
	},
	RunE: func(_ *cobra.Command, _ []string) (err error) {
		mediatorDeviceCmd.Cmd = storageCmd
		return exec(mediatorDeviceCmd)
	},
}

var mediatorDeviceCmd = mediator.DeviceCmd{}

func init() {
	defer err2.Catch(err2.Err(func(err error) {
		log.Println(err)
	}))

	flags := deviceCmd.Flags()
	flags.StringVar(&mediatorDeviceCmd.AuthKey, "auth-key", "", flagInfo("auth key of the account", deviceCmd.Name(), deviceEnvs["auth-key"]))
	flags.StringVar(&mediatorDeviceCmd.Token, "token", "", flagInfo("device token", deviceCmd.Name(), deviceEnvs["token"]))
	flags.StringVar(&mediatorDeviceCmd.Platform, "platform", "", flagInfo("device platform: android or ios", deviceCmd.Name(), deviceEnvs["platform"]))
	flags.BoolVar(&mediatorDeviceCmd.Clear, "clear", false, flagInfo("remove the device info", deviceCmd.Name(), deviceEnvs["clear"]))

	rootCmd.AddCommand(deviceCmd)
}
