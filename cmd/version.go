package cmd

import (
	"fmt"

	"github.com/findy-network/findy-mediator/agent/utils"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
)

var versionDoc = ``

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Prints the version and build information of the mediator",
	Long:  versionDoc,
	RunE: func(_ *cobra.Command, _ []string) (err error) {
		defer err2.Handle(&err)

		info := utils.Version
		if utils.Settings.VersionInfo() != "" {
			info += " " + utils.Settings.VersionInfo()
		}
		try.To1(fmt.Println(info))
		return nil
	},
}

func init() {
	defer err2.Catch(err2.Err(func(err error) {
		fmt.Println(err)
	}))

	rootCmd.AddCommand(versionCmd)
}
