package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/findy-network/findy-mediator/agent/utils"
	"github.com/findy-network/findy-mediator/cmds"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "FMED"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Version: utils.Version,
	Use:     "findy-mediator",
	Short:   "Findy mediator cli tool",
	Long: `
Findy mediator cli tool

Processes coordinate-mediation and push notification messages of the
mediator clients and manages the mediator storage.
	`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		utils.ParseLoggingArgs(rootFlags.logging)
		handleViperFlags(cmd)
		storageCmd.SetSettings()
	},
}

// Execute root
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// RootCmd returns a current root command which can be used for adding own
// commands in an own repo.
func RootCmd() *cobra.Command {
	return rootCmd
}

// DryRun returns a value of a dry run flag.
func DryRun() bool {
	return rootFlags.dryRun
}

// RootFlags are the common flags
type RootFlags struct {
	cfgFile string
	dryRun  bool
	logging string
}

var rootFlags = RootFlags{}

// storageCmd is the storage selection shared by all the mediator commands.
var storageCmd = cmds.Cmd{}

var rootEnvs = map[string]string{
	"config":       "CONFIG",
	"logging":      "LOGGING",
	"dry-run":      "DRY_RUN",
	"storage-type": "STORAGE_TYPE",
	"storage-path": "STORAGE_PATH",
	"storage-name": "STORAGE_NAME",
	"storage-key":  "STORAGE_KEY",
}

func init() {
	defer err2.Catch(err2.Err(func(err error) {
		log.Println(err)
	}))

	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rootFlags.cfgFile, "config", "", flagInfo("configuration file", "", rootEnvs["config"]))
	flags.StringVar(&rootFlags.logging, "logging", "-logtostderr=true -v=2", flagInfo("logging startup arguments", "", rootEnvs["logging"]))
	flags.BoolVarP(&rootFlags.dryRun, "dry-run", "n", false, flagInfo("perform a trial run with no changes made", "", rootEnvs["dry-run"]))

	flags.StringVar(&storageCmd.StorageType, "storage-type", "bolt", flagInfo("storage type: bolt, mgd or mem", "", rootEnvs["storage-type"]))
	flags.StringVar(&storageCmd.StoragePath, "storage-path", ".", flagInfo("storage directory", "", rootEnvs["storage-path"]))
	flags.StringVar(&storageCmd.StorageName, "storage-name", "findy-mediator", flagInfo("storage file name", "", rootEnvs["storage-name"]))
	flags.StringVar(&storageCmd.StorageKey, "storage-key", "", flagInfo("hex encoded AES-256 key of the storage", "", rootEnvs["storage-key"]))
	registerFlagCompletions()

	for flagKey := range rootEnvs {
		try.To(viper.BindPFlag(flagKey, flags.Lookup(flagKey)))
	}
	try.To(BindEnvs(rootEnvs, ""))
}

func initConfig() {
	viper.SetEnvPrefix(envPrefix)
	replacer := strings.NewReplacer("-", "_")
	viper.SetEnvKeyReplacer(replacer)
	readConfigFile()
	readBoundRootFlags()
}

func readBoundRootFlags() {
	rootFlags.logging = viper.GetString("logging")
	rootFlags.dryRun = viper.GetBool("dry-run")
	storageCmd.StorageType = viper.GetString("storage-type")
	storageCmd.StoragePath = viper.GetString("storage-path")
	storageCmd.StorageName = viper.GetString("storage-name")
	storageCmd.StorageKey = viper.GetString("storage-key")
}

func readConfigFile() {
	cfgEnv := os.Getenv(getEnvName("", "config"))
	if rootFlags.cfgFile != "" || cfgEnv != "" {
		printInfo := true
		if rootFlags.cfgFile == "" {
			rootFlags.cfgFile = cfgEnv
			printInfo = false
		}
		viper.SetConfigFile(rootFlags.cfgFile)
		// If a config file is found, read it in.
		if err := viper.ReadInConfig(); err == nil && printInfo {
			fmt.Println("Using config file:", viper.ConfigFileUsed())
		}
	}
}

// BindEnvs calls viper.BindEnv with envMap and cmdName which can be empty if
// flag is general.
func BindEnvs(envMap map[string]string, cmdName string) (err error) {
	defer err2.Handle(&err)
	for flagKey, envName := range envMap {
		finalEnvName := getEnvName(cmdName, envName)
		try.To(viper.BindEnv(flagKey, finalEnvName))
	}
	return nil
}

func flagInfo(info, cmdPrefix, envName string) string {
	return info + ", " + getEnvName(cmdPrefix, envName)
}

func getEnvName(cmdName, envName string) string {
	if cmdName == "" {
		return envPrefix + "_" + strings.ToUpper(envName)
	}
	return envPrefix + "_" + strings.ToUpper(cmdName) + "_" + envName
}

func handleViperFlags(cmd *cobra.Command) {
	setRequiredStringFlags(cmd)
	if cmd.HasParent() {
		handleViperFlags(cmd.Parent())
	}
}

func setRequiredStringFlags(cmd *cobra.Command) {
	defer err2.Catch(err2.Err(func(err error) {
		log.Println(err)
	}))

	try.To(viper.BindPFlags(cmd.LocalFlags()))
	if cmd.PreRunE != nil {
		try.To(cmd.PreRunE(cmd, nil))
	}
	cmd.LocalFlags().VisitAll(func(f *pflag.Flag) {
		if viper.GetString(f.Name) != "" {
			try.To(cmd.LocalFlags().Set(f.Name, viper.GetString(f.Name)))
		}
	})
}

// SubCmdNeeded prints the help and error messages because the cmd is abstract.
func SubCmdNeeded(cmd *cobra.Command) {
	fmt.Println("Subcommand needed!")
	_ = cmd.Help()
	os.Exit(1)
}

// exec validates and executes the command unless it's a dry run.
func exec(c cmds.Command) (err error) {
	defer err2.Handle(&err)

	try.To(c.Validate())
	if !rootFlags.dryRun {
		try.To1(c.Exec(os.Stdout))
	}
	return nil
}
