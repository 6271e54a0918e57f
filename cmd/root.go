// Package cmd provides command-line interface functionality for ECMTools.
// ECMTools restores raw CD-ROM images from ECM (Error Code Modeler) files
// and verifies the EDC/ECC of the restored sectors.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/hansbonini/ecmtools/pkg/common"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// appConfig holds the settings loaded before any subcommand runs.
var appConfig common.Config

// logCloser releases the rotating log file, if one was configured.
var logCloser io.Closer

// rootCmd represents the base command when called without any subcommands.
// It provides the main entry point for the ECMTools application.
var rootCmd = &cobra.Command{
	Use:   "ecmtools",
	Short: "Decoder for Error Code Modeler (ECM) CD images",
	Long: `ECMTools - restores raw CD-ROM sector images from ECM files.

ECM files store only the bytes of each sector that cannot be recomputed.
Decoding regenerates the sync patterns, headers, EDC checksums and ECC
parity and checks the result against the checksum stored in the file.

Currently supports:
  - Unpacking .ecm files (also .ecm.gz, .ecm.zst, .ecm.xz and .ecm.bz2)
  - Inspecting the chunk layout of an ECM stream as YAML
  - Checking the EDC/ECC of every sector of a raw .bin image

Examples:
  ecmtools unecm game.bin.ecm
  ecmtools unecm -p game.bin.ecm.xz restored.bin
  ecmtools inspect game.bin.ecm report.yaml
  ecmtools check restored.bin

Settings can be given defaults in $HOME/.ecmtools.yaml or the file passed
with --config.

Use 'ecmtools [command] --help' for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := cmd.Flags().GetString("config")
		if err != nil {
			return fmt.Errorf("error getting config flag: %w", err)
		}
		explicit := configPath != ""
		if !explicit {
			configPath = common.DefaultConfigPath()
		}
		if configPath != "" {
			if appConfig, err = common.LoadConfig(configPath, explicit); err != nil {
				return err
			}
		}

		verbose, err := boolSetting(cmd.Flags(), "verbose", appConfig.Verbose)
		if err != nil {
			return err
		}
		common.SetVerboseMode(verbose)

		logCloser, err = common.SetupLogging(appConfig)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logCloser != nil {
			return logCloser.Close()
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main() and serves as the entry point for command execution.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		common.LogError("%v", err)
		os.Exit(1)
	}
}

// boolSetting returns the value of a boolean flag when it was given on the
// command line, and fallback from the configuration file otherwise.
func boolSetting(flags *pflag.FlagSet, name string, fallback bool) (bool, error) {
	if !flags.Changed(name) {
		return fallback, nil
	}
	value, err := flags.GetBool(name)
	if err != nil {
		return false, fmt.Errorf("error getting %s flag: %w", name, err)
	}
	return value, nil
}

// init initializes the root command with flags and configuration settings.
func init() {
	rootCmd.PersistentFlags().String("config", "", "YAML configuration file (default $HOME/.ecmtools.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output (show debug messages)")
}
