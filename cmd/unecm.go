package cmd

import (
	"fmt"

	"github.com/hansbonini/ecmtools/pkg"
	"github.com/spf13/cobra"
)

// unecmCmd restores a raw image from an ECM file.
var unecmCmd = &cobra.Command{
	Use:     "unecm [input_file.ecm] [output_file]",
	Aliases: []string{"decode"},
	Short:   "Restore a raw CD image from an ECM file",
	Long: `Restore a raw CD image from an ECM file.

The input name must end in .ecm (any case), optionally followed by .gz,
.zst, .xz or .bz2; compressed inputs are detected from their contents and
decompressed on the fly. When no output file is given, the input name with
those extensions removed is used.

The checksum stored at the end of the ECM file is compared with the restored
data. On any error the partially restored image is left on disk.

Examples:
  ecmtools unecm game.bin.ecm
  ecmtools unecm -f game.bin.ecm.gz game.bin
  ecmtools unecm -p -v game.bin.ecm`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile := args[0]
		outputFile := ""
		if len(args) > 1 {
			outputFile = args[1]
		}

		force, err := boolSetting(cmd.Flags(), "force", appConfig.Force)
		if err != nil {
			return err
		}
		progress, err := boolSetting(cmd.Flags(), "progress", appConfig.Progress)
		if err != nil {
			return err
		}

		processor := pkg.NewECMProcessor()
		processor.Force = force
		processor.Progress = progress

		if _, err := processor.Unpack(inputFile, outputFile); err != nil {
			return fmt.Errorf("failed to unpack ECM file: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(unecmCmd)

	unecmCmd.Flags().BoolP("force", "f", false, "Overwrite the output file if it exists")
	unecmCmd.Flags().BoolP("progress", "p", false, "Show decoding progress on stderr")
}
