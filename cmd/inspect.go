package cmd

import (
	"fmt"

	"github.com/hansbonini/ecmtools/pkg"
	"github.com/spf13/cobra"
)

// inspectCmd reports the chunk layout of an ECM file.
var inspectCmd = &cobra.Command{
	Use:   "inspect [input_file.ecm] [report.yaml]",
	Short: "Describe the chunks of an ECM file as YAML",
	Long: `Decode an ECM file without writing the image and report its structure.

The report lists the number of literal bytes and of Mode 1, Mode 2 Form 1
and Mode 2 Form 2 sectors, how many bytes decoding regenerates and whether
the stored checksum matches. With --chunks every chunk is listed with its
offset in the stream. The report goes to stdout unless a file is given.

Examples:
  ecmtools inspect game.bin.ecm
  ecmtools inspect --chunks game.bin.ecm.xz report.yaml`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile := args[0]
		reportFile := ""
		if len(args) > 1 {
			reportFile = args[1]
		}

		listChunks, err := cmd.Flags().GetBool("chunks")
		if err != nil {
			return fmt.Errorf("error getting chunks flag: %w", err)
		}

		processor := pkg.NewECMProcessor()
		if _, err := processor.Inspect(inputFile, reportFile, listChunks); err != nil {
			return fmt.Errorf("failed to inspect ECM file: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().BoolP("chunks", "c", false, "List every chunk of the stream")
}
