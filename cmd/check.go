// Package cmd provides command-line interface for CD image processing.
// This file contains the command verifying the sectors of raw CD images.
package cmd

import (
	"fmt"

	"github.com/hansbonini/ecmtools/pkg"
	"github.com/spf13/cobra"
)

// checkCmd verifies the EDC and ECC of every sector of a raw image.
// It classifies sectors by mode and lists those whose stored error
// detection or correction bytes do not match their contents.
var checkCmd = &cobra.Command{
	Use:   "check [image_file]",
	Short: "Verify the EDC/ECC of a raw CD image",
	Long: `Verify the EDC/ECC of a raw CD image (.bin, 2352-byte sectors).

Each sector is classified as Mode 1, Mode 2 Form 1, Mode 2 Form 2 or other
(audio and unknown modes). For every data sector the EDC and, where the mode
has it, the ECC P/Q parity are recomputed and compared with the stored bytes.
Failed sectors are listed with:
  - LBA (Logical Block Address)
  - MSF (Minutes:Seconds:Frames)
  - Sector mode and which check failed

Example:
  ecmtools check restored.bin
  ecmtools check -p restored.bin`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		imageFile := args[0]

		progress, err := boolSetting(cmd.Flags(), "progress", appConfig.Progress)
		if err != nil {
			return err
		}

		processor := pkg.NewECMProcessor()
		processor.Progress = progress

		result, err := processor.Check(imageFile)
		if err != nil {
			return fmt.Errorf("failed to check image: %w", err)
		}
		if !result.Report.OK() {
			return fmt.Errorf("%d of %d sectors failed verification", len(result.Faults), result.Report.TotalSectors)
		}
		return nil
	},
}

// init initializes the check command with its flags.
func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolP("progress", "p", false, "Show verification progress on stderr")
}
