// Package pkg provides file-level ECM operations: restoring raw CD images
// from ECM files, inspecting ECM streams and verifying restored images.
package pkg

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/hansbonini/ecmtools/pkg/cdrom"
	"github.com/hansbonini/ecmtools/pkg/common"
	"github.com/hansbonini/ecmtools/pkg/ecm"
	"gopkg.in/yaml.v3"
)

// ECMProcessor handles ECM file operations (unpack/inspect/check)
type ECMProcessor struct {
	Force    bool      // overwrite an existing output file
	Progress bool      // print a percentage while decoding
	Status   io.Writer // destination of the progress display
	Stdout   io.Writer // destination of reports without an output file
}

// NewECMProcessor creates a new ECM processor instance
func NewECMProcessor() *ECMProcessor {
	return &ECMProcessor{
		Status: os.Stderr,
		Stdout: os.Stdout,
	}
}

var _ Processor = (*ECMProcessor)(nil)

// Unpack restores the raw image stored in an ECM file. outputFile may be
// empty, in which case it is derived from inputFile. On a decode failure the
// partially written image is left in place.
func (p *ECMProcessor) Unpack(inputFile, outputFile string) (*UnpackResult, error) {
	if err := ValidateInputName(inputFile); err != nil {
		return nil, err
	}
	if outputFile == "" {
		derived, err := DeriveOutputName(inputFile)
		if err != nil {
			return nil, err
		}
		outputFile = derived
	}

	in, err := OpenInput(inputFile)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	out, err := p.createOutput(outputFile)
	if err != nil {
		return nil, err
	}

	common.LogInfo(common.InfoDecoding, inputFile, outputFile)

	var opts []ecm.Option
	if p.Progress {
		meter := newProgressMeter(p.Status, in.Size)
		opts = append(opts, ecm.WithProgress(func(ecm.Progress) {
			meter.set(in.Consumed())
		}))
	}

	written, decodeErr := ecm.NewDecoder(opts...).Decode(in, out)
	closeErr := out.Close()

	result := &UnpackResult{
		InputFile:   inputFile,
		OutputFile:  outputFile,
		Compression: in.Compression,
		InputBytes:  in.Consumed(),
		OutputBytes: written,
	}

	if decodeErr == nil || errors.Is(decodeErr, ecm.ErrChecksumMismatch) {
		common.LogInfo(common.InfoDecoded, common.FormatSize(result.InputBytes), common.FormatSize(written))
	}
	if decodeErr != nil {
		common.LogWarn(common.WarnCorruptECM)
		common.LogWarn(common.WarnPartialOutput, outputFile)
		return result, common.FormatError(common.ErrFailedToDecodeECM, decodeErr)
	}
	if closeErr != nil {
		return result, common.FormatError(common.ErrFailedToCloseOutputFile, closeErr)
	}

	common.LogInfo(common.InfoFileOK)
	return result, nil
}

// createOutput opens the image file for writing, refusing to replace an
// existing file unless Force is set.
func (p *ECMProcessor) createOutput(outputFile string) (*os.File, error) {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !p.Force {
		flags |= os.O_EXCL
	} else if _, err := os.Stat(outputFile); err == nil {
		common.LogDebug(common.DebugOutputReplaced, outputFile)
	}

	out, err := os.OpenFile(outputFile, flags, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return nil, common.FormatErrorString(common.ErrOutputExists, outputFile)
	}
	if err != nil {
		return nil, common.FormatError(common.ErrFailedToCreateOutputFile, err)
	}
	return out, nil
}

// Inspect decodes an ECM file without writing an image and writes a YAML
// report to reportFile, or to Stdout when reportFile is empty. The report is
// written even when the stream is corrupt; the decode error is returned
// after it.
func (p *ECMProcessor) Inspect(inputFile, reportFile string, listChunks bool) (*ecm.Report, error) {
	in, err := OpenInput(inputFile)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	report, decodeErr := ecm.Inspect(in, listChunks)

	if err := p.writeReport(report, reportFile); err != nil {
		return report, err
	}
	if reportFile != "" {
		common.LogInfo(common.InfoReportWritten, reportFile)
	}

	if decodeErr != nil {
		return report, common.FormatError(common.ErrFailedToDecodeECM, decodeErr)
	}
	return report, nil
}

func (p *ECMProcessor) writeReport(report *ecm.Report, reportFile string) (err error) {
	w := p.Stdout
	if reportFile != "" {
		file, err := os.Create(reportFile)
		if err != nil {
			return common.FormatError(common.ErrFailedToCreateOutputFile, err)
		}
		defer func() {
			if cerr := file.Close(); cerr != nil && err == nil {
				err = common.FormatError(common.ErrFailedToWriteReport, cerr)
			}
		}()
		w = file
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return common.FormatError(common.ErrFailedToWriteReport, err)
	}
	if err := enc.Close(); err != nil {
		return common.FormatError(common.ErrFailedToWriteReport, err)
	}
	return nil
}

// Check verifies the EDC and ECC of every data sector of a raw image and
// logs each sector that does not match.
func (p *ECMProcessor) Check(imageFile string) (*CheckResult, error) {
	reader, err := cdrom.NewImageReader(imageFile)
	if err != nil {
		return nil, common.FormatError(common.ErrFailedToOpenInput, err)
	}
	defer reader.Close()

	var progress func(int64)
	if p.Progress {
		meter := newProgressMeter(p.Status, reader.TotalSectors()*cdrom.SectorSize)
		progress = func(lba int64) { meter.set((lba + 1) * cdrom.SectorSize) }
	}

	report, err := cdrom.VerifyImage(reader, progress)
	if err != nil {
		return nil, common.FormatError(common.ErrFailedToVerifyImage, err)
	}

	result := &CheckResult{
		Report:  report,
		Skipped: report.Other,
	}
	common.LogInfo(common.InfoImageSummary, report.TotalSectors, report.Mode1, report.Mode2Form1, report.Mode2Form2, report.Other)
	if report.TrailingBytes != 0 {
		common.LogWarn(common.WarnTrailingBytes, report.TrailingBytes)
	}

	for _, fault := range report.Faults {
		detail, err := describeFault(reader, fault)
		if err != nil {
			return result, common.FormatError(common.ErrFailedToVerifyImage, err)
		}
		result.Faults = append(result.Faults, detail)
		common.LogWarn(common.WarnSectorFault, fault.LBA, detail.MSF, fault.Mode, !fault.BadEDC, !fault.BadECC)
	}

	if report.OK() {
		common.LogInfo(common.InfoImageOK)
	} else {
		common.LogWarn(common.WarnImageFaults, len(report.Faults))
	}
	return result, nil
}

// describeFault resolves the MSF position of a fault and the address its
// header claims.
func describeFault(reader *cdrom.ImageReader, fault cdrom.SectorFault) (FaultDetail, error) {
	detail := FaultDetail{SectorFault: fault}

	lba, err := common.SafeInt64ToUint32(fault.LBA)
	if err != nil {
		return detail, err
	}
	detail.MSF = common.LBAToMSF(lba)

	sector, err := reader.SeekToSector(fault.LBA)
	if err != nil {
		return detail, fmt.Errorf("failed to re-read sector %d: %w", fault.LBA, err)
	}
	if headerLBA, ok := common.BCDAddressToLBA(sector.Address()); ok {
		detail.HeaderMSF = common.LBAToMSF(headerLBA)
	}
	return detail, nil
}
