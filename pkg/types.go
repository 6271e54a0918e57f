package pkg

import (
	"github.com/hansbonini/ecmtools/pkg/cdrom"
	"github.com/hansbonini/ecmtools/pkg/ecm"
)

// UnpackResult summarises a finished unpack.
type UnpackResult struct {
	InputFile   string
	OutputFile  string
	Compression Compression
	InputBytes  int64 // bytes read from the file on disk
	OutputBytes int64 // bytes of the reconstructed image
}

// CheckResult is the outcome of verifying a raw sector image.
type CheckResult struct {
	Report  *cdrom.ImageReport
	Faults  []FaultDetail
	Skipped int64 // sectors that carry no EDC/ECC (audio, unknown modes)
}

// FaultDetail adds address information to a failed sector.
type FaultDetail struct {
	cdrom.SectorFault
	MSF       string // position derived from the LBA
	HeaderMSF string // address recorded in the sector header, "" when not valid BCD
}

// ECMUnpacker restores raw images from ECM files
type ECMUnpacker interface {
	Unpack(inputFile, outputFile string) (*UnpackResult, error)
}

// ECMInspector reports the chunk structure of ECM files
type ECMInspector interface {
	Inspect(inputFile, reportFile string, listChunks bool) (*ecm.Report, error)
}

// ImageChecker verifies the EDC/ECC of raw sector images
type ImageChecker interface {
	Check(imageFile string) (*CheckResult, error)
}

// Processor combines every file-level operation of the CLI
type Processor interface {
	ECMUnpacker
	ECMInspector
	ImageChecker
}
