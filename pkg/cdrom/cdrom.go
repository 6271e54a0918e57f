// Package cdrom provides CD-ROM sector geometry and the EDC/ECC engines used to
// regenerate the redundant parts of raw 2352-byte sectors.
package cdrom

import "fmt"

// Sector size constants for CD-ROM images
const (
	SectorSize      = 2352 // Full raw sector size
	SyncSize        = 12   // Sync pattern size
	HeaderSize      = 4    // Header size (3 address bytes + 1 mode byte)
	AddressSize     = 3    // MSF address bytes
	SubheaderSize   = 4    // One copy of the Mode 2 XA subheader
	EDCSize         = 4    // Error Detection Code
	Mode1DataSize   = 2048 // Data portion of Mode 1 sector
	Form1DataSize   = 2048 // Data portion of Mode 2 Form 1 sector
	Form2DataSize   = 2324 // Data portion of Mode 2 Form 2 sector
	Mode2PayloadLen = 2336 // Everything after the header of a Mode 2 sector
	ECCPSize        = 172  // ECC P parity bytes
	ECCQSize        = 104  // ECC Q parity bytes
)

// Fixed byte offsets inside a raw sector
const (
	offHeader     = 0x00C
	offModeByte   = 0x00F
	offSubheader  = 0x010
	offSubheader2 = 0x014
	offMode1Data  = 0x010
	offForm1Data  = 0x018
	offMode1EDC   = 0x810
	offReserved   = 0x814
	offForm1EDC   = 0x818
	offECCP       = 0x81C
	offECCQ       = 0x8C8
	offForm2EDC   = 0x92C
)

// Mode identifies the layout of a raw CD-ROM sector.
type Mode uint8

const (
	ModeUnknown Mode = iota
	Mode1
	Mode2Form1
	Mode2Form2
)

// String returns a human readable name for the sector mode.
func (m Mode) String() string {
	switch m {
	case Mode1:
		return "mode1"
	case Mode2Form1:
		return "mode2form1"
	case Mode2Form2:
		return "mode2form2"
	case ModeUnknown:
		return "unknown"
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

// ModeByte returns the value stored at header offset 3 for sectors of this mode.
func (m Mode) ModeByte() byte {
	switch m {
	case Mode1:
		return 0x01
	case Mode2Form1, Mode2Form2:
		return 0x02
	}
	return 0x00
}

// PayloadSize returns the number of bytes of a sector of this mode that an
// ECM stream stores verbatim.
func (m Mode) PayloadSize() int {
	switch m {
	case Mode1:
		return AddressSize + Mode1DataSize
	case Mode2Form1:
		return SubheaderSize + Form1DataSize
	case Mode2Form2:
		return SubheaderSize + Form2DataSize
	}
	return 0
}

// OutputSize returns the number of reconstructed bytes emitted for this mode.
// Mode 2 sectors are emitted without their sync pattern and header.
func (m Mode) OutputSize() int {
	switch m {
	case Mode1:
		return SectorSize
	case Mode2Form1, Mode2Form2:
		return Mode2PayloadLen
	}
	return 0
}
