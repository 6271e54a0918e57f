package cdrom

import "fmt"

// syncPattern opens every data sector.
var syncPattern = [SyncSize]byte{0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x00}

// Sector is a raw 2352-byte CD-ROM sector buffer.
//
// Layout (Mode 1):           sync(12) header(4) data(2048) edc(4) zero(8) eccP(172) eccQ(104)
// Layout (Mode 2 Form 1):    sync(12) header(4) subheader(8) data(2048) edc(4) eccP(172) eccQ(104)
// Layout (Mode 2 Form 2):    sync(12) header(4) subheader(8) data(2324) edc(4)
//
// All region accessors return sub-slices of the buffer, so writes through
// them modify the sector in place.
type Sector [SectorSize]byte

// Reset clears the sector, writes the sync pattern and sets the mode byte.
// The address bytes are left zeroed.
func (s *Sector) Reset(mode Mode) {
	clear(s[:])
	copy(s.Sync(), syncPattern[:])
	s[offModeByte] = mode.ModeByte()
}

// Sync returns the 12-byte sync pattern region.
func (s *Sector) Sync() []byte { return s[0:SyncSize] }

// Header returns the 4-byte header: 3 address bytes followed by the mode byte.
func (s *Sector) Header() []byte { return s[offHeader : offHeader+HeaderSize] }

// Address returns the 3 BCD MSF address bytes.
func (s *Sector) Address() []byte { return s[offHeader : offHeader+AddressSize] }

// ModeByte returns the raw mode byte of the header.
func (s *Sector) ModeByte() byte { return s[offModeByte] }

// Subheader returns both copies of the Mode 2 XA subheader (8 bytes).
func (s *Sector) Subheader() []byte { return s[offSubheader : offSubheader+2*SubheaderSize] }

// Mode1Data returns the 2048-byte user data region of a Mode 1 sector.
func (s *Sector) Mode1Data() []byte { return s[offMode1Data : offMode1Data+Mode1DataSize] }

// Form1Data returns the 2048-byte user data region of a Mode 2 Form 1 sector.
func (s *Sector) Form1Data() []byte { return s[offForm1Data : offForm1Data+Form1DataSize] }

// Form2Data returns the 2324-byte user data region of a Mode 2 Form 2 sector.
func (s *Sector) Form2Data() []byte { return s[offForm1Data : offForm1Data+Form2DataSize] }

// Reserved returns the 8 zero bytes between EDC and ECC of a Mode 1 sector.
func (s *Sector) Reserved() []byte { return s[offReserved:offECCP] }

// ECCP returns the 172 ECC P parity bytes.
func (s *Sector) ECCP() []byte { return s[offECCP : offECCP+ECCPSize] }

// ECCQ returns the 104 ECC Q parity bytes.
func (s *Sector) ECCQ() []byte { return s[offECCQ : offECCQ+ECCQSize] }

// EDC returns the 4-byte EDC field for the given mode.
func (s *Sector) EDC(mode Mode) []byte {
	switch mode {
	case Mode1:
		return s[offMode1EDC : offMode1EDC+EDCSize]
	case Mode2Form1:
		return s[offForm1EDC : offForm1EDC+EDCSize]
	case Mode2Form2:
		return s[offForm2EDC : offForm2EDC+EDCSize]
	}
	panic(fmt.Sprintf("cdrom: no EDC field for %v", mode))
}

// edcCoverage returns the bytes protected by the EDC field of the given mode.
func (s *Sector) edcCoverage(mode Mode) []byte {
	switch mode {
	case Mode1:
		return s[0:offMode1EDC]
	case Mode2Form1:
		return s[offSubheader:offForm1EDC]
	case Mode2Form2:
		return s[offSubheader:offForm2EDC]
	}
	panic(fmt.Sprintf("cdrom: no EDC coverage for %v", mode))
}

// Payload returns the contiguous region an ECM stream stores for a Mode 2
// sector: the second subheader copy followed by the user data. Mode 1
// payloads are split around the mode byte, use Address and Mode1Data.
func (s *Sector) Payload(mode Mode) []byte {
	switch mode {
	case Mode2Form1, Mode2Form2:
		return s[offSubheader2 : offSubheader2+mode.PayloadSize()]
	}
	panic(fmt.Sprintf("cdrom: no contiguous payload for %v", mode))
}

// MirrorSubheader copies the second subheader copy over the first one.
func (s *Sector) MirrorSubheader() {
	copy(s[offSubheader:offSubheader2], s[offSubheader2:offSubheader2+SubheaderSize])
}

// Generate recomputes the EDC and, where the mode carries them, the ECC P/Q
// bytes of the sector. Sync, header and user data must already be in place.
func (s *Sector) Generate(mode Mode) {
	switch mode {
	case Mode1:
		PutEDC(s.EDC(mode), EDCChecksum(s.edcCoverage(mode)))
		clear(s.Reserved())
		s.generateECC(false)
	case Mode2Form1:
		PutEDC(s.EDC(mode), EDCChecksum(s.edcCoverage(mode)))
		s.generateECC(true)
	case Mode2Form2:
		PutEDC(s.EDC(mode), EDCChecksum(s.edcCoverage(mode)))
	default:
		panic(fmt.Sprintf("cdrom: cannot generate %v sector", mode))
	}
}

// Output returns the bytes of the sector that a decoder emits for mode:
// the whole sector for Mode 1, everything after the header for Mode 2.
func (s *Sector) Output(mode Mode) []byte {
	switch mode {
	case Mode1:
		return s[:]
	case Mode2Form1, Mode2Form2:
		return s[offSubheader:]
	}
	panic(fmt.Sprintf("cdrom: no output layout for %v", mode))
}
