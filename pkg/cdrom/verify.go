package cdrom

import (
	"bytes"
	"errors"
	"io"
)

// XA subheader submode bit selecting Form 2.
const submodeForm2 = 0x20

// Classify reports the mode of a raw sector from its sync pattern, mode byte
// and XA submode. Sectors without a data sync pattern (audio) and unknown mode
// bytes are ModeUnknown.
func Classify(s *Sector) Mode {
	if !bytes.Equal(s.Sync(), syncPattern[:]) {
		return ModeUnknown
	}
	switch s.ModeByte() {
	case 0x01:
		return Mode1
	case 0x02:
		if s[offSubheader+2]&submodeForm2 != 0 {
			return Mode2Form2
		}
		return Mode2Form1
	}
	return ModeUnknown
}

// Verify regenerates the EDC and ECC of s as the given mode and compares them
// with the stored bytes. Modes without ECC always report eccOK. A Form 2 EDC
// field of all zeroes means no EDC was recorded and is accepted.
func (s *Sector) Verify(mode Mode) (edcOK, eccOK bool) {
	regenerated := *s
	regenerated.Generate(mode)

	edcOK = bytes.Equal(s.EDC(mode), regenerated.EDC(mode))
	if mode == Mode2Form2 && !edcOK {
		edcOK = bytes.Equal(s.EDC(mode), make([]byte, EDCSize))
	}

	eccOK = true
	if mode == Mode1 || mode == Mode2Form1 {
		eccOK = bytes.Equal(s.ECCP(), regenerated.ECCP()) && bytes.Equal(s.ECCQ(), regenerated.ECCQ())
	}
	return edcOK, eccOK
}

// SectorFault describes a data sector whose stored EDC or ECC does not match.
type SectorFault struct {
	LBA    int64
	Mode   Mode
	BadEDC bool
	BadECC bool
}

// ImageReport summarises a verification pass over a raw image.
type ImageReport struct {
	TotalSectors  int64
	Mode1         int64
	Mode2Form1    int64
	Mode2Form2    int64
	Other         int64
	TrailingBytes int64
	Faults        []SectorFault
}

// OK reports whether every data sector verified.
func (r *ImageReport) OK() bool { return len(r.Faults) == 0 }

// VerifyImage checks every sector of the image. progress, when not nil, is
// called after each sector with the LBA just processed.
func VerifyImage(r *ImageReader, progress func(lba int64)) (*ImageReport, error) {
	report := &ImageReport{
		TotalSectors:  r.TotalSectors(),
		TrailingBytes: r.TrailingBytes(),
	}

	for {
		sector, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return report, err
		}

		mode := Classify(sector)
		switch mode {
		case Mode1:
			report.Mode1++
		case Mode2Form1:
			report.Mode2Form1++
		case Mode2Form2:
			report.Mode2Form2++
		case ModeUnknown:
			report.Other++
		}

		if mode != ModeUnknown {
			edcOK, eccOK := sector.Verify(mode)
			if !edcOK || !eccOK {
				report.Faults = append(report.Faults, SectorFault{
					LBA:    r.CurrentSector(),
					Mode:   mode,
					BadEDC: !edcOK,
					BadECC: !eccOK,
				})
			}
		}

		if progress != nil {
			progress(r.CurrentSector())
		}
	}

	return report, nil
}
