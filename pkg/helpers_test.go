package pkg

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/hansbonini/ecmtools/pkg/cdrom"
	"github.com/hansbonini/ecmtools/pkg/ecm"
)

// testLiteral opens the test stream as a literal chunk.
const testLiteral = "ECMTOOLS header\n"

// buildTestECM returns a small ECM stream holding a literal and three Mode 1
// sectors, together with the image it decodes to.
func buildTestECM(t *testing.T) (stream, image []byte) {
	t.Helper()

	var out bytes.Buffer
	buf := []byte(ecm.Magic)

	buf = append(buf, byte((len(testLiteral)-1)<<2))
	buf = append(buf, testLiteral...)
	out.WriteString(testLiteral)

	buf = append(buf, byte(2<<2 | 1))
	for i := 0; i < 3; i++ {
		var s cdrom.Sector
		s.Reset(cdrom.Mode1)
		copy(s.Address(), []byte{0x00, 0x02, byte(0x16 + i)})
		data := s.Mode1Data()
		for j := range data {
			data[j] = byte(i*31 + j)
		}
		buf = append(buf, s.Address()...)
		buf = append(buf, data...)

		s.Generate(cdrom.Mode1)
		out.Write(s.Output(cdrom.Mode1))
	}

	buf = append(buf, 0xFC, 0xFF, 0xFF, 0xFF, 0x3F)
	trailer := make([]byte, cdrom.EDCSize)
	cdrom.PutEDC(trailer, cdrom.EDCChecksum(out.Bytes()))
	buf = append(buf, trailer...)

	return buf, out.Bytes()
}

// writeTestFile stores data under dir and returns its path.
func writeTestFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// buildTestImage returns a raw image of a Mode 1 sector, a Mode 2 Form 1
// sector, a Mode 2 Form 2 sector and an audio sector, addressed from LBA 16.
func buildTestImage() []byte {
	var img bytes.Buffer

	modes := []cdrom.Mode{cdrom.Mode1, cdrom.Mode2Form1, cdrom.Mode2Form2}
	for i, mode := range modes {
		var s cdrom.Sector
		s.Reset(mode)
		copy(s.Address(), []byte{0x00, 0x02, byte(0x16 + i)})
		switch mode {
		case cdrom.Mode1:
			data := s.Mode1Data()
			for j := range data {
				data[j] = byte(j)
			}
		default:
			payload := s.Payload(mode)
			if mode == cdrom.Mode2Form2 {
				payload[2] = 0x20
			}
			for j := cdrom.SubheaderSize; j < len(payload); j++ {
				payload[j] = byte(j * 3)
			}
			s.MirrorSubheader()
		}
		s.Generate(mode)
		img.Write(s[:])
	}

	img.Write(make([]byte, cdrom.SectorSize))
	return img.Bytes()
}
