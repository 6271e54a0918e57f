package ecm

import (
	"fmt"
	"io"

	"github.com/hansbonini/ecmtools/pkg/cdrom"
)

// readSector fills s with the stored payload of one sector of type t,
// regenerates the omitted bytes and returns the slice of s to emit.
func readSector(r io.Reader, t ChunkType, s *cdrom.Sector) ([]byte, error) {
	mode := t.SectorMode()
	s.Reset(mode)

	switch t {
	case ChunkMode1:
		if _, err := io.ReadFull(r, s.Address()); err != nil {
			return nil, readError("mode 1 address", err)
		}
		if _, err := io.ReadFull(r, s.Mode1Data()); err != nil {
			return nil, readError("mode 1 data", err)
		}
	case ChunkMode2Form1, ChunkMode2Form2:
		if _, err := io.ReadFull(r, s.Payload(mode)); err != nil {
			return nil, readError(mode.String()+" payload", err)
		}
		s.MirrorSubheader()
	case ChunkLiteral:
		return nil, fmt.Errorf("ecm: %v chunk has no sector layout", t)
	default:
		return nil, fmt.Errorf("ecm: unknown chunk type %d", uint8(t))
	}

	s.Generate(mode)
	return s.Output(mode), nil
}
