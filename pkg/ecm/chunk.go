package ecm

import (
	"fmt"
	"io"

	"github.com/hansbonini/ecmtools/pkg/cdrom"
)

// ChunkType is the kind of run a chunk header announces.
type ChunkType uint8

const (
	ChunkLiteral    ChunkType = 0 // Count raw bytes copied verbatim
	ChunkMode1      ChunkType = 1 // Count Mode 1 sectors
	ChunkMode2Form1 ChunkType = 2 // Count Mode 2 Form 1 sectors
	ChunkMode2Form2 ChunkType = 3 // Count Mode 2 Form 2 sectors
)

// String returns the name used in logs and reports.
func (t ChunkType) String() string {
	switch t {
	case ChunkLiteral:
		return "literal"
	case ChunkMode1:
		return "mode1"
	case ChunkMode2Form1:
		return "mode2form1"
	case ChunkMode2Form2:
		return "mode2form2"
	}
	return fmt.Sprintf("chunk(%d)", uint8(t))
}

// SectorMode maps a sector chunk type to its CD-ROM sector mode.
// Literal chunks map to cdrom.ModeUnknown.
func (t ChunkType) SectorMode() cdrom.Mode {
	switch t {
	case ChunkMode1:
		return cdrom.Mode1
	case ChunkMode2Form1:
		return cdrom.Mode2Form1
	case ChunkMode2Form2:
		return cdrom.Mode2Form2
	}
	return cdrom.ModeUnknown
}

// Chunk is one run of an ECM stream. For literal chunks Count is a byte
// length, for sector chunks a number of sectors.
type Chunk struct {
	Type   ChunkType
	Count  uint64
	Offset int64 // input offset of the chunk header
}

const (
	// endOfStreamCount is the raw count value of the terminating chunk header.
	endOfStreamCount = 0xFFFFFFFF

	// maxContinuationBytes bounds the header varint: 5 + 9*7 bits cover 64 bits.
	maxContinuationBytes = 9

	// maxChunkCount is the first count value rejected as corrupt.
	maxChunkCount = 1 << 63
)

// readChunkHeader decodes one chunk header. The low two bits of the first
// byte select the type, the next five bits are the low bits of the count and
// the top bit announces a continuation byte carrying seven more bits.
// end is true when the header is the end-of-stream marker.
func readChunkHeader(r io.ByteReader) (chunk Chunk, headerLen int, end bool, err error) {
	c, err := r.ReadByte()
	if err != nil {
		return Chunk{}, 0, false, readError("chunk header", err)
	}
	headerLen = 1

	chunk.Type = ChunkType(c & 0x03)
	num := uint64(c>>2) & 0x1F
	bits := uint(5)

	for c&0x80 != 0 {
		if headerLen > maxContinuationBytes {
			return Chunk{}, headerLen, false, fmt.Errorf("%w: more than %d continuation bytes", ErrInvalidChunkLength, maxContinuationBytes)
		}
		c, err = r.ReadByte()
		if err != nil {
			return Chunk{}, headerLen, false, readError("chunk header", err)
		}
		headerLen++

		part := uint64(c & 0x7F)
		if (part<<bits)>>bits != part {
			return Chunk{}, headerLen, false, fmt.Errorf("%w: count exceeds 64 bits", ErrInvalidChunkLength)
		}
		num |= part << bits
		bits += 7
	}

	if num == endOfStreamCount {
		return Chunk{}, headerLen, true, nil
	}
	if num >= maxChunkCount-1 {
		return Chunk{}, headerLen, false, fmt.Errorf("%w: %d", ErrInvalidChunkLength, num)
	}

	chunk.Count = num + 1
	return chunk, headerLen, false, nil
}
