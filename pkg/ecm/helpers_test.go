package ecm

import (
	"bytes"
	"encoding/binary"

	"github.com/hansbonini/ecmtools/pkg/cdrom"
)

// appendChunkHeader encodes a chunk header carrying the raw (not yet
// incremented) count.
func appendChunkHeader(dst []byte, t ChunkType, raw uint64) []byte {
	b := byte(t) | byte(raw&0x1F)<<2
	raw >>= 5
	for raw != 0 {
		dst = append(dst, b|0x80)
		b = byte(raw & 0x7F)
		raw >>= 7
	}
	return append(dst, b)
}

// streamBuilder assembles ECM streams for tests and tracks the output a
// correct decoder must produce.
type streamBuilder struct {
	stream   bytes.Buffer
	expected bytes.Buffer
}

func newStreamBuilder() *streamBuilder {
	b := &streamBuilder{}
	b.stream.WriteString(Magic)
	return b
}

func (b *streamBuilder) header(t ChunkType, count uint64) *streamBuilder {
	b.stream.Write(appendChunkHeader(nil, t, count-1))
	return b
}

func (b *streamBuilder) literal(data []byte) *streamBuilder {
	b.header(ChunkLiteral, uint64(len(data)))
	b.stream.Write(data)
	b.expected.Write(data)
	return b
}

// sectors appends a chunk of len(payloads) sectors of type t.
func (b *streamBuilder) sectors(t ChunkType, payloads ...[]byte) *streamBuilder {
	b.header(t, uint64(len(payloads)))
	mode := t.SectorMode()
	for _, payload := range payloads {
		b.stream.Write(payload)

		var s cdrom.Sector
		s.Reset(mode)
		if t == ChunkMode1 {
			copy(s.Address(), payload[:cdrom.AddressSize])
			copy(s.Mode1Data(), payload[cdrom.AddressSize:])
		} else {
			copy(s.Payload(mode), payload)
			s.MirrorSubheader()
		}
		s.Generate(mode)
		b.expected.Write(s.Output(mode))
	}
	return b
}

// finish appends the end-of-stream marker and the checksum trailer.
func (b *streamBuilder) finish() []byte {
	b.stream.Write(appendChunkHeader(nil, ChunkLiteral, endOfStreamCount))
	var trailer [4]byte
	binary.LittleEndian.PutUint32(trailer[:], cdrom.EDCChecksum(b.expected.Bytes()))
	b.stream.Write(trailer[:])
	return b.stream.Bytes()
}

func patternPayload(size int, mul int, prefix ...byte) []byte {
	payload := append([]byte{}, prefix...)
	for i := 0; i < size; i++ {
		payload = append(payload, byte(i*mul))
	}
	return payload
}

// goldenStream is a stream with one chunk of every type. The trailer and
// output digest come from an independent implementation.
func goldenStream() []byte {
	var s []byte
	s = append(s, Magic...)
	s = appendChunkHeader(s, ChunkLiteral, 4)
	s = append(s, "hello"...)
	s = appendChunkHeader(s, ChunkMode1, 0)
	s = append(s, patternPayload(cdrom.Mode1DataSize, 1, 0x00, 0x02, 0x00)...)
	s = appendChunkHeader(s, ChunkMode2Form1, 0)
	s = append(s, patternPayload(cdrom.Form1DataSize, 3, 0x00, 0x00, 0x08, 0x00)...)
	s = appendChunkHeader(s, ChunkMode2Form2, 0)
	s = append(s, patternPayload(cdrom.Form2DataSize, 7, 0x00, 0x00, 0x20, 0x00)...)
	s = appendChunkHeader(s, ChunkLiteral, endOfStreamCount)
	return append(s, 0xA1, 0x85, 0xEA, 0xC0)
}

const (
	goldenOutputSize   = 7029
	goldenOutputSHA256 = "99736e10c812d55e2a8f55722bfa34abe79d324a74701596b560d63920a7f4f5"
)

type failingWriter struct {
	err error
}

func (w failingWriter) Write(p []byte) (int, error) {
	return 0, w.err
}

type failingReader struct {
	data []byte
	err  error
}

func (r *failingReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, r.err
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}
