// Package ecm decodes ECM (Error Code Modeler) streams back into raw CD-ROM
// sector images.
//
// An ECM stream is the magic "ECM\x00", a sequence of run-length chunks and a
// terminating chunk header, followed by the little-endian EDC of the whole
// decoded output. Sector chunks carry only the bytes that cannot be
// recomputed; sync patterns, EDC and ECC are regenerated here.
package ecm

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/hansbonini/ecmtools/pkg/cdrom"
	"github.com/hansbonini/ecmtools/pkg/common"
)

// Magic is the four-byte signature of an ECM stream.
const Magic = "ECM\x00"

// Progress reports how far a decode has got.
type Progress struct {
	Input  int64 // bytes consumed from the ECM stream
	Output int64 // bytes written to the output
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithProgress registers fn to be called after every literal piece, every
// reconstructed sector and once more after the trailer has been verified.
func WithProgress(fn func(Progress)) Option {
	return func(d *Decoder) { d.progress = fn }
}

// WithChunkObserver registers fn to be called for every chunk header before
// its payload is decoded. The end-of-stream marker is not reported.
func WithChunkObserver(fn func(Chunk)) Option {
	return func(d *Decoder) { d.observer = fn }
}

// Decoder turns ECM streams into raw images. A Decoder holds no per-stream
// state and may be reused.
type Decoder struct {
	progress func(Progress)
	observer func(Chunk)
}

// NewDecoder creates a new ECM decoder instance.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode decodes with a default Decoder.
func Decode(r io.Reader, w io.Writer) (int64, error) {
	return NewDecoder().Decode(r, w)
}

// stream is the state of a single decode.
type stream struct {
	br     *bufio.Reader
	bw     *bufio.Writer
	edc    uint32
	in     int64
	out    int64
	sector cdrom.Sector
}

// Decode reads an ECM stream from r and writes the reconstructed image to w.
// It returns the number of bytes written. On failure the bytes written so
// far are flushed to w and left there.
func (d *Decoder) Decode(r io.Reader, w io.Writer) (written int64, err error) {
	st := &stream{
		br: bufio.NewReaderSize(r, 64*1024),
		bw: bufio.NewWriterSize(w, 64*1024),
	}
	defer func() {
		if flushErr := st.bw.Flush(); flushErr != nil && err == nil {
			err = fmt.Errorf("failed to write output: %w", flushErr)
		}
		written = st.out
	}()

	if err := st.readMagic(); err != nil {
		return 0, err
	}

	for {
		offset := st.in
		chunk, headerLen, end, err := readChunkHeader(st.br)
		st.in += int64(headerLen)
		if err != nil {
			return 0, err
		}
		if end {
			break
		}
		chunk.Offset = offset

		common.LogDebug(common.DebugChunk, chunk.Offset, chunk.Type, chunk.Count)
		if d.observer != nil {
			d.observer(chunk)
		}

		if err := d.decodeChunk(st, chunk); err != nil {
			return 0, err
		}
	}

	if err := st.verifyTrailer(); err != nil {
		return 0, err
	}
	d.report(st)
	return 0, nil
}

func (st *stream) readMagic() error {
	var magic [len(Magic)]byte
	n, err := io.ReadFull(st.br, magic[:])
	st.in += int64(n)
	if err != nil || !bytes.Equal(magic[:], []byte(Magic)) {
		return fmt.Errorf("%w: got %q", ErrHeaderMissing, magic[:n])
	}
	return nil
}

func (d *Decoder) decodeChunk(st *stream, chunk Chunk) error {
	switch chunk.Type {
	case ChunkLiteral:
		remaining := chunk.Count
		for remaining > 0 {
			n := uint64(cdrom.SectorSize)
			if remaining < n {
				n = remaining
			}
			piece := st.sector[:n]
			read, err := io.ReadFull(st.br, piece)
			st.in += int64(read)
			if err != nil {
				return readError("literal data", err)
			}
			if err := st.emit(piece); err != nil {
				return err
			}
			remaining -= n
			d.report(st)
		}
	case ChunkMode1, ChunkMode2Form1, ChunkMode2Form2:
		payload := int64(chunk.Type.SectorMode().PayloadSize())
		for i := uint64(0); i < chunk.Count; i++ {
			out, err := readSector(st.br, chunk.Type, &st.sector)
			if err != nil {
				return err
			}
			st.in += payload
			if err := st.emit(out); err != nil {
				return err
			}
			d.report(st)
		}
	default:
		return fmt.Errorf("ecm: unknown chunk type %d", uint8(chunk.Type))
	}
	return nil
}

// emit writes p to the output and folds it into the stream checksum.
func (st *stream) emit(p []byte) error {
	st.edc = cdrom.EDCUpdate(st.edc, p)
	n, err := st.bw.Write(p)
	st.out += int64(n)
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (st *stream) verifyTrailer() error {
	stored, err := common.ReadUint32LE(st.br)
	if err != nil {
		return readError("checksum trailer", err)
	}
	st.in += cdrom.EDCSize

	if stored != st.edc {
		return fmt.Errorf("%w: computed %08X, stored %08X", ErrChecksumMismatch, st.edc, stored)
	}
	common.LogDebug(common.DebugChecksumOK, stored)
	return nil
}

func (d *Decoder) report(st *stream) {
	if d.progress != nil {
		d.progress(Progress{Input: st.in, Output: st.out})
	}
}
