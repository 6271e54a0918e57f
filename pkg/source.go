package pkg

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dsnet/compress/bzip2"
	"github.com/hansbonini/ecmtools/pkg/common"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Compression identifies a container wrapped around an ECM stream.
type Compression string

const (
	CompressionNone  Compression = "none"
	CompressionGzip  Compression = "gzip"
	CompressionZstd  Compression = "zstd"
	CompressionXZ    Compression = "xz"
	CompressionBzip2 Compression = "bzip2"
)

// compressionMagics lists the leading bytes of each supported container.
var compressionMagics = []struct {
	kind  Compression
	magic []byte
}{
	{CompressionGzip, []byte{0x1F, 0x8B}},
	{CompressionZstd, []byte{0x28, 0xB5, 0x2F, 0xFD}},
	{CompressionXZ, []byte{0xFD, '7', 'z', 'X', 'Z', 0x00}},
	{CompressionBzip2, []byte{'B', 'Z', 'h'}},
}

// sniffLen is the longest magic in compressionMagics.
const sniffLen = 6

// DetectCompression identifies the container from the first bytes of a file.
// Anything unrecognised, including a bare "ECM\x00" stream, is CompressionNone.
func DetectCompression(head []byte) Compression {
	for _, m := range compressionMagics {
		if bytes.HasPrefix(head, m.magic) {
			return m.kind
		}
	}
	return CompressionNone
}

// NewSourceReader returns a reader yielding the plain ECM bytes of r,
// decompressing it when it starts with a known container magic.
func NewSourceReader(r io.Reader) (io.ReadCloser, Compression, error) {
	br := bufio.NewReaderSize(r, 64*1024)
	head, err := br.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, "", fmt.Errorf("failed to read input header: %w", err)
	}

	kind := DetectCompression(head)
	switch kind {
	case CompressionGzip:
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, kind, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		return zr, kind, nil
	case CompressionZstd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, kind, fmt.Errorf("failed to open zstd stream: %w", err)
		}
		return zr.IOReadCloser(), kind, nil
	case CompressionXZ:
		xr, err := xz.NewReader(br)
		if err != nil {
			return nil, kind, fmt.Errorf("failed to open xz stream: %w", err)
		}
		return io.NopCloser(xr), kind, nil
	case CompressionBzip2:
		bz, err := bzip2.NewReader(br, nil)
		if err != nil {
			return nil, kind, fmt.Errorf("failed to open bzip2 stream: %w", err)
		}
		return bz, kind, nil
	}
	return io.NopCloser(br), CompressionNone, nil
}

// Input is an opened ECM source file. Reads return plain ECM bytes; Consumed
// reports how far into the file on disk the reader has got.
type Input struct {
	Path        string
	Size        int64
	Compression Compression

	file    *os.File
	counter *common.CountingReader
	source  io.ReadCloser
}

// OpenInput opens an ECM file, transparently decompressing it.
func OpenInput(path string) (*Input, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, common.FormatError(common.ErrFailedToOpenInput, err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, common.FormatError(common.ErrFailedToStatInput, err)
	}

	counter := &common.CountingReader{R: file}
	source, kind, err := NewSourceReader(counter)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("%s %s: %w", common.ErrFailedToOpenInput, path, err)
	}
	common.LogDebug(common.DebugInputCompression, path, kind)

	return &Input{
		Path:        path,
		Size:        info.Size(),
		Compression: kind,
		file:        file,
		counter:     counter,
		source:      source,
	}, nil
}

// Read implements io.Reader
func (in *Input) Read(p []byte) (int, error) {
	return in.source.Read(p)
}

// Consumed returns the number of bytes read from the file on disk.
func (in *Input) Consumed() int64 {
	return in.counter.N
}

// Close releases the decompressor and the file.
func (in *Input) Close() error {
	srcErr := in.source.Close()
	fileErr := in.file.Close()
	if srcErr != nil {
		return srcErr
	}
	return fileErr
}
