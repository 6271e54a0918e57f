package ecm

import (
	"errors"
	"fmt"
	"io"
)

// Errors returned by the decoder. Every one of them ends the decode; bytes
// already written to the output are left in place.
var (
	// ErrHeaderMissing indicates the stream does not start with "ECM\x00".
	ErrHeaderMissing = errors.New("ecm: header not found")

	// ErrUnexpectedEOF indicates the stream ended in the middle of a chunk
	// header, a payload or before the checksum trailer.
	ErrUnexpectedEOF = errors.New("ecm: unexpected end of stream")

	// ErrInvalidChunkLength indicates a chunk count outside the supported range.
	ErrInvalidChunkLength = errors.New("ecm: invalid chunk length")

	// ErrChecksumMismatch indicates the trailer EDC disagrees with the decoded output.
	ErrChecksumMismatch = errors.New("ecm: checksum mismatch")
)

// readError converts a failed read of what into a decoder error. Short reads
// become ErrUnexpectedEOF; other reader failures are passed through wrapped.
func readError(what string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w while reading %s", ErrUnexpectedEOF, what)
	}
	return fmt.Errorf("failed to read %s: %w", what, err)
}
