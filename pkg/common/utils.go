package common

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	strconv "github.com/dsnet/golib/unitconv"
)

// ReadUint32LE reads a uint32 in little-endian format
func ReadUint32LE(reader io.Reader) (uint32, error) {
	var value uint32
	err := binary.Read(reader, binary.LittleEndian, &value)
	return value, err
}

// FormatSize renders a byte count with a binary prefix, e.g. "1.5MiB".
func FormatSize(n int64) string {
	if n < 1024 {
		return fmt.Sprintf("%dB", n)
	}
	s := strconv.FormatPrefix(float64(n), strconv.Base1024, 2)
	return strings.Replace(s, ".00", "", 1) + "B"
}

// CountingReader counts the bytes read through it.
type CountingReader struct {
	R io.Reader
	N int64
}

// Read implements io.Reader
func (c *CountingReader) Read(p []byte) (int, error) {
	n, err := c.R.Read(p)
	c.N += int64(n)
	return n, err
}
