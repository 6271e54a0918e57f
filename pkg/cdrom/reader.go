package cdrom

import (
	"fmt"
	"io"
	"os"
)

// ImageReader reads raw 2352-byte sectors from a disc image.
type ImageReader struct {
	src           io.ReaderAt
	closer        io.Closer
	totalSectors  int64
	trailingBytes int64
	currentSector int64
	sector        Sector
}

// NewImageReader opens a raw sector image file.
func NewImageReader(filename string) (*ImageReader, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	fileInfo, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}

	r := newImageReader(file, fileInfo.Size())
	r.closer = file
	return r, nil
}

func newImageReader(src io.ReaderAt, size int64) *ImageReader {
	return &ImageReader{
		src:           src,
		totalSectors:  size / SectorSize,
		trailingBytes: size % SectorSize,
		currentSector: -1,
	}
}

// Close releases the underlying file, if any.
func (r *ImageReader) Close() error {
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

// TotalSectors returns the number of complete sectors in the image.
func (r *ImageReader) TotalSectors() int64 { return r.totalSectors }

// TrailingBytes returns the size of an incomplete sector at the end of the image.
func (r *ImageReader) TrailingBytes() int64 { return r.trailingBytes }

// SeekToSector loads the sector at lba into the reader's buffer.
func (r *ImageReader) SeekToSector(lba int64) (*Sector, error) {
	if lba >= r.totalSectors || lba < 0 {
		return nil, fmt.Errorf("LBA %d out of bounds (total: %d)", lba, r.totalSectors)
	}

	if _, err := r.src.ReadAt(r.sector[:], lba*SectorSize); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read sector %d: %w", lba, err)
	}

	r.currentSector = lba
	return &r.sector, nil
}

// Next loads the sector following the current one. It returns io.EOF after
// the last complete sector.
func (r *ImageReader) Next() (*Sector, error) {
	if r.currentSector+1 >= r.totalSectors {
		return nil, io.EOF
	}
	return r.SeekToSector(r.currentSector + 1)
}

// CurrentSector returns the LBA of the sector last loaded, or -1.
func (r *ImageReader) CurrentSector() int64 { return r.currentSector }
