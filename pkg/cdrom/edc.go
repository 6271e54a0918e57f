package cdrom

import (
	"encoding/binary"
	"hash"
)

// EDCUpdate folds p into the running EDC value acc and returns the new value.
// Calls compose: EDCUpdate(EDCUpdate(acc, a), b) == EDCUpdate(acc, append(a, b...)).
func EDCUpdate(acc uint32, p []byte) uint32 {
	for _, b := range p {
		acc = (acc >> 8) ^ edcTable[byte(acc)^b]
	}
	return acc
}

// EDCChecksum returns the EDC of p starting from a zero accumulator.
func EDCChecksum(p []byte) uint32 {
	return EDCUpdate(0, p)
}

// PutEDC stores edc in little-endian order into the first four bytes of dst.
func PutEDC(dst []byte, edc uint32) {
	binary.LittleEndian.PutUint32(dst[:EDCSize], edc)
}

// digest implements hash.Hash32 over the CD-ROM EDC.
type digest struct {
	edc uint32
}

// NewEDC returns a hash.Hash32 computing the CD-ROM EDC. Sum appends the
// value in little-endian order, matching how sectors and ECM trailers store it.
func NewEDC() hash.Hash32 {
	return &digest{}
}

func (d *digest) Write(p []byte) (int, error) {
	d.edc = EDCUpdate(d.edc, p)
	return len(p), nil
}

func (d *digest) Sum(b []byte) []byte {
	return binary.LittleEndian.AppendUint32(b, d.edc)
}

func (d *digest) Sum32() uint32 {
	return d.edc
}

func (d *digest) Reset() {
	d.edc = 0
}

func (d *digest) Size() int {
	return EDCSize
}

func (d *digest) BlockSize() int {
	return 1
}
