package cdrom

// ECC P and Q geometry over the 2340-byte address+data region starting at the
// sector header. P covers 86 columns of 24 bytes, Q covers 52 diagonals of 43.
const (
	pMajorCount = 86
	pMinorCount = 24
	pMajorMult  = 2
	pMinorInc   = 86

	qMajorCount = 52
	qMinorCount = 43
	qMajorMult  = 86
	qMinorInc   = 88
)

// computeParity computes one ECC block (either P or Q) over region and stores
// 2*majorCount parity bytes into dest.
func computeParity(region []byte, majorCount, minorCount, majorMult, minorInc int, dest []byte) {
	size := majorCount * minorCount
	_ = region[size-1]
	_ = dest[2*majorCount-1]
	for major := 0; major < majorCount; major++ {
		index := (major>>1)*majorMult + (major & 1)
		var a, b byte
		for minor := 0; minor < minorCount; minor++ {
			temp := region[index]
			index += minorInc
			if index >= size {
				index -= size
			}
			a ^= temp
			b ^= temp
			a = eccForward[a]
		}
		a = eccBackward[eccForward[a]^b]
		dest[major] = a
		dest[major+majorCount] = a ^ b
	}
}

// generateECC writes the P and Q parity of s. When zeroAddress is set the
// address and mode bytes are treated as zero for the computation and are
// restored afterwards.
func (s *Sector) generateECC(zeroAddress bool) {
	if zeroAddress {
		header := s.Header()
		var saved [HeaderSize]byte
		copy(saved[:], header)
		clear(header)
		defer copy(header, saved[:])
	}

	region := s[offHeader:]
	// P must be written first: the Q diagonals run through the P bytes.
	computeParity(region, pMajorCount, pMinorCount, pMajorMult, pMinorInc, s.ECCP())
	computeParity(region, qMajorCount, qMinorCount, qMajorMult, qMinorInc, s.ECCQ())
}
