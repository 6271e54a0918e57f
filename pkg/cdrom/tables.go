package cdrom

// Generator polynomials of the CD-ROM ECC (GF(2^8)) and EDC (reversed CRC).
const (
	eccPolynomial = 0x11D
	edcPolynomial = 0xD8018001
)

// Lookup tables used for computing ECC/EDC. They are filled once by init and
// only read afterwards.
var (
	eccForward  [256]byte
	eccBackward [256]byte
	edcTable    [256]uint32
)

func init() {
	for i := 0; i < 256; i++ {
		j := i << 1
		if i&0x80 != 0 {
			j ^= eccPolynomial
		}
		j &= 0xFF
		eccForward[i] = byte(j)
		eccBackward[i^j] = byte(i)

		edc := uint32(i)
		for k := 0; k < 8; k++ {
			if edc&1 != 0 {
				edc = (edc >> 1) ^ edcPolynomial
			} else {
				edc >>= 1
			}
		}
		edcTable[i] = edc
	}
}
