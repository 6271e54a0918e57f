// Package common provides shared helpers for ECMTools.
// This file contains MSF address conversion for CD-ROM sectors.
package common

import "fmt"

// PregapFrames is the 2-second lead-in that MSF addresses count from.
const PregapFrames = 150

// LBAToMSF converts LBA (Logical Block Address) to MSF (Minutes:Seconds:Frames) format
// LBA to MSF conversion: LBA + 150 (pregap)
func LBAToMSF(lba uint32) string {
	totalFrames := lba + PregapFrames

	minutes := totalFrames / (60 * 75)
	seconds := (totalFrames % (60 * 75)) / 75
	frames := totalFrames % 75

	return fmt.Sprintf("%02d:%02d:%02d", minutes, seconds, frames)
}

// BCDAddressToLBA decodes the three BCD bytes of a sector header address.
// ok is false when any byte is not valid BCD or the address lies inside the pregap.
func BCDAddressToLBA(addr []byte) (lba uint32, ok bool) {
	if len(addr) < 3 {
		return 0, false
	}
	var msf [3]uint32
	for i := 0; i < 3; i++ {
		hi, lo := addr[i]>>4, addr[i]&0x0F
		if hi > 9 || lo > 9 {
			return 0, false
		}
		msf[i] = uint32(hi)*10 + uint32(lo)
	}
	if msf[1] >= 60 || msf[2] >= 75 {
		return 0, false
	}
	frames := (msf[0]*60+msf[1])*75 + msf[2]
	if frames < PregapFrames {
		return 0, false
	}
	return frames - PregapFrames, true
}
