package cdrom

import "encoding/hex"

// Reference sectors shared by the tests. Expected EDC/ECC values were
// produced by an independent implementation of the CD-ROM codes.

func mustDecodeHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

// referenceMode1 returns a Mode 1 sector at MSF 00:02:00 whose data bytes
// count up from zero.
func referenceMode1() *Sector {
	s := new(Sector)
	s.Reset(Mode1)
	copy(s.Address(), []byte{0x00, 0x02, 0x00})
	data := s.Mode1Data()
	for i := range data {
		data[i] = byte(i)
	}
	return s
}

// referenceForm1 returns a Mode 2 Form 1 sector with data bytes i*3.
func referenceForm1() *Sector {
	s := new(Sector)
	s.Reset(Mode2Form1)
	copy(s.Payload(Mode2Form1), []byte{0x00, 0x00, 0x08, 0x00})
	s.MirrorSubheader()
	data := s.Form1Data()
	for i := range data {
		data[i] = byte(i * 3)
	}
	return s
}

// referenceForm2 returns a Mode 2 Form 2 sector with data bytes i*7.
func referenceForm2() *Sector {
	s := new(Sector)
	s.Reset(Mode2Form2)
	copy(s.Payload(Mode2Form2), []byte{0x00, 0x00, 0x20, 0x00})
	s.MirrorSubheader()
	data := s.Form2Data()
	for i := range data {
		data[i] = byte(i * 7)
	}
	return s
}

const (
	referenceMode1ECCP = "4213c7942172d586590a8ad9f5a6abf883d08fdca6f5e4b78cdf510263305201e9ba4e1d114288db3162edbe4d1e02516231c99a6c3f00530556dc8f134044174f1ca6f51447e0b36c3f4bd62b075606e8b8a5f58fdf8edcd98a1142d586693aeab9c596cb9893c0efbcb6e5a4f79ccf712273207221194a6e3de1b288dbc192cd9ebdee22717221e9ba7c2f40131546bcef035024777f2cc6952477e0b35c0f8ca020d2b2e3feaf4d1c95c4"
	referenceMode1ECCQ = "46e94486f12ae20b9d1046037ab2df131b2e5ed697d8fb25f59d806c0b87269e81ae776bea90ff4967545276545e47117bd4a0b4812ce62542982cc409850541f73eec20dbbf09805f11acac02a731b3b94bdd64351bd7caf58e9d2a0735a386d9d22a7dd07c6523"
)
