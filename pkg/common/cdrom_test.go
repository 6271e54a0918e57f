package common

import "testing"

func TestLBAToMSF(t *testing.T) {
	testCases := []struct {
		lba      uint32
		expected string
	}{
		{0, "00:02:00"},
		{16, "00:02:16"},
		{74, "00:02:74"},
		{75, "00:03:00"},
		{4350, "01:00:00"},
		{333000, "74:02:00"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			if got := LBAToMSF(tc.lba); got != tc.expected {
				t.Errorf("LBAToMSF(%d) = %q, want %q", tc.lba, got, tc.expected)
			}
		})
	}
}

func TestBCDAddressToLBA(t *testing.T) {
	testCases := []struct {
		name     string
		addr     []byte
		expected uint32
		ok       bool
	}{
		{"first data sector", []byte{0x00, 0x02, 0x00}, 0, true},
		{"volume descriptor", []byte{0x00, 0x02, 0x16}, 16, true},
		{"one minute", []byte{0x01, 0x00, 0x00}, 4350, true},
		{"frame 74", []byte{0x00, 0x02, 0x74}, 74, true},
		{"inside pregap", []byte{0x00, 0x01, 0x74}, 0, false},
		{"not bcd", []byte{0x00, 0x0A, 0x00}, 0, false},
		{"frame out of range", []byte{0x00, 0x02, 0x75}, 0, false},
		{"seconds out of range", []byte{0x00, 0x60, 0x00}, 0, false},
		{"too short", []byte{0x00, 0x02}, 0, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			lba, ok := BCDAddressToLBA(tc.addr)
			if ok != tc.ok {
				t.Fatalf("BCDAddressToLBA(% X) ok = %t, want %t", tc.addr, ok, tc.ok)
			}
			if ok && lba != tc.expected {
				t.Errorf("BCDAddressToLBA(% X) = %d, want %d", tc.addr, lba, tc.expected)
			}
		})
	}
}

func TestBCDAddressRoundTrip(t *testing.T) {
	for _, lba := range []uint32{0, 1, 149, 150, 4499, 4500, 299999} {
		msf := LBAToMSF(lba)
		addr := []byte{
			(msf[0]-'0')<<4 | (msf[1] - '0'),
			(msf[3]-'0')<<4 | (msf[4] - '0'),
			(msf[6]-'0')<<4 | (msf[7] - '0'),
		}
		got, ok := BCDAddressToLBA(addr)
		if !ok || got != lba {
			t.Errorf("BCDAddressToLBA(%s) = %d, %t; want %d", msf, got, ok, lba)
		}
	}
}

func TestSafeInt64ToUint32(t *testing.T) {
	testCases := []struct {
		name     string
		value    int64
		expected uint32
		hasError bool
	}{
		{"zero", 0, 0, false},
		{"max", 0xFFFFFFFF, 0xFFFFFFFF, false},
		{"negative", -1, 0, true},
		{"overflow", 1 << 32, 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SafeInt64ToUint32(tc.value)
			if tc.hasError {
				if err == nil {
					t.Errorf("SafeInt64ToUint32(%d) should fail", tc.value)
				}
				return
			}
			if err != nil || got != tc.expected {
				t.Errorf("SafeInt64ToUint32(%d) = %d, %v; want %d", tc.value, got, err, tc.expected)
			}
		})
	}
}
