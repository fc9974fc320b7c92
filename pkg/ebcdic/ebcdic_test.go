package ebcdic

import (
	"bytes"
	"testing"
)

func TestDecode(t *testing.T) {
	testCases := []struct {
		name  string
		input []byte
		want  string
	}{
		{
			name:  "plain uppercase text",
			input: []byte{0xE3, 0xD9, 0xD5, 0xF1}, // "TRN1"
			want:  "TRN1",
		},
		{
			name:  "space padded field",
			input: []byte{0xD1, 0xD6, 0xC2, 0x40, 0x40, 0x40, 0x40, 0x40}, // "JOB     "
			want:  "JOB",
		},
		{
			name:  "nul padded field",
			input: []byte{0xE2, 0xE8, 0xE2, 0x00},
			want:  "SYS",
		},
		{
			name:  "all zero field is empty",
			input: []byte{0x00, 0x00, 0x00, 0x00},
			want:  "",
		},
		{
			name:  "all spaces is empty",
			input: []byte{0x40, 0x40, 0x40, 0x40},
			want:  "",
		},
		{
			name:  "empty input",
			input: []byte{},
			want:  "",
		},
		{
			name:  "control bytes fall back to hex",
			input: []byte{0x01, 0x02, 0x03, 0x04},
			want:  "01020304",
		},
		{
			name:  "unmappable high-bit bytes fall back to hex",
			input: []byte{0xFF, 0xFF},
			want:  "ffff",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Decode(tc.input)
			if got != tc.want {
				t.Errorf("Decode(% x) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestDecodeNeverPanics(t *testing.T) {
	// Every single-byte value must decode to something.
	for b := 0; b < 256; b++ {
		_ = Decode([]byte{byte(b)})
	}
}

func TestDecodeHexFallbackLength(t *testing.T) {
	// The hex fallback doubles the byte count.
	for _, n := range []int{1, 2, 4, 8, 44} {
		input := bytes.Repeat([]byte{0xFF}, n)
		got := Decode(input)
		if len(got) != 2*n {
			t.Errorf("Decode(%d unmappable bytes) returned %d chars, want %d", n, len(got), 2*n)
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	testCases := []struct {
		text  string
		width int
	}{
		{"TRN1", 4},
		{"PAYROLL", 8},
		{"JOB", 8},
		{"", 4},
		{"CICS.CUSTFILE", 44},
	}

	for _, tc := range testCases {
		t.Run(tc.text, func(t *testing.T) {
			encoded := Encode(tc.text, tc.width)
			if len(encoded) != tc.width {
				t.Fatalf("Encode produced %d bytes, want %d", len(encoded), tc.width)
			}
			if got := Decode(encoded); got != tc.text {
				t.Errorf("round trip: got %q, want %q", got, tc.text)
			}
		})
	}
}

func TestEncodeTruncatesToWidth(t *testing.T) {
	encoded := Encode("LONGPROGRAMNAME", 8)
	if len(encoded) != 8 {
		t.Fatalf("Encode produced %d bytes, want 8", len(encoded))
	}
	if got := Decode(encoded); got != "LONGPROG" {
		t.Errorf("got %q, want %q", got, "LONGPROG")
	}
}
