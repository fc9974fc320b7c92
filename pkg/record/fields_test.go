package record

import (
	"encoding/binary"
	"testing"

	"github.com/bcallard/smfdump/pkg/ebcdic"
)

func TestDecodeFields(t *testing.T) {
	fr := make([]byte, 32)
	copy(fr[0:4], ebcdic.Encode("TRN1", 4))
	binary.BigEndian.PutUint32(fr[4:8], 1500)    // microseconds
	binary.BigEndian.PutUint32(fr[8:12], 25)     // hundredths of a second
	binary.BigEndian.PutUint32(fr[12:16], 42)    // plain count
	binary.BigEndian.PutUint16(fr[16:18], 8)     // return code
	binary.BigEndian.PutUint32(fr[18:22], 4_000_000_000) // above the CPU ceiling

	specs := []FieldSpec{
		{Name: "transaction_id", Offset: 0, Width: 4, Kind: Text},
		{Name: "cpu_time", Offset: 4, Width: 4, Kind: Uint32, Scale: MicrosToMillis, Max: MaxCPUMicros},
		{Name: "elapsed_time", Offset: 8, Width: 4, Kind: Uint32, Scale: CentisToMillis, Max: MaxElapsedCentis},
		{Name: "reads", Offset: 12, Width: 4, Kind: Uint32, Max: MaxCount},
		{Name: "return_code", Offset: 16, Width: 2, Kind: Uint16},
		{Name: "bad_cpu", Offset: 18, Width: 4, Kind: Uint32, Scale: MicrosToMillis, Max: MaxCPUMicros},
	}

	f := DecodeFields(fr, 0, specs)

	if got := f.Text("transaction_id"); got != "TRN1" {
		t.Errorf("transaction_id = %q, want TRN1", got)
	}
	if got := f.Millis("cpu_time"); got != 1.5 {
		t.Errorf("cpu_time = %v ms, want 1.5", got)
	}
	if got := f.Millis("elapsed_time"); got != 250 {
		t.Errorf("elapsed_time = %v ms, want 250", got)
	}
	if got := f.Count("reads"); got != 42 {
		t.Errorf("reads = %d, want 42", got)
	}
	if got := f.Count("return_code"); got != 8 {
		t.Errorf("return_code = %d, want 8", got)
	}
	if got := f.Count("bad_cpu"); got != 0 {
		t.Errorf("implausible cpu value not clamped: %d", got)
	}
}

func TestDecodeFieldsOutOfBoundsDefaults(t *testing.T) {
	fr := make([]byte, 8)
	binary.BigEndian.PutUint32(fr[4:8], 7)

	specs := []FieldSpec{
		{Name: "in_bounds", Offset: 4, Width: 4, Kind: Uint32},
		{Name: "past_end", Offset: 6, Width: 4, Kind: Uint32},
		{Name: "way_past", Offset: 100, Width: 8, Kind: Text},
	}

	f := DecodeFields(fr, 0, specs)

	if got := f.Count("in_bounds"); got != 7 {
		t.Errorf("in_bounds = %d, want 7", got)
	}
	if got := f.Count("past_end"); got != 0 {
		t.Errorf("field crossing the frame end must default to zero, got %d", got)
	}
	if got := f.Text("way_past"); got != "" {
		t.Errorf("text field outside the frame must default to empty, got %q", got)
	}
}

func TestDecodeFieldsNegativeBase(t *testing.T) {
	fr := make([]byte, 8)
	f := DecodeFields(fr, -4, []FieldSpec{{Name: "x", Offset: 0, Width: 4, Kind: Uint32}})
	if got := f.Count("x"); got != 0 {
		t.Errorf("negative base must default to zero, got %d", got)
	}
}

func TestRoundMillis(t *testing.T) {
	testCases := []struct {
		in   float64
		want float64
	}{
		{1.5, 1.5},
		{2.0006, 2.001},
		{0.0004, 0},
		{123.45678, 123.457},
	}
	for _, tc := range testCases {
		if got := RoundMillis(tc.in); got != tc.want {
			t.Errorf("RoundMillis(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestRoundPct(t *testing.T) {
	testCases := []struct {
		in   float64
		want float64
	}{
		{85, 85},
		{100.0 / 3.0, 33.33},
		{200.0 / 3.0, 66.67},
		{0.004, 0},
	}
	for _, tc := range testCases {
		if got := RoundPct(tc.in); got != tc.want {
			t.Errorf("RoundPct(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestLocate(t *testing.T) {
	fr := make([]byte, 48)
	copy(fr[32:40], ebcdic.Encode("PAYROLL", 8))

	alnum := func(b []byte) bool {
		s := ebcdic.Decode(b)
		if s == "" {
			return false
		}
		c := s[0]
		return (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
	}

	// 32 is the least-preferred candidate but the only one with data.
	off, ok := Locate(fr, []int{28, 26, 32}, 8, alnum)
	if !ok {
		t.Fatal("Locate found nothing")
	}
	if off != 32 {
		t.Errorf("Locate = %d, want 32", off)
	}

	// Priority order: when two candidates pass, the first wins.
	copy(fr[28:36], ebcdic.Encode("BATCH", 8))
	off, ok = Locate(fr, []int{28, 26, 32}, 8, alnum)
	if !ok || off != 28 {
		t.Errorf("Locate = %d/%v, want 28/true", off, ok)
	}

	// Nothing plausible anywhere.
	_, ok = Locate(make([]byte, 48), []int{28, 26, 32}, 8, alnum)
	if ok {
		t.Error("Locate matched an all-zero frame")
	}

	// Candidates outside the frame are skipped, not read.
	_, ok = Locate(fr[:8], []int{28, 26, 32}, 8, alnum)
	if ok {
		t.Error("Locate matched beyond the frame")
	}
}

func TestLocateStep(t *testing.T) {
	fr := make([]byte, 64)
	binary.BigEndian.PutUint32(fr[44:48], 1_200_000) // plausible CPU microseconds

	plausible := func(b []byte) bool {
		v := binary.BigEndian.Uint32(b)
		return v > 0 && v < MaxCPUMicros
	}

	off, ok := LocateStep(fr, 40, 40, 4, 4, plausible)
	if !ok {
		t.Fatal("LocateStep found nothing")
	}
	if off != 44 {
		t.Errorf("LocateStep = %d, want 44", off)
	}

	if _, ok := LocateStep(fr, 40, 40, 0, 4, plausible); ok {
		t.Error("LocateStep with zero step must not loop or match")
	}
}
