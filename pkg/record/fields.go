package record

import (
	"encoding/binary"
	"math"

	"github.com/bcallard/smfdump/pkg/ebcdic"
)

// Kind is the wire representation of a payload field.
type Kind uint8

const (
	Text   Kind = iota // fixed-width EBCDIC text
	Uint16             // 2-byte big-endian unsigned integer
	Uint32             // 4-byte big-endian unsigned integer
)

// Scale converts a raw integer into its documented unit.
type Scale uint8

const (
	None           Scale = iota // raw count, no conversion
	MicrosToMillis              // raw microseconds -> milliseconds (divide by 1000)
	CentisToMillis              // raw hundredths of a second -> milliseconds (multiply by 10)
)

// Plausibility ceilings shared by the subtype tables. An integer above its
// ceiling is treated as a misaligned read and reset to zero.
const (
	MaxCPUMicros     = 3_600_000_000 // one hour of CPU in microseconds
	MaxElapsedCentis = 360_000       // one hour in hundredths of a second
	MaxCount         = 1_000_000_000
	MaxPageCount     = 100_000_000
)

// FieldSpec describes one payload field: where it sits relative to the
// section base, how wide it is, how to interpret it, and the ceiling
// above which its value is implausible.
type FieldSpec struct {
	Name   string
	Offset int
	Width  int
	Kind   Kind
	Scale  Scale
	Max    uint64 // 0 disables the plausibility check
}

// Value is one decoded payload field.
type Value struct {
	Kind  Kind
	Scale Scale
	Text  string
	Raw   uint64 // clamped raw integer for integer kinds
}

// Millis returns the field's value converted to milliseconds per its
// scale. Zero for unscaled fields.
func (v Value) Millis() float64 {
	switch v.Scale {
	case MicrosToMillis:
		return float64(v.Raw) / 1000.0
	case CentisToMillis:
		return float64(v.Raw) * 10.0
	default:
		return 0
	}
}

// Fields holds the decoded payload of one frame, keyed by field name.
type Fields map[string]Value

// Text returns the named text field, or "" if absent.
func (f Fields) Text(name string) string { return f[name].Text }

// Count returns the named integer field's clamped raw value.
func (f Fields) Count(name string) uint64 { return f[name].Raw }

// Millis returns the named time field in milliseconds.
func (f Fields) Millis(name string) float64 { return f[name].Millis() }

// DecodeFields applies a descriptor table to a frame. Offsets are relative
// to base. A field whose span lies outside the frame decodes to its zero
// value; decoding itself never fails.
func DecodeFields(fr []byte, base int, specs []FieldSpec) Fields {
	out := make(Fields, len(specs))
	for _, spec := range specs {
		out[spec.Name] = decodeField(fr, base, spec)
	}
	return out
}

func decodeField(fr []byte, base int, spec FieldSpec) Value {
	v := Value{Kind: spec.Kind, Scale: spec.Scale}

	start := base + spec.Offset
	end := start + spec.Width
	if start < 0 || end > len(fr) {
		return v
	}

	switch spec.Kind {
	case Text:
		v.Text = ebcdic.Decode(fr[start:end])
	case Uint16:
		v.Raw = uint64(binary.BigEndian.Uint16(fr[start:end]))
	case Uint32:
		v.Raw = uint64(binary.BigEndian.Uint32(fr[start:end]))
	}

	if spec.Max > 0 && v.Raw > spec.Max {
		v.Raw = 0
	}
	return v
}

// RoundMillis rounds a millisecond value to three decimal places for the
// canonical flat map.
func RoundMillis(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// RoundPct rounds a percentage to two decimal places for the canonical
// flat map.
func RoundPct(v float64) float64 {
	return math.Round(v*100) / 100
}
