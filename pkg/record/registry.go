package record

import "fmt"

// Record is a fully decoded, self-consistent SMF record. Implementations
// are the subtype variants in the smf30 and smf110 packages. FlatMap is
// the canonical field-name -> value mapping consumed by report and
// visualization tooling; values are strings, unsigned integers, or
// millisecond floats rounded to three decimals.
type Record interface {
	Subtype() uint8
	SubtypeName() string
	FlatMap() map[string]any
}

// DecodeFunc decodes one frame with an already-verified header into a
// typed record.
type DecodeFunc func(fr []byte, hdr Header) (Record, error)

// UnknownSubtypeError reports a subtype with no registered decoder. Any
// byte value is a legal discriminator, so this is a skip, not a fault.
type UnknownSubtypeError struct {
	Subtype uint8
}

func (e *UnknownSubtypeError) Error() string {
	return fmt.Sprintf("record: no decoder for subtype %d", e.Subtype)
}

// Registry maps the subtype values of one record family to decoders.
type Registry struct {
	family   uint8
	names    map[uint8]string
	decoders map[uint8]DecodeFunc
}

// NewRegistry creates an empty registry for the given record family.
func NewRegistry(family uint8) *Registry {
	return &Registry{
		family:   family,
		names:    make(map[uint8]string),
		decoders: make(map[uint8]DecodeFunc),
	}
}

// Family returns the record-family code this registry dispatches for.
func (r *Registry) Family() uint8 { return r.family }

// Register binds a subtype value to a decoder. Last registration wins.
func (r *Registry) Register(subtype uint8, name string, fn DecodeFunc) {
	r.names[subtype] = name
	r.decoders[subtype] = fn
}

// SubtypeName returns the registered name for a subtype, or "".
func (r *Registry) SubtypeName(subtype uint8) string { return r.names[subtype] }

// Subtypes returns the registered subtype values in unspecified order.
func (r *Registry) Subtypes() []uint8 {
	out := make([]uint8, 0, len(r.decoders))
	for st := range r.decoders {
		out = append(out, st)
	}
	return out
}

// Dispatch routes a frame to the decoder registered for its header's
// subtype. An unregistered subtype yields UnknownSubtypeError; Dispatch
// never panics on out-of-range discriminators.
func (r *Registry) Dispatch(fr []byte, hdr Header) (Record, error) {
	fn, ok := r.decoders[hdr.Subtype]
	if !ok {
		return nil, &UnknownSubtypeError{Subtype: hdr.Subtype}
	}
	return fn(fr, hdr)
}
