package record

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecord struct{ subtype uint8 }

func (r *fakeRecord) Subtype() uint8          { return r.subtype }
func (r *fakeRecord) SubtypeName() string     { return "fake" }
func (r *fakeRecord) FlatMap() map[string]any { return map[string]any{"subtype": r.subtype} }

func TestRegistryDispatch(t *testing.T) {
	reg := NewRegistry(110)
	reg.Register(1, "Transaction Statistics", func(fr []byte, hdr Header) (Record, error) {
		return &fakeRecord{subtype: hdr.Subtype}, nil
	})

	fr := buildHeaderFrame(64, 110, 1, "SYSZ", "CICS")
	hdr, err := DecodeHeader(fr, 110)
	require.NoError(t, err)

	rec, err := reg.Dispatch(fr, hdr)
	require.NoError(t, err)
	assert.Equal(t, uint8(1), rec.Subtype())
	assert.Equal(t, "Transaction Statistics", reg.SubtypeName(1))
}

func TestRegistryDispatchUnknownSubtype(t *testing.T) {
	reg := NewRegistry(110)
	reg.Register(1, "Transaction Statistics", func(fr []byte, hdr Header) (Record, error) {
		return &fakeRecord{subtype: 1}, nil
	})

	fr := buildHeaderFrame(64, 110, 99, "SYSZ", "CICS")
	hdr, err := DecodeHeader(fr, 110)
	require.NoError(t, err)

	rec, err := reg.Dispatch(fr, hdr)
	assert.Nil(t, rec)

	var unknown *UnknownSubtypeError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, uint8(99), unknown.Subtype)
}

func TestRegistryDispatchAnyDiscriminator(t *testing.T) {
	// Every byte value is a legal, if unrecognized, discriminator.
	reg := NewRegistry(30)
	for st := 0; st < 256; st++ {
		fr := buildHeaderFrame(64, 30, uint8(st), "SYSZ", "SYS1")
		hdr, err := DecodeHeader(fr, 30)
		require.NoError(t, err)

		_, err = reg.Dispatch(fr, hdr)
		var unknown *UnknownSubtypeError
		require.True(t, errors.As(err, &unknown), "subtype %d", st)
	}
}
