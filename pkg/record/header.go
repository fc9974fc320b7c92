package record

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/bcallard/smfdump/pkg/ebcdic"
)

// HeaderSize is the number of bytes the common header occupies, RDW
// included. Frames shorter than this cannot carry a record.
const HeaderSize = 23

// Common header field offsets within a frame.
const (
	offRecordLength = 4
	offSegment      = 6
	offFlags        = 7
	offFamily       = 8
	offTimestamp    = 10
	offSystemID     = 14
	offSubsystemID  = 18
	offSubtype      = 22
)

// PeekFamily reads the record-family code without decoding the rest of
// the header, so a driver can pick a registry before committing. ok is
// false when the frame is too short to carry the byte.
func PeekFamily(fr []byte) (family uint8, ok bool) {
	if len(fr) <= offFamily {
		return 0, false
	}
	return fr[offFamily], true
}

// ErrShortHeader reports a frame too small to hold the common header.
var ErrShortHeader = errors.New("record: frame shorter than common header")

// FormatMismatchError reports a frame whose record-family code is not the
// one the current parse run expects. The frame is skipped, not fatal.
type FormatMismatchError struct {
	Got  uint8
	Want uint8
}

func (e *FormatMismatchError) Error() string {
	return fmt.Sprintf("record: family %d, expected %d", e.Got, e.Want)
}

// Header is the common header shared by every SMF record frame. It is
// built per frame, handed to the dispatcher, and not retained.
type Header struct {
	Family       uint8
	RecordLength uint16
	Segment      uint8
	Flags        uint8
	Timestamp    uint32 // raw TOD word, opaque beyond presence
	SystemID     string
	SubsystemID  string
	Subtype      uint8
}

// DecodeHeader extracts the common header from a frame and verifies the
// record-family code against wantFamily.
func DecodeHeader(fr []byte, wantFamily uint8) (Header, error) {
	if len(fr) < HeaderSize {
		return Header{}, ErrShortHeader
	}

	family := fr[offFamily]
	if family != wantFamily {
		return Header{}, &FormatMismatchError{Got: family, Want: wantFamily}
	}

	return Header{
		Family:       family,
		RecordLength: binary.BigEndian.Uint16(fr[offRecordLength : offRecordLength+2]),
		Segment:      fr[offSegment],
		Flags:        fr[offFlags],
		Timestamp:    binary.BigEndian.Uint32(fr[offTimestamp : offTimestamp+4]),
		SystemID:     ebcdic.Decode(fr[offSystemID : offSystemID+4]),
		SubsystemID:  ebcdic.Decode(fr[offSubsystemID : offSubsystemID+4]),
		Subtype:      fr[offSubtype],
	}, nil
}
