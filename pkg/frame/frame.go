// Package frame splits an SMF dump buffer into length-prefixed record frames.
//
// Every physical record starts with a two-byte big-endian RDW length that
// covers the whole frame, length prefix included. A bad prefix never stops
// a scan: callers skip forward by RecoveryStride and keep going.
package frame

import (
	"encoding/binary"
	"errors"
)

// RecoveryStride is how far a caller advances past an offset whose length
// prefix could not be used. Small enough to re-synchronize quickly, large
// enough to guarantee forward progress.
const RecoveryStride = 4

// PrefixSize is the width of the RDW length prefix.
const PrefixSize = 2

var (
	// ErrZeroLength reports a frame whose declared length is zero.
	ErrZeroLength = errors.New("frame: zero length prefix")

	// ErrTruncated reports a frame whose declared length runs past the
	// end of the buffer.
	ErrTruncated = errors.New("frame: declared length exceeds remaining buffer")
)

// Next reads the frame starting at off and returns its byte span together
// with the offset of the following frame. The span aliases buf; callers
// must treat it as read-only.
//
// Next fails with ErrZeroLength or ErrTruncated when the prefix is
// unusable, and with ErrTruncated when fewer than PrefixSize bytes remain.
// On failure the returned offset is unchanged; the caller decides how far
// to skip (see RecoveryStride).
func Next(buf []byte, off int) ([]byte, int, error) {
	if off+PrefixSize > len(buf) {
		return nil, off, ErrTruncated
	}

	length := int(binary.BigEndian.Uint16(buf[off : off+PrefixSize]))
	if length == 0 {
		return nil, off, ErrZeroLength
	}
	if off+length > len(buf) {
		return nil, off, ErrTruncated
	}

	return buf[off : off+length], off + length, nil
}
