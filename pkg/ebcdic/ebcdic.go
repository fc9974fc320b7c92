// Package ebcdic converts fixed-width EBCDIC byte fields to Go strings.
//
// SMF records carry text in IBM code page 037, padded on the right with
// EBCDIC spaces (0x40) or NULs. Decode is total: input that does not map
// to readable text comes back as a hexadecimal rendering of the raw bytes
// instead of an error, so callers never have to handle a decode failure.
package ebcdic

import (
	"encoding/hex"
	"strings"
	"unicode"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Space is the EBCDIC space byte used to pad fixed-width text fields.
const Space = 0x40

// Decode converts a fixed-width EBCDIC field to a string. Trailing space
// and NUL padding is trimmed. If the field decodes to anything other than
// graphic text, the raw bytes are returned hex-encoded instead; Decode
// never fails.
func Decode(b []byte) string {
	trimmed := trimPadding(b)
	if len(trimmed) == 0 {
		return ""
	}

	decoded, err := charmap.CodePage037.NewDecoder().Bytes(trimmed)
	if err != nil {
		return hex.EncodeToString(b)
	}

	s := string(decoded)
	for _, r := range s {
		if !unicode.IsGraphic(r) {
			return hex.EncodeToString(b)
		}
	}

	return strings.TrimRight(s, " ")
}

// Encode converts a string to a fixed-width EBCDIC field, space-padded and
// truncated to width. Runes outside code page 037 are replaced rather than
// rejected. Encode exists for building synthetic records; the decoder is
// the production path.
func Encode(s string, width int) []byte {
	out := make([]byte, width)
	for i := range out {
		out[i] = Space
	}

	enc := encoding.ReplaceUnsupported(charmap.CodePage037.NewEncoder())
	converted, err := enc.Bytes([]byte(s))
	if err != nil {
		return out
	}

	copy(out, converted)
	return out
}

// trimPadding strips trailing NUL and EBCDIC-space bytes.
func trimPadding(b []byte) []byte {
	end := len(b)
	for end > 0 && (b[end-1] == 0x00 || b[end-1] == Space) {
		end--
	}
	return b[:end]
}
