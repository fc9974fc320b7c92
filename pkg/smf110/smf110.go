// Package smf110 decodes record family 110: CICS resource statistics.
//
// Subtype payloads sit at a fixed base past the common header and the
// CICS product section, so this family needs no offset heuristics — the
// descriptor tables in decode.go are the whole layout.
package smf110

import (
	"github.com/bcallard/smfdump/pkg/ebcdic"
	"github.com/bcallard/smfdump/pkg/record"
	"github.com/bcallard/smfdump/pkg/revision"
)

// Family is the record-family code for CICS statistics records.
const Family uint8 = 110

// Identification is the CICS product section carried between the common
// header and the subtype payload.
type Identification struct {
	ApplID     string
	JobName    string
	Release    string
	SMFRelease string
}

func decodeIdentification(fr []byte, rev revision.SMF110) Identification {
	ps := rev.ProductSection
	return Identification{
		ApplID:     text(fr, ps, 8),
		JobName:    text(fr, ps+8, 8),
		Release:    text(fr, ps+16, 4),
		SMFRelease: text(fr, ps+20, 2),
	}
}

// text reads a fixed-width EBCDIC field, empty when out of bounds.
func text(fr []byte, off, width int) string {
	if off < 0 || off+width > len(fr) {
		return ""
	}
	return ebcdic.Decode(fr[off : off+width])
}

// NewRegistry builds the dispatch table for all family-110 subtypes using
// the given revision's section offsets.
func NewRegistry(rev revision.SMF110) *record.Registry {
	reg := record.NewRegistry(Family)
	reg.Register(1, "Transaction Statistics", decodeTransaction(rev))
	reg.Register(2, "File Statistics", decodeFile(rev))
	reg.Register(3, "Program Statistics", decodeProgram(rev))
	reg.Register(4, "Terminal Statistics", decodeTerminal(rev))
	reg.Register(5, "Storage Statistics", decodeStorage(rev))
	return reg
}

// baseMap is the header and identification portion every family-110
// record's flat map shares.
func baseMap(hdr record.Header, id Identification, subtype uint8, name string) map[string]any {
	return map[string]any{
		"record_type":   uint64(hdr.Family),
		"record_length": uint64(hdr.RecordLength),
		"flags":         uint64(hdr.Flags),
		"timestamp":     uint64(hdr.Timestamp),
		"system_id":     hdr.SystemID,
		"subsystem_id":  hdr.SubsystemID,
		"applid":        id.ApplID,
		"jobname":       id.JobName,
		"release":       id.Release,
		"smf_release":   id.SMFRelease,
		"subtype":       uint64(subtype),
		"subtype_name":  name,
	}
}
