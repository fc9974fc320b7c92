// Package smf30 decodes record family 30: job and step accounting records.
//
// Unlike the CICS family, the identification section of these records is
// not at a stable offset across operating system releases. Decoders first
// locate the job-name field by probing the revision's candidate offsets
// (first decoded character must be alphanumeric), then read everything
// else relative to that base. Subtype 1 additionally probes for the
// timing section, whose distance from the identification section drifts:
// a value is accepted as the CPU-time field only if it is plausible
// (under one hour of microseconds).
package smf30

import (
	"encoding/binary"

	"github.com/bcallard/smfdump/pkg/ebcdic"
	"github.com/bcallard/smfdump/pkg/record"
	"github.com/bcallard/smfdump/pkg/revision"
)

// Family is the record-family code for job accounting records.
const Family uint8 = 30

// NewRegistry builds the dispatch table for all family-30 subtypes using
// the given revision's candidate offsets.
func NewRegistry(rev revision.SMF30) *record.Registry {
	reg := record.NewRegistry(Family)
	reg.Register(1, "Job Step Termination", decodeStepTermination(rev))
	reg.Register(2, "Job Termination", decodeJobTermination(rev))
	reg.Register(3, "Step Initiation", decodeStepInitiation(rev))
	reg.Register(4, "Job Initiation", decodeJobInitiation(rev))
	reg.Register(5, "NetStep Completion", decodeNetStep(rev))
	return reg
}

// jobNamePlausible accepts an 8-byte span whose first decoded character
// is alphanumeric. Job names are the anchor of the identification
// section; padding and binary noise fail this.
func jobNamePlausible(b []byte) bool {
	s := ebcdic.Decode(b)
	if s == "" {
		return false
	}
	c := s[0]
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}

// cpuPlausible accepts a big-endian word that could be a CPU time in
// microseconds: nonzero and under one hour.
func cpuPlausible(b []byte) bool {
	v := binary.BigEndian.Uint32(b)
	return v > 0 && uint64(v) < record.MaxCPUMicros
}

// locateIdentification returns the frame offset of the identification
// section, falling back to the revision default when nothing plausible
// is found.
func locateIdentification(fr []byte, rev revision.SMF30) int {
	if base, ok := record.Locate(fr, rev.IdentificationCandidates, 8, jobNamePlausible); ok {
		return base
	}
	return rev.IdentificationDefault
}

// locateTiming returns the frame offset of the CPU-time field for
// subtype 1. Candidate offsets relative to the identification base are
// tried first, then a stepped scan over the configured window. When
// nothing plausible turns up, the first candidate position is used and
// the field clamps take over.
func locateTiming(fr []byte, identBase int, rev revision.SMF30) int {
	candidates := make([]int, len(rev.CPUCandidates))
	for i, c := range rev.CPUCandidates {
		candidates[i] = identBase + c
	}
	if off, ok := record.Locate(fr, candidates, 4, cpuPlausible); ok {
		return off
	}

	start := identBase
	if len(rev.CPUCandidates) > 0 {
		start += rev.CPUCandidates[0]
	}
	if off, ok := record.LocateStep(fr, start, rev.CPUScanWindow, rev.CPUScanStep, 4, cpuPlausible); ok {
		return off
	}
	return start
}

// baseMap is the header portion every family-30 record's flat map shares.
func baseMap(hdr record.Header, subtype uint8, name string) map[string]any {
	return map[string]any{
		"record_type":   uint64(hdr.Family),
		"record_length": uint64(hdr.RecordLength),
		"flags":         uint64(hdr.Flags),
		"timestamp":     uint64(hdr.Timestamp),
		"system_id":     hdr.SystemID,
		"subsystem_id":  hdr.SubsystemID,
		"subtype":       uint64(subtype),
		"subtype_name":  name,
	}
}
