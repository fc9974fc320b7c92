// Package revision carries the per-format-revision offset tables.
//
// The job-accounting family's field positions drift between operating
// system releases, so those offsets are configuration, not constants.
// Default returns the tables for the observed sample format; Load
// overlays a TOML revision file on top of the defaults.
package revision

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// SMF30 holds the offsets the job-accounting decoders probe. All values
// are frame-relative unless noted.
type SMF30 struct {
	// IdentificationCandidates are tried in order for the job-name field
	// that opens the identification section.
	IdentificationCandidates []int `toml:"identification_candidates"`

	// IdentificationDefault is used when no candidate passes validation.
	IdentificationDefault int `toml:"identification_default"`

	// CPUCandidates are offsets of the CPU-time field relative to the
	// located identification base.
	CPUCandidates []int `toml:"cpu_candidates"`

	// CPUScanWindow / CPUScanStep bound the fallback scan for the timing
	// section when no candidate offset holds a plausible CPU value.
	CPUScanWindow int `toml:"cpu_scan_window"`
	CPUScanStep   int `toml:"cpu_scan_step"`
}

// SMF110 holds the fixed section offsets of the CICS statistics family.
type SMF110 struct {
	// ProductSection is the frame offset of the CICS product section.
	ProductSection int `toml:"product_section"`

	// PayloadBase is the frame offset where subtype payloads start.
	PayloadBase int `toml:"payload_base"`
}

// Revision is one format revision's complete offset configuration.
type Revision struct {
	Name   string `toml:"name"`
	SMF30  SMF30  `toml:"smf30"`
	SMF110 SMF110 `toml:"smf110"`
}

// Default returns the offsets of the sample format this tool was built
// against. These are the most commonly observed positions, not an
// authoritative layout.
func Default() Revision {
	return Revision{
		Name: "default",
		SMF30: SMF30{
			IdentificationCandidates: []int{28, 26, 32},
			IdentificationDefault:    28,
			CPUCandidates:            []int{40, 44, 48},
			CPUScanWindow:            40,
			CPUScanStep:              4,
		},
		SMF110: SMF110{
			ProductSection: 23,
			PayloadBase:    50,
		},
	}
}

// Load reads a TOML revision file over the defaults, so a file only needs
// to name the offsets that differ.
func Load(path string) (Revision, error) {
	rev := Default()
	if _, err := toml.DecodeFile(path, &rev); err != nil {
		return Revision{}, fmt.Errorf("load revision %s: %w", path, err)
	}
	if err := rev.Validate(); err != nil {
		return Revision{}, fmt.Errorf("revision %s: %w", path, err)
	}
	return rev, nil
}

// Validate rejects tables the decoders cannot work with.
func (r Revision) Validate() error {
	if len(r.SMF30.IdentificationCandidates) == 0 {
		return fmt.Errorf("smf30 identification_candidates is empty")
	}
	if r.SMF30.CPUScanStep <= 0 {
		return fmt.Errorf("smf30 cpu_scan_step must be positive, got %d", r.SMF30.CPUScanStep)
	}
	if r.SMF110.PayloadBase <= 0 {
		return fmt.Errorf("smf110 payload_base must be positive, got %d", r.SMF110.PayloadBase)
	}
	return nil
}
