package dump

import (
	"fmt"
	"sort"

	"github.com/segmentio/ksuid"

	"github.com/bcallard/smfdump/pkg/record"
)

// Key identifies one record shape: a family code plus its subtype
// discriminator. Both families use the same small subtype values, so
// neither byte alone is unique.
type Key struct {
	Family  uint8
	Subtype uint8
}

func (k Key) String() string { return fmt.Sprintf("%d/%d", k.Family, k.Subtype) }

// Accumulator is the complete outcome of one parse run: every decoded
// record in frame order per subtype, plus the error tallies. It is owned
// by a single Parse call and never shared between runs.
type Accumulator struct {
	RunID string

	Records map[Key][]record.Record

	FramesSeen       int
	ZeroLength       int
	Truncated        int
	ShortHeaders     int
	FormatMismatches int
	UnknownSubtypes  map[uint8]int
}

// NewAccumulator creates an empty accumulator with a fresh run id.
func NewAccumulator() *Accumulator {
	return &Accumulator{
		RunID:           ksuid.New().String(),
		Records:         make(map[Key][]record.Record),
		UnknownSubtypes: make(map[uint8]int),
	}
}

func (a *Accumulator) add(family uint8, rec record.Record) {
	k := Key{Family: family, Subtype: rec.Subtype()}
	a.Records[k] = append(a.Records[k], rec)
}

func (a *Accumulator) countUnknown(subtype uint8) {
	a.UnknownSubtypes[subtype]++
}

// Subtype returns the decoded records for one family/subtype pair, in the
// order their frames appeared in the buffer.
func (a *Accumulator) Subtype(family, subtype uint8) []record.Record {
	return a.Records[Key{Family: family, Subtype: subtype}]
}

// TotalRecords is the count of successfully decoded records across all
// subtypes.
func (a *Accumulator) TotalRecords() int {
	n := 0
	for _, recs := range a.Records {
		n += len(recs)
	}
	return n
}

// TotalErrors sums every error tally, unknown subtypes included.
func (a *Accumulator) TotalErrors() int {
	n := a.ZeroLength + a.Truncated + a.ShortHeaders + a.FormatMismatches
	for _, c := range a.UnknownSubtypes {
		n += c
	}
	return n
}

// Keys returns the populated family/subtype pairs in ascending order.
func (a *Accumulator) Keys() []Key {
	keys := make([]Key, 0, len(a.Records))
	for k := range a.Records {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Family != keys[j].Family {
			return keys[i].Family < keys[j].Family
		}
		return keys[i].Subtype < keys[j].Subtype
	})
	return keys
}

// Summary is the JSON-friendly digest of a run, the shape archived and
// served over HTTP.
type Summary struct {
	RunID            string         `json:"run_id"`
	FramesSeen       int            `json:"frames_seen"`
	TotalRecords     int            `json:"total_records"`
	TotalErrors      int            `json:"total_errors"`
	RecordCounts     map[string]int `json:"record_counts"`
	ZeroLength       int            `json:"framing_zero_length"`
	Truncated        int            `json:"framing_truncated"`
	ShortHeaders     int            `json:"short_headers"`
	FormatMismatches int            `json:"format_mismatches"`
	UnknownSubtypes  map[string]int `json:"unknown_subtypes"`
}

// Summarize produces the digest for archival and the HTTP surface.
func (a *Accumulator) Summarize() Summary {
	counts := make(map[string]int, len(a.Records))
	for k, recs := range a.Records {
		counts[k.String()] = len(recs)
	}
	unknown := make(map[string]int, len(a.UnknownSubtypes))
	for st, c := range a.UnknownSubtypes {
		unknown[fmt.Sprintf("%d", st)] = c
	}

	return Summary{
		RunID:            a.RunID,
		FramesSeen:       a.FramesSeen,
		TotalRecords:     a.TotalRecords(),
		TotalErrors:      a.TotalErrors(),
		RecordCounts:     counts,
		ZeroLength:       a.ZeroLength,
		Truncated:        a.Truncated,
		ShortHeaders:     a.ShortHeaders,
		FormatMismatches: a.FormatMismatches,
		UnknownSubtypes:  unknown,
	}
}
