// Package archive persists completed parse runs in a local pebble store
// so the HTTP surface can answer queries without re-parsing dump files.
// Run ids are ksuids, so the lexical key order of the store is also
// chronological.
package archive

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"

	"github.com/bcallard/smfdump/pkg/dump"
)

// ErrRunNotFound reports a run id with no archived summary.
var ErrRunNotFound = errors.New("archive: run not found")

// Store is a pebble-backed archive of parse runs. It is safe for
// concurrent readers; writes go through SaveRun.
type Store struct {
	db *pebble.DB
}

// Open opens (or creates) the archive at path.
func Open(path string) (*Store, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("archive: open %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close flushes and closes the underlying store.
func (s *Store) Close() error {
	return s.db.Close()
}

func summaryKey(runID string) []byte {
	return []byte("summary/" + runID)
}

func recordKey(runID string, k dump.Key, seq int) []byte {
	return []byte(fmt.Sprintf("records/%s/%03d/%03d/%08d", runID, k.Family, k.Subtype, seq))
}

func recordPrefix(runID string, family, subtype uint8) []byte {
	return []byte(fmt.Sprintf("records/%s/%03d/%03d/", runID, family, subtype))
}

// upperBound is the exclusive end key for a prefix scan.
func upperBound(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xFF {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}

// SaveRun archives a run's summary and every decoded record's flat map,
// keyed so that records come back in frame order per subtype. The whole
// run is committed in one batch.
func (s *Store) SaveRun(acc *dump.Accumulator) error {
	batch := s.db.NewBatch()
	defer batch.Close()

	summary, err := json.Marshal(acc.Summarize())
	if err != nil {
		return fmt.Errorf("archive: encode summary: %w", err)
	}
	if err := batch.Set(summaryKey(acc.RunID), summary, nil); err != nil {
		return err
	}

	for _, k := range acc.Keys() {
		for seq, rec := range acc.Records[k] {
			body, err := json.Marshal(rec.FlatMap())
			if err != nil {
				return fmt.Errorf("archive: encode record %s/%d: %w", k, seq, err)
			}
			if err := batch.Set(recordKey(acc.RunID, k, seq), body, nil); err != nil {
				return err
			}
		}
	}

	if err := batch.Commit(pebble.Sync); err != nil {
		return fmt.Errorf("archive: commit run %s: %w", acc.RunID, err)
	}
	return nil
}

// LoadSummary returns the archived summary for one run.
func (s *Store) LoadSummary(runID string) (dump.Summary, error) {
	data, closer, err := s.db.Get(summaryKey(runID))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return dump.Summary{}, ErrRunNotFound
		}
		return dump.Summary{}, err
	}
	defer closer.Close()

	var summary dump.Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		return dump.Summary{}, fmt.Errorf("archive: decode summary %s: %w", runID, err)
	}
	return summary, nil
}

// ListRuns returns every archived run summary in run-id order, which for
// ksuid ids is creation order.
func (s *Store) ListRuns() ([]dump.Summary, error) {
	prefix := []byte("summary/")
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: upperBound(prefix),
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var runs []dump.Summary
	for iter.First(); iter.Valid(); iter.Next() {
		var summary dump.Summary
		if err := json.Unmarshal(iter.Value(), &summary); err != nil {
			return nil, fmt.Errorf("archive: decode %s: %w", iter.Key(), err)
		}
		runs = append(runs, summary)
	}
	return runs, iter.Error()
}

// LoadRecords returns the archived flat maps for one run's family/subtype
// pair, in the order their frames appeared in the dump.
func (s *Store) LoadRecords(runID string, family, subtype uint8) ([]map[string]any, error) {
	if _, err := s.LoadSummary(runID); err != nil {
		return nil, err
	}

	prefix := recordPrefix(runID, family, subtype)
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: upperBound(prefix),
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var records []map[string]any
	for iter.First(); iter.Valid(); iter.Next() {
		var m map[string]any
		if err := json.Unmarshal(iter.Value(), &m); err != nil {
			return nil, fmt.Errorf("archive: decode %s: %w", iter.Key(), err)
		}
		records = append(records, m)
	}
	return records, iter.Error()
}
