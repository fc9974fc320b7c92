package archive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bcallard/smfdump/pkg/dump"
	"github.com/bcallard/smfdump/pkg/record"
	"github.com/bcallard/smfdump/pkg/smf110"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleRun(txids ...string) *dump.Accumulator {
	acc := dump.NewAccumulator()
	k := dump.Key{Family: smf110.Family, Subtype: 1}
	for _, id := range txids {
		acc.Records[k] = append(acc.Records[k], &smf110.Transaction{
			Header:        record.Header{Family: smf110.Family, SystemID: "SYSZ"},
			TransactionID: id,
			CPUTimeMillis: 1.5,
		})
		acc.FramesSeen++
	}
	return acc
}

func TestSaveAndLoadSummary(t *testing.T) {
	s := openStore(t)
	acc := sampleRun("TRN1", "TRN2")

	require.NoError(t, s.SaveRun(acc))

	summary, err := s.LoadSummary(acc.RunID)
	require.NoError(t, err)
	assert.Equal(t, acc.RunID, summary.RunID)
	assert.Equal(t, 2, summary.FramesSeen)
	assert.Equal(t, 2, summary.TotalRecords)
	assert.Equal(t, 2, summary.RecordCounts["110/1"])
}

func TestLoadSummaryMissingRun(t *testing.T) {
	s := openStore(t)

	_, err := s.LoadSummary("nope")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestLoadRecordsPreservesFrameOrder(t *testing.T) {
	s := openStore(t)
	acc := sampleRun("TRN1", "TRN2", "TRN3")
	require.NoError(t, s.SaveRun(acc))

	records, err := s.LoadRecords(acc.RunID, smf110.Family, 1)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "TRN1", records[0]["transaction_id"])
	assert.Equal(t, "TRN2", records[1]["transaction_id"])
	assert.Equal(t, "TRN3", records[2]["transaction_id"])
	assert.Equal(t, 1.5, records[0]["cpu_time_ms"])
}

func TestLoadRecordsMissingRun(t *testing.T) {
	s := openStore(t)

	_, err := s.LoadRecords("nope", smf110.Family, 1)
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestLoadRecordsEmptySubtype(t *testing.T) {
	s := openStore(t)
	acc := sampleRun("TRN1")
	require.NoError(t, s.SaveRun(acc))

	records, err := s.LoadRecords(acc.RunID, smf110.Family, 4)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestListRunsOrderedByRunID(t *testing.T) {
	s := openStore(t)

	first := sampleRun("TRN1")
	second := sampleRun("TRN2")
	require.NoError(t, s.SaveRun(first))
	require.NoError(t, s.SaveRun(second))

	runs, err := s.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// ksuid ids sort lexically in creation order.
	want := []string{first.RunID, second.RunID}
	if want[0] > want[1] {
		want[0], want[1] = want[1], want[0]
	}
	assert.Equal(t, want[0], runs[0].RunID)
	assert.Equal(t, want[1], runs[1].RunID)
}
