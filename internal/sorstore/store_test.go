package sorstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/sorparser/internal/sor"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenMigratesToLatestVersion(t *testing.T) {
	db := openTestDB(t)

	version, dirty, err := db.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)

	var tableCount int
	err = db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name IN ('sor_run', 'sor_key_event')`).Scan(&tableCount)
	require.NoError(t, err)
	assert.Equal(t, 2, tableCount)
}

func TestSaveRecordPersistsRunAndEvents(t *testing.T) {
	db := openTestDB(t)

	rec := &sor.Record{
		Filename:      "trace1.sor",
		FileSizeBytes: 1024,
		BlocksFound:   []string{"FxdParams", "KeyEvents"},
		Acquisition:   &sor.Acquisition{GroupIndex: 1.4685},
		KeyEvents: &sor.KeyEvents{
			NumEvents: 2,
			Events: []sor.Event{
				{EventNumber: 1, DistanceM: 100.5, SpliceLossDB: 0.25, ReflectanceDB: -40, EventTypeRaw: "0A", EventTypeDescription: "non-reflective, added-by-user"},
				{EventNumber: 2, DistanceM: 5000.0, SpliceLossDB: 0.1, ReflectanceDB: -35, EventTypeRaw: "1F000000", EventTypeDescription: "reflective, end-of-fiber"},
			},
		},
	}

	runID, err := db.SaveRecord(rec)
	require.NoError(t, err)
	assert.NotEmpty(t, runID)

	var filename string
	var blocksFoundJSON string
	err = db.QueryRow(`SELECT filename, blocks_found_json FROM sor_run WHERE run_id = ?`, runID).Scan(&filename, &blocksFoundJSON)
	require.NoError(t, err)
	assert.Equal(t, "trace1.sor", filename)
	assert.JSONEq(t, `["FxdParams","KeyEvents"]`, blocksFoundJSON)

	var eventCount int
	err = db.QueryRow(`SELECT COUNT(*) FROM sor_key_event WHERE run_id = ?`, runID).Scan(&eventCount)
	require.NoError(t, err)
	assert.Equal(t, 2, eventCount)
}

func TestSaveRecordWithNoKeyEventsInsertsNoEventRows(t *testing.T) {
	db := openTestDB(t)

	rec := &sor.Record{Filename: "nodekeyevents.sor", FileSizeBytes: 10}
	runID, err := db.SaveRecord(rec)
	require.NoError(t, err)

	var count int
	err = db.QueryRow(`SELECT COUNT(*) FROM sor_key_event WHERE run_id = ?`, runID).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestLossSummaryForFilenameAggregatesAcrossRuns(t *testing.T) {
	db := openTestDB(t)

	for i, loss := range []float64{0.2, 0.3, 0.4} {
		rec := &sor.Record{
			Filename: "cable-a.sor",
			KeyEvents: &sor.KeyEvents{
				NumEvents: 1,
				Events:    []sor.Event{{EventNumber: uint16(i + 1), SpliceLossDB: loss}},
			},
		}
		_, err := db.SaveRecord(rec)
		require.NoError(t, err)
	}

	summary, err := db.LossSummaryForFilename("cable-a.sor")
	require.NoError(t, err)
	assert.Equal(t, 3, summary.SampleCount)
	assert.InDelta(t, 0.3, summary.MeanLossDB, 1e-9)
	assert.InDelta(t, 0.4, summary.MaxLossDB, 1e-9)
}

func TestLossSummaryForFilenameNoMatchesReturnsEmptySummary(t *testing.T) {
	db := openTestDB(t)

	summary, err := db.LossSummaryForFilename("does-not-exist.sor")
	require.NoError(t, err)
	assert.Equal(t, 0, summary.SampleCount)
}
