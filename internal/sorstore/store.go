package sorstore

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/sorparser/internal/sor"
)

// SaveRecord persists a decoded Record as a new run, along with one
// sor_key_event row per decoded event, and returns the generated run ID.
func (db *DB) SaveRecord(rec *sor.Record) (string, error) {
	runID := uuid.NewString()

	blocksFoundJSON, err := json.Marshal(rec.BlocksFound)
	if err != nil {
		return "", fmt.Errorf("marshaling blocks_found: %w", err)
	}
	errorsJSON, err := marshalOrNil(rec.Errors)
	if err != nil {
		return "", fmt.Errorf("marshaling errors: %w", err)
	}
	equipmentJSON, err := marshalOrNil(rec.Equipment)
	if err != nil {
		return "", fmt.Errorf("marshaling equipment: %w", err)
	}
	generalJSON, err := marshalOrNil(rec.General)
	if err != nil {
		return "", fmt.Errorf("marshaling general: %w", err)
	}
	acquisitionJSON, err := marshalOrNil(rec.Acquisition)
	if err != nil {
		return "", fmt.Errorf("marshaling acquisition: %w", err)
	}
	dataPointsJSON, err := marshalOrNil(rec.DataPoints)
	if err != nil {
		return "", fmt.Errorf("marshaling data_points: %w", err)
	}

	var summaryJSON any
	if rec.KeyEvents != nil {
		summaryJSON, err = marshalOrNil(rec.KeyEvents.Summary)
		if err != nil {
			return "", fmt.Errorf("marshaling key_events summary: %w", err)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO sor_run (
			run_id, filename, file_size_bytes, parsed_at_unix, blocks_found_json,
			errors_json, equipment_json, general_json, acquisition_json,
			key_events_summary_json, data_points_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, rec.Filename, rec.FileSizeBytes, time.Now().Unix(), string(blocksFoundJSON),
		errorsJSON, equipmentJSON, generalJSON, acquisitionJSON, summaryJSON, dataPointsJSON,
	)
	if err != nil {
		return "", fmt.Errorf("inserting sor_run: %w", err)
	}

	if rec.KeyEvents != nil {
		stmt, err := tx.Prepare(`
			INSERT INTO sor_key_event (
				run_id, event_number, time_of_travel_100ps, distance_m, slope_dbkm,
				splice_loss_db, reflectance_db, event_type_raw, event_type_description, comment
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return "", fmt.Errorf("preparing sor_key_event insert: %w", err)
		}
		defer stmt.Close()

		for _, evt := range rec.KeyEvents.Events {
			_, err := stmt.Exec(
				runID, evt.EventNumber, evt.TimeOfTravel100ps, evt.DistanceM, evt.SlopeDBkm,
				evt.SpliceLossDB, evt.ReflectanceDB, evt.EventTypeRaw, evt.EventTypeDescription, evt.Comment,
			)
			if err != nil {
				return "", fmt.Errorf("inserting sor_key_event %d: %w", evt.EventNumber, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing transaction: %w", err)
	}
	return runID, nil
}

// marshalOrNil marshals v to JSON, returning a nil interface (stored as SQL
// NULL) for a nil pointer/map/slice rather than the literal string "null".
func marshalOrNil(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if string(b) == "null" {
		return nil, nil
	}
	return string(b), nil
}

// LossSummary reports descriptive statistics over the splice loss of every
// key event recorded for runs whose filename matches filenameLike (a SQL
// LIKE pattern; pass "%" to cover every run).
type LossSummary struct {
	SampleCount int
	MeanLossDB  float64
	StdDevDB    float64
	MaxLossDB   float64
}

// LossSummaryForFilename computes LossSummary across every stored event for
// runs whose filename matches filenameLike.
func (db *DB) LossSummaryForFilename(filenameLike string) (*LossSummary, error) {
	rows, err := db.Query(`
		SELECT e.splice_loss_db
		FROM sor_key_event e
		JOIN sor_run r ON r.run_id = e.run_id
		WHERE r.filename LIKE ?`, filenameLike)
	if err != nil {
		return nil, fmt.Errorf("querying splice loss values: %w", err)
	}
	defer rows.Close()

	var losses []float64
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scanning splice_loss_db: %w", err)
		}
		losses = append(losses, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(losses) == 0 {
		return &LossSummary{}, nil
	}

	mean, stdDev := stat.MeanStdDev(losses, nil)
	max := losses[0]
	for _, v := range losses {
		if v > max {
			max = v
		}
	}
	return &LossSummary{
		SampleCount: len(losses),
		MeanLossDB:  mean,
		StdDevDB:    stdDev,
		MaxLossDB:   max,
	}, nil
}
