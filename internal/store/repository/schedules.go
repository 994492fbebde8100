package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/CoalValleyTech/span-sportshub/internal/schedule"
	"github.com/CoalValleyTech/span-sportshub/internal/store"
)

// ScheduleRepository handles the flat cross-school schedules collection.
// Records here carry their own key, so updates are in place; the embedded
// per-school lists (SchoolRepository) have no such key.
type ScheduleRepository struct {
	db *store.Database
}

// NewScheduleRepository creates a new global schedule repository.
func NewScheduleRepository(db *store.Database) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// GlobalFilter narrows Query. An empty filter scans the full collection.
type GlobalFilter struct {
	Sport string
}

// Insert appends a record to the flat collection and returns its id. A nil
// SchoolID stays NULL in the row and absent from the JSON form; it is never
// stored as an empty string.
func (r *ScheduleRepository) Insert(ctx context.Context, rec *store.GlobalScheduleRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	entry, err := json.Marshal(rec.Entry)
	if err != nil {
		return "", fmt.Errorf("encoding schedule entry: %w", err)
	}

	var schoolID sql.NullString
	if rec.SchoolID != nil && *rec.SchoolID != "" {
		schoolID = sql.NullString{String: *rec.SchoolID, Valid: true}
	}

	query := `
		INSERT INTO schedules (id, school_id, school_name, sport, entry)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err = r.db.DB().QueryRowContext(ctx, query,
		rec.ID, schoolID, rec.SchoolName, rec.Sport, entry,
	).Scan(&rec.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("inserting schedule record: %w", store.Classify(err))
	}

	return rec.ID, nil
}

// GetByID finds one record.
func (r *ScheduleRepository) GetByID(ctx context.Context, id string) (*store.GlobalScheduleRecord, error) {
	query := `SELECT id, school_id, school_name, sport, entry, created_at FROM schedules WHERE id = $1`
	rec, err := scanScheduleRecord(r.db.DB().QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("querying schedule record %s: %w", id, store.Classify(err))
	}
	return rec, nil
}

// Query scans the collection, optionally narrowed by sport. No pagination:
// the collection holds at most a few hundred rows.
func (r *ScheduleRepository) Query(ctx context.Context, filter GlobalFilter) ([]*store.GlobalScheduleRecord, error) {
	var rows *sql.Rows
	var err error
	if filter.Sport != "" {
		rows, err = r.db.DB().QueryContext(ctx,
			`SELECT id, school_id, school_name, sport, entry, created_at FROM schedules WHERE sport = $1`,
			filter.Sport)
	} else {
		rows, err = r.db.DB().QueryContext(ctx,
			`SELECT id, school_id, school_name, sport, entry, created_at FROM schedules`)
	}
	if err != nil {
		return nil, fmt.Errorf("querying schedule records: %w", store.Classify(err))
	}
	defer rows.Close()

	var records []*store.GlobalScheduleRecord
	for rows.Next() {
		rec, err := scanScheduleRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning schedule record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// UpdateScore sets the score (and optionally status) on a flat record in
// place. The flat record has a real key, so no remove/re-add dance is
// needed here.
func (r *ScheduleRepository) UpdateScore(ctx context.Context, id string, score *schedule.Score, status string) error {
	rec, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	rec.Score = score
	if status != "" {
		rec.Status = status
	}

	entry, err := json.Marshal(rec.Entry)
	if err != nil {
		return fmt.Errorf("encoding schedule entry: %w", err)
	}

	_, err = r.db.DB().ExecContext(ctx, `UPDATE schedules SET entry = $2 WHERE id = $1`, id, entry)
	if err != nil {
		return fmt.Errorf("updating schedule record %s: %w", id, store.Classify(err))
	}
	return nil
}

// DeleteByID removes a record.
func (r *ScheduleRepository) DeleteByID(ctx context.Context, id string) error {
	res, err := r.db.DB().ExecContext(ctx, `DELETE FROM schedules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting schedule record %s: %w", id, store.Classify(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result for %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("schedule record %s: %w", id, store.ErrNotFound)
	}
	return nil
}

// DeleteAll wipes the collection, firing one delete per record
// concurrently. Individual failures never abort the sweep; the ids that
// failed come back so the admin can see what survived.
func (r *ScheduleRepository) DeleteAll(ctx context.Context) ([]string, error) {
	records, err := r.Query(ctx, GlobalFilter{})
	if err != nil {
		return nil, err
	}

	var (
		mu     sync.Mutex
		failed []string
		wg     sync.WaitGroup
	)
	for _, rec := range records {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if _, err := r.db.DB().ExecContext(ctx, `DELETE FROM schedules WHERE id = $1`, id); err != nil {
				mu.Lock()
				failed = append(failed, id)
				mu.Unlock()
			}
		}(rec.ID)
	}
	wg.Wait()

	return failed, nil
}

func scanScheduleRecord(row rowScanner) (*store.GlobalScheduleRecord, error) {
	rec := &store.GlobalScheduleRecord{}
	var schoolID sql.NullString
	var entry []byte

	err := row.Scan(&rec.ID, &schoolID, &rec.SchoolName, &rec.Sport, &entry, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}

	if schoolID.Valid {
		rec.SchoolID = &schoolID.String
	}
	if err := json.Unmarshal(entry, &rec.Entry); err != nil {
		return nil, fmt.Errorf("decoding schedule entry: %w", err)
	}
	return rec, nil
}
