package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/CoalValleyTech/span-sportshub/internal/store"
)

// StatRepository handles the flat player-stat records behind /api/stats.
type StatRepository struct {
	db *store.Database
}

// NewStatRepository creates a new stat repository.
func NewStatRepository(db *store.Database) *StatRepository {
	return &StatRepository{db: db}
}

const statColumns = `id, player_name, team_name, school_name, sport, division, season, stat_values, created_at`

// Create inserts a stat line and returns its id.
func (r *StatRepository) Create(ctx context.Context, line *store.StatLine) (string, error) {
	if line.ID == "" {
		line.ID = uuid.NewString()
	}
	if line.Values == nil {
		line.Values = map[string]float64{}
	}

	values, err := json.Marshal(line.Values)
	if err != nil {
		return "", fmt.Errorf("encoding stat values: %w", err)
	}

	query := `
		INSERT INTO stats (id, player_name, team_name, school_name, sport, division, season, stat_values)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`
	err = r.db.DB().QueryRowContext(ctx, query,
		line.ID, line.PlayerName, line.TeamName, line.SchoolName,
		line.Sport, line.Division, line.Season, values,
	).Scan(&line.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("inserting stat line: %w", store.Classify(err))
	}
	return line.ID, nil
}

// List returns all stat lines.
func (r *StatRepository) List(ctx context.Context) ([]*store.StatLine, error) {
	rows, err := r.db.DB().QueryContext(ctx, `SELECT `+statColumns+` FROM stats ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying stats: %w", store.Classify(err))
	}
	defer rows.Close()
	return scanStatLines(rows)
}

// ListBySport returns stat lines for one sport.
func (r *StatRepository) ListBySport(ctx context.Context, sport string) ([]*store.StatLine, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT `+statColumns+` FROM stats WHERE sport = $1 ORDER BY created_at DESC`, sport)
	if err != nil {
		return nil, fmt.Errorf("querying stats for %s: %w", sport, store.Classify(err))
	}
	defer rows.Close()
	return scanStatLines(rows)
}

// ListBySportAndDivision returns stat lines for one sport/division pair.
func (r *StatRepository) ListBySportAndDivision(ctx context.Context, sport, division string) ([]*store.StatLine, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT `+statColumns+` FROM stats WHERE sport = $1 AND division = $2 ORDER BY created_at DESC`,
		sport, division)
	if err != nil {
		return nil, fmt.Errorf("querying stats for %s/%s: %w", sport, division, store.Classify(err))
	}
	defer rows.Close()
	return scanStatLines(rows)
}

// Delete removes a stat line.
func (r *StatRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.DB().ExecContext(ctx, `DELETE FROM stats WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting stat line %s: %w", id, store.Classify(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result for stat line %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("stat line %s: %w", id, store.ErrNotFound)
	}
	return nil
}

func scanStatLines(rows *sql.Rows) ([]*store.StatLine, error) {
	var lines []*store.StatLine
	for rows.Next() {
		line := &store.StatLine{}
		var values []byte
		err := rows.Scan(
			&line.ID, &line.PlayerName, &line.TeamName, &line.SchoolName,
			&line.Sport, &line.Division, &line.Season, &values, &line.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning stat line: %w", err)
		}
		if err := json.Unmarshal(values, &line.Values); err != nil {
			return nil, fmt.Errorf("decoding stat values: %w", err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}
