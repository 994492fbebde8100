package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/CoalValleyTech/span-sportshub/internal/schedule"
	"github.com/CoalValleyTech/span-sportshub/internal/store"
)

// SchoolRepository handles the schools collection, including the embedded
// per-sport schedule lists and per-sport/per-season rosters.
type SchoolRepository struct {
	db *store.Database
}

// NewSchoolRepository creates a new school repository.
func NewSchoolRepository(db *store.Database) *SchoolRepository {
	return &SchoolRepository{db: db}
}

const schoolColumns = `id, name, location, logo_url, sports, schedules, rosters, created_at, updated_at`

// Create inserts a new school record and returns its generated id.
func (r *SchoolRepository) Create(ctx context.Context, school *store.School) (string, error) {
	if school.ID == "" {
		school.ID = uuid.NewString()
	}

	sports, err := json.Marshal(emptyIfNilSlice(school.Sports))
	if err != nil {
		return "", fmt.Errorf("encoding sports: %w", err)
	}
	schedules, err := json.Marshal(emptyIfNilSchedules(school.Schedules))
	if err != nil {
		return "", fmt.Errorf("encoding schedules: %w", err)
	}
	rosters, err := json.Marshal(emptyIfNilRosters(school.Rosters))
	if err != nil {
		return "", fmt.Errorf("encoding rosters: %w", err)
	}

	query := `
		INSERT INTO schools (id, name, location, logo_url, sports, schedules, rosters)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`
	err = r.db.DB().QueryRowContext(ctx, query,
		school.ID, school.Name, school.Location, school.LogoURL, sports, schedules, rosters,
	).Scan(&school.CreatedAt, &school.UpdatedAt)
	if err != nil {
		return "", fmt.Errorf("inserting school: %w", store.Classify(err))
	}

	return school.ID, nil
}

// GetByID finds a school by id.
func (r *SchoolRepository) GetByID(ctx context.Context, id string) (*store.School, error) {
	query := `SELECT ` + schoolColumns + ` FROM schools WHERE id = $1`
	school, err := r.scanSchool(r.db.DB().QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("querying school %s: %w", id, store.Classify(err))
	}
	return school, nil
}

// FindByName resolves a school by exact display-name match. Case and
// whitespace variants do not match; an opponent that resolves to no school
// is treated as an external team.
func (r *SchoolRepository) FindByName(ctx context.Context, name string) (*store.School, error) {
	query := `SELECT ` + schoolColumns + ` FROM schools WHERE name = $1 LIMIT 1`
	school, err := r.scanSchool(r.db.DB().QueryRowContext(ctx, query, name))
	if err != nil {
		return nil, fmt.Errorf("querying school %q: %w", name, store.Classify(err))
	}
	return school, nil
}

// List returns all schools, newest first. If the ordered query fails the
// caller still gets the collection through an unordered fallback scan.
func (r *SchoolRepository) List(ctx context.Context) ([]*store.School, error) {
	ordered := `SELECT ` + schoolColumns + ` FROM schools ORDER BY created_at DESC`
	rows, err := r.db.DB().QueryContext(ctx, ordered)
	if err != nil {
		rows, err = r.db.DB().QueryContext(ctx, `SELECT `+schoolColumns+` FROM schools`)
		if err != nil {
			return nil, fmt.Errorf("querying schools: %w", store.Classify(err))
		}
	}
	defer rows.Close()

	return r.scanSchools(rows)
}

// ListPaginated returns the newest schools up to limit.
func (r *SchoolRepository) ListPaginated(ctx context.Context, limit int) ([]*store.School, error) {
	query := `SELECT ` + schoolColumns + ` FROM schools ORDER BY created_at DESC LIMIT $1`
	rows, err := r.db.DB().QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying schools: %w", store.Classify(err))
	}
	defer rows.Close()

	return r.scanSchools(rows)
}

// Update applies a partial update. Nil fields are left untouched.
func (r *SchoolRepository) Update(ctx context.Context, id string, name, location, logoURL *string) error {
	query := `
		UPDATE schools SET
			name = COALESCE($2, name),
			location = COALESCE($3, location),
			logo_url = COALESCE($4, logo_url),
			updated_at = NOW()
		WHERE id = $1
	`
	res, err := r.db.DB().ExecContext(ctx, query, id, name, location, logoURL)
	if err != nil {
		return fmt.Errorf("updating school %s: %w", id, store.Classify(err))
	}
	return r.requireRow(res, id)
}

// Delete removes a school record.
func (r *SchoolRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.DB().ExecContext(ctx, `DELETE FROM schools WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting school %s: %w", id, store.Classify(err))
	}
	return r.requireRow(res, id)
}

// AddSport appends a sport to the school's sports list with exact-match
// dedup (arrayUnion semantics).
func (r *SchoolRepository) AddSport(ctx context.Context, id, sport string) error {
	query := `
		UPDATE schools SET
			sports = CASE WHEN sports @> to_jsonb($2::text)
				THEN sports
				ELSE sports || to_jsonb($2::text) END,
			updated_at = NOW()
		WHERE id = $1
	`
	res, err := r.db.DB().ExecContext(ctx, query, id, sport)
	if err != nil {
		return fmt.Errorf("adding sport to school %s: %w", id, store.Classify(err))
	}
	return r.requireRow(res, id)
}

// AppendEntries adds entries to the school's schedules[sport] list with
// union semantics: exact-value duplicates are collapsed, everything else is
// appended.
func (r *SchoolRepository) AppendEntries(ctx context.Context, id, sport string, entries []schedule.Entry) error {
	schedules, err := r.loadSchedules(ctx, id)
	if err != nil {
		return err
	}

	schedules[sport] = schedule.Union(schedules[sport], entries...)
	return r.storeSchedules(ctx, id, schedules)
}

// RemoveEntry removes the stored entry that deeply equals the given one.
// When no stored entry matches the full value, nothing happens and no error
// is raised; the caller cannot distinguish this from a successful removal.
func (r *SchoolRepository) RemoveEntry(ctx context.Context, id, sport string, entry schedule.Entry) error {
	schedules, err := r.loadSchedules(ctx, id)
	if err != nil {
		return err
	}

	updated, found := schedule.RemoveExact(schedules[sport], entry)
	if !found {
		return nil
	}

	schedules[sport] = updated
	return r.storeSchedules(ctx, id, schedules)
}

// ReplaceEntry removes old then appends new as two separate round-trips.
// There is no transaction across the steps: a crash in between loses the
// entry (removed, never re-added).
func (r *SchoolRepository) ReplaceEntry(ctx context.Context, id, sport string, old, updated schedule.Entry) error {
	if err := r.RemoveEntry(ctx, id, sport, old); err != nil {
		return err
	}
	return r.AppendEntries(ctx, id, sport, []schedule.Entry{updated})
}

// SetRoster stores the roster for a sport/season, replacing any previous
// list for that slot.
func (r *SchoolRepository) SetRoster(ctx context.Context, id string, roster store.Roster) error {
	rosters, err := r.loadRosters(ctx, id)
	if err != nil {
		return err
	}

	bySeason := rosters[roster.Sport]
	if bySeason == nil {
		bySeason = make(map[string]store.Roster)
		rosters[roster.Sport] = bySeason
	}
	bySeason[roster.Season] = roster

	return r.storeRosters(ctx, id, rosters)
}

// DeletePlayer removes the player at index from a sport/season roster.
func (r *SchoolRepository) DeletePlayer(ctx context.Context, id, sport, season string, index int) error {
	rosters, err := r.loadRosters(ctx, id)
	if err != nil {
		return err
	}

	roster, ok := rosters[sport][season]
	if !ok {
		return fmt.Errorf("roster %s/%s on school %s: %w", sport, season, id, store.ErrNotFound)
	}
	if index < 0 || index >= len(roster.Players) {
		return fmt.Errorf("player index %d out of range for roster %s/%s: %w", index, sport, season, store.ErrNotFound)
	}

	roster.Players = append(roster.Players[:index], roster.Players[index+1:]...)
	rosters[sport][season] = roster

	return r.storeRosters(ctx, id, rosters)
}

func (r *SchoolRepository) loadSchedules(ctx context.Context, id string) (map[string][]schedule.Entry, error) {
	var raw []byte
	err := r.db.DB().QueryRowContext(ctx, `SELECT schedules FROM schools WHERE id = $1`, id).Scan(&raw)
	if err != nil {
		return nil, fmt.Errorf("loading schedules for school %s: %w", id, store.Classify(err))
	}

	schedules := make(map[string][]schedule.Entry)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &schedules); err != nil {
			return nil, fmt.Errorf("decoding schedules for school %s: %w", id, err)
		}
	}
	return schedules, nil
}

func (r *SchoolRepository) storeSchedules(ctx context.Context, id string, schedules map[string][]schedule.Entry) error {
	raw, err := json.Marshal(schedules)
	if err != nil {
		return fmt.Errorf("encoding schedules for school %s: %w", id, err)
	}

	_, err = r.db.DB().ExecContext(ctx,
		`UPDATE schools SET schedules = $2, updated_at = NOW() WHERE id = $1`, id, raw)
	if err != nil {
		return fmt.Errorf("storing schedules for school %s: %w", id, store.Classify(err))
	}
	return nil
}

func (r *SchoolRepository) loadRosters(ctx context.Context, id string) (map[string]map[string]store.Roster, error) {
	var raw []byte
	err := r.db.DB().QueryRowContext(ctx, `SELECT rosters FROM schools WHERE id = $1`, id).Scan(&raw)
	if err != nil {
		return nil, fmt.Errorf("loading rosters for school %s: %w", id, store.Classify(err))
	}

	rosters := make(map[string]map[string]store.Roster)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &rosters); err != nil {
			return nil, fmt.Errorf("decoding rosters for school %s: %w", id, err)
		}
	}
	return rosters, nil
}

func (r *SchoolRepository) storeRosters(ctx context.Context, id string, rosters map[string]map[string]store.Roster) error {
	raw, err := json.Marshal(rosters)
	if err != nil {
		return fmt.Errorf("encoding rosters for school %s: %w", id, err)
	}

	_, err = r.db.DB().ExecContext(ctx,
		`UPDATE schools SET rosters = $2, updated_at = NOW() WHERE id = $1`, id, raw)
	if err != nil {
		return fmt.Errorf("storing rosters for school %s: %w", id, store.Classify(err))
	}
	return nil
}

func (r *SchoolRepository) requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking result for school %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("school %s: %w", id, store.ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *SchoolRepository) scanSchool(row rowScanner) (*store.School, error) {
	school := &store.School{}
	var sports, schedules, rosters []byte

	err := row.Scan(
		&school.ID, &school.Name, &school.Location, &school.LogoURL,
		&sports, &schedules, &rosters, &school.CreatedAt, &school.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(sports, &school.Sports); err != nil {
		return nil, fmt.Errorf("decoding sports: %w", err)
	}
	if err := json.Unmarshal(schedules, &school.Schedules); err != nil {
		return nil, fmt.Errorf("decoding schedules: %w", err)
	}
	if err := json.Unmarshal(rosters, &school.Rosters); err != nil {
		return nil, fmt.Errorf("decoding rosters: %w", err)
	}
	return school, nil
}

func (r *SchoolRepository) scanSchools(rows *sql.Rows) ([]*store.School, error) {
	var schools []*store.School
	for rows.Next() {
		school, err := r.scanSchool(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning school: %w", err)
		}
		schools = append(schools, school)
	}
	return schools, rows.Err()
}

func emptyIfNilSlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func emptyIfNilSchedules(m map[string][]schedule.Entry) map[string][]schedule.Entry {
	if m == nil {
		return map[string][]schedule.Entry{}
	}
	return m
}

func emptyIfNilRosters(m map[string]map[string]store.Roster) map[string]map[string]store.Roster {
	if m == nil {
		return map[string]map[string]store.Roster{}
	}
	return m
}
