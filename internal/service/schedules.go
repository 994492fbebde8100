package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/CoalValleyTech/span-sportshub/internal/publisher"
	"github.com/CoalValleyTech/span-sportshub/internal/schedule"
	"github.com/CoalValleyTech/span-sportshub/internal/store"
	"github.com/CoalValleyTech/span-sportshub/internal/store/repository"
)

// SchoolScheduleStore is the slice of the school repository the coordinator
// needs: name lookup plus embedded-list surgery.
type SchoolScheduleStore interface {
	FindByName(ctx context.Context, name string) (*store.School, error)
	AppendEntries(ctx context.Context, id, sport string, entries []schedule.Entry) error
	RemoveEntry(ctx context.Context, id, sport string, entry schedule.Entry) error
	ReplaceEntry(ctx context.Context, id, sport string, old, updated schedule.Entry) error
}

// GlobalScheduleStore is the flat cross-school collection.
type GlobalScheduleStore interface {
	Insert(ctx context.Context, rec *store.GlobalScheduleRecord) (string, error)
	GetByID(ctx context.Context, id string) (*store.GlobalScheduleRecord, error)
	Query(ctx context.Context, filter repository.GlobalFilter) ([]*store.GlobalScheduleRecord, error)
	UpdateScore(ctx context.Context, id string, score *schedule.Score, status string) error
	DeleteByID(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) ([]string, error)
}

// ScorePublisher fans score events out to live scoreboards.
type ScorePublisher interface {
	PublishScoreUpdate(ctx context.Context, event publisher.ScoreEvent) error
}

// Cache is the schedule-query cache. May be nil.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

const scheduleCacheTTL = 60 * time.Second

// ScheduleService coordinates the two denormalized schedule views: the
// per-school embedded lists and the flat cross-school collection. It is the
// only write path the handlers use. The two views are never reconciled after
// the fact; each write updates whichever views that flow touches.
type ScheduleService struct {
	schools SchoolScheduleStore
	global  GlobalScheduleStore
	pub     ScorePublisher
	cache   Cache
	clock   clockwork.Clock
}

// NewScheduleService creates a schedule service over the database. Publisher
// and cache may be nil when Redis is not configured.
func NewScheduleService(db *store.Database, cache Cache, pub ScorePublisher, clock clockwork.Clock) *ScheduleService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &ScheduleService{
		schools: repository.NewSchoolRepository(db),
		global:  repository.NewScheduleRepository(db),
		pub:     pub,
		cache:   cache,
		clock:   clock,
	}
}

// AddSchedule appends entries to a school's embedded list for one sport,
// inserts a matching record per entry into the flat collection, and mirror
// writes the inverse entry into each opponent school that matches by exact
// display name. The three writes are independent; a mirror failure never
// rolls back the first two.
func (s *ScheduleService) AddSchedule(ctx context.Context, schoolID, schoolName, sport string, entries []schedule.Entry) ([]string, error) {
	if err := s.schools.AppendEntries(ctx, schoolID, sport, entries); err != nil {
		return nil, fmt.Errorf("appending to school schedule: %w", err)
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		rec := &store.GlobalScheduleRecord{
			SchoolID:   &schoolID,
			SchoolName: schoolName,
			Sport:      sport,
			Entry:      entry,
		}
		id, err := s.global.Insert(ctx, rec)
		if err != nil {
			return ids, fmt.Errorf("inserting global schedule record: %w", err)
		}
		ids = append(ids, id)

		s.mirrorToOpponent(ctx, schoolName, sport, entry)
	}

	s.invalidateScheduleCache(ctx, sport)
	return ids, nil
}

// mirrorToOpponent writes the inverse entry into the opponent school's list
// when the opponent name matches a school exactly. Unknown opponents are
// skipped without error; name variants (case, whitespace) do not match and
// therefore get no mirror.
func (s *ScheduleService) mirrorToOpponent(ctx context.Context, schoolName, sport string, entry schedule.Entry) {
	opponent, err := s.schools.FindByName(ctx, entry.Opponent)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Warn().Err(err).Str("opponent", entry.Opponent).Msg("Mirror write lookup failed")
		}
		return
	}

	mirror := schedule.Entry{
		Location: entry.Location,
		Time:     entry.Time,
		Opponent: schoolName,
	}
	if err := s.schools.AppendEntries(ctx, opponent.ID, sport, []schedule.Entry{mirror}); err != nil {
		log.Warn().Err(err).Str("opponent", entry.Opponent).Msg("Mirror write failed")
	}
}

// AddGame inserts a live or upcoming game into the flat collection only.
// This flow never touches the embedded school lists; games added here show
// up on the scoreboard but not on a school page until a final score lands.
// A nil schoolID stays absent on the record.
func (s *ScheduleService) AddGame(ctx context.Context, schoolID *string, schoolName, sport string, entry schedule.Entry) (string, error) {
	if entry.Status == "" {
		entry.Status = schedule.StatusUpcoming
	}
	if entry.Status != schedule.StatusLive && entry.Status != schedule.StatusUpcoming {
		return "", fmt.Errorf("%w: game status must be %s or %s, got %q",
			ErrInvalidInput, schedule.StatusLive, schedule.StatusUpcoming, entry.Status)
	}

	rec := &store.GlobalScheduleRecord{
		SchoolID:   schoolID,
		SchoolName: schoolName,
		Sport:      sport,
		Entry:      entry,
	}
	id, err := s.global.Insert(ctx, rec)
	if err != nil {
		return "", fmt.Errorf("inserting game: %w", err)
	}

	s.invalidateScheduleCache(ctx, sport)
	return id, nil
}

// GetSchedules returns flat records, optionally narrowed by sport, through a
// short-TTL cache.
func (s *ScheduleService) GetSchedules(ctx context.Context, sport string) ([]*store.GlobalScheduleRecord, error) {
	key := scheduleCacheKey(sport)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err == nil {
			var records []*store.GlobalScheduleRecord
			if err := json.Unmarshal([]byte(cached), &records); err == nil {
				return records, nil
			}
		}
	}

	records, err := s.global.Query(ctx, repository.GlobalFilter{Sport: sport})
	if err != nil {
		return nil, fmt.Errorf("fetching schedules: %w", err)
	}

	if s.cache != nil {
		if data, err := json.Marshal(records); err == nil {
			if err := s.cache.Set(ctx, key, data, scheduleCacheTTL); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("Schedule cache write failed")
			}
		}
	}
	return records, nil
}

// GetRecord returns one flat record.
func (s *ScheduleService) GetRecord(ctx context.Context, id string) (*store.GlobalScheduleRecord, error) {
	return s.global.GetByID(ctx, id)
}

// SaveScore updates the score on a live flat record in place. The embedded
// school lists are untouched until the score is submitted as final.
func (s *ScheduleService) SaveScore(ctx context.Context, recordID string, score *schedule.Score) error {
	if err := s.global.UpdateScore(ctx, recordID, score, ""); err != nil {
		return fmt.Errorf("saving score: %w", err)
	}

	s.publishScore(ctx, recordID, score, schedule.StatusLive)
	s.invalidateAllScheduleCaches(ctx)
	return nil
}

// SubmitFinal marks the flat record final and pushes the scored entry into
// the embedded lists of both schools. Home resolves from the stored schoolId
// and away from an exact opponent-name lookup; each side is handled
// independently and a side whose school cannot be resolved is skipped, so an
// unknown away school still leaves the home side fully updated.
func (s *ScheduleService) SubmitFinal(ctx context.Context, recordID string, score *schedule.Score) error {
	rec, err := s.global.GetByID(ctx, recordID)
	if err != nil {
		return fmt.Errorf("fetching record for final score: %w", err)
	}

	if err := s.global.UpdateScore(ctx, recordID, score, schedule.StatusFinal); err != nil {
		return fmt.Errorf("finalizing score: %w", err)
	}

	if rec.SchoolID != nil {
		bare := schedule.Entry{
			Location: rec.Location,
			Time:     rec.Time,
			Opponent: rec.Opponent,
		}
		scored := bare
		scored.Status = schedule.StatusFinal
		scored.Score = schedule.CloneScore(score)
		if err := s.schools.ReplaceEntry(ctx, *rec.SchoolID, rec.Sport, bare, scored); err != nil {
			log.Warn().Err(err).Str("school", rec.SchoolName).Msg("Home schedule update failed")
		}
	}

	if away, err := s.schools.FindByName(ctx, rec.Opponent); err == nil {
		bare := schedule.Entry{
			Location: rec.Location,
			Time:     rec.Time,
			Opponent: rec.SchoolName,
		}
		scored := bare
		scored.Status = schedule.StatusFinal
		scored.Score = schedule.CloneScore(score)
		if err := s.schools.ReplaceEntry(ctx, away.ID, rec.Sport, bare, scored); err != nil {
			log.Warn().Err(err).Str("school", rec.Opponent).Msg("Away schedule update failed")
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Warn().Err(err).Str("opponent", rec.Opponent).Msg("Away school lookup failed")
	}

	s.publishScore(ctx, recordID, score, schedule.StatusFinal)
	s.invalidateAllScheduleCaches(ctx)
	return nil
}

// DeleteGame removes one flat record.
func (s *ScheduleService) DeleteGame(ctx context.Context, recordID string) error {
	rec, err := s.global.GetByID(ctx, recordID)
	if err != nil {
		return err
	}
	if err := s.global.DeleteByID(ctx, recordID); err != nil {
		return err
	}
	s.invalidateScheduleCache(ctx, rec.Sport)
	return nil
}

// RemoveSchedule removes one entry from a school's embedded list. The flat
// collection keeps its copy; the two views diverge here just as they do in
// the other direction for AddGame.
func (s *ScheduleService) RemoveSchedule(ctx context.Context, schoolID, sport string, entry schedule.Entry) error {
	if err := s.schools.RemoveEntry(ctx, schoolID, sport, entry); err != nil {
		return fmt.Errorf("removing school schedule entry: %w", err)
	}
	return nil
}

// DeleteAllGames wipes the flat collection and returns the ids that failed
// to delete.
func (s *ScheduleService) DeleteAllGames(ctx context.Context) ([]string, error) {
	failed, err := s.global.DeleteAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("deleting all games: %w", err)
	}
	s.invalidateAllScheduleCaches(ctx)
	return failed, nil
}

func (s *ScheduleService) publishScore(ctx context.Context, recordID string, score *schedule.Score, status string) {
	if s.pub == nil {
		return
	}
	event := publisher.ScoreEvent{
		RecordID: recordID,
		Status:   status,
		Score:    schedule.CloneScore(score),
		At:       s.clock.Now().UTC(),
	}
	if rec, err := s.global.GetByID(ctx, recordID); err == nil {
		event.Sport = rec.Sport
		event.SchoolName = rec.SchoolName
		event.Opponent = rec.Opponent
	}
	if err := s.pub.PublishScoreUpdate(ctx, event); err != nil {
		log.Warn().Err(err).Str("record_id", recordID).Msg("Score event publish failed")
	}
}

func scheduleCacheKey(sport string) string {
	if sport == "" {
		return "schedules:all"
	}
	return "schedules:sport:" + sport
}

func (s *ScheduleService) invalidateScheduleCache(ctx context.Context, sport string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, "schedules:all", scheduleCacheKey(sport)); err != nil {
		log.Warn().Err(err).Msg("Schedule cache invalidation failed")
	}
}

func (s *ScheduleService) invalidateAllScheduleCaches(ctx context.Context) {
	if s.cache == nil {
		return
	}
	// Sports are a short fixed list; dropping the known keys beats a SCAN.
	keys := []string{"schedules:all"}
	for _, sport := range []string{"football", "soccer", "volleyball", "basketball", "baseball", "softball", "track", "cross-country", "golf", "tennis"} {
		keys = append(keys, scheduleCacheKey(sport))
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		log.Warn().Err(err).Msg("Schedule cache invalidation failed")
	}
}
