package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/CoalValleyTech/span-sportshub/internal/schedule"
	"github.com/CoalValleyTech/span-sportshub/internal/storage"
	"github.com/CoalValleyTech/span-sportshub/internal/store"
	"github.com/CoalValleyTech/span-sportshub/internal/store/repository"
)

const logoPrefix = "school-logos"

// SchoolService handles school records, their rosters, and logo uploads.
type SchoolService struct {
	repo  *repository.SchoolRepository
	blobs storage.BlobStore
	clock clockwork.Clock
}

// NewSchoolService creates a new school service. Blobs may be nil when no
// media root is configured; logo uploads then fail cleanly.
func NewSchoolService(db *store.Database, blobs storage.BlobStore, clock clockwork.Clock) *SchoolService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &SchoolService{
		repo:  repository.NewSchoolRepository(db),
		blobs: blobs,
		clock: clock,
	}
}

// CreateSchool creates a school, uploading the logo first when one is
// attached.
func (s *SchoolService) CreateSchool(ctx context.Context, school *store.School, logo []byte, logoName string) (string, error) {
	if len(logo) > 0 {
		url, err := s.saveLogo(ctx, logo, logoName)
		if err != nil {
			return "", err
		}
		school.LogoURL = url
	}

	id, err := s.repo.Create(ctx, school)
	if err != nil {
		return "", fmt.Errorf("creating school: %w", err)
	}
	return id, nil
}

// GetSchool retrieves one school with its embedded schedules and rosters.
// Schedule lists come back ordered by time for the school page.
func (s *SchoolService) GetSchool(ctx context.Context, id string) (*store.School, error) {
	school, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, entries := range school.Schedules {
		schedule.SortByTime(entries)
	}
	return school, nil
}

// ListSchools returns all schools, newest first when the ordered query
// succeeds.
func (s *SchoolService) ListSchools(ctx context.Context) ([]*store.School, error) {
	return s.repo.List(ctx)
}

// ListSchoolsPaginated returns at most limit schools.
func (s *SchoolService) ListSchoolsPaginated(ctx context.Context, limit int) ([]*store.School, error) {
	return s.repo.ListPaginated(ctx, limit)
}

// UpdateSchool patches name and location, and swaps the logo when a new one
// is attached. The old logo blob is removed after the record points at the
// new one; a failed cleanup is logged, not surfaced.
func (s *SchoolService) UpdateSchool(ctx context.Context, id string, name, location *string, logo []byte, logoName string) error {
	var logoURL *string
	var oldURL string

	if len(logo) > 0 {
		school, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		oldURL = school.LogoURL

		url, err := s.saveLogo(ctx, logo, logoName)
		if err != nil {
			return err
		}
		logoURL = &url
	}

	if err := s.repo.Update(ctx, id, name, location, logoURL); err != nil {
		return fmt.Errorf("updating school: %w", err)
	}

	if oldURL != "" {
		s.deleteLogo(ctx, oldURL)
	}
	return nil
}

// DeleteSchool removes a school and its logo blob. A missing blob is a
// warning only; the record delete is what matters.
func (s *SchoolService) DeleteSchool(ctx context.Context, id string) error {
	school, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting school: %w", err)
	}

	if school.LogoURL != "" {
		s.deleteLogo(ctx, school.LogoURL)
	}
	return nil
}

// AddSport adds a sport to a school's list if not already present.
func (s *SchoolService) AddSport(ctx context.Context, id, sport string) error {
	return s.repo.AddSport(ctx, id, sport)
}

// SetRoster adds or replaces the roster for one sport and season.
func (s *SchoolService) SetRoster(ctx context.Context, id string, roster store.Roster) error {
	return s.repo.SetRoster(ctx, id, roster)
}

// DeletePlayer removes one player from a roster by index.
func (s *SchoolService) DeletePlayer(ctx context.Context, id, sport, season string, index int) error {
	return s.repo.DeletePlayer(ctx, id, sport, season, index)
}

// saveLogo stores a logo under a timestamp-prefixed key so re-uploads of the
// same filename never collide.
func (s *SchoolService) saveLogo(ctx context.Context, data []byte, name string) (string, error) {
	if s.blobs == nil {
		return "", fmt.Errorf("logo upload: no media storage configured")
	}
	key := fmt.Sprintf("%s/%d_%s", logoPrefix, s.clock.Now().UnixMilli(), sanitizeFilename(name))
	url, err := s.blobs.Save(ctx, key, data)
	if err != nil {
		return "", fmt.Errorf("uploading logo: %w", err)
	}
	return url, nil
}

func (s *SchoolService) deleteLogo(ctx context.Context, url string) {
	if s.blobs == nil {
		return
	}
	key := s.blobs.KeyFromURL(url)
	if key == "" {
		return
	}
	if err := s.blobs.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Logo cleanup failed")
	}
}

// sanitizeFilename keeps logo keys to a single flat path segment.
func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" {
		name = "logo"
	}
	return name
}
