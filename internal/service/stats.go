package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/CoalValleyTech/span-sportshub/internal/store"
	"github.com/CoalValleyTech/span-sportshub/internal/store/repository"
)

// statStore is the persistence the stat service needs.
type statStore interface {
	Create(ctx context.Context, line *store.StatLine) (string, error)
	List(ctx context.Context) ([]*store.StatLine, error)
	ListBySport(ctx context.Context, sport string) ([]*store.StatLine, error)
	ListBySportAndDivision(ctx context.Context, sport, division string) ([]*store.StatLine, error)
	Delete(ctx context.Context, id string) error
}

// StatService handles posted player stat lines and leaderboards.
type StatService struct {
	repo statStore
}

// NewStatService creates a new stat service.
func NewStatService(db *store.Database) *StatService {
	return &StatService{
		repo: repository.NewStatRepository(db),
	}
}

// SubmitStatLine validates and stores one stat line.
func (s *StatService) SubmitStatLine(ctx context.Context, line *store.StatLine) (string, error) {
	if line.PlayerName == "" {
		return "", fmt.Errorf("%w: playerName is required", ErrInvalidInput)
	}
	if line.Sport == "" {
		return "", fmt.Errorf("%w: sport is required", ErrInvalidInput)
	}

	id, err := s.repo.Create(ctx, line)
	if err != nil {
		return "", fmt.Errorf("storing stat line: %w", err)
	}
	return id, nil
}

// ListStats returns all stat lines, newest first.
func (s *StatService) ListStats(ctx context.Context) ([]*store.StatLine, error) {
	return s.repo.List(ctx)
}

// ListStatsBySport returns stat lines for one sport.
func (s *StatService) ListStatsBySport(ctx context.Context, sport string) ([]*store.StatLine, error) {
	return s.repo.ListBySport(ctx, sport)
}

// Leaderboard returns the stat lines for a sport and division that carry the
// named stat, sorted by that stat descending. Lines without the stat are
// left off the board rather than ranked at zero.
func (s *StatService) Leaderboard(ctx context.Context, sport, division, stat string) ([]*store.StatLine, error) {
	lines, err := s.repo.ListBySportAndDivision(ctx, sport, division)
	if err != nil {
		return nil, fmt.Errorf("fetching leaderboard lines: %w", err)
	}

	board := make([]*store.StatLine, 0, len(lines))
	for _, line := range lines {
		if _, ok := line.Values[stat]; ok {
			board = append(board, line)
		}
	}
	sort.SliceStable(board, func(i, j int) bool {
		return board[i].Values[stat] > board[j].Values[stat]
	})
	return board, nil
}

// DeleteStatLine removes one stat line.
func (s *StatService) DeleteStatLine(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
