package service

import (
	"context"
	"fmt"

	"github.com/CoalValleyTech/span-sportshub/internal/store"
	"github.com/CoalValleyTech/span-sportshub/internal/store/repository"
)

// ArticleService handles news articles.
type ArticleService struct {
	repo *repository.ArticleRepository
}

// NewArticleService creates a new article service.
func NewArticleService(db *store.Database) *ArticleService {
	return &ArticleService{
		repo: repository.NewArticleRepository(db),
	}
}

// CreateArticle validates and stores an article.
func (s *ArticleService) CreateArticle(ctx context.Context, article *store.Article) (string, error) {
	if article.Title == "" {
		return "", fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if article.Date == "" {
		return "", fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	id, err := s.repo.Create(ctx, article)
	if err != nil {
		return "", fmt.Errorf("creating article: %w", err)
	}
	return id, nil
}

// GetArticle retrieves one article.
func (s *ArticleService) GetArticle(ctx context.Context, id string) (*store.Article, error) {
	return s.repo.GetByID(ctx, id)
}

// ListArticles returns all articles, newest first.
func (s *ArticleService) ListArticles(ctx context.Context) ([]*store.Article, error) {
	return s.repo.List(ctx)
}

// UpdateArticle replaces an article's content.
func (s *ArticleService) UpdateArticle(ctx context.Context, article *store.Article) error {
	if article.ID == "" {
		return fmt.Errorf("%w: article id is required", ErrInvalidInput)
	}
	return s.repo.Update(ctx, article)
}

// DeleteArticle removes an article.
func (s *ArticleService) DeleteArticle(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
