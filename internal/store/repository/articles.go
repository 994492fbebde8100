package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/CoalValleyTech/span-sportshub/internal/store"
)

// ArticleRepository handles the articles collection. Articles have no
// relationships; image payloads are embedded on the record.
type ArticleRepository struct {
	db *store.Database
}

// NewArticleRepository creates a new article repository.
func NewArticleRepository(db *store.Database) *ArticleRepository {
	return &ArticleRepository{db: db}
}

const articleColumns = `id, title, excerpt, content, date, category, image_data, created_at, updated_at`

// Create inserts an article and returns its id.
func (r *ArticleRepository) Create(ctx context.Context, article *store.Article) (string, error) {
	if article.ID == "" {
		article.ID = uuid.NewString()
	}

	query := `
		INSERT INTO articles (id, title, excerpt, content, date, category, image_data)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`
	err := r.db.DB().QueryRowContext(ctx, query,
		article.ID, article.Title, article.Excerpt, article.Content,
		article.Date, article.Category, article.ImageData,
	).Scan(&article.CreatedAt, &article.UpdatedAt)
	if err != nil {
		return "", fmt.Errorf("inserting article: %w", store.Classify(err))
	}
	return article.ID, nil
}

// GetByID finds an article.
func (r *ArticleRepository) GetByID(ctx context.Context, id string) (*store.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE id = $1`
	article, err := scanArticle(r.db.DB().QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("querying article %s: %w", id, store.Classify(err))
	}
	return article, nil
}

// List returns all articles, newest first.
func (r *ArticleRepository) List(ctx context.Context) ([]*store.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles ORDER BY created_at DESC`
	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying articles: %w", store.Classify(err))
	}
	defer rows.Close()

	var articles []*store.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning article: %w", err)
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

// Update replaces the mutable fields of an article.
func (r *ArticleRepository) Update(ctx context.Context, article *store.Article) error {
	query := `
		UPDATE articles SET
			title = $2, excerpt = $3, content = $4, date = $5,
			category = $6, image_data = $7, updated_at = NOW()
		WHERE id = $1
	`
	res, err := r.db.DB().ExecContext(ctx, query,
		article.ID, article.Title, article.Excerpt, article.Content,
		article.Date, article.Category, article.ImageData,
	)
	if err != nil {
		return fmt.Errorf("updating article %s: %w", article.ID, store.Classify(err))
	}
	return requireArticleRow(res, article.ID)
}

// Delete removes an article.
func (r *ArticleRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.DB().ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting article %s: %w", id, store.Classify(err))
	}
	return requireArticleRow(res, id)
}

func requireArticleRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking result for article %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("article %s: %w", id, store.ErrNotFound)
	}
	return nil
}

func scanArticle(row rowScanner) (*store.Article, error) {
	article := &store.Article{}
	err := row.Scan(
		&article.ID, &article.Title, &article.Excerpt, &article.Content,
		&article.Date, &article.Category, &article.ImageData,
		&article.CreatedAt, &article.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return article, nil
}
