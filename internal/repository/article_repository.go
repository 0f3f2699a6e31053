package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medikita/platform/internal/domain"
)

// ArticleRepository encapsulates article persistence.
type ArticleRepository interface {
	Create(ctx context.Context, article *domain.Article) error
	Update(ctx context.Context, article *domain.Article) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Article, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Article, error)
	List(ctx context.Context, publishedOnly bool, limit, offset int) ([]domain.Article, error)
}

type articleRepository struct {
	pool *pgxpool.Pool
}

// NewArticleRepository returns a Postgres-backed implementation.
func NewArticleRepository(pool *pgxpool.Pool) ArticleRepository {
	return &articleRepository{pool: pool}
}

const articleColumns = `id, slug, title_id, title_en, body_id, body_en, author, cover_url, published, created_at, updated_at`

func scanArticle(row pgx.Row, a *domain.Article) error {
	return row.Scan(
		&a.ID,
		&a.Slug,
		&a.TitleID,
		&a.TitleEN,
		&a.BodyID,
		&a.BodyEN,
		&a.Author,
		&a.CoverURL,
		&a.Published,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
}

func (r *articleRepository) Create(ctx context.Context, article *domain.Article) error {
	const query = `
        INSERT INTO articles (slug, title_id, title_en, body_id, body_en, author, cover_url, published)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		article.Slug,
		article.TitleID,
		article.TitleEN,
		article.BodyID,
		article.BodyEN,
		article.Author,
		article.CoverURL,
		article.Published,
	).Scan(&article.ID, &article.CreatedAt, &article.UpdatedAt)
}

func (r *articleRepository) Update(ctx context.Context, article *domain.Article) error {
	const query = `
        UPDATE articles SET slug=$1, title_id=$2, title_en=$3, body_id=$4, body_en=$5,
            author=$6, cover_url=$7, published=$8, updated_at=NOW()
        WHERE id=$9`
	cmd, err := r.pool.Exec(ctx, query,
		article.Slug,
		article.TitleID,
		article.TitleEN,
		article.BodyID,
		article.BodyEN,
		article.Author,
		article.CoverURL,
		article.Published,
		article.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *articleRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM articles WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *articleRepository) GetByID(ctx context.Context, id string) (*domain.Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM articles WHERE id=$1`, articleColumns)
	var a domain.Article
	if err := scanArticle(r.pool.QueryRow(ctx, query, id), &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *articleRepository) GetBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM articles WHERE slug=$1`, articleColumns)
	var a domain.Article
	if err := scanArticle(r.pool.QueryRow(ctx, query, slug), &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *articleRepository) List(ctx context.Context, publishedOnly bool, limit, offset int) ([]domain.Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM articles`, articleColumns)
	if publishedOnly {
		query += " WHERE published = TRUE"
	}
	query += " ORDER BY created_at DESC LIMIT $1 OFFSET $2"

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []domain.Article
	for rows.Next() {
		var a domain.Article
		if err := scanArticle(rows, &a); err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}
