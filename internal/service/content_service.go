package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/microcosm-cc/bluemonday"

	"github.com/medikita/platform/internal/cache"
	"github.com/medikita/platform/internal/domain"
	"github.com/medikita/platform/internal/repository"
)

const contentCachePrefix = "content:"

// ContentService coordinates articles and webinars.
type ContentService struct {
	articles  repository.ArticleRepository
	webinars  repository.WebinarRepository
	cache     *cache.Store
	sanitizer *bluemonday.Policy
}

// ContentDependencies bundles repositories for the content service.
type ContentDependencies struct {
	ArticleRepo repository.ArticleRepository
	WebinarRepo repository.WebinarRepository
	Cache       *cache.Store
}

// NewContentService constructs the service. Article bodies pass through a
// UGC sanitation policy on every write.
func NewContentService(deps ContentDependencies) *ContentService {
	return &ContentService{
		articles:  deps.ArticleRepo,
		webinars:  deps.WebinarRepo,
		cache:     deps.Cache,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// ListPublishedArticles returns the public article feed.
func (s *ContentService) ListPublishedArticles(ctx context.Context, limit, offset int) ([]domain.Article, error) {
	key := fmt.Sprintf("%sarticles:%d:%d", contentCachePrefix, limit, offset)
	var cached []domain.Article
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	articles, err := s.articles.List(ctx, true, limit, offset)
	if err != nil {
		return nil, err
	}
	_ = s.cache.SetJSON(ctx, key, articles)
	return articles, nil
}

// GetPublishedArticleBySlug returns one public article.
func (s *ContentService) GetPublishedArticleBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	article, err := s.articles.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !article.Published {
		return nil, pgx.ErrNoRows
	}
	return article, nil
}

// ListAllArticles returns every article for the admin panel.
func (s *ContentService) ListAllArticles(ctx context.Context, limit, offset int) ([]domain.Article, error) {
	return s.articles.List(ctx, false, limit, offset)
}

// GetArticleByID returns one article for the admin panel.
func (s *ContentService) GetArticleByID(ctx context.Context, id string) (*domain.Article, error) {
	return s.articles.GetByID(ctx, id)
}

// CreateArticle sanitizes bodies and persists a new article.
func (s *ContentService) CreateArticle(ctx context.Context, article *domain.Article) error {
	if err := s.prepareArticle(article); err != nil {
		return err
	}
	if err := s.articles.Create(ctx, article); err != nil {
		return err
	}
	return s.cache.InvalidatePrefix(ctx, contentCachePrefix)
}

// UpdateArticle sanitizes bodies and persists article changes.
func (s *ContentService) UpdateArticle(ctx context.Context, article *domain.Article) error {
	if err := s.prepareArticle(article); err != nil {
		return err
	}
	if err := s.articles.Update(ctx, article); err != nil {
		return err
	}
	return s.cache.InvalidatePrefix(ctx, contentCachePrefix)
}

// DeleteArticle removes an article.
func (s *ContentService) DeleteArticle(ctx context.Context, id string) error {
	if err := s.articles.Delete(ctx, id); err != nil {
		return err
	}
	return s.cache.InvalidatePrefix(ctx, contentCachePrefix)
}

func (s *ContentService) prepareArticle(article *domain.Article) error {
	if article.Slug == "" {
		return errors.New("slug required")
	}
	if article.TitleID == "" || article.TitleEN == "" {
		return errors.New("both language titles required")
	}
	article.BodyID = s.sanitizer.Sanitize(article.BodyID)
	article.BodyEN = s.sanitizer.Sanitize(article.BodyEN)
	return nil
}

// ListPublishedWebinars returns the public webinar schedule, upcoming first.
func (s *ContentService) ListPublishedWebinars(ctx context.Context) ([]domain.Webinar, error) {
	key := contentCachePrefix + "webinars"
	var cached []domain.Webinar
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	webinars, err := s.webinars.List(ctx, true)
	if err != nil {
		return nil, err
	}
	_ = s.cache.SetJSON(ctx, key, webinars)
	return webinars, nil
}

// ListAllWebinars returns every webinar for the admin panel.
func (s *ContentService) ListAllWebinars(ctx context.Context) ([]domain.Webinar, error) {
	return s.webinars.List(ctx, false)
}

// CreateWebinar validates and persists a new webinar.
func (s *ContentService) CreateWebinar(ctx context.Context, webinar *domain.Webinar) error {
	if err := validateWebinar(webinar); err != nil {
		return err
	}
	if err := s.webinars.Create(ctx, webinar); err != nil {
		return err
	}
	return s.cache.InvalidatePrefix(ctx, contentCachePrefix)
}

// UpdateWebinar validates and persists webinar changes.
func (s *ContentService) UpdateWebinar(ctx context.Context, webinar *domain.Webinar) error {
	if err := validateWebinar(webinar); err != nil {
		return err
	}
	if err := s.webinars.Update(ctx, webinar); err != nil {
		return err
	}
	return s.cache.InvalidatePrefix(ctx, contentCachePrefix)
}

// DeleteWebinar removes a webinar.
func (s *ContentService) DeleteWebinar(ctx context.Context, id string) error {
	if err := s.webinars.Delete(ctx, id); err != nil {
		return err
	}
	return s.cache.InvalidatePrefix(ctx, contentCachePrefix)
}

func validateWebinar(webinar *domain.Webinar) error {
	if webinar.TitleID == "" || webinar.TitleEN == "" {
		return errors.New("both language titles required")
	}
	if webinar.StartsAt.IsZero() {
		return errors.New("starts_at required")
	}
	return nil
}
