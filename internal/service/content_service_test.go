package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medikita/platform/internal/domain"
)

type fakeArticleRepo struct {
	articles map[string]*domain.Article
	lastSave *domain.Article
}

func (f *fakeArticleRepo) Create(ctx context.Context, a *domain.Article) error {
	f.lastSave = a
	return nil
}

func (f *fakeArticleRepo) Update(ctx context.Context, a *domain.Article) error {
	f.lastSave = a
	return nil
}

func (f *fakeArticleRepo) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeArticleRepo) GetByID(ctx context.Context, id string) (*domain.Article, error) {
	a, ok := f.articles[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return a, nil
}

func (f *fakeArticleRepo) GetBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	for _, a := range f.articles {
		if a.Slug == slug {
			return a, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeArticleRepo) List(ctx context.Context, publishedOnly bool, limit, offset int) ([]domain.Article, error) {
	var out []domain.Article
	for _, a := range f.articles {
		if publishedOnly && !a.Published {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

type fakeWebinarRepo struct {
	webinars []domain.Webinar
}

func (f *fakeWebinarRepo) Create(ctx context.Context, w *domain.Webinar) error { return nil }
func (f *fakeWebinarRepo) Update(ctx context.Context, w *domain.Webinar) error { return nil }
func (f *fakeWebinarRepo) Delete(ctx context.Context, id string) error         { return nil }

func (f *fakeWebinarRepo) GetByID(ctx context.Context, id string) (*domain.Webinar, error) {
	return nil, pgx.ErrNoRows
}

func (f *fakeWebinarRepo) List(ctx context.Context, publishedOnly bool) ([]domain.Webinar, error) {
	var out []domain.Webinar
	for _, w := range f.webinars {
		if publishedOnly && !w.Published {
			continue
		}
		out = append(out, w)
	}
	return out, nil
}

func newContentFixture() (*ContentService, *fakeArticleRepo, *fakeWebinarRepo) {
	articles := &fakeArticleRepo{articles: map[string]*domain.Article{
		"a-1": {ID: "a-1", Slug: "hidup-sehat", TitleID: "Hidup Sehat", TitleEN: "Healthy Living", Published: true},
		"a-2": {ID: "a-2", Slug: "draft-post", TitleID: "Draf", TitleEN: "Draft", Published: false},
	}}
	webinars := &fakeWebinarRepo{webinars: []domain.Webinar{
		{ID: "w-1", TitleID: "Webinar Satu", TitleEN: "Webinar One", Published: true},
		{ID: "w-2", TitleID: "Webinar Dua", TitleEN: "Webinar Two", Published: false},
	}}
	svc := NewContentService(ContentDependencies{ArticleRepo: articles, WebinarRepo: webinars})
	return svc, articles, webinars
}

func TestCreateArticleSanitizesBodies(t *testing.T) {
	svc, articles, _ := newContentFixture()

	article := &domain.Article{
		Slug:    "promo",
		TitleID: "Promo",
		TitleEN: "Promo",
		BodyID:  `<p>Halo</p><script>alert("xss")</script>`,
		BodyEN:  `<p>Hello</p><img src=x onerror="steal()">`,
	}
	require.NoError(t, svc.CreateArticle(context.Background(), article))

	saved := articles.lastSave
	require.NotNil(t, saved)
	assert.NotContains(t, saved.BodyID, "<script>")
	assert.Contains(t, saved.BodyID, "<p>Halo</p>")
	assert.NotContains(t, saved.BodyEN, "onerror")
}

func TestCreateArticleValidation(t *testing.T) {
	svc, _, _ := newContentFixture()

	err := svc.CreateArticle(context.Background(), &domain.Article{TitleID: "a", TitleEN: "a"})
	assert.Error(t, err)

	err = svc.CreateArticle(context.Background(), &domain.Article{Slug: "s", TitleEN: "a"})
	assert.Error(t, err)
}

func TestPublishedArticleReads(t *testing.T) {
	svc, _, _ := newContentFixture()

	list, err := svc.ListPublishedArticles(context.Background(), 20, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "hidup-sehat", list[0].Slug)

	_, err = svc.GetPublishedArticleBySlug(context.Background(), "draft-post")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestWebinarListings(t *testing.T) {
	svc, _, _ := newContentFixture()

	public, err := svc.ListPublishedWebinars(context.Background())
	require.NoError(t, err)
	assert.Len(t, public, 1)

	all, err := svc.ListAllWebinars(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCreateWebinarValidation(t *testing.T) {
	svc, _, _ := newContentFixture()

	err := svc.CreateWebinar(context.Background(), &domain.Webinar{TitleEN: "only english"})
	assert.Error(t, err)
}
