package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medikita/platform/internal/api/dto"
	"github.com/medikita/platform/internal/domain"
	"github.com/medikita/platform/internal/service"
	apperrors "github.com/medikita/platform/pkg/util"
)

// ContentHandler exposes article and webinar endpoints.
type ContentHandler struct {
	content *service.ContentService
}

func NewContentHandler(content *service.ContentService) *ContentHandler {
	return &ContentHandler{content: content}
}

// ListArticles GET /api/articles.
func (h *ContentHandler) ListArticles(c *fiber.Ctx) error {
	limit, offset := parsePaging(c)
	articles, err := h.content.ListPublishedArticles(c.UserContext(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": articleResponses(articles)})
}

// GetArticle GET /api/articles/:slug.
func (h *ContentHandler) GetArticle(c *fiber.Ctx) error {
	article, err := h.content.GetPublishedArticleBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": articleResponse(article)})
}

// ListWebinars GET /api/webinars.
func (h *ContentHandler) ListWebinars(c *fiber.Ctx) error {
	webinars, err := h.content.ListPublishedWebinars(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": webinarResponses(webinars)})
}

// AdminListArticles GET /admin/articles.
func (h *ContentHandler) AdminListArticles(c *fiber.Ctx) error {
	limit, offset := parsePaging(c)
	articles, err := h.content.ListAllArticles(c.UserContext(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": articleResponses(articles)})
}

// AdminCreateArticle POST /admin/articles.
func (h *ContentHandler) AdminCreateArticle(c *fiber.Ctx) error {
	var req dto.ArticleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	article := articleFromRequest(&req)
	if err := h.content.CreateArticle(c.UserContext(), article); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": articleResponse(article)})
}

// AdminUpdateArticle PUT /admin/articles/:id.
func (h *ContentHandler) AdminUpdateArticle(c *fiber.Ctx) error {
	var req dto.ArticleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	article := articleFromRequest(&req)
	article.ID = c.Params("id")
	if err := h.content.UpdateArticle(c.UserContext(), article); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": articleResponse(article)})
}

// AdminDeleteArticle DELETE /admin/articles/:id.
func (h *ContentHandler) AdminDeleteArticle(c *fiber.Ctx) error {
	if err := h.content.DeleteArticle(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AdminListWebinars GET /admin/webinars.
func (h *ContentHandler) AdminListWebinars(c *fiber.Ctx) error {
	webinars, err := h.content.ListAllWebinars(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": webinarResponses(webinars)})
}

// AdminCreateWebinar POST /admin/webinars.
func (h *ContentHandler) AdminCreateWebinar(c *fiber.Ctx) error {
	var req dto.WebinarRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	webinar := webinarFromRequest(&req)
	if err := h.content.CreateWebinar(c.UserContext(), webinar); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": webinarResponse(webinar)})
}

// AdminUpdateWebinar PUT /admin/webinars/:id.
func (h *ContentHandler) AdminUpdateWebinar(c *fiber.Ctx) error {
	var req dto.WebinarRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	webinar := webinarFromRequest(&req)
	webinar.ID = c.Params("id")
	if err := h.content.UpdateWebinar(c.UserContext(), webinar); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": webinarResponse(webinar)})
}

// AdminDeleteWebinar DELETE /admin/webinars/:id.
func (h *ContentHandler) AdminDeleteWebinar(c *fiber.Ctx) error {
	if err := h.content.DeleteWebinar(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func articleFromRequest(req *dto.ArticleRequest) *domain.Article {
	return &domain.Article{
		Slug:      req.Slug,
		TitleID:   req.TitleID,
		TitleEN:   req.TitleEN,
		BodyID:    req.BodyID,
		BodyEN:    req.BodyEN,
		Author:    req.Author,
		CoverURL:  req.CoverURL,
		Published: req.Published,
	}
}

func articleResponse(a *domain.Article) dto.ArticleResponse {
	return dto.ArticleResponse{
		ID:        a.ID,
		Slug:      a.Slug,
		TitleID:   a.TitleID,
		TitleEN:   a.TitleEN,
		BodyID:    a.BodyID,
		BodyEN:    a.BodyEN,
		Author:    a.Author,
		CoverURL:  a.CoverURL,
		Published: a.Published,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func articleResponses(articles []domain.Article) []dto.ArticleResponse {
	items := make([]dto.ArticleResponse, 0, len(articles))
	for i := range articles {
		items = append(items, articleResponse(&articles[i]))
	}
	return items
}

func webinarFromRequest(req *dto.WebinarRequest) *domain.Webinar {
	return &domain.Webinar{
		TitleID:         req.TitleID,
		TitleEN:         req.TitleEN,
		Speaker:         req.Speaker,
		StartsAt:        req.StartsAt,
		RegistrationURL: req.RegistrationURL,
		Published:       req.Published,
	}
}

func webinarResponse(w *domain.Webinar) dto.WebinarResponse {
	return dto.WebinarResponse{
		ID:              w.ID,
		TitleID:         w.TitleID,
		TitleEN:         w.TitleEN,
		Speaker:         w.Speaker,
		StartsAt:        w.StartsAt,
		RegistrationURL: w.RegistrationURL,
		Published:       w.Published,
	}
}

func webinarResponses(webinars []domain.Webinar) []dto.WebinarResponse {
	items := make([]dto.WebinarResponse, 0, len(webinars))
	for i := range webinars {
		items = append(items, webinarResponse(&webinars[i]))
	}
	return items
}
