package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/medikita/platform/internal/api/dto"
	"github.com/medikita/platform/internal/domain"
	"github.com/medikita/platform/internal/service"
	apperrors "github.com/medikita/platform/pkg/util"
)

// CatalogHandler exposes storefront and admin product endpoints.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListProducts GET /api/products.
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	var category *string
	if cat := c.Query("category"); cat != "" {
		category = &cat
	}
	limit, offset := parsePaging(c)

	products, err := h.catalog.ListPublished(c.UserContext(), category, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": productResponses(products)})
}

// GetProduct GET /api/products/:slug.
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.catalog.GetPublishedBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": productResponse(product)})
}

// AdminListProducts GET /admin/products.
func (h *CatalogHandler) AdminListProducts(c *fiber.Ctx) error {
	var category *string
	if cat := c.Query("category"); cat != "" {
		category = &cat
	}
	limit, offset := parsePaging(c)

	products, err := h.catalog.ListAll(c.UserContext(), category, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": productResponses(products)})
}

// AdminCreateProduct POST /admin/products.
func (h *CatalogHandler) AdminCreateProduct(c *fiber.Ctx) error {
	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	product := productFromRequest(&req)
	if err := h.catalog.CreateProduct(c.UserContext(), product); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": productResponse(product)})
}

// AdminUpdateProduct PUT /admin/products/:id.
func (h *CatalogHandler) AdminUpdateProduct(c *fiber.Ctx) error {
	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	product := productFromRequest(&req)
	product.ID = c.Params("id")
	if err := h.catalog.UpdateProduct(c.UserContext(), product); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": productResponse(product)})
}

// AdminDeleteProduct DELETE /admin/products/:id.
func (h *CatalogHandler) AdminDeleteProduct(c *fiber.Ctx) error {
	if err := h.catalog.DeleteProduct(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func productFromRequest(req *dto.ProductRequest) *domain.Product {
	return &domain.Product{
		Slug:          req.Slug,
		NameID:        req.NameID,
		NameEN:        req.NameEN,
		DescriptionID: req.DescriptionID,
		DescriptionEN: req.DescriptionEN,
		Category:      req.Category,
		PriceIDR:      req.PriceIDR,
		StockQty:      req.StockQty,
		ImageURL:      req.ImageURL,
		Published:     req.Published,
	}
}

func productResponse(p *domain.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:            p.ID,
		Slug:          p.Slug,
		NameID:        p.NameID,
		NameEN:        p.NameEN,
		DescriptionID: p.DescriptionID,
		DescriptionEN: p.DescriptionEN,
		Category:      p.Category,
		PriceIDR:      p.PriceIDR,
		StockQty:      p.StockQty,
		ImageURL:      p.ImageURL,
		Published:     p.Published,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func productResponses(products []domain.Product) []dto.ProductResponse {
	items := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, productResponse(&products[i]))
	}
	return items
}

func parsePaging(c *fiber.Ctx) (int, int) {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
