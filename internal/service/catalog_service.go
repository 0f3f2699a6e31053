package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/medikita/platform/internal/cache"
	"github.com/medikita/platform/internal/domain"
	"github.com/medikita/platform/internal/repository"
)

const catalogCachePrefix = "catalog:"

// ErrNotPublished hides unpublished records from public reads.
var ErrNotPublished = errors.New("not published")

// CatalogService coordinates the product storefront.
type CatalogService struct {
	products repository.ProductRepository
	cache    *cache.Store
}

// CatalogDependencies bundles repositories for the catalog service.
type CatalogDependencies struct {
	ProductRepo repository.ProductRepository
	Cache       *cache.Store
}

// NewCatalogService constructs the service.
func NewCatalogService(deps CatalogDependencies) *CatalogService {
	return &CatalogService{products: deps.ProductRepo, cache: deps.Cache}
}

// ListPublished returns the public storefront listing, served from cache
// when possible.
func (s *CatalogService) ListPublished(ctx context.Context, category *string, limit, offset int) ([]domain.Product, error) {
	cat := ""
	if category != nil {
		cat = *category
	}
	key := fmt.Sprintf("%slist:%s:%d:%d", catalogCachePrefix, cat, limit, offset)

	var cached []domain.Product
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	products, err := s.products.List(ctx, repository.ProductFilter{
		Category:      category,
		PublishedOnly: true,
		Limit:         limit,
		Offset:        offset,
	})
	if err != nil {
		return nil, err
	}
	_ = s.cache.SetJSON(ctx, key, products)
	return products, nil
}

// GetPublishedBySlug returns one storefront product. Unpublished products
// are indistinguishable from missing ones for public callers.
func (s *CatalogService) GetPublishedBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	product, err := s.products.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !product.Published {
		return nil, pgx.ErrNoRows
	}
	return product, nil
}

// ListAll returns every product for the admin panel, drafts included.
func (s *CatalogService) ListAll(ctx context.Context, category *string, limit, offset int) ([]domain.Product, error) {
	return s.products.List(ctx, repository.ProductFilter{
		Category: category,
		Limit:    limit,
		Offset:   offset,
	})
}

// GetByID returns one product for the admin panel.
func (s *CatalogService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

// CreateProduct validates and persists a new product.
func (s *CatalogService) CreateProduct(ctx context.Context, product *domain.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	if err := s.products.Create(ctx, product); err != nil {
		return err
	}
	return s.cache.InvalidatePrefix(ctx, catalogCachePrefix)
}

// UpdateProduct validates and persists product changes.
func (s *CatalogService) UpdateProduct(ctx context.Context, product *domain.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	if err := s.products.Update(ctx, product); err != nil {
		return err
	}
	return s.cache.InvalidatePrefix(ctx, catalogCachePrefix)
}

// DeleteProduct removes a product.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	return s.cache.InvalidatePrefix(ctx, catalogCachePrefix)
}

func validateProduct(product *domain.Product) error {
	if product.Slug == "" {
		return errors.New("slug required")
	}
	if product.NameID == "" || product.NameEN == "" {
		return errors.New("both language names required")
	}
	if product.PriceIDR < 0 {
		return errors.New("price must not be negative")
	}
	if product.StockQty < 0 {
		return errors.New("stock must not be negative")
	}
	return nil
}
