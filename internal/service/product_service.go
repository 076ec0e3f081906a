package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lace-store/internal/domain"
	"lace-store/internal/repository"

	"github.com/gosimple/slug"
)

var (
	ErrSlugRequired  = errors.New("slug is required when the product has no name")
	ErrNegativePrice = errors.New("price must not be negative")
)

// MakeSlug derives a URL slug from a name, transliterating Cyrillic
func MakeSlug(name string) string {
	return slug.Make(name)
}

// ProductFilter narrows a product listing; empty fields match everything
type ProductFilter struct {
	CategoryID   string
	CollectionID string
}

type ProductService struct {
	products repository.ProductRepository
}

func NewProductService(products repository.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

func (s *ProductService) List(ctx context.Context, filter ProductFilter) ([]domain.Product, error) {
	var (
		products []domain.Product
		err      error
	)
	switch {
	case filter.CategoryID != "":
		products, err = s.products.ListByCategory(ctx, filter.CategoryID)
	case filter.CollectionID != "":
		products, err = s.products.ListByCollection(ctx, filter.CollectionID)
	default:
		products, err = s.products.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	if filter.CategoryID != "" && filter.CollectionID != "" {
		out := []domain.Product{}
		for i := range products {
			if products[i].InCollection(filter.CollectionID) {
				out = append(out, products[i])
			}
		}
		products = out
	}
	return products, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.FindByID(ctx, id)
}

func (s *ProductService) GetBySlug(ctx context.Context, productSlug string) (*domain.Product, error) {
	return s.products.FindBySlug(ctx, productSlug)
}

// Create stores a product, deriving its slug from the default-locale name when empty
func (s *ProductService) Create(ctx context.Context, product *domain.Product) error {
	if err := prepareProduct(product); err != nil {
		return err
	}
	now := time.Now().UTC()
	product.ID = ""
	product.CreatedAt = now
	product.UpdatedAt = now
	return s.products.Create(ctx, product)
}

// Update replaces a product, keeping its creation time
func (s *ProductService) Update(ctx context.Context, id string, product *domain.Product) error {
	existing, err := s.products.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := prepareProduct(product); err != nil {
		return err
	}
	product.ID = id
	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = time.Now().UTC()
	return s.products.Update(ctx, product)
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}

func prepareProduct(product *domain.Product) error {
	if product.Price.IsNegative() || (product.OldPrice != nil && product.OldPrice.IsNegative()) {
		return ErrNegativePrice
	}
	if product.Slug == "" {
		product.Slug = MakeSlug(product.Translations.Get(domain.DefaultLocale).Name)
	}
	if product.Slug == "" {
		return ErrSlugRequired
	}
	if product.Images == nil {
		product.Images = []string{}
	}
	if product.PropertyIDs == nil {
		product.PropertyIDs = []string{}
	}
	if product.CollectionIDs == nil {
		product.CollectionIDs = []string{}
	}
	return nil
}
