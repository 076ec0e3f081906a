package repository

import (
	"context"
	"database/sql"

	"lace-store/internal/domain"
)

type productRepository struct {
	*documentRepository[domain.Product, *domain.Product]
}

// NewProductRepository creates a postgres-backed ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{
		documentRepository: newDocumentRepository[domain.Product](db, "products"),
	}
}

// Create inserts a product; a duplicate slug yields ErrSlugTaken
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := r.documentRepository.Create(ctx, product); err != nil {
		if isUniqueViolation(err) {
			return ErrSlugTaken
		}
		return err
	}
	return nil
}

// Update replaces a product; a duplicate slug yields ErrSlugTaken
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	if err := r.documentRepository.Update(ctx, product); err != nil {
		if isUniqueViolation(err) {
			return ErrSlugTaken
		}
		return err
	}
	return nil
}

// FindBySlug retrieves a product by its URL slug
func (r *productRepository) FindBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return r.findOne(ctx, `WHERE data->>'slug' = $1`, slug)
}

// ListByCategory retrieves the products of one category
func (r *productRepository) ListByCategory(ctx context.Context, categoryID string) ([]domain.Product, error) {
	return r.queryDocuments(ctx, `WHERE data->>'categoryId' = $1`, categoryID)
}

// ListByCollection retrieves the products whose collectionIds contain the collection
func (r *productRepository) ListByCollection(ctx context.Context, collectionID string) ([]domain.Product, error) {
	return r.queryDocuments(ctx, `WHERE data->'collectionIds' ? $1`, collectionID)
}
