package repositories

import (
	"context"

	"catalog/internal/models"
)

// ProductRepository defines the interface for product data access.
// Missing documents are reported as apperror.KindNotFound and name
// collisions as apperror.KindConflict.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	// Update overwrites the stored document with product, matched on product.ID.
	Update(ctx context.Context, product *models.Product) error
	// Delete removes the document and returns it as it was before removal.
	Delete(ctx context.Context, id string) (*models.Product, error)
}
