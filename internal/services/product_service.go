package services

import (
	"context"
	"log"

	"catalog/internal/apperror"
	"catalog/internal/models"
	"catalog/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo     repositories.ProductRepository
	events   EventPublisher
	validate *validator.Validate
}

// NewProductService creates a new ProductService. events may be nil.
func NewProductService(repo repositories.ProductRepository, events EventPublisher) *ProductService {
	return &ProductService{
		repo:     repo,
		events:   events,
		validate: NewValidator(),
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.GetAll(ctx)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct validates in and stores a new product.
func (s *ProductService) CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	if err := Validate(s.validate, in); err != nil {
		return nil, err
	}

	product := in.Product()
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	log.Printf("Created product %s (%s)", product.ID, product.Name)
	publish(ctx, s.events, EventProductCreated, product)
	return product, nil
}

// UpdateProduct applies a partial update. Fields absent from upd keep their
// stored values and the merged product is validated as a whole before it is
// written back.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, upd models.ProductUpdate) (*models.Product, error) {
	if upd.Empty() {
		return nil, apperror.Validation("Update must contain at least one field", nil)
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	upd.Apply(product)
	if err := Validate(s.validate, product.Input()); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	publish(ctx, s.events, EventProductUpdated, product)
	return product, nil
}

// DeleteProduct deletes a product by its ID and returns it.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	log.Printf("Deleted product %s (%s)", product.ID, product.Name)
	publish(ctx, s.events, EventProductDeleted, product)
	return product, nil
}
