package services_test

import (
	"context"
	"errors"
	"testing"

	"catalog/internal/apperror"
	"catalog/internal/models"
	"catalog/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validInput() models.ProductInput {
	return models.ProductInput{
		Name:        "Shirt",
		Description: "Cotton",
		Price:       intPtr(20),
		Stock:       intPtr(5),
		Images:      []string{"http://x/1.png"},
	}
}

func TestProductService_GetAllProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)
	ctx := context.Background()

	expectedProducts := []models.Product{
		{ID: "1", Name: "Product A", Price: 10, Stock: 100},
		{ID: "2", Name: "Product B", Price: 20, Stock: 50},
	}
	mockRepo.On("GetAll", ctx).Return(expectedProducts, nil).Once()

	products, err := service.GetAllProducts(ctx)

	assert.NoError(t, err)
	assert.Equal(t, expectedProducts, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)
	ctx := context.Background()

	expectedProduct := &models.Product{ID: "1", Name: "Product A", Price: 10, Stock: 100}
	mockRepo.On("GetByID", ctx, "1").Return(expectedProduct, nil).Once()
	product, err := service.GetProductByID(ctx, "1")
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)

	mockRepo.On("GetByID", ctx, "99").Return(nil, apperror.NotFound("Product with ID 99 not found")).Once()
	product, err = service.GetProductByID(ctx, "99")
	assert.Nil(t, product)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	events := new(MockPublisher)
	service := services.NewProductService(mockRepo, events)
	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.MatchedBy(func(p *models.Product) bool {
		return p.Name == "Shirt" && p.Price == 20 && p.Stock == 5 && len(p.Images) == 1 && p.Color != nil
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Product).ID = "generated-id"
	}).Return(nil).Once()
	events.On("Publish", ctx, services.EventProductCreated, mock.AnythingOfType("*models.Product")).Return(nil).Once()

	product, err := service.CreateProduct(ctx, validInput())
	require.NoError(t, err)
	assert.Equal(t, "generated-id", product.ID)
	mockRepo.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestProductService_CreateProduct_Validation(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	in := validInput()
	in.Name = ""
	in.Images = nil
	in.Price = nil

	_, err := service.CreateProduct(context.Background(), in)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Fields, "Name")
	assert.Contains(t, appErr.Fields, "Images")
	assert.Contains(t, appErr.Fields, "Price")
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductService_CreateProduct_Conflict(t *testing.T) {
	mockRepo := new(MockProductRepository)
	events := new(MockPublisher)
	service := services.NewProductService(mockRepo, events)
	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.Anything).Return(apperror.Conflict("A product named 'Shirt' already exists")).Once()

	_, err := service.CreateProduct(ctx, validInput())
	assert.True(t, apperror.Is(err, apperror.KindConflict))
	events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestProductService_UpdateProduct_PreservesAbsentFields(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)
	ctx := context.Background()

	stored := &models.Product{
		ID: "1", Name: "Shirt", Description: "Cotton", Price: 20, Stock: 5,
		Color: []string{"red"}, Images: []string{"http://x/1.png"}, Size: "M",
	}
	mockRepo.On("GetByID", ctx, "1").Return(stored, nil).Once()
	mockRepo.On("Update", ctx, mock.AnythingOfType("*models.Product")).Return(nil).Once()

	updated, err := service.UpdateProduct(ctx, "1", models.ProductUpdate{Price: intPtr(25)})
	require.NoError(t, err)

	assert.Equal(t, 25, updated.Price)
	assert.Equal(t, "Shirt", updated.Name)
	assert.Equal(t, "Cotton", updated.Description)
	assert.Equal(t, 5, updated.Stock)
	assert.Equal(t, []string{"red"}, updated.Color)
	assert.Equal(t, []string{"http://x/1.png"}, updated.Images)
	assert.Equal(t, "M", updated.Size)
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateProduct_Invalid(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)
	ctx := context.Background()

	// an empty body is rejected before reading the store
	_, err := service.UpdateProduct(ctx, "1", models.ProductUpdate{})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	stored := &models.Product{ID: "1", Name: "Shirt", Description: "Cotton", Images: []string{"http://x/1.png"}}
	mockRepo.On("GetByID", ctx, "1").Return(stored, nil).Once()
	_, err = service.UpdateProduct(ctx, "1", models.ProductUpdate{Images: []string{}, Name: strPtr("")})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProductService_UpdateProduct_NotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)
	ctx := context.Background()

	mockRepo.On("GetByID", ctx, "99").Return(nil, apperror.NotFound("Product with ID 99 not found")).Once()
	_, err := service.UpdateProduct(ctx, "99", models.ProductUpdate{Stock: intPtr(1)})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	mockRepo.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	events := new(MockPublisher)
	service := services.NewProductService(mockRepo, events)
	ctx := context.Background()

	deleted := &models.Product{ID: "1", Name: "Shirt"}
	mockRepo.On("Delete", ctx, "1").Return(deleted, nil).Once()
	// a broker failure is logged, not returned
	events.On("Publish", ctx, services.EventProductDeleted, deleted).Return(errors.New("broker down")).Once()

	product, err := service.DeleteProduct(ctx, "1")
	assert.NoError(t, err)
	assert.Equal(t, deleted, product)

	mockRepo.On("Delete", ctx, "99").Return(nil, apperror.NotFound("Product with ID 99 not found")).Once()
	_, err = service.DeleteProduct(ctx, "99")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	mockRepo.AssertExpectations(t)
	events.AssertExpectations(t)
}
