package handlers

import (
	"fmt"
	"log"
	"time"

	"catalog/internal/models"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
	timeout time.Duration
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		service: service,
		timeout: timeout,
	}
}

// RegisterRoutes registers the product routes. guards run before every
// write.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, guards ...fiber.Handler) {
	router.Get("/get-products", h.HandleGetProducts)
	router.Get("/get-product/:id", h.HandleGetProductByID)
	router.Post("/add-product", withGuards(guards, h.HandleCreateProduct)...)
	router.Put("/edit/:id", withGuards(guards, h.HandleUpdateProduct)...)
	router.Delete("/delete-product/:id", withGuards(guards, h.HandleDeleteProduct)...)
}

// HandleGetProducts retrieves all products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	products, err := h.service.GetAllProducts(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	product, err := h.service.GetProductByID(ctx, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Product retrieved successfully",
		"product": product,
	})
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var input models.ProductInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing add-product body: %v", err)
		return respondError(c, invalidBody(err))
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	product, err := h.service.CreateProduct(ctx, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Product created successfully",
		"product": product,
	})
}

// HandleUpdateProduct applies a partial update to an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	var update models.ProductUpdate
	if err := c.BodyParser(&update); err != nil {
		log.Printf("Error parsing edit body for product %s: %v", productID, err)
		return respondError(c, invalidBody(err))
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	product, err := h.service.UpdateProduct(ctx, productID, update)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Product updated successfully",
		"product": product,
	})
}

// HandleDeleteProduct deletes a product and returns it.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	product, err := h.service.DeleteProduct(ctx, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Product %s deleted successfully", product.ID),
		"product": product,
	})
}
