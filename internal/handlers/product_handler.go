package handlers

import (
	"time"

	"selling/internal/middleware"
	"selling/internal/models"
	"selling/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{service: service, validate: newValidator()}
}

// RegisterRoutes registers the product routes.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/product")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// ProductRequest is the write shape of a product: category is an id and
// the SKU is not accepted.
type ProductRequest struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Category    uint       `json:"category" validate:"required"`
	Description string     `json:"description" validate:"required"`
	IsActive    *bool      `json:"is_active"`
	Colors      []uint     `json:"colors"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

func (r ProductRequest) input() services.ProductInput {
	return services.ProductInput{
		Title:       r.Title,
		CategoryID:  r.Category,
		Description: r.Description,
		IsActive:    r.IsActive,
		ColorIDs:    r.Colors,
		UpdatedAt:   r.UpdatedAt,
	}
}

// ProductResponse is the read shape of a product: the category is embedded
// and colors are listed by id.
type ProductResponse struct {
	*models.Product
	Colors []uint `json:"colors"`
}

func newProductResponse(p *models.Product) ProductResponse {
	return ProductResponse{Product: p, Colors: p.ColorIDs()}
}

// HandleGetProducts lists all products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, newProductResponse(&products[i]))
	}
	return c.JSON(out)
}

// HandleGetProduct retrieves a product by id.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}
	product, err := h.service.GetProductByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newProductResponse(product))
}

// HandleCreateProduct creates a product owned by the caller.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req ProductRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}
	product, err := h.service.CreateProduct(c.UserContext(), req.input(), middleware.CurrentUser(c).ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newProductResponse(product))
}

// HandleUpdateProduct replaces a product; the caller becomes its last updater.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}
	var req ProductRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}
	product, err := h.service.UpdateProduct(c.UserContext(), id, req.input(), middleware.CurrentUser(c).ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newProductResponse(product))
}

// HandleDeleteProduct deletes a product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}
	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
