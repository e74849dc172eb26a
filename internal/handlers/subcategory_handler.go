package handlers

import (
	"time"

	"selling/internal/middleware"
	"selling/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// SubCategoryHandler handles HTTP requests for sub-categories.
type SubCategoryHandler struct {
	service  *services.SubCategoryService
	validate *validator.Validate
}

// NewSubCategoryHandler creates a new SubCategoryHandler.
func NewSubCategoryHandler(service *services.SubCategoryService) *SubCategoryHandler {
	return &SubCategoryHandler{service: service, validate: newValidator()}
}

// RegisterRoutes registers the sub-category routes.
func (h *SubCategoryHandler) RegisterRoutes(router fiber.Router) {
	subRoutes := router.Group("/sub")
	subRoutes.Get("/", h.HandleGetSubCategories)
	subRoutes.Post("/", h.HandleCreateSubCategory)
	subRoutes.Get("/:id", h.HandleGetSubCategory)
	subRoutes.Put("/:id", h.HandleUpdateSubCategory)
	subRoutes.Delete("/:id", h.HandleDeleteSubCategory)
}

// SubCategoryRequest is the write shape of a sub-category. created_by and
// updated_by come from the token, never from the body.
type SubCategoryRequest struct {
	Name        string     `json:"name" validate:"required,max=100"`
	ShortName   string     `json:"short_name" validate:"required,max=50"`
	Image       *string    `json:"image" validate:"omitempty,max=100"`
	Description string     `json:"description" validate:"required"`
	IsActive    *bool      `json:"is_active"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

func (r SubCategoryRequest) input() services.SubCategoryInput {
	return services.SubCategoryInput{
		Name:        r.Name,
		ShortName:   r.ShortName,
		Image:       r.Image,
		Description: r.Description,
		IsActive:    r.IsActive,
		UpdatedAt:   r.UpdatedAt,
	}
}

// HandleGetSubCategories lists all sub-categories.
func (h *SubCategoryHandler) HandleGetSubCategories(c *fiber.Ctx) error {
	subs, err := h.service.GetAllSubCategories(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(subs)
}

// HandleGetSubCategory retrieves a sub-category by id.
func (h *SubCategoryHandler) HandleGetSubCategory(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}
	sub, err := h.service.GetSubCategoryByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sub)
}

// HandleCreateSubCategory creates a sub-category owned by the caller.
func (h *SubCategoryHandler) HandleCreateSubCategory(c *fiber.Ctx) error {
	var req SubCategoryRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}
	sub, err := h.service.CreateSubCategory(c.UserContext(), req.input(), middleware.CurrentUser(c).ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sub)
}

// HandleUpdateSubCategory replaces a sub-category; the caller becomes its
// last updater.
func (h *SubCategoryHandler) HandleUpdateSubCategory(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}
	var req SubCategoryRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}
	sub, err := h.service.UpdateSubCategory(c.UserContext(), id, req.input(), middleware.CurrentUser(c).ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sub)
}

// HandleDeleteSubCategory deletes a sub-category and its products.
func (h *SubCategoryHandler) HandleDeleteSubCategory(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}
	if err := h.service.DeleteSubCategory(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
