package handlers

import (
	"selling/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ColorHandler handles HTTP requests for colors.
type ColorHandler struct {
	service  *services.ColorService
	validate *validator.Validate
}

// NewColorHandler creates a new ColorHandler.
func NewColorHandler(service *services.ColorService) *ColorHandler {
	return &ColorHandler{service: service, validate: newValidator()}
}

// RegisterRoutes registers the color routes.
func (h *ColorHandler) RegisterRoutes(router fiber.Router) {
	colorRoutes := router.Group("/colors")
	colorRoutes.Get("/", h.HandleGetColors)
	colorRoutes.Post("/", h.HandleCreateColor)
	colorRoutes.Get("/:id", h.HandleGetColor)
	colorRoutes.Put("/:id", h.HandleUpdateColor)
	colorRoutes.Delete("/:id", h.HandleDeleteColor)
}

// ColorRequest is the write shape of a color.
type ColorRequest struct {
	Name      string `json:"name" validate:"required,max=50"`
	ColorCode string `json:"color_code" validate:"required,max=7"`
}

func (r ColorRequest) input() services.ColorInput {
	return services.ColorInput{Name: r.Name, ColorCode: r.ColorCode}
}

// HandleGetColors lists all colors.
func (h *ColorHandler) HandleGetColors(c *fiber.Ctx) error {
	colors, err := h.service.GetAllColors(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(colors)
}

// HandleGetColor retrieves a color by id.
func (h *ColorHandler) HandleGetColor(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}
	color, err := h.service.GetColorByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(color)
}

// HandleCreateColor creates a color.
func (h *ColorHandler) HandleCreateColor(c *fiber.Ctx) error {
	var req ColorRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}
	color, err := h.service.CreateColor(c.UserContext(), req.input())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(color)
}

// HandleUpdateColor replaces a color.
func (h *ColorHandler) HandleUpdateColor(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}
	var req ColorRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}
	color, err := h.service.UpdateColor(c.UserContext(), id, req.input())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(color)
}

// HandleDeleteColor deletes a color.
func (h *ColorHandler) HandleDeleteColor(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}
	if err := h.service.DeleteColor(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
