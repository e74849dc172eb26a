package handlers

import (
	"selling/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler serves the reporting endpoints.
type ReportHandler struct {
	service *services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// RegisterRoutes registers the report routes.
func (h *ReportHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/top_three_categories", h.HandleTopCategories)
	router.Get("/product_filter", h.HandleProductFilter)
}

// HandleTopCategories returns the three sub-categories with the most products.
func (h *ReportHandler) HandleTopCategories(c *fiber.Ctx) error {
	rows, err := h.service.TopCategories(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}

// HandleProductFilter searches products by the detail query parameter.
func (h *ReportHandler) HandleProductFilter(c *fiber.Ctx) error {
	rows, err := h.service.SearchProducts(c.UserContext(), c.Query("detail"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}
