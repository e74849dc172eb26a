package handlers

import (
	"selling/internal/logger"
	"selling/internal/middleware"
	"selling/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    newValidator(),
	}
}

// RegisterRoutes registers the authentication routes. The users/me routes
// are guarded by AuthRequired.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)

	me := authRoutes.Group("/users/me", middleware.AuthRequired(h.authService))
	me.Get("/", h.HandleMe)
	me.Delete("/", h.HandleDeleteMe)
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Email         string  `json:"email" validate:"required,email,max=254"`
	Username      string  `json:"username" validate:"required,max=50"`
	Password      string  `json:"password" validate:"required,max=128"`
	FirstName     string  `json:"first_name" validate:"max=150"`
	LastName      string  `json:"last_name" validate:"max=150"`
	Role          string  `json:"role" validate:"omitempty,oneof=CU SE"`
	ProfileImage  *string `json:"profile_image" validate:"omitempty,max=100"`
	ContactNumber *string `json:"contact_number" validate:"omitempty,max=20"`
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}

	user, err := h.authService.CreateUser(c.UserContext(), req.Email, req.Username, req.Password, services.UserFields{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Role:          req.Role,
		ProfileImage:  req.ProfileImage,
		ContactNumber: req.ContactNumber,
	})
	if err != nil {
		logger.Log.Info("registration rejected", zap.String("username", req.Username), zap.Error(err))
		return respondError(c, err)
	}

	logger.Log.Info("user registered", zap.Uint("user_id", user.ID))
	return c.Status(fiber.StatusCreated).JSON(user)
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}

	token, err := h.authService.LoginUser(c.UserContext(), req.Email, req.Password)
	if err != nil {
		logger.Log.Info("login failed", zap.String("email", req.Email), zap.Error(err))
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
	})
}

// HandleMe returns the authenticated user.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	return c.JSON(middleware.CurrentUser(c))
}

// DeleteMeRequest represents the request body for deleting the own account.
type DeleteMeRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
}

// HandleDeleteMe deletes the authenticated user and everything it created.
func (h *AuthHandler) HandleDeleteMe(c *fiber.Ctx) error {
	var req DeleteMeRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}

	user := middleware.CurrentUser(c)
	if err := h.authService.DeleteUser(c.UserContext(), user.ID, req.CurrentPassword); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
