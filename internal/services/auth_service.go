package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"selling/internal/apperrors"
	"selling/internal/logger"
	"selling/internal/models"
	"selling/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserFields holds the optional attributes accepted when creating a user.
// Nil flags take the defaults of the calling factory.
type UserFields struct {
	FirstName     string
	LastName      string
	Role          string
	ProfileImage  *string
	ContactNumber *string
	IsActive      *bool
	IsStaff       *bool
	IsSuperuser   *bool
}

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: tokenTTL,
	}
}

// CreateUser normalizes the email, hashes the password and stores a new
// account. Email and username must both be unused.
func (s *AuthService) CreateUser(ctx context.Context, email, username, password string, fields UserFields) (*models.User, error) {
	if strings.TrimSpace(email) == "" {
		return nil, apperrors.NewValidationError("email", "The Email field must be set")
	}
	email = models.NormalizeEmail(email)

	if existing, err := s.userRepo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, &apperrors.UniquenessError{Field: "email", Value: email}
	} else if err != nil && !apperrors.IsNotFound(err) {
		return nil, err
	}
	if existing, err := s.userRepo.GetByUsername(ctx, username); err == nil && existing != nil {
		return nil, &apperrors.UniquenessError{Field: "username", Value: username}
	} else if err != nil && !apperrors.IsNotFound(err) {
		return nil, err
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	role := fields.Role
	if role == "" {
		role = models.RoleCustomer
	}
	user := &models.User{
		Email:         email,
		Username:      username,
		Password:      hashed,
		FirstName:     fields.FirstName,
		LastName:      fields.LastName,
		Role:          role,
		ProfileImage:  fields.ProfileImage,
		ContactNumber: fields.ContactNumber,
		IsActive:      boolOr(fields.IsActive, true),
		IsStaff:       boolOr(fields.IsStaff, false),
		IsSuperuser:   boolOr(fields.IsSuperuser, false),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// CreateSuperuser creates a staff superuser unless the fields say otherwise.
func (s *AuthService) CreateSuperuser(ctx context.Context, email, username, password string, fields UserFields) (*models.User, error) {
	yes := true
	if fields.IsStaff == nil {
		fields.IsStaff = &yes
	}
	if fields.IsSuperuser == nil {
		fields.IsSuperuser = &yes
	}
	return s.CreateUser(ctx, email, username, password, fields)
}

// Authenticate returns the active user matching email and password.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, models.NormalizeEmail(email))
	if err != nil || user == nil {
		// Same error whether or not the account exists.
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive || !CheckPassword(user.Password, password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

// LoginUser authenticates a user and returns a JWT token if successful.
func (s *AuthService) LoginUser(ctx context.Context, email, password string) (string, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return "", err
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"jti":      uuid.NewString(),
		"exp":      now.Add(s.tokenDurat).Unix(),
		"iat":      now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		logger.Log.Debug("token validation failed", zap.Error(err))
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

// UserFromToken validates the token and loads the active user it was issued to.
func (s *AuthService) UserFromToken(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	raw, ok := claims["user_id"].(float64)
	if !ok || raw <= 0 {
		return nil, fmt.Errorf("invalid token: missing user_id claim")
	}
	user, err := s.userRepo.GetByID(ctx, uint(raw))
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, fmt.Errorf("invalid token: user no longer exists")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("invalid token: user is inactive")
	}
	return user, nil
}

// GetUser retrieves a user by id.
func (s *AuthService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// DeleteUser removes the account after re-checking its password. Everything
// the user created or last updated is deleted with it.
func (s *AuthService) DeleteUser(ctx context.Context, id uint, currentPassword string) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !CheckPassword(user.Password, currentPassword) {
		return apperrors.NewValidationError("current_password", "Invalid password.")
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	logger.Log.Info("user deleted", zap.Uint("user_id", id))
	return nil
}

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword reports whether password matches the bcrypt hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
