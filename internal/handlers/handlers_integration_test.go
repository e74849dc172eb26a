package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"selling/internal/config"
	"selling/internal/database"
	"selling/internal/handlers"
	"selling/internal/middleware"
	"selling/internal/repositories"
	"selling/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupApp sets up a Fiber app for testing with in-memory SQLite and all handlers/services.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := config.Config{
		AppEnv:      "test",
		DBDriver:    "sqlite",
		DatabaseDSN: fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		JWTSecret:   "test_jwt_secret",
		TokenTTL:    time.Hour,
	}
	db, err := database.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	authService := services.NewAuthService(repositories.NewGORMUserRepository(db), cfg.JWTSecret, cfg.TokenTTL)
	colorService := services.NewColorService(repositories.NewGORMColorRepository(db))
	subService := services.NewSubCategoryService(repositories.NewGORMSubCategoryRepository(db), nil)
	productService := services.NewProductService(repositories.NewGORMProductRepository(db), nil)
	reportService := services.NewReportService(repositories.NewGORMReportRepository(db))

	app := fiber.New()
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger())

	apiV1 := app.Group("/api/v1")
	handlers.NewAuthHandler(authService).RegisterRoutes(apiV1)

	protected := apiV1.Group("", middleware.AuthRequired(authService))
	handlers.NewColorHandler(colorService).RegisterRoutes(protected)
	handlers.NewSubCategoryHandler(subService).RegisterRoutes(protected)
	handlers.NewProductHandler(productService).RegisterRoutes(protected)
	handlers.NewReportHandler(reportService).RegisterRoutes(protected)

	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func decode(t *testing.T, raw []byte, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, v), string(raw))
}

// registerAndLogin creates an account and returns its bearer token.
func registerAndLogin(t *testing.T, app *fiber.App, email, username, password string) string {
	t.Helper()
	status, body := doRequest(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email": email, "username": username, "password": password,
	})
	require.Equal(t, http.StatusCreated, status, string(body))

	status, body = doRequest(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, status, string(body))
	var login map[string]interface{}
	decode(t, body, &login)
	token, _ := login["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestAuthRegisterAndLogin(t *testing.T) {
	app := setupApp(t)

	// Test Registration
	status, body := doRequest(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":      "Test@EXAMPLE.com",
		"username":   "testuser",
		"password":   "password123",
		"first_name": "Test",
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	var user map[string]interface{}
	decode(t, body, &user)
	assert.Equal(t, "Test@example.com", user["email"])
	assert.Equal(t, "CU", user["role"])
	assert.NotContains(t, user, "password")

	// Test duplicate registration
	status, body = doRequest(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email": "Test@example.COM", "username": "someone", "password": "x",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	var dupFields map[string][]string
	decode(t, body, &dupFields)
	assert.Contains(t, dupFields, "email")

	// Test missing fields
	status, body = doRequest(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]string{"username": "nomail"})
	assert.Equal(t, http.StatusBadRequest, status)
	var fields map[string][]string
	decode(t, body, &fields)
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")

	// Test login with wrong password
	status, _ = doRequest(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "Test@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, status)

	// Test successful login and users/me
	status, body = doRequest(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "Test@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusOK, status)
	var login map[string]string
	decode(t, body, &login)

	status, body = doRequest(t, app, http.MethodGet, "/api/v1/auth/users/me/", login["token"], nil)
	require.Equal(t, http.StatusOK, status)
	decode(t, body, &user)
	assert.Equal(t, "testuser", user["username"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := setupApp(t)

	status, _ := doRequest(t, app, http.MethodGet, "/api/v1/colors/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = doRequest(t, app, http.MethodGet, "/api/v1/product/", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = doRequest(t, app, http.MethodGet, "/api/v1/auth/users/me/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestColorEndpoints(t *testing.T) {
	app := setupApp(t)
	token := registerAndLogin(t, app, "c@example.com", "colors", "pw")

	status, body := doRequest(t, app, http.MethodPost, "/api/v1/colors/", token, map[string]string{
		"name": "Red", "color_code": "#FF0000",
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	var color map[string]interface{}
	decode(t, body, &color)
	id := uint(color["id"].(float64))

	status, body = doRequest(t, app, http.MethodPut, fmt.Sprintf("/api/v1/colors/%d/", id), token, map[string]string{
		"name": "Crimson", "color_code": "#DC143C",
	})
	require.Equal(t, http.StatusOK, status, string(body))
	decode(t, body, &color)
	assert.Equal(t, "Crimson", color["name"])

	// Code longer than seven characters
	status, body = doRequest(t, app, http.MethodPost, "/api/v1/colors/", token, map[string]string{
		"name": "Blue", "color_code": "#0000FFFF",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(body), "color_code")

	status, body = doRequest(t, app, http.MethodGet, "/api/v1/colors/999/", token, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Empty(t, body)

	status, _ = doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/colors/%d/", id), token, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, body = doRequest(t, app, http.MethodGet, "/api/v1/colors/", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, "[]", string(body))
}

func TestCatalogFlow(t *testing.T) {
	app := setupApp(t)
	token := registerAndLogin(t, app, "seller@example.com", "seller", "pw")
	editor := registerAndLogin(t, app, "editor@example.com", "editor", "pw")

	// Sub-category owned by the caller
	status, body := doRequest(t, app, http.MethodPost, "/api/v1/sub/", token, map[string]interface{}{
		"name": "Belts", "short_name": "BL", "description": "Leather belts", "created_by": 999,
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	var sub map[string]interface{}
	decode(t, body, &sub)
	subID := uint(sub["id"].(float64))
	ownerID := sub["created_by"]
	assert.Equal(t, ownerID, sub["updated_by"])
	assert.NotEqual(t, float64(999), ownerID)
	assert.Equal(t, true, sub["is_active"])

	status, body = doRequest(t, app, http.MethodPost, "/api/v1/colors/", token, map[string]string{
		"name": "Brown", "color_code": "#964B00",
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	var color map[string]interface{}
	decode(t, body, &color)
	colorID := uint(color["id"].(float64))

	// Product create: category is written as an id and read as an object
	status, body = doRequest(t, app, http.MethodPost, "/api/v1/product/", token, map[string]interface{}{
		"title": "Leather Belt", "category": subID, "description": "Brown leather", "colors": []uint{colorID},
		"sku": "client-value",
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	var product map[string]interface{}
	decode(t, body, &product)
	productID := uint(product["id"].(float64))
	sku := product["sku"].(string)
	assert.True(t, strings.HasPrefix(sku, "prod-"), sku)
	assert.True(t, strings.HasSuffix(sku, "-leather-belt"), sku)
	assert.Equal(t, "Belts", product["category"].(map[string]interface{})["name"])
	assert.Equal(t, []interface{}{float64(colorID)}, product["colors"])

	// Same title on the same day collides on the SKU
	status, body = doRequest(t, app, http.MethodPost, "/api/v1/product/", token, map[string]interface{}{
		"title": "Leather Belt", "category": subID, "description": "Again",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(body), "sku")

	// Unknown category
	status, body = doRequest(t, app, http.MethodPost, "/api/v1/product/", token, map[string]interface{}{
		"title": "Orphan", "category": 999, "description": "x",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(body), "category")

	// Update by another user keeps the SKU and creator
	status, body = doRequest(t, app, http.MethodPut, fmt.Sprintf("/api/v1/product/%d/", productID), editor, map[string]interface{}{
		"title": "Suede Belt", "category": subID, "description": "Brown suede",
	})
	require.Equal(t, http.StatusOK, status, string(body))
	decode(t, body, &product)
	assert.Equal(t, sku, product["sku"])
	assert.Equal(t, "Suede Belt", product["title"])
	assert.Equal(t, ownerID, product["created_by"])
	assert.NotEqual(t, ownerID, product["updated_by"])
	assert.Equal(t, []interface{}{float64(colorID)}, product["colors"])

	// Reports
	status, body = doRequest(t, app, http.MethodGet, "/api/v1/top_three_categories/", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[{"name":"Belts","product_count":1}]`, string(body))

	status, body = doRequest(t, app, http.MethodGet, "/api/v1/product_filter/?detail=SUEDE", token, nil)
	require.Equal(t, http.StatusOK, status)
	var results []map[string]interface{}
	decode(t, body, &results)
	require.Len(t, results, 1)
	assert.Equal(t, "Belts", results[0]["category"])
	assert.Equal(t, "seller", results[0]["created_by"])

	status, body = doRequest(t, app, http.MethodGet, "/api/v1/product_filter/?detail=nothing-matches", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, "[]", string(body))

	// Deleting the sub-category removes its products
	status, _ = doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/sub/%d/", subID), token, nil)
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/v1/product/%d/", productID), token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestDeleteMe(t *testing.T) {
	app := setupApp(t)
	token := registerAndLogin(t, app, "gone@example.com", "gone", "pw")

	status, body := doRequest(t, app, http.MethodPost, "/api/v1/sub/", token, map[string]interface{}{
		"name": "Hats", "short_name": "HT", "description": "Hats",
	})
	require.Equal(t, http.StatusCreated, status, string(body))

	status, body = doRequest(t, app, http.MethodDelete, "/api/v1/auth/users/me/", token, map[string]string{"current_password": "nope"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(body), "current_password")

	status, _ = doRequest(t, app, http.MethodDelete, "/api/v1/auth/users/me/", token, map[string]string{"current_password": "pw"})
	assert.Equal(t, http.StatusNoContent, status)

	// The token no longer resolves to a user
	status, _ = doRequest(t, app, http.MethodGet, "/api/v1/sub/", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	other := registerAndLogin(t, app, "other@example.com", "other", "pw")
	status, body = doRequest(t, app, http.MethodGet, "/api/v1/sub/", other, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, "[]", string(body))
}
