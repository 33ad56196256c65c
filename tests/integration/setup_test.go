package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/teenxsky/money-flow/internal/handlers"
	"github.com/teenxsky/money-flow/internal/logger"
	"github.com/teenxsky/money-flow/internal/middleware"
	"github.com/teenxsky/money-flow/internal/models"
	"github.com/teenxsky/money-flow/internal/services"
	"github.com/teenxsky/money-flow/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.TransactionType{},
		&models.Category{},
		&models.Subcategory{},
		&models.Status{},
		&models.Transaction{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	userService := services.NewUserService(db)
	transactionTypeService := services.NewTransactionTypeService(db)
	categoryService := services.NewCategoryService(db)
	subcategoryService := services.NewSubcategoryService(db)
	statusService := services.NewStatusService(db)
	transactionService := services.NewTransactionService(db)
	seedService := services.NewSeedService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	transactionTypeHandler := handlers.NewTransactionTypeHandler(transactionTypeService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	subcategoryHandler := handlers.NewSubcategoryHandler(subcategoryService)
	statusHandler := handlers.NewStatusHandler(statusService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	referenceHandler := handlers.NewReferenceHandler(seedService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Public reference reads
	reference := v1.Group("/reference")
	reference.GET("/transaction-types", transactionTypeHandler.List)
	reference.GET("/transaction-types/:id", transactionTypeHandler.GetByID)
	reference.GET("/categories", categoryHandler.List)
	reference.GET("/categories/:id", categoryHandler.GetByID)
	reference.GET("/subcategories", subcategoryHandler.List)
	reference.GET("/subcategories/:id", subcategoryHandler.GetByID)
	reference.GET("/statuses", statusHandler.List)
	reference.GET("/statuses/:id", statusHandler.GetByID)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)

	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.Create)
	transactions.GET("", transactionHandler.List)
	transactions.GET("/:id", transactionHandler.GetByID)
	transactions.PATCH("/:id", transactionHandler.Update)
	transactions.DELETE("/:id", transactionHandler.Delete)

	// Admin-only reference mutations
	admin := protected.Group("/reference")
	admin.Use(middleware.AdminRequired())

	admin.POST("/transaction-types", transactionTypeHandler.Create)
	admin.PUT("/transaction-types/:id", transactionTypeHandler.Update)
	admin.DELETE("/transaction-types/:id", transactionTypeHandler.Delete)

	admin.POST("/categories", categoryHandler.Create)
	admin.PUT("/categories/:id", categoryHandler.Update)
	admin.DELETE("/categories/:id", categoryHandler.Delete)

	admin.POST("/subcategories", subcategoryHandler.Create)
	admin.PUT("/subcategories/:id", subcategoryHandler.Update)
	admin.DELETE("/subcategories/:id", subcategoryHandler.Delete)

	admin.POST("/statuses", statusHandler.Create)
	admin.PUT("/statuses/:id", statusHandler.Update)
	admin.DELETE("/statuses/:id", statusHandler.Delete)

	admin.POST("/seed", referenceHandler.Seed)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// errorCode extracts the error code from an error response body.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	result := parseJSON(t, rec)
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in body: %s", rec.Body.String())
	}
	code, _ := errObj["code"].(string)
	return code
}

// registerUser registers a new user and returns the access token, refresh token, and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (accessToken, refreshToken, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"first_name":"Test","last_name":"User"}`, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["access_token"].(string), result["refresh_token"].(string), user["id"].(string)
}

// loginUser logs in and returns the access and refresh tokens.
func (app *testApp) loginUser(t *testing.T, email, password string) (accessToken, refreshToken string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["access_token"].(string), result["refresh_token"].(string)
}

// registerAdmin registers a user, promotes it to administrator and logs in
// again so the access token carries the admin claim.
func (app *testApp) registerAdmin(t *testing.T, email, password string) (accessToken string) {
	t.Helper()
	_, _, userID := app.registerUser(t, email, password)
	if err := app.DB.Model(&models.User{}).Where("id = ?", userID).Update("is_admin", true).Error; err != nil {
		t.Fatalf("failed to promote user to admin: %v", err)
	}
	accessToken, _ = app.loginUser(t, email, password)
	return accessToken
}

// seedReference loads the full reference vocabulary as an administrator and
// returns a lookup of reference IDs keyed by name.
func (app *testApp) seedReference(t *testing.T, adminToken string) map[string]string {
	t.Helper()
	rec := app.request("POST", "/api/v1/reference/seed", "", adminToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("seed failed: %d %s", rec.Code, rec.Body.String())
	}

	ids := make(map[string]string)
	collect := func(path, key string) {
		rec := app.request("GET", path, "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("list %s failed: %d %s", path, rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		items := result[key].([]interface{})
		for _, item := range items {
			row := item.(map[string]interface{})
			ids[row["name"].(string)] = row["id"].(string)
		}
	}
	collect("/api/v1/reference/transaction-types", "transaction_types")
	collect("/api/v1/reference/categories", "categories")
	collect("/api/v1/reference/subcategories", "subcategories")
	collect("/api/v1/reference/statuses", "statuses")
	return ids
}
