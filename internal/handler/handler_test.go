package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"storefront-service/internal/model"
	mid "storefront-service/internal/middleware"
	"storefront-service/pkg/config"
	"storefront-service/pkg/database"
	"storefront-service/prometheus"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	testAdminUser = "admin"
	testAdminPass = "secret"
)

var testAdminConfig = config.AdminConfig{
	Username: testAdminUser,
	Password: testAdminPass,
}

func TestMain(m *testing.M) {
	// Metrics are registered once per process
	prometheus.InitMetrics(&config.Config{
		Metrics: config.MetricsConfig{Prefix: "storefront_test"},
	})
	os.Exit(m.Run())
}

// setupTest points the handlers at a fresh in-memory database and returns an
// Echo instance with the full route table, mirroring cmd/main.go.
func setupTest(t *testing.T) *echo.Echo {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	database.Set(db)

	e := echo.New()
	e.Validator = NewRequestValidator()

	adminGuard := mid.AdminAuth(&testAdminConfig)

	api := e.Group("/api")
	api.GET("/", Root)
	api.POST("/admin/login", AdminLogin(&testAdminConfig))

	api.GET("/categories", ListCategories)
	api.POST("/categories", CreateCategory, adminGuard)
	api.PUT("/categories/:id", UpdateCategory, adminGuard)
	api.DELETE("/categories/:id", DeleteCategory, adminGuard)

	api.GET("/products", ListProducts)
	api.GET("/products/:id", GetProduct)
	api.POST("/products", CreateProduct, adminGuard)
	api.PUT("/products/:id", UpdateProduct, adminGuard)
	api.DELETE("/products/:id", DeleteProduct, adminGuard)

	api.GET("/promocodes", ListPromocodes, adminGuard)
	api.POST("/promocodes", CreatePromocode, adminGuard)
	api.DELETE("/promocodes/:id", DeletePromocode, adminGuard)
	api.POST("/promocodes/validate", ValidatePromocode)

	api.GET("/orders", ListOrders, adminGuard)
	api.POST("/orders", CreateOrder)

	api.POST("/seed", SeedData)

	return e
}

// doRequest performs a JSON request against the test router
func doRequest(t *testing.T, e *echo.Echo, method, path string, body interface{}, asAdmin bool) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if asAdmin {
		req.SetBasicAuth(testAdminUser, testAdminPass)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func createTestCategory(t *testing.T, e *echo.Echo, name, slug string) model.Category {
	t.Helper()
	rec := doRequest(t, e, http.MethodPost, "/api/categories", CategoryRequest{Name: name, Slug: slug}, true)
	require.Equal(t, http.StatusOK, rec.Code)

	var category model.Category
	decodeBody(t, rec, &category)
	return category
}

func createTestProduct(t *testing.T, e *echo.Echo, req ProductRequest) model.Product {
	t.Helper()
	rec := doRequest(t, e, http.MethodPost, "/api/products", req, true)
	require.Equal(t, http.StatusOK, rec.Code)

	var product model.Product
	decodeBody(t, rec, &product)
	return product
}

func createTestPromocode(t *testing.T, e *echo.Echo, req PromocodeRequest) model.Promocode {
	t.Helper()
	rec := doRequest(t, e, http.MethodPost, "/api/promocodes", req, true)
	require.Equal(t, http.StatusOK, rec.Code)

	var promo model.Promocode
	decodeBody(t, rec, &promo)
	return promo
}
