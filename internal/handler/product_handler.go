package handler

import (
	"errors"
	"net/http"
	"time"

	"storefront-service/internal/model"
	"storefront-service/pkg/database"
	"storefront-service/pkg/logger"
	"storefront-service/prometheus"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// WeightPriceRequest is one weight tier in a product payload. The tier's
// position in the list becomes its stored sort order.
type WeightPriceRequest struct {
	Weight string          `json:"weight" validate:"required"`
	Price  decimal.Decimal `json:"price"`
}

// ProductRequest defines the structure for product creation/update requests
type ProductRequest struct {
	Name         string               `json:"name" validate:"required"`
	Description  string               `json:"description"`
	CategoryID   *string              `json:"category_id"`
	Image        string               `json:"image"`
	BasePrice    decimal.Decimal      `json:"base_price"`
	WeightPrices []WeightPriceRequest `json:"weight_prices" validate:"dive"`
}

func (r *ProductRequest) tiers(productID string) []model.WeightPrice {
	tiers := make([]model.WeightPrice, 0, len(r.WeightPrices))
	for i, wp := range r.WeightPrices {
		tiers = append(tiers, model.WeightPrice{
			ProductID: productID,
			Weight:    wp.Weight,
			Price:     wp.Price,
			SortOrder: i,
		})
	}
	return tiers
}

func (r *ProductRequest) hasNegativePrice() bool {
	if r.BasePrice.IsNegative() {
		return true
	}
	for _, wp := range r.WeightPrices {
		if wp.Price.IsNegative() {
			return true
		}
	}
	return false
}

// tierPreload orders embedded weight tiers by their stored sort position
func tierPreload(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order")
}

// ListProducts handles retrieving all products newest-first, optionally
// filtered by category, each with its weight tiers embedded
func ListProducts(c echo.Context) error {
	log := logger.FromContext(c)

	query := database.GetDB().Preload("WeightPrices", tierPreload).Order("created_at DESC")

	// Filter by category if specified
	categoryID := c.QueryParam("category_id")
	if categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
		log.Info("Filtering products by category", zap.String("category_id", categoryID))
	}

	var products []model.Product
	result := query.Find(&products)
	if result.Error != nil {
		log.Error("Failed to list products", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve products",
		})
	}

	log.Info("Products retrieved successfully", zap.Int("count", len(products)))
	return c.JSON(http.StatusOK, products)
}

// GetProduct handles retrieving a single product by ID
func GetProduct(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Getting product by ID", zap.String("product_id", id))

	var product model.Product
	result := database.GetDB().Preload("WeightPrices", tierPreload).Where("id = ?", id).First(&product)
	if result.Error != nil {
		log.Warn("Product not found",
			zap.String("product_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Product not found",
		})
	}

	log.Info("Product retrieved successfully",
		zap.String("product_id", id),
		zap.String("product_name", product.Name))
	return c.JSON(http.StatusOK, product)
}

// CreateProduct handles creating a new product together with its weight
// tiers. The product row and all tier rows are written atomically.
func CreateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new product")

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Product payload failed validation", zap.Error(err))
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"error": "product name and tier weights are required",
		})
	}
	if req.hasNegativePrice() {
		log.Warn("Product payload contains negative price")
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"error": "prices must not be negative",
		})
	}

	defer prometheus.TrackDBOperation("create_product")(time.Now())

	product := model.Product{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Image:       req.Image,
		BasePrice:   req.BasePrice,
		CreatedAt:   time.Now(),
	}
	product.WeightPrices = req.tiers(product.ID)

	// Create writes the product and its tier rows in one transaction
	result := database.GetDB().Create(&product)
	if result.Error != nil {
		log.Error("Failed to create product",
			zap.String("name", req.Name),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create product",
		})
	}

	prometheus.RecordProductOperation("create")
	log.Info("Product created successfully",
		zap.String("product_id", product.ID),
		zap.String("name", product.Name),
		zap.Int("weight_prices", len(product.WeightPrices)))
	return c.JSON(http.StatusOK, product)
}

// UpdateProduct handles updating an existing product. The weight-tier list
// is replaced wholesale: stored tiers are deleted and the supplied list is
// reinserted with sort positions equal to list index.
func UpdateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Updating product", zap.String("product_id", id))

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data",
			zap.String("product_id", id),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Product payload failed validation", zap.Error(err))
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"error": "product name and tier weights are required",
		})
	}
	if req.hasNegativePrice() {
		log.Warn("Product payload contains negative price")
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"error": "prices must not be negative",
		})
	}

	defer prometheus.TrackDBOperation("update_product")(time.Now())

	var product model.Product
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&product).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"name":        req.Name,
			"description": req.Description,
			"category_id": req.CategoryID,
			"image":       req.Image,
			"base_price":  req.BasePrice,
		}
		if err := tx.Model(&model.Product{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}

		// Replace the tier collection wholesale
		if err := tx.Where("product_id = ?", id).Delete(&model.WeightPrice{}).Error; err != nil {
			return err
		}
		tiers := req.tiers(id)
		if len(tiers) > 0 {
			if err := tx.Create(&tiers).Error; err != nil {
				return err
			}
		}

		product.Name = req.Name
		product.Description = req.Description
		product.CategoryID = req.CategoryID
		product.Image = req.Image
		product.BasePrice = req.BasePrice
		product.WeightPrices = tiers
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("Product not found for update", zap.String("product_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Product not found",
			})
		}
		log.Error("Failed to update product",
			zap.String("product_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update product",
		})
	}

	prometheus.RecordProductOperation("update")
	log.Info("Product updated successfully",
		zap.String("product_id", id),
		zap.String("name", product.Name),
		zap.Int("weight_prices", len(product.WeightPrices)))
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct handles deleting a product and all of its weight tiers.
func DeleteProduct(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Deleting product", zap.String("product_id", id))

	var result *gorm.DB
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		// Owned tier rows go with the product
		if err := tx.Where("product_id = ?", id).Delete(&model.WeightPrice{}).Error; err != nil {
			return err
		}
		result = tx.Delete(&model.Product{}, "id = ?", id)
		return result.Error
	})
	if err != nil {
		log.Error("Failed to delete product",
			zap.String("product_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete product",
		})
	}

	if result.RowsAffected == 0 {
		log.Warn("Product not found for deletion", zap.String("product_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Product not found",
		})
	}

	prometheus.RecordProductOperation("delete")
	log.Info("Product deleted successfully",
		zap.String("product_id", id),
		zap.Int64("rows_affected", result.RowsAffected))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Product deleted successfully",
	})
}
