package handler

import (
	"net/http"

	"storefront-service/internal/model"
	"storefront-service/pkg/database"
	"storefront-service/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type seedProduct struct {
	name        string
	description string
	basePrice   int64
}

var seedCategories = []model.Category{
	{ID: "cat-honey", Name: "Мёд", Slug: "honey"},
	{ID: "cat-bee", Name: "Пчелопродукты", Slug: "bee-products"},
	{ID: "cat-tincture", Name: "Настойки", Slug: "tinctures"},
	{ID: "cat-cream", Name: "Крема", Slug: "creams"},
	{ID: "cat-candle", Name: "Свечи", Slug: "candles"},
	{ID: "cat-accessory", Name: "Аксессуары", Slug: "accessories"},
}

var seedHoneyProducts = []seedProduct{
	{"Мёд Разнотравье", "Наш мёд собран в экологически чистых районах.", 1201},
	{"Мёд Подсолнух", "Мёд из подсолнечника - популярный сорт.", 1200},
	{"Мёд Царский Бархат", "Элитный сорт мёда с кремовой текстурой.", 1800},
	{"Мёд Цветочный", "Классический цветочный мёд.", 1200},
	{"Мёд Гречишный", "Тёмный мёд с насыщенным вкусом.", 1200},
}

var seedHoneyWeights = []struct {
	weight string
	price  int64
}{
	{"250гр", 1201}, {"340гр", 1500}, {"550гр", 2200},
	{"750гр", 2800}, {"1кг", 3500}, {"1.5кг", 5000},
}

const seedProductImage = "https://images.unsplash.com/photo-1587049352846-4a222e784d38?w=800"

// SeedData populates the starter catalog once. It is a no-op whenever any
// category already exists, so calling it repeatedly is safe.
func SeedData(c echo.Context) error {
	log := logger.FromContext(c)

	db := database.GetDB()

	var count int64
	if err := db.Model(&model.Category{}).Count(&count).Error; err != nil {
		log.Error("Failed to check existing data", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to seed data",
		})
	}
	if count > 0 {
		log.Info("Seed skipped, data already present", zap.Int64("categories", count))
		return c.JSON(http.StatusOK, echo.Map{
			"message": "Data already exists",
		})
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&seedCategories).Error; err != nil {
			return err
		}

		honeyCategory := seedCategories[0].ID
		for _, sp := range seedHoneyProducts {
			product := model.Product{
				ID:          uuid.New().String(),
				Name:        sp.name,
				Description: sp.description,
				CategoryID:  &honeyCategory,
				Image:       seedProductImage,
				BasePrice:   decimal.NewFromInt(sp.basePrice),
			}
			for i, w := range seedHoneyWeights {
				product.WeightPrices = append(product.WeightPrices, model.WeightPrice{
					ProductID: product.ID,
					Weight:    w.weight,
					Price:     decimal.NewFromInt(w.price),
					SortOrder: i,
				})
			}
			if err := tx.Create(&product).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error("Failed to seed data", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to seed data",
		})
	}

	log.Info("Starter catalog seeded",
		zap.Int("categories", len(seedCategories)),
		zap.Int("products", len(seedHoneyProducts)))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Data loaded",
	})
}
