package handler

import (
	"net/http"
	"strings"

	"storefront-service/internal/model"
	"storefront-service/pkg/database"
	"storefront-service/pkg/logger"
	"storefront-service/prometheus"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PromocodeRequest defines the structure for promocode creation requests
type PromocodeRequest struct {
	Code          string          `json:"code" validate:"required"`
	DiscountType  string          `json:"discount_type" validate:"required,oneof=percent fixed"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	MaxUses       int             `json:"max_uses" validate:"required,gt=0"`
}

// ValidatePromocodeRequest defines the structure for validation previews
type ValidatePromocodeRequest struct {
	Code     string          `json:"code" validate:"required"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// ListPromocodes handles retrieving all promocodes ordered by code
func ListPromocodes(c echo.Context) error {
	log := logger.FromContext(c)

	var promocodes []model.Promocode
	result := database.GetDB().Order("code").Find(&promocodes)
	if result.Error != nil {
		log.Error("Failed to retrieve promocodes", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve promocodes",
		})
	}

	log.Info("Promocodes retrieved successfully", zap.Int("count", len(promocodes)))
	return c.JSON(http.StatusOK, promocodes)
}

// CreatePromocode handles creating a new promocode
func CreatePromocode(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new promocode")

	var req PromocodeRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Promocode payload failed validation", zap.Error(err))
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"error": "code, discount_type (percent or fixed) and max_uses are required",
		})
	}
	if req.DiscountValue.IsNegative() {
		log.Warn("Promocode payload contains negative discount value")
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"error": "discount_value must not be negative",
		})
	}

	promocode := model.Promocode{
		ID:            uuid.New().String(),
		Code:          req.Code,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		MaxUses:       req.MaxUses,
		CurrentUses:   0,
		IsActive:      true,
	}

	result := database.GetDB().Create(&promocode)
	if result.Error != nil {
		log.Error("Failed to create promocode",
			zap.String("code", req.Code),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create promocode",
		})
	}

	prometheus.RecordPromoOperation("create")
	log.Info("Promocode created successfully",
		zap.String("promocode_id", promocode.ID),
		zap.String("code", promocode.Code))
	return c.JSON(http.StatusOK, promocode)
}

// DeletePromocode handles deleting a promocode by ID
func DeletePromocode(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Deleting promocode", zap.String("promocode_id", id))

	result := database.GetDB().Delete(&model.Promocode{}, "id = ?", id)
	if result.Error != nil {
		log.Error("Failed to delete promocode",
			zap.String("promocode_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete promocode",
		})
	}

	if result.RowsAffected == 0 {
		log.Warn("Promocode not found for deletion", zap.String("promocode_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Promocode not found",
		})
	}

	prometheus.RecordPromoOperation("delete")
	log.Info("Promocode deleted successfully", zap.String("promocode_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Promocode deleted successfully",
	})
}

// ValidatePromocode previews the discount a code would give on a subtotal.
// The lookup tries the literal, upper-cased and lower-cased forms of the
// supplied code against active promocodes. Nothing is mutated.
func ValidatePromocode(c echo.Context) error {
	log := logger.FromContext(c)

	var req ValidatePromocodeRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Validation payload missing code", zap.Error(err))
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"error": "code is required",
		})
	}
	if req.Subtotal.IsNegative() {
		log.Warn("Validation payload has negative subtotal",
			zap.String("subtotal", req.Subtotal.String()))
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"error": "subtotal must not be negative",
		})
	}

	code := strings.TrimSpace(req.Code)
	log.Info("Validating promocode", zap.String("code", code))

	var promo model.Promocode
	result := database.GetDB().
		Where("(code = ? OR code = ? OR code = ?) AND is_active = ?",
			code, strings.ToUpper(code), strings.ToLower(code), true).
		First(&promo)
	if result.Error != nil {
		prometheus.RecordPromoValidation("not_found")
		log.Warn("Promocode not found", zap.String("code", code))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Promocode not found",
		})
	}

	if promo.CurrentUses >= promo.MaxUses {
		prometheus.RecordPromoValidation("exhausted")
		log.Warn("Promocode exhausted",
			zap.String("code", promo.Code),
			zap.Int("current_uses", promo.CurrentUses),
			zap.Int("max_uses", promo.MaxUses))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Promocode exhausted",
		})
	}

	discount := ComputeDiscount(&promo, req.Subtotal)

	prometheus.RecordPromoValidation("valid")
	log.Info("Promocode validated",
		zap.String("code", promo.Code),
		zap.String("discount", discount.String()))
	return c.JSON(http.StatusOK, echo.Map{
		"valid":          true,
		"code":           promo.Code,
		"discount_type":  promo.DiscountType,
		"discount_value": promo.DiscountValue,
		"discount":       discount,
	})
}

// ComputeDiscount applies a promocode to a subtotal. Percent discounts take
// the configured share of the subtotal; fixed discounts are capped at the
// subtotal so a total can never go negative. Rounded to two decimal places.
func ComputeDiscount(promo *model.Promocode, subtotal decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal
	if promo.DiscountType == model.DiscountTypePercent {
		discount = subtotal.Mul(promo.DiscountValue).Div(decimal.NewFromInt(100))
	} else {
		discount = decimal.Min(promo.DiscountValue, subtotal)
	}
	return discount.Round(2)
}
