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

// errPromocodeExhausted aborts the order transaction when the attached
// promocode has no uses left.
var errPromocodeExhausted = errors.New("promocode exhausted")

// OrderItemRequest is one purchased line in an order payload
type OrderItemRequest struct {
	Name     string          `json:"name" validate:"required"`
	Weight   string          `json:"weight"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity" validate:"required,gt=0"`
}

// OrderRequest defines the structure for order creation requests
type OrderRequest struct {
	CustomerName  string             `json:"customer_name" validate:"required"`
	CustomerPhone string             `json:"customer_phone" validate:"required"`
	Items         []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Discount      decimal.Decimal    `json:"discount"`
	Total         decimal.Decimal    `json:"total"`
	Promocode     string             `json:"promocode"`
}

func (r *OrderRequest) hasNegativeAmount() bool {
	if r.Subtotal.IsNegative() || r.Discount.IsNegative() || r.Total.IsNegative() {
		return true
	}
	for _, item := range r.Items {
		if item.Price.IsNegative() {
			return true
		}
	}
	return false
}

// ListOrders handles retrieving all orders newest-first with their line
// items embedded
func ListOrders(c echo.Context) error {
	log := logger.FromContext(c)

	var orders []model.Order
	result := database.GetDB().Preload("Items").Order("created_at DESC").Find(&orders)
	if result.Error != nil {
		log.Error("Failed to retrieve orders", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve orders",
		})
	}

	log.Info("Orders retrieved successfully", zap.Int("count", len(orders)))
	return c.JSON(http.StatusOK, orders)
}

// CreateOrder persists an order and its line items atomically. When a
// promocode is attached its use counter is incremented in the same
// transaction, and only while uses remain: the conditional update keeps
// concurrent orders from pushing current_uses past max_uses. An unknown
// code is tolerated (the column is not a foreign key) and leaves no
// counter behind.
func CreateOrder(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new order")

	var req OrderRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Order payload failed validation", zap.Error(err))
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"error": "customer_name, customer_phone and at least one item are required",
		})
	}
	if req.hasNegativeAmount() {
		log.Warn("Order payload contains negative amount")
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"error": "amounts must not be negative",
		})
	}

	defer prometheus.TrackDBOperation("create_order")(time.Now())

	order := model.Order{
		ID:            uuid.New().String(),
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Subtotal:      req.Subtotal,
		Discount:      req.Discount,
		Total:         req.Total,
		Promocode:     req.Promocode,
		CreatedAt:     time.Now(),
	}
	for _, item := range req.Items {
		order.Items = append(order.Items, model.OrderItem{
			OrderID:  order.ID,
			Name:     item.Name,
			Weight:   item.Weight,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}

	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		if order.Promocode == "" {
			return nil
		}

		res := tx.Model(&model.Promocode{}).
			Where("code = ? AND is_active = ? AND current_uses < max_uses", order.Promocode, true).
			Update("current_uses", gorm.Expr("current_uses + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		// No row matched: either the code is unknown (tolerated, no
		// increment) or an active promo exists but is used up.
		var count int64
		if err := tx.Model(&model.Promocode{}).
			Where("code = ? AND is_active = ?", order.Promocode, true).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errPromocodeExhausted
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errPromocodeExhausted) {
			log.Warn("Order rejected, promocode exhausted",
				zap.String("promocode", order.Promocode))
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "Promocode exhausted",
			})
		}
		log.Error("Failed to create order",
			zap.String("customer_name", req.CustomerName),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create order",
		})
	}

	prometheus.RecordOrderCreated()
	log.Info("Order created successfully",
		zap.String("order_id", order.ID),
		zap.Int("items", len(order.Items)),
		zap.String("total", order.Total.String()))
	return c.JSON(http.StatusOK, order)
}
