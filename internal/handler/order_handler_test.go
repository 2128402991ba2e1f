package handler

import (
	"net/http"
	"testing"

	"storefront-service/internal/model"
	"storefront-service/pkg/database"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func honeyOrderRequest(promocode string) OrderRequest {
	return OrderRequest{
		CustomerName:  "Айгерим",
		CustomerPhone: "+7 700 000 0000",
		Items: []OrderItemRequest{
			{Name: "Wildflower Honey", Weight: "250гр", Price: decimal.NewFromInt(1201), Quantity: 1},
			{Name: "Buckwheat Honey", Weight: "1кг", Price: decimal.NewFromInt(3500), Quantity: 2},
		},
		Subtotal:  decimal.NewFromInt(8201),
		Discount:  decimal.Zero,
		Total:     decimal.NewFromInt(8201),
		Promocode: promocode,
	}
}

func TestCreateOrderPersistsItems(t *testing.T) {
	e := setupTest(t)

	rec := doRequest(t, e, http.MethodPost, "/api/orders", honeyOrderRequest(""), false)
	require.Equal(t, http.StatusOK, rec.Code)

	var order model.Order
	decodeBody(t, rec, &order)
	require.NotEmpty(t, order.ID)
	assert.Len(t, order.Items, 2)

	var items []model.OrderItem
	require.NoError(t, database.GetDB().Where("order_id = ?", order.ID).Find(&items).Error)
	require.Len(t, items, 2)
}

func TestCreateOrderIncrementsPromocodeOnce(t *testing.T) {
	e := setupTest(t)
	created := createTestPromocode(t, e, save10Request())

	rec := doRequest(t, e, http.MethodPost, "/api/orders", honeyOrderRequest("SAVE10"), false)
	require.Equal(t, http.StatusOK, rec.Code)

	var stored model.Promocode
	require.NoError(t, database.GetDB().Where("id = ?", created.ID).First(&stored).Error)
	assert.Equal(t, 1, stored.CurrentUses)
}

func TestCreateOrderRejectsExhaustedPromocode(t *testing.T) {
	e := setupTest(t)
	created := createTestPromocode(t, e, save10Request())

	require.NoError(t, database.GetDB().Model(&model.Promocode{}).
		Where("id = ?", created.ID).
		Update("current_uses", 5).Error)

	rec := doRequest(t, e, http.MethodPost, "/api/orders", honeyOrderRequest("SAVE10"), false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// The whole aggregate rolls back: no order rows remain
	var orders int64
	require.NoError(t, database.GetDB().Model(&model.Order{}).Count(&orders).Error)
	assert.Zero(t, orders)

	var items int64
	require.NoError(t, database.GetDB().Model(&model.OrderItem{}).Count(&items).Error)
	assert.Zero(t, items)

	var stored model.Promocode
	require.NoError(t, database.GetDB().Where("id = ?", created.ID).First(&stored).Error)
	assert.Equal(t, 5, stored.CurrentUses)
}

func TestCreateOrderToleratesUnknownPromocode(t *testing.T) {
	e := setupTest(t)

	rec := doRequest(t, e, http.MethodPost, "/api/orders", honeyOrderRequest("UNKNOWN"), false)
	require.Equal(t, http.StatusOK, rec.Code)

	var orders int64
	require.NoError(t, database.GetDB().Model(&model.Order{}).Count(&orders).Error)
	assert.Equal(t, int64(1), orders)
}

func TestCreateOrderValidation(t *testing.T) {
	e := setupTest(t)

	// No items
	req := honeyOrderRequest("")
	req.Items = nil
	rec := doRequest(t, e, http.MethodPost, "/api/orders", req, false)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// Negative total
	req = honeyOrderRequest("")
	req.Total = decimal.NewFromInt(-10)
	rec = doRequest(t, e, http.MethodPost, "/api/orders", req, false)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestListOrdersNewestFirstWithItems(t *testing.T) {
	e := setupTest(t)

	first := honeyOrderRequest("")
	first.CustomerName = "First"
	rec := doRequest(t, e, http.MethodPost, "/api/orders", first, false)
	require.Equal(t, http.StatusOK, rec.Code)

	second := honeyOrderRequest("")
	second.CustomerName = "Second"
	rec = doRequest(t, e, http.MethodPost, "/api/orders", second, false)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, e, http.MethodGet, "/api/orders", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)

	var orders []model.Order
	decodeBody(t, rec, &orders)
	require.Len(t, orders, 2)
	assert.Len(t, orders[0].Items, 2)
	assert.Len(t, orders[1].Items, 2)
}

func TestListOrdersRequiresAdmin(t *testing.T) {
	e := setupTest(t)

	rec := doRequest(t, e, http.MethodGet, "/api/orders", nil, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
