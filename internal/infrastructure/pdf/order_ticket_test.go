package pdf

import (
	"testing"
	"time"

	"github.com/jhoicas/menu-admin-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "S/ 0.00", money(decimal.Zero))
	assert.Equal(t, "S/ 25.50", money(decimal.RequireFromString("25.5")))
	assert.Equal(t, "S/ 1,250.00", money(decimal.NewFromInt(1250)))
	assert.Equal(t, "S/ 1,000,000.10", money(decimal.RequireFromString("1000000.1")))
}

func TestRenderTicket(t *testing.T) {
	g := NewTicketGenerator(time.UTC)
	order := &entity.Order{
		ID:          "o1",
		TenantID:    "t1",
		OrderNumber: "2506010001",
		Items: []entity.OrderItem{
			{DishID: "d1", Name: "Ceviche clásico", UnitPrice: decimal.NewFromInt(35), Quantity: 2, Subtotal: decimal.NewFromInt(70)},
		},
		Customer:  entity.OrderCustomer{Name: "Ana Torres", Phone: "+51987654321", DocumentType: entity.DocumentTypeBoleta},
		Delivery:  entity.OrderDelivery{Type: entity.DeliveryTypeDelivery, Address: "Av. Larco 123"},
		Payment:   entity.OrderPayment{Method: entity.PaymentTarjeta},
		Subtotal:  decimal.NewFromInt(70),
		Total:     decimal.NewFromInt(70),
		Status:    entity.OrderStatusPreparing,
		Notes:     "Sin cebolla",
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	tenant := &entity.TenantContext{ID: "t1", Name: "La Cevichería", Domain: "cevicheria.james.pe"}

	b, err := g.RenderTicket(tenant, order)
	require.NoError(t, err)
	require.True(t, len(b) > 4)
	assert.Equal(t, "%PDF", string(b[:4]))

	_, err = g.RenderTicket(nil, order)
	assert.Error(t, err)
}
