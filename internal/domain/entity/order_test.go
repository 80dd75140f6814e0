package entity_test

import (
	"testing"

	"github.com/jhoicas/menu-admin-api/internal/domain"
	"github.com/jhoicas/menu-admin-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOrder() *entity.Order {
	return &entity.Order{
		TenantID: "t1",
		Items: []entity.OrderItem{
			{DishID: "d1", Name: "Ceviche", UnitPrice: decimal.NewFromInt(25), Quantity: 2, Subtotal: decimal.NewFromInt(50)},
		},
		Customer: entity.OrderCustomer{Name: "Ana", Phone: "+51987654321"},
		Delivery: entity.OrderDelivery{Type: entity.DeliveryTypePickup},
		Payment:  entity.OrderPayment{Method: entity.PaymentEfectivo},
		Subtotal: decimal.NewFromInt(50),
		Total:    decimal.NewFromInt(50),
	}
}

func TestOrderValidate_OK(t *testing.T) {
	o := validOrder()
	require.NoError(t, o.Validate())
	assert.Equal(t, entity.DocumentTypeBoleta, o.Customer.DocumentType, "documentType vacío se asume boleta")
}

func TestOrderValidate_Telefono(t *testing.T) {
	for _, phone := range []string{"987654321", "+5198765432", "+519876543210", "+52987654321", ""} {
		o := validOrder()
		o.Customer.Phone = phone
		err := o.Validate()
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "phone %q", phone)
	}
}

func TestOrderValidate_DeliveryRequiereDireccion(t *testing.T) {
	o := validOrder()
	o.Delivery = entity.OrderDelivery{Type: entity.DeliveryTypeDelivery}
	assert.ErrorIs(t, o.Validate(), domain.ErrInvalidInput)

	o.Delivery.Address = "Av. Larco 123"
	assert.NoError(t, o.Validate())
}

func TestOrderValidate_Montos(t *testing.T) {
	o := validOrder()
	o.Total = decimal.Zero
	assert.ErrorIs(t, o.Validate(), domain.ErrInvalidInput, "total debe ser > 0")

	o = validOrder()
	o.Subtotal = decimal.NewFromInt(-1)
	assert.ErrorIs(t, o.Validate(), domain.ErrInvalidInput, "subtotal no puede ser negativo")

	o = validOrder()
	o.Subtotal = decimal.Zero
	assert.NoError(t, o.Validate(), "subtotal 0 es válido")
}

func TestOrderValidate_SinItems(t *testing.T) {
	o := validOrder()
	o.Items = nil
	assert.ErrorIs(t, o.Validate(), domain.ErrInvalidInput)
}

func TestOrderValidate_PagoYDocumento(t *testing.T) {
	o := validOrder()
	o.Payment.Method = "bitcoin"
	assert.ErrorIs(t, o.Validate(), domain.ErrInvalidInput)

	o = validOrder()
	o.Customer.DocumentType = "ticket"
	assert.ErrorIs(t, o.Validate(), domain.ErrInvalidInput)
}

func TestNormalizeStatus(t *testing.T) {
	assert.Equal(t, entity.OrderStatusDelivered, entity.NormalizeStatus(" delivered "))
	assert.True(t, entity.NormalizeStatus("preparing").IsKnown())
	assert.False(t, entity.NormalizeStatus("shipped").IsKnown())
}

func TestDishWithoutSubtag(t *testing.T) {
	d := &entity.Dish{SubtagIDs: []string{"a", "b", "a"}}
	ids, changed := d.WithoutSubtag("a")
	assert.True(t, changed)
	assert.Equal(t, []string{"b"}, ids)

	_, changed = d.WithoutSubtag("z")
	assert.False(t, changed)
}
