package entity

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jhoicas/menu-admin-api/internal/domain"
	"github.com/shopspring/decimal"
)

// OrderStatus estado de un pedido.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPreparing OrderStatus = "PREPARING"
	OrderStatusReady     OrderStatus = "READY"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// NormalizeStatus pasa el estado a mayúsculas y recorta espacios.
func NormalizeStatus(s string) OrderStatus {
	return OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
}

// IsKnown informa si el estado pertenece al ciclo de vida del pedido.
func (s OrderStatus) IsKnown() bool {
	switch s {
	case OrderStatusPending, OrderStatusPreparing, OrderStatusReady, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Tipos de comprobante.
const (
	DocumentTypeBoleta  = "boleta"
	DocumentTypeFactura = "factura"
)

// Tipos de entrega.
const (
	DeliveryTypeDelivery = "delivery"
	DeliveryTypePickup   = "pickup"
)

// Métodos de pago.
const (
	PaymentEfectivo  = "efectivo"
	PaymentTarjeta   = "tarjeta"
	PaymentBilletera = "billetera"
)

// Teléfono peruano: +51 seguido de 9 dígitos.
var phonePattern = regexp.MustCompile(`^\+51\d{9}$`)

// IsValidPhone informa si phone cumple el formato +51XXXXXXXXX.
func IsValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// OrderItem línea de un pedido. Se persiste como JSONB.
type OrderItem struct {
	DishID    string          `json:"dishId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Validate valida la línea.
func (i OrderItem) Validate() error {
	if strings.TrimSpace(i.DishID) == "" || strings.TrimSpace(i.Name) == "" {
		return fmt.Errorf("%w: cada item requiere dishId y name", domain.ErrInvalidInput)
	}
	if i.Quantity < 1 {
		return fmt.Errorf("%w: la cantidad debe ser mayor a 0", domain.ErrInvalidInput)
	}
	if i.UnitPrice.IsNegative() || i.Subtotal.IsNegative() {
		return fmt.Errorf("%w: precios negativos en item %s", domain.ErrInvalidInput, i.Name)
	}
	return nil
}

// OrderCustomer datos del cliente del pedido.
type OrderCustomer struct {
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	DocumentType    string `json:"documentType"`
	DocumentNumber  string `json:"documentNumber,omitempty"`
	BusinessName    string `json:"businessName,omitempty"`
	BusinessAddress string `json:"businessAddress,omitempty"`
}

// Validate valida el cliente. DocumentType vacío se asume boleta.
func (c *OrderCustomer) Validate() error {
	c.Name = strings.TrimSpace(c.Name)
	c.Phone = strings.TrimSpace(c.Phone)
	if c.Name == "" {
		return fmt.Errorf("%w: el nombre del cliente es requerido", domain.ErrInvalidInput)
	}
	if !IsValidPhone(c.Phone) {
		return fmt.Errorf("%w: el teléfono debe tener el formato +51XXXXXXXXX", domain.ErrInvalidInput)
	}
	if c.DocumentType == "" {
		c.DocumentType = DocumentTypeBoleta
	}
	if c.DocumentType != DocumentTypeBoleta && c.DocumentType != DocumentTypeFactura {
		return fmt.Errorf("%w: documentType debe ser boleta o factura", domain.ErrInvalidInput)
	}
	return nil
}

// OrderDelivery modalidad de entrega. Address es obligatorio solo para delivery.
type OrderDelivery struct {
	Type    string `json:"type"`
	Address string `json:"address,omitempty"`
}

func (d OrderDelivery) Validate() error {
	switch d.Type {
	case DeliveryTypeDelivery:
		if strings.TrimSpace(d.Address) == "" {
			return fmt.Errorf("%w: la dirección es requerida para delivery", domain.ErrInvalidInput)
		}
	case DeliveryTypePickup:
	default:
		return fmt.Errorf("%w: tipo de entrega debe ser delivery o pickup", domain.ErrInvalidInput)
	}
	return nil
}

// OrderPayment método de pago.
type OrderPayment struct {
	Method string `json:"method"`
}

func (p OrderPayment) Validate() error {
	switch p.Method {
	case PaymentEfectivo, PaymentTarjeta, PaymentBilletera:
		return nil
	}
	return fmt.Errorf("%w: método de pago debe ser efectivo, tarjeta o billetera", domain.ErrInvalidInput)
}

// Order representa un pedido de un cliente. (OrderNumber, TenantID) es único.
type Order struct {
	ID          string
	TenantID    string
	OrderNumber string // YYMMDD + 4 dígitos
	Items       []OrderItem
	Customer    OrderCustomer
	Delivery    OrderDelivery
	Payment     OrderPayment
	Subtotal    decimal.Decimal
	Total       decimal.Decimal
	Status      OrderStatus
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate valida el pedido completo antes de persistir.
func (o *Order) Validate() error {
	if strings.TrimSpace(o.TenantID) == "" {
		return fmt.Errorf("%w: tenant requerido", domain.ErrInvalidInput)
	}
	if len(o.Items) == 0 {
		return fmt.Errorf("%w: el pedido debe tener al menos un item", domain.ErrInvalidInput)
	}
	for _, it := range o.Items {
		if err := it.Validate(); err != nil {
			return err
		}
	}
	if err := o.Customer.Validate(); err != nil {
		return err
	}
	if err := o.Delivery.Validate(); err != nil {
		return err
	}
	if err := o.Payment.Validate(); err != nil {
		return err
	}
	if o.Subtotal.IsNegative() {
		return fmt.Errorf("%w: subtotal no puede ser negativo", domain.ErrInvalidInput)
	}
	if !o.Total.IsPositive() {
		return fmt.Errorf("%w: total debe ser mayor a 0", domain.ErrInvalidInput)
	}
	return nil
}

// OrderStats agregados de pedidos de un tenant.
type OrderStats struct {
	Total        int
	Preparing    int
	Delivered    int
	TodayTotal   int
	TodayRevenue decimal.Decimal
}

// TenantStats métricas de un tenant para el panel superadmin.
type TenantStats struct {
	TotalOrders      int
	TotalRevenue     decimal.Decimal
	OrdersThisMonth  int
	RevenueThisMonth decimal.Decimal
	Users            int
	Dishes           int
	Categories       int
}
