package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LegacyDish forma antigua de item: {dish: {id, name, price}}.
type LegacyDish struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// OrderItemRequest acepta la forma plana (dishId, name, unitPrice) o la antigua (dish{}).
type OrderItemRequest struct {
	DishID    string           `json:"dishId"`
	Name      string           `json:"name"`
	UnitPrice *decimal.Decimal `json:"unitPrice"`
	Price     *decimal.Decimal `json:"price"`
	Quantity  int              `json:"quantity"`
	Subtotal  *decimal.Decimal `json:"subtotal"`
	Dish      *LegacyDish      `json:"dish"`
}

// CustomerRequest datos del cliente.
type CustomerRequest struct {
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	DocumentType    string `json:"documentType"`
	DocumentNumber  string `json:"documentNumber"`
	BusinessName    string `json:"businessName"`
	BusinessAddress string `json:"businessAddress"`
}

// DeliveryRequest modalidad de entrega.
type DeliveryRequest struct {
	Type    string `json:"type"`
	Address string `json:"address"`
}

// PaymentRequest método de pago.
type PaymentRequest struct {
	Method string `json:"method"`
}

// CreateOrderRequest entrada para crear un pedido.
type CreateOrderRequest struct {
	Items    []OrderItemRequest `json:"items"`
	Customer CustomerRequest    `json:"customer"`
	Delivery DeliveryRequest    `json:"delivery"`
	Payment  PaymentRequest     `json:"payment"`
	Subtotal decimal.Decimal    `json:"subtotal"`
	Total    decimal.Decimal    `json:"total"`
	Notes    string             `json:"notes"`
}

// UpdateOrderStatusRequest cambio de estado.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderListRequest filtros del listado. Fechas en formato YYYY-MM-DD o RFC3339.
type OrderListRequest struct {
	PageRequest
	Status        string `query:"status"`
	DateFrom      string `query:"dateFrom"`
	DateTo        string `query:"dateTo"`
	CustomerPhone string `query:"customerPhone"`
	Search        string `query:"search"`
}

// OrderItemResponse línea del pedido.
type OrderItemResponse struct {
	DishID    string          `json:"dishId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID          string              `json:"id"`
	TenantID    string              `json:"tenantId"`
	OrderNumber string              `json:"orderNumber"`
	Items       []OrderItemResponse `json:"items"`
	Customer    CustomerRequest     `json:"customer"`
	Delivery    DeliveryRequest     `json:"delivery"`
	Payment     PaymentRequest      `json:"payment"`
	Subtotal    decimal.Decimal     `json:"subtotal"`
	Total       decimal.Decimal     `json:"total"`
	Status      string              `json:"status"`
	Notes       string              `json:"notes,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// OrderListResponse lista paginada.
type OrderListResponse struct {
	Items      []OrderResponse `json:"items"`
	Pagination Pagination      `json:"pagination"`
}

// OrderStatsResponse agregados de pedidos.
type OrderStatsResponse struct {
	Total        int             `json:"total"`
	Preparing    int             `json:"preparing"`
	Delivered    int             `json:"delivered"`
	TodayTotal   int             `json:"todayTotal"`
	TodayRevenue decimal.Decimal `json:"todayRevenue"`
}
