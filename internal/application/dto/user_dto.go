package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateUserRequest alta de usuario del tenant. Role por defecto ORDERS_MANAGER.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UpdateUserRequest cambios de un usuario del tenant. Campos nil no se tocan.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"isActive"`
	Password *string `json:"password"`
}

// RecentOrderResponse resumen de pedido para el panel.
type RecentOrderResponse struct {
	ID           string          `json:"id"`
	OrderNumber  string          `json:"orderNumber"`
	CustomerName string          `json:"customerName"`
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// AdminStatsResponse conteos del panel del ADMIN.
type AdminStatsResponse struct {
	Dishes       int                   `json:"dishes"`
	Categories   int                   `json:"categories"`
	Orders       int                   `json:"orders"`
	Users        int                   `json:"users"`
	RecentOrders []RecentOrderResponse `json:"recentOrders"`
}
