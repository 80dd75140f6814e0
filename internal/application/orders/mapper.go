package orders

import (
	"fmt"
	"strings"

	"github.com/jhoicas/menu-admin-api/internal/application/dto"
	"github.com/jhoicas/menu-admin-api/internal/domain"
	"github.com/jhoicas/menu-admin-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// normalizeItems lleva cada item a la forma plana. La forma antigua {dish:{id,name,price}}
// aporta dishId, name y unitPrice cuando faltan en el item.
func normalizeItems(in []dto.OrderItemRequest) ([]entity.OrderItem, error) {
	items := make([]entity.OrderItem, 0, len(in))
	for i, it := range in {
		item := entity.OrderItem{
			DishID:   strings.TrimSpace(it.DishID),
			Name:     strings.TrimSpace(it.Name),
			Quantity: it.Quantity,
		}
		switch {
		case it.UnitPrice != nil:
			item.UnitPrice = *it.UnitPrice
		case it.Price != nil:
			item.UnitPrice = *it.Price
		}
		if it.Dish != nil {
			if item.DishID == "" {
				item.DishID = strings.TrimSpace(it.Dish.ID)
			}
			if item.Name == "" {
				item.Name = strings.TrimSpace(it.Dish.Name)
			}
			if it.UnitPrice == nil && it.Price == nil {
				item.UnitPrice = it.Dish.Price
			}
		}
		if it.Subtotal != nil {
			item.Subtotal = *it.Subtotal
		} else {
			item.Subtotal = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		}
		if item.DishID == "" {
			return nil, fmt.Errorf("%w: item %d sin dishId", domain.ErrInvalidInput, i+1)
		}
		items = append(items, item)
	}
	return items, nil
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			DishID:    it.DishID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			Subtotal:  it.Subtotal,
		})
	}
	return &dto.OrderResponse{
		ID:          o.ID,
		TenantID:    o.TenantID,
		OrderNumber: o.OrderNumber,
		Items:       items,
		Customer: dto.CustomerRequest{
			Name:            o.Customer.Name,
			Phone:           o.Customer.Phone,
			DocumentType:    o.Customer.DocumentType,
			DocumentNumber:  o.Customer.DocumentNumber,
			BusinessName:    o.Customer.BusinessName,
			BusinessAddress: o.Customer.BusinessAddress,
		},
		Delivery:  dto.DeliveryRequest{Type: o.Delivery.Type, Address: o.Delivery.Address},
		Payment:   dto.PaymentRequest{Method: o.Payment.Method},
		Subtotal:  o.Subtotal,
		Total:     o.Total,
		Status:    string(o.Status),
		Notes:     o.Notes,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}
