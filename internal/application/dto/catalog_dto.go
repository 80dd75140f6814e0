package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCategoryRequest entrada para crear una categoría. Slug vacío se deriva del nombre.
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Order       *int   `json:"order"`
	IsActive    *bool  `json:"isActive"`
}

// UpdateCategoryRequest actualización parcial.
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	Order       *int    `json:"order"`
	IsActive    *bool   `json:"isActive"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Order       int       `json:"order"`
	IsActive    bool      `json:"isActive"`
	DishCount   int       `json:"dishCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ReorderItem nueva posición de una categoría o plato.
type ReorderItem struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}

// ReorderRequest lote de posiciones, aplicado todo o nada.
type ReorderRequest struct {
	Items []ReorderItem `json:"items"`
}

// CreateDishRequest entrada para crear un plato.
type CreateDishRequest struct {
	CategoryID      string          `json:"categoryId"`
	Name            string          `json:"name"`
	Slug            string          `json:"slug"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	Image           string          `json:"image"`
	IsActive        *bool           `json:"isActive"`
	IsFeatured      bool            `json:"isFeatured"`
	Allergens       []string        `json:"allergens"`
	Tags            []string        `json:"tags"`
	SubtagIDs       []string        `json:"subtagIds"`
	PreparationTime *int            `json:"preparationTime"`
	Servings        *int            `json:"servings"`
	Order           *int            `json:"order"`
}

// UpdateDishRequest actualización parcial.
type UpdateDishRequest struct {
	CategoryID      *string          `json:"categoryId"`
	Name            *string          `json:"name"`
	Slug            *string          `json:"slug"`
	Description     *string          `json:"description"`
	Price           *decimal.Decimal `json:"price"`
	Image           *string          `json:"image"`
	IsActive        *bool            `json:"isActive"`
	IsFeatured      *bool            `json:"isFeatured"`
	Allergens       []string         `json:"allergens"`
	Tags            []string         `json:"tags"`
	SubtagIDs       []string         `json:"subtagIds"`
	PreparationTime *int             `json:"preparationTime"`
	Servings        *int             `json:"servings"`
	Order           *int             `json:"order"`
}

// DishListRequest filtros del listado de platos.
type DishListRequest struct {
	CategoryID string `query:"categoryId"`
	Active     bool   `query:"active"`
	Featured   bool   `query:"featured"`
}

// DishResponse salida de un plato.
type DishResponse struct {
	ID              string          `json:"id"`
	CategoryID      string          `json:"categoryId"`
	Name            string          `json:"name"`
	Slug            string          `json:"slug"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	Image           string          `json:"image"`
	IsActive        bool            `json:"isActive"`
	IsFeatured      bool            `json:"isFeatured"`
	Allergens       []string        `json:"allergens"`
	Tags            []string        `json:"tags"`
	SubtagIDs       []string        `json:"subtagIds"`
	PreparationTime *int            `json:"preparationTime"`
	Servings        *int            `json:"servings"`
	Order           int             `json:"order"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// SubtagRequest alta o edición de subtag.
type SubtagRequest struct {
	Name string `json:"name"`
}

// SubtagResponse salida de un subtag.
type SubtagResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
