package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/vetstock-api/internal/domain/entity"
)

// DateLayout formato de fechas de calendario (caducidad, filtros).
const DateLayout = "2006-01-02"

// CreateProductRequest entrada para crear un producto.
// StockLevel es el stock inicial; el estado se deriva, nunca se recibe.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	CategoryID  string          `json:"category_id" validate:"omitempty,uuid"`
	StockLevel  int             `json:"stock_level" validate:"min=0,max=2147483647"`
	UnitPrice   decimal.Decimal `json:"unit_price" validate:"gte=0"`
	BatchNumber string          `json:"batch_number" validate:"max=100"`
	ExpiryDate  string          `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateProductRequest entrada para actualizar un producto (sin stock ni estado).
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	CategoryID  *string          `json:"category_id" validate:"omitempty,uuid"`
	UnitPrice   *decimal.Decimal `json:"unit_price" validate:"omitempty,gte=0"`
	BatchNumber *string          `json:"batch_number" validate:"omitempty,max=100"`
	ExpiryDate  *string          `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
}

// ProductListQuery filtros del listado de productos.
// SortBy: name, category, stock_level, expiry_date, last_updated.
type ProductListQuery struct {
	ListQuery
	CategoryID string `query:"category_id"`
	Status     string `query:"status" validate:"omitempty,oneof=in_stock low_stock out_of_stock"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	CategoryID  string             `json:"category_id,omitempty"`
	StockLevel  int                `json:"stock_level"`
	Status      entity.StockStatus `json:"status"`
	UnitPrice   decimal.Decimal    `json:"unit_price"`
	BatchNumber string             `json:"batch_number"`
	ExpiryDate  string             `json:"expiry_date,omitempty"`
	LastUpdated time.Time          `json:"last_updated"`
	CreatedAt   time.Time          `json:"created_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ToProductResponse convierte la entidad a DTO.
func ToProductResponse(p *entity.Product) ProductResponse {
	out := ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		CategoryID:  p.CategoryID,
		StockLevel:  p.StockLevel,
		Status:      p.Status,
		UnitPrice:   p.UnitPrice,
		BatchNumber: p.BatchNumber,
		LastUpdated: p.LastUpdated,
		CreatedAt:   p.CreatedAt,
	}
	if p.ExpiryDate != nil {
		out.ExpiryDate = p.ExpiryDate.Format(DateLayout)
	}
	return out
}
