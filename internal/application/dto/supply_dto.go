package dto

import (
	"time"

	"github.com/jhoicas/vetstock-api/internal/domain/entity"
)

// CreateSupplyRequest entrada para crear un insumo operativo.
type CreateSupplyRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=200"`
	Category   string `json:"category" validate:"required,max=100"`
	StockLevel int    `json:"stock_level" validate:"min=0,max=2147483647"`
	Location   string `json:"location" validate:"max=100"`
}

// UpdateSupplyRequest entrada para actualizar un insumo (sin stock ni estado).
type UpdateSupplyRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	Category *string `json:"category" validate:"omitempty,min=1,max=100"`
	Location *string `json:"location" validate:"omitempty,max=100"`
}

// SupplyListQuery filtros del listado de insumos. SortBy: name, category, stock_level, location, last_used.
type SupplyListQuery struct {
	ListQuery
	Category string `query:"category"`
	Status   string `query:"status" validate:"omitempty,oneof=in_stock low_stock out_of_stock"`
}

// SupplyResponse salida de un insumo.
type SupplyResponse struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Category   string             `json:"category"`
	StockLevel int                `json:"stock_level"`
	Status     entity.StockStatus `json:"status"`
	Location   string             `json:"location"`
	LastUsed   *time.Time         `json:"last_used,omitempty"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// SupplyListResponse lista paginada de insumos.
type SupplyListResponse struct {
	Items []SupplyResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// ToSupplyResponse convierte la entidad a DTO.
func ToSupplyResponse(s *entity.Supply) SupplyResponse {
	return SupplyResponse{
		ID:         s.ID,
		Name:       s.Name,
		Category:   s.Category,
		StockLevel: s.StockLevel,
		Status:     s.Status,
		Location:   s.Location,
		LastUsed:   s.LastUsed,
		UpdatedAt:  s.UpdatedAt,
	}
}
