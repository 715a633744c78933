package dto

import (
	"time"

	"github.com/jhoicas/vetstock-api/internal/domain/entity"
)

// RegisterMovementRequest body para POST /api/movements.
type RegisterMovementRequest struct {
	ProductID string              `json:"product_id" validate:"required"`
	Type      entity.MovementType `json:"type" validate:"required,enum"`
	Quantity  int                 `json:"quantity" validate:"required,gt=0,max=2147483647"`
	Notes     string              `json:"notes" validate:"max=500"`
}

// BatchMovementLine una línea del registro múltiple de entradas/salidas.
type BatchMovementLine struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0,max=2147483647"`
	Notes     string `json:"notes" validate:"max=500"`
}

// BatchMovementRequest body para POST /api/movements/batch. Se aplica todo o nada.
type BatchMovementRequest struct {
	Type  entity.MovementType `json:"type" validate:"required,enum"`
	Lines []BatchMovementLine `json:"lines" validate:"required,min=1,max=100,dive"`
}

// AdjustStockRequest body para POST /api/products/:id/adjust y /api/supplies/:id/adjust.
// Delta con signo: positivo entrada, negativo salida.
type AdjustStockRequest struct {
	Delta  int    `json:"delta" validate:"required,ne=0,min=-2147483647,max=2147483647"`
	Reason string `json:"reason" validate:"max=300"`
}

// MovementListQuery filtros del listado de movimientos.
// SortBy: date, product, quantity, type. Window: today, week, month.
type MovementListQuery struct {
	ListQuery
	Type      string `query:"type" validate:"omitempty,oneof=in out"`
	ProductID string `query:"product_id"`
	Window    string `query:"window" validate:"omitempty,oneof=all today week month"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID          string              `json:"id"`
	ProductID   string              `json:"product_id"`
	ProductName string              `json:"product_name,omitempty"`
	Type        entity.MovementType `json:"type"`
	Quantity    int                 `json:"quantity"`
	Notes       string              `json:"notes"`
	Date        time.Time           `json:"date"`
	CreatedAt   time.Time           `json:"created_at"`
}

// MovementResultResponse movimiento registrado junto al producto actualizado.
type MovementResultResponse struct {
	Movement MovementResponse `json:"movement"`
	Product  ProductResponse  `json:"product"`
}

// BatchMovementResponse resultado del registro múltiple.
type BatchMovementResponse struct {
	Movements []MovementResponse `json:"movements"`
	Products  []ProductResponse  `json:"products"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ToMovementResponse convierte la entidad a DTO. productName puede ser vacío.
func ToMovementResponse(m *entity.StockMovement, productName string) MovementResponse {
	return MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		ProductName: productName,
		Type:        m.Type,
		Quantity:    m.Quantity,
		Notes:       m.Notes,
		Date:        m.Date,
		CreatedAt:   m.CreatedAt,
	}
}
