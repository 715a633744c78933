package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/vetstock-api/internal/domain/entity"
)

// RecordSaleRequest body para POST /api/sales.
// Amount opcional: si no se envía se calcula como unit_price del producto × quantity.
type RecordSaleRequest struct {
	ProductID string            `json:"product_id" validate:"required"`
	Quantity  int               `json:"quantity" validate:"required,gt=0,max=2147483647"`
	Amount    *decimal.Decimal  `json:"amount" validate:"omitempty,gte=0"`
	Customer  string            `json:"customer" validate:"max=200"`
	Status    entity.SaleStatus `json:"status" validate:"omitempty,enum"`
}

// UpdateSaleStatusRequest body para PATCH /api/sales/:id/status.
type UpdateSaleStatusRequest struct {
	Status entity.SaleStatus `json:"status" validate:"required,enum"`
}

// SaleListQuery filtros del listado de ventas. SortBy: date, amount, quantity, customer, product.
type SaleListQuery struct {
	ListQuery
	Status string `query:"status" validate:"omitempty,oneof=completed pending cancelled"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID          string            `json:"id"`
	ProductID   string            `json:"product_id"`
	ProductName string            `json:"product_name,omitempty"`
	Quantity    int               `json:"quantity"`
	UnitPrice   decimal.Decimal   `json:"unit_price"`
	Amount      decimal.Decimal   `json:"amount"`
	Customer    string            `json:"customer"`
	Status      entity.SaleStatus `json:"status"`
	Date        time.Time         `json:"date"`
}

// SaleResultResponse venta registrada junto al producto actualizado.
type SaleResultResponse struct {
	Sale    SaleResponse    `json:"sale"`
	Product ProductResponse `json:"product"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// ToSaleResponse convierte la entidad a DTO.
func ToSaleResponse(s *entity.SaleTransaction, productName string) SaleResponse {
	return SaleResponse{
		ID:          s.ID,
		ProductID:   s.ProductID,
		ProductName: productName,
		Quantity:    s.Quantity,
		UnitPrice:   s.UnitPrice,
		Amount:      s.Amount,
		Customer:    s.Customer,
		Status:      s.Status,
		Date:        s.Date,
	}
}
