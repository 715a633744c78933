package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/vetstock-api/internal/domain/entity"
)

// ReplenishmentSuggestionDTO producto a reponer con la cantidad sugerida de pedido.
type ReplenishmentSuggestionDTO struct {
	Priority           int                `json:"priority"` // 1 = más urgente
	ProductID          string             `json:"product_id"`
	ProductName        string             `json:"product_name"`
	CurrentStock       int                `json:"current_stock"`
	Status             entity.StockStatus `json:"status"`
	ReorderPoint       int                `json:"reorder_point"`
	IdealStock         int                `json:"ideal_stock"`
	SuggestedOrderQty  int                `json:"suggested_order_qty"`
	UnitPrice          decimal.Decimal    `json:"unit_price"`
	EstimatedOrderCost decimal.Decimal    `json:"estimated_order_cost"`
	UnitsSoldLastDays  int                `json:"units_sold_last_days"` // ventas no canceladas de la ventana
}
