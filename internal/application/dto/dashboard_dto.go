package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// Tarjetas de resumen, ventas recientes, vista previa de bajo stock y tendencia semanal.
type DashboardSummaryDTO struct {
	// Productos
	TotalProducts      int `json:"total_products"`
	InStockProducts    int `json:"in_stock_products"`
	LowStockProducts   int `json:"low_stock_products"`
	OutOfStockProducts int `json:"out_of_stock_products"`

	// Insumos operativos
	TotalSupplies    int `json:"total_supplies"`
	LowStockSupplies int `json:"low_stock_supplies"` // low + out of stock

	// Ventas (completadas + pendientes)
	TodaySales   decimal.Decimal `json:"today_sales"`
	MonthlySales decimal.Decimal `json:"monthly_sales"`

	RecentSales   []SaleResponse    `json:"recent_sales"`
	LowStockItems []ProductResponse `json:"low_stock_items"` // menor stock primero
	Trend         []TrendPointDTO   `json:"trend"`           // últimos 7 días, más antiguo primero
	GeneratedAt   time.Time         `json:"generated_at"`
}

// TrendPointDTO unidades de entrada y salida de un día.
type TrendPointDTO struct {
	Date     string `json:"date"` // YYYY-MM-DD
	UnitsIn  int    `json:"units_in"`
	UnitsOut int    `json:"units_out"` // movimientos de salida + ventas
}
