// Package analytics contiene el caso de uso del dashboard: tarjetas de resumen,
// ventas recientes, vista previa de bajo stock y tendencia de movimientos.
package analytics

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/vetstock-api/internal/application/dto"
	"github.com/jhoicas/vetstock-api/internal/domain/entity"
	"github.com/jhoicas/vetstock-api/internal/domain/repository"
)

const (
	dashboardRecentSales = 5 // ventas en el widget de recientes
	dashboardLowStock    = 5 // productos en la vista previa de bajo stock
	dashboardTrendDays   = 7
)

// DashboardUseCase arma el resumen del inventario a partir de las colecciones completas.
// No modifica datos.
type DashboardUseCase struct {
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
	saleRepo     repository.SaleRepository
	supplyRepo   repository.SupplyRepository
	now          func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
	saleRepo repository.SaleRepository,
	supplyRepo repository.SupplyRepository,
) *DashboardUseCase {
	return &DashboardUseCase{
		productRepo:  productRepo,
		movementRepo: movementRepo,
		saleRepo:     saleRepo,
		supplyRepo:   supplyRepo,
		now:          time.Now,
	}
}

// WithClock fija el reloj usado para "hoy" y "mes en curso" (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

type listResult[T any] struct {
	items []T
	err   error
}

func load[T any](ctx context.Context, fn func(context.Context) ([]T, error)) <-chan listResult[T] {
	ch := make(chan listResult[T], 1)
	go func() {
		items, err := fn(ctx)
		ch <- listResult[T]{items, err}
	}()
	return ch
}

// GetSummary construye el DashboardSummaryDTO.
//
// Cuatro lecturas en paralelo (productos, movimientos, ventas, insumos); el resto
// se calcula en memoria.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()

	// ── Rangos de fecha ────────────────────────────────────────────────────────
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	trendStart := todayStart.AddDate(0, 0, -(dashboardTrendDays - 1))

	// ── Goroutines para paralelizar las lecturas ──────────────────────────────
	productsCh := load(ctx, uc.productRepo.ListAll)
	movementsCh := load(ctx, uc.movementRepo.ListAll)
	salesCh := load(ctx, uc.saleRepo.ListAll)
	suppliesCh := load(ctx, uc.supplyRepo.ListAll)

	products := <-productsCh
	movements := <-movementsCh
	sales := <-salesCh
	supplies := <-suppliesCh

	if products.err != nil {
		return nil, fmt.Errorf("dashboard: productos: %w", products.err)
	}
	if movements.err != nil {
		return nil, fmt.Errorf("dashboard: movimientos: %w", movements.err)
	}
	if sales.err != nil {
		return nil, fmt.Errorf("dashboard: ventas: %w", sales.err)
	}
	if supplies.err != nil {
		return nil, fmt.Errorf("dashboard: insumos: %w", supplies.err)
	}

	out := &dto.DashboardSummaryDTO{
		TotalProducts: len(products.items),
		TotalSupplies: len(supplies.items),
		TodaySales:    decimal.Zero,
		MonthlySales:  decimal.Zero,
		GeneratedAt:   now,
	}

	// ── Productos ──────────────────────────────────────────────────────────────
	names := make(map[string]string, len(products.items))
	var low []*entity.Product
	for _, p := range products.items {
		names[p.ID] = p.Name
		switch p.Status {
		case entity.StatusInStock:
			out.InStockProducts++
		case entity.StatusLowStock:
			out.LowStockProducts++
			low = append(low, p)
		default:
			out.OutOfStockProducts++
			low = append(low, p)
		}
	}
	slices.SortStableFunc(low, func(a, b *entity.Product) int { return cmp.Compare(a.StockLevel, b.StockLevel) })
	out.LowStockItems = make([]dto.ProductResponse, 0, min(len(low), dashboardLowStock))
	for _, p := range low[:min(len(low), dashboardLowStock)] {
		out.LowStockItems = append(out.LowStockItems, dto.ToProductResponse(p))
	}

	for _, s := range supplies.items {
		if s.Status != entity.StatusInStock {
			out.LowStockSupplies++
		}
	}

	// ── Ventas ─────────────────────────────────────────────────────────────────
	trend := make([]dto.TrendPointDTO, dashboardTrendDays)
	trendPos := make(map[string]int, dashboardTrendDays)
	for i := range trend {
		trend[i].Date = trendStart.AddDate(0, 0, i).Format(dto.DateLayout)
		trendPos[trend[i].Date] = i
	}
	trendIndex := func(t time.Time) (int, bool) {
		i, ok := trendPos[t.In(now.Location()).Format(dto.DateLayout)]
		return i, ok
	}

	counted := make([]*entity.SaleTransaction, 0, len(sales.items))
	for _, s := range sales.items {
		if s.Status == entity.SaleStatusCancelled {
			continue
		}
		counted = append(counted, s)
		if !s.Date.Before(monthStart) {
			out.MonthlySales = out.MonthlySales.Add(s.Amount)
		}
		if !s.Date.Before(todayStart) {
			out.TodaySales = out.TodaySales.Add(s.Amount)
		}
		if i, ok := trendIndex(s.Date); ok {
			trend[i].UnitsOut += s.Quantity
		}
	}
	out.TodaySales = out.TodaySales.Round(2)
	out.MonthlySales = out.MonthlySales.Round(2)

	slices.SortStableFunc(counted, func(a, b *entity.SaleTransaction) int { return b.Date.Compare(a.Date) })
	out.RecentSales = make([]dto.SaleResponse, 0, min(len(counted), dashboardRecentSales))
	for _, s := range counted[:min(len(counted), dashboardRecentSales)] {
		out.RecentSales = append(out.RecentSales, dto.ToSaleResponse(s, names[s.ProductID]))
	}

	// ── Tendencia de movimientos ──────────────────────────────────────────────
	for _, m := range movements.items {
		i, ok := trendIndex(m.Date)
		if !ok {
			continue
		}
		if m.Type == entity.MovementTypeIn {
			trend[i].UnitsIn += m.Quantity
		} else {
			trend[i].UnitsOut += m.Quantity
		}
	}
	out.Trend = trend

	return out, nil
}
