package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/vetstock-api/internal/application/dto"
	"github.com/jhoicas/vetstock-api/internal/domain/entity"
	ledger "github.com/jhoicas/vetstock-api/internal/domain/inventory"
	"github.com/jhoicas/vetstock-api/internal/domain/repository"
)

const (
	replenishmentWindowDays = 30
	// idealStockFactor stock objetivo = punto de reorden × 1.5.
	idealStockFactor = 1.5
)

// ReplenishmentUseCase genera la lista de reposición: productos en LowStock u OutOfStock
// con cantidad sugerida de pedido, priorizados por demanda reciente.
type ReplenishmentUseCase struct {
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	now         func() time.Time
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{
		productRepo: productRepo,
		saleRepo:    saleRepo,
		now:         time.Now,
	}
}

// WithClock fija el reloj de la ventana de demanda (tests).
func (uc *ReplenishmentUseCase) WithClock(now func() time.Time) *ReplenishmentUseCase {
	uc.now = now
	return uc
}

// GenerateReplenishmentList devuelve los productos bajo el punto de reorden con la cantidad
// sugerida y un ranking de prioridad basado en unidades vendidas en los últimos 30 días.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	products, err := uc.productRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	// 1. Productos por debajo del punto de reorden
	var below []*entity.Product
	for _, p := range products {
		if p.Status != entity.StatusInStock {
			below = append(below, p)
		}
	}
	if len(below) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	// 2. Demanda reciente por producto
	sales, err := uc.saleRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	since := uc.now().AddDate(0, 0, -replenishmentWindowDays)
	soldByID := make(map[string]int)
	for _, s := range sales {
		if s.Status == entity.SaleStatusCancelled || s.Date.Before(since) {
			continue
		}
		soldByID[s.ProductID] += s.Quantity
	}

	// 3. Sugerencias
	reorderPoint := ledger.LowStockThreshold
	idealStock := int(float64(reorderPoint)*idealStockFactor + 0.5)
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(below))
	for _, p := range below {
		qty := idealStock - p.StockLevel
		if qty < 0 {
			qty = 0
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:          p.ID,
			ProductName:        p.Name,
			CurrentStock:       p.StockLevel,
			Status:             p.Status,
			ReorderPoint:       reorderPoint,
			IdealStock:         idealStock,
			SuggestedOrderQty:  qty,
			UnitPrice:          p.UnitPrice,
			EstimatedOrderCost: p.UnitPrice.Mul(decimal.NewFromInt(int64(qty))).Round(2),
			UnitsSoldLastDays:  soldByID[p.ID],
		})
	}

	// 4. Ordenar: mayor demanda reciente, luego mayor déficit.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if a.UnitsSoldLastDays != b.UnitsSoldLastDays {
			return a.UnitsSoldLastDays > b.UnitsSoldLastDays
		}
		return a.SuggestedOrderQty > b.SuggestedOrderQty
	})

	// 5. Asignar prioridad (1 = más urgente)
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
