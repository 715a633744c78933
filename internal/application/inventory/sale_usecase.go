package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/vetstock-api/internal/application/dto"
	"github.com/jhoicas/vetstock-api/internal/application/query"
	"github.com/jhoicas/vetstock-api/internal/domain"
	"github.com/jhoicas/vetstock-api/internal/domain/entity"
	ledger "github.com/jhoicas/vetstock-api/internal/domain/inventory"
	"github.com/jhoicas/vetstock-api/internal/domain/repository"
)

// SaleUseCase registra ventas (salidas con metadatos comerciales) y las lista.
// Una venta no tiene reversión: no se puede cancelar una vez registrada.
type SaleUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		saleRepo:    saleRepo,
	}
}

// Record descuenta el stock y registra la venta en la misma transacción.
// Amount por defecto = unit_price del producto × quantity.
func (uc *SaleUseCase) Record(ctx context.Context, in dto.RecordSaleRequest) (*dto.SaleResultResponse, error) {
	if strings.TrimSpace(in.ProductID) == "" {
		return nil, fmt.Errorf("%w: product_id requerido", domain.ErrInvalidInput)
	}
	status := in.Status
	if status == "" {
		status = entity.SaleStatusCompleted
	}
	switch status {
	case entity.SaleStatusCompleted, entity.SaleStatusPending:
	default:
		return nil, fmt.Errorf("%w: una venta nueva debe estar completed o pending", domain.ErrInvalidInput)
	}
	if in.Amount != nil && in.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: el monto no puede ser negativo", domain.ErrInvalidInput)
	}

	now := time.Now()
	var out *dto.SaleResultResponse
	err := uc.txRunner.Run(ctx, func(tx TxRepos) error {
		product, err := tx.Products.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		lvl, err := ledger.ApplySale(product.StockLevel, in.Quantity)
		if err != nil {
			return err
		}
		amount := product.UnitPrice.Mul(decimal.NewFromInt(int64(in.Quantity)))
		if in.Amount != nil {
			amount = *in.Amount
		}
		sale := &entity.SaleTransaction{
			ProductID: product.ID,
			Quantity:  in.Quantity,
			UnitPrice: product.UnitPrice,
			Amount:    amount.Round(2),
			Customer:  strings.TrimSpace(in.Customer),
			Status:    status,
			Date:      now,
			CreatedAt: now,
		}
		if err := tx.Sales.Create(ctx, sale); err != nil {
			return err
		}
		if err := tx.Products.UpdateStock(ctx, product.ID, lvl.StockLevel, lvl.Status, now); err != nil {
			return err
		}
		product.StockLevel = lvl.StockLevel
		product.Status = lvl.Status
		product.LastUpdated = now
		out = &dto.SaleResultResponse{
			Sale:    dto.ToSaleResponse(sale, product.Name),
			Product: dto.ToProductResponse(product),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus solo admite pending → completed; no hay efecto sobre el stock.
func (uc *SaleUseCase) UpdateStatus(ctx context.Context, id string, status entity.SaleStatus) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale.Status != status {
		if sale.Status != entity.SaleStatusPending || status != entity.SaleStatusCompleted {
			return nil, fmt.Errorf("%w: transición %s → %s no soportada", domain.ErrInvalidInput, sale.Status, status)
		}
		if err := uc.saleRepo.UpdateStatus(ctx, id, status); err != nil {
			return nil, err
		}
		sale.Status = status
	}
	name := ""
	if p, err := uc.productRepo.GetByID(ctx, sale.ProductID); err == nil {
		name = p.Name
	}
	out := dto.ToSaleResponse(sale, name)
	return &out, nil
}

// List filtra por estado, busca por cliente o producto, ordena y pagina.
func (uc *SaleUseCase) List(ctx context.Context, q dto.SaleListQuery) (*dto.SaleListResponse, error) {
	sales, err := uc.saleRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}

	match := query.NewMatcher(q.Search)
	filtered := make([]*entity.SaleTransaction, 0, len(sales))
	for _, s := range sales {
		if q.Status != "" && string(s.Status) != q.Status {
			continue
		}
		if !match.Match(s.Customer, names[s.ProductID]) {
			continue
		}
		filtered = append(filtered, s)
	}

	col := query.NewCollator()
	var cmpFn func(a, b *entity.SaleTransaction) int
	switch q.SortBy {
	case "amount":
		cmpFn = func(a, b *entity.SaleTransaction) int { return a.Amount.Cmp(b.Amount) }
	case "quantity":
		cmpFn = func(a, b *entity.SaleTransaction) int { return query.CompareInts(a.Quantity, b.Quantity) }
	case "customer":
		cmpFn = func(a, b *entity.SaleTransaction) int { return col.Compare(a.Customer, b.Customer) }
	case "product":
		cmpFn = func(a, b *entity.SaleTransaction) int { return col.Compare(names[a.ProductID], names[b.ProductID]) }
	default:
		cmpFn = func(a, b *entity.SaleTransaction) int { return a.Date.Compare(b.Date) }
	}
	query.Sort(filtered, q.Descending(), cmpFn)

	page := query.Paginate(filtered, q.Limit, q.Offset)
	items := make([]dto.SaleResponse, 0, len(page))
	for _, s := range page {
		items = append(items, dto.ToSaleResponse(s, names[s.ProductID]))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: len(filtered)},
	}, nil
}
