package inventory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jhoicas/vetstock-api/internal/application/dto"
	"github.com/jhoicas/vetstock-api/internal/application/query"
	"github.com/jhoicas/vetstock-api/internal/domain"
	"github.com/jhoicas/vetstock-api/internal/domain/entity"
	ledger "github.com/jhoicas/vetstock-api/internal/domain/inventory"
	"github.com/jhoicas/vetstock-api/internal/domain/repository"
)

// adjustmentNotePrefix prefijo de las notas de los movimientos generados por un ajuste.
const adjustmentNotePrefix = "Ajuste de stock"

// MovementUseCase registra, revierte y lista movimientos de stock de productos.
// Toda escritura pasa por el ledger y por TxRunner: el movimiento y el nuevo nivel
// del producto se confirman juntos o no se confirma nada.
type MovementUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
) *MovementUseCase {
	return &MovementUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		movementRepo: movementRepo,
	}
}

// Register registra una entrada o salida para un producto.
func (uc *MovementUseCase) Register(ctx context.Context, in dto.RegisterMovementRequest) (*dto.MovementResultResponse, error) {
	if strings.TrimSpace(in.ProductID) == "" {
		return nil, fmt.Errorf("%w: product_id requerido", domain.ErrInvalidInput)
	}
	now := time.Now()
	var out *dto.MovementResultResponse
	err := uc.txRunner.Run(ctx, func(tx TxRepos) error {
		product, err := tx.Products.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		mov, updated, err := recordInTx(ctx, tx, *product, ledger.MovementDraft{
			ProductID: in.ProductID,
			Type:      in.Type,
			Quantity:  in.Quantity,
			Notes:     strings.TrimSpace(in.Notes),
		}, now)
		if err != nil {
			return err
		}
		out = &dto.MovementResultResponse{
			Movement: dto.ToMovementResponse(&mov, updated.Name),
			Product:  dto.ToProductResponse(&updated),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RegisterBatch registra varias líneas del mismo tipo en una sola transacción.
// Las líneas se aplican en orden sobre el nivel acumulado de cada producto; si una
// falla no se confirma ninguna.
func (uc *MovementUseCase) RegisterBatch(ctx context.Context, in dto.BatchMovementRequest) (*dto.BatchMovementResponse, error) {
	if len(in.Lines) == 0 {
		return nil, fmt.Errorf("%w: se requiere al menos una línea", domain.ErrInvalidInput)
	}
	if !in.Type.Valid() {
		return nil, fmt.Errorf("%w: tipo de movimiento %q", domain.ErrInvalidInput, in.Type)
	}
	ids := make([]string, 0, len(in.Lines))
	for i, line := range in.Lines {
		if strings.TrimSpace(line.ProductID) == "" || line.Quantity <= 0 {
			return nil, fmt.Errorf("línea %d: %w: producto y cantidad positiva requeridos", i+1, domain.ErrInvalidInput)
		}
		ids = append(ids, line.ProductID)
	}
	// Bloqueo en orden de id para que dos lotes concurrentes no se bloqueen mutuamente.
	slices.Sort(ids)
	ids = slices.Compact(ids)

	now := time.Now()
	out := &dto.BatchMovementResponse{}
	err := uc.txRunner.Run(ctx, func(tx TxRepos) error {
		current := make(map[string]entity.Product, len(ids))
		for _, id := range ids {
			p, err := tx.Products.GetForUpdate(ctx, id)
			if err != nil {
				return fmt.Errorf("producto %s: %w", id, err)
			}
			current[id] = *p
		}
		for i, line := range in.Lines {
			mov, updated, err := recordInTx(ctx, tx, current[line.ProductID], ledger.MovementDraft{
				ProductID: line.ProductID,
				Type:      in.Type,
				Quantity:  line.Quantity,
				Notes:     strings.TrimSpace(line.Notes),
			}, now)
			if err != nil {
				return fmt.Errorf("línea %d: %w", i+1, err)
			}
			current[line.ProductID] = updated
			out.Movements = append(out.Movements, dto.ToMovementResponse(&mov, updated.Name))
		}
		for _, id := range ids {
			p := current[id]
			out.Products = append(out.Products, dto.ToProductResponse(&p))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Adjust aplica un ajuste con signo (positivo entrada, negativo salida) y deja
// constancia como movimiento con el motivo en las notas.
func (uc *MovementUseCase) Adjust(ctx context.Context, productID string, in dto.AdjustStockRequest) (*dto.MovementResultResponse, error) {
	typ, qty, err := splitDelta(in.Delta)
	if err != nil {
		return nil, err
	}
	notes := adjustmentNotePrefix
	if reason := strings.TrimSpace(in.Reason); reason != "" {
		notes += ": " + reason
	}
	return uc.Register(ctx, dto.RegisterMovementRequest{
		ProductID: productID,
		Type:      typ,
		Quantity:  qty,
		Notes:     notes,
	})
}

// Delete elimina un movimiento revirtiendo su efecto sobre el producto.
// La reversión nunca falla por stock: una entrada revertida se recorta a 0.
func (uc *MovementUseCase) Delete(ctx context.Context, movementID string) (*dto.ProductResponse, error) {
	now := time.Now()
	var out dto.ProductResponse
	err := uc.txRunner.Run(ctx, func(tx TxRepos) error {
		mov, err := tx.Movements.GetByID(ctx, movementID)
		if err != nil {
			return err
		}
		product, err := tx.Products.GetForUpdate(ctx, mov.ProductID)
		if err != nil {
			return err
		}
		lvl := ledger.ReverseMovement(product.StockLevel, *mov)
		if err := tx.Movements.Delete(ctx, mov.ID); err != nil {
			return err
		}
		if err := tx.Products.UpdateStock(ctx, product.ID, lvl.StockLevel, lvl.Status, now); err != nil {
			return err
		}
		product.StockLevel = lvl.StockLevel
		product.Status = lvl.Status
		product.LastUpdated = now
		out = dto.ToProductResponse(product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// List filtra, ordena y pagina los movimientos.
func (uc *MovementUseCase) List(ctx context.Context, q dto.MovementListQuery) (*dto.MovementListResponse, error) {
	movements, err := uc.movementRepo.ListAll(ctx)
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

	now := time.Now()
	match := query.NewMatcher(q.Search)
	filtered := make([]*entity.StockMovement, 0, len(movements))
	for _, m := range movements {
		if q.Type != "" && string(m.Type) != q.Type {
			continue
		}
		if q.ProductID != "" && m.ProductID != q.ProductID {
			continue
		}
		if !query.InWindow(m.Date, now, q.Window) {
			continue
		}
		if !match.Match(names[m.ProductID], m.Notes) {
			continue
		}
		filtered = append(filtered, m)
	}

	col := query.NewCollator()
	var cmpFn func(a, b *entity.StockMovement) int
	switch q.SortBy {
	case "product":
		cmpFn = func(a, b *entity.StockMovement) int { return col.Compare(names[a.ProductID], names[b.ProductID]) }
	case "quantity":
		cmpFn = func(a, b *entity.StockMovement) int { return query.CompareInts(a.Quantity, b.Quantity) }
	case "type":
		cmpFn = func(a, b *entity.StockMovement) int { return strings.Compare(string(a.Type), string(b.Type)) }
	default:
		cmpFn = func(a, b *entity.StockMovement) int { return a.Date.Compare(b.Date) }
	}
	query.Sort(filtered, q.Descending(), cmpFn)

	page := query.Paginate(filtered, q.Limit, q.Offset)
	items := make([]dto.MovementResponse, 0, len(page))
	for _, m := range page {
		items = append(items, dto.ToMovementResponse(m, names[m.ProductID]))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: len(filtered)},
	}, nil
}

// recordInTx aplica el borrador con el ledger y persiste movimiento + stock en la tx dada.
func recordInTx(ctx context.Context, tx TxRepos, product entity.Product, draft ledger.MovementDraft, now time.Time) (entity.StockMovement, entity.Product, error) {
	mov, updated, err := ledger.RecordAndApply(product, draft, now)
	if err != nil {
		return entity.StockMovement{}, entity.Product{}, err
	}
	if err := tx.Movements.Create(ctx, &mov); err != nil {
		return entity.StockMovement{}, entity.Product{}, err
	}
	if err := tx.Products.UpdateStock(ctx, updated.ID, updated.StockLevel, updated.Status, now); err != nil {
		return entity.StockMovement{}, entity.Product{}, err
	}
	return mov, updated, nil
}

// splitDelta convierte un ajuste con signo en tipo + cantidad positiva.
func splitDelta(delta int) (entity.MovementType, int, error) {
	switch {
	case delta < -ledger.MaxStockLevel || delta > ledger.MaxStockLevel:
		return "", 0, fmt.Errorf("%w: el ajuste no puede superar %d unidades", domain.ErrInvalidInput, ledger.MaxStockLevel)
	case delta > 0:
		return entity.MovementTypeIn, delta, nil
	case delta < 0:
		return entity.MovementTypeOut, -delta, nil
	default:
		return "", 0, fmt.Errorf("%w: el ajuste no puede ser cero", domain.ErrInvalidInput)
	}
}
