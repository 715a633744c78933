// Package inventory contiene el ledger de stock: las reglas que mantienen
// consistentes el nivel de stock, los movimientos y el estado derivado.
//
// Es un servicio de dominio puro: recibe el estado actual y el cambio
// propuesto, devuelve el nuevo estado o un error tipado. No hace I/O ni lee
// el reloj; la atomicidad de la escritura la garantiza el caller (TxRunner).
package inventory

import (
	"fmt"
	"math"
	"time"

	"github.com/jhoicas/vetstock-api/internal/domain"
	"github.com/jhoicas/vetstock-api/internal/domain/entity"
)

// LowStockThreshold límite superior (inclusive) del estado LowStock.
// Política fija, igual para productos e insumos.
const LowStockThreshold = 10

// MaxStockLevel tope de stock y de cantidad por movimiento (columnas INTEGER).
const MaxStockLevel = math.MaxInt32

// Level nivel de stock resultante con su estado derivado.
type Level struct {
	StockLevel int
	Status     entity.StockStatus
}

// DeriveStatus única fuente del estado: <= 0 OutOfStock, 1..10 LowStock, > 10 InStock.
func DeriveStatus(stockLevel int) entity.StockStatus {
	switch {
	case stockLevel <= 0:
		return entity.StatusOutOfStock
	case stockLevel <= LowStockThreshold:
		return entity.StatusLowStock
	default:
		return entity.StatusInStock
	}
}

func levelOf(stockLevel int) Level {
	return Level{StockLevel: stockLevel, Status: DeriveStatus(stockLevel)}
}

// ValidateStockLevel rechaza niveles fuera de 0..MaxStockLevel (p.ej. el stock inicial).
func ValidateStockLevel(stockLevel int) error {
	if stockLevel < 0 {
		return fmt.Errorf("%w: el stock no puede ser negativo", domain.ErrInvalidInput)
	}
	if stockLevel > MaxStockLevel {
		return fmt.Errorf("%w: el stock no puede superar %d", domain.ErrInvalidInput, MaxStockLevel)
	}
	return nil
}

// ApplyMovement aplica una entrada o salida sobre stockLevel.
// Una salida mayor al stock disponible se rechaza completa con InsufficientStockError.
func ApplyMovement(stockLevel int, typ entity.MovementType, quantity int) (Level, error) {
	if quantity <= 0 {
		return Level{}, fmt.Errorf("%w: la cantidad debe ser mayor a cero", domain.ErrInvalidInput)
	}
	if quantity > MaxStockLevel {
		return Level{}, fmt.Errorf("%w: la cantidad no puede superar %d", domain.ErrInvalidInput, MaxStockLevel)
	}
	switch typ {
	case entity.MovementTypeIn:
		if stockLevel > MaxStockLevel-quantity {
			return Level{}, fmt.Errorf("%w: el stock resultante superaría %d", domain.ErrInvalidInput, MaxStockLevel)
		}
		return levelOf(stockLevel + quantity), nil
	case entity.MovementTypeOut:
		next := stockLevel - quantity
		if next < 0 {
			return Level{}, &domain.InsufficientStockError{Available: stockLevel, Requested: quantity}
		}
		return levelOf(next), nil
	default:
		return Level{}, fmt.Errorf("%w: tipo de movimiento %q", domain.ErrInvalidInput, typ)
	}
}

// ReverseMovement deshace el efecto de un movimiento registrado (al eliminarlo).
// Nunca falla: revertir una entrada que dejaría stock negativo se recorta a 0 y
// revertir una salida se recorta a MaxStockLevel.
func ReverseMovement(stockLevel int, m entity.StockMovement) Level {
	switch m.Type {
	case entity.MovementTypeIn:
		return levelOf(max(stockLevel-m.Quantity, 0))
	case entity.MovementTypeOut:
		if m.Quantity > MaxStockLevel-stockLevel {
			return levelOf(MaxStockLevel)
		}
		return levelOf(stockLevel + m.Quantity)
	default:
		return levelOf(stockLevel)
	}
}

// ApplySale descuenta una venta. Equivale a una salida; las ventas no tienen reversión.
func ApplySale(stockLevel, quantity int) (Level, error) {
	return ApplyMovement(stockLevel, entity.MovementTypeOut, quantity)
}

// MovementDraft datos de un movimiento aún no registrado.
type MovementDraft struct {
	ProductID string // opcional; si se indica debe coincidir con el producto
	Type      entity.MovementType
	Quantity  int
	Notes     string
	Date      time.Time // cero = now
}

// RecordAndApply valida el borrador, calcula el nuevo nivel del producto y construye
// el movimiento a persistir sellado con now. Movimiento y producto deben escribirse
// en la misma transacción.
func RecordAndApply(p entity.Product, d MovementDraft, now time.Time) (entity.StockMovement, entity.Product, error) {
	if p.ID == "" {
		return entity.StockMovement{}, entity.Product{}, fmt.Errorf("%w: producto sin id", domain.ErrInvalidInput)
	}
	if d.ProductID != "" && d.ProductID != p.ID {
		return entity.StockMovement{}, entity.Product{}, fmt.Errorf("%w: el movimiento no corresponde al producto", domain.ErrInvalidInput)
	}
	lvl, err := ApplyMovement(p.StockLevel, d.Type, d.Quantity)
	if err != nil {
		return entity.StockMovement{}, entity.Product{}, err
	}
	date := d.Date
	if date.IsZero() {
		date = now
	}
	mov := entity.StockMovement{
		ProductID: p.ID,
		Type:      d.Type,
		Quantity:  d.Quantity,
		Notes:     d.Notes,
		Date:      date,
		CreatedAt: now,
	}
	p.StockLevel = lvl.StockLevel
	p.Status = lvl.Status
	p.LastUpdated = now
	return mov, p, nil
}
