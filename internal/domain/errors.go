package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrPersistence       = errors.New("fallo de persistencia")
)

// InsufficientStockError detalle de una salida rechazada por falta de stock.
// errors.Is(err, ErrInsufficientStock) es verdadero.
type InsufficientStockError struct {
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: disponible %d, solicitado %d", e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// CategoryInUseError se devuelve al intentar eliminar una categoría referenciada por productos.
// Es un error de validación: errors.Is(err, ErrInvalidInput) es verdadero.
type CategoryInUseError struct {
	CategoryID string
	Count      int
}

func (e *CategoryInUseError) Error() string {
	return fmt.Sprintf("la categoría está en uso por %d producto(s)", e.Count)
}

func (e *CategoryInUseError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Persistence envuelve un error del almacenamiento como ErrPersistence conservando la causa.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
}
