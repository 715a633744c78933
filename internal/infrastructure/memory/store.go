// Package memory implementa los repositorios sobre un almacén en memoria.
// Sirve para STORAGE_DRIVER=memory (demo/desarrollo) y como doble de prueba
// con la misma semántica transaccional que PostgreSQL: Run trabaja sobre una
// copia y solo la publica si fn termina sin error.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/google/uuid"

	"github.com/jhoicas/vetstock-api/internal/application/inventory"
	"github.com/jhoicas/vetstock-api/internal/domain/entity"
)

var _ inventory.TxRunner = (*Store)(nil)

type state struct {
	products   map[string]entity.Product
	movements  map[string]entity.StockMovement
	sales      map[string]entity.SaleTransaction
	supplies   map[string]entity.Supply
	categories map[string]entity.Category
}

func newState() *state {
	return &state{
		products:   map[string]entity.Product{},
		movements:  map[string]entity.StockMovement{},
		sales:      map[string]entity.SaleTransaction{},
		supplies:   map[string]entity.Supply{},
		categories: map[string]entity.Category{},
	}
}

func (s *state) clone() *state {
	return &state{
		products:   maps.Clone(s.products),
		movements:  maps.Clone(s.movements),
		sales:      maps.Clone(s.sales),
		supplies:   maps.Clone(s.supplies),
		categories: maps.Clone(s.categories),
	}
}

// Store almacén en memoria seguro para uso concurrente.
// Las transacciones se serializan con un mutex global.
type Store struct {
	mu sync.RWMutex
	st *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Run ejecuta fn con repositorios atados a una copia del estado; Commit = reemplazar el estado.
func (s *Store) Run(ctx context.Context, fn func(tx inventory.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	scope := &scope{store: s, tx: work}
	if err := fn(inventory.TxRepos{
		Products:  &ProductRepo{scope},
		Movements: &MovementRepo{scope},
		Sales:     &SaleRepo{scope},
		Supplies:  &SupplyRepo{scope},
	}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.st = work
	return nil
}

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepo { return &ProductRepo{&scope{store: s}} }

// Movements repositorio de movimientos fuera de transacción.
func (s *Store) Movements() *MovementRepo { return &MovementRepo{&scope{store: s}} }

// Sales repositorio de ventas fuera de transacción.
func (s *Store) Sales() *SaleRepo { return &SaleRepo{&scope{store: s}} }

// Supplies repositorio de insumos fuera de transacción.
func (s *Store) Supplies() *SupplyRepo { return &SupplyRepo{&scope{store: s}} }

// Categories repositorio de categorías.
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{&scope{store: s}} }

// scope decide sobre qué estado opera un repositorio: la copia de una tx
// (el mutex ya lo tiene Run) o el estado publicado (toma el mutex por operación).
type scope struct {
	store *Store
	tx    *state
}

func (sc *scope) read(fn func(st *state) error) error {
	if sc.tx != nil {
		return fn(sc.tx)
	}
	sc.store.mu.RLock()
	defer sc.store.mu.RUnlock()
	return fn(sc.store.st)
}

func (sc *scope) write(fn func(st *state) error) error {
	if sc.tx != nil {
		return fn(sc.tx)
	}
	sc.store.mu.Lock()
	defer sc.store.mu.Unlock()
	return fn(sc.store.st)
}

func newID() string {
	return uuid.New().String()
}
