package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vetstock-api/internal/application/inventory"
	"github.com/jhoicas/vetstock-api/internal/domain"
	"github.com/jhoicas/vetstock-api/internal/domain/entity"
	"github.com/jhoicas/vetstock-api/internal/infrastructure/memory"
)

func seedProduct(t *testing.T, s *memory.Store, stock int) *entity.Product {
	t.Helper()
	p := &entity.Product{Name: "Amoxicilina 250mg", StockLevel: stock, CreatedAt: time.Now()}
	require.NoError(t, s.Products().Create(context.Background(), p))
	require.NotEmpty(t, p.ID)
	return p
}

func TestStore_RunRollbackEnError(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	p := seedProduct(t, s, 5)

	boom := errors.New("falla a mitad de la transacción")
	err := s.Run(ctx, func(tx inventory.TxRepos) error {
		require.NoError(t, tx.Movements.Create(ctx, &entity.StockMovement{ProductID: p.ID, Type: entity.MovementTypeIn, Quantity: 3}))
		require.NoError(t, tx.Products.UpdateStock(ctx, p.ID, 8, entity.StatusLowStock, time.Now()))
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := s.Products().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.StockLevel, "el stock no debe cambiar tras rollback")

	movs, err := s.Movements().ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, movs, "ningún movimiento debe quedar registrado")
}

func TestStore_RunCommit(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	p := seedProduct(t, s, 5)

	err := s.Run(ctx, func(tx inventory.TxRepos) error {
		if err := tx.Movements.Create(ctx, &entity.StockMovement{ProductID: p.ID, Type: entity.MovementTypeIn, Quantity: 3}); err != nil {
			return err
		}
		return tx.Products.UpdateStock(ctx, p.ID, 8, entity.StatusLowStock, time.Now())
	})
	require.NoError(t, err)

	got, _ := s.Products().GetByID(ctx, p.ID)
	assert.Equal(t, 8, got.StockLevel)
	movs, _ := s.Movements().ListAll(ctx)
	assert.Len(t, movs, 1)
}

func TestStore_RunSerializaEscritores(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	p := seedProduct(t, s, 0)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Run(ctx, func(tx inventory.TxRepos) error {
				cur, err := tx.Products.GetForUpdate(ctx, p.ID)
				if err != nil {
					return err
				}
				return tx.Products.UpdateStock(ctx, p.ID, cur.StockLevel+1, entity.StatusInStock, time.Now())
			})
		}()
	}
	wg.Wait()

	got, _ := s.Products().GetByID(ctx, p.ID)
	assert.Equal(t, 50, got.StockLevel, "sin lost updates")
}

func TestStore_ContextoCancelado(t *testing.T) {
	s := memory.NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := s.Run(ctx, func(inventory.TxRepos) error { called = true; return nil })
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestStore_BorrarProductoEnCascada(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	p := seedProduct(t, s, 5)
	require.NoError(t, s.Movements().Create(ctx, &entity.StockMovement{ProductID: p.ID, Type: entity.MovementTypeIn, Quantity: 1}))
	require.NoError(t, s.Sales().Create(ctx, &entity.SaleTransaction{ProductID: p.ID, Quantity: 1}))

	require.NoError(t, s.Products().Delete(ctx, p.ID))
	movs, _ := s.Movements().ListAll(ctx)
	sales, _ := s.Sales().ListAll(ctx)
	assert.Empty(t, movs)
	assert.Empty(t, sales)

	assert.ErrorIs(t, s.Products().Delete(ctx, p.ID), domain.ErrNotFound)
}

func TestCategoryRepo_NombreUnicoYEnUso(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	c := &entity.Category{Name: "Vitaminas"}
	require.NoError(t, s.Categories().Create(ctx, c))
	assert.ErrorIs(t, s.Categories().Create(ctx, &entity.Category{Name: "vitaminas"}), domain.ErrDuplicate)

	require.NoError(t, s.Products().Create(ctx, &entity.Product{Name: "B12", CategoryID: c.ID}))
	err := s.Categories().Delete(ctx, c.ID)
	var inUse *domain.CategoryInUseError
	require.ErrorAs(t, err, &inUse)
	assert.Equal(t, 1, inUse.Count)
}
