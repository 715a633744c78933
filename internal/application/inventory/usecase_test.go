package inventory_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vetstock-api/internal/application/dto"
	"github.com/jhoicas/vetstock-api/internal/application/inventory"
	"github.com/jhoicas/vetstock-api/internal/domain"
	"github.com/jhoicas/vetstock-api/internal/domain/entity"
	ledger "github.com/jhoicas/vetstock-api/internal/domain/inventory"
	"github.com/jhoicas/vetstock-api/internal/infrastructure/memory"
)

// ─── helpers ────────────────────────────────────────────────────────────────

type fixture struct {
	store     *memory.Store
	movements *inventory.MovementUseCase
	sales     *inventory.SaleUseCase
	supplies  *inventory.SupplyStockUseCase
}

func newFixture() *fixture {
	s := memory.NewStore()
	return &fixture{
		store:     s,
		movements: inventory.NewMovementUseCase(s, s.Products(), s.Movements()),
		sales:     inventory.NewSaleUseCase(s, s.Products(), s.Sales()),
		supplies:  inventory.NewSupplyStockUseCase(s),
	}
}

func (f *fixture) product(t *testing.T, name string, stock int, price string) *entity.Product {
	t.Helper()
	now := time.Now()
	p := &entity.Product{
		Name:        name,
		StockLevel:  stock,
		Status:      ledger.DeriveStatus(stock),
		UnitPrice:   decimal.RequireFromString(price),
		LastUpdated: now,
		CreatedAt:   now,
	}
	require.NoError(t, f.store.Products().Create(context.Background(), p))
	return p
}

func (f *fixture) stockOf(t *testing.T, id string) *entity.Product {
	t.Helper()
	p, err := f.store.Products().GetByID(context.Background(), id)
	require.NoError(t, err)
	return p
}

// ─── movimientos ────────────────────────────────────────────────────────────

func TestMovementUseCase_EntradaYSalida(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := f.product(t, "Meloxicam 1.5mg", 8, "12.50")

	res, err := f.movements.Register(ctx, dto.RegisterMovementRequest{ProductID: p.ID, Type: entity.MovementTypeOut, Quantity: 8})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Product.StockLevel)
	assert.Equal(t, entity.StatusOutOfStock, res.Product.Status)
	assert.NotEmpty(t, res.Movement.ID)
	assert.Equal(t, "Meloxicam 1.5mg", res.Movement.ProductName)

	res, err = f.movements.Register(ctx, dto.RegisterMovementRequest{ProductID: p.ID, Type: entity.MovementTypeIn, Quantity: 15})
	require.NoError(t, err)
	assert.Equal(t, 15, res.Product.StockLevel)
	assert.Equal(t, entity.StatusInStock, res.Product.Status)

	got := f.stockOf(t, p.ID)
	assert.Equal(t, 15, got.StockLevel)
	assert.Equal(t, entity.StatusInStock, got.Status)
}

func TestMovementUseCase_SalidaSinStockNoAplicaNada(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := f.product(t, "Ivermectina", 3, "4.00")

	_, err := f.movements.Register(ctx, dto.RegisterMovementRequest{ProductID: p.ID, Type: entity.MovementTypeOut, Quantity: 4})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	var insuf *domain.InsufficientStockError
	require.ErrorAs(t, err, &insuf)
	assert.Equal(t, 3, insuf.Available)
	assert.Equal(t, 4, insuf.Requested)

	assert.Equal(t, 3, f.stockOf(t, p.ID).StockLevel)
	movs, _ := f.store.Movements().ListAll(ctx)
	assert.Empty(t, movs)
}

func TestMovementUseCase_ProductoInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.movements.Register(context.Background(), dto.RegisterMovementRequest{ProductID: "no-existe", Type: entity.MovementTypeIn, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMovementUseCase_EntradaSobreElTopeSeRechaza(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := f.product(t, "Suero fisiológico", 10, "3.20")

	for _, q := range []int{math.MaxInt, ledger.MaxStockLevel} {
		_, err := f.movements.Register(ctx, dto.RegisterMovementRequest{ProductID: p.ID, Type: entity.MovementTypeIn, Quantity: q})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "q=%d", q)
	}
	_, err := f.movements.Adjust(ctx, p.ID, dto.AdjustStockRequest{Delta: math.MinInt})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got := f.stockOf(t, p.ID)
	assert.Equal(t, 10, got.StockLevel)
	assert.Equal(t, entity.StatusLowStock, got.Status)
	movs, _ := f.store.Movements().ListAll(ctx)
	assert.Empty(t, movs)
}

func TestMovementUseCase_SalidasConcurrentesNoPierdenActualizaciones(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	const stock, workers = 7, 25
	p := f.product(t, "Amoxicilina 250mg", stock, "9.90")

	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.movements.Register(ctx, dto.RegisterMovementRequest{ProductID: p.ID, Type: entity.MovementTypeOut, Quantity: 1})
		}(i)
	}
	wg.Wait()

	ok, insufficient := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrInsufficientStock):
			insufficient++
		default:
			t.Errorf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, stock, ok)
	assert.Equal(t, workers-stock, insufficient)

	got := f.stockOf(t, p.ID)
	assert.Equal(t, 0, got.StockLevel)
	assert.Equal(t, entity.StatusOutOfStock, got.Status)
	movs, _ := f.store.Movements().ListAll(ctx)
	assert.Len(t, movs, stock)
}

func TestMovementUseCase_LoteTodoONada(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	a := f.product(t, "Vacuna triple felina", 5, "30")
	b := f.product(t, "Vacuna antirrábica", 2, "25")

	_, err := f.movements.RegisterBatch(ctx, dto.BatchMovementRequest{
		Type: entity.MovementTypeOut,
		Lines: []dto.BatchMovementLine{
			{ProductID: a.ID, Quantity: 2},
			{ProductID: b.ID, Quantity: 3},
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "línea 2")

	assert.Equal(t, 5, f.stockOf(t, a.ID).StockLevel, "la línea 1 no debe quedar aplicada")
	movs, _ := f.store.Movements().ListAll(ctx)
	assert.Empty(t, movs)
}

func TestMovementUseCase_LoteAcumulaPorProducto(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	a := f.product(t, "Suero fisiológico", 4, "3")

	_, err := f.movements.RegisterBatch(ctx, dto.BatchMovementRequest{
		Type: entity.MovementTypeOut,
		Lines: []dto.BatchMovementLine{
			{ProductID: a.ID, Quantity: 3},
			{ProductID: a.ID, Quantity: 2},
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock, "la segunda línea ve el nivel ya descontado")

	res, err := f.movements.RegisterBatch(ctx, dto.BatchMovementRequest{
		Type: entity.MovementTypeIn,
		Lines: []dto.BatchMovementLine{
			{ProductID: a.ID, Quantity: 3},
			{ProductID: a.ID, Quantity: 5},
		},
	})
	require.NoError(t, err)
	assert.Len(t, res.Movements, 2)
	require.Len(t, res.Products, 1)
	assert.Equal(t, 12, res.Products[0].StockLevel)
	assert.Equal(t, entity.StatusInStock, res.Products[0].Status)
}

func TestMovementUseCase_Ajuste(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := f.product(t, "Gasas estériles", 20, "1")

	res, err := f.movements.Adjust(ctx, p.ID, dto.AdjustStockRequest{Delta: -12, Reason: "conteo físico"})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeOut, res.Movement.Type)
	assert.Equal(t, 12, res.Movement.Quantity)
	assert.Equal(t, "Ajuste de stock: conteo físico", res.Movement.Notes)
	assert.Equal(t, 8, res.Product.StockLevel)
	assert.Equal(t, entity.StatusLowStock, res.Product.Status)

	_, err = f.movements.Adjust(ctx, p.ID, dto.AdjustStockRequest{Delta: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMovementUseCase_BorrarRevierte(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := f.product(t, "Antipulgas", 8, "9")

	out, err := f.movements.Register(ctx, dto.RegisterMovementRequest{ProductID: p.ID, Type: entity.MovementTypeOut, Quantity: 8})
	require.NoError(t, err)

	prod, err := f.movements.Delete(ctx, out.Movement.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, prod.StockLevel)
	assert.Equal(t, entity.StatusLowStock, prod.Status)

	_, err = f.movements.Delete(ctx, out.Movement.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMovementUseCase_BorrarEntradaSeRecortaACero(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := f.product(t, "Jeringas 5ml", 0, "0.5")

	in, err := f.movements.Register(ctx, dto.RegisterMovementRequest{ProductID: p.ID, Type: entity.MovementTypeIn, Quantity: 10})
	require.NoError(t, err)
	_, err = f.movements.Register(ctx, dto.RegisterMovementRequest{ProductID: p.ID, Type: entity.MovementTypeOut, Quantity: 7})
	require.NoError(t, err)

	prod, err := f.movements.Delete(ctx, in.Movement.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, prod.StockLevel)
	assert.Equal(t, entity.StatusOutOfStock, prod.Status)
}

func TestMovementUseCase_Listar(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	a := f.product(t, "Amoxicilina", 50, "2")
	b := f.product(t, "Bravecto", 50, "40")

	for _, r := range []dto.RegisterMovementRequest{
		{ProductID: a.ID, Type: entity.MovementTypeIn, Quantity: 5, Notes: "proveedor norte"},
		{ProductID: b.ID, Type: entity.MovementTypeOut, Quantity: 2},
		{ProductID: a.ID, Type: entity.MovementTypeOut, Quantity: 9},
	} {
		_, err := f.movements.Register(ctx, r)
		require.NoError(t, err)
	}

	list, err := f.movements.List(ctx, dto.MovementListQuery{Type: "out", ListQuery: dto.ListQuery{SortBy: "quantity", Order: "asc"}})
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, 2, list.Items[0].Quantity)
	assert.Equal(t, 9, list.Items[1].Quantity)
	assert.Equal(t, 2, list.Page.Total)

	list, err = f.movements.List(ctx, dto.MovementListQuery{ListQuery: dto.ListQuery{Search: "NORTE"}})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Amoxicilina", list.Items[0].ProductName)

	list, err = f.movements.List(ctx, dto.MovementListQuery{ListQuery: dto.ListQuery{SortBy: "product", Order: "asc", Limit: 1, Offset: 2}})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Bravecto", list.Items[0].ProductName)
	assert.Equal(t, 3, list.Page.Total)

	list, err = f.movements.List(ctx, dto.MovementListQuery{Window: "today"})
	require.NoError(t, err)
	assert.Len(t, list.Items, 3)
}

// ─── ventas ─────────────────────────────────────────────────────────────────

func TestSaleUseCase_RegistrarDescuentaStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := f.product(t, "Alimento renal 2kg", 12, "18.40")

	res, err := f.sales.Record(ctx, dto.RecordSaleRequest{ProductID: p.ID, Quantity: 3, Customer: " Clínica Sur "})
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusCompleted, res.Sale.Status)
	assert.True(t, decimal.RequireFromString("55.20").Equal(res.Sale.Amount), "amount=%s", res.Sale.Amount)
	assert.Equal(t, "Clínica Sur", res.Sale.Customer)
	assert.Equal(t, 9, res.Product.StockLevel)
	assert.Equal(t, entity.StatusLowStock, res.Product.Status)

	amount := decimal.NewFromInt(50)
	res, err = f.sales.Record(ctx, dto.RecordSaleRequest{ProductID: p.ID, Quantity: 1, Amount: &amount, Status: entity.SaleStatusPending})
	require.NoError(t, err)
	assert.True(t, amount.Equal(res.Sale.Amount))
	assert.Equal(t, entity.SaleStatusPending, res.Sale.Status)
	assert.Equal(t, 8, f.stockOf(t, p.ID).StockLevel)
}

func TestSaleUseCase_SinStockFalla(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := f.product(t, "Collar isabelino", 0, "7")

	_, err := f.sales.Record(ctx, dto.RecordSaleRequest{ProductID: p.ID, Quantity: 1})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	sales, _ := f.store.Sales().ListAll(ctx)
	assert.Empty(t, sales)
	assert.Equal(t, entity.StatusOutOfStock, f.stockOf(t, p.ID).Status)
}

func TestSaleUseCase_EntradaInvalida(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := f.product(t, "Champú dermatológico", 30, "11")

	_, err := f.sales.Record(ctx, dto.RecordSaleRequest{ProductID: p.ID, Quantity: 1, Status: entity.SaleStatusCancelled})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	neg := decimal.NewFromInt(-1)
	_, err = f.sales.Record(ctx, dto.RecordSaleRequest{ProductID: p.ID, Quantity: 1, Amount: &neg})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.sales.Record(ctx, dto.RecordSaleRequest{ProductID: p.ID, Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Equal(t, 30, f.stockOf(t, p.ID).StockLevel)
}

func TestSaleUseCase_CambioDeEstado(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := f.product(t, "Pipeta 10-20kg", 30, "15")

	res, err := f.sales.Record(ctx, dto.RecordSaleRequest{ProductID: p.ID, Quantity: 2, Status: entity.SaleStatusPending})
	require.NoError(t, err)

	_, err = f.sales.UpdateStatus(ctx, res.Sale.ID, entity.SaleStatusCancelled)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := f.sales.UpdateStatus(ctx, res.Sale.ID, entity.SaleStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusCompleted, out.Status)
	assert.Equal(t, "Pipeta 10-20kg", out.ProductName)

	_, err = f.sales.UpdateStatus(ctx, res.Sale.ID, entity.SaleStatusPending)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 28, f.stockOf(t, p.ID).StockLevel, "el estado no toca el stock")

	_, err = f.sales.UpdateStatus(ctx, "no-existe", entity.SaleStatusCompleted)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSaleUseCase_Listar(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := f.product(t, "Antiparasitario", 40, "10")

	for _, r := range []dto.RecordSaleRequest{
		{ProductID: p.ID, Quantity: 1, Customer: "Zoe"},
		{ProductID: p.ID, Quantity: 3, Customer: "Ángel", Status: entity.SaleStatusPending},
		{ProductID: p.ID, Quantity: 2, Customer: "Bruno"},
	} {
		_, err := f.sales.Record(ctx, r)
		require.NoError(t, err)
	}

	list, err := f.sales.List(ctx, dto.SaleListQuery{ListQuery: dto.ListQuery{SortBy: "customer", Order: "asc"}})
	require.NoError(t, err)
	require.Len(t, list.Items, 3)
	assert.Equal(t, []string{"Ángel", "Bruno", "Zoe"}, []string{list.Items[0].Customer, list.Items[1].Customer, list.Items[2].Customer})

	list, err = f.sales.List(ctx, dto.SaleListQuery{Status: "pending"})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, 3, list.Items[0].Quantity)

	list, err = f.sales.List(ctx, dto.SaleListQuery{ListQuery: dto.ListQuery{SortBy: "amount"}})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(30).Equal(list.Items[0].Amount))
}

// ─── insumos ────────────────────────────────────────────────────────────────

func TestSupplyStockUseCase_Ajuste(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	s := &entity.Supply{Name: "Guantes de nitrilo", Category: "Protección", StockLevel: 12, Status: ledger.DeriveStatus(12)}
	require.NoError(t, f.store.Supplies().Create(ctx, s))

	out, err := f.supplies.Adjust(ctx, s.ID, dto.AdjustStockRequest{Delta: -4})
	require.NoError(t, err)
	assert.Equal(t, 8, out.StockLevel)
	assert.Equal(t, entity.StatusLowStock, out.Status)
	require.NotNil(t, out.LastUsed)

	_, err = f.supplies.Adjust(ctx, s.ID, dto.AdjustStockRequest{Delta: -9})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	out, err = f.supplies.Adjust(ctx, s.ID, dto.AdjustStockRequest{Delta: 5})
	require.NoError(t, err)
	assert.Equal(t, 13, out.StockLevel)
	assert.Equal(t, entity.StatusInStock, out.Status)
	assert.NotNil(t, out.LastUsed, "una entrada conserva el último uso")

	_, err = f.supplies.Adjust(ctx, "no-existe", dto.AdjustStockRequest{Delta: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ─── reposición ─────────────────────────────────────────────────────────────

func TestReplenishmentUseCase_Lista(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	uc := inventory.NewReplenishmentUseCase(f.store.Products(), f.store.Sales())

	empty, err := uc.GenerateReplenishmentList(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	a := f.product(t, "Meloxicam gotas", 3, "2.00")
	b := f.product(t, "Vacuna séxtuple", 0, "5")
	f.product(t, "Jeringas 5ml", 50, "0.30")

	_, err = f.sales.Record(ctx, dto.RecordSaleRequest{ProductID: a.ID, Quantity: 1})
	require.NoError(t, err)
	// Venta antigua: fuera de la ventana de demanda.
	require.NoError(t, f.store.Sales().Create(ctx, &entity.SaleTransaction{
		ProductID: b.ID, Quantity: 40, Amount: decimal.NewFromInt(200),
		Status: entity.SaleStatusCompleted, Date: time.Now().AddDate(0, 0, -60),
	}))

	list, err := uc.GenerateReplenishmentList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2, "los productos InStock no se sugieren")

	assert.Equal(t, a.ID, list[0].ProductID)
	assert.Equal(t, 1, list[0].Priority)
	assert.Equal(t, 1, list[0].UnitsSoldLastDays)
	assert.Equal(t, 2, list[0].CurrentStock)
	assert.Equal(t, 13, list[0].SuggestedOrderQty)
	assert.True(t, decimal.RequireFromString("26").Equal(list[0].EstimatedOrderCost))

	assert.Equal(t, b.ID, list[1].ProductID)
	assert.Equal(t, 0, list[1].UnitsSoldLastDays)
	assert.Equal(t, 15, list[1].SuggestedOrderQty)
	assert.Equal(t, entity.StatusOutOfStock, list[1].Status)
}
