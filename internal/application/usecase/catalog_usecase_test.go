package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vetstock-api/internal/application/dto"
	"github.com/jhoicas/vetstock-api/internal/application/usecase"
	"github.com/jhoicas/vetstock-api/internal/domain"
	"github.com/jhoicas/vetstock-api/internal/domain/entity"
	ledger "github.com/jhoicas/vetstock-api/internal/domain/inventory"
	"github.com/jhoicas/vetstock-api/internal/infrastructure/memory"
)

func ptr[T any](v T) *T { return &v }

func names(items []dto.ProductResponse) []string {
	out := make([]string, 0, len(items))
	for _, p := range items {
		out = append(out, p.Name)
	}
	return out
}

// ─── productos ──────────────────────────────────────────────────────────────

func TestProductUseCase_CreateDerivaEstado(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	uc := usecase.NewProductUseCase(s.Products(), s.Categories())

	tests := []struct {
		stock int
		want  entity.StockStatus
	}{
		{0, entity.StatusOutOfStock},
		{1, entity.StatusLowStock},
		{10, entity.StatusLowStock},
		{11, entity.StatusInStock},
	}
	for _, tt := range tests {
		out, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Producto", StockLevel: tt.stock})
		require.NoError(t, err)
		assert.Equal(t, tt.want, out.Status, "stock %d", tt.stock)
	}

	_, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Negativo", StockLevel: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "Enorme", StockLevel: ledger.MaxStockLevel + 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "Sin categoría", CategoryID: "c4a1e2d0-0000-4000-8000-000000000000"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "Fecha rara", ExpiryDate: "31/12/2027"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUseCase_UpdateNoTocaStock(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	uc := usecase.NewProductUseCase(s.Products(), s.Categories())

	created, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Enrofloxacina", StockLevel: 25, UnitPrice: decimal.NewFromInt(8)})
	require.NoError(t, err)

	out, err := uc.Update(ctx, created.ID, dto.UpdateProductRequest{
		Name:       ptr("Enrofloxacina 50mg"),
		ExpiryDate: ptr("2027-03-01"),
		UnitPrice:  ptr(decimal.RequireFromString("9.90")),
	})
	require.NoError(t, err)
	assert.Equal(t, "Enrofloxacina 50mg", out.Name)
	assert.Equal(t, "2027-03-01", out.ExpiryDate)
	assert.Equal(t, 25, out.StockLevel)
	assert.Equal(t, entity.StatusInStock, out.Status)

	_, err = uc.Update(ctx, "no-existe", dto.UpdateProductRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUseCase_Listar(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	cats := usecase.NewCategoryUseCase(s.Categories(), s.Products())
	uc := usecase.NewProductUseCase(s.Products(), s.Categories())

	antibioticos, err := cats.Create(ctx, dto.CategoryRequest{Name: "Antibióticos"})
	require.NoError(t, err)

	for _, in := range []dto.CreateProductRequest{
		{Name: "Zinc pasta", StockLevel: 0, BatchNumber: "L-77"},
		{Name: "amoxicilina", StockLevel: 4, CategoryID: antibioticos.ID, ExpiryDate: "2026-12-01"},
		{Name: "Ñandú vitaminas", StockLevel: 40},
		{Name: "Cefalexina", StockLevel: 60, CategoryID: antibioticos.ID, ExpiryDate: "2026-06-01"},
	} {
		_, err := uc.Create(ctx, in)
		require.NoError(t, err)
	}

	list, err := uc.List(ctx, dto.ProductListQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"amoxicilina", "Cefalexina", "Ñandú vitaminas", "Zinc pasta"}, names(list.Items))

	list, err = uc.List(ctx, dto.ProductListQuery{CategoryID: antibioticos.ID, ListQuery: dto.ListQuery{SortBy: "expiry_date", Order: "asc"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Cefalexina", "amoxicilina"}, names(list.Items))

	list, err = uc.List(ctx, dto.ProductListQuery{Status: "low_stock"})
	require.NoError(t, err)
	assert.Equal(t, []string{"amoxicilina"}, names(list.Items))

	list, err = uc.List(ctx, dto.ProductListQuery{ListQuery: dto.ListQuery{Search: "l-77"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Zinc pasta"}, names(list.Items))

	list, err = uc.List(ctx, dto.ProductListQuery{ListQuery: dto.ListQuery{SortBy: "stock_level", Limit: 2}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Cefalexina", "Ñandú vitaminas"}, names(list.Items))
	assert.Equal(t, 4, list.Page.Total)

	_, err = uc.List(ctx, dto.ProductListQuery{Status: "agotado"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─── categorías ─────────────────────────────────────────────────────────────

func TestCategoryUseCase_BorrarEnUso(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	cats := usecase.NewCategoryUseCase(s.Categories(), s.Products())
	products := usecase.NewProductUseCase(s.Products(), s.Categories())

	c, err := cats.Create(ctx, dto.CategoryRequest{Name: "Antiparasitarios"})
	require.NoError(t, err)
	_, err = cats.Create(ctx, dto.CategoryRequest{Name: "ANTIPARASITARIOS"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	p, err := products.Create(ctx, dto.CreateProductRequest{Name: "Milbemax", CategoryID: c.ID})
	require.NoError(t, err)

	err = cats.Delete(ctx, c.ID)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	var inUse *domain.CategoryInUseError
	require.ErrorAs(t, err, &inUse)
	assert.Equal(t, 1, inUse.Count)

	require.NoError(t, products.Delete(ctx, p.ID))
	require.NoError(t, cats.Delete(ctx, c.ID))
	assert.ErrorIs(t, cats.Delete(ctx, c.ID), domain.ErrNotFound)
}

func TestCategoryUseCase_ListarYRenombrar(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	cats := usecase.NewCategoryUseCase(s.Categories(), s.Products())

	v, err := cats.Create(ctx, dto.CategoryRequest{Name: "Vacunas"})
	require.NoError(t, err)
	_, err = cats.Create(ctx, dto.CategoryRequest{Name: "alimentos"})
	require.NoError(t, err)

	out, err := cats.Update(ctx, v.ID, dto.CategoryRequest{Name: "Biológicos", Description: "vacunas y sueros"})
	require.NoError(t, err)
	assert.Equal(t, "Biológicos", out.Name)

	_, err = cats.Update(ctx, v.ID, dto.CategoryRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := cats.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "alimentos", list[0].Name)
	assert.Equal(t, "Biológicos", list[1].Name)
}

// ─── insumos ────────────────────────────────────────────────────────────────

func TestSupplyUseCase_CRUDYListado(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	uc := usecase.NewSupplyUseCase(s.Supplies())

	guantes, err := uc.Create(ctx, dto.CreateSupplyRequest{Name: "Guantes", Category: "Protección", StockLevel: 50, Location: "Quirófano"})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInStock, guantes.Status)
	_, err = uc.Create(ctx, dto.CreateSupplyRequest{Name: "Alcohol", Category: "Limpieza", StockLevel: 3, Location: "Bodega"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateSupplyRequest{Name: "Sin categoría"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, dto.CreateSupplyRequest{Name: "Jeringas", Category: "Descartables", StockLevel: ledger.MaxStockLevel + 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := uc.Update(ctx, guantes.ID, dto.UpdateSupplyRequest{Location: ptr("Consultorio 2")})
	require.NoError(t, err)
	assert.Equal(t, "Consultorio 2", out.Location)
	assert.Equal(t, 50, out.StockLevel)

	list, err := uc.List(ctx, dto.SupplyListQuery{Status: "low_stock"})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Alcohol", list.Items[0].Name)

	list, err = uc.List(ctx, dto.SupplyListQuery{Category: "PROTECCIÓN"})
	require.NoError(t, err)
	require.Len(t, list.Items, 1, "la categoría se compara sin distinguir mayúsculas")

	list, err = uc.List(ctx, dto.SupplyListQuery{ListQuery: dto.ListQuery{Search: "consultorio"}})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)

	require.NoError(t, uc.Delete(ctx, guantes.ID))
	_, err = uc.GetByID(ctx, guantes.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
