package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/vetstock-api/internal/application/dto"
	"github.com/jhoicas/vetstock-api/internal/application/query"
	"github.com/jhoicas/vetstock-api/internal/domain"
	"github.com/jhoicas/vetstock-api/internal/domain/entity"
	ledger "github.com/jhoicas/vetstock-api/internal/domain/inventory"
	"github.com/jhoicas/vetstock-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock solo cambia vía movimientos
// y ventas; aquí se fija el stock inicial y se deriva su estado.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo}
}

// Create crea un nuevo producto con su stock inicial.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	if err := ledger.ValidateStockLevel(in.StockLevel); err != nil {
		return nil, err
	}
	if in.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
	}
	if err := uc.ensureCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	expiry, err := parseDate(in.ExpiryDate)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        name,
		CategoryID:  in.CategoryID,
		StockLevel:  in.StockLevel,
		Status:      ledger.DeriveStatus(in.StockLevel),
		UnitPrice:   in.UnitPrice,
		BatchNumber: strings.TrimSpace(in.BatchNumber),
		ExpiryDate:  expiry,
		LastUpdated: now,
		CreatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	out := dto.ToProductResponse(product)
	return &out, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.ToProductResponse(product)
	return &out, nil
}

// Update actualiza metadatos. No permite modificar stock ni estado.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
		}
		product.Name = name
	}
	if in.CategoryID != nil {
		if err := uc.ensureCategory(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = *in.CategoryID
	}
	if in.UnitPrice != nil {
		if in.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
		}
		product.UnitPrice = *in.UnitPrice
	}
	if in.BatchNumber != nil {
		product.BatchNumber = strings.TrimSpace(*in.BatchNumber)
	}
	if in.ExpiryDate != nil {
		expiry, err := parseDate(*in.ExpiryDate)
		if err != nil {
			return nil, err
		}
		product.ExpiryDate = expiry
	}
	product.LastUpdated = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	out := dto.ToProductResponse(product)
	return &out, nil
}

// Delete elimina un producto junto con su historial de movimientos y ventas.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// List filtra por categoría y estado, busca por nombre o lote, ordena y pagina.
func (uc *ProductUseCase) List(ctx context.Context, q dto.ProductListQuery) (*dto.ProductListResponse, error) {
	products, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	var status entity.StockStatus
	filterStatus := false
	if q.Status != "" {
		s, ok := entity.ParseStockStatusKey(q.Status)
		if !ok {
			return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, q.Status)
		}
		status, filterStatus = s, true
	}

	categoryNames := map[string]string{}
	if q.SortBy == "category" {
		cats, err := uc.categoryRepo.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		for _, c := range cats {
			categoryNames[c.ID] = c.Name
		}
	}

	match := query.NewMatcher(q.Search)
	filtered := make([]*entity.Product, 0, len(products))
	for _, p := range products {
		if q.CategoryID != "" && p.CategoryID != q.CategoryID {
			continue
		}
		if filterStatus && p.Status != status {
			continue
		}
		if !match.Match(p.Name, p.BatchNumber) {
			continue
		}
		filtered = append(filtered, p)
	}

	col := query.NewCollator()
	var cmpFn func(a, b *entity.Product) int
	switch q.SortBy {
	case "category":
		cmpFn = func(a, b *entity.Product) int { return col.Compare(categoryNames[a.CategoryID], categoryNames[b.CategoryID]) }
	case "stock_level":
		cmpFn = func(a, b *entity.Product) int { return query.CompareInts(a.StockLevel, b.StockLevel) }
	case "expiry_date":
		cmpFn = func(a, b *entity.Product) int { return query.CompareTimes(a.ExpiryDate, b.ExpiryDate) }
	case "last_updated":
		cmpFn = func(a, b *entity.Product) int { return a.LastUpdated.Compare(b.LastUpdated) }
	default:
		cmpFn = func(a, b *entity.Product) int { return col.Compare(a.Name, b.Name) }
	}
	// Por nombre el orden natural es ascendente.
	desc := q.Descending()
	if q.Order == "" && (q.SortBy == "" || q.SortBy == "name" || q.SortBy == "category") {
		desc = false
	}
	query.Sort(filtered, desc, cmpFn)

	page := query.Paginate(filtered, q.Limit, q.Offset)
	items := make([]dto.ProductResponse, 0, len(page))
	for _, p := range page {
		items = append(items, dto.ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: len(filtered)},
	}, nil
}

func (uc *ProductUseCase) ensureCategory(ctx context.Context, categoryID string) error {
	if categoryID == "" {
		return nil
	}
	if _, err := uc.categoryRepo.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: la categoría %s no existe", domain.ErrInvalidInput, categoryID)
		}
		return err
	}
	return nil
}

func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha %q (formato YYYY-MM-DD)", domain.ErrInvalidInput, s)
	}
	return &t, nil
}
