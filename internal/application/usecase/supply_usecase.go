package usecase

import (
	"context"
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

// SupplyUseCase casos de uso CRUD para insumos operativos.
type SupplyUseCase struct {
	repo repository.SupplyRepository
}

// NewSupplyUseCase construye el caso de uso.
func NewSupplyUseCase(repo repository.SupplyRepository) *SupplyUseCase {
	return &SupplyUseCase{repo: repo}
}

// Create crea un insumo con su stock inicial.
func (uc *SupplyUseCase) Create(ctx context.Context, in dto.CreateSupplyRequest) (*dto.SupplyResponse, error) {
	name := strings.TrimSpace(in.Name)
	category := strings.TrimSpace(in.Category)
	if name == "" || category == "" {
		return nil, fmt.Errorf("%w: nombre y categoría son obligatorios", domain.ErrInvalidInput)
	}
	if err := ledger.ValidateStockLevel(in.StockLevel); err != nil {
		return nil, err
	}
	now := time.Now()
	supply := &entity.Supply{
		ID:         uuid.New().String(),
		Name:       name,
		Category:   category,
		StockLevel: in.StockLevel,
		Status:     ledger.DeriveStatus(in.StockLevel),
		Location:   strings.TrimSpace(in.Location),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, supply); err != nil {
		return nil, err
	}
	out := dto.ToSupplyResponse(supply)
	return &out, nil
}

// GetByID obtiene un insumo por ID.
func (uc *SupplyUseCase) GetByID(ctx context.Context, id string) (*dto.SupplyResponse, error) {
	supply, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.ToSupplyResponse(supply)
	return &out, nil
}

// Update actualiza metadatos; el stock se ajusta con SupplyStockUseCase.
func (uc *SupplyUseCase) Update(ctx context.Context, id string, in dto.UpdateSupplyRequest) (*dto.SupplyResponse, error) {
	supply, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
		}
		supply.Name = strings.TrimSpace(*in.Name)
	}
	if in.Category != nil {
		if strings.TrimSpace(*in.Category) == "" {
			return nil, fmt.Errorf("%w: la categoría es obligatoria", domain.ErrInvalidInput)
		}
		supply.Category = strings.TrimSpace(*in.Category)
	}
	if in.Location != nil {
		supply.Location = strings.TrimSpace(*in.Location)
	}
	supply.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, supply); err != nil {
		return nil, err
	}
	out := dto.ToSupplyResponse(supply)
	return &out, nil
}

// Delete elimina un insumo por ID.
func (uc *SupplyUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// List filtra por categoría y estado, busca por nombre o ubicación, ordena y pagina.
func (uc *SupplyUseCase) List(ctx context.Context, q dto.SupplyListQuery) (*dto.SupplyListResponse, error) {
	supplies, err := uc.repo.ListAll(ctx)
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

	col := query.NewCollator()
	match := query.NewMatcher(q.Search)
	filtered := make([]*entity.Supply, 0, len(supplies))
	for _, s := range supplies {
		if q.Category != "" && col.Compare(s.Category, q.Category) != 0 {
			continue
		}
		if filterStatus && s.Status != status {
			continue
		}
		if !match.Match(s.Name, s.Location) {
			continue
		}
		filtered = append(filtered, s)
	}

	var cmpFn func(a, b *entity.Supply) int
	switch q.SortBy {
	case "category":
		cmpFn = func(a, b *entity.Supply) int { return col.Compare(a.Category, b.Category) }
	case "stock_level":
		cmpFn = func(a, b *entity.Supply) int { return query.CompareInts(a.StockLevel, b.StockLevel) }
	case "location":
		cmpFn = func(a, b *entity.Supply) int { return col.Compare(a.Location, b.Location) }
	case "last_used":
		cmpFn = func(a, b *entity.Supply) int { return query.CompareTimes(a.LastUsed, b.LastUsed) }
	default:
		cmpFn = func(a, b *entity.Supply) int { return col.Compare(a.Name, b.Name) }
	}
	desc := q.Descending()
	if q.Order == "" && (q.SortBy == "" || q.SortBy == "name" || q.SortBy == "category" || q.SortBy == "location") {
		desc = false
	}
	query.Sort(filtered, desc, cmpFn)

	page := query.Paginate(filtered, q.Limit, q.Offset)
	items := make([]dto.SupplyResponse, 0, len(page))
	for _, s := range page {
		items = append(items, dto.ToSupplyResponse(s))
	}
	return &dto.SupplyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: len(filtered)},
	}, nil
}
