package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/vetstock-api/internal/application/dto"
	"github.com/jhoicas/vetstock-api/internal/domain/entity"
	ledger "github.com/jhoicas/vetstock-api/internal/domain/inventory"
)

// SupplyStockUseCase ajusta el stock de insumos operativos con las mismas reglas del ledger.
// Los insumos no llevan historial de movimientos; una salida actualiza last_used.
type SupplyStockUseCase struct {
	txRunner TxRunner
}

// NewSupplyStockUseCase construye el caso de uso.
func NewSupplyStockUseCase(txRunner TxRunner) *SupplyStockUseCase {
	return &SupplyStockUseCase{txRunner: txRunner}
}

// Adjust aplica un delta con signo al insumo.
func (uc *SupplyStockUseCase) Adjust(ctx context.Context, supplyID string, in dto.AdjustStockRequest) (*dto.SupplyResponse, error) {
	typ, qty, err := splitDelta(in.Delta)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	var out dto.SupplyResponse
	err = uc.txRunner.Run(ctx, func(tx TxRepos) error {
		supply, err := tx.Supplies.GetForUpdate(ctx, supplyID)
		if err != nil {
			return err
		}
		lvl, err := ledger.ApplyMovement(supply.StockLevel, typ, qty)
		if err != nil {
			return err
		}
		var lastUsed *time.Time
		if typ == entity.MovementTypeOut {
			lastUsed = &now
			supply.LastUsed = &now
		}
		if err := tx.Supplies.UpdateStock(ctx, supply.ID, lvl.StockLevel, lvl.Status, lastUsed, now); err != nil {
			return err
		}
		supply.StockLevel = lvl.StockLevel
		supply.Status = lvl.Status
		supply.UpdatedAt = now
		out = dto.ToSupplyResponse(supply)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
