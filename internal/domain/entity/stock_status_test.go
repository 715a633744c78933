package entity_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vetstock-api/internal/domain/entity"
)

func TestStockStatus_JSONUsaEtiqueta(t *testing.T) {
	b, err := json.Marshal(map[string]entity.StockStatus{"status": entity.StatusLowStock})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"Low Stock"}`, string(b))

	var out struct {
		Status entity.StockStatus `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"status":"Out of Stock"}`), &out))
	assert.Equal(t, entity.StatusOutOfStock, out.Status)
}

func TestStockStatus_EtiquetaDesconocida(t *testing.T) {
	_, err := entity.ParseStockStatus("Agotado")
	assert.Error(t, err)
	assert.False(t, entity.StockStatus(9).Valid())
}

func TestMovementType_Unmarshal(t *testing.T) {
	var mt entity.MovementType
	assert.NoError(t, mt.UnmarshalText([]byte("out")))
	assert.Equal(t, entity.MovementTypeOut, mt)
	assert.Error(t, mt.UnmarshalText([]byte("adjust")))
}
