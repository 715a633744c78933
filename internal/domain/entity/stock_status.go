package entity

import "fmt"

// StockStatus indicador de salud de stock. Siempre derivado del nivel de stock
// por el ledger (inventory.DeriveStatus); nunca lo fija un cliente.
type StockStatus uint8

const (
	StatusOutOfStock StockStatus = iota
	StatusLowStock
	StatusInStock
)

var stockStatusNames = [...]string{
	StatusOutOfStock: "Out of Stock",
	StatusLowStock:   "Low Stock",
	StatusInStock:    "In Stock",
}

func (s StockStatus) String() string {
	if !s.Valid() {
		return fmt.Sprintf("StockStatus(%d)", uint8(s))
	}
	return stockStatusNames[s]
}

// Valid indica si el valor pertenece al conjunto cerrado.
func (s StockStatus) Valid() bool {
	return int(s) < len(stockStatusNames)
}

// MarshalText serializa con la etiqueta visible ("In Stock", ...), usada en JSON y en la columna status.
func (s StockStatus) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("estado de stock inválido: %d", uint8(s))
	}
	return []byte(stockStatusNames[s]), nil
}

func (s *StockStatus) UnmarshalText(b []byte) error {
	v, err := ParseStockStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseStockStatus convierte la etiqueta textual al enum.
func ParseStockStatus(v string) (StockStatus, error) {
	for i, name := range stockStatusNames {
		if name == v {
			return StockStatus(i), nil
		}
	}
	return 0, fmt.Errorf("estado de stock desconocido: %q", v)
}

var stockStatusKeys = [...]string{
	StatusOutOfStock: "out_of_stock",
	StatusLowStock:   "low_stock",
	StatusInStock:    "in_stock",
}

// Key clave estable para filtros de consulta ("in_stock", "low_stock", "out_of_stock").
func (s StockStatus) Key() string {
	if !s.Valid() {
		return ""
	}
	return stockStatusKeys[s]
}

// ParseStockStatusKey convierte una clave de filtro al enum.
func ParseStockStatusKey(k string) (StockStatus, bool) {
	for i, key := range stockStatusKeys {
		if key == k {
			return StockStatus(i), true
		}
	}
	return 0, false
}
