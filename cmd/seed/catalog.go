package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	ledger "github.com/jhoicas/vetstock-api/internal/domain/inventory"
)

// seedNamespace espacio de nombres de los UUID v5 del catálogo: el mismo CSV genera siempre los mismos ids.
var seedNamespace = uuid.MustParse("5d0c3a52-8b7e-4f1d-9a61-3c2b7e8f4a10")

type catalogRow struct {
	ID          string
	Name        string
	Category    string
	StockLevel  int
	UnitPrice   decimal.Decimal
	BatchNumber string
	ExpiryDate  string
}

// charsetReader envuelve r con el decodificador del charset indicado.
func charsetReader(charset string, r io.Reader) (io.Reader, error) {
	switch strings.ToUpper(strings.ReplaceAll(charset, "_", "-")) {
	case "", "UTF-8", "UTF8":
		return r, nil
	case "ISO-8859-1", "ISO8859-1", "LATIN1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case "WINDOWS-1252", "CP1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	}
	return nil, fmt.Errorf("charset %q no soportado", charset)
}

// readCatalog lee el CSV de productos. Las filas sin nombre se ignoran.
func readCatalog(r io.Reader) ([]catalogRow, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("leer cabecera: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	if _, ok := idx["name"]; !ok {
		return nil, errors.New("la cabecera debe incluir la columna name")
	}
	col := func(rec []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var rows []catalogRow
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		row := catalogRow{
			Name:        col(rec, "name"),
			Category:    col(rec, "category"),
			BatchNumber: col(rec, "batch_number"),
			UnitPrice:   decimal.Zero,
		}
		if row.Name == "" {
			continue
		}
		if v := col(rec, "stock_level"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("línea %d: stock_level inválido %q", line, v)
			}
			row.StockLevel = n
		}
		if v := col(rec, "unit_price"); v != "" {
			d, err := decimal.NewFromString(strings.ReplaceAll(v, ",", "."))
			if err != nil || d.IsNegative() {
				return nil, fmt.Errorf("línea %d: unit_price inválido %q", line, v)
			}
			row.UnitPrice = d.Round(2)
		}
		if v := col(rec, "expiry_date"); v != "" {
			if _, err := time.Parse("2006-01-02", v); err != nil {
				return nil, fmt.Errorf("línea %d: expiry_date inválida %q (YYYY-MM-DD)", line, v)
			}
			row.ExpiryDate = v
		}
		row.ID = uuid.NewSHA1(seedNamespace, []byte(strings.ToLower(row.Name)+"|"+row.BatchNumber)).String()
		rows = append(rows, row)
	}
	return rows, nil
}

func categoryID(name string) string {
	return uuid.NewSHA1(seedNamespace, []byte("category|"+strings.ToLower(name))).String()
}

// writeSeedSQL escribe una migración goose con las categorías y productos del catálogo.
func writeSeedSQL(w io.Writer, rows []catalogRow, source string) error {
	cats := make(map[string]string)
	for _, r := range rows {
		if r.Category == "" {
			continue
		}
		if _, ok := cats[strings.ToLower(r.Category)]; !ok {
			cats[strings.ToLower(r.Category)] = r.Category
		}
	}
	catKeys := make([]string, 0, len(cats))
	for k := range cats {
		catKeys = append(catKeys, k)
	}
	sort.Strings(catKeys)

	var b strings.Builder
	fmt.Fprintf(&b, "-- Catálogo inicial de productos veterinarios\n-- Generado desde %s\n\n", source)
	b.WriteString("-- +goose Up\n")

	if len(catKeys) > 0 {
		b.WriteString("-- 1. Categorías\n")
		b.WriteString("INSERT INTO categories (id, name) VALUES\n")
		for i, k := range catKeys {
			sep := ","
			if i == len(catKeys)-1 {
				sep = ""
			}
			fmt.Fprintf(&b, "  ('%s', '%s')%s\n", categoryID(k), escapeSQL(cats[k]), sep)
		}
		b.WriteString("ON CONFLICT DO NOTHING;\n\n")
	}

	b.WriteString("-- 2. Productos\n")
	for _, r := range rows {
		category := "NULL"
		if r.Category != "" {
			category = fmt.Sprintf("(SELECT id FROM categories WHERE lower(name) = lower('%s'))", escapeSQL(r.Category))
		}
		expiry := "NULL"
		if r.ExpiryDate != "" {
			expiry = "'" + r.ExpiryDate + "'"
		}
		b.WriteString("INSERT INTO products (id, name, category_id, stock_level, status, unit_price, batch_number, expiry_date)\n")
		fmt.Fprintf(&b, "VALUES ('%s', '%s', %s, %d, '%s', %s, '%s', %s)\n",
			r.ID, escapeSQL(r.Name), category, r.StockLevel,
			ledger.DeriveStatus(r.StockLevel).Key(), r.UnitPrice.StringFixed(2), escapeSQL(r.BatchNumber), expiry)
		b.WriteString("ON CONFLICT (id) DO NOTHING;\n")
	}

	b.WriteString("\n-- +goose Down\n")
	if len(rows) > 0 {
		ids := make([]string, 0, len(rows))
		for _, r := range rows {
			ids = append(ids, "'"+r.ID+"'")
		}
		fmt.Fprintf(&b, "DELETE FROM products WHERE id IN (%s);\n", strings.Join(ids, ", "))
	}
	if len(catKeys) > 0 {
		ids := make([]string, 0, len(catKeys))
		for _, k := range catKeys {
			ids = append(ids, "'"+categoryID(k)+"'")
		}
		fmt.Fprintf(&b, "DELETE FROM categories c WHERE c.id IN (%s)\n  AND NOT EXISTS (SELECT 1 FROM products p WHERE p.category_id = c.id);\n", strings.Join(ids, ", "))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
