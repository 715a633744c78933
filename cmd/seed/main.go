// seed genera una migración SQL con el catálogo inicial de productos a partir de un CSV.
//
// Uso: go run ./cmd/seed [-charset ISO-8859-1] [-out ruta.sql] catalogo.csv
// Columnas: name, category, stock_level, unit_price, batch_number, expiry_date (YYYY-MM-DD).
// Por defecto escribe internal/infrastructure/postgres/migrations/00002_seed_catalog.sql
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
)

func main() {
	charset := flag.String("charset", "UTF-8", "codificación del CSV (UTF-8, ISO-8859-1, WINDOWS-1252)")
	outFlag := flag.String("out", "", "ruta del .sql de salida")
	flag.Parse()

	csvPath := "catalogo.csv"
	if flag.NArg() > 0 {
		csvPath = flag.Arg(0)
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	in, err := charsetReader(*charset, f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Charset: %v\n", err)
		os.Exit(1)
	}
	rows, err := readCatalog(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer catálogo: %v\n", err)
		os.Exit(1)
	}

	outPath := *outFlag
	if outPath == "" {
		outPath = filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "migrations", "00002_seed_catalog.sql")
	}
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSeedSQL(out, rows, filepath.Base(csvPath)); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d productos\n", outPath, len(rows))
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
