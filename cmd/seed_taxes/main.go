// seed_taxes genera el script SQL que puebla la tabla paramétrica de tarifas
// de impuesto (IVA/INC) a partir del XML oficial Tarifas.xml.
//
// Uso: go run ./cmd/seed_taxes [ruta/Tarifas.xml]
// Por defecto busca Tarifas.xml en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/006_seed_tax_rates.sql
package main

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type parametros struct {
	Tabla struct {
		Valores []valor `xml:"valor"`
	} `xml:"tabla"`
}

type valor struct {
	Cod      string `xml:"cod,attr"`
	Nombre   string `xml:"nombre,attr"`
	Tarifa   string `xml:"tarifa,attr"`
	Impuesto string `xml:"impuesto,attr"`
}

func main() {
	xmlPath := "Tarifas.xml"
	if len(os.Args) > 1 {
		xmlPath = os.Args[1]
	}
	f, err := os.Open(xmlPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir XML: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var p parametros
	dec := xml.NewDecoder(f)
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		if strings.EqualFold(charset, "ISO-8859-1") || strings.EqualFold(charset, "ISO8859-1") {
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		}
		return input, nil
	}
	if err := dec.Decode(&p); err != nil {
		fmt.Fprintf(os.Stderr, "Decodificar XML: %v\n", err)
		os.Exit(1)
	}

	type tarifa struct{ cod, nombre, rate, tax string }
	var rows []tarifa
	for _, v := range p.Tabla.Valores {
		if v.Cod == "" || v.Nombre == "" || v.Tarifa == "" {
			continue
		}
		tax := v.Impuesto
		if tax == "" {
			tax = "IVA"
		}
		rows = append(rows, tarifa{
			cod:    strings.TrimSpace(v.Cod),
			nombre: strings.TrimSpace(v.Nombre),
			rate:   strings.TrimSpace(v.Tarifa),
			tax:    strings.TrimSpace(tax),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].cod < rows[j].cod })

	// Ruta del script de salida (relativa al módulo)
	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "006_seed_tax_rates.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Tarifas de impuesto (IVA/INC) Colombia\n")
	out.WriteString("-- Generado desde Tarifas.xml\n\n")
	out.WriteString("INSERT INTO tax_rates (code, name, tax_type, rate) VALUES\n")
	for i, r := range rows {
		sep := ","
		if i == len(rows)-1 {
			sep = ""
		}
		fmt.Fprintf(out, "  ('%s', '%s', '%s', %s)%s\n",
			r.cod, escapeSQL(r.nombre), escapeSQL(r.tax), r.rate, sep)
	}
	out.WriteString("ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name, tax_type = EXCLUDED.tax_type, rate = EXCLUDED.rate;\n")

	fmt.Printf("Generado %s: %d tarifas\n", outPath, len(rows))
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
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
