// seed_ciudades genera el script SQL para poblar adm_ciudades a partir del
// XML oficial de municipios DANE (Municipios.xml). En producción adm_ciudades
// pertenece al CGS y es de solo lectura; el script es para levantar una base
// de referencias local de desarrollo.
//
// Uso: go run ./cmd/seed_ciudades [ruta/Municipios.xml]
// Por defecto busca Municipios.xml en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/seed_adm_ciudades.sql
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

// valor es un municipio del XML: cod trae el código DANE completo (11001).
type valor struct {
	Cod    string `xml:"cod,attr"`
	Nombre string `xml:"nombre,attr"`
}

func main() {
	xmlPath := "Municipios.xml"
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

	// Ciudades únicas por código, ordenadas para salida estable.
	porCodigo := make(map[string]string)
	for _, v := range p.Tabla.Valores {
		cod := strings.TrimSpace(v.Cod)
		nombre := strings.TrimSpace(v.Nombre)
		if cod == "" || nombre == "" {
			continue
		}
		porCodigo[cod] = nombre
	}
	if len(porCodigo) == 0 {
		fmt.Fprintln(os.Stderr, "El XML no trae municipios")
		os.Exit(1)
	}
	var codigos []string
	for c := range porCodigo {
		codigos = append(codigos, c)
	}
	sort.Strings(codigos)

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "seed_adm_ciudades.sql")
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Crear carpeta: %v\n", err)
		os.Exit(1)
	}
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Municipios Colombia (código DANE) para la base de referencias local.\n")
	out.WriteString("-- Generado desde Municipios.xml con cmd/seed_ciudades.\n\n")
	out.WriteString("INSERT INTO adm_ciudades (cod_ciudad, ciudad) VALUES\n")
	for i, c := range codigos {
		sep := ","
		if i == len(codigos)-1 {
			sep = ""
		}
		fmt.Fprintf(out, "  (%s, '%s')%s\n", c, escapeSQL(porCodigo[c]), sep)
	}
	out.WriteString("ON CONFLICT (cod_ciudad) DO UPDATE SET ciudad = EXCLUDED.ciudad;\n")

	fmt.Printf("Generado %s: %d municipios\n", outPath, len(codigos))
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
