// Package pdf genera el acta de una corrida de ingesta: el resumen en PDF de
// qué archivos entraron, con qué huella y con qué desenlace.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: VATCO + título del acta  │  Inicio + Emisión       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: archivos / fallidos / aceptados / rechazados      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Archivo | Tipo | Aceptados | Rechazados | Resultado │
//	│         SHA-256 y motivo de falla en línea menor            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  LEYENDA                                                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/vatco/ingesta-servicios/internal/application/procesamiento"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimario = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGris     = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generador ─────────────────────────────────────────────────────────────────

// GeneradorActa produce el acta de corrida usando Maroto v2.
type GeneradorActa struct{}

// NewGeneradorActa construye el generador.
func NewGeneradorActa() *GeneradorActa { return &GeneradorActa{} }

// Generar construye el acta y devuelve sus bytes.
func (g *GeneradorActa) Generar(
	cifras procesamiento.CifrasResumen,
	entradas []procesamiento.EntradaResumen,
	simulado bool,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Acta de Procesamiento de Archivos", true).
		WithAuthor("VATCO", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(encabezadoActa(cifras, simulado))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimario, Thickness: 0.5}))
	m.AddRows(resumenRow(cifras))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimario, Thickness: 0.3}))

	m.AddRows(tablaEncabezadoRow())
	m.AddRows(filasArchivos(entradas)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGris, Thickness: 0.3}))
	m.AddRows(leyendaRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar acta: %w", err)
	}
	return doc.GetBytes(), nil
}

// Guardar genera el acta y la escribe en la carpeta de actas con un nombre
// fechado. Devuelve la ruta escrita.
func (g *GeneradorActa) Guardar(
	carpeta string,
	cifras procesamiento.CifrasResumen,
	entradas []procesamiento.EntradaResumen,
	simulado bool,
) (string, error) {
	datos, err := g.Generar(cifras, entradas, simulado)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(carpeta, 0o755); err != nil {
		return "", fmt.Errorf("pdf: carpeta de actas: %w", err)
	}
	ruta := filepath.Join(carpeta, fmt.Sprintf("acta_ingesta_%s.pdf", time.Now().Format("20060102_150405")))
	if err := os.WriteFile(ruta, datos, 0o644); err != nil {
		return "", fmt.Errorf("pdf: escribir acta: %w", err)
	}
	return ruta, nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// encabezadoActa: empresa + título (izq) e inicio/emisión de la corrida (der).
func encabezadoActa(cifras procesamiento.CifrasResumen, simulado bool) core.Row {
	titulo := "ACTA DE PROCESAMIENTO DE ARCHIVOS"
	if simulado {
		titulo = "ACTA DE PROCESAMIENTO (SIMULACIÓN)"
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New("VATCO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimario, Top: 1,
			}),
			text.New(titulo, props.Text{
				Size: 9, Top: 9, Color: colorGris,
			}),
		),
		col.New(5).Add(
			text.New("SERVICIO DE INGESTA CGS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimario, Top: 1,
			}),
			text.New("Inicio: "+cifras.Inicio.Format("02/01/2006 15:04:05"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGris,
			}),
			text.New("Emisión: "+time.Now().Format("02/01/2006 15:04:05"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGris,
			}),
		),
	)
}

// resumenRow: cifras agregadas de la corrida en una línea.
func resumenRow(cifras procesamiento.CifrasResumen) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("RESUMEN DE LA CORRIDA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimario, Top: 1,
			}),
			text.New(fmt.Sprintf("Archivos: %d   |   Fallidos: %d   |   Registros aceptados: %d   |   Registros rechazados: %d",
				cifras.Archivos, cifras.Fallidos, cifras.Aceptados, cifras.Rechazados,
			), props.Text{Size: 8, Top: 7, Color: colorGris}),
		),
	)
}

// tablaEncabezadoRow: cabecera de la tabla de archivos.
func tablaEncabezadoRow() core.Row {
	h := func(etiqueta string, ancho int, a align.Type) core.Col {
		return col.New(ancho).Add(text.New(etiqueta, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimario, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Archivo", 5, align.Left),
		h("Tipo", 1, align.Center),
		h("Aceptados", 2, align.Right),
		h("Rechazados", 2, align.Right),
		h("Resultado", 2, align.Center),
	)
}

// filasArchivos: una fila por archivo, con la huella SHA-256 y el motivo de
// falla en líneas menores debajo.
func filasArchivos(entradas []procesamiento.EntradaResumen) []core.Row {
	if len(entradas) == 0 {
		return []core.Row{row.New(8).Add(col.New(12).Add(
			text.New("Sin archivos procesados en la corrida.", props.Text{
				Size: 8, Align: align.Center, Color: colorGris, Top: 2,
			}),
		))}
	}
	filas := make([]core.Row, 0, len(entradas)*2)
	for _, e := range entradas {
		resultado := "PROCESADO"
		if e.Error != "" {
			resultado = "FALLIDO"
		}
		filas = append(filas, row.New(6).Add(
			col.New(5).Add(text.New(e.Archivo, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(1).Add(text.New(strings.ToUpper(e.Tipo), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(strconv.Itoa(e.Aceptados), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(strconv.Itoa(e.Rechazados), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(resultado, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1})),
		))
		if e.Huella != "" {
			filas = append(filas, row.New(4).Add(col.New(12).Add(
				text.New("SHA-256: "+e.Huella, props.Text{Size: 6.5, Color: colorGris, Top: 0.5, Left: 3}),
			)))
		}
		if e.Error != "" {
			filas = append(filas, row.New(4).Add(col.New(12).Add(
				text.New("Motivo: "+e.Error, props.Text{Size: 6.5, Color: colorGris, Top: 0.5, Left: 3}),
			)))
		}
	}
	return filas
}

// leyendaRow: nota final del acta.
func leyendaRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"Acta generada automáticamente por el servicio de ingesta de VATCO. "+
				"La huella SHA-256 identifica el contenido exacto de cada archivo recibido.",
			props.Text{Size: 6.5, Color: colorGris, Top: 2},
		),
	))
}
