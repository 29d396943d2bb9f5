// Package excel genera el reporte XLSX de cada archivo procesado, con el
// mismo diseño que los reportes que el área de operaciones ya conoce: título,
// bandas de grupo, tabla con filas alternadas por pedido y totales al pie.
package excel

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/vatco/ingesta-servicios/internal/application/dto"
	"github.com/vatco/ingesta-servicios/internal/domain/entity"
)

// Nombres de hoja y textos fijos del reporte.
const (
	hojaConsolidado = "Consolidado"
	hojaProvision   = "PROVISION"
	hojaRecoleccion = "RECOLECCION"

	tituloConsolidado = "CONSOLIDADO GENERAL"
	tituloProvision   = "PROVISIÓN"
	tituloRecoleccion = "RECOLECCIÓN"

	bandaInfoEntrega    = "INFORMACIÓN DE ENTREGA"
	bandaDenominaciones = "DENOMINACIONES"
	bandaValores        = "VALORES"
	seccionInfoGeneral  = "INFORMACIÓN GENERAL DEL ARCHIVO"
	seccionTotales      = "TOTALES DEL ARCHIVO"
	seccionDetalle      = "DETALLE DE MOVIMIENTOS"
	etiquetaGranTotal   = "GRAN TOTAL"

	columnasTituloAncho = 10
	columnaCodigoTXT    = 1
	columnaCodigoXML    = 5
	limiteColumnaCentro = 10
	anchoColumnaMinimo  = 15.0
	anchoColumnaMaximo  = 60.0
	margenAnchoColumna  = 3.0
)

// Colores heredados de los reportes históricos.
const (
	colorTituloXML   = "4472C4"
	colorBandaInfo   = "4F81BD"
	colorBandaDenom  = "C0504D"
	colorBandaTotal  = "9BBB59"
	colorSeccion     = "D9D9D9"
	colorEncabezado  = "1F4E79"
	colorFilaNaranja = "FFE0B2"
	colorFilaAzul    = "DEEBF7"
	colorTotalFondo  = "D9E1F2"
	colorBorde       = "AAAAAA"
	colorTextoBlanco = "FFFFFF"
	colorTextoGranT  = "1F4E79"
)

// GeneradorReporte escribe los reportes XLSX de archivos TXT y XML.
type GeneradorReporte struct{}

func NewGeneradorReporte() *GeneradorReporte {
	return &GeneradorReporte{}
}

// GenerarTXT escribe el consolidado de un archivo TXT: información general,
// totales del archivo y el detalle de movimientos con las gavetas pivotadas
// en columnas de denominación y cantidad.
func (g *GeneradorReporte) GenerarTXT(ruta string, reporte *dto.ReporteTXT) error {
	if err := os.MkdirAll(filepath.Dir(ruta), 0o755); err != nil {
		return fmt.Errorf("crear carpeta del reporte: %w", err)
	}
	f := excelize.NewFile()
	defer f.Close()

	indice, err := f.NewSheet(hojaConsolidado)
	if err != nil {
		return fmt.Errorf("crear hoja %s: %w", hojaConsolidado, err)
	}
	estilos, err := crearEstilos(f)
	if err != nil {
		return fmt.Errorf("crear estilos: %w", err)
	}
	h := &hojaExcel{f: f, hoja: hojaConsolidado}

	h.celda(1, 1, tituloConsolidado)
	h.combinar(1, 1, columnasTituloAncho, 1)
	h.estilo(1, 1, 1, 1, estilos.tituloConsolidado)

	fila := 3
	fila = h.seccion(estilos, fila, seccionInfoGeneral,
		[]string{"FECHA GENERACION", "SOLICITANTE", "NIT CLIENTE"},
		[][]string{{reporte.FechaGeneracion, reporte.Solicitante, reporte.NITCliente}}, 0)

	fila = h.seccion(estilos, fila, seccionTotales,
		[]string{"FECHA GENERACION", "SOLICITANTE", "NIT CLIENTE", "TOTAL REGISTROS", "TOTAL BILLETE", "TOTAL VALOR"},
		[][]string{{
			reporte.FechaGeneracion,
			reporte.Solicitante,
			reporte.NITCliente,
			miles(int64(reporte.TotalRegistros)),
			miles(reporte.TotalBilletes),
			moneda(reporte.TotalValor),
		}}, 0)

	encabezados, datos := detalleTXT(reporte.Filas)
	h.seccion(estilos, fila, seccionDetalle, encabezados, datos, columnaCodigoTXT)

	f.SetActiveSheet(indice)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("eliminar hoja por defecto: %w", err)
	}
	if h.err != nil {
		return fmt.Errorf("armar reporte %s: %w", filepath.Base(ruta), h.err)
	}
	if err := propiedadesDoc(f, reporte.Archivo, reporte.Huella); err != nil {
		return fmt.Errorf("propiedades del reporte: %w", err)
	}
	if err := f.SaveAs(ruta); err != nil {
		return fmt.Errorf("guardar reporte %s: %w", ruta, err)
	}
	return nil
}

// GenerarXML escribe el reporte de un archivo XML: hoja PROVISION para las
// órdenes y hoja RECOLECCION para las remesas, cada una con su gran total.
// Las hojas sin registros no se crean.
func (g *GeneradorReporte) GenerarXML(ruta string, reporte *dto.ReporteXML) error {
	if len(reporte.Provision) == 0 && len(reporte.Recoleccion) == 0 {
		return fmt.Errorf("reporte de %s sin registros", reporte.Archivo)
	}
	if err := os.MkdirAll(filepath.Dir(ruta), 0o755); err != nil {
		return fmt.Errorf("crear carpeta del reporte: %w", err)
	}
	f := excelize.NewFile()
	defer f.Close()

	estilos, err := crearEstilos(f)
	if err != nil {
		return fmt.Errorf("crear estilos: %w", err)
	}

	activa := -1
	if len(reporte.Provision) > 0 {
		indice, err := hojaElementosXML(f, estilos, hojaProvision, tituloProvision, reporte.Provision)
		if err != nil {
			return err
		}
		activa = indice
	}
	if len(reporte.Recoleccion) > 0 {
		indice, err := hojaElementosXML(f, estilos, hojaRecoleccion, tituloRecoleccion, reporte.Recoleccion)
		if err != nil {
			return err
		}
		if activa < 0 {
			activa = indice
		}
	}

	f.SetActiveSheet(activa)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("eliminar hoja por defecto: %w", err)
	}
	if err := propiedadesDoc(f, reporte.Archivo, reporte.Huella); err != nil {
		return fmt.Errorf("propiedades del reporte: %w", err)
	}
	if err := f.SaveAs(ruta); err != nil {
		return fmt.Errorf("guardar reporte %s: %w", ruta, err)
	}
	return nil
}

// propiedadesDoc deja la trazabilidad del origen en las propiedades del
// libro: el archivo procesado y su huella SHA-256.
func propiedadesDoc(f *excelize.File, archivo, huella string) error {
	desc := "Origen: " + archivo
	if huella != "" {
		desc += " | SHA-256: " + huella
	}
	return f.SetDocProps(&excelize.DocProperties{
		Creator:     "ingesta-servicios",
		Title:       archivo,
		Description: desc,
	})
}

// hojaElementosXML arma una hoja de órdenes o remesas: título, bandas de
// grupo, tabla y gran total.
func hojaElementosXML(f *excelize.File, estilos *estilosReporte, nombre, titulo string, filas []dto.FilaReporteXML) (int, error) {
	indice, err := f.NewSheet(nombre)
	if err != nil {
		return 0, fmt.Errorf("crear hoja %s: %w", nombre, err)
	}
	h := &hojaExcel{f: f, hoja: nombre}

	encabezados, datos := detalleXML(filas)
	numColumnas := len(encabezados)

	h.celda(1, 1, titulo)
	h.combinar(1, 1, numColumnas, 1)
	h.estilo(1, 1, 1, 1, estilos.tituloXML)

	// Bandas: información, denominaciones y el total GENERAL. Las columnas de
	// estado del procesamiento quedan después del total, sin banda.
	numInfo := 9
	numDenoms := len(entity.ColumnasDenominacion)
	colGeneral := numInfo + numDenoms + 1
	h.celda(1, 2, bandaInfoEntrega)
	h.combinar(1, 2, numInfo, 2)
	h.estilo(1, 2, 1, 2, estilos.bandaInfo)
	h.celda(numInfo+1, 2, bandaDenominaciones)
	h.combinar(numInfo+1, 2, numInfo+numDenoms, 2)
	h.estilo(numInfo+1, 2, numInfo+1, 2, estilos.bandaDenominaciones)
	h.celda(colGeneral, 2, bandaValores)
	h.estilo(colGeneral, 2, colGeneral, 2, estilos.bandaValores)

	h.tabla(estilos, 3, encabezados, datos, columnaCodigoXML)

	var granTotal int64
	for _, fila := range filas {
		granTotal += fila.Total
	}
	filaTotal := 3 + len(datos) + 1
	h.celda(colGeneral-1, filaTotal, etiquetaGranTotal)
	h.estilo(colGeneral-1, filaTotal, colGeneral-1, filaTotal, estilos.granTotalEtiqueta)
	h.celda(colGeneral, filaTotal, moneda(granTotal))
	h.estilo(colGeneral, filaTotal, colGeneral, filaTotal, estilos.granTotalValor)

	if h.err != nil {
		return 0, fmt.Errorf("armar hoja %s: %w", nombre, h.err)
	}
	return indice, nil
}

// detalleTXT pivota las gavetas de cada pedido en dos bloques de columnas:
// primero todas las denominaciones y luego todas las cantidades, ordenadas
// por número de gaveta. Una gaveta ausente en un pedido queda en "$0" de
// denominación y cantidad vacía.
func detalleTXT(filas []dto.FilaReporteTXT) ([]string, [][]string) {
	columnas := columnasGavetas(filas)

	encabezados := []string{
		"CODIGO", "FECHA SERVICIO", "PRIORIDAD", "CLIENTE", "SERVICIO", "CODIGO PUNTO",
		"NOMBRE PUNTO", "CIUDAD", "SUCURSAL", "TIPO RUTA", "TIPO PEDIDO", "TIPO VALOR",
		"TOTAL_VALOR", "CANT. BILLETE",
	}
	for _, col := range columnas {
		encabezados = append(encabezados, col.etiqueta+" DENOMINACION")
	}
	for _, col := range columnas {
		encabezados = append(encabezados, col.etiqueta+" CANTIDAD")
	}
	encabezados = append(encabezados, "ESTADO", "ORDEN", "MOTIVO")

	datos := make([][]string, 0, len(filas))
	for _, fila := range filas {
		porEtiqueta := gavetasPorEtiqueta(fila)
		valores := []string{
			fila.Codigo, fila.FechaServicio, fila.Prioridad, fila.Cliente, fila.Servicio,
			fila.CodigoPunto, fila.NombrePunto, fila.Ciudad, fila.Sucursal,
			fila.TipoRuta, fila.TipoPedido, fila.TipoValor,
			moneda(fila.TotalValor), miles(fila.CantBilletes),
		}
		for _, col := range columnas {
			if gaveta, ok := porEtiqueta[col.etiqueta]; ok {
				valores = append(valores, moneda(gaveta.Denominacion))
			} else {
				valores = append(valores, "$0")
			}
		}
		for _, col := range columnas {
			if gaveta, ok := porEtiqueta[col.etiqueta]; ok {
				valores = append(valores, miles(gaveta.Cantidad))
			} else {
				valores = append(valores, "")
			}
		}
		valores = append(valores, fila.Estado, fila.Orden, fila.Motivo)
		datos = append(datos, valores)
	}
	return encabezados, datos
}

// detalleXML arma la tabla de una hoja XML: columnas de información, una
// columna por denominación del catálogo, el total GENERAL y el resultado del
// procesamiento.
func detalleXML(filas []dto.FilaReporteXML) ([]string, [][]string) {
	encabezados := []string{
		"ID", "FECHA DE ENTREGA", "RANGO", "ENTIDAD", "CODIGO",
		"NOMBRE PUNTO", "TIPO DE SERVICIO", "TRANSPORTADORA", "CIUDAD",
	}
	for _, codigo := range entity.ColumnasDenominacion {
		encabezados = append(encabezados, etiquetaDenominacion(codigo))
	}
	encabezados = append(encabezados, "GENERAL", "ESTADO", "ORDEN", "MOTIVO")

	datos := make([][]string, 0, len(filas))
	for _, fila := range filas {
		valores := []string{
			fila.ID, fila.FechaEntrega, fila.Rango, fila.Entidad, fila.Codigo,
			fila.NombrePunto, fila.TipoServicio, fila.Transportadora, fila.Ciudad,
		}
		for _, codigo := range entity.ColumnasDenominacion {
			valores = append(valores, moneda(fila.Denominaciones[codigo]))
		}
		valores = append(valores, moneda(fila.Total), fila.Estado, fila.Orden, fila.Motivo)
		datos = append(datos, valores)
	}
	return encabezados, datos
}

type columnaGaveta struct {
	numero   int
	etiqueta string
}

func columnasGavetas(filas []dto.FilaReporteTXT) []columnaGaveta {
	vistas := make(map[string]bool)
	var columnas []columnaGaveta
	for _, fila := range filas {
		for _, gaveta := range fila.Gavetas {
			etiqueta := etiquetaGaveta(gaveta)
			if !vistas[etiqueta] {
				vistas[etiqueta] = true
				columnas = append(columnas, columnaGaveta{numero: gaveta.Numero, etiqueta: etiqueta})
			}
		}
	}
	sort.Slice(columnas, func(i, j int) bool {
		if columnas[i].numero != columnas[j].numero {
			return columnas[i].numero < columnas[j].numero
		}
		return columnas[i].etiqueta < columnas[j].etiqueta
	})
	return columnas
}

func etiquetaGaveta(gaveta dto.GavetaReporte) string {
	return fmt.Sprintf("GAV %d - %s", gaveta.Numero, gaveta.Categoria)
}

// gavetasPorEtiqueta indexa las gavetas de un pedido; ante etiquetas
// repetidas vale la primera.
func gavetasPorEtiqueta(fila dto.FilaReporteTXT) map[string]dto.GavetaReporte {
	porEtiqueta := make(map[string]dto.GavetaReporte, len(fila.Gavetas))
	for _, gaveta := range fila.Gavetas {
		etiqueta := etiquetaGaveta(gaveta)
		if _, ok := porEtiqueta[etiqueta]; !ok {
			porEtiqueta[etiqueta] = gaveta
		}
	}
	return porEtiqueta
}

// etiquetaDenominacion convierte un código del catálogo en el encabezado del
// reporte: "50000AD" queda "$50000 AD".
func etiquetaDenominacion(codigo string) string {
	for _, sufijo := range []string{"AD", "NF"} {
		if strings.HasSuffix(codigo, sufijo) {
			return "$" + strings.TrimSuffix(codigo, sufijo) + " " + sufijo
		}
	}
	return "$" + codigo
}

// moneda formatea un valor en pesos con separador de miles: $1.234.567.
func moneda(v int64) string {
	return "$" + miles(v)
}

// miles agrupa con punto cada tres dígitos, también en valores de cuatro
// cifras, como viene haciéndose en los reportes.
func miles(v int64) string {
	s := strconv.FormatInt(v, 10)
	negativo := strings.HasPrefix(s, "-")
	if negativo {
		s = s[1:]
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteByte(s[i])
	}
	if negativo {
		return "-" + b.String()
	}
	return b.String()
}

// hojaExcel acumula el primer error de la hoja para no revisar cada llamada.
type hojaExcel struct {
	f    *excelize.File
	hoja string
	err  error
}

func (h *hojaExcel) celda(col, fila int, valor any) {
	if h.err != nil {
		return
	}
	nombre, err := excelize.CoordinatesToCellName(col, fila)
	if err != nil {
		h.err = err
		return
	}
	h.err = h.f.SetCellValue(h.hoja, nombre, valor)
}

func (h *hojaExcel) combinar(col1, fila1, col2, fila2 int) {
	if h.err != nil {
		return
	}
	desde, err := excelize.CoordinatesToCellName(col1, fila1)
	if err != nil {
		h.err = err
		return
	}
	hasta, err := excelize.CoordinatesToCellName(col2, fila2)
	if err != nil {
		h.err = err
		return
	}
	h.err = h.f.MergeCell(h.hoja, desde, hasta)
}

func (h *hojaExcel) estilo(col1, fila1, col2, fila2, id int) {
	if h.err != nil {
		return
	}
	desde, err := excelize.CoordinatesToCellName(col1, fila1)
	if err != nil {
		h.err = err
		return
	}
	hasta, err := excelize.CoordinatesToCellName(col2, fila2)
	if err != nil {
		h.err = err
		return
	}
	h.err = h.f.SetCellStyle(h.hoja, desde, hasta, id)
}

// seccion escribe un bloque del consolidado: encabezado de sección gris,
// tabla estilizada y una fila en blanco. Devuelve la siguiente fila libre.
func (h *hojaExcel) seccion(estilos *estilosReporte, fila int, titulo string, encabezados []string, datos [][]string, colCodigo int) int {
	h.celda(1, fila, titulo)
	h.combinar(1, fila, len(encabezados), fila)
	h.estilo(1, fila, 1, fila, estilos.seccion)
	fila++
	h.tabla(estilos, fila, encabezados, datos, colCodigo)
	return fila + 1 + len(datos) + 1
}

// tabla escribe encabezados y datos a partir de filaEncabezado, alternando el
// relleno de las filas cada vez que cambia el valor de la columna colCodigo
// (cero deja todas iguales), y ajusta el ancho de las columnas al contenido.
func (h *hojaExcel) tabla(estilos *estilosReporte, filaEncabezado int, encabezados []string, datos [][]string, colCodigo int) {
	for c, nombre := range encabezados {
		h.celda(c+1, filaEncabezado, nombre)
	}
	h.estilo(1, filaEncabezado, len(encabezados), filaEncabezado, estilos.encabezado)

	usarNaranja := true
	codigoActual := ""
	primeraFila := true
	for i, valores := range datos {
		numFila := filaEncabezado + 1 + i
		if colCodigo > 0 {
			codigo := valores[colCodigo-1]
			if primeraFila || codigo != codigoActual {
				codigoActual = codigo
				usarNaranja = !usarNaranja
				primeraFila = false
			}
		}
		for c, valor := range valores {
			h.celda(c+1, numFila, valor)
			h.estilo(c+1, numFila, c+1, numFila, estilos.fila(usarNaranja, c+1 <= limiteColumnaCentro))
		}
	}
	h.ajustarAnchos(encabezados, datos)
}

func (h *hojaExcel) ajustarAnchos(encabezados []string, datos [][]string) {
	if h.err != nil {
		return
	}
	for c := range encabezados {
		mayor := utf8.RuneCountInString(encabezados[c])
		for _, valores := range datos {
			if c < len(valores) {
				if n := utf8.RuneCountInString(valores[c]); n > mayor {
					mayor = n
				}
			}
		}
		ancho := float64(mayor) + margenAnchoColumna
		if ancho > anchoColumnaMaximo {
			ancho = anchoColumnaMaximo
		}
		if ancho < anchoColumnaMinimo {
			ancho = anchoColumnaMinimo
		}
		letra, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			h.err = err
			return
		}
		if err := h.f.SetColWidth(h.hoja, letra, letra, ancho); err != nil {
			h.err = err
			return
		}
	}
}

// estilosReporte junta los identificadores de estilo de un archivo.
type estilosReporte struct {
	tituloConsolidado   int
	tituloXML           int
	seccion             int
	bandaInfo           int
	bandaDenominaciones int
	bandaValores        int
	encabezado          int
	naranjaCentro       int
	naranjaIzquierda    int
	azulCentro          int
	azulIzquierda       int
	granTotalEtiqueta   int
	granTotalValor      int
}

func (e *estilosReporte) fila(naranja, centrada bool) int {
	switch {
	case naranja && centrada:
		return e.naranjaCentro
	case naranja:
		return e.naranjaIzquierda
	case centrada:
		return e.azulCentro
	}
	return e.azulIzquierda
}

func crearEstilos(f *excelize.File) (*estilosReporte, error) {
	var err error
	nuevo := func(s *excelize.Style) int {
		if err != nil {
			return 0
		}
		id, e := f.NewStyle(s)
		if e != nil {
			err = e
		}
		return id
	}

	centrado := &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true}
	izquierda := &excelize.Alignment{Horizontal: "left", Vertical: "center"}

	estilos := &estilosReporte{
		tituloConsolidado: nuevo(&excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 14},
			Alignment: centrado,
		}),
		tituloXML: nuevo(&excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 14, Color: colorTextoBlanco},
			Fill:      relleno(colorTituloXML),
			Alignment: centrado,
		}),
		seccion: nuevo(&excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 12},
			Fill:      relleno(colorSeccion),
			Alignment: centrado,
		}),
		bandaInfo:           nuevo(estiloBanda(colorBandaInfo)),
		bandaDenominaciones: nuevo(estiloBanda(colorBandaDenom)),
		bandaValores:        nuevo(estiloBanda(colorBandaTotal)),
		encabezado: nuevo(&excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: colorTextoBlanco},
			Fill:      relleno(colorEncabezado),
			Border:    bordesFinos(),
			Alignment: centrado,
		}),
		naranjaCentro:    nuevo(estiloFila(colorFilaNaranja, centrado)),
		naranjaIzquierda: nuevo(estiloFila(colorFilaNaranja, izquierda)),
		azulCentro:       nuevo(estiloFila(colorFilaAzul, centrado)),
		azulIzquierda:    nuevo(estiloFila(colorFilaAzul, izquierda)),
		granTotalEtiqueta: nuevo(&excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: colorTextoGranT},
			Alignment: &excelize.Alignment{Horizontal: "right", Vertical: "center"},
		}),
		granTotalValor: nuevo(&excelize.Style{
			Font: &excelize.Font{Bold: true, Size: 11},
			Fill: relleno(colorTotalFondo),
			Border: []excelize.Border{
				{Type: "top", Style: 2, Color: "000000"},
				{Type: "bottom", Style: 2, Color: "000000"},
			},
		}),
	}
	return estilos, err
}

func estiloBanda(color string) *excelize.Style {
	return &excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: colorTextoBlanco},
		Fill:      relleno(color),
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	}
}

func estiloFila(color string, alineacion *excelize.Alignment) *excelize.Style {
	return &excelize.Style{
		Fill:      relleno(color),
		Border:    bordesFinos(),
		Alignment: alineacion,
	}
}

func relleno(color string) excelize.Fill {
	return excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}}
}

func bordesFinos() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Style: 1, Color: colorBorde},
		{Type: "right", Style: 1, Color: colorBorde},
		{Type: "top", Style: 1, Color: colorBorde},
		{Type: "bottom", Style: 1, Color: colorBorde},
	}
}
