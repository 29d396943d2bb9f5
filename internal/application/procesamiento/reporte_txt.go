package procesamiento

import (
	"strconv"
	"strings"
	"time"

	"github.com/vatco/ingesta-servicios/internal/application/dto"
	"github.com/vatco/ingesta-servicios/internal/domain/entity"
)

// armarReporteTXT arma la entrada del consolidado XLSX: una fila por pedido
// con los códigos decorados contra el snapshot y el desenlace del registro.
func armarReporteTXT(ref *entity.Referencias, archivo *dto.ArchivoTXT, nombre string, resultado *dto.ResultadoArchivo) *dto.ReporteTXT {
	reporte := &dto.ReporteTXT{
		Archivo:         nombre,
		Huella:          archivo.Huella,
		FechaGeneracion: fechaArchivo(archivo.Encabezado.FechaGeneracion),
		Solicitante:     strings.TrimSpace(archivo.Encabezado.Solicitante),
		NITCliente:      strings.TrimSpace(archivo.Encabezado.NITCliente),
		TotalRegistros:  archivo.TotalRegistros,
		TotalBilletes:   archivo.TotalBilletes,
	}
	porIndice := desenlaces(resultado)
	for _, pedido := range archivo.Pedidos {
		fila := filaPedido(ref, reporte.NITCliente, pedido)
		if d, ok := porIndice[pedido.Indice]; ok {
			fila.Estado, fila.Orden, fila.Motivo = d.estado, d.orden, d.motivo
		}
		reporte.TotalValor += fila.TotalValor
		reporte.Filas = append(reporte.Filas, fila)
	}
	return reporte
}

// filaPedido decora un pedido. Los campos de presentación salen de la primera
// gaveta; el detalle económico suma todas las gavetas del pedido.
func filaPedido(ref *entity.Referencias, nit string, pedido dto.PedidoTXT) dto.FilaReporteTXT {
	primera := pedido.Gavetas[0]
	tipoRuta := entity.DescripcionTipoRuta(strings.ToUpper(strings.TrimSpace(primera.TipoRuta)))

	fila := dto.FilaReporteTXT{
		Codigo:        pedido.Codigo,
		FechaServicio: fechaArchivo(primera.FechaServicio),
		Cliente:       dto.TextoClienteNoEncontrado,
		Servicio:      servicioDecorado(primera.Servicio),
		CodigoPunto:   strings.TrimSpace(primera.CodigoPunto),
		NombrePunto:   strings.TrimSpace(primera.NombrePunto),
		Ciudad:        ciudadDecorada(ref, primera.Ciudad),
		Sucursal:      dto.TextoSucursalNoEncontrada,
		CodSucursal:   "N/A",
		TipoRuta:      tipoRuta,
		TipoPedido:    entity.DescripcionTipoPedido(strings.ToUpper(strings.TrimSpace(primera.TipoPedido))),
		TipoValor:     tipoValorDecorado(primera.TipoValor),
	}
	// La franja de prioridad solo rige en ruta diurna.
	if tipoRuta == "DIURNO" {
		fila.Prioridad = entity.DescripcionPrioridad(strings.ToUpper(strings.TrimSpace(primera.Prioridad)))
	}
	if cliente, err := ref.ClientePorNIT(nit); err == nil {
		fila.Cliente = cliente.Nombre
		if punto, err := ref.Punto(cliente.Codigo, fila.CodigoPunto); err == nil {
			fila.Sucursal = punto.Sucursal
			fila.CodSucursal = punto.CodSucursal
		}
	}
	for _, gaveta := range pedido.Gavetas {
		numero, _ := strconv.Atoi(strings.TrimSpace(gaveta.Gaveta))
		denominacion := enteroCelda(gaveta.Denominacion)
		cantidad := enteroCelda(gaveta.Cantidad)
		fila.Gavetas = append(fila.Gavetas, dto.GavetaReporte{
			Numero:       numero,
			Categoria:    categoriaDecorada(gaveta.Categoria),
			Denominacion: denominacion,
			Cantidad:     cantidad,
		})
		fila.CantBilletes += cantidad
		fila.TotalValor += denominacion * cantidad
	}
	return fila
}

// fechaArchivo convierte la fecha ddMMyyyy del archivo a dd/MM/yyyy. Una
// fecha ilegible queda en blanco.
func fechaArchivo(s string) string {
	t, err := time.Parse("02012006", strings.TrimSpace(s))
	if err != nil {
		return ""
	}
	return t.Format("02/01/2006")
}

// enteroCelda parsea un entero del archivo; lo ilegible vale cero.
func enteroCelda(s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// servicioDecorado arma la celda SERVICIO como "código - descripción". El
// código puede venir compuesto ("6-2"); describe el primer segmento.
func servicioDecorado(raw string) string {
	codigo := strings.TrimSpace(raw)
	parte, _, _ := strings.Cut(codigo, "-")
	if n, err := strconv.Atoi(strings.TrimSpace(parte)); err == nil {
		if desc, ok := entity.DescripcionServicio(n); ok {
			return codigo + " - " + desc
		}
	}
	return codigo + " - " + dto.TextoTipoNoEncontrado
}

func ciudadDecorada(ref *entity.Referencias, raw string) string {
	codigo := strings.TrimSpace(raw)
	if ciudad, err := ref.Ciudad(codigo); err == nil {
		return codigo + " - " + ciudad.Nombre
	}
	return codigo + " - " + dto.TextoCiudadNoEncontrada
}

func categoriaDecorada(raw string) string {
	if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
		if desc, ok := entity.DescripcionCategoria(n); ok {
			return desc
		}
	}
	return dto.TextoCategoriaNoEncontrada
}

func tipoValorDecorado(raw string) string {
	codigo := strings.TrimSpace(raw)
	if n, err := strconv.Atoi(codigo); err == nil {
		if divisa, ok := entity.DivisaCatalogada(n); ok {
			return codigo + " - " + divisa
		}
	}
	return codigo + " - " + dto.TextoTipoNoEncontrado
}
