package entity

import "fmt"

// Conceptos de servicio (cgs_servicios.cod_concepto).
const (
	ConceptoRecoleccion      = 1
	ConceptoProvisionOficina = 2
	ConceptoProvisionATM     = 3
)

// EsProvision indica si el concepto declara valores de antemano. En las
// recolecciones los valores se conocen solo después del conteo.
func EsProvision(codConcepto int) bool {
	return codConcepto == ConceptoProvisionOficina || codConcepto == ConceptoProvisionATM
}

// conceptoPorServicioArchivo traduce el código de la columna SERVICIO de los
// archivos del banco al concepto del CGS: 1 aprovisionamiento de oficinas,
// 4 aprovisionamiento ATM nivel 7, 5 recolección de valores.
var conceptoPorServicioArchivo = map[int]int{
	1: ConceptoProvisionOficina,
	4: ConceptoProvisionATM,
	5: ConceptoRecoleccion,
}

// ConceptoPorServicioArchivo resuelve el concepto del CGS para un código de
// servicio de archivo; false cuando el código no está catalogado.
func ConceptoPorServicioArchivo(codigoServicio int) (int, bool) {
	c, ok := conceptoPorServicioArchivo[codigoServicio]
	return c, ok
}

// EsProvisionServicioArchivo clasifica el código de servicio del archivo. Los
// códigos sin catálogo se tratan como recolección: mejor cero valores que
// valores inventados.
func EsProvisionServicioArchivo(codigoServicio int) bool {
	c, ok := conceptoPorServicioArchivo[codigoServicio]
	return ok && EsProvision(c)
}

// Estados del servicio (cgs_servicios.cod_estado). La inserción siempre usa
// EstadoSolicitado; el resto del ciclo lo maneja el backoffice.
const (
	EstadoSolicitado = 0
	EstadoConfirmado = 1
	EstadoRechazado  = 2
	EstadoProgramado = 3
	EstadoEnAtencion = 4
	EstadoFinalizado = 5
	EstadoCancelado  = 6
	EstadoPendiente  = 7
)

// Estados de la transacción CEF (cef_transacciones.estado_transaccion).
const (
	TransaccionRegistroTesoreria  = "RegistroTesoreria"
	TransaccionEncoladaConteo     = "EncoladoParaConteo"
	TransaccionConteo             = "Conteo"
	TransaccionPendienteRevision  = "PendienteRevision"
	TransaccionAprobada           = "Aprobado"
	TransaccionRechazada          = "Rechazado"
	TransaccionCancelada          = "Cancelado"
	TransaccionProvisionEnProceso = "ProvisionEnProceso"
	TransaccionListaParaEntrega   = "ListoParaEntrega"
	TransaccionEntregada          = "Entregado"
)

// EstadoTransaccionValido verifica pertenencia al catálogo de estados CEF.
func EstadoTransaccionValido(estado string) bool {
	switch estado {
	case TransaccionRegistroTesoreria, TransaccionEncoladaConteo, TransaccionConteo,
		TransaccionPendienteRevision, TransaccionAprobada, TransaccionRechazada,
		TransaccionCancelada, TransaccionProvisionEnProceso,
		TransaccionListaParaEntrega, TransaccionEntregada:
		return true
	}
	return false
}

// Tipos de transacción CEF.
const (
	TipoTransaccionRecoleccion = "RC"
	TipoTransaccionProvision   = "PV"
)

// Indicadores de tipo para origen y destino del traslado.
const (
	IndicadorCliente = "C"
	IndicadorPunto   = "P"
	IndicadorFondo   = "F"
)

// IndicadorValido verifica pertenencia al catálogo C/P/F.
func IndicadorValido(ind string) bool {
	return ind == IndicadorCliente || ind == IndicadorPunto || ind == IndicadorFondo
}

// Modalidades del servicio ('1' regular, '2' a pedido, '3' especial).
const (
	ModalidadRegular  = "1"
	ModalidadAPedido  = "2"
	ModalidadEspecial = "3"
)

// divisaPorCodigo traduce el código numérico TIPO VALOR de los archivos a la
// divisa ISO de la transacción.
var divisaPorCodigo = map[int]string{
	1:  "COP",
	2:  "COP",
	3:  "USD",
	4:  "CAD",
	5:  "EUR",
	6:  "EUR",
	7:  "CHF",
	8:  "JPY",
	9:  "GBP",
	24: "EUR",
}

// DivisaPorCodigo resuelve la divisa de un código de tipo de valor.
// Los códigos no catalogados caen a COP, la divisa operativa por defecto.
func DivisaPorCodigo(codigo int) string {
	if d, ok := DivisaCatalogada(codigo); ok {
		return d
	}
	return "COP"
}

// DivisaCatalogada resuelve la divisa sin aplicar el código por defecto; el
// reporte distingue códigos desconocidos en vez de asumirlos COP.
func DivisaCatalogada(codigo int) (string, bool) {
	d, ok := divisaPorCodigo[codigo]
	return d, ok
}

// Tipos de denominación.
const (
	DenominacionBillete = "BILLETE"
	DenominacionMoneda  = "MONEDA"
)

// TipoDenominacion clasifica una denominación por su valor facial:
// desde 1000 es billete, por debajo es moneda.
func TipoDenominacion(valor int64) string {
	if valor >= 1000 {
		return DenominacionBillete
	}
	return DenominacionMoneda
}

// ColumnasDenominacion define el orden de las columnas de denominación en el
// informe Excel. AD = actual denominación, NF = nueva familia.
var ColumnasDenominacion = []string{
	"100000",
	"50000AD", "50000NF",
	"20000AD", "20000NF",
	"10000AD", "10000NF",
	"5000AD", "5000NF",
	"2000AD", "2000NF",
	"1000AD", "1000NF",
	"500AD", "500NF",
	"200AD", "200NF",
	"100AD", "100NF",
	"50AD", "50NF",
}

// descripcionesServicio cataloga los tipos de servicio que llegan en la
// columna SERVICIO de los archivos TXT.
var descripcionesServicio = map[int]string{
	1:  "APROVISIONAMIENTO DE OFICINAS",
	3:  "TRASLADO DE FONDOS",
	4:  "APROVISIONAMIENTO DE ATM NIVEL 7",
	5:  "RECOLECCIÓN DE VALORES",
	8:  "SERVICIO DE REFAJADO",
	12: "SOLICITUD DE ELEMENTOS DE REMESA",
	14: "SERVICIO FLM (MANTENIMIENTO DE PRIMERA LINEA)",
	26: "CONSIGANCIÓN BANCO DE LA REPÚBLICA",
}

// DescripcionServicio devuelve la descripción del catálogo de servicios;
// false cuando el código no existe.
func DescripcionServicio(codigo int) (string, bool) {
	d, ok := descripcionesServicio[codigo]
	return d, ok
}

// descripcionesCategoria cataloga las categorías de gaveta de los TXT.
var descripcionesCategoria = map[int]string{
	1:   "ATM",
	2:   "BUEN ESTADO",
	85:  "CIRCULANTE",
	23:  "DETERIORADO",
	86:  "FUERA DE CIRCULACIÓN",
	112: "NF BUEN ESTADO",
	113: "NF DETERIORADO",
	114: "NF ATM",
	21:  "NUEVO CONO",
	22:  "VIEJO CONO",
	24:  "NUEVA FAMILIA",
}

// DescripcionCategoria devuelve la descripción del catálogo de categorías;
// false cuando el código no existe.
func DescripcionCategoria(codigo int) (string, bool) {
	d, ok := descripcionesCategoria[codigo]
	return d, ok
}

// ccPorCliente empareja los códigos de cliente del procesador con los códigos
// de centro de costo (CC) que usa el banco en sus archivos.
var ccPorCliente = map[string]string{
	"45": "52",
	"46": "01",
	"47": "02",
	"48": "23",
}

// CCDeCliente devuelve el código CC del banco para un cliente; "00" cuando el
// cliente no tiene emparejamiento.
func CCDeCliente(codCliente string) string {
	if cc, ok := ccPorCliente[codCliente]; ok {
		return cc
	}
	return "00"
}

// ClienteDeCC resuelve el código de cliente a partir del CC del banco.
func ClienteDeCC(cc string) (string, bool) {
	for cliente, c := range ccPorCliente {
		if c == cc {
			return cliente, true
		}
	}
	return "", false
}

// ClientesPermitidosPorDefecto son los clientes cuyos puntos se cargan al
// snapshot cuando la configuración no define otra cosa.
var ClientesPermitidosPorDefecto = []string{"45", "46", "47", "48"}

// Descripciones para el informe.
var (
	tiposRuta   = map[string]string{"D": "DIURNO", "N": "NOCTURNO"}
	prioridades = map[string]string{"A": "AM", "P": "PM", "R": "RESTRICCIÓN", "D": "DÍA"}
	tiposPedido = map[string]string{"P": "PROGRAMADO", "N": "ESPECIAL"}
)

// DescripcionTipoRuta traduce el código de tipo de ruta del TXT; devuelve el
// código tal cual cuando no está catalogado.
func DescripcionTipoRuta(codigo string) string {
	if d, ok := tiposRuta[codigo]; ok {
		return d
	}
	return codigo
}

// DescripcionPrioridad traduce el código de prioridad del TXT.
func DescripcionPrioridad(codigo string) string {
	if d, ok := prioridades[codigo]; ok {
		return d
	}
	return codigo
}

// DescripcionTipoPedido traduce el código de tipo de pedido del TXT.
func DescripcionTipoPedido(codigo string) string {
	if d, ok := tiposPedido[codigo]; ok {
		return d
	}
	return codigo
}

// FormatoOrden construye el identificador de orden de servicio que devuelve
// la operación de inserción: "S-" más el consecutivo con ceros a la izquierda.
func FormatoOrden(id int64) string {
	return fmt.Sprintf("S-%06d", id)
}
