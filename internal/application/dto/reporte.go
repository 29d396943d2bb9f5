package dto

// Textos que el informe usa cuando un código no resuelve contra el snapshot.
// El registro igual se rechaza; estos textos solo dejan la celda legible.
const (
	TextoCiudadNoEncontrada    = "Ciudad no encontrada"
	TextoCategoriaNoEncontrada = "Categoría no encontrada"
	TextoSucursalNoEncontrada  = "Sucursal no encontrada"
	TextoClienteNoEncontrado   = "Cliente no encontrado"
	TextoTipoNoEncontrado      = "Tipo no encontrado"
	TextoPuntoNoEncontrado     = "No encontrado"
)

// Estados de un registro en el informe.
const (
	EstadoReporteInsertado = "INSERTADO"
	EstadoReporteSimulado  = "SIMULADO"
	EstadoReporteRechazado = "RECHAZADO"
)

// GavetaReporte es una gaveta pivotada del detalle TXT: las columnas
// "GAV n - CATEGORIA DENOMINACION" y "GAV n - CATEGORIA CANTIDAD".
type GavetaReporte struct {
	Numero       int
	Categoria    string // descripción de la categoría: "BUEN ESTADO"
	Denominacion int64
	Cantidad     int64
}

// FilaReporteTXT es un pedido del archivo TXT con sus códigos ya decorados
// ("código - descripción") y el resultado del registro.
type FilaReporteTXT struct {
	Codigo        string
	FechaServicio string
	Prioridad     string // descripción solo en ruta DIURNO
	Cliente       string
	Servicio      string
	CodigoPunto   string
	NombrePunto   string
	Ciudad        string
	Sucursal      string
	CodSucursal   string // código interno sin decorar
	TipoRuta      string
	TipoPedido    string
	TipoValor     string
	Gavetas       []GavetaReporte
	CantBilletes  int64
	TotalValor    int64
	Estado        string
	Orden         string
	Motivo        string
}

// ReporteTXT es la entrada completa del informe de un archivo TXT: el marco
// del encabezado TIPO 1, el detalle pivotado y los totales del TIPO 3.
type ReporteTXT struct {
	Archivo         string
	Huella          string // SHA-256 del archivo origen; va a las propiedades del XLSX
	FechaGeneracion string // dd/MM/yyyy
	Solicitante     string
	NITCliente      string
	Filas           []FilaReporteTXT
	TotalRegistros  int
	TotalBilletes   int64
	TotalValor      int64
}

// FilaReporteXML es un order o remit con sus campos de presentación y el
// resultado del registro. Denominaciones usa las claves de
// entity.ColumnasDenominacion.
type FilaReporteXML struct {
	ID             string
	DeliveryDate   string
	OrderDate      string
	PickupDate     string
	FechaEntrega   string // deliveryDate en dd/MM/yyyy
	Rango          string
	Entidad        string
	Codigo         string // entityReferenceID tal cual llegó
	NombrePunto    string
	TipoServicio   string // NORMAL | EMERGENCIA
	Transportadora string
	Ciudad         string
	Denominaciones map[string]int64
	Total          int64
	Estado         string
	Orden          string
	Motivo         string
}

// ReporteXML es la entrada del informe de un archivo XML: una hoja de
// provisiones (orders) y una de recolecciones (remits).
type ReporteXML struct {
	Archivo     string
	Huella      string // SHA-256 canónico del documento origen
	Provision   []FilaReporteXML
	Recoleccion []FilaReporteXML
}
