package dto

// EncabezadoTXT es la línea TIPO 1 del archivo: identifica la interfaz, la
// fecha de generación y el NIT del cliente solicitante.
type EncabezadoTXT struct {
	Interfase       string
	Aplicacion      string
	FechaGeneracion string // ddMMyyyy
	Solicitante     string
	NITCliente      string
}

// LineaTipo2 es una línea de detalle TIPO 2: una gaveta de un pedido.
type LineaTipo2 struct {
	NumeroLinea   int
	Servicio      string
	Ciudad        string
	Accion        string
	FechaServicio string
	CodigoPunto   string
	NombrePunto   string
	Categoria     string
	Gaveta        string
	Denominacion  string
	Cantidad      string
	Valor         string
	Prioridad     string
	TipoRuta      string
	TipoPedido    string
	TipoValor     string
	Codigo        string
}

// PedidoTXT agrupa las líneas TIPO 2 que comparten CODIGO: un pedido con sus
// gavetas, en el orden de aparición dentro del archivo. Inmutable una vez
// construido por el parser; lo consume el mapeador una sola vez.
type PedidoTXT struct {
	Indice     int
	Codigo     string
	Encabezado EncabezadoTXT
	Gavetas    []LineaTipo2
}

// ArchivoTXT es el resultado del parseo de un archivo TXT completo.
type ArchivoTXT struct {
	// Huella es el SHA-256 del contenido crudo, para la trazabilidad del log.
	Huella     string
	Encabezado EncabezadoTXT
	Pedidos    []PedidoTXT
	// Totales de la línea TIPO 3; cero cuando el campo no es numérico.
	TotalRegistros int
	TotalBilletes  int64
}

// Tipos de elemento XML.
const (
	ElementoOrder = "order"
	ElementoRemit = "remit"
)

// DenominacionXML es un elemento <denom code amount>. Amount es el valor
// monetario total de esa denominación, no una cantidad de piezas.
type DenominacionXML struct {
	Code   string
	Amount string
}

// ElementoXML es un <order> o un <remit> con sus atributos y denominaciones.
type ElementoXML struct {
	Indice            int
	Tipo              string // "order" | "remit"
	ID                string
	DeliveryDate      string
	OrderDate         string
	PickupDate        string
	PrimaryTransport  string
	OrderType         string // "0" = NORMAL, cualquier otro = EMERGENCIA
	Currency          string
	EntityReferenceID string
	RoutingNumber     string
	CostCenter        string
	Denominaciones    []DenominacionXML
}

// EsEmergencia interpreta el atributo orderType.
func (e *ElementoXML) EsEmergencia() bool {
	return e.OrderType != "" && e.OrderType != "0"
}

// ArchivoXML es el resultado del parseo de un documento XML completo, con la
// huella del contenido crudo y los elementos en orden: órdenes y luego remesas.
type ArchivoXML struct {
	Huella    string
	Elementos []ElementoXML
}
