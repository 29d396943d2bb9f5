package procesamiento_test

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vatco/ingesta-servicios/internal/application/dto"
	"github.com/vatco/ingesta-servicios/internal/application/procesamiento"
	"github.com/vatco/ingesta-servicios/internal/domain"
	"github.com/vatco/ingesta-servicios/internal/domain/entity"
)

const usuarioProceso = "e5926e18-33b1-468c-a979-e4e839a86f30"

// registradorFalso simula el almacén de escritura. duplicados nombra los
// pedidos que la verificación previa reporta como existentes.
type registradorFalso struct {
	duplicados  map[string]bool
	errExiste   error
	errRegistro error

	verificaciones int
	registrados    []string
	siguienteID    int64
}

var _ procesamiento.RegistradorServicios = (*registradorFalso)(nil)

func (r *registradorFalso) ExistePedido(ctx context.Context, numeroPedido string, codCliente, codSucursal int) (bool, error) {
	r.verificaciones++
	if r.errExiste != nil {
		return false, r.errExiste
	}
	return r.duplicados[numeroPedido], nil
}

func (r *registradorFalso) Registrar(ctx context.Context, servicio *entity.Servicio, transaccion *entity.Transaccion) (int64, string, error) {
	if r.errRegistro != nil {
		return 0, "", r.errRegistro
	}
	r.siguienteID++
	r.registrados = append(r.registrados, servicio.NumeroPedido)
	return r.siguienteID, entity.FormatoOrden(r.siguienteID), nil
}

// gestorFalso simula las carpetas de trabajo en memoria. movidoA registra a
// qué carpeta terminó cada ruta de entrada.
type gestorFalso struct {
	contenido map[string][]byte
	movidoA   map[string]string
	errLeer   error
	errListar error
	errMover  error
}

var _ procesamiento.GestorArchivos = (*gestorFalso)(nil)

func nuevoGestorFalso() *gestorFalso {
	return &gestorFalso{contenido: map[string][]byte{}, movidoA: map[string]string{}}
}

func (g *gestorFalso) Leer(ruta string) ([]byte, error) {
	if g.errLeer != nil {
		return nil, g.errLeer
	}
	datos, ok := g.contenido[ruta]
	if !ok {
		return nil, fmt.Errorf("abrir %s: no existe", ruta)
	}
	return datos, nil
}

func (g *gestorFalso) Listar(carpeta, extension string) ([]string, error) {
	if g.errListar != nil {
		return nil, g.errListar
	}
	var rutas []string
	for ruta := range g.contenido {
		if filepath.Dir(ruta) == carpeta && strings.EqualFold(filepath.Ext(ruta), extension) {
			rutas = append(rutas, ruta)
		}
	}
	sort.Strings(rutas)
	return rutas, nil
}

func (g *gestorFalso) Mover(ruta, carpeta string) (string, error) {
	if g.errMover != nil {
		return "", g.errMover
	}
	g.movidoA[ruta] = carpeta
	delete(g.contenido, ruta)
	return filepath.Join(carpeta, filepath.Base(ruta)), nil
}

// lectorTXTFalso devuelve el archivo pactado para cada contenido. panico
// simula un defecto del parser.
type lectorTXTFalso struct {
	porContenido map[string]*dto.ArchivoTXT
	err          error
	panico       string
}

var _ procesamiento.LectorTXT = (*lectorTXTFalso)(nil)

func (l *lectorTXTFalso) Parsear(datos []byte) (*dto.ArchivoTXT, error) {
	if l.panico != "" {
		panic(l.panico)
	}
	if l.err != nil {
		return nil, l.err
	}
	if a, ok := l.porContenido[string(datos)]; ok {
		return a, nil
	}
	return nil, &domain.ErrorArchivo{Motivo: "contenido no pactado en la prueba"}
}

type lectorXMLFalso struct {
	porContenido map[string]*dto.ArchivoXML
	err          error
}

var _ procesamiento.LectorXML = (*lectorXMLFalso)(nil)

func (l *lectorXMLFalso) Parsear(datos []byte) (*dto.ArchivoXML, error) {
	if l.err != nil {
		return nil, l.err
	}
	if a, ok := l.porContenido[string(datos)]; ok {
		return a, nil
	}
	return nil, &domain.ErrorArchivo{Motivo: "contenido no pactado en la prueba"}
}

// reportesFalso captura los reportes que el procesador manda a escribir.
type reportesFalso struct {
	rutasTXT  []string
	rutasXML  []string
	ultimoTXT *dto.ReporteTXT
	ultimoXML *dto.ReporteXML
	err       error
}

var _ procesamiento.GeneradorReporte = (*reportesFalso)(nil)

func (r *reportesFalso) GenerarTXT(ruta string, reporte *dto.ReporteTXT) error {
	if r.err != nil {
		return r.err
	}
	r.rutasTXT = append(r.rutasTXT, ruta)
	r.ultimoTXT = reporte
	return nil
}

func (r *reportesFalso) GenerarXML(ruta string, reporte *dto.ReporteXML) error {
	if r.err != nil {
		return r.err
	}
	r.rutasXML = append(r.rutasXML, ruta)
	r.ultimoXML = reporte
	return nil
}

type respuestaEscrita struct {
	Nombre string
	CC     string
	Lineas []dto.LineaRespuesta
}

type respuestasFalso struct {
	escritas []respuestaEscrita
	err      error
}

var _ procesamiento.EscritorRespuesta = (*respuestasFalso)(nil)

func (r *respuestasFalso) Escribir(nombreOriginal, cc string, lineas []dto.LineaRespuesta) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	r.escritas = append(r.escritas, respuestaEscrita{Nombre: nombreOriginal, CC: cc, Lineas: lineas})
	return filepath.Join("respuesta", nombreOriginal), nil
}

// referenciasProceso es el snapshot mínimo de estas pruebas: el cliente 45
// con un punto con fondo.
func referenciasProceso() *entity.Referencias {
	return entity.NewReferencias(
		[]entity.Ciudad{{Codigo: "11001", Nombre: "BOGOTÁ D.C."}},
		[]entity.Cliente{{Codigo: "45", Nombre: "BANCO CUATRO", NIT: "860034313"}},
		[]entity.Sucursal{{Codigo: "2", Nombre: "BOGOTÁ"}},
		[]entity.Punto{{
			Codigo:          "7001",
			CodPuntoCliente: "17",
			CodCliente:      "45",
			CodSucursal:     "2",
			CodFondo:        "901",
			Nombre:          "OFICINA CENTRO",
			CodCiudad:       "11001",
			Ciudad:          "BOGOTÁ D.C.",
			Sucursal:        "BOGOTÁ",
		}},
	)
}

// registroValido arma una pareja servicio+transacción que pasa la validación
// de entidad, para probar la inserción sin pasar por el mapeo.
func registroValido(pedido string) *dto.RegistroMapeado {
	solicitud := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	programada := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	valor := decimal.NewFromInt(1_500_000)

	servicio := &entity.Servicio{
		NumeroPedido:         pedido,
		CodCliente:           45,
		CodSucursal:          2,
		CodConcepto:          entity.ConceptoProvisionATM,
		TipoTraslado:         "N",
		CodEstado:            entity.EstadoSolicitado,
		FechaSolicitud:       solicitud,
		HoraSolicitud:        "00:00:00",
		CodClienteOrigen:     45,
		CodPuntoOrigen:       "901",
		IndicadorTipoOrigen:  entity.IndicadorFondo,
		CodClienteDestino:    45,
		CodPuntoDestino:      "7001",
		IndicadorTipoDestino: entity.IndicadorPunto,
		FechaProgramacion:    &programada,
		HoraProgramacion:     "00:00:00",
		ValorBillete:         valor,
		ValorMoneda:          decimal.Zero,
		ValorServicio:        valor,
		ModalidadServicio:    entity.ModalidadAPedido,
		UsuarioRegistroID:    usuarioProceso,
	}
	transaccion := &entity.Transaccion{
		CodSucursal:            2,
		FechaRegistro:          time.Now(),
		UsuarioRegistroID:      usuarioProceso,
		Divisa:                 "COP",
		TipoTransaccion:        entity.TipoTransaccionProvision,
		ValorBilletesDeclarado: valor,
		ValorMonedasDeclarado:  decimal.Zero,
		ValorTotalDeclarado:    valor,
		EstadoTransaccion:      entity.TransaccionRegistroTesoreria,
	}
	return &dto.RegistroMapeado{Indice: 1, ID: pedido, Servicio: servicio, Transaccion: transaccion}
}

// pedidoProceso arma un pedido TIPO 2 de una gaveta que mapea contra
// referenciasProceso.
func pedidoProceso(indice int, codigo, codigoPunto string) dto.PedidoTXT {
	encabezado := dto.EncabezadoTXT{
		Interfase:       "TR2",
		FechaGeneracion: "14032026",
		Solicitante:     "BANCO CUATRO",
		NITCliente:      "860034313",
	}
	return dto.PedidoTXT{
		Indice:     indice,
		Codigo:     codigo,
		Encabezado: encabezado,
		Gavetas: []dto.LineaTipo2{{
			NumeroLinea:   indice + 1,
			Servicio:      "4",
			Ciudad:        "11001",
			FechaServicio: "15032026",
			CodigoPunto:   codigoPunto,
			NombrePunto:   "OFICINA CENTRO",
			Categoria:     "2",
			Gaveta:        "1",
			Denominacion:  "50000",
			Cantidad:      "30",
			Valor:         "1500000",
			Prioridad:     "A",
			TipoRuta:      "D",
			TipoPedido:    "P",
			TipoValor:     "1",
			Codigo:        codigo,
		}},
	}
}
