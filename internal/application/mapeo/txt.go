package mapeo

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vatco/ingesta-servicios/internal/application/dto"
	"github.com/vatco/ingesta-servicios/internal/domain"
	"github.com/vatco/ingesta-servicios/internal/domain/entity"
)

// MapeadorTXT construye servicios a partir de los pedidos TIPO 2. El NIT del
// encabezado TIPO 1 identifica al cliente; el punto se busca por el código
// con el que el cliente lo nombra en sus archivos.
type MapeadorTXT struct {
	usuarioRegistroID string
}

// NewMapeadorTXT construye el mapeador. usuarioRegistroID firma los registros
// que la interfaz inserta.
func NewMapeadorTXT(usuarioRegistroID string) *MapeadorTXT {
	return &MapeadorTXT{usuarioRegistroID: usuarioRegistroID}
}

// Mapear resuelve un pedido contra el snapshot y arma la pareja
// servicio+transacción. Cualquier código irresoluble o campo malformado
// devuelve error y el pedido se rechaza completo.
func (m *MapeadorTXT) Mapear(ref *entity.Referencias, pedido dto.PedidoTXT, archivo string) (*dto.RegistroMapeado, error) {
	if strings.TrimSpace(pedido.Codigo) == "" {
		return nil, &domain.ErrorMapeo{Campo: "codigo", Motivo: "número de pedido vacío"}
	}
	if len(pedido.Gavetas) == 0 {
		return nil, &domain.ErrorMapeo{Campo: "gavetas", Motivo: "pedido sin líneas de detalle"}
	}
	primera := pedido.Gavetas[0]

	cliente, err := ref.ClientePorNIT(pedido.Encabezado.NITCliente)
	if err != nil {
		return nil, err
	}
	codCliente, err := codigoEntero("cod_cliente", cliente.Codigo)
	if err != nil {
		return nil, err
	}

	codServicio, err := numeroServicio(primera.Servicio)
	if err != nil {
		return nil, err
	}

	punto, err := ref.Punto(cliente.Codigo, primera.CodigoPunto)
	if err != nil {
		return nil, err
	}
	codSucursal, err := codigoEntero("cod_sucursal", punto.CodSucursal)
	if err != nil {
		return nil, err
	}

	// Una FECHA GENERACION ilegible no rechaza el pedido: vale la fecha del día.
	fechaSolicitud, err := parsearFechaArchivo("fecha_generacion", pedido.Encabezado.FechaGeneracion)
	if err != nil {
		fechaSolicitud = time.Now()
	}

	fechaProgramacion, err := parsearFechaArchivo("fecha_servicio", primera.FechaServicio)
	if err != nil {
		return nil, err
	}

	// Solo las provisiones declaran valores; en recolección se conocen
	// después del conteo y quedan en cero.
	var valorBillete, valorMoneda int64
	if entity.EsProvisionServicioArchivo(codServicio) {
		for _, g := range pedido.Gavetas {
			denominacion, err := limpiarMonto("denominacion", g.Denominacion)
			if err != nil {
				return nil, err
			}
			cantidad, err := limpiarMonto("cantidad", g.Cantidad)
			if err != nil {
				return nil, err
			}
			valor := denominacion * cantidad
			// El VALOR de la línea, cuando viene, debe cuadrar con
			// denominación x cantidad; un descuadre delata un archivo
			// corrupto y rechaza el pedido completo.
			if strings.TrimSpace(g.Valor) != "" {
				declarado, err := limpiarMonto("valor", g.Valor)
				if err != nil {
					return nil, err
				}
				if declarado != valor {
					return nil, &domain.ErrorMapeo{
						Campo: "valor",
						Motivo: fmt.Sprintf("gaveta %s declara %d pero denominación x cantidad da %d",
							g.Gaveta, declarado, valor),
					}
				}
			}
			if entity.TipoDenominacion(denominacion) == entity.DenominacionBillete {
				valorBillete += valor
			} else {
				valorMoneda += valor
			}
		}
	}

	codigoDivisa := 1
	if v, err := strconv.Atoi(strings.TrimSpace(primera.TipoValor)); err == nil {
		codigoDivisa = v
	}

	origen, indicadorOrigen := punto.Codigo, entity.IndicadorPunto
	if punto.CodFondo != "" {
		origen, indicadorOrigen = punto.CodFondo, entity.IndicadorFondo
	}

	billete := decimal.NewFromInt(valorBillete)
	moneda := decimal.NewFromInt(valorMoneda)
	ahora := time.Now()

	servicio := &entity.Servicio{
		NumeroPedido: pedido.Codigo,
		CodCliente:   codCliente,
		CodSucursal:  codSucursal,
		// Los TXT del banco siempre registran provisión de ATM; el código
		// SERVICIO solo decide si se declaran valores.
		CodConcepto:          entity.ConceptoProvisionATM,
		TipoTraslado:         "N",
		CodEstado:            entity.EstadoSolicitado,
		FechaSolicitud:       fechaSolicitud,
		HoraSolicitud:        "00:00:00",
		CodClienteOrigen:     codCliente,
		CodPuntoOrigen:       origen,
		IndicadorTipoOrigen:  indicadorOrigen,
		CodClienteDestino:    codCliente,
		CodPuntoDestino:      punto.Codigo,
		IndicadorTipoDestino: entity.IndicadorPunto,
		FechaProgramacion:    &fechaProgramacion,
		HoraProgramacion:     "00:00:00",
		ValorBillete:         billete,
		ValorMoneda:          moneda,
		ValorServicio:        billete.Add(moneda),
		ModalidadServicio:    entity.ModalidadAPedido,
		ArchivoDetalle:       archivo,
		UsuarioRegistroID:    m.usuarioRegistroID,
	}

	transaccion := &entity.Transaccion{
		CodSucursal:            codSucursal,
		FechaRegistro:          ahora,
		UsuarioRegistroID:      m.usuarioRegistroID,
		Divisa:                 entity.DivisaPorCodigo(codigoDivisa),
		TipoTransaccion:        entity.TipoTransaccionProvision,
		ValorBilletesDeclarado: billete,
		ValorMonedasDeclarado:  moneda,
		ValorTotalDeclarado:    billete.Add(moneda),
		EstadoTransaccion:      entity.TransaccionRegistroTesoreria,
	}

	return &dto.RegistroMapeado{
		Indice:      pedido.Indice,
		ID:          pedido.Codigo,
		Servicio:    servicio,
		Transaccion: transaccion,
	}, nil
}
