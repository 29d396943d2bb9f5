package mapeo

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vatco/ingesta-servicios/internal/application/dto"
	"github.com/vatco/ingesta-servicios/internal/domain"
	"github.com/vatco/ingesta-servicios/internal/domain/entity"
)

// MapeadorXML construye servicios a partir de los elementos order y remit.
// Un order es una provisión de oficina; un remit, una recolección.
type MapeadorXML struct {
	usuarioRegistroID string
}

// NewMapeadorXML construye el mapeador.
func NewMapeadorXML(usuarioRegistroID string) *MapeadorXML {
	return &MapeadorXML{usuarioRegistroID: usuarioRegistroID}
}

// Mapear despacha según el tipo del elemento.
func (m *MapeadorXML) Mapear(ref *entity.Referencias, elem dto.ElementoXML, archivo string) (*dto.RegistroMapeado, error) {
	switch elem.Tipo {
	case dto.ElementoOrder:
		return m.mapearOrder(ref, elem, archivo)
	case dto.ElementoRemit:
		return m.mapearRemit(ref, elem, archivo)
	}
	return nil, &domain.ErrorMapeo{
		Campo:  "elemento",
		Motivo: fmt.Sprintf("tipo %q no es order ni remit", elem.Tipo),
	}
}

func (m *MapeadorXML) mapearOrder(ref *entity.Referencias, elem dto.ElementoXML, archivo string) (*dto.RegistroMapeado, error) {
	if strings.TrimSpace(elem.ID) == "" {
		return nil, &domain.ErrorMapeo{Campo: "id", Motivo: "order sin atributo id"}
	}

	punto, err := ResolverPunto(ref, elem.EntityReferenceID)
	if err != nil {
		return nil, err
	}
	codCliente, err := codigoEntero("cod_cliente", punto.CodCliente)
	if err != nil {
		return nil, err
	}
	codSucursal, err := codigoEntero("cod_sucursal", punto.CodSucursal)
	if err != nil {
		return nil, err
	}

	fechaSolicitud, horaSolicitud, err := parsearFechaISO("orderDate", elem.OrderDate)
	if err != nil {
		return nil, err
	}
	if fechaSolicitud == nil {
		return nil, &domain.ErrorMapeo{Campo: "orderDate", Motivo: "order sin fecha de solicitud"}
	}
	fechaProgramacion, horaProgramacion, err := parsearFechaISO("deliveryDate", elem.DeliveryDate)
	if err != nil {
		return nil, err
	}

	valorBillete, valorMoneda, denominaciones := valoresDenominaciones(elem.Denominaciones)

	// El origen de una provisión es el fondo; el indicador queda en fondo
	// aunque el punto no tenga fondo asignado y el código caiga al punto.
	origen := punto.Codigo
	if punto.CodFondo != "" {
		origen = punto.CodFondo
	}

	billete := decimal.NewFromInt(valorBillete)
	moneda := decimal.NewFromInt(valorMoneda)

	servicio := &entity.Servicio{
		NumeroPedido:         strings.TrimSpace(elem.ID),
		CodCliente:           codCliente,
		CodSucursal:          codSucursal,
		CodConcepto:          entity.ConceptoProvisionOficina,
		TipoTraslado:         "N",
		CodEstado:            entity.EstadoSolicitado,
		FechaSolicitud:       *fechaSolicitud,
		HoraSolicitud:        horaSolicitud,
		CodClienteOrigen:     codCliente,
		CodPuntoOrigen:       origen,
		IndicadorTipoOrigen:  entity.IndicadorFondo,
		CodClienteDestino:    codCliente,
		CodPuntoDestino:      punto.Codigo,
		IndicadorTipoDestino: entity.IndicadorPunto,
		FechaProgramacion:    fechaProgramacion,
		HoraProgramacion:     horaProgramacion,
		ValorBillete:         billete,
		ValorMoneda:          moneda,
		ValorServicio:        billete.Add(moneda),
		ModalidadServicio:    entity.ModalidadAPedido,
		Observaciones:        observacionesTransportadora(elem.PrimaryTransport),
		ArchivoDetalle:       archivo,
		UsuarioRegistroID:    m.usuarioRegistroID,
	}

	transaccion := &entity.Transaccion{
		CodSucursal:            codSucursal,
		FechaRegistro:          time.Now(),
		UsuarioRegistroID:      m.usuarioRegistroID,
		Divisa:                 normalizarDivisa(elem.Currency),
		TipoTransaccion:        entity.TipoTransaccionProvision,
		ValorBilletesDeclarado: billete,
		ValorMonedasDeclarado:  moneda,
		ValorTotalDeclarado:    billete.Add(moneda),
		EstadoTransaccion:      entity.TransaccionProvisionEnProceso,
	}

	return &dto.RegistroMapeado{
		Indice:         elem.Indice,
		ID:             strings.TrimSpace(elem.ID),
		Servicio:       servicio,
		Transaccion:    transaccion,
		Denominaciones: denominaciones,
	}, nil
}

func (m *MapeadorXML) mapearRemit(ref *entity.Referencias, elem dto.ElementoXML, archivo string) (*dto.RegistroMapeado, error) {
	if strings.TrimSpace(elem.ID) == "" {
		return nil, &domain.ErrorMapeo{Campo: "id", Motivo: "remit sin atributo id"}
	}

	punto, err := ResolverPunto(ref, elem.EntityReferenceID)
	if err != nil {
		return nil, err
	}
	codCliente, err := codigoEntero("cod_cliente", punto.CodCliente)
	if err != nil {
		return nil, err
	}
	codSucursal, err := codigoEntero("cod_sucursal", punto.CodSucursal)
	if err != nil {
		return nil, err
	}

	fechaSolicitud, horaSolicitud, err := parsearFechaISO("pickupDate", elem.PickupDate)
	if err != nil {
		return nil, err
	}
	if fechaSolicitud == nil {
		return nil, &domain.ErrorMapeo{Campo: "pickupDate", Motivo: "remit sin fecha de recogida"}
	}
	fechaProgramacion, horaProgramacion, err := parsearFechaISO("deliveryDate", elem.DeliveryDate)
	if err != nil {
		return nil, err
	}

	// El destino de una recolección es el fondo, con el mismo criterio del
	// origen de las provisiones.
	destino := punto.Codigo
	if punto.CodFondo != "" {
		destino = punto.CodFondo
	}

	cero := decimal.Zero

	servicio := &entity.Servicio{
		NumeroPedido:         strings.TrimSpace(elem.ID),
		CodCliente:           codCliente,
		CodSucursal:          codSucursal,
		CodConcepto:          entity.ConceptoRecoleccion,
		TipoTraslado:         "N",
		CodEstado:            entity.EstadoSolicitado,
		FechaSolicitud:       *fechaSolicitud,
		HoraSolicitud:        horaSolicitud,
		CodClienteOrigen:     codCliente,
		CodPuntoOrigen:       punto.Codigo,
		IndicadorTipoOrigen:  entity.IndicadorPunto,
		CodClienteDestino:    codCliente,
		CodPuntoDestino:      destino,
		IndicadorTipoDestino: entity.IndicadorFondo,
		FechaProgramacion:    fechaProgramacion,
		HoraProgramacion:     horaProgramacion,
		ValorBillete:         cero,
		ValorMoneda:          cero,
		ValorServicio:        cero,
		ModalidadServicio:    entity.ModalidadAPedido,
		Observaciones:        observacionesTransportadora(elem.PrimaryTransport),
		ArchivoDetalle:       archivo,
		UsuarioRegistroID:    m.usuarioRegistroID,
	}

	transaccion := &entity.Transaccion{
		CodSucursal:            codSucursal,
		FechaRegistro:          time.Now(),
		UsuarioRegistroID:      m.usuarioRegistroID,
		Divisa:                 normalizarDivisa(elem.Currency),
		TipoTransaccion:        entity.TipoTransaccionRecoleccion,
		ValorBilletesDeclarado: cero,
		ValorMonedasDeclarado:  cero,
		ValorTotalDeclarado:    cero,
		EstadoTransaccion:      entity.TransaccionRegistroTesoreria,
	}

	return &dto.RegistroMapeado{
		Indice:      elem.Indice,
		ID:          strings.TrimSpace(elem.ID),
		Servicio:    servicio,
		Transaccion: transaccion,
	}, nil
}

// ResolverPunto resuelve el entityReferenceID contra el snapshot. El primer
// segmento es el código CC del banco y el último el número del punto; se
// intenta primero por código interno y después por el código del cliente, con
// y sin ceros a la izquierda.
func ResolverPunto(ref *entity.Referencias, entityRef string) (entity.Punto, error) {
	entityRef = strings.TrimSpace(entityRef)
	if entityRef == "" {
		return entity.Punto{}, &domain.ErrorMapeo{
			Campo:  "entityReferenceID",
			Motivo: "referencia de punto vacía",
		}
	}

	cc, numero := partesEntityRef(entityRef)
	if cc == "" {
		return entity.Punto{}, &domain.ErrorMapeo{
			Campo:  "entityReferenceID",
			Motivo: fmt.Sprintf("referencia %q sin código de cliente", entityRef),
		}
	}
	codCliente, ok := entity.ClienteDeCC(cc)
	if !ok {
		return entity.Punto{}, &domain.CodigoDesconocidoError{Dominio: "cliente", Codigo: cc}
	}

	normalizado := sinCerosIzquierda(numero)
	if p, err := ref.PuntoPorCodigo(codCliente, normalizado); err == nil {
		return p, nil
	}
	if p, err := ref.Punto(codCliente, numero); err == nil {
		return p, nil
	}
	return ref.Punto(codCliente, normalizado)
}

// partesEntityRef separa el entityReferenceID en código CC y número de punto.
// Formatos admitidos: "52-SUC-0075", "52-0075" y "SUC-0075" (sin CC).
func partesEntityRef(entityRef string) (cc, numero string) {
	partes := strings.Split(strings.ReplaceAll(entityRef, "-SUC-", "-"), "-")
	numero = partes[len(partes)-1]
	if len(partes) >= 2 && partes[0] != "SUC" {
		cc = partes[0]
	}
	return cc, numero
}

// valoresDenominaciones suma los montos declarados por denominación. El
// atributo amount ya es valor monetario; el código facial solo clasifica
// entre billete y moneda. Las denominaciones ilegibles no suman y las que no
// están en el catálogo de columnas suman pero no van al informe.
func valoresDenominaciones(denoms []dto.DenominacionXML) (billete, moneda int64, porColumna map[string]int64) {
	porColumna = make(map[string]int64, len(denoms))
	catalogo := make(map[string]bool, len(entity.ColumnasDenominacion))
	for _, c := range entity.ColumnasDenominacion {
		catalogo[c] = true
	}
	for _, d := range denoms {
		code := strings.TrimSpace(d.Code)
		facial, ok := valorDenominacion(code)
		if !ok {
			continue
		}
		monto, err := limpiarMonto("amount", d.Amount)
		if err != nil {
			continue
		}
		if entity.TipoDenominacion(facial) == entity.DenominacionBillete {
			billete += monto
		} else {
			moneda += monto
		}
		if catalogo[code] {
			porColumna[code] += monto
		}
	}
	return billete, moneda, porColumna
}

// DenominacionesPorColumna expone el desglose por columna del catálogo, con
// las mismas reglas de limpieza que usa el mapeo, para armar el informe.
func DenominacionesPorColumna(denoms []dto.DenominacionXML) map[string]int64 {
	_, _, porColumna := valoresDenominaciones(denoms)
	return porColumna
}

func observacionesTransportadora(primaryTransport string) string {
	pt := strings.TrimSpace(primaryTransport)
	if pt == "" {
		return ""
	}
	return "Transportadora: " + pt
}
