package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vatco/ingesta-servicios/internal/domain"
)

// ToleranciaValores es la diferencia máxima admitida entre el valor total del
// servicio y la suma de billete + moneda.
var ToleranciaValores = decimal.NewFromFloat(0.01)

// Servicio representa una fila de cgs_servicios lista para insertar. La clave
// natural es (NumeroPedido, CodCliente, CodSucursal); el constraint único del
// almacén de escritura la protege de inserciones repetidas.
type Servicio struct {
	// Clave natural
	NumeroPedido string
	CodCliente   int
	CodSucursal  int

	// Clasificación
	CodConcepto  int
	TipoTraslado string
	CodEstado    int

	// Solicitud
	FechaSolicitud time.Time
	HoraSolicitud  string

	// Origen y destino del traslado
	CodClienteOrigen     int
	CodPuntoOrigen       string
	IndicadorTipoOrigen  string
	CodClienteDestino    int
	CodPuntoDestino      string
	IndicadorTipoDestino string

	// Programación: los archivos del banco traen la fecha pactada del
	// servicio; el resto del ciclo de vida queda vacío en la ingesta.
	FechaProgramacion *time.Time
	HoraProgramacion  string

	// Ciclo de vida posterior (siempre vacío al insertar)
	FechaAceptacion      *time.Time
	HoraAceptacion       string
	FechaAtencionInicial *time.Time
	HoraAtencionInicial  string
	FechaAtencionFinal   *time.Time
	HoraAtencionFinal    string
	FechaCancelacion     *time.Time
	HoraCancelacion      string
	FechaRechazo         *time.Time
	HoraRechazo          string

	// Fallido / cancelación (siempre vacíos al insertar)
	Fallido             bool
	ResponsableFallido  string
	RazonFallido        string
	PersonaCancelacion  string
	OperadorCancelacion string
	MotivoCancelacion   string

	// Valores declarados
	ValorBillete  decimal.Decimal
	ValorMoneda   decimal.Decimal
	ValorServicio decimal.Decimal

	// Metadatos de la operación
	CodOsCliente       string
	ModalidadServicio  string
	Observaciones      string
	Clave              string
	OperadorCgsID      string
	SucursalCgs        string
	IPOperador         string
	NumeroKitsCambio   int
	NumeroBolsasMoneda int
	ArchivoDetalle     string
	UsuarioRegistroID  string
}

// EsProvision indica si el servicio declara valores de antemano.
func (s *Servicio) EsProvision() bool {
	return EsProvision(s.CodConcepto)
}

// Validar verifica la integridad del servicio antes de entregarlo al
// registrador. Las reglas de negocio deben cumplirse aquí: el registrador no
// valida nada.
func (s *Servicio) Validar() error {
	if strings.TrimSpace(s.NumeroPedido) == "" {
		return fmt.Errorf("numero_pedido vacío: %w", domain.ErrEntradaInvalida)
	}
	if s.CodCliente <= 0 {
		return fmt.Errorf("cod_cliente debe ser mayor a 0: %w", domain.ErrEntradaInvalida)
	}
	if s.CodSucursal <= 0 {
		return fmt.Errorf("cod_sucursal debe ser mayor a 0: %w", domain.ErrEntradaInvalida)
	}
	if s.CodConcepto < ConceptoRecoleccion || s.CodConcepto > ConceptoProvisionATM {
		return fmt.Errorf("cod_concepto %d fuera del catálogo: %w", s.CodConcepto, domain.ErrEntradaInvalida)
	}
	if s.CodEstado < EstadoSolicitado || s.CodEstado > EstadoPendiente {
		return fmt.Errorf("cod_estado %d fuera del catálogo: %w", s.CodEstado, domain.ErrEntradaInvalida)
	}
	if strings.TrimSpace(s.CodPuntoOrigen) == "" {
		return fmt.Errorf("cod_punto_origen vacío: %w", domain.ErrEntradaInvalida)
	}
	if strings.TrimSpace(s.CodPuntoDestino) == "" {
		return fmt.Errorf("cod_punto_destino vacío: %w", domain.ErrEntradaInvalida)
	}
	if !IndicadorValido(s.IndicadorTipoOrigen) {
		return fmt.Errorf("indicador_tipo_origen %q fuera del catálogo C/P/F: %w", s.IndicadorTipoOrigen, domain.ErrEntradaInvalida)
	}
	if !IndicadorValido(s.IndicadorTipoDestino) {
		return fmt.Errorf("indicador_tipo_destino %q fuera del catálogo C/P/F: %w", s.IndicadorTipoDestino, domain.ErrEntradaInvalida)
	}
	if s.FechaSolicitud.IsZero() {
		return fmt.Errorf("fecha_solicitud vacía: %w", domain.ErrEntradaInvalida)
	}
	if s.ValorBillete.IsNegative() || s.ValorMoneda.IsNegative() || s.ValorServicio.IsNegative() {
		return fmt.Errorf("los valores del servicio no pueden ser negativos: %w", domain.ErrEntradaInvalida)
	}
	suma := s.ValorBillete.Add(s.ValorMoneda)
	if s.ValorServicio.Sub(suma).Abs().GreaterThan(ToleranciaValores) {
		return fmt.Errorf("valor_servicio %s no coincide con billete+moneda %s: %w",
			s.ValorServicio, suma, domain.ErrEntradaInvalida)
	}
	switch s.ModalidadServicio {
	case ModalidadRegular, ModalidadAPedido, ModalidadEspecial:
	default:
		return fmt.Errorf("modalidad_servicio %q fuera del catálogo: %w", s.ModalidadServicio, domain.ErrEntradaInvalida)
	}
	return nil
}
