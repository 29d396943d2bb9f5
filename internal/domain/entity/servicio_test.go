package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vatco/ingesta-servicios/internal/domain"
	"github.com/vatco/ingesta-servicios/internal/domain/entity"
)

// servicioValido construye un servicio de aprovisionamiento que pasa todas
// las validaciones; cada caso muta el campo que quiere romper.
func servicioValido() *entity.Servicio {
	return &entity.Servicio{
		NumeroPedido:         "1045",
		CodCliente:           45,
		CodSucursal:          2,
		CodConcepto:          entity.ConceptoProvisionOficina,
		CodEstado:            entity.EstadoSolicitado,
		FechaSolicitud:       time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		CodClienteOrigen:     45,
		CodPuntoOrigen:       "901",
		IndicadorTipoOrigen:  entity.IndicadorFondo,
		CodClienteDestino:    45,
		CodPuntoDestino:      "17",
		IndicadorTipoDestino: entity.IndicadorPunto,
		ValorBillete:         decimal.NewFromInt(1_500_000),
		ValorMoneda:          decimal.NewFromInt(20_000),
		ValorServicio:        decimal.NewFromInt(1_520_000),
		ModalidadServicio:    entity.ModalidadRegular,
		UsuarioRegistroID:    "e5926e18-33b1-468c-a979-e4e839a86f30",
	}
}

func TestServicioValidar_ServicioCompleto(t *testing.T) {
	require.NoError(t, servicioValido().Validar())
}

func TestServicioValidar_Rechazos(t *testing.T) {
	casos := []struct {
		nombre string
		mutar  func(s *entity.Servicio)
	}{
		{"pedido vacío", func(s *entity.Servicio) { s.NumeroPedido = "   " }},
		{"cliente cero", func(s *entity.Servicio) { s.CodCliente = 0 }},
		{"sucursal negativa", func(s *entity.Servicio) { s.CodSucursal = -1 }},
		{"concepto fuera de catálogo", func(s *entity.Servicio) { s.CodConcepto = 9 }},
		{"estado fuera de catálogo", func(s *entity.Servicio) { s.CodEstado = 8 }},
		{"punto origen vacío", func(s *entity.Servicio) { s.CodPuntoOrigen = "" }},
		{"punto destino vacío", func(s *entity.Servicio) { s.CodPuntoDestino = " " }},
		{"indicador origen inválido", func(s *entity.Servicio) { s.IndicadorTipoOrigen = "X" }},
		{"indicador destino inválido", func(s *entity.Servicio) { s.IndicadorTipoDestino = "" }},
		{"sin fecha de solicitud", func(s *entity.Servicio) { s.FechaSolicitud = time.Time{} }},
		{"valor billete negativo", func(s *entity.Servicio) { s.ValorBillete = decimal.NewFromInt(-1) }},
		{"valor moneda negativo", func(s *entity.Servicio) { s.ValorMoneda = decimal.NewFromInt(-1) }},
		{"modalidad fuera de catálogo", func(s *entity.Servicio) { s.ModalidadServicio = "4" }},
		{"total no cuadra con billete+moneda", func(s *entity.Servicio) {
			s.ValorServicio = decimal.NewFromInt(1_520_100)
		}},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			s := servicioValido()
			c.mutar(s)
			err := s.Validar()
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
		})
	}
}

func TestServicioValidar_ToleranciaDeCentavo(t *testing.T) {
	s := servicioValido()
	s.ValorServicio = s.ValorBillete.Add(s.ValorMoneda).Add(decimal.NewFromFloat(0.01))
	assert.NoError(t, s.Validar(), "una diferencia de un centavo es redondeo, no error")

	s.ValorServicio = s.ValorBillete.Add(s.ValorMoneda).Add(decimal.NewFromFloat(0.02))
	assert.Error(t, s.Validar(), "más de un centavo de diferencia es inconsistencia")
}

func TestServicioEsProvision(t *testing.T) {
	s := servicioValido()
	assert.True(t, s.EsProvision())

	s.CodConcepto = entity.ConceptoRecoleccion
	assert.False(t, s.EsProvision())

	s.CodConcepto = entity.ConceptoProvisionATM
	assert.True(t, s.EsProvision())
}
