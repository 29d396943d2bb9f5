package entity

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"github.com/vatco/ingesta-servicios/internal/domain"
)

// Transaccion representa la fila de cef_transacciones ligada 1:1 al servicio
// por la operación atómica de inserción.
type Transaccion struct {
	// Obligatorios
	CodSucursal       int
	FechaRegistro     time.Time
	UsuarioRegistroID string

	// Ruta y planilla
	CodRuta        string
	NumeroPlanilla int

	// Divisa y tipo
	Divisa          string
	TipoTransaccion string

	// Conteo
	NumeroMesaConteo int

	// Cantidades declaradas
	CantidadBolsasDeclaradas     int
	CantidadSobresDeclarados     int
	CantidadChequesDeclarados    int
	CantidadDocumentosDeclarados int

	// Valores declarados
	ValorBilletesDeclarado   decimal.Decimal
	ValorMonedasDeclarado    decimal.Decimal
	ValorDocumentosDeclarado decimal.Decimal
	ValorTotalDeclarado      decimal.Decimal

	// Valores en letras (los llena el backoffice)
	ValorTotalDeclaradoLetras string
	ValorTotalContadoLetras   string

	// Novedades y flags
	NovedadInformativa string
	EsCustodia         bool
	EsPuntoAPunto      bool

	// Estado
	EstadoTransaccion string

	// Trazabilidad
	IPRegistro           string
	ResponsableEntregaID string
	ResponsableRecibeID  string
}

// Validar verifica la integridad de la transacción antes del registro.
func (t *Transaccion) Validar() error {
	if t.CodSucursal <= 0 {
		return fmt.Errorf("cod_sucursal debe ser mayor a 0: %w", domain.ErrEntradaInvalida)
	}
	if strings.TrimSpace(t.UsuarioRegistroID) == "" {
		return fmt.Errorf("usuario_registro_id vacío: %w", domain.ErrEntradaInvalida)
	}
	if t.FechaRegistro.IsZero() {
		return fmt.Errorf("fecha_registro vacía: %w", domain.ErrEntradaInvalida)
	}
	if !divisaValida(t.Divisa) {
		return fmt.Errorf("divisa %q debe ser 3 letras: %w", t.Divisa, domain.ErrEntradaInvalida)
	}
	if t.TipoTransaccion != TipoTransaccionRecoleccion && t.TipoTransaccion != TipoTransaccionProvision {
		return fmt.Errorf("tipo_transaccion %q fuera del catálogo RC/PV: %w", t.TipoTransaccion, domain.ErrEntradaInvalida)
	}
	if !EstadoTransaccionValido(t.EstadoTransaccion) {
		return fmt.Errorf("estado_transaccion %q fuera del catálogo: %w", t.EstadoTransaccion, domain.ErrEntradaInvalida)
	}
	if t.ValorBilletesDeclarado.IsNegative() || t.ValorMonedasDeclarado.IsNegative() ||
		t.ValorDocumentosDeclarado.IsNegative() || t.ValorTotalDeclarado.IsNegative() {
		return fmt.Errorf("los valores declarados no pueden ser negativos: %w", domain.ErrEntradaInvalida)
	}
	if t.CantidadBolsasDeclaradas < 0 || t.CantidadSobresDeclarados < 0 ||
		t.CantidadChequesDeclarados < 0 || t.CantidadDocumentosDeclarados < 0 {
		return fmt.Errorf("las cantidades declaradas no pueden ser negativas: %w", domain.ErrEntradaInvalida)
	}
	return nil
}

// ValorTotalCalculado suma billetes + monedas + documentos; útil para validar
// coherencia con ValorTotalDeclarado.
func (t *Transaccion) ValorTotalCalculado() decimal.Decimal {
	return t.ValorBilletesDeclarado.Add(t.ValorMonedasDeclarado).Add(t.ValorDocumentosDeclarado)
}

func divisaValida(divisa string) bool {
	if len(divisa) != 3 {
		return false
	}
	for _, r := range divisa {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
