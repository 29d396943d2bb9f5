package mapeo_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vatco/ingesta-servicios/internal/application/dto"
	"github.com/vatco/ingesta-servicios/internal/application/mapeo"
	"github.com/vatco/ingesta-servicios/internal/domain"
	"github.com/vatco/ingesta-servicios/internal/domain/entity"
)

const usuarioPrueba = "e5926e18-33b1-468c-a979-e4e839a86f30"

// referenciasParaMapeo arma el snapshot que comparten los tests de mapeo TXT
// y XML: el cliente 45 (CC 52 del banco) con tres puntos que cubren las
// variantes de búsqueda.
func referenciasParaMapeo() *entity.Referencias {
	return entity.NewReferencias(
		[]entity.Ciudad{{Codigo: "11001", Nombre: "BOGOTÁ D.C."}},
		[]entity.Cliente{{Codigo: "45", Nombre: "BANCO CUATRO", NIT: "860034313"}},
		[]entity.Sucursal{{Codigo: "2", Nombre: "BOGOTÁ"}},
		[]entity.Punto{
			{
				Codigo:          "7001",
				CodPuntoCliente: "17",
				CodCliente:      "45",
				CodSucursal:     "2",
				CodFondo:        "901",
				Nombre:          "OFICINA CENTRO",
				CodCiudad:       "11001",
				Ciudad:          "BOGOTÁ D.C.",
				Sucursal:        "BOGOTÁ",
			},
			{
				Codigo:          "8002",
				CodPuntoCliente: "0075",
				CodCliente:      "45",
				CodSucursal:     "2",
				Nombre:          "ATM NORTE",
			},
			{
				Codigo:          "9003",
				CodPuntoCliente: "75",
				CodCliente:      "45",
				CodSucursal:     "2",
				Nombre:          "OFICINA SUR",
			},
		},
	)
}

// pedidoProvision es un pedido TIPO 2 de aprovisionamiento con dos gavetas:
// una de billete y una de moneda.
func pedidoProvision() dto.PedidoTXT {
	encabezado := dto.EncabezadoTXT{
		Interfase:       "TR2",
		FechaGeneracion: "14032026",
		NITCliente:      "860034313",
	}
	gaveta := dto.LineaTipo2{
		Servicio:      "4 - APROVISIONAMIENTO DE ATM NIVEL 7",
		Ciudad:        "11001",
		FechaServicio: "15032026",
		CodigoPunto:   "17",
		Categoria:     "1",
		Gaveta:        "1",
		Denominacion:  "50.000",
		Cantidad:      "30",
		Valor:         "1.500.000",
		TipoRuta:      "D",
		TipoValor:     "1",
		Codigo:        "1045",
	}
	moneda := gaveta
	moneda.Gaveta = "2"
	moneda.Denominacion = "500"
	moneda.Cantidad = "40"
	moneda.Valor = "20.000"

	return dto.PedidoTXT{
		Indice:     1,
		Codigo:     "1045",
		Encabezado: encabezado,
		Gavetas:    []dto.LineaTipo2{gaveta, moneda},
	}
}

func TestMapeadorTXT_Provision(t *testing.T) {
	m := mapeo.NewMapeadorTXT(usuarioPrueba)
	registro, err := m.Mapear(referenciasParaMapeo(), pedidoProvision(), "C4U-45ordenes.txt")
	require.NoError(t, err)

	s := registro.Servicio
	assert.Equal(t, "1045", s.NumeroPedido)
	assert.Equal(t, 45, s.CodCliente)
	assert.Equal(t, 2, s.CodSucursal)
	assert.Equal(t, entity.ConceptoProvisionATM, s.CodConcepto, "los TXT del banco siempre registran provisión de ATM")
	assert.Equal(t, entity.EstadoSolicitado, s.CodEstado)
	assert.Equal(t, entity.ModalidadAPedido, s.ModalidadServicio)

	// El punto tiene fondo: el origen es el fondo y el destino el punto.
	assert.Equal(t, "901", s.CodPuntoOrigen)
	assert.Equal(t, entity.IndicadorFondo, s.IndicadorTipoOrigen)
	assert.Equal(t, "7001", s.CodPuntoDestino)
	assert.Equal(t, entity.IndicadorPunto, s.IndicadorTipoDestino)

	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), s.FechaSolicitud)
	require.NotNil(t, s.FechaProgramacion)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), *s.FechaProgramacion)

	assert.True(t, decimal.NewFromInt(1_500_000).Equal(s.ValorBillete), "50.000 x 30")
	assert.True(t, decimal.NewFromInt(20_000).Equal(s.ValorMoneda), "500 x 40")
	assert.True(t, decimal.NewFromInt(1_520_000).Equal(s.ValorServicio))

	tr := registro.Transaccion
	assert.Equal(t, "COP", tr.Divisa)
	assert.Equal(t, entity.TipoTransaccionProvision, tr.TipoTransaccion)
	assert.Equal(t, entity.TransaccionRegistroTesoreria, tr.EstadoTransaccion)
	assert.True(t, decimal.NewFromInt(1_520_000).Equal(tr.ValorTotalDeclarado))

	require.NoError(t, s.Validar(), "todo registro mapeado debe pasar la validación de entidad")
	require.NoError(t, tr.Validar())
	assert.Equal(t, "C4U-45ordenes.txt", s.ArchivoDetalle)
	assert.Equal(t, usuarioPrueba, s.UsuarioRegistroID)
}

func TestMapeadorTXT_RecoleccionNoDeclaraValores(t *testing.T) {
	pedido := pedidoProvision()
	for i := range pedido.Gavetas {
		pedido.Gavetas[i].Servicio = "5 - RECOLECCIÓN DE VALORES"
	}

	registro, err := mapeo.NewMapeadorTXT(usuarioPrueba).Mapear(referenciasParaMapeo(), pedido, "a.txt")
	require.NoError(t, err)

	assert.True(t, registro.Servicio.ValorServicio.IsZero(),
		"en recolección los valores se conocen después del conteo")
	assert.True(t, registro.Transaccion.ValorTotalDeclarado.IsZero())
}

func TestMapeadorTXT_ValorAusenteNoSeValida(t *testing.T) {
	pedido := pedidoProvision()
	for i := range pedido.Gavetas {
		pedido.Gavetas[i].Valor = ""
	}

	registro, err := mapeo.NewMapeadorTXT(usuarioPrueba).Mapear(referenciasParaMapeo(), pedido, "a.txt")
	require.NoError(t, err, "sin VALOR declarado no hay nada que cuadrar")
	assert.True(t, decimal.NewFromInt(1_520_000).Equal(registro.Servicio.ValorServicio))
}

func TestMapeadorTXT_PuntoSinFondo(t *testing.T) {
	pedido := pedidoProvision()
	for i := range pedido.Gavetas {
		pedido.Gavetas[i].CodigoPunto = "0075"
	}

	registro, err := mapeo.NewMapeadorTXT(usuarioPrueba).Mapear(referenciasParaMapeo(), pedido, "a.txt")
	require.NoError(t, err)

	s := registro.Servicio
	assert.Equal(t, "8002", s.CodPuntoOrigen, "sin fondo el origen cae al punto")
	assert.Equal(t, entity.IndicadorPunto, s.IndicadorTipoOrigen)
}

func TestMapeadorTXT_DivisaPorTipoValor(t *testing.T) {
	pedido := pedidoProvision()
	for i := range pedido.Gavetas {
		pedido.Gavetas[i].TipoValor = "3"
	}

	registro, err := mapeo.NewMapeadorTXT(usuarioPrueba).Mapear(referenciasParaMapeo(), pedido, "a.txt")
	require.NoError(t, err)
	assert.Equal(t, "USD", registro.Transaccion.Divisa)
}

func TestMapeadorTXT_FechaGeneracionIlegibleNoRechaza(t *testing.T) {
	pedido := pedidoProvision()
	pedido.Encabezado.FechaGeneracion = "份份份份"

	registro, err := mapeo.NewMapeadorTXT(usuarioPrueba).Mapear(referenciasParaMapeo(), pedido, "a.txt")
	require.NoError(t, err, "una fecha de generación ilegible no invalida el pedido")
	assert.WithinDuration(t, time.Now(), registro.Servicio.FechaSolicitud, time.Minute,
		"sin fecha de generación vale la fecha del día")
}

func TestMapeadorTXT_Rechazos(t *testing.T) {
	casos := []struct {
		nombre string
		mutar  func(p *dto.PedidoTXT)
		esIs   error
	}{
		{"pedido sin código", func(p *dto.PedidoTXT) { p.Codigo = "" }, nil},
		{"pedido sin gavetas", func(p *dto.PedidoTXT) { p.Gavetas = nil }, nil},
		{"NIT desconocido", func(p *dto.PedidoTXT) { p.Encabezado.NITCliente = "999999999" }, domain.ErrCodigoDesconocido},
		{"punto desconocido", func(p *dto.PedidoTXT) {
			for i := range p.Gavetas {
				p.Gavetas[i].CodigoPunto = "404"
			}
		}, domain.ErrCodigoDesconocido},
		{"fecha de servicio malformada", func(p *dto.PedidoTXT) {
			for i := range p.Gavetas {
				p.Gavetas[i].FechaServicio = "2026-03-15"
			}
		}, nil},
		{"denominación no numérica", func(p *dto.PedidoTXT) {
			p.Gavetas[0].Denominacion = "cincuenta mil"
		}, nil},
		{"valor declarado descuadrado", func(p *dto.PedidoTXT) {
			p.Gavetas[0].Valor = "1.499.000"
		}, nil},
		{"servicio sin código numérico", func(p *dto.PedidoTXT) {
			for i := range p.Gavetas {
				p.Gavetas[i].Servicio = "APROVISIONAMIENTO"
			}
		}, nil},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			pedido := pedidoProvision()
			c.mutar(&pedido)
			_, err := mapeo.NewMapeadorTXT(usuarioPrueba).Mapear(referenciasParaMapeo(), pedido, "a.txt")
			require.Error(t, err)
			if c.esIs != nil {
				assert.ErrorIs(t, err, c.esIs)
			}
		})
	}
}
