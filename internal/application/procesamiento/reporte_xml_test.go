package procesamiento_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vatco/ingesta-servicios/internal/application/dto"
)

func TestReporteXML_HojasYDecoracion(t *testing.T) {
	b := armarXML()

	emergencia := orderProceso(2, "2046")
	emergencia.OrderType = "3"

	// El punto 4040 no existe: la fila queda con los textos de respaldo y el
	// registro rechazado.
	perdido := orderProceso(3, "2047")
	perdido.EntityReferenceID = "52-4040"
	perdido.DeliveryDate = "pronto"

	ruta := b.conArchivo("C4U-45ordenes.xml", &dto.ArchivoXML{
		Elementos: []dto.ElementoXML{
			orderProceso(1, "2045"),
			emergencia,
			perdido,
			remitProceso(4, "3088"),
		},
	})

	b.procesador.Procesar(context.Background(), ruta, referenciasProceso())

	reporte := b.reportes.ultimoXML
	require.NotNil(t, reporte)
	assert.Equal(t, "C4U-45ordenes.xml", reporte.Archivo)
	require.Len(t, reporte.Provision, 3, "las órdenes van a la hoja de provisión")
	require.Len(t, reporte.Recoleccion, 1, "las remesas van a la hoja de recolección")

	fila := reporte.Provision[0]
	assert.Equal(t, "2045", fila.ID)
	assert.Equal(t, "16/03/2026", fila.FechaEntrega)
	assert.Equal(t, "52-SUC-0017", fila.Codigo, "la referencia se muestra tal como llegó")
	assert.Equal(t, "BANCO CUATRO", fila.Entidad)
	assert.Equal(t, "OFICINA CENTRO", fila.NombrePunto)
	assert.Equal(t, "BOGOTÁ D.C.", fila.Ciudad)
	assert.Equal(t, "NORMAL", fila.TipoServicio)
	assert.Equal(t, "BRINKS", fila.Transportadora)
	assert.Equal(t, map[string]int64{"50000AD": 1_500_000}, fila.Denominaciones)
	assert.Equal(t, int64(1_500_000), fila.Total)
	assert.Equal(t, dto.EstadoReporteInsertado, fila.Estado)
	assert.Equal(t, "S-000001", fila.Orden)

	assert.Equal(t, "EMERGENCIA", reporte.Provision[1].TipoServicio)

	celdas := reporte.Provision[2]
	assert.Equal(t, dto.TextoClienteNoEncontrado, celdas.Entidad)
	assert.Equal(t, dto.TextoPuntoNoEncontrado, celdas.NombrePunto)
	assert.Equal(t, dto.TextoCiudadNoEncontrada, celdas.Ciudad)
	assert.Equal(t, "pronto", celdas.FechaEntrega, "una entrega que no parsea se muestra tal cual")
	assert.Equal(t, dto.EstadoReporteRechazado, celdas.Estado)
	assert.Contains(t, celdas.Motivo, "Error de validación")

	remesa := reporte.Recoleccion[0]
	assert.Equal(t, "3088", remesa.ID)
	assert.Equal(t, dto.EstadoReporteInsertado, remesa.Estado)
	assert.Zero(t, remesa.Total, "las remesas no declaran denominaciones")
}

func TestReporteXML_Rango(t *testing.T) {
	b := armarXML()

	mismoDia := orderProceso(1, "2045")
	mismoDia.OrderDate = "2026-03-14T16:40:09"
	mismoDia.DeliveryDate = "2026-03-14T08:30:00"

	otroDia := orderProceso(2, "2046")
	otroDia.OrderDate = "2026-03-14T16:40:09"
	otroDia.DeliveryDate = "2026-03-16T08:30:00"

	sinHora := orderProceso(3, "2047")
	sinHora.OrderDate = "2026-03-14T16:40:09"
	sinHora.DeliveryDate = "2026-03-14"

	remesaMismoDia := remitProceso(4, "3088")
	remesaMismoDia.PickupDate = "2026-03-14"
	remesaMismoDia.DeliveryDate = "2026-03-14T07:15:00"

	remesaOtroDia := remitProceso(5, "3089")
	remesaOtroDia.PickupDate = "2026-03-14"
	remesaOtroDia.DeliveryDate = "2026-03-16T07:15:00"

	ruta := b.conArchivo("a.xml", &dto.ArchivoXML{
		Elementos: []dto.ElementoXML{mismoDia, otroDia, sinHora, remesaMismoDia, remesaOtroDia},
	})

	b.procesador.Procesar(context.Background(), ruta, referenciasProceso())

	reporte := b.reportes.ultimoXML
	require.NotNil(t, reporte)
	require.Len(t, reporte.Provision, 3)
	require.Len(t, reporte.Recoleccion, 2)

	assert.Equal(t, "08:30", reporte.Provision[0].Rango,
		"entrega el mismo día con hora: el rango es la hora")
	assert.Equal(t, "R-88", reporte.Provision[1].Rango,
		"entrega otro día: el rango es el número de ruta")
	assert.Equal(t, "R-88", reporte.Provision[2].Rango,
		"entrega el mismo día pero sin hora: cae al número de ruta")
	assert.Equal(t, "07:15", reporte.Recoleccion[0].Rango)
	assert.Equal(t, "CC-12", reporte.Recoleccion[1].Rango,
		"en las remesas el respaldo es el centro de costo")
}
