package archivo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vatco/ingesta-servicios/internal/domain"
	"github.com/vatco/ingesta-servicios/internal/infrastructure/archivo"
)

const documentoOrdenes = `<?xml version="1.0" encoding="UTF-8"?>
<deliverySet>
  <remit id="3088" pickupDate="2026-03-14" deliveryDate="2026-03-14T08:30:00" currency="COP">
    <entity entityReferenceID="52-0017" costCenter="CC-12"/>
  </remit>
  <order id="2045" orderDate="2026-03-14T16:40:09" deliveryDate="2026-03-16"
         primaryTransport="BRINKS" orderType="1" currency="COP">
    <entity entityReferenceID="52-SUC-0017" routingNumber="R-88"/>
    <denominations>
      <denom code="50000AD" amount="1500000"/>
      <denom code="500AD" amount="20000"/>
    </denominations>
  </order>
</deliverySet>`

func TestLectorXML_ExtraeOrdenesYRemesas(t *testing.T) {
	archivoXML, err := archivo.NewLectorXML().Parsear([]byte(documentoOrdenes))
	require.NoError(t, err)

	assert.Len(t, archivoXML.Huella, 64)
	require.Len(t, archivoXML.Elementos, 2)

	orden := archivoXML.Elementos[0]
	assert.Equal(t, "order", orden.Tipo, "las órdenes van primero aunque el documento traiga la remesa antes")
	assert.Equal(t, 1, orden.Indice)
	assert.Equal(t, "2045", orden.ID)
	assert.Equal(t, "2026-03-14T16:40:09", orden.OrderDate)
	assert.Equal(t, "2026-03-16", orden.DeliveryDate)
	assert.Equal(t, "BRINKS", orden.PrimaryTransport)
	assert.Equal(t, "1", orden.OrderType)
	assert.Equal(t, "52-SUC-0017", orden.EntityReferenceID)
	assert.Equal(t, "R-88", orden.RoutingNumber)
	require.Len(t, orden.Denominaciones, 2, "las denominaciones se buscan en cualquier descendiente")
	assert.Equal(t, "50000AD", orden.Denominaciones[0].Code)
	assert.Equal(t, "1500000", orden.Denominaciones[0].Amount)

	remesa := archivoXML.Elementos[1]
	assert.Equal(t, "remit", remesa.Tipo)
	assert.Equal(t, 2, remesa.Indice, "el índice es continuo entre los dos grupos")
	assert.Equal(t, "3088", remesa.ID)
	assert.Equal(t, "2026-03-14", remesa.PickupDate)
	assert.Equal(t, "CC-12", remesa.CostCenter)
	assert.Empty(t, remesa.Denominaciones)
}

func TestLectorXML_OrderTypeAusenteEsNormal(t *testing.T) {
	doc := `<deliverySet><order id="1" orderDate="2026-03-14"><entity entityReferenceID="52-0017"/></order></deliverySet>`

	archivoXML, err := archivo.NewLectorXML().Parsear([]byte(doc))
	require.NoError(t, err)
	require.Len(t, archivoXML.Elementos, 1)
	assert.Equal(t, "0", archivoXML.Elementos[0].OrderType)
	assert.False(t, archivoXML.Elementos[0].EsEmergencia())
}

func TestLectorXML_SinOrderNiRemit(t *testing.T) {
	_, err := archivo.NewLectorXML().Parsear([]byte(`<deliverySet><otro/></deliverySet>`))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSinRegistros)
}

func TestLectorXML_DocumentoInvalido(t *testing.T) {
	_, err := archivo.NewLectorXML().Parsear([]byte(`<deliverySet><order id="1"`))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrArchivoMalformado)
}

func TestLectorXML_DocumentoVacio(t *testing.T) {
	_, err := archivo.NewLectorXML().Parsear([]byte("  \n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrArchivoMalformado)
}
