package entity_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vatco/ingesta-servicios/internal/domain"
	"github.com/vatco/ingesta-servicios/internal/domain/entity"
)

func referenciasDePrueba() *entity.Referencias {
	return entity.NewReferencias(
		[]entity.Ciudad{{Codigo: "11001", Nombre: "BOGOTÁ D.C."}},
		[]entity.Cliente{
			{Codigo: "45", Nombre: "BANCO CUATRO", NIT: "860034313"},
			{Codigo: "46", Nombre: "BANCO SEIS", NIT: ""},
		},
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
		},
	)
}

func TestReferencias_BusquedasBasicas(t *testing.T) {
	ref := referenciasDePrueba()

	ciudad, err := ref.Ciudad("11001")
	require.NoError(t, err)
	assert.Equal(t, "BOGOTÁ D.C.", ciudad.Nombre)

	cliente, err := ref.Cliente("45")
	require.NoError(t, err)
	assert.Equal(t, "BANCO CUATRO", cliente.Nombre)

	sucursal, err := ref.Sucursal("2")
	require.NoError(t, err)
	assert.Equal(t, "BOGOTÁ", sucursal.Nombre)
}

func TestReferencias_RecortaEspaciosEnLasClaves(t *testing.T) {
	ref := referenciasDePrueba()

	ciudad, err := ref.Ciudad(" 11001 ")
	require.NoError(t, err, "los códigos llegan con relleno desde los archivos")
	assert.Equal(t, "BOGOTÁ D.C.", ciudad.Nombre)
}

func TestReferencias_ClientePorNIT(t *testing.T) {
	ref := referenciasDePrueba()

	cliente, err := ref.ClientePorNIT("860034313")
	require.NoError(t, err)
	assert.Equal(t, "45", cliente.Codigo)

	// Un NIT vacío no debe indexar al cliente que llegó sin documento.
	_, err = ref.ClientePorNIT("")
	require.Error(t, err)
}

func TestReferencias_PuntoPorLasDosClaves(t *testing.T) {
	ref := referenciasDePrueba()

	// Por el código con el que el cliente nombra el punto.
	punto, err := ref.Punto("45", "17")
	require.NoError(t, err)
	assert.Equal(t, "7001", punto.Codigo)
	assert.Equal(t, "OFICINA CENTRO", punto.Nombre)

	// Por la clave interna del punto.
	punto, err = ref.PuntoPorCodigo("45", "7001")
	require.NoError(t, err)
	assert.Equal(t, "17", punto.CodPuntoCliente)

	// Las dos búsquedas no se cruzan.
	_, err = ref.Punto("45", "7001")
	assert.Error(t, err)
	_, err = ref.PuntoPorCodigo("45", "17")
	assert.Error(t, err)
}

func TestReferencias_CodigoAusenteNombraDominioYCodigo(t *testing.T) {
	ref := referenciasDePrueba()

	_, err := ref.Ciudad("99999")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCodigoDesconocido)

	var codigoErr *domain.CodigoDesconocidoError
	require.True(t, errors.As(err, &codigoErr))
	assert.Equal(t, "ciudad", codigoErr.Dominio)
	assert.Equal(t, "99999", codigoErr.Codigo)

	_, err = ref.Punto("46", "17")
	require.Error(t, err, "el punto pertenece al cliente 45, no al 46")
}

func TestReferencias_Conteos(t *testing.T) {
	ciudades, clientes, sucursales, puntos := referenciasDePrueba().Conteos()
	assert.Equal(t, 1, ciudades)
	assert.Equal(t, 2, clientes)
	assert.Equal(t, 1, sucursales)
	assert.Equal(t, 1, puntos)
}
