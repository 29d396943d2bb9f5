package referencia_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vatco/ingesta-servicios/internal/application/referencia"
	"github.com/vatco/ingesta-servicios/internal/domain"
	"github.com/vatco/ingesta-servicios/internal/domain/entity"
	"github.com/vatco/ingesta-servicios/internal/domain/repository"
	"github.com/vatco/ingesta-servicios/pkg/logger"
)

// repoReferencias simula la fuente de solo lectura. fallarEn nombra la tabla
// cuya consulta debe fallar.
type repoReferencias struct {
	ciudades   []entity.Ciudad
	clientes   []entity.Cliente
	sucursales []entity.Sucursal
	puntos     []entity.Punto

	fallarEn   string
	permitidos []string
}

var _ repository.ReferenciaRepository = (*repoReferencias)(nil)

func (r *repoReferencias) Ciudades(ctx context.Context) ([]entity.Ciudad, error) {
	if r.fallarEn == "ciudades" {
		return nil, errors.New("conexión rechazada")
	}
	return r.ciudades, nil
}

func (r *repoReferencias) Clientes(ctx context.Context) ([]entity.Cliente, error) {
	if r.fallarEn == "clientes" {
		return nil, errors.New("conexión rechazada")
	}
	return r.clientes, nil
}

func (r *repoReferencias) Sucursales(ctx context.Context) ([]entity.Sucursal, error) {
	if r.fallarEn == "sucursales" {
		return nil, errors.New("conexión rechazada")
	}
	return r.sucursales, nil
}

func (r *repoReferencias) Puntos(ctx context.Context, clientesPermitidos []string) ([]entity.Punto, error) {
	r.permitidos = clientesPermitidos
	if r.fallarEn == "puntos" {
		return nil, errors.New("conexión rechazada")
	}
	return r.puntos, nil
}

func repoPoblado() *repoReferencias {
	return &repoReferencias{
		ciudades:   []entity.Ciudad{{Codigo: "11001", Nombre: "BOGOTÁ D.C."}},
		clientes:   []entity.Cliente{{Codigo: "45", Nombre: "BANCO CUATRO", NIT: "860034313"}},
		sucursales: []entity.Sucursal{{Codigo: "2", Nombre: "BOGOTÁ"}},
		puntos: []entity.Punto{
			{Codigo: "7001", CodPuntoCliente: "17", CodCliente: "45", CodSucursal: "2"},
		},
	}
}

func nuevoCargador(repo *repoReferencias) *referencia.CargadorReferencias {
	return referencia.NewCargadorReferencias(repo, []string{"45", "46"}, time.Second, logger.Nop())
}

func TestCargador_CargaYPublica(t *testing.T) {
	repo := repoPoblado()
	c := nuevoCargador(repo)

	require.NoError(t, c.Cargar(context.Background()))
	assert.Equal(t, []string{"45", "46"}, repo.permitidos,
		"la consulta de puntos se acota a los clientes permitidos")

	ref, err := c.Activas()
	require.NoError(t, err)

	cliente, err := ref.ClientePorNIT("860034313")
	require.NoError(t, err)
	assert.Equal(t, "45", cliente.Codigo)

	punto, err := ref.Punto("45", "17")
	require.NoError(t, err)
	assert.Equal(t, "7001", punto.Codigo)
}

func TestCargador_ActivasSinCargaPrevia(t *testing.T) {
	c := nuevoCargador(repoPoblado())

	_, err := c.Activas()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFuenteDatos)
}

func TestCargador_TablaRequeridaVacia(t *testing.T) {
	repo := repoPoblado()
	repo.puntos = nil
	c := nuevoCargador(repo)

	err := c.Cargar(context.Background())
	require.Error(t, err, "sin puntos no hay contra qué resolver códigos")
	assert.ErrorIs(t, err, domain.ErrFuenteDatos)

	_, err = c.Activas()
	assert.Error(t, err, "una carga fallida no publica snapshot")
}

func TestCargador_ConsultaFallida(t *testing.T) {
	repo := repoPoblado()
	repo.fallarEn = "clientes"
	c := nuevoCargador(repo)

	err := c.Cargar(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFuenteDatos)
	assert.ErrorContains(t, err, "clientes")
}

func TestCargador_RecargaFallidaConservaElSnapshot(t *testing.T) {
	repo := repoPoblado()
	c := nuevoCargador(repo)
	require.NoError(t, c.Cargar(context.Background()))

	vigente, err := c.Activas()
	require.NoError(t, err)

	repo.fallarEn = "sucursales"
	require.Error(t, c.Cargar(context.Background()))

	despues, err := c.Activas()
	require.NoError(t, err)
	assert.Same(t, vigente, despues, "la recarga fallida no toca el snapshot vigente")
}

func TestCargador_RecargaPublicaUnSnapshotNuevo(t *testing.T) {
	repo := repoPoblado()
	c := nuevoCargador(repo)
	require.NoError(t, c.Cargar(context.Background()))

	anterior, err := c.Activas()
	require.NoError(t, err)
	_, err = anterior.Punto("45", "99")
	require.Error(t, err)

	repo.puntos = append(repo.puntos, entity.Punto{
		Codigo: "8002", CodPuntoCliente: "99", CodCliente: "45", CodSucursal: "2",
	})
	require.NoError(t, c.Cargar(context.Background()))

	nuevo, err := c.Activas()
	require.NoError(t, err)
	assert.NotSame(t, anterior, nuevo)

	punto, err := nuevo.Punto("45", "99")
	require.NoError(t, err)
	assert.Equal(t, "8002", punto.Codigo)
}
