// Package referencia mantiene el snapshot en memoria de las tablas de
// referencia del CGS (ciudades, clientes, sucursales, puntos).
package referencia

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/vatco/ingesta-servicios/internal/domain"
	"github.com/vatco/ingesta-servicios/internal/domain/entity"
	"github.com/vatco/ingesta-servicios/internal/domain/repository"
	"github.com/vatco/ingesta-servicios/pkg/logger"
)

// CargadorReferencias carga las tablas de referencia desde la fuente de solo
// lectura y publica el snapshot con un swap atómico: los mapeos en curso
// siguen viendo el snapshot anterior hasta que la recarga completa termina.
// Una recarga fallida no toca el snapshot vigente.
type CargadorReferencias struct {
	repo               repository.ReferenciaRepository
	clientesPermitidos []string
	timeout            time.Duration
	log                *logger.Logger

	activas atomic.Pointer[entity.Referencias]
}

// NewCargadorReferencias construye el cargador. clientesPermitidos acota los
// puntos que entran al snapshot.
func NewCargadorReferencias(
	repo repository.ReferenciaRepository,
	clientesPermitidos []string,
	timeout time.Duration,
	log *logger.Logger,
) *CargadorReferencias {
	return &CargadorReferencias{
		repo:               repo,
		clientesPermitidos: clientesPermitidos,
		timeout:            timeout,
		log:                log,
	}
}

// Cargar lee las cuatro tablas y publica un snapshot nuevo. Una tabla
// requerida vacía es una falla de fuente: no se procesa con referencias a
// medias, los archivos esperan en la carpeta de entrada.
func (c *CargadorReferencias) Cargar(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	ciudades, err := c.repo.Ciudades(ctx)
	if err != nil {
		return fmt.Errorf("cargar ciudades: %v: %w", err, domain.ErrFuenteDatos)
	}
	clientes, err := c.repo.Clientes(ctx)
	if err != nil {
		return fmt.Errorf("cargar clientes: %v: %w", err, domain.ErrFuenteDatos)
	}
	sucursales, err := c.repo.Sucursales(ctx)
	if err != nil {
		return fmt.Errorf("cargar sucursales: %v: %w", err, domain.ErrFuenteDatos)
	}
	puntos, err := c.repo.Puntos(ctx, c.clientesPermitidos)
	if err != nil {
		return fmt.Errorf("cargar puntos: %v: %w", err, domain.ErrFuenteDatos)
	}

	if len(ciudades) == 0 || len(clientes) == 0 || len(sucursales) == 0 || len(puntos) == 0 {
		return fmt.Errorf(
			"tabla de referencia requerida vacía (ciudades=%d clientes=%d sucursales=%d puntos=%d): %w",
			len(ciudades), len(clientes), len(sucursales), len(puntos), domain.ErrFuenteDatos)
	}

	ref := entity.NewReferencias(ciudades, clientes, sucursales, puntos)
	c.activas.Store(ref)

	nc, ncl, ns, np := ref.Conteos()
	c.log.Info().
		Int("ciudades", nc).
		Int("clientes", ncl).
		Int("sucursales", ns).
		Int("puntos", np).
		Msg("referencias cargadas")
	return nil
}

// Activas devuelve el snapshot vigente. Falla si Cargar nunca tuvo éxito.
func (c *CargadorReferencias) Activas() (*entity.Referencias, error) {
	ref := c.activas.Load()
	if ref == nil {
		return nil, fmt.Errorf("snapshot de referencias sin cargar: %w", domain.ErrFuenteDatos)
	}
	return ref, nil
}
