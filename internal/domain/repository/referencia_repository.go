package repository

import (
	"context"

	"github.com/vatco/ingesta-servicios/internal/domain/entity"
)

// ReferenciaRepository define el puerto de lectura sobre las tablas de
// referencia. El contrato es de solo lectura: una carga por arranque (o
// recarga explícita), cero tráfico durante el procesamiento.
type ReferenciaRepository interface {
	Ciudades(ctx context.Context) ([]entity.Ciudad, error)
	Clientes(ctx context.Context) ([]entity.Cliente, error)
	Sucursales(ctx context.Context) ([]entity.Sucursal, error)
	// Puntos carga los puntos de los clientes permitidos con sus joins de
	// sucursal y ciudad.
	Puntos(ctx context.Context, clientesPermitidos []string) ([]entity.Punto, error)
}
