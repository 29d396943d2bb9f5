package repository

import (
	"context"

	"github.com/vatco/ingesta-servicios/internal/domain/entity"
)

// ServicioRepository define el puerto de escritura sobre cgs_servicios y
// cef_transacciones. CrearServicio y CrearTransaccion se invocan dentro de la
// misma transacción (vía TxRunner); ExistePedido consulta con el pool.
type ServicioRepository interface {
	// ExistePedido verifica la clave natural antes de intentar la inserción.
	// Es solo un atajo: el constraint único del almacén es la autoridad.
	ExistePedido(ctx context.Context, numeroPedido string, codCliente, codSucursal int) (bool, error)
	// CrearServicio inserta la fila del servicio y devuelve su consecutivo.
	CrearServicio(ctx context.Context, s *entity.Servicio) (int64, error)
	// CrearTransaccion inserta la transacción ligada al servicio.
	CrearTransaccion(ctx context.Context, servicioID int64, t *entity.Transaccion) error
}
