package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vatco/ingesta-servicios/internal/domain"
	"github.com/vatco/ingesta-servicios/internal/domain/entity"
	"github.com/vatco/ingesta-servicios/internal/domain/repository"
)

// transactor ejecuta un callback dentro de una transacción. Lo satisface
// TxRunner; las pruebas inyectan uno en memoria.
type transactor interface {
	Run(ctx context.Context, fn func(repo repository.ServicioRepository) error) error
}

// Registrador ejecuta la operación atómica de inserción servicio+transacción
// contra el almacén de escritura. Cada llamada corre acotada por el timeout
// configurado.
type Registrador struct {
	repo    repository.ServicioRepository
	runner  transactor
	timeout time.Duration
}

// NewRegistrador construye el registrador sobre el pool de escritura.
func NewRegistrador(pool *pgxpool.Pool, timeout time.Duration) *Registrador {
	return &Registrador{
		repo:    NewServicioRepository(pool),
		runner:  NewTxRunner(pool),
		timeout: timeout,
	}
}

// Registrar inserta el servicio y su transacción en una sola transacción de
// base de datos y devuelve el id generado con su orden "S-%06d". Si cualquier
// inserción falla no queda fila en ninguna de las dos tablas.
func (r *Registrador) Registrar(ctx context.Context, servicio *entity.Servicio, transaccion *entity.Transaccion) (int64, string, error) {
	if servicio.CodSucursal != transaccion.CodSucursal {
		return 0, "", &domain.ErrorRegistro{
			Causa: fmt.Errorf("sucursal inconsistente: servicio %d, transacción %d",
				servicio.CodSucursal, transaccion.CodSucursal),
		}
	}

	// La señal de apagado corta entre archivos, nunca una transacción en
	// vuelo: el registro queda acotado solo por su propio timeout.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	defer cancel()

	var id int64
	err := r.runner.Run(ctx, func(repo repository.ServicioRepository) error {
		var err error
		id, err = repo.CrearServicio(ctx, servicio)
		if err != nil {
			return err
		}
		return repo.CrearTransaccion(ctx, id, transaccion)
	})
	if err != nil {
		var regErr *domain.ErrorRegistro
		if errors.As(err, &regErr) {
			return 0, "", err
		}
		return 0, "", &domain.ErrorRegistro{Causa: err}
	}
	return id, entity.FormatoOrden(id), nil
}

// ExistePedido consulta si la clave natural ya está registrada. Corre fuera
// de la transacción: es solo el atajo previo, el constraint único decide.
func (r *Registrador) ExistePedido(ctx context.Context, numeroPedido string, codCliente, codSucursal int) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.repo.ExistePedido(ctx, numeroPedido, codCliente, codSucursal)
}
