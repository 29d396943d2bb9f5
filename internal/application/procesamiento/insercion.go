package procesamiento

import (
	"context"
	"errors"

	"github.com/vatco/ingesta-servicios/internal/application/dto"
	"github.com/vatco/ingesta-servicios/internal/domain"
	"github.com/vatco/ingesta-servicios/pkg/logger"
)

// Insercion valida los pares mapeados y los registra en el almacén. En modo
// simulación valida y reporta sin generar tráfico hacia la base de escritura.
type Insercion struct {
	registrador RegistradorServicios
	log         *logger.Logger
	simular     bool
}

func NewInsercion(registrador RegistradorServicios, log *logger.Logger, simular bool) *Insercion {
	return &Insercion{registrador: registrador, log: log, simular: simular}
}

// ResultadoInsercion es el desenlace de un registro aceptado. Orden queda
// vacía en corridas simuladas.
type ResultadoInsercion struct {
	Orden    string
	Simulado bool
}

// Insertar valida las dos entidades, verifica el duplicado y registra el par
// en una transacción. Una falla en la verificación previa no detiene el
// registro: el constraint único decide. En modo simulación no se toca el
// almacén de escritura: ni verificación de duplicados ni inserción.
func (s *Insercion) Insertar(ctx context.Context, registro *dto.RegistroMapeado) (*ResultadoInsercion, error) {
	if err := registro.Servicio.Validar(); err != nil {
		return nil, err
	}
	if err := registro.Transaccion.Validar(); err != nil {
		return nil, err
	}

	pedido := registro.Servicio.NumeroPedido
	if s.simular {
		s.log.Info().Str("pedido", pedido).Msg("simulación: registro validado, no se escribe")
		return &ResultadoInsercion{Simulado: true}, nil
	}

	existe, err := s.registrador.ExistePedido(ctx, pedido, registro.Servicio.CodCliente, registro.Servicio.CodSucursal)
	if err != nil {
		s.log.Warn().Err(err).Str("pedido", pedido).Msg("no se pudo verificar el duplicado, se intenta registrar")
	} else if existe {
		return nil, &domain.ErrorRegistro{Duplicado: true, Causa: domain.ErrServicioDuplicado}
	}

	id, orden, err := s.registrador.Registrar(ctx, registro.Servicio, registro.Transaccion)
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Str("pedido", pedido).
		Int64("servicio_id", id).
		Str("orden", orden).
		Msg("servicio registrado")
	return &ResultadoInsercion{Orden: orden}, nil
}

// motivoRechazo traduce un error al texto que ven el reporte y el archivo de
// respuesta.
func motivoRechazo(err error) string {
	var errMapeo *domain.ErrorMapeo
	var errCodigo *domain.CodigoDesconocidoError
	switch {
	case errors.Is(err, domain.ErrServicioDuplicado):
		return "Servicio ya existe (duplicado)"
	case errors.Is(err, domain.ErrEntradaInvalida),
		errors.As(err, &errMapeo),
		errors.As(err, &errCodigo):
		return "Error de validación: " + err.Error()
	case errors.Is(err, domain.ErrFuenteDatos):
		return "Error de BD: " + err.Error()
	}
	var errRegistro *domain.ErrorRegistro
	if errors.As(err, &errRegistro) {
		return "Error de BD: " + err.Error()
	}
	return "Error inesperado: " + err.Error()
}
