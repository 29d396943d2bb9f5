package postgres

import (
	"context"
	"fmt"

	"github.com/vatco/ingesta-servicios/internal/domain"
	"github.com/vatco/ingesta-servicios/internal/domain/entity"
	"github.com/vatco/ingesta-servicios/internal/domain/repository"
)

var _ repository.ServicioRepository = (*ServicioRepo)(nil)

// ServicioRepo implementación de ServicioRepository sobre el almacén de
// escritura (usable con pool o tx).
type ServicioRepo struct {
	q Querier
}

// NewServicioRepository construye el adaptador. Pasar pool o tx (Querier).
func NewServicioRepository(q Querier) *ServicioRepo {
	return &ServicioRepo{q: q}
}

// ExistePedido cuenta servicios con la misma clave natural. Es el chequeo
// previo de duplicados; el constraint único sigue siendo la autoridad.
func (r *ServicioRepo) ExistePedido(ctx context.Context, numeroPedido string, codCliente, codSucursal int) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM cgs_servicios
		WHERE numero_pedido = $1 AND cod_cliente = $2 AND cod_sucursal = $3`
	var count int
	err := r.q.QueryRow(ctx, query, numeroPedido, codCliente, codSucursal).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("verificar pedido existente: %w", err)
	}
	return count > 0, nil
}

// CrearServicio inserta la fila de cgs_servicios y devuelve el consecutivo
// generado. Una violación del constraint único de la clave natural se traduce
// a ErrorRegistro con Duplicado.
func (r *ServicioRepo) CrearServicio(ctx context.Context, s *entity.Servicio) (int64, error) {
	query := `
		INSERT INTO cgs_servicios (
			numero_pedido, cod_cliente, cod_os_cliente, cod_sucursal,
			fecha_solicitud, hora_solicitud, cod_concepto, tipo_traslado,
			cod_estado, cod_cliente_origen, cod_punto_origen, indicador_tipo_origen,
			cod_cliente_destino, cod_punto_destino, indicador_tipo_destino,
			fecha_aceptacion, hora_aceptacion, fecha_programacion, hora_programacion,
			fecha_atencion_inicial, hora_atencion_inicial, fecha_atencion_final, hora_atencion_final,
			fecha_cancelacion, hora_cancelacion, fecha_rechazo, hora_rechazo,
			fallido, responsable_fallido, razon_fallido,
			persona_cancelacion, operador_cancelacion, motivo_cancelacion,
			modalidad_servicio, observaciones, clave,
			operador_cgs_id, sucursal_cgs, ip_operador,
			valor_billete, valor_moneda, valor_servicio,
			numero_kits_cambio, numero_bolsas_moneda, archivo_detalle, usuario_registro_id
		) VALUES (
			$1, $2, $3, $4,
			$5, $6::time, $7, $8,
			$9, $10, $11, $12,
			$13, $14, $15,
			$16, $17::time, $18, $19::time,
			$20, $21::time, $22, $23::time,
			$24, $25::time, $26, $27::time,
			$28, $29, $30,
			$31, $32, $33,
			$34, $35, $36,
			$37, $38, $39,
			$40, $41, $42,
			$43, $44, $45, $46
		) RETURNING id`
	var id int64
	err := r.q.QueryRow(ctx, query,
		s.NumeroPedido, s.CodCliente, nullIfEmpty(s.CodOsCliente), s.CodSucursal,
		s.FechaSolicitud, nullIfEmpty(s.HoraSolicitud), s.CodConcepto, s.TipoTraslado,
		s.CodEstado, s.CodClienteOrigen, s.CodPuntoOrigen, s.IndicadorTipoOrigen,
		s.CodClienteDestino, s.CodPuntoDestino, s.IndicadorTipoDestino,
		nullIfZeroTime(s.FechaAceptacion), nullIfEmpty(s.HoraAceptacion),
		nullIfZeroTime(s.FechaProgramacion), nullIfEmpty(s.HoraProgramacion),
		nullIfZeroTime(s.FechaAtencionInicial), nullIfEmpty(s.HoraAtencionInicial),
		nullIfZeroTime(s.FechaAtencionFinal), nullIfEmpty(s.HoraAtencionFinal),
		nullIfZeroTime(s.FechaCancelacion), nullIfEmpty(s.HoraCancelacion),
		nullIfZeroTime(s.FechaRechazo), nullIfEmpty(s.HoraRechazo),
		s.Fallido, nullIfEmpty(s.ResponsableFallido), nullIfEmpty(s.RazonFallido),
		nullIfEmpty(s.PersonaCancelacion), nullIfEmpty(s.OperadorCancelacion), nullIfEmpty(s.MotivoCancelacion),
		s.ModalidadServicio, nullIfEmpty(s.Observaciones), nullIfEmpty(s.Clave),
		nullIfEmpty(s.OperadorCgsID), nullIfEmpty(s.SucursalCgs), nullIfEmpty(s.IPOperador),
		s.ValorBillete, s.ValorMoneda, s.ValorServicio,
		s.NumeroKitsCambio, s.NumeroBolsasMoneda, nullIfEmpty(s.ArchivoDetalle), nullIfEmpty(s.UsuarioRegistroID),
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, &domain.ErrorRegistro{Duplicado: true, Causa: err}
		}
		return 0, fmt.Errorf("insert servicio: %w", err)
	}
	return id, nil
}

// CrearTransaccion inserta la fila de cef_transacciones ligada al servicio.
func (r *ServicioRepo) CrearTransaccion(ctx context.Context, servicioID int64, t *entity.Transaccion) error {
	query := `
		INSERT INTO cef_transacciones (
			servicio_id, cod_ruta, numero_planilla, divisa, tipo_transaccion,
			numero_mesa_conteo, cantidad_bolsas_declaradas, cantidad_sobres_declarados,
			cantidad_cheques_declarados, cantidad_documentos_declarados,
			valor_billetes_declarado, valor_monedas_declarado,
			valor_documentos_declarado, valor_total_declarado,
			valor_total_declarado_letras, valor_total_contado_letras,
			novedad_informativa, es_custodia, es_punto_a_punto,
			estado_transaccion, fecha_registro, usuario_registro_id,
			ip_registro, responsable_entrega_id, responsable_recibe_id
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8,
			$9, $10,
			$11, $12,
			$13, $14,
			$15, $16,
			$17, $18, $19,
			$20, $21, $22,
			$23, $24, $25
		)`
	_, err := r.q.Exec(ctx, query,
		servicioID, nullIfEmpty(t.CodRuta), t.NumeroPlanilla, t.Divisa, t.TipoTransaccion,
		t.NumeroMesaConteo, t.CantidadBolsasDeclaradas, t.CantidadSobresDeclarados,
		t.CantidadChequesDeclarados, t.CantidadDocumentosDeclarados,
		t.ValorBilletesDeclarado, t.ValorMonedasDeclarado,
		t.ValorDocumentosDeclarado, t.ValorTotalDeclarado,
		nullIfEmpty(t.ValorTotalDeclaradoLetras), nullIfEmpty(t.ValorTotalContadoLetras),
		nullIfEmpty(t.NovedadInformativa), t.EsCustodia, t.EsPuntoAPunto,
		t.EstadoTransaccion, t.FechaRegistro, t.UsuarioRegistroID,
		nullIfEmpty(t.IPRegistro), nullIfEmpty(t.ResponsableEntregaID), nullIfEmpty(t.ResponsableRecibeID),
	)
	if err != nil {
		return fmt.Errorf("insert transaccion: %w", err)
	}
	return nil
}
