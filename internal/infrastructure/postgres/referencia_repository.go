package postgres

import (
	"context"
	"fmt"

	"github.com/vatco/ingesta-servicios/internal/domain/entity"
	"github.com/vatco/ingesta-servicios/internal/domain/repository"
)

var _ repository.ReferenciaRepository = (*ReferenciaRepo)(nil)

// ReferenciaRepo lee las tablas de referencia del CGS desde la fuente de solo
// lectura (usable con pool o tx).
type ReferenciaRepo struct {
	q Querier
}

// NewReferenciaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReferenciaRepository(q Querier) *ReferenciaRepo {
	return &ReferenciaRepo{q: q}
}

// Ciudades lista todas las ciudades.
func (r *ReferenciaRepo) Ciudades(ctx context.Context) ([]entity.Ciudad, error) {
	query := `
		SELECT cod_ciudad::text, COALESCE(ciudad, '')
		FROM adm_ciudades`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list ciudades: %w", err)
	}
	defer rows.Close()
	var list []entity.Ciudad
	for rows.Next() {
		var c entity.Ciudad
		if err := rows.Scan(&c.Codigo, &c.Nombre); err != nil {
			return nil, fmt.Errorf("scan ciudad: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Clientes lista todos los clientes con su número de documento: el NIT es la
// llave con la que los encabezados TXT identifican al solicitante.
func (r *ReferenciaRepo) Clientes(ctx context.Context) ([]entity.Cliente, error) {
	query := `
		SELECT cod_cliente::text, COALESCE(cliente, ''), COALESCE(nro_doc::text, '')
		FROM adm_clientes`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list clientes: %w", err)
	}
	defer rows.Close()
	var list []entity.Cliente
	for rows.Next() {
		var c entity.Cliente
		if err := rows.Scan(&c.Codigo, &c.Nombre, &c.NIT); err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Sucursales lista todas las sucursales.
func (r *ReferenciaRepo) Sucursales(ctx context.Context) ([]entity.Sucursal, error) {
	query := `
		SELECT cod_suc::text, COALESCE(sucursal, '')
		FROM adm_sucursales`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list sucursales: %w", err)
	}
	defer rows.Close()
	var list []entity.Sucursal
	for rows.Next() {
		var s entity.Sucursal
		if err := rows.Scan(&s.Codigo, &s.Nombre); err != nil {
			return nil, fmt.Errorf("scan sucursal: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Puntos lista los puntos de los clientes permitidos con sus joins de ciudad y
// sucursal. cod_fondo queda vacío cuando el punto no tiene fondo asignado.
func (r *ReferenciaRepo) Puntos(ctx context.Context, clientesPermitidos []string) ([]entity.Punto, error) {
	if len(clientesPermitidos) == 0 {
		return nil, nil
	}
	query := `
		SELECT p.cod_punto::text,
		       COALESCE(p.cod_p_cliente::text, ''),
		       p.cod_cliente::text,
		       COALESCE(p.cod_suc::text, ''),
		       COALESCE(p.cod_fondo::text, ''),
		       COALESCE(p.nom_punto, ''),
		       COALESCE(ci.cod_ciudad::text, ''),
		       COALESCE(ci.ciudad, ''),
		       COALESCE(s.sucursal, '')
		FROM adm_puntos p
		LEFT JOIN adm_sucursales s ON s.cod_suc = p.cod_suc
		LEFT JOIN adm_ciudades ci ON ci.cod_suc = s.cod_suc
		WHERE p.cod_cliente::text = ANY($1)`
	rows, err := r.q.Query(ctx, query, clientesPermitidos)
	if err != nil {
		return nil, fmt.Errorf("list puntos: %w", err)
	}
	defer rows.Close()
	var list []entity.Punto
	for rows.Next() {
		var p entity.Punto
		if err := rows.Scan(&p.Codigo, &p.CodPuntoCliente, &p.CodCliente, &p.CodSucursal,
			&p.CodFondo, &p.Nombre, &p.CodCiudad, &p.Ciudad, &p.Sucursal); err != nil {
			return nil, fmt.Errorf("scan punto: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
