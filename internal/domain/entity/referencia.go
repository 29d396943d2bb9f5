package entity

import (
	"strings"

	"github.com/vatco/ingesta-servicios/internal/domain"
)

// Ciudad fila de adm_ciudades.
type Ciudad struct {
	Codigo string
	Nombre string
}

// Cliente fila de adm_clientes. NIT identifica al cliente en los encabezados TXT.
type Cliente struct {
	Codigo string
	Nombre string
	NIT    string
}

// Sucursal fila de adm_sucursales.
type Sucursal struct {
	Codigo string
	Nombre string
}

// Punto fila de adm_puntos con sus joins de presentación. CodPuntoCliente es
// el código con el que el cliente nombra el punto en sus archivos; Codigo es
// la clave interna del punto. CodFondo queda vacío cuando el punto no tiene
// fondo asignado.
type Punto struct {
	Codigo          string
	CodPuntoCliente string
	CodCliente      string
	CodSucursal     string
	CodFondo        string
	Nombre          string
	CodCiudad       string
	Ciudad          string
	Sucursal        string
}

// Referencias es el snapshot inmutable de las tablas de referencia. Se arma
// una sola vez por carga; las consultas nunca lo mutan y un código ausente es
// una falla de mapeo, jamás un alta implícita.
type Referencias struct {
	ciudades        map[string]Ciudad
	clientes        map[string]Cliente
	clientesPorNIT  map[string]Cliente
	sucursales      map[string]Sucursal
	puntos          map[string]Punto // clave "codCliente-codPuntoCliente"
	puntosPorCodigo map[string]Punto // clave "codCliente-codPunto" (interno)
}

// NewReferencias construye el snapshot a partir de las filas cargadas.
func NewReferencias(ciudades []Ciudad, clientes []Cliente, sucursales []Sucursal, puntos []Punto) *Referencias {
	r := &Referencias{
		ciudades:        make(map[string]Ciudad, len(ciudades)),
		clientes:        make(map[string]Cliente, len(clientes)),
		clientesPorNIT:  make(map[string]Cliente, len(clientes)),
		sucursales:      make(map[string]Sucursal, len(sucursales)),
		puntos:          make(map[string]Punto, len(puntos)),
		puntosPorCodigo: make(map[string]Punto, len(puntos)),
	}
	for _, c := range ciudades {
		r.ciudades[strings.TrimSpace(c.Codigo)] = c
	}
	for _, c := range clientes {
		r.clientes[strings.TrimSpace(c.Codigo)] = c
		if nit := strings.TrimSpace(c.NIT); nit != "" {
			r.clientesPorNIT[nit] = c
		}
	}
	for _, s := range sucursales {
		r.sucursales[strings.TrimSpace(s.Codigo)] = s
	}
	for _, p := range puntos {
		r.puntos[clavePunto(p.CodCliente, p.CodPuntoCliente)] = p
		r.puntosPorCodigo[clavePunto(p.CodCliente, p.Codigo)] = p
	}
	return r
}

func clavePunto(codCliente, codPuntoCliente string) string {
	return strings.TrimSpace(codCliente) + "-" + strings.TrimSpace(codPuntoCliente)
}

// Ciudad busca una ciudad por código.
func (r *Referencias) Ciudad(codigo string) (Ciudad, error) {
	if c, ok := r.ciudades[strings.TrimSpace(codigo)]; ok {
		return c, nil
	}
	return Ciudad{}, &domain.CodigoDesconocidoError{Dominio: "ciudad", Codigo: codigo}
}

// Cliente busca un cliente por código.
func (r *Referencias) Cliente(codigo string) (Cliente, error) {
	if c, ok := r.clientes[strings.TrimSpace(codigo)]; ok {
		return c, nil
	}
	return Cliente{}, &domain.CodigoDesconocidoError{Dominio: "cliente", Codigo: codigo}
}

// ClientePorNIT busca un cliente por su número de documento (NIT del
// encabezado TIPO 1).
func (r *Referencias) ClientePorNIT(nit string) (Cliente, error) {
	if c, ok := r.clientesPorNIT[strings.TrimSpace(nit)]; ok {
		return c, nil
	}
	return Cliente{}, &domain.CodigoDesconocidoError{Dominio: "cliente", Codigo: nit}
}

// Sucursal busca una sucursal por código.
func (r *Referencias) Sucursal(codigo string) (Sucursal, error) {
	if s, ok := r.sucursales[strings.TrimSpace(codigo)]; ok {
		return s, nil
	}
	return Sucursal{}, &domain.CodigoDesconocidoError{Dominio: "sucursal", Codigo: codigo}
}

// Punto busca un punto por cliente y código de punto del cliente.
func (r *Referencias) Punto(codCliente, codPuntoCliente string) (Punto, error) {
	if p, ok := r.puntos[clavePunto(codCliente, codPuntoCliente)]; ok {
		return p, nil
	}
	return Punto{}, &domain.CodigoDesconocidoError{
		Dominio: "punto",
		Codigo:  clavePunto(codCliente, codPuntoCliente),
	}
}

// PuntoPorCodigo busca un punto por cliente y código interno. Es el primer
// intento para referencias XML; si falla se reintenta con Punto.
func (r *Referencias) PuntoPorCodigo(codCliente, codigo string) (Punto, error) {
	if p, ok := r.puntosPorCodigo[clavePunto(codCliente, codigo)]; ok {
		return p, nil
	}
	return Punto{}, &domain.CodigoDesconocidoError{
		Dominio: "punto",
		Codigo:  clavePunto(codCliente, codigo),
	}
}

// Conteos devuelve el tamaño por tabla, para el log de carga.
func (r *Referencias) Conteos() (ciudades, clientes, sucursales, puntos int) {
	return len(r.ciudades), len(r.clientes), len(r.sucursales), len(r.puntos)
}
