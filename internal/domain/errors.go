package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrFuenteDatos       = errors.New("fuente de datos de referencia no disponible")
	ErrArchivoMalformado = errors.New("archivo malformado")
	ErrSinRegistros      = errors.New("el archivo no contiene registros procesables")
	ErrCodigoDesconocido = errors.New("código desconocido")
	ErrServicioDuplicado = errors.New("servicio duplicado")
	ErrEntradaInvalida   = errors.New("entrada inválida")
)

// ErrorArchivo describe una violación estructural del archivo de entrada.
// Linea 0 indica que el problema aplica al archivo completo.
type ErrorArchivo struct {
	Linea  int
	Motivo string
}

func (e *ErrorArchivo) Error() string {
	if e.Linea > 0 {
		return fmt.Sprintf("archivo malformado: línea %d: %s", e.Linea, e.Motivo)
	}
	return "archivo malformado: " + e.Motivo
}

// Unwrap permite errors.Is(err, ErrArchivoMalformado).
func (e *ErrorArchivo) Unwrap() error { return ErrArchivoMalformado }

// CodigoDesconocidoError indica que un código del archivo no existe en el
// snapshot de referencia. Nunca se asume un valor por defecto: el registro
// se rechaza nombrando dominio y código.
type CodigoDesconocidoError struct {
	Dominio string // ciudad, cliente, punto, sucursal, divisa
	Codigo  string
}

func (e *CodigoDesconocidoError) Error() string {
	return fmt.Sprintf("código desconocido: %s %q", e.Dominio, e.Codigo)
}

func (e *CodigoDesconocidoError) Unwrap() error { return ErrCodigoDesconocido }

// ErrorMapeo describe una falla al mapear un registro crudo a sus entidades:
// código irresoluble, denominación inválida o totales inconsistentes.
type ErrorMapeo struct {
	Campo  string
	Motivo string
	Causa  error
}

func (e *ErrorMapeo) Error() string {
	if e.Campo != "" {
		return fmt.Sprintf("mapeo: %s: %s", e.Campo, e.Motivo)
	}
	return "mapeo: " + e.Motivo
}

func (e *ErrorMapeo) Unwrap() error { return e.Causa }

// ErrorRegistro describe una falla de la operación atómica de inserción.
// El rollback ya ocurrió cuando este error llega al caller. Duplicado marca
// la violación del constraint único sobre la clave natural del servicio.
type ErrorRegistro struct {
	Duplicado bool
	Causa     error
}

func (e *ErrorRegistro) Error() string {
	if e.Duplicado {
		return fmt.Sprintf("registro transaccional: clave natural duplicada: %v", e.Causa)
	}
	return fmt.Sprintf("registro transaccional: %v", e.Causa)
}

func (e *ErrorRegistro) Unwrap() error {
	if e.Duplicado {
		return ErrServicioDuplicado
	}
	return e.Causa
}
