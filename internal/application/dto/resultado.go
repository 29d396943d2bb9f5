package dto

import "github.com/vatco/ingesta-servicios/internal/domain/entity"

// RegistroAceptado es un registro que llegó al almacén (o lo habría hecho en
// una corrida simulada). Orden es el consecutivo con formato "S-%06d".
type RegistroAceptado struct {
	Indice         int
	ID             string
	Servicio       *entity.Servicio
	Transaccion    *entity.Transaccion
	Denominaciones map[string]int64
	Orden          string
	Simulado       bool
}

// RegistroRechazado es un registro que no se pudo mapear o registrar. Motivo
// es el texto que va al reporte y al archivo de respuesta; Err conserva la
// causa para el log.
type RegistroRechazado struct {
	Indice int
	ID     string
	Motivo string
	Err    error
}

// ResultadoArchivo resume el procesamiento de un archivo completo.
type ResultadoArchivo struct {
	Archivo    string
	Tipo       string // "txt" | "xml"
	Huella     string // sha256 del contenido, hex
	Aceptados  []RegistroAceptado
	Rechazados []RegistroRechazado
	// ErrorArchivo se llena cuando el archivo entero fue rechazado antes de
	// procesar registros (malformado, sin registros, referencia caída).
	ErrorArchivo error
}

// Exitoso indica que el archivo se procesó sin ningún rechazo.
func (r *ResultadoArchivo) Exitoso() bool {
	return r.ErrorArchivo == nil && len(r.Rechazados) == 0
}

// TotalRegistros cuenta aceptados y rechazados.
func (r *ResultadoArchivo) TotalRegistros() int {
	return len(r.Aceptados) + len(r.Rechazados)
}
