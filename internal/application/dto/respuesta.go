package dto

// Estados de un registro en el archivo de respuesta al banco.
const (
	EstadoRespuestaAceptada  = "1"
	EstadoRespuestaRechazada = "2"
)

// LineaRespuesta es un par id,estado del archivo de respuesta.
type LineaRespuesta struct {
	ID     string
	Estado string
}
