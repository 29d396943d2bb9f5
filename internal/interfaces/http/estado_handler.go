package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vatco/ingesta-servicios/internal/application/procesamiento"
)

// EstadoHandler maneja los endpoints de consulta de estado del servicio.
type EstadoHandler struct {
	resumen *procesamiento.Resumen
}

// NewEstadoHandler construye el handler.
func NewEstadoHandler(resumen *procesamiento.Resumen) *EstadoHandler {
	return &EstadoHandler{resumen: resumen}
}

// Cifras devuelve los acumulados de la corrida en curso.
// GET /estado
//
// Respuesta: CifrasResumen (inicio, archivos, fallidos, aceptados, rechazados).
// Los contadores de registros suman sobre todos los archivos procesados desde
// el arranque del servicio.
func (h *EstadoHandler) Cifras(c *fiber.Ctx) error {
	return c.JSON(h.resumen.Cifras())
}

// Archivos devuelve el detalle por archivo en orden de procesamiento.
// GET /estado/archivos
//
// Respuesta: lista de EntradaResumen (archivo, tipo, huella, aceptados,
// rechazados, error). La huella se omite cuando el archivo falló antes de
// poder calcularla.
func (h *EstadoHandler) Archivos(c *fiber.Ctx) error {
	return c.JSON(h.resumen.Entradas())
}
