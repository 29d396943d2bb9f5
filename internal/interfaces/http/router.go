package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vatco/ingesta-servicios/internal/application/procesamiento"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Resumen *procesamiento.Resumen
}

// Router registra las rutas de consulta de estado.
//
// El servidor es de solo lectura: expone los acumulados de la corrida para
// monitoreo, nunca dispara procesamiento. Las rutas quedan sin autenticación
// porque el puerto se publica únicamente en la red interna de operaciones.
func Router(app *fiber.App, deps RouterDeps) {
	estado := app.Group("/estado")
	estadoHandler := NewEstadoHandler(deps.Resumen)
	estado.Get("/", estadoHandler.Cifras)
	estado.Get("/archivos", estadoHandler.Archivos)
}
