// Package procesamiento coordina el ciclo completo de un archivo de entrada:
// parseo, mapeo, registro en el almacén, reporte XLSX, archivo de respuesta y
// enrutamiento a gestionados o errores. El orquestador recorre las carpetas
// una vez o las deja vigiladas.
package procesamiento

import (
	"context"

	"github.com/vatco/ingesta-servicios/internal/application/dto"
	"github.com/vatco/ingesta-servicios/internal/domain/entity"
)

// GestorArchivos lee, lista y mueve archivos entre las carpetas de trabajo.
type GestorArchivos interface {
	Leer(ruta string) ([]byte, error)
	Listar(carpeta, extension string) ([]string, error)
	Mover(ruta, carpeta string) (string, error)
}

// LectorTXT parsea un archivo plano TIPO 1/2/3.
type LectorTXT interface {
	Parsear(datos []byte) (*dto.ArchivoTXT, error)
}

// LectorXML parsea un documento de órdenes y remesas.
type LectorXML interface {
	Parsear(datos []byte) (*dto.ArchivoXML, error)
}

// RegistradorServicios registra el par servicio+transacción en el almacén de
// escritura de forma atómica. ExistePedido es la verificación previa de
// duplicados; el constraint único de la clave natural sigue siendo la
// autoridad final.
type RegistradorServicios interface {
	ExistePedido(ctx context.Context, numeroPedido string, codCliente, codSucursal int) (bool, error)
	Registrar(ctx context.Context, servicio *entity.Servicio, transaccion *entity.Transaccion) (int64, string, error)
}

// GeneradorReporte escribe el reporte XLSX de un archivo procesado.
type GeneradorReporte interface {
	GenerarTXT(ruta string, reporte *dto.ReporteTXT) error
	GenerarXML(ruta string, reporte *dto.ReporteXML) error
}

// EscritorRespuesta escribe el archivo de respuesta que recoge el banco.
type EscritorRespuesta interface {
	Escribir(nombreOriginal, cc string, lineas []dto.LineaRespuesta) (string, error)
}

// Carpetas de trabajo de un tipo de archivo: el reporte XLSX va a Salida y el
// archivo original termina en Gestionados o en Errores según el desenlace.
type Carpetas struct {
	Salida      string
	Gestionados string
	Errores     string
}
