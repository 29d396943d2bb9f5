package procesamiento

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/vatco/ingesta-servicios/internal/application/dto"
	"github.com/vatco/ingesta-servicios/internal/application/mapeo"
	"github.com/vatco/ingesta-servicios/internal/domain/entity"
	"github.com/vatco/ingesta-servicios/pkg/logger"
)

// ProcesadorTXT ejecuta el ciclo completo de un archivo TIPO 2: parseo,
// registro pedido a pedido, consolidado XLSX, archivo de respuesta y
// enrutamiento a gestionados o errores.
type ProcesadorTXT struct {
	gestor     GestorArchivos
	lector     LectorTXT
	mapeador   *mapeo.MapeadorTXT
	insercion  *Insercion
	reportes   GeneradorReporte
	respuestas EscritorRespuesta
	carpetas   Carpetas
	log        *logger.Logger
}

func NewProcesadorTXT(
	gestor GestorArchivos,
	lector LectorTXT,
	mapeador *mapeo.MapeadorTXT,
	insercion *Insercion,
	reportes GeneradorReporte,
	respuestas EscritorRespuesta,
	carpetas Carpetas,
	log *logger.Logger,
) *ProcesadorTXT {
	return &ProcesadorTXT{
		gestor:     gestor,
		lector:     lector,
		mapeador:   mapeador,
		insercion:  insercion,
		reportes:   reportes,
		respuestas: respuestas,
		carpetas:   carpetas,
		log:        log,
	}
}

// Procesar procesa un archivo TXT de punta a punta. Nunca devuelve error: el
// resultado describe lo que pasó con el archivo y con cada pedido, y el
// archivo siempre termina en gestionados o en errores.
func (p *ProcesadorTXT) Procesar(ctx context.Context, ruta string, ref *entity.Referencias) *dto.ResultadoArchivo {
	nombre := filepath.Base(ruta)
	log := p.log.ConArchivo(nombre)
	resultado := &dto.ResultadoArchivo{Archivo: nombre, Tipo: "txt"}

	datos, err := p.gestor.Leer(ruta)
	if err != nil {
		log.Error().Err(err).Msg("no se pudo leer el archivo")
		return p.fallido(ruta, resultado, err)
	}

	archivo, err := p.lector.Parsear(datos)
	if err != nil {
		log.Error().Err(err).Msg("archivo TXT rechazado")
		return p.fallido(ruta, resultado, err)
	}
	resultado.Huella = archivo.Huella
	log.Info().
		Str("huella", archivo.Huella).
		Int("pedidos", len(archivo.Pedidos)).
		Msg("archivo TXT parseado")

	for _, pedido := range archivo.Pedidos {
		registro, err := p.mapeador.Mapear(ref, pedido, nombre)
		if err != nil {
			log.Warn().Err(err).Str("pedido", pedido.Codigo).Msg("pedido no mapeable")
			resultado.Rechazados = append(resultado.Rechazados, dto.RegistroRechazado{
				Indice: pedido.Indice,
				ID:     pedido.Codigo,
				Motivo: motivoRechazo(err),
				Err:    err,
			})
			continue
		}
		res, err := p.insercion.Insertar(ctx, registro)
		if err != nil {
			log.Warn().Err(err).Str("pedido", pedido.Codigo).Msg("pedido rechazado")
			resultado.Rechazados = append(resultado.Rechazados, dto.RegistroRechazado{
				Indice: pedido.Indice,
				ID:     pedido.Codigo,
				Motivo: motivoRechazo(err),
				Err:    err,
			})
			continue
		}
		resultado.Aceptados = append(resultado.Aceptados, dto.RegistroAceptado{
			Indice:         registro.Indice,
			ID:             registro.ID,
			Servicio:       registro.Servicio,
			Transaccion:    registro.Transaccion,
			Denominaciones: registro.Denominaciones,
			Orden:          res.Orden,
			Simulado:       res.Simulado,
		})
	}

	// El consolidado se escribe después de registrar: las columnas de estado
	// reflejan el desenlace real de cada pedido.
	reporte := armarReporteTXT(ref, archivo, nombre, resultado)
	rutaReporte := filepath.Join(p.carpetas.Salida, nombreSinExtension(nombre)+".xlsx")
	if err := p.reportes.GenerarTXT(rutaReporte, reporte); err != nil {
		log.Error().Err(err).Msg("no se pudo escribir el consolidado XLSX")
		return p.fallido(ruta, resultado, err)
	}
	log.Info().Str("reporte", rutaReporte).Msg("consolidado XLSX generado")

	p.escribirRespuesta(log, nombre, ccDelCliente(ref, reporte.NITCliente), lineasRespuesta(resultado))

	// Sin un solo pedido aceptado el archivo va a errores. Con al menos uno
	// queda en gestionados; los rechazos parciales están documentados en el
	// reporte y la respuesta.
	carpeta := p.carpetas.Gestionados
	if len(resultado.Aceptados) == 0 {
		carpeta = p.carpetas.Errores
	}
	if destino, err := p.gestor.Mover(ruta, carpeta); err != nil {
		// El procesamiento ya terminó; el archivo queda en entrada pero el
		// resultado se conserva.
		log.Error().Err(err).Msg("no se pudo mover el archivo procesado")
	} else {
		log.Info().Str("destino", destino).Msg("archivo procesado enrutado")
	}
	return resultado
}

// fallido maneja el rechazo del archivo completo: una respuesta con una sola
// línea en estado 2, identificada por el nombre del archivo, y el archivo a
// la carpeta de errores.
func (p *ProcesadorTXT) fallido(ruta string, resultado *dto.ResultadoArchivo, causa error) *dto.ResultadoArchivo {
	resultado.ErrorArchivo = causa
	log := p.log.ConArchivo(resultado.Archivo)
	p.escribirRespuesta(log, resultado.Archivo, "", []dto.LineaRespuesta{
		{ID: resultado.Archivo, Estado: dto.EstadoRespuestaRechazada},
	})
	if destino, err := p.gestor.Mover(ruta, p.carpetas.Errores); err != nil {
		log.Error().Err(err).Msg("no se pudo mover el archivo a errores")
	} else {
		log.Info().Str("destino", destino).Msg("archivo movido a errores")
	}
	return resultado
}

func (p *ProcesadorTXT) escribirRespuesta(log *logger.Logger, nombre, cc string, lineas []dto.LineaRespuesta) {
	ruta, err := p.respuestas.Escribir(nombre, cc, lineas)
	if err != nil {
		log.Error().Err(err).Msg("no se pudo escribir el archivo de respuesta")
		return
	}
	log.Info().Str("respuesta", ruta).Msg("archivo de respuesta generado")
}

// ccDelCliente deriva el código CC del banco desde el NIT del encabezado. En
// blanco, el escritor de respuestas cae al nombre del archivo.
func ccDelCliente(ref *entity.Referencias, nit string) string {
	cliente, err := ref.ClientePorNIT(nit)
	if err != nil {
		return ""
	}
	if cc := entity.CCDeCliente(cliente.Codigo); cc != "00" {
		return cc
	}
	return ""
}

func nombreSinExtension(nombre string) string {
	return strings.TrimSuffix(nombre, filepath.Ext(nombre))
}
