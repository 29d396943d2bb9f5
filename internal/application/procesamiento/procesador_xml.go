package procesamiento

import (
	"context"
	"path/filepath"

	"github.com/vatco/ingesta-servicios/internal/application/dto"
	"github.com/vatco/ingesta-servicios/internal/application/mapeo"
	"github.com/vatco/ingesta-servicios/internal/domain/entity"
	"github.com/vatco/ingesta-servicios/pkg/logger"
)

// ProcesadorXML ejecuta el ciclo completo de un documento de órdenes y
// remesas: parseo, registro elemento a elemento, informe XLSX, archivo de
// respuesta y enrutamiento a gestionados o errores.
type ProcesadorXML struct {
	gestor     GestorArchivos
	lector     LectorXML
	mapeador   *mapeo.MapeadorXML
	insercion  *Insercion
	reportes   GeneradorReporte
	respuestas EscritorRespuesta
	carpetas   Carpetas
	log        *logger.Logger
}

func NewProcesadorXML(
	gestor GestorArchivos,
	lector LectorXML,
	mapeador *mapeo.MapeadorXML,
	insercion *Insercion,
	reportes GeneradorReporte,
	respuestas EscritorRespuesta,
	carpetas Carpetas,
	log *logger.Logger,
) *ProcesadorXML {
	return &ProcesadorXML{
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

// Procesar procesa un documento XML de punta a punta. Nunca devuelve error:
// el resultado describe lo que pasó con el documento y con cada elemento, y
// el archivo siempre termina en gestionados o en errores.
func (p *ProcesadorXML) Procesar(ctx context.Context, ruta string, ref *entity.Referencias) *dto.ResultadoArchivo {
	nombre := filepath.Base(ruta)
	log := p.log.ConArchivo(nombre)
	resultado := &dto.ResultadoArchivo{Archivo: nombre, Tipo: "xml"}

	datos, err := p.gestor.Leer(ruta)
	if err != nil {
		log.Error().Err(err).Msg("no se pudo leer el archivo")
		return p.fallido(ruta, resultado, err)
	}

	archivo, err := p.lector.Parsear(datos)
	if err != nil {
		log.Error().Err(err).Msg("documento XML rechazado")
		return p.fallido(ruta, resultado, err)
	}
	resultado.Huella = archivo.Huella

	ordenes, remesas := 0, 0
	for _, elem := range archivo.Elementos {
		if elem.Tipo == dto.ElementoOrder {
			ordenes++
		} else {
			remesas++
		}
	}
	log.Info().
		Str("huella", archivo.Huella).
		Int("ordenes", ordenes).
		Int("remesas", remesas).
		Msg("documento XML parseado")

	for _, elem := range archivo.Elementos {
		registro, err := p.mapeador.Mapear(ref, elem, nombre)
		if err != nil {
			log.Warn().Err(err).Str("elemento", elem.ID).Str("tipo", elem.Tipo).Msg("elemento no mapeable")
			resultado.Rechazados = append(resultado.Rechazados, dto.RegistroRechazado{
				Indice: elem.Indice,
				ID:     elem.ID,
				Motivo: motivoRechazo(err),
				Err:    err,
			})
			continue
		}
		res, err := p.insercion.Insertar(ctx, registro)
		if err != nil {
			log.Warn().Err(err).Str("elemento", elem.ID).Str("tipo", elem.Tipo).Msg("elemento rechazado")
			resultado.Rechazados = append(resultado.Rechazados, dto.RegistroRechazado{
				Indice: elem.Indice,
				ID:     elem.ID,
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

	reporte := armarReporteXML(ref, archivo, nombre, resultado)
	rutaReporte := filepath.Join(p.carpetas.Salida, nombreSinExtension(nombre)+".xlsx")
	if err := p.reportes.GenerarXML(rutaReporte, reporte); err != nil {
		log.Error().Err(err).Msg("no se pudo escribir el informe XLSX")
		return p.fallido(ruta, resultado, err)
	}
	log.Info().Str("reporte", rutaReporte).Msg("informe XLSX generado")

	// Cuando todos los elementos terminan rechazados la respuesta sale con
	// CC "00"; si al menos uno entró, el CC se toma del nombre del archivo.
	cc := ""
	if len(resultado.Aceptados) == 0 {
		cc = "00"
	}
	p.escribirRespuesta(log, nombre, cc, lineasRespuesta(resultado))

	// Sin un solo elemento aceptado el archivo va a errores; con al menos
	// uno queda en gestionados.
	carpeta := p.carpetas.Gestionados
	if len(resultado.Aceptados) == 0 {
		carpeta = p.carpetas.Errores
	}
	if destino, err := p.gestor.Mover(ruta, carpeta); err != nil {
		log.Error().Err(err).Msg("no se pudo mover el archivo procesado")
	} else {
		log.Info().Str("destino", destino).Msg("archivo procesado enrutado")
	}
	return resultado
}

// fallido maneja el rechazo del documento completo: una respuesta con una
// sola línea en estado 2, identificada por el nombre del archivo, y el
// archivo a la carpeta de errores.
func (p *ProcesadorXML) fallido(ruta string, resultado *dto.ResultadoArchivo, causa error) *dto.ResultadoArchivo {
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

func (p *ProcesadorXML) escribirRespuesta(log *logger.Logger, nombre, cc string, lineas []dto.LineaRespuesta) {
	ruta, err := p.respuestas.Escribir(nombre, cc, lineas)
	if err != nil {
		log.Error().Err(err).Msg("no se pudo escribir el archivo de respuesta")
		return
	}
	log.Info().Str("respuesta", ruta).Msg("archivo de respuesta generado")
}
