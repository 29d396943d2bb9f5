package procesamiento

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vatco/ingesta-servicios/internal/application/dto"
	"github.com/vatco/ingesta-servicios/internal/application/referencia"
	"github.com/vatco/ingesta-servicios/internal/domain/entity"
	"github.com/vatco/ingesta-servicios/pkg/logger"
)

// Tipos de archivo que el orquestador procesa.
const (
	TipoTXT   = "txt"
	TipoXML   = "xml"
	TipoAmbos = "ambos"
)

// TipoValido indica si el tipo pedido es uno de los admitidos.
func TipoValido(tipo string) bool {
	return tipo == TipoTXT || tipo == TipoXML || tipo == TipoAmbos
}

type procesarFunc func(ctx context.Context, ruta string, ref *entity.Referencias) *dto.ResultadoArchivo

// Orquestador recorre las carpetas de entrada y delega cada archivo al
// procesador de su tipo. EjecutarUnaVez hace una sola pasada; en vigilancia
// los vigilantes de carpeta llaman DetectarTXT y DetectarXML.
type Orquestador struct {
	cargador   *referencia.CargadorReferencias
	gestor     GestorArchivos
	txt        *ProcesadorTXT
	xml        *ProcesadorXML
	entradaTXT string
	entradaXML string
	resumen    *Resumen
	log        *logger.Logger
}

func NewOrquestador(
	cargador *referencia.CargadorReferencias,
	gestor GestorArchivos,
	txt *ProcesadorTXT,
	xml *ProcesadorXML,
	entradaTXT, entradaXML string,
	log *logger.Logger,
) *Orquestador {
	return &Orquestador{
		cargador:   cargador,
		gestor:     gestor,
		txt:        txt,
		xml:        xml,
		entradaTXT: entradaTXT,
		entradaXML: entradaXML,
		resumen:    NewResumen(),
		log:        log,
	}
}

// Resumen devuelve el acumulado de la ejecución en curso.
func (o *Orquestador) Resumen() *Resumen {
	return o.resumen
}

// EjecutarUnaVez carga el snapshot de referencias y hace una sola pasada por
// las carpetas de entrada del tipo pedido. La falla de la carga es total: sin
// snapshot no se toca ningún archivo y todos esperan en entrada.
func (o *Orquestador) EjecutarUnaVez(ctx context.Context, tipo string) (*Resumen, error) {
	if !TipoValido(tipo) {
		return nil, fmt.Errorf("tipo de archivo desconocido: %q", tipo)
	}
	if err := o.cargador.Cargar(ctx); err != nil {
		return nil, err
	}
	if tipo == TipoTXT || tipo == TipoAmbos {
		o.pasada(ctx, o.entradaTXT, ".txt", o.procesarTXT)
	}
	if tipo == TipoXML || tipo == TipoAmbos {
		o.pasada(ctx, o.entradaXML, ".xml", o.procesarXML)
	}
	cifras := o.resumen.Cifras()
	o.log.Info().
		Int("archivos", cifras.Archivos).
		Int("fallidos", cifras.Fallidos).
		Int("aceptados", cifras.Aceptados).
		Int("rechazados", cifras.Rechazados).
		Msg("pasada completada")
	return o.resumen, nil
}

// DetectarTXT procesa un archivo TXT recién detectado por el vigilante.
func (o *Orquestador) DetectarTXT(ctx context.Context, ruta string) error {
	return o.detectar(ctx, ruta, o.procesarTXT)
}

// DetectarXML procesa un documento XML recién detectado por el vigilante.
func (o *Orquestador) DetectarXML(ctx context.Context, ruta string) error {
	return o.detectar(ctx, ruta, o.procesarXML)
}

// detectar recarga el snapshot antes de cada archivo para que las vigilancias
// largas no trabajen con referencias viejas. Si la recarga falla se procesa
// con el snapshot vigente; sin ningún snapshot el archivo espera en entrada y
// el vigilante lo reintenta.
func (o *Orquestador) detectar(ctx context.Context, ruta string, procesar procesarFunc) error {
	if err := o.cargador.Cargar(ctx); err != nil {
		if _, errActivas := o.cargador.Activas(); errActivas != nil {
			o.log.Error().Err(err).Str("archivo", filepath.Base(ruta)).Msg("sin snapshot de referencias; el archivo espera en entrada")
			return err
		}
		o.log.Warn().Err(err).Str("archivo", filepath.Base(ruta)).Msg("recarga de referencias fallida; se procesa con el snapshot vigente")
	}
	o.procesarArchivo(ctx, ruta, procesar)
	return nil
}

func (o *Orquestador) pasada(ctx context.Context, carpeta, extension string, procesar procesarFunc) {
	rutas, err := o.gestor.Listar(carpeta, extension)
	if err != nil {
		o.log.Error().Err(err).Str("carpeta", carpeta).Msg("no se pudo listar la carpeta de entrada")
		return
	}
	o.log.Info().Str("carpeta", carpeta).Int("archivos", len(rutas)).Msg("pasada por carpeta de entrada")
	for _, ruta := range rutas {
		if ctx.Err() != nil {
			return
		}
		o.procesarArchivo(ctx, ruta, procesar)
	}
}

// procesarArchivo aísla un archivo: un pánico del procesamiento se registra
// en el resumen y no tumba la pasada ni la vigilancia. En ese caso el archivo
// queda en entrada para revisión manual.
func (o *Orquestador) procesarArchivo(ctx context.Context, ruta string, procesar procesarFunc) {
	ref, err := o.cargador.Activas()
	if err != nil {
		o.log.Error().Err(err).Str("archivo", filepath.Base(ruta)).Msg("sin snapshot de referencias")
		return
	}
	defer func() {
		if p := recover(); p != nil {
			o.log.Error().
				Interface("panico", p).
				Str("archivo", filepath.Base(ruta)).
				Msg("pánico procesando el archivo; queda en entrada para revisión")
			o.resumen.Registrar(&dto.ResultadoArchivo{
				Archivo:      filepath.Base(ruta),
				Tipo:         strings.ToLower(strings.TrimPrefix(filepath.Ext(ruta), ".")),
				ErrorArchivo: fmt.Errorf("pánico: %v", p),
			})
		}
	}()
	o.resumen.Registrar(procesar(ctx, ruta, ref))
}

func (o *Orquestador) procesarTXT(ctx context.Context, ruta string, ref *entity.Referencias) *dto.ResultadoArchivo {
	return o.txt.Procesar(ctx, ruta, ref)
}

func (o *Orquestador) procesarXML(ctx context.Context, ruta string, ref *entity.Referencias) *dto.ResultadoArchivo {
	return o.xml.Procesar(ctx, ruta, ref)
}
