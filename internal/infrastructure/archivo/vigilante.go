package archivo

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vatco/ingesta-servicios/pkg/logger"
)

// VigilanteCarpeta detecta archivos nuevos en una carpeta por sondeo. Las
// carpetas de entrada viven en recursos compartidos de red donde los eventos
// del sistema de archivos no son confiables, así que se listan a intervalos
// fijos. El debounce da tiempo a que la copia remota termine antes de avisar.
//
// Los archivos se recuerdan por nombre: uno ya avisado no se vuelve a avisar
// dentro de la misma ejecución, aunque el procesamiento lo haya movido. Si el
// aviso devuelve error el nombre se olvida y la próxima pasada lo reintenta:
// así un snapshot caído no deja archivos varados para siempre.
type VigilanteCarpeta struct {
	carpeta    string
	extension  string // ".txt" | ".xml", sin distinguir mayúsculas
	intervalo  time.Duration
	debounce   time.Duration
	alDetectar func(ctx context.Context, ruta string) error
	log        *logger.Logger

	vistos map[string]struct{}
}

func NewVigilanteCarpeta(carpeta, extension string, intervalo, debounce time.Duration, alDetectar func(ctx context.Context, ruta string) error, log *logger.Logger) *VigilanteCarpeta {
	return &VigilanteCarpeta{
		carpeta:    carpeta,
		extension:  extension,
		intervalo:  intervalo,
		debounce:   debounce,
		alDetectar: alDetectar,
		log:        log,
		vistos:     make(map[string]struct{}),
	}
}

// Vigilar sondea la carpeta hasta que el contexto se cancela. Hace una pasada
// inmediata al arrancar para no esperar el primer intervalo.
func (v *VigilanteCarpeta) Vigilar(ctx context.Context) error {
	v.log.Info().
		Str("carpeta", v.carpeta).
		Str("extension", v.extension).
		Dur("intervalo", v.intervalo).
		Msg("vigilancia iniciada")

	ticker := time.NewTicker(v.intervalo)
	defer ticker.Stop()
	for {
		v.escanear(ctx)
		select {
		case <-ctx.Done():
			v.log.Info().Str("carpeta", v.carpeta).Msg("vigilancia detenida")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (v *VigilanteCarpeta) escanear(ctx context.Context) {
	if err := os.MkdirAll(v.carpeta, 0o755); err != nil {
		v.log.Error().Err(err).Str("carpeta", v.carpeta).Msg("no se pudo asegurar la carpeta vigilada")
		return
	}
	entradas, err := os.ReadDir(v.carpeta)
	if err != nil {
		v.log.Error().Err(err).Str("carpeta", v.carpeta).Msg("no se pudo listar la carpeta vigilada")
		return
	}
	for _, entrada := range entradas {
		if entrada.IsDir() {
			continue
		}
		nombre := entrada.Name()
		if !strings.EqualFold(filepath.Ext(nombre), v.extension) {
			continue
		}
		if _, visto := v.vistos[nombre]; visto {
			continue
		}
		v.vistos[nombre] = struct{}{}
		v.log.Info().Str("archivo", nombre).Msg("archivo nuevo detectado")

		select {
		case <-time.After(v.debounce):
		case <-ctx.Done():
			delete(v.vistos, nombre)
			return
		}
		if err := v.alDetectar(ctx, filepath.Join(v.carpeta, nombre)); err != nil {
			delete(v.vistos, nombre)
			v.log.Warn().Err(err).Str("archivo", nombre).Msg("archivo sin procesar, se reintenta en la próxima pasada")
		}
	}
}
