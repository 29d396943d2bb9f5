package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vatco/ingesta-servicios/internal/application/mapeo"
	"github.com/vatco/ingesta-servicios/internal/application/procesamiento"
	"github.com/vatco/ingesta-servicios/internal/application/referencia"
	"github.com/vatco/ingesta-servicios/internal/infrastructure/archivo"
	"github.com/vatco/ingesta-servicios/internal/infrastructure/excel"
	"github.com/vatco/ingesta-servicios/internal/infrastructure/pdf"
	"github.com/vatco/ingesta-servicios/internal/infrastructure/postgres"
	httpRouter "github.com/vatco/ingesta-servicios/internal/interfaces/http"
	"github.com/vatco/ingesta-servicios/pkg/config"
	"github.com/vatco/ingesta-servicios/pkg/logger"
)

var (
	unaVez  bool
	vigilar bool
	tipo    string
	simular bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "ingesta",
		Short:        "Servicio de ingesta de archivos de transacciones del CGS",
		SilenceUsage: true,
	}

	procesarCmd := &cobra.Command{
		Use:   "procesar",
		Short: "Procesa los archivos TXT y XML de las carpetas de entrada",
		Long: `Procesa los archivos de pedidos del banco: parsea los TXT TIPO 2 y los XML
de órdenes y remesas, registra cada pedido como par servicio+transacción en la
base del CGS, deja el reporte XLSX en la carpeta de salida y el archivo de
respuesta para el banco.

Con --once hace una sola pasada por las carpetas de entrada y termina. Con
--watch las deja vigiladas hasta recibir SIGINT/SIGTERM. Con --simular se
valida y reporta todo sin escribir en la base transaccional.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ejecutar(cmd.Context())
		},
	}
	procesarCmd.Flags().BoolVar(&unaVez, "once", false, "una sola pasada por las carpetas de entrada")
	procesarCmd.Flags().BoolVar(&vigilar, "watch", false, "vigila las carpetas hasta recibir señal de apagado")
	procesarCmd.Flags().StringVar(&tipo, "tipo", procesamiento.TipoAmbos, "tipo de archivos a procesar: txt, xml o ambos")
	procesarCmd.Flags().BoolVar(&simular, "simular", false, "valida y reporta sin escribir en la base transaccional")
	procesarCmd.MarkFlagsMutuallyExclusive("once", "watch")
	procesarCmd.MarkFlagsOneRequired("once", "watch")
	rootCmd.AddCommand(procesarCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func ejecutar(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	if simular {
		cfg.Proceso.EscrituraBD = false
	}
	if !procesamiento.TipoValido(tipo) {
		return fmt.Errorf("tipo de archivo desconocido: %q (use txt, xml o ambos)", tipo)
	}

	// Cada ejecución se correlaciona por el campo corrida en todos los logs.
	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	}).ConCorrida(uuid.NewString())
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("tipo", tipo).
		Bool("escritura_bd", cfg.Proceso.EscrituraBD).
		Msg("iniciando servicio de ingesta")

	for _, carpeta := range cfg.Carpetas.Todas() {
		if err := os.MkdirAll(carpeta, 0o755); err != nil {
			return fmt.Errorf("crear carpeta %s: %w", carpeta, err)
		}
	}

	lectura, err := postgres.NewPool(ctx, cfg.BDLectura)
	if err != nil {
		return fmt.Errorf("conexión a la base de referencias: %w", err)
	}
	defer lectura.Close()

	// En simulación el pool de escritura ni siquiera se abre: cero tráfico
	// hacia la base transaccional.
	var registrador procesamiento.RegistradorServicios
	if cfg.Proceso.EscrituraBD {
		escritura, err := postgres.NewPool(ctx, cfg.BDEscritura)
		if err != nil {
			return fmt.Errorf("conexión a la base transaccional: %w", err)
		}
		defer escritura.Close()
		registrador = postgres.NewRegistrador(escritura, cfg.Proceso.TimeoutBD())
	}

	cargador := referencia.NewCargadorReferencias(
		postgres.NewReferenciaRepository(lectura),
		cfg.Proceso.ClientesPermitidos,
		cfg.Proceso.TimeoutBD(),
		log,
	)

	gestor := archivo.NewGestor()
	insercion := procesamiento.NewInsercion(registrador, log, !cfg.Proceso.EscrituraBD)
	reportes := excel.NewGeneradorReporte()

	procesadorTXT := procesamiento.NewProcesadorTXT(
		gestor,
		archivo.NewLectorTXT(),
		mapeo.NewMapeadorTXT(cfg.Proceso.UsuarioRegistroID),
		insercion,
		reportes,
		archivo.NewEscritorRespuesta(cfg.Carpetas.RespuestaTXT),
		procesamiento.Carpetas{
			Salida:      cfg.Carpetas.SalidaTXT,
			Gestionados: cfg.Carpetas.GestionadosTXT,
			Errores:     cfg.Carpetas.ErroresTXT,
		},
		log,
	)

	// La respuesta de los XML se deposita junto al reporte, en salida.
	procesadorXML := procesamiento.NewProcesadorXML(
		gestor,
		archivo.NewLectorXML(),
		mapeo.NewMapeadorXML(cfg.Proceso.UsuarioRegistroID),
		insercion,
		reportes,
		archivo.NewEscritorRespuesta(cfg.Carpetas.SalidaXML),
		procesamiento.Carpetas{
			Salida:      cfg.Carpetas.SalidaXML,
			Gestionados: cfg.Carpetas.GestionadosXML,
			Errores:     cfg.Carpetas.ErroresXML,
		},
		log,
	)

	orq := procesamiento.NewOrquestador(
		cargador, gestor, procesadorTXT, procesadorXML,
		cfg.Carpetas.EntradaTXT, cfg.Carpetas.EntradaXML,
		log,
	)

	if unaVez {
		resumen, err := orq.EjecutarUnaVez(ctx, tipo)
		if err != nil {
			return err
		}
		emitirActa(cfg, resumen, log)
		return nil
	}

	// --watch: carga inicial del snapshot. Si falla se sigue: cada detección
	// reintenta la carga y los archivos esperan en entrada mientras tanto.
	if err := cargador.Cargar(ctx); err != nil {
		log.Warn().Err(err).Msg("carga inicial de referencias fallida; se reintenta al detectar el primer archivo")
	}

	ctxVigilancia, cancelar := context.WithCancel(ctx)
	defer cancelar()

	var wg sync.WaitGroup
	vigilarCarpeta := func(carpeta, extension string, alDetectar func(context.Context, string) error) {
		v := archivo.NewVigilanteCarpeta(carpeta, extension, cfg.Proceso.Sondeo(), cfg.Proceso.Debounce(), alDetectar, log)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := v.Vigilar(ctxVigilancia); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Str("carpeta", carpeta).Msg("vigilancia finalizada con error")
			}
		}()
	}
	if tipo == procesamiento.TipoTXT || tipo == procesamiento.TipoAmbos {
		vigilarCarpeta(cfg.Carpetas.EntradaTXT, ".txt", orq.DetectarTXT)
	}
	if tipo == procesamiento.TipoXML || tipo == procesamiento.TipoAmbos {
		vigilarCarpeta(cfg.Carpetas.EntradaXML, ".xml", orq.DetectarXML)
	}

	var app *fiber.App
	if cfg.Estado.Habilitado() {
		app = fiber.New(fiber.Config{
			AppName:      cfg.App.Name,
			ReadTimeout:  time.Second * 10,
			WriteTimeout: time.Second * 10,
			IdleTimeout:  time.Second * 60,
		})
		app.Use(recover.New())

		app.Get("/health", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
		})
		httpRouter.Router(app, httpRouter.RouterDeps{Resumen: orq.Resumen()})

		go func() {
			if err := app.Listen(cfg.Estado.Addr()); err != nil {
				log.Error().Err(err).Msg("servidor de estado finalizado")
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		log.Info().Msg("señal de apagado recibida, deteniendo vigilancia...")
	case <-ctx.Done():
	}

	cancelar()
	wg.Wait()

	if app != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("apagado del servidor de estado")
		}
	}

	emitirActa(cfg, orq.Resumen(), log)
	log.Info().Msg("servicio detenido")
	return nil
}

// emitirActa escribe el acta PDF de la corrida cuando está habilitada.
func emitirActa(cfg *config.Config, resumen *procesamiento.Resumen, log *logger.Logger) {
	if !cfg.Acta.Habilitada {
		return
	}
	ruta, err := pdf.NewGeneradorActa().Guardar(cfg.Acta.Carpeta, resumen.Cifras(), resumen.Entradas(), !cfg.Proceso.EscrituraBD)
	if err != nil {
		log.Error().Err(err).Msg("no se pudo emitir el acta PDF")
		return
	}
	log.Info().Str("ruta", ruta).Msg("acta PDF emitida")
}
