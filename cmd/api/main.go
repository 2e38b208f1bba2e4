package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/ecoforecast-api/internal/application/report"
	"github.com/jhoicas/ecoforecast-api/internal/application/usecase"
	"github.com/jhoicas/ecoforecast-api/internal/domain/repository"
	"github.com/jhoicas/ecoforecast-api/internal/infrastructure/memory"
	"github.com/jhoicas/ecoforecast-api/internal/infrastructure/mongodb"
	infrapdf "github.com/jhoicas/ecoforecast-api/internal/infrastructure/pdf"
	"github.com/jhoicas/ecoforecast-api/internal/infrastructure/postgres"
	"github.com/jhoicas/ecoforecast-api/internal/infrastructure/spreadsheet"
	httpRouter "github.com/jhoicas/ecoforecast-api/internal/interfaces/http"
	"github.com/jhoicas/ecoforecast-api/internal/observability/metrics"
	"github.com/jhoicas/ecoforecast-api/pkg/config"
	"github.com/jhoicas/ecoforecast-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	repo, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Store.Driver).Msg("conexión al almacenamiento")
	}
	defer closeStore()

	metrics.Init()

	inputsUC := usecase.NewInputsUseCase(repo)
	reportUC := report.NewUseCase(inputsUC, infrapdf.NewSummaryGenerator(), spreadsheet.NewExporter())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.HTTP.CORSOrigins}))
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "EcoForecast API",
		}))
	} else if cfg.HTTP.SwaggerFile != "" {
		log.Warn().Str("file", cfg.HTTP.SwaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		InputsUC:    inputsUC,
		ReportUC:    reportUC,
		Logger:      log,
		ServiceName: cfg.App.Name,
		StoreDriver: cfg.Store.Driver,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStore construye el repositorio según STORE_DRIVER y devuelve su función de cierre.
func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.InputsRepository, func(), error) {
	switch strings.ToLower(cfg.Store.Driver) {
	case config.StoreDriverMemory:
		log.Warn().Msg("almacenamiento en memoria: los documentos se pierden al reiniciar")
		return memory.NewInputsRepository(), func() {}, nil

	case config.StoreDriverMongo:
		client, err := mongodb.Connect(ctx, cfg.Mongo)
		if err != nil {
			return nil, nil, err
		}
		repo := mongodb.NewInputsRepository(client, cfg.Mongo)
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("no se pudieron crear los índices de MongoDB")
		}
		return repo, func() {
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(dctx); err != nil {
				log.Error().Err(err).Msg("desconexión de MongoDB")
			}
		}, nil

	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return postgres.NewInputsRepository(pool), pool.Close, nil
	}
}
