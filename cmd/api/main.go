package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/Inventario-console/internal/application/analytics"
	"github.com/jhoicas/Inventario-console/internal/application/auth"
	"github.com/jhoicas/Inventario-console/internal/application/notification"
	"github.com/jhoicas/Inventario-console/internal/application/session"
	"github.com/jhoicas/Inventario-console/internal/application/usecase"
	"github.com/jhoicas/Inventario-console/internal/infrastructure/backend"
	"github.com/jhoicas/Inventario-console/internal/infrastructure/badgerstore"
	infrapdf "github.com/jhoicas/Inventario-console/internal/infrastructure/pdf"
	"github.com/jhoicas/Inventario-console/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/Inventario-console/internal/interfaces/http"
	"github.com/jhoicas/Inventario-console/pkg/config"
	"github.com/jhoicas/Inventario-console/pkg/i18n"
	"github.com/jhoicas/Inventario-console/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "consola: %v\n", err)
		os.Exit(1)
	}
}

// run arma y sirve la consola. Los errores de arranque vuelven aquí para que los defers
// (cierre del almacén Badger incluido) se ejecuten antes de salir.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("backend", cfg.Backend.BaseURL).
		Msg("iniciando consola")

	tr := i18n.New(cfg.App.Lang)
	loc := time.Local

	// Ámbito durable ("recordarme") en Badger; sin ruta configurada vive solo en memoria.
	durable, err := badgerstore.Open(badgerstore.Options{
		Path:     cfg.Session.StorePath,
		Secret:   cfg.Session.StoreKey,
		InMemory: cfg.Session.StorePath == "",
		Log:      log,
	})
	if err != nil {
		return fmt.Errorf("abrir almacén de sesión: %w", err)
	}
	defer func() {
		if err := durable.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar almacén de sesión")
		}
	}()
	sess := session.New(durable, session.NewMemoryStore())

	client := backend.NewClient(cfg.Backend, sess, log.Named("backend"))
	productAPI := backend.NewProductAPI(client)
	referenceAPI := backend.NewReferenceAPI(client)
	userAPI := backend.NewUserAPI(client)
	importAPI := backend.NewImportReceiptAPI(client)
	exportAPI := backend.NewExportReceiptAPI(client)
	historyLogAPI := backend.NewHistoryLogAPI(client)

	printer := infrapdf.NewMarotoReceiptPrinter(cfg.App.Name, tr)
	productUC := usecase.NewProductUseCase(productAPI, referenceAPI, xlsx.NewInventoryExporter(), tr, loc)
	staffUC := usecase.NewStaffUseCase(userAPI, tr, loc)
	importUC := usecase.NewReceiptUseCase(importAPI, sess, printer, tr, loc)
	exportUC := usecase.NewReceiptUseCase(exportAPI, sess, printer, tr, loc)
	historyLogUC := usecase.NewHistoryLogUseCase(historyLogAPI, sess, tr, loc)
	referenceUC := usecase.NewReferenceUseCase(referenceAPI, tr, productUC.ListView(), productUC.InventoryView())
	dashboardUC := appanalytics.NewDashboardUseCase(productAPI, userAPI, importAPI, exportAPI, sess, loc)
	authUC := auth.NewAuthUseCase(backend.NewAuthAPI(client), sess, log)

	workspace := usecase.NewWorkspace(
		productUC.ListView(),
		productUC.InventoryView(),
		staffUC.ListView(),
		importUC.ListView(),
		exportUC.ListView(),
		historyLogUC.ListView(),
	)

	var pollerOpts []notification.Option
	if cfg.Notify.Stream {
		pollerOpts = append(pollerOpts, notification.WithStream(notification.NewStreamRelay(historyLogAPI, log)))
	}
	poller := notification.NewPoller(historyLogUC, cfg.Notify.PollInterval(), tr, log, pollerOpts...)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Los listeners se registran antes de Init para que la sesión restaurada arranque el sondeo.
	sess.OnChange(workspace.OnSessionChange)
	sess.OnChange(poller.SessionListener(ctx))
	sess.OnChange(func(ev session.Event) {
		log.Info().Bool("authenticated", ev.Authenticated).Str("reason", ev.Reason).Msg("cambio de sesión")
	})
	if err := sess.Init(); err != nil {
		return fmt.Errorf("restaurar sesión: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Inventario Console API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "authenticated": sess.Authenticated()})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Session:      sess,
		Translator:   tr,
		Logger:       log,
		AuthUC:       authUC,
		Workspace:    workspace,
		ProductUC:    productUC,
		StaffUC:      staffUC,
		ImportUC:     importUC,
		ExportUC:     exportUC,
		HistoryLogUC: historyLogUC,
		ReferenceUC:  referenceUC,
		DashboardUC:  dashboardUC,
		Poller:       poller,
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
	stop()
	poller.Stop()

	log.Info().Msg("consola detenida")
	return nil
}
