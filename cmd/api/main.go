package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/merchmaroc/merchandising-api/internal/application/analytics"
	"github.com/merchmaroc/merchandising-api/internal/application/auth"
	"github.com/merchmaroc/merchandising-api/internal/application/importer"
	"github.com/merchmaroc/merchandising-api/internal/application/usecase"
	"github.com/merchmaroc/merchandising-api/internal/infrastructure/postgres"
	httpRouter "github.com/merchmaroc/merchandising-api/internal/interfaces/http"
	"github.com/merchmaroc/merchandising-api/pkg/config"
	"github.com/merchmaroc/merchandising-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	storeRepo := postgres.NewStoreRepository(pool)
	assignmentRepo := postgres.NewAssignmentRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	visitRepo := postgres.NewVisitRepository(pool)
	selloutRepo := postgres.NewSelloutRepository(pool)
	interactionRepo := postgres.NewInteractionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	userUC := usecase.NewUserUseCase(userRepo, txRunner)
	storeUC := usecase.NewStoreUseCase(storeRepo, txRunner)
	assignmentUC := usecase.NewAssignmentUseCase(assignmentRepo, userRepo, storeRepo, txRunner)
	productUC := usecase.NewProductUseCase(productRepo, txRunner)
	visitUC := usecase.NewVisitUseCase(
		visitRepo, selloutRepo, interactionRepo,
		userRepo, storeRepo, assignmentRepo, productRepo,
	)
	dashboardUC := appanalytics.NewDashboardUseCase(visitRepo, assignmentRepo)
	importerSvc := importer.NewService(userUC, storeUC, assignmentUC, productUC, userRepo, storeRepo, log)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Merchandising API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	// Fotos de visita servidas estáticas (las URLs persistidas son /uploads/...)
	app.Static("/uploads", cfg.Storage.PublicDir)

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		UserUC:       userUC,
		StoreUC:      storeUC,
		AssignmentUC: assignmentUC,
		ProductUC:    productUC,
		VisitUC:      visitUC,
		DashboardUC:  dashboardUC,
		Importer:     importerSvc,
		JWTSecret:    cfg.JWT.Secret,
		PhotoDir:     cfg.Storage.PhotoDir,
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
