package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appauth "github.com/ghsoft/finanzas-api/internal/application/auth"
	"github.com/ghsoft/finanzas-api/internal/application/categories"
	"github.com/ghsoft/finanzas-api/internal/application/chat"
	"github.com/ghsoft/finanzas-api/internal/application/ledger"
	"github.com/ghsoft/finanzas-api/internal/application/provisioning"
	"github.com/ghsoft/finanzas-api/internal/application/report"
	"github.com/ghsoft/finanzas-api/internal/application/teams"
	infraai "github.com/ghsoft/finanzas-api/internal/infrastructure/ai"
	"github.com/ghsoft/finanzas-api/internal/infrastructure/identity"
	infrapdf "github.com/ghsoft/finanzas-api/internal/infrastructure/pdf"
	"github.com/ghsoft/finanzas-api/internal/infrastructure/postgres"
	httpRouter "github.com/ghsoft/finanzas-api/internal/interfaces/http"
	"github.com/ghsoft/finanzas-api/pkg/config"
	"github.com/ghsoft/finanzas-api/pkg/logger"
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
	txRepo := postgres.NewTransactionRepository(pool)
	balanceRepo := postgres.NewBalanceRepository(pool)
	kpiRepo := postgres.NewKPIRepository(pool)
	teamRepo := postgres.NewTeamRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)

	identityStore := identity.NewStore(pool)

	provisionUC := provisioning.New(userRepo, provisioning.DefaultRetryPolicy, log.Zerolog())
	authUC := appauth.New(identityStore, provisionUC, userRepo, appauth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log.Zerolog())

	balanceUC := ledger.NewBalanceUseCase(balanceRepo)
	kpiUC := ledger.NewKPIUseCase(txRepo, kpiRepo)
	ingestUC := ledger.NewIngestUseCase(txRepo, balanceUC, kpiUC, log.Zerolog())
	transactionUC := ledger.NewTransactionUseCase(txRepo, ingestUC, log.Zerolog())

	teamUC := teams.New(teamRepo, userRepo)
	categoryUC := categories.New(categoryRepo)

	openRouter := infraai.NewOpenRouterService(cfg.Chat.APIKey, cfg.Chat.Model, cfg.Chat.Referer)
	chatUC := chat.New(openRouter)

	pdfGenerator := infrapdf.NewMarotoKPIReport()
	reportUC := report.New(kpiUC, userRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		BalanceUC:       balanceUC,
		IngestUC:        ingestUC,
		TransactionUC:   transactionUC,
		KPIUC:           kpiUC,
		ReportUC:        reportUC,
		TeamUC:          teamUC,
		CategoryUC:      categoryUC,
		ChatUC:          chatUC,
		JWTSecret:       cfg.JWT.Secret,
		AdminAccessCode: cfg.Admin.AccessCode,
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
