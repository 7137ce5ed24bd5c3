package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ghsoft/finanzas-api/internal/application/auth"
	"github.com/ghsoft/finanzas-api/internal/application/categories"
	"github.com/ghsoft/finanzas-api/internal/application/chat"
	"github.com/ghsoft/finanzas-api/internal/application/ledger"
	"github.com/ghsoft/finanzas-api/internal/application/report"
	"github.com/ghsoft/finanzas-api/internal/application/teams"
	"github.com/ghsoft/finanzas-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.UseCase
	BalanceUC       *ledger.BalanceUseCase
	IngestUC        *ledger.IngestUseCase
	TransactionUC   *ledger.TransactionUseCase
	KPIUC           *ledger.KPIUseCase
	ReportUC        *report.UseCase
	TeamUC          *teams.UseCase
	CategoryUC      *categories.UseCase
	ChatUC          *chat.UseCase
	JWTSecret       string
	AdminAccessCode string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Config (público: el frontend lo consulta antes del registro)
	configHandler := NewConfigHandler(deps.AdminAccessCode)
	api.Get("/config", configHandler.Get)

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Transactions (protegido)
	txGroup := protected.Group("/transactions")
	txHandler := NewTransactionHandler(deps.IngestUC, deps.TransactionUC, deps.KPIUC)
	txGroup.Get("/", txHandler.List)
	txGroup.Post("/", txHandler.Create)
	txGroup.Get("/stats", txHandler.Stats)
	txGroup.Put("/:id", txHandler.Update)
	txGroup.Delete("/:id", txHandler.Delete)

	// Balance (protegido)
	balanceGroup := protected.Group("/balance")
	balanceHandler := NewBalanceHandler(deps.BalanceUC)
	balanceGroup.Get("/", balanceHandler.Current)
	balanceGroup.Get("/history", balanceHandler.History)

	// KPIs (protegido)
	kpiGroup := protected.Group("/kpis")
	kpiHandler := NewKPIHandler(deps.KPIUC, deps.ReportUC)
	kpiGroup.Get("/:month", kpiHandler.Get)
	kpiGroup.Post("/:month/recalculate", kpiHandler.Recalculate)
	kpiGroup.Get("/:month/report", kpiHandler.Report)

	// Teams (protegido; crear equipos es solo para admins)
	teamGroup := protected.Group("/teams")
	teamHandler := NewTeamHandler(deps.TeamUC)
	teamGroup.Post("/", RequireRole(entity.RoleAdmin), teamHandler.Create)
	teamGroup.Get("/:code/members", teamHandler.Members)

	// Categories (protegido)
	catGroup := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	catGroup.Get("/", categoryHandler.List)
	catGroup.Post("/", categoryHandler.Create)
	catGroup.Put("/:id", categoryHandler.Update)
	catGroup.Delete("/:id", categoryHandler.Delete)

	// Chat (protegido)
	chatGroup := protected.Group("/chat")
	chatHandler := NewChatHandler(deps.ChatUC)
	chatGroup.Post("/completions", chatHandler.Completions)
}
