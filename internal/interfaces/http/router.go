package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/analytics"
	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/bulkimport"
	"github.com/jhoicas/almacen-api/internal/application/movement"
	"github.com/jhoicas/almacen-api/internal/application/reports"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	MaterialUC  *usecase.MaterialUseCase
	UserUC      *usecase.UserUseCase
	SettingUC   *usecase.SettingUseCase
	BulkUC      *bulkimport.UseCase
	ApplyUC     *movement.ApplyUseCase
	RequestUC   *movement.RequestWithdrawalUseCase
	DecideUC    *movement.DecideUseCase
	SignatureUC *movement.AttachSignatureUseCase
	QueryUC     *movement.QueryUseCase
	DashboardUC *analytics.DashboardUseCase
	ReportsUC   *reports.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	adminOnly := RequireRole(entity.RoleAdmin)
	canWithdraw := RequireRole(entity.RoleAdmin, entity.RoleRetirada)

	// Movements (protegido; lectura para cualquier rol autenticado)
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.ApplyUC, deps.RequestUC, deps.DecideUC, deps.SignatureUC, deps.QueryUC)
	movements.Post("/withdrawals", canWithdraw, movementHandler.RequestWithdrawal)
	movements.Post("/", adminOnly, movementHandler.CreateDirect)
	movements.Get("/", movementHandler.List)
	movements.Get("/mine", movementHandler.ListMine)
	movements.Get("/:id", movementHandler.GetByID)
	movements.Patch("/:id/decision", adminOnly, movementHandler.Decide)
	movements.Patch("/:id/signature", canWithdraw, movementHandler.AttachSignature)

	// Materials (protegido; escritura solo admin)
	materials := protected.Group("/materials")
	materialHandler := NewMaterialHandler(deps.MaterialUC, deps.BulkUC)
	materials.Get("/", materialHandler.List)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Post("/", adminOnly, materialHandler.Create)
	materials.Post("/bulk", adminOnly, materialHandler.BulkImport)
	materials.Put("/:id", adminOnly, materialHandler.Update)
	materials.Delete("/:id", adminOnly, materialHandler.Delete)

	// Users (solo admin)
	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Patch("/:id/password", userHandler.UpdatePassword)
	users.Delete("/:id", userHandler.Delete)

	// Dashboard (cualquier rol autenticado)
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.Summary)

	// Reports (cualquier rol autenticado)
	reportsGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportsUC)
	reportsGroup.Get("/movements.csv", reportHandler.MovementsCSV)
	reportsGroup.Get("/inventory.csv", reportHandler.InventoryCSV)
	reportsGroup.Get("/critical.csv", reportHandler.CriticalCSV)
	reportsGroup.Get("/inventory.pdf", reportHandler.InventoryPDF)

	// Settings (lectura para todos; escritura solo admin)
	settings := protected.Group("/settings")
	settingHandler := NewSettingHandler(deps.SettingUC)
	settings.Get("/logo", settingHandler.GetLogo)
	settings.Put("/logo", adminOnly, settingHandler.SetLogo)
}
