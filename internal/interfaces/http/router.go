package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/merchmaroc/merchandising-api/internal/application/analytics"
	"github.com/merchmaroc/merchandising-api/internal/application/auth"
	"github.com/merchmaroc/merchandising-api/internal/application/importer"
	"github.com/merchmaroc/merchandising-api/internal/application/usecase"
	"github.com/merchmaroc/merchandising-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	UserUC       *usecase.UserUseCase
	StoreUC      *usecase.StoreUseCase
	AssignmentUC *usecase.AssignmentUseCase
	ProductUC    *usecase.ProductUseCase
	VisitUC      *usecase.VisitUseCase
	DashboardUC  *analytics.DashboardUseCase
	Importer     *importer.Service
	JWTSecret    string
	PhotoDir     string
}

// Router registra las rutas de la API. Las mutaciones de la consola quedan
// reservadas al SUPERVISOR; las rutas del móvil (mis asignaciones, envío de
// visita, sellouts, interacciones) admiten PROMOTER y SFOS.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	supervisorOnly := RequireRole(entity.RoleSupervisor)
	fieldRoles := RequireRole(entity.RolePromoter, entity.RoleSFOS)

	// Auth (login público, perfil protegido)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Users
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/stats", userHandler.Stats)
	users.Get("/:id", userHandler.GetByID)
	users.Post("/", supervisorOnly, userHandler.Create)
	users.Post("/bulk", supervisorOnly, userHandler.CreateBulk)
	users.Put("/:id/manager", supervisorOnly, userHandler.AssignManager)
	users.Put("/:id/assign/:sfosId", supervisorOnly, userHandler.AssignManager)

	// Stores
	stores := protected.Group("/stores")
	storeHandler := NewStoreHandler(deps.StoreUC)
	stores.Get("/", storeHandler.List)
	stores.Get("/:id", storeHandler.GetByID)
	stores.Post("/", supervisorOnly, storeHandler.Create)
	stores.Post("/bulk", supervisorOnly, storeHandler.CreateBulk)
	stores.Put("/:id", supervisorOnly, storeHandler.Update)
	stores.Delete("/:id", supervisorOnly, storeHandler.Delete)

	// Assignments
	assignments := protected.Group("/assignments")
	assignmentHandler := NewAssignmentHandler(deps.AssignmentUC)
	assignments.Get("/", assignmentHandler.List)
	assignments.Get("/my", fieldRoles, assignmentHandler.My)
	assignments.Get("/team", RequireRole(entity.RoleSFOS), assignmentHandler.Team)
	assignments.Get("/:id", assignmentHandler.GetByID)
	assignments.Post("/", supervisorOnly, assignmentHandler.Create)
	assignments.Post("/bulk", supervisorOnly, assignmentHandler.CreateBulk)
	assignments.Put("/:id", supervisorOnly, assignmentHandler.Update)
	assignments.Patch("/:id/tasks", assignmentHandler.UpdateTasks)
	assignments.Post("/:id/update-tasks", assignmentHandler.UpdateTasks)
	assignments.Delete("/:id", supervisorOnly, assignmentHandler.Delete)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/categories", productHandler.Categories)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", supervisorOnly, productHandler.Create)
	products.Post("/bulk", supervisorOnly, productHandler.CreateBulk)

	// Visits
	visits := protected.Group("/visits")
	visitHandler := NewVisitHandler(deps.VisitUC)
	visits.Get("/", visitHandler.List)
	visits.Get("/stats", visitHandler.Stats)
	visits.Get("/user/:userId", visitHandler.ListByUser)
	visits.Get("/store/:storeId", visitHandler.ListByStore)
	visits.Post("/", fieldRoles, visitHandler.Submit)
	visits.Post("/submit", fieldRoles, visitHandler.Submit)
	visits.Get("/:id", visitHandler.GetByID)
	visits.Put("/:id/status", supervisorOnly, visitHandler.UpdateStatus)
	visits.Patch("/:id/status", supervisorOnly, visitHandler.UpdateStatus)
	visits.Get("/:id/sellouts", visitHandler.ListSellouts)
	visits.Post("/:id/sellouts", fieldRoles, visitHandler.AddSellout)
	visits.Post("/:id/sellouts/batch", fieldRoles, visitHandler.AddSelloutBatch)
	visits.Delete("/:id/sellouts/:selloutId", fieldRoles, visitHandler.DeleteSellout)
	visits.Get("/:id/interactions", visitHandler.ListInteractions)
	visits.Post("/:id/interactions", fieldRoles, visitHandler.AddInteraction)

	// Fotos de visita (subida desde el móvil)
	photos := protected.Group("/photos")
	photoHandler := NewPhotoHandler(deps.VisitUC, deps.PhotoDir)
	photos.Post("/upload", fieldRoles, photoHandler.Upload)

	// Dashboard
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.Summary)

	// Imports CSV (solo SUPERVISOR)
	imports := protected.Group("/import", supervisorOnly)
	importHandler := NewImportHandler(deps.Importer)
	imports.Post("/users", importHandler.Users)
	imports.Post("/stores", importHandler.Stores)
	imports.Post("/assignments", importHandler.Assignments)
	imports.Post("/products", importHandler.Products)
}
