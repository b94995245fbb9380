package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Inventario-console/internal/application/analytics"
	"github.com/jhoicas/Inventario-console/internal/application/auth"
	"github.com/jhoicas/Inventario-console/internal/application/notification"
	"github.com/jhoicas/Inventario-console/internal/application/usecase"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/pkg/i18n"
	"github.com/jhoicas/Inventario-console/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Session      ProfileSource
	Translator   *i18n.Translator
	Logger       *logger.Logger
	AuthUC       *auth.AuthUseCase
	Workspace    *usecase.Workspace
	ProductUC    *usecase.ProductUseCase
	StaffUC      *usecase.StaffUseCase
	ImportUC     *usecase.ReceiptUseCase
	ExportUC     *usecase.ReceiptUseCase
	HistoryLogUC *usecase.HistoryLogUseCase
	ReferenceUC  *usecase.ReferenceUseCase
	DashboardUC  *appanalytics.DashboardUseCase
	Poller       *notification.Poller
}

// Router registra las rutas de la API de la consola.
func Router(app *fiber.App, deps RouterDeps) {
	errs := NewErrors(deps.Translator, deps.Logger)
	api := app.Group("/api")

	// Sesión (público)
	sessionHandler := NewSessionHandler(deps.AuthUC, deps.Translator, errs)
	api.Get("/session", sessionHandler.Current)
	api.Post("/session/login", sessionHandler.Login)
	api.Post("/session/logout", sessionHandler.Logout)

	// Todo lo demás requiere token en alguno de los dos ámbitos
	protected := api.Group("/", RequireSession(deps.Session, deps.Translator))

	// Vistas de lista
	views := protected.Group("/views/:name")
	viewHandler := NewViewHandler(deps.Workspace, errs)
	views.Get("/", viewHandler.Get)
	views.Post("/refresh", viewHandler.Refresh)
	views.Put("/query", viewHandler.SetQuery)
	views.Put("/sort", viewHandler.SetSort)
	views.Put("/pagination", viewHandler.SetPagination)
	views.Delete("/rows/:id", viewHandler.DeleteRow)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, errs)
	products.Get("/options", productHandler.FormOptions)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	protected.Get("/locations/:id/products", productHandler.ListByLocation)
	protected.Get("/inventory/export", productHandler.ExportInventory)

	// Staff (admin y manager)
	staff := protected.Group("/staff", RequireRole(entity.RoleAdmin, entity.RoleManager))
	staffHandler := NewStaffHandler(deps.StaffUC, errs)
	staff.Get("/next-code", staffHandler.NextCode)
	staff.Post("/", staffHandler.Create)
	staff.Get("/:id", staffHandler.GetByID)
	staff.Put("/:id", staffHandler.Update)

	// Comprobantes de entrada y salida
	for prefix, uc := range map[string]*usecase.ReceiptUseCase{
		"/" + usecase.ViewImportReceipts: deps.ImportUC,
		"/" + usecase.ViewExportReceipts: deps.ExportUC,
	} {
		receipts := protected.Group(prefix)
		receiptHandler := NewReceiptHandler(uc, errs)
		receipts.Get("/new-code", receiptHandler.NewCode)
		receipts.Post("/", receiptHandler.Create)
		receipts.Get("/:id", receiptHandler.GetByID)
		receipts.Get("/:id/pdf", receiptHandler.Print)
	}

	// Registro de actividad (solo admin)
	logs := protected.Group("/history-logs", RequireRole(entity.RoleAdmin))
	logHandler := NewHistoryLogHandler(deps.HistoryLogUC, errs)
	logs.Post("/", logHandler.Create)
	logs.Get("/:id", logHandler.GetByID)
	logs.Put("/:id/read", logHandler.MarkRead)
	logs.Put("/:id/unread", logHandler.MarkUnread)

	// Referencias del catálogo
	refs := protected.Group("/references/:kind")
	refHandler := NewReferenceHandler(deps.ReferenceUC, errs)
	refs.Get("/", refHandler.List)
	refs.Post("/", refHandler.Create)
	refs.Put("/:id", refHandler.Update)
	refs.Delete("/:id", refHandler.Delete)

	// Inicio
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.Poller, errs)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)
	protected.Get("/notifications", dashboardHandler.Notifications)
}
