package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/inventrack/dashboard-gateway/internal/api/handler"
	"github.com/inventrack/dashboard-gateway/internal/api/middleware"
	"github.com/inventrack/dashboard-gateway/internal/api/view"
	"github.com/inventrack/dashboard-gateway/internal/core/ports"
	"github.com/inventrack/dashboard-gateway/internal/core/service"
	"github.com/inventrack/dashboard-gateway/internal/infrastructure/upstream"
	"github.com/inventrack/dashboard-gateway/internal/pkg/notify"
)

// Deps carries the composition-root dependencies the router wires together.
// Everything is constructed once in main and injected; no package holds
// session or client state of its own.
type Deps struct {
	Inventory ports.Inventory
	Sessions  *service.SessionService
	Notifier  *notify.Notifier
	Upstream  *upstream.Client
	Redis     *redis.Client // nil when the file session backend is used
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("dashboard"))
	e.Use(middleware.Guard(d.Sessions))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.Inventory, d.Sessions, d.Notifier, d.Logger)
	dashboardHandler := handler.NewDashboardHandler(d.Inventory, d.Notifier, d.Logger)
	categoryHandler := handler.NewCategoryHandler(d.Inventory, d.Notifier, d.Logger)
	productHandler := handler.NewProductHandler(d.Inventory, d.Notifier, d.Logger)
	supplierHandler := handler.NewSupplierHandler(d.Inventory, d.Notifier, d.Logger)
	transactionHandler := handler.NewTransactionHandler(d.Inventory, d.Notifier, d.Logger)
	auditLogHandler := handler.NewAuditLogHandler(d.Inventory, d.Notifier, d.Logger)

	// --- Auth routes ---
	e.GET("/login", authHandler.LoginPage)
	e.POST("/login", authHandler.Login)
	e.POST("/logout", authHandler.Logout)

	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/dashboard")
	})

	// --- Dashboard routes (the guard bounces anonymous visitors) ---
	dash := e.Group("/dashboard")
	dash.GET("", dashboardHandler.Overview)

	dash.GET("/category", categoryHandler.List)
	dash.POST("/category", categoryHandler.Create)
	dash.POST("/category/:id", categoryHandler.Update)
	dash.POST("/category/:id/delete", categoryHandler.Delete)

	dash.GET("/product", productHandler.List)
	dash.POST("/product", productHandler.Create)
	dash.POST("/product/:id", productHandler.Update)
	dash.POST("/product/:id/delete", productHandler.Delete)

	dash.GET("/suppliers", supplierHandler.List)
	dash.POST("/suppliers", supplierHandler.Create)
	dash.POST("/suppliers/:id", supplierHandler.Update)
	dash.POST("/suppliers/:id/delete", supplierHandler.Delete)

	dash.GET("/transactions", transactionHandler.List)
	dash.POST("/transactions", transactionHandler.Create)
	dash.POST("/transactions/:id", transactionHandler.Update)
	dash.POST("/transactions/:id/delete", transactionHandler.Delete)

	dash.GET("/audit-log", auditLogHandler.List)

	// --- Observability (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Upstream, d.Redis)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	return e, nil
}
