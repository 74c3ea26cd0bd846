package routes

import (
	"net/http"

	"github.com/bidacafe/pos-gateway/internal/config"
	domainRepo "github.com/bidacafe/pos-gateway/internal/domain/repository"
	"github.com/bidacafe/pos-gateway/internal/infrastructure/posapi"
	"github.com/bidacafe/pos-gateway/internal/presentation/http/dto/response"
	"github.com/bidacafe/pos-gateway/internal/presentation/http/handler"
	"github.com/bidacafe/pos-gateway/internal/presentation/http/middleware"
	"github.com/bidacafe/pos-gateway/pkg/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Invoice  *handler.InvoiceHandler
	Product  *handler.ProductHandler
	Employee *handler.EmployeeHandler
	Overview *handler.OverviewHandler
	Printer  *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	Log             *zap.Logger
	JWTManager      *utils.JWTManager
	Sessions        middleware.SessionResolver
	NewClient       func(*posapi.Session) *posapi.Client
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.RateLimiter
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Log))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Route not found")
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")
	{
		// Public routes, limited per client IP
		public := v1.Group("")
		public.Use(deps.RateLimiter.Middleware())
		registerAuthRoutes(public, h)

		// Protected routes, limited per session
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(middleware.AuthConfig{
			JWT:       deps.JWTManager,
			Sessions:  deps.Sessions,
			NewClient: deps.NewClient,
			Log:       deps.Log,
		}))
		protected.Use(deps.RateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)

	registerInvoiceRoutes(protected, h, deps)
	registerProductRoutes(protected, h)
	registerEmployeeRoutes(protected, h)
	registerOverviewRoutes(protected, h)
	registerPrinterRoutes(protected, h)
}

func registerInvoiceRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	idem := middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo, Log: deps.Log}

	invoices := protected.Group("/invoices")
	{
		invoices.GET("", h.Invoice.List)
		invoices.POST("", middleware.IdempotencyRequired(idem), h.Invoice.Create)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.PATCH("/:id/pay", middleware.Idempotency(idem), h.Invoice.Pay)
		invoices.GET("/:id/qrcode", h.Invoice.QRCode)
		invoices.POST("/:id/print", h.Printer.PrintInvoice)
	}
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.POST("/upload-image", h.Product.UploadImage)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}

	protected.GET("/categories", h.Product.ListCategories)
}

func registerEmployeeRoutes(protected *gin.RouterGroup, h *Handlers) {
	employees := protected.Group("/employees")
	employees.Use(middleware.RequireRole("admin"))
	{
		employees.GET("", h.Employee.List)
		employees.POST("", h.Employee.Create)
		employees.GET("/:id", h.Employee.Get)
		employees.PUT("/:id", h.Employee.Update)
		employees.DELETE("/:id", h.Employee.Delete)
		employees.PATCH("/:id/role", h.Employee.ChangeRole)
		employees.PATCH("/:id/active", h.Employee.SetActive)
		employees.PATCH("/:id/reset-password", h.Employee.ResetPassword)
	}
}

func registerOverviewRoutes(protected *gin.RouterGroup, h *Handlers) {
	overview := protected.Group("/overview")
	{
		overview.GET("", h.Overview.GetOverview)
		overview.GET("/export", h.Overview.Export)
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printer := protected.Group("/printer")
	{
		printer.GET("/status", h.Printer.GetStatus)
		printer.POST("/test", h.Printer.TestPrint)
	}
}
