// Package router assembles the gin engine: global middleware, the public
// storefront surface, the gateway webhook and the authenticated API.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/graficaerp/backend/internal/infrastructure/auth"
	"github.com/graficaerp/backend/internal/infrastructure/config"
	"github.com/graficaerp/backend/internal/infrastructure/logger"
	"github.com/graficaerp/backend/internal/interfaces/http/handler"
	"github.com/graficaerp/backend/internal/interfaces/http/middleware"
)

// Deps carries everything the route tree needs
type Deps struct {
	Config    *config.Config
	Logger    *zap.Logger
	JWT       *auth.JWTService
	Blacklist auth.TokenBlacklist
	Redis     *redis.Client

	System   *handler.SystemHandler
	Auth     *handler.AuthHandler
	Tenant   *handler.TenantHandler
	User     *handler.UserHandler
	Product  *handler.ProductHandler
	Category *handler.CategoryHandler
	Customer *handler.CustomerHandler
	Order    *handler.OrderHandler
	Payment  *handler.PaymentHandler
	CashFlow *handler.CashFlowHandler
	Stock    *handler.StockHandler
	Report   *handler.ReportHandler
	Billing  *handler.BillingHandler
	Webhook  *handler.WebhookHandler
	Public   *handler.PublicHandler
}

// New builds the gin engine with the full route tree
func New(deps Deps) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(deps.Config.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(deps.Config.HTTP.TrustedProxies)
	}

	engine.Use(
		otelgin.Middleware(deps.Config.App.Name),
		middleware.RequestID(),
		logger.GinMiddleware(deps.Logger),
		logger.Recovery(deps.Logger),
		middleware.CORSWithConfig(middleware.CORSFromHTTPConfig(&deps.Config.HTTP)),
		middleware.BodyLimit(deps.Config.HTTP.MaxBodySize),
	)

	if deps.Config.HTTP.RateLimitEnabled {
		general := middleware.NewRateLimiter(deps.Redis, "general",
			deps.Config.HTTP.RateLimitRequests, deps.Config.HTTP.RateLimitWindow, deps.Logger)
		engine.Use(middleware.RateLimit(general))
	}

	engine.GET("/health", deps.System.Health)
	engine.GET("/ready", deps.System.Ready)

	api := engine.Group("/api/v1")

	registerPublicRoutes(api, deps)
	registerAuthenticatedRoutes(api, deps)

	return engine
}

// registerPublicRoutes wires everything reachable without a session: login,
// signup, the storefront and the gateway webhook.
func registerPublicRoutes(api *gin.RouterGroup, deps Deps) {
	authGroup := api.Group("/auth")
	if deps.Config.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(deps.Redis, "auth",
			deps.Config.HTTP.AuthRateLimitRequests, deps.Config.HTTP.AuthRateLimitWindow, deps.Logger)
		authGroup.Use(middleware.RateLimitByKey(authLimiter, func(c *gin.Context) string {
			return c.ClientIP()
		}))
	}
	authGroup.POST("/login", deps.Auth.Login)
	authGroup.POST("/refresh", deps.Auth.Refresh)

	api.POST("/signup", deps.Tenant.Signup)

	public := api.Group("/public")
	public.GET("/shops/:slug/catalog", deps.Public.Catalog)
	public.POST("/shops/:slug/checkout", deps.Public.Checkout)
	public.GET("/orders/:token", deps.Public.TrackOrder)
	public.POST("/orders/:token/approve", deps.Public.ApproveOrder)
	public.POST("/orders/:token/pay", deps.Public.PayOrder)

	// Authenticated by HMAC signature, not by JWT
	api.POST("/webhooks/gateway", deps.Webhook.Receive)

	api.GET("/billing/plans", deps.Billing.ListPlans)
}

func registerAuthenticatedRoutes(api *gin.RouterGroup, deps Deps) {
	authed := api.Group("")
	authed.Use(middleware.JWTAuth(middleware.JWTMiddlewareConfig{
		JWTService:     deps.JWT,
		TokenBlacklist: deps.Blacklist,
		Logger:         deps.Logger,
	}))

	session := authed.Group("/auth")
	session.POST("/logout", deps.Auth.Logout)
	session.GET("/me", deps.Auth.Me)
	session.POST("/change-password", deps.Auth.ChangePassword)
	session.POST("/impersonate", middleware.RequireRole("admin"), deps.Auth.Impersonate)

	users := authed.Group("/users", middleware.RequireRole("admin"))
	users.POST("", deps.User.Create)
	users.GET("", deps.User.List)
	users.GET("/:id", deps.User.Get)
	users.PUT("/:id", deps.User.Update)
	users.POST("/:id/reset-password", deps.User.ResetPassword)
	users.DELETE("/:id", deps.User.Delete)

	categories := authed.Group("/categories")
	categories.GET("", deps.Category.List)
	categories.POST("", middleware.RequireRole("atendente"), deps.Category.Create)
	categories.PUT("/:id", middleware.RequireRole("atendente"), deps.Category.Rename)
	categories.DELETE("/:id", middleware.RequireRole("atendente"), deps.Category.Delete)

	products := authed.Group("/products")
	products.GET("", deps.Product.List)
	products.GET("/:id", deps.Product.Get)
	products.POST("", middleware.RequireRole("atendente"), deps.Product.Create)
	products.PUT("/:id", middleware.RequireRole("atendente"), deps.Product.Update)
	products.DELETE("/:id", middleware.RequireRole("atendente"), deps.Product.Delete)

	generate := products.Group("")
	if deps.Config.HTTP.AIRateLimitRequests > 0 {
		aiLimiter := middleware.NewRateLimiter(deps.Redis, "ai",
			deps.Config.HTTP.AIRateLimitRequests, deps.Config.HTTP.AIRateLimitWindow, deps.Logger)
		generate.Use(middleware.RateLimit(aiLimiter))
	}
	generate.POST("/:id/generate-description", middleware.RequireRole("atendente"), deps.Product.GenerateDescription)

	stock := products.Group("/:id/stock-movements", middleware.RequireRole("atendente", "producao"))
	stock.POST("", deps.Stock.Record)
	stock.GET("", deps.Stock.History)

	customers := authed.Group("/customers")
	customers.GET("", deps.Customer.List)
	customers.GET("/:id", deps.Customer.Get)
	customers.POST("", middleware.RequireRole("atendente"), deps.Customer.Create)
	customers.PUT("/:id", middleware.RequireRole("atendente"), deps.Customer.Update)
	customers.DELETE("/:id", middleware.RequireRole("atendente"), deps.Customer.Delete)

	// Registered outside /orders because gin's tree rejects a static
	// segment next to the ":id" wildcard.
	authed.GET("/kanban", deps.Order.Kanban)

	orders := authed.Group("/orders")
	orders.GET("", deps.Order.List)
	orders.GET("/:id", deps.Order.Get)
	orders.POST("", middleware.RequireRole("atendente"), deps.Order.Create)
	orders.DELETE("/:id", middleware.RequireRole("atendente"), deps.Order.Delete)
	orders.POST("/:id/items", middleware.RequireRole("atendente"), deps.Order.AddItem)
	orders.PUT("/:id/items/:item_id", middleware.RequireRole("atendente"), deps.Order.UpdateItem)
	orders.DELETE("/:id/items/:item_id", middleware.RequireRole("atendente"), deps.Order.RemoveItem)
	orders.POST("/:id/discount", middleware.RequireRole("atendente"), deps.Order.ApplyDiscount)
	orders.POST("/:id/status", deps.Order.ChangeStatus)
	orders.POST("/:id/artwork", middleware.RequireRole("atendente", "producao"), deps.Order.UploadArtwork)
	orders.GET("/:id/artwork", deps.Order.ArtworkURL)
	orders.POST("/:id/payments", middleware.RequireRole("atendente", "financeiro"), deps.Payment.Record)
	orders.GET("/:id/payments", deps.Payment.ListByOrder)

	authed.POST("/payments/:payment_id/cancel",
		middleware.RequireRole("atendente", "financeiro"), deps.Payment.Cancel)

	cashflow := authed.Group("/cashflow", middleware.RequireRole("financeiro"))
	cashflow.GET("", deps.CashFlow.Report)
	cashflow.POST("/entries", deps.CashFlow.CreateEntry)
	cashflow.PUT("/entries/:id", deps.CashFlow.UpdateEntry)
	cashflow.DELETE("/entries/:id", deps.CashFlow.DeleteEntry)

	authed.GET("/reports/dashboard", middleware.RequireRole("financeiro"), deps.Report.Dashboard)

	billing := authed.Group("/billing", middleware.RequireRole("admin"))
	billing.GET("/subscription", deps.Billing.GetSubscription)
	billing.POST("/checkout", deps.Billing.StartCheckout)
}
