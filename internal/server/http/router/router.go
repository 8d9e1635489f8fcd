package router

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/findash/internal/app"
	"github.com/polkiloo/findash/internal/domain/model"
	"github.com/polkiloo/findash/internal/metrics"
	"github.com/polkiloo/findash/internal/server/http/handlers"
	"github.com/polkiloo/findash/internal/server/http/middleware"
)

// Params lists router dependencies.
type Params struct {
	fx.In

	Console *app.Console
	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

// Setup configures gin router with handlers and middleware.
func Setup(p Params) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(p.Logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	console := p.Console
	authHandler := handlers.NewAuthHandler(console)

	engine.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	engine.GET("/metrics", gin.WrapH(p.Metrics.Handler()))

	auth := engine.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/logout", authHandler.Logout)
	engine.GET("/session", authHandler.Session)
	engine.GET("/navigate", authHandler.Navigate)

	views := engine.Group("/views")
	views.Use(middleware.SessionRequired(console))
	handlers.NewDashboardHandler(console.Dashboard()).Register(views)
	handlers.NewResourceHandler[model.Customer, model.CustomerFilter](console.Customers(), nil, p.Logger).Register(views)
	handlers.NewResourceHandler[model.Product, model.ProductFilter](console.Products(), nil, p.Logger).Register(views)
	handlers.NewResourceHandler[model.Order, model.OrderFilter](console.Orders(), console.MountOrders, p.Logger).Register(views)
	handlers.NewLinesHandler(console.Lines(), console.Orders()).Register(views)

	return engine
}
