package http

import (
	nethttp "net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/drashti611/gowear-frontend/internal/bus"
	"github.com/drashti611/gowear-frontend/internal/config"
	"github.com/drashti611/gowear-frontend/internal/http/handlers"
	"github.com/drashti611/gowear-frontend/internal/http/handlers/admin"
	"github.com/drashti611/gowear-frontend/internal/http/middleware"
	"github.com/drashti611/gowear-frontend/internal/http/sessioncookie"
	"github.com/drashti611/gowear-frontend/internal/metrics"
	"github.com/drashti611/gowear-frontend/internal/modules/auth"
	"github.com/drashti611/gowear-frontend/internal/modules/cart"
	"github.com/drashti611/gowear-frontend/internal/modules/catalog"
	"github.com/drashti611/gowear-frontend/internal/modules/checkout"
	"github.com/drashti611/gowear-frontend/internal/modules/likes"
	"github.com/drashti611/gowear-frontend/internal/storage"
)

type Deps struct {
	Config   config.Config
	Logger   zerolog.Logger
	Sessions *sessioncookie.Codec
	Hub      *bus.Hub
	Catalog  *catalog.Catalog
	Carts    *cart.Service
	Likes    *likes.Service
	Auth     *auth.Service
	Checkout *checkout.Service
	Images   storage.Storage
	Metrics  *metrics.Metrics
	Registry *prometheus.Registry
}

func NewRouter(d Deps) *gin.Engine {
	if d.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.MaxMultipartMemory = 32 << 20

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(d.Logger))
	if d.Metrics != nil {
		r.Use(middleware.Metrics(d.Metrics.ObserveHTTP))
	}
	r.Use(middleware.ErrorHandler(d.Logger))
	r.Use(middleware.Recovery(d.Logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     d.Config.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(nethttp.StatusOK, gin.H{"status": "ok"})
	})
	if d.Registry != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))
	}
	if local := d.Config.Storage; local.Driver == "" || local.Driver == "local" {
		// An empty prefix would shadow every route, so uploads then stay unserved.
		if prefix := strings.Trim(local.LocalURLPrefix, "/"); prefix != "" {
			r.Static("/"+prefix, local.LocalDir)
		}
	}

	imageBase := d.Config.ImageBaseURL
	storefrontH := handlers.NewStorefrontHandler(d.Catalog, d.Likes, d.Carts, imageBase)
	cartH := handlers.NewCartHandler(d.Carts, d.Catalog, imageBase)
	badgeH := handlers.NewCartBadgeHandler(d.Likes)
	likesH := handlers.NewLikesHandler(d.Likes, d.Catalog, imageBase)
	authH := handlers.NewAuthHandler(d.Auth)
	checkoutH := handlers.NewCheckoutHandler(d.Checkout)
	eventsH := handlers.NewEventsHandler(d.Hub, d.Carts, d.Likes, d.Catalog, imageBase, allowOrigin(d.Config.CORSOrigins))
	if d.Metrics != nil {
		eventsH.OnConnect = func(delta int) { d.Metrics.BusSubscribers.Add(float64(delta)) }
	}
	adminH := admin.NewHandler(d.Catalog, d.Images, d.Auth.Client(), imageBase)

	api := r.Group("/api")
	api.Use(middleware.Session(d.Sessions))
	api.Use(middleware.LoadIdentity(d.Auth))
	{
		api.GET("/categories", storefrontH.Categories)
		api.GET("/categories/:id/subcategories", storefrontH.SubCategories)
		api.GET("/brands", storefrontH.Brands)
		api.GET("/subcategories/:id/products", storefrontH.Products)
		api.GET("/products/:id", storefrontH.Product)

		api.GET("/cart", cartH.Get)
		api.DELETE("/cart", cartH.Clear)
		api.POST("/cart/items", cartH.Add)
		api.PATCH("/cart/items/:id", cartH.SetQuantity)
		api.DELETE("/cart/items/:id", cartH.Remove)
		api.GET("/cart/badge", middleware.CartCount(d.Carts), badgeH.GetBadge)

		api.GET("/likes", likesH.List)
		api.POST("/likes/:id/toggle", likesH.Toggle)
		api.DELETE("/likes/:id", likesH.Remove)
		api.POST("/likes/:id/cart", likesH.MoveToCart)

		api.GET("/events", eventsH.Serve)

		api.POST("/auth/login", authH.Login)
		api.POST("/auth/logout", authH.Logout)
		api.POST("/auth/verify-email", authH.RequestOTP)
		api.POST("/auth/verify-otp", authH.VerifyOTP)
		api.POST("/auth/register", authH.Register)
		api.GET("/auth/me", authH.Me)

		api.GET("/checkout", checkoutH.Get)
		api.POST("/checkout", middleware.RequireAuth(), checkoutH.Place)
	}

	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.RequireAuth(), middleware.RequireAdmin())
	adminH.Mount(adminGroup)

	return r
}

// allowOrigin accepts websocket upgrades from the configured browser
// origins and from the serving host itself.
func allowOrigin(origins []string) func(r *nethttp.Request) bool {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return func(r *nethttp.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || allowed["*"] || allowed[origin] {
			return true
		}
		u, err := url.Parse(origin)
		return err == nil && u.Host == r.Host
	}
}
