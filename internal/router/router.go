package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/rahat-sukari/api/internal/middleware"
	"github.com/rahat-sukari/api/pkg/metrics"
)

// Handler is anything that hangs its routes off a group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Config struct {
	RateLimit      rate.Limit
	RateBurst      int
	CORSConfig     middleware.CORSConfig
	MetricsPrefix  string
	RequestTimeout middleware.TimeoutConfig
}

type Router struct {
	engine *gin.Engine
	auth   *middleware.AuthMiddleware

	public    []Handler
	protected []Handler
}

func New(auth *middleware.AuthMiddleware, config Config) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	m := metrics.New(config.MetricsPrefix)

	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logger(),
		middleware.Metrics(m),
		middleware.Timeout(config.RequestTimeout),
		middleware.CORS(config.CORSConfig),
	)

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  config.RateLimit,
		Burst: config.RateBurst,
	})
	engine.Use(rateLimiter.RateLimit())

	return &Router{engine: engine, auth: auth}
}

// Public registers handlers reachable without a token.
func (r *Router) Public(handlers ...Handler) {
	r.public = append(r.public, handlers...)
}

// Protected registers handlers behind bearer authentication.
func (r *Router) Protected(handlers ...Handler) {
	r.protected = append(r.protected, handlers...)
}

func (r *Router) Setup() {
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.engine.Group("/api/v1")
	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	for _, h := range r.public {
		h.RegisterRoutes(api)
	}

	protected := api.Group("")
	protected.Use(r.auth.Authenticate())
	for _, h := range r.protected {
		h.RegisterRoutes(protected)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
