package rest

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/metric"
)

// RouterConfig wires the HTTP surface.
type RouterConfig struct {
	ServiceName    string
	Handler        *CalculatorHandler
	Logger         *slog.Logger
	Meter          metric.Meter
	MetricsHandler http.Handler
	RateLimit      int
	// Ready gates /readyz. Nil means always ready.
	Ready func() error
}

// NewRouter builds the gin engine with middleware and routes.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(
		Recovery(cfg.Logger),
		RequestID(),
		otelgin.Middleware(cfg.ServiceName),
		Logging(cfg.Logger),
	)
	if cfg.Meter != nil {
		r.Use(Metrics(cfg.Meter))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/readyz", func(c *gin.Context) {
		if cfg.Ready != nil {
			if err := cfg.Ready(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "message": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	if cfg.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(cfg.MetricsHandler))
	}

	calculator := r.Group("/calculator")
	if cfg.RateLimit > 0 {
		calculator.Use(RateLimit(NewClientRateLimiter(cfg.RateLimit)))
	}
	calculator.POST("/offers", cfg.Handler.CalculateOffers)
	calculator.POST("/calc", cfg.Handler.CalculateCredit)

	return r
}
