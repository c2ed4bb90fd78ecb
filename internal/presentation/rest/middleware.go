package rest

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/bibbank/calculator/internal/application/dto"
)

const requestIDHeader = "X-Request-ID"

// RequestID propagates the caller's X-Request-ID or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDHeader, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// Logging logs every request with method, path, status and duration.
func Logging(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.Request.Context(), level, "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_addr", c.ClientIP(),
			"request_id", c.GetString(requestIDHeader),
		)
	}
}

// Recovery turns a panic into a 500 with the standard error body.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		logger.ErrorContext(c.Request.Context(), "panic recovered",
			"path", c.Request.URL.Path,
			"panic", recovered,
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
			Message: "internal server error",
			Code:    CodeInternal,
		})
	})
}

// Metrics records request count and latency per route.
func Metrics(meter metric.Meter) gin.HandlerFunc {
	requests, _ := meter.Int64Counter("http_server_requests_total",
		metric.WithDescription("The total number of HTTP requests."))
	latency, _ := meter.Float64Histogram("http_server_duration_seconds",
		metric.WithUnit("s"),
		metric.WithDescription("The latency of HTTP requests."))

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		attrs := metric.WithAttributes(
			attribute.String("http.route", route),
			attribute.String("http.request.method", c.Request.Method),
			attribute.Int("http.response.status_code", c.Writer.Status()),
		)
		requests.Add(c.Request.Context(), 1, attrs)
		latency.Record(c.Request.Context(), time.Since(start).Seconds(), attrs)
	}
}

// RateLimiter implements a simple token bucket rate limiter.
type RateLimiter struct {
	mu         sync.Mutex
	tokens     float64
	maxTokens  float64
	refillRate float64 // tokens per second
	lastRefill time.Time
	lastSeen   time.Time
}

// NewRateLimiter creates a rate limiter that allows rps requests per second.
func NewRateLimiter(rps int) *RateLimiter {
	now := time.Now()
	return &RateLimiter{
		tokens:     float64(rps),
		maxTokens:  float64(rps),
		refillRate: float64(rps),
		lastRefill: now,
		lastSeen:   now,
	}
}

// Allow reports whether a single request is permitted.
// It consumes one token if available.
func (rl *RateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(rl.lastRefill).Seconds()
	rl.tokens += elapsed * rl.refillRate
	if rl.tokens > rl.maxTokens {
		rl.tokens = rl.maxTokens
	}
	rl.lastRefill = now
	rl.lastSeen = now

	if rl.tokens >= 1 {
		rl.tokens--
		return true
	}
	return false
}

func (rl *RateLimiter) idleSince(t time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return rl.lastSeen.Before(t)
}

// ClientRateLimiter keeps one token bucket per client IP.
type ClientRateLimiter struct {
	mu      sync.Mutex
	rps     int
	clients map[string]*RateLimiter
	idleTTL time.Duration
	lastGC  time.Time
}

func NewClientRateLimiter(rps int) *ClientRateLimiter {
	return &ClientRateLimiter{
		rps:     rps,
		clients: make(map[string]*RateLimiter),
		idleTTL: 5 * time.Minute,
		lastGC:  time.Now(),
	}
}

// Allow consumes a token from the client's bucket.
func (l *ClientRateLimiter) Allow(client string) bool {
	l.mu.Lock()
	now := time.Now()
	if now.Sub(l.lastGC) > l.idleTTL {
		for key, rl := range l.clients {
			if rl.idleSince(now.Add(-l.idleTTL)) {
				delete(l.clients, key)
			}
		}
		l.lastGC = now
	}
	rl, ok := l.clients[client]
	if !ok {
		rl = NewRateLimiter(l.rps)
		l.clients[client] = rl
	}
	l.mu.Unlock()

	return rl.Allow()
}

// RateLimit rejects requests above the per-client budget with 429.
func RateLimit(limiter *ClientRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Message: "rate limit exceeded",
				Code:    "RATE_LIMITED",
			})
			return
		}
		c.Next()
	}
}
