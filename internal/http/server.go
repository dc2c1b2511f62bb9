package http

import (
	"context"
	"net/http"
	"time"

	"conversion-bridge/internal/config"
	"conversion-bridge/internal/http/middleware"
	"conversion-bridge/internal/metrics"
	"conversion-bridge/internal/relay"

	"github.com/labstack/echo/v4"
	echoMid "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

type Server struct{ e *echo.Echo }

func NewServer(cfg config.Config, relaySvc *relay.Relay, rds *redis.Client) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMid.Recover(), echoMid.Logger())

	metrics.MustRegister(prometheus.DefaultRegisterer)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// health
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	// middlewares
	authMW := middleware.AccessTokenMiddleware(cfg.Asaas.WebhookToken)
	rlMW := middleware.RateLimitMiddleware(middleware.RateLimitConfig{
		Redis:     rds,
		RPS:       cfg.RateLimit.RPS,
		KeyPrefix: "rl:ip:",
		Window:    time.Second,
	})

	// routes
	e.POST("/webhook", webhookHandler(relaySvc), authMW, rlMW)

	return &Server{e: e}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}
func (s *Server) Shutdown(ctx context.Context) error { return s.e.Shutdown(ctx) }
