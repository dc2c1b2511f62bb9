package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"conversion-bridge/internal/capi"
	"conversion-bridge/internal/config"
	"conversion-bridge/internal/db"
	httpSrv "conversion-bridge/internal/http"
	"conversion-bridge/internal/logger"
	"conversion-bridge/internal/relay"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the webhook bridge HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logger.Init(cfg.Log.Level)
		log := logger.Log

		if cfg.Asaas.WebhookToken == "" {
			log.Warn("asaas webhook token is not configured; every inbound request will be rejected")
		}

		var rds *redis.Client
		if cfg.RateLimit.Enabled {
			rds, err = db.NewRedisClient(db.RedisOpts{
				Addr:        cfg.Redis.Addr,
				Password:    cfg.Redis.Password,
				DB:          cfg.Redis.DB,
				DialTimeout: cfg.Redis.DialTimeout,
			})
			if err != nil {
				return fmt.Errorf("redis connect: %w", err)
			}
			defer func() { _ = rds.Close() }()
		}

		forwarder := capi.NewClient(capi.ClientConfig{
			BaseURL:       cfg.Facebook.BaseURL,
			APIVersion:    cfg.Facebook.APIVersion,
			PixelID:       cfg.Facebook.PixelID,
			AccessToken:   cfg.Facebook.AccessToken,
			TestEventCode: cfg.Facebook.TestEventCode,
			TimeoutMs:     cfg.Facebook.TimeoutMs,
			FailThreshold: cfg.Facebook.Breaker.FailThreshold,
			OpenForMs:     cfg.Facebook.Breaker.OpenForMs,
		})

		relaySvc := relay.New(forwarder, relay.Config{
			Keywords:       cfg.Filter.Keywords,
			EventSourceURL: cfg.Facebook.EventSourceURL,
		}, log)

		server := httpSrv.NewServer(cfg, relaySvc, rds)

		errCh := make(chan error, 1)
		go func() {
			log.Info("starting http server", zap.String("addr", cfg.HTTP.Addr))
			errCh <- server.Start(cfg.HTTP.Addr)
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-sigCh:
			log.Info("signal received, shutting down", zap.String("signal", sig.String()))
		case err := <-errCh:
			if err != nil {
				log.Error("http server exited", zap.Error(err))
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)

		return nil
	},
}
