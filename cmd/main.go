package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ferdian3456/communityclient/internal/config"
	"github.com/ferdian3456/communityclient/internal/model"
	"github.com/ferdian3456/communityclient/internal/observability"

	"github.com/go-playground/validator/v10"
	zapLog "go.uber.org/zap"
)

// Headless client: restores or opens a session, warms the home feed and
// keeps it fresh until stopped.
func main() {
	time.Local = time.UTC

	zap := config.NewZap(os.Getenv("LOG_LEVEL"))
	koanf := config.NewKoanf(".env", zap)
	validate := validator.New()

	clientConfig, err := config.LoadClientConfig(koanf, validate)
	if err != nil {
		zap.Fatal("invalid client config", zapLog.Error(err))
	}

	shutdownTracer, err := observability.Init(context.Background(), config.LoadObservabilityConfig(koanf, "community-client", zap), zap)
	if err != nil {
		zap.Fatal("failed to init tracing", zapLog.Error(err))
	}

	rds := config.NewRedisClient(clientConfig, zap)
	app := config.NewClientApp(clientConfig, rds, validate, zap)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	restored, err := app.Users.Restore(ctx)
	if err != nil {
		zap.Warn("failed to restore session", zapLog.Error(err))
	}

	if !restored && koanf.String("CLIENT_EMAIL") != "" {
		_, err = app.Users.Login(ctx, koanf.String("CLIENT_EMAIL"), koanf.String("CLIENT_PASSWORD"))
		if err != nil {
			zap.Warn("failed to sign in", zapLog.String("message", model.UserMessage(err)), zapLog.Error(err))
		}
	}

	feed := app.NewFeedScreen()
	defer feed.Close()

	refresh := koanf.Duration("CLIENT_REFRESH_INTERVAL")
	if refresh <= 0 {
		refresh = time.Minute
	}

	load := func() {
		err := feed.Load(ctx)
		if err != nil {
			zap.Warn("failed to load feed", zapLog.String("message", model.UserMessage(err)), zapLog.Error(err))
			return
		}

		zap.Info("feed loaded",
			zapLog.Int("posts", len(feed.Feed())),
			zapLog.Bool("hasMore", feed.Paginator().HasMore()),
			zapLog.Int("categories", len(feed.Categories())),
			zapLog.Int("slider", len(feed.Slider())),
			zapLog.Int("unread", feed.UnreadCount()),
		)
	}

	load()

	ticker := time.NewTicker(refresh)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.Info("got one of stop signals")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			err = shutdownTracer(shutdownCtx)
			cancel()
			if err != nil {
				zap.Warn("failed to flush traces", zapLog.Error(err))
			}

			_ = rds.Close()
			zap.Info("client has shut down gracefully")
			_ = zap.Sync()
			return
		case <-ticker.C:
			load()
		}
	}
}
