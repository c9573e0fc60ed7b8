package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ferdian3456/communityclient/internal/config"
	http "github.com/ferdian3456/communityclient/internal/delivery/http"
	"github.com/ferdian3456/communityclient/internal/exception"
	"github.com/ferdian3456/communityclient/internal/observability"

	"github.com/gofiber/fiber/v2/middleware/compress"
	zapLog "go.uber.org/zap"
)

func main() {
	time.Local = time.UTC
	// Flush zap buffered log first then cancel the context for graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	fiber := config.NewFiber()
	zap := config.NewZap(os.Getenv("LOG_LEVEL"))
	koanf := config.NewKoanf(".env", zap)

	shutdownTracer, err := observability.Init(context.Background(), config.LoadObservabilityConfig(koanf, "community-stub", zap), zap)
	if err != nil {
		zap.Fatal("failed to init tracing", zapLog.Error(err))
	}

	if koanf.String("JWT_SECRET_KEY") == "" {
		zap.Fatal("JWT_SECRET_KEY is required")
	}

	fiber.Use(exception.Recovery(zap))

	fiber.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	store := config.Stub(&config.StubConfig{
		Router: fiber,
		Log:    zap,
		Config: koanf,
	})
	seedDemo(store)

	addr := koanf.String("STUB_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	zap.Info("Stub API is running on: " + addr)

	go func() {
		err := fiber.Listen(addr)
		if err != nil {
			zap.Fatal("error starting server", zapLog.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	zap.Info("got one of stop signals")

	err = fiber.ShutdownWithContext(ctx)
	if err != nil {
		zap.Warn("timeout, forced kill!", zapLog.Error(err))
		_ = zap.Sync()
		os.Exit(1)
	}

	err = shutdownTracer(ctx)
	if err != nil {
		zap.Warn("failed to flush traces", zapLog.Error(err))
	}

	zap.Info("server has shut down gracefully")
	_ = zap.Sync()
}

// seedDemo fills the store with enough data to click through every screen.
func seedDemo(store *http.StubStore) {
	admin := store.SeedUser("Admin", "admin@example.com", "admin123", true)
	member := store.SeedUser("Rina", "rina@example.com", "secret1", false)

	general := store.SeedCategory("General", true)
	events := store.SeedCategory("Events", true)
	store.SeedCategory("Archived", false)

	for i := 1; i <= 25; i++ {
		categoryId := general.Id
		if i%3 == 0 {
			categoryId = events.Id
		}

		authorId := member.Id
		if i%5 == 0 {
			authorId = admin.Id
		}

		post := store.SeedPost(authorId, fmt.Sprintf("Community post #%d", i), &categoryId)
		if i%4 == 0 {
			store.SeedComment(post.Id, member.Id, "Nice one")
		}
	}

	for i := 1; i <= 6; i++ {
		imageUrl := fmt.Sprintf("/uploads/ad-%d.jpg", i)
		if i == 2 {
			imageUrl = ""
		}
		store.SeedAd(fmt.Sprintf("Reward %d", i), imageUrl)
	}

	store.SeedFaq(1, "How do I reset my password?", "Use the profile screen to set a new one.", true)
	store.SeedFaq(1, "Can I delete my post?", "Ask an admin to remove it.", true)
	store.SeedFaq(2, "How do rewards work?", "Rewards are listed on the ads screen.", true)

	store.SeedNotification(member.Id, "Welcome to the community", false)
	store.SeedNotification(member.Id, "Your post got a comment", true)

	store.SeedSupportReply(member.Id, "Hi Rina, how can we help?")
	store.SeedChatLog("general",
		"[general] welcome everyone",
		"[general] meetup is on friday",
		"[general] bring snacks to the meetup",
	)
}
