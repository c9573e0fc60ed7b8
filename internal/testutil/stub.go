// Package testutil starts an in-process stub of the community API for
// tests that exercise the client against a real HTTP round trip.
package testutil

import (
	"fmt"
	"net"
	"testing"

	"github.com/ferdian3456/communityclient/internal/delivery/http"
	"github.com/ferdian3456/communityclient/internal/delivery/http/route"
	"github.com/ferdian3456/communityclient/internal/exception"

	"github.com/alicebob/miniredis/v2"
	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/knadh/koanf/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

const JWTSecret = "stub-secret-for-tests"

type Stub struct {
	// URL is the API base, ending in /api.
	URL   string
	Store *http.StubStore
	App   *fiber.App
	Log   *zap.Logger
}

// StartStub serves the stub API on a loopback port until the test ends.
func StartStub(t testing.TB) *Stub {
	t.Helper()

	log := zaptest.NewLogger(t, zaptest.Level(zap.WarnLevel))

	k := koanf.New(".")
	require.NoError(t, k.Set("JWT_SECRET_KEY", JWTSecret))

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
	})
	app.Use(exception.Recovery(log))

	store := http.NewStubStore(log)
	route.NewRouteConfig(app, store, log, k).SetupRoute()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	go func() {
		_ = app.Listener(ln)
	}()

	t.Cleanup(func() {
		_ = app.Shutdown()
	})

	return &Stub{
		URL:   fmt.Sprintf("http://%s/api", ln.Addr().String()),
		Store: store,
		App:   app,
		Log:   log,
	}
}

// Path turns a route like "/Post/AddLike" into the path the stub's fault
// injection keys on.
func Path(route string) string {
	return "/api" + route
}

// StartRedis returns a client for a fresh in-memory redis.
func StartRedis(t testing.TB) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})

	t.Cleanup(func() {
		_ = client.Close()
	})

	return client, server
}
