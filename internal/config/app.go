package config

import (
	http "github.com/ferdian3456/communityclient/internal/delivery/http"
	"github.com/ferdian3456/communityclient/internal/delivery/http/route"

	"github.com/gofiber/fiber/v2"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

type StubConfig struct {
	Router *fiber.App
	Store  *http.StubStore
	Log    *zap.Logger
	Config *koanf.Koanf
}

// Stub mounts the stub API on config.Router and returns its store.
func Stub(config *StubConfig) *http.StubStore {
	store := config.Store
	if store == nil {
		store = http.NewStubStore(config.Log)
	}

	routeConfig := route.NewRouteConfig(config.Router, store, config.Log, config.Config)
	routeConfig.SetupRoute()

	return store
}
