package config

import (
	"time"

	"github.com/ferdian3456/communityclient/internal/constant"
	"github.com/ferdian3456/communityclient/internal/util"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/v2"
)

type ClientConfig struct {
	APIBaseURL    string        `validate:"required,url"`
	APITimeout    time.Duration `validate:"gt=0"`
	PageSize      int           `validate:"gte=1,lte=100"`
	RedisURL      string        `validate:"required"`
	RedisPassword string
	DeviceId      string `validate:"required,max=64"`
}

// LoadClientConfig reads the client keys, fills defaults and validates the
// result.
func LoadClientConfig(config *koanf.Koanf, validate *validator.Validate) (ClientConfig, error) {
	clientConfig := ClientConfig{
		APIBaseURL:    config.String("API_BASE_URL"),
		APITimeout:    config.Duration("API_TIMEOUT"),
		PageSize:      config.Int("API_PAGE_SIZE"),
		RedisURL:      config.String("REDIS_URL"),
		RedisPassword: config.String("REDIS_PASSWORD"),
		DeviceId:      config.String("SESSION_DEVICE_ID"),
	}

	if clientConfig.APITimeout == 0 {
		clientConfig.APITimeout = constant.DEFAULT_API_TIMEOUT
	}

	if clientConfig.PageSize == 0 {
		clientConfig.PageSize = constant.DEFAULT_PAGE_SIZE
	}

	if clientConfig.RedisURL == "" {
		clientConfig.RedisURL = "localhost:6379"
	}

	if clientConfig.DeviceId == "" {
		clientConfig.DeviceId = "default"
	}

	err := util.ValidateStruct(validate, clientConfig)
	if err != nil {
		return ClientConfig{}, err
	}

	return clientConfig, nil
}
