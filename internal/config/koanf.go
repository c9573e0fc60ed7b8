package config

import (
	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

// NewKoanf loads envPath, then the process environment on top of it.
func NewKoanf(envPath string, log *zap.Logger) *koanf.Koanf {
	k := koanf.New(".")

	err := k.Load(file.Provider(envPath), dotenv.Parser())
	if err != nil {
		// a missing .env is normal outside local development
		log.Debug(".env file not found, using environment variables", zap.String("path", envPath), zap.Error(err))
	}

	err = k.Load(env.Provider("", ".", nil), nil)
	if err != nil {
		log.Fatal("failed to load environment variables", zap.Error(err))
	}

	return k
}
