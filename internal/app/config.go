package app

import (
	"github.com/openvp/showcase-backend/internal/platform/envutil"
	"github.com/openvp/showcase-backend/internal/platform/logger"
)

type Config struct {
	LogMode          string
	SeedFile         string
	SessionUserEmail string
	AMQPURL          string
	RedisAddr        string
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		LogMode:          envutil.String("LOG_MODE", "development"),
		SeedFile:         envutil.String("SEED_FILE", ""),
		SessionUserEmail: envutil.String("SESSION_USER_EMAIL", ""),
		AMQPURL:          envutil.String("AMQP_URL", ""),
		RedisAddr:        envutil.String("REDIS_ADDR", ""),
	}
	if cfg.SessionUserEmail == "" {
		log.Warn("SESSION_USER_EMAIL not set, duplication will fail until configured")
	}
	return cfg
}
