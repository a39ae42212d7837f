package app

import (
	"github.com/openvp/showcase-backend/internal/clients/rabbit"
	"github.com/openvp/showcase-backend/internal/clients/rediscache"
	"github.com/openvp/showcase-backend/internal/platform/logger"
	"github.com/openvp/showcase-backend/internal/services"
)

type Clients struct {
	Publisher *rabbit.Publisher
	SlugCache *rediscache.SlugCache
}

// wireClients connects the optional side-channels. Both are best-effort:
// a missing or unreachable broker/cache downgrades to a nil client and the
// services run without it.
func wireClients(log *logger.Logger, cfg Config) Clients {
	var clients Clients
	if cfg.AMQPURL != "" {
		publisher, err := rabbit.NewPublisher(log)
		if err != nil {
			log.Warn("Rabbit publisher init failed, change events disabled", "error", err)
		} else {
			clients.Publisher = publisher
		}
	}
	if cfg.RedisAddr != "" {
		cache, err := rediscache.NewSlugCache(log)
		if err != nil {
			log.Warn("Redis slug cache init failed, slug lookups go to the table", "error", err)
		} else {
			clients.SlugCache = cache
		}
	}
	return clients
}

// publisher converts the concrete client to the service interface without
// smuggling a typed nil through.
func (c Clients) publisher() services.ChangePublisher {
	if c.Publisher == nil {
		return nil
	}
	return c.Publisher
}

func (c Clients) slugCache() services.SlugCache {
	if c.SlugCache == nil {
		return nil
	}
	return c.SlugCache
}

func (c Clients) Close() {
	if c.Publisher != nil {
		_ = c.Publisher.Close()
	}
	if c.SlugCache != nil {
		_ = c.SlugCache.Close()
	}
}
