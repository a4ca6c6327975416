package session

import (
	"log"

	"parkportal/internal/config"
)

// NewStore picks the transcript backend: Redis when configured and reachable,
// in-memory otherwise.
func NewStore(cfg *config.Config) StoreInterface {
	if cfg.RedisHost != "" {
		store, err := NewRedisStore(cfg.RedisHost, cfg.RedisPort, cfg.RedisUser, cfg.RedisPassword)
		if err != nil {
			log.Printf("Redis connection failed: %v", err)
			log.Println("Falling back to in-memory transcript store")
			return NewMemoryStore()
		}
		log.Printf("Using Redis transcript store: %s:%s", cfg.RedisHost, cfg.RedisPort)
		return store
	}

	log.Println("Using in-memory transcript store")
	return NewMemoryStore()
}
