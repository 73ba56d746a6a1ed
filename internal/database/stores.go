package database

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stemsi/academy-backoffice/internal/config"
	"github.com/stemsi/academy-backoffice/internal/repository"
	"github.com/stemsi/academy-backoffice/internal/repository/memory"
	"github.com/stemsi/academy-backoffice/internal/resource"
	"github.com/stemsi/academy-backoffice/internal/service"
)

// Stores is the pair of stores selected by STORE_DRIVER.
type Stores struct {
	Users service.UserStore
	Docs  service.DocumentStore
	close func()
}

// Close releases the underlying connections, if any.
func (s *Stores) Close() {
	if s.close != nil {
		s.close()
	}
}

// OpenStores builds the credential and document stores for cfg.StoreDriver.
func OpenStores(ctx context.Context, cfg *config.Config, registry *resource.Registry, log zerolog.Logger) (*Stores, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		log.Warn().Msg("Using in-memory store, data is lost on restart")
		return &Stores{
			Users: memory.NewUserStore(),
			Docs:  memory.NewDocumentStore(registry.UniqueFields()),
		}, nil

	case config.StoreDriverPostgres:
		pool, err := NewPostgresPool(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		return &Stores{
			Users: repository.NewUserRepository(pool),
			Docs:  repository.NewDocumentRepository(pool),
			close: pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}
