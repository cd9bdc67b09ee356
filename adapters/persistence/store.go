package persistence

import (
	"context"
	"fmt"

	"github.com/khoahotran/video-hub/internal/config"
	"github.com/khoahotran/video-hub/internal/domain/user"
	"github.com/khoahotran/video-hub/internal/domain/video"
	"github.com/khoahotran/video-hub/pkg/logger"
	"go.uber.org/zap"
)

// Store bundles the repositories of the configured database driver.
type Store struct {
	Videos video.Repository
	Users  user.Repository
	close  func(ctx context.Context)
}

func (s *Store) Close(ctx context.Context) {
	if s.close != nil {
		s.close(ctx)
	}
}

func OpenStore(ctx context.Context, cfg config.Config, log logger.Logger) (*Store, error) {
	log.Info("Opening store", zap.String("driver", cfg.DB.Driver))

	switch cfg.DB.Driver {
	case config.DriverPostgres:
		pool, err := NewPostgresPool(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		return &Store{
			Videos: NewPostgresVideoRepo(pool),
			Users:  NewPostgresUserRepo(pool),
			close:  func(context.Context) { pool.Close() },
		}, nil

	case config.DriverMongo:
		client, db, err := NewMongoDatabase(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		return &Store{
			Videos: NewMongoVideoRepo(db),
			Users:  NewMongoUserRepo(db),
			close: func(ctx context.Context) {
				if err := client.Disconnect(ctx); err != nil {
					log.Error("Failed to disconnect MongoDB", err)
				}
			},
		}, nil

	case config.DriverMemory:
		log.Warn("Using in-memory store, data is lost on restart")
		return &Store{Videos: NewMemoryVideoRepo(), Users: NewMemoryUserRepo()}, nil
	}

	return nil, fmt.Errorf("unknown db driver %q", cfg.DB.Driver)
}
