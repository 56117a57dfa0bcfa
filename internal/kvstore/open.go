package kvstore

import (
	"context"
	"fmt"

	"glassstore/internal/db"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Options selects and configures a backend.
type Options struct {
	Backend   string
	Path      string
	RedisAddr string
	DSN       string
}

// Open builds the configured backend. The returned close func releases any
// connection the backend holds and is never nil.
func Open(ctx context.Context, opts Options, logger *logrus.Entry) (Store, func(), error) {
	noop := func() {}
	switch opts.Backend {
	case "", BackendFile:
		logger.WithField("path", opts.Path).Debug("using file storage")
		return NewFile(opts.Path), noop, nil
	case BackendMemory:
		return NewMemory(), noop, nil
	case BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: opts.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, noop, fmt.Errorf("ping redis %s: %w", opts.RedisAddr, err)
		}
		logger.WithField("addr", opts.RedisAddr).Debug("using redis storage")
		return NewRedis(client), func() { client.Close() }, nil
	case BackendPostgres:
		pool, err := db.Connect(ctx, opts.DSN)
		if err != nil {
			return nil, noop, fmt.Errorf("connect db: %w", err)
		}
		logger.Debug("using postgres storage")
		return NewPostgres(pool), pool.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}
