package notifykit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/propstack/notifykit/pkg/config"
	"github.com/propstack/notifykit/pkg/email"
	"github.com/propstack/notifykit/pkg/logger"
	"github.com/propstack/notifykit/pkg/notify"
	"github.com/propstack/notifykit/pkg/pg"
	"github.com/propstack/notifykit/pkg/presence"
	"github.com/propstack/notifykit/pkg/redis"
	"github.com/propstack/notifykit/pkg/webhook"
)

// Config gates which infrastructure the engine wires in. Empty gate values
// leave the corresponding backend out: storage falls back to memory, the
// email and socket channels stay inert.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"notifykit"`

	// PostgresURL enables durable storage; without it notifications live
	// in process memory.
	PostgresURL string `env:"PG_CONN_URL"`

	// RedisURL enables cross-instance presence tracking for the socket
	// channel; without it presence is tracked per process.
	RedisURL string `env:"REDIS_URL"`

	// PostmarkToken enables the email channel.
	PostmarkToken string `env:"POSTMARK_SERVER_TOKEN"`

	SocketBufferSize int `env:"SOCKET_BUFFER_SIZE" envDefault:"16"`
}

// Engine is a fully wired notification stack: storage, channels,
// dispatcher, and trigger, plus the backing connections it owns.
type Engine struct {
	Trigger    *notify.Trigger
	Dispatcher *notify.Dispatcher
	Storage    notify.Storage
	Socket     *notify.SocketChannel
	Log        *slog.Logger

	pool *pgxpool.Pool
	rdb  *goredis.Client
}

// New assembles an Engine from environment configuration. The identity
// collaborator is the only dependency the caller must bring; everything
// else is derived from env vars, with in-memory fallbacks for local use.
func New(ctx context.Context, identity notify.Identity) (*Engine, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load engine config: %w", err)
	}

	log := logger.New(logger.WithEnvironment(cfg.Environment, cfg.ServiceName))

	e := &Engine{Log: log}

	if err := e.setupStorage(ctx, cfg, log); err != nil {
		return nil, err
	}

	deps := notify.ChannelDeps{
		SocketBufferSize: cfg.SocketBufferSize,
		Logger:           log,
	}

	if cfg.PostmarkToken != "" {
		var emailCfg email.Config
		if err := config.Load(&emailCfg); err != nil {
			e.Close()
			return nil, fmt.Errorf("failed to load email config: %w", err)
		}
		sender, err := email.NewPostmarkClient(emailCfg)
		if err != nil {
			e.Close()
			return nil, fmt.Errorf("failed to create email sender: %w", err)
		}
		deps.EmailSender = sender
	}

	deps.WebhookSender = webhook.NewSender()

	tracker, err := e.setupPresence(ctx, cfg, log)
	if err != nil {
		e.Close()
		return nil, err
	}
	deps.Presence = tracker

	var notifyCfg notify.Config
	if err := config.Load(&notifyCfg); err != nil {
		e.Close()
		return nil, fmt.Errorf("failed to load delivery config: %w", err)
	}
	deliveryCfg := notifyCfg.DeliveryConfig()

	channels := notify.DefaultChannels(deliveryCfg, deps)
	for _, ch := range channels {
		if socket, ok := ch.(*notify.SocketChannel); ok {
			e.Socket = socket
		}
	}

	e.Dispatcher = notify.NewDispatcher(deliveryCfg, channels, notify.WithDispatchLogger(log))
	e.Trigger = notify.NewTrigger(e.Storage, identity, e.Dispatcher,
		notify.WithBatchSize(notifyCfg.BatchSize),
		notify.WithTriggerLogger(log),
	)

	return e, nil
}

func (e *Engine) setupStorage(ctx context.Context, cfg Config, log *slog.Logger) error {
	if cfg.PostgresURL == "" {
		e.Storage = notify.NewMemoryStorage()
		return nil
	}

	var pgCfg pg.Config
	if err := config.Load(&pgCfg); err != nil {
		return fmt.Errorf("failed to load postgres config: %w", err)
	}
	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
		pool.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	e.pool = pool
	e.Storage = notify.NewPostgresStorage(pool)
	return nil
}

func (e *Engine) setupPresence(ctx context.Context, cfg Config, log *slog.Logger) (presence.Tracker, error) {
	var presenceCfg presence.Config
	if err := config.Load(&presenceCfg); err != nil {
		return nil, fmt.Errorf("failed to load presence config: %w", err)
	}

	if cfg.RedisURL == "" {
		return presence.NewMemoryTracker(presenceCfg.TTL), nil
	}

	var redisCfg redis.Config
	if err := config.Load(&redisCfg); err != nil {
		return nil, fmt.Errorf("failed to load redis config: %w", err)
	}
	client, err := redis.Connect(ctx, redisCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	e.rdb = client

	tracker, err := presence.NewRedisTracker(client, presenceCfg, presence.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("failed to create presence tracker: %w", err)
	}
	return tracker, nil
}

// Healthcheck reports the health of every backing connection the engine
// owns. Engines running fully in-memory always pass.
func (e *Engine) Healthcheck(ctx context.Context) error {
	if e.pool != nil {
		if err := pg.Healthcheck(e.pool)(ctx); err != nil {
			return fmt.Errorf("postgres unhealthy: %w", err)
		}
	}
	if e.rdb != nil {
		if err := redis.Healthcheck(e.rdb)(ctx); err != nil {
			return fmt.Errorf("redis unhealthy: %w", err)
		}
	}
	return nil
}

// Close releases the engine's connections and shuts down the socket
// channel. Safe to call on a partially constructed engine.
func (e *Engine) Close() {
	if e.Socket != nil {
		_ = e.Socket.Close()
	}
	if e.pool != nil {
		e.pool.Close()
	}
	if e.rdb != nil {
		_ = e.rdb.Close()
	}
}
