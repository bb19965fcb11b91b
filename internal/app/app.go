package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/benbjohnson/clock"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/contactform/internal/live"
	"github.com/dmitrymomot/contactform/internal/web"
	"github.com/dmitrymomot/contactform/pkg/clientip"
	"github.com/dmitrymomot/contactform/pkg/email"
	"github.com/dmitrymomot/contactform/pkg/form"
	"github.com/dmitrymomot/contactform/pkg/formpost"
	"github.com/dmitrymomot/contactform/pkg/httpserver"
	"github.com/dmitrymomot/contactform/pkg/logger"
	"github.com/dmitrymomot/contactform/pkg/ratelimiter"
	"github.com/dmitrymomot/contactform/pkg/redis"
	"github.com/dmitrymomot/contactform/pkg/requestid"
	"github.com/dmitrymomot/contactform/pkg/submission"
	"github.com/dmitrymomot/contactform/pkg/validator"
)

// NewLogger builds the process logger from cfg. Request and session ids are
// pulled from the context of every record.
func NewLogger(cfg Config) (*slog.Logger, error) {
	opts := []logger.Option{
		logger.WithEnvironment(cfg.Env, cfg.Service),
		logger.WithContextExtractors(requestid.Extractor(), clientip.Extractor(), live.SessionExtractor()),
	}
	if cfg.LogLevel != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
			return nil, errors.Join(ErrInvalidConfig, err)
		}
		opts = append(opts, logger.WithLevel(lvl))
	}
	return logger.New(opts...), nil
}

// App is the assembled service.
type App struct {
	cfg     Config
	log     *slog.Logger
	manager *live.Manager
	server  *web.Server
	redis   *goredis.Client
	limits  *ratelimiter.MemoryStore
}

// New wires the service. The redis connection is only made for the queue
// transport.
func New(ctx context.Context, cfg Config, log *slog.Logger) (*App, error) {
	schema, err := form.LoadSchemaFile(cfg.SchemaPath)
	if err != nil {
		return nil, err
	}
	vcfg := validator.DefaultConfig().
		WithDebounceDelay(cfg.DebounceDelay).
		WithNameLength(cfg.MinNameLength).
		WithSubjectLength(cfg.MinSubjectLength).
		WithMessageLength(cfg.MinMessageLength, cfg.MaxMessageLength)
	if err := vcfg.Check(); err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	a := &App{cfg: cfg, log: log}

	var (
		checks []httpserver.Check
		pusher submission.Pusher
	)
	if cfg.Transport == TransportQueue {
		a.redis, err = redis.Connect(ctx, cfg.Redis, log)
		if err != nil {
			return nil, err
		}
		pusher = a.redis
		checks = append(checks, redis.Healthcheck(a.redis))
	}

	transport, err := NewTransport(cfg, pusher, log)
	if err != nil {
		a.release()
		return nil, err
	}
	log.Info("submission transport selected", logger.Transport(cfg.Transport))

	a.manager = live.NewManager(schema, transport,
		live.WithLogger(log),
		live.WithValidator(vcfg),
		live.WithCapacity(cfg.SessionCapacity),
		live.WithIdleTTL(cfg.SessionIdleTTL),
		live.WithPipelineOptions(submission.WithDismiss(cfg.DismissAfter, cfg.FadeDuration)),
	)
	webOpts := []web.Option{
		web.WithLogger(log),
		web.WithTitle(cfg.Title),
		web.WithReadinessChecks(checks...),
		web.WithClientIP(clientip.New(cfg.ProxyHeaders...)),
	}
	if !cfg.SubmitLimit.Disabled() {
		a.limits = ratelimiter.NewMemoryStore()
		limiter, err := ratelimiter.NewBucket(a.limits, cfg.SubmitLimit, nil)
		if err != nil {
			a.release()
			return nil, errors.Join(ErrInvalidConfig, err)
		}
		webOpts = append(webOpts, web.WithSubmitLimiter(limiter))
	}
	a.server = web.New(a.manager, webOpts...)
	return a, nil
}

// NewTransport builds the transport named in cfg.Transport. rdb is only
// used by the queue transport.
func NewTransport(cfg Config, rdb submission.Pusher, log *slog.Logger) (submission.Transport, error) {
	switch cfg.Transport {
	case TransportStub, "":
		stub := submission.NewStubTransport()
		stub.Delay = cfg.StubDelay
		stub.Clock = clock.New()
		return stub, nil

	case TransportEmail:
		sender, err := email.New(cfg.Email)
		if err != nil {
			return nil, err
		}
		return submission.NewEmailTransport(sender, cfg.Email.NotifyEmail), nil

	case TransportHTTP:
		opts := append(formpost.FromConfig(cfg.FormPost), formpost.WithAttemptHook(logAttempt(log)))
		client, err := formpost.New(cfg.FormPost.URL, opts...)
		if err != nil {
			return nil, err
		}
		return submission.NewHTTPTransport(client), nil

	case TransportQueue:
		if rdb == nil {
			return nil, fmt.Errorf("%w: queue transport needs redis", ErrInvalidConfig)
		}
		return submission.NewQueueTransport(rdb, cfg.QueueKey), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransport, cfg.Transport)
	}
}

func logAttempt(log *slog.Logger) formpost.AttemptHook {
	return func(at formpost.Attempt) {
		if at.Err == nil {
			return
		}
		log.Warn("form backend attempt failed",
			slog.Int("attempt", at.Number),
			slog.Int("status", at.StatusCode),
			logger.Duration(at.Duration),
			logger.Error(at.Err),
		)
	}
}

// Run serves until ctx is done or a signal arrives, then closes every live
// session.
func (a *App) Run(ctx context.Context) error {
	defer a.release()

	srv := httpserver.NewFromConfig(a.cfg.HTTP,
		httpserver.WithLogger(a.log),
		httpserver.WithShutdownHook(a.manager.Close),
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.manager.Run(ctx)
		return nil
	})
	g.Go(func() error {
		defer cancel()
		return srv.Run(ctx, a.server.Routes())
	})
	return g.Wait()
}

func (a *App) release() {
	if a.manager != nil {
		a.manager.Close()
	}
	if a.limits != nil {
		a.limits.Close()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
}
