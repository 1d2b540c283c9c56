package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-redis/redis/v8"
	"github.com/golang-migrate/migrate/v4"
	migratep "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jessevdk/go-flags"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Decentr-net/logrus/sentry"

	"github.com/Decentr-net/timeline/internal/cache"
	"github.com/Decentr-net/timeline/internal/enricher"
	"github.com/Decentr-net/timeline/internal/feed"
	"github.com/Decentr-net/timeline/internal/health"
	"github.com/Decentr-net/timeline/internal/refresher"
	"github.com/Decentr-net/timeline/internal/resolver"
	"github.com/Decentr-net/timeline/internal/server"
	"github.com/Decentr-net/timeline/internal/storage/postgres"
)

// nolint:lll
type options struct {
	Host           string        `long:"http.host" env:"HTTP_HOST" default:"0.0.0.0" description:"IP to listen on"`
	Port           int           `long:"http.port" env:"HTTP_PORT" default:"8080" description:"port to listen on for insecure connections"`
	RequestTimeout time.Duration `long:"http.request-timeout" env:"HTTP_REQUEST_TIMEOUT" default:"45s" description:"request processing timeout"`

	Postgres                   string `long:"postgres" env:"POSTGRES" default:"host=localhost port=5432 user=postgres password=root sslmode=disable" description:"postgres dsn"`
	PostgresMaxOpenConnections int    `long:"postgres.max_open_connections" env:"POSTGRES_MAX_OPEN_CONNECTIONS" default:"0" description:"postgres maximal open connections count, 0 means unlimited"`
	PostgresMaxIdleConnections int    `long:"postgres.max_idle_connections" env:"POSTGRES_MAX_IDLE_CONNECTIONS" default:"5" description:"postgres maximal idle connections count"`
	PostgresMigrations         string `long:"postgres.migrations" env:"POSTGRES_MIGRATIONS" default:"scripts/migrations/postgres" description:"postgres migrations directory"`

	RedisAddr     string        `long:"redis.addr" env:"REDIS_ADDR" description:"redis address, empty value disables cache"`
	RedisPassword string        `long:"redis.password" env:"REDIS_PASSWORD" description:"redis password"`
	RedisDB       int           `long:"redis.db" env:"REDIS_DB" default:"0" description:"redis database"`
	RedisPrefix   string        `long:"redis.prefix" env:"REDIS_PREFIX" default:"timeline:" description:"prefix of redis keys"`
	CacheTTL      time.Duration `long:"cache.ttl" env:"CACHE_TTL" default:"10m" description:"lifetime of cached feed pages"`
	SummaryTTL    time.Duration `long:"cache.summary_ttl" env:"CACHE_SUMMARY_TTL" default:"5m" description:"lifetime of cached actor/subject summaries"`

	FeedDemo                    bool          `long:"feed.demo" env:"FEED_DEMO" description:"serve demo fixtures when community feed is unavailable"`
	FeedCommunityRetryAttempts  int           `long:"feed.community_retry_attempts" env:"FEED_COMMUNITY_RETRY_ATTEMPTS" default:"2" description:"attempts of community view read"`
	FeedCommunityRetryBackoff   time.Duration `long:"feed.community_retry_backoff" env:"FEED_COMMUNITY_RETRY_BACKOFF" default:"100ms" description:"pause between attempts of community view read"`
	FeedCommunityAttemptTimeout time.Duration `long:"feed.community_attempt_timeout" env:"FEED_COMMUNITY_ATTEMPT_TIMEOUT" default:"3s" description:"timeout of community view read attempt"`

	ViewsRefreshInterval time.Duration `long:"views.refresh_interval" env:"VIEWS_REFRESH_INTERVAL" default:"1m" description:"interval of materialized views refresh"`

	LogLevel  string `long:"log.level" env:"LOG_LEVEL" default:"info" description:"Log level" choice:"debug" choice:"info" choice:"warning" choice:"error"`
	SentryDSN string `long:"sentry.dsn" env:"SENTRY_DSN" description:"sentry dsn"`
}

// nolint:gochecknoglobals
var opts options

var errTerminated = errors.New("terminated")

func main() {
	parser := flags.NewParser(&opts, flags.Default)
	parser.ShortDescription = "Timeline"
	parser.LongDescription = "Timeline feeds service"

	_, err := parser.Parse()

	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			parser.WriteHelp(os.Stdout)
			os.Exit(0)
		}
		logrus.WithError(err).Fatal("error occurred while parsing flags")
	}

	lvl, _ := logrus.ParseLevel(opts.LogLevel) // err will always be nil
	logrus.SetLevel(lvl)

	logrus.Infof("%+v", opts.masked())

	if opts.SentryDSN != "" {
		hook, err := sentry.NewHook(sentry.Options{
			Dsn:              opts.SentryDSN,
			AttachStacktrace: true,
			Release:          health.GetVersion(),
			ServerName:       "timeline",
		}, logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel)

		if err != nil {
			logrus.WithError(err).Fatal("failed to init sentry")
		}

		logrus.AddHook(hook)
	} else {
		logrus.Info("empty sentry dsn")
		logrus.Warn("skip sentry initialization")
	}

	db := mustGetDB()
	s := postgres.New(db)

	pingers := []health.Pinger{
		health.SubjectPinger("postgres", db.PingContext),
	}

	var c cache.Cache
	r := resolver.New(s)

	if opts.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
		})

		c = cache.NewRedis(client, opts.RedisPrefix)
		r = resolver.NewCached(r, c, opts.SummaryTTL)

		pingers = append(pingers, health.SubjectPinger("redis", func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}))
	} else {
		logrus.Warn("empty redis address, cache tier is disabled")
	}

	f := feed.New(s, enricher.New(r), c, feed.Config{
		CommunityRetryAttempts:  opts.FeedCommunityRetryAttempts,
		CommunityRetryBackoff:   opts.FeedCommunityRetryBackoff,
		CommunityAttemptTimeout: opts.FeedCommunityAttemptTimeout,
		CacheTTL:                opts.CacheTTL,
		Demo:                    opts.FeedDemo,
	})

	ref := refresher.New(s, opts.ViewsRefreshInterval)
	pingers = append(pingers, ref)

	router := chi.NewMux()
	router.Get("/health", health.Handler(5*time.Second, pingers...))
	server.SetupRouter(f, router, opts.RequestTimeout)

	srv := http.Server{
		Addr:    fmt.Sprintf("%s:%d", opts.Host, opts.Port),
		Handler: router,
	}

	ctx, cancel := context.WithCancel(context.Background())

	gr, _ := errgroup.WithContext(ctx)
	gr.Go(func() error {
		return ref.Run(ctx)
	})
	gr.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	gr.Go(func() error {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

		s := <-sigs

		logrus.Infof("terminating by %s signal", s)

		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logrus.WithError(err).Error("failed to shutdown http server")
		}

		return errTerminated
	})

	logrus.Info("service started")

	if err := gr.Wait(); err != nil && !errors.Is(err, errTerminated) {
		logrus.WithError(err).Fatal("service unexpectedly closed")
	}
}

func mustGetDB() *sql.DB {
	db, err := sql.Open("postgres", opts.Postgres)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create postgres connection")
	}
	db.SetMaxOpenConns(opts.PostgresMaxOpenConnections)
	db.SetMaxIdleConns(opts.PostgresMaxIdleConnections)

	if err := db.PingContext(context.Background()); err != nil {
		logrus.WithError(err).Fatal("failed to ping postgres")
	}

	driver, err := migratep.WithInstance(db, &migratep.Config{})
	if err != nil {
		logrus.WithError(err).Fatal("failed to create database migrate driver")
	}

	migrator, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", opts.PostgresMigrations), "postgres", driver)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create migrator")
	}

	switch v, d, err := migrator.Version(); err {
	case nil:
		logrus.Infof("database version %d with dirty state %t", v, d)
	case migrate.ErrNilVersion:
		logrus.Info("database version: nil")
	default:
		logrus.WithError(err).Fatal("failed to get version")
	}

	switch err := migrator.Up(); err {
	case nil:
		logrus.Info("database was migrated")
	case migrate.ErrNoChange:
		logrus.Info("database is up-to-date")
	default:
		logrus.WithError(err).Fatal("failed to migrate db")
	}

	return db
}
