package sheetsapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/sheets-api/internal/cache"
	"github.com/magabrotheeeer/sheets-api/internal/config"
	"github.com/magabrotheeeer/sheets-api/internal/events"
	"github.com/magabrotheeeer/sheets-api/internal/lib/jwt"
	"github.com/magabrotheeeer/sheets-api/internal/lib/password"
	"github.com/magabrotheeeer/sheets-api/internal/lib/sl"
	"github.com/magabrotheeeer/sheets-api/internal/metrics"
	"github.com/magabrotheeeer/sheets-api/internal/migrations"
	"github.com/magabrotheeeer/sheets-api/internal/models"
	"github.com/magabrotheeeer/sheets-api/internal/rabbitmq"
	authservice "github.com/magabrotheeeer/sheets-api/internal/services/auth"
	documentservice "github.com/magabrotheeeer/sheets-api/internal/services/document"
	userservice "github.com/magabrotheeeer/sheets-api/internal/services/user"
	storage "github.com/magabrotheeeer/sheets-api/internal/storage/repository"
)

const shutdownTimeout = 15 * time.Second

// App: HTTP-сервер со всеми внешними подключениями.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	cache  *cache.Cache
	amqp   *amqp.Connection
}

// New подключается к базе, применяет миграции, открывает необязательные
// подключения к redis и RabbitMQ и собирает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.New"

	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = storage.CheckDatabaseReady(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	app := &App{logger: logger, db: db}

	var docCache documentservice.Cache = cache.Nop{}
	if cfg.AddressRedis != "" {
		redisCache, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		app.cache = redisCache
		docCache = redisCache
	} else {
		logger.Info("redis address is empty, document cache disabled")
	}

	var publisher authservice.EventPublisher = events.Nop{}
	if cfg.RabbitMQ.URL != "" {
		conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL, cfg.ConnectRetries, cfg.RetryDelay)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		app.amqp = conn
		ch, err := rabbitmq.SetupChannel(conn, cfg.Exchange)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		publisher = events.NewPublisher(ch, cfg.Exchange)
	} else {
		logger.Info("rabbitmq url is empty, events disabled")
	}

	jwtMaker, err := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	docOpts := documentservice.Options{
		ListAll:  cfg.ListScope == config.ListScopeAll,
		CacheTTL: cfg.CacheTTL,
	}
	services := Services{
		Auth:    authservice.NewAuthService(db, password.NewHasher(cfg.BcryptCost), jwtMaker, publisher, logger),
		Users:   userservice.NewService(db, logger),
		Sheets:  documentservice.NewService(models.KindSheet, db, docCache, publisher, logger, docOpts),
		Reports: documentservice.NewService(models.KindReport, db, docCache, publisher, logger, docOpts),
		DB:      db,
		Metrics: metrics.New(),
	}

	router := NewRouter(logger, services, RouterOptions{
		TokenHeader:    cfg.TokenHeader,
		RequestTimeout: cfg.RequestTimeout,
	})

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

// Run запускает HTTP-сервер и блокируется до ошибки сервера или отмены ctx.
// После отмены сервер завершает текущие запросы не дольше shutdownTimeout.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	if a.amqp != nil {
		if err := a.amqp.Close(); err != nil {
			a.logger.Warn("failed to close rabbitmq connection", sl.Err(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("failed to close redis client", sl.Err(err))
		}
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn("failed to close database", sl.Err(err))
	}
}
