// Package auth собирает сервис аутентификации: хранилище, кеш, брокер
// аудита, бизнес-сервисы, HTTP-маршруты и внутренний gRPC-сервер.
package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/streadway/amqp"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/magabrotheeeer/auth-service/internal/cache"
	"github.com/magabrotheeeer/auth-service/internal/config"
	"github.com/magabrotheeeer/auth-service/internal/grpc/server"
	"github.com/magabrotheeeer/auth-service/internal/lib/jwt"
	"github.com/magabrotheeeer/auth-service/internal/lib/password"
	"github.com/magabrotheeeer/auth-service/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/auth-service/internal/lib/sl"
	"github.com/magabrotheeeer/auth-service/internal/metrics"
	"github.com/magabrotheeeer/auth-service/internal/migrations"
	"github.com/magabrotheeeer/auth-service/internal/services/admin"
	"github.com/magabrotheeeer/auth-service/internal/services/audit"
	trialservice "github.com/magabrotheeeer/auth-service/internal/services/trial"
	"github.com/magabrotheeeer/auth-service/internal/storage"
	"github.com/magabrotheeeer/auth-service/internal/storage/repository"
)

const shutdownTimeout = 15 * time.Second

// App процесс сервиса: HTTP API и, если задан адрес, gRPC-сервер.
type App struct {
	server     *http.Server
	grpcServer *grpc.Server
	grpcAddr   string
	logger     *slog.Logger
	db         *sql.DB
	cache      *cache.Cache
	publisher  *rabbitmq.Publisher
	auditSink  *audit.BrokerSink
	amqpConn   *amqp.Connection
}

// New подключает инфраструктуру и собирает приложение. Redis и RabbitMQ
// необязательны: пустой адрес отключает компонент.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.auth.New"

	db, err := storage.New(ctx, storage.Options{
		DSN:             cfg.StorageConnectionString,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	a := &App{logger: logger, db: db, grpcAddr: cfg.GRPCServer.Address}

	if err = migrations.Run(db, cfg.Database.MigrationsPath); err != nil {
		a.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	repo := repository.New(db)
	if err = repo.CheckDatabaseReady(ctx); err != nil {
		a.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var trialCache trialservice.Cache
	if cfg.RedisConnection.AddressRedis != "" {
		a.cache, err = cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		trialCache = cache.NewTrials(a.cache, cfg.RedisConnection.TrialCacheTTL)
	} else {
		logger.Info("redis address is empty, trial cache disabled")
	}

	sinks := []audit.Sink{audit.NewLogSink(logger)}
	if cfg.RabbitMQ.URL != "" {
		a.amqpConn, err = rabbitmq.Connect(cfg.RabbitMQ.URL, cfg.RabbitMQ.Retries, cfg.RabbitMQ.RetryDelay)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		ch, err := rabbitmq.SetupExchange(a.amqpConn, cfg.RabbitMQ.Exchange)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		a.publisher = rabbitmq.NewPublisher(ch, cfg.RabbitMQ.Exchange)
		a.auditSink = audit.NewBrokerSink(a.publisher, logger, cfg.RabbitMQ.QueueSize)
		sinks = append(sinks, a.auditSink)
	} else {
		logger.Info("rabbitmq url is empty, audit goes to log only")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	services := NewServices(logger, Deps{
		Store:      repo,
		TrialCache: trialCache,
		Tokens:     jwt.NewJWTMaker(cfg.JWTToken.JWTSecretKey, cfg.AdminSigningKey(), cfg.AccessTokenTTL(), cfg.RefreshTokenTTL()),
		Hasher:     password.NewHasher(bcrypt.DefaultCost),
		Admin:      admin.Credentials{Username: cfg.Admin.Username, Password: cfg.Admin.Password},
		Metrics:    metrics.New(reg),
		Sinks:      sinks,
	})

	router := chi.NewRouter()
	RegisterRoutes(router, logger, services, RouteOptions{
		CORSOrigins: cfg.CORSOriginList(),
		Gatherer:    reg,
	})

	a.server = &http.Server{
		Addr:         cfg.HTTPServer.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.TimeoutHTTP,
		WriteTimeout: cfg.HTTPServer.TimeoutHTTP,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	if a.grpcAddr != "" {
		a.grpcServer = grpc.NewServer()
		server.Register(a.grpcServer, server.NewTokenServer(services.Auth, logger))
		hs := grpchealth.NewServer()
		hs.SetServingStatus(server.ServiceName, healthpb.HealthCheckResponse_SERVING)
		healthpb.RegisterHealthServer(a.grpcServer, hs)
	}

	return a, nil
}

// Run обслуживает запросы до отмены ctx, затем корректно
// останавливает серверы и закрывает соединения.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	if a.grpcServer != nil {
		lis, err := net.Listen("tcp", a.grpcAddr)
		if err != nil {
			_ = a.server.Close()
			a.close()
			return fmt.Errorf("app.auth.Run: %w", err)
		}
		go func() {
			a.logger.Info("token gRPC service listening on", slog.String("address", lis.Addr().String()))
			errCh <- a.grpcServer.Serve(lis)
		}()
	}

	var runErr error
	select {
	case runErr = <-errCh:
	case <-ctx.Done():
	}

	a.logger.Info("shutting down gracefully")
	timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(timeoutCtx); err != nil {
		a.logger.Error("http shutdown failed", sl.Err(err))
	}
	if a.grpcServer != nil {
		a.grpcServer.GracefulStop()
	}
	a.close()
	return runErr
}

func (a *App) close() {
	if a.auditSink != nil {
		a.auditSink.Close()
	}
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Error("failed to close amqp channel", sl.Err(err))
		}
	}
	if a.amqpConn != nil {
		if err := a.amqpConn.Close(); err != nil {
			a.logger.Error("failed to close amqp connection", sl.Err(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Error("failed to close redis", sl.Err(err))
		}
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close database", sl.Err(err))
	}
}
