package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"turnos/backend/internal/config"
	"turnos/backend/internal/service/appointments"
	"turnos/backend/internal/store"
	"turnos/backend/internal/store/memory"
	"turnos/backend/internal/store/sqlstore"
	"turnos/backend/internal/transport/httpapi"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})).With(
		slog.String("service", "turnos-server"),
	)
	slog.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		log.Error("config load failed", slog.Any("err", err))
		os.Exit(1)
	}

	log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)})).With(
		slog.String("service", "turnos-server"),
	)
	slog.SetDefault(log)

	log.Info("starting",
		slog.String("http_addr", cfg.HTTPAddr),
		slog.String("storage_driver", cfg.StorageDriver),
		slog.String("log_level", cfg.LogLevel),
	)

	repo, cleanup, err := openStore(log, cfg)
	if err != nil {
		log.Error("storage init failed", slog.Any("err", err), slog.String("storage_driver", cfg.StorageDriver))
		os.Exit(1)
	}
	defer cleanup()

	svc := appointments.NewService(repo)

	mux := http.NewServeMux()
	httpapi.NewAppointmentsHandler(svc, log).Register(mux)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.RequestLogger(log, mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.Info("http server started", slog.String("http_addr", cfg.HTTPAddr))

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
		shutdown(log, srv, cfg.ShutdownTimeout)
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server stopped with error", slog.Any("err", err))
			os.Exit(1)
		}
	}
}

func openStore(log *slog.Logger, cfg config.Config) (store.AppointmentStore, func(), error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		log.Info("connecting to database", databaseLogArgs(cfg.DatabaseURL)...)
		db, err := sqlstore.Open(cfg.DatabaseURL, sqlstore.PoolConfig{
			MaxOpenConns:    cfg.DBMaxOpenConns,
			MaxIdleConns:    cfg.DBMaxIdleConns,
			ConnMaxLifetime: cfg.DBConnMaxLifetime,
			ConnMaxIdleTime: cfg.DBConnMaxIdleTime,
		})
		if err != nil {
			return nil, nil, err
		}
		if err := sqlstore.InitSchema(context.Background(), db, sqlstore.DriverPostgres); err != nil {
			_ = sqlstore.Close(db)
			return nil, nil, err
		}
		cleanup := func() {
			if err := sqlstore.Close(db); err != nil {
				log.Warn("database close failed", slog.Any("err", err))
			}
		}
		return sqlstore.NewAppointmentRepo(db), cleanup, nil

	case config.StorageSQLite:
		log.Info("opening sqlite database", slog.String("path", cfg.SQLitePath))
		db, err := sqlstore.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		if err := sqlstore.InitSchema(context.Background(), db, sqlstore.DriverSQLite); err != nil {
			_ = sqlstore.Close(db)
			return nil, nil, err
		}
		cleanup := func() {
			if err := sqlstore.Close(db); err != nil {
				log.Warn("database close failed", slog.Any("err", err))
			}
		}
		return sqlstore.NewAppointmentRepo(db), cleanup, nil

	default:
		log.Info("using in-memory storage; records will not survive a restart")
		return memory.NewAppointmentRepo(), func() {}, nil
	}
}

func shutdown(log *slog.Logger, srv *http.Server, timeout time.Duration) {
	log.Info("shutting down http server", slog.Duration("timeout", timeout))

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Warn("http graceful shutdown timed out; forcing close", slog.Any("err", err))
		_ = srv.Close()
		return
	}
	log.Info("http server stopped")
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func databaseLogArgs(databaseURL string) []any {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return []any{slog.String("db_url", "invalid")}
	}
	name := strings.TrimPrefix(u.Path, "/")
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "default"
	}
	if host == "" {
		host = "unknown"
	}
	if name == "" {
		name = "unknown"
	}
	return []any{
		slog.String("db_host", host),
		slog.String("db_port", port),
		slog.String("db_name", name),
	}
}
