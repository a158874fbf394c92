// Package server initializes and runs the tracker server. It wires the
// durable key-value store, the in-memory tracker, the blob presigner and the
// HTTP API together and handles graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/lmarchuk/translix/internal/blob"
	"github.com/lmarchuk/translix/internal/logging"
	"github.com/lmarchuk/translix/internal/server/api"
	"github.com/lmarchuk/translix/internal/server/config"
	"github.com/lmarchuk/translix/internal/storage/kv"
	"github.com/lmarchuk/translix/internal/tracker"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	store   kv.Store
	tracker *tracker.Tracker
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	slog := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slog)

	store, err := kv.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	t, err := tracker.New(ctx, store, logger)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("tracker init error: %w", err)
	}

	return &App{config: c, logger: logger, store: store, tracker: t}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	presigner := blob.NewPresigner(blob.Config{
		RootUser:     app.config.S3RootUser,
		RootPassword: app.config.S3RootPassword,
		Bucket:       app.config.S3Bucket,
		Region:       app.config.S3Region,
		BaseEndpoint: app.config.S3BaseEndpoint,
	})

	h := api.NewHandler(app.tracker, presigner, app.logger,
		[]byte(app.config.SecretKey), app.config.TokenValidityDuration)

	srv := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: api.NewRouter(h),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(shutdownCtx, "shutdown error", "error", err)
		}
	}()

	app.logger.Info(ctx, "http server listening", "addr", app.config.EndpointAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.store.Close(); err != nil {
		app.logger.Error(ctx, "store close error", "error", err)
	}
}
