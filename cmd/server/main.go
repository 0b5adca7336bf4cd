package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"pinboard/internal/application"
	"pinboard/internal/broadcast"
	"pinboard/internal/config"
	"pinboard/internal/event"
	"pinboard/internal/handler"
	"pinboard/internal/observability"
	"pinboard/internal/relay"
	mongorepo "pinboard/internal/repository/mongo"
	"pinboard/internal/server"
)

func main() {
	cfg := config.Load()

	// Observability
	observability.InitLogger(cfg.ServiceName)
	log := observability.Log

	if cfg.TracingEnabled {
		tp, err := observability.InitTracer(cfg.ServiceName, cfg.JaegerURL)
		if err != nil {
			log.Fatal("failed to initialize tracer", zap.Error(err))
		}
		defer tp.Shutdown(context.Background())
	}

	ctx, cancel := setupSignalHandler(log)
	defer cancel()

	// The process serves only after the store connection succeeds.
	store := initStore(ctx, cfg, log)
	defer store.Close(context.Background())

	hub := broadcast.NewHub(cfg.ServiceName)

	events := event.Multi{hub}
	if cfg.RedisAddr != "" {
		events = append(events, initRelay(ctx, cfg, hub, log))
	}

	svc := application.New(store, events,
		application.WithMissingIDAsSuccess(cfg.TreatMissingIDAsSuccess))

	wsHandler := broadcast.NewHandler(hub)

	// Servers
	mainSrv := server.New(cfg.HTTPAddr, handler.NewRouter(svc, wsHandler, cfg.ServiceName))
	obsSrv := initObservabilityServer(cfg, store)

	startServers(mainSrv, obsSrv, log)

	<-ctx.Done()
	performGracefulShutdown(mainSrv, obsSrv, hub, log)
}

func setupSignalHandler(log *zap.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Info("received signal, initiating shutdown", zap.String("signal", sig.String()))
		cancel()
	}()
	return ctx, cancel
}

func initStore(ctx context.Context, cfg *config.Config, log *zap.Logger) *mongorepo.Repository {
	store, err := mongorepo.Connect(ctx, cfg.MongoURL, cfg.MongoDatabase, cfg.MongoCollection)
	if err != nil {
		log.Fatal("failed to connect to store", zap.Error(err))
	}
	log.Info("connected to store", zap.String("database", cfg.MongoDatabase))
	return store
}

func initRelay(ctx context.Context, cfg *config.Config, hub *broadcast.Hub, log *zap.Logger) *relay.Relay {
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}

	rel := relay.New(client, getOrGenerateInstanceID(cfg.InstanceID))
	rel.Subscribe(ctx, hub.BroadcastRaw)
	return rel
}

func getOrGenerateInstanceID(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}

func initObservabilityServer(cfg *config.Config, store *mongorepo.Repository) *http.Server {
	mux := chi.NewRouter()
	if cfg.MetricsEnabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Get("/health/live", observability.HealthLiveHandler)
	mux.Get("/health/ready", observability.HealthReadyHandler(store.Ping))
	return &http.Server{Addr: cfg.ObsHTTPAddr, Handler: mux}
}

func startServers(mainSrv *server.Server, obsSrv *http.Server, log *zap.Logger) {
	go func() {
		log.Info("starting observability server", zap.String("addr", obsSrv.Addr))
		if err := obsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("observability server error", zap.Error(err))
		}
	}()
	go func() {
		if err := mainSrv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()
}

func performGracefulShutdown(mainSrv *server.Server, obsSrv *http.Server, hub *broadcast.Hub, log *zap.Logger) {
	log.Info("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := mainSrv.Shutdown(ctx); err != nil {
		log.Error("error during main server shutdown", zap.Error(err))
	}
	if err := obsSrv.Shutdown(ctx); err != nil {
		log.Error("error during observability server shutdown", zap.Error(err))
	}
	hub.CloseAll()
	log.Info("shutdown complete, exiting")
}
