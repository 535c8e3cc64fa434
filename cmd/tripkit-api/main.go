// README: Entry point; loads config, wires session storage, dialogue engine and agent clients, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"tripkit/internal/ai"
	"tripkit/internal/config"
	"tripkit/internal/events"
	httptransport "tripkit/internal/http"
	"tripkit/internal/infra"
	"tripkit/internal/maps"
	"tripkit/internal/modules/dialogue"
	"tripkit/internal/modules/download"
	"tripkit/internal/modules/imagegen"
	"tripkit/internal/modules/recommend"
	"tripkit/internal/modules/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := infra.NewLogger(cfg.Log.File, cfg.IsProduction())
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := newRepository(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("session store init failed", zap.String("store", cfg.Session.Store), zap.Error(err))
	}

	var provider *ai.GeminiProvider
	if cfg.AI.GeminiKey != "" {
		provider, err = ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey)
		if err != nil {
			logger.Fatal("gemini init failed", zap.Error(err))
		}
		defer provider.Close()
	}

	agentHTTP := &http.Client{Timeout: cfg.Agent.Timeout}

	var engine session.Engine
	switch cfg.Session.Engine {
	case config.EngineRemote:
		engine = session.NewRemoteEngine(cfg.Agent.URL, agentHTTP)
	case config.EngineGemini:
		engine = session.NewLLMEngine(provider)
	default:
		engine = session.NewLocalEngine(dialogue.NewEngine(dialogue.NewStaticCatalog()))
	}

	var handoff session.Handoff
	if cfg.NATS.URL != "" {
		publisher, err := events.NewPublisher(cfg.NATS.URL, logger)
		if err != nil {
			logger.Fatal("nats init failed", zap.Error(err))
		}
		defer publisher.Close()
		handoff = publisher
	}

	var places recommend.PlaceLookup
	if cfg.Maps.APIKey != "" {
		placesSvc, err := maps.NewPlacesService(cfg.Maps.APIKey)
		if err != nil {
			logger.Fatal("maps init failed", zap.Error(err))
		}
		places = placesSvc
	}

	var fallback recommend.Fallback
	if provider != nil {
		fallback = recommend.NewLLMFallback(provider)
	}

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Sessions:  session.NewService(repo, engine, handoff, logger.Named("session")),
		Images:    imagegen.NewService(imagegen.NewClient(cfg.Agent.URL, agentHTTP), logger.Named("imagegen")),
		Recommend: recommend.NewService(recommend.NewClient(cfg.Agent.URL, agentHTTP), places, fallback, logger.Named("recommend")),
		Download:  download.NewService(nil, cfg.Download.Timeout, logger.Named("download")),
		Logger:    logger,
	})

	logger.Info("tripkit api starting",
		zap.String("env", cfg.Env),
		zap.String("session_store", cfg.Session.Store),
		zap.String("dialogue_engine", cfg.Session.Engine),
		zap.Bool("places_enrichment", places != nil),
		zap.Bool("profile_events", handoff != nil),
	)

	if err := httptransport.NewServer(cfg.HTTP.Addr, router, logger).Run(ctx); err != nil {
		logger.Fatal("http server failed", zap.Error(err))
	}
	logger.Info("tripkit api stopped")
}

func newRepository(ctx context.Context, cfg config.Config, logger *zap.Logger) (session.Repository, error) {
	switch cfg.Session.Store {
	case config.StoreMemory:
		return session.NewMemoryStore(cfg.Session.TTL), nil
	case config.StorePostgres:
		db, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			return nil, err
		}
		store := session.NewPGStore(db, cfg.Session.TTL)
		go store.RunPurger(ctx, cfg.Session.PurgeEvery, func(err error) {
			logger.Warn("session purge failed", zap.Error(err))
		})
		return store, nil
	default:
		rdb, err := infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			return nil, err
		}
		return session.NewRedisStore(rdb, cfg.Session.TTL), nil
	}
}
