package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"video-stats-updater/domain/repository"
	"video-stats-updater/infrastructure/cache"
	youtubeclient "video-stats-updater/infrastructure/clients/youtube"
	"video-stats-updater/infrastructure/configuration"
	"video-stats-updater/infrastructure/logger"
	"video-stats-updater/infrastructure/metrics"
	"video-stats-updater/infrastructure/pubsub"
	"video-stats-updater/infrastructure/realtime"
	"video-stats-updater/infrastructure/render"
	"video-stats-updater/infrastructure/servicebus"
	httpHandler "video-stats-updater/interfaces/http"
	"video-stats-updater/server"
	"video-stats-updater/usecase"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const thumbnailCacheEntries = 256

var httpServer *http.Server

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	app := configuration.C.App

	style, err := configuration.C.RenderStyle()
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Invalid render style in config - using defaults")
		style = render.DefaultRenderStyle()
	}

	renderCfg := configuration.C.Render
	renderer := render.NewThumbnailRendererFromAssets(renderCfg.BackgroundPath, renderCfg.FontPath, renderCfg.CaptionFontPath, style).
		WithOutputPath(renderCfg.OutputPath)
	if err := renderer.AssetError(); err != nil {
		// Only the thumbnail stage is affected; titles keep updating.
		logger.GetLogger().WithField("error", err).Error("Thumbnail assets failed to load")
	}

	collector := metrics.NewCollector()

	redisClient := initRedis(ctx)
	thumbnailCache := cache.NewThumbnailCache(redisClient, thumbnailCacheEntries)
	cachedRenderer := render.NewCachedRenderer(renderer, thumbnailCache, cache.Key,
		time.Duration(renderCfg.CacheTTLSeconds)*time.Second).
		OnLookup(collector.CacheLookup)

	outcomeHub := realtime.NewOutcomeHub()
	publishers, closePublishers := initPublishers(ctx)
	publishers = append(publishers, outcomeHub)
	defer closePublishers()

	clientFactory := youtubeclient.NewFactory(youtubeclient.Config{
		ClientID:     configuration.C.YouTube.ClientID,
		ClientSecret: configuration.C.YouTube.ClientSecret,
		Endpoint:     configuration.C.YouTube.Endpoint,
	})
	updater := usecase.NewMetadataUpdater(clientFactory)
	pipeline := usecase.NewUpdatePipeline(cachedRenderer, updater, usecase.PipelineConfig{
		TitlePrefix: configuration.C.Title.Prefix,
		Captions:    renderer.Captions(),
	}).
		WithRecorder(collector).
		WithPublishers(publishers...)

	statsHandler := httpHandler.NewStatsHandler(pipeline)
	healthHandler := httpHandler.NewHealthHandler(renderer.AssetError)
	router := server.InitiateRouter(statsHandler, healthHandler, collector.Handler(), outcomeHub.Serve, app.SecretKey)

	port := app.Port
	logger.GetLogger().WithFields(map[string]interface{}{"port": port, "tls": app.TLSEnabled}).Info("Starting application")
	g.Go(func() error {
		httpServer = &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}
		if app.TLSEnabled {
			cert := app.TLSCertFile
			key := app.TLSKeyFile
			if cert == "" || key == "" {
				logger.GetLogger().Error("TLS enabled but cert or key path empty; falling back to HTTP")
				if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
					return err
				}
			} else {
				logger.GetLogger().WithFields(map[string]interface{}{"cert": cert, "key": key}).Info("Serving HTTPS")
				if err := httpServer.ListenAndServeTLS(cert, key); !errors.Is(err, http.ErrServerClosed) {
					return err
				}
			}
		} else {
			if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if httpServer != nil {
		_ = httpServer.Shutdown(shutdownCtx)
	}

	if err := g.Wait(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		closePublishers()
		os.Exit(2)
	}
}

func initRedis(ctx context.Context) *redis.Client {
	rc := configuration.C.RedisClient
	if rc.Host == "" {
		logger.GetLogger().Info("Redis not configured - thumbnail cache is memory only")
		return nil
	}
	client, err := cache.NewCache(ctx, fmt.Sprintf("%s:%s", rc.Host, rc.Port), rc.Username, rc.Password, rc.DB)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Redis not available - thumbnail cache is memory only")
		return nil
	}
	logger.GetLogger().Info("Redis client initialized successfully.")
	return client
}

// initPublishers connects the optional outcome sinks. Missing configuration
// only disables the sink.
func initPublishers(ctx context.Context) ([]repository.IOutcomePublisher, func()) {
	var publishers []repository.IOutcomePublisher
	var closers []func()

	if pubSubClient, err := pubsub.NewPubSub(ctx, configuration.C.Pubsub.ProjectID); err != nil {
		logger.GetLogger().WithField("error", err).Info("Pub/Sub not available - outcomes are not published to a topic")
	} else {
		publisher := pubsub.NewOutcomePublisher(pubSubClient, configuration.C.Pubsub.TopicID)
		publishers = append(publishers, publisher)
		closers = append(closers, func() {
			publisher.Stop()
			_ = pubSubClient.Close()
		})
	}

	if azServiceBusClient, err := servicebus.NewServiceBus(ctx, configuration.C.ServiceBus.Namespace); err != nil {
		logger.GetLogger().WithField("error", err).Info("Azure Service Bus not available - outcomes are not sent to a queue")
	} else if sender, err := servicebus.NewOutcomeSender(azServiceBusClient, configuration.C.ServiceBus.Queue); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Failed to create Service Bus sender")
	} else {
		publishers = append(publishers, sender)
		closers = append(closers, func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			sender.Close(closeCtx)
			_ = azServiceBusClient.Close(closeCtx)
		})
	}

	closed := false
	return publishers, func() {
		if closed {
			return
		}
		closed = true
		for _, c := range closers {
			c()
		}
	}
}
