package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/CoalValleyTech/span-sportshub/internal/api/rest"
	"github.com/CoalValleyTech/span-sportshub/internal/api/websocket"
	"github.com/CoalValleyTech/span-sportshub/internal/auth"
	"github.com/CoalValleyTech/span-sportshub/internal/cache"
	"github.com/CoalValleyTech/span-sportshub/internal/config"
	"github.com/CoalValleyTech/span-sportshub/internal/publisher"
	"github.com/CoalValleyTech/span-sportshub/internal/service"
	"github.com/CoalValleyTech/span-sportshub/internal/storage"
	"github.com/CoalValleyTech/span-sportshub/internal/store"
)

const serviceName = "span-sportshub"

func main() {
	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Info().Str("service", serviceName).Msg("Starting")

	db, err := store.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()
	log.Info().Msg("Connected to database")

	if err := db.RunMigrations(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}
	log.Info().Msg("Database migrations applied")

	redisCache := connectRedis(cfg.RedisURL)
	defer redisCache.Close()
	log.Info().Msg("Connected to Redis")

	scorePublisher := publisher.NewRedisPublisherFromClient(redisCache.Client())

	blobs, err := storage.NewDiskStore(cfg.MediaDir, cfg.MediaBaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up media storage")
	}

	clock := clockwork.NewRealClock()
	authService := auth.NewService(db, redisCache, cfg.AdminEmails)
	services := rest.Services{
		Auth:      authService,
		Schedules: service.NewScheduleService(db, redisCache, scorePublisher, clock),
		Schools:   service.NewSchoolService(db, blobs, clock),
		Articles:  service.NewArticleService(db),
		Stats:     service.NewStatService(db),
		Standings: service.NewStandingsService(db),
	}

	restServer := rest.NewServer(cfg.RESTPort, db, services, cfg.MediaDir)
	go func() {
		if err := restServer.Start(); err != nil {
			log.Error().Err(err).Msg("REST server stopped")
		}
	}()
	log.Info().Str("port", cfg.RESTPort).Msg("REST API listening")

	wsServer := websocket.NewServer(scorePublisher)
	go func() {
		if err := wsServer.Start(cfg.WSPort); err != nil {
			log.Error().Err(err).Msg("WebSocket server stopped")
		}
	}()
	log.Info().Str("port", cfg.WSPort).Msg("WebSocket server listening")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := restServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("REST server shutdown error")
	}
	if err := wsServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("WebSocket server shutdown error")
	}

	log.Info().Msg("Stopped")
}

// connectRedis retries for a while so the service survives Redis coming up
// after it in docker-compose.
func connectRedis(redisURL string) *cache.RedisCache {
	const maxRetries = 30
	const retryDelay = 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		redisCache, err := cache.NewRedisCache(redisURL)
		if err == nil {
			return redisCache
		}
		if i == maxRetries-1 {
			log.Fatal().Err(err).Int("attempts", maxRetries).Msg("Failed to connect to Redis")
		}
		log.Warn().Err(err).Int("attempt", i+1).Msg("Redis connection failed, retrying")
		time.Sleep(retryDelay)
	}
	return nil
}
