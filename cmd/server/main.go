package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	httpapi "giftwrap/internal/api/http"
	"giftwrap/internal/api/ws"
	"giftwrap/internal/config"
	"giftwrap/internal/room"
	"giftwrap/internal/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.SetupLogging(config.Default(), os.Stderr)
		log.Fatal().Err(err).Msg("config")
	}
	config.SetupLogging(*cfg, os.Stderr)
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mem := store.NewMemoryStore()
	rm := room.NewManager(mem, *cfg, nil)
	hub := ws.NewHub(rm)
	rm.SetHub(hub)
	if ttl := cfg.RoomTTL(); ttl > 0 {
		go rm.RunJanitor(ctx, time.Minute, ttl)
	}

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: httpapi.NewRouter(rm, hub),
	}
	serveErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", cfg.HTTPAddr).
			Int("aiDepth", cfg.AIDepth).
			Bool("aiParallel", cfg.AIParallel).
			Dur("roomTTL", cfg.RoomTTL()).
			Msg("listening")
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	case <-ctx.Done():
		log.Info().Msg("shutting-down")
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	hub.Close()
	hub.Wait()
	log.Info().Msg("stopped")
}
