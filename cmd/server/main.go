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

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	router "github.com/dkeye/FrontDesk/internal/adapters/http"
	"github.com/dkeye/FrontDesk/internal/adapters/livekit"
	"github.com/dkeye/FrontDesk/internal/adapters/memory"
	wshub "github.com/dkeye/FrontDesk/internal/adapters/signal"
	"github.com/dkeye/FrontDesk/internal/app"
	"github.com/dkeye/FrontDesk/internal/app/broker"
	"github.com/dkeye/FrontDesk/internal/config"
	"github.com/dkeye/FrontDesk/internal/core"
)

func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.Log.Format == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
}

func newTransport(cfg *config.Config, signer *livekit.Signer) core.RoomTransport {
	if cfg.Transport.Kind == config.TransportMemory {
		log.Warn().Msg("using in-memory room transport, no media server is contacted")
		return memory.NewTransport()
	}
	return livekit.NewClient(cfg.LiveKit.Host, signer, &http.Client{Timeout: cfg.Transport.Timeout})
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	flags := config.Flags()
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		log.Fatal().Err(err).Msg("bad flags")
	}

	cfg, err := config.Load(flags)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}
	setupLogger(cfg)

	signer, err := livekit.NewSigner(cfg.LiveKit.APIKey, cfg.LiveKit.APISecret, cfg.LiveKit.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build grant signer")
	}

	hub := wshub.NewHub()
	b := &broker.Broker{
		Registry:  app.NewRegistry(),
		Policy:    app.TablePolicy{},
		Transport: newTransport(cfg, signer),
		Signer:    signer,
		Events:    hub,
		Timeout:   cfg.Transport.Timeout,
	}

	r := router.SetupRouter(ctx, cfg, b, hub)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("FrontDesk started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
}
