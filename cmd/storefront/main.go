package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/atlantisbooks/atlantis/internal/api"
	"github.com/atlantisbooks/atlantis/internal/auth"
	"github.com/atlantisbooks/atlantis/internal/cart"
	"github.com/atlantisbooks/atlantis/internal/config"
	"github.com/atlantisbooks/atlantis/internal/events"
	"github.com/atlantisbooks/atlantis/internal/localstore"
	"github.com/atlantisbooks/atlantis/internal/session"
	"github.com/atlantisbooks/atlantis/internal/web"
)

const shutdownGrace = 10 * time.Second

func main() {
	// Logger
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})

	cfg := config.Load()
	log.Info().
		Str("addr", cfg.HTTPAddr).
		Str("api", cfg.APIBase).
		Str("db", cfg.DBPath).
		Msg("starting storefront")

	// Almacenamiento local (sesión + carrito)
	kv, err := localstore.Open(cfg.DBPath)
	must(err)
	defer kv.Close()

	sessions := session.NewStore(kv)
	carts := cart.NewStore(kv)

	apiClient := api.NewClient(cfg.APIBase, cfg.HTTPTimeout)
	authn := auth.NewAuthenticator(apiClient, sessions)

	// Eventos opcionales; sin broker el publisher queda en nil y no publica
	var pub *events.Publisher
	if cfg.RabbitURL != "" {
		pub, err = events.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Warn().Err(err).Msg("RabbitMQ not available, continuing without events")
			pub = nil
		}
	}
	defer pub.Close()

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: web.NewServer(apiClient, authn, sessions, carts, pub).Handler(),
	}

	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		log.Warn().Msg("shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()

	log.Info().Msg("HTTP listening")
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		must(err)
	}
}

func must(err error) {
	if err != nil {
		log.Fatal().Err(err).Msg("fatal")
	}
}
