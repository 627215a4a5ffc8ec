package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mbenaiss/whatsapp-client/api"
	"github.com/mbenaiss/whatsapp-client/config"
	"github.com/mbenaiss/whatsapp-client/logging"
	"github.com/mbenaiss/whatsapp-client/models"
	"github.com/mbenaiss/whatsapp-client/services"
	"github.com/mbenaiss/whatsapp-client/whatsapp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New(nil, "info").Fatal().Err(err).Msg("failed to load config")
	}

	log := logging.New(nil, cfg.LogLevel)

	client, err := whatsapp.Create(cfg.Host,
		whatsapp.WithToken(cfg.Token),
		whatsapp.WithTimeout(cfg.Timeout),
		whatsapp.WithLogger(log),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize WhatsApp client")
	}

	logInbound := func(_ context.Context, msg models.Message) {
		log.Info().Str("id", msg.ID).Str("from", msg.From).Str("body", msg.String()).Msg("inbound message")
	}
	service := services.NewService(client, log, logInbound)

	apiServer := api.NewServer(service, cfg.Port, log)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info().Msg("shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := apiServer.Stop(ctx); err != nil {
			log.Error().Err(err).Msg("HTTP server shutdown error")
		}
		log.Info().Msg("server gracefully stopped")
	}()

	log.Info().Str("port", cfg.Port).Str("gateway", client.Host()).Msg("WhatsApp API server starting")
	if err := apiServer.Start(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("HTTP server error")
	}
}
