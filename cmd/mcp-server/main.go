package main

import (
	"os"

	"github.com/mbenaiss/whatsapp-client/config"
	"github.com/mbenaiss/whatsapp-client/logging"
	"github.com/mbenaiss/whatsapp-client/mcp"
	"github.com/mbenaiss/whatsapp-client/services"
	"github.com/mbenaiss/whatsapp-client/whatsapp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New(os.Stderr, "info").Fatal().Err(err).Msg("failed to load config")
	}

	// stdout carries the MCP protocol, so logs go to stderr.
	log := logging.New(os.Stderr, cfg.LogLevel)

	client, err := whatsapp.Create(cfg.Host,
		whatsapp.WithToken(cfg.Token),
		whatsapp.WithTimeout(cfg.Timeout),
		whatsapp.WithLogger(log),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize WhatsApp client")
	}

	mcpServer := mcp.NewMCPServer("WhatsApp MCP API", "1.0.0", services.NewService(client, log))
	if err := mcp.StartMCPServer(mcpServer); err != nil {
		log.Fatal().Err(err).Msg("failed to start MCP server")
	}
}
