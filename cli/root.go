package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/mbenaiss/whatsapp-client/config"
	"github.com/mbenaiss/whatsapp-client/logging"
	"github.com/mbenaiss/whatsapp-client/whatsapp"
	"github.com/spf13/cobra"
)

// session is the state shared by every command once flags are parsed.
type session struct {
	host     string
	token    string
	logLevel string
	asJSON   bool

	log    *logging.Logger
	client *whatsapp.Client
}

func newRootCmd() *cobra.Command {
	s := &session{}

	cmd := &cobra.Command{
		Use:   "wactl",
		Short: "Command line client for a WhatsApp gateway",
		Long:  "wactl talks to a WhatsApp gateway REST API: log in, read chats and send messages.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if s.host != "" {
				cfg.Host = s.host
			}
			if s.token != "" {
				cfg.Token = s.token
			}
			if s.logLevel != "" {
				if _, err := logging.ParseLevel(s.logLevel); err != nil {
					return fmt.Errorf("--log-level: %w", err)
				}
				cfg.LogLevel = s.logLevel
			}

			s.log = logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
			s.client, err = whatsapp.Create(cfg.Host,
				whatsapp.WithToken(cfg.Token),
				whatsapp.WithTimeout(cfg.Timeout),
				whatsapp.WithLogger(s.log),
			)
			return err
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&s.host, "host", "", "gateway base URL (default $WHATSAPP_HOST)")
	cmd.PersistentFlags().StringVar(&s.token, "token", "", "gateway bearer token (default $WHATSAPP_TOKEN)")
	cmd.PersistentFlags().StringVar(&s.logLevel, "log-level", "", "log level (trace, debug, info, warn, error, fatal, silent)")
	cmd.PersistentFlags().BoolVar(&s.asJSON, "json", false, "print results as JSON")

	cmd.AddCommand(newLoginCmd(s))
	cmd.AddCommand(newStatusCmd(s))
	cmd.AddCommand(newLogoutCmd(s))
	cmd.AddCommand(newPresenceCmd(s, "online", "Mark the account as online"))
	cmd.AddCommand(newPresenceCmd(s, "offline", "Mark the account as offline"))
	cmd.AddCommand(newMeCmd(s))
	cmd.AddCommand(newChatsCmd(s))
	cmd.AddCommand(newMessagesCmd(s))
	cmd.AddCommand(newSearchCmd(s))
	cmd.AddCommand(newProfileCmd(s))
	cmd.AddCommand(newContactsCmd(s))
	cmd.AddCommand(newSendCmd(s))
	cmd.AddCommand(newSendMediaCmd(s))
	cmd.AddCommand(newSendLocationCmd(s))

	return cmd
}

// Execute runs the root command until it completes or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}
