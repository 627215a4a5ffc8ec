package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCmd(s *session) *cobra.Command {
	var save string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Start a login and print the QR code to scan",
		RunE: func(cmd *cobra.Command, args []string) error {
			qr, err := s.client.Login(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if qr == nil {
				fmt.Fprintln(out, "Already logged in")
				return nil
			}

			if save != "" {
				path, err := qr.Save(save, "")
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "QR code saved to %s\n", path)
				return nil
			}

			qr.PrintTerminal(out)
			fmt.Fprintln(out, "Scan the code with WhatsApp > Linked devices")
			return nil
		},
	}

	cmd.Flags().StringVar(&save, "save", "", "write the QR image into this directory instead of drawing it")

	return cmd
}

func newStatusCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether the gateway session is logged in",
		RunE: func(cmd *cobra.Command, args []string) error {
			loggedIn, err := s.client.CheckLogin(cmd.Context())
			if err != nil {
				return err
			}

			if s.asJSON {
				return printJSON(cmd, map[string]any{"host": s.client.Host(), "logged_in": loggedIn})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Gateway:   %s\n", s.client.Host())
			fmt.Fprintf(out, "Logged in: %t\n", loggedIn)
			return nil
		},
	}
}

func newLogoutCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the gateway session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := s.client.Logout(cmd.Context())
			if err != nil {
				return err
			}
			return printOutcome(cmd, ok, "Logged out")
		},
	}
}

func newPresenceCmd(s *session, presence, short string) *cobra.Command {
	return &cobra.Command{
		Use:   presence,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			set := s.client.SetOnline
			if presence == "offline" {
				set = s.client.SetOffline
			}

			ok, err := set(cmd.Context())
			if err != nil {
				return err
			}
			return printOutcome(cmd, ok, "Presence set to "+presence)
		},
	}
}

func newMeCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the profile of the logged in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := s.client.GetUser(cmd.Context())
			if err != nil {
				return err
			}
			if me == nil {
				return fmt.Errorf("not logged in")
			}

			if s.asJSON {
				return printJSON(cmd, me)
			}
			printProfile(cmd, *me)
			return nil
		},
	}
}
