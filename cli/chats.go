package cli

import (
	"fmt"
	"strings"

	"github.com/mbenaiss/whatsapp-client/models"
	"github.com/spf13/cobra"
)

func newChatsCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "chats",
		Short: "List chats",
		RunE: func(cmd *cobra.Command, args []string) error {
			chats, err := s.client.GetChats(cmd.Context())
			if err != nil {
				return err
			}

			if s.asJSON {
				return printJSON(cmd, chats)
			}

			out := cmd.OutOrStdout()
			for _, c := range chats {
				unread := ""
				if c.UnreadMessages > 0 {
					unread = fmt.Sprintf(" (%d unread)", c.UnreadMessages)
				}
				kind := "chat"
				if c.IsGroup {
					kind = "group"
				}
				fmt.Fprintf(out, "%-24s %-6s %s%s\n", c.ID, kind, c.Name, unread)
			}
			return nil
		},
	}
}

func newMessagesCmd(s *session) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "messages <number>",
		Short: "Print the latest messages of a chat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msgs, err := s.client.GetMessages(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			return printMessages(cmd, s, msgs)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of messages")

	return cmd
}

func newSearchCmd(s *session) *cobra.Command {
	var opts models.SearchOptions

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search messages by content",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msgs, err := s.client.SearchMessages(cmd.Context(), strings.Join(args, " "), opts)
			if err != nil {
				return err
			}
			return printMessages(cmd, s, msgs)
		},
	}

	cmd.Flags().StringVar(&opts.Number, "number", "", "restrict the search to one chat")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum number of results")
	cmd.Flags().IntVar(&opts.Page, "page", 0, "result page")

	return cmd
}

func newProfileCmd(s *session) *cobra.Command {
	var picture string

	cmd := &cobra.Command{
		Use:   "profile <number>",
		Short: "Show the profile of a number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := s.client.GetProfile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if p == nil {
				return fmt.Errorf("no profile found for %s", args[0])
			}

			if picture != "" {
				path, err := p.DownloadProfilePicture(cmd.Context(), picture, "")
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Profile picture saved to %s\n", path)
			}

			if s.asJSON {
				return printJSON(cmd, p)
			}
			printProfile(cmd, *p)
			return nil
		},
	}

	cmd.Flags().StringVar(&picture, "picture", "", "download the profile picture into this directory")

	return cmd
}

func newContactsCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "contacts",
		Short: "List contacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			contacts, err := s.client.GetContacts(cmd.Context())
			if err != nil {
				return err
			}

			if s.asJSON {
				return printJSON(cmd, contacts)
			}

			out := cmd.OutOrStdout()
			for _, c := range contacts {
				name := c.Name
				if name == "" {
					name = c.ContactName
				}
				fmt.Fprintf(out, "%-16s %s\n", c.Number, name)
			}
			return nil
		},
	}
}
