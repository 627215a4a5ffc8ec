package cli

import (
	"strings"

	"github.com/mbenaiss/whatsapp-client/models"
	"github.com/spf13/cobra"
)

func newSendCmd(s *session) *cobra.Command {
	var replyTo string

	cmd := &cobra.Command{
		Use:   "send <number> <text>",
		Short: "Send a text message",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := s.client.SendMessage(cmd.Context(), args[0], strings.Join(args[1:], " "), replyTo)
			if err != nil {
				return err
			}
			return printOutcome(cmd, ok, "Message sent")
		},
	}

	cmd.Flags().StringVar(&replyTo, "reply-to", "", "id of the message to reply to")

	return cmd
}

func newSendMediaCmd(s *session) *cobra.Command {
	var opts models.MediaOptions

	cmd := &cobra.Command{
		Use:   "send-media <number> <file-or-url>",
		Short: "Send a local file or a remote URL",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := s.client.SendMedia(cmd.Context(), args[0], args[1], opts)
			if err != nil {
				return err
			}
			return printOutcome(cmd, ok, "Media sent")
		},
	}

	cmd.Flags().StringVar(&opts.Caption, "caption", "", "media caption")
	cmd.Flags().BoolVar(&opts.ViewOnce, "view-once", false, "allow a single view")
	cmd.Flags().BoolVar(&opts.AsDocument, "document", false, "send as a document")
	cmd.Flags().BoolVar(&opts.AsVoice, "voice", false, "send audio as a voice note")
	cmd.Flags().BoolVar(&opts.AsGif, "gif", false, "send a video as a gif")
	cmd.Flags().BoolVar(&opts.AsSticker, "sticker", false, "send an image as a sticker")
	cmd.Flags().StringVar(&opts.ReplyTo, "reply-to", "", "id of the message to reply to")

	return cmd
}

func newSendLocationCmd(s *session) *cobra.Command {
	var loc models.OutgoingLocation

	cmd := &cobra.Command{
		Use:   "send-location <number>",
		Short: "Send a location pin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := s.client.SendLocation(cmd.Context(), args[0], loc)
			if err != nil {
				return err
			}
			return printOutcome(cmd, ok, "Location sent")
		},
	}

	cmd.Flags().Float64Var(&loc.Latitude, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&loc.Longitude, "lng", 0, "longitude")
	cmd.Flags().StringVar(&loc.Address, "address", "", "address shown with the pin")
	cmd.Flags().StringVar(&loc.URL, "url", "", "URL attached to the pin")
	cmd.Flags().StringVar(&loc.ReplyTo, "reply-to", "", "id of the message to reply to")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lng")

	return cmd
}
