package cli

import (
	"encoding/json"
	"fmt"

	"github.com/mbenaiss/whatsapp-client/models"
	"github.com/spf13/cobra"
)

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printOutcome reports a send or session call. A negative gateway status is
// returned as an error so the exit code reflects it.
func printOutcome(cmd *cobra.Command, ok bool, success string) error {
	if !ok {
		return fmt.Errorf("gateway did not accept the request")
	}
	fmt.Fprintln(cmd.OutOrStdout(), success)
	return nil
}

func printMessages(cmd *cobra.Command, s *session, msgs []models.Message) error {
	if s.asJSON {
		return printJSON(cmd, msgs)
	}

	out := cmd.OutOrStdout()
	for _, m := range msgs {
		when := ""
		if !m.Date.IsZero() {
			when = m.Date.Local().Format("2006-01-02 15:04")
		}
		body := m.String()
		if m.Media != nil && body == "" {
			body = "[" + m.Media.Type + "]"
		}
		if m.Location != nil {
			body = "[location] " + m.Location.GoogleMaps()
		}
		fmt.Fprintf(out, "%s %s: %s\n", when, m.From, body)
	}
	return nil
}

func printProfile(cmd *cobra.Command, p models.Profile) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Name:     %s\n", p.Name)
	fmt.Fprintf(out, "Number:   %s\n", p.Number)
	if p.Status != "" {
		fmt.Fprintf(out, "Status:   %s\n", p.Status)
	}
	fmt.Fprintf(out, "Business: %t\n", p.IsBusiness)
}
