package whatsapp

import (
	"encoding/json"

	"github.com/mbenaiss/whatsapp-client/models"
)

// EventMessageReceived is the webhook type carrying an inbound message.
const EventMessageReceived = "message_received"

// WebhookEvent is the envelope posted by the gateway to webhook receivers.
type WebhookEvent struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
}

// ParseWebhook decodes a webhook body. ok is false when the body is not a
// JSON object.
func ParseWebhook(body []byte) (WebhookEvent, bool) {
	var evt WebhookEvent
	if err := json.Unmarshal(body, &evt); err != nil {
		return WebhookEvent{}, false
	}
	return evt, true
}

// ConsumeWebhook returns the message carried by a message_received webhook.
// Other events and malformed bodies yield nil without an error.
func (c *Client) ConsumeWebhook(body []byte) (*models.Message, error) {
	evt, ok := ParseWebhook(body)
	if !ok {
		c.log.Debug().Msg("ignoring malformed webhook body")
		return nil, nil
	}
	if evt.Type != EventMessageReceived || len(evt.Data) == 0 {
		return nil, nil
	}

	msg, err := models.DecodeMessage(evt.Data, c)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}
