package models

import (
	"context"
	"fmt"
)

// Message represents a WhatsApp message. Media and Location are set only when
// the gateway sent them.
type Message struct {
	ID          string    `json:"id"`
	Type        string    `json:"type,omitempty"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	Body        string    `json:"body"`
	Date        Timestamp `json:"date"`
	IsTemporary bool      `json:"isTemporary"`
	IsForwarded bool      `json:"isForwarded"`
	IsMine      bool      `json:"isMine"`
	IsBroadcast bool      `json:"isBroadcast"`
	Media       *Media    `json:"media,omitempty"`
	Location    *Location `json:"location,omitempty"`

	gw Gateway
}

var messageAliases = map[string]string{"timestamp": "date"}

// DecodeMessage hydrates a Message from a gateway payload. Null values are
// skipped, so a null media or location stays nil.
func DecodeMessage(raw map[string]any, gw Gateway) (Message, error) {
	raw = dropNulls(raw)

	var m Message
	if err := decode(withoutKeys(raw, "media", "location"), &m, messageAliases); err != nil {
		return Message{}, fmt.Errorf("decode message: %w", err)
	}

	if v, ok := raw["media"].(map[string]any); ok {
		md, err := DecodeMedia(v, gw)
		if err != nil {
			return Message{}, fmt.Errorf("decode message %s: %w", m.ID, err)
		}
		m.Media = &md
	}

	if v, ok := raw["location"].(map[string]any); ok {
		loc, err := DecodeLocation(v)
		if err != nil {
			return Message{}, fmt.Errorf("decode message %s: %w", m.ID, err)
		}
		m.Location = &loc
	}

	m.gw = gw
	return m, nil
}

// DecodeMessages hydrates every message object in items.
func DecodeMessages(items []any, gw Gateway) []Message {
	return decodeList(items, func(raw map[string]any) (Message, error) {
		return DecodeMessage(raw, gw)
	})
}

func withoutKeys(raw map[string]any, keys ...string) map[string]any {
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// GetFromProfile fetches the profile of the sender.
func (m Message) GetFromProfile(ctx context.Context) (*Profile, error) {
	if m.gw == nil {
		return nil, ErrUnbound
	}
	return m.gw.GetProfile(ctx, m.From)
}

// GetToProfile fetches the profile of the receiver.
func (m Message) GetToProfile(ctx context.Context) (*Profile, error) {
	if m.gw == nil {
		return nil, ErrUnbound
	}
	return m.gw.GetProfile(ctx, m.To)
}

// Reply sends body to the sender, quoting this message.
func (m Message) Reply(ctx context.Context, body string) (bool, error) {
	if m.gw == nil {
		return false, ErrUnbound
	}
	return m.gw.SendMessage(ctx, m.From, body, m.ID)
}

// String returns the message body.
func (m Message) String() string {
	return m.Body
}
