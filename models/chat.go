package models

import (
	"context"
	"fmt"
	"strings"

	"go.mau.fi/whatsmeow/types"
)

// Chat represents a WhatsApp conversation as listed by the gateway
type Chat struct {
	ID             string    `json:"id"`
	Name           string    `json:"name,omitempty"`
	Date           Timestamp `json:"date"`
	UnreadMessages int       `json:"unreadMessages"`
	IsGroup        bool      `json:"isGroup"`
	IsMuted        bool      `json:"isMuted"`
	IsReadonly     bool      `json:"isReadonly"`
	IsArchived     bool      `json:"isArchived"`
	IsPinned       bool      `json:"isPinned"`

	gw Gateway
}

var chatAliases = map[string]string{"timestamp": "date"}

// DecodeChat hydrates a Chat from a gateway payload.
func DecodeChat(raw map[string]any, gw Gateway) (Chat, error) {
	var c Chat
	if err := decode(raw, &c, chatAliases); err != nil {
		return Chat{}, fmt.Errorf("decode chat: %w", err)
	}
	c.gw = gw
	return c, nil
}

// DecodeChats hydrates every chat object in items.
func DecodeChats(items []any, gw Gateway) []Chat {
	return decodeList(items, func(raw map[string]any) (Chat, error) {
		return DecodeChat(raw, gw)
	})
}

// JID returns the WhatsApp JID of the chat.
func (c Chat) JID() (types.JID, error) {
	if strings.Contains(c.ID, "@") {
		return types.ParseJID(c.ID)
	}
	if c.IsGroup {
		return types.NewJID(c.ID, types.GroupServer), nil
	}
	return types.NewJID(c.ID, types.DefaultUserServer), nil
}

// GetProfile fetches the profile of the chat contact.
func (c Chat) GetProfile(ctx context.Context) (*Profile, error) {
	if c.gw == nil {
		return nil, ErrUnbound
	}
	return c.gw.GetProfile(ctx, c.ID)
}

// GetMessages fetches messages of the chat. A zero limit fetches as many as
// the gateway returns.
func (c Chat) GetMessages(ctx context.Context, limit int) ([]Message, error) {
	if c.gw == nil {
		return nil, ErrUnbound
	}
	return c.gw.GetMessages(ctx, c.ID, limit)
}

// SearchMessages searches for messages in this chat only.
func (c Chat) SearchMessages(ctx context.Context, query string, limit, page int) ([]Message, error) {
	if c.gw == nil {
		return nil, ErrUnbound
	}
	return c.gw.SearchMessages(ctx, query, SearchOptions{Number: c.ID, Limit: limit, Page: page})
}

// SendMessage sends a text message to the chat.
func (c Chat) SendMessage(ctx context.Context, body string) (bool, error) {
	if c.gw == nil {
		return false, ErrUnbound
	}
	return c.gw.SendMessage(ctx, c.ID, body, "")
}

// SendLocation sends a location pin to the chat.
func (c Chat) SendLocation(ctx context.Context, loc OutgoingLocation) (bool, error) {
	if c.gw == nil {
		return false, ErrUnbound
	}
	return c.gw.SendLocation(ctx, c.ID, loc)
}

// SendMedia sends a local file or remote URL to the chat.
func (c Chat) SendMedia(ctx context.Context, file string, opts MediaOptions) (bool, error) {
	if c.gw == nil {
		return false, ErrUnbound
	}
	return c.gw.SendMedia(ctx, c.ID, file, opts)
}

// SendSticker sends an image as a sticker.
func (c Chat) SendSticker(ctx context.Context, file string) (bool, error) {
	return c.SendMedia(ctx, file, MediaOptions{AsSticker: true})
}

// SendVoice sends an audio file as a voice note.
func (c Chat) SendVoice(ctx context.Context, file string, viewOnce bool) (bool, error) {
	return c.SendMedia(ctx, file, MediaOptions{AsVoice: true, ViewOnce: viewOnce})
}
