package models

import (
	"context"
	"errors"
)

// ErrUnbound is returned by entity operations on an entity that was not
// decoded through a client.
var ErrUnbound = errors.New("models: entity is not bound to a client")

// Gateway is the part of the WhatsApp client that entities call back into.
type Gateway interface {
	GetProfile(ctx context.Context, number string) (*Profile, error)
	GetMessages(ctx context.Context, number string, limit int) ([]Message, error)
	SearchMessages(ctx context.Context, query string, opts SearchOptions) ([]Message, error)
	SendMessage(ctx context.Context, number, body, replyTo string) (bool, error)
	SendLocation(ctx context.Context, number string, loc OutgoingLocation) (bool, error)
	SendMedia(ctx context.Context, number, file string, opts MediaOptions) (bool, error)
	Download(ctx context.Context, url, dir, filename string) (string, error)
}

// SearchOptions narrows a message search. Zero values are left out of the
// request.
type SearchOptions struct {
	Number string
	Limit  int
	Page   int
}

// OutgoingLocation is a location pin to send.
type OutgoingLocation struct {
	Latitude  float64
	Longitude float64
	Address   string
	URL       string
	ReplyTo   string
}

// MediaOptions controls how the gateway delivers a media file. The flags are
// passed through as is; the gateway decides how combinations behave.
type MediaOptions struct {
	Caption    string
	ViewOnce   bool
	AsDocument bool
	AsVoice    bool
	AsGif      bool
	AsSticker  bool
	ReplyTo    string
}

// Status represents the login state of the gateway session
type Status struct {
	LoggedIn bool     `json:"logged_in"`
	User     *Profile `json:"user,omitempty"`
}
