package models

import (
	"context"
	"fmt"

	"github.com/mbenaiss/whatsapp-client/format"
	"github.com/mbenaiss/whatsapp-client/media"
	"go.mau.fi/whatsmeow/types"
)

// Profile represents a WhatsApp user profile
type Profile struct {
	Number         string `json:"number"`
	Name           string `json:"name,omitempty"`
	ContactName    string `json:"contactName,omitempty"`
	Shortname      string `json:"shortname,omitempty"`
	ProfilePicture string `json:"profilePicture,omitempty"`
	Status         string `json:"status,omitempty"`
	IsSaved        bool   `json:"isSaved"`
	IsBlocked      bool   `json:"isBlocked"`
	IsBusiness     bool   `json:"isBusiness"`
	IsEnterprise   bool   `json:"isEnterprise"`
	IsMe           bool   `json:"isMe"`
	IsValid        bool   `json:"isValid"`

	gw Gateway
}

// DecodeProfile hydrates a Profile from a gateway payload.
func DecodeProfile(raw map[string]any, gw Gateway) (Profile, error) {
	var p Profile
	if err := decode(raw, &p, nil); err != nil {
		return Profile{}, fmt.Errorf("decode profile: %w", err)
	}
	p.gw = gw
	return p, nil
}

// DecodeProfiles hydrates every profile object in items.
func DecodeProfiles(items []any, gw Gateway) []Profile {
	return decodeList(items, func(raw map[string]any) (Profile, error) {
		return DecodeProfile(raw, gw)
	})
}

// JID returns the WhatsApp user JID of the profile.
func (p Profile) JID() types.JID {
	return types.NewJID(format.Number(p.Number), types.DefaultUserServer)
}

// GetMessages fetches the chat messages with this user.
func (p Profile) GetMessages(ctx context.Context, limit int) ([]Message, error) {
	if p.gw == nil {
		return nil, ErrUnbound
	}
	return p.gw.GetMessages(ctx, format.Number(p.Number), limit)
}

// SendMessage sends a text message to this user.
func (p Profile) SendMessage(ctx context.Context, body string) (bool, error) {
	if p.gw == nil {
		return false, ErrUnbound
	}
	return p.gw.SendMessage(ctx, format.Number(p.Number), body, "")
}

// SendLocation sends a location pin to this user.
func (p Profile) SendLocation(ctx context.Context, loc OutgoingLocation) (bool, error) {
	if p.gw == nil {
		return false, ErrUnbound
	}
	return p.gw.SendLocation(ctx, format.Number(p.Number), loc)
}

// DownloadProfilePicture saves the profile picture into dir.
func (p Profile) DownloadProfilePicture(ctx context.Context, dir, filename string) (string, error) {
	if p.ProfilePicture == "" {
		return "", &media.DownloadError{
			Op:  media.OpUnavailable,
			Err: fmt.Errorf("profile picture is not available for user %s", p.Number),
		}
	}
	if p.gw == nil {
		return "", ErrUnbound
	}
	return p.gw.Download(ctx, p.ProfilePicture, dir, filename)
}
