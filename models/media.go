package models

import (
	"context"
	"fmt"

	"github.com/mbenaiss/whatsapp-client/media"
)

// Media describes a downloadable attachment. An empty URL means the media
// cannot be downloaded.
type Media struct {
	URL       string `json:"url,omitempty"`
	Type      string `json:"type,omitempty"`
	Extension string `json:"extension,omitempty"`
	Filename  string `json:"filename,omitempty"`

	gw Gateway
}

// DecodeMedia hydrates a Media from a gateway payload.
func DecodeMedia(raw map[string]any, gw Gateway) (Media, error) {
	var m Media
	if err := decode(raw, &m, nil); err != nil {
		return Media{}, fmt.Errorf("decode media: %w", err)
	}
	m.gw = gw
	return m, nil
}

// Download saves the media into dir and returns the local path. An empty
// filename keeps the name from the media URL.
func (m *Media) Download(ctx context.Context, dir, filename string) (string, error) {
	if m.URL == "" {
		return "", &media.DownloadError{Op: media.OpUnavailable}
	}
	if m.gw == nil {
		return "", ErrUnbound
	}
	return m.gw.Download(ctx, m.URL, dir, filename)
}
