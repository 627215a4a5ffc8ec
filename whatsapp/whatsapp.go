package whatsapp

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/mbenaiss/whatsapp-client/format"
	"github.com/mbenaiss/whatsapp-client/logging"
	"github.com/mbenaiss/whatsapp-client/media"
	"github.com/mbenaiss/whatsapp-client/models"
)

var _ models.Gateway = (*Client)(nil)

// DefaultTimeout is used when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// Client talks to a WhatsApp gateway over its REST API. Its configuration is
// fixed at construction, so a Client can be shared between goroutines.
type Client struct {
	host       string
	token      string
	timeout    time.Duration
	httpClient *http.Client
	fetcher    *media.Fetcher
	log        *logging.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithTimeout sets the request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.timeout = timeout }
}

// WithHTTPClient replaces the underlying HTTP client. Its own timeout is
// kept as is.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(log *logging.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a client for the gateway at host.
func New(host string, opts ...Option) (*Client, error) {
	host = strings.TrimRight(strings.TrimSpace(host), "/")
	if host == "" {
		return nil, &ConfigurationError{Message: "host URL is required"}
	}

	c := &Client{
		host:    host,
		timeout: DefaultTimeout,
		log:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}
	c.log = c.log.Sub("whatsapp")
	c.fetcher = media.NewFetcher(c.httpClient, c.log.Sub("media"))

	return c, nil
}

var (
	defaultMu     sync.RWMutex
	defaultClient *Client
)

// Create builds a client and makes it the process-wide default returned by
// Instance.
func Create(host string, opts ...Option) (*Client, error) {
	c, err := New(host, opts...)
	if err != nil {
		return nil, err
	}

	defaultMu.Lock()
	defaultClient = c
	defaultMu.Unlock()

	return c, nil
}

// Instance returns the client registered by Create.
func Instance() (*Client, error) {
	defaultMu.RLock()
	defer defaultMu.RUnlock()

	if defaultClient == nil {
		return nil, &ConfigurationError{Message: "client instance was not created"}
	}
	return defaultClient, nil
}

// Host returns the gateway base URL.
func (c *Client) Host() string {
	return c.host
}

// Timeout returns the configured request timeout.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// CheckLogin reports whether the gateway session is logged in.
func (c *Client) CheckLogin(ctx context.Context) (bool, error) {
	resp, err := c.execute(ctx, "check-login", http.MethodGet, nil, "")
	if err != nil {
		return false, err
	}
	return status(resp), nil
}

// Login starts a login. It returns the QR code to scan, or nil when the
// session is already logged in.
func (c *Client) Login(ctx context.Context) (*models.QRCode, error) {
	resp, err := c.execute(ctx, "login", http.MethodGet, nil, "")
	if err != nil {
		return nil, err
	}

	data, ok := resp["data"].(map[string]any)
	if !ok {
		return nil, nil
	}

	qr, err := models.DecodeQRCode(data)
	if err != nil {
		return nil, err
	}
	return &qr, nil
}

// Logout ends the gateway session.
func (c *Client) Logout(ctx context.Context) (bool, error) {
	return c.statusCall(ctx, "logout")
}

// SetOnline sends an online presence.
func (c *Client) SetOnline(ctx context.Context) (bool, error) {
	return c.statusCall(ctx, "set-online")
}

// SetOffline sends an offline presence.
func (c *Client) SetOffline(ctx context.Context) (bool, error) {
	return c.statusCall(ctx, "set-offline")
}

// GetMessages fetches the messages of the chat with number. A zero limit
// lets the gateway decide how many to return.
func (c *Client) GetMessages(ctx context.Context, number string, limit int) ([]models.Message, error) {
	resp, err := c.execute(ctx, "get-chat/"+format.Number(number), http.MethodGet, Params{
		"limit": optional(limit),
	}, "")
	if err != nil {
		return nil, err
	}
	return models.DecodeMessages(list(resp, "messages"), c), nil
}

// SearchMessages searches messages, optionally inside one chat.
func (c *Client) SearchMessages(ctx context.Context, query string, opts models.SearchOptions) ([]models.Message, error) {
	resp, err := c.execute(ctx, "search-messages", http.MethodGet, Params{
		"query":  query,
		"number": optional(format.Number(opts.Number)),
		"limit":  optional(opts.Limit),
		"page":   optional(opts.Page),
	}, "")
	if err != nil {
		return nil, err
	}
	return models.DecodeMessages(list(resp, "messages"), c), nil
}

// GetChats lists the available chats.
func (c *Client) GetChats(ctx context.Context) ([]models.Chat, error) {
	resp, err := c.execute(ctx, "get-chats", http.MethodGet, nil, "")
	if err != nil {
		return nil, err
	}
	return models.DecodeChats(list(resp, "chats"), c), nil
}

// GetProfile fetches the profile of number. It returns nil when the gateway
// has no profile for it.
func (c *Client) GetProfile(ctx context.Context, number string) (*models.Profile, error) {
	resp, err := c.execute(ctx, "get-profile/"+format.Number(number), http.MethodGet, nil, "")
	if err != nil {
		return nil, err
	}
	return c.profile(resp)
}

// GetContacts lists the profiles of all contacts.
func (c *Client) GetContacts(ctx context.Context) ([]models.Profile, error) {
	resp, err := c.execute(ctx, "get-contacts", http.MethodGet, nil, "")
	if err != nil {
		return nil, err
	}
	return models.DecodeProfiles(list(resp, "contacts"), c), nil
}

// GetUser fetches the profile of the logged in account.
func (c *Client) GetUser(ctx context.Context) (*models.Profile, error) {
	resp, err := c.execute(ctx, "get-me", http.MethodGet, nil, "")
	if err != nil {
		return nil, err
	}
	return c.profile(resp)
}

// SendMessage sends a text message. replyTo, when set, is the ID of the
// message being answered.
func (c *Client) SendMessage(ctx context.Context, number, body, replyTo string) (bool, error) {
	resp, err := c.execute(ctx, "send-message/"+format.Number(number), http.MethodPost, Params{
		"message":  body,
		"reply_to": optional(replyTo),
	}, "")
	if err != nil {
		return false, err
	}
	return status(resp), nil
}

// SendLocation sends a location pin.
func (c *Client) SendLocation(ctx context.Context, number string, loc models.OutgoingLocation) (bool, error) {
	resp, err := c.execute(ctx, "send-location/"+format.Number(number), http.MethodPost, Params{
		"latitude":  loc.Latitude,
		"longitude": loc.Longitude,
		"address":   optional(loc.Address),
		"url":       optional(loc.URL),
		"reply_to":  optional(loc.ReplyTo),
	}, "")
	if err != nil {
		return false, err
	}
	return status(resp), nil
}

// SendMedia uploads file, a local path or a remote URL, and sends it.
func (c *Client) SendMedia(ctx context.Context, number, file string, opts models.MediaOptions) (bool, error) {
	if file == "" {
		return false, &media.DownloadError{Op: media.OpUnavailable, Err: fmt.Errorf("no file to send")}
	}

	resp, err := c.execute(ctx, "send-media/"+format.Number(number), http.MethodPost, Params{
		"message":     optional(opts.Caption),
		"view_once":   opts.ViewOnce,
		"as_document": opts.AsDocument,
		"as_voice":    opts.AsVoice,
		"as_gif":      opts.AsGif,
		"as_sticker":  opts.AsSticker,
		"reply_to":    optional(opts.ReplyTo),
	}, file)
	if err != nil {
		return false, err
	}
	return status(resp), nil
}

// SendSticker sends an image as a sticker.
func (c *Client) SendSticker(ctx context.Context, number, file, replyTo string) (bool, error) {
	return c.SendMedia(ctx, number, file, models.MediaOptions{AsSticker: true, ReplyTo: replyTo})
}

// SendVoice sends an audio file as a voice note.
func (c *Client) SendVoice(ctx context.Context, number, file string, viewOnce bool, replyTo string) (bool, error) {
	return c.SendMedia(ctx, number, file, models.MediaOptions{AsVoice: true, ViewOnce: viewOnce, ReplyTo: replyTo})
}

// Download saves a remote file into dir using the client's HTTP settings.
func (c *Client) Download(ctx context.Context, url, dir, filename string) (string, error) {
	return c.fetcher.Fetch(ctx, url, dir, filename)
}

func (c *Client) statusCall(ctx context.Context, path string) (bool, error) {
	resp, err := c.execute(ctx, path, http.MethodPost, nil, "")
	if err != nil {
		return false, err
	}
	return status(resp), nil
}

func (c *Client) profile(resp map[string]any) (*models.Profile, error) {
	raw, ok := resp["profile"].(map[string]any)
	if !ok {
		return nil, nil
	}

	p, err := models.DecodeProfile(raw, c)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func status(resp map[string]any) bool {
	ok, _ := resp["status"].(bool)
	return ok
}

func list(resp map[string]any, key string) []any {
	items, _ := resp[key].([]any)
	return items
}
