package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/mbenaiss/whatsapp-client/logging"
	"github.com/mbenaiss/whatsapp-client/metrics"
	"github.com/mbenaiss/whatsapp-client/models"
	"github.com/mbenaiss/whatsapp-client/whatsapp"
)

// QRSize is the edge length in pixels of rendered login QR codes.
const QRSize = 256

// ErrNotAccepted is returned when the gateway answers a send without a
// positive status.
var ErrNotAccepted = errors.New("gateway did not accept the request")

// Client is the part of *whatsapp.Client the service relies on.
type Client interface {
	CheckLogin(ctx context.Context) (bool, error)
	Login(ctx context.Context) (*models.QRCode, error)
	Logout(ctx context.Context) (bool, error)
	GetUser(ctx context.Context) (*models.Profile, error)
	GetChats(ctx context.Context) ([]models.Chat, error)
	GetMessages(ctx context.Context, number string, limit int) ([]models.Message, error)
	SearchMessages(ctx context.Context, query string, opts models.SearchOptions) ([]models.Message, error)
	GetProfile(ctx context.Context, number string) (*models.Profile, error)
	GetContacts(ctx context.Context) ([]models.Profile, error)
	SendMessage(ctx context.Context, number, body, replyTo string) (bool, error)
	SendLocation(ctx context.Context, number string, loc models.OutgoingLocation) (bool, error)
	SendMedia(ctx context.Context, number, file string, opts models.MediaOptions) (bool, error)
	ConsumeWebhook(body []byte) (*models.Message, error)
}

var _ Client = (*whatsapp.Client)(nil)

// MessageHandler receives messages delivered through the webhook.
type MessageHandler func(ctx context.Context, msg models.Message)

type Service interface {
	GetStatus(ctx context.Context) (models.Status, error)
	GetQR(ctx context.Context) ([]byte, error)
	Logout(ctx context.Context) error
	SendMessage(ctx context.Context, recipient, message, replyTo string) error
	SendLocation(ctx context.Context, recipient string, loc models.OutgoingLocation) error
	SendMedia(ctx context.Context, recipient, file string, opts models.MediaOptions) error
	GetChats(ctx context.Context) ([]models.Chat, error)
	GetMessages(ctx context.Context, number string, limit int) ([]models.Message, error)
	SearchMessages(ctx context.Context, query string, opts models.SearchOptions) ([]models.Message, error)
	GetProfile(ctx context.Context, number string) (*models.Profile, error)
	GetContacts(ctx context.Context) ([]models.Profile, error)
	HandleWebhook(ctx context.Context, body []byte) (*models.Message, error)
}

type service struct {
	client   Client
	log      *logging.Logger
	handlers []MessageHandler
}

// NewService creates a new Service backed by the given gateway client.
// Handlers are called in order for every message received by webhook.
func NewService(client Client, log *logging.Logger, handlers ...MessageHandler) Service {
	if log == nil {
		log = logging.Nop()
	}
	return &service{client: client, log: log.Sub("service"), handlers: handlers}
}

// GetStatus reports the login state and, when logged in, the account profile.
func (s *service) GetStatus(ctx context.Context) (models.Status, error) {
	loggedIn, err := s.client.CheckLogin(ctx)
	if err != nil {
		return models.Status{}, fmt.Errorf("failed to check login: %w", err)
	}

	status := models.Status{LoggedIn: loggedIn}
	if !loggedIn {
		return status, nil
	}

	user, err := s.client.GetUser(ctx)
	if err != nil {
		return models.Status{}, fmt.Errorf("failed to get user: %w", err)
	}
	status.User = user

	return status, nil
}

// GetQR returns the login QR code as a PNG image, or nil when the session is
// already logged in.
func (s *service) GetQR(ctx context.Context) ([]byte, error) {
	qr, err := s.client.Login(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get QR code: %w", err)
	}

	if qr == nil {
		s.log.Info().Msg("WhatsApp is already connected")
		return nil, nil
	}

	if qr.Raw != "" {
		img, err := qr.PNG(QRSize)
		if err != nil {
			return nil, fmt.Errorf("failed to generate QR code image: %w", err)
		}
		return img, nil
	}

	img, err := qr.Blob()
	if err != nil {
		return nil, fmt.Errorf("failed to decode QR code image: %w", err)
	}
	return img, nil
}

// Logout ends the gateway session.
func (s *service) Logout(ctx context.Context) error {
	return accepted(s.client.Logout(ctx))
}

// SendMessage sends a text message to the specified recipient
func (s *service) SendMessage(ctx context.Context, recipient, message, replyTo string) error {
	return accepted(s.client.SendMessage(ctx, recipient, message, replyTo))
}

// SendLocation sends a location pin to the specified recipient
func (s *service) SendLocation(ctx context.Context, recipient string, loc models.OutgoingLocation) error {
	return accepted(s.client.SendLocation(ctx, recipient, loc))
}

// SendMedia sends a local or remote file to the specified recipient
func (s *service) SendMedia(ctx context.Context, recipient, file string, opts models.MediaOptions) error {
	return accepted(s.client.SendMedia(ctx, recipient, file, opts))
}

// GetChats retrieves all available chats
func (s *service) GetChats(ctx context.Context) ([]models.Chat, error) {
	chats, err := s.client.GetChats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chats: %w", err)
	}

	return chats, nil
}

// GetMessages retrieves messages from a specific chat with the given limit
func (s *service) GetMessages(ctx context.Context, number string, limit int) ([]models.Message, error) {
	messages, err := s.client.GetMessages(ctx, number, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}

	return messages, nil
}

func (s *service) SearchMessages(ctx context.Context, query string, opts models.SearchOptions) ([]models.Message, error) {
	messages, err := s.client.SearchMessages(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search messages: %w", err)
	}

	return messages, nil
}

func (s *service) GetProfile(ctx context.Context, number string) (*models.Profile, error) {
	profile, err := s.client.GetProfile(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return profile, nil
}

func (s *service) GetContacts(ctx context.Context) ([]models.Profile, error) {
	contacts, err := s.client.GetContacts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get contacts: %w", err)
	}

	return contacts, nil
}

// HandleWebhook counts the event and dispatches an inbound message to the
// registered handlers. It returns nil when the body carries no message.
func (s *service) HandleWebhook(ctx context.Context, body []byte) (*models.Message, error) {
	evt, _ := whatsapp.ParseWebhook(body)
	metrics.IncWebhookEvent(evt.Type)

	msg, err := s.client.ConsumeWebhook(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode webhook message: %w", err)
	}
	if msg == nil {
		return nil, nil
	}

	s.log.Debug().Str("id", msg.ID).Str("from", msg.From).Msg("message received")
	for _, h := range s.handlers {
		h(ctx, *msg)
	}

	return msg, nil
}

func accepted(ok bool, err error) error {
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotAccepted
	}
	return nil
}
