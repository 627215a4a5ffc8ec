package models

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type gatewayMock struct {
	mock.Mock
}

func (m *gatewayMock) GetProfile(ctx context.Context, number string) (*Profile, error) {
	args := m.Called(ctx, number)
	p, _ := args.Get(0).(*Profile)
	return p, args.Error(1)
}

func (m *gatewayMock) GetMessages(ctx context.Context, number string, limit int) ([]Message, error) {
	args := m.Called(ctx, number, limit)
	msgs, _ := args.Get(0).([]Message)
	return msgs, args.Error(1)
}

func (m *gatewayMock) SearchMessages(ctx context.Context, query string, opts SearchOptions) ([]Message, error) {
	args := m.Called(ctx, query, opts)
	msgs, _ := args.Get(0).([]Message)
	return msgs, args.Error(1)
}

func (m *gatewayMock) SendMessage(ctx context.Context, number, body, replyTo string) (bool, error) {
	args := m.Called(ctx, number, body, replyTo)
	return args.Bool(0), args.Error(1)
}

func (m *gatewayMock) SendLocation(ctx context.Context, number string, loc OutgoingLocation) (bool, error) {
	args := m.Called(ctx, number, loc)
	return args.Bool(0), args.Error(1)
}

func (m *gatewayMock) SendMedia(ctx context.Context, number, file string, opts MediaOptions) (bool, error) {
	args := m.Called(ctx, number, file, opts)
	return args.Bool(0), args.Error(1)
}

func (m *gatewayMock) Download(ctx context.Context, url, dir, filename string) (string, error) {
	args := m.Called(ctx, url, dir, filename)
	return args.String(0), args.Error(1)
}
