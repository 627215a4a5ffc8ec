package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"+1 (555) 123-4567", "15551234567"},
		{"5511999998888", "5511999998888"},
		{"5511999998888@s.whatsapp.net", "5511999998888"},
		{"", ""},
		{"abc", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Number(tt.input))
		})
	}
}

func TestSnakeToCamel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"unread_messages", "unreadMessages"},
		{"is_readonly", "isReadonly"},
		{"profile_picture", "profilePicture"},
		{"is_READ_only", "isReadOnly"},
		{"id", "id"},
		{"unreadMessages", "unreadMessages"},
		{"", ""},
		{"trailing_", "trailing"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, SnakeToCamel(tt.input))
		})
	}
}

func TestSnakeToCamelIdempotent(t *testing.T) {
	for _, key := range []string{"contact_name", "is_enterprise", "view_once", "body"} {
		once := SnakeToCamel(key)
		assert.Equal(t, once, SnakeToCamel(once), key)
		assert.Equal(t, once, SnakeToCamel(SnakeToCamel(once)), key)
	}
}

func TestContains(t *testing.T) {
	assert.True(t, Contains("data:image/png;base64,AAAA", "base64,"))
	assert.False(t, Contains("AAAA", "base64,"))
}
