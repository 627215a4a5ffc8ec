package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	Path   string
	Query  string
	Body   string
	Header http.Header
}

// fakeGateway answers each path with the registered body and records the
// last request.
func fakeGateway(t *testing.T, routes map[string]string) (string, *recorded) {
	t.Helper()
	last := &recorded{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		last.Path = r.URL.Path
		last.Query = r.URL.RawQuery
		last.Body = string(body)
		last.Header = r.Header.Clone()

		resp, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"status": false, "error": "no route"}`)
			return
		}
		io.WriteString(w, resp)
	}))
	t.Cleanup(srv.Close)

	return srv.URL, last
}

func run(t *testing.T, host string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--host", host, "--token", "tok", "--log-level", "silent"}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestStatus(t *testing.T) {
	host, last := fakeGateway(t, map[string]string{"/check-login": `{"status": true}`})

	out, err := run(t, host, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in: true")
	assert.Equal(t, "Bearer tok", last.Header.Get("Authorization"))

	out, err = run(t, host, "status", "--json")
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, true, got["logged_in"])
}

func TestLoginAlreadyLoggedIn(t *testing.T) {
	host, _ := fakeGateway(t, map[string]string{"/login": `{"status": true}`})

	out, err := run(t, host, "login")
	require.NoError(t, err)
	assert.Equal(t, "Already logged in\n", out)
}

func TestLoginSavesQRCode(t *testing.T) {
	host, _ := fakeGateway(t, map[string]string{
		"/login": `{"status": true, "data": {"raw": "2@abc", "base64": "data:image/png;base64,aGVsbG8="}}`,
	})
	dir := t.TempDir()

	out, err := run(t, host, "login", "--save", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "QR code saved to "+dir)

	files, err := filepath.Glob(filepath.Join(dir, "wa_*.png"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestLoginDrawsQRCode(t *testing.T) {
	host, _ := fakeGateway(t, map[string]string{
		"/login": `{"status": true, "data": {"raw": "2@abc", "base64": ""}}`,
	})

	out, err := run(t, host, "login")
	require.NoError(t, err)
	assert.Contains(t, out, "Linked devices")
	assert.Greater(t, len(out), 200)
}

func TestChats(t *testing.T) {
	host, _ := fakeGateway(t, map[string]string{
		"/get-chats": `{"status": true, "chats": [{"id": "120363@g.us", "name": "Team", "is_group": true, "unread_messages": 2}]}`,
	})

	out, err := run(t, host, "chats")
	require.NoError(t, err)
	assert.Contains(t, out, "Team (2 unread)")
	assert.Contains(t, out, "group")
}

func TestMessages(t *testing.T) {
	host, last := fakeGateway(t, map[string]string{
		"/get-chat/15551234567": `{"status": true, "messages": [{"id": "1", "from": "15551234567", "body": "hi"}]}`,
	})

	out, err := run(t, host, "messages", "+1 555 123 4567", "--limit", "5")
	require.NoError(t, err)
	assert.Equal(t, "limit=5", last.Query)
	assert.Contains(t, out, "15551234567: hi")
}

func TestSearch(t *testing.T) {
	host, last := fakeGateway(t, map[string]string{
		"/search-messages": `{"status": true, "messages": []}`,
	})

	_, err := run(t, host, "search", "pizza", "tonight", "--number", "123")
	require.NoError(t, err)
	assert.Equal(t, "number=123&query=pizza+tonight", last.Query)
}

func TestProfileNotFound(t *testing.T) {
	host, _ := fakeGateway(t, map[string]string{"/get-profile/1": `{"status": true}`})

	_, err := run(t, host, "profile", "1")
	assert.EqualError(t, err, "no profile found for 1")
}

func TestSend(t *testing.T) {
	host, last := fakeGateway(t, map[string]string{"/send-message/15551234567": `{"status": true}`})

	out, err := run(t, host, "send", "15551234567", "hello", "world", "--reply-to", "m1")
	require.NoError(t, err)
	assert.Equal(t, "Message sent\n", out)
	assert.JSONEq(t, `{"message": "hello world", "reply_to": "m1"}`, last.Body)
}

func TestSendRejected(t *testing.T) {
	host, _ := fakeGateway(t, map[string]string{"/send-message/1": `{"status": false, "error": "bad number"}`})

	_, err := run(t, host, "send", "1", "hello")
	assert.ErrorContains(t, err, "bad number")
}

func TestSendLocationRequiresCoordinates(t *testing.T) {
	host, _ := fakeGateway(t, nil)

	_, err := run(t, host, "send-location", "1")
	assert.Error(t, err)
}

func TestSendLocation(t *testing.T) {
	host, last := fakeGateway(t, map[string]string{"/send-location/1": `{"status": true}`})

	out, err := run(t, host, "send-location", "1", "--lat", "1.5", "--lng", "2.5")
	require.NoError(t, err)
	assert.Equal(t, "Location sent\n", out)
	assert.JSONEq(t, `{"latitude": 1.5, "longitude": 2.5}`, last.Body)
}

func TestPresence(t *testing.T) {
	host, last := fakeGateway(t, map[string]string{
		"/set-online":  `{"status": true}`,
		"/set-offline": `{}`,
	})

	out, err := run(t, host, "online")
	require.NoError(t, err)
	assert.Equal(t, "Presence set to online\n", out)

	_, err = run(t, host, "offline")
	assert.EqualError(t, err, "gateway did not accept the request")
	assert.Equal(t, "/set-offline", last.Path)
}

func TestRejectsUnknownLogLevel(t *testing.T) {
	host, _ := fakeGateway(t, map[string]string{"/check-login": `{"status": true}`})

	_, err := run(t, host, "status", "--log-level", "chatty")
	assert.ErrorContains(t, err, `unknown log level "chatty"`)
}
