package models

import (
	"bytes"
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mbenaiss/whatsapp-client/media"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mau.fi/whatsmeow/types"
)

func TestMessageReplyQuotesMessage(t *testing.T) {
	gw := new(gatewayMock)
	gw.On("SendMessage", mock.Anything, "5511999998888", "thanks", "MSG1").Return(true, nil).Once()

	msg, err := DecodeMessage(map[string]any{"id": "MSG1", "from": "5511999998888"}, gw)
	require.NoError(t, err)

	ok, err := msg.Reply(context.Background(), "thanks")
	require.NoError(t, err)
	assert.True(t, ok)
	gw.AssertExpectations(t)
}

func TestMessageProfiles(t *testing.T) {
	gw := new(gatewayMock)
	gw.On("GetProfile", mock.Anything, "111").Return(&Profile{Number: "111"}, nil).Once()
	gw.On("GetProfile", mock.Anything, "222").Return(nil, nil).Once()

	msg, err := DecodeMessage(map[string]any{"from": "111", "to": "222"}, gw)
	require.NoError(t, err)

	from, err := msg.GetFromProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "111", from.Number)

	to, err := msg.GetToProfile(context.Background())
	require.NoError(t, err)
	assert.Nil(t, to)
	gw.AssertExpectations(t)
}

func TestMessageString(t *testing.T) {
	assert.Equal(t, "hi", Message{Body: "hi"}.String())
}

func TestUnboundEntity(t *testing.T) {
	_, err := Message{From: "1"}.Reply(context.Background(), "x")
	assert.ErrorIs(t, err, ErrUnbound)

	_, err = Chat{ID: "1"}.GetMessages(context.Background(), 0)
	assert.ErrorIs(t, err, ErrUnbound)

	_, err = Profile{Number: "1"}.SendMessage(context.Background(), "x")
	assert.ErrorIs(t, err, ErrUnbound)
}

func TestChatDelegates(t *testing.T) {
	gw := new(gatewayMock)
	ctx := context.Background()

	gw.On("GetMessages", mock.Anything, "123", 10).Return([]Message{{ID: "a"}}, nil).Once()
	gw.On("SearchMessages", mock.Anything, "pizza", SearchOptions{Number: "123", Limit: 5, Page: 2}).Return([]Message{}, nil).Once()
	gw.On("SendMessage", mock.Anything, "123", "hello", "").Return(true, nil).Once()
	gw.On("SendLocation", mock.Anything, "123", OutgoingLocation{Latitude: 1.5, Longitude: 2.5}).Return(true, nil).Once()
	gw.On("SendMedia", mock.Anything, "123", "/tmp/s.webp", MediaOptions{AsSticker: true}).Return(true, nil).Once()
	gw.On("SendMedia", mock.Anything, "123", "/tmp/v.ogg", MediaOptions{AsVoice: true, ViewOnce: true}).Return(true, nil).Once()
	gw.On("GetProfile", mock.Anything, "123").Return(&Profile{Number: "123"}, nil).Once()

	chat, err := DecodeChat(map[string]any{"id": "123"}, gw)
	require.NoError(t, err)

	msgs, err := chat.GetMessages(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, msgs, 1)

	_, err = chat.SearchMessages(ctx, "pizza", 5, 2)
	require.NoError(t, err)

	_, err = chat.SendMessage(ctx, "hello")
	require.NoError(t, err)

	_, err = chat.SendLocation(ctx, OutgoingLocation{Latitude: 1.5, Longitude: 2.5})
	require.NoError(t, err)

	_, err = chat.SendSticker(ctx, "/tmp/s.webp")
	require.NoError(t, err)

	_, err = chat.SendVoice(ctx, "/tmp/v.ogg", true)
	require.NoError(t, err)

	p, err := chat.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "123", p.Number)

	gw.AssertExpectations(t)
}

func TestProfileDelegatesWithFormattedNumber(t *testing.T) {
	gw := new(gatewayMock)
	gw.On("SendMessage", mock.Anything, "15551234567", "hey", "").Return(true, nil).Once()
	gw.On("GetMessages", mock.Anything, "15551234567", 0).Return([]Message{}, nil).Once()

	p, err := DecodeProfile(map[string]any{"number": "+1 (555) 123-4567"}, gw)
	require.NoError(t, err)

	_, err = p.SendMessage(context.Background(), "hey")
	require.NoError(t, err)
	_, err = p.GetMessages(context.Background(), 0)
	require.NoError(t, err)

	gw.AssertExpectations(t)
}

func TestProfileDownloadPicture(t *testing.T) {
	gw := new(gatewayMock)
	gw.On("Download", mock.Anything, "https://cdn.example.com/p.jpg", "/tmp", "").Return("/tmp/p.jpg", nil).Once()

	p, err := DecodeProfile(map[string]any{"number": "1", "profile_picture": "https://cdn.example.com/p.jpg"}, gw)
	require.NoError(t, err)

	path, err := p.DownloadProfilePicture(context.Background(), "/tmp", "")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/p.jpg", path)
	gw.AssertExpectations(t)
}

func TestProfileDownloadPictureUnavailable(t *testing.T) {
	_, err := Profile{Number: "1"}.DownloadProfilePicture(context.Background(), "/tmp", "")

	var dlErr *media.DownloadError
	require.ErrorAs(t, err, &dlErr)
	assert.Equal(t, media.OpUnavailable, dlErr.Op)
	assert.Contains(t, err.Error(), "profile picture is not available for user 1")
}

func TestMediaDownload(t *testing.T) {
	gw := new(gatewayMock)
	gw.On("Download", mock.Anything, "https://cdn.example.com/a.jpg", "/tmp", "b.jpg").Return("/tmp/b.jpg", nil).Once()

	msg, err := DecodeMessage(map[string]any{"media": map[string]any{"url": "https://cdn.example.com/a.jpg"}}, gw)
	require.NoError(t, err)
	require.NotNil(t, msg.Media)

	path, err := msg.Media.Download(context.Background(), "/tmp", "b.jpg")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/b.jpg", path)
	gw.AssertExpectations(t)
}

func TestMediaDownloadWithoutURL(t *testing.T) {
	m := &Media{Type: "image/png"}
	_, err := m.Download(context.Background(), "/tmp", "")

	var dlErr *media.DownloadError
	require.ErrorAs(t, err, &dlErr)
	assert.Equal(t, media.OpUnavailable, dlErr.Op)
}

func TestChatJID(t *testing.T) {
	jid, err := Chat{ID: "5511999998888"}.JID()
	require.NoError(t, err)
	assert.Equal(t, types.DefaultUserServer, jid.Server)
	assert.Equal(t, "5511999998888", jid.User)

	jid, err = Chat{ID: "120363000000000000", IsGroup: true}.JID()
	require.NoError(t, err)
	assert.Equal(t, types.GroupServer, jid.Server)

	jid, err = Chat{ID: "5511999998888@s.whatsapp.net"}.JID()
	require.NoError(t, err)
	assert.Equal(t, "5511999998888", jid.User)
}

func TestProfileJID(t *testing.T) {
	jid := Profile{Number: "+55 11 99999-8888"}.JID()
	assert.Equal(t, "5511999998888@s.whatsapp.net", jid.String())
}

func TestLocationLinks(t *testing.T) {
	loc := Location{Latitude: -23.5505, Longitude: -46.6333}

	assert.Equal(t, "https://www.google.com/maps?q=-23.5505,-46.6333", loc.GoogleMaps())
	assert.Equal(t, "https://maps.apple.com/?ll=-23.5505,-46.6333", loc.AppleMaps())
	assert.Equal(t, "https://www.waze.com/ul?ll=-23.5505,-46.6333&navigate=yes", loc.Waze())
}

func TestQRCodeBlob(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}
	encoded := base64.StdEncoding.EncodeToString(png)

	plain, err := QRCode{Base64: encoded}.Blob()
	require.NoError(t, err)
	assert.Equal(t, png, plain)

	prefixed, err := QRCode{Base64: "data:image/png;base64," + encoded}.Blob()
	require.NoError(t, err)
	assert.Equal(t, png, prefixed)

	_, err = QRCode{Base64: "%%%"}.Blob()
	assert.Error(t, err)
}

func TestQRCodeSave(t *testing.T) {
	qr := QRCode{Base64: base64.StdEncoding.EncodeToString([]byte("image"))}
	dir := t.TempDir()

	path, err := qr.Save(dir, "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(path), "wa_"))
	assert.True(t, strings.HasSuffix(path, ".png"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("image"), data)

	path, err = qr.Save(dir, "login.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "login.png"), path)
}

func TestQRCodePNG(t *testing.T) {
	data, err := QRCode{Raw: "2@abc,def,ghi"}.PNG(128)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte{0x89, 'P', 'N', 'G'}))

	_, err = QRCode{}.PNG(128)
	assert.Error(t, err)
}

func TestQRCodePrintTerminal(t *testing.T) {
	var buf bytes.Buffer
	QRCode{Raw: "2@abc,def,ghi"}.PrintTerminal(&buf)
	assert.NotEmpty(t, buf.String())
}

func TestDecodeQRCode(t *testing.T) {
	qr, err := DecodeQRCode(map[string]any{"raw": "2@abc", "base64": "data:image/png;base64,AAAA"})
	require.NoError(t, err)
	assert.Equal(t, "2@abc", qr.Raw)
	assert.Equal(t, "data:image/png;base64,AAAA", qr.String())
}
