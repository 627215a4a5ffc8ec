package mcp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mbenaiss/whatsapp-client/format"
	"github.com/mbenaiss/whatsapp-client/models"
	"github.com/mbenaiss/whatsapp-client/services"
)

const defaultLimit = 20

type handlers struct {
	service services.Service
}

func (h *handlers) checkLogin(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status, err := h.service.GetStatus(ctx)
	if err != nil {
		return nil, err
	}

	return jsonResult(status)
}

func (h *handlers) getQR(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	img, err := h.service.GetQR(ctx)
	if err != nil {
		return nil, err
	}

	if img == nil {
		return mcp.NewToolResultText("Already connected to WhatsApp"), nil
	}

	return mcp.NewToolResultText("data:image/png;base64," + base64.StdEncoding.EncodeToString(img)), nil
}

func (h *handlers) listChats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var query string
	limit := defaultLimit

	if q, ok := request.Params.Arguments["query"].(string); ok {
		query = strings.ToLower(q)
	}

	if l, ok := request.Params.Arguments["limit"].(float64); ok && l > 0 {
		limit = int(l)
	}

	chats, err := h.service.GetChats(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Chat, 0, len(chats))
	for _, chat := range chats {
		if query != "" && !format.Contains(strings.ToLower(chat.Name), query) && !format.Contains(chat.ID, query) {
			continue
		}
		filtered = append(filtered, chat)
		if len(filtered) == limit {
			break
		}
	}

	return jsonResult(filtered)
}

func (h *handlers) listMessages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	number, ok := request.Params.Arguments["number"].(string)
	if !ok {
		return nil, errors.New("number must be a string")
	}

	limit := defaultLimit
	if l, ok := request.Params.Arguments["limit"].(float64); ok && l > 0 {
		limit = int(l)
	}

	messages, err := h.service.GetMessages(ctx, number, limit)
	if err != nil {
		return nil, err
	}

	return jsonResult(messages)
}

func (h *handlers) searchMessages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, ok := request.Params.Arguments["query"].(string)
	if !ok {
		return nil, errors.New("query must be a string")
	}

	var opts models.SearchOptions
	if n, ok := request.Params.Arguments["number"].(string); ok {
		opts.Number = n
	}

	if l, ok := request.Params.Arguments["limit"].(float64); ok {
		opts.Limit = int(l)
	}

	if p, ok := request.Params.Arguments["page"].(float64); ok {
		opts.Page = int(p)
	}

	messages, err := h.service.SearchMessages(ctx, query, opts)
	if err != nil {
		return nil, err
	}

	return jsonResult(messages)
}

func (h *handlers) getProfile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	number, ok := request.Params.Arguments["number"].(string)
	if !ok {
		return nil, errors.New("number must be a string")
	}

	profile, err := h.service.GetProfile(ctx, number)
	if err != nil {
		return nil, err
	}

	if profile == nil {
		return mcp.NewToolResultText("No profile found for " + number), nil
	}

	return jsonResult(profile)
}

func (h *handlers) listContacts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var query string
	if q, ok := request.Params.Arguments["query"].(string); ok {
		query = strings.ToLower(q)
	}

	contacts, err := h.service.GetContacts(ctx)
	if err != nil {
		return nil, err
	}

	if query == "" {
		return jsonResult(contacts)
	}

	digits := format.Number(query)
	filtered := make([]models.Profile, 0, len(contacts))
	for _, c := range contacts {
		switch {
		case format.Contains(strings.ToLower(c.Name), query),
			format.Contains(strings.ToLower(c.ContactName), query),
			digits != "" && format.Contains(c.Number, digits):
			filtered = append(filtered, c)
		}
	}

	return jsonResult(filtered)
}

func (h *handlers) sendMessage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	recipient, ok := request.Params.Arguments["recipient"].(string)
	if !ok {
		return nil, errors.New("recipient must be a string")
	}

	message, ok := request.Params.Arguments["message"].(string)
	if !ok {
		return nil, errors.New("message must be a string")
	}

	replyTo, _ := request.Params.Arguments["reply_to"].(string)

	if err := h.service.SendMessage(ctx, recipient, message, replyTo); err != nil {
		return nil, err
	}

	return mcp.NewToolResultText("Message sent successfully"), nil
}

func (h *handlers) sendLocation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	recipient, ok := request.Params.Arguments["recipient"].(string)
	if !ok {
		return nil, errors.New("recipient must be a string")
	}

	lat, ok := request.Params.Arguments["latitude"].(float64)
	if !ok {
		return nil, errors.New("latitude must be a number")
	}

	lng, ok := request.Params.Arguments["longitude"].(float64)
	if !ok {
		return nil, errors.New("longitude must be a number")
	}

	loc := models.OutgoingLocation{Latitude: lat, Longitude: lng}
	loc.Address, _ = request.Params.Arguments["address"].(string)
	loc.URL, _ = request.Params.Arguments["url"].(string)

	if err := h.service.SendLocation(ctx, recipient, loc); err != nil {
		return nil, err
	}

	return mcp.NewToolResultText("Location sent successfully"), nil
}

func (h *handlers) sendMedia(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	recipient, ok := request.Params.Arguments["recipient"].(string)
	if !ok {
		return nil, errors.New("recipient must be a string")
	}

	file, ok := request.Params.Arguments["file"].(string)
	if !ok {
		return nil, errors.New("file must be a string")
	}

	var opts models.MediaOptions
	opts.Caption, _ = request.Params.Arguments["caption"].(string)
	opts.AsDocument, _ = request.Params.Arguments["as_document"].(bool)
	opts.AsVoice, _ = request.Params.Arguments["as_voice"].(bool)
	opts.AsSticker, _ = request.Params.Arguments["as_sticker"].(bool)
	opts.ViewOnce, _ = request.Params.Arguments["view_once"].(bool)
	opts.AsGif, _ = request.Params.Arguments["as_gif"].(bool)
	opts.ReplyTo, _ = request.Params.Arguments["reply_to"].(string)

	if err := h.service.SendMedia(ctx, recipient, file, opts); err != nil {
		return nil, err
	}

	return mcp.NewToolResultText("Media sent successfully"), nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	return mcp.NewToolResultText(string(data)), nil
}
