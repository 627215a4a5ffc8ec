package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mbenaiss/whatsapp-client/services"
)

// NewMCPServer creates a new MCP server exposing the gateway through service
func NewMCPServer(name string, version string, service services.Service) *server.MCPServer {
	s := server.NewMCPServer(
		name,
		version,
	)

	h := &handlers{service: service}

	checkLoginTool := mcp.NewTool("check_login",
		mcp.WithDescription("Check whether the WhatsApp session is logged in and return the account profile"),
	)

	getQRTool := mcp.NewTool("get_qr",
		mcp.WithDescription("Start a login and return the QR code to scan as a base64 PNG data URI"),
	)

	listChatsTool := mcp.NewTool("list_chats",
		mcp.WithDescription("Retrieve WhatsApp chats, optionally filtered by name or id"),
		mcp.WithString("query",
			mcp.Description("Optional search term to filter chats by name or id"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of chats to return (default 20)"),
		),
	)

	listMessagesTool := mcp.NewTool("list_messages",
		mcp.WithDescription("Retrieve the latest messages of a WhatsApp chat"),
		mcp.WithString("number",
			mcp.Required(),
			mcp.Description("Phone number of the chat, with country code"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of messages to return (default 20)"),
		),
	)

	searchMessagesTool := mcp.NewTool("search_messages",
		mcp.WithDescription("Search WhatsApp messages by content"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search term"),
		),
		mcp.WithString("number",
			mcp.Description("Optional phone number to restrict the search to one chat"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of messages to return"),
		),
		mcp.WithNumber("page",
			mcp.Description("Page number for pagination"),
		),
	)

	getProfileTool := mcp.NewTool("get_profile",
		mcp.WithDescription("Retrieve the WhatsApp profile of a phone number"),
		mcp.WithString("number",
			mcp.Required(),
			mcp.Description("Phone number with country code"),
		),
	)

	listContactsTool := mcp.NewTool("list_contacts",
		mcp.WithDescription("Retrieve WhatsApp contacts, optionally filtered by name or phone number"),
		mcp.WithString("query",
			mcp.Description("Optional search term for names or phone numbers"),
		),
	)

	sendMessageTool := mcp.NewTool("send_message",
		mcp.WithDescription("Send a WhatsApp text message"),
		mcp.WithString("recipient",
			mcp.Required(),
			mcp.Description("Phone number with country code; symbols are stripped"),
		),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("The text of the message to send"),
		),
		mcp.WithString("reply_to",
			mcp.Description("Optional id of the message to reply to"),
		),
	)

	sendLocationTool := mcp.NewTool("send_location",
		mcp.WithDescription("Send a location pin"),
		mcp.WithString("recipient",
			mcp.Required(),
			mcp.Description("Phone number with country code"),
		),
		mcp.WithNumber("latitude",
			mcp.Required(),
			mcp.Description("Latitude in decimal degrees"),
		),
		mcp.WithNumber("longitude",
			mcp.Required(),
			mcp.Description("Longitude in decimal degrees"),
		),
		mcp.WithString("address",
			mcp.Description("Optional address shown with the pin"),
		),
		mcp.WithString("url",
			mcp.Description("Optional URL attached to the pin"),
		),
	)

	sendMediaTool := mcp.NewTool("send_media",
		mcp.WithDescription("Send a local file or a remote URL as media"),
		mcp.WithString("recipient",
			mcp.Required(),
			mcp.Description("Phone number with country code"),
		),
		mcp.WithString("file",
			mcp.Required(),
			mcp.Description("Local path or http(s) URL of the file"),
		),
		mcp.WithString("caption",
			mcp.Description("Optional caption"),
		),
		mcp.WithBoolean("as_document",
			mcp.Description("Send as a document instead of inline media"),
		),
		mcp.WithBoolean("as_voice",
			mcp.Description("Send audio as a voice note"),
		),
		mcp.WithBoolean("as_sticker",
			mcp.Description("Send an image as a sticker"),
		),
		mcp.WithBoolean("view_once",
			mcp.Description("Allow the media to be viewed only once"),
		),
		mcp.WithBoolean("as_gif",
			mcp.Description("Play a video as a looping GIF"),
		),
		mcp.WithString("reply_to",
			mcp.Description("Optional ID of the message to reply to"),
		),
	)

	s.AddTool(checkLoginTool, h.checkLogin)
	s.AddTool(getQRTool, h.getQR)
	s.AddTool(listChatsTool, h.listChats)
	s.AddTool(listMessagesTool, h.listMessages)
	s.AddTool(searchMessagesTool, h.searchMessages)
	s.AddTool(getProfileTool, h.getProfile)
	s.AddTool(listContactsTool, h.listContacts)
	s.AddTool(sendMessageTool, h.sendMessage)
	s.AddTool(sendLocationTool, h.sendLocation)
	s.AddTool(sendMediaTool, h.sendMedia)

	return s
}

// StartMCPServer starts the MCP server
func StartMCPServer(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
