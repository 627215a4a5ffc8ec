package api

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const defaultMessageLimit = 50

func (s *Server) handleWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Unable to read request body",
		})
		return
	}

	msg, err := s.service.HandleWebhook(c.Request.Context(), body)
	if err != nil {
		s.log.Warn().Err(err).Msg("webhook message could not be decoded")
	}

	resp := Response{Success: true}
	if msg != nil {
		resp.Data = msg
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleQR(c *gin.Context) {
	qrCode, err := s.service.GetQR(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Message: fmt.Sprintf("Failed to get QR code: %v", err),
		})
		return
	}

	// If qrCode is empty, it means we're already connected
	if qrCode == nil {
		c.JSON(http.StatusOK, Response{
			Success: true,
			Message: "Already connected to WhatsApp",
		})
		return
	}

	c.Data(http.StatusOK, "image/png", qrCode)
}

func (s *Server) handleStatus(c *gin.Context) {
	status, err := s.service.GetStatus(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Message: fmt.Sprintf("Failed to get status: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    status,
	})
}

func (s *Server) handleLogout(c *gin.Context) {
	if err := s.service.Logout(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Message: fmt.Sprintf("Failed to logout: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "Logged out",
	})
}

func (s *Server) handleSendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	if req.Recipient == "" || req.Message == "" {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Recipient and message are required",
		})
		return
	}

	err := s.service.SendMessage(c.Request.Context(), req.Recipient, req.Message, req.ReplyTo)
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Message: fmt.Sprintf("Failed to send message: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "Message sent successfully",
	})
}

func (s *Server) handleGetChats(c *gin.Context) {
	chats, err := s.service.GetChats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Message: fmt.Sprintf("Failed to get chats: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    chats,
	})
}

func (s *Server) handleGetMessages(c *gin.Context) {
	number := c.Query("number")
	if number == "" {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Missing number parameter",
		})
		return
	}

	limit := defaultMessageLimit
	if limitStr := c.Query("limit"); limitStr != "" {
		if n, err := strconv.Atoi(limitStr); err == nil && n > 0 {
			limit = n
		}
	}

	messages, err := s.service.GetMessages(c.Request.Context(), number, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Message: fmt.Sprintf("Failed to get messages: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    messages,
	})
}
