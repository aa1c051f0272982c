package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aarogya-ai/internal/app"
	"aarogya-ai/internal/transport/http/response"
)

type ChatHandler struct {
	chatService *app.ChatService
}

type ChatRequest struct {
	Query  string `json:"query"`
	Action string `json:"action" binding:"required,oneof=ask summarize"`
}

func NewChatHandler(chatService *app.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func (h *ChatHandler) Chat(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	message, err := h.chatService.Chat(c.Request.Context(), app.ChatInput{
		OwnerEmail: user.Email,
		UserType:   user.UserType,
		Query:      req.Query,
		Action:     req.Action,
	})
	if err != nil {
		respondServiceError(c, err, "chat failed")
		return
	}

	response.OK(c, message)
}

func (h *ChatHandler) History(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	history, err := h.chatService.History(c.Request.Context(), user.Email)
	if err != nil {
		respondServiceError(c, err, "get history failed")
		return
	}
	response.OK(c, history)
}
