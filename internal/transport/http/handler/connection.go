package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aarogya-ai/internal/app"
	"aarogya-ai/internal/transport/http/response"
)

type ConnectionHandler struct {
	connectionService *app.ConnectionService
}

func NewConnectionHandler(connectionService *app.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{connectionService: connectionService}
}

type ConnectionRequestBody struct {
	DoctorEmail string `json:"doctor_email" binding:"required,email"`
}

// Request lets a patient ask a doctor for a connection.
func (h *ConnectionHandler) Request(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req ConnectionRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request body")
		return
	}

	cr, err := h.connectionService.Request(user, req.DoctorEmail)
	if err != nil {
		respondServiceError(c, err, "failed to create connection request")
		return
	}
	c.JSON(http.StatusCreated, response.APIResponse{
		Code:    response.CodeOK,
		Message: "connection request sent",
		Data:    gin.H{"request": cr},
	})
}

// ListPending returns the calling doctor's pending connection requests.
func (h *ConnectionHandler) ListPending(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	requests, err := h.connectionService.ListPending(user)
	if err != nil {
		respondServiceError(c, err, "failed to list connection requests")
		return
	}
	response.OK(c, gin.H{"requests": requests})
}

// Accept marks a pending request to the calling doctor as accepted.
func (h *ConnectionHandler) Accept(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	cr, err := h.connectionService.Accept(user, id)
	if err != nil {
		respondServiceError(c, err, "failed to accept connection request")
		return
	}
	response.OK(c, gin.H{"request": cr})
}
