package handler

import (
	"github.com/gin-gonic/gin"

	"aarogya-ai/internal/app"
	"aarogya-ai/internal/transport/http/response"
)

type AdminHandler struct {
	adminService *app.AdminService
}

func NewAdminHandler(adminService *app.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// ListUsers returns every registered account for an admin caller.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	users, err := h.adminService.ListUsers(user)
	if err != nil {
		respondServiceError(c, err, "failed to list users")
		return
	}

	payload := make([]gin.H, 0, len(users))
	for i := range users {
		payload = append(payload, userPayload(&users[i]))
	}
	response.OK(c, gin.H{"users": payload})
}

// DeleteUser removes an account and revokes its sessions.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.adminService.DeleteUser(user, id); err != nil {
		respondServiceError(c, err, "failed to delete user")
		return
	}
	response.OK(c, gin.H{"deleted": id})
}
