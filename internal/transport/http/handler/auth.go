package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aarogya-ai/internal/app"
	"aarogya-ai/internal/model"
	"aarogya-ai/internal/transport/http/middleware"
	"aarogya-ai/internal/transport/http/response"
)

type AuthHandler struct {
	authService  *app.AuthService
	cookieMaxAge int
}

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email,max=128"`
	FirstName string `json:"first_name" binding:"required,max=64"`
	LastName  string `json:"last_name" binding:"required,max=64"`
	UserType  string `json:"user_type" binding:"required,oneof=patient doctor admin"`
	Password  string `json:"password" binding:"required,min=8,max=128"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=128"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

func NewAuthHandler(authService *app.AuthService, cookieMaxAge int) *AuthHandler {
	return &AuthHandler{authService: authService, cookieMaxAge: cookieMaxAge}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	result, err := h.authService.Register(app.RegisterInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		UserType:  req.UserType,
		Password:  req.Password,
	})
	if err != nil {
		respondServiceError(c, err, "register failed")
		return
	}

	h.setSessionCookie(c, result.Token)
	response.OK(c, userPayload(result.User))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	result, err := h.authService.Login(app.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondServiceError(c, err, "login failed")
		return
	}

	h.setSessionCookie(c, result.Token)
	response.OK(c, userPayload(result.User))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(middleware.SessionCookieName)
	if err := h.authService.Logout(token); err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "logout failed")
		return
	}
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	response.OK(c, gin.H{"logged_out": true})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	response.OK(c, userPayload(user))
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(middleware.SessionCookieName, token, h.cookieMaxAge, "/", "", false, true)
}

func userPayload(user *model.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"user_type":  user.UserType,
	}
}
