package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spicelab/recipebox/internal/service"
	"github.com/spicelab/recipebox/internal/store"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/signup", h.Signup)
		auth.POST("/login", h.Login)
		auth.POST("/verify-token", h.VerifyToken)
	}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verifyTokenRequest struct {
	Token string `json:"token"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, user, err := h.auth.Signup(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrValidation):
			respondError(c, http.StatusBadRequest, "Email and password required")
		case errors.Is(err, store.ErrDuplicateEmail):
			respondError(c, http.StatusBadRequest, "Email already used")
		default:
			slog.Error("signup", "err", err)
			respondError(c, http.StatusInternalServerError, "Signup failed")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token, "user": user.Public()})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrValidation):
			respondError(c, http.StatusBadRequest, "Email and password required")
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, http.StatusBadRequest, "Invalid credentials")
		default:
			slog.Error("login", "err", err)
			respondError(c, http.StatusInternalServerError, "Login failed")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token, "user": user.Public()})
}

// VerifyToken always answers 200; an invalid token is `{success: false}`,
// not an error.
func (h *AuthHandler) VerifyToken(c *gin.Context) {
	var req verifyTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" {
		c.JSON(http.StatusOK, gin.H{"success": false})
		return
	}

	user, ok := h.auth.VerifyToken(c.Request.Context(), req.Token)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user.Public()})
}
