package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/naijatruths892-ship-it/Naija-truths/pkg/auth"
)

type SignInService interface {
	SignIn(ctx context.Context, email, password string) (*auth.Session, error)
}

type AuthHandler struct {
	signin   SignInService
	verifier auth.Verifier
}

func NewAuthHandler(signin SignInService, verifier auth.Verifier) *AuthHandler {
	return &AuthHandler{signin: signin, verifier: verifier}
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var in loginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	session, err := h.signin.SignIn(c.Request.Context(), in.Email, in.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if err != nil {
		slog.Error("error signing in", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Auth service error"})
		return
	}

	c.JSON(http.StatusOK, SessionResponse{
		UID:          session.UID,
		Email:        session.Email,
		IDToken:      session.IDToken,
		RefreshToken: session.RefreshToken,
		ExpiresIn:    session.ExpiresIn,
	})
}

// Session resolves the presented token to its claims, the
// "who am I right now" lookup the admin console uses on load.
func (h *AuthHandler) Session(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing bearer token"})
		return
	}

	claims, err := h.verifier.VerifyToken(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
		return
	}

	c.JSON(http.StatusOK, ClaimsResponse{
		UID:   claims.UID,
		Email: claims.Email,
		Admin: claims.Admin,
	})
}
