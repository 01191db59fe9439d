package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ntarasov/equiptrack/pkg/clients/backend"
)

const sessionCookie = "session_token"

// AuthHandler manages the operator's login state. The backend token lives in
// an HttpOnly cookie on the browser side and inside the shared client on the
// server side; the middleware re-seats it from the cookie after a restart.
type AuthHandler struct {
	client *backend.Client
	logger *zap.Logger
}

func NewAuthHandler(client *backend.Client, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{client: client, logger: logger}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "username and password are required"})
		return
	}

	if err := h.client.Login(c.Request.Context(), req.Username, req.Password); err != nil {
		fail(c, h.logger, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, h.client.Token(), 0, "/", "", false, true)
	h.logger.Info("operator logged in", zap.String("username", req.Username))
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.client.ClearToken()
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.client.CurrentUser(c.Request.Context())
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// RequireAuth gates the API routes. A client with no live token tries the
// cookie first so sessions survive a server restart.
func (h *AuthHandler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.client.Token() != "" {
			c.Next()
			return
		}

		cookie, err := c.Cookie(sessionCookie)
		if err == nil && cookie != "" {
			if err := h.client.RestoreToken(cookie); err == nil {
				c.Next()
				return
			}
			c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
	}
}

func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}
