package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	workspaceapp "github.com/simpleaccounting/backend/internal/application/workspace"
	"github.com/simpleaccounting/backend/internal/infrastructure/config"
)

const refreshTokenCookie = "refresh_token"

// AuthHandler exposes registration, login and token refresh endpoints.
// The refresh token is mirrored into an httpOnly cookie so browser clients
// never have to store it themselves.
type AuthHandler struct {
	BaseHandler
	service   *workspaceapp.AuthService
	cookieCfg config.CookieConfig
	logger    *zap.Logger
}

func NewAuthHandler(service *workspaceapp.AuthService, cookieCfg config.CookieConfig, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{service: service, cookieCfg: cookieCfg, logger: logger}
}

// RegisterRoutes registers the auth routes on the given group.
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)
		auth.PUT("/password", h.ChangePassword)
		auth.GET("/me", h.Me)
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req workspaceapp.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.setRefreshCookie(c, resp.RefreshToken, resp.RefreshTokenExpiresAt)
	h.Created(c, resp)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req workspaceapp.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.setRefreshCookie(c, resp.RefreshToken, resp.RefreshTokenExpiresAt)
	h.Success(c, resp)
}

// Refresh handles POST /auth/refresh. The refresh token is taken from the
// request body, falling back to the cookie when the body omits it.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req workspaceapp.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		cookie, cookieErr := c.Cookie(refreshTokenCookie)
		if cookieErr != nil {
			h.BindingError(c, err)
			return
		}
		req.RefreshToken = cookie
	}

	resp, err := h.service.RefreshToken(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.setRefreshCookie(c, resp.RefreshToken, resp.RefreshTokenExpiresAt)
	h.Success(c, resp)
}

// Logout handles POST /auth/logout by clearing the refresh cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.clearRefreshCookie(c)
	h.NoContent(c)
}

// ChangePassword handles PUT /auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req workspaceapp.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), userID, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		h.Unauthorized(c, "Workspace context required")
		return
	}

	info, err := h.service.GetCurrentUser(c.Request.Context(), workspaceID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, info)
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, token string, expiresAt time.Time) {
	c.SetSameSite(h.sameSite())
	c.SetCookie(refreshTokenCookie, token, int(time.Until(expiresAt).Seconds()),
		h.cookiePath(), h.cookieCfg.Domain, h.cookieCfg.Secure, true)
}

func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(h.sameSite())
	c.SetCookie(refreshTokenCookie, "", -1,
		h.cookiePath(), h.cookieCfg.Domain, h.cookieCfg.Secure, true)
}

func (h *AuthHandler) cookiePath() string {
	if h.cookieCfg.Path != "" {
		return h.cookieCfg.Path
	}
	return "/"
}

func (h *AuthHandler) sameSite() http.SameSite {
	switch h.cookieCfg.SameSite {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
