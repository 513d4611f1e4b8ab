package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/mood-diary/internal/application"
	"github.com/oksasatya/mood-diary/pkg/helpers"
	"github.com/oksasatya/mood-diary/pkg/response"
)

type AuthHandler struct {
	Service *application.AuthService
	Cookies *helpers.CookieManager
	Cache   *ReadCache
	Logger  *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, cookies *helpers.CookieManager, cache *ReadCache, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Service: svc, Cookies: cookies, Cache: cache, Logger: logger}
}

type registerRequest struct {
	Username string `json:"username" binding:"required,username"`
	Password string `json:"password" binding:"required,password"`
	Name     string `json:"name" binding:"required,displayname"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required,username"`
	Password string `json:"password" binding:"required,password"`
}

type loginResponse struct {
	RefreshToken string `json:"refresh_token"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type refreshResponse struct {
	AccessToken string `json:"access_token"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required,password"`
	NewPassword string `json:"new_password" binding:"required,password"`
}

type changeProfileRequest struct {
	Name string `json:"name" binding:"required,displayname"`
}

// Register POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.Service.Register(c.Request.Context(), req.Username, req.Password, req.Name)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, p)
}

// Login POST /auth/login sets the access cookie and returns the refresh token in the body.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}
	pair, err := h.Service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	h.Cookies.SetAccess(c, pair.AccessToken, pair.AccessTokenExpiry)
	response.JSON(c, http.StatusOK, loginResponse{RefreshToken: pair.RefreshToken})
}

// Refresh POST /auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if !bindJSON(c, &req) {
		return
	}
	access, exp, err := h.Service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	h.Cookies.SetAccess(c, access, exp)
	response.JSON(c, http.StatusOK, refreshResponse{AccessToken: access})
}

// Validate POST /auth/validate; the auth middleware has already done the work.
func (h *AuthHandler) Validate(c *gin.Context) {
	c.Status(http.StatusOK)
}

// Logout POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	response.Message(c, http.StatusOK, "logged out")
}

// GetProfile GET /auth/profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	uid := userID(c)
	ctx := c.Request.Context()

	var cached application.Profile
	if getCached(ctx, h.Cache, profileKey(uid), &cached) {
		response.JSON(c, http.StatusOK, cached)
		return
	}
	p, err := h.Service.GetProfile(ctx, uid)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	h.Cache.Set(ctx, profileKey(uid), p)
	response.JSON(c, http.StatusOK, p)
}

// UpdateProfile PUT /auth/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req changeProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	uid := userID(c)
	p, err := h.Service.UpdateProfile(c.Request.Context(), uid, req.Name)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	h.Cache.Invalidate(c.Request.Context(), []string{profileKey(uid)})
	response.JSON(c, http.StatusOK, p)
}

// ChangePassword PUT /auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	uid := userID(c)
	if err := h.Service.ChangePassword(c.Request.Context(), uid, req.OldPassword, req.NewPassword); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	h.Cache.Invalidate(c.Request.Context(), []string{profileKey(uid)})
	response.Message(c, http.StatusOK, "password changed")
}
