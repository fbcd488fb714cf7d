package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drashti611/gowear-frontend/internal/http/middleware"
	"github.com/drashti611/gowear-frontend/internal/modules/auth"
	"github.com/drashti611/gowear-frontend/internal/shared/apperr"
)

type AuthHandler struct {
	Auth *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{Auth: svc}
}

type emailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type otpRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,numeric,min=4,max=8"`
}

func identityJSON(id auth.Identity) gin.H {
	return gin.H{
		"userId":  id.UserID,
		"role":    id.Role,
		"email":   id.Email,
		"isAdmin": id.IsAdmin(),
	}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.Credentials
	if !bindJSON(c, &req) {
		return
	}
	ctx, ns := sessionOf(c)
	id, err := h.Auth.Login(ctx, ns, req)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "user": identityJSON(id)})
}

// Logout handles POST /api/auth/logout. The session cookie survives; its
// identity and collections do not.
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx, ns := sessionOf(c)
	if err := h.Auth.Sessions().Logout(ctx, ns); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// RequestOTP handles POST /api/auth/verify-email.
func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var req emailRequest
	if !bindJSON(c, &req) {
		return
	}
	msg, err := h.Auth.Client().RequestOTP(c.Request.Context(), req.Email)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": orDefault(msg, "OTP sent")})
}

// VerifyOTP handles POST /api/auth/verify-otp.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req otpRequest
	if !bindJSON(c, &req) {
		return
	}
	msg, err := h.Auth.Client().VerifyOTP(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": orDefault(msg, "Email verified")})
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req auth.Registration
	if !bindJSON(c, &req) {
		return
	}
	msg, err := h.Auth.Client().Register(c.Request.Context(), req)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": orDefault(msg, "Registration successful")})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	id, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"loggedIn": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"loggedIn": true, "user": identityJSON(id)})
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
