package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"account-credential-service/internal/auth/service"
)

// Handler exposes the auth operations over HTTP JSON.
type Handler struct {
	svc    *service.AuthService
	logger *slog.Logger
}

// NewHandler returns an auth HTTP handler.
func NewHandler(svc *service.AuthService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{svc: svc, logger: logger}
}

// RegisterRoutes mounts the auth endpoints on the given group.
func (h *Handler) RegisterRoutes(g *gin.RouterGroup) {
	g.GET("/test", h.Test)
	g.POST("/signup", h.Signup)
	g.POST("/login", h.Login)
	g.POST("/logout", h.Logout)
	g.POST("/forgot-password", h.ForgotPassword)
	g.POST("/reset-password", h.ResetPassword)
}

type signupRequest struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	MobileNumber    string `json:"mobileNumber"`
	Gender          string `json:"gender"`
	Age             string `json:"age"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// Test reports that the auth routes are mounted.
func (h *Handler) Test(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Auth route is working",
		"timestamp": time.Now().UTC(),
	})
}

// Signup registers a new user and returns a session token.
func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badBody(c)
		return
	}
	res, err := h.svc.Signup(c.Request.Context(), service.SignupInput{
		FullName:        req.FullName,
		Email:           req.Email,
		MobileNumber:    req.MobileNumber,
		Gender:          req.Gender,
		DateOfBirth:     req.Age,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User created successfully",
		"token":   res.Token,
		"user":    res.User,
	})
}

// Login authenticates a user and returns a session token.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badBody(c)
		return
	}
	res, err := h.svc.Login(c.Request.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"token":   res.Token,
		"user":    res.User,
	})
}

// Logout acknowledges the request. Sessions are stateless bearer tokens;
// the client discards its token and the server keeps no revocation state.
func (h *Handler) Logout(c *gin.Context) {
	_ = h.svc.Logout(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out successfully",
	})
}

// ForgotPassword starts the reset-token exchange. The response is identical
// whether or not the email is registered, and never contains the token.
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badBody(c)
		return
	}
	if err := h.svc.ForgotPassword(c.Request.Context(), service.ForgotPasswordInput{Email: req.Email}); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "If that email is registered, a password reset link has been sent",
	})
}

// ResetPassword exchanges a reset token for a new password.
func (h *Handler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badBody(c)
		return
	}
	if err := h.svc.ResetPassword(c.Request.Context(), service.ResetPasswordInput{
		Token:    req.Token,
		Password: req.Password,
	}); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password has been reset successfully",
	})
}

func (h *Handler) badBody(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": "Invalid request body",
	})
}

// fail maps service errors to the HTTP taxonomy. Store and other internal
// failures become a generic 500 with no detail in the body.
func (h *Handler) fail(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Validation failed",
			"errors":  verr.Fields,
		})
	case errors.Is(err, service.ErrDuplicateIdentity):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "User already exists with this email or mobile number",
		})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Invalid email or password",
		})
	case errors.Is(err, service.ErrTokenInvalidOrExpired):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Reset token is invalid or expired",
		})
	default:
		h.logger.Error("auth operation failed",
			slog.String("path", c.FullPath()),
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Server error",
		})
	}
}
