package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mindlyst/internal/models"
	"mindlyst/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Signup godoc
// @Summary Create an account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body models.SignupRequest true "credentials"
// @Success 201 {object} map[string]any
// @Router /auth/signup [post]
func (h *Handler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": response.MsgFieldsRequired})
		return
	}
	if req.Email == "" || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": response.MsgFieldsRequired})
		return
	}

	_, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrPasswordTooShort):
			c.JSON(http.StatusBadRequest, gin.H{"error": response.MsgPasswordTooShort})
		case errors.Is(err, ErrUsernameLength):
			c.JSON(http.StatusBadRequest, gin.H{"error": response.MsgUsernameLength})
		case errors.Is(err, ErrUsernameCharset):
			c.JSON(http.StatusBadRequest, gin.H{"error": response.MsgUsernameCharset})
		case errors.Is(err, ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": response.MsgEmailTaken})
		case errors.Is(err, ErrUsernameTaken):
			c.JSON(http.StatusConflict, gin.H{"error": response.MsgUsernameTaken})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": response.MsgInternal})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true})
}

// Login godoc
// @Summary Open a session
// @Tags auth
// @Accept json
// @Produce json
// @Param body body models.LoginRequest true "credentials"
// @Success 200 {object} map[string]any
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": response.MsgLoginRequired})
		return
	}
	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": response.MsgLoginRequired})
		return
	}

	// A login replaces any session the browser already holds.
	if existing, err := c.Cookie(SessionCookie); err == nil && existing != "" {
		if err := h.service.Logout(c.Request.Context(), existing); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": response.MsgInternal})
			return
		}
	}

	session, token, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": response.MsgCredentialsInvalid})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": response.MsgInternal})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, session.Token, int(SessionDuration.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

// Logout godoc
// @Summary Close the current session
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]any
// @Router /auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	if token, err := c.Cookie(SessionCookie); err == nil && token != "" {
		if err := h.service.Logout(c.Request.Context(), token); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": response.MsgInternal})
			return
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/signup", h.Signup)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
	}
}
