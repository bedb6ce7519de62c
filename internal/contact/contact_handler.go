package contact

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mindlyst/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type mutateContactRequest struct {
	ContactUserID string `json:"contactUserId"`
	Action        string `json:"action"`
}

type deleteContactRequest struct {
	ContactID string `json:"contactId"`
}

type resolveRequestRequest struct {
	RequestID string `json:"requestId"`
	Action    string `json:"action"`
}

// Index godoc
// @Summary List contacts, search users or list pending requests
// @Tags contacts
// @Produce json
// @Param search query string false "username substring"
// @Param type query string false "set to requests for pending requests"
// @Success 200 {object} map[string]any
// @Router /contacts [get]
func (h *Handler) Index(c *gin.Context) {
	userID := c.GetString("user_id")

	if c.Query("type") == "requests" {
		requests, err := h.service.PendingRequests(c.Request.Context(), userID)
		if err != nil {
			h.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"requests": requests})
		return
	}

	if search := c.Query("search"); search != "" {
		users, err := h.service.SearchUsers(c.Request.Context(), search, userID)
		if err != nil {
			h.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"users": users})
		return
	}

	contacts, err := h.service.Contacts(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contacts": contacts})
}

// Create godoc
// @Summary Send a contact request, or add a contact directly (legacy)
// @Tags contacts
// @Accept json
// @Produce json
// @Param body body mutateContactRequest true "target user"
// @Success 201 {object} map[string]any
// @Router /contacts [post]
func (h *Handler) Create(c *gin.Context) {
	userID := c.GetString("user_id")

	var req mutateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ContactUserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": response.MsgContactIDRequired})
		return
	}

	if req.Action == "request" {
		request, err := h.service.CreateRequest(c.Request.Context(), userID, req.ContactUserID)
		if err != nil {
			h.writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"request": request, "message": response.MsgRequestSent})
		return
	}

	// Default path: direct insert, kept for pre-workflow clients.
	contact, err := h.service.AddContact(c.Request.Context(), userID, req.ContactUserID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	contacts, err := h.service.Contacts(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"contact": contact, "contacts": contacts})
}

// Delete godoc
// @Summary Remove an owned contact edge
// @Tags contacts
// @Accept json
// @Produce json
// @Param body body deleteContactRequest true "edge id"
// @Success 200 {object} map[string]any
// @Router /contacts [delete]
func (h *Handler) Delete(c *gin.Context) {
	userID := c.GetString("user_id")

	var req deleteContactRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ContactID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": response.MsgContactIDRequired})
		return
	}

	removed, err := h.service.RemoveContact(c.Request.Context(), userID, req.ContactID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": response.MsgContactNotFound})
		return
	}

	contacts, err := h.service.Contacts(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "contacts": contacts})
}

// ListRequests godoc
// @Summary List pending contact requests addressed to the caller
// @Tags contacts
// @Produce json
// @Success 200 {object} map[string]any
// @Router /contacts/requests [get]
func (h *Handler) ListRequests(c *gin.Context) {
	userID := c.GetString("user_id")

	requests, err := h.service.PendingRequests(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// ResolveRequest godoc
// @Summary Accept or reject a pending contact request
// @Tags contacts
// @Accept json
// @Produce json
// @Param body body resolveRequestRequest true "request id and action"
// @Success 200 {object} map[string]any
// @Router /contacts/requests [post]
func (h *Handler) ResolveRequest(c *gin.Context) {
	userID := c.GetString("user_id")

	var req resolveRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RequestID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": response.MsgRequestIDRequired})
		return
	}

	switch req.Action {
	case "accept":
		contact, err := h.service.Accept(c.Request.Context(), req.RequestID, userID)
		if err != nil {
			h.writeError(c, err)
			return
		}
		contacts, err := h.service.Contacts(c.Request.Context(), userID)
		if err != nil {
			h.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "contact": contact, "contacts": contacts})
	case "reject":
		if err := h.service.Reject(c.Request.Context(), req.RequestID, userID); err != nil {
			h.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": response.MsgRequestRejected})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": response.MsgInvalidAction})
	}
}

// Search godoc
// @Summary Look up one user by exact username
// @Tags contacts
// @Produce json
// @Param username query string true "username"
// @Success 200 {object} map[string]any
// @Router /contacts/search [get]
func (h *Handler) Search(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": response.MsgUsernameRequired})
		return
	}

	u, err := h.service.FindUserByUsername(c.Request.Context(), username)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if u == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": response.MsgUserNotFound})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrSelfContact):
		c.JSON(http.StatusBadRequest, gin.H{"error": response.MsgSelfContact})
	case errors.Is(err, ErrContactExists):
		c.JSON(http.StatusConflict, gin.H{"error": response.MsgContactExists})
	case errors.Is(err, ErrRequestPending):
		c.JSON(http.StatusConflict, gin.H{"error": response.MsgRequestPending})
	case errors.Is(err, ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": response.MsgUserNotFound})
	case errors.Is(err, ErrRequestNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": response.MsgRequestNotFound})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": response.MsgInternal})
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	contacts := r.Group("/contacts")
	{
		contacts.GET("", h.Index)
		contacts.POST("", h.Create)
		contacts.DELETE("", h.Delete)
		contacts.GET("/requests", h.ListRequests)
		contacts.POST("/requests", h.ResolveRequest)
		contacts.GET("/search", h.Search)
	}
}
