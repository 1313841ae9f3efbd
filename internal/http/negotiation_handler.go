package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"auto-bargain/internal/domain"
	"auto-bargain/internal/service"
)

// NegotiationHandler exposes the negotiation service over HTTP.
type NegotiationHandler struct {
	logger    *zap.Logger
	service   *service.NegotiationService
	tokens    *service.SessionTokenService
	limiter   service.SessionRateLimiter
	locations map[string]domain.LocationConfig
}

func NewNegotiationHandler(
	logger *zap.Logger,
	svc *service.NegotiationService,
	tokens *service.SessionTokenService,
	limiter service.SessionRateLimiter,
	locations map[string]domain.LocationConfig,
) *NegotiationHandler {
	return &NegotiationHandler{
		logger:    logger,
		service:   svc,
		tokens:    tokens,
		limiter:   limiter,
		locations: locations,
	}
}

// ListLocations handles GET /locations.
func (h *NegotiationHandler) ListLocations(c *gin.Context) {
	out := make([]gin.H, 0, len(h.locations))
	for _, loc := range h.locations {
		out = append(out, gin.H{
			"id":          loc.ID,
			"name":        loc.Name,
			"difficulty":  loc.Difficulty,
			"description": loc.Description,
		})
	}
	c.JSON(http.StatusOK, gin.H{"locations": out})
}

// StartSession handles POST /session.
func (h *NegotiationHandler) StartSession(c *gin.Context) {
	var req struct {
		Location string `json:"location" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid start session request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if h.limiter != nil && !h.limiter.Allow(c.ClientIP()) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many sessions, slow down"})
		return
	}

	info, err := h.service.StartSession(req.Location)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownLocation) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown location"})
			return
		}
		h.logger.Error("start session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start session"})
		return
	}

	token, err := h.tokens.Issue(info.ID)
	if err != nil {
		h.logger.Error("issue session token failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"session": info, "token": token})
}

// PostMessage handles POST /session/:id/message.
func (h *NegotiationHandler) PostMessage(c *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid message request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	result, err := h.service.SubmitUtterance(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		case errors.Is(err, domain.ErrSessionEnded):
			c.JSON(http.StatusConflict, gin.H{"error": "session already ended"})
		case errors.Is(err, domain.ErrEmptyUtterance):
			c.JSON(http.StatusBadRequest, gin.H{"error": "say something to the driver"})
		default:
			h.logger.Error("submit utterance failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not process message"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"turn": result})
}

// GetSession handles GET /session/:id.
func (h *NegotiationHandler) GetSession(c *gin.Context) {
	snapshot, err := h.service.Snapshot(c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		h.logger.Error("session snapshot failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": snapshot})
}

// ResetSession handles POST /session/:id/reset.
func (h *NegotiationHandler) ResetSession(c *gin.Context) {
	info, err := h.service.ResetSession(c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		h.logger.Error("reset session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not reset session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": info})
}
