package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/folioreads/folio-admin/internal/models"
)

// SettingHandler serves versioned-configuration endpoints.
type SettingHandler struct {
	svc SettingService
	log *logrus.Logger
}

// NewSettingHandler creates a SettingHandler.
func NewSettingHandler(svc SettingService, log *logrus.Logger) *SettingHandler {
	return &SettingHandler{svc: svc, log: log}
}

// List handles GET /api/v1/settings.
func (h *SettingHandler) List(c *gin.Context) {
	category := c.Query("category")
	limit := parseInt(c.DefaultQuery("limit", "50"), 50)
	offset := parseOffset(c.DefaultQuery("offset", "0"))

	settings, hasMore, err := h.svc.ListSettings(c.Request.Context(), category, limit, offset)
	if err != nil {
		if respondDomainError(c, err) {
			return
		}

		h.log.WithError(err).Error("listing settings")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings, "has_more": hasMore})
}

// Get handles GET /api/v1/settings/:key.
func (h *SettingHandler) Get(c *gin.Context) {
	key := c.Param("key")
	if err := validatePathID(key); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	setting, err := h.svc.GetSetting(c.Request.Context(), key)
	if err != nil {
		if respondDomainError(c, err) {
			return
		}

		h.log.WithError(err).Error("getting setting")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, setting)
}

// Update handles PUT /api/v1/settings/:key.
func (h *SettingHandler) Update(c *gin.Context) {
	key := c.Param("key")
	if err := validatePathID(key); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	var req models.UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	actor, ok := getActor(c)
	if !ok {
		return
	}

	change, err := h.svc.UpdateSetting(c.Request.Context(), actor, key, req)
	if err != nil {
		if respondDomainError(c, err) {
			return
		}

		h.log.WithError(err).Error("updating setting")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, change)
}

// Rollback handles POST /api/v1/settings/:key/rollback.
func (h *SettingHandler) Rollback(c *gin.Context) {
	key := c.Param("key")
	if err := validatePathID(key); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	var req models.RollbackSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	actor, ok := getActor(c)
	if !ok {
		return
	}

	change, err := h.svc.RollbackSetting(c.Request.Context(), actor, key, req)
	if err != nil {
		if respondDomainError(c, err) {
			return
		}

		h.log.WithError(err).Error("rolling back setting")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, change)
}

// History handles GET /api/v1/settings/:key/history.
func (h *SettingHandler) History(c *gin.Context) {
	key := c.Param("key")
	if err := validatePathID(key); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	limit := parseInt(c.DefaultQuery("limit", "50"), 50)
	offset := parseOffset(c.DefaultQuery("offset", "0"))

	changes, hasMore, err := h.svc.ListSettingHistory(c.Request.Context(), key, limit, offset)
	if err != nil {
		if respondDomainError(c, err) {
			return
		}

		h.log.WithError(err).Error("listing setting history")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, gin.H{"history": changes, "has_more": hasMore})
}
