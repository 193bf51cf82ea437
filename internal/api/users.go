package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/folioreads/folio-admin/internal/models"
)

// UserHandler serves admin-console user endpoints.
type UserHandler struct {
	svc UserService
	log *logrus.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(svc UserService, log *logrus.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: log}
}

// Get handles GET /api/v1/users/:uid.
func (h *UserHandler) Get(c *gin.Context) {
	uid := c.Param("uid")
	if err := validatePathID(uid); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	user, err := h.svc.GetUser(c.Request.Context(), uid)
	if err != nil {
		if respondDomainError(c, err) {
			return
		}

		h.log.WithError(err).Error("getting user")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateStatus handles PUT /api/v1/users/:uid/status.
func (h *UserHandler) UpdateStatus(c *gin.Context) {
	uid := c.Param("uid")
	if err := validatePathID(uid); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	var req models.UpdateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	actor, ok := getActor(c)
	if !ok {
		return
	}

	user, err := h.svc.UpdateUserStatus(c.Request.Context(), actor, uid, req)
	if err != nil {
		if respondDomainError(c, err) {
			return
		}

		h.log.WithError(err).Error("updating user status")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, user)
}

// AssignRole handles PUT /api/v1/users/:uid/role.
func (h *UserHandler) AssignRole(c *gin.Context) {
	uid := c.Param("uid")
	if err := validatePathID(uid); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	var req models.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	actor, ok := getActor(c)
	if !ok {
		return
	}

	user, err := h.svc.AssignAdminRole(c.Request.Context(), actor, uid, req)
	if err != nil {
		if respondDomainError(c, err) {
			return
		}

		h.log.WithError(err).Error("assigning role")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, user)
}

// RevokeRole handles DELETE /api/v1/users/:uid/role.
// The optional reason travels as a query parameter since DELETE bodies are
// unreliable across proxies.
func (h *UserHandler) RevokeRole(c *gin.Context) {
	uid := c.Param("uid")
	if err := validatePathID(uid); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	actor, ok := getActor(c)
	if !ok {
		return
	}

	user, err := h.svc.RevokeAdminRole(c.Request.Context(), actor, uid, c.Query("reason"))
	if err != nil {
		if respondDomainError(c, err) {
			return
		}

		h.log.WithError(err).Error("revoking role")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateAuthorStatus handles PUT /api/v1/users/:uid/author-status.
func (h *UserHandler) UpdateAuthorStatus(c *gin.Context) {
	uid := c.Param("uid")
	if err := validatePathID(uid); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	var req models.UpdateAuthorStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	actor, ok := getActor(c)
	if !ok {
		return
	}

	user, err := h.svc.UpdateAuthorStatus(c.Request.Context(), actor, uid, req)
	if err != nil {
		if respondDomainError(c, err) {
			return
		}

		h.log.WithError(err).Error("updating author status")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, user)
}
