package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/doctorsportal/portal/internal/apperr"
	"github.com/doctorsportal/portal/internal/models"
	"github.com/doctorsportal/portal/pkg/middleware"
	"github.com/gin-gonic/gin"
)

func (h *Handler) ListUsers(c *gin.Context) {
	ctx, cancel := middleware.WithTimeout(c, h.timeout)
	defer cancel()
	list, err := h.users.List(ctx)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// UpsertUser stores the profile for :email and returns a fresh credential
// for it. This is how a client signs in.
func (h *Handler) UpsertUser(c *gin.Context) {
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil && !errors.Is(err, io.EOF) {
		middleware.AbortWithError(c, fmt.Errorf("%w: %v", apperr.ErrInvalidInput, err))
		return
	}
	ctx, cancel := middleware.WithTimeout(c, h.timeout)
	defer cancel()
	login, err := h.users.Upsert(ctx, c.Param("email"), fields)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": login.User, "token": login.Token, "expiresAt": login.ExpiresAt})
}

// MakeAdmin promotes :email. The route is behind the role gate.
func (h *Handler) MakeAdmin(c *gin.Context) {
	email := c.Param("email")
	ctx, cancel := middleware.WithTimeout(c, h.timeout)
	defer cancel()
	if err := h.users.PromoteToAdmin(ctx, email); err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": gin.H{"email": email, "role": models.RoleAdmin}})
}

// IsAdmin answers {"admin": bool} for :email.
func (h *Handler) IsAdmin(c *gin.Context) {
	ctx, cancel := middleware.WithTimeout(c, h.timeout)
	defer cancel()
	ok, err := h.gate.IsAdmin(ctx, c.Param("email"))
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"admin": ok})
}
