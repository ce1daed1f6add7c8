package handlers

import (
	"fmt"
	"net/http"

	"github.com/doctorsportal/portal/internal/apperr"
	"github.com/doctorsportal/portal/internal/models"
	"github.com/doctorsportal/portal/pkg/middleware"
	"github.com/gin-gonic/gin"
)

func (h *Handler) ListDoctors(c *gin.Context) {
	ctx, cancel := middleware.WithTimeout(c, h.timeout)
	defer cancel()
	list, err := h.doctors.List(ctx)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) AddDoctor(c *gin.Context) {
	var d models.Doctor
	if err := c.ShouldBindJSON(&d); err != nil {
		middleware.AbortWithError(c, fmt.Errorf("%w: %v", apperr.ErrInvalidInput, err))
		return
	}
	ctx, cancel := middleware.WithTimeout(c, h.timeout)
	defer cancel()
	added, err := h.doctors.Add(ctx, d)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, added)
}

func (h *Handler) RemoveDoctor(c *gin.Context) {
	ctx, cancel := middleware.WithTimeout(c, h.timeout)
	defer cancel()
	if err := h.doctors.Remove(ctx, c.Param("email")); err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
