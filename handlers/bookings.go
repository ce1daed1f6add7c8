package handlers

import (
	"fmt"
	"net/http"

	"github.com/doctorsportal/portal/internal/access"
	"github.com/doctorsportal/portal/internal/apperr"
	"github.com/doctorsportal/portal/internal/bookings"
	"github.com/doctorsportal/portal/internal/models"
	"github.com/doctorsportal/portal/pkg/middleware"
	"github.com/gin-gonic/gin"
)

// ListTreatments returns the catalogue as id/name pairs.
func (h *Handler) ListTreatments(c *gin.Context) {
	ctx, cancel := middleware.WithTimeout(c, h.timeout)
	defer cancel()
	names, err := h.availability.Names(ctx)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, names)
}

// Available returns every treatment with the slots still open on ?date=.
// The date is matched literally; an absent or unknown date has no
// bookings, so everything is open.
func (h *Handler) Available(c *gin.Context) {
	ctx, cancel := middleware.WithTimeout(c, h.timeout)
	defer cancel()
	list, err := h.availability.Compute(ctx, c.Query("date"))
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// CreateBooking admits a booking. A duplicate is a normal answer:
// {"success": false, "booking": <existing>}.
func (h *Handler) CreateBooking(c *gin.Context) {
	var candidate models.Booking
	if err := c.ShouldBindJSON(&candidate); err != nil {
		middleware.AbortWithError(c, fmt.Errorf("%w: %v", apperr.ErrInvalidInput, err))
		return
	}
	ctx, cancel := middleware.WithTimeout(c, h.timeout)
	defer cancel()
	res, err := h.bookings.Admit(ctx, candidate)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	if res.Outcome == bookings.Duplicate {
		c.JSON(http.StatusOK, gin.H{"success": false, "booking": res.Booking})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"result":  gin.H{"insertedId": res.Booking.ID},
		"booking": res.Booking,
	})
}

// MyBookings lists ?patientEmail='s bookings, which must be the caller's own.
func (h *Handler) MyBookings(c *gin.Context) {
	patient := c.Query("patientEmail")
	if err := access.Owns(patient, middleware.VerifiedEmail(c)); err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	ctx, cancel := middleware.WithTimeout(c, h.timeout)
	defer cancel()
	list, err := h.bookings.ListForPatient(ctx, patient)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
