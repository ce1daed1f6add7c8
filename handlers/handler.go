package handlers

import (
	"time"

	"github.com/doctorsportal/portal/internal/access"
	"github.com/doctorsportal/portal/internal/availability"
	"github.com/doctorsportal/portal/internal/bookings"
	"github.com/doctorsportal/portal/internal/doctors"
	"github.com/doctorsportal/portal/internal/users"
	"github.com/doctorsportal/portal/pkg/middleware"
	"github.com/gin-gonic/gin"
)

// Handler holds the services behind the portal API.
type Handler struct {
	verifier     middleware.Verifier
	gate         *access.Gate
	availability *availability.Engine
	bookings     *bookings.Service
	users        *users.Service
	doctors      *doctors.Service
	limiter      gin.HandlerFunc

	// timeout bounds the persistence work of one request
	timeout time.Duration
}

// Services groups the dependencies of NewHandler.
type Services struct {
	Verifier     middleware.Verifier
	Gate         *access.Gate
	Availability *availability.Engine
	Bookings     *bookings.Service
	Users        *users.Service
	Doctors      *doctors.Service

	// Limiter is optional. It is chained after authentication so it can key
	// verified callers by email.
	Limiter gin.HandlerFunc
}

func NewHandler(s Services, timeout time.Duration) *Handler {
	return &Handler{
		verifier:     s.Verifier,
		gate:         s.Gate,
		availability: s.Availability,
		bookings:     s.Bookings,
		users:        s.Users,
		doctors:      s.Doctors,
		limiter:      s.Limiter,
		timeout:      timeout,
	}
}

// Register mounts the portal routes. Routes that need a caller identity go
// through AuthMiddleware; admin routes additionally pass the role gate,
// always after verification. The limiter, when set, runs after
// authentication so verified callers are limited per email.
func (h *Handler) Register(r gin.IRouter) {
	var public, auth []gin.HandlerFunc
	auth = append(auth, middleware.AuthMiddleware(h.verifier))
	if h.limiter != nil {
		public = append(public, h.limiter)
		auth = append(auth, h.limiter)
	}
	admin := chain(auth, middleware.RequireAdmin(h.gate, h.timeout))

	r.GET("/appointment", chain(public, h.ListTreatments)...)
	r.GET("/available", chain(public, h.Available)...)

	r.POST("/booking", chain(public, h.CreateBooking)...)
	r.GET("/booking", chain(auth, h.MyBookings)...)

	r.GET("/users", chain(auth, h.ListUsers)...)
	r.PUT("/users/admin/:email", chain(admin, h.MakeAdmin)...)
	r.PUT("/users/:email", chain(public, h.UpsertUser)...)
	r.GET("/admin/:email", chain(auth, h.IsAdmin)...)

	r.GET("/doctors", chain(admin, h.ListDoctors)...)
	r.POST("/doctors", chain(admin, h.AddDoctor)...)
	r.DELETE("/doctors/:email", chain(admin, h.RemoveDoctor)...)
}

// chain returns a new slice so shared prefixes are never aliased.
func chain(prefix []gin.HandlerFunc, hs ...gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(prefix)+len(hs))
	out = append(out, prefix...)
	return append(out, hs...)
}
