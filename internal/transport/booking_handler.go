package transport

import (
	"errors"
	"net/http"

	"qatrah-api/internal/middleware"
	"qatrah-api/internal/repository"
	"qatrah-api/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateBookingRequest represents the public booking submission payload
type CreateBookingRequest struct {
	ClientName     string     `json:"clientName" validate:"required"`
	Organization   string     `json:"organization"`
	Phone          string     `json:"phone" validate:"required"`
	Email          string     `json:"email" validate:"required,email"`
	RequestType    string     `json:"requestType" validate:"required,oneof=consultation_booking sample_collection quality_consultation maintenance_support chemical_supply"`
	RelatedProduct *uuid.UUID `json:"relatedProduct"`
	Details        string     `json:"details"`
}

// UpdateBookingStatusRequest represents the status transition payload
type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new in_progress completed cancelled"`
}

// BookingHandler handles HTTP requests for bookings
type BookingHandler struct {
	bookingService service.BookingService
	logger         *zap.Logger
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(bookingService service.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		logger:         logger,
	}
}

// RegisterRoutes registers the booking routes. Submission is public (behind
// the optional rate limiter); listing and status changes are admin-only.
func (h *BookingHandler) RegisterRoutes(r chi.Router, authMiddleware, publicLimiter func(http.Handler) http.Handler) {
	r.Route("/api/bookings", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if publicLimiter != nil {
				r.Use(publicLimiter)
			}
			r.Post("/", h.Create)
		})

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Get("/", h.List)
			r.Patch("/{id}/status", h.UpdateStatus)
		})
	})
}

// Create handles public booking submission
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Booking validation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, middleware.ValidationMessage(err))
		return
	}

	booking, err := h.bookingService.Create(r.Context(), service.BookingInput{
		ClientName:     req.ClientName,
		Organization:   req.Organization,
		Phone:          req.Phone,
		Email:          req.Email,
		RequestType:    req.RequestType,
		RelatedProduct: req.RelatedProduct,
		Details:        req.Details,
	})
	if err != nil {
		h.logger.Error("Booking creation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Failed to create booking")
		return
	}

	h.logger.Info("Booking created", zap.String("ticket_number", booking.TicketNumber))
	middleware.RespondWithData(w, http.StatusCreated, booking)
}

// List handles the admin booking overview
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookingService.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list bookings", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Failed to list bookings")
		return
	}

	middleware.RespondWithList(w, http.StatusOK, bookings, len(bookings))
}

// UpdateStatus handles a booking status transition
func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid booking ID")
		return
	}

	var req UpdateBookingStatusRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, middleware.ValidationMessage(err))
		return
	}

	booking, err := h.bookingService.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBookingNotFound):
			middleware.RespondWithError(w, http.StatusNotFound, "Booking not found")
		case errors.Is(err, service.ErrInvalidStatus):
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("Failed to update booking status", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "Failed to update booking status")
		}
		return
	}

	middleware.RespondWithData(w, http.StatusOK, booking)
}
