package bookings

import (
	"errors"
	"net/http"
	"strings"

	"eventplanner/internal/policy"
	"eventplanner/internal/shared/middleware"
	"eventplanner/internal/shared/utils/response"
	"eventplanner/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service      Service
	queryService QueryService
}

func NewController(service Service, queryService QueryService) *Controller {
	return &Controller{
		service:      service,
		queryService: queryService,
	}
}

// CreateBooking godoc
// @Summary Book a vendor service for an event
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateBookingRequest true "Booking details"
// @Success 201 {object} response.StandardApiResponse{data=Booking}
// @Failure 400 {object} response.StandardApiResponse
// @Failure 403 {object} response.StandardApiResponse
// @Failure 404 {object} response.StandardApiResponse
// @Router /bookings [post]
func (c *Controller) CreateBooking(ctx *gin.Context) {
	principal, ok := c.principal(ctx)
	if !ok {
		return
	}

	var req CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	booking, err := c.service.CreateBooking(ctx.Request.Context(), principal, &req)
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Booking created successfully", booking, nil)
}

// ListBookings godoc
// @Summary List bookings visible to the caller
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Param status query string false "Status filter or all"
// @Param event_id query string false "Event ID"
// @Param vendor_id query string false "Vendor ID"
// @Success 200 {object} response.StandardApiResponse{data=BookingListResponse}
// @Failure 400 {object} response.StandardApiResponse
// @Router /bookings [get]
func (c *Controller) ListBookings(ctx *gin.Context) {
	principal, ok := c.principal(ctx)
	if !ok {
		return
	}

	var query BookingListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	result, err := c.queryService.ListBookings(ctx.Request.Context(), principal, &query)
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bookings retrieved successfully", result, nil)
}

// GetBookingStats godoc
// @Summary Aggregate booking counts for the caller's scope
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.StandardApiResponse{data=Stats}
// @Router /bookings/stats/overview [get]
func (c *Controller) GetBookingStats(ctx *gin.Context) {
	principal, ok := c.principal(ctx)
	if !ok {
		return
	}

	stats, err := c.queryService.GetBookingStats(ctx.Request.Context(), principal)
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking statistics retrieved successfully", stats, nil)
}

// GetBooking godoc
// @Summary Get a booking with its event, vendor and service details
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} response.StandardApiResponse{data=BookingDetails}
// @Failure 403 {object} response.StandardApiResponse
// @Failure 404 {object} response.StandardApiResponse
// @Router /bookings/{id} [get]
func (c *Controller) GetBooking(ctx *gin.Context) {
	principal, ok := c.principal(ctx)
	if !ok {
		return
	}
	bookingID, ok := parseBookingID(ctx)
	if !ok {
		return
	}

	booking, err := c.queryService.GetBooking(ctx.Request.Context(), principal, bookingID)
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking retrieved successfully", booking, nil)
}

// UpdateBookingStatus godoc
// @Summary Move a booking through its lifecycle
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body UpdateStatusRequest true "Target status"
// @Success 200 {object} response.StandardApiResponse{data=Booking}
// @Failure 400 {object} response.StandardApiResponse
// @Failure 403 {object} response.StandardApiResponse
// @Failure 404 {object} response.StandardApiResponse
// @Router /bookings/{id}/status [patch]
func (c *Controller) UpdateBookingStatus(ctx *gin.Context) {
	principal, ok := c.principal(ctx)
	if !ok {
		return
	}
	bookingID, ok := parseBookingID(ctx)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	booking, err := c.service.UpdateBookingStatus(ctx.Request.Context(), principal, bookingID, &req)
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking status updated successfully", booking, nil)
}

// UpdateBooking godoc
// @Summary Edit quantity, times or notes of a pending booking
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body UpdateBookingRequest true "Fields to change"
// @Success 200 {object} response.StandardApiResponse{data=Booking}
// @Failure 400 {object} response.StandardApiResponse
// @Failure 403 {object} response.StandardApiResponse
// @Failure 404 {object} response.StandardApiResponse
// @Router /bookings/{id} [put]
func (c *Controller) UpdateBooking(ctx *gin.Context) {
	principal, ok := c.principal(ctx)
	if !ok {
		return
	}
	bookingID, ok := parseBookingID(ctx)
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	booking, err := c.service.UpdateBookingDetails(ctx.Request.Context(), principal, bookingID, &req)
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking updated successfully", booking, nil)
}

// DeleteBooking godoc
// @Summary Delete a pending booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} response.StandardApiResponse
// @Failure 400 {object} response.StandardApiResponse
// @Failure 403 {object} response.StandardApiResponse
// @Failure 404 {object} response.StandardApiResponse
// @Router /bookings/{id} [delete]
func (c *Controller) DeleteBooking(ctx *gin.Context) {
	principal, ok := c.principal(ctx)
	if !ok {
		return
	}
	bookingID, ok := parseBookingID(ctx)
	if !ok {
		return
	}

	if err := c.service.DeleteBooking(ctx.Request.Context(), principal, bookingID); err != nil {
		c.handleError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking deleted successfully", nil, nil)
}

func (c *Controller) principal(ctx *gin.Context) (policy.Principal, bool) {
	principal, ok := middleware.CurrentPrincipal(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return policy.Principal{}, false
	}
	return principal, true
}

func parseBookingID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return uuid.Nil, false
	}
	return id, true
}

// handleError maps engine and query errors onto the response envelope
func (c *Controller) handleError(ctx *gin.Context, err error) {
	var (
		validationErrs ValidationErrors
		notFound       *NotFoundError
		capacity       *CapacityExceededError
		transition     *TransitionError
	)

	switch {
	case errors.As(err, &validationErrs):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, validationErrs)
	case errors.As(err, &notFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, capitalize(notFound.Error()), nil, nil)
	case errors.Is(err, ErrForbidden):
		response.RespondJSON(ctx, "error", http.StatusForbidden, "Access denied", nil, nil)
	case errors.As(err, &capacity):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, capitalize(capacity.Error()), nil, gin.H{
			"max_capacity": capacity.Limit,
		})
	case errors.As(err, &transition):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, capitalize(transition.Error()), nil, gin.H{
			"current_status":   transition.From,
			"requested_status": transition.To,
		})
	case errors.Is(err, ErrSchedulingConflict):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Time slot conflicts with an existing booking", nil, nil)
	case errors.Is(err, ErrInvalidState):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Booking can only be modified while pending", nil, nil)
	case errors.Is(err, ErrInvalidTimeRange):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "End time must be after start time", nil, nil)
	case errors.Is(err, ErrUnavailable):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, capitalize(err.Error()), nil, nil)
	default:
		logger.GetDefault().LogHTTPError(ctx, err, http.StatusInternalServerError)
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Internal server error", nil, nil)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
