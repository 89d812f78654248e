package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/avolkov/flightops/internal/domain"
	"github.com/avolkov/flightops/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	FlightID int64 `json:"flight_id"`
	Seats    int   `json:"seats"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.DELETE("/:id", h.cancel)
}

func (h *BookingHandler) RegisterAdmin(router *gin.RouterGroup) {
	router.GET("", h.listAll)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.Create(c.Request.Context(), currentUserID(c), req.FlightID, req.Seats)
	if err != nil {
		c.JSON(bookingErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *BookingHandler) list(c *gin.Context) {
	bookings, err := h.service.ListByUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) get(c *gin.Context) {
	found, err := h.service.Get(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		c.JSON(bookingErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, found)
}

func (h *BookingHandler) cancel(c *gin.Context) {
	if err := h.service.Cancel(c.Request.Context(), c.Param("id"), currentUserID(c)); err != nil {
		c.JSON(bookingErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) listAll(c *gin.Context) {
	var filter domain.BookingFilter
	if v := c.Query("flight_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid flight_id"})
			return
		}
		filter.FlightID = id
	}
	if v := c.Query("user_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
			return
		}
		filter.UserID = id
	}

	bookings, err := h.service.ListAll(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func bookingErrorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInsufficientSeats), errors.Is(err, domain.ErrDuplicateBooking):
		return http.StatusConflict
	case errors.Is(err, domain.ErrFlightNotFound), errors.Is(err, domain.ErrBookingNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidSeatCount):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
