package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/avolkov/flightops/internal/domain"
	"github.com/avolkov/flightops/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type flightRequest struct {
	DepartureAirport string    `json:"departure_airport" binding:"required"`
	ArrivalAirport   string    `json:"arrival_airport" binding:"required"`
	DepartureTime    time.Time `json:"departure_time" binding:"required"`
	ArrivalTime      time.Time `json:"arrival_time" binding:"required"`
	Airline          string    `json:"airline" binding:"required"`
	Status           string    `json:"status"`
	TotalSeats       int       `json:"total_seats" binding:"required"`
	PriceCents       int64     `json:"price_cents" binding:"required"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
}

func (h *FlightHandler) RegisterAdmin(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.remove)
	router.GET("/stats", h.stats)
}

func (h *FlightHandler) list(c *gin.Context) {
	filter := domain.FlightFilter{
		DepartureAirport: c.Query("departure_airport"),
		ArrivalAirport:   c.Query("arrival_airport"),
		Date:             c.Query("date"),
	}

	list, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(flightErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) create(c *gin.Context) {
	var req flightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flight := req.toFlight()
	if err := h.service.Create(c.Request.Context(), flight); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, flight)
}

func (h *FlightHandler) update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req flightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flight := req.toFlight()
	flight.ID = id
	if err := h.service.Update(c.Request.Context(), flight); err != nil {
		c.JSON(flightErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) remove(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		c.JSON(flightErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FlightHandler) stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (r *flightRequest) toFlight() *domain.Flight {
	return &domain.Flight{
		DepartureAirport: r.DepartureAirport,
		ArrivalAirport:   r.ArrivalAirport,
		DepartureTime:    r.DepartureTime,
		ArrivalTime:      r.ArrivalTime,
		Airline:          r.Airline,
		Status:           domain.FlightStatus(r.Status),
		TotalSeats:       r.TotalSeats,
		PriceCents:       r.PriceCents,
	}
}

func parseID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func flightErrorStatus(err error) int {
	if errors.Is(err, domain.ErrFlightNotFound) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}
