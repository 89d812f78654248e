package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/avolkov/flightops/api"
	"github.com/avolkov/flightops/config"
	"github.com/avolkov/flightops/internal/service/booking"
	"github.com/avolkov/flightops/internal/service/flights"
	"github.com/avolkov/flightops/internal/tracker"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails.
func Run(ctx context.Context, cfg *config.Config, flightSvc flights.FlightUseCase, bookingSvc booking.BookingUseCase, hub *tracker.Hub) error {
	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: NewRouter(cfg, flightSvc, bookingSvc, hub),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func NewRouter(cfg *config.Config, flightSvc flights.FlightUseCase, bookingSvc booking.BookingUseCase, hub *tracker.Hub) *gin.Engine {
	router := gin.Default()

	flightHandler := api.NewFlightHandler(flightSvc)
	bookingHandler := api.NewBookingHandler(bookingSvc)
	liveHandler := api.NewLiveHandler(hub)

	v1 := router.Group("/api/v1")
	flightHandler.Register(v1.Group("/flights"))
	bookingHandler.Register(v1.Group("/bookings", api.RequireUser()))
	liveHandler.Register(v1.Group("/live"))

	admin := v1.Group("/admin", api.RequireAdmin())
	flightHandler.RegisterAdmin(admin.Group("/flights"))
	bookingHandler.RegisterAdmin(admin.Group("/bookings"))

	if cfg.HTTP.SwaggerDir != "" {
		router.StaticFS("/swagger", http.Dir(cfg.HTTP.SwaggerDir))
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/swagger/flightops.swagger.json"),
		)))
	}

	return router
}
