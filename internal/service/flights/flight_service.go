package flights

import (
	"context"
	"errors"

	"github.com/avolkov/flightops/internal/domain"
	"github.com/avolkov/flightops/internal/repository"
)

type FlightUseCase interface {
	List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, flight *domain.Flight) error
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*domain.FlightStats, error)
}

type Cache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

type FlightService struct {
	repo  repository.FlightRepository
	cache Cache
}

func NewFlightService(repo repository.FlightRepository, cache Cache) *FlightService {
	return &FlightService{repo: repo, cache: cache}
}

// List serves the unfiltered flight list cache-aside; filtered queries
// always hit the repository.
func (s *FlightService) List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	unfiltered := filter == (domain.FlightFilter{})

	if unfiltered && s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if unfiltered && s.cache != nil {
		_ = s.cache.SetFlights(ctx, flights)
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *FlightService) Create(ctx context.Context, flight *domain.Flight) error {
	if err := validateFlight(flight); err != nil {
		return err
	}
	if flight.Status == "" {
		flight.Status = domain.FlightStatusScheduled
	}
	if err := s.repo.Create(ctx, flight); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FlightService) Update(ctx context.Context, flight *domain.Flight) error {
	if err := validateFlight(flight); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, flight); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FlightService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FlightService) Stats(ctx context.Context) (*domain.FlightStats, error) {
	return s.repo.Stats(ctx)
}

func (s *FlightService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
}

func validateFlight(flight *domain.Flight) error {
	if !flight.DepartureTime.Before(flight.ArrivalTime) {
		return errors.New("arrival must be after departure time")
	}
	if flight.PriceCents <= 0 {
		return errors.New("price must be positive")
	}
	if flight.TotalSeats <= 0 {
		return errors.New("total seats must be positive")
	}
	return nil
}

var _ FlightUseCase = (*FlightService)(nil)
