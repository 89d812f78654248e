package flights

import (
	"context"
	"testing"
	"time"

	"github.com/avolkov/flightops/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlightRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFlightRepository) Stats(ctx context.Context) (*domain.FlightStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlightStats), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	args := m.Called(ctx, flights)
	return args.Error(0)
}

func (m *MockCache) InvalidateFlights(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func validFlight() *domain.Flight {
	departure := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	return &domain.Flight{
		DepartureAirport: "SVO",
		ArrivalAirport:   "LED",
		DepartureTime:    departure,
		ArrivalTime:      departure.Add(90 * time.Minute),
		Airline:          "Aeroflot",
		TotalSeats:       150,
		PriceCents:       550000,
	}
}

func TestFlightService_List_CacheHit(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, mockCache)

	ctx := context.Background()
	cached := []domain.Flight{{ID: 1, DepartureAirport: "SVO"}}
	mockCache.On("GetFlights", ctx).Return(cached, nil).Once()

	flights, err := service.List(ctx, domain.FlightFilter{})

	assert.NoError(t, err)
	assert.Equal(t, cached, flights)
	mockRepo.AssertNotCalled(t, "List")
}

func TestFlightService_List_CacheMissFillsCache(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, mockCache)

	ctx := context.Background()
	fromDB := []domain.Flight{{ID: 1}, {ID: 2}}
	mockCache.On("GetFlights", ctx).Return(nil, nil).Once()
	mockRepo.On("List", ctx, domain.FlightFilter{}).Return(fromDB, nil).Once()
	mockCache.On("SetFlights", ctx, fromDB).Return(nil).Once()

	flights, err := service.List(ctx, domain.FlightFilter{})

	assert.NoError(t, err)
	assert.Equal(t, fromDB, flights)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestFlightService_List_FilteredBypassesCache(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, mockCache)

	ctx := context.Background()
	filter := domain.FlightFilter{DepartureAirport: "SVO"}
	fromDB := []domain.Flight{{ID: 1, DepartureAirport: "SVO"}}
	mockRepo.On("List", ctx, filter).Return(fromDB, nil).Once()

	flights, err := service.List(ctx, filter)

	assert.NoError(t, err)
	assert.Equal(t, fromDB, flights)
	mockCache.AssertNotCalled(t, "GetFlights")
	mockCache.AssertNotCalled(t, "SetFlights")
}

func TestFlightService_Create_ValidationErrors(t *testing.T) {
	service := NewFlightService(&MockFlightRepository{}, nil)
	ctx := context.Background()

	testCases := []struct {
		name        string
		mutate      func(f *domain.Flight)
		expectedErr string
	}{
		{
			name:        "arrival before departure",
			mutate:      func(f *domain.Flight) { f.ArrivalTime = f.DepartureTime.Add(-time.Hour) },
			expectedErr: "arrival must be after departure",
		},
		{
			name:        "zero price",
			mutate:      func(f *domain.Flight) { f.PriceCents = 0 },
			expectedErr: "price must be positive",
		},
		{
			name:        "zero seats",
			mutate:      func(f *domain.Flight) { f.TotalSeats = 0 },
			expectedErr: "total seats must be positive",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			flight := validFlight()
			tc.mutate(flight)
			err := service.Create(ctx, flight)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tc.expectedErr)
		})
	}
}

func TestFlightService_Create_DefaultsStatusAndInvalidates(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, mockCache)

	ctx := context.Background()
	flight := validFlight()
	mockRepo.On("Create", ctx, flight).Return(nil).Once()
	mockCache.On("InvalidateFlights", ctx).Return(nil).Once()

	err := service.Create(ctx, flight)

	assert.NoError(t, err)
	assert.Equal(t, domain.FlightStatusScheduled, flight.Status)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestFlightService_Delete_Invalidates(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, mockCache)

	ctx := context.Background()
	mockRepo.On("Delete", ctx, int64(5)).Return(nil).Once()
	mockCache.On("InvalidateFlights", ctx).Return(nil).Once()

	assert.NoError(t, service.Delete(ctx, 5))
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestFlightService_Stats(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	service := NewFlightService(mockRepo, nil)

	ctx := context.Background()
	stats := &domain.FlightStats{TotalFlights: 12, TotalAirlines: 3, TotalAvailableSeats: 840}
	mockRepo.On("Stats", ctx).Return(stats, nil).Once()

	got, err := service.Stats(ctx)

	assert.NoError(t, err)
	assert.Equal(t, stats, got)
}
