package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"strings"
	"time"
)

// FlightState is one tracked aircraft position from the external feed.
// It is ephemeral: replaced wholesale on every poll, never persisted.
type FlightState struct {
	ICAO24   string  `json:"icao24"`
	Callsign string  `json:"callsign"`
	Lon      float64 `json:"lon"`
	Lat      float64 `json:"lat"`
	Altitude float64 `json:"altitude"`
}

// Snapshot maps external flight id to its latest state.
type Snapshot map[string]FlightState

func (s Snapshot) Equal(other Snapshot) bool {
	return maps.Equal(s, other)
}

type FeedClient interface {
	Fetch(ctx context.Context) (Snapshot, error)
}

// OpenSkyClient pulls the states/all endpoint of the OpenSky network.
// Only a bounded prefix of the feed is kept to bound downstream cost.
type OpenSkyClient struct {
	url        string
	maxFlights int
	client     *http.Client
}

func NewOpenSkyClient(url string, maxFlights int, timeout time.Duration) *OpenSkyClient {
	if maxFlights <= 0 {
		maxFlights = 50
	}
	return &OpenSkyClient{
		url:        url,
		maxFlights: maxFlights,
		client:     &http.Client{Timeout: timeout},
	}
}

// Each state is a positional array with nullable fields:
// 0=icao24, 1=callsign, 5=lon, 6=lat, 7=baro altitude.
type openSkyResponse struct {
	States [][]any `json:"states"`
}

func (c *OpenSkyClient) Fetch(ctx context.Context) (Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("flight feed request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("flight feed returned status %d", resp.StatusCode)
	}

	var payload openSkyResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode flight feed: %w", err)
	}

	states := payload.States
	if len(states) > c.maxFlights {
		states = states[:c.maxFlights]
	}

	snapshot := make(Snapshot, len(states))
	for _, state := range states {
		if len(state) < 8 {
			continue
		}
		icao24, ok := state[0].(string)
		if !ok || icao24 == "" {
			continue
		}
		snapshot[icao24] = FlightState{
			ICAO24:   icao24,
			Callsign: stringAt(state, 1),
			Lon:      floatAt(state, 5),
			Lat:      floatAt(state, 6),
			Altitude: floatAt(state, 7),
		}
	}
	return snapshot, nil
}

func stringAt(state []any, i int) string {
	s, _ := state[i].(string)
	return strings.TrimSpace(s)
}

func floatAt(state []any, i int) float64 {
	f, _ := state[i].(float64)
	return f
}

var _ FeedClient = (*OpenSkyClient)(nil)
