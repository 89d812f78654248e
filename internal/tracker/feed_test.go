package tracker

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const openSkyBody = `{
	"time": 1700000000,
	"states": [
		["abc123", "AFL204  ", "Russia", 1700000000, 1700000000, 37.6156, 55.7522, 11000.5, false, 240.5, 90.0, 0, null, 11200.0, "2137", false, 0],
		["def456", null, "Germany", 1700000000, 1700000000, 13.405, 52.52, null, false, 230.0, 180.0, 0, null, null, null, false, 0],
		["ghi789", "DLH9U", "Germany", 1700000000, 1700000000, 8.6821, 50.1109, 9800.0, false, 220.0, 270.0, 0, null, 9900.0, null, false, 0]
	]
}`

func TestOpenSkyClient_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, openSkyBody)
	}))
	defer server.Close()

	client := NewOpenSkyClient(server.URL, 50, time.Second)
	snapshot, err := client.Fetch(context.Background())

	assert.NoError(t, err)
	assert.Len(t, snapshot, 3)
	assert.Equal(t, FlightState{ICAO24: "abc123", Callsign: "AFL204", Lon: 37.6156, Lat: 55.7522, Altitude: 11000.5}, snapshot["abc123"])
	// null callsign and null positions normalize to zero values
	assert.Equal(t, FlightState{ICAO24: "def456", Callsign: "", Lon: 13.405, Lat: 52.52, Altitude: 0}, snapshot["def456"])
}

func TestOpenSkyClient_Fetch_LimitsEntries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, openSkyBody)
	}))
	defer server.Close()

	client := NewOpenSkyClient(server.URL, 2, time.Second)
	snapshot, err := client.Fetch(context.Background())

	assert.NoError(t, err)
	assert.Len(t, snapshot, 2)
	assert.NotContains(t, snapshot, "ghi789")
}

func TestOpenSkyClient_Fetch_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewOpenSkyClient(server.URL, 50, time.Second)
	snapshot, err := client.Fetch(context.Background())

	assert.Error(t, err)
	assert.Nil(t, snapshot)
	assert.Contains(t, err.Error(), "429")
}

func TestOpenSkyClient_Fetch_TransportError(t *testing.T) {
	client := NewOpenSkyClient("http://127.0.0.1:1", 50, 200*time.Millisecond)
	snapshot, err := client.Fetch(context.Background())

	assert.Error(t, err)
	assert.Nil(t, snapshot)
}

func TestSnapshot_Equal(t *testing.T) {
	base := testSnapshot("abc123", 10000)

	assert.True(t, base.Equal(testSnapshot("abc123", 10000)))
	assert.False(t, base.Equal(testSnapshot("abc123", 10001)))
	assert.False(t, base.Equal(Snapshot{}))

	added := testSnapshot("abc123", 10000)
	added["def456"] = FlightState{ICAO24: "def456"}
	assert.False(t, base.Equal(added))
}
