package noaa

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metarmap/internal/metar"
)

const ksfoBody = "2026/08/25 19:56\nKSFO 251956Z 28012KT 10SM FEW008 18/12 A3002 RMK AO2 SLP168\n"

func TestNewClient(t *testing.T) {
	client := NewClient()

	require.NotNil(t, client)
	assert.Equal(t, DefaultBaseURL, client.baseURL)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
}

func TestClient_Observation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/KSFO.TXT", r.URL.Path)
		w.Write([]byte(ksfoBody))
	}))
	defer server.Close()

	client := NewClient()
	client.baseURL = server.URL

	report, err := client.Observation(context.Background(), "KSFO")
	require.NoError(t, err)

	assert.Equal(t, "KSFO", report.Station)
	require.NotNil(t, report.Visibility)
	assert.Equal(t, metar.Visibility{Value: 10, Unit: metar.UnitStatuteMiles}, *report.Visibility)
	require.Len(t, report.CloudLayers, 1)
	assert.Equal(t, metar.CoverageFew, report.CloudLayers[0].Coverage)
}

func TestClient_Observation_MissingMetarLine(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("2026/08/25 19:56\n"))
	}))
	defer server.Close()

	client := NewClient()
	client.baseURL = server.URL

	_, err := client.Observation(context.Background(), "KSFO")
	assert.ErrorIs(t, err, ErrMissingMetarLine)
}

func TestClient_Observation_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := NewClient()
	client.baseURL = server.URL

	_, err := client.Observation(context.Background(), "KXYZ")

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, "KXYZ", transportErr.Station)
}

func TestClient_Observation_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused

	client := NewClient()
	client.baseURL = server.URL

	_, err := client.Observation(context.Background(), "KSFO")

	var transportErr *TransportError
	assert.ErrorAs(t, err, &transportErr)
}

func TestClient_Observation_ParseError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("2026/08/25 19:56\n   \n"))
	}))
	defer server.Close()

	client := NewClient()
	client.baseURL = server.URL

	_, err := client.Observation(context.Background(), "KSFO")

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "KSFO", parseErr.Station)
	assert.ErrorIs(t, err, metar.ErrEmptyReport)
}
