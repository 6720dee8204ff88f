package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMockForecastServer serves a fixed Open-Meteo style payload and counts
// how many requests it received.
func newMockForecastServer(t *testing.T, status int, body string) (*httptest.Server, *int64) {
	t.Helper()
	var requests int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&requests, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &requests
}

func pointConfigAt(t *testing.T, url string) {
	t.Helper()
	orig := viper.GetString("forecast_api.url")
	viper.Set("forecast_api.url", url)
	t.Cleanup(func() { viper.Set("forecast_api.url", orig) })
}

func TestRun_SingleLocationSuccess(t *testing.T) {
	srv, _ := newMockForecastServer(t, http.StatusOK,
		`{"current":{"temperature_2m":17.2,"wind_speed_10m":4.6}}`)
	pointConfigAt(t, srv.URL)

	var out, errOut bytes.Buffer
	code := run([]string{"--city", "San Francisco", "--lat", "37.7749", "--lon", "-122.4194"}, &out, &errOut)

	assert.Equal(t, 0, code)
	assert.Equal(t, "San Francisco — temp: 17.2 °C, wind: 4.6 m/s\n", out.String())
}

func TestRun_DefaultLocationsOneLineEach(t *testing.T) {
	srv, requests := newMockForecastServer(t, http.StatusOK,
		`{"current":{"temperature_2m":21,"wind_speed_10m":3.4}}`)
	pointConfigAt(t, srv.URL)

	var out, errOut bytes.Buffer
	code := run(nil, &out, &errOut)

	require.Equal(t, 0, code)
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	assert.Len(t, lines, 3)
	assert.EqualValues(t, 3, atomic.LoadInt64(requests))
	assert.True(t, strings.HasPrefix(lines[0], "Atlanta"), "first line should be Atlanta, got %q", lines[0])
}

func TestRun_AllFetchesFailStillExitsZero(t *testing.T) {
	srv, _ := newMockForecastServer(t, http.StatusServiceUnavailable, "upstream down")
	pointConfigAt(t, srv.URL)

	var out, errOut bytes.Buffer
	code := run(nil, &out, &errOut)

	require.Equal(t, 0, code)
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.Contains(t, line, "error:")
		assert.Contains(t, line, "503")
	}
}

func TestRun_PartialOverrideExitsNonzeroWithoutRequests(t *testing.T) {
	srv, requests := newMockForecastServer(t, http.StatusOK, `{}`)
	pointConfigAt(t, srv.URL)

	var out, errOut bytes.Buffer
	code := run([]string{"--lat", "37.7749"}, &out, &errOut)

	assert.Equal(t, 2, code)
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "--city, --lat and --lon must be supplied together")
	assert.Contains(t, errOut.String(), "Usage: weather")
	assert.EqualValues(t, 0, atomic.LoadInt64(requests), "usage errors must not trigger network requests")
}

func TestRun_BadFlagExitsNonzero(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"--bogus"}, &out, &errOut)

	assert.Equal(t, 2, code)
	assert.Contains(t, errOut.String(), "Usage: weather")
}

func TestRun_Help(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"--help"}, &out, &errOut)

	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "--max-conns")
	assert.Empty(t, errOut.String())
}
