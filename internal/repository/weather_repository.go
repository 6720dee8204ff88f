package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Eskinder185/weather/internal/config"
	"github.com/Eskinder185/weather/internal/model"
)

// Custom error types
var (
	ErrTimeout           = errors.New("request timed out")
	ErrConnection        = errors.New("connection failed")
	ErrHTTPStatus        = errors.New("unexpected response status")
	ErrMalformedResponse = errors.New("malformed response")
)

// WeatherRepository defines the interface for current-weather data access
type WeatherRepository interface {
	CurrentWeather(ctx context.Context, loc model.Location) (*model.Reading, error)
}

// weatherRepository implements WeatherRepository over the Open-Meteo API
type weatherRepository struct {
	baseURL    string
	httpClient *http.Client
}

// NewWeatherRepository creates a new weather repository instance
func NewWeatherRepository(httpClient ...*http.Client) WeatherRepository {
	client := http.DefaultClient
	if len(httpClient) > 0 && httpClient[0] != nil {
		client = httpClient[0]
	}
	return &weatherRepository{
		baseURL:    config.GetForecastAPIURL(),
		httpClient: client,
	}
}

// CurrentWeather fetches current temperature and wind speed for a location.
// Failures are classified into the package error values so callers can report
// them per location without inspecting transport details.
func (r *weatherRepository) CurrentWeather(ctx context.Context, loc model.Location) (*model.Reading, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.requestURL(loc), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrHTTPStatus, resp.StatusCode)
	}

	var data model.OpenMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if data.Current.Temperature == nil || data.Current.WindSpeed == nil {
		return nil, fmt.Errorf("%w: missing current weather fields", ErrMalformedResponse)
	}

	return &model.Reading{
		Location:    loc,
		Temperature: *data.Current.Temperature,
		WindSpeed:   *data.Current.WindSpeed,
	}, nil
}

// requestURL builds the forecast query for a location. Coordinates keep full
// precision; no API key is required by Open-Meteo.
func (r *weatherRepository) requestURL(loc model.Location) string {
	values := url.Values{}
	values.Set("latitude", strconv.FormatFloat(loc.Latitude, 'f', -1, 64))
	values.Set("longitude", strconv.FormatFloat(loc.Longitude, 'f', -1, 64))
	values.Set("current", "temperature_2m,wind_speed_10m")
	return fmt.Sprintf("%s?%s", r.baseURL, values.Encode())
}

// classifyTransportError maps client errors onto the package error values.
// Context deadline expiry counts as a timeout; everything else that prevented
// a response is a connection failure.
func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	var ue *url.Error
	if errors.As(err, &ue) && ue.Timeout() {
		return ErrTimeout
	}
	return fmt.Errorf("%w: %v", ErrConnection, err)
}
