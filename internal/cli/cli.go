package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"

	"github.com/Eskinder185/weather/internal/config"
	"github.com/Eskinder185/weather/internal/model"
)

var validate = validator.New()

// Custom error types
var (
	ErrPartialLocation = errors.New("--city, --lat and --lon must be supplied together")
	ErrInvalidLocation = errors.New("invalid location")
)

// Options holds the parsed command-line flags.
type Options struct {
	City     string
	Lat      float64
	Lon      float64
	Timeout  int // seconds
	MaxConns int

	citySet bool
	latSet  bool
	lonSet  bool
}

func newFlagSet(opts *Options) *pflag.FlagSet {
	fs := pflag.NewFlagSet("weather", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&opts.City, "city", "", "display name for a single custom location (requires --lat and --lon)")
	fs.Float64Var(&opts.Lat, "lat", 0, "latitude of the custom location")
	fs.Float64Var(&opts.Lon, "lon", 0, "longitude of the custom location")
	fs.IntVar(&opts.Timeout, "timeout", int(config.GetRequestTimeout().Seconds()), "per-request timeout in seconds")
	fs.IntVar(&opts.MaxConns, "max-conns", config.GetMaxConns(), "maximum concurrent in-flight requests")
	return fs
}

// Usage returns the flag usage text.
func Usage() string {
	fs := newFlagSet(&Options{})
	return "Usage: weather [flags]\n\nFlags:\n" + fs.FlagUsages()
}

// Parse parses command-line arguments. Users may specify a single location
// via --city, --lat and --lon or rely on the configured default locations.
// Help requests surface as pflag.ErrHelp.
func Parse(args []string) (*Options, error) {
	opts := &Options{}
	fs := newFlagSet(opts)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	opts.citySet = fs.Changed("city")
	opts.latSet = fs.Changed("lat")
	opts.lonSet = fs.Changed("lon")

	if opts.Timeout <= 0 {
		return nil, fmt.Errorf("--timeout must be a positive number of seconds, got %d", opts.Timeout)
	}
	if opts.MaxConns <= 0 {
		return nil, fmt.Errorf("--max-conns must be positive, got %d", opts.MaxConns)
	}

	return opts, nil
}

// Locations builds the ordered location set to query. A full --city/--lat/
// --lon override yields that single location; no override yields the
// configured defaults; anything in between is a usage error.
func (o *Options) Locations() ([]model.Location, error) {
	switch {
	case !o.citySet && !o.latSet && !o.lonSet:
		return config.GetDefaultLocations(), nil
	case o.citySet && o.latSet && o.lonSet:
		loc := model.Location{Name: o.City, Latitude: o.Lat, Longitude: o.Lon}
		if err := validate.Struct(loc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidLocation, err)
		}
		return []model.Location{loc}, nil
	default:
		return nil, ErrPartialLocation
	}
}
