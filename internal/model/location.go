package model

// Location is a named point on Earth for which weather is requested.
// Immutable once constructed.
type Location struct {
	Name      string  `mapstructure:"name" validate:"required"`
	Latitude  float64 `mapstructure:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `mapstructure:"longitude" validate:"gte=-180,lte=180"`
}
