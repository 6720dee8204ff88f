package model

// Reading is the current weather for a single location, in metric units.
type Reading struct {
	Location    Location
	Temperature float64 // °C
	WindSpeed   float64 // m/s
}

// Result pairs a location with either a reading or the error that prevented
// one. Exactly one result is produced per requested location.
type Result struct {
	Location Location
	Reading  *Reading
	Err      error
}
