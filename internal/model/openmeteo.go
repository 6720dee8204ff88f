package model

// OpenMeteoResponse mirrors the subset of the Open-Meteo forecast payload we
// consume. Pointer fields distinguish a missing field from a zero value.
type OpenMeteoResponse struct {
	Current struct {
		Temperature *float64 `json:"temperature_2m"`
		WindSpeed   *float64 `json:"wind_speed_10m"`
	} `json:"current"`
}
