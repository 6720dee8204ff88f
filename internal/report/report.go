package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/Eskinder185/weather/internal/model"
)

// Line renders a single result as a human-readable output line.
func Line(res model.Result) string {
	if res.Err != nil {
		return fmt.Sprintf("%s — error: %s", res.Location.Name, res.Err)
	}
	return fmt.Sprintf("%s — temp: %s °C, wind: %s m/s",
		res.Location.Name,
		formatValue(res.Reading.Temperature),
		formatValue(res.Reading.WindSpeed))
}

// Write prints one line per result, in slice order.
func Write(w io.Writer, results []model.Result) error {
	for _, res := range results {
		if _, err := fmt.Fprintln(w, Line(res)); err != nil {
			return err
		}
	}
	return nil
}

// formatValue renders a float without trailing zeros or precision loss.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
