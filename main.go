package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/Eskinder185/weather/internal/cli"
	"github.com/Eskinder185/weather/internal/report"
	"github.com/Eskinder185/weather/internal/service"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run wires the CLI together. Results go to out, usage errors to errOut.
// Argument errors exit nonzero before any request is made; individual fetch
// failures are reported per line and still exit 0.
func run(args []string, out, errOut io.Writer) int {
	opts, err := cli.Parse(args)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			fmt.Fprint(out, cli.Usage())
			return 0
		}
		fmt.Fprintf(errOut, "weather: %v\n\n%s", err, cli.Usage())
		return 2
	}

	locations, err := opts.Locations()
	if err != nil {
		fmt.Fprintf(errOut, "weather: %v\n\n%s", err, cli.Usage())
		return 2
	}

	svc := service.NewWeatherService()
	svc.Timeout = time.Duration(opts.Timeout) * time.Second
	svc.MaxConns = opts.MaxConns

	results := svc.FetchAll(context.Background(), locations)

	if err := report.Write(out, results); err != nil {
		fmt.Fprintf(errOut, "weather: %v\n", err)
		return 1
	}
	return 0
}
