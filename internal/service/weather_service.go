package service

import (
	"context"
	"sync"
	"time"

	"github.com/Eskinder185/weather/internal/config"
	"github.com/Eskinder185/weather/internal/model"
	"github.com/Eskinder185/weather/internal/repository"
)

// WeatherService fans requests out over a bounded number of concurrent
// fetches and gathers one result per location, in input order.
type WeatherService struct {
	WeatherRepo repository.WeatherRepository

	// Timeout bounds each individual request; it never cancels siblings.
	Timeout time.Duration

	// MaxConns bounds how many requests may be in flight at once.
	MaxConns int
}

// NewWeatherService creates a new weather service instance
func NewWeatherService(repo ...repository.WeatherRepository) *WeatherService {
	var weatherRepo repository.WeatherRepository
	if len(repo) > 0 && repo[0] != nil {
		weatherRepo = repo[0]
	} else {
		weatherRepo = repository.NewWeatherRepository()
	}
	return &WeatherService{
		WeatherRepo: weatherRepo,
		Timeout:     config.GetRequestTimeout(),
		MaxConns:    config.GetMaxConns(),
	}
}

// FetchAll fetches current weather for every location concurrently and waits
// for all of them. The returned slice has exactly one entry per input
// location, in input order, regardless of completion order. A failed fetch
// yields a result carrying the error; it does not affect other locations.
func (s *WeatherService) FetchAll(ctx context.Context, locations []model.Location) []model.Result {
	log := config.GetLogger()

	maxConns := s.MaxConns
	if maxConns <= 0 {
		maxConns = 1
	}

	// Counting-semaphore gate; a slot is held for the full request lifetime.
	gate := make(chan struct{}, maxConns)
	results := make([]model.Result, len(locations))

	var wg sync.WaitGroup
	for i, loc := range locations {
		wg.Add(1)
		go func(i int, loc model.Location) {
			defer wg.Done()

			gate <- struct{}{}
			defer func() { <-gate }()

			reqCtx := ctx
			if s.Timeout > 0 {
				var cancel context.CancelFunc
				reqCtx, cancel = context.WithTimeout(ctx, s.Timeout)
				defer cancel()
			}

			start := time.Now()
			reading, err := s.WeatherRepo.CurrentWeather(reqCtx, loc)
			if err != nil {
				log.Debugw("fetch failed", "location", loc.Name, "duration", time.Since(start), "error", err)
			} else {
				log.Debugw("fetch succeeded", "location", loc.Name, "duration", time.Since(start))
			}

			// Each goroutine owns exactly one slot; no locking needed.
			results[i] = model.Result{Location: loc, Reading: reading, Err: err}
		}(i, loc)
	}
	wg.Wait()

	return results
}
