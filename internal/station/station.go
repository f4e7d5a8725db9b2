// Package station runs one tick of the weather station: sample, record,
// answer a pending forecast request or refresh the live dashboard.
//
// Everything here runs on the single control loop. The only state shared
// with another goroutine is the debouncer, which is lock-free.
package station

import (
	"context"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/sweeney/weather-station/internal/display"
	"github.com/sweeney/weather-station/internal/indicator"
	"github.com/sweeney/weather-station/internal/logic"
	"github.com/sweeney/weather-station/internal/mqtt"
	"github.com/sweeney/weather-station/internal/status"
)

// State is the display mode of the station.
type State string

const (
	LiveDisplay      State = "LIVE_DISPLAY"
	AwaitingForecast State = "AWAITING_FORECAST"
	ShowingForecast  State = "SHOWING_FORECAST"
)

const (
	headerFetching = "Fetching Forecast..."
	headerForecast = "AI Forecast:"
)

// Sampler produces one reading per call.
type Sampler interface {
	Sample() (logic.Reading, error)
}

// Forecaster requests a forecast for the given history.
type Forecaster interface {
	Request(ctx context.Context, history []logic.Reading) logic.ForecastResult
}

// Signal is the status LED and buzzer.
type Signal interface {
	Set(s indicator.State)
	Beep(d time.Duration)
}

// Config holds the loop timings and thresholds.
type Config struct {
	HistorySize int
	MinHistory  int           // readings required before a forecast is requested
	AckBeep     time.Duration // buzzer on an accepted button press
	PageDwell   time.Duration // per page when a message spans several pages
	HoldTime    time.Duration // after a message or forecast before returning to the dashboard
}

// Deps are the collaborators of a Station. Publisher and Tracker may be nil.
type Deps struct {
	Sampler    Sampler
	Debouncer  *logic.Debouncer
	Forecaster Forecaster
	Renderer   *display.Renderer
	Signal     Signal
	Publisher  mqtt.Publisher
	Tracker    *status.Tracker
	Logger     log.Logger
	Sleep      func(time.Duration)
}

// Station owns the history, the last good climate values and the display
// state. It is not safe for concurrent use.
type Station struct {
	d        Deps
	cfg      Config
	history  *logic.History
	lastGood logic.Reading
	state    State
}

// New creates a Station in the LiveDisplay state with empty history.
func New(d Deps, cfg Config) *Station {
	if d.Sleep == nil {
		d.Sleep = time.Sleep
	}
	if d.Logger == nil {
		d.Logger = log.NewNopLogger()
	}
	if d.Publisher == nil {
		d.Publisher = mqtt.NopPublisher{}
	}
	s := &Station{
		d:       d,
		cfg:     cfg,
		history: logic.NewHistory(cfg.HistorySize),
	}
	s.setState(LiveDisplay)
	return s
}

// State returns the current display state.
func (s *Station) State() State {
	return s.state
}

// History returns the stored readings, oldest first.
func (s *Station) History() []logic.Reading {
	return s.history.Snapshot()
}

// Tick runs one iteration of the control loop. Nothing in it is fatal:
// sensor, display, network and publish failures are logged and absorbed.
//
// ctx supplies values only; a forecast request started here always runs to
// completion even if ctx is cancelled.
func (s *Station) Tick(ctx context.Context, now time.Time) {
	reading, ok := s.sample()

	if s.d.Tracker != nil {
		s.d.Tracker.UpdateReading(reading, ok, s.history.Len())
	}
	if err := s.d.Publisher.PublishReading(mqtt.ReadingEvent{Timestamp: now, Reading: reading, SensorOK: ok}); err != nil {
		level.Warn(s.d.Logger).Log("msg", "failed to publish reading", "err", err)
		// Don't crash on publish failure
	}

	if s.d.Debouncer.TakePending() {
		s.answer(ctx, now)
		return
	}

	s.d.Renderer.Dashboard(reading)
}

// sample reads the sensors. On a climate failure it substitutes the last good
// temperature and humidity, keeps the fresh light level, and leaves history
// untouched.
func (s *Station) sample() (logic.Reading, bool) {
	r, err := s.d.Sampler.Sample()
	if err != nil {
		level.Warn(s.d.Logger).Log("msg", "using last good climate values", "err", err)
		r.Temperature = s.lastGood.Temperature
		r.Humidity = s.lastGood.Humidity
		s.d.Signal.Set(indicator.Warning)
		return r, false
	}

	s.lastGood = r
	s.history.Append(r)
	s.d.Signal.Set(indicator.Normal)
	return r, true
}

// answer handles one consumed button press and leaves the display cleared
// for the next dashboard.
func (s *Station) answer(ctx context.Context, now time.Time) {
	s.d.Signal.Beep(s.cfg.AckBeep)
	s.setState(AwaitingForecast)

	var res logic.ForecastResult
	n := s.history.Len()
	if n < s.cfg.MinHistory {
		res = logic.InsufficientData()
		level.Info(s.d.Logger).Log("msg", "forecast requested with too little history", "readings", n, "need", s.cfg.MinHistory)
		s.d.Renderer.Message(res.Message(), 1, s.cfg.PageDwell)
	} else {
		s.d.Renderer.Clear()
		s.d.Renderer.Text(0, headerFetching)

		res = s.d.Forecaster.Request(context.WithoutCancel(ctx), s.history.Snapshot())
		level.Info(s.d.Logger).Log("msg", "forecast done", "result", res.Kind, "readings", n)

		s.d.Renderer.Clear()
		s.d.Renderer.Text(0, headerForecast)
		s.setState(ShowingForecast)
		s.d.Renderer.Message(res.Message(), 1, s.cfg.PageDwell)
	}

	s.record(res, now, n)

	s.d.Sleep(s.cfg.HoldTime)
	s.d.Renderer.Clear()
	s.setState(LiveDisplay)
}

func (s *Station) record(res logic.ForecastResult, now time.Time, readings int) {
	if s.d.Tracker != nil {
		s.d.Tracker.RecordForecast(res, now)
	}
	ev := mqtt.ForecastEvent{Timestamp: now, Result: res, Readings: readings}
	if err := s.d.Publisher.PublishForecast(ev); err != nil {
		level.Warn(s.d.Logger).Log("msg", "failed to publish forecast", "err", err)
	}
}

func (s *Station) setState(st State) {
	s.state = st
	if s.d.Tracker != nil {
		s.d.Tracker.SetState(string(st))
	}
}
