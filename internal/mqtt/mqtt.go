// Package mqtt provides MQTT publishing with abstraction for testing.
package mqtt

import (
	"encoding/json"
	"math"
	"time"

	"github.com/sweeney/weather-station/internal/logic"
)

// TopicReadings is the MQTT topic for sampled readings.
const TopicReadings = "weather/station/readings"

// TopicForecasts is the MQTT topic for forecast outcomes.
const TopicForecasts = "weather/station/forecasts"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "weather/station/system"

// Publisher publishes station events to MQTT.
type Publisher interface {
	// PublishReading sends one sampled reading.
	// Returns error if publishing fails (should not crash the process).
	PublishReading(event ReadingEvent) error

	// PublishForecast sends the outcome of a forecast request.
	PublishForecast(event ForecastEvent) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// ReadingEvent is one tick's reading. SensorOK is false when the climate
// values are the last good ones rather than fresh.
type ReadingEvent struct {
	Timestamp time.Time
	Reading   logic.Reading
	SensorOK  bool
}

// ForecastEvent is the outcome of one forecast request.
type ForecastEvent struct {
	Timestamp time.Time
	Result    logic.ForecastResult
	Readings  int // history length sent
}

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown, heartbeat).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN", "HEARTBEAT"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// ReadingPayload represents the MQTT message payload for a reading.
type ReadingPayload struct {
	Reading ReadingInner `json:"reading"`
}

// ReadingInner contains the reading details.
type ReadingInner struct {
	Timestamp    string  `json:"timestamp"`
	TemperatureC float64 `json:"temperature_c"`
	TemperatureF float64 `json:"temperature_f"`
	Humidity     float64 `json:"humidity"`
	Light        int     `json:"light"`
	SensorOK     bool    `json:"sensor_ok"`
}

// FormatReadingPayload creates the JSON payload for a reading.
// Values are rounded to one decimal place, as shown on the display.
func FormatReadingPayload(event ReadingEvent) ([]byte, error) {
	r := event.Reading
	payload := ReadingPayload{
		Reading: ReadingInner{
			Timestamp:    event.Timestamp.UTC().Format(time.RFC3339),
			TemperatureC: round1(r.Temperature),
			TemperatureF: round1(r.Fahrenheit()),
			Humidity:     round1(r.Humidity),
			Light:        r.Light,
			SensorOK:     event.SensorOK,
		},
	}
	return json.Marshal(payload)
}

// ForecastPayload represents the MQTT message payload for a forecast outcome.
type ForecastPayload struct {
	Forecast ForecastInner `json:"forecast"`
}

// ForecastInner contains the forecast details.
type ForecastInner struct {
	Timestamp string `json:"timestamp"`
	Result    string `json:"result"`
	Text      string `json:"text,omitempty"`
	Code      int    `json:"code,omitempty"`
	Message   string `json:"message"`
	Readings  int    `json:"readings"`
}

// FormatForecastPayload creates the JSON payload for a forecast outcome.
func FormatForecastPayload(event ForecastEvent) ([]byte, error) {
	res := event.Result
	payload := ForecastPayload{
		Forecast: ForecastInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Result:    string(res.Kind),
			Message:   res.Message(),
			Readings:  event.Readings,
		},
	}
	switch res.Kind {
	case logic.ResultSuccess:
		payload.Forecast.Text = res.Text
	case logic.ResultAPIError:
		payload.Forecast.Code = res.Code
	}
	return json.Marshal(payload)
}

// SystemPayload represents the MQTT message payload for system events.
// Used for simple events (LWT, RECONNECTED) that don't carry a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
