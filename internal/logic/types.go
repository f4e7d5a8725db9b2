// Package logic contains the pure runtime logic of the weather station.
// This package has NO external dependencies (no GPIO, I2C, MQTT, HTTP or time.Sleep).
// Time is always injectable via time.Time or time.Duration parameters.
package logic

import (
	"fmt"
	"time"
)

// Reading is one sampled (temperature, humidity, light) tuple.
type Reading struct {
	Temperature float64 // °C
	Humidity    float64 // %RH
	Light       int     // raw ADC level, 0..4095
}

// Fahrenheit returns the temperature converted to °F.
func (r Reading) Fahrenheit() float64 {
	return r.Temperature*1.8 + 32
}

// ResultKind identifies the outcome of one forecast orchestration call.
type ResultKind string

const (
	ResultSuccess          ResultKind = "SUCCESS"
	ResultInsufficientData ResultKind = "INSUFFICIENT_DATA"
	ResultDisconnected     ResultKind = "DISCONNECTED"
	ResultAPIError         ResultKind = "API_ERROR"
	ResultTransportError   ResultKind = "TRANSPORT_ERROR"
)

// ForecastResult is the tagged outcome of a forecast request.
// Text is only meaningful for ResultSuccess, Code only for ResultAPIError.
type ForecastResult struct {
	Kind ResultKind
	Text string
	Code int
}

// Success returns a successful result carrying the cleaned forecast text.
func Success(text string) ForecastResult {
	return ForecastResult{Kind: ResultSuccess, Text: text}
}

// InsufficientData returns the result used when history is too short.
func InsufficientData() ForecastResult {
	return ForecastResult{Kind: ResultInsufficientData}
}

// Disconnected returns the result used when the network link is down.
func Disconnected() ForecastResult {
	return ForecastResult{Kind: ResultDisconnected}
}

// APIError returns a result for a non-success HTTP status.
func APIError(code int) ForecastResult {
	return ForecastResult{Kind: ResultAPIError, Code: code}
}

// TransportError returns a result for transport or decode failures.
func TransportError() ForecastResult {
	return ForecastResult{Kind: ResultTransportError}
}

// OK reports whether the result carries a forecast.
func (r ForecastResult) OK() bool {
	return r.Kind == ResultSuccess
}

// Message returns the text shown on the display for this result.
func (r ForecastResult) Message() string {
	switch r.Kind {
	case ResultSuccess:
		return r.Text
	case ResultInsufficientData:
		return "Not enough data yet. Please wait."
	case ResultDisconnected:
		return "WiFi Disconnected"
	case ResultAPIError:
		return fmt.Sprintf("API Error %d", r.Code)
	default:
		return "Network Error"
	}
}

// Page is one screen's worth of wrapped text lines.
type Page []string

// HeartbeatData contains information for a heartbeat event.
type HeartbeatData struct {
	Timestamp time.Time
	Uptime    time.Duration
}
