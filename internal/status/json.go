package status

import (
	"encoding/json"
	"math"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string            `json:"event,omitempty"`
	Reason        string            `json:"reason,omitempty"`
	State         string            `json:"state"`
	Reading       *ReadingJSON      `json:"reading,omitempty"`
	SensorOK      bool              `json:"sensor_ok"`
	HistoryLen    int               `json:"history_len"`
	UptimeSeconds int64             `json:"uptime_seconds"`
	StartTime     string            `json:"start_time"`
	Timestamp     string            `json:"timestamp"`
	MQTT          MQTTStatus        `json:"mqtt"`
	Forecasts     CountsJSON        `json:"forecast_counts"`
	LastForecast  *LastForecastJSON `json:"last_forecast,omitempty"`
	Network       *NetworkJSON      `json:"network,omitempty"`
	Config        ConfigJSON        `json:"config"`
}

// ReadingJSON is the JSON representation of a reading.
type ReadingJSON struct {
	TemperatureC float64 `json:"temperature_c"`
	TemperatureF float64 `json:"temperature_f"`
	Humidity     float64 `json:"humidity"`
	Light        int     `json:"light"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of forecast outcome counts.
type CountsJSON struct {
	Success          int `json:"success"`
	InsufficientData int `json:"insufficient_data"`
	Disconnected     int `json:"disconnected"`
	APIError         int `json:"api_error"`
	TransportError   int `json:"transport_error"`
}

// LastForecastJSON describes the most recent forecast outcome.
type LastForecastJSON struct {
	Timestamp string `json:"timestamp"`
	Result    string `json:"result"`
	Message   string `json:"message"`
}

// NetworkJSON is the JSON representation of network info.
type NetworkJSON struct {
	Type       string `json:"type"`
	IP         string `json:"ip"`
	Status     string `json:"status"`
	Gateway    string `json:"gateway"`
	WifiStatus string `json:"wifi_status"`
	SSID       string `json:"ssid"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	TickMs      int64  `json:"tick_ms"`
	DebounceMs  int64  `json:"debounce_ms"`
	HeartbeatMs int64  `json:"heartbeat_ms"`
	HistorySize int    `json:"history_size"`
	MinHistory  int    `json:"min_history"`
	Broker      string `json:"broker"`
	Endpoint    string `json:"endpoint"`
}

func buildInner(snap Snapshot) StatusInner {
	state := snap.State
	if state == "" {
		state = "UNKNOWN"
	}

	inner := StatusInner{
		State:         state,
		SensorOK:      snap.SensorOK,
		HistoryLen:    snap.HistoryLen,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Forecasts: CountsJSON{
			Success:          snap.Forecasts.Success,
			InsufficientData: snap.Forecasts.InsufficientData,
			Disconnected:     snap.Forecasts.Disconnected,
			APIError:         snap.Forecasts.APIError,
			TransportError:   snap.Forecasts.TransportError,
		},
		Config: ConfigJSON{
			TickMs:      snap.Config.TickMs,
			DebounceMs:  snap.Config.DebounceMs,
			HeartbeatMs: snap.Config.HeartbeatMs,
			HistorySize: snap.Config.HistorySize,
			MinHistory:  snap.Config.MinHistory,
			Broker:      snap.Config.Broker,
			Endpoint:    snap.Config.Endpoint,
		},
	}

	if snap.Sampled {
		inner.Reading = FormatReading(snap.Reading.Temperature, snap.Reading.Humidity, snap.Reading.Light)
	}
	if snap.LastForecast != nil {
		inner.LastForecast = &LastForecastJSON{
			Timestamp: snap.LastRequestAt.UTC().Format(time.RFC3339),
			Result:    string(snap.LastForecast.Kind),
			Message:   snap.LastForecast.Message(),
		}
	}
	return inner
}

// FormatReading builds the JSON form of a reading, rounding to one decimal
// place as on the display.
func FormatReading(tempC, humidity float64, light int) *ReadingJSON {
	return &ReadingJSON{
		TemperatureC: round1(tempC),
		TemperatureF: round1(tempC*1.8 + 32),
		Humidity:     round1(humidity),
		Light:        light,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func buildNetwork(snap Snapshot, inner *StatusInner) {
	if snap.Network != nil {
		inner.Network = &NetworkJSON{
			Type:       snap.Network.Type,
			IP:         snap.Network.IP,
			Status:     snap.Network.Status,
			Gateway:    snap.Network.Gateway,
			WifiStatus: snap.Network.WifiStatus,
			SSID:       snap.Network.SSID,
		}
	}
}

// FormatJSON returns the indented JSON status, as logged at startup.
func FormatJSON(snap Snapshot) []byte {
	inner := buildInner(snap)
	buildNetwork(snap, &inner)

	data, _ := json.MarshalIndent(StatusJSON{Status: inner}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason
	buildNetwork(snap, &inner)

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
