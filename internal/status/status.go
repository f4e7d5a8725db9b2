// Package status provides a thread-safe status tracker for the weather-station daemon.
// The station loop writes it; MQTT lifecycle events read it.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/weather-station/internal/logic"
)

// NetworkInfo contains network state. This is a local copy to avoid
// importing internal/network from status.
type NetworkInfo struct {
	Type       string
	IP         string
	Status     string
	Gateway    string
	WifiStatus string
	SSID       string
}

// Config contains daemon configuration for display.
type Config struct {
	TickMs      int64
	DebounceMs  int64
	HeartbeatMs int64
	HistorySize int
	MinHistory  int
	Broker      string
	Endpoint    string
}

// ForecastCounts tallies forecast outcomes by kind.
type ForecastCounts struct {
	Success          int
	InsufficientData int
	Disconnected     int
	APIError         int
	TransportError   int
}

// Add counts one outcome.
func (c *ForecastCounts) Add(kind logic.ResultKind) {
	switch kind {
	case logic.ResultSuccess:
		c.Success++
	case logic.ResultInsufficientData:
		c.InsufficientData++
	case logic.ResultDisconnected:
		c.Disconnected++
	case logic.ResultAPIError:
		c.APIError++
	case logic.ResultTransportError:
		c.TransportError++
	}
}

// Total returns the number of outcomes counted.
func (c ForecastCounts) Total() int {
	return c.Success + c.InsufficientData + c.Disconnected + c.APIError + c.TransportError
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type and stays valid after the lock is released.
type Snapshot struct {
	State         string
	Reading       logic.Reading
	Sampled       bool // at least one tick has run
	SensorOK      bool // last climate read succeeded
	HistoryLen    int
	Forecasts     ForecastCounts
	LastForecast  *logic.ForecastResult
	LastRequestAt time.Time
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Network       *NetworkInfo
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// UpdateReading records the reading shown this tick, whether the climate
// sensor succeeded, and the resulting history length.
// Called from the station loop on every tick.
func (t *Tracker) UpdateReading(r logic.Reading, sensorOK bool, historyLen int) {
	t.mu.Lock()
	t.snap.Reading = r
	t.snap.Sampled = true
	t.snap.SensorOK = sensorOK
	t.snap.HistoryLen = historyLen
	t.mu.Unlock()
}

// SetState records the station state name.
func (t *Tracker) SetState(state string) {
	t.mu.Lock()
	t.snap.State = state
	t.mu.Unlock()
}

// RecordForecast counts a forecast outcome and keeps it as the latest.
func (t *Tracker) RecordForecast(res logic.ForecastResult, at time.Time) {
	t.mu.Lock()
	t.snap.Forecasts.Add(res.Kind)
	t.snap.LastForecast = &res
	t.snap.LastRequestAt = at
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// SetNetwork sets the network info.
func (t *Tracker) SetNetwork(info *NetworkInfo) {
	t.mu.Lock()
	t.snap.Network = info
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
