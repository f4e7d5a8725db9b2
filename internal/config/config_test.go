package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 20, cfg.Columns)
	assert.Equal(t, 4, cfg.Rows)
	assert.Equal(t, 100, cfg.HistorySize)
	assert.Equal(t, 10, cfg.MinHistory)
	assert.Equal(t, 3, cfg.SensorTries)
	assert.Equal(t, 500*time.Millisecond, cfg.SensorRetry)
	assert.Equal(t, 500*time.Millisecond, cfg.Debounce)
	assert.Equal(t, 4*time.Second, cfg.PageDwell)
	assert.Equal(t, 3*time.Second, cfg.HoldTime)
	assert.Equal(t, 2*time.Second, cfg.BootScreen)
	assert.Equal(t, time.Second, cfg.Tick)
	assert.Equal(t, DefaultEndpoint, cfg.Endpoint)
	assert.Equal(t, uint8(0x27), cfg.LCDAddr)
}

func TestDefaultPicksUpLinkTimeValues(t *testing.T) {
	oldKey, oldBroker := APIKey, Broker
	t.Cleanup(func() { APIKey, Broker = oldKey, oldBroker })

	APIKey = "secret"
	Broker = "tcp://localhost:1883"

	cfg := Default()
	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, "tcp://localhost:1883", cfg.Broker)
	assert.Equal(t, "wlan0", cfg.WiFiInterface)
}
