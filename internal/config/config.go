// Package config holds the build-time parameters of the weather station.
//
// There are no flags or config files. Site-specific values are package
// variables set at link time, e.g.
//
//	go build -ldflags "-X github.com/sweeney/weather-station/internal/config.APIKey=..." ./cmd/weather-station
package config

import "time"

// Link-time settings.
var (
	// APIKey is sent as the X-goog-api-key header.
	APIKey = ""

	// Broker is the MQTT broker URL. Empty disables publishing.
	Broker = ""

	// WiFiInterface is the network interface that must be associated before the loop starts.
	WiFiInterface = "wlan0"
)

// DefaultEndpoint is the text-generation endpoint used for forecasts.
const DefaultEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash:generateContent"

// Pin definitions (BCM numbering).
const (
	PinButton = 16
	PinLEDR   = 17
	PinLEDG   = 18
	PinLEDB   = 5
	PinBuzzer = 27
)

// Config contains every fixed parameter of the station.
type Config struct {
	GPIOChip string

	// Sensors
	IIODevice   string // sysfs directory of the DHT22 IIO device
	I2CBus      string // periph bus name, empty = first available
	LCDAddr     uint8
	ADCAddr     uint16
	ADCChannel  int
	SensorTries int
	SensorRetry time.Duration

	// Display
	Columns    int
	Rows       int
	PageDwell  time.Duration
	HoldTime   time.Duration
	BootScreen time.Duration // how long each boot message stays up

	// Loop
	Tick        time.Duration
	Debounce    time.Duration
	HistorySize int
	MinHistory  int
	AckBeep     time.Duration
	SuccessBeep time.Duration
	Heartbeat   time.Duration

	// Network
	Endpoint       string
	APIKey         string
	Broker         string
	WiFiInterface  string
	ConnectTries   int
	ConnectBackoff time.Duration
}

// Default returns the configuration the station is built with.
func Default() Config {
	return Config{
		GPIOChip: "gpiochip0",

		IIODevice:   "/sys/bus/iio/devices/iio:device0",
		I2CBus:      "",
		LCDAddr:     0x27,
		ADCAddr:     0x48,
		ADCChannel:  0,
		SensorTries: 3,
		SensorRetry: 500 * time.Millisecond,

		Columns:    20,
		Rows:       4,
		PageDwell:  4 * time.Second,
		HoldTime:   3 * time.Second,
		BootScreen: 2 * time.Second,

		Tick:        time.Second,
		Debounce:    500 * time.Millisecond,
		HistorySize: 100,
		MinHistory:  10,
		AckBeep:     50 * time.Millisecond,
		SuccessBeep: 100 * time.Millisecond,
		Heartbeat:   15 * time.Minute,

		Endpoint:       DefaultEndpoint,
		APIKey:         APIKey,
		Broker:         Broker,
		WiFiInterface:  WiFiInterface,
		ConnectTries:   15,
		ConnectBackoff: time.Second,
	}
}
