// Command weather-station samples a DHT22 and a light sensor once a second,
// shows the readings on a 20x4 LCD, and on a button press asks a
// text-generation service for a short forecast.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/sweeney/weather-station/internal/config"
	"github.com/sweeney/weather-station/internal/display"
	"github.com/sweeney/weather-station/internal/forecast"
	"github.com/sweeney/weather-station/internal/gpio"
	"github.com/sweeney/weather-station/internal/i2cbus"
	"github.com/sweeney/weather-station/internal/indicator"
	"github.com/sweeney/weather-station/internal/logger"
	"github.com/sweeney/weather-station/internal/logic"
	"github.com/sweeney/weather-station/internal/mqtt"
	"github.com/sweeney/weather-station/internal/network"
	"github.com/sweeney/weather-station/internal/sensor"
	"github.com/sweeney/weather-station/internal/station"
	"github.com/sweeney/weather-station/internal/status"
)

func main() {
	l := logger.New(os.Stdout)
	if err := run(l, config.Default()); err != nil {
		level.Error(l).Log("msg", "fatal", "err", err)
		os.Exit(1)
	}
}

// publisher is what the daemon needs from an MQTT backend.
type publisher interface {
	mqtt.Publisher
	mqtt.ConnectionStatus
}

func run(l log.Logger, cfg config.Config) error {
	ctx := logger.ToContext(context.Background(), l)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// LED and buzzer, both off
	outputs, err := gpio.NewRealOutputs(cfg.GPIOChip, config.PinLEDR, config.PinLEDG, config.PinLEDB, config.PinBuzzer)
	if err != nil {
		return errors.Wrap(err, "init gpio outputs")
	}
	defer outputs.Close()
	ind := indicator.New(outputs, log.With(l, "component", "indicator"), nil)
	ind.Set(indicator.Off)

	// One I2C bus for the LCD backpack and the ADC
	bus, err := i2cbus.Open(cfg.I2CBus)
	if err != nil {
		return err
	}
	defer bus.Close()

	lcd, err := display.NewLCD(bus, cfg.LCDAddr, cfg.Columns, cfg.Rows)
	if err != nil {
		return errors.Wrap(err, "init lcd")
	}
	renderer := display.NewRenderer(lcd, cfg.Columns, cfg.Rows, nil, log.With(l, "component", "display"))
	defer renderer.Clear()

	renderer.Clear()
	renderer.Text(0, "Weather Station")
	renderer.Text(1, "Booting Up...")
	time.Sleep(cfg.BootScreen)

	link := network.NewInterfaceLink(cfg.WiFiInterface)
	if err := connectNetwork(link, renderer, ind, cfg, time.Sleep); err != nil {
		level.Error(l).Log("msg", "network unavailable, waiting for shutdown", "interface", cfg.WiFiInterface, "err", err)
		stop := make(chan struct{})
		go func() {
			<-sigCh
			close(stop)
		}()
		ind.Blink(indicator.Error, 500*time.Millisecond, stop)
		return nil
	}

	climate, err := sensor.NewIIOClimate(cfg.IIODevice)
	if err != nil {
		return errors.Wrap(err, "init climate sensor")
	}
	light := sensor.NewADS1115Light(bus, cfg.ADCAddr, cfg.ADCChannel, log.With(l, "component", "light"))
	sampler := sensor.NewSampler(climate, light,
		sensor.WithRetry(cfg.SensorTries, cfg.SensorRetry),
		sensor.WithLogger(log.With(l, "component", "sampler")),
	)

	pub := newPublisher(cfg.Broker, l)
	defer pub.Close()

	// Initialize status tracker (before STARTUP so snapshot is available)
	tracker := status.NewTracker(time.Now(), status.Config{
		TickMs:      cfg.Tick.Milliseconds(),
		DebounceMs:  cfg.Debounce.Milliseconds(),
		HeartbeatMs: cfg.Heartbeat.Milliseconds(),
		HistorySize: cfg.HistorySize,
		MinHistory:  cfg.MinHistory,
		Broker:      cfg.Broker,
		Endpoint:    cfg.Endpoint,
	})
	if net := network.ReadInfo(); net != nil {
		tracker.SetNetwork(net)
	}

	// Publish startup event with full status snapshot
	snap := tracker.Snapshot()
	level.Debug(l).Log("msg", "initial status", "status", string(status.FormatJSON(snap)))
	startupEvent := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := pub.PublishSystem(startupEvent); err != nil {
		level.Warn(l).Log("msg", "failed to publish startup event", "err", err)
	}

	client := forecast.NewClient(cfg.Endpoint, cfg.APIKey, link, ind,
		forecast.WithSuccessBeep(cfg.SuccessBeep),
		forecast.WithLogger(log.With(l, "component", "forecast")),
	)

	debouncer := logic.NewDebouncer(cfg.Debounce)
	st := station.New(station.Deps{
		Sampler:    sampler,
		Debouncer:  debouncer,
		Forecaster: client,
		Renderer:   renderer,
		Signal:     ind,
		Publisher:  pub,
		Tracker:    tracker,
		Logger:     log.With(l, "component", "station"),
	}, station.Config{
		HistorySize: cfg.HistorySize,
		MinHistory:  cfg.MinHistory,
		AckBeep:     cfg.AckBeep,
		PageDwell:   cfg.PageDwell,
		HoldTime:    cfg.HoldTime,
	})

	// Button edges only start arriving once the station is ready
	button, err := gpio.NewRealButton(cfg.GPIOChip, config.PinButton, func(ts time.Duration) {
		if debouncer.OnTriggerEdge(ts) {
			level.Debug(l).Log("msg", "forecast requested")
		}
	})
	if err != nil {
		return errors.Wrap(err, "init button")
	}
	defer button.Close()

	renderer.Clear()
	renderer.Text(0, "System Ready.")
	time.Sleep(cfg.BootScreen)
	renderer.Clear()

	level.Info(l).Log("msg", "started", "tick", cfg.Tick, "history", cfg.HistorySize, "broker", cfg.Broker, "heartbeat", cfg.Heartbeat)

	ticker := time.NewTicker(cfg.Tick)
	defer ticker.Stop()

	defer ind.Set(indicator.Off)
	return runLoop(ctx, st, pub, pub, tracker, cfg.Heartbeat, l, time.Now, ticker.C, sigCh)
}

func newPublisher(broker string, l log.Logger) publisher {
	if broker == "" {
		level.Info(l).Log("msg", "no mqtt broker configured, publishing disabled")
		return mqtt.NopPublisher{}
	}
	return mqtt.NewRealPublisher(broker, log.With(l, "component", "mqtt"))
}

// connectNetwork shows progress on the display while waiting for the link.
func connectNetwork(link network.Checker, r *display.Renderer, ind *indicator.Indicator, cfg config.Config, sleep func(time.Duration)) error {
	r.Clear()
	r.Text(0, "Connecting to WiFi")
	ind.Set(indicator.Connecting)

	if err := network.WaitConnected(link, cfg.ConnectTries, cfg.ConnectBackoff, sleep); err != nil {
		r.Clear()
		r.Text(0, "WiFi Failed!")
		ind.Set(indicator.Error)
		return err
	}

	r.Clear()
	r.Text(0, "WiFi Connected!")
	ind.Set(indicator.Connected)
	ind.Beep(cfg.AckBeep)
	sleep(cfg.BootScreen)
	return nil
}

func runLoop(ctx context.Context, st *station.Station, publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker, heartbeat time.Duration, l log.Logger, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	hb := logic.NewHeartbeat(now())

	for {
		select {
		case s := <-sig:
			level.Info(l).Log("msg", "shutting down", "signal", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			event := mqtt.SystemEvent{
				Timestamp: now(),
				Event:     "SHUTDOWN",
				Reason:    signalName,
				Retained:  true,
			}
			if tracker != nil {
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
				snap := tracker.Snapshot()
				event.RawPayload = status.FormatStatusEvent(snap, "SHUTDOWN", signalName)
			}
			if err := publisher.PublishSystem(event); err != nil {
				level.Warn(l).Log("msg", "failed to publish shutdown event", "err", err)
			}
			return nil

		case <-tick:
			t := now()
			st.Tick(ctx, t)

			if tracker != nil && mqttStatus != nil {
				tracker.SetMQTTConnected(mqttStatus.IsConnected())
			}

			if hbData := hb.Check(t, heartbeat); hbData != nil {
				level.Info(l).Log("msg", "heartbeat", "uptime", hbData.Uptime, "history", len(st.History()))

				hbEvent := mqtt.SystemEvent{
					Timestamp: hbData.Timestamp,
					Event:     "HEARTBEAT",
				}
				if tracker != nil {
					// Refresh network info for heartbeat
					if net := network.ReadInfo(); net != nil {
						tracker.SetNetwork(net)
					}
					snap := tracker.Snapshot()
					hbEvent.RawPayload = status.FormatStatusEvent(snap, "HEARTBEAT", "")
				}
				if err := publisher.PublishSystem(hbEvent); err != nil {
					level.Warn(l).Log("msg", "heartbeat publish error", "err", err)
				}
			}
		}
	}
}
