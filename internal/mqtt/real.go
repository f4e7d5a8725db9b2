package mqtt

import (
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

const (
	clientID       = "weather-station"
	publishTimeout = 5 * time.Second
)

// RealPublisher publishes to an actual MQTT broker.
//
// Connection is asynchronous: the constructor returns immediately and paho
// keeps retrying in the background. Messages published while disconnected
// are held in a ring buffer and replayed, oldest first, on (re)connect.
type RealPublisher struct {
	client paho.Client
	logger log.Logger

	mu        sync.Mutex
	buf       *ringBuffer
	connected bool
	everUp    bool // set after the first successful connect
}

// NewRealPublisher creates a publisher for the given broker and starts
// connecting in the background.
func NewRealPublisher(broker string, logger log.Logger) *RealPublisher {
	p := &RealPublisher{
		logger: logger,
		buf:    newRingBuffer(DefaultBufferSize, logger),
	}

	will, _ := FormatSystemPayload(SystemEvent{
		Timestamp: time.Now(),
		Event:     "SHUTDOWN",
		Reason:    "MQTT_DISCONNECT",
	})

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetWill(TopicSystem, string(will), 1, true).
		SetOnConnectHandler(p.onConnect).
		SetConnectionLostHandler(p.onConnectionLost)

	p.client = paho.NewClient(opts)
	p.client.Connect()

	return p
}

func (p *RealPublisher) onConnect(c paho.Client) {
	p.mu.Lock()
	p.connected = true
	reconnect := p.everUp
	p.everUp = true
	msgs, dropped := p.buf.drainAll()
	p.mu.Unlock()

	level.Info(p.logger).Log("msg", "mqtt connected", "buffered", len(msgs), "dropped", dropped)

	if reconnect {
		payload, _ := FormatSystemPayload(SystemEvent{Timestamp: time.Now(), Event: "RECONNECTED"})
		if err := p.send(bufferedMsg{topic: TopicSystem, payload: payload, qos: 1}); err != nil {
			level.Warn(p.logger).Log("msg", "failed to publish reconnected event", "err", err)
		}
	}

	for _, m := range msgs {
		if err := p.send(m); err != nil {
			level.Warn(p.logger).Log("msg", "failed to replay buffered message", "topic", m.topic, "err", err)
		}
	}
}

func (p *RealPublisher) onConnectionLost(c paho.Client, err error) {
	p.mu.Lock()
	p.connected = false
	p.mu.Unlock()
	level.Warn(p.logger).Log("msg", "mqtt connection lost", "err", err)
}

// IsConnected reports whether the broker connection is up.
func (p *RealPublisher) IsConnected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.connected
}

// PublishReading sends a reading, QoS 0 (at-most-once), not retained.
func (p *RealPublisher) PublishReading(event ReadingEvent) error {
	payload, err := FormatReadingPayload(event)
	if err != nil {
		return errors.Wrap(err, "format reading payload")
	}
	return p.publish(bufferedMsg{topic: TopicReadings, payload: payload})
}

// PublishForecast sends a forecast outcome, QoS 1.
func (p *RealPublisher) PublishForecast(event ForecastEvent) error {
	payload, err := FormatForecastPayload(event)
	if err != nil {
		return errors.Wrap(err, "format forecast payload")
	}
	return p.publish(bufferedMsg{topic: TopicForecasts, payload: payload, qos: 1})
}

// PublishSystem sends a system lifecycle event to the MQTT broker.
func (p *RealPublisher) PublishSystem(event SystemEvent) error {
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return errors.Wrap(err, "format system payload")
	}
	// QoS 1 (at-least-once) - we want to ensure delivery
	return p.publish(bufferedMsg{topic: TopicSystem, payload: payload, qos: 1, retained: event.Retained})
}

// publish sends m now, or buffers it if the broker is unreachable.
func (p *RealPublisher) publish(m bufferedMsg) error {
	p.mu.Lock()
	if !p.connected {
		p.buf.push(m)
		p.mu.Unlock()
		return nil
	}
	p.mu.Unlock()

	if err := p.send(m); err != nil {
		p.mu.Lock()
		p.buf.push(m)
		p.mu.Unlock()
		return err
	}
	return nil
}

func (p *RealPublisher) send(m bufferedMsg) error {
	token := p.client.Publish(m.topic, m.qos, m.retained, m.payload)
	if !token.WaitTimeout(publishTimeout) {
		return errors.Errorf("publish to %s timed out", m.topic)
	}
	if err := token.Error(); err != nil {
		return errors.Wrapf(err, "publish to %s", m.topic)
	}
	return nil
}

// Close disconnects from the broker.
func (p *RealPublisher) Close() error {
	p.client.Disconnect(1000) // 1 second timeout
	return nil
}
