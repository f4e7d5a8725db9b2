// Package forecast asks a remote text-generation service for a short
// weather forecast based on recent readings.
package forecast

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/sweeney/weather-station/internal/indicator"
	"github.com/sweeney/weather-station/internal/logic"
)

const (
	promptHead = "You are a weather forecaster. Based on this data (Temp C, Hum %, Light 0-4095): "
	promptTail = ". Give a very short forecast (max 12 words) for the next 1-3 hours. No markdown or asterisks."

	// DefaultSuccessBeep is how long the buzzer sounds when a forecast arrives.
	DefaultSuccessBeep = 100 * time.Millisecond
)

// Link reports whether the network is associated.
type Link interface {
	Connected() bool
}

// HTTPDoer sends an HTTP request. *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Signal is the part of the status indicator a request drives.
type Signal interface {
	Set(s indicator.State)
	Beep(d time.Duration)
}

// Client performs forecast requests.
type Client struct {
	endpoint    string
	apiKey      string
	link        Link
	signal      Signal
	doer        HTTPDoer
	successBeep time.Duration
	logger      log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the transport. The default is a plain http.Client
// with no timeout.
func WithHTTPClient(d HTTPDoer) Option {
	return func(c *Client) { c.doer = d }
}

// WithSuccessBeep sets the buzzer duration used on success.
func WithSuccessBeep(d time.Duration) Option {
	return func(c *Client) { c.successBeep = d }
}

// WithLogger sets the logger.
func WithLogger(l log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a Client posting to endpoint with apiKey.
func NewClient(endpoint, apiKey string, link Link, signal Signal, opts ...Option) *Client {
	c := &Client{
		endpoint:    endpoint,
		apiKey:      apiKey,
		link:        link,
		signal:      signal,
		doer:        &http.Client{},
		successBeep: DefaultSuccessBeep,
		logger:      log.NewNopLogger(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Request sends history to the service and classifies the outcome. It makes
// at most one attempt and never mutates history. The indicator shows busy
// while the request runs, then success or error.
//
// Callers must ensure history holds enough readings to be meaningful.
func (c *Client) Request(ctx context.Context, history []logic.Reading) logic.ForecastResult {
	c.signal.Set(indicator.Busy)

	res := c.request(ctx, history)
	if res.OK() {
		c.signal.Set(indicator.Success)
		c.signal.Beep(c.successBeep)
	} else {
		c.signal.Set(indicator.Error)
	}
	return res
}

func (c *Client) request(ctx context.Context, history []logic.Reading) logic.ForecastResult {
	if !c.link.Connected() {
		level.Warn(c.logger).Log("msg", "forecast skipped, network disconnected")
		return logic.Disconnected()
	}

	body, err := json.Marshal(newRequest(BuildPrompt(history)))
	if err != nil {
		level.Error(c.logger).Log("msg", "failed to encode forecast request", "err", err)
		return logic.TransportError()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		level.Error(c.logger).Log("msg", "failed to create forecast request", "err", err)
		return logic.TransportError()
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-goog-api-key", c.apiKey)

	start := time.Now()
	resp, err := c.doer.Do(req)
	if err != nil {
		level.Error(c.logger).Log("msg", "forecast request failed", "err", err)
		return logic.TransportError()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		level.Error(c.logger).Log("msg", "unexpected response code", "code", resp.StatusCode)
		return logic.APIError(resp.StatusCode)
	}

	text, err := decode(resp)
	if err != nil {
		level.Error(c.logger).Log("msg", "failed to decode forecast response", "err", err)
		return logic.TransportError()
	}

	level.Info(c.logger).Log("msg", "forecast received", "duration", time.Since(start), "readings", len(history))
	return logic.Success(Clean(text))
}

// BuildPrompt renders history as "(t,h,l), (t,h,l), ..." inside the
// forecaster instructions.
func BuildPrompt(history []logic.Reading) string {
	parts := make([]string, len(history))
	for i, r := range history {
		parts[i] = "(" + formatFloat(r.Temperature) + "," + formatFloat(r.Humidity) + "," + strconv.Itoa(r.Light) + ")"
	}
	return promptHead + strings.Join(parts, ", ") + promptTail
}

// Clean trims the model output, joins it onto one line and strips the
// asterisks some models still emit for emphasis.
func Clean(text string) string {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "\n", " ")
	return strings.ReplaceAll(text, "*", "")
}

// formatFloat writes the shortest exact form of v, always with a decimal
// point, so 25 reads as "25.0" and 23.4 as "23.4".
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func decode(resp *http.Response) (string, error) {
	var gr generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return "", errors.Wrap(err, "invalid json")
	}
	if len(gr.Candidates) == 0 {
		return "", errors.New("response has no candidates")
	}
	parts := gr.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return "", errors.New("candidate has no parts")
	}
	return parts[0].Text, nil
}
