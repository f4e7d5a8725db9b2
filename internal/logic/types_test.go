package logic

import "testing"

func TestReadingFahrenheit(t *testing.T) {
	cases := []struct {
		c, f float64
	}{
		{0, 32},
		{100, 212},
		{-40, -40},
		{25, 77},
	}
	for _, tc := range cases {
		if got := (Reading{Temperature: tc.c}).Fahrenheit(); got != tc.f {
			t.Errorf("%v°C: expected %v°F, got %v", tc.c, tc.f, got)
		}
	}
}

func TestForecastResultMessage(t *testing.T) {
	cases := []struct {
		result ForecastResult
		want   string
	}{
		{Success("Clear skies ahead"), "Clear skies ahead"},
		{InsufficientData(), "Not enough data yet. Please wait."},
		{Disconnected(), "WiFi Disconnected"},
		{APIError(503), "API Error 503"},
		{TransportError(), "Network Error"},
	}
	for _, tc := range cases {
		if got := tc.result.Message(); got != tc.want {
			t.Errorf("%s: expected %q, got %q", tc.result.Kind, tc.want, got)
		}
	}
}

func TestForecastResultOK(t *testing.T) {
	if !Success("x").OK() {
		t.Error("Success should be OK")
	}
	for _, r := range []ForecastResult{InsufficientData(), Disconnected(), APIError(500), TransportError()} {
		if r.OK() {
			t.Errorf("%s should not be OK", r.Kind)
		}
	}
}
