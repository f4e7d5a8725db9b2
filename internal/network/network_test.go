package network

import (
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linkWith(iface *net.Interface, addrs []net.Addr, err error) *InterfaceLink {
	return &InterfaceLink{
		Name: "wlan0",
		lookup: func(string) (*net.Interface, []net.Addr, error) {
			return iface, addrs, err
		},
	}
}

func ipNet(s string) *net.IPNet {
	ip, n, _ := net.ParseCIDR(s)
	n.IP = ip
	return n
}

func TestInterfaceLinkConnected(t *testing.T) {
	up := &net.Interface{Name: "wlan0", Flags: net.FlagUp}
	down := &net.Interface{Name: "wlan0"}

	tests := []struct {
		name  string
		iface *net.Interface
		addrs []net.Addr
		err   error
		want  bool
	}{
		{"up with address", up, []net.Addr{ipNet("192.168.1.42/24")}, nil, true},
		{"up with ipv6 global", up, []net.Addr{ipNet("2001:db8::1/64")}, nil, true},
		{"up link-local only", up, []net.Addr{ipNet("fe80::1/64"), ipNet("169.254.3.4/16")}, nil, false},
		{"up no address", up, nil, nil, false},
		{"down with address", down, []net.Addr{ipNet("192.168.1.42/24")}, nil, false},
		{"loopback address", up, []net.Addr{ipNet("127.0.0.1/8")}, nil, false},
		{"lookup error", nil, nil, errors.New("no such network interface"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, linkWith(tt.iface, tt.addrs, tt.err).Connected())
		})
	}
}

func TestNewInterfaceLinkMissingInterface(t *testing.T) {
	assert.False(t, NewInterfaceLink("does-not-exist0").Connected())
}

type scriptedLink struct {
	results []bool
	calls   int
}

func (s *scriptedLink) Connected() bool {
	r := s.results[s.calls]
	if s.calls < len(s.results)-1 {
		s.calls++
	}
	return r
}

func TestWaitConnectedEventually(t *testing.T) {
	link := &scriptedLink{results: []bool{false, false, true}}
	var slept []time.Duration

	err := WaitConnected(link, 15, time.Second, func(d time.Duration) { slept = append(slept, d) })

	require.NoError(t, err)
	assert.Equal(t, []time.Duration{time.Second, time.Second}, slept)
}

func TestWaitConnectedGivesUp(t *testing.T) {
	link := &scriptedLink{results: []bool{false}}
	slept := 0

	err := WaitConnected(link, 15, time.Second, func(time.Duration) { slept++ })

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotConnected))
	assert.Equal(t, 14, slept, "no sleep after the final attempt")
}

func TestReadInfo(t *testing.T) {
	t.Setenv(envNetworkStatus, "")
	assert.Nil(t, ReadInfo())

	t.Setenv(envNetworkStatus, "connected")
	t.Setenv(envNetworkType, "wifi")
	t.Setenv(envNetworkIP, "192.168.1.42")
	t.Setenv(envNetworkGateway, "192.168.1.1")
	t.Setenv(envNetworkWifiStatus, "associated")
	t.Setenv(envNetworkWifiSSID, "HomeNet")

	info := ReadInfo()
	require.NotNil(t, info)
	assert.Equal(t, "connected", info.Status)
	assert.Equal(t, "wifi", info.Type)
	assert.Equal(t, "192.168.1.42", info.IP)
	assert.Equal(t, "192.168.1.1", info.Gateway)
	assert.Equal(t, "associated", info.WifiStatus)
	assert.Equal(t, "HomeNet", info.SSID)
}
