// Package network reports whether the station has a usable network link and
// gates start-up on it.
package network

import (
	"net"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sweeney/weather-station/internal/status"
)

// ErrNotConnected is returned by WaitConnected when the link never came up.
var ErrNotConnected = errors.New("network: not connected")

// InterfaceLink checks a named interface for an up link with a non-loopback
// address.
type InterfaceLink struct {
	Name string

	// lookup is replaced in tests.
	lookup func(name string) (*net.Interface, []net.Addr, error)
}

// NewInterfaceLink creates a link checker for the named interface.
func NewInterfaceLink(name string) *InterfaceLink {
	return &InterfaceLink{Name: name, lookup: lookupInterface}
}

// Connected reports whether the interface is up and has an address.
func (l *InterfaceLink) Connected() bool {
	iface, addrs, err := l.lookup(l.Name)
	if err != nil || iface == nil {
		return false
	}
	if iface.Flags&net.FlagUp == 0 {
		return false
	}
	for _, a := range addrs {
		ipn, ok := a.(*net.IPNet)
		if !ok {
			continue
		}
		if !ipn.IP.IsLoopback() && !ipn.IP.IsLinkLocalUnicast() {
			return true
		}
	}
	return false
}

func lookupInterface(name string) (*net.Interface, []net.Addr, error) {
	iface, err := net.InterfaceByName(name)
	if err != nil {
		return nil, nil, err
	}
	addrs, err := iface.Addrs()
	if err != nil {
		return nil, nil, err
	}
	return iface, addrs, nil
}

// Checker is anything that can report link state.
type Checker interface {
	Connected() bool
}

// WaitConnected polls link up to tries times, sleeping interval between
// polls. It returns nil as soon as the link is up and ErrNotConnected once
// every poll has failed.
func WaitConnected(link Checker, tries int, interval time.Duration, sleep func(time.Duration)) error {
	if sleep == nil {
		sleep = time.Sleep
	}
	for i := 0; i < tries; i++ {
		if link.Connected() {
			return nil
		}
		if i < tries-1 {
			sleep(interval)
		}
	}
	return errors.Wrapf(ErrNotConnected, "after %d attempts", tries)
}

// pi-helper env var names (written to /run/pi-helper.env).
const (
	envNetworkType       = "NETWORK_TYPE"
	envNetworkIP         = "NETWORK_IP"
	envNetworkStatus     = "NETWORK_STATUS"
	envNetworkGateway    = "NETWORK_GATEWAY"
	envNetworkWifiStatus = "NETWORK_WIFI_STATUS"
	envNetworkWifiSSID   = "NETWORK_WIFI_SSID"
)

// ReadInfo returns the network details published by pi-helper, or nil when
// they are not available.
func ReadInfo() *status.NetworkInfo {
	s := os.Getenv(envNetworkStatus)
	if s == "" {
		return nil
	}
	return &status.NetworkInfo{
		Type:       os.Getenv(envNetworkType),
		IP:         os.Getenv(envNetworkIP),
		Status:     s,
		Gateway:    os.Getenv(envNetworkGateway),
		WifiStatus: os.Getenv(envNetworkWifiStatus),
		SSID:       os.Getenv(envNetworkWifiSSID),
	}
}
