// Package wifi associates with a wireless network through whatever netlink
// device the board provides.
package wifi

import (
	"time"

	"tinygo.org/x/drivers/netdev"
	"tinygo.org/x/drivers/netlink"
	"tinygo.org/x/drivers/netlink/probe"
)

type Config struct {
	SSID       string
	Passphrase string

	// ConnectTimeout bounds a single association attempt.
	ConnectTimeout time.Duration
}

// Radio wraps the board's netlink device. Link state is tracked from netlink
// events, so Connected is a cheap status read for the scheduler's poll loop.
type Radio struct {
	cfg   Config
	link  netlink.Netlinker
	dev   netdev.Netdever
	up    bool
	ready bool
}

func New(cfg Config) *Radio {
	if cfg.ConnectTimeout == 0 {
		cfg.ConnectTimeout = 20 * time.Second
	}
	return &Radio{cfg: cfg}
}

func (r *Radio) Connected() bool {
	return r.up
}

func (r *Radio) SSID() string {
	return r.cfg.SSID
}

// Connect makes one bounded association attempt. The first call probes and
// initializes the board's WiFi co-processor.
func (r *Radio) Connect() error {
	if !r.ready {
		r.link, r.dev = probe.Probe()
		r.link.NetNotify(func(e netlink.Event) {
			r.up = e == netlink.EventNetUp
		})
		time.Sleep(time.Second)
		r.ready = true
	}

	err := r.link.NetConnect(&netlink.ConnectParams{
		Ssid:           r.cfg.SSID,
		Passphrase:     r.cfg.Passphrase,
		AuthType:       netlink.AuthTypeWPA2,
		ConnectTimeout: r.cfg.ConnectTimeout,
	})
	if err != nil {
		return err
	}
	r.up = true
	return nil
}

// LocalAddr returns the DHCP-assigned address, for the connect log line.
func (r *Radio) LocalAddr() string {
	if r.dev == nil {
		return ""
	}
	addr, err := r.dev.Addr()
	if err != nil {
		return ""
	}
	return addr.String()
}
