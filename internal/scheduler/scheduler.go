// Package scheduler runs the firmware's cooperative polling loop: WiFi
// reconnection, NTP sync, countdown evaluation, console reporting, and
// display-mode switching, each gated by its own uptime timer.
package scheduler

import (
	"fmt"
	"io"
	"time"

	"github.com/hmarton/countdown-clock/internal/clock"
	"github.com/hmarton/countdown-clock/internal/countdown"
	"github.com/hmarton/countdown-clock/internal/display"
	"github.com/hmarton/countdown-clock/internal/tzrule"
)

// NetState tracks the network/time-sync state machine.
type NetState uint8

const (
	StateDisconnected NetState = iota
	StateConnecting
	StateUnsynced // link up, clock not yet confirmed
	StateSynced
)

// Connector is the wireless link. Connect makes one bounded attempt; Connected
// is a cheap status read.
type Connector interface {
	Connect() error
	Connected() bool
	SSID() string
	LocalAddr() string
}

// TimeSyncer issues one network time-sync request.
type TimeSyncer interface {
	Sync() error
}

// Retry is the policy for failed connection attempts. The zero value retries
// forever with no extra delay beyond the tick cadence.
type Retry struct {
	MaxAttempts int           // 0 means unlimited
	Initial     time.Duration // wait after the first failure
	Max         time.Duration // cap on the backoff; 0 means no growth
}

// wait returns how long to hold off after the given number of consecutive
// failures, doubling from Initial up to Max.
func (r Retry) wait(failures int) time.Duration {
	if failures <= 0 || r.Initial == 0 {
		return 0
	}
	if r.Max == 0 {
		return r.Initial
	}
	d := r.Initial
	for i := 1; i < failures; i++ {
		d *= 2
		if d >= r.Max {
			break
		}
	}
	if d > r.Max {
		d = r.Max
	}
	return d
}

type Config struct {
	Target countdown.Target
	Zone   tzrule.Zone

	PrintInterval  time.Duration // cadence of the change-only console report
	ResyncInterval time.Duration // periodic NTP resync once synchronized
	ModeDuration   time.Duration // how long each display mode is shown
	SyncGrace      time.Duration // fast-retry window for the initial sync
	Tick           time.Duration // sleep between loop iterations

	Retry Retry
}

func (c *Config) applyDefaults() {
	if c.PrintInterval == 0 {
		c.PrintInterval = time.Minute
	}
	if c.ResyncInterval == 0 {
		c.ResyncInterval = 6 * time.Hour
	}
	if c.ModeDuration == 0 {
		c.ModeDuration = 15 * time.Second
	}
	if c.SyncGrace == 0 {
		c.SyncGrace = 15 * time.Second
	}
	if c.Tick == 0 {
		c.Tick = time.Second
	}
}

// Scheduler holds every timer and the last-reported value, so each step is a
// function of this context plus the injected clock.
type Scheduler struct {
	cfg  Config
	clk  clock.Clock
	net  Connector
	sync TimeSyncer
	disp *display.Display
	log  io.Writer

	state        NetState
	lastReported int64

	// uptime snapshots, compared by unsigned subtraction so counter wrap is
	// handled
	lastPrint      uint32
	lastSync       uint32
	lastModeSwitch uint32
	lastAttempt    uint32

	failures  int
	attempted bool

	printMs  uint32
	resyncMs uint32
	modeMs   uint32
	graceMs  uint32
}

func New(cfg Config, clk clock.Clock, net Connector, sync TimeSyncer, disp *display.Display, log io.Writer) *Scheduler {
	cfg.applyDefaults()
	now := clk.Millis()
	return &Scheduler{
		cfg:            cfg,
		clk:            clk,
		net:            net,
		sync:           sync,
		disp:           disp,
		log:            log,
		lastReported:   countdown.Sentinel,
		lastPrint:      now,
		lastSync:       now,
		lastModeSwitch: now,
		printMs:        uint32(cfg.PrintInterval / time.Millisecond),
		resyncMs:       uint32(cfg.ResyncInterval / time.Millisecond),
		modeMs:         uint32(cfg.ModeDuration / time.Millisecond),
		graceMs:        uint32(cfg.SyncGrace / time.Millisecond),
	}
}

// State reports the current network/sync state.
func (s *Scheduler) State() NetState {
	return s.state
}

// Run loops forever: one Tick per cfg.Tick. Only the connection attempt inside
// a tick blocks for longer than the sleep.
func (s *Scheduler) Run() {
	s.disp.Update(countdown.Sentinel)
	for {
		s.Tick()
		time.Sleep(s.cfg.Tick)
	}
}

// Tick performs one scheduler iteration.
func (s *Scheduler) Tick() {
	s.maintainNetwork(s.clk.Millis())
	// a connect attempt blocks for up to the connect timeout, so the counter is
	// re-read for the remaining timers
	now := s.clk.Millis()
	s.maintainSync(now)

	if now-s.lastPrint >= s.printMs {
		s.reportIfNeeded(false)
		s.lastPrint = now
	}

	if now-s.lastModeSwitch >= s.modeMs {
		s.disp.Toggle()
		s.lastModeSwitch = now
		// refresh with the current value; the console only prints on change
		s.disp.Update(s.hours())
	}

	// until the first valid report, force one every tick so the first synced
	// value appears immediately
	if s.lastReported < 0 {
		s.reportIfNeeded(true)
	}
}

func (s *Scheduler) hours() int64 {
	return countdown.HoursRemaining(s.clk.Now(), s.cfg.Target, s.cfg.Zone)
}

// reportIfNeeded re-evaluates the countdown and emits one console line when the
// value changed or the report is forced. The printed hour count is one less
// than the computed value, matching the display's hours view; the days
// breakdown uses the unadjusted value.
func (s *Scheduler) reportIfNeeded(force bool) {
	hours := s.hours()
	if hours < 0 {
		if force {
			fmt.Fprintln(s.log, "[INFO] Waiting for time sync...")
		}
		s.disp.Update(countdown.Sentinel)
		return
	}
	if force || hours != s.lastReported {
		days := hours / 24
		rem := hours % 24
		fmt.Fprintf(s.log, "[RESULT] Hours left until %s: %d (~ %d days %d h)\n",
			s.cfg.Target, hours-1, days, rem)
		s.lastReported = hours
		s.disp.Update(hours)
	}
}

func (s *Scheduler) maintainNetwork(now uint32) {
	if s.net.Connected() {
		if s.state == StateDisconnected || s.state == StateConnecting {
			s.state = StateUnsynced
		}
		return
	}

	if s.state != StateConnecting {
		s.state = StateDisconnected
	}
	if s.cfg.Retry.MaxAttempts > 0 && s.failures >= s.cfg.Retry.MaxAttempts {
		return
	}
	if s.attempted {
		wait := uint32(s.cfg.Retry.wait(s.failures) / time.Millisecond)
		if now-s.lastAttempt < wait {
			return
		}
	}

	s.state = StateConnecting
	s.attempted = true
	s.lastAttempt = now
	fmt.Fprintf(s.log, "[INFO] Connecting to WiFi SSID '%s'...\n", s.net.SSID())
	if err := s.net.Connect(); err != nil {
		s.failures++
		s.state = StateDisconnected
		fmt.Fprintf(s.log, "[ERROR] WiFi connection failed: %v\n", err)
		return
	}
	s.failures = 0
	s.state = StateUnsynced
	fmt.Fprintf(s.log, "[INFO] WiFi connected. IP: %s\n", s.net.LocalAddr())
	// first sync request immediately after association
	s.requestSync(s.clk.Millis())
}

func (s *Scheduler) maintainSync(now uint32) {
	if s.state == StateDisconnected || s.state == StateConnecting {
		return
	}
	if !countdown.Synced(s.clk.Now()) {
		s.state = StateUnsynced
		if now-s.lastSync >= s.graceMs {
			fmt.Fprintln(s.log, "[INFO] Retrying initial NTP sync...")
			s.requestSync(now)
		}
		return
	}
	s.state = StateSynced
	if now-s.lastSync >= s.resyncMs {
		fmt.Fprintln(s.log, "[INFO] Periodic NTP resync...")
		s.requestSync(now)
	}
}

func (s *Scheduler) requestSync(now uint32) {
	if err := s.sync.Sync(); err != nil {
		fmt.Fprintf(s.log, "[WARN] NTP sync failed: %v\n", err)
	}
	s.lastSync = now
}
