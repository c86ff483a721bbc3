package main

import (
	"machine"
	"os"
	"time"

	"github.com/hmarton/countdown-clock/internal/clock"
	"github.com/hmarton/countdown-clock/internal/countdown"
	"github.com/hmarton/countdown-clock/internal/display"
	"github.com/hmarton/countdown-clock/internal/ntp"
	"github.com/hmarton/countdown-clock/internal/scheduler"
	"github.com/hmarton/countdown-clock/internal/tm1637"
	"github.com/hmarton/countdown-clock/internal/tzrule"
	"github.com/hmarton/countdown-clock/internal/wifi"
)

var (
	// TODO better way to set these. for now, they live in config.go's init()
	wifiSSID     string
	wifiPassword string
	ntpHosts     []string
	tzSpec       string
	target       countdown.Target

	printInterval  time.Duration
	resyncInterval time.Duration
	modeDuration   time.Duration
	syncGrace      time.Duration
	connectTimeout time.Duration
	retryPolicy    scheduler.Retry
)

func blink() {
	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	led.High()
	time.Sleep(100 * time.Millisecond)
	led.Low()
	time.Sleep(100 * time.Millisecond)
}

func earlyPanic(err error) {
	for i := 0; ; i++ {
		blink()
		if i%5 == 0 {
			println(err)
		}
	}
}

func run(clk, dio machine.Pin) {
	time.Sleep(time.Second)
	blink()
	println("Booting...")

	zone, err := tzrule.Parse(tzSpec)
	if err != nil {
		earlyPanic(err)
	}

	dev := tm1637.New(clk, dio)
	dev.Configure()
	dev.SetBrightness(tm1637.MaxBrightness)
	blink()

	radio := wifi.New(wifi.Config{
		SSID:           wifiSSID,
		Passphrase:     wifiPassword,
		ConnectTimeout: connectTimeout,
	})

	sched := scheduler.New(scheduler.Config{
		Target:         target,
		Zone:           zone,
		PrintInterval:  printInterval,
		ResyncInterval: resyncInterval,
		ModeDuration:   modeDuration,
		SyncGrace:      syncGrace,
		Retry:          retryPolicy,
	}, clock.NewSystem(), radio, ntp.NewClient(ntpHosts...), display.New(&dev), os.Stdout)

	sched.Run()
}
