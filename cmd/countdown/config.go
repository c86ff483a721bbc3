package main

import (
	"time"

	"github.com/hmarton/countdown-clock/internal/countdown"
	"github.com/hmarton/countdown-clock/internal/scheduler"
)

// per-device compile-time configuration
func init() {
	wifiSSID = "WIFISSID"
	wifiPassword = "WIFIPASS"
	ntpHosts = []string{"pool.ntp.org:123", "time.nist.gov:123"}

	// countdown target, local Europe/Budapest time with DST rules applied
	tzSpec = "CET-1CEST,M3.5.0/2,M10.5.0/3"
	target = countdown.Target{Year: 2026, Month: time.April, Day: 12, Hour: 6}

	printInterval = time.Minute
	resyncInterval = 6 * time.Hour
	modeDuration = 15 * time.Second
	syncGrace = 15 * time.Second
	connectTimeout = 20 * time.Second

	// zero value: retry forever, every tick. the device is unattended, so
	// there is nobody to give up for.
	retryPolicy = scheduler.Retry{}
}
