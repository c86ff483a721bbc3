// Package tm1637 drives a TM1637 4-digit 7-segment display over two GPIO pins.
//
// based on https://github.com/tinygo-org/drivers/blob/release/tm1637/tm1637.go,
// reworked to expose raw segment writes for the dash pattern and zero-suppressed
// rendering.
package tm1637

import (
	"machine"
	"time"

	"github.com/hmarton/countdown-clock/internal/sevenseg"
)

const (
	cmdData = 0x40 // write data, auto-increment address
	cmdAddr = 0xc0 // start at digit 0
	cmdCtrl = 0x88 // display on, brightness in low 3 bits

	// MaxBrightness is the brightest of the 8 duty-cycle steps.
	MaxBrightness = 7

	bitDelay = 5 * time.Microsecond
)

type Device struct {
	clk        machine.Pin
	dio        machine.Pin
	brightness uint8
}

func New(clk, dio machine.Pin) Device {
	return Device{clk: clk, dio: dio, brightness: MaxBrightness}
}

func (d *Device) Configure() {
	d.clk.Configure(machine.PinConfig{Mode: machine.PinOutput})
	d.dio.Configure(machine.PinConfig{Mode: machine.PinOutput})
	d.clk.High()
	d.dio.High()
	d.Clear()
}

// SetBrightness sets the duty cycle, 0 (dimmest) to 7.
func (d *Device) SetBrightness(b uint8) {
	if b > MaxBrightness {
		b = MaxBrightness
	}
	d.brightness = b
	d.command(cmdCtrl | d.brightness)
}

func (d *Device) Clear() {
	d.WriteSegments([sevenseg.Digits]byte{})
}

// ShowValue renders a value using the display conventions: no leading zeros,
// clamped to 9999, all dashes when negative.
func (d *Device) ShowValue(n int32) {
	d.WriteSegments(sevenseg.Encode(n))
}

// WriteSegments writes raw segment bytes, leftmost digit first.
func (d *Device) WriteSegments(segs [sevenseg.Digits]byte) {
	d.command(cmdData)
	d.start()
	d.writeByte(cmdAddr)
	for _, s := range segs {
		d.writeByte(s)
	}
	d.stop()
	d.command(cmdCtrl | d.brightness)
}

func (d *Device) command(b byte) {
	d.start()
	d.writeByte(b)
	d.stop()
}

// start pulls DIO low while CLK is high.
func (d *Device) start() {
	d.clk.High()
	d.dio.High()
	d.wait()
	d.dio.Low()
	d.wait()
	d.clk.Low()
}

// stop raises DIO while CLK is high.
func (d *Device) stop() {
	d.clk.Low()
	d.dio.Low()
	d.wait()
	d.clk.High()
	d.wait()
	d.dio.High()
	d.wait()
}

// writeByte shifts a byte out LSB first and clocks through the ack slot.
func (d *Device) writeByte(b byte) {
	for i := 0; i < 8; i++ {
		d.clk.Low()
		if b&1 != 0 {
			d.dio.High()
		} else {
			d.dio.Low()
		}
		d.wait()
		d.clk.High()
		d.wait()
		b >>= 1
	}
	// ack slot; the controller always acks, so the level is not checked
	d.clk.Low()
	d.dio.High()
	d.wait()
	d.clk.High()
	d.wait()
	d.clk.Low()
}

func (d *Device) wait() {
	time.Sleep(bitDelay)
}
