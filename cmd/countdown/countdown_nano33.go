//go:build arduino_nano33

package main

import "machine"

// TM1637 on D2 (CLK) / D3 (DIO); WiFi via the on-board NINA-W102.
func main() {
	run(machine.D2, machine.D3)
}
