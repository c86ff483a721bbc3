//go:build metro_m4_airlift

package main

import "machine"

// TM1637 on D2 (CLK) / D3 (DIO); WiFi via the AirLift ESP32 co-processor.
func main() {
	run(machine.D2, machine.D3)
}
