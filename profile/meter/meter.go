// Package meter provides a canned energy-meter dialect. The meter
// answers a poll with an XML frame carrying the current power draw and
// temperature, in the style of CurrentCost-type monitors.
package meter

import (
	"dummyserial/profile"
	"dummyserial/serial"
)

func init() {
	profile.MustRegister(Meter{})
}

// Meter is a mock energy meter polled over the serial line
type Meter struct{}

// Name returns the registry name
func (Meter) Name() string {
	return "meter"
}

// Description returns a one-line description
func (Meter) Description() string {
	return "energy meter answering polls with XML readings"
}

// Responses returns the poll command table
func (Meter) Responses() map[string]serial.Response {
	return map[string]serial.Response{
		"READ\r\n":   serial.StaticString("<msg><src>DM128-v1.0</src><ch1><watts>00350</watts></ch1><tmpr>21.4</tmpr></msg>\n"),
		"TEMP\r\n":   serial.StaticString("<msg><src>DM128-v1.0</src><tmpr>21.4</tmpr></msg>\n"),
		"SERIAL\r\n": serial.StaticString("<msg><src>DM128-v1.0</src><sn>003768</sn></msg>\n"),
	}
}
