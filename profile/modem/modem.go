// Package modem provides a canned GSM modem dialect speaking a minimal
// Hayes AT command set.
package modem

import (
	"fmt"
	"time"

	"dummyserial/profile"
	"dummyserial/serial"
)

func init() {
	profile.MustRegister(Modem{})
}

// Modem is a mock GSM modem. Commands must be terminated with CRLF,
// exactly as a driver would send them with echo disabled.
type Modem struct{}

// Name returns the registry name
func (Modem) Name() string {
	return "modem"
}

// Description returns a one-line description
func (Modem) Description() string {
	return "GSM modem with a minimal Hayes AT command set"
}

// Responses returns the AT command table
func (Modem) Responses() map[string]serial.Response {
	return map[string]serial.Response{
		"AT\r\n":       serial.StaticString("\r\nOK\r\n"),
		"ATE0\r\n":     serial.StaticString("\r\nOK\r\n"),
		"ATZ\r\n":      serial.StaticString("\r\nOK\r\n"),
		"ATI\r\n":      serial.StaticString("\r\nDummy Wireless Modem 100\r\nRevision: 1.0\r\n\r\nOK\r\n"),
		"AT+CGMI\r\n":  serial.StaticString("\r\nDummy Wireless\r\n\r\nOK\r\n"),
		"AT+CSQ\r\n":   serial.StaticString("\r\n+CSQ: 21,0\r\n\r\nOK\r\n"),
		"AT+CREG?\r\n": serial.StaticString("\r\n+CREG: 0,1\r\n\r\nOK\r\n"),
		"AT+CPIN?\r\n": serial.StaticString("\r\n+CPIN: READY\r\n\r\nOK\r\n"),
		"AT+CCLK?\r\n": serial.Compute(clock),
	}
}

// clock reports the modem real-time clock at the moment of the query
func clock(in []byte) []byte {
	now := time.Now().Format("06/01/02,15:04:05")
	return []byte(fmt.Sprintf("\r\n+CCLK: \"%s\"\r\n\r\nOK\r\n", now))
}
