// Package profile holds a registry of canned device dialects. A
// profile supplies a ready-made response table for one class of serial
// device, so a test suite can ask for "a modem" instead of hand-building
// the payload→response map every time.
package profile

import "dummyserial/serial"

// Profile supplies a canned response table for one class of device
type Profile interface {
	// Name returns the unique registry name, e.g. "modem"
	Name() string

	// Description returns a one-line human-readable description
	Description() string

	// Responses returns a fresh response table for the device. Callers
	// may extend or override entries before building a port from it.
	Responses() map[string]serial.Response
}
