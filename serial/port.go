// Package serial provides a mock serial port for testing purposes.
//
// A MockPort mimics the behavior of a real serial port: writes select a
// canned response from a configured table, and subsequent reads drain
// that response the way a real port would, including the timeout wait
// when a read asks for more bytes than are pending. It is a drop-in
// substitute for go.bug.st/serial ports in test suites exercising code
// that talks to a serial device without real hardware.
package serial

import (
	"io"
	"log/slog"
	"time"
)

// Default settings applied by New when the corresponding Config field
// is left zero.
const (
	DefaultTimeout  = 2 * time.Second
	DefaultBaudRate = 9600
)

// Config contains mock serial port settings
type Config struct {
	// Device is the port identifier, e.g. "/dev/ttyMOCK0". Restored on
	// re-open after a close.
	Device string

	// Responses maps an exact written payload (as a byte string) to the
	// response staged for subsequent reads. Lookup is exact-match only.
	Responses map[string]Response

	// Timeout is how long a read waits when asked for more bytes than
	// are pending. Zero means DefaultTimeout; a negative value disables
	// the wait.
	Timeout time.Duration

	// BaudRate is stored for diagnostics but never applied.
	BaudRate int

	// Logger receives debug traces of port activity. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// Port defines the interface for serial port operations
type Port interface {
	io.ReadWriteCloser

	// Drain waits until all output has been transmitted
	Drain() error

	// Device returns the device path
	Device() string

	// IsOpen returns true if the port is currently open
	IsOpen() bool

	// InWaiting returns the number of bytes staged for reading
	InWaiting() int
}
