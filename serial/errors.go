package serial

import "fmt"

// PortErrorCode identifies the kind of failure reported by a PortError
type PortErrorCode int

const (
	// PortClosed is returned when writing or reading a port that is not open
	PortClosed PortErrorCode = iota
	// PortAlreadyOpen is returned by Open on a port that is already open
	PortAlreadyOpen
	// InvalidReadSize is returned when a negative read size is requested
	InvalidReadSize
)

// PortError is the error type returned by mock port operations
type PortError struct {
	code   PortErrorCode
	detail string
}

// Error implements the error interface
func (e *PortError) Error() string {
	var msg string
	switch e.code {
	case PortClosed:
		msg = "port is not open"
	case PortAlreadyOpen:
		msg = "port is already open"
	case InvalidReadSize:
		msg = "the size to read must not be negative"
	default:
		msg = "unknown port error"
	}
	if e.detail != "" {
		return fmt.Sprintf("%s (%s)", msg, e.detail)
	}
	return msg
}

// Code returns the error code
func (e *PortError) Code() PortErrorCode {
	return e.code
}

func newPortError(code PortErrorCode) *PortError {
	return &PortError{code: code}
}

func newPortErrorf(code PortErrorCode, format string, args ...interface{}) *PortError {
	return &PortError{code: code, detail: fmt.Sprintf(format, args...)}
}
