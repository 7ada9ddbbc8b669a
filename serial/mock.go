package serial

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.bug.st/serial"
)

// pendingOutput is the tagged buffer of output staged by the last
// write. The present flag keeps the "no configured response" marker
// distinct from an empty byte buffer.
type pendingOutput struct {
	present bool
	data    []byte
}

// MockPort implements Port without hardware. A write selects a
// response from the configured table and stages it as pending output;
// reads drain that output a contiguous prefix at a time. A read asking
// for more bytes than are pending sleeps for the configured timeout,
// simulating a real port waiting for bytes that never arrive.
//
// A MockPort is created already open. Instances are fully independent;
// a mutex guards state, but the intended model is a single owner.
type MockPort struct {
	mu            sync.Mutex
	device        string
	initialDevice string
	isOpen        bool
	timeout       time.Duration
	baudRate      int
	responses     map[string]Response
	waiting       pendingOutput
	logger        *slog.Logger
}

// MockPort is a drop-in for go.bug.st/serial ports.
var (
	_ serial.Port = (*MockPort)(nil)
	_ Port        = (*MockPort)(nil)
)

// New creates a mock port from cfg. The port starts open with an empty
// pending buffer, so a first read of a positive size waits for the
// timeout just like a real idle port would.
func New(cfg Config) *MockPort {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	baudRate := cfg.BaudRate
	if baudRate == 0 {
		baudRate = DefaultBaudRate
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	responses := make(map[string]Response, len(cfg.Responses))
	for payload, response := range cfg.Responses {
		responses[payload] = response
	}

	return &MockPort{
		device:        cfg.Device,
		initialDevice: cfg.Device,
		isOpen:        true,
		timeout:       timeout,
		baudRate:      baudRate,
		responses:     responses,
		waiting:       pendingOutput{present: true, data: []byte{}},
		logger:        logger,
	}
}

// Open re-opens a previously closed port, restoring the device name it
// was created with. Pending output discarded by Close is not restored.
func (p *MockPort) Open() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isOpen {
		return newPortError(PortAlreadyOpen)
	}

	p.isOpen = true
	p.device = p.initialDevice
	p.logger.Debug("mock port opened", "device", p.device)
	return nil
}

// Close closes the port, clearing the device name and discarding any
// pending output. Closing an already closed port is a no-op.
func (p *MockPort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isOpen {
		p.isOpen = false
		p.logger.Debug("mock port closed", "device", p.device)
	}
	p.device = ""
	p.waiting = pendingOutput{present: true, data: []byte{}}
	return nil
}

// Write stages the response configured for data as pending output,
// unconditionally replacing whatever a previous write left unread. The
// written bytes go nowhere: only their lookup in the response table
// matters.
func (p *MockPort) Write(data []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.isOpen {
		return 0, newPortError(PortClosed)
	}

	response, found := p.responses[string(data)]
	if !found {
		p.waiting = pendingOutput{}
		p.logger.Debug("write has no configured response",
			"device", p.device,
			"data", fmt.Sprintf("% X", data),
		)
		return len(data), nil
	}

	p.waiting = response.resolve(data)
	p.logger.Debug("write staged response",
		"device", p.device,
		"data", fmt.Sprintf("% X", data),
		"pending", len(p.waiting.data),
	)
	return len(data), nil
}

// WriteString writes the UTF-8 bytes of s
func (p *MockPort) WriteString(s string) (int, error) {
	return p.Write([]byte(s))
}

// ReadN reads up to size bytes of pending output, simulating the size
// policy of a real port read:
//
//   - the last write had no configured response: a nil slice comes back
//     immediately, whatever the size, and the marker stays until the
//     next write
//   - size < pending: the first size bytes come back, the remainder
//     stays for a later read
//   - size == pending: everything comes back
//   - size > pending: the call sleeps for the configured timeout, then
//     returns whatever was pending, possibly nothing
//
// A nil result means no data was present; a non-nil empty result means
// the pending output was empty or drained.
func (p *MockPort) ReadN(size int) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if size < 0 {
		return nil, newPortErrorf(InvalidReadSize, "given: %d", size)
	}
	if !p.isOpen {
		return nil, newPortError(PortClosed)
	}

	if !p.waiting.present {
		p.logger.Debug("read with no data present", "device", p.device, "size", size)
		return nil, nil
	}

	var out []byte
	switch {
	case size < len(p.waiting.data):
		out = p.waiting.data[:size:size]
		p.waiting = pendingOutput{present: true, data: p.waiting.data[size:]}
	case size == len(p.waiting.data):
		out = p.waiting.data
		p.waiting = pendingOutput{present: true, data: []byte{}}
	default:
		// Asked for more than is pending: a real port would sit on the
		// line waiting for bytes that never arrive.
		p.logger.Debug("read under-supplied, waiting for timeout",
			"device", p.device,
			"size", size,
			"pending", len(p.waiting.data),
		)
		time.Sleep(p.timeout)
		out = p.waiting.data
		p.waiting = pendingOutput{present: true, data: []byte{}}
	}

	p.logger.Debug("read",
		"device", p.device,
		"size", size,
		"data", fmt.Sprintf("% X", out),
	)
	return out, nil
}

// Read implements io.Reader, reading up to len(buf) bytes of pending
// output under the same policy as ReadN. A write with no configured
// response reads as zero bytes.
func (p *MockPort) Read(buf []byte) (int, error) {
	data, err := p.ReadN(len(buf))
	if err != nil {
		return 0, err
	}
	return copy(buf, data), nil
}

// InWaiting returns the number of bytes staged for reading. It is a
// pure query, valid even on a closed port.
func (p *MockPort) InWaiting() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.waiting.data)
}

// Device returns the device name, or "" while the port is closed
func (p *MockPort) Device() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.device
}

// IsOpen returns true if the port is currently open
func (p *MockPort) IsOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isOpen
}

// Timeout returns the read under-supply timeout fixed at construction
func (p *MockPort) Timeout() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.timeout
}

// BaudRate returns the stored baud rate. The mock never applies it.
func (p *MockPort) BaudRate() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.baudRate
}

// Drain waits until all output has been transmitted, which for a mock
// port is immediately
func (p *MockPort) Drain() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.isOpen {
		return newPortError(PortClosed)
	}
	return nil
}

// String formats the current port state for diagnostics
func (p *MockPort) String() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	waiting := "no data"
	if p.waiting.present {
		waiting = fmt.Sprintf("%d bytes", len(p.waiting.data))
	}
	return fmt.Sprintf("serial.MockPort<open=%t>(device=%q, baud=%d, timeout=%v, waiting=%s)",
		p.isOpen, p.device, p.baudRate, p.timeout, waiting)
}

// SetMode stores the new baud rate. Line settings are recorded, never
// applied.
func (p *MockPort) SetMode(mode *serial.Mode) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.isOpen {
		return newPortError(PortClosed)
	}
	if mode != nil && mode.BaudRate != 0 {
		p.baudRate = mode.BaudRate
	}
	return nil
}

// SetReadTimeout is accepted for interface compatibility and ignored;
// the mock's read timeout is fixed at construction.
func (p *MockPort) SetReadTimeout(t time.Duration) error {
	return nil
}

// ResetInputBuffer discards any pending output
func (p *MockPort) ResetInputBuffer() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.isOpen {
		return newPortError(PortClosed)
	}
	p.waiting = pendingOutput{present: true, data: []byte{}}
	return nil
}

// ResetOutputBuffer is a no-op; written data is never buffered
func (p *MockPort) ResetOutputBuffer() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.isOpen {
		return newPortError(PortClosed)
	}
	return nil
}

// SetDTR is a no-op
func (p *MockPort) SetDTR(dtr bool) error {
	return nil
}

// SetRTS is a no-op
func (p *MockPort) SetRTS(rts bool) error {
	return nil
}

// Break is a no-op
func (p *MockPort) Break(d time.Duration) error {
	return nil
}

// GetModemStatusBits reports an idle line
func (p *MockPort) GetModemStatusBits() (*serial.ModemStatusBits, error) {
	return &serial.ModemStatusBits{}, nil
}
