// Package fixture turns a fixture file into live mock ports. The
// Manager owns one mock port per enabled fixture entry, each wrapped
// with traffic statistics, and hands them out to the code under test.
package fixture

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"dummyserial/config"
	"dummyserial/profile"
	"dummyserial/serial"
)

// Manager manages the mock ports described by a fixture
type Manager struct {
	config *config.Config
	ports  map[string]*managedPort
	logger *slog.Logger
	mu     sync.RWMutex
}

type managedPort struct {
	mock  *serial.MockPort
	stats *serial.PortWithStats
}

// NewManager creates a new fixture manager
func NewManager(cfg *config.Config, logger *slog.Logger) *Manager {
	return &Manager{
		config: cfg,
		ports:  make(map[string]*managedPort),
		logger: logger,
	}
}

// Build constructs a mock port for every enabled fixture entry,
// resolving profile tables and inline response entries. Inline entries
// override profile entries on a key collision.
func (m *Manager) Build() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, portCfg := range m.config.Ports {
		if !portCfg.Enabled {
			m.logger.Info("Skipping disabled port", "device", portCfg.Device)
			continue
		}

		responses, err := buildResponses(&portCfg)
		if err != nil {
			return fmt.Errorf("building responses for %s: %w", portCfg.Device, err)
		}

		mock := serial.New(serial.Config{
			Device:    portCfg.Device,
			Responses: responses,
			Timeout:   portCfg.Timeout(),
			BaudRate:  portCfg.BaudRate,
			Logger:    m.logger,
		})

		m.ports[portCfg.Device] = &managedPort{
			mock:  mock,
			stats: serial.NewPortWithStats(mock),
		}
		m.logger.Info("Built mock port",
			"device", portCfg.Device,
			"profile", portCfg.Profile,
			"responses", len(responses),
		)
	}

	if len(m.ports) == 0 {
		return fmt.Errorf("no mock ports built")
	}

	m.logger.Info("Fixture ready", "ports", len(m.ports))
	return nil
}

// buildResponses assembles a port's response table from its profile
// and inline entries
func buildResponses(portCfg *config.PortConfig) (map[string]serial.Response, error) {
	responses := make(map[string]serial.Response)

	if portCfg.Profile != "" {
		p, err := profile.Get(portCfg.Profile)
		if err != nil {
			return nil, err
		}
		for payload, response := range p.Responses() {
			responses[payload] = response
		}
	}

	for i, entry := range portCfg.Responses {
		key, err := entry.MatchKey()
		if err != nil {
			return nil, fmt.Errorf("responses[%d]: %w", i, err)
		}
		if entry.Echo {
			responses[string(key)] = serial.Echo()
			continue
		}
		reply, err := entry.ReplyBytes()
		if err != nil {
			return nil, fmt.Errorf("responses[%d]: %w", i, err)
		}
		responses[string(key)] = serial.Static(reply)
	}

	return responses, nil
}

// Port returns the mock port for a device, with statistics tracking
func (m *Manager) Port(device string) (*serial.PortWithStats, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	mp, ok := m.ports[device]
	if !ok {
		return nil, false
	}
	return mp.stats, true
}

// MockPort returns the underlying mock port for a device, for callers
// that need the full mock surface (Open, ReadN, InWaiting)
func (m *Manager) MockPort(device string) (*serial.MockPort, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	mp, ok := m.ports[device]
	if !ok {
		return nil, false
	}
	return mp.mock, true
}

// Devices returns the built device names in alphabetical order
func (m *Manager) Devices() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	devices := make([]string, 0, len(m.ports))
	for device := range m.ports {
		devices = append(devices, device)
	}
	sort.Strings(devices)
	return devices
}

// Stats returns traffic statistics for all ports
func (m *Manager) Stats() map[string]serial.Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := make(map[string]serial.Stats)
	for device, mp := range m.ports {
		stats[device] = mp.stats.Stats()
	}
	return stats
}

// PortCount returns the number of built ports
func (m *Manager) PortCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.ports)
}

// CloseAll closes every port. Ports already closed are left alone.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for device, mp := range m.ports {
		if err := mp.mock.Close(); err != nil {
			m.logger.Warn("Error closing port", "device", device, "error", err)
		}
	}
	m.logger.Info("All mock ports closed", "ports", len(m.ports))
}
