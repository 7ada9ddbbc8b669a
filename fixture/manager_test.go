package fixture

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dummyserial/config"

	_ "dummyserial/profile/modem"
)

func testConfig() *config.Config {
	return &config.Config{
		Ports: []config.PortConfig{
			{
				Device:     "/dev/ttyMOCK0",
				BaudRate:   9600,
				TimeoutSec: 0.05,
				Enabled:    true,
				Responses: []config.ResponseConfig{
					{Match: "PING", Reply: "PONG"},
					{MatchHex: "01 03", ReplyHex: "01 03 02 00 2A"},
					{Match: "LOOP", Echo: true},
				},
			},
			{
				Device:     "/dev/ttyGSM0",
				BaudRate:   115200,
				TimeoutSec: 0.05,
				Profile:    "modem",
				Enabled:    true,
				Responses: []config.ResponseConfig{
					// Inline entry overriding the profile's table
					{Match: "ATI\r\n", Reply: "\r\nCustom Modem\r\n\r\nOK\r\n"},
				},
			},
			{
				Device:  "/dev/ttyOFF0",
				Enabled: false,
			},
		},
	}
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m := NewManager(testConfig(), slog.Default())
	require.NoError(t, m.Build())
	return m
}

func TestBuildSkipsDisabledPorts(t *testing.T) {
	m := newTestManager(t)

	assert.Equal(t, 2, m.PortCount())
	assert.Equal(t, []string{"/dev/ttyGSM0", "/dev/ttyMOCK0"}, m.Devices())

	_, ok := m.Port("/dev/ttyOFF0")
	assert.False(t, ok)
}

func TestBuildFailsWithoutEnabledPorts(t *testing.T) {
	cfg := testConfig()
	for i := range cfg.Ports {
		cfg.Ports[i].Enabled = false
	}

	m := NewManager(cfg, slog.Default())
	err := m.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no mock ports built")
}

func TestBuildFailsOnUnknownProfile(t *testing.T) {
	cfg := testConfig()
	cfg.Ports[1].Profile = "toaster"

	m := NewManager(cfg, slog.Default())
	assert.Error(t, m.Build())
}

func TestInlineResponses(t *testing.T) {
	m := newTestManager(t)

	port, ok := m.MockPort("/dev/ttyMOCK0")
	require.True(t, ok)

	_, err := port.WriteString("PING")
	require.NoError(t, err)
	data, err := port.ReadN(4)
	require.NoError(t, err)
	assert.Equal(t, []byte("PONG"), data)

	_, err = port.Write([]byte{0x01, 0x03})
	require.NoError(t, err)
	data, err = port.ReadN(5)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x03, 0x02, 0x00, 0x2A}, data)

	_, err = port.WriteString("LOOP")
	require.NoError(t, err)
	data, err = port.ReadN(4)
	require.NoError(t, err)
	assert.Equal(t, []byte("LOOP"), data)
}

func TestProfileWithInlineOverride(t *testing.T) {
	m := newTestManager(t)

	port, ok := m.MockPort("/dev/ttyGSM0")
	require.True(t, ok)

	// Profile entry still present
	_, err := port.WriteString("AT\r\n")
	require.NoError(t, err)
	data, err := port.ReadN(port.InWaiting())
	require.NoError(t, err)
	assert.Equal(t, "\r\nOK\r\n", string(data))

	// Inline entry wins over the profile's ATI reply
	_, err = port.WriteString("ATI\r\n")
	require.NoError(t, err)
	data, err = port.ReadN(port.InWaiting())
	require.NoError(t, err)
	assert.Contains(t, string(data), "Custom Modem")
}

func TestStatsAggregation(t *testing.T) {
	m := newTestManager(t)

	port, ok := m.Port("/dev/ttyMOCK0")
	require.True(t, ok)

	_, err := port.Write([]byte("PING"))
	require.NoError(t, err)
	buf := make([]byte, 4)
	_, err = port.Read(buf)
	require.NoError(t, err)

	stats := m.Stats()
	require.Contains(t, stats, "/dev/ttyMOCK0")
	assert.Equal(t, int64(4), stats["/dev/ttyMOCK0"].BytesWritten)
	assert.Equal(t, int64(4), stats["/dev/ttyMOCK0"].BytesRead)
	assert.Equal(t, int64(0), stats["/dev/ttyGSM0"].Writes)
}

func TestCloseAll(t *testing.T) {
	m := newTestManager(t)
	m.CloseAll()

	for _, device := range []string{"/dev/ttyMOCK0", "/dev/ttyGSM0"} {
		port, ok := m.MockPort(device)
		require.True(t, ok)
		assert.False(t, port.IsOpen())
	}
}
