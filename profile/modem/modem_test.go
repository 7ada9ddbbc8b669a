package modem

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dummyserial/profile"
	"dummyserial/serial"
)

func newModemPort(t *testing.T) *serial.MockPort {
	t.Helper()
	p, err := profile.Get("modem")
	require.NoError(t, err)
	return serial.New(serial.Config{
		Device:    "/dev/ttyGSM0",
		Responses: p.Responses(),
		Timeout:   50 * time.Millisecond,
	})
}

func TestAttentionCommand(t *testing.T) {
	port := newModemPort(t)

	_, err := port.WriteString("AT\r\n")
	require.NoError(t, err)

	data, err := port.ReadN(port.InWaiting())
	require.NoError(t, err)
	assert.Equal(t, "\r\nOK\r\n", string(data))
}

func TestSignalQuality(t *testing.T) {
	port := newModemPort(t)

	_, err := port.WriteString("AT+CSQ\r\n")
	require.NoError(t, err)

	data, err := port.ReadN(port.InWaiting())
	require.NoError(t, err)
	assert.Contains(t, string(data), "+CSQ: 21,0")
	assert.Contains(t, string(data), "OK")
}

func TestClockIsComputedPerQuery(t *testing.T) {
	port := newModemPort(t)

	_, err := port.WriteString("AT+CCLK?\r\n")
	require.NoError(t, err)

	data, err := port.ReadN(port.InWaiting())
	require.NoError(t, err)
	assert.Regexp(t, `\+CCLK: "\d{2}/\d{2}/\d{2},\d{2}:\d{2}:\d{2}"`, string(data))
}

func TestUnknownCommandHasNoResponse(t *testing.T) {
	port := newModemPort(t)

	_, err := port.WriteString("AT+NOPE\r\n")
	require.NoError(t, err)

	data, err := port.ReadN(16)
	require.NoError(t, err)
	assert.Nil(t, data)
}
