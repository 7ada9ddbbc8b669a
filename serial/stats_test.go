package serial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortWithStatsCountsTraffic(t *testing.T) {
	mock := newTestPort(map[string]Response{
		"PING": Static([]byte("PONG")),
	})
	port := NewPortWithStats(mock)

	_, err := port.Write([]byte("PING"))
	require.NoError(t, err)

	buf := make([]byte, 4)
	n, err := port.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 4, n)

	stats := port.Stats()
	assert.Equal(t, int64(1), stats.Writes)
	assert.Equal(t, int64(4), stats.BytesWritten)
	assert.Equal(t, int64(1), stats.Reads)
	assert.Equal(t, int64(4), stats.BytesRead)
	assert.Equal(t, int64(0), stats.Errors)
	assert.False(t, stats.LastActivity.IsZero())
}

func TestPortWithStatsCountsErrors(t *testing.T) {
	mock := newTestPort(nil)
	port := NewPortWithStats(mock)
	require.NoError(t, port.Close())

	_, err := port.Write([]byte("X"))
	require.Error(t, err)
	_, err = port.Read(make([]byte, 1))
	require.Error(t, err)

	stats := port.Stats()
	assert.Equal(t, int64(2), stats.Errors)
	assert.Equal(t, int64(0), stats.Writes)
	assert.Equal(t, int64(0), stats.Reads)
}
