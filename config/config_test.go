package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeFixture(t, `{
		"ports": [
			{"device": "/dev/ttyMOCK0", "enabled": true, "responses": [{"match": "PING", "reply": "PONG"}]}
		]
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "dummyserial", cfg.App.Name)
	require.Len(t, cfg.Ports, 1)
	assert.Equal(t, 9600, cfg.Ports[0].BaudRate)
	assert.Equal(t, 2.0, cfg.Ports[0].TimeoutSec)
	assert.Equal(t, 2*time.Second, cfg.Ports[0].Timeout())
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFractionalTimeout(t *testing.T) {
	path := writeFixture(t, `{
		"ports": [
			{"device": "/dev/ttyMOCK0", "timeout_sec": 0.05, "enabled": true, "profile": "modem"}
		]
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 50*time.Millisecond, cfg.Ports[0].Timeout())
}

func TestLoadRejectsBadJSON(t *testing.T) {
	path := writeFixture(t, `{not json`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestMatchKeyAndReplyBytes(t *testing.T) {
	text := ResponseConfig{Match: "PING", Reply: "PONG"}
	key, err := text.MatchKey()
	require.NoError(t, err)
	assert.Equal(t, []byte("PING"), key)
	reply, err := text.ReplyBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("PONG"), reply)

	binary := ResponseConfig{MatchHex: "01 03 20 00", ReplyHex: "0103"}
	key, err = binary.MatchKey()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x03, 0x20, 0x00}, key)
	reply, err = binary.ReplyBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x03}, reply)

	bad := ResponseConfig{MatchHex: "zz"}
	_, err = bad.MatchKey()
	assert.Error(t, err)
}
