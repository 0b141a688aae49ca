package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
mode: debug
port: 4100
admin_token: adm
transport:
  kind: memory
  timeout: 2s
livekit:
  host: ws://lk:7880
  api_key: k
  api_secret: s
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile(t *testing.T) {
	fs := Flags()
	require.NoError(t, fs.Parse([]string{"--config", writeConfig(t, sample)}))

	cfg, err := Load(fs)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Mode)
	assert.Equal(t, 4100, cfg.Port)
	assert.Equal(t, "adm", cfg.AdminToken)
	assert.Equal(t, TransportMemory, cfg.Transport.Kind)
	assert.Equal(t, 2*time.Second, cfg.Transport.Timeout)
	assert.Equal(t, "ws://lk:7880", cfg.LiveKit.Host)
	assert.Equal(t, 6*time.Hour, cfg.LiveKit.TokenTTL, "default")
	require.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("FRONTDESK_PORT", "5000")
	t.Setenv("LIVEKIT_API_SECRET", "from-env")

	fs := Flags()
	require.NoError(t, fs.Parse([]string{"--config", writeConfig(t, sample), "--transport", "livekit"}))

	cfg, err := Load(fs)
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, "from-env", cfg.LiveKit.APISecret)
	assert.Equal(t, TransportLiveKit, cfg.Transport.Kind)
}

func TestLoadMissingDefaultFileUsesDefaults(t *testing.T) {
	t.Setenv("CONFIG_ENV", "absent")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "release", cfg.Mode)
	assert.Equal(t, 3001, cfg.Port)
	assert.Equal(t, TransportLiveKit, cfg.Transport.Kind)
	assert.Equal(t, 5*time.Second, cfg.Transport.Timeout)
}

func TestLoadExplicitFileMustExist(t *testing.T) {
	fs := Flags()
	require.NoError(t, fs.Parse([]string{"--config", filepath.Join(t.TempDir(), "absent.yaml")}))

	_, err := Load(fs)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	fs := Flags()
	require.NoError(t, fs.Parse([]string{"--config", writeConfig(t, "port: [unterminated\n")}))

	_, err := Load(fs)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Port:      3001,
		Transport: TransportConfig{Kind: TransportLiveKit},
		LiveKit:   LiveKitConfig{Host: "http://lk", APIKey: "k", APISecret: "s"},
	}
	require.NoError(t, valid.Validate())

	noHost := valid
	noHost.LiveKit.Host = ""
	assert.Error(t, noHost.Validate())

	memoryNoHost := noHost
	memoryNoHost.Transport.Kind = TransportMemory
	assert.NoError(t, memoryNoHost.Validate())

	noSecret := valid
	noSecret.LiveKit.APISecret = ""
	assert.Error(t, noSecret.Validate())

	badKind := valid
	badKind.Transport.Kind = "carrier-pigeon"
	assert.Error(t, badKind.Validate())

	badPort := valid
	badPort.Port = 70000
	assert.Error(t, badPort.Validate())
}
