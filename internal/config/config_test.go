package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullYAML = `
i2c:
  bus: "/dev/i2c-1"
  address: 0x36
update_interval: 15s
sensors:
  battery_voltage:
    name: "Pack Voltage"
  battery_level: {}
server:
  port: 8080
log:
  level: debug
`

func TestParse_Full(t *testing.T) {
	cfg, err := Parse([]byte(fullYAML))
	require.NoError(t, err)
	require.NoError(t, Validate(cfg))
	Normalize(cfg)

	assert.Equal(t, "/dev/i2c-1", cfg.I2C.Bus)
	assert.Equal(t, uint16(0x36), cfg.I2C.Address)
	assert.Equal(t, 15*time.Second, cfg.UpdateInterval)
	require.NotNil(t, cfg.Sensors.BatteryVoltage)
	assert.Equal(t, "Pack Voltage", cfg.Sensors.BatteryVoltage.Name)
	require.NotNil(t, cfg.Sensors.BatteryLevel)
	assert.Equal(t, "Battery Level", cfg.Sensors.BatteryLevel.Name)
	assert.Nil(t, cfg.Sensors.BatteryChargeRate)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestNormalize_Defaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	require.NoError(t, Validate(cfg))
	Normalize(cfg)

	assert.Equal(t, uint16(DefaultAddress), cfg.I2C.Address)
	assert.Equal(t, DefaultUpdateInterval, cfg.UpdateInterval)
	require.NotNil(t, cfg.Server)
	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
}

func TestNormalize_ServerDisabled(t *testing.T) {
	cfg, err := Parse([]byte("server:\n  port: 0\n"))
	require.NoError(t, err)
	Normalize(cfg)
	assert.Equal(t, 0, cfg.Server.Port)
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse([]byte("bogus: 1\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"address too low", Config{I2C: I2CConfig{Address: 0x03}}},
		{"address too high", Config{I2C: I2CConfig{Address: 0x78}}},
		{"negative interval", Config{UpdateInterval: -time.Second}},
		{"port out of range", Config{Server: &ServerConfig{Port: 70000}}},
		{"bad log level", Config{Log: LogConfig{Level: "loud"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, Validate(&tt.cfg))
		})
	}
	assert.Error(t, Validate(nil))
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"debug", "info", "warn", "error", "INFO"} {
		_, err := ParseLevel(s)
		assert.NoError(t, err, s)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fuelgauge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fullYAML), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, cfg.UpdateInterval)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
