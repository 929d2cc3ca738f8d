// Package config loads the YAML service configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultAddress        = 0x36
	DefaultUpdateInterval = 60 * time.Second
	DefaultPort           = 3000
	DefaultLogLevel       = "info"
)

type Config struct {
	I2C            I2CConfig     `yaml:"i2c"`
	UpdateInterval time.Duration `yaml:"update_interval"`
	Sensors        SensorsConfig `yaml:"sensors"`
	Server         *ServerConfig `yaml:"server"`
	Log            LogConfig     `yaml:"log"`
}

// ---- BUS ----

type I2CConfig struct {
	Bus     string `yaml:"bus"` // i2creg name; empty selects the first bus
	Address uint16 `yaml:"address"`
}

// ---- SENSORS ----

// SensorsConfig lists the optional outputs. A nil entry means the
// measurement is not published and its register is never read.
type SensorsConfig struct {
	BatteryVoltage    *SensorConfig `yaml:"battery_voltage"`
	BatteryLevel      *SensorConfig `yaml:"battery_level"`
	BatteryChargeRate *SensorConfig `yaml:"battery_charge_rate"`
}

type SensorConfig struct {
	Name string `yaml:"name"`
}

// ---- SERVER ----

type ServerConfig struct {
	Port int `yaml:"port"` // 0 disables the HTTP server
}

// ---- LOG ----

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads and decodes the file at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return Parse(b)
}

// Parse decodes b. Unknown fields are rejected.
func Parse(b []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
