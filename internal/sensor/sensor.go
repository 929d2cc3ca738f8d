// Package sensor holds published measurement state.
package sensor

import (
	"math"
	"sync"
	"time"
)

const (
	DeviceClassBattery    = "battery"
	StateClassMeasurement = "measurement"
	UnitVolt              = "V"
	UnitPercent           = "%"
	UnitPercentPerHour    = "%/h"
)

// Config describes how a sensor is presented.
type Config struct {
	Name             string
	Unit             string
	AccuracyDecimals int
	DeviceClass      string
	StateClass       string
}

// Sensor stores the last published value and fans it out to callbacks.
// PublishState may run concurrently with readers.
type Sensor struct {
	cfg Config
	now func() time.Time

	mu        sync.RWMutex
	raw       float64
	state     float64
	at        time.Time
	hasState  bool
	callbacks []func(float64)
}

func New(cfg Config) *Sensor {
	return &Sensor{cfg: cfg, now: time.Now}
}

// NewBatteryVoltage, NewBatteryLevel and NewBatteryChargeRate carry the
// presentation defaults of the fuel gauge sensors.
func NewBatteryVoltage(name string) *Sensor {
	return New(Config{Name: name, Unit: UnitVolt, AccuracyDecimals: 2, DeviceClass: DeviceClassBattery, StateClass: StateClassMeasurement})
}

func NewBatteryLevel(name string) *Sensor {
	return New(Config{Name: name, Unit: UnitPercent, AccuracyDecimals: 0, DeviceClass: DeviceClassBattery, StateClass: StateClassMeasurement})
}

func NewBatteryChargeRate(name string) *Sensor {
	return New(Config{Name: name, Unit: UnitPercentPerHour, AccuracyDecimals: 0, DeviceClass: DeviceClassBattery, StateClass: StateClassMeasurement})
}

func (s *Sensor) Name() string   { return s.cfg.Name }
func (s *Sensor) Unit() string   { return s.cfg.Unit }
func (s *Sensor) Config() Config { return s.cfg }

// AddOnStateCallback registers f to receive every rounded state.
func (s *Sensor) AddOnStateCallback(f func(float64)) {
	s.mu.Lock()
	s.callbacks = append(s.callbacks, f)
	s.mu.Unlock()
}

// PublishState records v and notifies callbacks with the value rounded
// to the configured accuracy.
func (s *Sensor) PublishState(v float64) {
	rounded := round(v, s.cfg.AccuracyDecimals)

	s.mu.Lock()
	s.raw = v
	s.state = rounded
	s.at = s.now()
	s.hasState = true
	cbs := append([]func(float64){}, s.callbacks...)
	s.mu.Unlock()

	for _, f := range cbs {
		f(rounded)
	}
}

// State returns the last rounded value and when it was published. ok is
// false until the first publish.
func (s *Sensor) State() (value float64, at time.Time, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state, s.at, s.hasState
}

// RawState returns the last value as published, before rounding.
func (s *Sensor) RawState() (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.raw, s.hasState
}

func round(v float64, decimals int) float64 {
	if decimals < 0 {
		return v
	}
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
