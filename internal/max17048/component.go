package max17048

import (
	"fmt"
	"sync"
	"time"

	"fuelgauge/internal/poller"
)

// Sink receives published measurements.
type Sink interface {
	PublishState(value float64)
}

// State is the lifecycle state of a Component.
type State int

const (
	StateUninitialized State = iota
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Diagnostics is a snapshot of the values read during Setup.
type Diagnostics struct {
	ICVersion      uint16
	ChipID         uint8
	Failed         bool
	UpdateInterval time.Duration
}

// Component polls a MAX17048 and publishes to whichever sinks are set.
type Component struct {
	dev      *MAX17048
	interval time.Duration

	voltage    Sink
	level      Sink
	chargeRate Sink

	mu        sync.RWMutex
	state     State
	icVersion uint16
	chipID    uint8
	crate     int16
	haveCRate bool
}

var _ poller.PollingComponent = (*Component)(nil)

// NewComponent wraps dev in a polling component updated every interval.
func NewComponent(dev *MAX17048, interval time.Duration) *Component {
	return &Component{dev: dev, interval: interval}
}

func (c *Component) SetBatteryVoltageSensor(s Sink)    { c.voltage = s }
func (c *Component) SetBatteryLevelSensor(s Sink)      { c.level = s }
func (c *Component) SetBatteryChargeRateSensor(s Sink) { c.chargeRate = s }

// Setup reads version and chip ID once. They are informational only; the
// component is Ready whatever the bus returned.
func (c *Component) Setup() {
	c.dev.log.Info("setting up MAX17048")

	version := c.dev.Version()
	id := c.dev.ChipID()
	c.dev.log.Debug("identified", "ic_version", fmt.Sprintf("0x%04X", version), "chip_id", fmt.Sprintf("0x%02X", id))

	c.mu.Lock()
	c.icVersion = version
	c.chipID = id
	c.state = StateReady
	c.mu.Unlock()
}

// Update publishes one reading per configured sink. Registers without a
// sink are not read.
func (c *Component) Update() {
	if c.voltage != nil {
		raw := c.dev.Read16(RegVCell)
		c.dev.log.Debug("cell voltage", "vcell", VoltagePotential(raw).String())
		c.voltage.PublishState(Voltage(raw))
	}
	if c.level != nil {
		c.level.PublishState(c.dev.StateOfCharge())
	}
	if c.chargeRate != nil {
		raw := c.dev.Read16(RegCRate)
		c.mu.Lock()
		c.crate = int16(raw)
		c.haveCRate = true
		c.mu.Unlock()
		c.dev.log.Debug("charge rate", "crate", SignedChargeRate(raw))
		c.chargeRate.PublishState(ChargeRate(raw))
	}
}

// Charging reports whether the last CRATE reading was positive. ok is
// false until a charge rate sink has been updated at least once.
func (c *Component) Charging() (charging bool, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.crate > 0, c.haveCRate
}

func (c *Component) DumpConfig() {
	d := c.Diagnostics()
	l := c.dev.log
	l.Info("MAX17048", "address", fmt.Sprintf("0x%02X", c.dev.Addr()))
	if d.Failed {
		l.Error("communication with MAX17048 failed")
	}
	l.Info("MAX17048",
		"ic_version", fmt.Sprintf("0x%04X", d.ICVersion),
		"chip_id", fmt.Sprintf("0x%02X", d.ChipID),
		"update_interval", d.UpdateInterval,
	)
	logSink(c, "Battery Voltage", c.voltage)
	logSink(c, "Battery Level", c.level)
	logSink(c, "Battery Charge Rate", c.chargeRate)
}

func logSink(c *Component, kind string, s Sink) {
	if s == nil {
		return
	}
	args := []any{"kind", kind}
	if n, ok := s.(interface{ Name() string }); ok {
		args = append(args, "name", n.Name())
	}
	if u, ok := s.(interface{ Unit() string }); ok {
		args = append(args, "unit", u.Unit())
	}
	c.dev.log.Info("sensor", args...)
}

func (c *Component) SetupPriority() float64 { return poller.PriorityData }

func (c *Component) UpdateInterval() time.Duration { return c.interval }

// MarkFailed moves the component to StateFailed. Nothing in this package
// calls it; it exists for the host.
func (c *Component) MarkFailed() {
	c.mu.Lock()
	c.state = StateFailed
	c.mu.Unlock()
}

func (c *Component) IsFailed() bool {
	return c.State() == StateFailed
}

func (c *Component) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Diagnostics returns the values captured by Setup.
func (c *Component) Diagnostics() Diagnostics {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Diagnostics{
		ICVersion:      c.icVersion,
		ChipID:         c.chipID,
		Failed:         c.state == StateFailed,
		UpdateInterval: c.interval,
	}
}
