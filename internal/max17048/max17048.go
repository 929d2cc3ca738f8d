// Package max17048 drives the Maxim MAX17048 single-cell fuel gauge over
// I2C and exposes it as a polling sensor component.
package max17048

import (
	"fmt"
	"log/slog"

	"periph.io/x/conn/v3/i2c"
)

// MAX17048 is a handle to one fuel gauge on a bus. The bus is owned by
// the caller.
type MAX17048 struct {
	dev *i2c.Dev
	log *slog.Logger
}

// NewMAX17048 returns a handle for the gauge at addr on bus. A nil
// logger uses slog.Default.
func NewMAX17048(bus i2c.Bus, addr uint16, logger *slog.Logger) (*MAX17048, error) {
	if bus == nil {
		return nil, fmt.Errorf("max17048: nil bus")
	}
	if addr > 0x7F {
		return nil, fmt.Errorf("max17048: invalid 7-bit address 0x%X", addr)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &MAX17048{
		dev: &i2c.Dev{Addr: addr, Bus: bus},
		log: logger.With("component", "max17048"),
	}, nil
}

// Addr returns the device address on the bus.
func (m *MAX17048) Addr() uint16 {
	return m.dev.Addr
}

// ReadRegister reads one 16-bit register. Register data is sent MSB first.
func (m *MAX17048) ReadRegister(reg Register) (uint16, error) {
	buf := make([]byte, 2)
	if err := m.dev.Tx([]byte{byte(reg)}, buf); err != nil {
		return 0, fmt.Errorf("max17048: read %s: %w", reg, err)
	}
	return uint16(buf[0])<<8 | uint16(buf[1]), nil
}

// Read16 is ReadRegister with transport errors collapsed to 0. A zero
// result is indistinguishable from a failed read.
func (m *MAX17048) Read16(reg Register) uint16 {
	v, err := m.ReadRegister(reg)
	if err != nil {
		m.log.Debug("register read failed", "reg", reg, "err", err)
		return 0
	}
	m.log.Debug("register read", "reg", reg, "value", fmt.Sprintf("0x%04X", v))
	return v
}

// write16 is intentionally inert; the gauge is never written to. Reset,
// alert clearing and hibernate control would go through it.
//
//lint:ignore U1000 register write entry point, kept without callers
func (m *MAX17048) write16(reg Register, val uint16) {}

// Version returns the IC production version.
func (m *MAX17048) Version() uint16 {
	return m.Read16(RegVersion)
}

// ChipID returns the semi-unique chip ID in the low byte of VRESET/ID.
func (m *MAX17048) ChipID() uint8 {
	return uint8(m.Read16(RegVResetID) & 0xFF)
}

// Config returns the raw CONFIG register.
func (m *MAX17048) Config() uint16 {
	return m.Read16(RegConfig)
}

// CellVoltage returns the cell voltage in volts.
func (m *MAX17048) CellVoltage() float64 {
	return Voltage(m.Read16(RegVCell))
}

// StateOfCharge returns the state of charge in percent.
func (m *MAX17048) StateOfCharge() float64 {
	return StateOfCharge(m.Read16(RegSOC))
}

// ChargeRate returns the charge rate in percent per hour.
func (m *MAX17048) ChargeRate() float64 {
	return ChargeRate(m.Read16(RegCRate))
}

// GetStatus reads voltage and state of charge, surfacing transport
// errors instead of reporting zeros.
func (m *MAX17048) GetStatus() (voltage float64, soc float64, err error) {
	rawV, err := m.ReadRegister(RegVCell)
	if err != nil {
		return 0, 0, err
	}
	rawSOC, err := m.ReadRegister(RegSOC)
	if err != nil {
		return 0, 0, err
	}
	return Voltage(rawV), StateOfCharge(rawSOC), nil
}
