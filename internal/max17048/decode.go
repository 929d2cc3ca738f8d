package max17048

import "periph.io/x/conn/v3/physic"

// Voltage converts a raw VCELL value to volts.
func Voltage(raw uint16) float64 {
	return float64(raw) * 78.125 / 1000000
}

// StateOfCharge converts a raw SOC value to percent. The high byte is the
// integer part, the low byte 1/256ths.
func StateOfCharge(raw uint16) float64 {
	return float64(raw) / 256.0
}

// ChargeRate converts a raw CRATE value to percent per hour.
func ChargeRate(raw uint16) float64 {
	return float64(raw) * 0.208
}

// SignedChargeRate decodes CRATE as the two's-complement value the chip
// reports; negative means discharging.
func SignedChargeRate(raw uint16) float64 {
	return float64(int16(raw)) * 0.208
}

// VoltagePotential is Voltage expressed as a physic value, which is exact
// since one LSB is 78125nV.
func VoltagePotential(raw uint16) physic.ElectricPotential {
	return physic.ElectricPotential(raw) * 78125 * physic.NanoVolt
}
