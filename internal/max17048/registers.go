package max17048

import "fmt"

// Addr is the fixed 7-bit I2C address of the MAX17048.
const Addr = 0x36

// Register is an 8-bit register address. Every register is 16 bits wide
// and transferred MSB first.
type Register uint8

const (
	RegVCell     Register = 0x02 // cell voltage, 78.125uV/LSB
	RegSOC       Register = 0x04 // state of charge, 1/256%/LSB
	RegMode      Register = 0x06
	RegVersion   Register = 0x08 // IC production version
	RegHibernate Register = 0x0A
	RegConfig    Register = 0x0C
	RegVAlert    Register = 0x14
	RegCRate     Register = 0x16 // charge rate, 0.208%/h/LSB
	RegVResetID  Register = 0x18 // reset voltage (MSB) + chip ID (LSB)
	RegStatus    Register = 0x1A
	RegCommand   Register = 0xFE
)

// Alert flags in the STATUS register MSB.
const (
	AlertSOCChange      = 0x20
	AlertSOCLow         = 0x10
	AlertVoltageReset   = 0x08
	AlertVoltageLow     = 0x04
	AlertVoltageHigh    = 0x02
	AlertResetIndicator = 0x01
)

var registerNames = map[Register]string{
	RegVCell:     "VCELL",
	RegSOC:       "SOC",
	RegMode:      "MODE",
	RegVersion:   "VERSION",
	RegHibernate: "HIBRT",
	RegConfig:    "CONFIG",
	RegVAlert:    "VALERT",
	RegCRate:     "CRATE",
	RegVResetID:  "VRESET_ID",
	RegStatus:    "STATUS",
	RegCommand:   "CMD",
}

func (r Register) String() string {
	if n, ok := registerNames[r]; ok {
		return n
	}
	return fmt.Sprintf("0x%02X", uint8(r))
}
