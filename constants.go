package ads1x15

import "periph.io/x/conn/v3/i2c"

// I²C addresses selected by strapping the ADDR pin.
const (
	AddrGND i2c.Addr = 0x48
	AddrVDD i2c.Addr = 0x49
	AddrSDA i2c.Addr = 0x4A
	AddrSCL i2c.Addr = 0x4B

	DefaultAddress = AddrGND
)

const (
	conversionReg uint8 = iota
	configReg
	lowThreshReg
	highThreshReg
)

// Config register field positions, MSB first.
const (
	osShift       = 15
	muxShift      = 12
	pgaShift      = 9
	modeShift     = 8
	drShift       = 5
	compModeShift = 4
	compPolShift  = 3
	compLatShift  = 2
	compQueShift  = 0
)

const (
	osMask       uint16 = 0x1
	muxMask      uint16 = 0x7
	pgaMask      uint16 = 0x7
	modeMask     uint16 = 0x1
	drMask       uint16 = 0x7
	compQueMask  uint16 = 0x3
	configOS     uint16 = osMask << osShift
	compQueOff   uint16 = 0x3
)

// Every register payload is 16 bits wide, big-endian on the wire.
const registerBits = 16
