package ads1x15

import (
	"encoding/binary"
	"fmt"

	"github.com/golang/glog"
	"periph.io/x/conn/v3/i2c"
)

// Transport performs raw register transactions with one device. It owns the
// bus handle and device address.
type Transport interface {
	WriteRegister(reg uint8, value uint16) error
	ReadRegister(reg uint8) (uint16, error)
}

// BusError is a failed register transaction. The driver returns it as is.
type BusError struct {
	Op  string // "read" or "write"
	Reg uint8
	Err error
}

func (e *BusError) Error() string {
	return fmt.Sprintf("ads1x15: %s register %#x: %v", e.Op, e.Reg, e.Err)
}

func (e *BusError) Unwrap() error {
	return e.Err
}

// i2cTransport talks to the device through a periph I²C bus.
type i2cTransport struct {
	d *i2c.Dev
}

// NewI2CTransport returns a Transport for the device at addr on bus.
func NewI2CTransport(bus i2c.Bus, addr i2c.Addr) Transport {
	return &i2cTransport{d: &i2c.Dev{Bus: bus, Addr: uint16(addr)}}
}

func (t *i2cTransport) WriteRegister(reg uint8, value uint16) error {
	w := [3]byte{reg}
	binary.BigEndian.PutUint16(w[1:], value)
	if err := t.d.Tx(w[:], nil); err != nil {
		return &BusError{Op: "write", Reg: reg, Err: err}
	}
	glog.V(2).Infof("ads1x15: %s wrote %#x=%#04x", t.d, reg, value)
	return nil
}

func (t *i2cTransport) ReadRegister(reg uint8) (uint16, error) {
	var r [2]byte
	if err := t.d.Tx([]byte{reg}, r[:]); err != nil {
		return 0, &BusError{Op: "read", Reg: reg, Err: err}
	}
	v := binary.BigEndian.Uint16(r[:])
	glog.V(2).Infof("ads1x15: %s read %#x=%#04x", t.d, reg, v)
	return v, nil
}

func (t *i2cTransport) String() string {
	return t.d.String()
}
