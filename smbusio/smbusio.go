//go:build linux

package smbusio

import (
	"fmt"

	"github.com/go-daq/smbus"
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/mikesmitty/ads1x15"
)

// Transport talks to one device through an SMBus adapter.
type Transport struct {
	conn *smbus.Conn
	bus  int
	addr uint8
}

// Open opens /dev/i2c-<bus> for the device at addr.
func Open(bus int, addr uint8) (*Transport, error) {
	conn, err := smbus.Open(bus, addr)
	if err != nil {
		return nil, errors.Wrapf(err, "smbusio: open bus %d addr %#x", bus, addr)
	}
	return &Transport{conn: conn, bus: bus, addr: addr}, nil
}

// WriteRegister implements ads1x15.Transport.
func (t *Transport) WriteRegister(reg uint8, value uint16) error {
	if err := t.conn.WriteWord(t.addr, reg, swap(value)); err != nil {
		return &ads1x15.BusError{Op: "write", Reg: reg, Err: errors.Wrapf(err, "smbus write-word %s", t)}
	}
	glog.V(2).Infof("smbusio: %s wrote %#x=%#04x", t, reg, value)
	return nil
}

// ReadRegister implements ads1x15.Transport.
func (t *Transport) ReadRegister(reg uint8) (uint16, error) {
	v, err := t.conn.ReadWord(t.addr, reg)
	if err != nil {
		return 0, &ads1x15.BusError{Op: "read", Reg: reg, Err: errors.Wrapf(err, "smbus read-word %s", t)}
	}
	v = swap(v)
	glog.V(2).Infof("smbusio: %s read %#x=%#04x", t, reg, v)
	return v, nil
}

func (t *Transport) Close() error {
	return t.conn.Close()
}

func (t *Transport) String() string {
	return fmt.Sprintf("smbus-%d/%#x", t.bus, t.addr)
}

var _ ads1x15.Transport = &Transport{}
