package ads1x15

import (
	"time"
)

type regWrite struct {
	reg uint8
	v   uint16
}

// fakeTransport is a register file. After each config write, the next busy
// config reads report a conversion in progress; busy < 0 never completes.
type fakeTransport struct {
	regs     map[uint8]uint16
	writes   []regWrite
	reads    []uint8
	busy     int
	left     int
	writeErr error
	readErr  error
}

func newFake() *fakeTransport {
	return &fakeTransport{regs: map[uint8]uint16{}}
}

func (f *fakeTransport) WriteRegister(reg uint8, v uint16) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.writes = append(f.writes, regWrite{reg, v})
	f.regs[reg] = v
	if reg == configReg {
		f.left = f.busy
	}
	return nil
}

func (f *fakeTransport) ReadRegister(reg uint8) (uint16, error) {
	if f.readErr != nil {
		return 0, f.readErr
	}
	f.reads = append(f.reads, reg)
	v := f.regs[reg]
	if reg == configReg {
		if f.busy < 0 || f.left > 0 {
			f.left--
			return v &^ configOS, nil
		}
		return v | configOS, nil
	}
	return v, nil
}

func (f *fakeTransport) readsOf(reg uint8) int {
	n := 0
	for _, r := range f.reads {
		if r == reg {
			n++
		}
	}
	return n
}

func (f *fakeTransport) configWrites() []uint16 {
	var w []uint16
	for _, op := range f.writes {
		if op.reg == configReg {
			w = append(w, op.v)
		}
	}
	return w
}

type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func newClock() *fakeClock {
	return &fakeClock{now: time.Unix(0, 0)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
}
