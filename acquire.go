package ads1x15

import (
	"fmt"
	"time"

	"github.com/golang/glog"
)

// State is the acquisition state of a single read.
type State uint8

const (
	StateIdle State = iota
	StateConverting
	StateReady
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConverting:
		return "converting"
	case StateReady:
		return "ready"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Clock is the time source used while waiting on conversions.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

// acquisition drives one conversion from config write to conversion
// register read. It is built fresh for every read.
type acquisition struct {
	t     Transport
	clock Clock
	mode  Mode

	// One-shot polling bounds. A zero value disables that bound; at least
	// one must be set.
	interval time.Duration
	timeout  time.Duration
	maxPolls int

	// settle is how long to wait after reconfiguring a free running device
	// so the register holds a sample taken with the new settings.
	settle time.Duration

	state State
	polls int
}

// run performs the full IDLE -> CONVERTING -> READY sequence and returns the
// raw conversion register. When write is false the config register is left
// as is, which is only valid while a continuous conversion is running.
func (a *acquisition) run(w ConfigWord, write bool) (uint16, error) {
	a.state = StateIdle
	if write {
		if err := a.t.WriteRegister(configReg, uint16(w)); err != nil {
			return 0, err
		}
	}
	a.transition(StateConverting)
	if err := a.wait(write); err != nil {
		return 0, err
	}
	return a.t.ReadRegister(conversionReg)
}

func (a *acquisition) wait(wrote bool) error {
	if a.mode == ModeContinuous {
		if wrote && a.settle > 0 {
			a.clock.Sleep(a.settle)
		}
		a.transition(StateReady)
		return nil
	}
	if a.timeout <= 0 && a.maxPolls <= 0 {
		return fmt.Errorf("ads1x15: no poll bound configured")
	}
	start := a.clock.Now()
	for a.polls = 0; a.maxPolls <= 0 || a.polls < a.maxPolls; {
		v, err := a.t.ReadRegister(configReg)
		if err != nil {
			return err
		}
		a.polls++
		if ConfigWord(v).Ready() {
			a.transition(StateReady)
			return nil
		}
		if a.timeout > 0 && a.clock.Now().Sub(start) >= a.timeout {
			break
		}
		if a.maxPolls > 0 && a.polls >= a.maxPolls {
			break
		}
		a.clock.Sleep(a.interval)
	}
	return fmt.Errorf("%w: still converting after %d polls in %s", ErrConversionTimeout, a.polls, a.clock.Now().Sub(start))
}

func (a *acquisition) transition(s State) {
	if glog.V(1) {
		glog.Infof("ads1x15: %s -> %s (%s, polls=%d)", a.state, s, a.mode, a.polls)
	}
	a.state = s
}
