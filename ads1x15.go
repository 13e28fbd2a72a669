// Package ads1x15 drives the Texas Instruments ADS1015 (12-bit) and ADS1115
// (16-bit) I²C analog to digital converters.
//
// Both parts share one register protocol; the chip specific data lives in a
// Variant chosen at construction.
package ads1x15

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang/glog"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
)

var (
	ErrInvalidChannel    = errors.New("ads1x15: invalid channel")
	ErrInvalidGain       = errors.New("ads1x15: invalid gain")
	ErrUnsupportedRate   = errors.New("ads1x15: unsupported data rate")
	ErrConversionTimeout = errors.New("ads1x15: conversion timeout")
	ErrThresholdRange    = errors.New("ads1x15: comparator threshold out of range")
	ErrInvalidAddress    = errors.New("ads1x15: invalid I²C address")
	ErrInvalidComparator = errors.New("ads1x15: invalid comparator queue")
)

// Settings is the conversion setup applied to every read.
type Settings struct {
	Gain Gain
	// DataRate in samples per second. Must be one of Variant.Rates().
	DataRate   int
	Mode       Mode
	Comparator Comparator
}

// Opts holds various configuration options for the device.
type Opts struct {
	Settings

	// PollInterval is the delay between config register polls while waiting
	// for a single-shot conversion. Defaults to a quarter of the conversion
	// period.
	PollInterval time.Duration
	// PollTimeout bounds the time spent polling. Defaults to twice the
	// conversion period of the slowest data rate plus 10ms.
	PollTimeout time.Duration
	// MaxPolls bounds the number of polls. 0 means no attempt limit.
	MaxPolls int
	// Clock is used for polling delays. Defaults to the system clock.
	Clock Clock
}

// DefaultOptions returns ±4.096V single-shot reads at the variant's default
// data rate with the comparator disabled.
func DefaultOptions() *Opts {
	return &Opts{
		Settings: Settings{
			Gain: Gain1,
			Mode: ModeSingleShot,
		},
	}
}

// NewI2C returns a device at addr on an I²C bus.
func NewI2C(bus i2c.Bus, addr i2c.Addr, v *Variant, opts *Opts) (*Dev, error) {
	if addr < AddrGND || addr > AddrSCL {
		return nil, fmt.Errorf("%w: %s not in %s-%s", ErrInvalidAddress, addr, AddrGND, AddrSCL)
	}
	return New(NewI2CTransport(bus, addr), v, opts)
}

// New returns a device talking through t. The comparator thresholds are
// reset to the variant's defaults.
func New(t Transport, v *Variant, opts *Opts) (*Dev, error) {
	if v == nil {
		return nil, errors.New("ads1x15: nil variant")
	}
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.PollInterval < 0 || opts.PollTimeout < 0 || opts.MaxPolls < 0 {
		return nil, errors.New("ads1x15: negative poll bound")
	}

	d := &Dev{
		t:            t,
		variant:      v,
		clock:        opts.Clock,
		pollInterval: opts.PollInterval,
		pollTimeout:  opts.PollTimeout,
		maxPolls:     opts.MaxPolls,
	}
	if d.clock == nil {
		d.clock = systemClock{}
	}
	if s, ok := t.(fmt.Stringer); ok {
		d.name = fmt.Sprintf("%s{%s}", v, s)
	} else {
		d.name = v.String()
	}

	s := opts.Settings
	if s.DataRate == 0 {
		s.DataRate = v.DefaultRate()
	}
	if err := d.Configure(s); err != nil {
		return nil, err
	}

	if err := d.SetComparatorThresholds(v.DefaultThresholds()); err != nil {
		return nil, err
	}
	glog.V(1).Infof("ads1x15: initialized %s %+v", d, s)
	return d, nil
}

// Dev is a handle to an ADS1x15 converter.
type Dev struct {
	t            Transport
	variant      *Variant
	name         string
	clock        Clock
	pollInterval time.Duration
	pollTimeout  time.Duration
	maxPolls     int

	mu       sync.Mutex
	settings Settings
	last     ConfigWord // most recent config written by a read
	running  bool       // a continuous conversion with last is in progress
}

func (d *Dev) String() string {
	return d.name
}

// Variant returns the chip model selected at construction.
func (d *Dev) Variant() *Variant {
	return d.variant
}

// Settings returns the active conversion setup.
func (d *Dev) Settings() Settings {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.settings
}

// Configure validates and caches s for subsequent reads. On error the
// previous settings stay in effect.
func (d *Dev) Configure(s Settings) error {
	if _, err := d.variant.RateCode(s.DataRate); err != nil {
		return err
	}
	if !s.Gain.valid() {
		return fmt.Errorf("%w: pga code %d", ErrInvalidGain, s.Gain)
	}
	if !s.Comparator.Queue.valid() {
		return fmt.Errorf("%w: %d", ErrInvalidComparator, s.Comparator.Queue)
	}
	if s.Mode != ModeSingleShot && s.Mode != ModeContinuous {
		return fmt.Errorf("ads1x15: invalid mode %d", s.Mode)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.settings = s
	return nil
}

// ReadChannel converts single-ended analog pin 0-3.
func (d *Dev) ReadChannel(pin int) (Reading, error) {
	ch, err := SingleEnded(pin)
	if err != nil {
		return Reading{}, err
	}
	return d.Read(ch)
}

// ReadDifferential converts the voltage across pair.
func (d *Dev) ReadDifferential(pair DiffPair) (Reading, error) {
	ch, err := Differential(pair)
	if err != nil {
		return Reading{}, err
	}
	return d.Read(ch)
}

// Read converts ch with the active settings. In single-shot mode it blocks
// until the conversion completes or the poll bound is exhausted. In
// continuous mode it returns the latest sample and only writes the config
// register when the channel or settings changed since the previous read.
func (d *Dev) Read(ch Channel) (Reading, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	s := d.settings
	rc, err := d.variant.RateCode(s.DataRate)
	if err != nil {
		return Reading{}, err
	}
	w, err := Encode(Config{Channel: ch, Gain: s.Gain, Mode: s.Mode, RateCode: rc, Comparator: s.Comparator})
	if err != nil {
		return Reading{}, err
	}

	write := s.Mode == ModeSingleShot || !d.running || w != d.last
	a := d.acquisition(s)
	raw, err := a.run(w, write)
	if err != nil {
		if write {
			d.running = false
		}
		return Reading{}, err
	}
	d.running = s.Mode == ModeContinuous
	d.last = w

	counts := ToCounts(raw, d.variant)
	return Reading{Counts: counts, Volts: ToVolts(counts, s.Gain, d.variant)}, nil
}

// Range returns the lowest and highest reading under the active gain.
func (d *Dev) Range() (Reading, Reading) {
	g := d.Settings().Gain
	lo, hi := -d.variant.MaxCode(), d.variant.MaxCode()-1
	return Reading{Counts: lo, Volts: ToVolts(lo, g, d.variant)}, Reading{Counts: hi, Volts: ToVolts(hi, g, d.variant)}
}

// SetComparatorThresholds writes the raw low and high threshold registers.
// On 12-bit parts the 4 LSBs of each value must be zero.
func (d *Dev) SetComparatorThresholds(low, high uint16) error {
	if err := checkPadding(low, d.variant); err != nil {
		return err
	}
	if err := checkPadding(high, d.variant); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.t.WriteRegister(lowThreshReg, low); err != nil {
		return err
	}
	return d.t.WriteRegister(highThreshReg, high)
}

// SetComparatorLimits sets the thresholds in counts at the native
// resolution, as returned in Reading.Counts.
func (d *Dev) SetComparatorLimits(low, high int32) error {
	lo, err := ThresholdRegister(low, d.variant)
	if err != nil {
		return err
	}
	hi, err := ThresholdRegister(high, d.variant)
	if err != nil {
		return err
	}
	return d.SetComparatorThresholds(lo, hi)
}

// ComparatorThresholds reads back the thresholds in native counts.
func (d *Dev) ComparatorThresholds() (low, high int32, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	lo, err := d.t.ReadRegister(lowThreshReg)
	if err != nil {
		return 0, 0, err
	}
	hi, err := d.t.ReadRegister(highThreshReg)
	if err != nil {
		return 0, 0, err
	}
	return ThresholdCounts(lo, d.variant), ThresholdCounts(hi, d.variant), nil
}

// Halt stops a running continuous conversion by switching the device back
// to single-shot mode, where it powers down between conversions.
func (d *Dev) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := d.settings
	rc, err := d.variant.RateCode(s.DataRate)
	if err != nil {
		return err
	}
	w, err := Encode(Config{Channel: d.last.channel(), Gain: s.Gain, Mode: ModeSingleShot, RateCode: rc, Comparator: s.Comparator})
	if err != nil {
		return err
	}
	if err := d.t.WriteRegister(configReg, uint16(w)&^configOS); err != nil {
		return err
	}
	d.running = false
	return nil
}

func (d *Dev) acquisition(s Settings) *acquisition {
	period := d.variant.ConversionPeriod(s.DataRate)
	a := &acquisition{
		t:        d.t,
		clock:    d.clock,
		mode:     s.Mode,
		interval: d.pollInterval,
		timeout:  d.pollTimeout,
		maxPolls: d.maxPolls,
		settle:   2 * period,
	}
	if a.interval == 0 {
		a.interval = period / 4
		if a.interval < 100*time.Microsecond {
			a.interval = 100 * time.Microsecond
		}
	}
	if a.timeout == 0 && a.maxPolls == 0 {
		a.timeout = 2*d.variant.slowestPeriod() + 10*time.Millisecond
	}
	return a
}

var _ conn.Resource = &Dev{}
