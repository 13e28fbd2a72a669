package ads1x15

import (
	"fmt"

	"periph.io/x/conn/v3/analog"
)

// Pin exposes one input channel of a Dev as a periph analog pin.
type Pin struct {
	d  *Dev
	ch Channel
}

// Pin returns an analog pin reading ch.
func (d *Dev) Pin(ch Channel) (*Pin, error) {
	if ch > Single3 {
		return nil, fmt.Errorf("%w: mux code %d", ErrInvalidChannel, ch)
	}
	return &Pin{d: d, ch: ch}, nil
}

func (p *Pin) String() string {
	return p.Name()
}

// Name returns the device and input, e.g. "ADS1115_AIN0".
func (p *Pin) Name() string {
	return fmt.Sprintf("%s_%s", p.d.variant, p.ch)
}

// Number returns the mux code.
func (p *Pin) Number() int {
	return int(p.ch)
}

func (p *Pin) Function() string {
	return "ADC"
}

// Halt is a no-op; the device is halted through Dev.Halt.
func (p *Pin) Halt() error {
	return nil
}

// Range implements analog.PinADC.
func (p *Pin) Range() (analog.Sample, analog.Sample) {
	lo, hi := p.d.Range()
	return lo.Sample(), hi.Sample()
}

// Read implements analog.PinADC.
func (p *Pin) Read() (analog.Sample, error) {
	r, err := p.d.Read(p.ch)
	if err != nil {
		return analog.Sample{}, err
	}
	return r.Sample(), nil
}

// Sample returns the reading as a periph analog sample.
func (r Reading) Sample() analog.Sample {
	return analog.Sample{V: r.Potential(), Raw: r.Counts}
}

var _ analog.PinADC = &Pin{}
