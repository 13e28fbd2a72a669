package ads1x15

import (
	"fmt"
	"math"

	"periph.io/x/conn/v3/physic"
)

// ToCounts decodes a conversion register value into a signed sample at the
// variant's native resolution. The register is two's complement over all 16
// bits; 12-bit parts left-align the sample and pad the 4 LSBs with zeros,
// which the arithmetic shift drops.
func ToCounts(raw uint16, v *Variant) int32 {
	return int32(int16(raw)) >> v.Shift()
}

// ToVolts scales counts by the gain's full scale range.
func ToVolts(counts int32, g Gain, v *Variant) float64 {
	return float64(counts) * volts(g.FullScale()) / float64(v.MaxCode())
}

// CountsForVolts is the inverse of ToVolts, rounded to the nearest code and
// clamped to the code space.
func CountsForVolts(u float64, g Gain, v *Variant) int32 {
	fs := volts(g.FullScale())
	if fs == 0 {
		return 0
	}
	c := math.Round(u * float64(v.MaxCode()) / fs)
	return int32(math.Max(float64(-v.MaxCode()), math.Min(c, float64(v.MaxCode()-1))))
}

func volts(p physic.ElectricPotential) float64 {
	return float64(p) / float64(physic.Volt)
}

// LSB returns the voltage step of one count.
func LSB(g Gain, v *Variant) physic.ElectricPotential {
	return g.FullScale() / physic.ElectricPotential(v.MaxCode())
}

// ThresholdRegister encodes a comparator threshold given in native counts.
func ThresholdRegister(counts int32, v *Variant) (uint16, error) {
	if counts < -v.MaxCode() || counts > v.MaxCode()-1 {
		return 0, fmt.Errorf("%w: %d outside [%d, %d]", ErrThresholdRange, counts, -v.MaxCode(), v.MaxCode()-1)
	}
	return uint16(int16(counts << v.Shift())), nil
}

// ThresholdCounts decodes a comparator threshold register into native counts.
func ThresholdCounts(reg uint16, v *Variant) int32 {
	return ToCounts(reg, v)
}

// checkPadding verifies the low bits a 12-bit part keeps at zero.
func checkPadding(reg uint16, v *Variant) error {
	if pad := reg & (1<<v.Shift() - 1); pad != 0 {
		return fmt.Errorf("%w: %#04x has padding bits %#x set on %s", ErrThresholdRange, reg, pad, v)
	}
	return nil
}

// Reading is one converted sample.
type Reading struct {
	Counts int32
	Volts  float64
}

// Potential returns the reading as a physic value.
func (r Reading) Potential() physic.ElectricPotential {
	return physic.ElectricPotential(math.Round(r.Volts * float64(physic.Volt)))
}
