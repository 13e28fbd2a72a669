package ads1x15

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"periph.io/x/conn/v3/physic"
)

// Variant describes one chip model of the family. The family members share
// the register protocol and differ only in resolution and data rate table.
//
// Variants are immutable; use the package level ADS1015 and ADS1115 values.
type Variant struct {
	name        string
	bits        uint8
	rateTable   map[int]uint16
	defaultRate int
	defaultLow  uint16
	defaultHigh uint16
}

var (
	// ADS1015 is the 12-bit part. Datasheet: https://www.ti.com/lit/gpn/ads1015
	ADS1015 = &Variant{
		name: "ADS1015",
		bits: 12,
		rateTable: map[int]uint16{
			128:  0,
			250:  1,
			490:  2,
			920:  3,
			1600: 4,
			2400: 5,
			3300: 6,
		},
		defaultRate: 1600,
		// 12-bit two's complement left aligned, the 4 LSBs are always 0.
		defaultLow:  0x8000,
		defaultHigh: 0x7FF0,
	}

	// ADS1115 is the 16-bit part. Datasheet: https://www.ti.com/lit/gpn/ads1115
	ADS1115 = &Variant{
		name: "ADS1115",
		bits: 16,
		rateTable: map[int]uint16{
			8:   0,
			16:  1,
			32:  2,
			64:  3,
			128: 4,
			250: 5,
			475: 6,
			860: 7,
		},
		defaultRate: 128,
		defaultLow:  0x8000,
		defaultHigh: 0x7FFF,
	}
)

var variants = []*Variant{ADS1015, ADS1115}

// Lookup returns the variant with the given model name, ignoring case.
func Lookup(name string) (*Variant, error) {
	for _, v := range variants {
		if strings.EqualFold(v.name, name) {
			return v, nil
		}
	}
	return nil, fmt.Errorf("ads1x15: unknown variant %q", name)
}

func (v *Variant) String() string {
	return v.name
}

// Bits returns the conversion resolution.
func (v *Variant) Bits() uint8 {
	return v.bits
}

// Shift is the number of padding bits below the sample in a 16-bit register.
func (v *Variant) Shift() uint8 {
	return registerBits - v.bits
}

// MaxCode is the positive half range of the signed code space.
func (v *Variant) MaxCode() int32 {
	return 1 << (v.bits - 1)
}

// DefaultRate returns the power-on data rate in samples per second.
func (v *Variant) DefaultRate() int {
	return v.defaultRate
}

// Rates returns the supported data rates in ascending order.
func (v *Variant) Rates() []int {
	r := make([]int, 0, len(v.rateTable))
	for rate := range v.rateTable {
		r = append(r, rate)
	}
	sort.Ints(r)
	return r
}

// RateCode returns the DR field value for rate.
func (v *Variant) RateCode(rate int) (uint16, error) {
	code, ok := v.rateTable[rate]
	if !ok {
		return 0, fmt.Errorf("%w: %d sps on %s (supported: %v)", ErrUnsupportedRate, rate, v.name, v.Rates())
	}
	return code, nil
}

// DefaultThresholds returns the power-on comparator threshold registers.
// They are saturated to the code space so the comparator never trips.
func (v *Variant) DefaultThresholds() (low, high uint16) {
	return v.defaultLow, v.defaultHigh
}

// ConversionPeriod returns the time one conversion takes at rate.
func (v *Variant) ConversionPeriod(rate int) time.Duration {
	if rate <= 0 {
		return 0
	}
	return (physic.Frequency(rate) * physic.Hertz).Period()
}

// slowestPeriod is the conversion period at the lowest supported rate.
func (v *Variant) slowestPeriod() time.Duration {
	return v.ConversionPeriod(v.Rates()[0])
}
