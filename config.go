package ads1x15

import (
	"fmt"
	"strings"

	"periph.io/x/conn/v3/physic"
)

// Channel is the input multiplexer setting of a conversion.
type Channel uint8

const (
	Diff01  Channel = iota // AIN0 - AIN1
	Diff03                 // AIN0 - AIN3
	Diff13                 // AIN1 - AIN3
	Diff23                 // AIN2 - AIN3
	Single0                // AIN0 - GND
	Single1                // AIN1 - GND
	Single2                // AIN2 - GND
	Single3                // AIN3 - GND
)

// SingleEnded returns the channel measuring analog pin 0-3 against ground.
func SingleEnded(pin int) (Channel, error) {
	if pin < 0 || pin > 3 {
		return 0, fmt.Errorf("%w: single-ended pin %d", ErrInvalidChannel, pin)
	}
	return Single0 + Channel(pin), nil
}

// DiffPair selects one of the four differential input pairs.
type DiffPair uint8

const (
	Pair01 DiffPair = iota
	Pair03
	Pair13
	Pair23
)

// Differential returns the channel measuring pair.
func Differential(pair DiffPair) (Channel, error) {
	if pair > Pair23 {
		return 0, fmt.Errorf("%w: differential pair %d", ErrInvalidChannel, pair)
	}
	return Diff01 + Channel(pair), nil
}

func (c Channel) String() string {
	switch {
	case c <= Diff23:
		return [...]string{"AIN0-AIN1", "AIN0-AIN3", "AIN1-AIN3", "AIN2-AIN3"}[c]
	case c <= Single3:
		return fmt.Sprintf("AIN%d", c-Single0)
	}
	return fmt.Sprintf("Channel(%d)", uint8(c))
}

// Gain is the programmable gain amplifier setting. The value is the PGA
// register code.
type Gain uint8

const (
	GainTwoThirds Gain = iota // ±6.144V
	Gain1                     // ±4.096V
	Gain2                     // ±2.048V
	Gain4                     // ±1.024V
	Gain8                     // ±0.512V
	Gain16                    // ±0.256V
)

var fullScale = [...]physic.ElectricPotential{
	6144 * physic.MilliVolt,
	4096 * physic.MilliVolt,
	2048 * physic.MilliVolt,
	1024 * physic.MilliVolt,
	512 * physic.MilliVolt,
	256 * physic.MilliVolt,
}

func (g Gain) valid() bool {
	return int(g) < len(fullScale)
}

// FullScale returns the input range the gain maps onto the code space.
func (g Gain) FullScale() physic.ElectricPotential {
	if !g.valid() {
		return 0
	}
	return fullScale[g]
}

func (g Gain) String() string {
	if !g.valid() {
		return fmt.Sprintf("Gain(%d)", uint8(g))
	}
	return "±" + g.FullScale().String()
}

// ParseGain accepts either the amplification factor ("2/3", "1", "2", "4",
// "8", "16") or the full scale range ("4.096V", "256mV").
func ParseGain(s string) (Gain, error) {
	switch strings.TrimSpace(s) {
	case "2/3", "0.667":
		return GainTwoThirds, nil
	case "1":
		return Gain1, nil
	case "2":
		return Gain2, nil
	case "4":
		return Gain4, nil
	case "8":
		return Gain8, nil
	case "16":
		return Gain16, nil
	}
	var v physic.ElectricPotential
	if err := v.Set(strings.TrimPrefix(strings.TrimSpace(s), "±")); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidGain, s)
	}
	for g, fs := range fullScale {
		if fs == v {
			return Gain(g), nil
		}
	}
	return 0, fmt.Errorf("%w: no range of %s", ErrInvalidGain, v)
}

// Mode selects how conversions are triggered.
type Mode uint8

const (
	// ModeSingleShot triggers one conversion per read and powers down in
	// between.
	ModeSingleShot Mode = iota
	// ModeContinuous free runs at the data rate; reads return the latest
	// sample.
	ModeContinuous
)

func (m Mode) String() string {
	if m == ModeContinuous {
		return "continuous"
	}
	return "single-shot"
}

// ParseMode parses "single", "single-shot", "oneshot" or "continuous".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single", "single-shot", "oneshot", "one-shot":
		return ModeSingleShot, nil
	case "continuous":
		return ModeContinuous, nil
	}
	return 0, fmt.Errorf("ads1x15: invalid mode %q", s)
}

// ComparatorQueue is the number of successive out-of-window conversions
// needed before ALERT/RDY asserts. The zero value disables the comparator.
type ComparatorQueue uint8

const (
	CompQueueDisabled ComparatorQueue = iota
	CompQueue1
	CompQueue2
	CompQueue4
)

func (q ComparatorQueue) valid() bool {
	return q <= CompQueue4
}

func (q ComparatorQueue) code() uint16 {
	if q == CompQueueDisabled {
		return compQueOff
	}
	return uint16(q - CompQueue1)
}

func queueFromCode(c uint16) ComparatorQueue {
	if c == compQueOff {
		return CompQueueDisabled
	}
	return ComparatorQueue(c) + CompQueue1
}

// Comparator holds the comparator bits of the config register.
type Comparator struct {
	// Window selects window comparator mode instead of traditional
	// hysteresis.
	Window bool
	// ActiveHigh drives ALERT/RDY high when asserted.
	ActiveHigh bool
	// Latching keeps ALERT/RDY asserted until the conversion is read.
	Latching bool
	Queue    ComparatorQueue
}

// Config is the decoded form of a config register word.
type Config struct {
	// Start is the OS bit. Written as 1 it starts a single-shot conversion;
	// read back it is 0 while a conversion is in progress.
	Start      bool
	Channel    Channel
	Gain       Gain
	Mode       Mode
	RateCode   uint16
	Comparator Comparator
}

// ConfigWord is the raw 16-bit config register value.
type ConfigWord uint16

// Ready reports whether the device is idle, i.e. no conversion in flight.
func (w ConfigWord) Ready() bool {
	return uint16(w)&configOS != 0
}

func (w ConfigWord) channel() Channel {
	return Channel((uint16(w) >> muxShift) & muxMask)
}

func (w ConfigWord) String() string {
	c := Decode(w)
	return fmt.Sprintf("%#04x{os=%t mux=%s pga=%s mode=%s dr=%d comp=%+v}", uint16(w), c.Start, c.Channel, c.Gain, c.Mode, c.RateCode, c.Comparator)
}

// Encode packs c into a config word. The OS bit is always set, which starts
// a conversion in single-shot mode and is ignored in continuous mode.
func Encode(c Config) (ConfigWord, error) {
	if uint16(c.Channel) > muxMask {
		return 0, fmt.Errorf("%w: mux code %d", ErrInvalidChannel, c.Channel)
	}
	if !c.Gain.valid() {
		return 0, fmt.Errorf("%w: pga code %d", ErrInvalidGain, c.Gain)
	}
	if !c.Comparator.Queue.valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidComparator, c.Comparator.Queue)
	}
	if c.RateCode > drMask {
		return 0, fmt.Errorf("%w: data rate code %d", ErrUnsupportedRate, c.RateCode)
	}
	w := configOS
	w |= uint16(c.Channel) << muxShift
	w |= uint16(c.Gain) << pgaShift
	if c.Mode == ModeSingleShot {
		w |= 1 << modeShift
	}
	w |= c.RateCode << drShift
	w |= flag(c.Comparator.Window) << compModeShift
	w |= flag(c.Comparator.ActiveHigh) << compPolShift
	w |= flag(c.Comparator.Latching) << compLatShift
	w |= c.Comparator.Queue.code() << compQueShift
	return ConfigWord(w), nil
}

// Decode unpacks a config word.
func Decode(w ConfigWord) Config {
	v := uint16(w)
	c := Config{
		Start:    (v>>osShift)&osMask != 0,
		Channel:  Channel((v >> muxShift) & muxMask),
		Gain:     Gain((v >> pgaShift) & pgaMask),
		Mode:     ModeContinuous,
		RateCode: (v >> drShift) & drMask,
		Comparator: Comparator{
			Window:     (v>>compModeShift)&1 != 0,
			ActiveHigh: (v>>compPolShift)&1 != 0,
			Latching:   (v>>compLatShift)&1 != 0,
			Queue:      queueFromCode((v >> compQueShift) & compQueMask),
		},
	}
	if (v>>modeShift)&modeMask != 0 {
		c.Mode = ModeSingleShot
	}
	// PGA codes 6 and 7 are aliases of ±0.256V.
	if !c.Gain.valid() {
		c.Gain = Gain16
	}
	return c
}

func flag(b bool) uint16 {
	if b {
		return 1
	}
	return 0
}
