package ads1x15

import (
	"errors"
	"testing"

	"periph.io/x/conn/v3/physic"
)

func TestEncode_known(t *testing.T) {
	data := []struct {
		c    Config
		want ConfigWord
	}{
		// AIN0, ±4.096V, single-shot, 1600sps, comparator off.
		{Config{Channel: Single0, Gain: Gain1, Mode: ModeSingleShot, RateCode: 4}, 0xC383},
		// AIN0-AIN1, ±6.144V, continuous, 8sps, traditional comparator after 1.
		{Config{Channel: Diff01, Gain: GainTwoThirds, Mode: ModeContinuous, RateCode: 0, Comparator: Comparator{Queue: CompQueue1}}, 0x8000},
		// AIN3, ±0.256V, continuous, 860sps, window, active high, latching, after 4.
		{Config{Channel: Single3, Gain: Gain16, Mode: ModeContinuous, RateCode: 7, Comparator: Comparator{Window: true, ActiveHigh: true, Latching: true, Queue: CompQueue4}}, 0xFAFE},
	}
	for i, line := range data {
		got, err := Encode(line.c)
		if err != nil {
			t.Fatalf("#%d: %v", i, err)
		}
		if got != line.want {
			t.Errorf("#%d: Encode(%+v) = %#04x, want %#04x", i, line.c, uint16(got), uint16(line.want))
		}
	}
}

func TestEncodeDecode(t *testing.T) {
	comps := []Comparator{
		{},
		{Window: true, Queue: CompQueue2},
		{ActiveHigh: true, Latching: true, Queue: CompQueue1},
		{Window: true, ActiveHigh: true, Latching: true, Queue: CompQueue4},
	}
	for ch := Diff01; ch <= Single3; ch++ {
		for g := GainTwoThirds; g <= Gain16; g++ {
			for _, m := range []Mode{ModeSingleShot, ModeContinuous} {
				for rc := uint16(0); rc <= drMask; rc++ {
					for _, comp := range comps {
						in := Config{Channel: ch, Gain: g, Mode: m, RateCode: rc, Comparator: comp}
						w, err := Encode(in)
						if err != nil {
							t.Fatal(err)
						}
						if !w.Ready() {
							t.Fatalf("Encode(%+v) = %#04x: OS bit clear", in, uint16(w))
						}
						in.Start = true
						if out := Decode(w); out != in {
							t.Fatalf("Decode(Encode(%+v)) = %+v", in, out)
						}
					}
				}
			}
		}
	}
}

func TestEncode_invalid(t *testing.T) {
	if _, err := Encode(Config{Channel: 8}); !errors.Is(err, ErrInvalidChannel) {
		t.Errorf("channel 8: %v", err)
	}
	if _, err := Encode(Config{Channel: Single0, Gain: 6}); !errors.Is(err, ErrInvalidGain) {
		t.Errorf("gain 6: %v", err)
	}
	if _, err := Encode(Config{Channel: Single0, Comparator: Comparator{Queue: 9}}); !errors.Is(err, ErrInvalidComparator) {
		t.Errorf("queue 9: %v", err)
	}
	if _, err := Encode(Config{Channel: Single0, RateCode: 8}); !errors.Is(err, ErrUnsupportedRate) {
		t.Errorf("rate code 8: %v", err)
	}
}

func TestDecode_gainAliases(t *testing.T) {
	for _, code := range []uint16{6, 7} {
		if c := Decode(ConfigWord(code << pgaShift)); c.Gain != Gain16 {
			t.Errorf("pga %d decoded as %s", code, c.Gain)
		}
	}
}

func TestChannels(t *testing.T) {
	for pin := 0; pin < 4; pin++ {
		ch, err := SingleEnded(pin)
		if err != nil {
			t.Fatal(err)
		}
		if uint8(ch) != uint8(pin)+4 {
			t.Errorf("SingleEnded(%d) = %d", pin, ch)
		}
	}
	for _, pin := range []int{-1, 4} {
		if _, err := SingleEnded(pin); !errors.Is(err, ErrInvalidChannel) {
			t.Errorf("SingleEnded(%d) = %v", pin, err)
		}
	}
	if ch, err := Differential(Pair13); err != nil || ch != Diff13 {
		t.Errorf("Differential(Pair13) = %v, %v", ch, err)
	}
	if _, err := Differential(4); !errors.Is(err, ErrInvalidChannel) {
		t.Errorf("Differential(4) = %v", err)
	}
	if s := Single2.String(); s != "AIN2" {
		t.Errorf("Single2 = %q", s)
	}
	if s := Diff03.String(); s != "AIN0-AIN3" {
		t.Errorf("Diff03 = %q", s)
	}
}

func TestParseGain(t *testing.T) {
	data := []struct {
		in   string
		want Gain
	}{
		{"2/3", GainTwoThirds},
		{"1", Gain1},
		{"16", Gain16},
		{"2.048V", Gain2},
		{"±1.024V", Gain4},
		{"512mV", Gain8},
	}
	for _, line := range data {
		got, err := ParseGain(line.in)
		if err != nil || got != line.want {
			t.Errorf("ParseGain(%q) = %s, %v, want %s", line.in, got, err, line.want)
		}
	}
	for _, in := range []string{"3", "5V", "x"} {
		if _, err := ParseGain(in); !errors.Is(err, ErrInvalidGain) {
			t.Errorf("ParseGain(%q) = %v", in, err)
		}
	}
	if fs := Gain2.FullScale(); fs != 2048*physic.MilliVolt {
		t.Errorf("Gain2 full scale %s", fs)
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode("Continuous"); err != nil || m != ModeContinuous {
		t.Errorf("continuous: %v %v", m, err)
	}
	if m, err := ParseMode("one-shot"); err != nil || m != ModeSingleShot {
		t.Errorf("one-shot: %v %v", m, err)
	}
	if _, err := ParseMode("burst"); err == nil {
		t.Error("burst accepted")
	}
}
