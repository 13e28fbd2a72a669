package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/warthog618/config"
	"github.com/warthog618/config/blob"
	"github.com/warthog618/config/blob/decoder/json"
	"github.com/warthog618/config/dict"
	"github.com/warthog618/config/env"
	"github.com/warthog618/config/pflag"

	"github.com/mikesmitty/ads1x15"
)

var defaultConfig = map[string]interface{}{
	"transport":     "periph",
	"bus":           "",
	"smbus.bus":     1,
	"addr":          int(ads1x15.DefaultAddress),
	"variant":       "ads1115",
	"gain":          "1",
	"rate":          0,
	"mode":          "single",
	"channels":      "0,1,2,3",
	"interval":      "1s",
	"count":         0,
	"poll.interval": "0s",
	"poll.timeout":  "0s",
	"poll.max":      0,
	"verbose":       0,
}

// loadConfig layers flags over ADS1X15_ environment variables over an
// optional JSON file over the defaults.
func loadConfig() *config.Config {
	def := dict.New(dict.WithMap(defaultConfig))
	cfg := config.New(
		pflag.New(pflag.WithFlags(
			[]pflag.Flag{{Short: 'c', Name: "config-file"}})),
		env.New(env.WithEnvPrefix("ADS1X15_")),
		config.WithDefault(def))
	cfg.Append(
		blob.NewConfigFile(cfg, "config.file", "ads1x15.json", json.NewDecoder()))
	cfg = cfg.GetConfig("", config.WithMust)
	return cfg
}

type appConfig struct {
	transport string
	bus       string
	smbusBus  int
	addr      int
	variant   *ads1x15.Variant
	opts      ads1x15.Opts
	channels  []ads1x15.Channel
	interval  time.Duration
	count     int
	verbose   int
}

func parseConfig(cfg *config.Config) (*appConfig, error) {
	ac := &appConfig{
		transport: strings.ToLower(cfg.MustGet("transport").String()),
		bus:       cfg.MustGet("bus").String(),
		smbusBus:  cfg.MustGet("smbus.bus").Int(),
		addr:      cfg.MustGet("addr").Int(),
		interval:  cfg.MustGet("interval").Duration(),
		count:     cfg.MustGet("count").Int(),
		verbose:   cfg.MustGet("verbose").Int(),
	}
	if ac.transport != "periph" && ac.transport != "smbus" {
		return nil, fmt.Errorf("unknown transport %q", ac.transport)
	}
	if ac.addr < int(ads1x15.AddrGND) || ac.addr > int(ads1x15.AddrSCL) {
		return nil, fmt.Errorf("%w: %#x", ads1x15.ErrInvalidAddress, ac.addr)
	}
	if ac.interval <= 0 {
		return nil, fmt.Errorf("interval must be positive, got %s", ac.interval)
	}

	var err error
	if ac.variant, err = ads1x15.Lookup(cfg.MustGet("variant").String()); err != nil {
		return nil, err
	}
	opts := ads1x15.DefaultOptions()
	if opts.Gain, err = ads1x15.ParseGain(cfg.MustGet("gain").String()); err != nil {
		return nil, err
	}
	if opts.Mode, err = ads1x15.ParseMode(cfg.MustGet("mode").String()); err != nil {
		return nil, err
	}
	opts.DataRate = cfg.MustGet("rate").Int()
	if opts.DataRate != 0 {
		if _, err := ac.variant.RateCode(opts.DataRate); err != nil {
			return nil, err
		}
	}
	opts.PollInterval = cfg.MustGet("poll.interval").Duration()
	opts.PollTimeout = cfg.MustGet("poll.timeout").Duration()
	opts.MaxPolls = cfg.MustGet("poll.max").Int()
	ac.opts = *opts

	if ac.channels, err = parseChannels(cfg.MustGet("channels").String()); err != nil {
		return nil, err
	}
	return ac, nil
}

// parseChannels accepts a comma separated list of single-ended pins ("0")
// and differential pairs ("0-1").
func parseChannels(s string) ([]ads1x15.Channel, error) {
	var chs []ads1x15.Channel
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		var (
			ch  ads1x15.Channel
			err error
		)
		if p, n, ok := strings.Cut(f, "-"); ok {
			ch, err = parsePair(p, n)
		} else {
			var pin int
			if pin, err = strconv.Atoi(f); err == nil {
				ch, err = ads1x15.SingleEnded(pin)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("channel %q: %w", f, err)
		}
		chs = append(chs, ch)
	}
	if len(chs) == 0 {
		return nil, fmt.Errorf("no channels in %q", s)
	}
	return chs, nil
}

func parsePair(p, n string) (ads1x15.Channel, error) {
	pairs := map[string]ads1x15.DiffPair{
		"0-1": ads1x15.Pair01,
		"0-3": ads1x15.Pair03,
		"1-3": ads1x15.Pair13,
		"2-3": ads1x15.Pair23,
	}
	pair, ok := pairs[p+"-"+n]
	if !ok {
		return 0, fmt.Errorf("%w: no differential pair AIN%s-AIN%s", ads1x15.ErrInvalidChannel, p, n)
	}
	return ads1x15.Differential(pair)
}
