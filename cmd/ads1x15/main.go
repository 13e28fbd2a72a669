package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/golang/glog"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/mikesmitty/ads1x15"
)

func main() {
	flag.Set("logtostderr", "true")
	defer glog.Flush()

	ac, err := parseConfig(loadConfig())
	if err != nil {
		glog.Exitf("ads1x15: %v", err)
	}
	flag.Set("v", strconv.Itoa(ac.verbose))

	dev, closer, err := open(ac)
	if err != nil {
		glog.Exitf("ads1x15: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(ac.interval)
	n := sample(ctx, dev, ac.channels, ac.count, ticker.C)
	ticker.Stop()
	glog.V(1).Infof("ads1x15: stopped after %d rounds", n)

	if err := dev.Halt(); err != nil {
		glog.Errorf("ads1x15: halt: %v", err)
	}
	if err := closer.Close(); err != nil {
		glog.Errorf("ads1x15: close: %v", err)
	}
}

type reader interface {
	Read(ch ads1x15.Channel) (ads1x15.Reading, error)
}

// sample reads every channel once per tick until count rounds are done
// (0 means unbounded) or ctx is cancelled. It returns the completed rounds.
func sample(ctx context.Context, r reader, chs []ads1x15.Channel, count int, tick <-chan time.Time) int {
	n := 0
	for count == 0 || n < count {
		for _, ch := range chs {
			v, err := r.Read(ch)
			if err != nil {
				glog.Error(err)
				continue
			}
			glog.Infof("%s: %d counts, %s", ch, v.Counts, v.Potential())
		}
		n++
		if count != 0 && n >= count {
			break
		}
		select {
		case <-ctx.Done():
			return n
		case <-tick:
		}
	}
	return n
}

func open(ac *appConfig) (*ads1x15.Dev, io.Closer, error) {
	if ac.transport == "smbus" {
		return openSMBus(ac)
	}
	if _, err := host.Init(); err != nil {
		return nil, nil, err
	}
	bus, err := i2creg.Open(ac.bus)
	if err != nil {
		return nil, nil, err
	}
	dev, err := ads1x15.NewI2C(bus, i2c.Addr(ac.addr), ac.variant, &ac.opts)
	if err != nil {
		bus.Close()
		return nil, nil, err
	}
	return dev, bus, nil
}
