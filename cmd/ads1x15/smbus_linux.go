package main

import (
	"io"

	"github.com/mikesmitty/ads1x15"
	"github.com/mikesmitty/ads1x15/smbusio"
)

func openSMBus(ac *appConfig) (*ads1x15.Dev, io.Closer, error) {
	t, err := smbusio.Open(ac.smbusBus, uint8(ac.addr))
	if err != nil {
		return nil, nil, err
	}
	dev, err := ads1x15.New(t, ac.variant, &ac.opts)
	if err != nil {
		t.Close()
		return nil, nil, err
	}
	return dev, t, nil
}
