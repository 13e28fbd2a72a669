//go:build !linux

package main

import (
	"errors"
	"io"

	"github.com/mikesmitty/ads1x15"
)

func openSMBus(*appConfig) (*ads1x15.Dev, io.Closer, error) {
	return nil, nil, errors.New("smbus transport is only available on linux")
}
