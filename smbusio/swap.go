// Package smbusio provides an ads1x15.Transport over the Linux SMBus
// interface.
//
// SMBus word transfers send the low byte first while the ADS1x15 registers
// are big-endian, so every word is byte swapped on the way in and out.
package smbusio

func swap(v uint16) uint16 {
	return v<<8 | v>>8
}
