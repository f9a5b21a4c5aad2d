package crtpdevice

import "fmt"

type deviceError uint8

func (e deviceError) Error() string {
	return fmt.Sprintf("crtpdevice: %s", deviceErrorString[e])
}

const (
	ErrorNoPacket deviceError = iota
	ErrorClosed
	ErrorBadCapture
)

var deviceErrorString = map[deviceError]string{
	ErrorNoPacket:   "no packet received before the timeout",
	ErrorClosed:     "device has been closed",
	ErrorBadCapture: "capture line is not a hex encoded frame",
}
