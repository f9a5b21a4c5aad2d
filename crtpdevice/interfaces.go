package crtpdevice

import (
	"time"

	"github.com/mikehamer/crazycodec/crtp"
)

// CrtpDevice is the raw byte channel to a vehicle. Implementations own
// retransmission and link management; packets handed over here are complete
// frames, header byte included.
type CrtpDevice interface {
	PacketSend(request crtp.Request) error
	PacketSendRaw(packet []byte) error

	// PacketReceive waits up to timeout for the next frame. It returns
	// ErrorNoPacket if none arrived.
	PacketReceive(timeout time.Duration) ([]byte, error)
}
