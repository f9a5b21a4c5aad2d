package crtpdevice

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mikehamer/crazycodec/crtp"
)

// Callback receives a complete frame, header byte included. The slice is a
// copy owned by the callback.
type Callback func(packet []byte)

// Dispatcher fans received frames out to the callbacks registered for their
// port. Greedy callbacks see every frame.
type Dispatcher struct {
	lock      sync.Mutex
	callbacks map[crtp.Port]*list.List
	greedy    *list.List
	logger    zerolog.Logger
}

func NewDispatcher(logger zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		callbacks: make(map[crtp.Port]*list.List),
		greedy:    list.New(),
		logger:    logger,
	}
	for _, port := range crtp.Ports() {
		d.callbacks[port] = list.New()
	}
	return d
}

// Register adds f for port. The returned element is the handle for Remove.
func (d *Dispatcher) Register(port crtp.Port, f Callback) *list.Element {
	d.lock.Lock()
	defer d.lock.Unlock()

	callbacks, ok := d.callbacks[port]
	if !ok {
		callbacks = list.New()
		d.callbacks[port] = callbacks
	}
	return callbacks.PushBack(f)
}

func (d *Dispatcher) Remove(port crtp.Port, e *list.Element) {
	d.lock.Lock()
	defer d.lock.Unlock()

	if callbacks, ok := d.callbacks[port]; ok {
		callbacks.Remove(e)
	}
}

func (d *Dispatcher) RegisterGreedy(f Callback) *list.Element {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.greedy.PushBack(f)
}

func (d *Dispatcher) RemoveGreedy(e *list.Element) {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.greedy.Remove(e)
}

// Dispatch hands packet to every matching callback in registration order,
// port callbacks first. It returns how many callbacks ran.
func (d *Dispatcher) Dispatch(packet []byte) int {
	header, _, err := crtp.DecodeFrame(packet)
	if err != nil {
		return 0 // empty ack
	}
	if header.IsNull() {
		return 0 // vehicle has nothing to report
	}

	d.lock.Lock()
	var targets []Callback
	if callbacks, ok := d.callbacks[header.Port]; ok {
		for e := callbacks.Front(); e != nil; e = e.Next() {
			targets = append(targets, e.Value.(Callback))
		}
	}
	for e := d.greedy.Front(); e != nil; e = e.Next() {
		targets = append(targets, e.Value.(Callback))
	}
	d.lock.Unlock()

	if len(targets) == 0 {
		d.logger.Debug().Stringer("port", header.Port).Uint8("channel", uint8(header.Channel)).Msg("dropping unhandled packet")
		return 0
	}

	for _, f := range targets {
		packetCopy := make([]byte, len(packet))
		copy(packetCopy, packet)
		f(packetCopy)
	}
	return len(targets)
}

// Run dispatches received frames until the context ends or the device is
// closed. Receive timeouts only re-check the context.
func (d *Dispatcher) Run(ctx context.Context, device CrtpDevice, poll time.Duration) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		packet, err := device.PacketReceive(poll)
		switch err {
		case nil:
			d.Dispatch(packet)
		case ErrorNoPacket:
			continue
		case ErrorClosed:
			return nil
		default:
			return err
		}
	}
}

// Drain dispatches frames until none arrives within timeout. It returns the
// number of frames received.
func (d *Dispatcher) Drain(ctx context.Context, device CrtpDevice, timeout time.Duration) (int, error) {
	count := 0
	for {
		select {
		case <-ctx.Done():
			return count, ctx.Err()
		default:
		}

		packet, err := device.PacketReceive(timeout)
		switch err {
		case nil:
			count++
			d.Dispatch(packet)
		case ErrorNoPacket, ErrorClosed:
			return count, nil
		default:
			return count, err
		}
	}
}
