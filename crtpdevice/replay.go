package crtpdevice

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Workiva/go-datastructures/queue"

	"github.com/mikehamer/crazycodec/crtp"
)

// Replay is a CrtpDevice that plays back recorded vehicle frames and keeps
// whatever is sent to it for inspection.
type Replay struct {
	received *queue.Queue
	sent     *queue.Queue
}

func NewReplay() *Replay {
	return &Replay{received: queue.New(10), sent: queue.New(10)}
}

// Feed queues frames to be returned by PacketReceive, in order.
func (r *Replay) Feed(packets ...[]byte) error {
	for _, packet := range packets {
		packetCopy := make([]byte, len(packet))
		copy(packetCopy, packet)
		if err := r.received.Put(packetCopy); err != nil {
			return mapQueueError(err)
		}
	}
	return nil
}

// LoadCapture feeds one frame per line of rd. Lines hold hex bytes,
// optionally separated by spaces; blank lines and lines starting with '#'
// are skipped. It returns the number of frames queued.
func (r *Replay) LoadCapture(rd io.Reader) (int, error) {
	scanner := bufio.NewScanner(rd)
	count := 0
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		packet, err := hex.DecodeString(strings.Join(strings.Fields(text), ""))
		if err != nil {
			return count, fmt.Errorf("%w: line %d: %v", ErrorBadCapture, line, err)
		}
		if err := r.Feed(packet); err != nil {
			return count, err
		}
		count++
	}
	return count, scanner.Err()
}

func (r *Replay) PacketSend(request crtp.Request) error {
	return r.PacketSendRaw(crtp.Marshal(request))
}

func (r *Replay) PacketSendRaw(packet []byte) error {
	packetCopy := make([]byte, len(packet))
	copy(packetCopy, packet)
	return mapQueueError(r.sent.Put(packetCopy))
}

// PacketReceive returns the next queued frame. A timeout <= 0 does not wait.
func (r *Replay) PacketReceive(timeout time.Duration) ([]byte, error) {
	if r.received.Disposed() {
		return nil, ErrorClosed
	}
	if timeout <= 0 && r.received.Empty() {
		return nil, ErrorNoPacket
	}

	items, err := r.received.Poll(1, timeout)
	if err != nil {
		return nil, mapQueueError(err)
	}
	return items[0].([]byte), nil
}

// Pending is the number of frames not yet received.
func (r *Replay) Pending() int {
	return int(r.received.Len())
}

// Sent drains and returns the frames sent so far.
func (r *Replay) Sent() [][]byte {
	n := r.sent.Len()
	if n == 0 {
		return nil
	}
	items, err := r.sent.Get(n)
	if err != nil {
		return nil
	}
	packets := make([][]byte, len(items))
	for i, item := range items {
		packets[i] = item.([]byte)
	}
	return packets
}

// Close releases both queues. Blocked receivers return ErrorClosed.
func (r *Replay) Close() {
	r.received.Dispose()
	r.sent.Dispose()
}

func mapQueueError(err error) error {
	switch err {
	case nil:
		return nil
	case queue.ErrTimeout:
		return ErrorNoPacket
	case queue.ErrDisposed:
		return ErrorClosed
	}
	return err
}
