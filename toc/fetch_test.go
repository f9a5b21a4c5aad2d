package toc

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mikehamer/crazycodec/cache"
	"github.com/mikehamer/crazycodec/crtpdevice"
)

func paramCapture() [][]byte {
	return [][]byte{
		{0x20, 0x03, 0x02, 0x00, 0x44, 0x33, 0x22, 0x11},
		{0x00, 'b', 'o', 'o', 't'}, // console noise
		{0x20, 0x02, 0x00, 0x00, 0x82, 'p', 'i', 'd', 0, 'k', 'p', 0},
		{0x20, 0x02},               // malformed item
		{0x20, 0x02, 0x01, 0x00, 0x60, 'p', 'i', 'd', 0, 'k', 'i', 0},
	}
}

func TestFetch(t *testing.T) {
	if err := cache.Init(t.TempDir()); err != nil {
		t.Fatal(err)
	}

	device := crtpdevice.NewReplay()
	defer device.Close()
	device.Feed(paramCapture()...)

	f := &Fetcher{Device: device, Timeout: 20 * time.Millisecond, Logger: zerolog.Nop()}
	table := NewParamTable()
	if err := f.Fetch(context.Background(), table); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if !table.Complete() || table.CRC() != 0x11223344 {
		t.Fatalf("table incomplete: count %d crc %X items %+v", table.Count(), table.CRC(), table.Items())
	}
	kp, err := table.Lookup("pid.kp")
	if err != nil || kp.ID != 0 || !kp.Readonly || table.TypeName(kp) != "uint8" {
		t.Errorf("Lookup(pid.kp) = %+v, %v", kp, err)
	}

	sent := device.Sent()
	want := [][]byte{{0x20, 0x03}, {0x20, 0x02, 0x00, 0x00}, {0x20, 0x02, 0x01, 0x00}}
	if len(sent) != len(want) {
		t.Fatalf("sent %X, want %X", sent, want)
	}
	for i := range want {
		if !bytes.Equal(sent[i], want[i]) {
			t.Errorf("request %d = %X, want %X", i, sent[i], want[i])
		}
	}

	// the second fetch only needs the info response
	device.Feed(paramCapture()[0])
	cached := NewParamTable()
	if err := f.Fetch(context.Background(), cached); err != nil {
		t.Fatalf("cached Fetch() error = %v", err)
	}
	if !cached.Complete() || len(device.Sent()) != 1 {
		t.Errorf("cached fetch did not use the cache")
	}
}

func TestFetchNoResponse(t *testing.T) {
	device := crtpdevice.NewReplay()
	defer device.Close()

	f := &Fetcher{Device: device, Timeout: time.Millisecond, Logger: zerolog.Nop()}
	if err := f.Fetch(context.Background(), NewLogTable()); err != ErrorNoResponse {
		t.Errorf("Fetch() error = %v, want %v", err, ErrorNoResponse)
	}
	if n := len(device.Sent()); n != fetchAttempts {
		t.Errorf("sent %d requests, want %d", n, fetchAttempts)
	}
}

func TestFetchCancelled(t *testing.T) {
	device := crtpdevice.NewReplay()
	defer device.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := &Fetcher{Device: device, Timeout: time.Second, Logger: zerolog.Nop()}
	if err := f.Fetch(ctx, NewLogTable()); err != context.Canceled {
		t.Errorf("Fetch() error = %v, want %v", err, context.Canceled)
	}
}
