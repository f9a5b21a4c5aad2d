package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/urfave/cli"

	"github.com/mikehamer/crazycodec/crazyflie"
	"github.com/mikehamer/crazycodec/crtp"
	"github.com/mikehamer/crazycodec/crtpdevice"
)

func decodeCommand(ctx *cli.Context) error {
	logger := commandLogger(ctx)

	replay := crtpdevice.NewReplay()
	defer replay.Close()

	if path := ctx.String("capture"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		n, err := replay.LoadCapture(f)
		f.Close()
		if err != nil {
			return err
		}
		logger.Debug().Str("capture", path).Int("frames", n).Msg("capture loaded")
	}

	for i, arg := range ctx.Args() {
		raw, err := hex.DecodeString(strings.Join(strings.Fields(arg), ""))
		if err != nil {
			return fmt.Errorf("frame %q is not valid hex: %v", arg, err)
		}
		if len(raw) == 0 {
			return fmt.Errorf("frame %d is empty: %v", i+1, crtp.ErrorTruncatedFrame)
		}
		if err := replay.Feed(raw); err != nil {
			return err
		}
	}

	printer := newDecodePrinter(ctx.App.Writer, logger)
	dispatcher := crtpdevice.NewDispatcher(logger)
	dispatcher.RegisterGreedy(printer.frame)

	_, err := dispatcher.Drain(context.Background(), replay, 0)
	printer.flush()
	if err != nil {
		return err
	}
	if printer.err != nil {
		return printer.err
	}
	if printer.failed > 0 {
		return fmt.Errorf("%d frame(s) could not be decoded", printer.failed)
	}
	return nil
}

// decodePrinter writes one JSON message per line. Console text is joined
// back into lines first.
type decodePrinter struct {
	enc     *json.Encoder
	logger  zerolog.Logger
	console crazyflie.Console
	failed  int
	err     error // first write error
}

func newDecodePrinter(w io.Writer, logger zerolog.Logger) *decodePrinter {
	return &decodePrinter{enc: json.NewEncoder(w), logger: logger}
}

func (p *decodePrinter) frame(packet []byte) {
	m, err := crazyflie.Decode(packet)
	if err != nil {
		p.failed++
		p.logger.Warn().Err(err).Hex("packet", packet).Msg("dropping malformed packet")
		return
	}

	if text, ok := m.Value.(crazyflie.ConsoleText); ok {
		for _, line := range p.console.Feed([]byte(text)) {
			p.encode(crazyflie.Message{Header: m.Header, Kind: m.Kind, Value: line})
		}
		return
	}
	p.encode(m)
}

func (p *decodePrinter) encode(m crazyflie.Message) {
	if p.err != nil {
		return
	}
	p.err = p.enc.Encode(m)
}

func (p *decodePrinter) flush() {
	if pending := p.console.Pending(); pending != "" {
		p.encode(crazyflie.Message{Kind: crazyflie.KindConsole, Value: pending})
	}
}
