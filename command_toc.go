package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli"

	"github.com/mikehamer/crazycodec/cache"
	"github.com/mikehamer/crazycodec/config"
	"github.com/mikehamer/crazycodec/crtpdevice"
	"github.com/mikehamer/crazycodec/logging"
	"github.com/mikehamer/crazycodec/toc"
)

var defaultTocTimeout = config.Default().Timeout()

func tocCommand(ctx *cli.Context) error {
	cfg, err := config.Load(ctx.String("config"))
	if err != nil {
		return err
	}
	if ctx.IsSet("cache") {
		cfg.CacheDir = ctx.String("cache")
	}
	timeout := cfg.Timeout()
	if ctx.IsSet("timeout") {
		timeout = ctx.Duration("timeout")
	}
	if ctx.GlobalIsSet("log-level") {
		cfg.LogLevel = ctx.GlobalString("log-level")
	}

	logger := logging.Configure(logging.Profile{App: "crazycodec", Level: cfg.LogLevel})

	path := ctx.Args().First()
	if path == "" {
		return fmt.Errorf("toc needs a capture file")
	}

	var table *toc.Table
	switch ctx.String("kind") {
	case cache.KindParam:
		table = toc.NewParamTable()
	case cache.KindLog:
		table = toc.NewLogTable()
	default:
		return fmt.Errorf("unknown toc kind %q (param or log)", ctx.String("kind"))
	}

	if timeout <= 0 {
		return fmt.Errorf("--timeout must be positive")
	}

	if err := cache.Init(cfg.CacheDir); err != nil {
		logger.Warn().Err(err).Msg("toc cache disabled")
	}

	replay := crtpdevice.NewReplay()
	defer replay.Close()

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	_, err = replay.LoadCapture(f)
	f.Close()
	if err != nil {
		return err
	}

	fetcher := toc.Fetcher{Device: replay, Timeout: timeout, Logger: logger}
	if err := fetcher.Fetch(context.Background(), table); err != nil {
		return err
	}
	return printTable(ctx.App.Writer, table)
}

func printTable(w io.Writer, t *toc.Table) error {
	fmt.Fprintf(w, "%s toc: %d items, crc %08X, groups %d\n", t.Kind(), t.Count(), t.CRC(), len(t.Groups()))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tACCESS")
	for _, e := range t.Items() {
		access := "rw"
		if t.Kind() == cache.KindLog {
			access = "log"
		} else if e.Readonly {
			access = "ro"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", e.ID, e.FullName(), t.TypeName(e), access)
	}
	return tw.Flush()
}
