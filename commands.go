package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/urfave/cli"

	"github.com/mikehamer/crazycodec/crazyserver"
	"github.com/mikehamer/crazycodec/logging"
)

var COMMANDS = []cli.Command{
	{
		Name:        "encode",
		Usage:       "Encode a host to vehicle packet and print it as hex",
		Subcommands: encodeCommands,
	},
	{
		Name:      "decode",
		Usage:     "Decode vehicle packets given as hex and print them as JSON",
		ArgsUsage: "[<hex frame> ...]",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  "capture",
				Value: "",
				Usage: "Read frames from a capture file, one hex frame per line",
			},
		},
		Action: decodeCommand,
	},
	{
		Name:      "toc",
		Usage:     "Download a param or log TOC from a capture and print it",
		ArgsUsage: "<capture file>",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  "config, c",
				Value: "",
				Usage: "Optional TOML configuration file, read for cache_dir, toc_timeout and log_level",
			},
			cli.StringFlag{
				Name:  "kind",
				Value: "param",
				Usage: "TOC to fetch (param or log)",
			},
			cli.StringFlag{
				Name:  "cache",
				Value: "",
				Usage: "TOC cache folder, overrides the configuration (default ~/.crazycodec-cache)",
			},
			cli.DurationFlag{
				Name:  "timeout",
				Value: defaultTocTimeout,
				Usage: "Wait for each response this long, overrides the configuration",
			},
		},
		Action: tocCommand,
	},
	crazyserver.ServeCommand,
}

func commandLogger(ctx *cli.Context) zerolog.Logger {
	return logging.Configure(logging.Profile{App: "crazycodec", Level: ctx.GlobalString("log-level")})
}

// printFrame writes an encoded frame the way every encode command reports it.
func printFrame(ctx *cli.Context, frame []byte) error {
	_, err := fmt.Fprintf(ctx.App.Writer, "%X\n", frame)
	return err
}
