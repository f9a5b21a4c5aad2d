package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli"

	"github.com/mikehamer/crazycodec/crazyflie"
	"github.com/mikehamer/crazycodec/crtp"
)

const defaultLogPeriod = 100 * time.Millisecond

var groupFlag = cli.UintFlag{
	Name:  "group",
	Value: 0,
	Usage: "High level group mask, 0 addresses every group",
}

var encodeCommands = []cli.Command{
	{
		Name:  "commander",
		Usage: "Roll, pitch, yaw and thrust setpoint",
		Flags: []cli.Flag{
			cli.Float64Flag{Name: "roll"},
			cli.Float64Flag{Name: "pitch"},
			cli.Float64Flag{Name: "yaw"},
			cli.UintFlag{Name: "thrust", Usage: "0 to 65535"},
		},
		Action: encodeCommander,
	},
	{
		Name:  "takeoff",
		Usage: "High level takeoff",
		Flags: []cli.Flag{
			cli.Float64Flag{Name: "height", Value: 0.2, Usage: "Target height in meters"},
			cli.Float64Flag{Name: "duration", Value: 2.0, Usage: "Duration in seconds"},
			groupFlag,
		},
		Action: encodeTakeoff,
	},
	{
		Name:  "land",
		Usage: "High level land",
		Flags: []cli.Flag{
			cli.Float64Flag{Name: "height", Value: 0, Usage: "Target height in meters"},
			cli.Float64Flag{Name: "duration", Value: 2.0, Usage: "Duration in seconds"},
			groupFlag,
		},
		Action: encodeLand,
	},
	{
		Name:   "stop",
		Usage:  "High level stop, cuts the motors",
		Flags:  []cli.Flag{groupFlag},
		Action: encodeStop,
	},
	{
		Name:  "goto",
		Usage: "High level go to",
		Flags: []cli.Flag{
			cli.BoolFlag{Name: "relative", Usage: "Position is relative to the current one"},
			cli.Float64Flag{Name: "x"},
			cli.Float64Flag{Name: "y"},
			cli.Float64Flag{Name: "z"},
			cli.Float64Flag{Name: "yaw"},
			cli.Float64Flag{Name: "duration", Value: 2.0, Usage: "Duration in seconds"},
			groupFlag,
		},
		Action: encodeGoTo,
	},
	{
		Name:  "position",
		Usage: "Generic position setpoint",
		Flags: []cli.Flag{
			cli.Float64Flag{Name: "x"},
			cli.Float64Flag{Name: "y"},
			cli.Float64Flag{Name: "z"},
			cli.Float64Flag{Name: "yaw", Usage: "Yaw in degrees"},
		},
		Action: encodePosition,
	},
	{
		Name:   "generic-stop",
		Usage:  "Generic stop setpoint",
		Action: encodeGenericStop,
	},
	{
		Name:      "log-block",
		Usage:     "Log block control request",
		ArgsUsage: "<create|append|start|stop|delete|reset>",
		Flags: []cli.Flag{
			cli.UintFlag{Name: "block", Usage: "Block ID"},
			cli.StringSliceFlag{Name: "item", Usage: "Block item as <type>:<id>, e.g. float:12. Repeatable"},
			cli.DurationFlag{Name: "period", Value: defaultLogPeriod, Usage: "Logging period of a start request"},
		},
		Action: encodeLogBlock,
	},
	{
		Name:  "param-toc",
		Usage: "Param TOC info request, or item request with --item",
		Flags: []cli.Flag{
			cli.IntFlag{Name: "item", Value: -1, Usage: "Parameter ID"},
		},
		Action: encodeParamToc,
	},
	{
		Name:  "param-read",
		Usage: "Param read request",
		Flags: []cli.Flag{
			cli.UintFlag{Name: "id", Usage: "Parameter ID"},
		},
		Action: encodeParamRead,
	},
	{
		Name:  "param-write",
		Usage: "Param write request",
		Flags: []cli.Flag{
			cli.UintFlag{Name: "id", Usage: "Parameter ID"},
			cli.StringFlag{Name: "type", Value: "float", Usage: "Parameter type, e.g. uint8 or float"},
			cli.Float64Flag{Name: "value"},
		},
		Action: encodeParamWrite,
	},
}

func float32Flag(ctx *cli.Context, name string) float32 {
	return float32(ctx.Float64(name))
}

func uintFlag(ctx *cli.Context, name string, max uint64) (uint64, error) {
	v := uint64(ctx.Uint(name))
	if v > max {
		return 0, fmt.Errorf("--%s %d is out of range (max %d)", name, v, max)
	}
	return v, nil
}

func groupMask(ctx *cli.Context) (uint8, error) {
	v, err := uintFlag(ctx, "group", 0xFF)
	return uint8(v), err
}

func encodeCommander(ctx *cli.Context) error {
	thrust, err := uintFlag(ctx, "thrust", 0xFFFF)
	if err != nil {
		return err
	}
	p := crazyflie.NewCommander(float32Flag(ctx, "roll"), float32Flag(ctx, "pitch"), float32Flag(ctx, "yaw"), uint16(thrust))
	return printFrame(ctx, p.Bytes())
}

func encodeTakeoff(ctx *cli.Context) error {
	mask, err := groupMask(ctx)
	if err != nil {
		return err
	}
	p := crazyflie.NewTakeoff(float32Flag(ctx, "height"), float32Flag(ctx, "duration"))
	p.GroupMask = mask
	return printFrame(ctx, p.Bytes())
}

func encodeLand(ctx *cli.Context) error {
	mask, err := groupMask(ctx)
	if err != nil {
		return err
	}
	p := crazyflie.NewLand(float32Flag(ctx, "height"), float32Flag(ctx, "duration"))
	p.GroupMask = mask
	return printFrame(ctx, p.Bytes())
}

func encodeStop(ctx *cli.Context) error {
	mask, err := groupMask(ctx)
	if err != nil {
		return err
	}
	p := crazyflie.NewStop()
	p.GroupMask = mask
	return printFrame(ctx, p.Bytes())
}

func encodeGoTo(ctx *cli.Context) error {
	mask, err := groupMask(ctx)
	if err != nil {
		return err
	}
	p := crazyflie.NewGoTo(ctx.Bool("relative"),
		float32Flag(ctx, "x"), float32Flag(ctx, "y"), float32Flag(ctx, "z"),
		float32Flag(ctx, "yaw"), float32Flag(ctx, "duration"))
	p.GroupMask = mask
	return printFrame(ctx, p.Bytes())
}

func encodePosition(ctx *cli.Context) error {
	r := crazyflie.NewPositionSetpointRequest(float32Flag(ctx, "x"), float32Flag(ctx, "y"), float32Flag(ctx, "z"), float32Flag(ctx, "yaw"))
	return printFrame(ctx, crtp.Marshal(r))
}

func encodeGenericStop(ctx *cli.Context) error {
	return printFrame(ctx, crtp.Marshal(crazyflie.NewGenericStopRequest()))
}

func encodeLogBlock(ctx *cli.Context) error {
	block, err := uintFlag(ctx, "block", 0xFF)
	if err != nil {
		return err
	}

	var items []crazyflie.LogBlockItem
	for _, s := range ctx.StringSlice("item") {
		item, err := parseLogBlockItem(s)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	r, err := logBlockRequest(ctx.Args().First(), uint8(block), items, ctx.Duration("period"))
	if err != nil {
		return err
	}
	return printFrame(ctx, crtp.Marshal(r))
}

// parseLogBlockItem reads "<type>:<id>", the type given by name or code.
func parseLogBlockItem(s string) (crazyflie.LogBlockItem, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return crazyflie.LogBlockItem{}, fmt.Errorf("log item %q is not <type>:<id>", s)
	}

	t, ok := crazyflie.LogTypeByName(parts[0])
	if !ok {
		code, err := strconv.ParseUint(parts[0], 0, 8)
		if err != nil || crazyflie.LogType(code).Size() == 0 {
			return crazyflie.LogBlockItem{}, fmt.Errorf("log item %q: unknown type %q", s, parts[0])
		}
		t = crazyflie.LogType(code)
	}

	id, err := strconv.ParseUint(parts[1], 0, 16)
	if err != nil {
		return crazyflie.LogBlockItem{}, fmt.Errorf("log item %q: bad variable ID: %v", s, err)
	}
	return crazyflie.LogBlockItem{Type: t, VarID: uint16(id)}, nil
}

func logBlockRequest(command string, block uint8, items []crazyflie.LogBlockItem, period time.Duration) (crtp.Request, error) {
	switch command {
	case "create", "append":
		if err := crazyflie.ValidateLogBlock(items); err != nil {
			return nil, err
		}
		if command == "append" {
			return &crazyflie.LogRequestBlockAppend{ID: block, Items: items}, nil
		}
		return &crazyflie.LogRequestBlockCreate{ID: block, Items: items}, nil
	case "start":
		p, err := crazyflie.LogPeriod(period)
		if err != nil {
			return nil, err
		}
		return &crazyflie.LogRequestBlockStart{ID: block, Period: p}, nil
	case "stop":
		return &crazyflie.LogRequestBlockStop{ID: block}, nil
	case "delete":
		return &crazyflie.LogRequestBlockDelete{ID: block}, nil
	case "reset":
		return &crazyflie.LogRequestReset{}, nil
	}
	return nil, fmt.Errorf("unknown log block command %q", command)
}

func encodeParamToc(ctx *cli.Context) error {
	item := ctx.Int("item")
	if item < 0 {
		return printFrame(ctx, crtp.Marshal(&crazyflie.ParamRequestTocInfo{}))
	}
	if item > 0xFFFF {
		return fmt.Errorf("--item %d is out of range", item)
	}
	return printFrame(ctx, crtp.Marshal(&crazyflie.ParamRequestTocItem{ID: uint16(item)}))
}

func encodeParamRead(ctx *cli.Context) error {
	id, err := uintFlag(ctx, "id", 0xFFFF)
	if err != nil {
		return err
	}
	return printFrame(ctx, crtp.Marshal(&crazyflie.ParamRequestRead{ID: uint16(id)}))
}

func encodeParamWrite(ctx *cli.Context) error {
	id, err := uintFlag(ctx, "id", 0xFFFF)
	if err != nil {
		return err
	}
	t, ok := crazyflie.ParamTypeByName(ctx.String("type"))
	if !ok {
		return fmt.Errorf("unknown parameter type %q", ctx.String("type"))
	}
	data, err := crazyflie.ParamValueBytes(t, ctx.Float64("value"))
	if err != nil {
		return err
	}
	return printFrame(ctx, crtp.Marshal(&crazyflie.ParamRequestWrite{ID: uint16(id), Data: data}))
}
