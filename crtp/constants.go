package crtp

type Port byte
type Channel byte
type Link byte

const (
	PortConsole         Port = 0x00
	PortParam           Port = 0x02
	PortCommander       Port = 0x03
	PortMem             Port = 0x04
	PortLog             Port = 0x05
	PortLocalization    Port = 0x06
	PortGenericSetpoint Port = 0x07
	PortHighLevel       Port = 0x08
	PortPlatform        Port = 0x0D
	PortDebug           Port = 0x0E
	PortLink            Port = 0x0F
)

// MaxPayloadSize is the largest payload the vehicle accepts after the header byte.
const MaxPayloadSize = 30

var portName = map[Port]string{
	PortConsole:         "console",
	PortParam:           "param",
	PortCommander:       "commander",
	PortMem:             "mem",
	PortLog:             "log",
	PortLocalization:    "localization",
	PortGenericSetpoint: "generic-setpoint",
	PortHighLevel:       "high-level",
	PortPlatform:        "platform",
	PortDebug:           "debug",
	PortLink:            "link",
}

func (p Port) String() string {
	if name, ok := portName[p]; ok {
		return name
	}
	return "unknown"
}

// Ports lists the known ports in ascending order.
func Ports() []Port {
	return []Port{
		PortConsole, PortParam, PortCommander, PortMem, PortLog, PortLocalization,
		PortGenericSetpoint, PortHighLevel, PortPlatform, PortDebug, PortLink,
	}
}
