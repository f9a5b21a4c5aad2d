package crazyflie

import "github.com/mikehamer/crazycodec/crtp"

// Param port channels.
const (
	ParamChannelToc   crtp.Channel = 0x00
	ParamChannelRead  crtp.Channel = 0x01
	ParamChannelWrite crtp.Channel = 0x02
	ParamChannelMisc  crtp.Channel = 0x03
)

// Log port channels.
const (
	LogChannelToc     crtp.Channel = 0x00
	LogChannelControl crtp.Channel = 0x01
	LogChannelData    crtp.Channel = 0x02
)

// TOC message ids, shared by the param and log ports (protocol v2).
const (
	TocCommandItem byte = 0x02
	TocCommandInfo byte = 0x03
)

// Log control commands.
const (
	LogControlCreateBlock  byte = 0x06 // protocol v2
	LogControlAppendBlock  byte = 0x07 // protocol v2
	LogControlDeleteBlock  byte = 0x02
	LogControlStartLogging byte = 0x03
	LogControlStopLogging  byte = 0x04
	LogControlReset        byte = 0x05
)

// Log control results, errno values from the firmware.
const (
	LogResultOK            byte = 0
	LogResultWrongBlockID  byte = 2  // ENOENT
	LogResultBlockTooLarge byte = 7  // E2BIG
	LogResultCmdNotFound   byte = 8  // ENOEXEC
	LogResultOutOfMemory   byte = 12 // ENOMEM
	LogResultBlockExists   byte = 17 // EEXIST
)

// High-level commander commands.
const (
	HighLevelSetGroupMask     byte = 0
	HighLevelTakeoff          byte = 1
	HighLevelLand             byte = 2
	HighLevelStop             byte = 3
	HighLevelGoTo             byte = 4
	HighLevelStartTrajectory  byte = 5
	HighLevelDefineTrajectory byte = 6
)

// Generic setpoint commands.
const (
	GenericStop          byte = 0
	GenericVelocityWorld byte = 1
	GenericZDistance     byte = 2
	GenericCPPMEmulation byte = 3
	GenericAltitudeHold  byte = 4
	GenericHover         byte = 5
	GenericFullState     byte = 6
	GenericPosition      byte = 7
)

const GenericChannelSetpoint crtp.Channel = 0x00

// Header bytes embedded at the front of the motion packets.
var (
	HeaderCommander = crtp.EncodeHeader(crtp.NewHeader(crtp.PortCommander, 0))
	HeaderHighLevel = crtp.EncodeHeader(crtp.NewHeader(crtp.PortHighLevel, 0))
)
