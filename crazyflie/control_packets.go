package crazyflie

import "encoding/binary"

// Motion packets carry their own header byte and are written to the link
// as-is. All of them are device bound, so they only encode.

// ---- CONTROL: COMMANDER ----
type CommanderPacket struct {
	Header           byte
	Roll, Pitch, Yaw float32
	Thrust           uint16
}

const CommanderPacketSize = 1 + 3*4 + 2

func NewCommander(roll, pitch, yaw float32, thrust uint16) CommanderPacket {
	return CommanderPacket{Header: HeaderCommander, Roll: roll, Pitch: pitch, Yaw: yaw, Thrust: thrust}
}

func (p CommanderPacket) Bytes() []byte {
	packet := make([]byte, CommanderPacketSize)
	packet[0] = p.Header
	putFloat32(packet[1:5], p.Roll)
	putFloat32(packet[5:9], p.Pitch)
	putFloat32(packet[9:13], p.Yaw)
	binary.LittleEndian.PutUint16(packet[13:15], p.Thrust)
	return packet
}

// ---- HIGH LEVEL: TAKEOFF ----
type TakeoffPacket struct {
	Header, Command, GroupMask byte
	Height, Duration           float32
}

const TakeoffPacketSize = 3 + 2*4

// NewTakeoff addresses all groups. Height is in meters, duration in seconds.
func NewTakeoff(height, duration float32) TakeoffPacket {
	return TakeoffPacket{Header: HeaderHighLevel, Command: HighLevelTakeoff, Height: height, Duration: duration}
}

func (p TakeoffPacket) Bytes() []byte {
	return encodeHeightDuration(p.Header, p.Command, p.GroupMask, p.Height, p.Duration)
}

// ---- HIGH LEVEL: LAND ----
type LandPacket struct {
	Header, Command, GroupMask byte
	Height, Duration           float32
}

const LandPacketSize = TakeoffPacketSize

func NewLand(height, duration float32) LandPacket {
	return LandPacket{Header: HeaderHighLevel, Command: HighLevelLand, Height: height, Duration: duration}
}

func (p LandPacket) Bytes() []byte {
	return encodeHeightDuration(p.Header, p.Command, p.GroupMask, p.Height, p.Duration)
}

func encodeHeightDuration(header, command, groupMask byte, height, duration float32) []byte {
	packet := make([]byte, TakeoffPacketSize)
	packet[0] = header
	packet[1] = command
	packet[2] = groupMask
	putFloat32(packet[3:7], height)
	putFloat32(packet[7:11], duration)
	return packet
}

// ---- HIGH LEVEL: STOP ----
type StopPacket struct {
	Header, Command, GroupMask byte
}

const StopPacketSize = 3

func NewStop() StopPacket {
	return StopPacket{Header: HeaderHighLevel, Command: HighLevelStop}
}

func (p StopPacket) Bytes() []byte {
	return []byte{p.Header, p.Command, p.GroupMask}
}

// ---- HIGH LEVEL: GO TO ----
type GoToPacket struct {
	Header, Command, GroupMask byte
	Relative                   bool
	X, Y, Z, Yaw, Duration     float32
}

const GoToPacketSize = 4 + 5*4

func NewGoTo(relative bool, x, y, z, yaw, duration float32) GoToPacket {
	return GoToPacket{
		Header:   HeaderHighLevel,
		Command:  HighLevelGoTo,
		Relative: relative,
		X:        x,
		Y:        y,
		Z:        z,
		Yaw:      yaw,
		Duration: duration,
	}
}

func (p GoToPacket) Bytes() []byte {
	packet := make([]byte, GoToPacketSize)
	packet[0] = p.Header
	packet[1] = p.Command
	packet[2] = p.GroupMask
	if p.Relative {
		packet[3] = 1
	}
	putFloat32(packet[4:8], p.X)
	putFloat32(packet[8:12], p.Y)
	putFloat32(packet[12:16], p.Z)
	putFloat32(packet[16:20], p.Yaw)
	putFloat32(packet[20:24], p.Duration)
	return packet
}
