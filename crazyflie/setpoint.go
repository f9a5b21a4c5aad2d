package crazyflie

import "github.com/mikehamer/crazycodec/crtp"

// ---- GENERIC SETPOINT: POSITION ----
type PositionSetpoint struct {
	X, Y, Z, Yaw float32
}

const PositionSetpointSize = 4 * 4

func (p PositionSetpoint) Bytes() []byte {
	packet := make([]byte, PositionSetpointSize)
	putFloat32(packet[0:4], p.X)
	putFloat32(packet[4:8], p.Y)
	putFloat32(packet[8:12], p.Z)
	putFloat32(packet[12:16], p.Yaw)
	return packet
}

func EncodeGenericSetpoint(command byte, payload []byte) []byte {
	return prepend(command, payload)
}

// ---- GENERIC SETPOINT REQUEST ----
type GenericSetpoint struct {
	Command byte
	Payload []byte
}

func (p *GenericSetpoint) Port() crtp.Port {
	return crtp.PortGenericSetpoint
}

func (p *GenericSetpoint) Channel() crtp.Channel {
	return GenericChannelSetpoint
}

func (p *GenericSetpoint) Bytes() []byte {
	return EncodeGenericSetpoint(p.Command, p.Payload)
}

// NewPositionSetpointRequest holds the vehicle at an absolute position.
// Yaw is in degrees.
func NewPositionSetpointRequest(x, y, z, yaw float32) *GenericSetpoint {
	return &GenericSetpoint{
		Command: GenericPosition,
		Payload: PositionSetpoint{X: x, Y: y, Z: z, Yaw: yaw}.Bytes(),
	}
}

// NewGenericTakeoffRequest climbs straight up from the origin to height.
func NewGenericTakeoffRequest(height float32) *GenericSetpoint {
	return NewPositionSetpointRequest(0, 0, height, 0)
}

func NewGenericStopRequest() *GenericSetpoint {
	return &GenericSetpoint{Command: GenericStop}
}
