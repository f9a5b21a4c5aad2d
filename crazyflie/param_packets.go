package crazyflie

import (
	"encoding/binary"

	"github.com/mikehamer/crazycodec/crtp"
)

// ParamTocPacket is a message on the param TOC channel: a message id
// followed by its payload.
type ParamTocPacket struct {
	MessageID byte
	Payload   []byte
}

func EncodeParamToc(messageID byte, payload []byte) []byte {
	return prepend(messageID, payload)
}

// DecodeParamToc splits the message id off b. The payload aliases b.
func DecodeParamToc(b []byte) (ParamTocPacket, error) {
	if len(b) < 1 {
		return ParamTocPacket{}, crtp.ErrorTruncatedFrame
	}
	return ParamTocPacket{MessageID: b[0], Payload: b[1:]}, nil
}

// ParamMetadata is the packed byte of a param TOC item.
//
//	bit 0     group
//	bit 1     readonly
//	bit 3..2  reserved
//	bit 7..4  type
type ParamMetadata struct {
	Type     ParamType `json:"type"`
	Readonly bool      `json:"readonly"`
	Group    bool      `json:"group"`
}

// PackParamMetadata masks Type to its 4 bits.
func PackParamMetadata(m ParamMetadata) byte {
	b := (byte(m.Type) & 0x0F) << 4
	if m.Readonly {
		b |= 1 << 1
	}
	if m.Group {
		b |= 1 << 0
	}
	return b
}

func UnpackParamMetadata(b byte) ParamMetadata {
	return ParamMetadata{
		Type:     ParamType(b >> 4),
		Readonly: b&(1<<1) != 0,
		Group:    b&(1<<0) != 0,
	}
}

// ---- PARAM RESPONSE: TOC INFO ----
type ParamTocInfoResponse struct {
	ParamCount uint16 `json:"count"`
	CRC        uint32 `json:"crc"`
}

const paramTocInfoSize = 6

func ParseParamTocInfo(b []byte) (ParamTocInfoResponse, error) {
	if len(b) < paramTocInfoSize {
		return ParamTocInfoResponse{}, shortResponse(paramTocInfoSize, len(b))
	}
	return ParamTocInfoResponse{
		ParamCount: binary.LittleEndian.Uint16(b[0:2]),
		CRC:        binary.LittleEndian.Uint32(b[2:6]),
	}, nil
}

// ---- PARAM RESPONSE: TOC ITEM ----
type ParamTocItemResponse struct {
	ParamID  uint16        `json:"id"`
	Metadata ParamMetadata `json:"metadata"`
	Name     string        `json:"name"`
	Member   string        `json:"member"`
}

const tocItemPrefixSize = 3

func ParseParamTocItem(b []byte) (ParamTocItemResponse, error) {
	if len(b) < tocItemPrefixSize {
		return ParamTocItemResponse{}, shortResponse(tocItemPrefixSize, len(b))
	}
	name, member := tocNames(b[3:])
	return ParamTocItemResponse{
		ParamID:  binary.LittleEndian.Uint16(b[0:2]),
		Metadata: UnpackParamMetadata(b[2]),
		Name:     name,
		Member:   member,
	}, nil
}

// FullName is the dotted "group.name" form used to look parameters up.
func (p ParamTocItemResponse) FullName() string {
	return joinName(p.Name, p.Member)
}

// ---- PARAM READ/WRITE VALUE ----
type ParamValue struct {
	ParamID uint16 `json:"id"`
	Data    []byte `json:"data"`
}

func EncodeParamValue(id uint16, data []byte) []byte {
	b := make([]byte, 2+len(data))
	binary.LittleEndian.PutUint16(b, id)
	copy(b[2:], data)
	return b
}

// DecodeParamValue reads a read or write acknowledgement. Data aliases b.
func DecodeParamValue(b []byte) (ParamValue, error) {
	if len(b) < 2 {
		return ParamValue{}, shortResponse(2, len(b))
	}
	return ParamValue{ParamID: binary.LittleEndian.Uint16(b[0:2]), Data: b[2:]}, nil
}

// ---- PARAM REQUEST: TOC INFO ----
type ParamRequestTocInfo struct{}

func (p *ParamRequestTocInfo) Port() crtp.Port {
	return crtp.PortParam
}

func (p *ParamRequestTocInfo) Channel() crtp.Channel {
	return ParamChannelToc
}

func (p *ParamRequestTocInfo) Bytes() []byte {
	return []byte{TocCommandInfo}
}

// ---- PARAM REQUEST: TOC ITEM ----
type ParamRequestTocItem struct{ ID uint16 }

func (p *ParamRequestTocItem) Port() crtp.Port {
	return crtp.PortParam
}

func (p *ParamRequestTocItem) Channel() crtp.Channel {
	return ParamChannelToc
}

func (p *ParamRequestTocItem) Bytes() []byte {
	return []byte{TocCommandItem, byte(p.ID), byte(p.ID >> 8)}
}

// ---- PARAM REQUEST: READ VALUE ----
type ParamRequestRead struct{ ID uint16 }

func (p *ParamRequestRead) Port() crtp.Port {
	return crtp.PortParam
}

func (p *ParamRequestRead) Channel() crtp.Channel {
	return ParamChannelRead
}

func (p *ParamRequestRead) Bytes() []byte {
	return EncodeParamValue(p.ID, nil)
}

// ---- PARAM REQUEST: WRITE VALUE ----
type ParamRequestWrite struct {
	ID   uint16
	Data []byte
}

func (p *ParamRequestWrite) Port() crtp.Port {
	return crtp.PortParam
}

func (p *ParamRequestWrite) Channel() crtp.Channel {
	return ParamChannelWrite
}

func (p *ParamRequestWrite) Bytes() []byte {
	return EncodeParamValue(p.ID, p.Data)
}
