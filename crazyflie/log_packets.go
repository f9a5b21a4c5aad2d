package crazyflie

import (
	"encoding/binary"

	"github.com/mikehamer/crazycodec/crtp"
)

// LogTocPacket is a message on the log TOC channel.
type LogTocPacket struct {
	Command byte
	Payload []byte
}

func EncodeLogToc(command byte, payload []byte) []byte {
	return prepend(command, payload)
}

// DecodeLogToc splits the command off b. The payload aliases b.
func DecodeLogToc(b []byte) (LogTocPacket, error) {
	if len(b) < 1 {
		return LogTocPacket{}, crtp.ErrorTruncatedFrame
	}
	return LogTocPacket{Command: b[0], Payload: b[1:]}, nil
}

// ---- LOG RESPONSE: TOC INFO ----
type LogTocInfoResponse struct {
	VarCount   uint16 `json:"count"`
	CRC        uint32 `json:"crc"`
	MaxPackets uint8  `json:"maxPackets"`
	MaxOps     uint8  `json:"maxOps"`
}

const logTocInfoSize = 8

func ParseLogTocInfo(b []byte) (LogTocInfoResponse, error) {
	if len(b) < logTocInfoSize {
		return LogTocInfoResponse{}, shortResponse(logTocInfoSize, len(b))
	}
	return LogTocInfoResponse{
		VarCount:   binary.LittleEndian.Uint16(b[0:2]),
		CRC:        binary.LittleEndian.Uint32(b[2:6]),
		MaxPackets: b[6],
		MaxOps:     b[7],
	}, nil
}

// ---- LOG RESPONSE: TOC ITEM ----
type LogTocItemResponse struct {
	VarID  uint16  `json:"id"`
	Type   LogType `json:"type"`
	Name   string  `json:"name"`
	Member string  `json:"member"`
}

func ParseLogTocItem(b []byte) (LogTocItemResponse, error) {
	if len(b) < tocItemPrefixSize {
		return LogTocItemResponse{}, shortResponse(tocItemPrefixSize, len(b))
	}
	name, member := tocNames(b[3:])
	return LogTocItemResponse{
		VarID:  binary.LittleEndian.Uint16(b[0:2]),
		Type:   LogType(b[2]),
		Name:   name,
		Member: member,
	}, nil
}

func (l LogTocItemResponse) FullName() string {
	return joinName(l.Name, l.Member)
}

// ---- LOG BLOCK DEFINITION ----
type LogBlockItem struct {
	Type  LogType `json:"type"`
	VarID uint16  `json:"id"`
}

const logBlockItemSize = 3

// EncodeBlockDefinition writes the block id and each item in order, then
// extra. Item order is the sampling order on the vehicle.
func EncodeBlockDefinition(blockID byte, items []LogBlockItem, extra []byte) []byte {
	b := make([]byte, 1+logBlockItemSize*len(items)+len(extra))
	b[0] = blockID
	idx := 1
	for _, item := range items {
		b[idx] = byte(item.Type)
		binary.LittleEndian.PutUint16(b[idx+1:], item.VarID)
		idx += logBlockItemSize
	}
	copy(b[idx:], extra)
	return b
}

func EncodeLogControl(command byte, payload []byte) []byte {
	return prepend(command, payload)
}

// ---- LOG RESPONSE: CONTROL ----
type LogControlResponse struct {
	Command byte `json:"command"`
	BlockID byte `json:"block"`
	Result  byte `json:"result"`
}

func DecodeLogControlResponse(b []byte) (LogControlResponse, error) {
	if len(b) < 3 {
		return LogControlResponse{}, shortResponse(3, len(b))
	}
	return LogControlResponse{Command: b[0], BlockID: b[1], Result: b[2]}, nil
}

var logResultToError = map[byte]error{
	LogResultOK:            nil,
	LogResultWrongBlockID:  ErrorLogBlockOrItemNotFound,
	LogResultBlockTooLarge: ErrorLogBlockTooLong,
	LogResultCmdNotFound:   ErrorLogCommandNotFound,
	LogResultOutOfMemory:   ErrorLogBlockNoMemory,
	LogResultBlockExists:   ErrorLogBlockExists,
}

// Err maps the vehicle's result code to an error, nil on success.
func (l LogControlResponse) Err() error {
	if err, ok := logResultToError[l.Result]; ok {
		return err
	}
	return ErrorUnknown
}

// ---- LOG RESPONSE: DATA ----
type LogDataHeader struct {
	BlockID   byte   `json:"block"`
	Timestamp uint32 `json:"timestamp"`
}

// DecodeLogData splits the block id and 24-bit timestamp off a data frame.
// The sample payload aliases b; DecodeLogSamples reads it once the block
// definition is known.
func DecodeLogData(b []byte) (LogDataHeader, []byte, error) {
	if len(b) < logDataHeaderSize {
		return LogDataHeader{}, nil, shortResponse(logDataHeaderSize, len(b))
	}
	lo := uint32(b[1])
	hi := uint32(binary.LittleEndian.Uint16(b[2:4]))
	return LogDataHeader{BlockID: b[0], Timestamp: lo | hi<<8}, b[4:], nil
}

// ---- LOG REQUEST: TOC INFO ----
type LogRequestTocInfo struct{}

func (p *LogRequestTocInfo) Port() crtp.Port {
	return crtp.PortLog
}

func (p *LogRequestTocInfo) Channel() crtp.Channel {
	return LogChannelToc
}

func (p *LogRequestTocInfo) Bytes() []byte {
	return []byte{TocCommandInfo}
}

// ---- LOG REQUEST: TOC ITEM ----
type LogRequestTocItem struct{ ID uint16 }

func (p *LogRequestTocItem) Port() crtp.Port {
	return crtp.PortLog
}

func (p *LogRequestTocItem) Channel() crtp.Channel {
	return LogChannelToc
}

func (p *LogRequestTocItem) Bytes() []byte {
	return []byte{TocCommandItem, byte(p.ID), byte(p.ID >> 8)}
}

// ---- LOG REQUEST: BLOCK CREATE ----
type LogRequestBlockCreate struct {
	ID    byte
	Items []LogBlockItem
}

func (p *LogRequestBlockCreate) Port() crtp.Port {
	return crtp.PortLog
}

func (p *LogRequestBlockCreate) Channel() crtp.Channel {
	return LogChannelControl
}

func (p *LogRequestBlockCreate) Bytes() []byte {
	return EncodeLogControl(LogControlCreateBlock, EncodeBlockDefinition(p.ID, p.Items, nil))
}

// ---- LOG REQUEST: BLOCK APPEND ----
type LogRequestBlockAppend struct {
	ID    byte
	Items []LogBlockItem
}

func (p *LogRequestBlockAppend) Port() crtp.Port {
	return crtp.PortLog
}

func (p *LogRequestBlockAppend) Channel() crtp.Channel {
	return LogChannelControl
}

func (p *LogRequestBlockAppend) Bytes() []byte {
	return EncodeLogControl(LogControlAppendBlock, EncodeBlockDefinition(p.ID, p.Items, nil))
}

// ---- LOG REQUEST: BLOCK DELETE ----
type LogRequestBlockDelete struct{ ID byte }

func (p *LogRequestBlockDelete) Port() crtp.Port {
	return crtp.PortLog
}

func (p *LogRequestBlockDelete) Channel() crtp.Channel {
	return LogChannelControl
}

func (p *LogRequestBlockDelete) Bytes() []byte {
	return []byte{LogControlDeleteBlock, p.ID}
}

// ---- LOG REQUEST: BLOCK START ----
type LogRequestBlockStart struct {
	ID     byte
	Period uint8 // 10ms units, see LogPeriod
}

func (p *LogRequestBlockStart) Port() crtp.Port {
	return crtp.PortLog
}

func (p *LogRequestBlockStart) Channel() crtp.Channel {
	return LogChannelControl
}

func (p *LogRequestBlockStart) Bytes() []byte {
	return []byte{LogControlStartLogging, p.ID, p.Period}
}

// ---- LOG REQUEST: BLOCK STOP ----
type LogRequestBlockStop struct{ ID byte }

func (p *LogRequestBlockStop) Port() crtp.Port {
	return crtp.PortLog
}

func (p *LogRequestBlockStop) Channel() crtp.Channel {
	return LogChannelControl
}

func (p *LogRequestBlockStop) Bytes() []byte {
	return []byte{LogControlStopLogging, p.ID}
}

// ---- LOG REQUEST: RESET ----
type LogRequestReset struct{}

func (p *LogRequestReset) Port() crtp.Port {
	return crtp.PortLog
}

func (p *LogRequestReset) Channel() crtp.Channel {
	return LogChannelControl
}

func (p *LogRequestReset) Bytes() []byte {
	return []byte{LogControlReset}
}
