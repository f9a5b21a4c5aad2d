package crazyflie

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/mikehamer/crazycodec/crtp"
)

// LogType is the type code of a loggable variable.
type LogType uint8

const (
	LogUint8   LogType = 1
	LogUint16  LogType = 2
	LogUint32  LogType = 3
	LogInt8    LogType = 4
	LogInt16   LogType = 5
	LogInt32   LogType = 6
	LogFloat32 LogType = 7
	LogFloat16 LogType = 8
)

var logTypeToSize = map[LogType]int{
	LogUint8:   1,
	LogUint16:  2,
	LogUint32:  4,
	LogInt8:    1,
	LogInt16:   2,
	LogInt32:   4,
	LogFloat32: 4,
	LogFloat16: 2,
}

var logTypeToName = map[LogType]string{
	LogUint8:   "uint8",
	LogUint16:  "uint16",
	LogUint32:  "uint32",
	LogInt8:    "int8",
	LogInt16:   "int16",
	LogInt32:   "int32",
	LogFloat32: "float",
	LogFloat16: "fp16",
}

var logTypeToValue = map[LogType](func([]byte) interface{}){
	LogUint8:   func(b []byte) interface{} { return b[0] },
	LogUint16:  func(b []byte) interface{} { return binary.LittleEndian.Uint16(b) },
	LogUint32:  func(b []byte) interface{} { return binary.LittleEndian.Uint32(b) },
	LogInt8:    func(b []byte) interface{} { return int8(b[0]) },
	LogInt16:   func(b []byte) interface{} { return int16(binary.LittleEndian.Uint16(b)) },
	LogInt32:   func(b []byte) interface{} { return int32(binary.LittleEndian.Uint32(b)) },
	LogFloat32: func(b []byte) interface{} { return getFloat32(b) },
	LogFloat16: func(b []byte) interface{} { return float16ToFloat32(binary.LittleEndian.Uint16(b)) },
}

// Size is the sample width of the type in bytes, 0 if the type is unknown.
func (t LogType) Size() int {
	return logTypeToSize[t]
}

func (t LogType) String() string {
	if name, ok := logTypeToName[t]; ok {
		return name
	}
	return "unknown"
}

// LogSample is one decoded variable of a log data frame.
type LogSample struct {
	VarID uint16      `json:"id"`
	Type  LogType     `json:"type"`
	Value interface{} `json:"value"`
}

// DecodeLogSamples walks the payload of a log data frame in block order.
// Trailing bytes past the last item are ignored.
func DecodeLogSamples(items []LogBlockItem, payload []byte) ([]LogSample, error) {
	samples := make([]LogSample, 0, len(items))
	idx := 0
	for _, item := range items {
		size := item.Type.Size()
		if size == 0 {
			return nil, ErrorUnknownType
		}
		if idx+size > len(payload) {
			return nil, shortResponse(idx+size, len(payload))
		}
		samples = append(samples, LogSample{
			VarID: item.VarID,
			Type:  item.Type,
			Value: logTypeToValue[item.Type](payload[idx : idx+size]),
		})
		idx += size
	}
	return samples, nil
}

const (
	// logDataHeaderSize is block id plus the 24-bit timestamp.
	logDataHeaderSize = 4
	// MaxLogSampleSize bounds the summed sample width of one block.
	MaxLogSampleSize = crtp.MaxPayloadSize - logDataHeaderSize
	// MaxLogBlockItems fits [command][block id] and the items in one packet.
	MaxLogBlockItems = (crtp.MaxPayloadSize - 2) / logBlockItemSize
)

// ValidateLogBlock checks that a block definition fits one create packet
// and that its samples fit one data frame.
func ValidateLogBlock(items []LogBlockItem) error {
	if len(items) > MaxLogBlockItems {
		return ErrorLogBlockTooLong
	}
	total := 0
	for _, item := range items {
		size := item.Type.Size()
		if size == 0 {
			return ErrorUnknownType
		}
		total += size
	}
	if total > MaxLogSampleSize {
		return ErrorLogBlockTooLong
	}
	return nil
}

// LogPeriod converts d to the 10 ms units of a start request, rounding to
// the nearest unit.
func LogPeriod(d time.Duration) (uint8, error) {
	units := math.Floor(d.Seconds()*100.0 + 0.5)
	if units < 1 {
		return 0, ErrorLogBlockPeriodTooShort
	}
	if units > 255 {
		return 0, ErrorLogBlockPeriodTooLong
	}
	return uint8(units), nil
}

// LogTypeByName is the inverse of LogType.String.
func LogTypeByName(name string) (LogType, bool) {
	for t, n := range logTypeToName {
		if n == name {
			return t, true
		}
	}
	return 0, false
}
