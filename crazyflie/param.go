package crazyflie

import (
	"encoding/binary"
	"math"
)

// ParamType is the 4-bit type code carried in a param TOC item's metadata.
type ParamType uint8

const (
	ParamInt8    ParamType = 0x00
	ParamInt16   ParamType = 0x01
	ParamInt32   ParamType = 0x02
	ParamInt64   ParamType = 0x03
	ParamFloat32 ParamType = 0x06
	ParamFloat64 ParamType = 0x07
	ParamUint8   ParamType = 0x08
	ParamUint16  ParamType = 0x09
	ParamUint32  ParamType = 0x0A
	ParamUint64  ParamType = 0x0B
)

var paramTypeToSize = map[ParamType]int{
	ParamInt8:    1,
	ParamInt16:   2,
	ParamInt32:   4,
	ParamInt64:   8,
	ParamFloat32: 4,
	ParamFloat64: 8,
	ParamUint8:   1,
	ParamUint16:  2,
	ParamUint32:  4,
	ParamUint64:  8,
}

var paramTypeToName = map[ParamType]string{
	ParamInt8:    "int8",
	ParamInt16:   "int16",
	ParamInt32:   "int32",
	ParamInt64:   "int64",
	ParamFloat32: "float",
	ParamFloat64: "double",
	ParamUint8:   "uint8",
	ParamUint16:  "uint16",
	ParamUint32:  "uint32",
	ParamUint64:  "uint64",
}

// Size is the width of a value of this type in bytes, 0 if the type is unknown.
func (t ParamType) Size() int {
	return paramTypeToSize[t]
}

func (t ParamType) String() string {
	if name, ok := paramTypeToName[t]; ok {
		return name
	}
	return "unknown"
}

// paramIntRange holds the inclusive bounds of the integer types. The 64-bit
// upper bounds are exclusive: 2^63 and 2^64 are the first unrepresentable
// float64 values.
var paramIntRange = map[ParamType][2]float64{
	ParamInt8:   {math.MinInt8, math.MaxInt8},
	ParamInt16:  {math.MinInt16, math.MaxInt16},
	ParamInt32:  {math.MinInt32, math.MaxInt32},
	ParamInt64:  {math.MinInt64, 1 << 63},
	ParamUint8:  {0, math.MaxUint8},
	ParamUint16: {0, math.MaxUint16},
	ParamUint32: {0, math.MaxUint32},
	ParamUint64: {0, 1 << 64},
}

// checkParamValue rejects values that type t cannot hold exactly.
func checkParamValue(t ParamType, v float64) error {
	if bounds, ok := paramIntRange[t]; ok {
		if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) || v < bounds[0] {
			return ErrorParamValueOutOfRange
		}
		if t == ParamInt64 || t == ParamUint64 {
			if v >= bounds[1] {
				return ErrorParamValueOutOfRange
			}
		} else if v > bounds[1] {
			return ErrorParamValueOutOfRange
		}
		return nil
	}
	if t == ParamFloat32 && !math.IsInf(v, 0) && math.Abs(v) > math.MaxFloat32 {
		return ErrorParamValueOutOfRange
	}
	return nil
}

// ParamValueBytes converts v to the wire representation of type t. Integer
// types only accept whole numbers within their range.
func ParamValueBytes(t ParamType, v float64) ([]byte, error) {
	size := t.Size()
	if size == 0 {
		return nil, ErrorUnknownType
	}
	if err := checkParamValue(t, v); err != nil {
		return nil, err
	}
	b := make([]byte, size)
	switch t {
	case ParamInt8:
		b[0] = byte(int8(v))
	case ParamUint8:
		b[0] = uint8(v)
	case ParamInt16:
		binary.LittleEndian.PutUint16(b, uint16(int16(v)))
	case ParamUint16:
		binary.LittleEndian.PutUint16(b, uint16(v))
	case ParamInt32:
		binary.LittleEndian.PutUint32(b, uint32(int32(v)))
	case ParamUint32:
		binary.LittleEndian.PutUint32(b, uint32(v))
	case ParamInt64:
		binary.LittleEndian.PutUint64(b, uint64(int64(v)))
	case ParamUint64:
		binary.LittleEndian.PutUint64(b, uint64(v))
	case ParamFloat32:
		putFloat32(b, float32(v))
	case ParamFloat64:
		putFloat64(b, v)
	}
	return b, nil
}

// ParamValueOf interprets data as a value of type t. The result holds the
// matching Go type (uint8, int16, float32, ...).
func ParamValueOf(t ParamType, data []byte) (interface{}, error) {
	size := t.Size()
	if size == 0 {
		return nil, ErrorUnknownType
	}
	if len(data) < size {
		return nil, shortResponse(size, len(data))
	}
	switch t {
	case ParamInt8:
		return int8(data[0]), nil
	case ParamUint8:
		return data[0], nil
	case ParamInt16:
		return int16(binary.LittleEndian.Uint16(data)), nil
	case ParamUint16:
		return binary.LittleEndian.Uint16(data), nil
	case ParamInt32:
		return int32(binary.LittleEndian.Uint32(data)), nil
	case ParamUint32:
		return binary.LittleEndian.Uint32(data), nil
	case ParamInt64:
		return int64(binary.LittleEndian.Uint64(data)), nil
	case ParamUint64:
		return binary.LittleEndian.Uint64(data), nil
	case ParamFloat32:
		return getFloat32(data), nil
	case ParamFloat64:
		return getFloat64(data), nil
	}
	return nil, ErrorUnknownType
}

// ParamTypeByName is the inverse of ParamType.String.
func ParamTypeByName(name string) (ParamType, bool) {
	for t, n := range paramTypeToName {
		if n == name {
			return t, true
		}
	}
	return 0, false
}
