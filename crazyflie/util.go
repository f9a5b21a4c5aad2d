package crazyflie

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/mikehamer/crazycodec/crtp"
)

// everything on the wire is little endian

func shortResponse(need, got int) error {
	return crtp.ShortResponse(need, got)
}

func putFloat32(b []byte, v float32) {
	binary.LittleEndian.PutUint32(b, math.Float32bits(v))
}

func getFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

func putFloat64(b []byte, v float64) {
	binary.LittleEndian.PutUint64(b, math.Float64bits(v))
}

func getFloat64(b []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(b))
}

// float16ToFloat32 widens an IEEE-754 binary16 value.
func float16ToFloat32(h uint16) float32 {
	sign := uint32(h>>15) << 31
	exp := uint32(h>>10) & 0x1F
	frac := uint32(h) & 0x03FF

	switch exp {
	case 0x1F: // inf or NaN
		return math.Float32frombits(sign | 0x7F800000 | frac<<13)
	case 0:
		if frac == 0 {
			return math.Float32frombits(sign)
		}
		v := float32(frac) / (1 << 24) // subnormal
		if sign != 0 {
			v = -v
		}
		return v
	default:
		return math.Float32frombits(sign | (exp+127-15)<<23 | frac<<13)
	}
}

// tocNameLength bounds the name field of a TOC item response.
const tocNameLength = 26

// tocNames reads the "group\0name\0" pair packed into a TOC item's name
// field. It never looks past tocNameLength bytes or the end of b; a missing
// terminator ends the string at the bound.
func tocNames(b []byte) (group, name string) {
	if len(b) > tocNameLength {
		b = b[:tocNameLength]
	}
	group, rest := cString(b)
	name, _ = cString(rest)
	return group, name
}

func cString(b []byte) (string, []byte) {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return string(b[:i]), b[i+1:]
	}
	return string(b), nil
}

func joinName(group, name string) string {
	if name == "" {
		return group
	}
	return group + "." + name
}

// prepend returns [first] ++ payload in a single allocation.
func prepend(first byte, payload []byte) []byte {
	packet := make([]byte, 1+len(payload))
	packet[0] = first
	copy(packet[1:], payload)
	return packet
}
