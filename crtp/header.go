package crtp

// Header is the first byte of every packet on the link.
//
//	bit 7..4  port
//	bit 3..2  link
//	bit 1..0  channel
//
// Fields wider than their slot are masked when encoded, the same truncation
// the firmware applies to its bitfield struct.
type Header struct {
	Port    Port    `json:"port"`
	Link    Link    `json:"link"`
	Channel Channel `json:"channel"`
}

const (
	portMask    = 0x0F
	linkMask    = 0x03
	channelMask = 0x03
)

func NewHeader(port Port, channel Channel) Header {
	return Header{Port: port, Channel: channel}
}

func EncodeHeader(h Header) byte {
	return ((byte(h.Port) & portMask) << 4) |
		((byte(h.Link) & linkMask) << 2) |
		((byte(h.Channel) & channelMask) << 0)
}

func DecodeHeader(b byte) Header {
	return Header{
		Port:    Port((b >> 4) & portMask),
		Link:    Link((b >> 2) & linkMask),
		Channel: Channel((b >> 0) & channelMask),
	}
}

func (h Header) Byte() byte {
	return EncodeHeader(h)
}

// Valid reports whether every field fits its bit width, i.e. whether h comes
// back unchanged from an encode/decode round trip.
func (h Header) Valid() bool {
	return DecodeHeader(EncodeHeader(h)) == h
}

// IsNull reports whether the header marks an empty link-layer packet, which
// the vehicle sends when it has nothing to report.
func (h Header) IsNull() bool {
	return h.Port == PortLink && h.Channel == 0x03
}
