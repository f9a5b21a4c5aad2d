package crtp

// Frame is a header plus an opaque payload. The wire form has no length
// prefix; the transport's own framing carries the length.
type Frame struct {
	Header  Header `json:"header"`
	Payload []byte `json:"payload"`
}

func EncodeFrame(h Header, payload []byte) []byte {
	packet := make([]byte, 1+len(payload))
	packet[0] = EncodeHeader(h)
	copy(packet[1:], payload)
	return packet
}

// DecodeFrame splits b into its header and payload. The payload aliases b.
func DecodeFrame(b []byte) (Header, []byte, error) {
	if len(b) < 1 {
		return Header{}, nil, ErrorTruncatedFrame
	}
	return DecodeHeader(b[0]), b[1:], nil
}

func ParseFrame(b []byte) (Frame, error) {
	h, payload, err := DecodeFrame(b)
	if err != nil {
		return Frame{}, err
	}
	return Frame{Header: h, Payload: payload}, nil
}

func (f Frame) Bytes() []byte {
	return EncodeFrame(f.Header, f.Payload)
}

// Marshal returns the complete packet for a typed request.
func Marshal(request Request) []byte {
	return EncodeFrame(NewHeader(request.Port(), request.Channel()), request.Bytes())
}
