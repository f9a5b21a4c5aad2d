package crtp

import "fmt"

type crtpError uint8

func (e crtpError) Error() string {
	return fmt.Sprintf("crtp: %s", crtpErrorString[e])
}

const (
	ErrorPacketIncorrectType crtpError = iota
	ErrorTruncatedFrame
	ErrorShortResponse
)

var crtpErrorString = map[crtpError]string{
	ErrorPacketIncorrectType: "cannot decode packet from bytes: incorrect format",
	ErrorTruncatedFrame:      "frame is missing its leading header or command byte",
	ErrorShortResponse:       "response is shorter than its fixed layout",
}

// ShortResponse wraps ErrorShortResponse with the sizes involved.
func ShortResponse(need, got int) error {
	return fmt.Errorf("%w: need %d bytes, got %d", ErrorShortResponse, need, got)
}
