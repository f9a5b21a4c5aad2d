package crtp

// Request is a typed host-to-vehicle packet. Bytes returns the payload that
// follows the header byte.
type Request interface {
	Port() Port
	Channel() Channel
	Bytes() []byte
}
