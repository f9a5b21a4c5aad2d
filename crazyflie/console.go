package crazyflie

import "strings"

// ConsoleText is one console port payload. The vehicle splits lines across
// packets freely.
type ConsoleText string

// Console joins console payloads back into lines.
type Console struct {
	accumulated string
}

// Feed appends a payload and returns every line it completed, without the
// trailing newline.
func (c *Console) Feed(payload []byte) []string {
	var lines []string

	str := string(payload)
	for {
		i := strings.Index(str, "\n")
		if i == -1 {
			c.accumulated = c.accumulated + str
			break
		}
		lines = append(lines, strings.TrimRight(c.accumulated+str[0:i], "\r"))
		str = str[i+1:]
		c.accumulated = ""
	}
	return lines
}

// Pending is the text received since the last newline.
func (c *Console) Pending() string {
	return c.accumulated
}
