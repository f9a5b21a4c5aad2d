package toc

import "fmt"

type tocError uint8

func (e tocError) Error() string {
	return fmt.Sprintf("toc: %s", tocErrorString[e])
}

const (
	ErrorWrongKind tocError = iota
	ErrorIDOutOfRange
	ErrorIncomplete
	ErrorNoResponse
)

var tocErrorString = map[tocError]string{
	ErrorWrongKind:    "item does not belong to this kind of table",
	ErrorIDOutOfRange: "item id is beyond the announced table size",
	ErrorIncomplete:   "table is missing its info or some items",
	ErrorNoResponse:   "vehicle did not answer the toc request",
}
