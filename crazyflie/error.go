package crazyflie

import "fmt"

type crazyflieError uint8

func (e crazyflieError) Error() string {
	return fmt.Sprintf("crazyflie: %s", crazyflieErrorString[e])
}

const (
	ErrorLogBlockOrItemNotFound crazyflieError = iota
	ErrorLogBlockNoMemory
	ErrorLogBlockTooLong
	ErrorLogBlockExists
	ErrorLogCommandNotFound
	ErrorLogBlockPeriodTooShort
	ErrorLogBlockPeriodTooLong

	ErrorParamNotFound
	ErrorParamValueOutOfRange

	ErrorUnknownType

	ErrorUnknown
)

var crazyflieErrorString = map[crazyflieError]string{
	ErrorLogBlockOrItemNotFound: "log block or item not found",
	ErrorLogBlockNoMemory:       "no memory to allocate log block",
	ErrorLogBlockTooLong:        "log block is too long",
	ErrorLogBlockExists:         "log block already exists",
	ErrorLogCommandNotFound:     "log control command not found",
	ErrorLogBlockPeriodTooShort: "log block reporting period too short",
	ErrorLogBlockPeriodTooLong:  "log block reporting period too long",

	ErrorParamNotFound:        "parameter not found",
	ErrorParamValueOutOfRange: "value does not fit the parameter type",

	ErrorUnknownType: "unknown variable type",

	ErrorUnknown: "an unknown error occurred",
}
