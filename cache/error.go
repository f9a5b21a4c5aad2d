package cache

import "fmt"

type cacheError uint8

func (e cacheError) Error() string {
	return fmt.Sprintf("cache: %s", cacheErrorString[e])
}

const (
	ErrorNotInitialised cacheError = iota
	ErrorMiss
)

var cacheErrorString = map[cacheError]string{
	ErrorNotInitialised: "cache directory has not been initialised",
	ErrorMiss:           "no table cached for this crc",
}
