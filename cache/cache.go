package cache

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mitchellh/go-homedir"
)

// Kinds of table kept in the cache. Each is stored in its own file so a
// param and a log TOC sharing a CRC do not collide.
const (
	KindParam = "param"
	KindLog   = "log"
)

const defaultDir = ".crazycodec-cache"

var (
	mu    sync.RWMutex
	cache string
)

// Init selects and creates the cache directory. An empty dir resolves to
// ~/.crazycodec-cache.
func Init(dir string) error {
	if dir == "" {
		home, err := homedir.Dir()
		if err != nil {
			return err
		}
		dir = filepath.Join(home, defaultDir)
	} else {
		expanded, err := homedir.Expand(dir)
		if err != nil {
			return err
		}
		dir = expanded
	}

	if err := os.MkdirAll(dir, 0777); err != nil {
		return err
	}

	mu.Lock()
	cache = dir
	mu.Unlock()
	return nil
}

// Dir is the directory selected by Init, empty before Init.
func Dir() string {
	mu.RLock()
	defer mu.RUnlock()
	return cache
}

func path(kind string, crc uint32) (string, error) {
	dir := Dir()
	if dir == "" {
		return "", ErrorNotInitialised
	}
	return filepath.Join(dir, fmt.Sprintf("%08X.%scache", crc, kind)), nil
}

// Load decodes the table stored for kind and crc into e.
func Load(kind string, crc uint32, e interface{}) error {
	name, err := path(kind, crc)
	if err != nil {
		return err
	}

	file, err := os.Open(name)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrorMiss
		}
		return err
	}
	defer file.Close()

	decoder := gob.NewDecoder(file)
	if err := decoder.Decode(e); err != nil {
		return fmt.Errorf("cache: decoding %s: %w", name, err)
	}
	return nil
}

// Save replaces the table stored for kind and crc with e.
func Save(kind string, crc uint32, e interface{}) error {
	name, err := path(kind, crc)
	if err != nil {
		return err
	}

	file, err := os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := gob.NewEncoder(file)
	return encoder.Encode(e)
}
