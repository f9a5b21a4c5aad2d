package toc

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mikehamer/crazycodec/cache"
	"github.com/mikehamer/crazycodec/crazyflie"
)

// Entry is one variable of a param or log TOC.
type Entry struct {
	ID       uint16
	Group    string
	Name     string
	Type     uint8
	Readonly bool
}

func (e Entry) FullName() string {
	if e.Name == "" {
		return e.Group
	}
	return e.Group + "." + e.Name
}

// Table accumulates the item responses of one TOC. It is not safe for
// concurrent use.
type Table struct {
	kind    string
	count   uint16
	crc     uint32
	hasInfo bool

	entries map[uint16]Entry
	byName  map[string]uint16
}

func newTable(kind string) *Table {
	return &Table{
		kind:    kind,
		entries: make(map[uint16]Entry),
		byName:  make(map[string]uint16),
	}
}

func NewParamTable() *Table {
	return newTable(cache.KindParam)
}

func NewLogTable() *Table {
	return newTable(cache.KindLog)
}

// Kind is cache.KindParam or cache.KindLog.
func (t *Table) Kind() string {
	return t.kind
}

func (t *Table) Count() uint16 {
	return t.count
}

func (t *Table) CRC() uint32 {
	return t.crc
}

// SetInfo records the size and CRC announced by the vehicle. A changed CRC
// or count discards the entries collected so far. Entries added before the
// first SetInfo are kept when their id fits the count.
func (t *Table) SetInfo(count uint16, crc uint32) {
	if t.hasInfo && (t.crc != crc || t.count != count) {
		t.entries = make(map[uint16]Entry)
		t.byName = make(map[string]uint16)
	}
	if !t.hasInfo {
		for id, e := range t.entries {
			if id >= count {
				delete(t.entries, id)
				delete(t.byName, e.FullName())
			}
		}
	}
	t.count = count
	t.crc = crc
	t.hasInfo = true
}

func (t *Table) add(e Entry) error {
	if t.hasInfo && e.ID >= t.count {
		return ErrorIDOutOfRange
	}
	if previous, ok := t.entries[e.ID]; ok {
		delete(t.byName, previous.FullName())
	}
	t.entries[e.ID] = e
	t.byName[e.FullName()] = e.ID
	return nil
}

func (t *Table) AddParam(item crazyflie.ParamTocItemResponse) error {
	if t.kind != cache.KindParam {
		return ErrorWrongKind
	}
	return t.add(Entry{
		ID:       item.ParamID,
		Group:    item.Name,
		Name:     item.Member,
		Type:     uint8(item.Metadata.Type),
		Readonly: item.Metadata.Readonly,
	})
}

func (t *Table) AddLog(item crazyflie.LogTocItemResponse) error {
	if t.kind != cache.KindLog {
		return ErrorWrongKind
	}
	return t.add(Entry{
		ID:    item.VarID,
		Group: item.Name,
		Name:  item.Member,
		Type:  uint8(item.Type),
	})
}

// Complete reports whether the info response and every item have arrived.
func (t *Table) Complete() bool {
	return t.hasInfo && len(t.entries) == int(t.count)
}

// Missing lists the ids still to be requested, ascending.
func (t *Table) Missing() []uint16 {
	var missing []uint16
	for id := uint16(0); id < t.count; id++ {
		if _, ok := t.entries[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

// Lookup finds an entry by its "group.name".
func (t *Table) Lookup(name string) (Entry, error) {
	id, ok := t.byName[name]
	if !ok {
		if t.kind == cache.KindLog {
			return Entry{}, crazyflie.ErrorLogBlockOrItemNotFound
		}
		return Entry{}, crazyflie.ErrorParamNotFound
	}
	return t.entries[id], nil
}

// Items returns the entries ordered by id.
func (t *Table) Items() []Entry {
	items := make([]Entry, 0, len(t.entries))
	for _, e := range t.entries {
		items = append(items, e)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

// Groups returns the distinct group names, sorted.
func (t *Table) Groups() []string {
	seen := make(map[string]bool)
	var groups []string
	for _, e := range t.entries {
		if !seen[e.Group] {
			seen[e.Group] = true
			groups = append(groups, e.Group)
		}
	}
	sort.Strings(groups)
	return groups
}

// TypeName names an entry's type in the table's type space.
func (t *Table) TypeName(e Entry) string {
	if t.kind == cache.KindLog {
		return crazyflie.LogType(e.Type).String()
	}
	return crazyflie.ParamType(e.Type).String()
}

// BlockItems resolves log variable names into a validated block definition.
func (t *Table) BlockItems(names []string) ([]crazyflie.LogBlockItem, error) {
	if t.kind != cache.KindLog {
		return nil, ErrorWrongKind
	}

	items := make([]crazyflie.LogBlockItem, len(names))
	for i, name := range names {
		e, err := t.Lookup(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		items[i] = crazyflie.LogBlockItem{Type: crazyflie.LogType(e.Type), VarID: e.ID}
	}

	if err := crazyflie.ValidateLogBlock(items); err != nil {
		return nil, err
	}
	return items, nil
}

// Save stores a complete table in the cache under its CRC.
func (t *Table) Save() error {
	if !t.Complete() {
		return ErrorIncomplete
	}
	return cache.Save(t.kind, t.crc, t.Items())
}

// Load fills the table from the cache entry for the CRC given to SetInfo.
func (t *Table) Load() error {
	if !t.hasInfo {
		return ErrorIncomplete
	}

	var items []Entry
	if err := cache.Load(t.kind, t.crc, &items); err != nil {
		return err
	}
	if len(items) != int(t.count) {
		return ErrorIncomplete
	}

	entries := make(map[uint16]Entry, len(items))
	byName := make(map[string]uint16, len(items))
	for _, e := range items {
		if e.ID >= t.count {
			return ErrorIDOutOfRange
		}
		if _, ok := entries[e.ID]; ok {
			return ErrorIncomplete
		}
		entries[e.ID] = e
		byName[e.FullName()] = e.ID
	}

	t.entries = entries
	t.byName = byName
	return nil
}

func crcString(crc uint32) string {
	return fmt.Sprintf("%08X", crc)
}
