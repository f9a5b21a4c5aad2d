package toc

import (
	"reflect"
	"testing"

	"github.com/mikehamer/crazycodec/cache"
	"github.com/mikehamer/crazycodec/crazyflie"
)

func logItem(id uint16, typ crazyflie.LogType, group, name string) crazyflie.LogTocItemResponse {
	return crazyflie.LogTocItemResponse{VarID: id, Type: typ, Name: group, Member: name}
}

func TestTableAssembly(t *testing.T) {
	table := NewLogTable()
	if table.Complete() {
		t.Fatal("empty table reports complete")
	}

	table.SetInfo(3, 0xCAFE)
	if got := table.Missing(); !reflect.DeepEqual(got, []uint16{0, 1, 2}) {
		t.Errorf("Missing() = %v", got)
	}

	if err := table.AddLog(logItem(2, crazyflie.LogFloat32, "pm", "vbat")); err != nil {
		t.Fatal(err)
	}
	if err := table.AddLog(logItem(0, crazyflie.LogUint16, "stabilizer", "thrust")); err != nil {
		t.Fatal(err)
	}
	if got := table.Missing(); !reflect.DeepEqual(got, []uint16{1}) {
		t.Errorf("Missing() = %v, want [1]", got)
	}
	if err := table.AddLog(logItem(3, crazyflie.LogUint8, "x", "y")); err != ErrorIDOutOfRange {
		t.Errorf("AddLog(out of range) error = %v, want %v", err, ErrorIDOutOfRange)
	}
	if err := table.AddParam(crazyflie.ParamTocItemResponse{}); err != ErrorWrongKind {
		t.Errorf("AddParam on a log table error = %v, want %v", err, ErrorWrongKind)
	}

	if err := table.AddLog(logItem(1, crazyflie.LogInt8, "pm", "state")); err != nil {
		t.Fatal(err)
	}
	if !table.Complete() {
		t.Fatal("table with every item is not complete")
	}

	items := table.Items()
	for i, e := range items {
		if e.ID != uint16(i) {
			t.Errorf("Items()[%d].ID = %d", i, e.ID)
		}
	}
	if got := table.Groups(); !reflect.DeepEqual(got, []string{"pm", "stabilizer"}) {
		t.Errorf("Groups() = %v", got)
	}

	e, err := table.Lookup("pm.vbat")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if e.ID != 2 || table.TypeName(e) != "float" {
		t.Errorf("Lookup() = %+v (%s)", e, table.TypeName(e))
	}
	if _, err := table.Lookup("pm.nope"); err != crazyflie.ErrorLogBlockOrItemNotFound {
		t.Errorf("Lookup(missing) error = %v", err)
	}
}

func TestTableCRCChangeResets(t *testing.T) {
	table := NewParamTable()
	table.SetInfo(1, 1)
	table.AddParam(crazyflie.ParamTocItemResponse{ParamID: 0, Name: "a", Member: "b"})

	table.SetInfo(1, 1)
	if !table.Complete() {
		t.Error("repeated info with the same crc dropped entries")
	}

	table.SetInfo(2, 2)
	if table.Complete() || len(table.Items()) != 0 {
		t.Error("new crc kept stale entries")
	}
	if _, err := table.Lookup("a.b"); err != crazyflie.ErrorParamNotFound {
		t.Errorf("Lookup() error = %v, want %v", err, crazyflie.ErrorParamNotFound)
	}
}

func TestBlockItems(t *testing.T) {
	table := NewLogTable()
	table.SetInfo(8, 7)
	for i := uint16(0); i < 8; i++ {
		table.AddLog(logItem(i, crazyflie.LogFloat32, "g", string(rune('a'+i))))
	}

	items, err := table.BlockItems([]string{"g.c", " g.a"})
	if err != nil {
		t.Fatalf("BlockItems() error = %v", err)
	}
	want := []crazyflie.LogBlockItem{{Type: crazyflie.LogFloat32, VarID: 2}, {Type: crazyflie.LogFloat32, VarID: 0}}
	if !reflect.DeepEqual(items, want) {
		t.Errorf("BlockItems() = %+v, want %+v", items, want)
	}

	if _, err := table.BlockItems([]string{"g.a", "g.b", "g.c", "g.d", "g.e", "g.f", "g.g"}); err != crazyflie.ErrorLogBlockTooLong {
		t.Errorf("BlockItems(7 floats) error = %v, want %v", err, crazyflie.ErrorLogBlockTooLong)
	}
	if _, err := table.BlockItems([]string{"g.z"}); err != crazyflie.ErrorLogBlockOrItemNotFound {
		t.Errorf("BlockItems(unknown) error = %v", err)
	}
	if _, err := NewParamTable().BlockItems(nil); err != ErrorWrongKind {
		t.Errorf("BlockItems on a param table error = %v", err)
	}
}

func TestTableCache(t *testing.T) {
	if err := cache.Init(t.TempDir()); err != nil {
		t.Fatal(err)
	}

	table := NewParamTable()
	table.SetInfo(2, 0xABCD)
	if err := table.Save(); err != ErrorIncomplete {
		t.Errorf("Save(incomplete) error = %v, want %v", err, ErrorIncomplete)
	}
	table.AddParam(crazyflie.ParamTocItemResponse{ParamID: 0, Metadata: crazyflie.ParamMetadata{Type: crazyflie.ParamUint8, Readonly: true}, Name: "firmware", Member: "revision0"})
	table.AddParam(crazyflie.ParamTocItemResponse{ParamID: 1, Metadata: crazyflie.ParamMetadata{Type: crazyflie.ParamFloat32}, Name: "kalman", Member: "pNAcc_xy"})
	if err := table.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded := NewParamTable()
	if err := loaded.Load(); err != ErrorIncomplete {
		t.Errorf("Load() before SetInfo error = %v, want %v", err, ErrorIncomplete)
	}
	loaded.SetInfo(2, 0xABCD)
	if err := loaded.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(loaded.Items(), table.Items()) {
		t.Errorf("Load() = %+v, want %+v", loaded.Items(), table.Items())
	}
	if e, _ := loaded.Lookup("firmware.revision0"); !e.Readonly {
		t.Errorf("readonly flag lost in the cache: %+v", e)
	}

	other := NewLogTable()
	other.SetInfo(2, 0xABCD)
	if err := other.Load(); err != cache.ErrorMiss {
		t.Errorf("Load(log, same crc) error = %v, want %v", err, cache.ErrorMiss)
	}
}

func TestTableCountChangeResets(t *testing.T) {
	table := NewParamTable()
	table.SetInfo(3, 7)
	for id := uint16(0); id < 3; id++ {
		table.AddParam(crazyflie.ParamTocItemResponse{ParamID: id, Name: "g", Member: string(rune('a' + id))})
	}

	table.SetInfo(2, 7)
	if len(table.Items()) != 0 {
		t.Errorf("shrunk count kept %d stale entries", len(table.Items()))
	}
	table.AddParam(crazyflie.ParamTocItemResponse{ParamID: 0, Name: "g", Member: "a"})
	table.AddParam(crazyflie.ParamTocItemResponse{ParamID: 1, Name: "g", Member: "b"})
	if !table.Complete() {
		t.Error("table never completes after the count changed")
	}
}

func TestTableSetInfoTrimsEarlyEntries(t *testing.T) {
	table := NewLogTable()
	table.AddLog(logItem(0, crazyflie.LogUint8, "a", "x"))
	table.AddLog(logItem(4, crazyflie.LogUint8, "a", "y"))

	table.SetInfo(1, 1)
	if !table.Complete() {
		t.Errorf("Complete() = false, items %+v", table.Items())
	}
	if _, err := table.Lookup("a.y"); err != crazyflie.ErrorLogBlockOrItemNotFound {
		t.Errorf("Lookup(a.y) error = %v, want %v", err, crazyflie.ErrorLogBlockOrItemNotFound)
	}
}

func TestTableLoadFailureKeepsEntries(t *testing.T) {
	if err := cache.Init(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	bad := []Entry{{ID: 0, Group: "cached", Name: "a"}, {ID: 5, Group: "cached", Name: "b"}}
	if err := cache.Save(cache.KindParam, 0x5EED, bad); err != nil {
		t.Fatal(err)
	}
	dup := []Entry{{ID: 0, Group: "cached", Name: "a"}, {ID: 0, Group: "cached", Name: "b"}}
	if err := cache.Save(cache.KindParam, 0xD00D, dup); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		crc uint32
		err error
	}{
		{0x5EED, ErrorIDOutOfRange},
		{0xD00D, ErrorIncomplete},
	}
	for _, tt := range tests {
		table := NewParamTable()
		table.SetInfo(2, tt.crc)
		table.AddParam(crazyflie.ParamTocItemResponse{ParamID: 1, Name: "live", Member: "value"})

		if err := table.Load(); err != tt.err {
			t.Errorf("Load(%X) error = %v, want %v", tt.crc, err, tt.err)
		}
		if _, err := table.Lookup("cached.a"); err == nil {
			t.Errorf("Load(%X) left a partial cache entry in the table", tt.crc)
		}
		if _, err := table.Lookup("live.value"); err != nil {
			t.Errorf("Load(%X) dropped the collected entries: %v", tt.crc, err)
		}
	}
}
