package ledger

import (
	"bytes"
	"math/big"
	"path/filepath"
	"testing"

	"github.com/oisee/numcore/pkg/number"
)

func sampleEntries() []Entry {
	return []Entry{
		{Expr: "add 1/2 1/3", Value: number.NewNatural(5, 6)},
		{Expr: "mul 2/3 3/4", Value: number.NewNatural(1, 2)},
		{Expr: "large 1/3", Value: number.NewLarge(big.NewRat(1, 3))},
		{Expr: "ff 3 mod 7", Value: number.NewFiniteField(3, 0)},
		{Expr: "bad op", Value: number.NewNatural(0, 1), Err: "unknown operator"},
	}
}

func TestTableAddAndLen(t *testing.T) {
	tbl := NewTable()
	for _, e := range sampleEntries() {
		tbl.Add(e)
	}
	if tbl.Len() != len(sampleEntries()) {
		t.Fatalf("Len() = %d, want %d", tbl.Len(), len(sampleEntries()))
	}
}

func TestTableEntriesSortedByExpr(t *testing.T) {
	tbl := NewTable()
	tbl.Add(Entry{Expr: "z"})
	tbl.Add(Entry{Expr: "a"})
	entries := tbl.Entries()
	if entries[0].Expr != "a" || entries[1].Expr != "z" {
		t.Errorf("Entries() not sorted: %+v", entries)
	}
}

func TestWriteJSONReadJSONRoundTrips(t *testing.T) {
	want := sampleEntries()
	var buf bytes.Buffer
	if err := WriteJSON(&buf, want); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Expr != want[i].Expr || got[i].Err != want[i].Err {
			t.Errorf("entry %d: got %+v, want %+v", i, got[i], want[i])
		}
		if !got[i].Value.Equal(want[i].Value) {
			t.Errorf("entry %d: value %v != %v", i, got[i].Value, want[i].Value)
		}
	}
}

func TestSaveLoadCheckpointRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ckpt.gob")

	want := &Checkpoint{
		Entries:   sampleEntries(),
		Completed: 3,
		Total:     5,
	}
	if err := SaveCheckpoint(path, want); err != nil {
		t.Fatalf("SaveCheckpoint: %v", err)
	}

	got, err := LoadCheckpoint(path)
	if err != nil {
		t.Fatalf("LoadCheckpoint: %v", err)
	}
	if got.Completed != want.Completed || got.Total != want.Total {
		t.Errorf("checkpoint progress mismatch: got %+v, want %+v", got, want)
	}
	if len(got.Entries) != len(want.Entries) {
		t.Fatalf("got %d entries, want %d", len(got.Entries), len(want.Entries))
	}
	for i := range want.Entries {
		if !got.Entries[i].Value.Equal(want.Entries[i].Value) {
			t.Errorf("entry %d value mismatch after checkpoint round trip", i)
		}
	}
}

func TestLoadCheckpointMissingFile(t *testing.T) {
	if _, err := LoadCheckpoint(filepath.Join(t.TempDir(), "missing.gob")); err == nil {
		t.Error("expected an error loading a nonexistent checkpoint")
	}
}
