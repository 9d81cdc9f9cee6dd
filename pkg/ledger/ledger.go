// Package ledger accumulates and persists the results of evaluating
// coefficient expressions, mirroring the teacher's pkg/result: a
// mutex-guarded table plus JSON and gob persistence.
package ledger

import (
	"encoding/json"
	"io"
	"sort"
	"sync"

	"github.com/oisee/numcore/pkg/number"
)

// Entry records the outcome of evaluating one expression.
type Entry struct {
	Expr  string        `json:"expr"`
	Value number.Number `json:"value"`
	Err   string        `json:"error,omitempty"`
}

// Table stores entries accumulated from a batch run.
type Table struct {
	mu      sync.Mutex
	entries []Entry
}

// NewTable creates an empty ledger.
func NewTable() *Table {
	return &Table{}
}

// Add inserts one entry into the table.
func (t *Table) Add(e Entry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, e)
}

// Entries returns a copy of all entries, sorted by Expr for stable
// display regardless of the order they were Added in.
func (t *Table) Entries() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	sort.Slice(out, func(i, j int) bool { return out[i].Expr < out[j].Expr })
	return out
}

// Len returns the number of entries.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// WriteJSON serializes entries to w in the order given, without sorting.
func WriteJSON(w io.Writer, entries []Entry) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

// ReadJSON deserializes a list of entries previously written by WriteJSON.
func ReadJSON(r io.Reader) ([]Entry, error) {
	var entries []Entry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, err
	}
	return entries, nil
}
