// Package raw holds the untyped ingestion layer for game-definition dumps.
//
// Records and documents keep their keys in document order; sort ties and
// first-match lookups downstream depend on it.
package raw

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

var (
	// ErrInvalidJSON is returned when the input bytes are not a JSON document.
	ErrInvalidJSON = errors.New("invalid JSON document")
	// ErrMissingRoot is returned when the named collection is absent.
	ErrMissingRoot = errors.New("collection root not found")
)

// Field is a single named value inside a Record.
type Field struct {
	Name  string
	Value gjson.Result
}

// Record is one raw entity: an ordered, string-keyed field mapping.
type Record struct {
	fields []Field
	index  map[string]int
}

// NewRecord builds a Record from a JSON object. Non-object values yield an
// empty record.
func NewRecord(v gjson.Result) *Record {
	r := &Record{index: make(map[string]int)}
	if !v.IsObject() {
		return r
	}
	v.ForEach(func(k, val gjson.Result) bool {
		r.set(k.String(), val)
		return true
	})
	return r
}

// RecordFromJSON parses a JSON object literal into a Record.
func RecordFromJSON(s string) *Record {
	return NewRecord(gjson.Parse(s))
}

func (r *Record) set(name string, v gjson.Result) {
	if i, ok := r.index[name]; ok {
		r.fields[i].Value = v
		return
	}
	r.index[name] = len(r.fields)
	r.fields = append(r.fields, Field{Name: name, Value: v})
}

// Len returns the number of fields.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.fields)
}

// Fields returns the fields in document order.
func (r *Record) Fields() []Field {
	if r == nil {
		return nil
	}
	return r.fields
}

// Get returns the raw value of a field.
func (r *Record) Get(name string) (gjson.Result, bool) {
	if r == nil {
		return gjson.Result{}, false
	}
	i, ok := r.index[name]
	if !ok {
		return gjson.Result{}, false
	}
	return r.fields[i].Value, true
}

// String returns a field as text. Numbers and booleans are rendered the way
// they appear in the document.
func (r *Record) String(name string) (string, bool) {
	v, ok := r.Get(name)
	if !ok || v.Type == gjson.Null {
		return "", false
	}
	if v.Type == gjson.String {
		return v.Str, true
	}
	return v.Raw, true
}

// Has reports whether the field is present with a non-empty value.
func (r *Record) Has(name string) bool {
	s, ok := r.String(name)
	return ok && s != ""
}

// Merge returns a new record holding r's fields overlaid with over's fields.
// Fields of over win; r's field order comes first.
func (r *Record) Merge(over *Record) *Record {
	out := &Record{index: make(map[string]int, r.Len()+over.Len())}
	for _, f := range r.Fields() {
		out.set(f.Name, f.Value)
	}
	for _, f := range over.Fields() {
		out.set(f.Name, f.Value)
	}
	return out
}

// Entry pairs a record with its stable key in the collection.
type Entry struct {
	Key    string
	Record *Record
}

// Document is a keyed collection of records, such as DOTAAbilities.
type Document struct {
	entries []Entry
	index   map[string]int
}

// Parse decodes data and returns the collection found under root.
func Parse(data []byte, root string) (*Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	v := gjson.GetBytes(data, root)
	if !v.Exists() || !v.IsObject() {
		return nil, fmt.Errorf("%w: %s", ErrMissingRoot, root)
	}
	return NewDocument(v), nil
}

// NewDocument builds a Document from a JSON object of objects.
func NewDocument(v gjson.Result) *Document {
	d := &Document{index: make(map[string]int)}
	v.ForEach(func(k, val gjson.Result) bool {
		key := k.String()
		rec := NewRecord(val)
		if i, ok := d.index[key]; ok {
			d.entries[i].Record = rec
			return true
		}
		d.index[key] = len(d.entries)
		d.entries = append(d.entries, Entry{Key: key, Record: rec})
		return true
	})
	return d
}

// Entries returns all entries in document order.
func (d *Document) Entries() []Entry {
	return d.entries
}

// Lookup returns the record stored under key.
func (d *Document) Lookup(key string) (*Record, bool) {
	i, ok := d.index[key]
	if !ok {
		return nil, false
	}
	return d.entries[i].Record, true
}

// Len returns the number of entries.
func (d *Document) Len() int {
	return len(d.entries)
}
