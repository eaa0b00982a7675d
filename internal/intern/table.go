// Package intern assigns dense integer ids to the record keys seen during one encode call.
package intern

import (
	"github.com/arloliu/bfast/errs"
	"github.com/arloliu/bfast/format"
	"github.com/arloliu/bfast/internal/hash"
)

// CacheSize is the number of direct-mapped cache slots in front of the table.
const CacheSize = 64

type cacheEntry struct {
	key string
	id  uint32
	ok  bool
}

// Table maps keys to ids assigned in first-seen order starting at 0, skipping
// Reserved ids.
//
// A small direct-mapped cache keyed by a truncated xxHash of the key fronts the map.
// A cache hit is only trusted after comparing the full key, so two keys sharing a
// slot simply evict each other; the map stays the source of truth.
//
// Table is not safe for concurrent use.
type Table struct {
	ids   map[string]uint32
	keys  []string // keys[id] == key
	cache [CacheSize]cacheEntry
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		ids:  make(map[string]uint32, 64),
		keys: make([]string, 0, 64),
	}
}

// Intern returns the id of key, assigning the next id on first sight.
//
// Returns:
//   - errs.ErrStringTooLong if key exceeds format.MaxStringLength bytes
//   - errs.ErrTooManyStrings if the table already holds format.MaxStringCount keys
func (t *Table) Intern(key string) (uint32, error) {
	slot := hash.Slot(key, CacheSize)
	if e := &t.cache[slot]; e.ok && e.key == key {
		return e.id, nil
	}

	id, found := t.ids[key]
	if !found {
		if len(key) > format.MaxStringLength {
			return 0, errs.StringTooLong(key)
		}
		next := len(t.keys)
		if Reserved(next) {
			next++
		}
		if next >= format.MaxStringCount {
			return 0, errs.ErrTooManyStrings
		}
		if next != len(t.keys) {
			t.keys = append(t.keys, "")
		}

		id = uint32(next) //nolint:gosec
		t.ids[key] = id
		t.keys = append(t.keys, key)
	}

	t.cache[slot] = cacheEntry{key: key, id: id, ok: true}

	return id, nil
}

// Reserved reports whether id is never assigned to a key.
//
// A record key id is written as a little-endian u32 where a decoder also accepts the
// record end tag, so ids whose low byte equals format.TagRecordEnd are skipped. The
// string table holds an empty placeholder at each skipped id.
func Reserved(id int) bool {
	return byte(id) == byte(format.TagRecordEnd) //nolint:gosec
}

// Lookup returns the id of key without assigning one.
func (t *Table) Lookup(key string) (uint32, bool) {
	id, ok := t.ids[key]
	return id, ok
}

// Keys returns the interned keys in ascending id order.
// The returned slice is owned by the table and valid until Reset.
func (t *Table) Keys() []string {
	return t.keys
}

// Len returns the number of string table entries, placeholders included.
func (t *Table) Len() int {
	return len(t.keys)
}

// EncodedSize returns the size in bytes of the serialized string table.
func (t *Table) EncodedSize() int {
	size := 0
	for _, k := range t.keys {
		size += 1 + len(k)
	}

	return size
}

// Reset clears all keys and cache slots, keeping allocated capacity.
func (t *Table) Reset() {
	clear(t.ids)
	clear(t.keys)
	t.keys = t.keys[:0]
	t.cache = [CacheSize]cacheEntry{}
}
