// Package registry holds the record store: the in-memory copy of the JSON
// database describing installed programs and reference databases.
//
// The whole database is loaded into memory, mutated there and rewritten in
// full. There is no locking: if two processes edit the same file at the same
// time the last one to save wins and the other's changes are lost.
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrNotFound is returned when an exact entry name is not in the store.
	ErrNotFound = errors.New("entry not found")

	// ErrAlreadyExists is returned when inserting a name that is already used.
	ErrAlreadyExists = errors.New("entry already exists")

	// ErrNotSequence is returned when appending to a string field.
	ErrNotSequence = errors.New("field is not a list")

	// ErrInvalidOperation is returned for an operation that cannot be applied
	// to the field it targets.
	ErrInvalidOperation = errors.New("invalid operation")
)

// ParseError reports a database that is not valid JSON or not shaped like a
// mapping of entry names to records.
type ParseError struct {
	// Entry is the record that failed to decode, empty when the document as a
	// whole is malformed.
	Entry string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Entry != "" {
		return fmt.Sprintf("parse database: entry %q: %v", e.Entry, e.Err)
	}
	return fmt.Sprintf("parse database: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Confirm asks whether the named entry may be deleted.
type Confirm func(name string) (bool, error)

// Store maps entry names to records.
type Store struct {
	records map[string]Record
}

// New returns an empty store.
func New() *Store {
	return &Store{records: make(map[string]Record)}
}

// Load parses a database document.
func Load(data []byte) (*Store, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Err: err}
	}
	if raw == nil {
		return nil, &ParseError{Err: errors.New("top level is not a JSON object")}
	}

	s := &Store{records: make(map[string]Record, len(raw))}
	for name, val := range raw {
		var r Record
		if err := json.Unmarshal(val, &r); err != nil {
			return nil, &ParseError{Entry: name, Err: err}
		}
		s.records[name] = r
	}
	return s, nil
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.records)
}

// Names returns every entry name in sorted order.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.records))
	for name := range s.records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether name is an exact entry name.
func (s *Store) Has(name string) bool {
	_, ok := s.records[name]
	return ok
}

// Get returns a copy of the named record.
func (s *Store) Get(name string) (Record, error) {
	r, ok := s.records[name]
	if !ok {
		return Record{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return r.Clone(), nil
}

// Insert adds a new entry. The name is matched exactly, never fuzzily.
func (s *Store) Insert(name string, r Record) error {
	if _, ok := s.records[name]; ok {
		return fmt.Errorf("%w: %q", ErrAlreadyExists, name)
	}
	r = r.Clone()
	r.normalize()
	s.records[name] = r
	return nil
}

// Remove deletes the named entry.
func (s *Store) Remove(name string) error {
	if _, ok := s.records[name]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	delete(s.records, name)
	return nil
}

// RemoveConfirmed deletes the named entry once confirm agrees. It reports
// whether the entry was removed; a declined confirmation is not an error.
func (s *Store) RemoveConfirmed(name string, confirm Confirm) (bool, error) {
	if _, ok := s.records[name]; !ok {
		return false, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	ok, err := confirm(name)
	if err != nil || !ok {
		return false, err
	}
	delete(s.records, name)
	return true, nil
}

// UpdateField applies op to one field of the named entry. The record is left
// untouched when the operation is rejected.
func (s *Store) UpdateField(name string, f Field, op Operation) error {
	r, ok := s.records[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	r = r.Clone()
	if err := op.apply(&r, f); err != nil {
		return err
	}
	s.records[name] = r
	return nil
}

// Serialize encodes the whole store in the canonical database form. For input
// that was already canonical, Serialize(Load(b)) returns b unchanged.
func (s *Store) Serialize() ([]byte, error) {
	var e encoder
	if err := e.store(s.Names(), s.records); err != nil {
		return nil, err
	}
	return e.buf.Bytes(), nil
}
