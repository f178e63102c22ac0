// Package storage provides the keyed byte store the board is persisted to.
//
// A Storage holds exactly one value. The board package encodes the whole
// task list on every mutation and hands it to Write; Remove deletes the value
// so a later Read reports ErrNotFound rather than an empty list.
package storage

import "errors"

// ErrNotFound is returned by Read when no value has been written.
var ErrNotFound = errors.New("storage: key not found")

// Storage is the persistence capability injected into the task store.
type Storage interface {
	// Read returns the stored bytes, or ErrNotFound if nothing is stored.
	Read() ([]byte, error)
	// Write replaces the stored value.
	Write(data []byte) error
	// Remove deletes the stored value. Removing an absent value is not an error.
	Remove() error
}
