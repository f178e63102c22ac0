package board

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ID scheme names accepted by NewIDGenerator.
const (
	IDSchemeTimestamp = "timestamp"
	IDSchemeUUID      = "uuid"
)

// IDGenerator issues task ids. exists reports ids already on the board.
type IDGenerator interface {
	NewID(exists func(id string) bool) string
}

// NewIDGenerator returns the generator for a scheme name.
func NewIDGenerator(scheme string) (IDGenerator, error) {
	switch strings.ToLower(strings.TrimSpace(scheme)) {
	case "", IDSchemeTimestamp:
		return NewTimestampIDs(nil), nil
	case IDSchemeUUID:
		return UUIDs{}, nil
	}
	return nil, fmt.Errorf("unknown id scheme %q, must be one of: timestamp, uuid", scheme)
}

// TimestampIDs issues decimal Unix-millisecond ids. Ids only move forward:
// a second task in the same millisecond gets the next free number.
type TimestampIDs struct {
	now  func() time.Time
	last int64
}

// NewTimestampIDs returns a timestamp generator. A nil clock uses time.Now.
func NewTimestampIDs(now func() time.Time) *TimestampIDs {
	if now == nil {
		now = time.Now
	}
	return &TimestampIDs{now: now}
}

// NewID returns the next id.
func (g *TimestampIDs) NewID(exists func(id string) bool) string {
	n := g.now().UnixMilli()
	if n <= g.last {
		n = g.last + 1
	}
	for exists != nil && exists(strconv.FormatInt(n, 10)) {
		n++
	}
	g.last = n
	return strconv.FormatInt(n, 10)
}

// UUIDs issues time-ordered UUIDv7 ids.
type UUIDs struct{}

// NewID returns a fresh UUIDv7 string.
func (UUIDs) NewID(exists func(id string) bool) string {
	for {
		id := uuid.Must(uuid.NewV7()).String()
		if exists == nil || !exists(id) {
			return id
		}
	}
}
