package scene

import (
	"strings"

	"github.com/google/uuid"
)

// namespace scopes detection IDs so they never collide with other
// name-based UUIDs.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("starconvex/detection"))

// ID is a content-addressed detection identifier derived from its name.
type ID uuid.UUID

// ZeroID is the unset ID.
var ZeroID ID

// NewID returns the ID for a detection name. Equal names give equal IDs.
func NewID(name string) ID {
	return ID(uuid.NewSHA1(namespace, []byte(name)))
}

// IsZero reports whether id is unset.
func (id ID) IsZero() bool {
	return id == ZeroID
}

// String returns the canonical UUID form.
func (id ID) String() string {
	return uuid.UUID(id).String()
}

// Short returns the first 12 hex digits, enough to tell detections apart
// in messages.
func (id ID) Short() string {
	return strings.ReplaceAll(id.String(), "-", "")[:12]
}
