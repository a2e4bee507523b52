package incr

import "github.com/google/uuid"

// Identifier is a unique id for a node or graph.
type Identifier struct {
	id uuid.UUID
}

// NewIdentifier returns a new random identifier.
func NewIdentifier() Identifier {
	return Identifier{id: uuid.New()}
}

// IsZero returns if the identifier is unset.
func (id Identifier) IsZero() bool {
	return id.id == uuid.Nil
}

// String returns the full identifier as a string.
func (id Identifier) String() string {
	return id.id.String()
}

// Short returns an abbreviated form of the identifier, useful in debug output.
func (id Identifier) Short() string {
	s := id.id.String()
	if len(s) < 8 {
		return s
	}
	return s[:8]
}
