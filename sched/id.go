package sched

import "github.com/google/uuid"

// ID identifies one task within a Scheduler. The zero value identifies no
// task. IDs are comparable and usable as map keys.
type ID uuid.UUID

// NewID returns a fresh task identifier.
func NewID() ID {
	return ID(uuid.New())
}

// IsZero reports whether id identifies no task.
func (id ID) IsZero() bool {
	return id == ID(uuid.Nil)
}

func (id ID) String() string {
	return uuid.UUID(id).String()
}
