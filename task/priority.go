package task

import "fmt"

// DefaultName is the placeholder name given to tasks spawned without one.
const DefaultName = "<unnamed>"

// Priority selects how much scheduler time a task is given. The bounded
// enum keeps raw weights from reaching the scheduler boundary; use
// Handle.SetWeight for the raw escape hatch.
type Priority int

const (
	// PriorityDefault maps to weight 8.
	PriorityDefault Priority = iota
	// PriorityHigh maps to weight 16.
	PriorityHigh
	// PriorityLow maps to weight 1.
	PriorityLow
)

// Weight returns the numeric scheduler weight. Unknown values map to the
// default weight.
func (p Priority) Weight() uint32 {
	switch p {
	case PriorityHigh:
		return 16
	case PriorityLow:
		return 1
	default:
		return 8
	}
}

func (p Priority) String() string {
	switch p {
	case PriorityDefault:
		return "default"
	case PriorityHigh:
		return "high"
	case PriorityLow:
		return "low"
	default:
		return fmt.Sprintf("Priority(%d)", int(p))
	}
}

// StackDepth selects how much stack a task is given. Tasks with few
// variables can use StackLow.
type StackDepth int

const (
	// StackDefault maps to 8192 bytes.
	StackDefault StackDepth = iota
	// StackLow maps to 512 bytes.
	StackLow
)

// Bytes returns the stack size in bytes. Unknown values map to the default
// size.
func (d StackDepth) Bytes() uint32 {
	switch d {
	case StackLow:
		return 512
	default:
		return 8192
	}
}

func (d StackDepth) String() string {
	switch d {
	case StackDefault:
		return "default"
	case StackLow:
		return "low"
	default:
		return fmt.Sprintf("StackDepth(%d)", int(d))
	}
}
