package task

// Builder accumulates optional task configuration. The zero value of every
// field is its default: name "<unnamed>", PriorityDefault, StackDefault.
// Builder is a value; each method returns an updated copy, so builders can
// be stored and reused as templates.
type Builder struct {
	rt       *Runtime
	name     string
	priority Priority
	stack    StackDepth
}

// Name sets the task's name. Useful for debugging; the scheduler copies it.
func (b Builder) Name(name string) Builder {
	b.name = name
	return b
}

// Priority sets how much scheduler time the task is given.
func (b Builder) Priority(p Priority) Builder {
	b.priority = p
	return b
}

// StackDepth sets how much stack the task is given. The default is almost
// always fine.
func (b Builder) StackDepth(d StackDepth) Builder {
	b.stack = d
	return b
}

// Spawn finalizes the configuration and creates the task. It returns
// ErrTCBNotCreated when the scheduler is out of control-block memory; in
// that case fn was never invoked and no handle exists. Spawn never blocks
// beyond the synchronous creation call.
func (b Builder) Spawn(fn Func) (Handle, error) {
	if b.rt == nil {
		panic("task: Builder not obtained from a Runtime")
	}
	return b.rt.spawn(fn, b.priority, b.stack, b.name)
}
