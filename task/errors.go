package task

import "errors"

// ErrTCBNotCreated is returned by Builder.Spawn when the scheduler reports
// it has no memory left for a new task control block. It is the only
// recognized creation failure; when it is returned, the unit of work was
// never invoked and has been reclaimed.
var ErrTCBNotCreated = errors.New("task: stack cannot be used, task control block not created")
