package task

import (
	"bytes"
	"fmt"
	"os"
	"sync"
)

// ErrorInfo describes an error returned by a unit of work.
type ErrorInfo struct {
	Task string
	Err  error
}

// PanicInfo describes a panic recovered inside a unit of work.
type PanicInfo struct {
	Task  string
	Value any
	Stack []byte
}

// ErrorHandler is called when a unit of work returns a non-nil error
// (subject to context-cancellation filtering; see WithReportContextCancel).
type ErrorHandler func(info ErrorInfo)

// PanicHandler is called when a unit of work panics. The panic is
// recovered; it never propagates into the scheduler.
type PanicHandler func(info PanicInfo)

var stderrMu sync.Mutex

func reportErrorToStderr(info ErrorInfo) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "task: error")
	if info.Task != "" {
		fmt.Fprintf(&buf, " name=%q", info.Task)
	}
	fmt.Fprintf(&buf, " err=%v\n", info.Err)

	stderrMu.Lock()
	_, _ = os.Stderr.Write(buf.Bytes())
	stderrMu.Unlock()
}

func reportPanicToStderr(info PanicInfo) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "task: panic")
	if info.Task != "" {
		fmt.Fprintf(&buf, " name=%q", info.Task)
	}
	fmt.Fprintf(&buf, " value=%v\n", info.Value)
	if len(info.Stack) > 0 {
		_, _ = buf.Write(info.Stack)
		if info.Stack[len(info.Stack)-1] != '\n' {
			_ = buf.WriteByte('\n')
		}
	}

	stderrMu.Lock()
	_, _ = os.Stderr.Write(buf.Bytes())
	stderrMu.Unlock()
}

func callErrorHandlerNoPanic(h ErrorHandler, info ErrorInfo) {
	defer func() {
		if p := recover(); p != nil {
			// A panicking handler must not take down the task goroutine.
			reportPanicToStderr(PanicInfo{
				Task:  info.Task,
				Value: fmt.Sprintf("task: error handler panicked: %v", p),
			})
		}
	}()
	h(info)
}

func callPanicHandlerNoPanic(h PanicHandler, info PanicInfo) {
	defer func() {
		if p := recover(); p != nil {
			reportPanicToStderr(PanicInfo{
				Task:  info.Task,
				Value: fmt.Sprintf("task: panic handler panicked: %v", p),
			})
		}
	}()
	h(info)
}
