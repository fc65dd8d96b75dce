package task_test

import (
	"context"
	"fmt"

	"rtask/gosched"
	"rtask/task"
)

func ExampleRuntime_spawnAndJoin() {
	rt := task.New(gosched.New())

	h := rt.Spawn(func(ctx context.Context) error {
		fmt.Println("hello from the task")
		return nil
	})
	h.Join()

	// Output:
	// hello from the task
}

func ExampleBuilder() {
	rt := task.New(gosched.New())

	h, err := rt.Builder().
		Name("bg").
		Priority(task.PriorityLow).
		StackDepth(task.StackLow).
		Spawn(func(ctx context.Context) error { return nil })
	if err != nil {
		fmt.Println("spawn failed:", err)
		return
	}
	h.Join()
	fmt.Println("done")

	// Output:
	// done
}

func ExampleRuntime_GetNotification() {
	rt := task.New(gosched.New())

	h := rt.Spawn(func(ctx context.Context) error {
		n := rt.GetNotification(ctx)
		fmt.Println("notifications:", n)
		return nil
	})

	h.Notify()
	h.Join()

	// Output:
	// notifications: 1
}
