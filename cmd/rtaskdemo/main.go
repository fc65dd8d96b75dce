// Command rtaskdemo spawns a handful of tasks on the goroutine scheduler,
// drives them with notifications, and prints the scheduler snapshot.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"rtask/gosched"
	"rtask/task"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		profilePath string
		workers     int
		maxTasks    int
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:          "rtaskdemo",
		Short:        "Spawn, notify and join tasks on the goroutine scheduler",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, profilePath, workers, maxTasks, verbose)
		},
	}

	cmd.Flags().StringVar(&profilePath, "profile", "", "YAML spawn profile (name/priority/stack)")
	cmd.Flags().IntVar(&workers, "workers", 3, "number of tasks to spawn")
	cmd.Flags().IntVar(&maxTasks, "max-tasks", 0, "control block budget (0 = unlimited)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log task lifecycle events")
	return cmd
}

func run(cmd *cobra.Command, profilePath string, workers, maxTasks int, verbose bool) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	sch := gosched.New(
		gosched.WithLogger(logger),
		gosched.WithMaxTasks(maxTasks),
	)
	rt := task.New(sch, task.WithLogger(logger))

	profile, err := task.LoadProfile(profilePath)
	if err != nil {
		return err
	}

	handles := make([]task.Handle, 0, workers)
	for i := 0; i < workers; i++ {
		b, err := profile.Apply(rt.Builder())
		if err != nil {
			return err
		}
		if profile.Name == "" {
			b = b.Name(fmt.Sprintf("worker-%d", i))
		} else {
			b = b.Name(fmt.Sprintf("%s-%d", profile.Name, i))
		}

		h, err := b.Spawn(func(ctx context.Context) error {
			// Park until the main goroutine says go, then do a little work.
			n := rt.GetNotification(ctx)
			logger.Info("worker woke up", slog.Uint64("notifications", uint64(n)))
			rt.Sleep(ctx, 10*time.Millisecond)
			return nil
		})
		if err != nil {
			return fmt.Errorf("spawn worker %d: %w", i, err)
		}
		handles = append(handles, h)
	}

	for _, st := range sch.Snapshot() {
		fmt.Fprintf(cmd.OutOrStdout(), "%-12s weight=%-3d stack=%-5d state=%s\n",
			st.Name, st.Weight, st.StackBytes, st.State)
	}

	for _, h := range handles {
		h.Notify()
	}
	for _, h := range handles {
		h.Join()
	}
	fmt.Fprintf(cmd.OutOrStdout(), "joined %d tasks, %d control blocks live\n", len(handles), sch.Len())
	return nil
}
