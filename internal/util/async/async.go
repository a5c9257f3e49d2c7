package async

import (
	"context"
	"sync"
)

// Task represents an asynchronous operation with a name and function.
type Task struct {
	Name string
	Func func(context.Context) error
}

// RunLimited executes tasks with at most limit of them running at once, in
// slice order. The first failure cancels the context seen by running tasks and
// stops new ones from starting. It returns the first error once every started
// task has finished. With a limit of one, tasks run strictly sequentially.
//
// Example:
//
//	tasks := []Task{
//	    {Name: "talos-core-01", Func: generateCore},
//	    {Name: "talos-edge-01", Func: generateEdge},
//	}
//	if err := RunLimited(ctx, tasks, 2); err != nil {
//	    return err
//	}
func RunLimited(ctx context.Context, tasks []Task, limit int) error {
	if len(tasks) == 0 {
		return nil
	}
	if limit < 1 {
		limit = 1
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	sem := make(chan struct{}, limit)

	for _, task := range tasks {
		select {
		case sem <- struct{}{}:
		case <-runCtx.Done():
		}
		if runCtx.Err() != nil {
			break
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			if err := task.Func(runCtx); err != nil {
				once.Do(func() {
					firstErr = err
					cancel()
				})
			}
		}()
	}

	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}
