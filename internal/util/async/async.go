package async

import (
	"context"
	"errors"
	"fmt"
)

// Task represents an asynchronous operation with a name and function.
type Task struct {
	Name string
	Func func(context.Context) error
}

// RunParallel executes all tasks concurrently and waits for them to finish.
// Every failure is wrapped with the task name and the results are joined
// in task order, so the returned error is stable between runs.
//
// Example:
//
//	tasks := []Task{
//	    {Name: "s3://stage/a.sh", Func: deleteA},
//	    {Name: "s3://stage/b.sh", Func: deleteB},
//	}
//	if err := RunParallel(ctx, tasks); err != nil {
//	    log.Printf("Warning: %v", err)
//	}
func RunParallel(ctx context.Context, tasks []Task) error {
	if len(tasks) == 0 {
		return nil
	}

	type result struct {
		index int
		err   error
	}

	resultChan := make(chan result, len(tasks))

	for i, task := range tasks {
		go func() {
			resultChan <- result{index: i, err: task.Func(ctx)}
		}()
	}

	errs := make([]error, len(tasks))
	for range len(tasks) {
		res := <-resultChan
		if res.err != nil {
			errs[res.index] = fmt.Errorf("%s: %w", tasks[res.index].Name, res.err)
		}
	}

	return errors.Join(errs...)
}
