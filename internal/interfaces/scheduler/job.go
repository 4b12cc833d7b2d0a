package scheduler

import "context"

// Job is a unit of work executed by the worker pool.
type Job interface {
	// Execute runs the job. It must respect ctx cancellation.
	Execute(ctx context.Context) error

	// UserID is the owner whose data the job touches, used for logging.
	UserID() string

	Description() string
}

// JobProvider builds the batch of jobs for one scheduled run.
type JobProvider func(ctx context.Context) ([]Job, error)
