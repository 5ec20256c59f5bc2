package types

const (
	// TaskStatusStopped is the terminal lifecycle status of an ECS task.
	TaskStatusStopped = "STOPPED"
)

// WatchState is a phase of the wait-for-completion state machine.
type WatchState int

// wait states
const (
	WatchSubmitted WatchState = iota
	WatchPolling
	WatchStopped
	WatchTimedOut
)

func (s WatchState) String() string {
	switch s {
	case WatchSubmitted:
		return "SUBMITTED"
	case WatchPolling:
		return "POLLING"
	case WatchStopped:
		return "STOPPED"
	case WatchTimedOut:
		return "TIMED_OUT"
	}
	return "UNKNOWN"
}

// ContainerOutcome is the terminal result of one container in a watched task
type ContainerOutcome struct {
	Name     string // Name of the container inside its task definition
	ExitCode *int64 // Exit code, nil when the container never ran
	Reason   string // Reason ECS gives for the container stopping
}

// Succeeded reports whether the container ran to completion and exited zero
func (c ContainerOutcome) Succeeded() bool {
	return c.ExitCode != nil && *c.ExitCode == 0
}
