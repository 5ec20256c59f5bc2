package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/ecs"

	"github.com/cytomatrix/amazon-ecs-run-task/log"
	"github.com/cytomatrix/amazon-ecs-run-task/types"
)

const (
	// pollInterval is how often the watcher asks ECS for task state
	pollInterval = 5 * time.Second

	// maxWaitMinutes is the hard ceiling on the wait budget, whatever
	// the caller asked for
	maxWaitMinutes = 360
)

// ErrWaitTimeout reports that tasks were still running when the wait
// budget ran out
var ErrWaitTimeout = errors.New("timed out waiting for tasks to stop")

// Watcher polls a cluster until every watched task stops, then turns
// the container exit codes into a single verdict.
type Watcher struct {
	client        *ECSClient
	cluster       string
	containerName string // only this container counts when set
	interval      time.Duration
	tick          func(d time.Duration) <-chan time.Time
}

// NewWatcher returns an initialized Watcher
func NewWatcher(client *ECSClient, cluster, containerName string) *Watcher {
	return &Watcher{
		client:        client,
		cluster:       cluster,
		containerName: containerName,
		interval:      pollInterval,
		tick:          time.After,
	}
}

// maxAttempts converts the requested wait budget into a number of polls,
// capping the budget at the service ceiling first.
func maxAttempts(waitMinutes int64) int64 {
	if waitMinutes > maxWaitMinutes {
		waitMinutes = maxWaitMinutes
	}
	return waitMinutes * 60 / int64(pollInterval/time.Second)
}

// AwaitCompletion blocks until every task reaches the STOPPED status or
// the wait budget is exhausted, then reports the per-container outcomes
// and the overall verdict. The walk through the states is
// SUBMITTED -> POLLING -> STOPPED or TIMED_OUT.
func (w *Watcher) AwaitCompletion(ctx context.Context, taskArns []string, waitMinutes int64) ([]types.ContainerOutcome, error) {
	if len(taskArns) == 0 {
		log.Warnf("No tasks to wait for")
		return nil, nil
	}

	state := types.WatchSubmitted
	attemptsLeft := maxAttempts(waitMinutes)
	var stopped []*ecs.Task

	for state == types.WatchSubmitted || state == types.WatchPolling {
		switch state {
		case types.WatchSubmitted:
			log.Infof("Waiting for %d task(s) to stop, polling every %s for up to %d attempts", len(taskArns), w.interval, attemptsLeft)
			state = types.WatchPolling

		case types.WatchPolling:
			if attemptsLeft <= 0 {
				state = types.WatchTimedOut
				break
			}

			select {
			case <-w.tick(w.interval):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			attemptsLeft--

			tasks, err := w.client.DescribeTasks(ctx, w.cluster, taskArns)
			if err != nil {
				return nil, err
			}
			log.Debugf("Wait state %s: %d of %d tasks stopped, %d attempts left", state, countStopped(tasks), len(taskArns), attemptsLeft)

			if allStopped(tasks) {
				stopped = tasks
				state = types.WatchStopped
			}
		}
	}

	if state == types.WatchTimedOut {
		return nil, ErrWaitTimeout
	}

	outcomes := w.outcomes(stopped)
	return outcomes, verdict(outcomes)
}

func allStopped(tasks []*ecs.Task) bool {
	return len(tasks) > 0 && countStopped(tasks) == len(tasks)
}

func countStopped(tasks []*ecs.Task) int {
	n := 0
	for _, t := range tasks {
		if aws.StringValue(t.LastStatus) == types.TaskStatusStopped {
			n++
		}
	}
	return n
}

// outcomes flattens the containers of the stopped tasks, keeping only
// the watched container when one is configured.
func (w *Watcher) outcomes(tasks []*ecs.Task) []types.ContainerOutcome {
	out := []types.ContainerOutcome{}
	for _, t := range tasks {
		for _, c := range t.Containers {
			name := aws.StringValue(c.Name)
			if w.containerName != "" && name != w.containerName {
				continue
			}
			out = append(out, types.ContainerOutcome{
				Name:     name,
				ExitCode: c.ExitCode,
				Reason:   aws.StringValue(c.Reason),
			})
		}
	}
	return out
}

// verdict is nil iff every watched container exited zero. The error
// message is the stated reasons of the failing containers, one per line.
func verdict(outcomes []types.ContainerOutcome) error {
	reasons := []string{}
	for _, o := range outcomes {
		if o.Succeeded() {
			continue
		}

		reason := o.Reason
		if reason == "" {
			if o.ExitCode != nil {
				reason = fmt.Sprintf("%s exited with code %d", o.Name, *o.ExitCode)
			} else {
				reason = fmt.Sprintf("%s stopped without an exit code", o.Name)
			}
		}
		reasons = append(reasons, reason)
	}

	if len(reasons) > 0 {
		return errors.New(strings.Join(reasons, "\n"))
	}
	return nil
}
