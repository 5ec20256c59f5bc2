package runner

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/service/ecs"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	awsMock "github.com/cytomatrix/amazon-ecs-run-task/mock/aws"
	"github.com/cytomatrix/amazon-ecs-run-task/mock/aws/sdk"
	"github.com/cytomatrix/amazon-ecs-run-task/types"
)

// instantTick stands in for time.After so the state machine runs without
// wall clock delays.
func instantTick(time.Duration) <-chan time.Time {
	c := make(chan time.Time, 1)
	c <- time.Time{}
	return c
}

func newTestWatcher(client ECSAPI, containerName string) *Watcher {
	w := NewWatcher(&ECSClient{client: client}, "default", containerName)
	w.tick = instantTick
	return w
}

func TestMaxAttempts(t *testing.T) {
	tests := []struct {
		waitMinutes int64
		want        int64
	}{
		{1, 12},
		{30, 360},
		{360, 4320},
		// requested budget above the ceiling is capped at 360 minutes
		{500, 4320},
	}

	for _, test := range tests {
		assert.Equal(t, test.want, maxAttempts(test.waitMinutes), "waitMinutes %d", test.waitMinutes)
	}
}

func TestAwaitCompletionPollsUntilStopped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockECS := sdk.NewMockECSAPI(ctrl)

	arn := "arn:aws:ecs:us-east-1:111:task/default/abc"
	running := &ecs.DescribeTasksOutput{Tasks: []*ecs.Task{awsMock.Task(arn, "RUNNING")}}
	stopped := &ecs.DescribeTasksOutput{Tasks: []*ecs.Task{
		awsMock.Task(arn, types.TaskStatusStopped, awsMock.Container("app", 0, "")),
	}}
	gomock.InOrder(
		mockECS.EXPECT().DescribeTasksWithContext(gomock.Any(), gomock.Any()).Times(2).Return(running, nil),
		mockECS.EXPECT().DescribeTasksWithContext(gomock.Any(), gomock.Any()).Times(1).Return(stopped, nil),
	)

	w := newTestWatcher(mockECS, "")
	outcomes, err := w.AwaitCompletion(context.Background(), []string{arn}, 30)
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.True(t, outcomes[0].Succeeded())
}

func TestAwaitCompletionTimesOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockECS := sdk.NewMockECSAPI(ctrl)

	arn := "arn:aws:ecs:us-east-1:111:task/default/abc"
	running := &ecs.DescribeTasksOutput{Tasks: []*ecs.Task{awsMock.Task(arn, "RUNNING")}}
	// one minute of budget buys exactly twelve 5s polls
	mockECS.EXPECT().DescribeTasksWithContext(gomock.Any(), gomock.Any()).Times(12).Return(running, nil)

	w := newTestWatcher(mockECS, "")
	_, err := w.AwaitCompletion(context.Background(), []string{arn}, 1)
	assert.ErrorIs(t, err, ErrWaitTimeout)
}

func TestAwaitCompletionFailingContainer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockECS := sdk.NewMockECSAPI(ctrl)

	arn := "arn:aws:ecs:us-east-1:111:task/default/abc"
	awsMock.MockECSDescribeTasks(t, mockECS, false,
		awsMock.Task(arn, types.TaskStatusStopped,
			awsMock.Container("app", 0, ""),
			awsMock.Container("sidecar", 1, "Essential container in task exited"),
		),
	)

	w := newTestWatcher(mockECS, "")
	outcomes, err := w.AwaitCompletion(context.Background(), []string{arn}, 30)
	require.Error(t, err)
	// only the failing container's reason is reported
	assert.EqualError(t, err, "Essential container in task exited")
	assert.Len(t, outcomes, 2)
}

func TestAwaitCompletionWatchesNamedContainer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockECS := sdk.NewMockECSAPI(ctrl)

	arn := "arn:aws:ecs:us-east-1:111:task/default/abc"
	awsMock.MockECSDescribeTasks(t, mockECS, false,
		awsMock.Task(arn, types.TaskStatusStopped,
			awsMock.Container("app", 0, ""),
			awsMock.Container("sidecar", 1, "Essential container in task exited"),
		),
	)

	w := newTestWatcher(mockECS, "app")
	outcomes, err := w.AwaitCompletion(context.Background(), []string{arn}, 30)
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Equal(t, "app", outcomes[0].Name)
}

func TestAwaitCompletionNoMatchingContainer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockECS := sdk.NewMockECSAPI(ctrl)

	arn := "arn:aws:ecs:us-east-1:111:task/default/abc"
	awsMock.MockECSDescribeTasks(t, mockECS, false,
		awsMock.Task(arn, types.TaskStatusStopped, awsMock.Container("sidecar", 1, "boom")),
	)

	// no container matches the watched name: vacuously successful
	w := newTestWatcher(mockECS, "ghost")
	outcomes, err := w.AwaitCompletion(context.Background(), []string{arn}, 30)
	require.NoError(t, err)
	assert.Empty(t, outcomes)
}

func TestAwaitCompletionNoTasks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	// no DescribeTasks expectation: an empty handle list must return
	// without polling at all
	mockECS := sdk.NewMockECSAPI(ctrl)

	w := newTestWatcher(mockECS, "")
	outcomes, err := w.AwaitCompletion(context.Background(), nil, 30)
	require.NoError(t, err)
	assert.Empty(t, outcomes)
}

func TestAwaitCompletionDescribeError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockECS := sdk.NewMockECSAPI(ctrl)
	awsMock.MockECSDescribeTasks(t, mockECS, true)

	w := newTestWatcher(mockECS, "")
	_, err := w.AwaitCompletion(context.Background(), []string{"arn"}, 30)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DescribeTasks wrong!")
}

func TestVerdictFallbackReasons(t *testing.T) {
	code := int64(137)
	err := verdict([]types.ContainerOutcome{
		{Name: "app", ExitCode: &code},
		{Name: "init"},
	})
	require.Error(t, err)
	assert.Equal(t, "app exited with code 137\ninit stopped without an exit code", err.Error())
}
