package aws

import (
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/ecs"
	"github.com/golang/mock/gomock"

	"github.com/cytomatrix/amazon-ecs-run-task/log"
	"github.com/cytomatrix/amazon-ecs-run-task/mock/aws/sdk"
)

// MockECSRegisterTaskDefinition mocks the registration of a task
// definition revision
func MockECSRegisterTaskDefinition(t *testing.T, mockMatcher *sdk.MockECSAPI, wantError bool, arn string) {
	log.Warnf("Mocking AWS iface: RegisterTaskDefinition")
	var err error
	if wantError {
		err = errors.New("RegisterTaskDefinition wrong!")
	}
	result := &ecs.RegisterTaskDefinitionOutput{
		TaskDefinition: &ecs.TaskDefinition{
			TaskDefinitionArn: aws.String(arn),
		},
	}
	mockMatcher.EXPECT().RegisterTaskDefinitionWithContext(gomock.Any(), gomock.Any()).AnyTimes().Return(result, err)
}

// MockECSRunTask mocks the launch of tasks, one per given arn
func MockECSRunTask(t *testing.T, mockMatcher *sdk.MockECSAPI, wantError bool, arns ...string) {
	log.Warnf("Mocking AWS iface: RunTask")
	var err error
	if wantError {
		err = errors.New("RunTask wrong!")
	}
	tasks := []*ecs.Task{}
	for _, arn := range arns {
		tArn := arn
		tasks = append(tasks, &ecs.Task{TaskArn: aws.String(tArn)})
	}
	result := &ecs.RunTaskOutput{
		Tasks: tasks,
	}
	mockMatcher.EXPECT().RunTaskWithContext(gomock.Any(), gomock.Any()).AnyTimes().Return(result, err)
}

// MockECSRunTaskFailures mocks a launch that places no tasks and reports
// failure records instead. Failures alternate arn, reason pairs.
func MockECSRunTaskFailures(t *testing.T, mockMatcher *sdk.MockECSAPI, arnReasonPairs ...string) {
	log.Warnf("Mocking AWS iface: RunTask (placement failures)")
	failures := []*ecs.Failure{}
	for i := 0; i+1 < len(arnReasonPairs); i += 2 {
		failures = append(failures, &ecs.Failure{
			Arn:    aws.String(arnReasonPairs[i]),
			Reason: aws.String(arnReasonPairs[i+1]),
		})
	}
	result := &ecs.RunTaskOutput{
		Tasks:    []*ecs.Task{},
		Failures: failures,
	}
	mockMatcher.EXPECT().RunTaskWithContext(gomock.Any(), gomock.Any()).AnyTimes().Return(result, nil)
}

// MockECSDescribeTasks mocks the description of tasks
func MockECSDescribeTasks(t *testing.T, mockMatcher *sdk.MockECSAPI, wantError bool, tasks ...*ecs.Task) {
	log.Warnf("Mocking AWS iface: DescribeTasks")
	var err error
	if wantError {
		err = errors.New("DescribeTasks wrong!")
	}
	result := &ecs.DescribeTasksOutput{
		Tasks: tasks,
	}
	mockMatcher.EXPECT().DescribeTasksWithContext(gomock.Any(), gomock.Any()).AnyTimes().Return(result, err)
}

// Task builds a described task in the given lifecycle status
func Task(arn, lastStatus string, containers ...*ecs.Container) *ecs.Task {
	return &ecs.Task{
		TaskArn:    aws.String(arn),
		LastStatus: aws.String(lastStatus),
		Containers: containers,
	}
}

// Container builds a described container with its terminal exit data
func Container(name string, exitCode int64, reason string) *ecs.Container {
	c := &ecs.Container{
		Name:     aws.String(name),
		ExitCode: aws.Int64(exitCode),
	}
	if reason != "" {
		c.Reason = aws.String(reason)
	}
	return c
}
