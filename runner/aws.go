package runner

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ecs"

	"github.com/cytomatrix/amazon-ecs-run-task/log"
)

// Generate ECS API mocks running go generate
//go:generate mockgen -source aws.go -package sdk -destination ../mock/aws/sdk/ecsiface_mock.go

// ECSAPI is the subset of the ECS API one run step needs. *ecs.ECS
// satisfies it.
type ECSAPI interface {
	RegisterTaskDefinitionWithContext(ctx aws.Context, input *ecs.RegisterTaskDefinitionInput, opts ...request.Option) (*ecs.RegisterTaskDefinitionOutput, error)
	RunTaskWithContext(ctx aws.Context, input *ecs.RunTaskInput, opts ...request.Option) (*ecs.RunTaskOutput, error)
	DescribeTasksWithContext(ctx aws.Context, input *ecs.DescribeTasksInput, opts ...request.Option) (*ecs.DescribeTasksOutput, error)
}

// ECSClient is a wrapper for the AWS ecs client that implements helpers to
// register, launch and inspect tasks
type ECSClient struct {
	client ECSAPI
}

// NewECSClient will return an initialized ECSClient. An empty region
// defers to the environment and shared configuration.
func NewECSClient(awsRegion string) (*ECSClient, error) {
	// Create AWS session
	awsCfg := &aws.Config{}
	if awsRegion != "" {
		awsCfg.Region = aws.String(awsRegion)
	}
	s := session.New(awsCfg)
	if s == nil {
		return nil, fmt.Errorf("error creating aws session")
	}

	return &ECSClient{
		client: ecs.New(s),
	}, nil
}

// RegisterTaskDefinition registers a new task definition revision and
// returns its ARN
func (e *ECSClient) RegisterTaskDefinition(ctx context.Context, input *ecs.RegisterTaskDefinitionInput) (string, error) {
	resp, err := e.client.RegisterTaskDefinitionWithContext(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to register task definition: %w", err)
	}

	return aws.StringValue(resp.TaskDefinition.TaskDefinitionArn), nil
}

// RunTask launches tasks from the request and returns the ARNs of the
// tasks that were placed. Zero placed tasks with at least one failure
// record is an error built from the first failure; the rest are logged.
func (e *ECSClient) RunTask(ctx context.Context, input *ecs.RunTaskInput) ([]string, error) {
	resp, err := e.client.RunTaskWithContext(ctx, input)
	if err != nil {
		return nil, err
	}

	if len(resp.Tasks) == 0 && len(resp.Failures) > 0 {
		for _, f := range resp.Failures[1:] {
			log.Errorf("Task placement failure: %s is %s", aws.StringValue(f.Arn), aws.StringValue(f.Reason))
		}
		first := resp.Failures[0]
		return nil, fmt.Errorf("%s is %s", aws.StringValue(first.Arn), aws.StringValue(first.Reason))
	}

	arns := make([]string, 0, len(resp.Tasks))
	for _, t := range resp.Tasks {
		arns = append(arns, aws.StringValue(t.TaskArn))
	}
	return arns, nil
}

// DescribeTasks returns the current state of the given tasks
func (e *ECSClient) DescribeTasks(ctx context.Context, cluster string, taskArns []string) ([]*ecs.Task, error) {
	params := &ecs.DescribeTasksInput{
		Cluster: aws.String(cluster),
		Tasks:   aws.StringSlice(taskArns),
	}

	resp, err := e.client.DescribeTasksWithContext(ctx, params)
	if err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}
