package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/ecs"

	"github.com/cytomatrix/amazon-ecs-run-task/log"
)

// DefaultCluster is the cluster ECS assumes when none is named
const DefaultCluster = "default"

// Placement selects where ECS places the launched tasks. Exactly one
// variant ends up on a run request, so a launch type and a capacity
// provider strategy can never be set at the same time.
type Placement interface {
	apply(input *ecs.RunTaskInput)
	needsNetwork() bool
}

// launchTypePlacement pins tasks to a fixed launch type
type launchTypePlacement string

func (p launchTypePlacement) apply(input *ecs.RunTaskInput) {
	input.LaunchType = aws.String(string(p))
}

// Only the serverless launch type runs in awsvpc mode unconditionally.
func (p launchTypePlacement) needsNetwork() bool {
	return string(p) == ecs.LaunchTypeFargate
}

// capacityProviderPlacement spreads tasks over weighted capacity pools
type capacityProviderPlacement []*ecs.CapacityProviderStrategyItem

func (p capacityProviderPlacement) apply(input *ecs.RunTaskInput) {
	input.CapacityProviderStrategy = p
}

func (p capacityProviderPlacement) needsNetwork() bool {
	return true
}

type capacityProviderEntry struct {
	CapacityProvider string `json:"capacityProvider"`
	Weight           int64  `json:"weight"`
	Base             int64  `json:"base"`
}

// ResolvePlacement picks the placement variant from the raw inputs. A
// capacity provider strategy wins over a launch type; the RunTask API
// refuses requests carrying both. A strategy that does not parse is an
// input error surfaced before any remote call is made.
func ResolvePlacement(launchType, capacityProviderStrategy string) (Placement, error) {
	if capacityProviderStrategy != "" {
		entries := []capacityProviderEntry{}
		if err := json.Unmarshal([]byte(capacityProviderStrategy), &entries); err != nil {
			return nil, fmt.Errorf("invalid capacity provider strategy %q: %w", capacityProviderStrategy, err)
		}

		items := make([]*ecs.CapacityProviderStrategyItem, 0, len(entries))
		for _, entry := range entries {
			items = append(items, &ecs.CapacityProviderStrategyItem{
				CapacityProvider: aws.String(entry.CapacityProvider),
				Weight:           aws.Int64(entry.Weight),
				Base:             aws.Int64(entry.Base),
			})
		}
		return capacityProviderPlacement(items), nil
	}

	if launchType != "" {
		return launchTypePlacement(launchType), nil
	}
	return nil, nil
}

// RunConfig carries the validated inputs of one invocation
type RunConfig struct {
	Cluster          string    // Cluster to launch on
	TaskDefinition   string    // Family, family:revision or ARN to launch
	Count            int64     // Number of task instances
	StartedBy        string    // Tag recorded on the launched tasks
	Placement        Placement // Optional placement variant
	Subnets          []string  // awsvpc subnets, nil when not configured
	SecurityGroups   []string  // awsvpc security groups, nil when not configured
	AssignPublicIP   string    // ENABLED or DISABLED
	TaskRoleOverride string    // Optional task role ARN
	ExecRoleOverride string    // Optional execution role ARN
	WaitForFinish    bool      // Whether to wait for the tasks to stop
	WaitMinutes      int64     // Requested wait budget
	ContainerName    string    // Container whose exit code decides the verdict
}

// SplitCSV parses a comma separated list, returning nil for a blank
// string. An empty subnet or security group list means something
// different to the ECS API than an absent one.
func SplitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// BuildRunTask assembles the RunTask request from the validated inputs
func BuildRunTask(cfg RunConfig) *ecs.RunTaskInput {
	input := &ecs.RunTaskInput{
		Cluster:        aws.String(cfg.Cluster),
		TaskDefinition: aws.String(cfg.TaskDefinition),
		Count:          aws.Int64(cfg.Count),
	}

	if cfg.StartedBy != "" {
		input.StartedBy = aws.String(cfg.StartedBy)
	}

	if cfg.Placement != nil {
		cfg.Placement.apply(input)
		if cfg.Placement.needsNetwork() {
			input.NetworkConfiguration = networkConfiguration(cfg)
		}
	}

	if cfg.TaskRoleOverride != "" || cfg.ExecRoleOverride != "" {
		input.Overrides = &ecs.TaskOverride{}
		if cfg.TaskRoleOverride != "" {
			input.Overrides.TaskRoleArn = aws.String(cfg.TaskRoleOverride)
		}
		if cfg.ExecRoleOverride != "" {
			input.Overrides.ExecutionRoleArn = aws.String(cfg.ExecRoleOverride)
		}
	}

	return input
}

func networkConfiguration(cfg RunConfig) *ecs.NetworkConfiguration {
	vpc := &ecs.AwsVpcConfiguration{
		AssignPublicIp: aws.String(cfg.AssignPublicIP),
	}
	if len(cfg.Subnets) > 0 {
		vpc.Subnets = aws.StringSlice(cfg.Subnets)
	}
	if len(cfg.SecurityGroups) > 0 {
		vpc.SecurityGroups = aws.StringSlice(cfg.SecurityGroups)
	}
	return &ecs.NetworkConfiguration{AwsvpcConfiguration: vpc}
}

// Result identifies what one invocation created
type Result struct {
	TaskDefinitionArn string   // ARN of the registered revision
	TaskArns          []string // One ARN per launched task instance
}

// Runner drives one register then run cycle against a cluster
type Runner struct {
	client *ECSClient
	cfg    RunConfig
}

// New returns an initialized Runner
func New(client *ECSClient, cfg RunConfig) *Runner {
	return &Runner{
		client: client,
		cfg:    cfg,
	}
}

// Execute registers the task definition, then launches the tasks from
// the new revision. The run step is never attempted when registration
// fails.
func (r *Runner) Execute(ctx context.Context, def *ecs.RegisterTaskDefinitionInput) (*Result, error) {
	log.Debugf("Registering task definition: %s", def.String())
	defArn, err := r.client.RegisterTaskDefinition(ctx, def)
	if err != nil {
		return nil, err
	}
	log.Infof("Registered task definition %s", defArn)

	cfg := r.cfg
	cfg.TaskDefinition = defArn
	input := BuildRunTask(cfg)
	log.Debugf("RunTask request: %s", input.String())

	taskArns, err := r.client.RunTask(ctx, input)
	if err != nil {
		return nil, err
	}

	log.Infof("Launched %d task(s) on cluster %s", len(taskArns), cfg.Cluster)
	log.Infof("Watch them at https://console.aws.amazon.com/ecs/v2/clusters/%s/tasks", cfg.Cluster)

	return &Result{
		TaskDefinitionArn: defArn,
		TaskArns:          taskArns,
	}, nil
}
