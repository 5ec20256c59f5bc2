package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/cytomatrix/amazon-ecs-run-task/log"
	"github.com/cytomatrix/amazon-ecs-run-task/runner"
)

const (
	defaultCount       = 1
	defaultStartedBy   = "GitHub-Actions"
	defaultLaunchType  = "FARGATE"
	defaultWaitMinutes = 30
	defaultPublicIP    = "DISABLED"
	defaultAwsRegion   = ""
	defaultDebug       = false
)

// Cfg is the global configuration
var cfg *config

// Parse global config
func parse(args []string) error {
	return cfg.parse(args)
}

// Config represents an app configuration
type config struct {
	fs *flag.FlagSet

	taskDefinition           string
	cluster                  string
	count                    int64
	startedBy                string
	launchType               string
	capacityProviderStrategy string
	subnets                  string
	securityGroups           string
	assignPublicIP           string
	taskRoleOverride         string
	executionRoleOverride    string
	waitForFinish            bool
	waitForMinutes           int64
	containerName            string
	awsRegion                string
	debug                    bool
}

// init will load all the flags
func init() {
	cfg = new()
}

// New returns an initialized config. Flag defaults fall back to the
// INPUT_* environment variables a pipeline runner sets, so the binary
// works with no arguments inside an action step.
func new() *config {
	c := &config{
		fs: flag.NewFlagSet(os.Args[0], flag.ContinueOnError),
	}

	c.fs.StringVar(
		&c.taskDefinition, "task-definition", envOr("INPUT_TASK_DEFINITION", ""), "Path to the task definition file to register and launch")

	c.fs.StringVar(
		&c.cluster, "cluster", envOr("INPUT_CLUSTER", ""), "Cluster to launch on, the default cluster when empty")

	c.fs.Int64Var(
		&c.count, "count", envOrInt("INPUT_COUNT", defaultCount), "Number of task instances to launch")

	c.fs.StringVar(
		&c.startedBy, "started-by", envOr("INPUT_STARTED_BY", defaultStartedBy), "Tag recorded on the launched tasks")

	c.fs.StringVar(
		&c.launchType, "launch-type", envOr("INPUT_LAUNCH_TYPE", defaultLaunchType), "Launch type for the tasks")

	c.fs.StringVar(
		&c.capacityProviderStrategy, "capacity-provider-strategy", envOr("INPUT_CAPACITY_PROVIDER_STRATEGY", ""), "JSON list of capacity providers, overrides the launch type")

	c.fs.StringVar(
		&c.subnets, "subnets", envOr("INPUT_SUBNETS", ""), "Comma separated subnet ids for awsvpc networking")

	c.fs.StringVar(
		&c.securityGroups, "security-groups", envOr("INPUT_SECURITY_GROUPS", ""), "Comma separated security group ids for awsvpc networking")

	c.fs.StringVar(
		&c.assignPublicIP, "assign-public-ip", envOr("INPUT_ASSIGN_PUBLIC_IP", defaultPublicIP), "Whether the tasks get a public IP, ENABLED or DISABLED")

	c.fs.StringVar(
		&c.taskRoleOverride, "task-role-override", envOr("INPUT_TASK_ROLE_OVERRIDE", ""), "Task role ARN overriding the one in the task definition")

	c.fs.StringVar(
		&c.executionRoleOverride, "execution-role-override", envOr("INPUT_EXECUTION_ROLE_OVERRIDE", ""), "Execution role ARN overriding the one in the task definition")

	c.fs.BoolVar(
		&c.waitForFinish, "wait-for-finish", envOrBool("INPUT_WAIT_FOR_FINISH", false), "Wait for the tasks to stop and fail on non zero exit codes")

	c.fs.Int64Var(
		&c.waitForMinutes, "wait-for-minutes", envOrInt("INPUT_WAIT_FOR_MINUTES", defaultWaitMinutes), "How long to wait for the tasks to stop, capped at 360")

	c.fs.StringVar(
		&c.containerName, "container-name", envOr("INPUT_CONTAINER_NAME", ""), "Only this container's exit code decides the verdict")

	c.fs.StringVar(
		&c.awsRegion, "aws.region", envOr("AWS_REGION", defaultAwsRegion), "The AWS region to run in")

	c.fs.BoolVar(
		&c.debug, "debug", defaultDebug, "Run in debug mode")

	return c
}

// parse parses the flags for configuration
func (c *config) parse(args []string) error {
	log.Debugf("Parsing flags...")

	err := c.fs.Parse(args)
	if err != nil {
		return err
	}

	if len(c.fs.Args()) != 0 {
		err = fmt.Errorf("Invalid command line arguments. Help: %s -h", os.Args[0])
	}

	if c.taskDefinition == "" {
		err = fmt.Errorf("A task definition file is required")
	}

	if c.count < 1 {
		err = fmt.Errorf("Count must be at least 1")
	}

	if c.assignPublicIP != "ENABLED" && c.assignPublicIP != "DISABLED" {
		err = fmt.Errorf("assign-public-ip must be ENABLED or DISABLED")
	}

	return err
}

// runConfig converts the parsed flags into the runner inputs. A capacity
// provider strategy that does not parse aborts here, before any remote
// call.
func (c *config) runConfig() (runner.RunConfig, error) {
	placement, err := runner.ResolvePlacement(c.launchType, c.capacityProviderStrategy)
	if err != nil {
		return runner.RunConfig{}, err
	}

	cluster := c.cluster
	if cluster == "" {
		cluster = runner.DefaultCluster
	}

	return runner.RunConfig{
		Cluster:          cluster,
		Count:            c.count,
		StartedBy:        c.startedBy,
		Placement:        placement,
		Subnets:          runner.SplitCSV(c.subnets),
		SecurityGroups:   runner.SplitCSV(c.securityGroups),
		AssignPublicIP:   c.assignPublicIP,
		TaskRoleOverride: c.taskRoleOverride,
		ExecRoleOverride: c.executionRoleOverride,
		WaitForFinish:    c.waitForFinish,
		WaitMinutes:      c.waitForMinutes,
		ContainerName:    c.containerName,
	}, nil
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envOrInt(key string, fallback int64) int64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envOrBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
