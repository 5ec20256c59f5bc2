package main

import (
	"context"
	"errors"
	"os"

	"github.com/cytomatrix/amazon-ecs-run-task/log"
	"github.com/cytomatrix/amazon-ecs-run-task/runner"
	"github.com/cytomatrix/amazon-ecs-run-task/taskdef"
)

// Main is the application entry point
func Main() int {
	log.Infof("Starting ECS run task step...")

	// Parse command line flags
	if err := parse(os.Args[1:]); err != nil {
		log.Error(err)
		return 1
	}

	if cfg.debug {
		log.SetLevel(log.DebugLevel)
	}

	// Read and clean up the task definition
	doc, err := taskdef.Load(cfg.taskDefinition)
	if err != nil {
		log.Error(err)
		return 1
	}
	def, err := taskdef.RegisterInput(taskdef.Normalize(doc))
	if err != nil {
		log.Error(err)
		return 1
	}

	runCfg, err := cfg.runConfig()
	if err != nil {
		log.Error(err)
		return 1
	}

	client, err := runner.NewECSClient(cfg.awsRegion)
	if err != nil {
		log.Error(err)
		return 1
	}

	// Register, then launch
	ctx := context.Background()
	res, err := runner.New(client, runCfg).Execute(ctx, def)
	if err != nil {
		log.Error(err)
		return 1
	}

	if err := publishOutputs(res); err != nil {
		log.Error(err)
		return 1
	}

	if !runCfg.WaitForFinish {
		return 0
	}

	// Wait for the tasks to stop and turn exit codes into the verdict
	watcher := runner.NewWatcher(client, runCfg.Cluster, runCfg.ContainerName)
	if _, err := watcher.AwaitCompletion(ctx, res.TaskArns, runCfg.WaitMinutes); err != nil {
		if errors.Is(err, runner.ErrWaitTimeout) {
			log.Errorf("Wait timed out: %v", err)
		} else {
			log.Errorf("Tasks did not complete successfully: %v", err)
		}
		return 1
	}

	log.Infof("All watched containers exited successfully")
	return 0
}

func main() {
	// Run main program
	exCode := Main()
	os.Exit(exCode)
}
