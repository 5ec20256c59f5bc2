package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cytomatrix/amazon-ecs-run-task/log"
	"github.com/cytomatrix/amazon-ecs-run-task/runner"
)

// publishOutputs hands the created identifiers to later pipeline steps.
// When GITHUB_OUTPUT names a file they are appended in the name=value
// format the runner consumes, otherwise they are only logged.
func publishOutputs(res *runner.Result) error {
	arns, err := json.Marshal(res.TaskArns)
	if err != nil {
		return fmt.Errorf("encoding task arns output: %w", err)
	}

	outputs := [][2]string{
		{"task-definition-arn", res.TaskDefinitionArn},
		{"task-arns", string(arns)},
	}

	path := os.Getenv("GITHUB_OUTPUT")
	if path == "" {
		for _, kv := range outputs {
			log.Infof("Output %s=%s", kv[0], kv[1])
		}
		return nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening output file: %w", err)
	}
	defer f.Close()

	for _, kv := range outputs {
		if _, err := fmt.Fprintf(f, "%s=%s\n", kv[0], kv[1]); err != nil {
			return fmt.Errorf("writing output %s: %w", kv[0], err)
		}
	}
	return nil
}
