package taskdef

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go/private/protocol/json/jsonutil"
	"github.com/aws/aws-sdk-go/service/ecs"
	"github.com/goccy/go-yaml"

	"github.com/cytomatrix/amazon-ecs-run-task/log"
)

// Document is a task definition as read from disk: string keys over
// arbitrarily nested maps, lists and scalars.
type Document map[string]interface{}

// Attributes the RegisterTaskDefinition API rejects because the service
// populates them itself. Definitions exported with describe-task-definition
// carry them, so they have to be stripped before re-registering.
var ignoredAttributes = []string{
	"compatibilities",
	"taskDefinitionArn",
	"requiresAttributes",
	"revision",
	"status",
	"registeredAt",
	"deregisteredAt",
	"registeredBy",
}

// Load reads and parses a task definition file. The file may be YAML or
// JSON. A relative path is resolved against GITHUB_WORKSPACE when that is
// set, matching where a pipeline checks out the repository.
func Load(path string) (Document, error) {
	if !filepath.IsAbs(path) {
		if workspace := os.Getenv("GITHUB_WORKSPACE"); workspace != "" {
			path = filepath.Join(workspace, path)
		}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading task definition: %w", err)
	}

	doc := Document{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing task definition %s: %w", path, err)
	}
	return doc, nil
}

// Normalize returns the document cleaned up for registration: empty
// values are pruned bottom-up and the server-populated attributes are
// dropped from the top level, with a warning naming each one found.
// Normalizing an already normalized document is a no-op.
func Normalize(doc Document) Document {
	cleaned, _ := clean(map[string]interface{}(doc))
	out, ok := cleaned.(map[string]interface{})
	if !ok {
		out = map[string]interface{}{}
	}

	for _, attr := range ignoredAttributes {
		if _, present := out[attr]; present {
			log.Warnf("Ignoring property %q in the task definition file. This property is returned by describe-task-definition, but it is not valid when registering a new task definition revision", attr)
			delete(out, attr)
		}
	}
	return Document(out)
}

// clean prunes empty descendants from v and reports whether the result
// itself is empty. Empty means nil, an empty string, or a collection
// whose every element is empty. Scalars like 0 and false are kept.
func clean(v interface{}) (interface{}, bool) {
	switch t := v.(type) {
	case nil:
		return nil, true
	case string:
		return t, t == ""
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for key, elem := range t {
			cleaned, empty := clean(elem)
			if !empty {
				out[key] = cleaned
			}
		}
		return out, len(out) == 0
	case []interface{}:
		out := make([]interface{}, 0, len(t))
		for _, elem := range t {
			cleaned, empty := clean(elem)
			if !empty {
				out = append(out, cleaned)
			}
		}
		return out, len(out) == 0
	default:
		return t, false
	}
}

// RegisterInput converts a normalized document into the typed
// registration request. The SDK structs carry locationName tags instead
// of json tags, so the conversion goes through the SDK's own codec.
func RegisterInput(doc Document) (*ecs.RegisterTaskDefinitionInput, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding task definition: %w", err)
	}

	input := &ecs.RegisterTaskDefinitionInput{}
	if err := jsonutil.UnmarshalJSON(input, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("task definition does not match the RegisterTaskDefinition schema: %w", err)
	}
	return input, nil
}
