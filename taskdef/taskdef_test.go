package taskdef

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeStripsEmptiesAndServerAttributes(t *testing.T) {
	doc := Document{
		"family":   "x",
		"revision": 5,
		"containerDefinitions": []interface{}{
			map[string]interface{}{
				"name":        "c",
				"cpu":         0,
				"environment": []interface{}{},
			},
		},
	}

	want := Document{
		"family": "x",
		"containerDefinitions": []interface{}{
			map[string]interface{}{
				"name": "c",
				"cpu":  0,
			},
		},
	}

	assert.Equal(t, want, Normalize(doc))
}

func TestNormalizeIsIdempotent(t *testing.T) {
	doc := Document{
		"family": "job",
		"tags":   []interface{}{"", nil},
		"volumes": []interface{}{
			map[string]interface{}{"name": "scratch", "host": map[string]interface{}{}},
		},
		"taskDefinitionArn": "arn:aws:ecs:us-east-1:111:task-definition/job:3",
	}

	once := Normalize(doc)
	assert.Equal(t, once, Normalize(once))
}

func TestNormalizeKeepsZeroScalars(t *testing.T) {
	doc := Document{
		"cpu":       0,
		"essential": false,
		"memory":    "",
	}

	got := Normalize(doc)
	assert.Equal(t, Document{"cpu": 0, "essential": false}, got)
}

func TestNormalizePrunesBottomUp(t *testing.T) {
	doc := Document{
		"family": "x",
		// every leaf below is empty, so the whole subtree goes
		"proxyConfiguration": map[string]interface{}{
			"properties": []interface{}{
				map[string]interface{}{"name": "", "value": nil},
			},
		},
		// order of surviving elements is preserved
		"requiresCompatibilities": []interface{}{"FARGATE", "", "EC2"},
	}

	want := Document{
		"family":                  "x",
		"requiresCompatibilities": []interface{}{"FARGATE", "EC2"},
	}
	assert.Equal(t, want, Normalize(doc))
}

func TestNormalizeDropsAllIgnoredAttributes(t *testing.T) {
	doc := Document{"family": "x"}
	for _, attr := range ignoredAttributes {
		doc[attr] = "anything"
	}

	got := Normalize(doc)
	assert.Equal(t, Document{"family": "x"}, got)
}

func TestLoadYAMLAndJSON(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "taskdef.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("family: web\ncontainerDefinitions:\n  - name: app\n    image: nginx\n"), 0644))

	doc, err := Load(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "web", doc["family"])

	jsonPath := filepath.Join(dir, "taskdef.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"family":"api","cpu":"256"}`), 0644))

	doc, err = Load(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "api", doc["family"])
}

func TestLoadResolvesAgainstWorkspace(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "td.yml"), []byte("family: rel\n"), 0644))
	t.Setenv("GITHUB_WORKSPACE", dir)

	doc, err := Load("td.yml")
	require.NoError(t, err)
	assert.Equal(t, "rel", doc["family"])
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(bad, []byte("{family: [unclosed"), 0644))
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestRegisterInput(t *testing.T) {
	doc := Document{
		"family": "web",
		"cpu":    "256",
		"containerDefinitions": []interface{}{
			map[string]interface{}{
				"name":      "app",
				"image":     "nginx:1.25",
				"cpu":       128,
				"essential": true,
				"environment": []interface{}{
					map[string]interface{}{"name": "STAGE", "value": "prod"},
				},
			},
		},
	}

	input, err := RegisterInput(doc)
	require.NoError(t, err)
	require.NotNil(t, input.Family)
	assert.Equal(t, "web", *input.Family)
	require.NotNil(t, input.Cpu)
	assert.Equal(t, "256", *input.Cpu)
	require.Len(t, input.ContainerDefinitions, 1)
	cd := input.ContainerDefinitions[0]
	assert.Equal(t, "app", *cd.Name)
	assert.Equal(t, "nginx:1.25", *cd.Image)
	assert.Equal(t, int64(128), *cd.Cpu)
	require.Len(t, cd.Environment, 1)
	assert.Equal(t, "STAGE", *cd.Environment[0].Name)
}
