//go:build !integration

package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDocument_Valid(t *testing.T) {
	err := ValidateDocument("docker-publish.yml", []byte(`
schema_version: 2
action: docker-publish
description: Publish a container image.
required_inputs:
  - image-name
optional_inputs:
  - registry
  - dry-run
conventions:
  registry: hostname
policies:
  dry-run:
    boolean_case: strict
constraints:
  - expr: input("registry") == "" || input("tag") != ""
    message: a custom registry requires an explicit tag
`))
	assert.NoError(t, err)
}

func TestValidateDocument_Rejections(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			"missing action",
			"schema_version: 2\nrequired_inputs: []\n",
		},
		{
			"wrong schema version",
			"schema_version: 1\naction: demo\nrequired_inputs: []\n",
		},
		{
			"non-kebab input name",
			"schema_version: 2\naction: demo\nrequired_inputs:\n  - ImageName\n",
		},
		{
			"unknown top-level key",
			"schema_version: 2\naction: demo\nrequired_inputs: []\nextras: true\n",
		},
		{
			"unknown policy value",
			"schema_version: 2\naction: demo\nrequired_inputs: [p]\npolicies:\n  p:\n    path: loose\n",
		},
		{
			"empty policy object",
			"schema_version: 2\naction: demo\nrequired_inputs: [p]\npolicies:\n  p: {}\n",
		},
		{
			"constraint without message",
			"schema_version: 2\naction: demo\nrequired_inputs: []\nconstraints:\n  - expr: input(\"a\") != \"\"\n",
		},
		{
			"duplicate required inputs",
			"schema_version: 2\naction: demo\nrequired_inputs:\n  - version\n  - version\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument("demo.yml", []byte(tt.doc))
			require.Error(t, err)
			assert.True(t, IsConfigError(err), "schema failures surface as configuration errors")
			assert.Contains(t, err.Error(), "demo.yml")
		})
	}
}

func TestValidateDocument_UnparseableYAML(t *testing.T) {
	err := ValidateDocument("demo.yml", []byte("action: [unclosed"))
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}
