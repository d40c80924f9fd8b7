package rules

import (
	"bytes"
	_ "embed"
	"sync"

	"github.com/goccy/go-yaml"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schemas/validation_rule_schema.json
var ruleSchemaJSON []byte

const ruleSchemaName = "validation_rule_schema.json"

var compileRuleSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(ruleSchemaJSON))
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(ruleSchemaName, doc); err != nil {
		return nil, err
	}
	return compiler.Compile(ruleSchemaName)
})

// ValidateDocument checks a rule document against the embedded JSON
// schema. This is the authoring-time gate used by the rules checker; the
// runtime loader relies on the lighter strict struct decode instead.
func ValidateDocument(path string, data []byte) error {
	schema, err := compileRuleSchema()
	if err != nil {
		return &ConfigError{Reason: "compiling embedded rule schema", Err: err}
	}

	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return &ConfigError{
			Path:   path,
			Reason: "malformed YAML:\n" + yaml.FormatError(err, false, true),
			Err:    err,
		}
	}

	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return &ConfigError{Path: path, Reason: "decoding document for schema check", Err: err}
	}

	if err := schema.Validate(instance); err != nil {
		return &ConfigError{Path: path, Reason: "schema violation: " + err.Error(), Err: err}
	}
	return nil
}
