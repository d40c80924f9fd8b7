// Package mcpserver exposes the validation engine over the Model
// Context Protocol so agents can check action inputs, list the rule
// documents in play, and read a single rule without shelling out to
// the CLI.
package mcpserver

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/actionsmith/inputguard/pkg/constants"
	"github.com/actionsmith/inputguard/pkg/fileutil"
	"github.com/actionsmith/inputguard/pkg/logger"
	"github.com/actionsmith/inputguard/pkg/rules"
	"github.com/actionsmith/inputguard/pkg/validation"
)

var serverLog = logger.New("mcpserver:server")

// Server wires the validator registry and rule loader into MCP tools.
type Server struct {
	registry *validation.Registry
	loader   *rules.Loader
	mcp      *mcp.Server
}

// New builds the MCP server with the validate_inputs, list_rules, and
// get_rule tools registered.
func New(registry *validation.Registry, version string) *Server {
	s := &Server{
		registry: registry,
		loader:   registry.Loader(),
	}

	impl := &mcp.Implementation{
		Name:    constants.CLIPrefix.String(),
		Version: version,
	}
	srv := mcp.NewServer(impl, nil)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "validate_inputs",
		Description: "Validate a set of action inputs against the action's rules. Returns every error at once, never just the first.",
	}, s.handleValidateInputs)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_rules",
		Description: "List the rule documents in the rules directory: action, required inputs, and convention overrides.",
	}, s.handleListRules)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_rule",
		Description: "Read the effective rule document for one action, including the defaults applied when no document exists.",
	}, s.handleGetRule)

	s.mcp = srv
	return s
}

// Serve runs the server on stdio until ctx is cancelled or stdin
// closes.
func (s *Server) Serve(ctx context.Context) error {
	serverLog.Printf("Serving MCP on stdio, rules dir %q", s.loader.Dir())
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

type validateInputsArgs struct {
	ActionType string            `json:"action_type" jsonschema:"the action whose ruleset applies, for example docker-build"`
	Inputs     map[string]string `json:"inputs,omitempty" jsonschema:"input values keyed by kebab-case input name"`
}

type validateInputsResult struct {
	Status        string   `json:"status" jsonschema:"success or failure"`
	Errors        []string `json:"errors" jsonschema:"one line per failed check"`
	Warnings      []string `json:"warnings" jsonschema:"advisory findings that do not fail the run"`
	ChecksApplied int      `json:"checks_applied" jsonschema:"how many field and constraint checks ran"`
}

func (s *Server) handleValidateInputs(ctx context.Context, req *mcp.CallToolRequest, args validateInputsArgs) (*mcp.CallToolResult, validateInputsResult, error) {
	if strings.TrimSpace(args.ActionType) == "" {
		return nil, validateInputsResult{}, fmt.Errorf("action_type is required")
	}

	report, err := validation.Run(s.registry, constants.ActionType(args.ActionType), validation.InputSet(args.Inputs))
	if err != nil {
		return nil, validateInputsResult{}, fmt.Errorf("validating %q: %w", args.ActionType, err)
	}

	out := validateInputsResult{
		Status:        constants.StatusSuccess,
		Errors:        []string{},
		Warnings:      []string{},
		ChecksApplied: report.ChecksApplied,
	}
	if !report.Passed {
		out.Status = constants.StatusFailure
	}
	for _, e := range report.Errors {
		out.Errors = append(out.Errors, e.Detail())
	}
	for _, w := range report.Warnings {
		out.Warnings = append(out.Warnings, w.Detail())
	}

	summary := fmt.Sprintf("%s: %s (%d errors, %d warnings, %d checks)",
		args.ActionType, out.Status, len(out.Errors), len(out.Warnings), out.ChecksApplied)
	return textResult(summary), out, nil
}

type listRulesArgs struct{}

type ruleSummary struct {
	Action         string            `json:"action"`
	Description    string            `json:"description,omitempty"`
	RequiredInputs []string          `json:"required_inputs"`
	OptionalInputs []string          `json:"optional_inputs,omitempty"`
	Conventions    map[string]string `json:"conventions,omitempty"`
	Constraints    int               `json:"constraints,omitempty"`
	CustomOwned    bool              `json:"custom_owned"`
}

type listRulesResult struct {
	RulesDir string        `json:"rules_dir"`
	Rules    []ruleSummary `json:"rules"`
}

func (s *Server) handleListRules(ctx context.Context, req *mcp.CallToolRequest, args listRulesArgs) (*mcp.CallToolResult, listRulesResult, error) {
	loaded, err := s.loader.LoadAll()
	if err != nil {
		return nil, listRulesResult{}, err
	}

	out := listRulesResult{RulesDir: s.loader.Dir(), Rules: []ruleSummary{}}
	for _, rule := range loaded {
		out.Rules = append(out.Rules, s.summarize(rule))
	}
	sort.Slice(out.Rules, func(i, j int) bool { return out.Rules[i].Action < out.Rules[j].Action })

	return textResult(fmt.Sprintf("%d rule documents in %s", len(out.Rules), out.RulesDir)), out, nil
}

type getRuleArgs struct {
	Action string `json:"action" jsonschema:"the action to read the rule document for"`
}

type getRuleResult struct {
	ruleSummary
	Policies map[string]map[string]string `json:"policies,omitempty"`
	RulePath string                       `json:"rule_path,omitempty"`
	FromFile bool                         `json:"from_file"`
}

func (s *Server) handleGetRule(ctx context.Context, req *mcp.CallToolRequest, args getRuleArgs) (*mcp.CallToolResult, getRuleResult, error) {
	if strings.TrimSpace(args.Action) == "" {
		return nil, getRuleResult{}, fmt.Errorf("action is required")
	}

	action := constants.ActionType(args.Action)
	rule, err := s.loader.Load(action)
	if err != nil {
		return nil, getRuleResult{}, err
	}

	out := getRuleResult{ruleSummary: s.summarize(rule)}
	for field, policy := range rule.Policies {
		entry := map[string]string{}
		if policy.Path != "" {
			entry["path"] = policy.Path.String()
		}
		if policy.BooleanCase != "" {
			entry["boolean_case"] = policy.BooleanCase.String()
		}
		if policy.VersionPrefix != "" {
			entry["version_prefix"] = policy.VersionPrefix.String()
		}
		if out.Policies == nil {
			out.Policies = map[string]map[string]string{}
		}
		out.Policies[field] = entry
	}

	path := s.loader.RulePath(action)
	if fileutil.FileExists(path) {
		out.RulePath = path
		out.FromFile = true
	}

	source := "built-in defaults"
	if out.FromFile {
		source = out.RulePath
	}
	return textResult(fmt.Sprintf("rule for %s (%s)", args.Action, source)), out, nil
}

func (s *Server) summarize(rule *rules.Rule) ruleSummary {
	summary := ruleSummary{
		Action:         rule.Action,
		Description:    rule.Description,
		RequiredInputs: append([]string{}, rule.RequiredInputs...),
		OptionalInputs: append([]string{}, rule.OptionalInputs...),
		Constraints:    len(rule.Constraints),
		CustomOwned:    s.registry.HasCustom(constants.ActionType(rule.Action)),
	}
	if len(rule.Conventions) > 0 {
		summary.Conventions = make(map[string]string, len(rule.Conventions))
		for field, tag := range rule.Conventions {
			summary.Conventions[field] = tag.String()
		}
	}
	return summary
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
