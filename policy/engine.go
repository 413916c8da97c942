// Package policy gates mutating ledger operations through OPA.
package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/v1/rego"
)

// Decisions returned by Evaluate.
const (
	DecisionAllow = "allow"
	DecisionBlock = "block"
)

// Input is the policy evaluation input.
type Input struct {
	Operation   string `json:"operation"`
	UserID      string `json:"user_id"`
	Role        string `json:"role"`
	RecordCount int    `json:"record_count"`
	MaxBatch    int    `json:"max_batch"`
}

// Engine is the OPA policy engine.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine creates a new policy engine with the given policy content.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.ledger_policy.decision"),
		rego.Module("ledger_policy.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// Evaluate checks the ledger policy. Returns the decision (allow or block)
// and an optional reason.
func (e *Engine) Evaluate(ctx context.Context, input Input) (string, string, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return "", "", fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		// The policy defines a default; an empty result means it was removed.
		return DecisionAllow, "default", nil
	}

	val := results[0].Expressions[0].Value
	if s, ok := val.(string); ok {
		return s, "", nil
	}
	if obj, ok := val.(map[string]interface{}); ok {
		decision, _ := obj["decision"].(string)
		reason, _ := obj["reason"].(string)
		if decision != "" {
			return decision, reason, nil
		}
	}

	return DecisionAllow, "unexpected return type", nil
}

// DefaultPolicy is the default policy content. Archive batches above the
// configured cap are refused; an active set that large means bad data, not
// a real week of runs.
const DefaultPolicy = `
package ledger_policy

default decision := "allow"

decision := "block" if {
	input.operation == "weekly_reset"
	input.max_batch > 0
	input.record_count > input.max_batch
}

decision := "block" if {
	input.role == "suspended"
}
`
