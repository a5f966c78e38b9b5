// Package policy evaluates archival completeness rules with OPA.
package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/rego"
)

// Engine is the OPA policy engine deciding whether a session's document set
// is complete enough to archive.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine compiles the given rego policy. The policy must define
// data.archive.missing as the set of document types still required.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.archive.missing"),
		rego.Module("archive.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// Evaluate returns the document types the policy still requires for the
// given input. An empty result means the session may be archived.
// Input must carry a "present_types" list of the document types on file.
func (e *Engine) Evaluate(ctx context.Context, input interface{}) ([]string, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return nil, nil
	}

	raw, ok := results[0].Expressions[0].Value.([]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected policy result type %T", results[0].Expressions[0].Value)
	}

	missing := make([]string, 0, len(raw))
	for _, v := range raw {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected policy result element %T", v)
		}
		missing = append(missing, s)
	}
	return missing, nil
}

// DefaultPolicy requires the contractual and attendance documents before a
// session may be archived. Evaluation questionnaires never gate archival.
const DefaultPolicy = `package archive

import rego.v1

required := {
	"proposition",
	"convention",
	"programme",
	"convocation",
	"emargement",
	"certificat",
	"questionnaire_prealable",
}

present contains t if {
	some t in input.present_types
}

missing contains t if {
	some t in required
	not t in present
}
`
