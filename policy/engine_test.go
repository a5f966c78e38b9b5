package policy

import (
	"context"
	"sort"
	"testing"
)

func TestEvaluateComplete(t *testing.T) {
	engine, err := NewEngine(context.Background(), DefaultPolicy)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	missing, err := engine.Evaluate(context.Background(), map[string]interface{}{
		"present_types": []string{
			"proposition", "convention", "programme", "convocation",
			"emargement", "certificat", "questionnaire_prealable",
			"devis",
		},
	})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if len(missing) != 0 {
		t.Fatalf("expected no missing types, got %v", missing)
	}
}

func TestEvaluateMissing(t *testing.T) {
	engine, err := NewEngine(context.Background(), DefaultPolicy)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	missing, err := engine.Evaluate(context.Background(), map[string]interface{}{
		"present_types": []string{
			"proposition", "convention", "programme", "convocation",
			"certificat", "questionnaire_prealable",
		},
	})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if len(missing) != 1 || missing[0] != "emargement" {
		t.Fatalf("expected [emargement], got %v", missing)
	}
}

func TestEvaluateEmptyInput(t *testing.T) {
	engine, err := NewEngine(context.Background(), DefaultPolicy)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	missing, err := engine.Evaluate(context.Background(), map[string]interface{}{
		"present_types": []string{},
	})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if len(missing) != 7 {
		t.Fatalf("expected 7 missing types, got %d: %v", len(missing), missing)
	}
	sort.Strings(missing)
	if missing[0] != "certificat" {
		t.Fatalf("unexpected first missing type: %v", missing)
	}
}

func TestEvaluationsDoNotGateArchival(t *testing.T) {
	engine, err := NewEngine(context.Background(), DefaultPolicy)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	// A full evaluation set without the contractual documents must still
	// report everything missing.
	missing, err := engine.Evaluate(context.Background(), map[string]interface{}{
		"present_types": []string{
			"evaluation_a_chaud", "evaluation_a_froid",
			"evaluation_formateur", "evaluation_satisfaction_client",
		},
	})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if len(missing) != 7 {
		t.Fatalf("expected 7 missing types, got %v", missing)
	}
}
