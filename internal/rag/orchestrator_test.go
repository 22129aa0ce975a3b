package rag

import (
	"context"
	"errors"
	"testing"
)

type stubClassifier struct {
	classification IntentClassification
	err            error
}

func (s *stubClassifier) Classify(ctx context.Context, title, body string) (IntentClassification, error) {
	return s.classification, s.err
}

type stubCatalog struct{}

func (stubCatalog) SuggestedActions(intent Intent) []string {
	return []string{"suggested action for " + string(intent)}
}

func (stubCatalog) HistoricalResolutions(intent Intent) []HistoricalResolution {
	return []HistoricalResolution{{TicketID: "HIST-1", Title: "prior ticket", Resolution: "fixed", Similarity: 0.8}}
}

func TestValidateCategoryMap(t *testing.T) {
	if err := ValidateCategoryMap(); err != nil {
		t.Fatalf("category map incomplete: %v", err)
	}
}

func TestCategoryForIntent(t *testing.T) {
	if got := CategoryForIntent(IntentVPNIssue); got != CategoryVPNIssue {
		t.Fatalf("expected vpn_issue category, got %s", got)
	}
	if got := CategoryForIntent(IntentUnknown); got != CategoryGeneral {
		t.Fatalf("expected general category for unknown, got %s", got)
	}
	if got := CategoryForIntent(Intent("bogus")); got != CategoryGeneral {
		t.Fatalf("expected general category for unmapped intent, got %s", got)
	}
}

func TestRunQuerySearchesClassifiedCategory(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.AddDocuments(ctx, []DocumentInput{
		{Title: "Password reset runbook", Content: "AD reset steps.", Category: CategoryPasswordReset},
		{Title: "Printer diagnostics", Content: "Spooler restart.", Category: CategoryHardwareIssue},
	}); err != nil {
		t.Fatalf("add documents: %v", err)
	}

	classifier := &stubClassifier{classification: IntentClassification{
		Intent:        IntentPasswordReset,
		Confidence:    0.9,
		IsAutomatable: true,
		Reasoning:     "test",
	}}
	orchestrator := NewOrchestrator(store, classifier, stubCatalog{}, 5)

	result, err := orchestrator.RunQuery(ctx, "Password expired", "User cannot log in")
	if err != nil {
		t.Fatalf("run query: %v", err)
	}

	if result.Classification.Intent != IntentPasswordReset {
		t.Fatalf("unexpected intent %s", result.Classification.Intent)
	}
	if len(result.RawResults) != 1 {
		t.Fatalf("expected 1 category-filtered result, got %d", len(result.RawResults))
	}
	if result.RawResults[0].Category != CategoryPasswordReset {
		t.Fatalf("result outside classified category: %s", result.RawResults[0].Category)
	}
	if len(result.Context.RelevantDocs) != 1 {
		t.Fatalf("context docs not populated")
	}
	if len(result.Context.SuggestedActions) == 0 || len(result.Context.HistoricalResolutions) == 0 {
		t.Fatal("context catalogs not populated")
	}
}

func TestRunQueryPropagatesClassifierError(t *testing.T) {
	store := newTestStore(t)
	wantErr := errors.New("endpoint unreachable")
	orchestrator := NewOrchestrator(store, &stubClassifier{err: wantErr}, stubCatalog{}, 5)

	if _, err := orchestrator.RunQuery(context.Background(), "title", "body"); err == nil {
		t.Fatal("expected error from classifier")
	}
}
