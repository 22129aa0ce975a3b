package actions

import (
	"testing"

	"github.com/alphora/alphora/internal/rag"
)

func TestValidateCatalogs(t *testing.T) {
	if err := ValidateCatalogs(); err != nil {
		t.Fatalf("catalogs incomplete: %v", err)
	}
}

func TestSuggestedActionsNonEmptyForEveryIntent(t *testing.T) {
	for _, intent := range rag.AllIntents {
		if len(SuggestedActions(intent)) == 0 {
			t.Fatalf("intent %s has no suggested actions", intent)
		}
	}
}

func TestSuggestedActionsUnmappedIntentFallsBack(t *testing.T) {
	got := SuggestedActions(rag.Intent("bogus"))
	want := SuggestedActions(rag.IntentUnknown)
	if len(got) != len(want) {
		t.Fatalf("expected unknown fallback, got %d actions", len(got))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("fallback action %d differs: %q vs %q", i, got[i], want[i])
		}
	}
}

func TestHistoricalResolutionsCoverAutomatableCore(t *testing.T) {
	cases := []struct {
		intent   rag.Intent
		ticketID string
	}{
		{rag.IntentPasswordReset, "HIST-001"},
		{rag.IntentSystemRestart, "HIST-002"},
		{rag.IntentBackupFailure, "HIST-003"},
	}
	for _, tc := range cases {
		resolutions := HistoricalResolutions(tc.intent)
		if len(resolutions) == 0 {
			t.Fatalf("intent %s has no historical resolutions", tc.intent)
		}
		if resolutions[0].TicketID != tc.ticketID {
			t.Fatalf("intent %s: expected %s, got %s", tc.intent, tc.ticketID, resolutions[0].TicketID)
		}
		if resolutions[0].Similarity <= 0 || resolutions[0].Similarity > 1 {
			t.Fatalf("intent %s: similarity %.2f out of (0,1]", tc.intent, resolutions[0].Similarity)
		}
	}
}

func TestHistoricalResolutionsEmptyButPresentForOthers(t *testing.T) {
	if got := HistoricalResolutions(rag.IntentVPNIssue); len(got) != 0 {
		t.Fatalf("expected no recorded resolutions for vpn_issue, got %d", len(got))
	}
}
