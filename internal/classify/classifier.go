// Package classify determines the intent of an incoming support ticket.
// Two interchangeable strategies exist: an offline keyword matcher and an
// OpenAI-backed model classifier.
package classify

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/alphora/alphora/internal/rag"
)

// Classifier maps a ticket's title and body to an intent classification.
type Classifier interface {
	Classify(ctx context.Context, title, body string) (rag.IntentClassification, error)
}

// AutomatableIntents is the fixed allow-list of intents the agent may
// resolve without a human.
var AutomatableIntents = map[rag.Intent]bool{
	rag.IntentPasswordReset:   true,
	rag.IntentSystemRestart:   true,
	rag.IntentBackupFailure:   true,
	rag.IntentSoftwareInstall: true,
}

// automationConfidenceFloor is the minimum keyword-match confidence for a
// ticket to be considered automatable.
const automationConfidenceFloor = 0.3

var intentKeywords = map[rag.Intent][]string{
	rag.IntentPasswordReset: {
		"password", "expired", "reset", "login", "locked out",
		"cannot sign in", "credentials", "authentication",
	},
	rag.IntentSystemRestart: {
		"restart", "reboot", "frozen", "not responding",
		"hang", "stuck", "unresponsive",
	},
	rag.IntentBackupFailure: {
		"backup", "failed", "backup job", "restore", "data loss", "backup error",
	},
	rag.IntentAccessRequest: {
		"access", "permission", "new user", "account setup", "grant access", "onboarding",
	},
	rag.IntentSoftwareInstall: {
		"install", "software", "application", "program", "update", "upgrade", "patch",
	},
	rag.IntentNetworkIssue: {
		"network", "internet", "connection", "wifi", "ethernet", "dns", "cannot connect", "shared drive",
	},
	rag.IntentEmailIssue: {
		"email", "outlook", "mailbox", "exchange", "cannot send", "not receiving",
	},
	rag.IntentHardwareIssue: {
		"hardware", "monitor", "keyboard", "mouse", "printer", "screen", "display",
	},
	rag.IntentVPNIssue: {
		"vpn", "remote access", "anyconnect", "tunnel", "disconnect", "remote work",
	},
	rag.IntentPerformanceIssue: {
		"slow", "performance", "lag", "boot time", "takes long", "freezing",
	},
	rag.IntentUnknown: {},
}

// ValidateKeywordTable checks that every intent has a keyword entry.
// Called at startup; a missing entry is a deployment bug.
func ValidateKeywordTable() error {
	for _, intent := range rag.AllIntents {
		if _, ok := intentKeywords[intent]; !ok {
			return fmt.Errorf("intent %s has no keyword entry", intent)
		}
	}
	return nil
}

// KeywordClassifier is the deterministic offline strategy: it counts
// case-insensitive keyword matches per intent.
type KeywordClassifier struct{}

func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

func (c *KeywordClassifier) Classify(ctx context.Context, title, body string) (rag.IntentClassification, error) {
	combined := strings.ToLower(title + " " + body)

	bestIntent := rag.IntentUnknown
	bestScore := 0
	for _, intent := range rag.AllIntents {
		score := 0
		for _, keyword := range intentKeywords[intent] {
			if strings.Contains(combined, keyword) {
				score++
			}
		}
		// Strictly greater: ties keep the first intent in enumeration
		// order, and unknown (zero keywords) stays the default.
		if score > bestScore {
			bestScore = score
			bestIntent = intent
		}
	}

	confidence := 0.0
	if bestIntent != rag.IntentUnknown {
		confidence = float64(bestScore) / float64(len(intentKeywords[bestIntent]))
		if confidence > 1 {
			confidence = 1
		}
		confidence = math.Round(confidence*100) / 100
	}

	return rag.IntentClassification{
		Intent:        bestIntent,
		Confidence:    confidence,
		IsAutomatable: AutomatableIntents[bestIntent] && confidence >= automationConfidenceFloor,
		Reasoning:     keywordReasoning(bestIntent, bestScore, confidence),
	}, nil
}

func keywordReasoning(intent rag.Intent, matchCount int, confidence float64) string {
	if intent == rag.IntentUnknown {
		return "No clear intent pattern detected. Manual review required."
	}
	level := "low"
	switch {
	case confidence >= 0.7:
		level = "high"
	case confidence >= 0.4:
		level = "medium"
	}
	return fmt.Sprintf("Detected %s intent with %s confidence based on %d keyword matches.", intent, level, matchCount)
}
