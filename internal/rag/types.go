package rag

import (
	"time"
)

// Intent is the closed set of ticket intents the platform understands.
type Intent string

const (
	IntentPasswordReset    Intent = "password_reset"
	IntentSystemRestart    Intent = "system_restart"
	IntentBackupFailure    Intent = "backup_failure"
	IntentAccessRequest    Intent = "access_request"
	IntentSoftwareInstall  Intent = "software_install"
	IntentNetworkIssue     Intent = "network_issue"
	IntentEmailIssue       Intent = "email_issue"
	IntentHardwareIssue    Intent = "hardware_issue"
	IntentVPNIssue         Intent = "vpn_issue"
	IntentPerformanceIssue Intent = "performance_issue"
	IntentUnknown          Intent = "unknown"
)

// AllIntents lists every intent in enumeration order. Lookup tables keyed
// by intent are validated against this list at startup.
var AllIntents = []Intent{
	IntentPasswordReset,
	IntentSystemRestart,
	IntentBackupFailure,
	IntentAccessRequest,
	IntentSoftwareInstall,
	IntentNetworkIssue,
	IntentEmailIssue,
	IntentHardwareIssue,
	IntentVPNIssue,
	IntentPerformanceIssue,
	IntentUnknown,
}

// Category partitions the knowledge base. Categories mirror intents, plus
// a catch-all "general" bucket.
type Category string

const (
	CategoryPasswordReset    Category = "password_reset"
	CategorySystemRestart    Category = "system_restart"
	CategoryBackupFailure    Category = "backup_failure"
	CategoryAccessRequest    Category = "access_request"
	CategorySoftwareInstall  Category = "software_install"
	CategoryNetworkIssue     Category = "network_issue"
	CategoryEmailIssue       Category = "email_issue"
	CategoryHardwareIssue    Category = "hardware_issue"
	CategoryVPNIssue         Category = "vpn_issue"
	CategoryPerformanceIssue Category = "performance_issue"
	CategoryGeneral          Category = "general"
)

// IntentClassification is the result of classifying a ticket, regardless
// of which classifier strategy produced it.
type IntentClassification struct {
	Intent        Intent  `json:"intent"`
	Confidence    float64 `json:"confidence"`
	IsAutomatable bool    `json:"is_automatable"`
	Reasoning     string  `json:"reasoning"`
}

// KnowledgeDocument is a stored knowledge-base article with its embedding.
// Documents are never hard-deleted; deletion flips IsActive.
type KnowledgeDocument struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	Category       Category  `json:"category"`
	Tags           []string  `json:"tags"`
	Embedding      []float32 `json:"-"`
	EmbeddingModel string    `json:"embedding_model,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// VectorSearchResult is a document projection scored against a query.
type VectorSearchResult struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Category   Category `json:"category"`
	Tags       []string `json:"tags"`
	Similarity float64  `json:"similarity"`
}

// RelevantDocument is the context-bundle projection of a search result.
type RelevantDocument struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Content    string  `json:"content"`
	Similarity float64 `json:"similarity"`
}

// HistoricalResolution is a previously resolved ticket surfaced as context.
type HistoricalResolution struct {
	TicketID   string  `json:"ticket_id"`
	Title      string  `json:"title"`
	Resolution string  `json:"resolution"`
	Similarity float64 `json:"similarity"`
}

// KnowledgeContext is the bundle handed to the decision layer: search
// results ordered by descending similarity plus the static per-intent
// action and resolution catalogs.
type KnowledgeContext struct {
	RelevantDocs          []RelevantDocument     `json:"relevant_docs"`
	SuggestedActions      []string               `json:"suggested_actions"`
	HistoricalResolutions []HistoricalResolution `json:"historical_resolutions"`
}
