package rag

import (
	"context"
	"fmt"
	"log"
)

// defaultSearchLimit caps how many documents a query pulls into context.
const defaultSearchLimit = 5

// Classifier maps a ticket's title and body to an intent classification.
// Implementations live in the classify package.
type Classifier interface {
	Classify(ctx context.Context, title, body string) (IntentClassification, error)
}

// ActionCatalog supplies the static per-intent suggested actions and
// historical resolutions paired with search results.
type ActionCatalog interface {
	SuggestedActions(intent Intent) []string
	HistoricalResolutions(intent Intent) []HistoricalResolution
}

// intentToCategory is the fixed 1:1 mapping from intent to knowledge
// category. Unknown maps to the general bucket.
var intentToCategory = map[Intent]Category{
	IntentPasswordReset:    CategoryPasswordReset,
	IntentSystemRestart:    CategorySystemRestart,
	IntentBackupFailure:    CategoryBackupFailure,
	IntentAccessRequest:    CategoryAccessRequest,
	IntentSoftwareInstall:  CategorySoftwareInstall,
	IntentNetworkIssue:     CategoryNetworkIssue,
	IntentEmailIssue:       CategoryEmailIssue,
	IntentHardwareIssue:    CategoryHardwareIssue,
	IntentVPNIssue:         CategoryVPNIssue,
	IntentPerformanceIssue: CategoryPerformanceIssue,
	IntentUnknown:          CategoryGeneral,
}

// CategoryForIntent resolves the knowledge category an intent searches.
func CategoryForIntent(intent Intent) Category {
	if category, ok := intentToCategory[intent]; ok {
		return category
	}
	return CategoryGeneral
}

// ValidateCategoryMap checks that every intent has a category mapping.
func ValidateCategoryMap() error {
	for _, intent := range AllIntents {
		if _, ok := intentToCategory[intent]; !ok {
			return fmt.Errorf("intent %s has no category mapping", intent)
		}
	}
	return nil
}

// QueryResult bundles everything a ticket query produced.
type QueryResult struct {
	Classification IntentClassification `json:"classification"`
	Context        KnowledgeContext     `json:"context"`
	RawResults     []VectorSearchResult `json:"raw_results"`
}

// Orchestrator runs the retrieval pipeline for one ticket: classify the
// intent, search the matching knowledge category, and assemble the
// context bundle.
type Orchestrator struct {
	store       *VectorStore
	classifier  Classifier
	catalog     ActionCatalog
	searchLimit int
}

func NewOrchestrator(store *VectorStore, classifier Classifier, catalog ActionCatalog, searchLimit int) *Orchestrator {
	if searchLimit <= 0 {
		searchLimit = defaultSearchLimit
	}
	return &Orchestrator{
		store:       store,
		classifier:  classifier,
		catalog:     catalog,
		searchLimit: searchLimit,
	}
}

// RunQuery classifies the ticket and retrieves knowledge for it.
func (o *Orchestrator) RunQuery(ctx context.Context, title, body string) (*QueryResult, error) {
	log.Printf("Running knowledge query for: %s", title)

	classification, err := o.classifier.Classify(ctx, title, body)
	if err != nil {
		return nil, fmt.Errorf("failed to classify ticket: %v", err)
	}
	log.Printf("Classified intent: %s (confidence: %.2f)", classification.Intent, classification.Confidence)

	category := CategoryForIntent(classification.Intent)
	query := title + "\n" + body

	rawResults, err := o.store.SearchSimilar(ctx, query, o.searchLimit, category)
	if err != nil {
		return nil, err
	}
	log.Printf("Found %d relevant documents", len(rawResults))

	return &QueryResult{
		Classification: classification,
		Context:        o.buildContext(rawResults, classification.Intent),
		RawResults:     rawResults,
	}, nil
}

func (o *Orchestrator) buildContext(results []VectorSearchResult, intent Intent) KnowledgeContext {
	relevantDocs := make([]RelevantDocument, len(results))
	for i, r := range results {
		relevantDocs[i] = RelevantDocument{
			ID:         r.ID,
			Title:      r.Title,
			Content:    r.Content,
			Similarity: r.Similarity,
		}
	}

	return KnowledgeContext{
		RelevantDocs:          relevantDocs,
		SuggestedActions:      o.catalog.SuggestedActions(intent),
		HistoricalResolutions: o.catalog.HistoricalResolutions(intent),
	}
}
