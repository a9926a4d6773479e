package analysis

import (
	"context"
	"encoding/json"
	"log/slog"

	"vantage-backend/internal/domain/quote"
	"vantage-backend/internal/infra"
	"vantage-backend/internal/pkg/errs"
	"vantage-backend/internal/usecase/queries"

	"github.com/google/uuid"
)

// ChatCompleter is the outbound LLM port, implemented by internal/infra/llm.
type ChatCompleter interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// DocumentExtractor turns a stored document URL into plain text,
// implemented by internal/infra/extract.
type DocumentExtractor interface {
	FetchText(ctx context.Context, documentURL string) (string, error)
}

// AnalysisStore persists per-quote report caches and per-response
// extraction results.
type AnalysisStore interface {
	GetAnalysisCache(ctx context.Context, quoteID uuid.UUID) (json.RawMessage, error)
	SaveAnalysisCache(ctx context.Context, quoteID uuid.UUID, report json.RawMessage) error
	UpdateResponseExtraction(ctx context.Context, responseID uuid.UUID, data *quote.ExtractedData) error
}

// CatalogSearcher lists the active catalog rows the similarity search
// runs over.
type CatalogSearcher interface {
	ListActiveItems(ctx context.Context) ([]*queries.CatalogItemView, error)
}

type Engine struct {
	quotes  queries.QuoteReadStore
	store   AnalysisStore
	catalog CatalogSearcher
	llm     ChatCompleter
	docs    DocumentExtractor
}

func NewEngine(
	quotes queries.QuoteReadStore,
	store AnalysisStore,
	catalog CatalogSearcher,
	llm ChatCompleter,
	docs DocumentExtractor,
) *Engine {
	return &Engine{quotes: quotes, store: store, catalog: catalog, llm: llm, docs: docs}
}

// ExtractDocument pulls structured fields out of one stored document.
func (e *Engine) ExtractDocument(ctx context.Context, documentURL string) (*quote.ExtractedData, error) {
	text, err := e.docs.FetchText(ctx, documentURL)
	if err != nil {
		return nil, errs.Wrap(err, "failed to read document")
	}

	raw, err := e.llm.Complete(ctx, extractionSystemPrompt, extractionPrompt(text))
	if err != nil {
		return nil, errs.Wrap(err, "extraction model call failed")
	}
	return parseExtraction(raw)
}

// DocumentRef names one response document to analyze in a batch.
type DocumentRef struct {
	ResponseID  uuid.UUID `json:"response_id"`
	DocumentURL string    `json:"document_url"`
}

// DocumentAnalysis is the per-document outcome; Error is set instead of
// Data when that document failed, without aborting the rest of the batch.
type DocumentAnalysis struct {
	ResponseID uuid.UUID           `json:"response_id"`
	Data       *quote.ExtractedData `json:"data,omitempty"`
	Error      string              `json:"error,omitempty"`
}

// AnalyzeDocuments runs extraction over a batch of response documents.
// Failures are isolated per item; the successful extractions are persisted
// onto their response rows.
func (e *Engine) AnalyzeDocuments(ctx context.Context, refs []DocumentRef) []DocumentAnalysis {
	results := make([]DocumentAnalysis, 0, len(refs))
	for _, ref := range refs {
		data, err := e.ExtractDocument(ctx, ref.DocumentURL)
		if err != nil {
			slog.Warn("document analysis failed",
				"response_id", ref.ResponseID, "error", err)
			results = append(results, DocumentAnalysis{ResponseID: ref.ResponseID, Error: err.Error()})
			continue
		}
		if err := e.store.UpdateResponseExtraction(ctx, ref.ResponseID, data); err != nil {
			slog.Warn("failed to persist extraction",
				"response_id", ref.ResponseID, "error", err)
		}
		results = append(results, DocumentAnalysis{ResponseID: ref.ResponseID, Data: data})
	}
	return results
}

// GetFullAnalysis builds the comparative report for a quote request. After
// the requester is confirmed as the owning client, the call always succeeds:
// no responses yields the stable empty report, a cached report short-circuits
// the model, and a model or parse failure yields the computed fallback.
func (e *Engine) GetFullAnalysis(ctx context.Context, quoteID, requesterID uuid.UUID) (report *FullAnalysis, err error) {
	snapshot, err := e.quotes.FindRequestByID(ctx, quoteID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, queries.ErrQuoteNotFound
		}
		return nil, err
	}
	if snapshot.ClientUserID != requesterID {
		return nil, queries.ErrAccessDenied
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("analysis engine panic recovered", "quote_id", quoteID, "panic", r)
			report, err = emptyReport(), nil
		}
	}()

	responses, err := e.quotes.ListResponses(ctx, quoteID)
	if err != nil {
		slog.Warn("failed to load responses for analysis", "quote_id", quoteID, "error", err)
		return emptyReport(), nil
	}
	if len(responses) == 0 {
		return emptyReport(), nil
	}

	if cached := e.cachedReport(ctx, quoteID); cached != nil {
		return cached, nil
	}

	stats := computeStats(responses)

	raw, llmErr := e.llm.Complete(ctx, comparativeSystemPrompt,
		comparativePrompt(snapshot.ItemNameSnapshot, snapshot.Quantity, responses, stats))
	if llmErr != nil {
		slog.Warn("comparative model call failed", "quote_id", quoteID, "error", llmErr)
		return fallbackReport(responses, stats), nil
	}

	parsed, parseErr := parseReport(raw)
	if parseErr != nil {
		slog.Warn("comparative model output unparseable", "quote_id", quoteID, "error", parseErr)
		return fallbackReport(responses, stats), nil
	}

	report = sanitizeReport(parsed, responses, stats)
	e.persistCache(ctx, quoteID, report)
	return report, nil
}

// cachedReport returns the stored report if one exists and still decodes;
// a stale or corrupt cache entry is treated as a miss.
func (e *Engine) cachedReport(ctx context.Context, quoteID uuid.UUID) *FullAnalysis {
	raw, err := e.store.GetAnalysisCache(ctx, quoteID)
	if err != nil {
		if !infra.IsKind(err, infra.KindNotFound) {
			slog.Warn("analysis cache read failed", "quote_id", quoteID, "error", err)
		}
		return nil
	}
	if len(raw) == 0 {
		return nil
	}
	var report FullAnalysis
	if err := json.Unmarshal(raw, &report); err != nil {
		slog.Warn("analysis cache entry corrupt", "quote_id", quoteID, "error", err)
		return nil
	}
	return &report
}

// persistCache stores a model-backed report; fallback reports are not
// cached so a later call can retry the model.
func (e *Engine) persistCache(ctx context.Context, quoteID uuid.UUID, report *FullAnalysis) {
	raw, err := json.Marshal(report)
	if err != nil {
		slog.Warn("failed to encode analysis cache", "quote_id", quoteID, "error", err)
		return
	}
	if err := e.store.SaveAnalysisCache(ctx, quoteID, raw); err != nil {
		slog.Warn("failed to persist analysis cache", "quote_id", quoteID, "error", err)
	}
}
