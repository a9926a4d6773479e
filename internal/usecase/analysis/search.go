package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"vantage-backend/internal/pkg/errs"
	"vantage-backend/internal/usecase/queries"

	"github.com/google/uuid"
)

var ErrEmptyQuery = errs.New("query cannot be empty")

// FilterQuoteData is the caller-supplied view of one quote to filter over;
// the frontend assembles it from the lists it already holds.
type FilterQuoteData struct {
	QuoteID   uuid.UUID           `json:"quote_id"`
	QuoteInfo FilterQuoteInfo     `json:"quote_info"`
	Responses []FilterResponseRow `json:"responses"`
}

type FilterQuoteInfo struct {
	ItemName string `json:"item_name"`
	ItemType string `json:"item_type"`
	Quantity *int32 `json:"quantity,omitempty"`
}

type FilterResponseRow struct {
	ProviderID          uuid.UUID `json:"provider_id"`
	ProviderName        string    `json:"provider_name,omitempty"`
	TotalPrice          *float64  `json:"total_price,omitempty"`
	Currency            *string   `json:"currency,omitempty"`
	CertificationsCount *int32    `json:"certifications_count,omitempty"`
}

type FilterResult struct {
	FilteredQuoteIDs    []uuid.UUID `json:"filtered_quote_ids"`
	NearMatchQuoteIDs   []uuid.UUID `json:"near_match_quote_ids"`
	Reasoning           string      `json:"reasoning"`
	NearMatchReasoning  string      `json:"near_match_reasoning"`
	TotalQuotesAnalyzed int         `json:"total_quotes_analyzed"`
	QuotesFound         int         `json:"quotes_found"`
	NearMatchesFound    int         `json:"near_matches_found"`
	AvailableQuoteIDs   []uuid.UUID `json:"available_quote_ids"`
}

type CatalogMatch struct {
	queries.CatalogItemView
	Reasoning string `json:"reasoning"`
}

type SearchResult struct {
	ExactMatches []CatalogMatch `json:"exact_matches"`
	NearMatches  []CatalogMatch `json:"near_matches"`
	Reasoning    string         `json:"reasoning"`
}

// FilterQuotes asks the model which of the supplied quotes satisfy a
// natural-language condition. A model or parse failure degrades to empty
// lists, never an error surfaced to the caller.
func (e *Engine) FilterQuotes(ctx context.Context, query string, quotesData []FilterQuoteData) (*FilterResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	availableIDs := make([]uuid.UUID, 0, len(quotesData))
	var summaries []string
	for _, q := range quotesData {
		availableIDs = append(availableIDs, q.QuoteID)
		if len(q.Responses) == 0 {
			continue
		}
		summaries = append(summaries, filterQuoteSummary(q))
	}

	result := &FilterResult{
		FilteredQuoteIDs:    []uuid.UUID{},
		NearMatchQuoteIDs:   []uuid.UUID{},
		TotalQuotesAnalyzed: len(quotesData),
		AvailableQuoteIDs:   availableIDs,
	}
	if len(summaries) == 0 {
		result.Reasoning = "No hay cotizaciones con respuestas para analizar"
		result.NearMatchReasoning = "Sin cotizaciones cercanas"
		return result, nil
	}

	raw, err := e.llm.Complete(ctx, filterSystemPrompt, filterPrompt(query, summaries, availableIDs))
	if err != nil {
		slog.Warn("quote filter model call failed", "error", err)
		result.Reasoning = "El filtro asistido por IA no está disponible en este momento"
		result.NearMatchReasoning = "Sin cotizaciones cercanas"
		return result, nil
	}

	parsed, err := parseFilterResult(raw)
	if err != nil {
		slog.Warn("quote filter output unparseable", "error", err)
		result.Reasoning = "El filtro asistido por IA no está disponible en este momento"
		result.NearMatchReasoning = "Sin cotizaciones cercanas"
		return result, nil
	}

	known := make(map[uuid.UUID]struct{}, len(availableIDs))
	for _, id := range availableIDs {
		known[id] = struct{}{}
	}
	result.FilteredQuoteIDs = keepKnown(parsed.FilteredQuoteIDs, known)
	result.NearMatchQuoteIDs = keepKnown(parsed.NearMatchQuoteIDs, known)
	result.Reasoning = parsed.Reasoning
	if result.Reasoning == "" {
		result.Reasoning = "Análisis completado"
	}
	result.NearMatchReasoning = parsed.NearMatchReasoning
	if result.NearMatchReasoning == "" {
		result.NearMatchReasoning = "Sin cotizaciones cercanas"
	}
	result.QuotesFound = len(result.FilteredQuoteIDs)
	result.NearMatchesFound = len(result.NearMatchQuoteIDs)
	return result, nil
}

func filterQuoteSummary(q FilterQuoteData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Cotización %s: %s (%s)", q.QuoteID, q.QuoteInfo.ItemName, q.QuoteInfo.ItemType)
	if q.QuoteInfo.Quantity != nil {
		fmt.Fprintf(&b, " - Cantidad: %d", *q.QuoteInfo.Quantity)
	}
	b.WriteString("\nRespuestas: ")
	parts := make([]string, 0, len(q.Responses))
	for _, r := range q.Responses {
		name := r.ProviderName
		if name == "" {
			name = "Proveedor " + r.ProviderID.String()
		}
		part := name + ": "
		if r.TotalPrice != nil {
			part += fmt.Sprintf("$%.2f", *r.TotalPrice)
			if r.Currency != nil {
				part += " " + *r.Currency
			}
		} else {
			part += "precio no informado"
		}
		if r.CertificationsCount != nil {
			part += fmt.Sprintf(", %d certificaciones", *r.CertificationsCount)
		}
		parts = append(parts, part)
	}
	b.WriteString(strings.Join(parts, "; "))
	return b.String()
}

const filterSystemPrompt = "Eres un asistente experto en análisis de cotizaciones. Respondes únicamente con JSON válido, sin texto adicional."

func filterPrompt(query string, summaries []string, availableIDs []uuid.UUID) string {
	ids := make([]string, 0, len(availableIDs))
	for _, id := range availableIDs {
		ids = append(ids, id.String())
	}
	return fmt.Sprintf(`Filtra las siguientes cotizaciones según esta consulta del usuario:

CONSULTA: "%s"

COTIZACIONES DISPONIBLES:
%s

Identifica qué cotizaciones cumplen EXACTAMENTE los criterios y cuáles están CERCA de cumplirlos (cumplen la mayoría pero les falta uno). Solo usa IDs de esta lista: %s

RESPONDE SOLO CON JSON:
{
  "filtered_quote_ids": ["..."],
  "near_match_quote_ids": ["..."],
  "reasoning": "explicación breve",
  "near_match_reasoning": "explicación de las coincidencias cercanas"
}

Si ninguna cotización cumple, devuelve listas vacías.`,
		query, strings.Join(summaries, "\n\n"), strings.Join(ids, ", "))
}

type filterModelOutput struct {
	FilteredQuoteIDs   []uuid.UUID `json:"filtered_quote_ids"`
	NearMatchQuoteIDs  []uuid.UUID `json:"near_match_quote_ids"`
	Reasoning          string      `json:"reasoning"`
	NearMatchReasoning string      `json:"near_match_reasoning"`
}

func parseFilterResult(raw string) (*filterModelOutput, error) {
	body, err := isolateJSON(raw)
	if err != nil {
		return nil, err
	}
	var out filterModelOutput
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		return nil, errs.Wrap(err, "failed to decode filter output")
	}
	return &out, nil
}

func keepKnown(ids []uuid.UUID, known map[uuid.UUID]struct{}) []uuid.UUID {
	kept := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := known[id]; ok {
			kept = append(kept, id)
		}
	}
	return kept
}

// SearchCatalog runs the deterministic word-overlap search over active
// catalog items. A word share of 0.8 counts as exact, 0.3 as near; featured
// items sort first within each bucket.
func (e *Engine) SearchCatalog(ctx context.Context, query string) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	items, err := e.catalog.ListActiveItems(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load catalog items")
	}

	result := &SearchResult{ExactMatches: []CatalogMatch{}, NearMatches: []CatalogMatch{}}
	if len(items) == 0 {
		result.Reasoning = "El catálogo está vacío"
		return result, nil
	}

	queryWords := strings.Fields(strings.ToLower(query))
	for _, item := range items {
		score := wordOverlap(catalogSearchText(item), queryWords)
		switch {
		case score >= 0.8:
			result.ExactMatches = append(result.ExactMatches, CatalogMatch{
				CatalogItemView: *item,
				Reasoning:       fmt.Sprintf("Coincidencia exacta: '%s' encontrado en %s", query, item.Name),
			})
		case score >= 0.3:
			result.NearMatches = append(result.NearMatches, CatalogMatch{
				CatalogItemView: *item,
				Reasoning:       fmt.Sprintf("Coincidencia cercana: '%s' relacionado con %s", query, item.Name),
			})
		}
	}

	featuredFirst(result.ExactMatches)
	featuredFirst(result.NearMatches)
	result.Reasoning = fmt.Sprintf(
		"Búsqueda completada. Encontradas %d coincidencias exactas y %d cercanas para '%s'.",
		len(result.ExactMatches), len(result.NearMatches), query,
	)
	return result, nil
}

func catalogSearchText(item *queries.CatalogItemView) string {
	parts := []string{item.Name, item.Description, item.Category, item.ProviderName}
	if item.TechnicalDetails != nil {
		parts = append(parts, *item.TechnicalDetails)
	}
	if item.Modality != nil {
		parts = append(parts, *item.Modality)
	}
	return strings.ToLower(strings.Join(parts, " "))
}

func wordOverlap(haystack string, queryWords []string) float64 {
	if len(queryWords) == 0 {
		return 0
	}
	hits := 0
	for _, w := range queryWords {
		if strings.Contains(haystack, w) {
			hits++
		}
	}
	return float64(hits) / float64(len(queryWords))
}

// featuredFirst is a stable partition, preserving catalog order inside each
// half.
func featuredFirst(matches []CatalogMatch) {
	sorted := make([]CatalogMatch, 0, len(matches))
	for _, m := range matches {
		if m.IsFeatured {
			sorted = append(sorted, m)
		}
	}
	for _, m := range matches {
		if !m.IsFeatured {
			sorted = append(sorted, m)
		}
	}
	copy(matches, sorted)
}
