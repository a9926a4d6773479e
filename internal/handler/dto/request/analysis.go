package request

import "vantage-backend/internal/usecase/analysis"

type AnalyzeDocumentsRequest struct {
	Documents []analysis.DocumentRef `json:"pdfs" binding:"required,min=1,dive"`
}

type FilterQuotesRequest struct {
	Query      string                     `json:"query" binding:"required"`
	QuotesData []analysis.FilterQuoteData `json:"quotes_data" binding:"required,min=1"`
}

type SearchCatalogRequest struct {
	Query string `json:"query" binding:"required"`
}
