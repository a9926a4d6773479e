//go:build unit

package analysis

import (
	"context"
	"encoding/json"
	"testing"

	"vantage-backend/internal/domain/quote"
	"vantage-backend/internal/infra"
	"vantage-backend/internal/pkg/errs"
	"vantage-backend/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockQuoteReadStore struct {
	mock.Mock
}

func (m *MockQuoteReadStore) FindRequestByID(ctx context.Context, id uuid.UUID) (*queries.RequestSnapshot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queries.RequestSnapshot), args.Error(1)
}

func (m *MockQuoteReadStore) FindDetailsByID(ctx context.Context, id uuid.UUID) (*queries.RequestDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queries.RequestDetails), args.Error(1)
}

func (m *MockQuoteReadStore) ListByClient(ctx context.Context, clientUserID uuid.UUID) ([]*queries.RequestListItem, error) {
	args := m.Called(ctx, clientUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*queries.RequestListItem), args.Error(1)
}

func (m *MockQuoteReadStore) ListByProvider(ctx context.Context, providerID uuid.UUID) ([]*queries.ReceivedRequestItem, error) {
	args := m.Called(ctx, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*queries.ReceivedRequestItem), args.Error(1)
}

func (m *MockQuoteReadStore) ListAttachments(ctx context.Context, quoteID uuid.UUID) ([]queries.AttachmentView, error) {
	args := m.Called(ctx, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.AttachmentView), args.Error(1)
}

func (m *MockQuoteReadStore) ListResponses(ctx context.Context, quoteID uuid.UUID) ([]*queries.ResponseView, error) {
	args := m.Called(ctx, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*queries.ResponseView), args.Error(1)
}

type MockAnalysisStore struct {
	mock.Mock
}

func (m *MockAnalysisStore) GetAnalysisCache(ctx context.Context, quoteID uuid.UUID) (json.RawMessage, error) {
	args := m.Called(ctx, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockAnalysisStore) SaveAnalysisCache(ctx context.Context, quoteID uuid.UUID, report json.RawMessage) error {
	args := m.Called(ctx, quoteID, report)
	return args.Error(0)
}

func (m *MockAnalysisStore) UpdateResponseExtraction(ctx context.Context, responseID uuid.UUID, data *quote.ExtractedData) error {
	args := m.Called(ctx, responseID, data)
	return args.Error(0)
}

type MockChatCompleter struct {
	mock.Mock
}

func (m *MockChatCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	args := m.Called(ctx, systemPrompt, userPrompt)
	return args.String(0), args.Error(1)
}

type MockDocumentExtractor struct {
	mock.Mock
}

func (m *MockDocumentExtractor) FetchText(ctx context.Context, documentURL string) (string, error) {
	args := m.Called(ctx, documentURL)
	return args.String(0), args.Error(1)
}

type MockCatalogSearcher struct {
	mock.Mock
}

func (m *MockCatalogSearcher) ListActiveItems(ctx context.Context) ([]*queries.CatalogItemView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*queries.CatalogItemView), args.Error(1)
}

type engineMocks struct {
	quotes  *MockQuoteReadStore
	store   *MockAnalysisStore
	catalog *MockCatalogSearcher
	llm     *MockChatCompleter
	docs    *MockDocumentExtractor
}

func newTestEngine() (*Engine, *engineMocks) {
	m := &engineMocks{
		quotes:  new(MockQuoteReadStore),
		store:   new(MockAnalysisStore),
		catalog: new(MockCatalogSearcher),
		llm:     new(MockChatCompleter),
		docs:    new(MockDocumentExtractor),
	}
	return NewEngine(m.quotes, m.store, m.catalog, m.llm, m.docs), m
}

func snapshotFixture(clientUserID uuid.UUID) *queries.RequestSnapshot {
	qty := int32(5)
	return &queries.RequestSnapshot{
		ID:               uuid.New(),
		ClientUserID:     clientUserID,
		ProviderID:       uuid.New(),
		ItemID:           uuid.New(),
		ItemType:         "product",
		ItemNameSnapshot: "Bomba hidráulica HX-200",
		Quantity:         &qty,
		Status:           "responded",
	}
}

func TestEngine_GetFullAnalysis(t *testing.T) {
	ctx := context.Background()
	quoteID := uuid.New()
	clientID := uuid.New()

	t.Run("unknown quote", func(t *testing.T) {
		engine, m := newTestEngine()
		m.quotes.On("FindRequestByID", ctx, quoteID).
			Return(nil, infra.WrapRepoErr("quote request not found", nil, infra.KindNotFound))

		_, err := engine.GetFullAnalysis(ctx, quoteID, clientID)
		assert.ErrorIs(t, err, queries.ErrQuoteNotFound)
	})

	t.Run("requester is not the owning client", func(t *testing.T) {
		engine, m := newTestEngine()
		m.quotes.On("FindRequestByID", ctx, quoteID).Return(snapshotFixture(clientID), nil)

		_, err := engine.GetFullAnalysis(ctx, quoteID, uuid.New())
		assert.ErrorIs(t, err, queries.ErrAccessDenied)
		m.llm.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("no responses yields empty report without calling the model", func(t *testing.T) {
		engine, m := newTestEngine()
		m.quotes.On("FindRequestByID", ctx, quoteID).Return(snapshotFixture(clientID), nil)
		m.quotes.On("ListResponses", ctx, quoteID).Return([]*queries.ResponseView{}, nil)

		report, err := engine.GetFullAnalysis(ctx, quoteID, clientID)
		require.NoError(t, err)
		assert.Empty(t, report.AnalisisComparativo)
		assert.Equal(t, noDataValue, report.MejoresOpciones.MejorPrecio.Proveedor)
		assert.Zero(t, report.AnalisisDetallado.TotalRespuestas)
		m.llm.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cache hit short-circuits the model", func(t *testing.T) {
		engine, m := newTestEngine()
		cached := emptyReport()
		cached.ResumenEjecutivo = "Informe guardado"
		raw, err := json.Marshal(cached)
		require.NoError(t, err)

		m.quotes.On("FindRequestByID", ctx, quoteID).Return(snapshotFixture(clientID), nil)
		m.quotes.On("ListResponses", ctx, quoteID).Return([]*queries.ResponseView{
			responseFixture("Hidráulica Sur", f64(800), nil, nil),
		}, nil)
		m.store.On("GetAnalysisCache", ctx, quoteID).Return(json.RawMessage(raw), nil)

		report, err := engine.GetFullAnalysis(ctx, quoteID, clientID)
		require.NoError(t, err)
		assert.Equal(t, "Informe guardado", report.ResumenEjecutivo)
		m.llm.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("corrupt cache entry is a miss", func(t *testing.T) {
		engine, m := newTestEngine()
		responses := []*queries.ResponseView{
			responseFixture("Hidráulica Sur", f64(800), i32(2), strPtr("5 días")),
		}
		m.quotes.On("FindRequestByID", ctx, quoteID).Return(snapshotFixture(clientID), nil)
		m.quotes.On("ListResponses", ctx, quoteID).Return(responses, nil)
		m.store.On("GetAnalysisCache", ctx, quoteID).Return(json.RawMessage(`{not json`), nil)
		m.llm.On("Complete", ctx, mock.Anything, mock.Anything).
			Return(`{"resumen_ejecutivo": "Una oferta sólida."}`, nil)
		m.store.On("SaveAnalysisCache", ctx, quoteID, mock.Anything).Return(nil)

		report, err := engine.GetFullAnalysis(ctx, quoteID, clientID)
		require.NoError(t, err)
		assert.Equal(t, "Una oferta sólida.", report.ResumenEjecutivo)
		m.llm.AssertExpectations(t)
	})

	t.Run("model failure yields fallback and skips the cache", func(t *testing.T) {
		engine, m := newTestEngine()
		responses := []*queries.ResponseView{
			responseFixture("Hidráulica Sur", f64(800), nil, nil),
			responseFixture("Industrial Norte", f64(1200), nil, nil),
		}
		m.quotes.On("FindRequestByID", ctx, quoteID).Return(snapshotFixture(clientID), nil)
		m.quotes.On("ListResponses", ctx, quoteID).Return(responses, nil)
		m.store.On("GetAnalysisCache", ctx, quoteID).
			Return(nil, infra.WrapRepoErr("no cache", nil, infra.KindNotFound))
		m.llm.On("Complete", ctx, mock.Anything, mock.Anything).Return("", errs.New("model unreachable"))

		report, err := engine.GetFullAnalysis(ctx, quoteID, clientID)
		require.NoError(t, err)
		require.Len(t, report.AnalisisComparativo, 2)
		assert.Equal(t, 800.0, report.AnalisisDetallado.PrecioMinimo)
		assert.Equal(t, 1200.0, report.AnalisisDetallado.PrecioMaximo)
		assert.Equal(t, "Hidráulica Sur", report.MejoresOpciones.MejorPrecio.Proveedor)
		assert.Equal(t, "$800", report.MejoresOpciones.MejorPrecio.Valor)
		assert.Equal(t, "Hidráulica Sur", report.AccionesRecomendadas.ContactoPrioritario)
		m.store.AssertNotCalled(t, "SaveAnalysisCache", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unparseable model output yields fallback", func(t *testing.T) {
		engine, m := newTestEngine()
		responses := []*queries.ResponseView{
			responseFixture("Hidráulica Sur", f64(800), nil, nil),
		}
		m.quotes.On("FindRequestByID", ctx, quoteID).Return(snapshotFixture(clientID), nil)
		m.quotes.On("ListResponses", ctx, quoteID).Return(responses, nil)
		m.store.On("GetAnalysisCache", ctx, quoteID).
			Return(nil, infra.WrapRepoErr("no cache", nil, infra.KindNotFound))
		m.llm.On("Complete", ctx, mock.Anything, mock.Anything).
			Return("no puedo generar el informe solicitado", nil)

		report, err := engine.GetFullAnalysis(ctx, quoteID, clientID)
		require.NoError(t, err)
		assert.Contains(t, report.ResumenEjecutivo, "no está disponible")
		m.store.AssertNotCalled(t, "SaveAnalysisCache", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("successful run sanitizes, overrides stats, and caches", func(t *testing.T) {
		engine, m := newTestEngine()
		responses := []*queries.ResponseView{
			responseFixture("Hidráulica Sur", f64(800), i32(2), strPtr("5-7 días hábiles")),
			responseFixture("Industrial Norte", f64(1200), i32(3), strPtr("10 días")),
		}
		m.quotes.On("FindRequestByID", ctx, quoteID).Return(snapshotFixture(clientID), nil)
		m.quotes.On("ListResponses", ctx, quoteID).Return(responses, nil)
		m.store.On("GetAnalysisCache", ctx, quoteID).
			Return(nil, infra.WrapRepoErr("no cache", nil, infra.KindNotFound))

		// Model invents its own numeric section; the local one must win.
		m.llm.On("Complete", ctx, mock.Anything, mock.Anything).Return(`{
			"resumen_ejecutivo": "Dos ofertas recibidas.",
			"analisis_comparativo": [{"proveedor": "Hidráulica Sur", "analisis_ia": "Mejor precio", "sugerencia_ia": "Negociar entrega"}],
			"analisis_detallado": {"precio_minimo": 1, "precio_maximo": 99999, "total_respuestas": 42}
		}`, nil)
		m.store.On("SaveAnalysisCache", ctx, quoteID, mock.Anything).Return(nil)

		report, err := engine.GetFullAnalysis(ctx, quoteID, clientID)
		require.NoError(t, err)

		assert.Equal(t, "Dos ofertas recibidas.", report.ResumenEjecutivo)
		assert.Equal(t, 800.0, report.AnalisisDetallado.PrecioMinimo)
		assert.Equal(t, 1200.0, report.AnalisisDetallado.PrecioMaximo)
		assert.Equal(t, 1000.0, report.AnalisisDetallado.PrecioPromedio)
		assert.Equal(t, 2, report.AnalisisDetallado.TotalRespuestas)

		// Sections the model skipped get computed or placeholder values.
		assert.Equal(t, "Hidráulica Sur", report.MejoresOpciones.MejorPrecio.Proveedor)
		assert.Equal(t, "$800", report.MejoresOpciones.MejorPrecio.Valor)
		assert.Equal(t, noDataValue, report.CentroDeRiesgos.RiesgoPlazos)
		assert.Equal(t, "Hidráulica Sur", report.AccionesRecomendadas.ContactoPrioritario)
		require.Len(t, report.AnalisisComparativo, 1)
		assert.NotNil(t, report.AnalisisComparativo[0].PuntosFuertes)

		m.store.AssertCalled(t, "SaveAnalysisCache", ctx, quoteID, mock.Anything)
	})
}

func TestEngine_ExtractDocument(t *testing.T) {
	ctx := context.Background()

	t.Run("extracts fields from document text", func(t *testing.T) {
		engine, m := newTestEngine()
		m.docs.On("FetchText", ctx, "/uploads/quotes/doc.pdf").Return("COTIZACIÓN Total: $1,500 USD", nil)
		m.llm.On("Complete", ctx, mock.Anything, mock.Anything).
			Return(`{"proveedor": "Hidráulica Sur", "precio_total": 1500, "moneda": "USD"}`, nil)

		data, err := engine.ExtractDocument(ctx, "/uploads/quotes/doc.pdf")
		require.NoError(t, err)
		require.NotNil(t, data.PrecioTotal)
		assert.Equal(t, 1500.0, *data.PrecioTotal)
	})

	t.Run("document fetch failure propagates", func(t *testing.T) {
		engine, m := newTestEngine()
		m.docs.On("FetchText", ctx, "/uploads/quotes/missing.pdf").Return("", errs.New("download failed"))

		_, err := engine.ExtractDocument(ctx, "/uploads/quotes/missing.pdf")
		assert.Error(t, err)
		m.llm.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestEngine_AnalyzeDocuments(t *testing.T) {
	ctx := context.Background()

	t.Run("failures are isolated per document", func(t *testing.T) {
		engine, m := newTestEngine()
		okRef := DocumentRef{ResponseID: uuid.New(), DocumentURL: "/uploads/quotes/ok.pdf"}
		badRef := DocumentRef{ResponseID: uuid.New(), DocumentURL: "/uploads/quotes/bad.pdf"}

		m.docs.On("FetchText", ctx, okRef.DocumentURL).Return("COTIZACIÓN Total: $800", nil)
		m.docs.On("FetchText", ctx, badRef.DocumentURL).Return("", errs.New("download failed"))
		m.llm.On("Complete", ctx, mock.Anything, mock.Anything).
			Return(`{"precio_total": 800}`, nil)
		m.store.On("UpdateResponseExtraction", ctx, okRef.ResponseID, mock.Anything).Return(nil)

		results := engine.AnalyzeDocuments(ctx, []DocumentRef{okRef, badRef})
		require.Len(t, results, 2)

		assert.Equal(t, okRef.ResponseID, results[0].ResponseID)
		require.NotNil(t, results[0].Data)
		assert.Empty(t, results[0].Error)

		assert.Equal(t, badRef.ResponseID, results[1].ResponseID)
		assert.Nil(t, results[1].Data)
		assert.NotEmpty(t, results[1].Error)

		m.store.AssertNumberOfCalls(t, "UpdateResponseExtraction", 1)
	})

	t.Run("persistence failure does not drop the result", func(t *testing.T) {
		engine, m := newTestEngine()
		ref := DocumentRef{ResponseID: uuid.New(), DocumentURL: "/uploads/quotes/doc.pdf"}

		m.docs.On("FetchText", ctx, ref.DocumentURL).Return("texto del documento", nil)
		m.llm.On("Complete", ctx, mock.Anything, mock.Anything).Return(`{"precio_total": 500}`, nil)
		m.store.On("UpdateResponseExtraction", ctx, ref.ResponseID, mock.Anything).
			Return(errs.New("db down"))

		results := engine.AnalyzeDocuments(ctx, []DocumentRef{ref})
		require.Len(t, results, 1)
		require.NotNil(t, results[0].Data)
		assert.Empty(t, results[0].Error)
	})
}
