package bootstrap

import (
	"vantage-backend/internal/infra/extract"
	"vantage-backend/internal/infra/llm"
	"vantage-backend/internal/infra/storage"
	"vantage-backend/internal/pkg/config"
	"vantage-backend/internal/usecase/analysis"
	"vantage-backend/internal/usecase/commands"

	"go.uber.org/fx"
)

// ExternalModule wires the engine's outbound collaborators: the OpenAI
// client, the PDF text extractor, and the local document store.
var ExternalModule = fx.Module("external",
	fx.Provide(
		func(cfg config.Config) *llm.Client {
			return llm.NewClient(cfg.OpenAI)
		},
		func(c *llm.Client) analysis.ChatCompleter { return c },

		func(cfg config.Config) *extract.PDFExtractor {
			return extract.NewPDFExtractor(cfg.Storage)
		},
		func(e *extract.PDFExtractor) analysis.DocumentExtractor { return e },

		func(cfg config.Config) (*storage.LocalFileStore, error) {
			return storage.NewLocalFileStore(cfg.Storage)
		},
		func(s *storage.LocalFileStore) commands.FileStore { return s },
	),
)
