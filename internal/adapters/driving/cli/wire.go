package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/adapters/driven/ai"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/adapters/driven/config/file"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/adapters/driven/pdf"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/adapters/driven/storage/memory"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/adapters/driven/storage/sqlite"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/domain"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/ports/driven"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/ports/driving"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/services"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/logger"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/postprocessors/chunker"
)

// RuntimeOptions tunes NewRuntime.
type RuntimeOptions struct {
	// Ephemeral keeps indices in memory instead of the vector directory.
	Ephemeral bool
}

// Runtime is the wired application behind the serving commands.
type Runtime struct {
	Settings  *domain.AppSettings
	Assistant driving.AssistantService
	Indexer   driving.IndexService
	Sessions  *services.SessionStore

	ai *ai.InitResult
}

// Close releases sessions and AI clients.
func (r *Runtime) Close() {
	if r.Sessions != nil {
		r.Sessions.Close()
	}
	if r.ai != nil {
		r.ai.Close()
	}
}

// RuntimeFactory builds a Runtime from the current settings.
type RuntimeFactory func(ctx context.Context, settings driving.SettingsService, opts RuntimeOptions) (*Runtime, error)

// NewSettingsService creates the settings service over ~/.pda/config.toml.
func NewSettingsService() (*services.SettingsService, error) {
	store, err := file.NewConfigStore("")
	if err != nil {
		return nil, fmt.Errorf("open config store: %w", err)
	}
	return services.NewSettingsService(store, ai.NewConfigValidator()), nil
}

// NewRuntime wires adapters into services. AI clients are built once here
// and shared by every session.
func NewRuntime(ctx context.Context, settingsSvc driving.SettingsService, opts RuntimeOptions) (*Runtime, error) {
	if settingsSvc == nil {
		return nil, errors.New("settings service not configured")
	}
	settings, err := settingsSvc.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	if err := pdf.CheckAvailable(); err != nil {
		logger.Warn("PDF tools missing", "error", err, "hint", pdf.InstallInstructions())
	}

	prompts, err := file.NewPromptStore("")
	if err != nil {
		return nil, err
	}

	aiServices, err := ai.Initialise(ctx, settings, false)
	if err != nil {
		return nil, err
	}
	for _, w := range aiServices.Warnings {
		logger.Warn(w)
	}

	var store driven.IndexStore
	if opts.Ephemeral {
		store = memory.NewIndexStore()
	} else {
		sqliteStore, err := sqlite.NewIndexStore(settings.Storage.VectorDir)
		if err != nil {
			aiServices.Close()
			return nil, err
		}
		store = sqliteStore
	}

	vision := services.NewVisionExtractor(
		aiServices.LLMService,
		pdf.NewRenderer(),
		prompts,
		services.VisionConfigFromSettings(settings.Ingest),
	)
	extraction := services.NewExtractionService(pdf.NewExtractor(), vision)
	chunks := chunker.New(
		chunker.WithChunkSize(settings.Ingest.ChunkSize),
		chunker.WithOverlap(settings.Ingest.ChunkOverlap),
	)
	resolver := services.NewIndexResolver(store, aiServices.EmbeddingService)
	indexer := services.NewIndexService(extraction, chunks, resolver)
	sessions := services.NewSessionStore()

	assistant := services.NewAssistantService(
		indexer,
		sessions,
		aiServices.EmbeddingService,
		aiServices.LLMService,
		prompts,
		services.RetrievalConfigFromSettings(settings),
	)

	logger.Debug("runtime ready",
		"embedding", settings.Embedding.Provider,
		"llm", settings.LLM.Provider,
		"vector_dir", settings.Storage.VectorDir,
		"ephemeral", opts.Ephemeral)

	return &Runtime{
		Settings:  settings,
		Assistant: assistant,
		Indexer:   indexer,
		Sessions:  sessions,
		ai:        aiServices,
	}, nil
}

func loadRuntime(cmd *cobra.Command, opts RuntimeOptions) (*Runtime, error) {
	if runtimeFactory == nil {
		return nil, errors.New("runtime not configured")
	}
	svc, err := settings()
	if err != nil {
		return nil, err
	}
	return runtimeFactory(cmd.Context(), svc, opts)
}
