package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/pitchperfect/pitch-backend/internal/api"
	coachapi "github.com/pitchperfect/pitch-backend/internal/api/coach"
	prefsapi "github.com/pitchperfect/pitch-backend/internal/api/prefs"
	simulationapi "github.com/pitchperfect/pitch-backend/internal/api/simulation"
	suggestionapi "github.com/pitchperfect/pitch-backend/internal/api/suggestion"
	surveyapi "github.com/pitchperfect/pitch-backend/internal/api/survey"
	wizardapi "github.com/pitchperfect/pitch-backend/internal/api/wizard"
	"github.com/pitchperfect/pitch-backend/internal/config"
	"github.com/pitchperfect/pitch-backend/internal/integration/asr"
	"github.com/pitchperfect/pitch-backend/internal/integration/docparse"
	"github.com/pitchperfect/pitch-backend/internal/integration/generation"
	"github.com/pitchperfect/pitch-backend/internal/integration/scraper"
	"github.com/pitchperfect/pitch-backend/internal/integration/tts"
	"github.com/pitchperfect/pitch-backend/internal/pkg/formatter"
	"github.com/pitchperfect/pitch-backend/internal/pkg/validator"
	"github.com/pitchperfect/pitch-backend/internal/prefs"
	"github.com/pitchperfect/pitch-backend/internal/repository"
	coachuc "github.com/pitchperfect/pitch-backend/internal/usecase/coach"
	simulationuc "github.com/pitchperfect/pitch-backend/internal/usecase/simulation"
	suggestionuc "github.com/pitchperfect/pitch-backend/internal/usecase/suggestion"
	surveyuc "github.com/pitchperfect/pitch-backend/internal/usecase/survey"
	wizarduc "github.com/pitchperfect/pitch-backend/internal/usecase/wizard"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Setup database connection
	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	// Run database migrations
	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize repositories
	wizardRepo := repository.NewWizardRepository(db)
	pitchRepo := repository.NewPitchRepository(db)
	versionRepo := repository.NewVersionRepository(db)
	analysisRepo := repository.NewAnalysisRepository(db)
	simulationRepo := repository.NewSimulationRepository(db)
	surveyRepo := repository.NewSurveyRepository(db)
	prefsRepo := repository.NewPrefsRepository(db)
	logger.Info("Repositories initialized")

	// Initialize external service connectors (with mock support)
	var generationConnector interface {
		wizarduc.GenerationConnector
		coachuc.GenerationConnector
		simulationuc.GenerationConnector
		suggestionuc.GenerationConnector
	}
	var asrConnector coachuc.ASRConnector
	var ttsConnector wizarduc.TTSConnector
	var scraperConnector wizarduc.ScraperConnector
	var docParseConnector wizarduc.DocParseConnector

	if cfg.EnableMocks {
		logger.Info("Using mock connectors for external services")
		generationConnector = generation.NewMockConnector(logger)
		asrConnector = asr.NewMockConnector(logger)
		ttsConnector = tts.NewMockConnector(logger)
		scraperConnector = scraper.NewMockConnector(logger)
		docParseConnector = docparse.NewMockConnector(logger)
	} else {
		logger.Info("Using real connectors for external services")
		generationConnector = generation.NewConnector(cfg.GenerationConnectorCfg, logger)
		asrConnector = asr.NewConnector(cfg.ASRConnectorCfg, logger)
		ttsConnector = tts.NewConnector(cfg.TTSConnectorCfg, logger)
		scraperConnector = scraper.NewConnector(cfg.ScraperConnectorCfg, logger)
		docParseConnector = docparse.NewConnector(cfg.DocParseConnectorCfg, logger)
	}

	// Initialize validators
	requestValidator := validator.NewValidator(cfg.FileUploadCfg)
	logger.Info("Validators initialized")

	// Initialize preference store
	prefsStore := prefs.NewStore(prefsRepo)

	// Initialize use cases
	wizardUC := wizarduc.NewUsecase(
		wizardRepo,
		pitchRepo,
		versionRepo,
		generationConnector,
		ttsConnector,
		scraperConnector,
		docParseConnector,
		formatter.NewFactory(),
		cfg,
		logger,
	)

	coachUC := coachuc.NewUsecase(
		asrConnector,
		generationConnector,
		analysisRepo,
		logger,
	)

	simulationUC := simulationuc.NewUsecase(
		simulationRepo,
		generationConnector,
		asrConnector,
		logger,
	)

	suggestionUC := suggestionuc.NewUsecase(
		generationConnector,
		cfg,
		logger,
	)

	surveyUC := surveyuc.NewUsecase(
		surveyRepo,
		prefsStore,
		cfg,
		logger,
	)
	logger.Info("Use cases initialized")

	// Setup API handlers
	handlers := api.Handlers{
		Wizard:     wizardapi.NewHandler(wizardUC, requestValidator),
		Coach:      coachapi.NewHandler(coachUC, requestValidator),
		Simulation: simulationapi.NewHandler(simulationUC, requestValidator),
		Suggestion: suggestionapi.NewHandler(suggestionUC, requestValidator),
		Survey:     surveyapi.NewHandler(surveyUC),
		Prefs:      prefsapi.NewHandler(prefsStore),
	}
	logger.Info("API handlers initialized")

	// Setup router
	router := api.SetupRouter(handlers, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		db:     db,
		logger: logger,
	}, nil
}
