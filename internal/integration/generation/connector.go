package generation

import (
	"context"
	"fmt"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/pitchperfect/pitch-backend/internal/config"
	"github.com/pitchperfect/pitch-backend/internal/entity"
	"github.com/pitchperfect/pitch-backend/internal/integration/common"
	pkghttp "github.com/pitchperfect/pitch-backend/pkg/http"
	"go.uber.org/zap"
)

type Connector struct {
	config    config.GenerationConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.GenerationConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// GenerateSuggestions fetches a batch of AI suggestions for one field type
func (c *Connector) GenerateSuggestions(ctx context.Context, req *entity.GenerateSuggestionsRequest) (
	*entity.GenerateSuggestionsResponse, error,
) {
	ctxzap.Info(ctx, "generating suggestions", zap.String("type", req.Type))

	var resp entity.GenerateSuggestionsResponse
	err := c.config.Retry.Do(ctx, func(ctx context.Context) error {
		return c.connector.DoRequest(ctx, http.MethodPost, c.config.SuggestionsEndpoint, req, &resp)
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Suggestions) == 0 {
		return nil, fmt.Errorf("invalid suggestions response: empty list")
	}

	ctxzap.Info(ctx, "suggestions generated", zap.Int("count", len(resp.Suggestions)))

	return &resp, nil
}

// GenerateScript produces the full pitch script from the wizard answers
func (c *Connector) GenerateScript(ctx context.Context, req *entity.GenerateScriptRequest) (
	*entity.GenerateScriptResponse, error,
) {
	ctxzap.Info(ctx, "generating pitch script",
		zap.Int("duration_minutes", req.DurationMinutes),
		zap.String("hook_style", string(req.HookStyle)),
	)

	var resp entity.GenerateScriptResponse
	err := c.config.Retry.Do(ctx, func(ctx context.Context) error {
		return c.connector.DoRequest(ctx, http.MethodPost, c.config.ScriptEndpoint, req, &resp)
	})
	if err != nil {
		return nil, fmt.Errorf("generate script failed: %w", err)
	}

	if len(resp.Blocks) == 0 {
		return nil, fmt.Errorf("invalid script response: no blocks")
	}

	ctxzap.Info(ctx, "script generated", zap.Int("block_count", len(resp.Blocks)))

	return &resp, nil
}

// NextCounterpartTurn fetches the counterpart's reply for a simulation
func (c *Connector) NextCounterpartTurn(ctx context.Context, req *entity.CounterpartTurnRequest) (
	*entity.CounterpartTurnResponse, error,
) {
	ctxzap.Info(ctx, "fetching counterpart turn", zap.Int("history_len", len(req.History)))

	var resp entity.CounterpartTurnResponse
	err := c.config.Retry.Do(ctx, func(ctx context.Context) error {
		return c.connector.DoRequest(ctx, http.MethodPost, c.config.CounterpartEndpoint, req, &resp)
	})
	if err != nil {
		return nil, fmt.Errorf("counterpart turn failed: %w", err)
	}

	if resp.Content == "" {
		return nil, fmt.Errorf("invalid counterpart response: empty content")
	}

	return &resp, nil
}

// AnalyzeDelivery scores a transcript against the original script
func (c *Connector) AnalyzeDelivery(ctx context.Context, req *entity.DeliveryAnalysisRequest) (
	*entity.DeliveryAnalysisResponse, error,
) {
	ctxzap.Info(ctx, "analyzing delivery", zap.Int("transcript_length", len(req.Transcript)))

	var resp entity.DeliveryAnalysisResponse
	err := c.config.Retry.Do(ctx, func(ctx context.Context) error {
		return c.connector.DoRequest(ctx, http.MethodPost, c.config.AnalysisEndpoint, req, &resp)
	})
	if err != nil {
		return nil, fmt.Errorf("delivery analysis failed: %w", err)
	}

	return &resp, nil
}

// ScoreSimulation computes the end-of-session simulation score
func (c *Connector) ScoreSimulation(ctx context.Context, req *entity.ScoreSimulationRequest) (
	*entity.SimulationScore, error,
) {
	ctxzap.Info(ctx, "scoring simulation", zap.Int("history_len", len(req.History)))

	var resp entity.ScoreSimulationResponse
	err := c.config.Retry.Do(ctx, func(ctx context.Context) error {
		return c.connector.DoRequest(ctx, http.MethodPost, c.config.ScoreEndpoint, req, &resp)
	})
	if err != nil {
		return nil, fmt.Errorf("score simulation failed: %w", err)
	}

	if resp.Score.Summary == "" {
		return nil, fmt.Errorf("invalid score response: empty summary")
	}

	return &resp.Score, nil
}
