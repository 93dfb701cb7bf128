package generation

import (
	"context"
	"fmt"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/pitchperfect/pitch-backend/internal/entity"
	"go.uber.org/zap"
)

// MockConnector is the generation stand-in used when ENABLE_MOCKS is set.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) GenerateSuggestions(ctx context.Context, req *entity.GenerateSuggestionsRequest) (
	*entity.GenerateSuggestionsResponse, error,
) {
	ctxzap.Info(ctx, "[MOCK] generating suggestions", zap.String("type", req.Type))

	return &entity.GenerateSuggestionsResponse{
		Suggestions: []string{
			fmt.Sprintf("Mock %s suggestion about %q", req.Type, req.Idea),
			fmt.Sprintf("Another %s angle for %q", req.Type, req.Idea),
			fmt.Sprintf("A contrarian %s take on %q", req.Type, req.Idea),
		},
	}, nil
}

func (m *MockConnector) GenerateScript(ctx context.Context, req *entity.GenerateScriptRequest) (
	*entity.GenerateScriptResponse, error,
) {
	ctxzap.Info(ctx, "[MOCK] generating pitch script")

	// Produce a script whose word count lands on target so the timing
	// math behaves like the real service.
	sections := []string{"The Hook", "The Problem", "The Solution", "The Market", "The Ask"}
	perBlock := req.TargetWordCount / len(sections)
	if perBlock < 1 {
		perBlock = 1
	}

	blocks := make([]entity.GeneratedBlock, 0, len(sections))
	for i, title := range sections {
		words := make([]string, perBlock)
		for w := range words {
			words[w] = fmt.Sprintf("word%d", w)
		}
		blocks = append(blocks, entity.GeneratedBlock{
			Title:   title,
			Content: strings.Join(words, " "),
			IsDemo:  i == 2 && req.DemoStyleID != "",
		})
	}

	return &entity.GenerateScriptResponse{
		Title:        "Mock pitch: " + req.Idea,
		Blocks:       blocks,
		BulletPoints: []string{"Mock key point one", "Mock key point two"},
		HookStyle:    req.HookStyle,
	}, nil
}

func (m *MockConnector) NextCounterpartTurn(ctx context.Context, req *entity.CounterpartTurnRequest) (
	*entity.CounterpartTurnResponse, error,
) {
	ctxzap.Info(ctx, "[MOCK] fetching counterpart turn")

	if req.Opening {
		return &entity.CounterpartTurnResponse{
			Content: fmt.Sprintf("Tell me about your experience with the %s role.", req.Scenario.Role),
		}, nil
	}

	assessment := "Reasonable answer; could use a concrete example."
	return &entity.CounterpartTurnResponse{
		Content:         "Interesting. Can you walk me through a specific situation?",
		Assessment:      &assessment,
		IsFinalQuestion: len(req.History) >= 8,
	}, nil
}

func (m *MockConnector) AnalyzeDelivery(ctx context.Context, req *entity.DeliveryAnalysisRequest) (
	*entity.DeliveryAnalysisResponse, error,
) {
	ctxzap.Info(ctx, "[MOCK] analyzing delivery")

	return &entity.DeliveryAnalysisResponse{
		PaceWPM:         132,
		FillerBreakdown: map[string]int{"um": 3, "like": 2},
		ContentCoverage: 0.84,
	}, nil
}

func (m *MockConnector) ScoreSimulation(ctx context.Context, req *entity.ScoreSimulationRequest) (
	*entity.SimulationScore, error,
) {
	ctxzap.Info(ctx, "[MOCK] scoring simulation")

	return &entity.SimulationScore{
		Overall:      78,
		Strengths:    []string{"Clear structure", "Good energy"},
		Improvements: []string{"Quantify results", "Shorter answers"},
		Summary:      "Solid mock performance with room to tighten specifics.",
	}, nil
}
