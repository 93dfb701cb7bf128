package asr

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/pitchperfect/pitch-backend/internal/entity"
	"go.uber.org/zap"
)

type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) TranscribeBytes(ctx context.Context, audioData []byte, filename string) (*entity.ASRTranscribeResponse, error) {
	ctxzap.Info(ctx, "[MOCK] transcribing audio", zap.Int("size", len(audioData)))

	lang := "en"
	return &entity.ASRTranscribeResponse{
		Text:         "So, um, our product helps teams ship faster by automating the boring parts of their workflow.",
		LanguageCode: &lang,
	}, nil
}
