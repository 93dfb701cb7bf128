package tts

import (
	"bytes"
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

func (m *MockConnector) Synthesize(ctx context.Context, req *entity.TTSRequest) ([]byte, string, error) {
	ctxzap.Info(ctx, "[MOCK] synthesizing speech", zap.Int("text_length", len(req.Text)))

	// A WAV header with no samples is enough for clients that only
	// check playability.
	header := []byte("RIFF\x24\x00\x00\x00WAVEfmt ")
	return bytes.Repeat(header, 4), "audio/wav", nil
}
