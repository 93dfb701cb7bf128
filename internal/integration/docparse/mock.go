package docparse

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

func (m *MockConnector) Parse(ctx context.Context, fileData []byte, filename string) (*entity.DocParseResponse, error) {
	ctxzap.Info(ctx, "[MOCK] parsing document", zap.String("filename", filename))

	return &entity.DocParseResponse{
		Success: true,
		Data:    "Mock extracted text: our product automates pitch preparation for busy founders.",
	}, nil
}
