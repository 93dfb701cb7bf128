package scraper

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

func (m *MockConnector) Scrape(ctx context.Context, url string) (*entity.ScrapeResponse, error) {
	ctxzap.Info(ctx, "[MOCK] scraping URL", zap.String("url", url))

	return &entity.ScrapeResponse{
		Success: true,
		Data: entity.ScrapedProjectData{
			Title:       "Mock Project",
			Description: "A mock project description scraped from " + url,
			Keywords:    []string{"saas", "automation"},
			Features:    []string{"Dashboard", "Integrations", "Reports"},
		},
	}, nil
}
