package scraper

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
	config    config.ScraperConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.ScraperConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Scrape extracts project data from a public URL.
func (c *Connector) Scrape(ctx context.Context, url string) (*entity.ScrapeResponse, error) {
	ctxzap.Info(ctx, "scraping URL", zap.String("url", url))

	var resp entity.ScrapeResponse
	err := c.config.Retry.Do(ctx, func(ctx context.Context) error {
		return c.connector.DoRequest(ctx, http.MethodPost, c.config.ScrapeEndpoint, &entity.ScrapeRequest{URL: url}, &resp)
	})
	if err != nil {
		return nil, fmt.Errorf("scrape failed: %w", err)
	}

	if !resp.Success {
		return nil, fmt.Errorf("scrape service reported failure for %s", url)
	}

	ctxzap.Info(ctx, "URL scraped successfully", zap.String("title", resp.Data.Title))

	return &resp, nil
}
