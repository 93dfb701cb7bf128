package docparse

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/pitchperfect/pitch-backend/internal/config"
	"github.com/pitchperfect/pitch-backend/internal/entity"
	"github.com/pitchperfect/pitch-backend/internal/integration/common"
	pkghttp "github.com/pitchperfect/pitch-backend/pkg/http"
	"go.uber.org/zap"
)

type Connector struct {
	config    config.DocParseConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.DocParseConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Parse extracts text from an uploaded document.
func (c *Connector) Parse(ctx context.Context, fileData []byte, filename string) (*entity.DocParseResponse, error) {
	if len(fileData) == 0 {
		return nil, fmt.Errorf("empty file data provided")
	}

	ctxzap.Info(ctx, "parsing document",
		zap.String("filename", filename),
		zap.Int("size", len(fileData)),
	)

	prepareBody := func(writer *multipart.Writer) error {
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			return fmt.Errorf("create form file: %w", err)
		}

		if _, err := part.Write(fileData); err != nil {
			return fmt.Errorf("write file content: %w", err)
		}

		return nil
	}

	var resp entity.DocParseResponse
	err := c.config.Retry.Do(ctx, func(ctx context.Context) error {
		return c.connector.DoMultipartRequest(ctx, http.MethodPost, c.config.ParseEndpoint, prepareBody, &resp)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	if !resp.Success {
		return nil, fmt.Errorf("parse service reported failure for %s", filename)
	}

	ctxzap.Info(ctx, "document parsed successfully", zap.Int("text_length", len(resp.Data)))

	return &resp, nil
}
