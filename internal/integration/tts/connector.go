package tts

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
	config    config.TTSConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.TTSConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Synthesize converts text to speech and returns the raw audio bytes
// with their content type.
func (c *Connector) Synthesize(ctx context.Context, req *entity.TTSRequest) ([]byte, string, error) {
	if req.Text == "" {
		return nil, "", fmt.Errorf("empty text provided")
	}

	ctxzap.Info(ctx, "synthesizing speech via TTS service",
		zap.String("voice_id", req.VoiceID),
		zap.Int("text_length", len(req.Text)),
	)

	var (
		audio       []byte
		contentType string
	)
	err := c.config.Retry.Do(ctx, func(ctx context.Context) error {
		var reqErr error
		audio, contentType, reqErr = c.connector.DoBinaryRequest(ctx, http.MethodPost, c.config.SynthesizeEndpoint, req)
		return reqErr
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to synthesize speech: %w", err)
	}

	if len(audio) == 0 {
		return nil, "", fmt.Errorf("invalid TTS response: empty audio")
	}

	ctxzap.Info(ctx, "speech synthesized successfully", zap.Int("audio_bytes", len(audio)))

	return audio, contentType, nil
}
