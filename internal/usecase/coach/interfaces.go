package coach

import (
	"context"

	"github.com/pitchperfect/pitch-backend/internal/entity"
)

type ASRConnector interface {
	TranscribeBytes(ctx context.Context, audio []byte, filename string) (*entity.ASRTranscribeResponse, error)
}

type GenerationConnector interface {
	AnalyzeDelivery(ctx context.Context, req *entity.DeliveryAnalysisRequest) (*entity.DeliveryAnalysisResponse, error)
}

type AnalysisRepository interface {
	Create(ctx context.Context, userID string, results *entity.AnalysisResults) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*entity.AnalysisResults, error)
}
