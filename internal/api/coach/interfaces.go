package coach

import (
	"context"

	"github.com/pitchperfect/pitch-backend/internal/entity"
)

type CoachUsecase interface {
	Start(ctx context.Context, req *entity.StartCoachRequest) (*entity.CoachSession, error)
	Get(ctx context.Context, sessionID string) (*entity.CoachSession, error)
	StartRecording(ctx context.Context, sessionID string) (*entity.CoachSession, error)
	AppendFrame(ctx context.Context, sessionID string, req *entity.AppendFrameRequest) error
	Tick(ctx context.Context, sessionID string) error
	StopRecording(ctx context.Context, sessionID string, audio, video []byte, durationSeconds int) (*entity.CoachSession, error)
	Reset(ctx context.Context, sessionID string) (*entity.CoachSession, error)
	History(ctx context.Context, userID string) ([]*entity.AnalysisResults, error)
}
