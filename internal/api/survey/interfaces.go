package survey

import (
	"context"

	"github.com/pitchperfect/pitch-backend/internal/entity"
)

type SurveyUsecase interface {
	GetSurvey(ctx context.Context, surveyID string) (*entity.Survey, error)
	Progress(ctx context.Context, userID, surveyID string) (*entity.SurveyProgressDTO, error)
	Answer(ctx context.Context, surveyID string, req *entity.SurveyAnswerRequest) (*entity.SurveyProgressDTO, error)
	Submit(ctx context.Context, userID, surveyID string) (*entity.SurveyResponse, error)
	SessionEvent(ctx context.Context, req *entity.SessionEventRequest) (*entity.SurveyOfferDTO, error)
}
