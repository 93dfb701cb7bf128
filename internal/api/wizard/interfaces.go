package wizard

import (
	"context"

	"github.com/pitchperfect/pitch-backend/internal/entity"
)

type WizardUsecase interface {
	Start(ctx context.Context, userID string) (*entity.WizardSession, error)
	Get(ctx context.Context, sessionID string) (*entity.WizardSession, error)
	ConfirmStep(ctx context.Context, sessionID string, req *entity.ConfirmStepRequest) (*entity.WizardSession, error)
	Back(ctx context.Context, sessionID string) (*entity.WizardSession, error)
	Generate(ctx context.Context, sessionID string) (*entity.WizardSession, error)
	PrefillFromURL(ctx context.Context, sessionID, url string) (*entity.WizardSession, error)
	PrefillFromDocument(ctx context.Context, sessionID string, fileData []byte, filename string) (*entity.WizardSession, error)
	GetPitch(ctx context.Context, pitchID string) (*entity.Pitch, error)
	SaveVersion(ctx context.Context, pitchID, name string) (*entity.ScriptVersion, error)
	ListVersions(ctx context.Context, pitchID string) ([]*entity.ScriptVersion, error)
	RestoreVersion(ctx context.Context, pitchID, versionID string) (*entity.Pitch, error)
	Export(ctx context.Context, pitchID string, format entity.ResultFormat) ([]byte, string, string, error)
	AudioPreview(ctx context.Context, pitchID, voiceID string) ([]byte, string, error)
}
