package wizard

import (
	"context"

	"github.com/pitchperfect/pitch-backend/internal/entity"
)

type WizardRepository interface {
	Create(ctx context.Context, session *entity.WizardSession) error
	Get(ctx context.Context, sessionID string) (*entity.WizardSession, error)
	Update(ctx context.Context, session *entity.WizardSession) error
	UpdateStatusIf(ctx context.Context, sessionID string, from, to entity.WizardStatus) (bool, error)
}

type PitchRepository interface {
	Create(ctx context.Context, pitch *entity.Pitch) error
	Get(ctx context.Context, pitchID string) (*entity.Pitch, error)
	UpdateScript(ctx context.Context, pitch *entity.Pitch) error
}

type VersionRepository interface {
	Create(ctx context.Context, version *entity.ScriptVersion) error
	Get(ctx context.Context, versionID string) (*entity.ScriptVersion, error)
	ListByPitch(ctx context.Context, pitchID string) ([]*entity.ScriptVersion, error)
}

type GenerationConnector interface {
	GenerateScript(ctx context.Context, req *entity.GenerateScriptRequest) (*entity.GenerateScriptResponse, error)
}

type TTSConnector interface {
	Synthesize(ctx context.Context, req *entity.TTSRequest) ([]byte, string, error)
}

type ScraperConnector interface {
	Scrape(ctx context.Context, url string) (*entity.ScrapeResponse, error)
}

type DocParseConnector interface {
	Parse(ctx context.Context, fileData []byte, filename string) (*entity.DocParseResponse, error)
}
