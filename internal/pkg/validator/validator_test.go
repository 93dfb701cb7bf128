package validator

import (
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/pitchperfect/pitch-backend/internal/config"
	"github.com/pitchperfect/pitch-backend/internal/entity"
	"github.com/stretchr/testify/require"
)

func newTestValidator() *Validator {
	return NewValidator(config.FileUploadConfig{
		MaxDocumentSize:  1024,
		MaxAudioFileSize: 2048,
		MaxVideoFileSize: 4096,
		MaxUploadSize:    8192,
	})
}

func fileHeader(name string, size int64, contentType string) *multipart.FileHeader {
	header := textproto.MIMEHeader{}
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	return &multipart.FileHeader{
		Filename: name,
		Size:     size,
		Header:   header,
	}
}

func TestValidateConfirmStep(t *testing.T) {
	v := newTestValidator()

	require.NoError(t, v.ValidateConfirmStep(&entity.ConfirmStepRequest{
		Step:   entity.WizardStatusIdea,
		Fields: entity.WizardAnswers{Idea: "meal planning"},
	}))

	err := v.ValidateConfirmStep(&entity.ConfirmStepRequest{
		Step: entity.WizardStatusIdea,
	})
	require.ErrorIs(t, err, entity.ErrMissingField)

	// Demo style is optional.
	require.NoError(t, v.ValidateConfirmStep(&entity.ConfirmStepRequest{
		Step: entity.WizardStatusDemo,
	}))

	err = v.ValidateConfirmStep(&entity.ConfirmStepRequest{
		Step: entity.WizardStatusBusinessModel,
		Fields: entity.WizardAnswers{
			BusinessModels:  []string{"subscription"},
			DurationMinutes: 45,
			HookStyle:       entity.HookStyleStory,
		},
	})
	require.ErrorIs(t, err, entity.ErrInvalidParameter)

	err = v.ValidateConfirmStep(&entity.ConfirmStepRequest{
		Step: entity.WizardStatusGenerating,
	})
	require.ErrorIs(t, err, entity.ErrInvalidParameter)
}

func TestValidateStartSimulation(t *testing.T) {
	v := newTestValidator()

	require.NoError(t, v.ValidateStartSimulation(&entity.StartSimulationRequest{
		UserID: "user-1",
		Scenario: entity.SimulationScenario{
			Kind: entity.SimulationKindInterview,
			Role: "Backend engineer",
		},
	}))

	err := v.ValidateStartSimulation(&entity.StartSimulationRequest{
		UserID:   "user-1",
		Scenario: entity.SimulationScenario{Kind: "DEBATE", Role: "x"},
	})
	require.ErrorIs(t, err, entity.ErrInvalidParameter)
}

func TestMaxUploadSize(t *testing.T) {
	v := newTestValidator()

	require.Equal(t, int64(8192), v.MaxUploadSize())
}

func TestValidateScrapeURL(t *testing.T) {
	v := newTestValidator()

	require.NoError(t, v.ValidateScrapeURL("https://example.com/project"))
	require.ErrorIs(t, v.ValidateScrapeURL(""), entity.ErrMissingField)
	require.ErrorIs(t, v.ValidateScrapeURL("ftp://example.com"), entity.ErrInvalidParameter)
	require.ErrorIs(t, v.ValidateScrapeURL("not a url"), entity.ErrInvalidParameter)
}

func TestValidateAudioFile(t *testing.T) {
	v := newTestValidator()

	require.NoError(t, v.ValidateAudioFile(fileHeader("take.webm", 100, "audio/webm")))
	require.ErrorIs(t, v.ValidateAudioFile(nil), entity.ErrMissingField)
	require.ErrorIs(t, v.ValidateAudioFile(fileHeader("take.flac", 100, "")), entity.ErrInvalidExtension)
	require.ErrorIs(t, v.ValidateAudioFile(fileHeader("take.mp3", 5000, "audio/mpeg")), entity.ErrFileTooLarge)
	require.ErrorIs(t, v.ValidateAudioFile(fileHeader("take.mp3", 100, "video/mp4")), entity.ErrInvalidExtension)
}
