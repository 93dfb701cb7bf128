package wizard

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/pitchperfect/pitch-backend/internal/config"
	"github.com/pitchperfect/pitch-backend/internal/entity"
	"github.com/pitchperfect/pitch-backend/internal/pkg/formatter"
	"go.uber.org/zap"
)

// Usecase drives the pitch creation wizard: a strict forward sequence
// of form steps, a one-shot generation phase and the resulting script
// artifact with named versions and export.
type Usecase struct {
	wizardRepo  WizardRepository
	pitchRepo   PitchRepository
	versionRepo VersionRepository
	generator   GenerationConnector
	tts         TTSConnector
	scraper     ScraperConnector
	docParser   DocParseConnector
	formatters  *formatter.Factory
	logger      *zap.Logger

	speakingRateWPM    int
	wordCountTolerance float64
}

func NewUsecase(
	wizardRepo WizardRepository,
	pitchRepo PitchRepository,
	versionRepo VersionRepository,
	generator GenerationConnector,
	tts TTSConnector,
	scraper ScraperConnector,
	docParser DocParseConnector,
	formatters *formatter.Factory,
	cfg *config.Config,
	logger *zap.Logger,
) *Usecase {
	return &Usecase{
		wizardRepo:         wizardRepo,
		pitchRepo:          pitchRepo,
		versionRepo:        versionRepo,
		generator:          generator,
		tts:                tts,
		scraper:            scraper,
		docParser:          docParser,
		formatters:         formatters,
		logger:             logger,
		speakingRateWPM:    cfg.SpeakingRateWPM,
		wordCountTolerance: cfg.WordCountTolerance,
	}
}

func (u *Usecase) Start(ctx context.Context, userID string) (*entity.WizardSession, error) {
	now := time.Now()
	session := &entity.WizardSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		Status:    entity.WizardStatusIdea,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := u.wizardRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "wizard session started", zap.String("session_id", session.ID))

	return session, nil
}

func (u *Usecase) Get(ctx context.Context, sessionID string) (*entity.WizardSession, error) {
	return u.wizardRepo.Get(ctx, sessionID)
}

// ConfirmStep merges the submitted fields into the answer set and
// advances to the next step. The submitted step must match the
// session's current status exactly.
func (u *Usecase) ConfirmStep(ctx context.Context, sessionID string, req *entity.ConfirmStepRequest) (*entity.WizardSession, error) {
	session, err := u.wizardRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Status == entity.WizardStatusDone {
		return nil, entity.ErrWizardCompleted
	}

	idx := entity.StepIndex(session.Status)
	if idx < 0 || session.Status == entity.WizardStatusReady {
		return nil, fmt.Errorf("%w: status %q", entity.ErrWrongWizardStep, string(session.Status))
	}
	if req.Step != session.Status {
		return nil, fmt.Errorf("%w: got %q, expected %q", entity.ErrWrongWizardStep, string(req.Step), string(session.Status))
	}

	mergeAnswers(&session.Answers, req.Fields)
	session.Status = entity.WizardStepOrder[idx+1]
	session.UpdatedAt = time.Now()

	if err := u.wizardRepo.Update(ctx, session); err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "wizard step confirmed",
		zap.String("session_id", session.ID),
		zap.String("step", string(req.Step)),
		zap.String("next", string(session.Status)),
	)

	return session, nil
}

// Back moves one step towards the start. Answers are kept so the user
// can review and resubmit without retyping.
func (u *Usecase) Back(ctx context.Context, sessionID string) (*entity.WizardSession, error) {
	session, err := u.wizardRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	idx := entity.StepIndex(session.Status)
	if idx < 0 {
		return nil, fmt.Errorf("%w: status %q", entity.ErrWrongWizardStep, string(session.Status))
	}
	if idx == 0 {
		return nil, entity.ErrNoPreviousStep
	}

	session.Status = entity.WizardStepOrder[idx-1]
	session.UpdatedAt = time.Now()

	if err := u.wizardRepo.Update(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// Generate starts script generation for a READY session. The
// READY -> GENERATING transition is guarded at the database so
// concurrent requests cannot start two generations; generation itself
// runs in the background and the client polls session status.
func (u *Usecase) Generate(ctx context.Context, sessionID string) (*entity.WizardSession, error) {
	session, err := u.wizardRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Status == entity.WizardStatusDone {
		return nil, entity.ErrWizardCompleted
	}

	ok, err := u.wizardRepo.UpdateStatusIf(ctx, sessionID, entity.WizardStatusReady, entity.WizardStatusGenerating)
	if err != nil {
		return nil, err
	}
	if !ok {
		current, err := u.wizardRepo.Get(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		// A generation is already running: report it instead of
		// starting a second one.
		if current.Status == entity.WizardStatusGenerating {
			return current, nil
		}
		return nil, fmt.Errorf("%w: status %q", entity.ErrWrongWizardStep, string(current.Status))
	}

	session.Status = entity.WizardStatusGenerating
	session.Error = nil

	// Detach from the request context: generation outlives the HTTP call.
	bgCtx := ctxzap.ToContext(context.WithoutCancel(ctx), u.logger)
	go u.runGeneration(bgCtx, session)

	return session, nil
}

func (u *Usecase) runGeneration(ctx context.Context, session *entity.WizardSession) {
	targetWords := session.Answers.DurationMinutes * u.speakingRateWPM

	resp, err := u.generator.GenerateScript(ctx, &entity.GenerateScriptRequest{
		Idea:               session.Answers.Idea,
		AudienceLabel:      session.Answers.AudienceLabel,
		DemoStyleID:        session.Answers.DemoStyleID,
		Problem:            session.Answers.Problem,
		PersonaDescription: session.Answers.PersonaDescription,
		PersonaKeywords:    session.Answers.PersonaKeywords,
		BusinessModels:     session.Answers.BusinessModels,
		DurationMinutes:    session.Answers.DurationMinutes,
		HookStyle:          session.Answers.HookStyle,
		Tier:               session.Answers.Tier,
		TargetWordCount:    targetWords,
	})
	if err != nil {
		u.failGeneration(ctx, session, err)
		return
	}

	pitch := u.assemblePitch(session, resp, targetWords)

	if targetWords > 0 {
		deviation := math.Abs(float64(pitch.ActualWordCount-targetWords)) / float64(targetWords)
		if deviation > u.wordCountTolerance {
			ctxzap.Warn(ctx, "generated word count off target",
				zap.String("session_id", session.ID),
				zap.Int("target_words", targetWords),
				zap.Int("actual_words", pitch.ActualWordCount),
				zap.Float64("deviation", deviation),
			)
		}
	}

	if err := u.pitchRepo.Create(ctx, pitch); err != nil {
		u.failGeneration(ctx, session, err)
		return
	}

	session.Status = entity.WizardStatusDone
	session.PitchID = &pitch.ID
	session.Error = nil
	session.UpdatedAt = time.Now()

	if err := u.wizardRepo.Update(ctx, session); err != nil {
		ctxzap.Error(ctx, "failed to finalize wizard session", zap.Error(err))
		return
	}

	ctxzap.Info(ctx, "pitch generated",
		zap.String("session_id", session.ID),
		zap.String("pitch_id", pitch.ID),
		zap.Int("word_count", pitch.ActualWordCount),
	)
}

// failGeneration returns the session to READY so the user can retry.
func (u *Usecase) failGeneration(ctx context.Context, session *entity.WizardSession, cause error) {
	ctxzap.Error(ctx, "script generation failed",
		zap.String("session_id", session.ID), zap.Error(cause))

	msg := entity.ErrGenerationFailed.Error()
	session.Status = entity.WizardStatusReady
	session.Error = &msg
	session.UpdatedAt = time.Now()

	if err := u.wizardRepo.Update(ctx, session); err != nil {
		ctxzap.Error(ctx, "failed to reset wizard session after error", zap.Error(err))
	}
}

// assemblePitch turns generated blocks into a timed script. Block
// boundaries are proportional to word counts so the ranges stay
// contiguous and cover exactly [0, duration].
func (u *Usecase) assemblePitch(session *entity.WizardSession, resp *entity.GenerateScriptResponse, targetWords int) *entity.Pitch {
	totalSeconds := float64(session.Answers.DurationMinutes * 60)

	totalWords := 0
	wordCounts := make([]int, len(resp.Blocks))
	for i, block := range resp.Blocks {
		wordCounts[i] = countWords(block.Content)
		totalWords += wordCounts[i]
	}

	blocks := make([]entity.SpeechBlock, len(resp.Blocks))
	var texts []string
	cursor := 0.0
	for i, block := range resp.Blocks {
		share := 0.0
		if totalWords > 0 {
			share = float64(wordCounts[i]) / float64(totalWords)
		}

		end := cursor + share*totalSeconds
		if i == len(resp.Blocks)-1 {
			end = totalSeconds
		}

		blocks[i] = entity.SpeechBlock{
			StartSeconds: cursor,
			EndSeconds:   end,
			Title:        block.Title,
			Content:      block.Content,
			IsDemo:       block.IsDemo,
			VisualCue:    block.VisualCue,
		}
		cursor = end
		texts = append(texts, block.Content)
	}

	return &entity.Pitch{
		ID:              uuid.NewString(),
		UserID:          session.UserID,
		WizardSessionID: session.ID,
		Title:           resp.Title,
		HookStyle:       resp.HookStyle,
		DurationMinutes: session.Answers.DurationMinutes,
		TargetWordCount: targetWords,
		ActualWordCount: totalWords,
		Blocks:          blocks,
		BulletPoints:    resp.BulletPoints,
		FullText:        strings.Join(texts, "\n\n"),
		CreatedAt:       time.Now(),
	}
}

func (u *Usecase) GetPitch(ctx context.Context, pitchID string) (*entity.Pitch, error) {
	return u.pitchRepo.Get(ctx, pitchID)
}

func (u *Usecase) SaveVersion(ctx context.Context, pitchID, name string) (*entity.ScriptVersion, error) {
	pitch, err := u.pitchRepo.Get(ctx, pitchID)
	if err != nil {
		return nil, err
	}

	version := &entity.ScriptVersion{
		ID:        uuid.NewString(),
		PitchID:   pitch.ID,
		Name:      name,
		Blocks:    pitch.Blocks,
		WordCount: pitch.ActualWordCount,
		CreatedAt: time.Now(),
	}

	if err := u.versionRepo.Create(ctx, version); err != nil {
		return nil, err
	}

	return version, nil
}

func (u *Usecase) ListVersions(ctx context.Context, pitchID string) ([]*entity.ScriptVersion, error) {
	if _, err := u.pitchRepo.Get(ctx, pitchID); err != nil {
		return nil, err
	}

	return u.versionRepo.ListByPitch(ctx, pitchID)
}

// RestoreVersion replaces the pitch's current blocks with a saved
// snapshot.
func (u *Usecase) RestoreVersion(ctx context.Context, pitchID, versionID string) (*entity.Pitch, error) {
	pitch, err := u.pitchRepo.Get(ctx, pitchID)
	if err != nil {
		return nil, err
	}

	version, err := u.versionRepo.Get(ctx, versionID)
	if err != nil {
		return nil, err
	}
	if version.PitchID != pitch.ID {
		return nil, entity.ErrVersionNotFound
	}

	var texts []string
	for _, block := range version.Blocks {
		texts = append(texts, block.Content)
	}

	pitch.Blocks = version.Blocks
	pitch.FullText = strings.Join(texts, "\n\n")
	pitch.ActualWordCount = version.WordCount

	if err := u.pitchRepo.UpdateScript(ctx, pitch); err != nil {
		return nil, err
	}

	return pitch, nil
}

// Export renders the pitch in the requested download format.
func (u *Usecase) Export(ctx context.Context, pitchID string, format entity.ResultFormat) ([]byte, string, string, error) {
	pitch, err := u.pitchRepo.Get(ctx, pitchID)
	if err != nil {
		return nil, "", "", err
	}

	f, err := u.formatters.Create(format)
	if err != nil {
		return nil, "", "", fmt.Errorf("%w: format %q", entity.ErrInvalidParameter, string(format))
	}

	data, err := f.Format(pitch)
	if err != nil {
		return nil, "", "", fmt.Errorf("format pitch: %w", err)
	}

	filename := fmt.Sprintf("pitch-%s%s", pitch.ID, f.FileExtension())

	return data, f.ContentType(), filename, nil
}

// AudioPreview synthesizes the full script so the user can hear the
// expected pacing.
func (u *Usecase) AudioPreview(ctx context.Context, pitchID, voiceID string) ([]byte, string, error) {
	pitch, err := u.pitchRepo.Get(ctx, pitchID)
	if err != nil {
		return nil, "", err
	}

	return u.tts.Synthesize(ctx, &entity.TTSRequest{
		Text:    pitch.FullText,
		VoiceID: voiceID,
	})
}

// PrefillFromURL scrapes a project page and seeds the idea step.
func (u *Usecase) PrefillFromURL(ctx context.Context, sessionID, url string) (*entity.WizardSession, error) {
	session, err := u.wizardRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Status != entity.WizardStatusIdea {
		return nil, fmt.Errorf("%w: status %q", entity.ErrWrongWizardStep, string(session.Status))
	}

	resp, err := u.scraper.Scrape(ctx, url)
	if err != nil {
		return nil, err
	}

	session.Answers.Idea = buildIdeaFromScrape(resp.Data)
	session.Answers.PersonaKeywords = resp.Data.Keywords
	session.UpdatedAt = time.Now()

	if err := u.wizardRepo.Update(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// PrefillFromDocument extracts text from an uploaded deck or brief and
// seeds the idea step.
func (u *Usecase) PrefillFromDocument(ctx context.Context, sessionID string, fileData []byte, filename string) (*entity.WizardSession, error) {
	session, err := u.wizardRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Status != entity.WizardStatusIdea {
		return nil, fmt.Errorf("%w: status %q", entity.ErrWrongWizardStep, string(session.Status))
	}

	resp, err := u.docParser.Parse(ctx, fileData, filename)
	if err != nil {
		return nil, err
	}

	session.Answers.Idea = resp.Data
	session.UpdatedAt = time.Now()

	if err := u.wizardRepo.Update(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// mergeAnswers copies only the submitted fields, so confirming a step
// never wipes answers given on other steps.
func mergeAnswers(dst *entity.WizardAnswers, src entity.WizardAnswers) {
	if src.Idea != "" {
		dst.Idea = src.Idea
	}
	if src.AudienceID != "" {
		dst.AudienceID = src.AudienceID
	}
	if src.AudienceLabel != "" {
		dst.AudienceLabel = src.AudienceLabel
	}
	if src.DemoStyleID != "" {
		dst.DemoStyleID = src.DemoStyleID
	}
	if src.Problem != "" {
		dst.Problem = src.Problem
	}
	if src.PersonaDescription != "" {
		dst.PersonaDescription = src.PersonaDescription
	}
	if len(src.PersonaKeywords) > 0 {
		dst.PersonaKeywords = src.PersonaKeywords
	}
	if len(src.BusinessModels) > 0 {
		dst.BusinessModels = src.BusinessModels
	}
	if src.DurationMinutes > 0 {
		dst.DurationMinutes = src.DurationMinutes
	}
	if src.HookStyle != "" {
		dst.HookStyle = src.HookStyle
	}
	if src.Tier != "" {
		dst.Tier = src.Tier
	}
}

func buildIdeaFromScrape(data entity.ScrapedProjectData) string {
	parts := []string{}
	if data.Title != "" {
		parts = append(parts, data.Title)
	}
	if data.Description != "" {
		parts = append(parts, data.Description)
	}
	if len(data.Features) > 0 {
		parts = append(parts, "Key features: "+strings.Join(data.Features, ", "))
	}

	return strings.Join(parts, ". ")
}

func countWords(text string) int {
	return len(strings.Fields(text))
}
