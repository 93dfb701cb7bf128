package coach

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	gocache "github.com/patrickmn/go-cache"
	"github.com/pitchperfect/pitch-backend/internal/entity"
	"go.uber.org/zap"
)

const (
	sessionTTL     = 2 * time.Hour
	historyDefault = 20
)

// Usecase runs the AI Coach recording flow. Sessions are ephemeral and
// live in an in-memory store; only the final analysis is persisted.
type Usecase struct {
	mu           sync.Mutex
	sessions     *gocache.Cache
	asr          ASRConnector
	generator    GenerationConnector
	analysisRepo AnalysisRepository
	logger       *zap.Logger
}

func NewUsecase(
	asr ASRConnector,
	generator GenerationConnector,
	analysisRepo AnalysisRepository,
	logger *zap.Logger,
) *Usecase {
	return &Usecase{
		sessions:     gocache.New(sessionTTL, 30*time.Minute),
		asr:          asr,
		generator:    generator,
		analysisRepo: analysisRepo,
		logger:       logger,
	}
}

func (u *Usecase) Start(ctx context.Context, req *entity.StartCoachRequest) (*entity.CoachSession, error) {
	now := time.Now()
	session := &entity.CoachSession{
		ID:           uuid.NewString(),
		UserID:       req.UserID,
		Status:       entity.CoachStatusSetup,
		PromptMode:   req.PromptMode,
		Language:     req.Language,
		ScriptBlocks: req.ScriptBlocks,
		BulletPoints: req.BulletPoints,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	u.sessions.Set(session.ID, session, sessionTTL)

	ctxzap.Info(ctx, "coach session started",
		zap.String("session_id", session.ID),
		zap.String("prompt_mode", string(session.PromptMode)),
	)

	return session, nil
}

// Get returns a snapshot of the session, safe to read while the
// pipeline goroutine mutates the stored one. The recording is copied
// frame slice included, so the caller never aliases live state.
func (u *Usecase) Get(ctx context.Context, sessionID string) (*entity.CoachSession, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	session, err := u.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	snapshot := *session
	if session.Recording != nil {
		recording := *session.Recording
		recording.Frames = append([]entity.FrameSample(nil), session.Recording.Frames...)
		snapshot.Recording = &recording
	}

	return &snapshot, nil
}

// StartRecording opens the capture window. Only one recording can run
// per session and only from the SETUP phase.
func (u *Usecase) StartRecording(ctx context.Context, sessionID string) (*entity.CoachSession, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	session, err := u.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	if session.Status == entity.CoachStatusRecording {
		return nil, entity.ErrRecordingActive
	}
	if session.Status != entity.CoachStatusSetup {
		return nil, entity.ErrWrongCoachStatus
	}

	session.Status = entity.CoachStatusRecording
	session.Recording = &entity.RecordingSession{}
	session.UpdatedAt = time.Now()

	ctxzap.Info(ctx, "recording started", zap.String("session_id", sessionID))

	return session, nil
}

// AppendFrame records one sampled analysis frame. Frames arriving
// outside an active recording window are rejected.
func (u *Usecase) AppendFrame(ctx context.Context, sessionID string, req *entity.AppendFrameRequest) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	session, err := u.lookup(sessionID)
	if err != nil {
		return err
	}

	if session.Status != entity.CoachStatusRecording || session.Recording == nil {
		return entity.ErrNotRecording
	}

	session.Recording.Frames = append(session.Recording.Frames, entity.FrameSample{
		OffsetMs:  req.OffsetMs,
		Stability: req.Stability,
		Posture:   req.Posture,
		Smile:     req.Smile,
	})

	return nil
}

// Tick advances the recording duration counter by one second. The
// client sends one tick per second while the capture runs, so duration
// is known even if the final upload omits it.
func (u *Usecase) Tick(ctx context.Context, sessionID string) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	session, err := u.lookup(sessionID)
	if err != nil {
		return err
	}

	if session.Status != entity.CoachStatusRecording || session.Recording == nil {
		return entity.ErrNotRecording
	}

	session.Recording.DurationSeconds++

	return nil
}

// StopRecording seals the capture and starts the processing pipeline.
// The session moves to PROCESSING immediately; the client polls for
// progress.
func (u *Usecase) StopRecording(ctx context.Context, sessionID string, audio, video []byte, durationSeconds int) (*entity.CoachSession, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	session, err := u.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	if session.Status != entity.CoachStatusRecording || session.Recording == nil {
		return nil, entity.ErrNotRecording
	}

	now := time.Now()
	session.Recording.Audio = audio
	session.Recording.Video = video
	if durationSeconds > 0 {
		session.Recording.DurationSeconds = durationSeconds
	}
	session.Recording.SealedAt = &now

	session.Status = entity.CoachStatusProcessing
	session.Processing = entity.ProcessingProgress{Step: entity.StepTranscribing, Progress: 0}
	session.Error = nil
	session.UpdatedAt = now

	bgCtx := ctxzap.ToContext(context.WithoutCancel(ctx), u.logger)
	go u.runPipeline(bgCtx, session)

	ctxzap.Info(ctx, "recording sealed",
		zap.String("session_id", sessionID),
		zap.Int("duration_seconds", session.Recording.DurationSeconds),
		zap.Int("frame_count", len(session.Recording.Frames)),
	)

	return session, nil
}

func (u *Usecase) runPipeline(ctx context.Context, session *entity.CoachSession) {
	u.mu.Lock()
	audio := session.Recording.Audio
	duration := session.Recording.DurationSeconds
	frames := append([]entity.FrameSample(nil), session.Recording.Frames...)
	language := session.Language
	scriptText := scriptText(session.ScriptBlocks)
	u.mu.Unlock()

	transcript, err := u.asr.TranscribeBytes(ctx, audio, "recording.webm")
	if err != nil {
		u.failPipeline(ctx, session, err)
		return
	}

	u.setProgress(session, entity.StepAnalyzing, 40)

	analysis, err := u.generator.AnalyzeDelivery(ctx, &entity.DeliveryAnalysisRequest{
		Transcript:      transcript.Text,
		DurationSeconds: duration,
		ScriptText:      scriptText,
		Language:        language,
	})
	if err != nil {
		u.failPipeline(ctx, session, err)
		return
	}

	u.setProgress(session, entity.StepAggregating, 80)

	results := u.aggregate(session, transcript.Text, duration, frames, analysis)

	if err := u.analysisRepo.Create(ctx, session.UserID, results); err != nil {
		ctxzap.Warn(ctx, "failed to persist coach analysis", zap.Error(err))
	}

	u.mu.Lock()
	session.Status = entity.CoachStatusResults
	session.Results = results
	session.Processing = entity.ProcessingProgress{Progress: 100}
	// Raw media is no longer needed once the analysis exists.
	session.Recording.Audio = nil
	session.Recording.Video = nil
	session.UpdatedAt = time.Now()
	u.mu.Unlock()

	ctxzap.Info(ctx, "coach analysis completed",
		zap.String("session_id", session.ID),
		zap.Float64("pace_wpm", results.PaceWPM),
	)
}

func (u *Usecase) aggregate(
	session *entity.CoachSession,
	transcript string,
	durationSeconds int,
	frames []entity.FrameSample,
	analysis *entity.DeliveryAnalysisResponse,
) *entity.AnalysisResults {
	pace := analysis.PaceWPM
	if pace == 0 && durationSeconds > 0 {
		pace = float64(len(strings.Fields(transcript))) / float64(durationSeconds) * 60
	}

	fillerTotal := 0
	for _, count := range analysis.FillerBreakdown {
		fillerTotal += count
	}

	var stability, posture, smile float64
	if len(frames) > 0 {
		for _, frame := range frames {
			stability += frame.Stability
			posture += frame.Posture
			smile += frame.Smile
		}
		n := float64(len(frames))
		stability /= n
		posture /= n
		smile /= n
	}

	return &entity.AnalysisResults{
		ID:              uuid.NewString(),
		Transcript:      transcript,
		PaceWPM:         pace,
		FillerTotal:     fillerTotal,
		FillerBreakdown: analysis.FillerBreakdown,
		StabilityScore:  stability,
		PostureScore:    posture,
		SmileScore:      smile,
		ContentCoverage: analysis.ContentCoverage,
		ProcessedAt:     time.Now(),
	}
}

func (u *Usecase) failPipeline(ctx context.Context, session *entity.CoachSession, cause error) {
	ctxzap.Error(ctx, "coach pipeline failed",
		zap.String("session_id", session.ID), zap.Error(cause))

	u.mu.Lock()
	defer u.mu.Unlock()

	msg := "processing failed"
	session.Status = entity.CoachStatusSetup
	session.Recording = nil
	session.Processing = entity.ProcessingProgress{}
	session.Error = &msg
	session.UpdatedAt = time.Now()
}

// Reset returns the session to SETUP for another attempt. Script
// content, prompt mode and language survive; the recording and results
// do not.
func (u *Usecase) Reset(ctx context.Context, sessionID string) (*entity.CoachSession, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	session, err := u.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	if session.Status == entity.CoachStatusProcessing {
		return nil, entity.ErrWrongCoachStatus
	}

	session.Status = entity.CoachStatusSetup
	session.Recording = nil
	session.Results = nil
	session.Processing = entity.ProcessingProgress{}
	session.Error = nil
	session.UpdatedAt = time.Now()

	ctxzap.Info(ctx, "coach session reset", zap.String("session_id", sessionID))

	return session, nil
}

// History lists a user's past analyses, newest first.
func (u *Usecase) History(ctx context.Context, userID string) ([]*entity.AnalysisResults, error) {
	return u.analysisRepo.ListByUser(ctx, userID, historyDefault)
}

func (u *Usecase) setProgress(session *entity.CoachSession, step entity.ProcessingStep, progress int) {
	u.mu.Lock()
	defer u.mu.Unlock()

	session.Processing = entity.ProcessingProgress{Step: step, Progress: progress}
	session.UpdatedAt = time.Now()
}

func (u *Usecase) lookup(sessionID string) (*entity.CoachSession, error) {
	raw, ok := u.sessions.Get(sessionID)
	if !ok {
		return nil, entity.ErrCoachNotFound
	}

	session, ok := raw.(*entity.CoachSession)
	if !ok {
		return nil, entity.ErrCoachNotFound
	}

	return session, nil
}

func scriptText(blocks []entity.SpeechBlock) string {
	var texts []string
	for _, block := range blocks {
		texts = append(texts, block.Content)
	}

	return strings.Join(texts, "\n\n")
}
