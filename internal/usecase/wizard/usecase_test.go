package wizard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/pitchperfect/pitch-backend/internal/config"
	"github.com/pitchperfect/pitch-backend/internal/entity"
	"github.com/pitchperfect/pitch-backend/internal/pkg/formatter"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type mockWizardRepo struct {
	mu       sync.Mutex
	sessions map[string]entity.WizardSession
}

func newMockWizardRepo() *mockWizardRepo {
	return &mockWizardRepo{sessions: map[string]entity.WizardSession{}}
}

func (m *mockWizardRepo) Create(ctx context.Context, session *entity.WizardSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = *session
	return nil
}

func (m *mockWizardRepo) Get(ctx context.Context, sessionID string) (*entity.WizardSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[sessionID]
	if !ok {
		return nil, entity.ErrWizardNotFound
	}
	copied := session
	return &copied, nil
}

func (m *mockWizardRepo) Update(ctx context.Context, session *entity.WizardSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[session.ID]; !ok {
		return entity.ErrWizardNotFound
	}
	m.sessions[session.ID] = *session
	return nil
}

func (m *mockWizardRepo) UpdateStatusIf(ctx context.Context, sessionID string, from, to entity.WizardStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[sessionID]
	if !ok || session.Status != from {
		return false, nil
	}
	session.Status = to
	m.sessions[sessionID] = session
	return true, nil
}

type mockPitchRepo struct {
	mu      sync.Mutex
	pitches map[string]entity.Pitch
}

func newMockPitchRepo() *mockPitchRepo {
	return &mockPitchRepo{pitches: map[string]entity.Pitch{}}
}

func (m *mockPitchRepo) Create(ctx context.Context, pitch *entity.Pitch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pitches[pitch.ID] = *pitch
	return nil
}

func (m *mockPitchRepo) Get(ctx context.Context, pitchID string) (*entity.Pitch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pitch, ok := m.pitches[pitchID]
	if !ok {
		return nil, entity.ErrPitchNotFound
	}
	copied := pitch
	return &copied, nil
}

func (m *mockPitchRepo) UpdateScript(ctx context.Context, pitch *entity.Pitch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pitches[pitch.ID] = *pitch
	return nil
}

type mockVersionRepo struct {
	versions map[string]entity.ScriptVersion
}

func newMockVersionRepo() *mockVersionRepo {
	return &mockVersionRepo{versions: map[string]entity.ScriptVersion{}}
}

func (m *mockVersionRepo) Create(ctx context.Context, version *entity.ScriptVersion) error {
	m.versions[version.ID] = *version
	return nil
}

func (m *mockVersionRepo) Get(ctx context.Context, versionID string) (*entity.ScriptVersion, error) {
	version, ok := m.versions[versionID]
	if !ok {
		return nil, entity.ErrVersionNotFound
	}
	copied := version
	return &copied, nil
}

func (m *mockVersionRepo) ListByPitch(ctx context.Context, pitchID string) ([]*entity.ScriptVersion, error) {
	var out []*entity.ScriptVersion
	for _, version := range m.versions {
		if version.PitchID == pitchID {
			copied := version
			out = append(out, &copied)
		}
	}
	return out, nil
}

type mockScriptGenerator struct {
	resp  *entity.GenerateScriptResponse
	err   error
	block chan struct{}
}

func (m *mockScriptGenerator) GenerateScript(ctx context.Context, req *entity.GenerateScriptRequest) (*entity.GenerateScriptResponse, error) {
	if m.block != nil {
		<-m.block
	}
	return m.resp, m.err
}

type mockTTS struct{}

func (m *mockTTS) Synthesize(ctx context.Context, req *entity.TTSRequest) ([]byte, string, error) {
	return []byte("audio"), "audio/mpeg", nil
}

type mockScraper struct {
	resp *entity.ScrapeResponse
	err  error
}

func (m *mockScraper) Scrape(ctx context.Context, url string) (*entity.ScrapeResponse, error) {
	return m.resp, m.err
}

type mockDocParser struct {
	resp *entity.DocParseResponse
	err  error
}

func (m *mockDocParser) Parse(ctx context.Context, fileData []byte, filename string) (*entity.DocParseResponse, error) {
	return m.resp, m.err
}

type wizardFixture struct {
	uc          *Usecase
	wizardRepo  *mockWizardRepo
	pitchRepo   *mockPitchRepo
	versionRepo *mockVersionRepo
	generator   *mockScriptGenerator
	scraper     *mockScraper
	docParser   *mockDocParser
}

func newWizardFixture() *wizardFixture {
	return newWizardFixtureWithLogger(zap.NewNop())
}

func newWizardFixtureWithLogger(logger *zap.Logger) *wizardFixture {
	f := &wizardFixture{
		wizardRepo:  newMockWizardRepo(),
		pitchRepo:   newMockPitchRepo(),
		versionRepo: newMockVersionRepo(),
		generator:   &mockScriptGenerator{},
		scraper:     &mockScraper{},
		docParser:   &mockDocParser{},
	}
	f.uc = NewUsecase(
		f.wizardRepo,
		f.pitchRepo,
		f.versionRepo,
		f.generator,
		&mockTTS{},
		f.scraper,
		f.docParser,
		formatter.NewFactory(),
		&config.Config{SpeakingRateWPM: 130, WordCountTolerance: 0.2},
		logger,
	)
	return f
}

func (f *wizardFixture) sessionAt(t *testing.T, status entity.WizardStatus, answers entity.WizardAnswers) *entity.WizardSession {
	t.Helper()
	session, err := f.uc.Start(context.Background(), "user-1")
	require.NoError(t, err)

	session.Status = status
	session.Answers = answers
	require.NoError(t, f.wizardRepo.Update(context.Background(), session))
	return session
}

func readyAnswers() entity.WizardAnswers {
	return entity.WizardAnswers{
		Idea:               "AI-assisted meal planning",
		AudienceID:         "investors",
		AudienceLabel:      "Seed investors",
		Problem:            "Families waste food every week",
		PersonaDescription: "A busy parent of two",
		BusinessModels:     []string{"subscription"},
		DurationMinutes:    3,
		HookStyle:          entity.HookStyleQuestion,
		Tier:               entity.TierStandard,
	}
}

func TestStart(t *testing.T) {
	f := newWizardFixture()

	session, err := f.uc.Start(context.Background(), "user-1")
	require.NoError(t, err)
	require.Equal(t, entity.WizardStatusIdea, session.Status)
	require.NotEmpty(t, session.ID)
}

func TestConfirmStep_AdvancesAndMerges(t *testing.T) {
	f := newWizardFixture()
	ctx := context.Background()

	session, err := f.uc.Start(ctx, "user-1")
	require.NoError(t, err)

	session, err = f.uc.ConfirmStep(ctx, session.ID, &entity.ConfirmStepRequest{
		Step:   entity.WizardStatusIdea,
		Fields: entity.WizardAnswers{Idea: "meal planning"},
	})
	require.NoError(t, err)
	require.Equal(t, entity.WizardStatusAudience, session.Status)
	require.Equal(t, "meal planning", session.Answers.Idea)

	// The next step keeps earlier answers.
	session, err = f.uc.ConfirmStep(ctx, session.ID, &entity.ConfirmStepRequest{
		Step:   entity.WizardStatusAudience,
		Fields: entity.WizardAnswers{AudienceID: "investors", AudienceLabel: "Seed investors"},
	})
	require.NoError(t, err)
	require.Equal(t, entity.WizardStatusDemo, session.Status)
	require.Equal(t, "meal planning", session.Answers.Idea)
	require.Equal(t, "investors", session.Answers.AudienceID)
}

func TestConfirmStep_WrongStepRejected(t *testing.T) {
	f := newWizardFixture()
	ctx := context.Background()

	session, err := f.uc.Start(ctx, "user-1")
	require.NoError(t, err)

	_, err = f.uc.ConfirmStep(ctx, session.ID, &entity.ConfirmStepRequest{
		Step:   entity.WizardStatusProblem,
		Fields: entity.WizardAnswers{Problem: "x"},
	})
	require.ErrorIs(t, err, entity.ErrWrongWizardStep)
}

func TestConfirmStep_ReadyIsTerminalFormState(t *testing.T) {
	f := newWizardFixture()
	session := f.sessionAt(t, entity.WizardStatusReady, readyAnswers())

	_, err := f.uc.ConfirmStep(context.Background(), session.ID, &entity.ConfirmStepRequest{
		Step: entity.WizardStatusReady,
	})
	require.ErrorIs(t, err, entity.ErrWrongWizardStep)
}

func TestBack_KeepsAnswers(t *testing.T) {
	f := newWizardFixture()
	ctx := context.Background()

	session, err := f.uc.Start(ctx, "user-1")
	require.NoError(t, err)

	session, err = f.uc.ConfirmStep(ctx, session.ID, &entity.ConfirmStepRequest{
		Step:   entity.WizardStatusIdea,
		Fields: entity.WizardAnswers{Idea: "meal planning"},
	})
	require.NoError(t, err)

	session, err = f.uc.Back(ctx, session.ID)
	require.NoError(t, err)
	require.Equal(t, entity.WizardStatusIdea, session.Status)
	require.Equal(t, "meal planning", session.Answers.Idea)
}

func TestBack_AtFirstStep(t *testing.T) {
	f := newWizardFixture()

	session, err := f.uc.Start(context.Background(), "user-1")
	require.NoError(t, err)

	_, err = f.uc.Back(context.Background(), session.ID)
	require.ErrorIs(t, err, entity.ErrNoPreviousStep)
}

func TestGenerate_CompletesSession(t *testing.T) {
	f := newWizardFixture()
	f.generator.resp = &entity.GenerateScriptResponse{
		Title: "Meal Planner Pitch",
		Blocks: []entity.GeneratedBlock{
			{Title: "Hook", Content: "What if dinner planned itself every single night"},
			{Title: "Problem", Content: "Families waste food"},
			{Title: "Solution", Content: "Our app builds the plan and the shopping list automatically"},
		},
		BulletPoints: []string{"hook", "problem", "solution"},
		HookStyle:    entity.HookStyleQuestion,
	}
	session := f.sessionAt(t, entity.WizardStatusReady, readyAnswers())

	ctx := context.Background()
	started, err := f.uc.Generate(ctx, session.ID)
	require.NoError(t, err)
	require.Equal(t, entity.WizardStatusGenerating, started.Status)

	require.Eventually(t, func() bool {
		current, err := f.uc.Get(ctx, session.ID)
		return err == nil && current.Status == entity.WizardStatusDone
	}, 2*time.Second, 10*time.Millisecond)

	current, err := f.uc.Get(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, current.PitchID)
	require.Nil(t, current.Error)

	pitch, err := f.uc.GetPitch(ctx, *current.PitchID)
	require.NoError(t, err)
	require.Len(t, pitch.Blocks, 3)
	require.Equal(t, 3*130, pitch.TargetWordCount)
	require.Equal(t, 21, pitch.ActualWordCount)

	// Block ranges are contiguous and cover the whole pitch.
	require.Equal(t, 0.0, pitch.Blocks[0].StartSeconds)
	for i := 1; i < len(pitch.Blocks); i++ {
		require.Equal(t, pitch.Blocks[i-1].EndSeconds, pitch.Blocks[i].StartSeconds)
	}
	require.Equal(t, 180.0, pitch.Blocks[len(pitch.Blocks)-1].EndSeconds)
}

func TestGenerate_WarnsWhenWordCountOffTarget(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	f := newWizardFixtureWithLogger(zap.New(core))
	// 21 words against a 390-word target is far outside tolerance.
	f.generator.resp = &entity.GenerateScriptResponse{
		Title: "Meal Planner Pitch",
		Blocks: []entity.GeneratedBlock{
			{Title: "Hook", Content: "What if dinner planned itself every single night"},
			{Title: "Problem", Content: "Families waste food"},
			{Title: "Solution", Content: "Our app builds the plan and the shopping list automatically"},
		},
		HookStyle: entity.HookStyleQuestion,
	}
	session := f.sessionAt(t, entity.WizardStatusReady, readyAnswers())

	ctx := context.Background()
	_, err := f.uc.Generate(ctx, session.ID)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		current, err := f.uc.Get(ctx, session.ID)
		return err == nil && current.Status == entity.WizardStatusDone
	}, 2*time.Second, 10*time.Millisecond)

	require.Equal(t, 1, logs.FilterMessage("generated word count off target").Len())
}

func TestGenerate_RejectedBeforeReady(t *testing.T) {
	f := newWizardFixture()

	session, err := f.uc.Start(context.Background(), "user-1")
	require.NoError(t, err)

	_, err = f.uc.Generate(context.Background(), session.ID)
	require.ErrorIs(t, err, entity.ErrWrongWizardStep)
}

func TestGenerate_SecondCallIsNoOpWhileRunning(t *testing.T) {
	f := newWizardFixture()
	f.generator.resp = &entity.GenerateScriptResponse{
		Blocks: []entity.GeneratedBlock{{Title: "Hook", Content: "content"}},
	}
	f.generator.block = make(chan struct{})
	session := f.sessionAt(t, entity.WizardStatusReady, readyAnswers())

	ctx := context.Background()
	_, err := f.uc.Generate(ctx, session.ID)
	require.NoError(t, err)

	// The second call reports the in-flight generation instead of
	// starting another one.
	inFlight, err := f.uc.Generate(ctx, session.ID)
	require.NoError(t, err)
	require.Equal(t, entity.WizardStatusGenerating, inFlight.Status)

	close(f.generator.block)
	require.Eventually(t, func() bool {
		current, err := f.uc.Get(ctx, session.ID)
		return err == nil && current.Status == entity.WizardStatusDone
	}, 2*time.Second, 10*time.Millisecond)

	// After completion a repeat request is rejected outright.
	_, err = f.uc.Generate(ctx, session.ID)
	require.ErrorIs(t, err, entity.ErrWizardCompleted)
}

func TestGenerate_FailureReturnsToReady(t *testing.T) {
	f := newWizardFixture()
	f.generator.err = errors.New("generation service down")
	session := f.sessionAt(t, entity.WizardStatusReady, readyAnswers())

	ctx := context.Background()
	_, err := f.uc.Generate(ctx, session.ID)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		current, err := f.uc.Get(ctx, session.ID)
		return err == nil && current.Status == entity.WizardStatusReady
	}, 2*time.Second, 10*time.Millisecond)

	current, err := f.uc.Get(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, current.Error)
	require.Nil(t, current.PitchID)
}

func TestVersions_SaveListRestore(t *testing.T) {
	f := newWizardFixture()
	ctx := context.Background()

	pitch := &entity.Pitch{
		ID:     "pitch-1",
		UserID: "user-1",
		Blocks: []entity.SpeechBlock{
			{StartSeconds: 0, EndSeconds: 60, Title: "Hook", Content: "original hook"},
		},
		ActualWordCount: 2,
		FullText:        "original hook",
	}
	require.NoError(t, f.pitchRepo.Create(ctx, pitch))

	version, err := f.uc.SaveVersion(ctx, "pitch-1", "draft one")
	require.NoError(t, err)
	require.Equal(t, "draft one", version.Name)

	// Mutate the current script, then restore the snapshot.
	pitch.Blocks[0].Content = "rewritten hook with more words"
	pitch.FullText = "rewritten hook with more words"
	pitch.ActualWordCount = 5
	require.NoError(t, f.pitchRepo.UpdateScript(ctx, pitch))

	restored, err := f.uc.RestoreVersion(ctx, "pitch-1", version.ID)
	require.NoError(t, err)
	require.Equal(t, "original hook", restored.Blocks[0].Content)
	require.Equal(t, "original hook", restored.FullText)
	require.Equal(t, 2, restored.ActualWordCount)

	versions, err := f.uc.ListVersions(ctx, "pitch-1")
	require.NoError(t, err)
	require.Len(t, versions, 1)
}

func TestRestoreVersion_WrongPitch(t *testing.T) {
	f := newWizardFixture()
	ctx := context.Background()

	require.NoError(t, f.pitchRepo.Create(ctx, &entity.Pitch{ID: "pitch-1"}))
	require.NoError(t, f.pitchRepo.Create(ctx, &entity.Pitch{ID: "pitch-2"}))
	require.NoError(t, f.versionRepo.Create(ctx, &entity.ScriptVersion{ID: "v1", PitchID: "pitch-2"}))

	_, err := f.uc.RestoreVersion(ctx, "pitch-1", "v1")
	require.ErrorIs(t, err, entity.ErrVersionNotFound)
}

func TestExport_UnknownFormat(t *testing.T) {
	f := newWizardFixture()
	ctx := context.Background()

	require.NoError(t, f.pitchRepo.Create(ctx, &entity.Pitch{ID: "pitch-1"}))

	_, _, _, err := f.uc.Export(ctx, "pitch-1", "rtf")
	require.ErrorIs(t, err, entity.ErrInvalidParameter)
}

func TestExport_Markdown(t *testing.T) {
	f := newWizardFixture()
	ctx := context.Background()

	require.NoError(t, f.pitchRepo.Create(ctx, &entity.Pitch{
		ID:    "pitch-1",
		Title: "My Pitch",
		Blocks: []entity.SpeechBlock{
			{Title: "Hook", Content: "hello"},
		},
	}))

	data, contentType, filename, err := f.uc.Export(ctx, "pitch-1", entity.FormatMarkdown)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	require.Contains(t, contentType, "markdown")
	require.Equal(t, "pitch-pitch-1.md", filename)
}

func TestPrefillFromURL(t *testing.T) {
	f := newWizardFixture()
	f.scraper.resp = &entity.ScrapeResponse{
		Success: true,
		Data: entity.ScrapedProjectData{
			Title:       "MealMind",
			Description: "Plans your dinners automatically",
			Keywords:    []string{"meals", "planning"},
			Features:    []string{"auto shopping list"},
		},
	}

	session, err := f.uc.Start(context.Background(), "user-1")
	require.NoError(t, err)

	session, err = f.uc.PrefillFromURL(context.Background(), session.ID, "https://mealmind.example")
	require.NoError(t, err)
	require.Equal(t, "MealMind. Plans your dinners automatically. Key features: auto shopping list", session.Answers.Idea)
	require.Equal(t, []string{"meals", "planning"}, session.Answers.PersonaKeywords)
}

func TestPrefillFromURL_OnlyAtIdeaStep(t *testing.T) {
	f := newWizardFixture()
	session := f.sessionAt(t, entity.WizardStatusProblem, entity.WizardAnswers{})

	_, err := f.uc.PrefillFromURL(context.Background(), session.ID, "https://example.com")
	require.ErrorIs(t, err, entity.ErrWrongWizardStep)
}

func TestPrefillFromDocument(t *testing.T) {
	f := newWizardFixture()
	f.docParser.resp = &entity.DocParseResponse{Success: true, Data: "extracted deck text"}

	session, err := f.uc.Start(context.Background(), "user-1")
	require.NoError(t, err)

	session, err = f.uc.PrefillFromDocument(context.Background(), session.ID, []byte("%PDF"), "deck.pdf")
	require.NoError(t, err)
	require.Equal(t, "extracted deck text", session.Answers.Idea)
}
