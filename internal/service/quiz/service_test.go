package quiz

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordflow/wordflow-backend/internal/config"
	"github.com/wordflow/wordflow-backend/internal/domain"
)

// ===========================================================================
// Manual mocks (moq-style with func fields)
// ===========================================================================

type mockAgentCaller struct {
	calls int

	CallAgentFunc func(ctx context.Context, agentID, input string) ([]byte, error)
}

func (m *mockAgentCaller) CallAgent(ctx context.Context, agentID, input string) ([]byte, error) {
	m.calls++
	if m.CallAgentFunc != nil {
		return m.CallAgentFunc(ctx, agentID, input)
	}
	return []byte(`{"tests":[]}`), nil
}

type mockTestRepo struct {
	created []*domain.Test
	deleted []int64
	results []bool

	CreateFunc        func(ctx context.Context, t *domain.Test) error
	GetByIDFunc       func(ctx context.Context, userID, testID int64) (*domain.Test, error)
	ListByUserFunc    func(ctx context.Context, userID int64) ([]domain.Test, error)
	CountByUserFunc   func(ctx context.Context, userID int64) (int, error)
	DeleteFunc        func(ctx context.Context, userID, testID int64) error
	RecordResultFunc  func(ctx context.Context, userID, wordID int64, correct bool) error
	GetStatisticsFunc func(ctx context.Context, userID, wordID int64) (*domain.TestStatistics, error)
}

func (m *mockTestRepo) Create(ctx context.Context, t *domain.Test) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	t.ID = int64(len(m.created) + 1)
	m.created = append(m.created, t)
	return nil
}

func (m *mockTestRepo) GetByID(ctx context.Context, userID, testID int64) (*domain.Test, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, userID, testID)
	}
	return nil, domain.ErrNotFound
}

func (m *mockTestRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Test, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockTestRepo) CountByUser(ctx context.Context, userID int64) (int, error) {
	if m.CountByUserFunc != nil {
		return m.CountByUserFunc(ctx, userID)
	}
	return 0, nil
}

func (m *mockTestRepo) Delete(ctx context.Context, userID, testID int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, testID)
	}
	m.deleted = append(m.deleted, testID)
	return nil
}

func (m *mockTestRepo) RecordResult(ctx context.Context, userID, wordID int64, correct bool) error {
	if m.RecordResultFunc != nil {
		return m.RecordResultFunc(ctx, userID, wordID, correct)
	}
	m.results = append(m.results, correct)
	return nil
}

func (m *mockTestRepo) GetStatistics(ctx context.Context, userID, wordID int64) (*domain.TestStatistics, error) {
	if m.GetStatisticsFunc != nil {
		return m.GetStatisticsFunc(ctx, userID, wordID)
	}
	return nil, domain.ErrNotFound
}

type mockWordRepo struct {
	updated *domain.DictionaryWord

	GetByIDFunc        func(ctx context.Context, userID, wordID int64) (*domain.DictionaryWord, error)
	UpdateProgressFunc func(ctx context.Context, w *domain.DictionaryWord) error
}

func (m *mockWordRepo) GetByID(ctx context.Context, userID, wordID int64) (*domain.DictionaryWord, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, userID, wordID)
	}
	return nil, domain.ErrNotFound
}

func (m *mockWordRepo) UpdateProgress(ctx context.Context, w *domain.DictionaryWord) error {
	if m.UpdateProgressFunc != nil {
		return m.UpdateProgressFunc(ctx, w)
	}
	m.updated = w
	return nil
}

type mockTranslationRepo struct {
	FirstForWordFunc func(ctx context.Context, wordID int64) (*domain.Translation, error)
	GetByWordIDFunc  func(ctx context.Context, wordID int64) ([]domain.Translation, error)
}

func (m *mockTranslationRepo) FirstForWord(ctx context.Context, wordID int64) (*domain.Translation, error) {
	if m.FirstForWordFunc != nil {
		return m.FirstForWordFunc(ctx, wordID)
	}
	return nil, domain.ErrNotFound
}

func (m *mockTranslationRepo) GetByWordID(ctx context.Context, wordID int64) ([]domain.Translation, error) {
	if m.GetByWordIDFunc != nil {
		return m.GetByWordIDFunc(ctx, wordID)
	}
	return nil, nil
}

type mockTxManager struct{}

func (mockTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// ===========================================================================
// Helpers
// ===========================================================================

func newTestService(agents *mockAgentCaller, tests *mockTestRepo, words *mockWordRepo, translations *mockTranslationRepo) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(logger, agents, tests, words, translations, mockTxManager{},
		config.YandexConfig{
			DistractorsEnRuAgentID: "agent-distractors-en-ru",
			DistractorsRuEnAgentID: "agent-distractors-ru-en",
		})
}

func learningWord(id int64, lemma string) *domain.DictionaryWord {
	return &domain.DictionaryWord{
		ID:     id,
		UserID: 1,
		Lemma:  lemma,
		Type:   domain.WordTypeWord,
		Status: domain.WordStatusLearning,
	}
}

// ===========================================================================
// CreateTests
// ===========================================================================

func TestService_CreateTests_UsesAgentDistractors(t *testing.T) {
	agents := &mockAgentCaller{
		CallAgentFunc: func(ctx context.Context, agentID, input string) ([]byte, error) {
			assert.Equal(t, "agent-distractors-en-ru", agentID)
			assert.Contains(t, input, `"sophisticated"`)
			return []byte(`{"tests":[{"word":"sophisticated","wrong_options":["простой","грубый","наивный"]}]}`), nil
		},
	}
	tests := &mockTestRepo{}
	words := &mockWordRepo{
		GetByIDFunc: func(ctx context.Context, userID, wordID int64) (*domain.DictionaryWord, error) {
			return learningWord(wordID, "sophisticated"), nil
		},
	}
	translations := &mockTranslationRepo{
		FirstForWordFunc: func(ctx context.Context, wordID int64) (*domain.Translation, error) {
			return &domain.Translation{WordID: wordID, Translation: "утончённый"}, nil
		},
	}
	svc := newTestService(agents, tests, words, translations)

	result, err := svc.CreateTests(context.Background(), CreateTestsInput{
		UserID:  1,
		WordIDs: []int64{7},
		Mode:    domain.TestModeWordToTranslation,
	})
	require.NoError(t, err)

	assert.Len(t, result.TestIDs, 1)
	assert.Empty(t, result.SkippedWordIDs)
	require.Len(t, tests.created, 1)
	assert.Equal(t, "sophisticated", tests.created[0].Word)
	assert.Equal(t, "утончённый", tests.created[0].CorrectTranslation)
	assert.Equal(t, [3]string{"простой", "грубый", "наивный"}, tests.created[0].WrongOptions)
}

func TestService_CreateTests_ReverseModeUsesOtherAgent(t *testing.T) {
	agents := &mockAgentCaller{
		CallAgentFunc: func(ctx context.Context, agentID, input string) ([]byte, error) {
			assert.Equal(t, "agent-distractors-ru-en", agentID)
			return []byte(`{"tests":[{"word":"sophisticated","wrong_options":["simple","rude","naive"]}]}`), nil
		},
	}
	tests := &mockTestRepo{}
	words := &mockWordRepo{
		GetByIDFunc: func(ctx context.Context, userID, wordID int64) (*domain.DictionaryWord, error) {
			return learningWord(wordID, "sophisticated"), nil
		},
	}
	translations := &mockTranslationRepo{
		FirstForWordFunc: func(ctx context.Context, wordID int64) (*domain.Translation, error) {
			return &domain.Translation{WordID: wordID, Translation: "утончённый"}, nil
		},
	}
	svc := newTestService(agents, tests, words, translations)

	result, err := svc.CreateTests(context.Background(), CreateTestsInput{
		UserID:  1,
		WordIDs: []int64{7},
		Mode:    domain.TestModeTranslationToWord,
	})
	require.NoError(t, err)

	assert.Len(t, result.TestIDs, 1)
	require.Len(t, tests.created, 1)
	assert.Equal(t, domain.TestModeTranslationToWord, tests.created[0].Mode)
	assert.Equal(t, [3]string{"simple", "rude", "naive"}, tests.created[0].WrongOptions)
}

func TestService_CreateTests_AgentFailureFailsOperation(t *testing.T) {
	agents := &mockAgentCaller{
		CallAgentFunc: func(ctx context.Context, agentID, input string) ([]byte, error) {
			return nil, errors.New("agent unavailable")
		},
	}
	tests := &mockTestRepo{}
	words := &mockWordRepo{
		GetByIDFunc: func(ctx context.Context, userID, wordID int64) (*domain.DictionaryWord, error) {
			return learningWord(wordID, "borrow"), nil
		},
	}
	translations := &mockTranslationRepo{
		FirstForWordFunc: func(ctx context.Context, wordID int64) (*domain.Translation, error) {
			return &domain.Translation{WordID: wordID, Translation: "занимать"}, nil
		},
	}
	svc := newTestService(agents, tests, words, translations)

	_, err := svc.CreateTests(context.Background(), CreateTestsInput{
		UserID:  1,
		WordIDs: []int64{7},
		Mode:    domain.TestModeWordToTranslation,
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "distractor agent")
	assert.Empty(t, tests.created)
}

func TestService_CreateTests_DropsTestWithCollidingOptions(t *testing.T) {
	agents := &mockAgentCaller{
		CallAgentFunc: func(ctx context.Context, agentID, input string) ([]byte, error) {
			// A fourth distinct option cannot rescue a duplicate among the
			// first three.
			return []byte(`{"tests":[{"word":"borrow","wrong_options":["гулять","гулять","читать","плавать"]}]}`), nil
		},
	}
	tests := &mockTestRepo{}
	words := &mockWordRepo{
		GetByIDFunc: func(ctx context.Context, userID, wordID int64) (*domain.DictionaryWord, error) {
			return learningWord(wordID, "borrow"), nil
		},
	}
	translations := &mockTranslationRepo{
		FirstForWordFunc: func(ctx context.Context, wordID int64) (*domain.Translation, error) {
			return &domain.Translation{WordID: wordID, Translation: "занимать"}, nil
		},
	}
	svc := newTestService(agents, tests, words, translations)

	result, err := svc.CreateTests(context.Background(), CreateTestsInput{
		UserID:  1,
		WordIDs: []int64{7},
		Mode:    domain.TestModeWordToTranslation,
	})
	require.NoError(t, err)

	assert.Empty(t, result.TestIDs)
	assert.Equal(t, []int64{7}, result.SkippedWordIDs)
	assert.Empty(t, tests.created)
}

func TestService_CreateTests_DropsTestWhenOptionEqualsAnswer(t *testing.T) {
	agents := &mockAgentCaller{
		CallAgentFunc: func(ctx context.Context, agentID, input string) ([]byte, error) {
			return []byte(`{"tests":[{"word":"borrow","wrong_options":["занимать","гулять","читать"]}]}`), nil
		},
	}
	tests := &mockTestRepo{}
	words := &mockWordRepo{
		GetByIDFunc: func(ctx context.Context, userID, wordID int64) (*domain.DictionaryWord, error) {
			return learningWord(wordID, "borrow"), nil
		},
	}
	translations := &mockTranslationRepo{
		FirstForWordFunc: func(ctx context.Context, wordID int64) (*domain.Translation, error) {
			return &domain.Translation{WordID: wordID, Translation: "занимать"}, nil
		},
	}
	svc := newTestService(agents, tests, words, translations)

	result, err := svc.CreateTests(context.Background(), CreateTestsInput{
		UserID:  1,
		WordIDs: []int64{7},
		Mode:    domain.TestModeWordToTranslation,
	})
	require.NoError(t, err)

	assert.Equal(t, []int64{7}, result.SkippedWordIDs)
	assert.Empty(t, tests.created)
}

func TestService_CreateTests_SkipsWordsWithoutTranslation(t *testing.T) {
	agents := &mockAgentCaller{
		CallAgentFunc: func(ctx context.Context, agentID, input string) ([]byte, error) {
			return []byte(`{"tests":[{"word":"lemma","wrong_options":["раз","два","три"]}]}`), nil
		},
	}
	tests := &mockTestRepo{}
	words := &mockWordRepo{
		GetByIDFunc: func(ctx context.Context, userID, wordID int64) (*domain.DictionaryWord, error) {
			return learningWord(wordID, "lemma"), nil
		},
	}
	translations := &mockTranslationRepo{
		FirstForWordFunc: func(ctx context.Context, wordID int64) (*domain.Translation, error) {
			if wordID == 2 {
				return nil, domain.ErrNotFound
			}
			return &domain.Translation{WordID: wordID, Translation: "перевод"}, nil
		},
	}
	svc := newTestService(agents, tests, words, translations)

	result, err := svc.CreateTests(context.Background(), CreateTestsInput{
		UserID:  1,
		WordIDs: []int64{1, 2},
		Mode:    domain.TestModeWordToTranslation,
	})
	require.NoError(t, err)

	assert.Len(t, result.TestIDs, 1)
	assert.Equal(t, []int64{2}, result.SkippedWordIDs)
}

func TestService_CreateTests_Validation(t *testing.T) {
	svc := newTestService(&mockAgentCaller{}, &mockTestRepo{}, &mockWordRepo{}, &mockTranslationRepo{})

	_, err := svc.CreateTests(context.Background(), CreateTestsInput{UserID: 1, Mode: 3})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ===========================================================================
// CreateDualModeTests
// ===========================================================================

func TestService_CreateDualModeTests_SplitsBatchByMode(t *testing.T) {
	lemmas := map[int64]string{1: "rain", 2: "snow", 3: "wind", 4: "fog"}

	agents := &mockAgentCaller{
		CallAgentFunc: func(ctx context.Context, agentID, input string) ([]byte, error) {
			return []byte(`{"tests":[
				{"word":"rain","wrong_options":["раз","два","три"]},
				{"word":"snow","wrong_options":["раз","два","три"]},
				{"word":"wind","wrong_options":["one","two","three"]},
				{"word":"fog","wrong_options":["one","two","three"]}
			]}`), nil
		},
	}
	tests := &mockTestRepo{}
	words := &mockWordRepo{
		GetByIDFunc: func(ctx context.Context, userID, wordID int64) (*domain.DictionaryWord, error) {
			return learningWord(wordID, lemmas[wordID]), nil
		},
	}
	translations := &mockTranslationRepo{
		FirstForWordFunc: func(ctx context.Context, wordID int64) (*domain.Translation, error) {
			return &domain.Translation{WordID: wordID, Translation: "перевод " + lemmas[wordID]}, nil
		},
	}
	svc := newTestService(agents, tests, words, translations)

	result, err := svc.CreateDualModeTests(context.Background(), 1, []int64{1, 2, 3, 4})
	require.NoError(t, err)

	assert.Equal(t, 2, agents.calls)
	assert.Len(t, result.TestIDs, 4)
	assert.Empty(t, result.SkippedWordIDs)
	require.Len(t, tests.created, 4)
	assert.Equal(t, domain.TestModeWordToTranslation, tests.created[0].Mode)
	assert.Equal(t, domain.TestModeWordToTranslation, tests.created[1].Mode)
	assert.Equal(t, domain.TestModeTranslationToWord, tests.created[2].Mode)
	assert.Equal(t, domain.TestModeTranslationToWord, tests.created[3].Mode)
}

func TestService_CreateDualModeTests_SingleWordGoesToReverseMode(t *testing.T) {
	agents := &mockAgentCaller{
		CallAgentFunc: func(ctx context.Context, agentID, input string) ([]byte, error) {
			assert.Equal(t, "agent-distractors-ru-en", agentID)
			return []byte(`{"tests":[{"word":"rain","wrong_options":["one","two","three"]}]}`), nil
		},
	}
	tests := &mockTestRepo{}
	words := &mockWordRepo{
		GetByIDFunc: func(ctx context.Context, userID, wordID int64) (*domain.DictionaryWord, error) {
			return learningWord(wordID, "rain"), nil
		},
	}
	translations := &mockTranslationRepo{
		FirstForWordFunc: func(ctx context.Context, wordID int64) (*domain.Translation, error) {
			return &domain.Translation{WordID: wordID, Translation: "дождь"}, nil
		},
	}
	svc := newTestService(agents, tests, words, translations)

	result, err := svc.CreateDualModeTests(context.Background(), 1, []int64{1})
	require.NoError(t, err)

	assert.Equal(t, 1, agents.calls)
	require.Len(t, tests.created, 1)
	assert.Equal(t, domain.TestModeTranslationToWord, tests.created[0].Mode)
	assert.Len(t, result.TestIDs, 1)
}

func TestService_CreateDualModeTests_EmptyInput(t *testing.T) {
	svc := newTestService(&mockAgentCaller{}, &mockTestRepo{}, &mockWordRepo{}, &mockTranslationRepo{})

	_, err := svc.CreateDualModeTests(context.Background(), 1, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ===========================================================================
// GetTest
// ===========================================================================

func storedTest(mode domain.TestMode) *domain.Test {
	return &domain.Test{
		ID:                 11,
		UserID:             1,
		WordID:             7,
		Word:               "sophisticated",
		CorrectTranslation: "утончённый",
		WrongOptions:       [3]string{"простой", "грубый", "наивный"},
		Mode:               mode,
		CreatedAt:          time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestService_GetTest_ShuffleIsStable(t *testing.T) {
	tests := &mockTestRepo{
		GetByIDFunc: func(ctx context.Context, userID, testID int64) (*domain.Test, error) {
			return storedTest(domain.TestModeWordToTranslation), nil
		},
	}
	svc := newTestService(&mockAgentCaller{}, tests, &mockWordRepo{}, &mockTranslationRepo{})

	first, err := svc.GetTest(context.Background(), 1, 11)
	require.NoError(t, err)
	second, err := svc.GetTest(context.Background(), 1, 11)
	require.NoError(t, err)

	assert.Equal(t, "sophisticated", first.Prompt)
	assert.ElementsMatch(t,
		[]string{"утончённый", "простой", "грубый", "наивный"},
		first.Options[:],
	)
	assert.Equal(t, first.Options, second.Options)
}

func TestService_GetTest_ReverseModePrompt(t *testing.T) {
	tests := &mockTestRepo{
		GetByIDFunc: func(ctx context.Context, userID, testID int64) (*domain.Test, error) {
			test := storedTest(domain.TestModeTranslationToWord)
			test.WrongOptions = [3]string{"simple", "rude", "naive"}
			return test, nil
		},
	}
	svc := newTestService(&mockAgentCaller{}, tests, &mockWordRepo{}, &mockTranslationRepo{})

	view, err := svc.GetTest(context.Background(), 1, 11)
	require.NoError(t, err)

	assert.Equal(t, "утончённый", view.Prompt)
	assert.ElementsMatch(t,
		[]string{"sophisticated", "simple", "rude", "naive"},
		view.Options[:],
	)
}

func TestService_GetTest_NotFound(t *testing.T) {
	svc := newTestService(&mockAgentCaller{}, &mockTestRepo{}, &mockWordRepo{}, &mockTranslationRepo{})

	_, err := svc.GetTest(context.Background(), 1, 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ===========================================================================
// SubmitAnswer
// ===========================================================================

func TestService_SubmitAnswer_CorrectPromotesAtCap(t *testing.T) {
	word := learningWord(7, "sophisticated")
	word.Rating = 9

	tests := &mockTestRepo{
		GetByIDFunc: func(ctx context.Context, userID, testID int64) (*domain.Test, error) {
			return storedTest(domain.TestModeWordToTranslation), nil
		},
	}
	tests.DeleteFunc = func(ctx context.Context, userID, testID int64) error {
		tests.deleted = append(tests.deleted, testID)
		return nil
	}
	tests.RecordResultFunc = func(ctx context.Context, userID, wordID int64, correct bool) error {
		tests.results = append(tests.results, correct)
		return nil
	}
	words := &mockWordRepo{
		GetByIDFunc: func(ctx context.Context, userID, wordID int64) (*domain.DictionaryWord, error) {
			return word, nil
		},
	}
	translations := &mockTranslationRepo{
		GetByWordIDFunc: func(ctx context.Context, wordID int64) ([]domain.Translation, error) {
			return []domain.Translation{
				{Translation: "утончённый"},
				{Translation: "изощрённый"},
			}, nil
		},
	}
	svc := newTestService(&mockAgentCaller{}, tests, words, translations)

	result, err := svc.SubmitAnswer(context.Background(), 1, 11, "утончённый")
	require.NoError(t, err)

	assert.True(t, result.IsCorrect)
	assert.Equal(t, 10, result.NewRating)
	assert.Equal(t, domain.WordStatusLearned, result.NewStatus)
	assert.Equal(t, "sophisticated", result.Word)
	assert.Equal(t, []string{"изощрённый"}, result.AdditionalMeanings)
	assert.Equal(t, []int64{11}, tests.deleted)
	assert.Equal(t, []bool{true}, tests.results)
}

func TestService_SubmitAnswer_WrongDemotesLearned(t *testing.T) {
	word := learningWord(7, "sophisticated")
	word.Status = domain.WordStatusLearned
	word.Rating = 10

	tests := &mockTestRepo{
		GetByIDFunc: func(ctx context.Context, userID, testID int64) (*domain.Test, error) {
			return storedTest(domain.TestModeWordToTranslation), nil
		},
	}
	words := &mockWordRepo{
		GetByIDFunc: func(ctx context.Context, userID, wordID int64) (*domain.DictionaryWord, error) {
			return word, nil
		},
	}
	svc := newTestService(&mockAgentCaller{}, tests, words, &mockTranslationRepo{})

	result, err := svc.SubmitAnswer(context.Background(), 1, 11, "простой")
	require.NoError(t, err)

	assert.False(t, result.IsCorrect)
	assert.Equal(t, 0, result.NewRating)
	assert.Equal(t, domain.WordStatusLearning, result.NewStatus)
	assert.Equal(t, "утончённый", result.CorrectTranslation)
}

func TestService_SubmitAnswer_ReverseModeComparesWord(t *testing.T) {
	word := learningWord(7, "sophisticated")

	tests := &mockTestRepo{
		GetByIDFunc: func(ctx context.Context, userID, testID int64) (*domain.Test, error) {
			return storedTest(domain.TestModeTranslationToWord), nil
		},
	}
	words := &mockWordRepo{
		GetByIDFunc: func(ctx context.Context, userID, wordID int64) (*domain.DictionaryWord, error) {
			return word, nil
		},
	}
	svc := newTestService(&mockAgentCaller{}, tests, words, &mockTranslationRepo{})

	result, err := svc.SubmitAnswer(context.Background(), 1, 11, "sophisticated")
	require.NoError(t, err)
	assert.True(t, result.IsCorrect)
}

func TestService_SubmitAnswer_ForeignTestNotFound(t *testing.T) {
	svc := newTestService(&mockAgentCaller{}, &mockTestRepo{}, &mockWordRepo{}, &mockTranslationRepo{})

	_, err := svc.SubmitAnswer(context.Background(), 2, 11, "anything")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ===========================================================================
// PendingTests
// ===========================================================================

func TestService_PendingTests(t *testing.T) {
	tests := &mockTestRepo{
		ListByUserFunc: func(ctx context.Context, userID int64) ([]domain.Test, error) {
			return []domain.Test{{ID: 1}, {ID: 2}}, nil
		},
	}
	svc := newTestService(&mockAgentCaller{}, tests, &mockWordRepo{}, &mockTranslationRepo{})

	result, err := svc.PendingTests(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)
	assert.Len(t, result.Tests, 2)
}
