package training

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordflow/wordflow-backend/internal/domain"
)

// ===========================================================================
// Manual mocks (moq-style with func fields)
// ===========================================================================

type mockWordRepo struct {
	positions []int

	SelectForPositionFunc func(ctx context.Context, userID int64, position, limit int) ([]domain.DictionaryWord, error)
}

func (m *mockWordRepo) SelectForPosition(ctx context.Context, userID int64, position, limit int) ([]domain.DictionaryWord, error) {
	m.positions = append(m.positions, position)
	if m.SelectForPositionFunc != nil {
		return m.SelectForPositionFunc(ctx, userID, position, limit)
	}
	return nil, nil
}

type mockTranslationRepo struct {
	FirstForWordFunc func(ctx context.Context, wordID int64) (*domain.Translation, error)
}

func (m *mockTranslationRepo) FirstForWord(ctx context.Context, wordID int64) (*domain.Translation, error) {
	if m.FirstForWordFunc != nil {
		return m.FirstForWordFunc(ctx, wordID)
	}
	return nil, domain.ErrNotFound
}

type mockStateRepo struct {
	saved *domain.TrainingState

	GetFunc  func(ctx context.Context, userID int64) (*domain.TrainingState, error)
	SaveFunc func(ctx context.Context, s *domain.TrainingState) error
}

func (m *mockStateRepo) Get(ctx context.Context, userID int64) (*domain.TrainingState, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, userID)
	}
	return &domain.TrainingState{UserID: userID, LastSelectionPosition: domain.FirstSelectionPosition}, nil
}

func (m *mockStateRepo) Save(ctx context.Context, s *domain.TrainingState) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, s)
	}
	m.saved = s
	return nil
}

func newTestService(words *mockWordRepo, translations *mockTranslationRepo, state *mockStateRepo) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(logger, words, translations, state)
}

func word(id int64, lemma string) domain.DictionaryWord {
	return domain.DictionaryWord{ID: id, UserID: 1, Lemma: lemma, Type: domain.WordTypeWord}
}

// ===========================================================================
// SelectWords
// ===========================================================================

func TestService_SelectWords_RotatesFromSavedPosition(t *testing.T) {
	byPosition := map[int][]domain.DictionaryWord{
		3: {word(3, "three")},
		4: {word(4, "four")},
		5: {word(5, "five")},
		6: {word(6, "six")},
	}
	words := &mockWordRepo{
		SelectForPositionFunc: func(ctx context.Context, userID int64, position, limit int) ([]domain.DictionaryWord, error) {
			return byPosition[position], nil
		},
	}
	state := &mockStateRepo{
		GetFunc: func(ctx context.Context, userID int64) (*domain.TrainingState, error) {
			return &domain.TrainingState{UserID: userID, LastSelectionPosition: 3}, nil
		},
	}
	svc := newTestService(words, &mockTranslationRepo{}, state)

	selected, err := svc.SelectWords(context.Background(), 1, 4)
	require.NoError(t, err)

	require.Len(t, selected, 4)
	assert.Equal(t, []int{3, 4, 5, 6}, words.positions)
	assert.Equal(t, int64(3), selected[0].ID)
	assert.Equal(t, int64(6), selected[3].ID)

	require.NotNil(t, state.saved)
	assert.Equal(t, 7, state.saved.LastSelectionPosition)
	assert.NotNil(t, state.saved.LastTrainingAt)
}

func TestService_SelectWords_AbortsAfterEmptyWrap(t *testing.T) {
	byPosition := map[int][]domain.DictionaryWord{
		1: {word(1, "alpha")},
		2: {word(2, "beta")},
	}
	words := &mockWordRepo{
		SelectForPositionFunc: func(ctx context.Context, userID int64, position, limit int) ([]domain.DictionaryWord, error) {
			return byPosition[position], nil
		},
	}
	state := &mockStateRepo{}
	svc := newTestService(words, &mockTranslationRepo{}, state)

	selected, err := svc.SelectWords(context.Background(), 1, 5)
	require.NoError(t, err)

	// Only two words exist: one full pass over all eight positions, then
	// the empty wrap back to position 1 stops the loop.
	require.Len(t, selected, 2)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, words.positions)
	require.NotNil(t, state.saved)
	assert.Equal(t, 1, state.saved.LastSelectionPosition)
}

func TestService_SelectWords_DedupesAcrossPositions(t *testing.T) {
	// Positions 1, 3 and 7 all resolve to the same single new word.
	only := word(9, "solitary")
	byPosition := map[int][]domain.DictionaryWord{
		1: {only},
		3: {only},
		7: {only},
	}
	words := &mockWordRepo{
		SelectForPositionFunc: func(ctx context.Context, userID int64, position, limit int) ([]domain.DictionaryWord, error) {
			return byPosition[position], nil
		},
	}
	svc := newTestService(words, &mockTranslationRepo{}, &mockStateRepo{})

	selected, err := svc.SelectWords(context.Background(), 1, 8)
	require.NoError(t, err)

	require.Len(t, selected, 1)
	assert.Equal(t, int64(9), selected[0].ID)
}

func TestService_SelectWords_IterationCap(t *testing.T) {
	// Every position returns the same word, so the selection never grows
	// past one and the loop has to stop at the iteration cap.
	words := &mockWordRepo{
		SelectForPositionFunc: func(ctx context.Context, userID int64, position, limit int) ([]domain.DictionaryWord, error) {
			return []domain.DictionaryWord{word(1, "loop")}, nil
		},
	}
	state := &mockStateRepo{}
	svc := newTestService(words, &mockTranslationRepo{}, state)

	selected, err := svc.SelectWords(context.Background(), 1, 3)
	require.NoError(t, err)

	require.Len(t, selected, 1)
	assert.Len(t, words.positions, maxIterations)
	require.NotNil(t, state.saved)
	assert.Equal(t, 5, state.saved.LastSelectionPosition)
}

func TestService_SelectWords_DefaultCount(t *testing.T) {
	var nextID int64
	words := &mockWordRepo{
		SelectForPositionFunc: func(ctx context.Context, userID int64, position, limit int) ([]domain.DictionaryWord, error) {
			nextID++
			return []domain.DictionaryWord{word(nextID, "w")}, nil
		},
	}
	svc := newTestService(words, &mockTranslationRepo{}, &mockStateRepo{})

	selected, err := svc.SelectWords(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Len(t, selected, defaultCount)
}

func TestService_SelectWords_RepoError(t *testing.T) {
	boom := errors.New("query failed")
	words := &mockWordRepo{
		SelectForPositionFunc: func(ctx context.Context, userID int64, position, limit int) ([]domain.DictionaryWord, error) {
			return nil, boom
		},
	}
	svc := newTestService(words, &mockTranslationRepo{}, &mockStateRepo{})

	_, err := svc.SelectWords(context.Background(), 1, 3)
	assert.ErrorIs(t, err, boom)
}

// ===========================================================================
// TranslationForWord
// ===========================================================================

func TestService_TranslationForWord(t *testing.T) {
	translations := &mockTranslationRepo{
		FirstForWordFunc: func(ctx context.Context, wordID int64) (*domain.Translation, error) {
			return &domain.Translation{ID: 1, WordID: wordID, Translation: "стимул"}, nil
		},
	}
	svc := newTestService(&mockWordRepo{}, translations, &mockStateRepo{})

	tr, err := svc.TranslationForWord(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "стимул", tr.Translation)
}

func TestService_TranslationForWord_NotFound(t *testing.T) {
	svc := newTestService(&mockWordRepo{}, &mockTranslationRepo{}, &mockStateRepo{})

	_, err := svc.TranslationForWord(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
