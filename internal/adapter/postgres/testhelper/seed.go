package testhelper

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wordflow/wordflow-backend/internal/domain"
)

// SeedUser creates a user with a random Telegram ID. Returns the stored row.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	ctx := context.Background()

	user := domain.User{
		TelegramID: rand.Int63n(1_000_000_000) + 1_000_000,
		FirstName:  "Test",
		AuthDate:   time.Now().UTC().Truncate(time.Microsecond),
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO users (telegram_id, first_name, auth_date)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, last_login_at`,
		user.TelegramID, user.FirstName, user.AuthDate,
	).Scan(&user.ID, &user.CreatedAt, &user.LastLoginAt)
	if err != nil {
		t.Fatalf("testhelper: SeedUser: %v", err)
	}

	return user
}

// SeedWord creates a dictionary word for the user.
func SeedWord(t *testing.T, pool *pgxpool.Pool, userID int64, lemma string, typ domain.WordType, status domain.WordStatus) domain.DictionaryWord {
	t.Helper()
	ctx := context.Background()

	w := domain.DictionaryWord{
		UserID: userID,
		Lemma:  lemma,
		Type:   typ,
		Status: status,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO dictionary_words (user_id, lemma, type, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, added_at`,
		w.UserID, w.Lemma, string(w.Type), string(w.Status),
	).Scan(&w.ID, &w.AddedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedWord %q: %v", lemma, err)
	}

	return w
}

// SeedTranslation creates a translation for the word.
func SeedTranslation(t *testing.T, pool *pgxpool.Pool, wordID int64, text string) domain.Translation {
	t.Helper()
	ctx := context.Background()

	tr := domain.Translation{WordID: wordID, Translation: text}

	err := pool.QueryRow(ctx,
		`INSERT INTO dictionary_translations (word_id, translation)
		 VALUES ($1, $2)
		 RETURNING id, added_at`,
		tr.WordID, tr.Translation,
	).Scan(&tr.ID, &tr.AddedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedTranslation %q: %v", text, err)
	}

	return tr
}

// SeedExample creates a usage example for the word.
func SeedExample(t *testing.T, pool *pgxpool.Pool, wordID int64, original, sentence string) domain.Example {
	t.Helper()
	ctx := context.Background()

	ex := domain.Example{WordID: wordID, OriginalForm: original, Context: sentence}

	err := pool.QueryRow(ctx,
		`INSERT INTO dictionary_examples (word_id, original_form, context)
		 VALUES ($1, $2, $3)
		 RETURNING id, added_at`,
		ex.WordID, ex.OriginalForm, ex.Context,
	).Scan(&ex.ID, &ex.AddedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedExample: %v", err)
	}

	return ex
}

// SeedTest creates a pending test for the word.
func SeedTest(t *testing.T, pool *pgxpool.Pool, userID, wordID int64, word, correct string, mode domain.TestMode) domain.Test {
	t.Helper()
	ctx := context.Background()

	test := domain.Test{
		UserID:             userID,
		WordID:             wordID,
		Word:               word,
		CorrectTranslation: correct,
		WrongOptions:       [3]string{"вариант 1", "вариант 2", "вариант 3"},
		Mode:               mode,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO tests (user_id, word_id, word, correct_translation,
		                    wrong_option_1, wrong_option_2, wrong_option_3, test_mode)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at`,
		test.UserID, test.WordID, test.Word, test.CorrectTranslation,
		test.WrongOptions[0], test.WrongOptions[1], test.WrongOptions[2], int(test.Mode),
	).Scan(&test.ID, &test.CreatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedTest: %v", err)
	}

	return test
}
