package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/wordflow/wordflow-backend/internal/adapter/postgres"
	"github.com/wordflow/wordflow-backend/internal/adapter/postgres/testhelper"
)

// wordExists checks whether a dictionary word with the given lemma exists.
func wordExists(t *testing.T, pool *pgxpool.Pool, userID int64, lemma string) bool {
	t.Helper()
	var exists bool
	err := pool.QueryRow(
		context.Background(),
		`SELECT EXISTS(SELECT 1 FROM dictionary_words WHERE user_id = $1 AND lemma = $2)`,
		userID, lemma,
	).Scan(&exists)
	if err != nil {
		t.Fatalf("wordExists query: %v", err)
	}
	return exists
}

func TestRunInTx_Commit(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	user := testhelper.SeedUser(t, pool)

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, pool)
		_, err := q.Exec(ctx,
			`INSERT INTO dictionary_words (user_id, lemma, type, status)
			 VALUES ($1, $2, 'word', 'new')`,
			user.ID, "commit-lemma",
		)
		return err
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if !wordExists(t, pool, user.ID, "commit-lemma") {
		t.Fatal("expected word to exist after committed transaction")
	}
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	user := testhelper.SeedUser(t, pool)
	wantErr := errors.New("boom")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, pool)
		if _, err := q.Exec(ctx,
			`INSERT INTO dictionary_words (user_id, lemma, type, status)
			 VALUES ($1, $2, 'word', 'new')`,
			user.ID, "rollback-lemma",
		); err != nil {
			return err
		}
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("RunInTx error = %v, want %v", err, wantErr)
	}

	if wordExists(t, pool, user.ID, "rollback-lemma") {
		t.Fatal("expected word to be rolled back")
	}
}

func TestRunInTx_RollbackOnPanic(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	user := testhelper.SeedUser(t, pool)

	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Fatal("expected RunInTx to re-panic")
			}
		}()
		_ = tm.RunInTx(context.Background(), func(ctx context.Context) error {
			q := postgres.QuerierFromCtx(ctx, pool)
			if _, err := q.Exec(ctx,
				`INSERT INTO dictionary_words (user_id, lemma, type, status)
				 VALUES ($1, $2, 'word', 'new')`,
				user.ID, "panic-lemma",
			); err != nil {
				return err
			}
			panic("boom")
		})
	}()

	if wordExists(t, pool, user.ID, "panic-lemma") {
		t.Fatal("expected word to be rolled back after panic")
	}
}

func TestQuerierFromCtx_WithoutTxReturnsPool(t *testing.T) {
	pool := testhelper.SetupTestDB(t)

	q := postgres.QuerierFromCtx(context.Background(), pool)
	if q != postgres.Querier(pool) {
		t.Fatal("expected pool when context carries no transaction")
	}
}
