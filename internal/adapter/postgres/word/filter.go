package word

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	postgres "github.com/wordflow/wordflow-backend/internal/adapter/postgres"
	"github.com/wordflow/wordflow-backend/internal/domain"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

// normalizeFilter applies defaults and clamps values.
func normalizeFilter(f *domain.WordFilter) {
	switch f.SortBy {
	case "lemma", "added_at", "rating":
	default:
		f.SortBy = "added_at"
	}

	switch f.SortOrder {
	case "ASC", "DESC":
	default:
		f.SortOrder = "DESC"
	}

	if f.Limit <= 0 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

// List returns a user's words matching the filter plus the total match count.
func (r *Repo) List(ctx context.Context, userID int64, f domain.WordFilter) ([]domain.DictionaryWord, int, error) {
	normalizeFilter(&f)

	base := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select().
		From("dictionary_words w").
		Where(sq.Eq{"w.user_id": userID})

	if f.Status != nil {
		base = base.Where(sq.Eq{"w.status": string(*f.Status)})
	}
	if f.Type != nil {
		base = base.Where(sq.Eq{"w.type": string(*f.Type)})
	}
	if f.Search != nil && *f.Search != "" {
		base = base.Where(sq.ILike{"w.lemma": "%" + *f.Search + "%"})
	}

	countSQL, countArgs, err := base.Column("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	listSQL, listArgs, err := base.
		Column("w.id").Column("w.user_id").Column("w.lemma").Column("w.type").
		Column("w.status").Column("w.added_at").Column("w.last_reviewed_at").
		Column("w.review_count").Column("w.correct_streak").Column("w.rating").
		Column("w.last_rating_change").
		OrderBy(fmt.Sprintf("w.%s %s", f.SortBy, f.SortOrder)).
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var total int
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count words: %w", err)
	}

	rows, err := querier.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list words: %w", err)
	}
	defer rows.Close()

	words, err := scanWords(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("list words: %w", err)
	}

	return words, total, nil
}
