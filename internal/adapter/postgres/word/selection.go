package word

import (
	"context"
	"fmt"

	postgres "github.com/wordflow/wordflow-backend/internal/adapter/postgres"
	"github.com/wordflow/wordflow-backend/internal/domain"
)

// Per-position queries of the rotating training selector. Positions 4 and 6
// share the top-rated query, positions 3 and 7 share the oldest-new query.

const selectNewestNewSQL = `
SELECT` + wordColumns + `
FROM dictionary_words w
WHERE w.user_id = $1 AND w.status = 'new'
ORDER BY w.added_at DESC
LIMIT $2`

const selectStaleLearningSQL = `
SELECT` + wordColumns + `
FROM dictionary_words w
WHERE w.user_id = $1 AND w.status = 'learning'
ORDER BY COALESCE(w.last_reviewed_at, w.added_at) ASC
LIMIT $2`

const selectOldestNewSQL = `
SELECT` + wordColumns + `
FROM dictionary_words w
WHERE w.user_id = $1 AND w.status = 'new'
ORDER BY w.added_at ASC
LIMIT $2`

const selectTopRatedSQL = `
SELECT` + wordColumns + `
FROM dictionary_words w
WHERE w.user_id = $1
  AND w.status = 'learning'
  AND COALESCE(w.rating, 0) = (
      SELECT MAX(COALESCE(rating, 0))
      FROM dictionary_words
      WHERE user_id = $1 AND status = 'learning'
  )
ORDER BY random()
LIMIT $2`

const selectDroppedLearningSQL = `
SELECT` + wordColumns + `
FROM dictionary_words w
WHERE w.user_id = $1
  AND w.status = 'learning'
  AND w.rating = 0
  AND w.last_rating_change IS NOT NULL
ORDER BY w.last_rating_change DESC
LIMIT $2`

const selectRandomLearnedSQL = `
SELECT` + wordColumns + `
FROM dictionary_words w
WHERE w.user_id = $1 AND w.status = 'learned'
ORDER BY random()
LIMIT $2`

// SelectForPosition returns training candidates for one selector position
// (1..8). Each position has its own ordering strategy; see the SQL above.
func (r *Repo) SelectForPosition(ctx context.Context, userID int64, position, limit int) ([]domain.DictionaryWord, error) {
	var query string
	switch position {
	case 1:
		query = selectNewestNewSQL
	case 2:
		query = selectStaleLearningSQL
	case 3, 7:
		query = selectOldestNewSQL
	case 4, 6:
		query = selectTopRatedSQL
	case 5:
		query = selectDroppedLearningSQL
	case 8:
		query = selectRandomLearnedSQL
	default:
		return nil, fmt.Errorf("select for position %d: %w", position, domain.ErrValidation)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("select for position %d: %w", position, err)
	}
	defer rows.Close()

	words, err := scanWords(rows)
	if err != nil {
		return nil, fmt.Errorf("select for position %d: %w", position, err)
	}

	return words, nil
}
