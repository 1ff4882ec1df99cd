package analysis

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wordflow/wordflow-backend/internal/domain"
)

// AddHighlight records that the user saved a dictionary word out of an
// analysis. Both the analysis and the word must exist and belong to the
// user; the link gets the next position within the analysis.
func (s *Service) AddHighlight(ctx context.Context, userID, analysisID, wordID int64) (*domain.Highlight, error) {
	var h domain.Highlight

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		a, err := s.analyses.GetByID(txCtx, analysisID)
		if err != nil {
			return err
		}
		if a.UserID != nil && *a.UserID != userID {
			return fmt.Errorf("analysis %d: %w", analysisID, domain.ErrNotFound)
		}

		w, err := s.words.GetByID(txCtx, userID, wordID)
		if err != nil {
			return err
		}

		h = domain.Highlight{AnalysisID: a.ID, WordID: w.ID}
		return s.analyses.CreateHighlight(txCtx, &h)
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "highlight saved",
		slog.Int64("analysis_id", analysisID),
		slog.Int64("word_id", wordID),
		slog.Int("position", h.Position),
	)

	return &h, nil
}
