package domain

import "time"

// Selection cursor bounds for the rotating training selector.
const (
	FirstSelectionPosition = 1
	SelectionPositions     = 8
)

// TrainingState stores the per-user cursor of the rotating word selector.
type TrainingState struct {
	UserID                int64
	LastSelectionPosition int
	LastTrainingAt        *time.Time
}

// NextSelectionPosition advances the cursor, wrapping from 8 back to 1.
// Out-of-range input is treated as the first position.
func NextSelectionPosition(pos int) int {
	if pos < FirstSelectionPosition || pos > SelectionPositions {
		return FirstSelectionPosition
	}
	return pos%SelectionPositions + 1
}
