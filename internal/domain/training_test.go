package domain

import "testing"

func TestNextSelectionPosition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pos  int
		want int
	}{
		{1, 2},
		{2, 3},
		{7, 8},
		{8, 1},
		{0, 1},
		{-3, 1},
		{9, 1},
	}
	for _, tt := range tests {
		if got := NextSelectionPosition(tt.pos); got != tt.want {
			t.Errorf("NextSelectionPosition(%d) = %d, want %d", tt.pos, got, tt.want)
		}
	}
}

func TestNextSelectionPosition_FullCycle(t *testing.T) {
	t.Parallel()

	seen := make(map[int]bool)
	pos := FirstSelectionPosition
	for i := 0; i < SelectionPositions; i++ {
		seen[pos] = true
		pos = NextSelectionPosition(pos)
	}
	if len(seen) != SelectionPositions {
		t.Fatalf("cycle visited %d positions, want %d", len(seen), SelectionPositions)
	}
	if pos != FirstSelectionPosition {
		t.Errorf("cycle ended at %d, want %d", pos, FirstSelectionPosition)
	}
}

func TestTestMode_IsValid(t *testing.T) {
	t.Parallel()

	if !TestModeWordToTranslation.IsValid() || !TestModeTranslationToWord.IsValid() {
		t.Error("expected modes 1 and 2 to be valid")
	}
	if TestMode(0).IsValid() || TestMode(3).IsValid() {
		t.Error("expected modes outside 1..2 to be invalid")
	}
}
