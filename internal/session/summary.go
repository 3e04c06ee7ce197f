package session

import (
	"time"

	"github.com/abhisek/lingua/internal/progress"
)

// Summary holds the data displayed on the results screen.
type Summary struct {
	LanguageID   string
	LevelID      int
	LevelName    string
	Total        int
	Correct      int
	Incorrect    int
	Score        int
	Passed       bool
	RunningScore int
	Duration     time.Duration
}

// BuildSummary creates a Summary from a completed session. The score is
// the same value recorded in progress.
func BuildSummary(state *State) *Summary {
	score := state.FinalScore
	if state.Phase != PhaseCompleted {
		score = Score(state.Correct, state.Total())
	}
	var d time.Duration
	if !state.StartedAt.IsZero() && !state.EndedAt.IsZero() {
		d = state.EndedAt.Sub(state.StartedAt)
	}
	return &Summary{
		LanguageID:   state.LanguageID,
		LevelID:      state.Level.ID,
		LevelName:    state.Level.Name,
		Total:        state.Total(),
		Correct:      state.Correct,
		Incorrect:    state.Incorrect,
		Score:        score,
		Passed:       score >= progress.PassThreshold,
		RunningScore: state.RunningScore,
		Duration:     d,
	}
}
