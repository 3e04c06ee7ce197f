// Package session implements the quiz loop for one level: word sequencing,
// the per-word countdown, multiple-choice options and scoring. It is a pure
// state machine; the TUI screen feeds it key presses and timer ticks.
package session

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/lingua/internal/vocab"
)

const (
	// PointsPerCorrect is added to the running score for each correct answer.
	PointsPerCorrect = 20

	// Distractors is the number of wrong options shown alongside the answer.
	Distractors = 3

	// MinLevelWords is the smallest playable level: the answer plus enough
	// other words to draw every distractor from.
	MinLevelWords = Distractors + 1

	// DefaultTimePerWord is used when a non-positive time is given.
	DefaultTimePerWord = 30
)

// ErrLevelTooSmall is returned for levels with fewer than MinLevelWords words.
var ErrLevelTooSmall = errors.New("level too small")

// Outcome reports the effect of a Choose call.
type Outcome struct {
	// Accepted is false when the choice was ignored (wrong phase or bad index).
	Accepted bool
	Correct  bool
	// Completed is true when this answer finished the level.
	Completed bool
}

// New creates a session for level. A nil rng uses the global source.
func New(languageID string, level vocab.Level, timePerWord int, rng *rand.Rand) (*State, error) {
	if len(level.Words) < MinLevelWords {
		return nil, fmt.Errorf("%w: %s has %d words, need %d", ErrLevelTooSmall, level.Name, len(level.Words), MinLevelWords)
	}
	if timePerWord <= 0 {
		timePerWord = DefaultTimePerWord
	}
	level.Words = append([]vocab.Word(nil), level.Words...)
	return &State{
		Level:       level,
		LanguageID:  languageID,
		SessionID:   uuid.NewString(),
		TimePerWord: timePerWord,
		Phase:       PhaseLoading,
		Chosen:      -1,
		rng:         rng,
	}, nil
}

// Start presents the first word.
func Start(state *State) {
	state.StartedAt = time.Now()
	state.EndedAt = time.Time{}
	present(state, 0)
}

// present shows word i with fresh options and a full countdown.
func present(state *State, i int) {
	state.Phase = PhasePresenting
	state.Index = i
	state.Seq++
	state.Chosen = -1
	state.TimedOut = false
	state.Options = BuildOptions(state.Level.Words, i, state.rng)
	state.Remaining = state.TimePerWord
	state.TimerRunning = true
}

// Tick advances the countdown by one second. seq is the Seq the tick was
// scheduled for; stale ticks are ignored. Returns true when the tick ran
// the timer out, which scores the word as incorrect.
func Tick(state *State, seq int) bool {
	if state.Phase != PhasePresenting || !state.TimerRunning || seq != state.Seq {
		return false
	}
	if state.Remaining > 0 {
		state.Remaining--
	}
	if state.Remaining > 0 {
		return false
	}
	state.TimerRunning = false
	state.TimedOut = true
	state.Incorrect++
	state.Phase = PhaseAnswered
	return true
}

// Choose answers the current word with option index. A correct answer
// advances immediately; a wrong one waits for Continue.
func Choose(state *State, index int) Outcome {
	if state.Phase != PhasePresenting || index < 0 || index >= len(state.Options) {
		return Outcome{}
	}
	state.TimerRunning = false
	state.Chosen = index

	if !state.Options[index].Correct {
		state.Incorrect++
		state.Phase = PhaseAnswered
		return Outcome{Accepted: true}
	}

	state.Correct++
	state.RunningScore += PointsPerCorrect
	completed := advance(state)
	return Outcome{Accepted: true, Correct: true, Completed: completed}
}

// Continue moves past a wrong answer or timeout. Returns true when the
// level is completed.
func Continue(state *State) bool {
	if state.Phase != PhaseAnswered {
		return false
	}
	return advance(state)
}

// advance presents the next word or completes the level.
func advance(state *State) bool {
	if state.IsLastWord() {
		complete(state)
		return true
	}
	present(state, state.Index+1)
	return false
}

func complete(state *State) {
	state.Phase = PhaseCompleted
	state.TimerRunning = false
	state.Options = nil
	state.EndedAt = time.Now()
	state.FinalScore = Score(state.Correct, state.Total())
}

// Replay restarts the level with its words reshuffled and every counter reset.
func Replay(state *State) {
	level := vocab.ReshuffleLevel(state.Level, state.rng)
	*state = State{
		Level:       level,
		LanguageID:  state.LanguageID,
		SessionID:   uuid.NewString(),
		TimePerWord: state.TimePerWord,
		Phase:       PhaseLoading,
		Seq:         state.Seq,
		Chosen:      -1,
		rng:         state.rng,
	}
	Start(state)
}

// Score is the completion percentage for correct answers out of total,
// rounded to the nearest integer.
func Score(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) * 100 / float64(total)))
}

// BuildOptions returns the answer for words[i] plus Distractors distinct
// translations drawn from the other words, shuffled. Words sharing the
// answer's translation are never used as distractors. Returns nil when
// not enough distinct translations exist.
func BuildOptions(words []vocab.Word, i int, rng *rand.Rand) []Option {
	if i < 0 || i >= len(words) {
		return nil
	}
	answer := words[i].Translation

	seen := map[string]bool{answer: true}
	var pool []string
	for j, w := range words {
		if j == i || seen[w.Translation] {
			continue
		}
		seen[w.Translation] = true
		pool = append(pool, w.Translation)
	}
	if len(pool) < Distractors {
		return nil
	}

	shuffleStrings(pool, rng)
	opts := make([]Option, 0, Distractors+1)
	opts = append(opts, Option{Text: answer, Correct: true})
	for _, t := range pool[:Distractors] {
		opts = append(opts, Option{Text: t})
	}
	swap := func(a, b int) { opts[a], opts[b] = opts[b], opts[a] }
	if rng != nil {
		rng.Shuffle(len(opts), swap)
	} else {
		rand.Shuffle(len(opts), swap)
	}
	return opts
}

func shuffleStrings(s []string, rng *rand.Rand) {
	swap := func(a, b int) { s[a], s[b] = s[b], s[a] }
	if rng != nil {
		rng.Shuffle(len(s), swap)
		return
	}
	rand.Shuffle(len(s), swap)
}
