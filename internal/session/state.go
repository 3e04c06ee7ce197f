package session

import (
	"math/rand/v2"
	"time"

	"github.com/abhisek/lingua/internal/vocab"
)

// Phase is the quiz phase.
type Phase int

const (
	PhaseLoading    Phase = iota // Level chosen, first word not yet shown
	PhasePresenting              // Word shown, timer running
	PhaseAnswered                // Wrong answer or timeout; waiting for continue
	PhaseCompleted               // Every word answered
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhasePresenting:
		return "presenting"
	case PhaseAnswered:
		return "answered"
	case PhaseCompleted:
		return "completed"
	}
	return "unknown"
}

// Option is one multiple-choice answer.
type Option struct {
	Text    string
	Correct bool
}

// State is the runtime state of one play-through of a level.
type State struct {
	// Level is the level being played, words in play order.
	Level vocab.Level

	// LanguageID identifies the language the level belongs to.
	LanguageID string

	// SessionID tags log lines for this play-through.
	SessionID string

	// TimePerWord is the countdown length in seconds.
	TimePerWord int

	Phase Phase

	// Index is the position of the current word in Level.Words.
	Index int

	// Seq increases every time a word is presented. Timer ticks carry the
	// Seq they were scheduled for so ticks from an earlier word are ignored.
	Seq int

	// Options for the current word. Empty when the level has too few
	// distinct translations to build distractors.
	Options []Option

	// Remaining seconds on the countdown.
	Remaining int

	// TimerRunning is true while the countdown is active.
	TimerRunning bool

	Correct   int
	Incorrect int

	// RunningScore adds PointsPerCorrect per correct answer. Display only.
	RunningScore int

	// Chosen is the index of the option picked for the current word, -1 if none.
	Chosen int

	// TimedOut is true when the current word was lost to the timer.
	TimedOut bool

	// FinalScore is the completion score (0-100), set on completion.
	FinalScore int

	StartedAt time.Time
	EndedAt   time.Time

	rng *rand.Rand
}

// Word returns the word currently being asked.
func (s *State) Word() vocab.Word {
	if s.Index < 0 || s.Index >= len(s.Level.Words) {
		return vocab.Word{}
	}
	return s.Level.Words[s.Index]
}

// Total returns the number of words in the level.
func (s *State) Total() int {
	return len(s.Level.Words)
}

// Answered returns how many words have been scored.
func (s *State) Answered() int {
	return s.Correct + s.Incorrect
}

// CorrectIndex returns the index of the correct option, or -1.
func (s *State) CorrectIndex() int {
	for i, o := range s.Options {
		if o.Correct {
			return i
		}
	}
	return -1
}

// IsLastWord reports whether the current word is the final one.
func (s *State) IsLastWord() bool {
	return s.Index >= len(s.Level.Words)-1
}
