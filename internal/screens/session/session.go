// Package session is the quiz screen for one level.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingua/internal/imagegen"
	"github.com/abhisek/lingua/internal/router"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/screens/summary"
	sess "github.com/abhisek/lingua/internal/session"
	"github.com/abhisek/lingua/internal/ui/components"
	"github.com/abhisek/lingua/internal/ui/layout"
	"github.com/abhisek/lingua/internal/vocab"
)

const imageTimeout = 30 * time.Second

// SessionScreen implements screen.Screen for an active quiz.
type SessionScreen struct {
	svc     screen.Services
	state   *sess.State
	choices components.MultiChoice

	confirmQuit bool
	recorded    bool
	flash       string

	image    string
	imageErr string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.EscCapturer = (*SessionScreen)(nil)

// New creates a quiz over level using the current time-per-word setting.
func New(svc screen.Services, languageID string, level vocab.Level) (*SessionScreen, error) {
	state, err := sess.New(languageID, level, svc.Game.Settings().TimePerWord, nil)
	if err != nil {
		return nil, err
	}
	return &SessionScreen{svc: svc, state: state}, nil
}

// State exposes the quiz state for inspection.
func (s *SessionScreen) State() *sess.State {
	return s.state
}

func (s *SessionScreen) Init() tea.Cmd {
	if s.state.Phase == sess.PhaseLoading {
		sess.Start(s.state)
	}
	return s.present()
}

// present resets per-word UI state and starts the timer and image load
// for the word now showing.
func (s *SessionScreen) present() tea.Cmd {
	opts := make([]string, len(s.state.Options))
	for i, o := range s.state.Options {
		opts[i] = o.Text
	}
	s.choices = components.NewMultiChoice(opts)
	s.image = ""
	s.imageErr = ""
	return tea.Batch(tickCmd(s.state.Seq), s.loadImage())
}

func (s *SessionScreen) Title() string {
	return s.state.Level.Name
}

func (s *SessionScreen) CapturesEsc() bool {
	return true
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Quit level"},
			{Key: "N", Description: "Keep playing"},
		}
	}
	if s.state.Phase == sess.PhaseAnswered {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "1-4", Description: "Answer"},
		{Key: "↑↓ Enter", Description: "Select"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		return s.handleTick(msg)

	case components.ChooseMsg:
		return s.handleChoose(msg.Index)

	case imageReadyMsg:
		if msg.Seq == s.state.Seq {
			s.applyImage(msg)
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *SessionScreen) handleTick(msg timerTickMsg) (screen.Screen, tea.Cmd) {
	if sess.Tick(s.state, msg.Seq) {
		s.flash = ""
		s.choices.Reveal(s.state.CorrectIndex(), -1)
		return s, nil
	}
	if s.state.Phase == sess.PhasePresenting && s.state.TimerRunning && msg.Seq == s.state.Seq {
		return s, tickCmd(msg.Seq)
	}
	return s, nil
}

func (s *SessionScreen) handleChoose(index int) (screen.Screen, tea.Cmd) {
	if s.confirmQuit {
		return s, nil
	}
	out := sess.Choose(s.state, index)
	if !out.Accepted {
		return s, nil
	}
	if !out.Correct {
		s.flash = ""
		s.choices.Reveal(s.state.CorrectIndex(), index)
		return s, nil
	}
	s.flash = fmt.Sprintf("Correct! +%d", sess.PointsPerCorrect)
	if out.Completed {
		return s, s.finish()
	}
	return s, s.present()
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			// Quitting discards the attempt; progress is untouched.
			s.state.TimerRunning = false
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	if key == "esc" {
		s.confirmQuit = true
		return s, nil
	}

	switch s.state.Phase {
	case sess.PhaseAnswered:
		if key == "enter" || key == "space" {
			if sess.Continue(s.state) {
				return s, s.finish()
			}
			return s, s.present()
		}
	case sess.PhasePresenting:
		var cmd tea.Cmd
		s.choices, cmd = s.choices.Update(msg)
		return s, cmd
	}
	return s, nil
}

// finish records the result once and swaps in the summary screen.
func (s *SessionScreen) finish() tea.Cmd {
	if !s.recorded {
		s.recorded = true
		s.svc.Game.UpdateProgress(context.Background(), s.state.LanguageID, s.state.Level.ID, s.state.FinalScore)
	}
	sum := summary.New(sess.BuildSummary(s.state), s.replay)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: sum} }
}

// replay builds a fresh screen playing the same level reshuffled.
func (s *SessionScreen) replay() screen.Screen {
	state := *s.state
	sess.Replay(&state)
	return &SessionScreen{svc: s.svc, state: &state}
}

func (s *SessionScreen) loadImage() tea.Cmd {
	if s.svc.Images == nil || !s.svc.Game.Settings().UseImages {
		return nil
	}
	images := s.svc.Images
	word := s.state.Word()
	seq := s.state.Seq
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), imageTimeout)
		defer cancel()
		img, err := images.GenerateFor(ctx, word.Original, word.Translation)
		return imageReadyMsg{Seq: seq, Image: img, Err: err}
	}
}

// applyImage replaces whatever image state the word had with msg's outcome.
func (s *SessionScreen) applyImage(msg imageReadyMsg) {
	s.image, s.imageErr = "", ""
	switch {
	case msg.Err == nil:
		s.image = msg.Image.Path
	case errors.Is(msg.Err, imagegen.ErrImagesDisabled):
	case errors.Is(msg.Err, imagegen.ErrNoClient):
		s.imageErr = "no image provider key set"
	case errors.Is(msg.Err, imagegen.ErrQuotaExceeded):
		s.imageErr = "image quota exceeded"
	default:
		s.imageErr = "image unavailable"
	}
}

// tickCmd returns a 1-second tick for the word presented as seq.
func tickCmd(seq int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return timerTickMsg{Seq: seq}
	})
}
