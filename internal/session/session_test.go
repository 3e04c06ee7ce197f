package session

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/abhisek/lingua/internal/vocab"
)

func testLevel(n int) vocab.Level {
	lv := vocab.Level{ID: 1, Name: vocab.LevelName(1)}
	for i := 1; i <= n; i++ {
		lv.Words = append(lv.Words, vocab.Word{
			ID:          i,
			Original:    fmt.Sprintf("o%d", i),
			Translation: fmt.Sprintf("t%d", i),
		})
	}
	return lv
}

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(3, 5))
}

func newStarted(t *testing.T, n int) *State {
	t.Helper()
	s, err := New("spanish", testLevel(n), 10, testRand())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	Start(s)
	return s
}

func answerCorrect(t *testing.T, s *State) Outcome {
	t.Helper()
	i := s.CorrectIndex()
	if i < 0 {
		t.Fatalf("no correct option for word %d", s.Index)
	}
	return Choose(s, i)
}

func answerWrong(t *testing.T, s *State) Outcome {
	t.Helper()
	wrong := (s.CorrectIndex() + 1) % len(s.Options)
	return Choose(s, wrong)
}

func TestNew_LevelTooSmall(t *testing.T) {
	_, err := New("spanish", testLevel(MinLevelWords-1), 10, nil)
	if !errors.Is(err, ErrLevelTooSmall) {
		t.Errorf("err = %v, want ErrLevelTooSmall", err)
	}
	if _, err := New("spanish", testLevel(MinLevelWords), 10, nil); err != nil {
		t.Errorf("minimum level rejected: %v", err)
	}
}

func TestNew_DefaultTime(t *testing.T) {
	s, err := New("spanish", testLevel(5), 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if s.TimePerWord != DefaultTimePerWord {
		t.Errorf("TimePerWord = %d, want %d", s.TimePerWord, DefaultTimePerWord)
	}
	if s.Phase != PhaseLoading {
		t.Errorf("Phase = %v, want loading", s.Phase)
	}
}

func TestStart(t *testing.T) {
	s := newStarted(t, 5)
	if s.Phase != PhasePresenting {
		t.Errorf("Phase = %v, want presenting", s.Phase)
	}
	if s.Remaining != 10 || !s.TimerRunning {
		t.Errorf("Remaining = %d running = %v, want 10 true", s.Remaining, s.TimerRunning)
	}
	if len(s.Options) != 4 {
		t.Fatalf("options = %d, want 4", len(s.Options))
	}
	if s.Options[s.CorrectIndex()].Text != s.Word().Translation {
		t.Errorf("correct option %q, want %q", s.Options[s.CorrectIndex()].Text, s.Word().Translation)
	}
}

func TestAllCorrectScores100(t *testing.T) {
	s := newStarted(t, 5)
	var out Outcome
	for range 5 {
		out = answerCorrect(t, s)
		if !out.Accepted || !out.Correct {
			t.Fatalf("outcome = %+v, want accepted correct", out)
		}
	}
	if !out.Completed {
		t.Error("last correct answer should complete the level")
	}
	if s.Phase != PhaseCompleted {
		t.Errorf("Phase = %v, want completed", s.Phase)
	}
	if s.FinalScore != 100 {
		t.Errorf("FinalScore = %d, want 100", s.FinalScore)
	}
	if s.RunningScore != 5*PointsPerCorrect {
		t.Errorf("RunningScore = %d, want %d", s.RunningScore, 5*PointsPerCorrect)
	}

	sum := BuildSummary(s)
	if sum.Score != s.FinalScore {
		t.Errorf("summary score %d differs from recorded score %d", sum.Score, s.FinalScore)
	}
	if !sum.Passed {
		t.Error("100 should pass")
	}
}

func TestFourOfFiveScores80(t *testing.T) {
	s := newStarted(t, 5)
	for range 4 {
		answerCorrect(t, s)
	}
	answerWrong(t, s)
	if s.Phase != PhaseAnswered {
		t.Fatalf("Phase = %v, want answered", s.Phase)
	}
	if !Continue(s) {
		t.Fatal("Continue after last word should complete")
	}
	if s.FinalScore != 80 {
		t.Errorf("FinalScore = %d, want 80", s.FinalScore)
	}
	sum := BuildSummary(s)
	if sum.Correct != 4 || sum.Incorrect != 1 || sum.Score != 80 || !sum.Passed {
		t.Errorf("summary = %+v", sum)
	}
}

func TestWrongAnswerWaitsForContinue(t *testing.T) {
	s := newStarted(t, 5)
	out := answerWrong(t, s)
	if !out.Accepted || out.Correct || out.Completed {
		t.Errorf("outcome = %+v, want accepted incorrect", out)
	}
	if s.Phase != PhaseAnswered || s.TimerRunning {
		t.Errorf("phase = %v running = %v, want answered and stopped", s.Phase, s.TimerRunning)
	}
	if s.Index != 0 {
		t.Errorf("Index = %d, want 0 until continue", s.Index)
	}

	// Further choices are ignored until continue.
	if Choose(s, 0).Accepted {
		t.Error("choice in answered phase should be ignored")
	}
	if s.Incorrect != 1 {
		t.Errorf("Incorrect = %d, want 1", s.Incorrect)
	}

	if Continue(s) {
		t.Error("Continue on first word should not complete")
	}
	if s.Index != 1 || s.Phase != PhasePresenting {
		t.Errorf("after continue index = %d phase = %v", s.Index, s.Phase)
	}
}

func TestCorrectAnswerAdvancesImmediately(t *testing.T) {
	s := newStarted(t, 5)
	seq := s.Seq
	answerCorrect(t, s)
	if s.Index != 1 || s.Phase != PhasePresenting {
		t.Errorf("index = %d phase = %v, want 1 presenting", s.Index, s.Phase)
	}
	if s.Seq != seq+1 {
		t.Errorf("Seq = %d, want %d", s.Seq, seq+1)
	}
	if s.Remaining != s.TimePerWord {
		t.Errorf("Remaining = %d, want reset to %d", s.Remaining, s.TimePerWord)
	}
}

func TestTimeout(t *testing.T) {
	s := newStarted(t, 5)
	for i := 0; i < s.TimePerWord-1; i++ {
		if Tick(s, s.Seq) {
			t.Fatalf("timed out early at tick %d", i+1)
		}
	}
	if s.Remaining != 1 {
		t.Errorf("Remaining = %d, want 1", s.Remaining)
	}
	if !Tick(s, s.Seq) {
		t.Fatal("last tick should time out")
	}
	if s.Phase != PhaseAnswered || !s.TimedOut || s.Incorrect != 1 || s.TimerRunning {
		t.Errorf("after timeout: %+v", s)
	}
	if Tick(s, s.Seq) {
		t.Error("tick after timeout should be ignored")
	}
}

func TestStaleTickIgnored(t *testing.T) {
	s := newStarted(t, 5)
	stale := s.Seq
	answerCorrect(t, s)
	before := s.Remaining
	if Tick(s, stale) {
		t.Error("stale tick reported a timeout")
	}
	if s.Remaining != before {
		t.Errorf("stale tick changed Remaining to %d", s.Remaining)
	}
}

func TestChooseBadIndex(t *testing.T) {
	s := newStarted(t, 5)
	for _, i := range []int{-1, 4, 99} {
		if Choose(s, i).Accepted {
			t.Errorf("Choose(%d) accepted", i)
		}
	}
	if s.Phase != PhasePresenting || !s.TimerRunning {
		t.Error("bad index should leave the word in play")
	}
}

func TestBuildOptions(t *testing.T) {
	words := testLevel(8).Words
	rng := testRand()
	for i := range words {
		opts := BuildOptions(words, i, rng)
		if len(opts) != Distractors+1 {
			t.Fatalf("word %d: %d options, want %d", i, len(opts), Distractors+1)
		}
		seen := map[string]bool{}
		correct := 0
		for _, o := range opts {
			if seen[o.Text] {
				t.Errorf("word %d: duplicate option %q", i, o.Text)
			}
			seen[o.Text] = true
			if o.Correct {
				correct++
				if o.Text != words[i].Translation {
					t.Errorf("word %d: correct option %q", i, o.Text)
				}
			}
		}
		if correct != 1 {
			t.Errorf("word %d: %d correct options, want 1", i, correct)
		}
	}
}

func TestBuildOptions_SharedTranslationExcluded(t *testing.T) {
	words := []vocab.Word{
		{ID: 1, Original: "perro", Translation: "dog"},
		{ID: 2, Original: "can", Translation: "dog"},
		{ID: 3, Original: "gato", Translation: "cat"},
		{ID: 4, Original: "pez", Translation: "fish"},
		{ID: 5, Original: "ave", Translation: "bird"},
	}
	for range 20 {
		opts := BuildOptions(words, 0, nil)
		if len(opts) != 4 {
			t.Fatalf("options = %d, want 4", len(opts))
		}
		dogs := 0
		for _, o := range opts {
			if o.Text == "dog" {
				dogs++
			}
		}
		if dogs != 1 {
			t.Fatalf("dog appears %d times", dogs)
		}
	}
}

func TestBuildOptions_TooFewDistinct(t *testing.T) {
	words := []vocab.Word{
		{ID: 1, Original: "a", Translation: "x"},
		{ID: 2, Original: "b", Translation: "x"},
		{ID: 3, Original: "c", Translation: "y"},
		{ID: 4, Original: "d", Translation: "z"},
	}
	if opts := BuildOptions(words, 0, nil); opts != nil {
		t.Errorf("options = %v, want none", opts)
	}
}

func TestNoOptionsAnswerableByTimeout(t *testing.T) {
	lv := testLevel(4)
	lv.Words[1].Translation = lv.Words[0].Translation
	s, err := New("spanish", lv, 5, nil)
	if err != nil {
		t.Fatal(err)
	}
	Start(s)
	if len(s.Options) != 0 {
		t.Fatalf("options = %d, want 0", len(s.Options))
	}
	for !Tick(s, s.Seq) {
	}
	if s.Phase != PhaseAnswered {
		t.Errorf("Phase = %v, want answered", s.Phase)
	}
}

func TestReplay(t *testing.T) {
	s := newStarted(t, 6)
	for range 6 {
		answerWrong(t, s)
		Continue(s)
	}
	if s.Phase != PhaseCompleted || s.FinalScore != 0 {
		t.Fatalf("phase = %v score = %d", s.Phase, s.FinalScore)
	}
	oldID := s.SessionID
	oldSeq := s.Seq

	Replay(s)
	if s.Phase != PhasePresenting || s.Index != 0 {
		t.Errorf("phase = %v index = %d", s.Phase, s.Index)
	}
	if s.Correct != 0 || s.Incorrect != 0 || s.RunningScore != 0 || s.FinalScore != 0 {
		t.Errorf("counters not reset: %+v", s)
	}
	if s.SessionID == oldID {
		t.Error("replay should get a new session id")
	}
	if s.Seq <= oldSeq {
		t.Errorf("Seq = %d, want > %d so old ticks stay stale", s.Seq, oldSeq)
	}
	if len(s.Level.Words) != 6 {
		t.Errorf("words = %d, want 6", len(s.Level.Words))
	}
	got := map[int]bool{}
	for _, w := range s.Level.Words {
		got[w.ID] = true
	}
	if len(got) != 6 {
		t.Errorf("replayed level lost words: %v", got)
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		correct, total, want int
	}{
		{5, 5, 100},
		{4, 5, 80},
		{2, 3, 67},
		{1, 3, 33},
		{0, 5, 0},
		{0, 0, 0},
	}
	for _, tt := range tests {
		if got := Score(tt.correct, tt.total); got != tt.want {
			t.Errorf("Score(%d, %d) = %d, want %d", tt.correct, tt.total, got, tt.want)
		}
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseAnswered.String() != "answered" || Phase(42).String() != "unknown" {
		t.Error("unexpected phase names")
	}
}
