// Package vocab holds the vocabulary model shared by the loader, the
// progress store and the quiz: words, levels and languages.
package vocab

// Word is one original/translation pair. Immutable once loaded.
type Word struct {
	ID          int    `json:"id"`
	Original    string `json:"original"`
	Translation string `json:"translation"`
}

// Level is a fixed-size slice of a language's vocabulary played as one quiz.
type Level struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Words     []Word `json:"words"`
	Completed bool   `json:"completed"`
	Score     int    `json:"score"`
}

// Language is a loaded vocabulary with its generated levels.
type Language struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Words    []Word  `json:"words"`
	Levels   []Level `json:"levels"`
	Progress float64 `json:"progress"`
}

// Level returns the level with the given id.
func (l *Language) Level(id int) (Level, bool) {
	for _, lv := range l.Levels {
		if lv.ID == id {
			return lv, true
		}
	}
	return Level{}, false
}

// CompletedCount returns how many levels are marked completed.
func (l *Language) CompletedCount() int {
	n := 0
	for _, lv := range l.Levels {
		if lv.Completed {
			n++
		}
	}
	return n
}

// RecomputeProgress sets Progress to the percentage of completed levels.
// A language without levels has zero progress.
func (l *Language) RecomputeProgress() {
	if len(l.Levels) == 0 {
		l.Progress = 0
		return
	}
	l.Progress = float64(l.CompletedCount()) / float64(len(l.Levels)) * 100
}

// Clone returns a deep copy, so callers can hand out values without
// sharing level slices.
func (l Language) Clone() Language {
	out := l
	out.Words = append([]Word(nil), l.Words...)
	out.Levels = make([]Level, len(l.Levels))
	for i, lv := range l.Levels {
		lv.Words = append([]Word(nil), lv.Words...)
		out.Levels[i] = lv
	}
	return out
}
