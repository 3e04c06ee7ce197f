package progress

import (
	"github.com/abhisek/lingua/internal/vocab"
)

// The transitions below are pure: they take values and return new values,
// leaving their inputs untouched. Store swaps the results in under its lock.

// applyScore records one finished level play in p.
func applyScore(p UserProgress, languageID string, levelID, score int) UserProgress {
	out := p.Clone()
	passed := score >= PassThreshold

	lp, ok := out.Languages[languageID]
	if !ok {
		completed := []int{}
		if passed {
			completed = append(completed, levelID)
		}
		out.Languages[languageID] = &LanguageProgress{
			CurrentLevel:    levelID + 1,
			TotalScore:      score,
			CompletedLevels: completed,
		}
	} else {
		if passed && levelID >= lp.CurrentLevel {
			lp.CurrentLevel = levelID + 1
		}
		if passed && !lp.Completed(levelID) {
			lp.CompletedLevels = append(lp.CompletedLevels, levelID)
		}
		lp.TotalScore += score
	}

	out.TotalScore += score
	return out
}

// markLevel sets the played level's score and marks it completed on a pass.
// A failing replay keeps an earlier completion.
func markLevel(lang vocab.Language, levelID, score int) vocab.Language {
	out := lang.Clone()
	for i := range out.Levels {
		if out.Levels[i].ID != levelID {
			continue
		}
		out.Levels[i].Score = score
		if score >= PassThreshold {
			out.Levels[i].Completed = true
		}
	}
	out.RecomputeProgress()
	return out
}

// resetLevels clears completion and score on every level.
func resetLevels(lang vocab.Language) vocab.Language {
	out := lang.Clone()
	for i := range out.Levels {
		out.Levels[i].Completed = false
		out.Levels[i].Score = 0
	}
	out.Progress = 0
	return out
}

// reapply annotates freshly generated levels with stored progress. Stored
// progress only knows which level ids were completed, so those get a
// score of 100 and the rest 0.
func reapply(lang vocab.Language, lp *LanguageProgress) vocab.Language {
	out := lang.Clone()
	if lp == nil {
		return out
	}
	for i := range out.Levels {
		done := lp.Completed(out.Levels[i].ID)
		out.Levels[i].Completed = done
		out.Levels[i].Score = 0
		if done {
			out.Levels[i].Score = 100
		}
	}
	out.RecomputeProgress()
	return out
}
