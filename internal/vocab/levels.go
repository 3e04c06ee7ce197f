package vocab

import (
	"fmt"
	"math/rand/v2"
)

// MaxLevels caps how many levels are generated per language.
const MaxLevels = 10

// LevelName returns the display name for a level id.
func LevelName(id int) string {
	return fmt.Sprintf("Level %d", id)
}

// GenerateLevels shuffles words and slices them into consecutive levels of
// exactly wordsPerLevel words. It yields min(MaxLevels, len(words)/wordsPerLevel)
// levels; leftover words are dropped. A nil rng uses the global source.
func GenerateLevels(words []Word, wordsPerLevel int, rng *rand.Rand) []Level {
	if wordsPerLevel < 1 {
		return nil
	}

	shuffled := append([]Word(nil), words...)
	shuffle(shuffled, rng)

	count := min(MaxLevels, len(shuffled)/wordsPerLevel)
	levels := make([]Level, 0, count)
	for i := range count {
		chunk := shuffled[i*wordsPerLevel : (i+1)*wordsPerLevel]
		levels = append(levels, Level{
			ID:    i + 1,
			Name:  LevelName(i + 1),
			Words: append([]Word(nil), chunk...),
		})
	}
	return levels
}

// ReshuffleLevel returns a copy of level with its words in a fresh order.
func ReshuffleLevel(level Level, rng *rand.Rand) Level {
	level.Words = append([]Word(nil), level.Words...)
	shuffle(level.Words, rng)
	return level
}

func shuffle(words []Word, rng *rand.Rand) {
	swap := func(i, j int) { words[i], words[j] = words[j], words[i] }
	if rng != nil {
		rng.Shuffle(len(words), swap)
		return
	}
	rand.Shuffle(len(words), swap)
}
