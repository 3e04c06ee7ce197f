// Package progress tracks per-language level completion, cumulative scores
// and game settings, and merges them into the loaded vocabulary views.
package progress

import (
	"github.com/abhisek/lingua/internal/imagegen"
)

// PassThreshold is the minimum score that marks a level completed.
const PassThreshold = 70

// Settings bounds.
const (
	MinWordsPerLevel = 1
	MaxWordsPerLevel = 10
	MinTimePerWord   = 5
	MaxTimePerWord   = 60
)

// Storage keys. These match the blobs the mobile app wrote, so existing
// exports can be imported as is.
const (
	KeySettings      = "gameSettings"
	KeyProgress      = "userProgress"
	KeyOpenAIKey     = "openai_api_key"
	KeyGeminiKey     = "gemini_api_key"
	KeyImageProvider = "image_provider"
)

// LanguageProgress is the stored record for one language.
type LanguageProgress struct {
	CurrentLevel    int   `json:"currentLevel"`
	TotalScore      int   `json:"totalScore"`
	CompletedLevels []int `json:"completedLevels"`
}

// Completed reports whether levelID is in CompletedLevels.
func (lp *LanguageProgress) Completed(levelID int) bool {
	for _, id := range lp.CompletedLevels {
		if id == levelID {
			return true
		}
	}
	return false
}

// UserProgress is the persisted progress across all languages.
type UserProgress struct {
	Languages  map[string]*LanguageProgress `json:"languages"`
	TotalScore int                          `json:"totalScore"`
}

// DefaultProgress returns the empty progress record.
func DefaultProgress() UserProgress {
	return UserProgress{Languages: make(map[string]*LanguageProgress)}
}

// Clone returns a deep copy.
func (p UserProgress) Clone() UserProgress {
	out := UserProgress{
		Languages:  make(map[string]*LanguageProgress, len(p.Languages)),
		TotalScore: p.TotalScore,
	}
	for id, lp := range p.Languages {
		if lp == nil {
			continue
		}
		cp := *lp
		cp.CompletedLevels = append([]int{}, lp.CompletedLevels...)
		out.Languages[id] = &cp
	}
	return out
}

// GameSettings are the user's quiz preferences.
type GameSettings struct {
	WordsPerLevel int                   `json:"wordsPerLevel"`
	TimePerWord   int                   `json:"timePerWord"`
	UseImages     bool                  `json:"useImages"`
	SoundEnabled  bool                  `json:"soundEnabled"`
	ImageProvider imagegen.ProviderName `json:"imageProvider,omitempty"`
	APIKey        string                `json:"apiKey,omitempty"`
}

// DefaultSettings returns the settings used on first launch.
func DefaultSettings() GameSettings {
	return GameSettings{
		WordsPerLevel: 5,
		TimePerWord:   30,
		UseImages:     true,
		SoundEnabled:  true,
		ImageProvider: imagegen.ProviderOpenAI,
	}
}

// SettingsPatch is a partial settings update. Nil fields are left unchanged.
type SettingsPatch struct {
	WordsPerLevel *int                   `json:"wordsPerLevel,omitempty"`
	TimePerWord   *int                   `json:"timePerWord,omitempty"`
	UseImages     *bool                  `json:"useImages,omitempty"`
	SoundEnabled  *bool                  `json:"soundEnabled,omitempty"`
	ImageProvider *imagegen.ProviderName `json:"imageProvider,omitempty"`
	APIKey        *string                `json:"apiKey,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p SettingsPatch) Empty() bool {
	return p == SettingsPatch{}
}

// Merge applies the patch to s and normalizes the result.
func (s GameSettings) Merge(p SettingsPatch) GameSettings {
	if p.WordsPerLevel != nil {
		s.WordsPerLevel = *p.WordsPerLevel
	}
	if p.TimePerWord != nil {
		s.TimePerWord = *p.TimePerWord
	}
	if p.UseImages != nil {
		s.UseImages = *p.UseImages
	}
	if p.SoundEnabled != nil {
		s.SoundEnabled = *p.SoundEnabled
	}
	if p.ImageProvider != nil && p.ImageProvider.Valid() {
		s.ImageProvider = *p.ImageProvider
	}
	if p.APIKey != nil {
		s.APIKey = *p.APIKey
	}
	return s.normalize()
}

// normalize clamps numeric settings into range and fills an unknown
// image provider with the default.
func (s GameSettings) normalize() GameSettings {
	s.WordsPerLevel = clamp(s.WordsPerLevel, MinWordsPerLevel, MaxWordsPerLevel)
	s.TimePerWord = clamp(s.TimePerWord, MinTimePerWord, MaxTimePerWord)
	if !s.ImageProvider.Valid() {
		s.ImageProvider = imagegen.ProviderOpenAI
	}
	return s
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
