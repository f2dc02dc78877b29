package bookscrape

import "strings"

// Difficulty is a coarse difficulty tier derived from article length.
type Difficulty string

// Difficulty tiers.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Words-per-minute assumed for reading time estimates.
const readingWordsPerMinute = 200

// Difficulty thresholds, boundaries inclusive on the medium side:
// exactly 300 and exactly 1000 words are both medium.
const (
	easyWordLimit   = 300
	mediumWordLimit = 1000
)

// SuggestedIntervals returns the fixed spaced-repetition day offsets.
// The interval list is a fixed policy: it does not vary with difficulty or
// content kind.
func SuggestedIntervals() []int {
	return []int{1, 3, 7, 14, 30, 60, 120}
}

// SpacedRepetition holds the review schedule recommended for a unit.
type SpacedRepetition struct {
	InitialIntervalDays int   `json:"initial_interval_days"`
	SuggestedIntervals  []int `json:"suggested_intervals"`
}

// Metadata is the learning metadata derived from an article's text.
type Metadata struct {
	WordCount                   int              `json:"word_count"`
	EstimatedReadingTimeMinutes int              `json:"estimated_reading_time_minutes"`
	Difficulty                  Difficulty       `json:"difficulty"`
	SpacedRepetition            SpacedRepetition `json:"spaced_repetition"`

	// Error is set on degraded articles whose extraction failed.
	Error string `json:"error,omitempty"`
}

// ComputeMetadata derives learning metadata from an article's raw text.
// It is a total function: every input, including the empty string, yields
// valid metadata.
func ComputeMetadata(rawText string) Metadata {
	words := len(strings.Fields(rawText))

	minutes := (words + readingWordsPerMinute - 1) / readingWordsPerMinute
	if minutes < 1 {
		minutes = 1
	}

	difficulty := DifficultyMedium
	switch {
	case words < easyWordLimit:
		difficulty = DifficultyEasy
	case words > mediumWordLimit:
		difficulty = DifficultyHard
	}

	return Metadata{
		WordCount:                   words,
		EstimatedReadingTimeMinutes: minutes,
		Difficulty:                  difficulty,
		SpacedRepetition: SpacedRepetition{
			InitialIntervalDays: 1,
			SuggestedIntervals:  SuggestedIntervals(),
		},
	}
}
