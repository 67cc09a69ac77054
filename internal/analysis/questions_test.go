package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyDifficulty(t *testing.T) {
	tests := []struct {
		accuracy float64
		expected DifficultyLevel
	}{
		{100, DifficultyEasy},
		{70, DifficultyEasy},
		{69.99, DifficultyMedium},
		{40, DifficultyMedium},
		{39.99, DifficultyHard},
		{0, DifficultyHard},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ClassifyDifficulty(tt.accuracy), "accuracy %v", tt.accuracy)
	}
}

func TestAnalyzeQuestions_PerQuestionStats(t *testing.T) {
	responses := []Response{
		newResponse(1, 1, 10, 2, true),
		newResponse(2, 1, 10, 1, false),
		newResponse(3, 2, 10, 1, false),
		newResponse(4, 2, 10, 2, true),
		newResponse(5, 3, 10, 3, false),
	}

	analysis := AnalyzeQuestions(responses, "")

	require.Equal(t, 1, analysis.TotalQuestions)
	q := analysis.EasiestQuestions[0]
	assert.Equal(t, uint(10), q.QuestionID)
	assert.Equal(t, 5, q.TotalAttempts)
	assert.Equal(t, 2, q.CorrectAttempts)
	assert.Equal(t, 3, q.IncorrectAttempts)
	assert.Equal(t, 40.0, q.Accuracy)
	assert.Equal(t, DifficultyMedium, q.DifficultyLevel)
	assert.Equal(t, []OptionCount{{Option: 2, Count: 2}, {Option: 1, Count: 2}, {Option: 3, Count: 1}}, q.OptionSelections)
	// Options 2 and 1 tie; the first one seen wins.
	require.NotNil(t, q.MostCommonMistake)
	assert.Equal(t, 2, *q.MostCommonMistake)
}

func TestAnalyzeQuestions_AccuracyBoundaryFromData(t *testing.T) {
	var responses []Response
	for i := 0; i < 10; i++ {
		responses = append(responses, newResponse(uint(i+1), 1, 5, i%4, i < 7))
	}

	analysis := AnalyzeQuestions(responses, "")

	require.Len(t, analysis.EasiestQuestions, 1)
	assert.Equal(t, 70.0, analysis.EasiestQuestions[0].Accuracy)
	assert.Equal(t, DifficultyEasy, analysis.EasiestQuestions[0].DifficultyLevel)
	assert.Equal(t, DifficultyDistribution{Easy: 1}, analysis.DifficultyDistribution)
}

func TestAnalyzeQuestions_LanguageFilter(t *testing.T) {
	german := newResponse(3, 1, 2, 0, false)
	german.Language = "de"
	responses := []Response{
		newResponse(1, 1, 1, 0, true),
		newResponse(2, 2, 1, 0, true),
		german,
	}

	all := AnalyzeQuestions(responses, "")
	assert.Equal(t, 2, all.TotalQuestions)

	filtered := AnalyzeQuestions(responses, "de")
	require.Equal(t, 1, filtered.TotalQuestions)
	assert.Equal(t, uint(2), filtered.HardestQuestions[0].QuestionID)
	assert.Equal(t, DifficultyDistribution{Hard: 1}, filtered.DifficultyDistribution)
	require.Len(t, filtered.TopicAnalysis, 1)
	assert.Equal(t, 1, filtered.TopicAnalysis[0].TotalAttempts)
}

func TestAnalyzeQuestions_TopicRollup(t *testing.T) {
	signs := strPtr("Signs")
	withTopic := func(r Response, topic *string) Response {
		r.Topic = topic
		return r
	}
	responses := []Response{
		withTopic(newResponse(1, 1, 1, 0, true), signs),
		withTopic(newResponse(2, 1, 1, 1, false), signs),
		withTopic(newResponse(3, 1, 2, 0, true), nil),
		withTopic(newResponse(4, 1, 3, 0, true), signs),
		withTopic(newResponse(5, 1, 4, 0, true), strPtr("")),
	}

	analysis := AnalyzeQuestions(responses, "")

	require.Len(t, analysis.TopicAnalysis, 2)
	assert.Equal(t, TopicPerformance{
		Topic:           UncategorizedTopic,
		TotalQuestions:  2,
		TotalAttempts:   2,
		TotalCorrect:    2,
		AverageAccuracy: 100,
	}, analysis.TopicAnalysis[0])
	assert.Equal(t, TopicPerformance{
		Topic:           "Signs",
		TotalQuestions:  2,
		TotalAttempts:   3,
		TotalCorrect:    2,
		AverageAccuracy: 66.67,
	}, analysis.TopicAnalysis[1])
}

func TestAnalyzeQuestions_SmallPopulationOverlaps(t *testing.T) {
	responses := []Response{
		newResponse(1, 1, 1, 0, true),
		newResponse(2, 1, 2, 0, false),
	}

	analysis := AnalyzeQuestions(responses, "")

	require.Len(t, analysis.EasiestQuestions, 2)
	require.Len(t, analysis.HardestQuestions, 2)
	assert.Equal(t, uint(1), analysis.EasiestQuestions[0].QuestionID)
	assert.Equal(t, uint(2), analysis.HardestQuestions[0].QuestionID)
}

func TestMostSelectedOption_Empty(t *testing.T) {
	assert.Nil(t, mostSelectedOption(nil))
}

func TestAnalyzeQuestions_Empty(t *testing.T) {
	analysis := AnalyzeQuestions(nil, "en")

	assert.Zero(t, analysis.TotalQuestions)
	assert.Empty(t, analysis.EasiestQuestions)
	assert.Empty(t, analysis.HardestQuestions)
	assert.Empty(t, analysis.TopicAnalysis)
}
