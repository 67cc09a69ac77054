package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeTrends_Improving(t *testing.T) {
	sessions := []Session{
		newSession(3, 1, "2024-03-03", true, 10, 9),
		newSession(1, 1, "2024-03-01", true, 10, 5),
		newSession(4, 1, "2024-03-04", true, 10, 9),
		newSession(2, 1, "2024-03-02", true, 10, 5),
	}

	trends := AnalyzeTrends(sessions)

	require.Len(t, trends.DailyPerformance, 4)
	assert.Equal(t, "2024-03-01", trends.DailyPerformance[0].Date)
	assert.Equal(t, "2024-03-04", trends.DailyPerformance[3].Date)
	assert.Equal(t, 50.0, trends.FirstHalfAverage)
	assert.Equal(t, 90.0, trends.SecondHalfAverage)
	assert.Equal(t, 40.0, trends.TrendChange)
	assert.Equal(t, TrendImproving, trends.TrendDirection)
}

func TestAnalyzeTrends_Classification(t *testing.T) {
	tests := []struct {
		name      string
		scores    []int
		direction TrendDirection
		change    float64
	}{
		{name: "two days compare last against first", scores: []int{9, 8}, direction: TrendDeclining, change: -10},
		{name: "change of exactly five is stable", scores: []int{50, 55}, direction: TrendStable, change: 5},
		{name: "change just above five improves", scores: []int{50, 56}, direction: TrendImproving, change: 6},
		{name: "odd length puts extra day in second half", scores: []int{60, 70, 80}, direction: TrendImproving, change: 15},
		{name: "single day is stable", scores: []int{40}, direction: TrendStable, change: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sessions []Session
			dates := []string{"2024-03-01", "2024-03-02", "2024-03-03"}
			for i, score := range tt.scores {
				total := 10
				if score > 10 {
					total = 100
				}
				sessions = append(sessions, newSession(uint(i+1), 1, dates[i], true, total, score))
			}

			trends := AnalyzeTrends(sessions)

			assert.Equal(t, tt.direction, trends.TrendDirection)
			assert.Equal(t, tt.change, trends.TrendChange)
		})
	}
}

func TestAnalyzeTrends_OddLengthHalves(t *testing.T) {
	sessions := []Session{
		newSession(1, 1, "2024-03-01", true, 100, 60),
		newSession(2, 1, "2024-03-02", true, 100, 70),
		newSession(3, 1, "2024-03-03", true, 100, 80),
	}

	trends := AnalyzeTrends(sessions)

	assert.Equal(t, 60.0, trends.FirstHalfAverage)
	assert.Equal(t, 75.0, trends.SecondHalfAverage)
}

func TestAnalyzeTrends_DailyAggregation(t *testing.T) {
	sessions := []Session{
		newSession(1, 1, "2024-03-01", true, 10, 8),
		newSession(2, 2, "2024-03-01", true, 10, 6),
		newSession(3, 3, "2024-03-01", false, 10, 1),
	}

	trends := AnalyzeTrends(sessions)

	require.Len(t, trends.DailyPerformance, 1)
	day := trends.DailyPerformance[0]
	assert.Equal(t, 2, day.SessionCount)
	assert.Equal(t, 70.0, day.AverageScore)
	assert.Equal(t, 20, day.TotalQuestions)
	assert.Equal(t, 14, day.TotalCorrect)
	assert.Equal(t, TrendStable, trends.TrendDirection)
}

func TestAnalyzeTrends_Empty(t *testing.T) {
	trends := AnalyzeTrends(nil)

	assert.Empty(t, trends.DailyPerformance)
	assert.Equal(t, TrendStable, trends.TrendDirection)
	assert.Zero(t, trends.TrendChange)
}
