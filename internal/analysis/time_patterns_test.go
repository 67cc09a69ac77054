package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionAt(id uint, ts string) Session {
	createdAt, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		panic(err)
	}
	return Session{ID: id, DriverID: 1, QuizDate: createdAt.Format("2006-01-02"), CreatedAt: createdAt}
}

func TestAnalyzeTimePatterns(t *testing.T) {
	sessions := []Session{
		sessionAt(1, "2024-01-07T08:15:00Z"), // Sunday
		sessionAt(2, "2024-01-07T08:45:00Z"),
		sessionAt(3, "2024-01-08T14:00:00Z"), // Monday
	}

	result := AnalyzeTimePatterns(sessions, time.UTC)

	assert.Equal(t, "UTC", result.Timezone)
	assert.Equal(t, map[int]int{8: 2, 14: 1}, result.HourlyDistribution)
	assert.Equal(t, map[string]int{"Sunday": 2, "Monday": 1}, result.DailyDistribution)
	require.NotNil(t, result.PeakHour)
	assert.Equal(t, PeakHour{Hour: 8, Count: 2, TimePeriod: "Morning"}, *result.PeakHour)
	require.NotNil(t, result.PeakDay)
	assert.Equal(t, PeakDay{Day: "Sunday", Count: 2}, *result.PeakDay)
}

func TestAnalyzeTimePatterns_TiesPickLowestHour(t *testing.T) {
	sessions := []Session{
		sessionAt(1, "2024-01-09T09:00:00Z"), // Tuesday
		sessionAt(2, "2024-01-08T03:00:00Z"), // Monday
	}

	result := AnalyzeTimePatterns(sessions, time.UTC)

	require.NotNil(t, result.PeakHour)
	assert.Equal(t, 3, result.PeakHour.Hour)
	assert.Equal(t, "Night", result.PeakHour.TimePeriod)
	require.NotNil(t, result.PeakDay)
	assert.Equal(t, "Monday", result.PeakDay.Day)
}

func TestAnalyzeTimePatterns_UsesLocation(t *testing.T) {
	sessions := []Session{sessionAt(1, "2024-01-07T23:30:00Z")}
	plusTwo := time.FixedZone("UTC+2", 2*60*60)

	result := AnalyzeTimePatterns(sessions, plusTwo)

	require.NotNil(t, result.PeakHour)
	assert.Equal(t, 1, result.PeakHour.Hour)
	require.NotNil(t, result.PeakDay)
	assert.Equal(t, "Monday", result.PeakDay.Day)
	assert.Equal(t, "UTC+2", result.Timezone)
}

func TestAnalyzeTimePatterns_Empty(t *testing.T) {
	result := AnalyzeTimePatterns(nil, nil)

	assert.Nil(t, result.PeakHour)
	assert.Nil(t, result.PeakDay)
	assert.Empty(t, result.HourlyDistribution)
}

func TestTimePeriod(t *testing.T) {
	tests := map[int]string{
		0: "Night", 4: "Night", 5: "Morning", 11: "Morning", 12: "Afternoon",
		16: "Afternoon", 17: "Evening", 20: "Evening", 21: "Night", 23: "Night",
	}
	for hour, expected := range tests {
		assert.Equal(t, expected, TimePeriod(hour), "hour %d", hour)
	}
}
