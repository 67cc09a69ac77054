package analysis

import "sort"

// trendThreshold is the minimum change in average score, in points, that counts as a trend.
const trendThreshold = 5.0

type dayBucket struct {
	sessions       int
	scores         []int
	totalQuestions int
	totalCorrect   int
}

// AnalyzeTrends buckets completed sessions per quiz date and classifies the trajectory
// by comparing the first and second half of the day list.
func AnalyzeTrends(sessions []Session) PerformanceTrends {
	buckets := make(map[string]*dayBucket)
	for _, s := range sessions {
		if !s.Completed {
			continue
		}
		b, ok := buckets[s.QuizDate]
		if !ok {
			b = &dayBucket{}
			buckets[s.QuizDate] = b
		}
		b.sessions++
		b.scores = append(b.scores, s.Score())
		b.totalQuestions += s.TotalQuestions
		b.totalCorrect += s.TotalCorrect
	}

	daily := make([]DailyPerformance, 0, len(buckets))
	for date, b := range buckets {
		daily = append(daily, DailyPerformance{
			Date:           date,
			SessionCount:   b.sessions,
			AverageScore:   round2(meanInts(b.scores)),
			TotalQuestions: b.totalQuestions,
			TotalCorrect:   b.totalCorrect,
		})
	}
	sort.Slice(daily, func(i, j int) bool {
		return daily[i].Date < daily[j].Date
	})

	trends := PerformanceTrends{
		DailyPerformance: daily,
		TrendDirection:   TrendStable,
	}
	if len(daily) < 2 {
		return trends
	}

	// Floor split: for odd lengths the second half holds the extra day.
	mid := len(daily) / 2
	firstAvg := averageOfDays(daily[:mid])
	secondAvg := averageOfDays(daily[mid:])
	change := secondAvg - firstAvg

	trends.FirstHalfAverage = round2(firstAvg)
	trends.SecondHalfAverage = round2(secondAvg)
	trends.TrendChange = round2(change)
	trends.TrendDirection = classifyTrend(change)

	return trends
}

func averageOfDays(days []DailyPerformance) float64 {
	values := make([]float64, len(days))
	for i, d := range days {
		values[i] = d.AverageScore
	}
	return mean(values)
}

func classifyTrend(change float64) TrendDirection {
	switch {
	case change > trendThreshold:
		return TrendImproving
	case change < -trendThreshold:
		return TrendDeclining
	default:
		return TrendStable
	}
}
