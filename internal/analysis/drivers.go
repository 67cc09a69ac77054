package analysis

import "sort"

type driverAccumulator struct {
	perf   DriverPerformance
	scores []int
}

// AnalyzeDrivers aggregates sessions per driver, assigns a performance category
// and ranks drivers by score and activity.
func AnalyzeDrivers(sessions []Session) DriverAnalysis {
	order := make([]uint, 0)
	byDriver := make(map[uint]*driverAccumulator)

	for _, s := range sessions {
		acc, ok := byDriver[s.DriverID]
		if !ok {
			acc = &driverAccumulator{perf: DriverPerformance{
				DriverID:    s.DriverID,
				DriverName:  s.DriverName,
				DriverPhone: s.DriverPhone,
				Language:    s.DriverLanguage,
				Streak:      s.Streak,
			}}
			byDriver[s.DriverID] = acc
			order = append(order, s.DriverID)
		}

		acc.perf.TotalSessions++
		if s.QuizDate > acc.perf.LastQuizDate {
			acc.perf.LastQuizDate = s.QuizDate
		}
		if s.Completed {
			acc.perf.CompletedSessions++
			acc.perf.TotalQuestions += s.TotalQuestions
			acc.perf.TotalCorrect += s.TotalCorrect
			acc.scores = append(acc.scores, s.Score())
		}
	}

	drivers := make([]DriverPerformance, 0, len(order))
	completed := make([]int, 0, len(order))
	var dist PerformanceDistribution

	for _, id := range order {
		acc := byDriver[id]
		p := acc.perf
		p.AverageScore = round2(meanInts(acc.scores))
		p.Accuracy = percent(p.TotalCorrect, p.TotalQuestions)
		p.CompletionRate = percent(p.CompletedSessions, p.TotalSessions)
		p.PerformanceCategory = CategorizeDriver(p.AverageScore, p.Accuracy, p.CompletionRate)

		switch p.PerformanceCategory {
		case CategoryExcellent:
			dist.Excellent++
		case CategoryGood:
			dist.Good++
		case CategoryAverage:
			dist.Average++
		default:
			dist.NeedsImprovement++
		}

		drivers = append(drivers, p)
		completed = append(completed, p.CompletedSessions)
	}

	byScore := make([]DriverPerformance, len(drivers))
	copy(byScore, drivers)
	sort.SliceStable(byScore, func(i, j int) bool {
		return byScore[i].AverageScore > byScore[j].AverageScore
	})

	byActivity := make([]DriverPerformance, len(drivers))
	copy(byActivity, drivers)
	sort.SliceStable(byActivity, func(i, j int) bool {
		return byActivity[i].CompletedSessions > byActivity[j].CompletedSessions
	})

	return DriverAnalysis{
		TotalDrivers:             len(drivers),
		AverageSessionsPerDriver: round2(meanInts(completed)),
		TopPerformers:            topN(byScore, rankingLimit),
		BottomPerformers:         bottomN(byScore, rankingLimit),
		MostActiveDrivers:        topN(byActivity, rankingLimit),
		PerformanceDistribution:  dist,
	}
}

// CategorizeDriver applies the category thresholds in order; the first match wins.
// AnalyzeDrivers passes the rounded figures it reports, so a mean score of 79.996
// is categorized as the 80.00 shown in the report.
func CategorizeDriver(averageScore, accuracy, completionRate float64) PerformanceCategory {
	switch {
	case averageScore >= 80 && accuracy >= 75 && completionRate >= 80:
		return CategoryExcellent
	case averageScore >= 60 && accuracy >= 60 && completionRate >= 60:
		return CategoryGood
	case averageScore >= 40 && accuracy >= 40:
		return CategoryAverage
	default:
		return CategoryNeedsImprovement
	}
}
