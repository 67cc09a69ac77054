package analysis

import "fmt"

// AnalyzeOverview computes the headline counters for the analysed window.
func AnalyzeOverview(sessions []Session, responses []Response) Overview {
	overview := Overview{
		TotalSessions:          len(sessions),
		TotalQuestionsAnswered: len(responses),
	}

	drivers := make(map[uint]struct{})
	var scores []int
	for _, s := range sessions {
		drivers[s.DriverID] = struct{}{}
		if !s.Completed {
			continue
		}
		overview.CompletedSessions++
		scores = append(scores, s.Score())
	}
	overview.UniqueDrivers = len(drivers)
	overview.CompletionRate = percent(overview.CompletedSessions, overview.TotalSessions)

	for _, r := range responses {
		if r.Correct {
			overview.TotalCorrectAnswers++
		}
	}
	overview.OverallAccuracy = percent(overview.TotalCorrectAnswers, overview.TotalQuestionsAnswered)

	overview.AverageScore = round2(meanInts(scores))
	overview.MedianScore = round2(median(scores))
	overview.ScoreDistribution = distributeScores(scores)
	overview.Explanation = explainOverview(overview)

	return overview
}

func distributeScores(scores []int) ScoreDistribution {
	var dist ScoreDistribution
	for _, score := range scores {
		switch {
		case score >= 90:
			dist.Excellent++
		case score >= 70:
			dist.Good++
		case score >= 50:
			dist.Average++
		default:
			dist.Poor++
		}
	}
	return dist
}

func explainOverview(o Overview) string {
	return fmt.Sprintf(
		"%d of %d quiz sessions were completed (%.2f%% completion rate) by %d unique drivers. "+
			"Drivers answered %d questions, %d correct (%.2f%% overall accuracy). "+
			"Completed sessions averaged a score of %.2f with a median of %.2f; "+
			"%d scored excellent, %d good, %d average and %d poor.",
		o.CompletedSessions, o.TotalSessions, o.CompletionRate, o.UniqueDrivers,
		o.TotalQuestionsAnswered, o.TotalCorrectAnswers, o.OverallAccuracy,
		o.AverageScore, o.MedianScore,
		o.ScoreDistribution.Excellent, o.ScoreDistribution.Good,
		o.ScoreDistribution.Average, o.ScoreDistribution.Poor,
	)
}
