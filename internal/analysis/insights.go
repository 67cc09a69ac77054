package analysis

import "fmt"

// InsightContext carries the stage outputs the rules inspect.
type InsightContext struct {
	Overview   Overview
	Trends     PerformanceTrends
	Drivers    DriverAnalysis
	Questions  QuestionAnalysis
	Engagement EngagementMetrics
	Time       TimeAnalysis
}

type insightRule func(*InsightContext) *Insight

type recommendationRule func(*InsightContext) *Recommendation

// Rules are evaluated in slice order, which fixes the order of the output lists.
var insightRules = []insightRule{
	lowAccuracyInsight,
	highAccuracyInsight,
	lowCompletionInsight,
	decliningTrendInsight,
	improvingTrendInsight,
	difficultQuestionMixInsight,
	lowEngagementInsight,
}

var recommendationRules = []recommendationRule{
	difficultyBalanceRecommendation,
	completionRateRecommendation,
	strugglingDriversRecommendation,
	difficultQuestionsRecommendation,
	notificationTimingRecommendation,
}

// GenerateInsights runs every insight rule and collects the findings that fire.
func GenerateInsights(ctx *InsightContext) []Insight {
	insights := make([]Insight, 0)
	for _, rule := range insightRules {
		if insight := rule(ctx); insight != nil {
			insights = append(insights, *insight)
		}
	}
	return insights
}

// GenerateRecommendations runs every recommendation rule and collects the action plans that fire.
func GenerateRecommendations(ctx *InsightContext) []Recommendation {
	recommendations := make([]Recommendation, 0)
	for _, rule := range recommendationRules {
		if rec := rule(ctx); rec != nil {
			recommendations = append(recommendations, *rec)
		}
	}
	return recommendations
}

// ===== INSIGHT RULES =====

func lowAccuracyInsight(ctx *InsightContext) *Insight {
	if ctx.Overview.OverallAccuracy >= 60 {
		return nil
	}
	return &Insight{
		Type:     InsightWarning,
		Category: "Performance",
		Title:    "Low Overall Accuracy",
		Description: fmt.Sprintf("Overall accuracy is %.2f%%, below the 60%% target. Drivers are struggling with the current question set.",
			ctx.Overview.OverallAccuracy),
		Impact:     LevelHigh,
		Actionable: true,
	}
}

func highAccuracyInsight(ctx *InsightContext) *Insight {
	if ctx.Overview.OverallAccuracy <= 85 {
		return nil
	}
	return &Insight{
		Type:     InsightSuccess,
		Category: "Performance",
		Title:    "Excellent Overall Performance",
		Description: fmt.Sprintf("Overall accuracy is %.2f%%. Drivers show a strong grasp of road safety knowledge.",
			ctx.Overview.OverallAccuracy),
		Impact:     LevelLow,
		Actionable: false,
	}
}

func lowCompletionInsight(ctx *InsightContext) *Insight {
	if ctx.Overview.CompletionRate >= 70 {
		return nil
	}
	return &Insight{
		Type:     InsightWarning,
		Category: "Engagement",
		Title:    "Low Completion Rate",
		Description: fmt.Sprintf("Only %.2f%% of quiz sessions are completed. Many drivers abandon quizzes before the end.",
			ctx.Overview.CompletionRate),
		Impact:     LevelHigh,
		Actionable: true,
	}
}

func decliningTrendInsight(ctx *InsightContext) *Insight {
	if ctx.Trends.TrendDirection != TrendDeclining {
		return nil
	}
	return &Insight{
		Type:     InsightWarning,
		Category: "Trends",
		Title:    "Declining Performance Trend",
		Description: fmt.Sprintf("Average daily scores dropped by %.2f points between the first and second half of the period.",
			-ctx.Trends.TrendChange),
		Impact:     LevelMedium,
		Actionable: true,
	}
}

func improvingTrendInsight(ctx *InsightContext) *Insight {
	if ctx.Trends.TrendDirection != TrendImproving {
		return nil
	}
	return &Insight{
		Type:     InsightSuccess,
		Category: "Trends",
		Title:    "Improving Performance Trend",
		Description: fmt.Sprintf("Average daily scores rose by %.2f points between the first and second half of the period.",
			ctx.Trends.TrendChange),
		Impact:     LevelLow,
		Actionable: false,
	}
}

func difficultQuestionMixInsight(ctx *InsightContext) *Insight {
	total := ctx.Questions.TotalQuestions
	if total == 0 {
		return nil
	}
	hard := ctx.Questions.DifficultyDistribution.Hard
	ratio := float64(hard) / float64(total)
	if ratio <= 0.4 {
		return nil
	}
	return &Insight{
		Type:     InsightInfo,
		Category: "Questions",
		Title:    "High Proportion of Difficult Questions",
		Description: fmt.Sprintf("%d of %d questions (%.2f%%) are answered correctly less than 40%% of the time.",
			hard, total, round2(ratio*100)),
		Impact:     LevelMedium,
		Actionable: true,
	}
}

func lowEngagementInsight(ctx *InsightContext) *Insight {
	if ctx.Engagement.AverageDaysActivePerDriver >= 3 {
		return nil
	}
	return &Insight{
		Type:     InsightWarning,
		Category: "Engagement",
		Title:    "Low Driver Engagement",
		Description: fmt.Sprintf("Drivers are active on %.2f days on average. Regular daily practice is not yet a habit.",
			ctx.Engagement.AverageDaysActivePerDriver),
		Impact:     LevelHigh,
		Actionable: true,
	}
}

// ===== RECOMMENDATION RULES =====

func difficultyBalanceRecommendation(ctx *InsightContext) *Recommendation {
	if ctx.Overview.OverallAccuracy >= 60 {
		return nil
	}
	return &Recommendation{
		Priority:    LevelHigh,
		Category:    "Content",
		Title:       "Improve Question Difficulty Balance",
		Description: "Accuracy is low across the board. Rebalance the question pool so drivers build confidence before facing harder material.",
		ActionItems: []string{
			"Review questions with accuracy below 40% for unclear wording",
			"Add more introductory questions for core safety topics",
			"Provide explanations after incorrect answers",
		},
	}
}

func completionRateRecommendation(ctx *InsightContext) *Recommendation {
	if ctx.Overview.CompletionRate >= 70 {
		return nil
	}
	return &Recommendation{
		Priority:    LevelHigh,
		Category:    "Engagement",
		Title:       "Increase Completion Rates",
		Description: "A large share of sessions are abandoned. Make daily quizzes easier to finish.",
		ActionItems: []string{
			"Shorten daily quizzes or split them into smaller steps",
			"Send reminders to drivers with unfinished sessions",
			"Reward completed sessions through streaks",
		},
	}
}

func strugglingDriversRecommendation(ctx *InsightContext) *Recommendation {
	bottom := ctx.Drivers.BottomPerformers
	if len(bottom) == 0 || bottom[0].AverageScore >= 50 {
		return nil
	}
	return &Recommendation{
		Priority: LevelMedium,
		Category: "Drivers",
		Title:    "Support Struggling Drivers",
		Description: fmt.Sprintf("The lowest performing driver averages %.2f. Targeted support can lift the weakest performers.",
			bottom[0].AverageScore),
		ActionItems: []string{
			"Reach out to drivers in the bottom performers list",
			"Offer refresher material on their weakest topics",
			"Track their progress over the next weeks",
		},
	}
}

func difficultQuestionsRecommendation(ctx *InsightContext) *Recommendation {
	hardest := ctx.Questions.HardestQuestions
	if len(hardest) == 0 || hardest[0].Accuracy >= 30 {
		return nil
	}
	return &Recommendation{
		Priority: LevelMedium,
		Category: "Content",
		Title:    "Review Difficult Questions",
		Description: fmt.Sprintf("The hardest question is answered correctly only %.2f%% of the time.",
			hardest[0].Accuracy),
		ActionItems: []string{
			"Check the hardest questions for ambiguous options",
			"Verify the correct answer and translations",
			"Consider replacing questions that stay below 30% accuracy",
		},
	}
}

func notificationTimingRecommendation(ctx *InsightContext) *Recommendation {
	peak := ctx.Time.PeakHour
	if peak == nil {
		return nil
	}
	return &Recommendation{
		Priority: LevelLow,
		Category: "Engagement",
		Title:    "Optimize Notification Timing",
		Description: fmt.Sprintf("Most quizzes are started around %02d:00 (%s). Align reminders with this window.",
			peak.Hour, peak.TimePeriod),
		ActionItems: []string{
			fmt.Sprintf("Schedule daily quiz reminders shortly before %02d:00", peak.Hour),
			"Avoid sending notifications outside active hours",
		},
	}
}
