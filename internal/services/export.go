package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SAP-F-2025/driver-quiz-service/internal/analysis"
	"github.com/SAP-F-2025/driver-quiz-service/internal/repositories"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the XLSX export, in workbook order
const (
	sheetOverview        = "Overview"
	sheetTrends          = "Daily Performance"
	sheetDrivers         = "Drivers"
	sheetQuestions       = "Questions"
	sheetTopics          = "Topics"
	sheetEngagement      = "Engagement"
	sheetTimePatterns    = "Time Patterns"
	sheetInsights        = "Insights"
	sheetRecommendations = "Recommendations"
)

func (s *analyticsService) ExportComprehensiveAnalysis(ctx context.Context, filter repositories.AnalyticsFilter) ([]byte, error) {
	report, err := s.RunComprehensiveAnalysis(ctx, filter)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	data, err := BuildAnalyticsWorkbook(report)
	s.serviceLogger.LogOperation(ctx, "export_comprehensive_analysis", time.Since(start), err)
	return data, err
}

// BuildAnalyticsWorkbook renders report as an XLSX workbook with one sheet per section
func BuildAnalyticsWorkbook(report *ComprehensiveAnalysisReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	w := &workbookWriter{file: f}
	w.overview(report)
	w.trends(report.PerformanceTrends)
	w.drivers(report.DriverAnalysis)
	w.questions(report.QuestionAnalysis)
	w.topics(report.QuestionAnalysis.TopicAnalysis)
	w.engagement(report.EngagementMetrics)
	w.timePatterns(report.TimeAnalysis)
	w.insights(report.Insights)
	w.recommendations(report.Recommendations)
	if w.err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, w.err)
	}

	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	return buf.Bytes(), nil
}

// workbookWriter appends rows sheet by sheet and keeps the first error
type workbookWriter struct {
	file  *excelize.File
	sheet string
	row   int
	err   error
}

func (w *workbookWriter) startSheet(name string, header ...interface{}) {
	if w.err != nil {
		return
	}

	if w.sheet == "" {
		// Reuse the default sheet for the first section
		w.err = w.file.SetSheetName(w.file.GetSheetName(0), name)
	} else {
		_, w.err = w.file.NewSheet(name)
	}
	w.sheet = name
	w.row = 0

	if len(header) > 0 {
		w.append(header...)
	}
}

func (w *workbookWriter) append(values ...interface{}) {
	if w.err != nil {
		return
	}

	w.row++
	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.file.SetSheetRow(w.sheet, cell, &values)
}

func (w *workbookWriter) overview(report *ComprehensiveAnalysisReport) {
	o := report.Overview
	w.startSheet(sheetOverview, "Metric", "Value")
	w.append("Generated At", report.GeneratedAt.Format(time.RFC3339))
	w.append("Start Date", formatDatePtr(report.Filter.StartDate))
	w.append("End Date", formatDatePtr(report.Filter.EndDate))
	w.append("Total Sessions", o.TotalSessions)
	w.append("Completed Sessions", o.CompletedSessions)
	w.append("Completion Rate (%)", o.CompletionRate)
	w.append("Unique Drivers", o.UniqueDrivers)
	w.append("Questions Answered", o.TotalQuestionsAnswered)
	w.append("Correct Answers", o.TotalCorrectAnswers)
	w.append("Overall Accuracy (%)", o.OverallAccuracy)
	w.append("Average Score", o.AverageScore)
	w.append("Median Score", o.MedianScore)
	w.append("Excellent Scores", o.ScoreDistribution.Excellent)
	w.append("Good Scores", o.ScoreDistribution.Good)
	w.append("Average Scores", o.ScoreDistribution.Average)
	w.append("Poor Scores", o.ScoreDistribution.Poor)
	w.append("Trend", string(report.PerformanceTrends.TrendDirection))
	w.append("Trend Change", report.PerformanceTrends.TrendChange)
	w.append("Summary", o.Explanation)
}

func (w *workbookWriter) trends(t analysis.PerformanceTrends) {
	w.startSheet(sheetTrends, "Date", "Sessions", "Average Score", "Questions", "Correct")
	for _, d := range t.DailyPerformance {
		w.append(d.Date, d.SessionCount, d.AverageScore, d.TotalQuestions, d.TotalCorrect)
	}
}

func (w *workbookWriter) drivers(d analysis.DriverAnalysis) {
	w.startSheet(sheetDrivers, "Ranking", "Driver ID", "Name", "Phone", "Language", "Sessions",
		"Completed", "Average Score", "Accuracy (%)", "Completion Rate (%)", "Streak", "Last Quiz", "Category")

	write := func(ranking string, drivers []analysis.DriverPerformance) {
		for _, p := range drivers {
			w.append(ranking, p.DriverID, p.DriverName, p.DriverPhone, p.Language, p.TotalSessions,
				p.CompletedSessions, p.AverageScore, p.Accuracy, p.CompletionRate, p.Streak, p.LastQuizDate,
				string(p.PerformanceCategory))
		}
	}
	write("Top Performer", d.TopPerformers)
	write("Bottom Performer", d.BottomPerformers)
	write("Most Active", d.MostActiveDrivers)
}

func (w *workbookWriter) questions(q analysis.QuestionAnalysis) {
	w.startSheet(sheetQuestions, "Ranking", "Question ID", "Question", "Topic", "Language", "Attempts",
		"Correct", "Accuracy (%)", "Difficulty", "Most Common Selection")

	write := func(ranking string, questions []analysis.QuestionPerformance) {
		for _, p := range questions {
			topic := analysis.UncategorizedTopic
			if p.Topic != nil && *p.Topic != "" {
				topic = *p.Topic
			}
			mistake := ""
			if p.MostCommonMistake != nil {
				mistake = strconv.Itoa(*p.MostCommonMistake)
			}
			w.append(ranking, p.QuestionID, p.QuestionText, topic, p.Language, p.TotalAttempts,
				p.CorrectAttempts, p.Accuracy, string(p.DifficultyLevel), mistake)
		}
	}
	write("Easiest", q.EasiestQuestions)
	write("Hardest", q.HardestQuestions)
}

func (w *workbookWriter) topics(topics []analysis.TopicPerformance) {
	w.startSheet(sheetTopics, "Topic", "Questions", "Attempts", "Correct", "Average Accuracy (%)")
	for _, t := range topics {
		w.append(t.Topic, t.TotalQuestions, t.TotalAttempts, t.TotalCorrect, t.AverageAccuracy)
	}
}

func (w *workbookWriter) engagement(e analysis.EngagementMetrics) {
	w.startSheet(sheetEngagement, "Date", "Unique Drivers", "Sessions", "Completed", "Engagement Rate (%)")
	for _, d := range e.DailyEngagement {
		w.append(d.Date, d.UniqueDrivers, d.TotalSessions, d.CompletedSessions, d.EngagementRate)
	}
	w.append()
	w.append("Average Days Active Per Driver", e.AverageDaysActivePerDriver)
}

func (w *workbookWriter) timePatterns(t analysis.TimeAnalysis) {
	w.startSheet(sheetTimePatterns, "Hour", "Sessions", "Period")
	for hour := 0; hour < 24; hour++ {
		if count, ok := t.HourlyDistribution[hour]; ok {
			w.append(hour, count, analysis.TimePeriod(hour))
		}
	}
	w.append()
	w.append("Timezone", t.Timezone)
}

func (w *workbookWriter) insights(insights []analysis.Insight) {
	w.startSheet(sheetInsights, "Type", "Category", "Title", "Description", "Impact", "Actionable")
	for _, in := range insights {
		w.append(string(in.Type), in.Category, in.Title, in.Description, string(in.Impact), in.Actionable)
	}
}

func (w *workbookWriter) recommendations(recs []analysis.Recommendation) {
	w.startSheet(sheetRecommendations, "Priority", "Category", "Title", "Description", "Action Items")
	for _, r := range recs {
		w.append(string(r.Priority), r.Category, r.Title, r.Description, strings.Join(r.ActionItems, "\n"))
	}
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
