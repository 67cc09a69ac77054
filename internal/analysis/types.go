package analysis

import (
	"math"
	"time"
)

// ===== INPUTS =====

// Session is a single driver's daily quiz attempt, joined with the driver summary fields.
type Session struct {
	ID             uint      `json:"id"`
	DriverID       uint      `json:"driver_id"`
	DriverName     string    `json:"driver_name"`
	DriverPhone    string    `json:"driver_phone"`
	DriverLanguage string    `json:"driver_language"`
	Streak         int       `json:"streak"`
	QuizDate       string    `json:"quiz_date"` // YYYY-MM-DD
	CreatedAt      time.Time `json:"created_at"`
	Completed      bool      `json:"completed"`
	TotalQuestions int       `json:"total_questions"`
	TotalCorrect   int       `json:"total_correct"`
}

// Score is the rounded percentage of correct answers, 0 for an empty session.
func (s Session) Score() int {
	if s.TotalQuestions <= 0 {
		return 0
	}
	return int(math.Round(float64(s.TotalCorrect) / float64(s.TotalQuestions) * 100))
}

// Response is one answered question, joined with the question summary fields.
type Response struct {
	ID             uint    `json:"id"`
	SessionID      uint    `json:"session_id"`
	QuestionID     uint    `json:"question_id"`
	SelectedOption int     `json:"selected_option"`
	Correct        bool    `json:"correct"`
	QuestionText   string  `json:"question_text"`
	Topic          *string `json:"topic"`
	Language       string  `json:"language"`
	CorrectOption  int     `json:"correct_option"`
}

// ===== CLASSIFICATIONS =====

type TrendDirection string

const (
	TrendImproving TrendDirection = "improving"
	TrendDeclining TrendDirection = "declining"
	TrendStable    TrendDirection = "stable"
)

type PerformanceCategory string

const (
	CategoryExcellent        PerformanceCategory = "excellent"
	CategoryGood             PerformanceCategory = "good"
	CategoryAverage          PerformanceCategory = "average"
	CategoryNeedsImprovement PerformanceCategory = "needs_improvement"
)

type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "easy"
	DifficultyMedium DifficultyLevel = "medium"
	DifficultyHard   DifficultyLevel = "hard"
)

// UncategorizedTopic groups questions without a topic.
const UncategorizedTopic = "Uncategorized"

// rankingLimit caps every top/bottom list in the report.
const rankingLimit = 10

// ===== REPORT =====

// Report is the layered result of a comprehensive analysis run.
type Report struct {
	Overview          Overview          `json:"overview"`
	PerformanceTrends PerformanceTrends `json:"performance_trends"`
	DriverAnalysis    DriverAnalysis    `json:"driver_analysis"`
	QuestionAnalysis  QuestionAnalysis  `json:"question_analysis"`
	EngagementMetrics EngagementMetrics `json:"engagement_metrics"`
	TimeAnalysis      TimeAnalysis      `json:"time_analysis"`
	Insights          []Insight         `json:"insights"`
	Recommendations   []Recommendation  `json:"recommendations"`
}

type ScoreDistribution struct {
	Excellent int `json:"excellent"`
	Good      int `json:"good"`
	Average   int `json:"average"`
	Poor      int `json:"poor"`
}

// Total is the number of scores that were bucketed.
func (d ScoreDistribution) Total() int {
	return d.Excellent + d.Good + d.Average + d.Poor
}

type Overview struct {
	TotalSessions          int               `json:"total_sessions"`
	CompletedSessions      int               `json:"completed_sessions"`
	CompletionRate         float64           `json:"completion_rate"`
	UniqueDrivers          int               `json:"unique_drivers"`
	TotalQuestionsAnswered int               `json:"total_questions_answered"`
	TotalCorrectAnswers    int               `json:"total_correct_answers"`
	OverallAccuracy        float64           `json:"overall_accuracy"`
	AverageScore           float64           `json:"average_score"`
	MedianScore            float64           `json:"median_score"`
	ScoreDistribution      ScoreDistribution `json:"score_distribution"`
	Explanation            string            `json:"explanation"`
}

type DailyPerformance struct {
	Date           string  `json:"date"`
	SessionCount   int     `json:"session_count"`
	AverageScore   float64 `json:"average_score"`
	TotalQuestions int     `json:"total_questions"`
	TotalCorrect   int     `json:"total_correct"`
}

type PerformanceTrends struct {
	DailyPerformance  []DailyPerformance `json:"daily_performance"`
	TrendDirection    TrendDirection     `json:"trend_direction"`
	FirstHalfAverage  float64            `json:"first_half_average"`
	SecondHalfAverage float64            `json:"second_half_average"`
	TrendChange       float64            `json:"trend_change"`
}

type DriverPerformance struct {
	DriverID            uint                `json:"driver_id"`
	DriverName          string              `json:"driver_name"`
	DriverPhone         string              `json:"driver_phone"`
	Language            string              `json:"language"`
	TotalSessions       int                 `json:"total_sessions"`
	CompletedSessions   int                 `json:"completed_sessions"`
	TotalQuestions      int                 `json:"total_questions"`
	TotalCorrect        int                 `json:"total_correct"`
	AverageScore        float64             `json:"average_score"`
	Accuracy            float64             `json:"accuracy"`
	CompletionRate      float64             `json:"completion_rate"`
	Streak              int                 `json:"streak"`
	LastQuizDate        string              `json:"last_quiz_date"`
	PerformanceCategory PerformanceCategory `json:"performance_category"`
}

type PerformanceDistribution struct {
	Excellent        int `json:"excellent"`
	Good             int `json:"good"`
	Average          int `json:"average"`
	NeedsImprovement int `json:"needs_improvement"`
}

type DriverAnalysis struct {
	TotalDrivers             int                     `json:"total_drivers"`
	AverageSessionsPerDriver float64                 `json:"average_sessions_per_driver"`
	TopPerformers            []DriverPerformance     `json:"top_performers"`
	BottomPerformers         []DriverPerformance     `json:"bottom_performers"`
	MostActiveDrivers        []DriverPerformance     `json:"most_active_drivers"`
	PerformanceDistribution  PerformanceDistribution `json:"performance_distribution"`
}

// OptionCount is how often an option index was selected for a question.
type OptionCount struct {
	Option int `json:"option"`
	Count  int `json:"count"`
}

type QuestionPerformance struct {
	QuestionID        uint            `json:"question_id"`
	QuestionText      string          `json:"question_text"`
	Topic             *string         `json:"topic"`
	Language          string          `json:"language"`
	CorrectOption     int             `json:"correct_option"`
	TotalAttempts     int             `json:"total_attempts"`
	CorrectAttempts   int             `json:"correct_attempts"`
	IncorrectAttempts int             `json:"incorrect_attempts"`
	Accuracy          float64         `json:"accuracy"`
	DifficultyLevel   DifficultyLevel `json:"difficulty_level"`
	OptionSelections  []OptionCount   `json:"option_selections"`
	MostCommonMistake *int            `json:"most_common_mistake"`
}

type DifficultyDistribution struct {
	Easy   int `json:"easy"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
}

type TopicPerformance struct {
	Topic           string  `json:"topic"`
	TotalQuestions  int     `json:"total_questions"`
	TotalAttempts   int     `json:"total_attempts"`
	TotalCorrect    int     `json:"total_correct"`
	// AverageAccuracy is pooled over every answer in the topic (TotalCorrect / TotalAttempts),
	// not a mean of per-question accuracies.
	AverageAccuracy float64 `json:"average_accuracy"`
}

type QuestionAnalysis struct {
	TotalQuestions         int                    `json:"total_questions"`
	DifficultyDistribution DifficultyDistribution `json:"difficulty_distribution"`
	EasiestQuestions       []QuestionPerformance  `json:"easiest_questions"`
	HardestQuestions       []QuestionPerformance  `json:"hardest_questions"`
	TopicAnalysis          []TopicPerformance     `json:"topic_analysis"`
}

type DailyEngagement struct {
	Date              string  `json:"date"`
	UniqueDrivers     int     `json:"unique_drivers"`
	TotalSessions     int     `json:"total_sessions"`
	CompletedSessions int     `json:"completed_sessions"`
	EngagementRate    float64 `json:"engagement_rate"`
}

type DriverEngagement struct {
	DriverID              uint    `json:"driver_id"`
	DriverName            string  `json:"driver_name"`
	DaysActive            int     `json:"days_active"`
	TotalSessions         int     `json:"total_sessions"`
	CompletedSessions     int     `json:"completed_sessions"`
	AverageSessionsPerDay float64 `json:"average_sessions_per_day"`
}

type EngagementMetrics struct {
	DailyEngagement            []DailyEngagement  `json:"daily_engagement"`
	AverageDaysActivePerDriver float64            `json:"average_days_active_per_driver"`
	MostEngagedDrivers         []DriverEngagement `json:"most_engaged_drivers"`
	PeakEngagementDay          *DailyEngagement   `json:"peak_engagement_day"`
}

type PeakHour struct {
	Hour       int    `json:"hour"`
	Count      int    `json:"count"`
	TimePeriod string `json:"time_period"`
}

type PeakDay struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

type TimeAnalysis struct {
	Timezone           string         `json:"timezone"`
	HourlyDistribution map[int]int    `json:"hourly_distribution"`
	DailyDistribution  map[string]int `json:"daily_distribution"`
	PeakHour           *PeakHour      `json:"peak_hour"`
	PeakDay            *PeakDay       `json:"peak_day"`
}

type InsightType string

const (
	InsightSuccess InsightType = "success"
	InsightWarning InsightType = "warning"
	InsightInfo    InsightType = "info"
)

type Level string

const (
	LevelHigh   Level = "high"
	LevelMedium Level = "medium"
	LevelLow    Level = "low"
)

type Insight struct {
	Type        InsightType `json:"type"`
	Category    string      `json:"category"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Impact      Level       `json:"impact"`
	Actionable  bool        `json:"actionable"`
}

type Recommendation struct {
	Priority    Level    `json:"priority"`
	Category    string   `json:"category"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ActionItems []string `json:"action_items"`
}
