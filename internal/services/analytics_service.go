package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/SAP-F-2025/driver-quiz-service/internal/analysis"
	"github.com/SAP-F-2025/driver-quiz-service/internal/cache"
	"github.com/SAP-F-2025/driver-quiz-service/internal/events"
	"github.com/SAP-F-2025/driver-quiz-service/internal/models"
	"github.com/SAP-F-2025/driver-quiz-service/internal/repositories"
	"github.com/SAP-F-2025/driver-quiz-service/internal/utils"
	"github.com/SAP-F-2025/driver-quiz-service/internal/validator"
)

const (
	dateLayout         = "2006-01-02"
	analyticsKeyPrefix = "analytics:comprehensive:"
)

// AnalyticsService runs comprehensive quiz analyses
type AnalyticsService interface {
	// BuildFilter validates a raw query and turns it into a repository filter
	BuildFilter(query models.AnalyticsQuery) (repositories.AnalyticsFilter, error)
	RunComprehensiveAnalysis(ctx context.Context, filter repositories.AnalyticsFilter) (*ComprehensiveAnalysisReport, error)
	ExportComprehensiveAnalysis(ctx context.Context, filter repositories.AnalyticsFilter) ([]byte, error)
	// InvalidateCache drops the cached report for filter, or every cached report when filter is empty
	InvalidateCache(ctx context.Context, filter repositories.AnalyticsFilter) error
}

// ComprehensiveAnalysisReport is a Report together with the filter it was computed for
type ComprehensiveAnalysisReport struct {
	analysis.Report
	Filter      repositories.AnalyticsFilter `json:"filter"`
	GeneratedAt time.Time                    `json:"generated_at"`
}

type analyticsService struct {
	repo          repositories.Repository
	engine        *analysis.Engine
	cache         cache.CacheService
	cacheTTL      time.Duration
	publisher     events.EventPublisher
	logger        *slog.Logger
	serviceLogger *ServiceLogger
	validator     *validator.Validator
	now           func() time.Time
}

func NewAnalyticsService(
	repo repositories.Repository,
	engine *analysis.Engine,
	cacheService cache.CacheService,
	cacheTTL time.Duration,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *validator.Validator,
) AnalyticsService {
	if cacheService == nil || cacheTTL <= 0 {
		cacheService = cache.NoopCache{}
	}

	return &analyticsService{
		repo:      repo,
		engine:    engine,
		cache:     cacheService,
		cacheTTL:  cacheTTL,
		publisher: publisher,
		logger:    logger,
		serviceLogger: NewServiceLogger(logger, LogConfig{
			Service:     "driver-quiz-service",
			Component:   "analytics",
			EnableDebug: true,
		}),
		validator: validator,
		now:       time.Now,
	}
}

func (s *analyticsService) BuildFilter(query models.AnalyticsQuery) (repositories.AnalyticsFilter, error) {
	var filter repositories.AnalyticsFilter

	if err := s.validator.Validate(query); err != nil {
		return filter, err
	}

	if query.StartDate != "" {
		start, err := time.Parse(dateLayout, query.StartDate)
		if err != nil {
			return filter, ValidationErrors{*NewValidationError("start_date", "must be a date in YYYY-MM-DD format", query.StartDate)}
		}
		filter.StartDate = &start
	}
	if query.EndDate != "" {
		end, err := time.Parse(dateLayout, query.EndDate)
		if err != nil {
			return filter, ValidationErrors{*NewValidationError("end_date", "must be a date in YYYY-MM-DD format", query.EndDate)}
		}
		filter.EndDate = &end
	}
	filter.DriverID = query.DriverID
	filter.Language = query.Language

	return filter, nil
}

func (s *analyticsService) RunComprehensiveAnalysis(ctx context.Context, filter repositories.AnalyticsFilter) (report *ComprehensiveAnalysisReport, err error) {
	start := time.Now()
	cacheHit := false
	defer func() {
		attrs := []slog.Attr{slog.String("filter", cacheKey(filter)), slog.Bool("cache_hit", cacheHit)}
		if report != nil {
			attrs = append(attrs, slog.Int("total_sessions", report.Overview.TotalSessions))
		}
		s.serviceLogger.LogOperation(ctx, "comprehensive_analysis", time.Since(start), err, attrs...)
	}()

	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, ErrInvalidDateRange
	}

	if filter.DriverID != nil {
		if _, err := s.repo.Driver().GetByID(ctx, *filter.DriverID); err != nil {
			if repositories.IsNotFoundError(err) {
				return nil, fmt.Errorf("%w: %d", ErrDriverNotFound, *filter.DriverID)
			}
			return nil, fmt.Errorf("failed to look up driver: %w", err)
		}
	}

	key := analyticsKeyPrefix + cacheKey(filter)
	cacheable := s.isClosedWindow(filter)
	if cacheable {
		if cached := s.cachedReport(ctx, key); cached != nil {
			cacheHit = true
			return cached, nil
		}
	}

	sessions, err := s.repo.QuizSession().LoadSessions(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.QuizResponse, 0)
	if len(sessions) > 0 {
		sessionIDs := make([]uint, len(sessions))
		for i, session := range sessions {
			sessionIDs[i] = session.ID
		}
		if responses, err = s.repo.QuizResponse().LoadResponses(ctx, sessionIDs); err != nil {
			return nil, err
		}
	}

	result := s.engine.Analyze(toAnalysisSessions(sessions), toAnalysisResponses(responses, filter.Language), filter.Language)

	report = &ComprehensiveAnalysisReport{
		Report:      *result,
		Filter:      filter,
		GeneratedAt: s.now().UTC(),
	}

	if cacheable {
		if err := s.cache.Set(ctx, key, report, s.cacheTTL); err != nil {
			s.logger.WarnContext(ctx, "Failed to cache analytics report", "key", key, "error", err)
		}
	}

	s.publishCompleted(ctx, report)

	return report, nil
}

func (s *analyticsService) InvalidateCache(ctx context.Context, filter repositories.AnalyticsFilter) (err error) {
	start := time.Now()
	scope := "all"
	defer func() {
		s.serviceLogger.LogOperation(ctx, "invalidate_cache", time.Since(start), err, slog.String("scope", scope))
	}()

	if filter.IsEmpty() {
		if err := s.cache.DeletePattern(ctx, analyticsKeyPrefix+"*"); err != nil {
			return fmt.Errorf("failed to invalidate analytics cache: %w", err)
		}
		return nil
	}

	scope = cacheKey(filter)
	if err := s.cache.Delete(ctx, analyticsKeyPrefix+scope); err != nil {
		return fmt.Errorf("failed to invalidate analytics cache: %w", err)
	}
	return nil
}

// isClosedWindow reports whether filter ends before today in the report location.
// Windows reaching today can still gain sessions and are never cached.
func (s *analyticsService) isClosedWindow(filter repositories.AnalyticsFilter) bool {
	if filter.EndDate == nil {
		return false
	}
	y, m, d := s.now().In(s.engine.Location()).Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return filter.EndDate.Before(today)
}

// cachedReport returns the cached report for key, or nil on a miss or cache failure
func (s *analyticsService) cachedReport(ctx context.Context, key string) *ComprehensiveAnalysisReport {
	var cached ComprehensiveAnalysisReport
	err := s.cache.Get(ctx, key, &cached)
	switch {
	case err == nil:
		s.serviceLogger.LogCache(ctx, key, true)
		return &cached
	case errors.Is(err, cache.ErrCacheMiss):
		s.serviceLogger.LogCache(ctx, key, false)
	default:
		s.logger.WarnContext(ctx, "Analytics cache unavailable", "key", key, "error", err)
	}
	return nil
}

// publishCompleted emits the analysis.completed event; failures are logged only
func (s *analyticsService) publishCompleted(ctx context.Context, report *ComprehensiveAnalysisReport) {
	if s.publisher == nil {
		return
	}

	data := &events.AnalysisCompletedData{
		DriverID:        report.Filter.DriverID,
		Language:        report.Filter.Language,
		TotalSessions:   report.Overview.TotalSessions,
		TotalDrivers:    report.DriverAnalysis.TotalDrivers,
		CompletionRate:  report.Overview.CompletionRate,
		OverallAccuracy: report.Overview.OverallAccuracy,
		TrendDirection:  string(report.PerformanceTrends.TrendDirection),
		InsightCount:    len(report.Insights),
	}
	if report.Filter.StartDate != nil {
		start := report.Filter.StartDate.Format(dateLayout)
		data.StartDate = &start
	}
	if report.Filter.EndDate != nil {
		end := report.Filter.EndDate.Format(dateLayout)
		data.EndDate = &end
	}

	event := events.NewAnalysisCompletedEvent(data, utils.RequestIDFromContext(ctx))
	if err := s.publisher.PublishAnalyticsEvent(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish analysis completed event", "event_id", event.ID, "error", err)
	}
}

// cacheKey normalizes a filter into a stable string
func cacheKey(filter repositories.AnalyticsFilter) string {
	parts := []string{"-", "-", "-", "-"}
	if filter.StartDate != nil {
		parts[0] = filter.StartDate.Format(dateLayout)
	}
	if filter.EndDate != nil {
		parts[1] = filter.EndDate.Format(dateLayout)
	}
	if filter.DriverID != nil {
		parts[2] = strconv.FormatUint(uint64(*filter.DriverID), 10)
	}
	if filter.Language != "" {
		parts[3] = filter.Language
	}
	return strings.Join(parts, ":")
}

// ===== MAPPING =====

func toAnalysisSessions(sessions []*models.QuizSession) []analysis.Session {
	result := make([]analysis.Session, 0, len(sessions))
	for _, s := range sessions {
		result = append(result, analysis.Session{
			ID:             s.ID,
			DriverID:       s.DriverID,
			DriverName:     s.Driver.Name,
			DriverPhone:    s.Driver.Phone,
			DriverLanguage: s.Driver.Language,
			Streak:         s.Driver.Streak,
			QuizDate:       s.QuizDateString(),
			CreatedAt:      s.CreatedAt,
			Completed:      s.Completed,
			TotalQuestions: s.TotalQuestions,
			TotalCorrect:   s.TotalCorrect,
		})
	}
	return result
}

// toAnalysisResponses resolves question text in language, or English when no language is set
func toAnalysisResponses(responses []*models.QuizResponse, language string) []analysis.Response {
	if language == "" {
		language = models.DefaultLanguage
	}

	result := make([]analysis.Response, 0, len(responses))
	for _, r := range responses {
		result = append(result, analysis.Response{
			ID:             r.ID,
			SessionID:      r.SessionID,
			QuestionID:     r.QuestionID,
			SelectedOption: r.SelectedOption,
			Correct:        r.IsCorrect,
			QuestionText:   r.Question.TextFor(language),
			Topic:          r.Question.Topic,
			Language:       r.Question.Language,
			CorrectOption:  r.Question.CorrectOption,
		})
	}
	return result
}
