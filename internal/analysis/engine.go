// Package analysis implements the comprehensive quiz analysis pipeline. Every stage is a
// pure function over already loaded sessions and responses; Engine composes them.
package analysis

import "time"

// Observer is notified about input records the engine had to skip.
type Observer interface {
	OrphanedResponse(r Response)
}

type Option func(*Engine)

// WithLocation sets the reporting timezone used for hour and weekday bucketing.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.loc = loc
		}
	}
}

// WithObserver registers an observer for skipped records.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		e.observer = o
	}
}

// Engine runs the analysis stages. It keeps no per-call state and is safe for concurrent use.
type Engine struct {
	loc      *time.Location
	observer Observer
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{loc: time.UTC}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Location returns the reporting timezone.
func (e *Engine) Location() *time.Location {
	return e.loc
}

// Analyze builds a fresh report. language only narrows the question analysis.
func (e *Engine) Analyze(sessions []Session, responses []Response, language string) *Report {
	responses = e.dropOrphans(sessions, responses)

	ctx := &InsightContext{
		Overview:   AnalyzeOverview(sessions, responses),
		Trends:     AnalyzeTrends(sessions),
		Drivers:    AnalyzeDrivers(sessions),
		Questions:  AnalyzeQuestions(responses, language),
		Engagement: AnalyzeEngagement(sessions),
		Time:       AnalyzeTimePatterns(sessions, e.loc),
	}

	return &Report{
		Overview:          ctx.Overview,
		PerformanceTrends: ctx.Trends,
		DriverAnalysis:    ctx.Drivers,
		QuestionAnalysis:  ctx.Questions,
		EngagementMetrics: ctx.Engagement,
		TimeAnalysis:      ctx.Time,
		Insights:          GenerateInsights(ctx),
		Recommendations:   GenerateRecommendations(ctx),
	}
}

// dropOrphans removes responses whose session is not part of the input.
func (e *Engine) dropOrphans(sessions []Session, responses []Response) []Response {
	known := make(map[uint]struct{}, len(sessions))
	for _, s := range sessions {
		known[s.ID] = struct{}{}
	}

	kept := make([]Response, 0, len(responses))
	for _, r := range responses {
		if _, ok := known[r.SessionID]; !ok {
			if e.observer != nil {
				e.observer.OrphanedResponse(r)
			}
			continue
		}
		kept = append(kept, r)
	}
	return kept
}
