package analysis

import "time"

// weekdayOrder is the scan order used to break ties for the peak day.
var weekdayOrder = []time.Weekday{
	time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
	time.Thursday, time.Friday, time.Saturday,
}

// AnalyzeTimePatterns buckets session creation times by hour and weekday in loc.
// Changing loc moves sessions between buckets, so callers must keep it fixed.
func AnalyzeTimePatterns(sessions []Session, loc *time.Location) TimeAnalysis {
	if loc == nil {
		loc = time.UTC
	}

	hourly := make(map[int]int)
	daily := make(map[string]int)
	for _, s := range sessions {
		local := s.CreatedAt.In(loc)
		hourly[local.Hour()]++
		daily[local.Weekday().String()]++
	}

	result := TimeAnalysis{
		Timezone:           loc.String(),
		HourlyDistribution: hourly,
		DailyDistribution:  daily,
	}

	for hour := 0; hour < 24; hour++ {
		count := hourly[hour]
		if count == 0 {
			continue
		}
		if result.PeakHour == nil || count > result.PeakHour.Count {
			result.PeakHour = &PeakHour{Hour: hour, Count: count, TimePeriod: TimePeriod(hour)}
		}
	}

	for _, wd := range weekdayOrder {
		count := daily[wd.String()]
		if count == 0 {
			continue
		}
		if result.PeakDay == nil || count > result.PeakDay.Count {
			result.PeakDay = &PeakDay{Day: wd.String(), Count: count}
		}
	}

	return result
}

// TimePeriod labels an hour of the day.
func TimePeriod(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "Morning"
	case hour >= 12 && hour < 17:
		return "Afternoon"
	case hour >= 17 && hour < 21:
		return "Evening"
	default:
		return "Night"
	}
}
