package analysis

import "sort"

type dailyActivity struct {
	drivers   map[uint]struct{}
	total     int
	completed int
}

type driverActivity struct {
	name      string
	days      map[string]struct{}
	total     int
	completed int
}

// AnalyzeEngagement measures participation breadth per day and depth per driver.
func AnalyzeEngagement(sessions []Session) EngagementMetrics {
	byDay := make(map[string]*dailyActivity)
	driverOrder := make([]uint, 0)
	byDriver := make(map[uint]*driverActivity)

	for _, s := range sessions {
		day, ok := byDay[s.QuizDate]
		if !ok {
			day = &dailyActivity{drivers: make(map[uint]struct{})}
			byDay[s.QuizDate] = day
		}
		day.drivers[s.DriverID] = struct{}{}
		day.total++

		driver, ok := byDriver[s.DriverID]
		if !ok {
			driver = &driverActivity{name: s.DriverName, days: make(map[string]struct{})}
			byDriver[s.DriverID] = driver
			driverOrder = append(driverOrder, s.DriverID)
		}
		driver.days[s.QuizDate] = struct{}{}
		driver.total++

		if s.Completed {
			day.completed++
			driver.completed++
		}
	}

	daily := make([]DailyEngagement, 0, len(byDay))
	for date, day := range byDay {
		daily = append(daily, DailyEngagement{
			Date:              date,
			UniqueDrivers:     len(day.drivers),
			TotalSessions:     day.total,
			CompletedSessions: day.completed,
			EngagementRate:    percent(day.completed, day.total),
		})
	}
	sort.Slice(daily, func(i, j int) bool {
		return daily[i].Date < daily[j].Date
	})

	drivers := make([]DriverEngagement, 0, len(driverOrder))
	daysActive := make([]int, 0, len(driverOrder))
	for _, id := range driverOrder {
		d := byDriver[id]
		var perDay float64
		if len(d.days) > 0 {
			perDay = round2(float64(d.completed) / float64(len(d.days)))
		}
		drivers = append(drivers, DriverEngagement{
			DriverID:              id,
			DriverName:            d.name,
			DaysActive:            len(d.days),
			TotalSessions:         d.total,
			CompletedSessions:     d.completed,
			AverageSessionsPerDay: perDay,
		})
		daysActive = append(daysActive, len(d.days))
	}
	sort.SliceStable(drivers, func(i, j int) bool {
		return drivers[i].DaysActive > drivers[j].DaysActive
	})

	return EngagementMetrics{
		DailyEngagement:            daily,
		AverageDaysActivePerDriver: round2(meanInts(daysActive)),
		MostEngagedDrivers:         topN(drivers, rankingLimit),
		PeakEngagementDay:          peakEngagementDay(daily),
	}
}

// peakEngagementDay returns the earliest day with the most unique drivers.
func peakEngagementDay(daily []DailyEngagement) *DailyEngagement {
	if len(daily) == 0 {
		return nil
	}
	peak := daily[0]
	for _, d := range daily[1:] {
		if d.UniqueDrivers > peak.UniqueDrivers {
			peak = d
		}
	}
	return &peak
}
