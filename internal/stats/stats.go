// Package stats derives per-day edit counts from a revision-date log.
package stats

import "sort"

// DayCount is the number of edits on one calendar day.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// YearCount is the number of edits in one calendar year.
type YearCount struct {
	Year  string
	Count int
}

// Summary is the derived aggregate over a date log. Never persisted;
// recomputed from the full log on every run.
type Summary struct {
	Days      []DayCount // ascending by date
	Total     int
	PeakDay   string
	PeakCount int
}

// Aggregate computes the daily edit counts of an ordered date log.
func Aggregate(dates []string) Summary {
	counts := make(map[string]int, len(dates))
	for _, d := range dates {
		counts[d]++
	}

	days := make([]DayCount, 0, len(counts))
	for date, count := range counts {
		days = append(days, DayCount{Date: date, Count: count})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	sum := Summary{Days: days, Total: len(dates)}
	for _, dc := range days {
		if dc.Count > sum.PeakCount {
			sum.PeakDay = dc.Date
			sum.PeakCount = dc.Count
		}
	}
	return sum
}

// DistinctDays returns the number of days with at least one edit.
func (s Summary) DistinctDays() int {
	return len(s.Days)
}

// ByYear rolls the daily counts up to calendar years, ascending.
func (s Summary) ByYear() []YearCount {
	if len(s.Days) == 0 {
		return nil
	}

	var years []YearCount
	for _, dc := range s.Days {
		year := dc.Date[:4]
		if len(years) > 0 && years[len(years)-1].Year == year {
			years[len(years)-1].Count += dc.Count
			continue
		}
		years = append(years, YearCount{Year: year, Count: dc.Count})
	}
	return years
}
