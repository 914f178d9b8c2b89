// Package reports computes the sales aggregation consumed by the interactive
// report page, the spreadsheet exports, and the print view.
package reports

import (
	"errors"
	"sort"
	"time"

	"storefront/internal/models"
)

const dayFormat = "2006-01-02"

// DefaultWindowDays is the trailing window used when no explicit range is given.
const DefaultWindowDays = 30

type Summary struct {
	TotalRevenue  float64
	TotalOrders   int
	AvgOrderValue float64
}

// DailyRevenue is one calendar-day bucket of the revenue series.
type DailyRevenue struct {
	Date    string
	Revenue float64
}

type Report struct {
	Summary    Summary
	DailySales []DailyRevenue
}

// ResolveRange parses optional startDate/endDate query values (YYYY-MM-DD)
// into an inclusive range. Both must be present to take effect; otherwise the
// default trailing window ending at now applies. Explicit ranges span the
// whole end day (00:00:00 through 23:59:59).
func ResolveRange(startDate, endDate string, now time.Time) (time.Time, time.Time, bool, error) {
	if startDate != "" && endDate != "" {
		start, err := time.ParseInLocation(dayFormat, startDate, time.UTC)
		if err != nil {
			return time.Time{}, time.Time{}, false, errors.New("invalid startDate")
		}
		end, err := time.ParseInLocation(dayFormat, endDate, time.UTC)
		if err != nil {
			return time.Time{}, time.Time{}, false, errors.New("invalid endDate")
		}
		end = end.Add(24*time.Hour - time.Second)
		if end.Before(start) {
			return time.Time{}, time.Time{}, false, errors.New("endDate must not be before startDate")
		}
		return start, end, true, nil
	}

	end := now.UTC()
	start := end.AddDate(0, 0, -DefaultWindowDays)
	return start, end, false, nil
}

// Build aggregates the given orders into summary totals and a per-day revenue
// series spanning [start, end]. Every calendar day in range gets exactly one
// entry, zero when no order fell on it. The summary covers all orders passed
// in; the series only counts orders whose creation time lies inside the range.
func Build(orders []models.Order, start, end time.Time) Report {
	var summary Summary
	summary.TotalOrders = len(orders)
	for _, order := range orders {
		summary.TotalRevenue += order.TotalAmount
	}
	if summary.TotalOrders > 0 {
		summary.AvgOrderValue = summary.TotalRevenue / float64(summary.TotalOrders)
	}

	daily := make(map[string]float64)
	startDay := start.UTC().Truncate(24 * time.Hour)
	endDay := end.UTC().Truncate(24 * time.Hour)
	for d := startDay; !d.After(endDay); d = d.AddDate(0, 0, 1) {
		daily[d.Format(dayFormat)] = 0
	}

	for _, order := range orders {
		created := order.CreatedAt.UTC()
		if created.Before(start.UTC()) || created.After(end.UTC()) {
			continue
		}
		key := created.Format(dayFormat)
		if _, ok := daily[key]; ok {
			daily[key] += order.TotalAmount
		}
	}

	series := make([]DailyRevenue, 0, len(daily))
	for date, revenue := range daily {
		series = append(series, DailyRevenue{Date: date, Revenue: revenue})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })

	return Report{Summary: summary, DailySales: series}
}
