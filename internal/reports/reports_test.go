package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/models"
)

func day(value string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", value, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func order(created time.Time, total float64) models.Order {
	return models.Order{
		OrderID:     "o-" + created.Format("20060102-150405"),
		TotalAmount: total,
		OrderStatus: models.StatusCompleted,
		CreatedAt:   created,
	}
}

func TestBuildSummaryAverages(t *testing.T) {
	start := day("2025-03-01")
	end := day("2025-03-03").Add(24*time.Hour - time.Second)

	orders := []models.Order{
		order(day("2025-03-01").Add(10*time.Hour), 40),
		order(day("2025-03-02").Add(12*time.Hour), 20),
	}

	report := Build(orders, start, end)

	assert.Equal(t, 60.0, report.Summary.TotalRevenue)
	assert.Equal(t, 2, report.Summary.TotalOrders)
	assert.Equal(t, 30.0, report.Summary.AvgOrderValue)
}

func TestBuildZeroOrdersHasZeroAverage(t *testing.T) {
	start := day("2025-03-01")
	end := day("2025-03-05")

	report := Build(nil, start, end)

	assert.Equal(t, 0.0, report.Summary.TotalRevenue)
	assert.Equal(t, 0, report.Summary.TotalOrders)
	assert.Equal(t, 0.0, report.Summary.AvgOrderValue)
}

func TestBuildDailySeriesCoversEveryDayInRange(t *testing.T) {
	start := day("2025-03-01")
	end := day("2025-03-07").Add(24*time.Hour - time.Second)

	orders := []models.Order{
		order(day("2025-03-02").Add(9*time.Hour), 15),
		order(day("2025-03-02").Add(17*time.Hour), 5),
		order(day("2025-03-06").Add(8*time.Hour), 30),
	}

	report := Build(orders, start, end)

	require.Len(t, report.DailySales, 7)
	for i := 1; i < len(report.DailySales); i++ {
		assert.Less(t, report.DailySales[i-1].Date, report.DailySales[i].Date)
	}

	var sum float64
	byDate := make(map[string]float64)
	for _, entry := range report.DailySales {
		sum += entry.Revenue
		byDate[entry.Date] = entry.Revenue
	}
	assert.Equal(t, report.Summary.TotalRevenue, sum)
	assert.Equal(t, 20.0, byDate["2025-03-02"])
	assert.Equal(t, 30.0, byDate["2025-03-06"])
	assert.Equal(t, 0.0, byDate["2025-03-04"])
}

func TestBuildExcludesOutOfRangeOrdersFromSeries(t *testing.T) {
	start := day("2025-03-01")
	end := day("2025-03-02").Add(24*time.Hour - time.Second)

	orders := []models.Order{
		order(day("2025-03-01").Add(time.Hour), 10),
		order(day("2025-02-20"), 99),
	}

	report := Build(orders, start, end)

	var sum float64
	for _, entry := range report.DailySales {
		sum += entry.Revenue
	}
	assert.Equal(t, 10.0, sum)
	// The summary still reflects everything the query returned.
	assert.Equal(t, 109.0, report.Summary.TotalRevenue)
}

func TestResolveRangeDefaultTrailingWindow(t *testing.T) {
	now := day("2025-06-15").Add(10 * time.Hour)

	start, end, hasRange, err := ResolveRange("", "", now)

	require.NoError(t, err)
	assert.False(t, hasRange)
	assert.Equal(t, now, end)
	assert.Equal(t, now.AddDate(0, 0, -DefaultWindowDays), start)
}

func TestResolveRangeExplicit(t *testing.T) {
	start, end, hasRange, err := ResolveRange("2025-01-10", "2025-01-12", time.Now())

	require.NoError(t, err)
	assert.True(t, hasRange)
	assert.Equal(t, day("2025-01-10"), start)
	assert.Equal(t, day("2025-01-12").Add(24*time.Hour-time.Second), end)
}

func TestResolveRangeRejectsBadInput(t *testing.T) {
	_, _, _, err := ResolveRange("not-a-date", "2025-01-12", time.Now())
	assert.Error(t, err)

	_, _, _, err = ResolveRange("2025-01-12", "2025-01-10", time.Now())
	assert.Error(t, err)
}
