package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/models"
)

func TestDailyWorkbookWritesSeriesAndTotal(t *testing.T) {
	report := Report{
		Summary: Summary{TotalRevenue: 50, TotalOrders: 2, AvgOrderValue: 25},
		DailySales: []DailyRevenue{
			{Date: "2025-03-01", Revenue: 20},
			{Date: "2025-03-02", Revenue: 30},
		},
	}

	f, err := DailyWorkbook(report)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Daily Sales", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Date", header)

	firstDate, _ := f.GetCellValue("Daily Sales", "A2")
	firstRevenue, _ := f.GetCellValue("Daily Sales", "B2")
	assert.Equal(t, "2025-03-01", firstDate)
	assert.Equal(t, "20", firstRevenue)

	totalLabel, _ := f.GetCellValue("Daily Sales", "A4")
	totalValue, _ := f.GetCellValue("Daily Sales", "B4")
	assert.Equal(t, "TOTAL", totalLabel)
	assert.Equal(t, "50", totalValue)
}

func TestDailyWorkbookEmptyStillValid(t *testing.T) {
	report := Build(nil, time.Now().AddDate(0, 0, -3), time.Now())

	f, err := DailyWorkbook(report)
	require.NoError(t, err)
	defer f.Close()

	marker, err := f.GetCellValue("Daily Sales", "A2")
	require.NoError(t, err)
	assert.Equal(t, "No data for selected period", marker)
}

func TestOrdersWorkbookJoinsEmails(t *testing.T) {
	created := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	orders := []models.Order{
		{OrderID: "order-1", UserID: "user-1", TotalAmount: 42.5, OrderStatus: models.StatusToShip, CreatedAt: created},
		{OrderID: "order-2", UserID: "missing", TotalAmount: 10, OrderStatus: models.StatusToPay, CreatedAt: created},
	}
	emails := map[string]string{"user-1": "buyer@example.com"}

	f, err := OrdersWorkbook(orders, emails)
	require.NoError(t, err)
	defer f.Close()

	email1, _ := f.GetCellValue("Detailed Orders", "D2")
	email2, _ := f.GetCellValue("Detailed Orders", "D3")
	assert.Equal(t, "buyer@example.com", email1)
	assert.Equal(t, "Unknown", email2)

	status, _ := f.GetCellValue("Detailed Orders", "E2")
	assert.Equal(t, "to_ship", status)
}

func TestOrdersWorkbookEmptyStillValid(t *testing.T) {
	f, err := OrdersWorkbook(nil, nil)
	require.NoError(t, err)
	defer f.Close()

	marker, err := f.GetCellValue("Detailed Orders", "A2")
	require.NoError(t, err)
	assert.Equal(t, "No data for selected period", marker)
}
