package reports

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"storefront/internal/models"
)

const (
	dailySheet  = "Daily Sales"
	ordersSheet = "Detailed Orders"
)

// DailyWorkbook renders the per-day revenue series as a spreadsheet with a
// trailing TOTAL row. With zero matching orders it still produces a valid
// file carrying a single "no data" row.
func DailyWorkbook(report Report) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", dailySheet); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(dailySheet, "A", "A", 15); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(dailySheet, "B", "B", 18); err != nil {
		return nil, err
	}

	if err := setRow(f, dailySheet, 1, "Date", "Revenue"); err != nil {
		return nil, err
	}

	if report.Summary.TotalOrders == 0 {
		if err := setRow(f, dailySheet, 2, "No data for selected period", ""); err != nil {
			return nil, err
		}
		return f, nil
	}

	row := 2
	for _, day := range report.DailySales {
		if err := setRow(f, dailySheet, row, day.Date, day.Revenue); err != nil {
			return nil, err
		}
		row++
	}
	if err := setRow(f, dailySheet, row, "TOTAL", report.Summary.TotalRevenue); err != nil {
		return nil, err
	}

	return f, nil
}

// OrdersWorkbook renders one row per order with the owning user's id and
// email. Emails come pre-joined by the caller; missing users read "Unknown".
func OrdersWorkbook(orders []models.Order, emailByUserID map[string]string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", ordersSheet); err != nil {
		return nil, err
	}
	widths := []struct {
		col   string
		width float64
	}{
		{"A", 38}, {"B", 20}, {"C", 38}, {"D", 28}, {"E", 12}, {"F", 14},
	}
	for _, w := range widths {
		if err := f.SetColWidth(ordersSheet, w.col, w.col, w.width); err != nil {
			return nil, err
		}
	}

	if err := setRow(f, ordersSheet, 1, "Order ID", "Date/Time", "User ID", "User Email", "Status", "Total Amount"); err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		if err := setRow(f, ordersSheet, 2, "No data for selected period"); err != nil {
			return nil, err
		}
		return f, nil
	}

	for i, order := range orders {
		email, ok := emailByUserID[order.UserID]
		if !ok {
			email = "Unknown"
		}
		err := setRow(f, ordersSheet, i+2,
			order.OrderID,
			order.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
			order.UserID,
			email,
			order.OrderStatus,
			order.TotalAmount,
		)
		if err != nil {
			return nil, err
		}
	}

	return f, nil
}

func setRow(f *excelize.File, sheet string, row int, values ...interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

// ExportFilename stamps an export name with the given date.
func ExportFilename(prefix string, dateKey string) string {
	return fmt.Sprintf("%s-%s.xlsx", prefix, dateKey)
}
