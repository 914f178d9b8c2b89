package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/models"
	"storefront/internal/reports"
)

// salesFilter is the parsed report query: an optional day range and an
// optional status restriction ("all" or empty means no restriction).
type salesFilter struct {
	StartDate string
	EndDate   string
	Status    string
	Start     time.Time
	End       time.Time
	HasRange  bool
}

func parseSalesFilter(c *gin.Context) (salesFilter, error) {
	filter := salesFilter{
		StartDate: strings.TrimSpace(c.Query("startDate")),
		EndDate:   strings.TrimSpace(c.Query("endDate")),
		Status:    strings.TrimSpace(c.Query("status")),
	}

	start, end, hasRange, err := reports.ResolveRange(filter.StartDate, filter.EndDate, time.Now())
	if err != nil {
		return salesFilter{}, err
	}
	filter.Start = start
	filter.End = end
	filter.HasRange = hasRange
	return filter, nil
}

func (f salesFilter) query() bson.M {
	query := bson.M{}
	if f.HasRange {
		query["createdAt"] = bson.M{"$gte": f.Start, "$lte": f.End}
	}
	if f.Status != "" && f.Status != "all" {
		query["orderStatus"] = f.Status
	}
	return query
}

func (f salesFilter) title() string {
	title := "Sales Report"
	if f.HasRange {
		title += fmt.Sprintf(" (%s to %s)", f.StartDate, f.EndDate)
	}
	if f.Status != "" && f.Status != "all" {
		title += " - " + strings.ToUpper(strings.ReplaceAll(f.Status, "_", " "))
	}
	return title
}

// SalesReport renders the interactive report: summary totals, the per-day
// revenue series, and the last few orders for reference.
func SalesReport(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/reports/sales"
		defer handlePanic(c, route)

		filter, orders, report, ok := loadSalesReport(c, db, route)
		if !ok {
			return
		}

		recent := orders
		if len(recent) > 10 {
			recent = recent[:10]
		}

		c.HTML(http.StatusOK, "admin-sales-report.html", gin.H{
			"title":      filter.title(),
			"filters":    filter,
			"statuses":   models.OrderStatuses,
			"summary":    report.Summary,
			"dailySales": report.DailySales,
			"orders":     recent,
		})
	}
}

// SalesReportPrint renders the same aggregation in a print-formatted page.
func SalesReportPrint(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/reports/sales/print"
		defer handlePanic(c, route)

		filter, _, report, ok := loadSalesReport(c, db, route)
		if !ok {
			return
		}

		c.HTML(http.StatusOK, "admin-sales-print.html", gin.H{
			"title":       filter.title(),
			"generatedAt": time.Now().Format("2006-01-02 15:04"),
			"summary":     report.Summary,
			"dailySales":  report.DailySales,
		})
	}
}

// ExportDailySales streams the daily-revenue series as a spreadsheet.
func ExportDailySales(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/reports/sales/export/daily"
		defer handlePanic(c, route)

		_, _, report, ok := loadSalesReport(c, db, route)
		if !ok {
			return
		}

		workbook, err := reports.DailyWorkbook(report)
		if err != nil {
			renderServerError(c, route, err)
			return
		}
		writeWorkbook(c, route, workbook, reports.ExportFilename("daily-sales", time.Now().Format("2006-01-02")))
	}
}

// ExportDetailedOrders streams one row per matching order.
func ExportDetailedOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/reports/sales/export/orders"
		defer handlePanic(c, route)

		_, orders, _, ok := loadSalesReport(c, db, route)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		emails, err := emailsByUserID(ctx, db, orders)
		if err != nil {
			renderServerError(c, route, err)
			return
		}

		workbook, err := reports.OrdersWorkbook(orders, emails)
		if err != nil {
			renderServerError(c, route, err)
			return
		}
		writeWorkbook(c, route, workbook, reports.ExportFilename("detailed-orders", time.Now().Format("2006-01-02")))
	}
}

func loadSalesReport(c *gin.Context, db *mongo.Database, route string) (salesFilter, []models.Order, reports.Report, bool) {
	filter, err := parseSalesFilter(c)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return salesFilter{}, nil, reports.Report{}, false
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := db.Collection("orders").Find(ctx, filter.query(), findOptions)
	if err != nil {
		renderServerError(c, route, err)
		return salesFilter{}, nil, reports.Report{}, false
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		renderServerError(c, route, err)
		return salesFilter{}, nil, reports.Report{}, false
	}

	return filter, orders, reports.Build(orders, filter.Start, filter.End), true
}

func writeWorkbook(c *gin.Context, route string, workbook *excelize.File, filename string) {
	defer workbook.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := workbook.Write(c.Writer); err != nil {
		// Headers are already out; nothing left to render.
		log.Printf("[%s] export write failed: %v", route, err)
	}
}
