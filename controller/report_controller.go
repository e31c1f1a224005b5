package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"kedai/database"
	"kedai/model"
)

type SalesBucket struct {
	Bucket       string  `json:"bucket"`
	OrderCount   int64   `json:"order_count"`
	Revenue      float64 `json:"revenue"`
	AverageOrder float64 `json:"average_order"`
}

func bucketFormat(groupBy string) (string, error) {
	switch groupBy {
	case "", "day":
		return "YYYY-MM-DD", nil
	case "month":
		return "YYYY-MM", nil
	case "year":
		return "YYYY", nil
	}
	return "", fmt.Errorf("group_by must be day, month or year")
}

func parseReportRange(c *gin.Context) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation("2006-01-02", c.Query("start_date"), time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start_date must be YYYY-MM-DD")
	}
	end, err := time.ParseInLocation("2006-01-02", c.Query("end_date"), time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end_date must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end_date must not be before start_date")
	}
	// The range is inclusive of the end day.
	return start, end.AddDate(0, 0, 1), nil
}

func querySalesBuckets(c *gin.Context) ([]SalesBucket, bool) {
	start, end, err := parseReportRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return nil, false
	}

	format, err := bucketFormat(c.Query("group_by"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return nil, false
	}

	var buckets []SalesBucket
	err = database.DB.Raw(`
		SELECT to_char(created_at, ?) AS bucket,
		       COUNT(*) AS order_count,
		       COALESCE(SUM(total_amount), 0) AS revenue,
		       COALESCE(AVG(total_amount), 0) AS average_order
		FROM orders
		WHERE created_at >= ? AND created_at < ?
		  AND status <> ?
		  AND deleted_at IS NULL
		GROUP BY bucket
		ORDER BY bucket`,
		format, start, end, model.OrderCancelled,
	).Scan(&buckets).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   fmt.Sprintf("Failed to compute sales report: %v", err),
		})
		return nil, false
	}

	return buckets, true
}

// SalesReport aggregates non-cancelled orders per day/month/year bucket.
func SalesReport(c *gin.Context) {
	buckets, ok := querySalesBuckets(c)
	if !ok {
		return
	}

	var totalOrders int64
	var totalRevenue float64
	for _, b := range buckets {
		totalOrders += b.OrderCount
		totalRevenue += b.Revenue
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Sales report generated successfully",
		"data": gin.H{
			"buckets":       buckets,
			"total_orders":  totalOrders,
			"total_revenue": totalRevenue,
		},
	})
}

// ExportSalesReport streams the same aggregates as an Excel workbook.
func ExportSalesReport(c *gin.Context) {
	buckets, ok := querySalesBuckets(c)
	if !ok {
		return
	}

	xl := excelize.NewFile()
	defer xl.Close()

	sheet := "Sheet1"
	headers := []string{"Period", "Orders", "Revenue", "Average Order"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		xl.SetCellValue(sheet, cell, h)
	}

	var totalOrders int64
	var totalRevenue float64
	for i, b := range buckets {
		row := i + 2
		xl.SetCellValue(sheet, fmt.Sprintf("A%d", row), b.Bucket)
		xl.SetCellValue(sheet, fmt.Sprintf("B%d", row), b.OrderCount)
		xl.SetCellValue(sheet, fmt.Sprintf("C%d", row), b.Revenue)
		xl.SetCellValue(sheet, fmt.Sprintf("D%d", row), b.AverageOrder)
		totalOrders += b.OrderCount
		totalRevenue += b.Revenue
	}

	totalRow := len(buckets) + 2
	xl.SetCellValue(sheet, fmt.Sprintf("A%d", totalRow), "Total")
	xl.SetCellValue(sheet, fmt.Sprintf("B%d", totalRow), totalOrders)
	xl.SetCellValue(sheet, fmt.Sprintf("C%d", totalRow), totalRevenue)

	fileName := fmt.Sprintf("sales-report-%s.xlsx", time.Now().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", fileName))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := xl.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   fmt.Sprintf("Failed to write Excel file: %v", err),
		})
	}
}
