// Package report renders spreadsheet exports and reads inventory imports.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"employee-portal/internal/model"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var (
	attendanceHeader = []string{"Date", "Employee", "Check In", "Check Out", "Hours", "Status", "Check In Location", "Check Out Location"}
	inventoryHeader  = []string{"Name", "SKU", "Category", "Quantity", "Cost Price", "Selling Price", "Supplier", "Date Added"}
)

// AttendanceWorkbook writes one row per attendance record. Open records
// count hours up to now.
func AttendanceWorkbook(records []model.AttendanceRecord, now time.Time) (*bytes.Buffer, error) {
	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		checkOut := ""
		if r.CheckOut != nil {
			checkOut = r.CheckOut.Format("15:04")
		}
		rows = append(rows, []interface{}{
			r.Date,
			r.UserEmail,
			r.CheckIn.Format("15:04"),
			checkOut,
			round2(r.Worked(now).Hours()),
			string(r.Status),
			r.CheckInLocationStatus,
			r.CheckOutLocationStatus,
		})
	}
	return write("Attendance", attendanceHeader, rows)
}

func InventoryWorkbook(items []model.InventoryItem) (*bytes.Buffer, error) {
	rows := make([][]interface{}, 0, len(items))
	for _, it := range items {
		rows = append(rows, []interface{}{
			it.Name,
			it.SKU,
			it.Category,
			it.Quantity,
			it.CostPrice.InexactFloat64(),
			it.SellingPrice.InexactFloat64(),
			it.Supplier,
			it.DateAdded,
		})
	}
	return write("Inventory", inventoryHeader, rows)
}

func write(sheet string, header []string, rows [][]interface{}) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	for col, title := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
	}
	for i, row := range rows {
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}
	return f.WriteToBuffer()
}

// ParseInventoryWorkbook reads items from the first sheet. The columns
// follow the export layout; a header row is detected and skipped, blank
// rows are ignored.
func ParseInventoryWorkbook(r io.Reader) ([]model.InventoryItem, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}

	start := 0
	if len(rows) > 0 && len(rows[0]) > 0 && strings.EqualFold(strings.TrimSpace(rows[0][0]), "name") {
		start = 1
	}

	var items []model.InventoryItem
	for i := start; i < len(rows); i++ {
		row := rows[i]
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		item, err := parseItemRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func parseItemRow(row []string) (model.InventoryItem, error) {
	col := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	item := model.InventoryItem{
		Name:      col(0),
		SKU:       col(1),
		Category:  col(2),
		Supplier:  col(6),
		DateAdded: col(7),
	}

	if q := col(3); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 0 {
			return item, fmt.Errorf("invalid quantity %q", q)
		}
		item.Quantity = n
	}
	var err error
	if item.CostPrice, err = parseMoney(col(4)); err != nil {
		return item, err
	}
	if item.SellingPrice, err = parseMoney(col(5)); err != nil {
		return item, err
	}
	return item, nil
}

func parseMoney(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price %q", s)
	}
	return d.Round(2), nil
}

func round2(f float64) float64 {
	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}
