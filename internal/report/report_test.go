package report

import (
	"testing"
	"time"

	"employee-portal/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestAttendanceWorkbook(t *testing.T) {
	in := time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)
	out := in.Add(8*time.Hour + 30*time.Minute)
	records := []model.AttendanceRecord{
		{Date: "2025-03-03", UserEmail: "john@company.com", CheckIn: in, CheckOut: &out, Status: model.AttendancePresent, CheckInLocationStatus: model.LocationValid},
		{Date: "2025-03-03", UserEmail: "jane@company.com", CheckIn: in, Status: model.AttendanceCheckedIn},
	}

	buf, err := AttendanceWorkbook(records, in.Add(2*time.Hour))
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Attendance")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, attendanceHeader, rows[0])
	assert.Equal(t, []string{"2025-03-03", "john@company.com", "08:00", "16:30", "8.5", "present", "VALID"}, rows[1])
	assert.Equal(t, "", rows[2][3])
	assert.Equal(t, "2", rows[2][4])
}

func TestInventoryWorkbookRoundTrip(t *testing.T) {
	items := []model.InventoryItem{
		{Name: "Office Chair", SKU: "FUR-CHR-001", Category: "Furniture", Quantity: 8,
			CostPrice: decimal.RequireFromString("120.50"), SellingPrice: decimal.RequireFromString("199.99"),
			Supplier: "ErgoWorks", DateAdded: "2025-01-10"},
	}

	buf, err := InventoryWorkbook(items)
	require.NoError(t, err)

	parsed, err := ParseInventoryWorkbook(buf)
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, "Office Chair", parsed[0].Name)
	assert.Equal(t, 8, parsed[0].Quantity)
	assert.True(t, parsed[0].CostPrice.Equal(decimal.RequireFromString("120.5")))
	assert.True(t, parsed[0].SellingPrice.Equal(decimal.RequireFromString("199.99")))
	assert.Equal(t, "2025-01-10", parsed[0].DateAdded)
}

func TestParseInventoryWorkbook_InvalidQuantity(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Desk Lamp", "LMP-1", "Lighting", "many"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	_, err = ParseInventoryWorkbook(buf)
	assert.ErrorContains(t, err, "row 1")
}
