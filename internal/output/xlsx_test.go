package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func renderWorkbook(t *testing.T) *excelize.File {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, NewXLSXFormatter().Format(testView(), &buf))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestXLSXFormatter_Name(t *testing.T) {
	f := NewXLSXFormatter()
	assert.Equal(t, "xlsx", f.Name())
	assert.Contains(t, f.MediaType(), "spreadsheetml")
}

func TestXLSXFormatter_Sheets(t *testing.T) {
	f := renderWorkbook(t)
	assert.Equal(t, []string{SheetSummary, SheetDetail}, f.GetSheetList())
}

func TestXLSXFormatter_Summary(t *testing.T) {
	f := renderWorkbook(t)

	rows, err := f.GetRows(SheetSummary)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 15)

	assert.Equal(t, []string{"Checklist Progress"}, rows[0])
	assert.Equal(t, []string{"% Complete", "66.7 %"}, rows[2])
	assert.Equal(t, []string{"Delivery Date", "19/08/2025"}, rows[3])
	assert.Equal(t, []string{"Basis", "Pending Points", "Points per Day", "Points per Person per Day"}, rows[8])
	assert.Equal(t, []string{"Calendar days", "5", "0", "0"}, rows[9])
	assert.Equal(t, []string{"Business days", "5", "0", "0"}, rows[10])
	assert.Equal(t, []string{"Status", "Points", "Share %"}, rows[12])
	assert.Equal(t, "Pending", rows[13][0])
	assert.Equal(t, "33.3", rows[13][2])
	assert.Equal(t, "Completed", rows[14][0])
}

func TestXLSXFormatter_Detail(t *testing.T) {
	f := renderWorkbook(t)

	rows, err := f.GetRows(SheetDetail)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"City", "Points", "Completed"},
		{"CityA", "10", "Yes"},
		{"CityB", "5", "No"},
		{"CityC", "0", "No"},
	}, rows)
}

func TestXLSXFormatter_EmptyDetail(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewXLSXFormatter().Format(emptyView(), &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(SheetDetail)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestXLSXFormatter_WriteError(t *testing.T) {
	err := NewXLSXFormatter().Format(testView(), &failWriter{failAfter: 0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write xlsx")
}
