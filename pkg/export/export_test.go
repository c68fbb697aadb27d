package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleDataset() Dataset {
	return Dataset{
		Headers: []string{"Name", "Roll No", "Subject", "Marks", "Grade"},
		Rows: [][]string{
			{"Alice", "1", "Math", "95", "A+"},
			{"Bob", "2", "Math", "55", "C"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	payload, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(payload)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Name", "Roll No", "Subject", "Marks", "Grade"}, records[0])
	assert.Equal(t, []string{"Bob", "2", "Math", "55", "C"}, records[2])
}

func TestCSVExporterRenderEmptyRows(t *testing.T) {
	payload, err := NewCSVExporter().Render(Dataset{Headers: []string{"Name"}})
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(payload)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestCSVExporterRejectsMissingHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	require.Error(t, err)
}

func TestExcelExporterRender(t *testing.T) {
	payload, err := NewExcelExporter("Students").Render(sampleDataset())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(payload))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Students")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Name", "Roll No", "Subject", "Marks", "Grade"}, rows[0])
	assert.Equal(t, []string{"Alice", "1", "Math", "95", "A+"}, rows[1])
}

func TestExcelExporterRenderEmptyRows(t *testing.T) {
	payload, err := NewExcelExporter("").Render(Dataset{Headers: []string{"Name"}})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(payload))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestPDFExporterRender(t *testing.T) {
	payload, err := NewPDFExporter().Render(sampleDataset(), "Student Performance Summary")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(payload, []byte("%PDF")))
}
