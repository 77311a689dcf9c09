package report

import (
	"testing"

	"dxf-checker/internal/checker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() []models.MatchResult {
	matched := models.RoomBoundary{
		AreaMm2:   11148364.8,
		LengthMm:  3657.6,
		BreadthMm: 3048,
		BlockName: "UNIT_A",
	}

	return []models.MatchResult{
		{
			Submitted: models.SubmittedRoom{Name: "bedroom 1", WidthMm: 3048, HeightMm: 3657.6},
			Boundary:  &matched,
			Matched:   true,
		},
		{
			Submitted: models.SubmittedRoom{Name: "kitchen", WidthMm: 3048, HeightMm: 3048},
			Matched:   false,
			Reason:    "User Input not match",
		},
	}
}

func TestBuildSections(t *testing.T) {
	rows := Build(sampleResults())

	// Секция совпавших, строка данных, пустой разделитель, секция несовпавших, строка данных.
	require.Len(t, rows, 5)
	assert.Equal(t, SectionMatched, rows[0].Block)
	assert.Equal(t, Row{}, rows[2])
	assert.Equal(t, SectionNotMatched, rows[3].Block)
}

func TestBuildMatchedRow(t *testing.T) {
	rows := Build(sampleResults())

	row := rows[1]
	assert.Equal(t, "UNIT_A", row.Block)
	assert.Equal(t, "bedroom 1", row.Name)
	assert.Equal(t, "12.00", row.DxfLength)
	assert.Equal(t, "10.00", row.DxfBreadth)
	assert.Equal(t, "10.00", row.InputLength)
	assert.Equal(t, "12.00", row.InputBreadth)
	assert.Equal(t, MatchYes, row.Match)
	assert.Equal(t, "120.00", row.Area)
}

func TestBuildUnmatchedRow(t *testing.T) {
	rows := Build(sampleResults())

	row := rows[4]
	assert.Equal(t, "N/A", row.Block)
	assert.Equal(t, "kitchen", row.Name)
	assert.Empty(t, row.DxfLength)
	assert.Equal(t, MatchNo, row.Match)
	assert.Equal(t, "User Input not match", row.Reason)
}

func TestBuildEmptyBlockName(t *testing.T) {
	results := sampleResults()
	results[0].Boundary.BlockName = ""

	rows := Build(results)
	assert.Equal(t, "N/A", rows[1].Block)
}
