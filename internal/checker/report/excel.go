package report

import (
	"bytes"
	"fmt"
	"strconv"

	"dxf-checker/internal/checker/models"

	"github.com/xuri/excelize/v2"
)

// ============================================================
// Excel Export
// ============================================================

// Заливки строк: зеленая для Match=YES, красная для Match=NO.
const (
	fillMatched    = "C6EFCE"
	fillMismatched = "FFC7CE"
)

// MismatchHeader — колонки отчета сравнения с эталоном.
var MismatchHeader = []string{"Feature", "Index", "Reference (mm)", "Client (mm)", "Match"}

// Export собирает xlsx-отчет самопроверки: строки Build с раскраской
// по колонке Match. Возвращает содержимое файла в памяти.
func Export(rows []Row) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Report"

	index, err := f.NewSheet(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, greenStyle, redStyle, err := makeStyles(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	if err := writeRow(f, sheet, 1, toCells(Header), headerStyle); err != nil {
		f.Close()
		return nil, err
	}

	for i, row := range rows {
		style := 0
		switch row.Match {
		case MatchYes:
			style = greenStyle
		case MatchNo:
			style = redStyle
		}

		cells := []any{
			row.Block, row.Name, row.DxfLength, row.DxfBreadth,
			row.InputLength, row.InputBreadth, row.Match, row.Reason, row.Area,
		}
		if err := writeRow(f, sheet, i+2, cells, style); err != nil {
			f.Close()
			return nil, err
		}
	}

	return finish(f)
}

// ExportMismatches собирает xlsx-отчет сравнения с эталоном:
// секция комнат, секция дверей.
func ExportMismatches(roomRecords, doorRecords []models.MismatchRecord) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Reference Check"

	index, err := f.NewSheet(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, greenStyle, redStyle, err := makeStyles(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	if err := writeRow(f, sheet, 1, toCells(MismatchHeader), headerStyle); err != nil {
		f.Close()
		return nil, err
	}

	rowNum := 2
	for _, rec := range append(append([]models.MismatchRecord{}, roomRecords...), doorRecords...) {
		style := redStyle
		flag := MatchNo
		if rec.Match {
			style = greenStyle
			flag = MatchYes
		}

		cells := []any{
			rec.FeatureKind,
			rec.Index,
			mismatchCell(rec.RefMm, rec.HasRef),
			mismatchCell(rec.ClientMm, rec.HasClient),
			flag,
		}
		if err := writeRow(f, sheet, rowNum, cells, style); err != nil {
			f.Close()
			return nil, err
		}
		rowNum++
	}

	return finish(f)
}

func mismatchCell(v float64, present bool) string {
	if !present {
		return "absent"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// ============================================================
// Helpers
// ============================================================

func makeStyles(f *excelize.File) (header, green, red int, err error) {
	header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return 0, 0, 0, fmt.Errorf("header style: %w", err)
	}

	green, err = f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{fillMatched}, Pattern: 1},
	})
	if err != nil {
		return 0, 0, 0, fmt.Errorf("green style: %w", err)
	}

	red, err = f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{fillMismatched}, Pattern: 1},
	})
	if err != nil {
		return 0, 0, 0, fmt.Errorf("red style: %w", err)
	}

	return header, green, red, nil
}

func writeRow(f *excelize.File, sheet string, row int, cells []any, style int) error {
	for col, value := range cells {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
		if style != 0 {
			if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
				return fmt.Errorf("style cell %s: %w", cell, err)
			}
		}
	}
	return nil
}

func toCells(header []string) []any {
	out := make([]any, len(header))
	for i, h := range header {
		out[i] = h
	}
	return out
}

func finish(f *excelize.File) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close workbook: %w", err)
	}
	return buf.Bytes(), nil
}
