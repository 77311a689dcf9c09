package report

import (
	"strconv"

	"dxf-checker/internal/checker/match"
	"dxf-checker/internal/checker/models"
)

// ============================================================
// Report Builder
// ============================================================

// Заголовки секций и значения флага Match — литералы, на которые завязана
// раскраска строк ниже по конвейеру. Не менять.
const (
	SectionMatched    = "Matched Room"
	SectionNotMatched = "Not Matched Room"
	MatchYes          = "YES"
	MatchNo           = "NO"
)

// Header — порядок колонок табличного отчета.
var Header = []string{
	"Block",
	"Name of room",
	"Length from dxf(feet)",
	"breadth from dxf(feet)",
	"Input length(feet)",
	"Input breadth(feet)",
	"Match",
	"Reason",
	"area",
}

// Row — одна строка отчета. Строковые поля, чтобы заголовки секций
// и пустые ячейки несовпавших строк выглядели как в исходной таблице.
type Row struct {
	Block        string `json:"block"`
	Name         string `json:"name"`
	DxfLength    string `json:"dxf_length"`
	DxfBreadth   string `json:"dxf_breadth"`
	InputLength  string `json:"input_length"`
	InputBreadth string `json:"input_breadth"`
	Match        string `json:"match"`
	Reason       string `json:"reason"`
	Area         string `json:"area"`
}

// Build раскладывает результаты сопоставления в плоскую таблицу:
// секция совпавших, пустая строка, секция несовпавших. Размеры
// приводятся к футам для отображения. Геометрии здесь нет — только
// перекладка данных.
func Build(results []models.MatchResult) []Row {
	rows := []Row{{Block: SectionMatched}}

	for _, res := range results {
		if !res.Matched {
			continue
		}
		b := res.Boundary
		blockName := b.BlockName
		if blockName == "" {
			blockName = "N/A"
		}
		rows = append(rows, Row{
			Block:        blockName,
			Name:         res.Submitted.Name,
			DxfLength:    formatFeet(b.LengthMm),
			DxfBreadth:   formatFeet(b.BreadthMm),
			InputLength:  formatFeet(res.Submitted.WidthMm),
			InputBreadth: formatFeet(res.Submitted.HeightMm),
			Match:        MatchYes,
			Reason:       "Match",
			Area:         formatFloat(match.Mm2ToSqft(b.AreaMm2)),
		})
	}

	rows = append(rows, Row{}, Row{Block: SectionNotMatched})

	for _, res := range results {
		if res.Matched {
			continue
		}
		rows = append(rows, Row{
			Block:        "N/A",
			Name:         res.Submitted.Name,
			InputLength:  formatFeet(res.Submitted.WidthMm),
			InputBreadth: formatFeet(res.Submitted.HeightMm),
			Match:        MatchNo,
			Reason:       res.Reason,
		})
	}

	return rows
}

func formatFeet(mm float64) string {
	return formatFloat(match.MmToFeet(mm))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
