package extract

import (
	"dxf-checker/internal/checker/dxf"
	"dxf-checker/internal/checker/models"
)

// ============================================================
// Text Extraction
// ============================================================

// Texts собирает надписи TEXT/MTEXT с нормализованным значением.
// Надписи, пустые после нормализации, не участвуют в сопоставлении.
func Texts(doc *dxf.Document) []models.TextLabel {
	var labels []models.TextLabel

	for _, entity := range doc.Entities {
		t, ok := entity.(*dxf.Text)
		if !ok {
			continue
		}

		cleaned := CleanText(t.Value)
		if cleaned == "" {
			continue
		}

		labels = append(labels, models.TextLabel{
			Raw:     t.Value,
			Cleaned: cleaned,
			Anchor:  t.Position,
		})
	}

	return labels
}
