package annotate

import (
	"bytes"
	"fmt"
	"log"

	"dxf-checker/internal/checker/dxf"
	"dxf-checker/internal/checker/models"

	"github.com/paulmach/orb"
)

// ============================================================
// Annotation Writer
// ============================================================

// MarkupLayer — слой, на который добавляются подсвечивающие контуры.
const MarkupLayer = "CHECK_MARKUP"

// Цвета ACI: зеленый для совпавшей геометрии, красный для несовпавшей.
const (
	ColorMatched    = 3
	ColorMismatched = 1
)

// Mark — отметка для одной сущности клиентского чертежа.
type Mark struct {
	EntityIndex int      // индекс в doc.Entities
	Ring        orb.Ring // контур подсветки в мировых координатах (опционально)
	OK          bool
}

// Apply собирает новую копию чертежа: исходный поток тегов проходит
// насквозь без изменений, у отмеченных сущностей цвет (код 62)
// перезаписывается — существующий тег цвета заменяется, а не дублируется —
// и перед ENDSEC секции ENTITIES добавляются контуры подсветки на слое
// MarkupLayer. Исходный документ не изменяется.
func Apply(doc *dxf.Document, marks []Mark) ([]byte, error) {
	colorByStart := make(map[int]int)
	for _, mark := range marks {
		if mark.EntityIndex < 0 {
			continue // отметка только с подсветкой, без перекраски
		}
		if mark.EntityIndex >= len(doc.Entities) {
			log.Printf("[ANNOTATE] mark out of range: %d", mark.EntityIndex)
			continue
		}
		start, _ := doc.Entities[mark.EntityIndex].TagRange()
		colorByStart[start] = markColor(mark.OK)
	}

	out := make([]dxf.Tag, 0, len(doc.Tags)+len(marks)*16)

	for i := 0; i < len(doc.Tags); i++ {
		if i == doc.EntitiesEnd {
			for _, mark := range marks {
				out = append(out, highlightTags(mark)...)
			}
			out = append(out, doc.Tags[i])
			continue
		}

		if color, ok := colorByStart[i]; ok {
			end := entityEnd(doc, i)
			out = append(out, recolorEntity(doc.Tags[i:end], color)...)
			i = end - 1
			continue
		}

		out = append(out, doc.Tags[i])
	}

	var buf bytes.Buffer
	if err := dxf.Write(&buf, out); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrWrite, err)
	}

	return buf.Bytes(), nil
}

func markColor(ok bool) int {
	if ok {
		return ColorMatched
	}
	return ColorMismatched
}

func entityEnd(doc *dxf.Document, start int) int {
	for _, entity := range doc.Entities {
		if s, e := entity.TagRange(); s == start {
			return e
		}
	}
	return start + 1
}

// recolorEntity копирует теги сущности, выбрасывая старые теги цвета
// и вставляя новый цвет после тега слоя (или сразу после имени сущности).
func recolorEntity(tags []dxf.Tag, color int) []dxf.Tag {
	out := make([]dxf.Tag, 0, len(tags)+1)
	out = append(out, tags[0])

	inserted := false
	for _, tag := range tags[1:] {
		if tag.Code == 62 {
			continue
		}
		out = append(out, tag)
		if !inserted && tag.Code == 8 {
			out = append(out, dxf.IntTag(62, color))
			inserted = true
		}
	}

	if !inserted {
		out = append(out[:1], append([]dxf.Tag{dxf.IntTag(62, color)}, out[1:]...)...)
	}

	return out
}

// highlightTags формирует замкнутую LWPOLYLINE поверх контура.
func highlightTags(mark Mark) []dxf.Tag {
	points := []orb.Point(mark.Ring)
	if len(points) > 1 && points[0] == points[len(points)-1] {
		points = points[:len(points)-1]
	}
	if len(points) < 3 {
		return nil
	}

	tags := []dxf.Tag{
		{Code: 0, Value: "LWPOLYLINE"},
		{Code: 8, Value: MarkupLayer},
		dxf.IntTag(62, markColor(mark.OK)),
		dxf.IntTag(90, len(points)),
		dxf.IntTag(70, 1),
	}
	for _, p := range points {
		tags = append(tags, dxf.FloatTag(10, p[0]), dxf.FloatTag(20, p[1]))
	}

	return tags
}
