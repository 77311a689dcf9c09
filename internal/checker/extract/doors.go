package extract

import (
	"math"
	"strings"

	"dxf-checker/internal/checker/dxf"
	"dxf-checker/internal/checker/models"

	"github.com/paulmach/orb"
)

// ============================================================
// Door Extraction
// ============================================================

// Doors находит вставки дверных блоков и вычисляет ширину проема как
// больший габарит bounding box геометрии блока в мировых координатах.
func Doors(doc *dxf.Document) []models.DoorFeature {
	var doors []models.DoorFeature

	for idx, entity := range doc.Entities {
		ins, ok := entity.(*dxf.Insert)
		if !ok || !isDoorBlock(ins.BlockName) {
			continue
		}

		width := doorWidth(doc, ins)
		if width == 0 {
			continue
		}

		doors = append(doors, models.DoorFeature{
			BlockName:   ins.BlockName,
			WidthMm:     width,
			Position:    ins.InsertionPoint,
			EntityIndex: idx,
		})
	}

	return doors
}

func isDoorBlock(name string) bool {
	return strings.Contains(strings.ToUpper(name), "DOOR")
}

// doorWidth считает габариты блока под трансформацией вставки.
func doorWidth(doc *dxf.Document, ins *dxf.Insert) float64 {
	block, ok := doc.Blocks[ins.BlockName]
	if !ok {
		return 0
	}

	minX, minY := math.MaxFloat64, math.MaxFloat64
	maxX, maxY := -math.MaxFloat64, -math.MaxFloat64
	seen := false

	collect := func(points []orb.Point) {
		for _, p := range transformPoints(points, block.Base, ins) {
			minX = math.Min(minX, p[0])
			minY = math.Min(minY, p[1])
			maxX = math.Max(maxX, p[0])
			maxY = math.Max(maxY, p[1])
			seen = true
		}
	}

	for _, sub := range block.Entities {
		switch e := sub.(type) {
		case *dxf.Polyline:
			collect(e.Points)
		case *dxf.Text:
			collect([]orb.Point{e.Position})
		}
	}

	if !seen {
		return 0
	}
	return math.Max(maxX-minX, maxY-minY)
}
