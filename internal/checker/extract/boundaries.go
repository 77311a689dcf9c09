package extract

import (
	"log"
	"math"

	"dxf-checker/internal/checker/dxf"
	"dxf-checker/internal/checker/models"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// ============================================================
// Boundary Extractor
// ============================================================

// Rooms извлекает контуры комнат: замкнутые LWPOLYLINE из секции ENTITIES
// и из вставленных блоков (с учетом трансформации вставки). Координаты
// чертежа трактуются как миллиметры. Извлечение работает по принципу
// best-effort: вырожденный контур пропускается и не прерывает обход.
func Rooms(doc *dxf.Document) []models.RoomBoundary {
	var rooms []models.RoomBoundary

	for idx, entity := range doc.Entities {
		switch e := entity.(type) {
		case *dxf.Polyline:
			if !e.Closed {
				continue
			}
			if room, ok := buildBoundary(e.Points, "", idx); ok {
				rooms = append(rooms, room)
			}
		case *dxf.Insert:
			if isDoorBlock(e.BlockName) {
				continue
			}
			block, ok := doc.Blocks[e.BlockName]
			if !ok {
				continue
			}
			for _, sub := range block.Entities {
				poly, ok := sub.(*dxf.Polyline)
				if !ok || !poly.Closed {
					continue
				}
				points := transformPoints(poly.Points, block.Base, e)
				if room, ok := buildBoundary(points, e.BlockName, idx); ok {
					rooms = append(rooms, room)
				}
			}
		}
	}

	return rooms
}

// buildBoundary строит RoomBoundary из списка вершин.
// Контуры из менее чем 3 вершин и с нулевой площадью отбрасываются.
func buildBoundary(points []orb.Point, blockName string, entityIndex int) (models.RoomBoundary, bool) {
	points = dropClosingPoint(points)
	if len(points) < 3 {
		log.Printf("[EXTRACT] skip boundary: %d vertices", len(points))
		return models.RoomBoundary{}, false
	}

	ring := make(orb.Ring, 0, len(points)+1)
	ring = append(ring, points...)
	ring = append(ring, points[0])

	// Модуль shoelace-площади: порядок обхода вершин не влияет на результат.
	area := math.Abs(planar.Area(ring))
	if area == 0 {
		log.Printf("[EXTRACT] skip boundary: degenerate loop")
		return models.RoomBoundary{}, false
	}

	bound := ring.Bound()
	dx := bound.Max[0] - bound.Min[0]
	dy := bound.Max[1] - bound.Min[1]

	return models.RoomBoundary{
		Ring:        ring,
		AreaMm2:     area,
		LengthMm:    math.Max(dx, dy),
		BreadthMm:   math.Min(dx, dy),
		BlockName:   blockName,
		EntityIndex: entityIndex,
	}, true
}

func dropClosingPoint(points []orb.Point) []orb.Point {
	if len(points) > 1 && points[0] == points[len(points)-1] {
		return points[:len(points)-1]
	}
	return points
}

// transformPoints переводит вершины блока в мировые координаты:
// масштаб, поворот вокруг базовой точки, перенос в точку вставки.
func transformPoints(points []orb.Point, base orb.Point, ins *dxf.Insert) []orb.Point {
	rad := ins.Rotation * math.Pi / 180.0
	cos, sin := math.Cos(rad), math.Sin(rad)

	out := make([]orb.Point, len(points))
	for i, p := range points {
		tx := (p[0] - base[0]) * ins.ScaleX
		ty := (p[1] - base[1]) * ins.ScaleY

		rx := tx*cos - ty*sin
		ry := tx*sin + ty*cos

		out[i] = orb.Point{rx + ins.InsertionPoint[0], ry + ins.InsertionPoint[1]}
	}
	return out
}
