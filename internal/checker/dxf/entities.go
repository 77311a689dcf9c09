package dxf

import (
	"strings"

	"github.com/paulmach/orb"
)

// ============================================================
// Typed Entities
// ============================================================

// Entity — типизированная сущность из секции ENTITIES или блока.
// Start/End задают диапазон тегов исходного потока (End не включительно),
// что позволяет копировать сущность без потерь при записи.
type Entity interface {
	EntityType() string
	TagRange() (start, end int)
}

type BaseEntity struct {
	TypeName string
	Layer    string
	Color    int // групповой код 62; 0 — цвет не задан
	HasColor bool
	start    int
	end      int
}

func (e BaseEntity) EntityType() string {
	return e.TypeName
}

func (e BaseEntity) TagRange() (int, int) {
	return e.start, e.end
}

// Polyline — LWPOLYLINE, кандидат на контур комнаты при Closed.
type Polyline struct {
	BaseEntity
	Closed bool
	Points []orb.Point
}

// Insert — вставка блока с трансформацией.
type Insert struct {
	BaseEntity
	BlockName      string
	InsertionPoint orb.Point
	ScaleX         float64
	ScaleY         float64
	Rotation       float64 // градусы
}

// Text — TEXT или MTEXT с точкой привязки.
type Text struct {
	BaseEntity
	Value    string
	Position orb.Point
	Height   float64
}

// ============================================================
// Per-entity parsing
// ============================================================

// parseEntity разбирает теги одной сущности начиная с tags[i] (код 0).
// Возвращает сущность (nil для неподдерживаемых типов) и индекс
// следующего тега с кодом 0.
func parseEntity(tags []Tag, i int) (Entity, int) {
	name := strings.ToUpper(tags[i].Value)
	j := i + 1
	for j < len(tags) && tags[j].Code != 0 {
		j++
	}

	base := BaseEntity{TypeName: name, start: i, end: j}
	body := tags[i+1 : j]

	for _, tag := range body {
		switch tag.Code {
		case 8:
			base.Layer = tag.AsString()
		case 62:
			base.Color = tag.AsInt()
			base.HasColor = true
		}
	}

	switch name {
	case "LWPOLYLINE":
		return parsePolyline(base, body), j
	case "INSERT":
		return parseInsert(base, body), j
	case "TEXT":
		return parseText(base, body), j
	case "MTEXT":
		return parseMText(base, body), j
	}

	return nil, j
}

func parsePolyline(base BaseEntity, body []Tag) *Polyline {
	p := &Polyline{BaseEntity: base}

	var x float64
	var hasX bool
	for _, tag := range body {
		switch tag.Code {
		case 70:
			p.Closed = tag.AsInt()&1 != 0
		case 10:
			x = tag.AsFloat()
			hasX = true
		case 20:
			if hasX {
				p.Points = append(p.Points, orb.Point{x, tag.AsFloat()})
				hasX = false
			}
		}
	}

	return p
}

func parseInsert(base BaseEntity, body []Tag) *Insert {
	ins := &Insert{BaseEntity: base, ScaleX: 1, ScaleY: 1}

	for _, tag := range body {
		switch tag.Code {
		case 2:
			ins.BlockName = strings.ToUpper(tag.AsString())
		case 10:
			ins.InsertionPoint[0] = tag.AsFloat()
		case 20:
			ins.InsertionPoint[1] = tag.AsFloat()
		case 41:
			ins.ScaleX = tag.AsFloat()
		case 42:
			ins.ScaleY = tag.AsFloat()
		case 50:
			ins.Rotation = tag.AsFloat()
		}
	}

	return ins
}

func parseText(base BaseEntity, body []Tag) *Text {
	t := &Text{BaseEntity: base}

	for _, tag := range body {
		switch tag.Code {
		case 1:
			t.Value = tag.AsString()
		case 10:
			t.Position[0] = tag.AsFloat()
		case 20:
			t.Position[1] = tag.AsFloat()
		case 40:
			t.Height = tag.AsFloat()
		}
	}

	return t
}

func parseMText(base BaseEntity, body []Tag) *Text {
	t := &Text{BaseEntity: base}

	// В MTEXT длинный текст идет кусками: коды 3 — продолжения, код 1 — хвост.
	var chunks []string
	for _, tag := range body {
		switch tag.Code {
		case 3:
			chunks = append(chunks, tag.AsString())
		case 1:
			chunks = append(chunks, tag.AsString())
		case 10:
			t.Position[0] = tag.AsFloat()
		case 20:
			t.Position[1] = tag.AsFloat()
		case 40:
			t.Height = tag.AsFloat()
		}
	}
	t.Value = strings.Join(chunks, "")

	return t
}
