package models

import "github.com/paulmach/orb"

// ============================================================
// Drawing IR
// ============================================================

// Drawing — неизменяемое представление чертежа после разбора.
// Собирается один раз на запрос и дальше передается по конвейеру.
type Drawing struct {
	Rooms []RoomBoundary `json:"rooms"`
	Texts []TextLabel    `json:"texts"`
	Doors []DoorFeature  `json:"doors"`
}

// RoomBoundary — замкнутый контур комнаты в миллиметрах.
type RoomBoundary struct {
	Ring        orb.Ring    `json:"ring"`
	AreaMm2     float64     `json:"area_mm2"`
	LengthMm    float64     `json:"length_mm"`
	BreadthMm   float64     `json:"breadth_mm"`
	BlockName   string      `json:"block_name,omitempty"`
	EntityIndex int         `json:"-"` // индекс исходной сущности в dxf.Document
	Labels      []TextLabel `json:"labels"`
}

// TextLabel — текстовая надпись с точкой привязки.
type TextLabel struct {
	Raw     string    `json:"raw"`
	Cleaned string    `json:"cleaned"`
	Anchor  orb.Point `json:"anchor"`
}

// DoorFeature — дверной блок с вычисленной шириной проема.
type DoorFeature struct {
	BlockName   string    `json:"block_name"`
	WidthMm     float64   `json:"width_mm"`
	Position    orb.Point `json:"position"`
	EntityIndex int       `json:"-"`
}

// ============================================================
// User input & match results
// ============================================================

// SubmittedRoom — комната, заявленная пользователем (имя уже нормализовано).
type SubmittedRoom struct {
	Name         string  `json:"name"`
	WidthMm      float64 `json:"width_mm"`
	HeightMm     float64 `json:"height_mm"`
	WidthFeet    int     `json:"width_feet"`
	WidthInches  int     `json:"width_inches"`
	HeightFeet   int     `json:"height_feet"`
	HeightInches int     `json:"height_inches"`
}

// MatchResult связывает заявленную комнату с контуром из чертежа.
// Boundary == nil означает, что пара не найдена (см. Reason).
type MatchResult struct {
	Submitted     SubmittedRoom `json:"submitted"`
	Boundary      *RoomBoundary `json:"boundary,omitempty"`
	BoundaryIndex int           `json:"-"`
	Matched       bool          `json:"matched"`
	Reason        string        `json:"reason,omitempty"`
}

// MismatchRecord — результат сравнения одного размера между эталонным
// и клиентским чертежом.
type MismatchRecord struct {
	FeatureKind string  `json:"feature_kind"` // room | door
	Index       int     `json:"index"`
	RefMm       float64 `json:"ref_mm"`
	ClientMm    float64 `json:"client_mm"`
	HasRef      bool    `json:"has_ref"`
	HasClient   bool    `json:"has_client"`
	Match       bool    `json:"match"`
}
