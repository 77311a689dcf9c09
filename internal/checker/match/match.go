package match

import (
	"math"
	"strings"

	"dxf-checker/internal/checker/models"
)

// ============================================================
// Dimension Matcher
// ============================================================

// AreaToleranceMm2 — допуск по площади (~1 м²) между произведением
// заявленных сторон и площадью контура из чертежа.
const AreaToleranceMm2 = 100000.0

// ReasonNoMatch — причина для комнаты, не нашедшей пары.
const ReasonNoMatch = "User Input not match"

// Rooms сопоставляет заявленные комнаты с извлеченными контурами.
// Алгоритм жадный и зависящий от порядка: комнаты обходятся в порядке
// подачи, контуры — в порядке извлечения, принимается первый контур,
// у которого (a) нормализованное имя комнаты входит подстрокой хотя бы
// в одну привязанную надпись и (b) |w×h − area| ≤ AreaToleranceMm2.
// Принятый контур помечается как использованный и больше не участвует
// в переборе — контур достается максимум одной комнате. При одинаковых
// входах результат детерминирован.
func Rooms(submitted []models.SubmittedRoom, boundaries []models.RoomBoundary) []models.MatchResult {
	results := make([]models.MatchResult, 0, len(submitted))
	consumed := make([]bool, len(boundaries))

	for _, room := range submitted {
		result := models.MatchResult{Submitted: room, BoundaryIndex: -1}

		for i := range boundaries {
			if consumed[i] {
				continue
			}
			if !nameMatches(room.Name, boundaries[i].Labels) {
				continue
			}
			if math.Abs(room.WidthMm*room.HeightMm-boundaries[i].AreaMm2) > AreaToleranceMm2 {
				continue
			}

			consumed[i] = true
			result.Boundary = &boundaries[i]
			result.BoundaryIndex = i
			result.Matched = true
			break
		}

		if !result.Matched {
			result.Reason = ReasonNoMatch
		}
		results = append(results, result)
	}

	return results
}

func nameMatches(name string, labels []models.TextLabel) bool {
	if name == "" {
		return false
	}
	for _, label := range labels {
		if strings.Contains(label.Cleaned, name) {
			return true
		}
	}
	return false
}
