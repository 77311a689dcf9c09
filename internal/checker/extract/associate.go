package extract

import (
	"dxf-checker/internal/checker/models"

	"github.com/paulmach/orb/planar"
)

// ============================================================
// Spatial Associator
// ============================================================

// Associate раскладывает надписи по комнатам через проверку принадлежности
// точки привязки контуру (ray casting, граница считается внутренней).
// Надпись может попасть в 0..n комнат: вложенные и пересекающиеся контуры
// не разрешаются в пользу "наиболее конкретного". Комнаты изменяются
// на месте: заполняется поле Labels.
//
// Сложность O(комнаты × надписи); bbox-фильтр отсекает заведомо внешние
// точки до точного теста, так что точный индекс можно подключить позже,
// не меняя семантику принадлежности.
func Associate(rooms []models.RoomBoundary, texts []models.TextLabel) {
	for i := range rooms {
		bound := rooms[i].Ring.Bound()

		for _, label := range texts {
			if !bound.Contains(label.Anchor) {
				continue
			}
			if planar.RingContains(rooms[i].Ring, label.Anchor) {
				rooms[i].Labels = append(rooms[i].Labels, label)
			}
		}
	}
}
