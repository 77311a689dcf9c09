package match

import (
	"math"

	"dxf-checker/internal/checker/models"
)

// ============================================================
// Reference Comparator
// ============================================================

// LengthToleranceMm — допуск на один линейный размер при сравнении
// эталонного и клиентского чертежа.
const LengthToleranceMm = 25.0

// CompareRooms сравнивает размеры комнат позиционно (i-я с i-й): у DXF
// в поддерживаемом подмножестве нет стабильных идентификаторов. Для
// каждой комнаты сравниваются длина и ширина. Лишние комнаты с любой
// стороны дают запись "отсутствует на другой стороне", а не ошибку.
func CompareRooms(ref, client []models.RoomBoundary) []models.MismatchRecord {
	n := len(ref)
	if len(client) > n {
		n = len(client)
	}

	var records []models.MismatchRecord
	for i := 0; i < n; i++ {
		var refLen, refBr, cliLen, cliBr float64
		hasRef := i < len(ref)
		hasClient := i < len(client)

		if hasRef {
			refLen, refBr = ref[i].LengthMm, ref[i].BreadthMm
		}
		if hasClient {
			cliLen, cliBr = client[i].LengthMm, client[i].BreadthMm
		}

		records = append(records,
			compareValue("room", i, refLen, cliLen, hasRef, hasClient),
			compareValue("room", i, refBr, cliBr, hasRef, hasClient),
		)
	}

	return records
}

// CompareDoors сравнивает ширины дверных проемов позиционно.
func CompareDoors(ref, client []models.DoorFeature) []models.MismatchRecord {
	n := len(ref)
	if len(client) > n {
		n = len(client)
	}

	var records []models.MismatchRecord
	for i := 0; i < n; i++ {
		var refW, cliW float64
		hasRef := i < len(ref)
		hasClient := i < len(client)

		if hasRef {
			refW = ref[i].WidthMm
		}
		if hasClient {
			cliW = client[i].WidthMm
		}

		records = append(records, compareValue("door", i, refW, cliW, hasRef, hasClient))
	}

	return records
}

func compareValue(kind string, index int, refMm, clientMm float64, hasRef, hasClient bool) models.MismatchRecord {
	rec := models.MismatchRecord{
		FeatureKind: kind,
		Index:       index,
		RefMm:       refMm,
		ClientMm:    clientMm,
		HasRef:      hasRef,
		HasClient:   hasClient,
	}

	rec.Match = hasRef && hasClient && math.Abs(refMm-clientMm) <= LengthToleranceMm
	return rec
}
