package match

import (
	"testing"

	"dxf-checker/internal/checker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roomDims(length, breadth float64) models.RoomBoundary {
	return models.RoomBoundary{LengthMm: length, BreadthMm: breadth}
}

func TestCompareRooms(t *testing.T) {
	ref := []models.RoomBoundary{roomDims(4000, 3000)}
	client := []models.RoomBoundary{roomDims(4020, 3100)}

	records := CompareRooms(ref, client)
	require.Len(t, records, 2)

	// Длина в допуске 25 мм, ширина — нет.
	assert.True(t, records[0].Match)
	assert.False(t, records[1].Match)
	assert.Equal(t, "room", records[0].FeatureKind)
	assert.Equal(t, 0, records[0].Index)
}

func TestCompareRoomsExtraOnOneSide(t *testing.T) {
	ref := []models.RoomBoundary{roomDims(4000, 3000), roomDims(2000, 2000)}
	client := []models.RoomBoundary{roomDims(4000, 3000)}

	records := CompareRooms(ref, client)
	require.Len(t, records, 4)

	assert.True(t, records[0].Match)
	assert.True(t, records[1].Match)

	// Вторая комната есть только в эталоне.
	assert.False(t, records[2].Match)
	assert.True(t, records[2].HasRef)
	assert.False(t, records[2].HasClient)
}

func TestCompareDoors(t *testing.T) {
	ref := []models.DoorFeature{{WidthMm: 900}, {WidthMm: 800}}
	client := []models.DoorFeature{{WidthMm: 950}, {WidthMm: 810}}

	records := CompareDoors(ref, client)
	require.Len(t, records, 2)

	// 900 против 950 — расхождение больше 25 мм.
	assert.False(t, records[0].Match)
	assert.True(t, records[1].Match)
	assert.Equal(t, "door", records[0].FeatureKind)
}

func TestCompareDoorsExactTolerance(t *testing.T) {
	records := CompareDoors(
		[]models.DoorFeature{{WidthMm: 900}},
		[]models.DoorFeature{{WidthMm: 925}},
	)
	require.Len(t, records, 1)
	assert.True(t, records[0].Match)
}

func TestCompareEmptyInputs(t *testing.T) {
	assert.Empty(t, CompareRooms(nil, nil))
	assert.Empty(t, CompareDoors(nil, nil))
}
