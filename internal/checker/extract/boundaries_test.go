package extract

import (
	"math"
	"testing"

	"dxf-checker/internal/checker/dxf"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, data string) *dxf.Document {
	t.Helper()
	doc, err := dxf.Parse([]byte(data))
	require.NoError(t, err)
	return doc
}

func TestRoomsWindingInvariance(t *testing.T) {
	// Один прямоугольник против часовой, второй — тот же по часовой.
	doc := mustParse(t, `0
SECTION
2
ENTITIES
0
LWPOLYLINE
8
WALLS
70
1
10
0
20
0
10
4000
20
0
10
4000
20
3000
10
0
20
3000
0
LWPOLYLINE
8
WALLS
70
1
10
0
20
0
10
0
20
3000
10
4000
20
3000
10
4000
20
0
0
ENDSEC
0
EOF
`)

	rooms := Rooms(doc)
	require.Len(t, rooms, 2)
	assert.Equal(t, 12000000.0, rooms[0].AreaMm2)
	assert.Equal(t, rooms[0].AreaMm2, rooms[1].AreaMm2)
	assert.Equal(t, 4000.0, rooms[0].LengthMm)
	assert.Equal(t, 3000.0, rooms[0].BreadthMm)
}

func TestRoomsSkipsDegenerate(t *testing.T) {
	// Двухвершинный "контур" и нулевая площадь не должны попасть в результат.
	doc := mustParse(t, `0
SECTION
2
ENTITIES
0
LWPOLYLINE
8
WALLS
70
1
10
0
20
0
10
1000
20
0
0
LWPOLYLINE
8
WALLS
70
1
10
0
20
0
10
1000
20
0
10
2000
20
0
0
LWPOLYLINE
8
WALLS
70
0
10
0
20
0
10
1000
20
0
10
1000
20
1000
10
0
20
1000
0
ENDSEC
0
EOF
`)

	// Первый — 2 вершины, второй — коллинеарный, третий — не замкнут.
	assert.Empty(t, Rooms(doc))
}

func TestRoomsFromBlockInsert(t *testing.T) {
	doc := mustParse(t, `0
SECTION
2
BLOCKS
0
BLOCK
2
UNIT_A
10
0
20
0
0
LWPOLYLINE
8
WALLS
70
1
10
0
20
0
10
1000
20
0
10
1000
20
1000
10
0
20
1000
0
ENDBLK
0
ENDSEC
0
SECTION
2
ENTITIES
0
INSERT
8
WALLS
2
UNIT_A
10
5000
20
5000
41
2
42
2
0
ENDSEC
0
EOF
`)

	rooms := Rooms(doc)
	require.Len(t, rooms, 1)

	// Квадрат 1000x1000 с масштабом 2 -> 2000x2000 от точки вставки.
	assert.Equal(t, 4000000.0, rooms[0].AreaMm2)
	assert.Equal(t, "UNIT_A", rooms[0].BlockName)

	bound := rooms[0].Ring.Bound()
	assert.Equal(t, 5000.0, bound.Min[0])
	assert.Equal(t, 7000.0, bound.Max[0])
}

func TestRoomsDropsClosingDuplicate(t *testing.T) {
	doc := mustParse(t, `0
SECTION
2
ENTITIES
0
LWPOLYLINE
8
WALLS
70
1
10
0
20
0
10
2000
20
0
10
2000
20
2000
10
0
20
2000
10
0
20
0
0
ENDSEC
0
EOF
`)

	rooms := Rooms(doc)
	require.Len(t, rooms, 1)
	assert.Equal(t, 4000000.0, rooms[0].AreaMm2)
	// Кольцо замкнуто ровно одной копией первой вершины.
	assert.Len(t, rooms[0].Ring, 5)
}

func TestTransformPoints(t *testing.T) {
	ins := &dxf.Insert{
		InsertionPoint: orb.Point{10, 10},
		ScaleX:         1,
		ScaleY:         1,
		Rotation:       90,
	}

	out := transformPoints([]orb.Point{{1, 0}}, orb.Point{0, 0}, ins)
	require.Len(t, out, 1)
	assert.InDelta(t, 10.0, out[0][0], 1e-9)
	assert.InDelta(t, 11.0, out[0][1], 1e-9)
	assert.False(t, math.IsNaN(out[0][0]))
}
