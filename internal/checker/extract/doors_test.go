package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoors(t *testing.T) {
	doc := mustParse(t, `0
SECTION
2
BLOCKS
0
BLOCK
2
DOOR_SINGLE
10
0
20
0
0
LWPOLYLINE
8
DOORS
70
0
10
0
20
0
10
900
20
0
10
900
20
50
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
DOORS
2
DOOR_SINGLE
10
3000
20
0
0
INSERT
8
WALLS
2
UNKNOWN_BLOCK
10
0
20
0
0
ENDSEC
0
EOF
`)

	doors := Doors(doc)
	require.Len(t, doors, 1)
	assert.Equal(t, "DOOR_SINGLE", doors[0].BlockName)
	assert.Equal(t, 900.0, doors[0].WidthMm)
	assert.Equal(t, 3000.0, doors[0].Position[0])
}

func TestDoorsScaledInsert(t *testing.T) {
	doc := mustParse(t, `0
SECTION
2
BLOCKS
0
BLOCK
2
DOOR_W
10
0
20
0
0
LWPOLYLINE
8
DOORS
70
0
10
0
20
0
10
450
20
0
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
DOORS
2
DOOR_W
10
0
20
0
41
2
42
2
0
ENDSEC
0
EOF
`)

	doors := Doors(doc)
	require.Len(t, doors, 1)
	assert.Equal(t, 900.0, doors[0].WidthMm)
}

func TestDoorBlocksExcludedFromRooms(t *testing.T) {
	doc := mustParse(t, `0
SECTION
2
BLOCKS
0
BLOCK
2
DOOR_BOX
10
0
20
0
0
LWPOLYLINE
8
DOORS
70
1
10
0
20
0
10
900
20
0
10
900
20
900
10
0
20
900
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
DOORS
2
DOOR_BOX
10
0
20
0
0
ENDSEC
0
EOF
`)

	// Замкнутый контур внутри дверного блока — не комната.
	assert.Empty(t, Rooms(doc))
	assert.Len(t, Doors(doc), 1)
}
