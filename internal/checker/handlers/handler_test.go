package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"dxf-checker/internal/checker/repository"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Прямоугольник 3048x3657.6 мм (10x12 футов) с надписью внутри.
var bedroomDXF = `0
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
3048
20
0
10
3048
20
3657.6
10
0
20
3657.6
0
TEXT
8
ANNOT
10
1500
20
1800
1
Bedroom 1
0
ENDSEC
0
EOF
`

func doorDXF(width string) string {
	return `0
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
` + width + `
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
INSERT
8
DOORS
2
DOOR_SINGLE
10
2000
20
0
0
ENDSEC
0
EOF
`
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := repository.OpenSQLite(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := repository.New(db)
	require.NoError(t, repo.Init(t.Context(), "../../../migrations/001_init_history.sql"))

	handler := NewCheckHandler(repo)

	app := fiber.New()
	app.Post("/self-check", handler.SelfCheck)
	app.Post("/reference-check", handler.ReferenceCheck)
	app.Get("/history", handler.History)
	app.Delete("/history", handler.ClearHistory)
	app.Delete("/history/:id", handler.DeleteEntry)
	app.Get("/download/:kind/:id", handler.Download)
	return app
}

func multipartRequest(t *testing.T, url string, files map[string]string, fields map[string]string) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for name, content := range files {
		field, filename := splitFileKey(name)
		part, err := writer.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(body.Bytes()))
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

// splitFileKey разбирает ключ вида "field:filename".
func splitFileKey(name string) (string, string) {
	for i := 0; i < len(name); i++ {
		if name[i] == ':' {
			return name[:i], name[i+1:]
		}
	}
	return name, name
}

func decodeJSON(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(data, &payload))
	return payload
}

func TestSelfCheck(t *testing.T) {
	app := newTestApp(t)

	req := multipartRequest(t, "/self-check",
		map[string]string{"file:plan.dxf": bedroomDXF},
		map[string]string{
			"room_count":      "1",
			"room_name_1":     "Bedroom 1",
			"width_feet_1":    "10",
			"width_inches_1":  "0",
			"height_feet_1":   "12",
			"height_inches_1": "0",
		})

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	payload := decodeJSON(t, resp)
	assert.Equal(t, "Self Check", payload["check_type"])
	assert.Equal(t, float64(1), payload["rooms_extracted"])
	assert.Contains(t, payload, "download_link")
	assert.Contains(t, payload, "excel_link")

	matches, ok := payload["matches"].([]any)
	require.True(t, ok)
	require.Len(t, matches, 1)
	assert.Equal(t, true, matches[0].(map[string]any)["matched"])

	// Проверка попала в историю.
	histResp, err := app.Test(httptest.NewRequest(http.MethodGet, "/history", nil))
	require.NoError(t, err)
	histData, err := io.ReadAll(histResp.Body)
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal(histData, &records))
	require.Len(t, records, 1)
	assert.Equal(t, "Self Check", records[0]["check_type"])
}

func TestSelfCheckRejectsNonDXF(t *testing.T) {
	app := newTestApp(t)

	req := multipartRequest(t, "/self-check",
		map[string]string{"file:plan.txt": "whatever"},
		map[string]string{"room_count": "0"})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSelfCheckRequiresRoomCount(t *testing.T) {
	app := newTestApp(t)

	req := multipartRequest(t, "/self-check",
		map[string]string{"file:plan.dxf": bedroomDXF},
		nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSelfCheckRejectsBadRoomCount(t *testing.T) {
	app := newTestApp(t)

	req := multipartRequest(t, "/self-check",
		map[string]string{"file:plan.dxf": bedroomDXF},
		map[string]string{"room_count": "many"})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSelfCheckRejectsInvalidDrawing(t *testing.T) {
	app := newTestApp(t)

	req := multipartRequest(t, "/self-check",
		map[string]string{"file:plan.dxf": "not a drawing"},
		map[string]string{"room_count": "0"})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReferenceCheck(t *testing.T) {
	app := newTestApp(t)

	req := multipartRequest(t, "/reference-check",
		map[string]string{
			"ref_file:ref.dxf":       doorDXF("900"),
			"client_file:client.dxf": doorDXF("950"),
		},
		nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	payload := decodeJSON(t, resp)
	assert.Equal(t, "Reference Check", payload["check_type"])
	assert.Contains(t, payload, "reference_file_link")

	doors, ok := payload["door_mismatches"].([]any)
	require.True(t, ok)
	require.Len(t, doors, 1)
	// 900 против 950 — вне допуска 25 мм.
	assert.Equal(t, false, doors[0].(map[string]any)["match"])

	rooms, ok := payload["room_mismatches"].([]any)
	require.True(t, ok)
	require.Len(t, rooms, 2)
	assert.Equal(t, true, rooms[0].(map[string]any)["match"])
}

func TestDownload(t *testing.T) {
	app := newTestApp(t)

	req := multipartRequest(t, "/self-check",
		map[string]string{"file:plan.dxf": bedroomDXF},
		map[string]string{"room_count": "0"})

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	dl, err := app.Test(httptest.NewRequest(http.MethodGet, "/download/modified/1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, dl.StatusCode)
	assert.Contains(t, dl.Header.Get("Content-Disposition"), "updated_plan.dxf")

	xl, err := app.Test(httptest.NewRequest(http.MethodGet, "/download/excel/1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, xl.StatusCode)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		xl.Header.Get("Content-Type"))

	missing, err := app.Test(httptest.NewRequest(http.MethodGet, "/download/modified/999", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)

	// Self check без эталона: reference отсутствует.
	noRef, err := app.Test(httptest.NewRequest(http.MethodGet, "/download/reference/1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, noRef.StatusCode)
}

func TestHistoryDelete(t *testing.T) {
	app := newTestApp(t)

	req := multipartRequest(t, "/self-check",
		map[string]string{"file:plan.dxf": bedroomDXF},
		map[string]string{"room_count": "0"})
	_, err := app.Test(req)
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/history/1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	histResp, err := app.Test(httptest.NewRequest(http.MethodGet, "/history", nil))
	require.NoError(t, err)
	data, err := io.ReadAll(histResp.Body)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(bytes.TrimSpace(data)))
}
