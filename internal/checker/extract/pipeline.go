package extract

import (
	"dxf-checker/internal/checker/dxf"
	"dxf-checker/internal/checker/models"
)

// ============================================================
// Extraction Pipeline
// ============================================================

// Build разбирает чертеж и собирает его неизменяемое представление:
// комнаты с уже привязанными надписями, все надписи и двери.
// Document возвращается отдельно — он нужен аннотатору для записи копии.
func Build(data []byte) (*dxf.Document, *models.Drawing, error) {
	doc, err := dxf.Parse(data)
	if err != nil {
		return nil, nil, err
	}

	rooms := Rooms(doc)
	texts := Texts(doc)
	Associate(rooms, texts)

	drawing := &models.Drawing{
		Rooms: rooms,
		Texts: texts,
		Doors: Doors(doc),
	}

	return doc, drawing, nil
}
