package handlers

import (
	"context"
	"log"
	"net/http"

	"dxf-checker/internal/checker/annotate"
	"dxf-checker/internal/checker/extract"
	"dxf-checker/internal/checker/match"
	"dxf-checker/internal/checker/models"
	"dxf-checker/internal/checker/report"
	"dxf-checker/internal/checker/repository"

	"github.com/google/uuid"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Reference Check
// ============================================================

// ReferenceCheck сравнивает размеры комнат и дверей клиентского чертежа
// с эталонным и возвращает расхождения вместе со ссылками на артефакты.
func (h *CheckHandler) ReferenceCheck(c fiber.Ctx) error {
	log.Printf("[CHECKER] Reference check request, Content-Length: %d", len(c.Body()))

	refHeader, err := c.FormFile("ref_file")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "ref_file required in multipart/form-data"})
	}
	clientHeader, err := c.FormFile("client_file")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "client_file required in multipart/form-data"})
	}

	refData, err := readUpload(refHeader)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	clientData, err := readUpload(clientHeader)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	// Оба чертежа разбираются независимо, одной и той же логикой извлечения.
	_, refDrawing, err := extract.Build(refData)
	if err != nil {
		log.Printf("[CHECKER] reference parse error: %v", err)
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "reference: " + err.Error()})
	}
	clientDoc, clientDrawing, err := extract.Build(clientData)
	if err != nil {
		log.Printf("[CHECKER] client parse error: %v", err)
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "client: " + err.Error()})
	}

	roomRecords := match.CompareRooms(refDrawing.Rooms, clientDrawing.Rooms)
	doorRecords := match.CompareDoors(refDrawing.Doors, clientDrawing.Doors)

	annotated, err := annotate.Apply(clientDoc, referenceMarks(clientDrawing, roomRecords, doorRecords))
	if err != nil {
		log.Printf("[CHECKER] annotate error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to write annotated drawing"})
	}

	excelData, err := report.ExportMismatches(roomRecords, doorRecords)
	if err != nil {
		log.Printf("[CHECKER] excel error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to build report"})
	}

	historyID, err := h.repo.Add(context.Background(), repository.HistoryRecord{
		CheckType:     "Reference Check",
		ReferenceName: refHeader.Filename,
		ClientName:    clientHeader.Filename,
		ModifiedName:  visualizedName(clientHeader.Filename),
		ExcelName:     "report_" + uuid.NewString() + ".xlsx",
	}, repository.Artifacts{
		Reference: refData,
		Client:    clientData,
		Modified:  annotated,
		Excel:     excelData,
	})
	if err != nil {
		log.Printf("[CHECKER] history error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to store history"})
	}

	response := fiber.Map{
		"check_type":      "Reference Check",
		"filename":        clientHeader.Filename,
		"room_mismatches": roomRecords,
		"door_mismatches": doorRecords,
	}
	for k, v := range downloadLinks(historyID, true) {
		response[k] = v
	}
	return c.JSON(response)
}

func visualizedName(filename string) string {
	const ext = ".dxf"
	if len(filename) > len(ext) && filename[len(filename)-len(ext):] == ext {
		return filename[:len(filename)-len(ext)] + "_visualized.dxf"
	}
	return filename + "_visualized.dxf"
}

// referenceMarks красит геометрию клиентского чертежа по результатам
// сравнения: у комнаты два размера на индекс, у двери один.
func referenceMarks(drawing *models.Drawing, roomRecords, doorRecords []models.MismatchRecord) []annotate.Mark {
	roomOK := make(map[int]bool)
	for _, rec := range roomRecords {
		if !rec.HasClient {
			continue
		}
		if prev, seen := roomOK[rec.Index]; seen {
			roomOK[rec.Index] = prev && rec.Match
		} else {
			roomOK[rec.Index] = rec.Match
		}
	}

	doorOK := make(map[int]bool)
	for _, rec := range doorRecords {
		if rec.HasClient {
			doorOK[rec.Index] = rec.Match
		}
	}

	var marks []annotate.Mark
	for i, room := range drawing.Rooms {
		marks = append(marks, annotate.Mark{
			EntityIndex: room.EntityIndex,
			Ring:        room.Ring,
			OK:          roomOK[i],
		})
	}
	for i, door := range drawing.Doors {
		marks = append(marks, annotate.Mark{
			EntityIndex: door.EntityIndex,
			OK:          doorOK[i],
		})
	}
	return marks
}
