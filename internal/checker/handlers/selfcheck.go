package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"dxf-checker/internal/checker/annotate"
	"dxf-checker/internal/checker/extract"
	"dxf-checker/internal/checker/match"
	"dxf-checker/internal/checker/models"
	"dxf-checker/internal/checker/report"
	"dxf-checker/internal/checker/repository"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Self Check
// ============================================================

// SelfCheck принимает чертеж и заявленные размеры комнат, прогоняет
// конвейер извлечение -> привязка -> сопоставление и сохраняет артефакты.
func (h *CheckHandler) SelfCheck(c fiber.Ctx) error {
	log.Printf("[CHECKER] Self check request, Content-Length: %d", len(c.Body()))

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "file required in multipart/form-data"})
	}

	data, err := readUpload(fileHeader)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	submitted, err := parseSubmittedRooms(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	doc, drawing, err := extract.Build(data)
	if err != nil {
		log.Printf("[CHECKER] parse error: %v", err)
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	results := match.Rooms(submitted, drawing.Rooms)

	annotated, err := annotate.Apply(doc, selfCheckMarks(drawing, results))
	if err != nil {
		log.Printf("[CHECKER] annotate error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to write annotated drawing"})
	}

	rows := report.Build(results)
	excelData, err := report.Export(rows)
	if err != nil {
		log.Printf("[CHECKER] excel error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to build report"})
	}

	historyID, err := h.repo.Add(context.Background(), repository.HistoryRecord{
		CheckType:    "Self Check",
		ClientName:   fileHeader.Filename,
		ModifiedName: "updated_" + fileHeader.Filename,
		ExcelName:    "full_report.xlsx",
	}, repository.Artifacts{
		Client:   data,
		Modified: annotated,
		Excel:    excelData,
	})
	if err != nil {
		log.Printf("[CHECKER] history error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to store history"})
	}

	response := fiber.Map{
		"check_type":      "Self Check",
		"filename":        fileHeader.Filename,
		"rooms_extracted": len(drawing.Rooms),
		"submitted_rooms": submitted,
		"matches":         results,
		"report":          rows,
	}
	for k, v := range downloadLinks(historyID, false) {
		response[k] = v
	}
	return c.JSON(response)
}

// parseSubmittedRooms читает room_count и поля room_name_i / width_feet_i /
// width_inches_i / height_feet_i / height_inches_i. Поля за пределами
// room_count игнорируются, отсутствующие числовые поля получают 0,
// нечисловые значения — ошибка валидации.
func parseSubmittedRooms(c fiber.Ctx) ([]models.SubmittedRoom, error) {
	count, err := formInt(c, "room_count")
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: room_count must be non-negative", models.ErrValidation)
	}

	rooms := make([]models.SubmittedRoom, 0, count)
	for i := 1; i <= count; i++ {
		suffix := "_" + strconv.Itoa(i)

		widthFt, err := formInt(c, "width_feet"+suffix)
		if err != nil {
			return nil, err
		}
		widthIn, err := formInt(c, "width_inches"+suffix)
		if err != nil {
			return nil, err
		}
		heightFt, err := formInt(c, "height_feet"+suffix)
		if err != nil {
			return nil, err
		}
		heightIn, err := formInt(c, "height_inches"+suffix)
		if err != nil {
			return nil, err
		}

		rooms = append(rooms, models.SubmittedRoom{
			Name:         extract.CleanText(c.FormValue("room_name" + suffix)),
			WidthMm:      match.FeetInchesToMm(widthFt, widthIn),
			HeightMm:     match.FeetInchesToMm(heightFt, heightIn),
			WidthFeet:    widthFt,
			WidthInches:  widthIn,
			HeightFeet:   heightFt,
			HeightInches: heightIn,
		})
	}

	return rooms, nil
}

func formInt(c fiber.Ctx, key string) (int, error) {
	raw := c.FormValue(key)
	if raw == "" {
		if key == "room_count" {
			return 0, fmt.Errorf("%w: room_count required", models.ErrValidation)
		}
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", models.ErrValidation, key)
	}
	return v, nil
}

// selfCheckMarks: совпавшие контуры зеленым, оставшиеся извлеченные — красным.
func selfCheckMarks(drawing *models.Drawing, results []models.MatchResult) []annotate.Mark {
	matched := make(map[int]bool)
	for _, res := range results {
		if res.Matched {
			matched[res.BoundaryIndex] = true
		}
	}

	marks := make([]annotate.Mark, 0, len(drawing.Rooms))
	for i, room := range drawing.Rooms {
		marks = append(marks, annotate.Mark{
			EntityIndex: room.EntityIndex,
			Ring:        room.Ring,
			OK:          matched[i],
		})
	}
	return marks
}
