package handlers

import (
	"context"
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"dxf-checker/internal/checker/repository"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Checker Handler
// ============================================================

type CheckHandler struct {
	repo *repository.Repository
}

func NewCheckHandler(repo *repository.Repository) *CheckHandler {
	return &CheckHandler{repo: repo}
}

// ============================================================
// History & Downloads
// ============================================================

// History возвращает записи истории, новые первыми.
func (h *CheckHandler) History(c fiber.Ctx) error {
	records, err := h.repo.List(context.Background())
	if err != nil {
		log.Printf("[CHECKER] list history error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load history"})
	}
	if records == nil {
		records = []repository.HistoryRecord{}
	}
	return c.JSON(records)
}

// DeleteEntry удаляет одну запись истории.
func (h *CheckHandler) DeleteEntry(c fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid history id"})
	}
	if err := h.repo.Delete(context.Background(), id); err != nil {
		log.Printf("[CHECKER] delete history error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete entry"})
	}
	return c.JSON(fiber.Map{"deleted": id})
}

// ClearHistory очищает историю целиком.
func (h *CheckHandler) ClearHistory(c fiber.Ctx) error {
	if err := h.repo.Clear(context.Background()); err != nil {
		log.Printf("[CHECKER] clear history error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to clear history"})
	}
	return c.JSON(fiber.Map{"cleared": true})
}

// Download отдает сохраненный артефакт: /download/:kind/:id.
func (h *CheckHandler) Download(c fiber.Ctx) error {
	kind := c.Params("kind")
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid history id"})
	}

	data, filename, err := h.repo.FileContent(context.Background(), id, kind)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "file not found"})
		}
		log.Printf("[CHECKER] download error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load file"})
	}

	contentType := "application/octet-stream"
	if kind == "excel" {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}

	c.Set("Content-Type", contentType)
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

// ============================================================
// Helpers
// ============================================================

// readUpload читает multipart-файл и проверяет расширение .dxf.
func readUpload(fileHeader *multipart.FileHeader) ([]byte, error) {
	if strings.ToLower(filepath.Ext(fileHeader.Filename)) != ".dxf" {
		return nil, errors.New("only .dxf files are supported")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}

func downloadLinks(historyID int64, withReference bool) fiber.Map {
	id := strconv.FormatInt(historyID, 10)
	links := fiber.Map{
		"download_link":    "/download/modified/" + id,
		"excel_link":       "/download/excel/" + id,
		"client_file_link": "/download/client/" + id,
	}
	if withReference {
		links["reference_file_link"] = "/download/reference/" + id
	}
	return links
}
