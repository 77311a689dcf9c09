package models

import "errors"

// ============================================================
// Error taxonomy
// ============================================================

var (
	// ErrFormat — файл не является корректным DXF поддерживаемой версии.
	ErrFormat = errors.New("unsupported or corrupt dxf")

	// ErrWrite — не удалось сформировать аннотированную копию чертежа.
	ErrWrite = errors.New("failed to write annotated drawing")

	// ErrValidation — некорректный пользовательский ввод.
	ErrValidation = errors.New("invalid submitted room input")
)
