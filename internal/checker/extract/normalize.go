package extract

import (
	"strings"
	"unicode"
)

// ============================================================
// Text Normalizer
// ============================================================

// CleanText канонизирует текст надписи для сравнения: нижний регистр,
// только буквы/цифры/пробелы, внутренние пробелы схлопнуты.
// Функция чистая и идемпотентна; тот же нормализатор применяется
// к пользовательскому вводу, чтобы сравнение было симметричным.
func CleanText(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
