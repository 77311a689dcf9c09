package dxf

import (
	"bufio"
	"io"
	"strconv"
)

// ============================================================
// Writer
// ============================================================

// Write сериализует поток тегов обратно в текстовый DXF.
func Write(w io.Writer, tags []Tag) error {
	bw := bufio.NewWriter(w)

	for _, tag := range tags {
		if _, err := bw.WriteString(strconv.Itoa(tag.Code)); err != nil {
			return err
		}
		if _, err := bw.WriteString("\r\n"); err != nil {
			return err
		}
		if _, err := bw.WriteString(tag.Value); err != nil {
			return err
		}
		if _, err := bw.WriteString("\r\n"); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// FloatTag форматирует вещественный тег (координаты, размеры).
func FloatTag(code int, v float64) Tag {
	return Tag{Code: code, Value: strconv.FormatFloat(v, 'f', -1, 64)}
}

// IntTag форматирует целочисленный тег (флаги, цвета).
func IntTag(code int, v int) Tag {
	return Tag{Code: code, Value: strconv.Itoa(v)}
}
