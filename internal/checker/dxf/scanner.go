package dxf

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// ============================================================
// Tag Scanner
// ============================================================

// Tag — пара "групповой код / значение", базовая единица формата DXF.
type Tag struct {
	Code  int
	Value string
}

func (t Tag) AsString() string {
	return t.Value
}

func (t Tag) AsFloat() float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(t.Value), 64)
	return v
}

func (t Tag) AsInt() int {
	v, _ := strconv.Atoi(strings.TrimSpace(t.Value))
	return v
}

// IsEntityStart — тег "0" открывает новую сущность или маркер секции.
func (t Tag) IsEntityStart() bool {
	return t.Code == 0
}

// Scanner читает теги потоково, пара строк за шаг: строка кода, строка значения.
type Scanner struct {
	scanner *bufio.Scanner
	LastTag Tag
	err     error
}

func NewScanner(r io.Reader) *Scanner {
	return &Scanner{scanner: bufio.NewScanner(r)}
}

// Next читает следующий тег. false — конец потока или ошибка (см. Err).
func (s *Scanner) Next() bool {
	if s.err != nil {
		return false
	}

	if !s.scanner.Scan() {
		s.err = s.scanner.Err()
		return false
	}
	codeLine := strings.TrimSpace(s.scanner.Text())

	if !s.scanner.Scan() {
		s.err = s.scanner.Err()
		if s.err == nil {
			s.err = io.ErrUnexpectedEOF
		}
		return false
	}
	value := strings.TrimRight(s.scanner.Text(), "\r")

	code, err := strconv.Atoi(codeLine)
	if err != nil {
		s.err = err
		return false
	}

	s.LastTag = Tag{Code: code, Value: value}
	return true
}

func (s *Scanner) Err() error {
	return s.err
}
