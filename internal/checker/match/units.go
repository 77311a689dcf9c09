package match

import "math"

// ============================================================
// Unit Conversions
// ============================================================

// Внутри конвейера все длины в миллиметрах; пользовательский ввод —
// футы и дюймы, отображение — футы и квадратные футы.

// FeetInchesToMm переводит футы+дюймы в миллиметры (2 знака).
func FeetInchesToMm(feet, inches int) float64 {
	return round2(float64(feet*12+inches) * 25.4)
}

// MmToFeet переводит миллиметры в футы (2 знака).
func MmToFeet(mm float64) float64 {
	return round2(mm / 304.8)
}

// Mm2ToSqft переводит мм² в квадратные футы (2 знака).
func Mm2ToSqft(areaMm2 float64) float64 {
	return round2(areaMm2 / 92903.04)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
