// ABOUTME: Pure geometry and unit-conversion functions for survey measurements
// ABOUTME: Provides point parsing, distances, and the trapezoid area calculation

package geometry

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Conversion constants for the units used in survey output.
const (
	InchesPerMeter   = 39.3701
	SqFeetPerSqMeter = 10.7639
	SqFeetPerDecimal = 435.6
)

// Point is a flat Cartesian coordinate in meters. Value type, no identity.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Aggregate holds the derived figures for a pair of boundary sides.
// All distances are meters; areas carry their unit in the field name.
type Aggregate struct {
	LeftDistance     float64 `json:"leftDistance"`
	RightDistance    float64 `json:"rightDistance"`
	AverageWidth     float64 `json:"averageWidth"`
	Length           float64 `json:"length"`
	AreaSquareMeters float64 `json:"areaSquareMeters"`
	AreaSquareFeet   float64 `json:"areaSquareFeet"`
	AreaDecimal      float64 `json:"areaDecimal"`
}

// ParsePoint parses coordinate text of the form "<x>, <y>".
// Whitespace around the comma and the ends is ignored. Coordinates must
// be finite; strconv accepts "NaN" and "Inf" spellings but no survey
// coordinate is either. The function is total: malformed input yields
// an error, never a panic.
func ParsePoint(text string) (Point, error) {
	parts := strings.Split(text, ",")
	if len(parts) != 2 {
		return Point{}, fmt.Errorf("expected two comma-separated numbers, got %q", text)
	}

	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
		return Point{}, fmt.Errorf("invalid x coordinate %q", strings.TrimSpace(parts[0]))
	}

	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || math.IsNaN(y) || math.IsInf(y, 0) {
		return Point{}, fmt.Errorf("invalid y coordinate %q", strings.TrimSpace(parts[1]))
	}

	return Point{X: x, Y: y}, nil
}

// Distance returns the Euclidean distance between two points.
// Uses math.Hypot to stay stable for very large coordinates.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// MetersToFeetInches converts meters to whole feet and inches.
// Rounding happens once, at inch granularity, so feet*12+inches always
// equals round(meters * InchesPerMeter).
func MetersToFeetInches(meters float64) (feet, inches int) {
	totalInches := int(math.Round(meters * InchesPerMeter))
	return totalInches / 12, totalInches % 12
}

// SquareFeetToDecimal converts square feet to decimals, the land unit
// used in survey records (1 decimal = 435.6 sq ft).
func SquareFeetToDecimal(sqft float64) float64 {
	return sqft / SqFeetPerDecimal
}

// Compute derives the measurement aggregate from the two boundary sides.
// If either side has fewer than 2 points the result is all zeros.
//
// Only the first two points of each side participate in the formula:
// the tool accepts up to 10 points per side and plots them all, but the
// distance/area math has always been the simple trapezoid over points
// 0 and 1. Kept as-is so stored measurements keep their numbers.
func Compute(left, right []Point) Aggregate {
	if len(left) < 2 || len(right) < 2 {
		return Aggregate{}
	}

	leftDistance := Distance(left[0], left[1])
	rightDistance := Distance(right[0], right[1])
	avgWidth := (leftDistance + rightDistance) / 2

	length := Distance(Midpoint(left[0], left[1]), Midpoint(right[0], right[1]))

	areaSqM := avgWidth * length
	areaSqFt := areaSqM * SqFeetPerSqMeter

	return Aggregate{
		LeftDistance:     leftDistance,
		RightDistance:    rightDistance,
		AverageWidth:     avgWidth,
		Length:           length,
		AreaSquareMeters: areaSqM,
		AreaSquareFeet:   areaSqFt,
		AreaDecimal:      SquareFeetToDecimal(areaSqFt),
	}
}

// IsZero reports whether the aggregate carries no computed figures.
func (a Aggregate) IsZero() bool {
	return a == Aggregate{}
}
