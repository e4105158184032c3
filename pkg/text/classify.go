package text

import (
	"fmt"
	"strings"
)

// Shape describes the granularity of an input collection.
type Shape string

const (
	// ShapeAuto asks the caller to detect the shape with [Classify].
	ShapeAuto Shape = "auto"
	// ShapeLines means every record is a whole line of text.
	ShapeLines Shape = "lines"
	// ShapeWords means every record is a single word.
	ShapeWords Shape = "words"
)

// Classification tunables.
const (
	// SampleSize is the number of leading records inspected by Classify.
	SampleSize = 25
	// LineThreshold is the minimum fraction of sampled records that must
	// contain an interior space for the input to count as line-granular.
	LineThreshold = 0.9
)

// ParseShape converts a user-supplied string into a Shape.
// The empty string maps to ShapeAuto.
func ParseShape(s string) (Shape, error) {
	switch Shape(strings.ToLower(strings.TrimSpace(s))) {
	case "", ShapeAuto:
		return ShapeAuto, nil
	case ShapeLines:
		return ShapeLines, nil
	case ShapeWords:
		return ShapeWords, nil
	}
	return "", fmt.Errorf("unknown shape %q (must be auto, lines or words)", s)
}

// SpaceFraction returns the fraction of the first min(SampleSize, len(records))
// records that contain a space between two non-space characters.
// It returns 0 for an empty collection.
func SpaceFraction(records []string) float64 {
	n := min(SampleSize, len(records))
	if n == 0 {
		return 0
	}
	var hits int
	for _, r := range records[:n] {
		if hasInteriorSpace(r) {
			hits++
		}
	}
	return float64(hits) / float64(n)
}

// Classify reports whether records are lines or words.
// Inputs whose sampled space fraction is below LineThreshold are words;
// this includes empty collections and collections of empty strings.
func Classify(records []string) Shape {
	if SpaceFraction(records) < LineThreshold {
		return ShapeWords
	}
	return ShapeLines
}

func hasInteriorSpace(s string) bool {
	return strings.Contains(strings.Trim(s, " "), " ")
}
