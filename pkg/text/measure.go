package text

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"
)

// Measure returns the length of s in layout units.
type Measure func(s string) int

// Names accepted by MeasureFor.
const (
	MeasureRunes = "runes"
	MeasureCells = "cells"
)

// RuneCount measures one unit per Unicode code point.
func RuneCount(s string) int { return utf8.RuneCountInString(s) }

// CellWidth measures the monospace display width of s, so East Asian wide
// characters take two units and combining marks take none.
func CellWidth(s string) int { return runewidth.StringWidth(s) }

// MeasureFor returns the Measure registered under name.
// The empty string selects RuneCount.
func MeasureFor(name string) (Measure, error) {
	switch strings.ToLower(name) {
	case "", MeasureRunes:
		return RuneCount, nil
	case MeasureCells:
		return CellWidth, nil
	}
	return nil, fmt.Errorf("unknown measure %q (must be runes or cells)", name)
}

// NormalizeNFC returns s in Unicode normalization form C, so that visually
// identical text measures the same regardless of how it was composed.
func NormalizeNFC(s string) string {
	return norm.NFC.String(s)
}
