package layout

// Token is one positioned word: the atomic row of a layout.
//
// XMin/XMax bound the word horizontally with XMax >= XMin. The vertical axis
// grows upward, so every line sits below zero and YMax = YMin - height.
type Token struct {
	Word string `json:"word" yaml:"word"`
	// LineIndex is the 1-based position of the source line in the whole
	// document, before pagination.
	LineIndex int     `json:"-" yaml:"-"`
	Page      int     `json:"page" yaml:"page"`
	Line      int     `json:"line" yaml:"line"`
	XMin      float64 `json:"xmin" yaml:"xmin"`
	XMax      float64 `json:"xmax" yaml:"xmax"`
	YMin      float64 `json:"ymin" yaml:"ymin"`
	YMax      float64 `json:"ymax" yaml:"ymax"`
}

// Width returns the horizontal span of the word box.
func (t Token) Width() float64 { return t.XMax - t.XMin }

// Height returns the vertical span of the word box.
func (t Token) Height() float64 { return t.YMin - t.YMax }

// CenterX returns the horizontal center of the word box.
func (t Token) CenterX() float64 { return (t.XMin + t.XMax) / 2 }

// CenterY returns the vertical center of the word box.
func (t Token) CenterY() float64 { return (t.YMin + t.YMax) / 2 }
