package fontmetrics

import (
	"fmt"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/dshills/inkstone/internal/engine/document"
)

// TrueType measures text through parsed TrueType faces. Style 0 uses the
// base face; other styles fall back to it until a face is registered.
type TrueType struct {
	base  font.Face
	faces map[document.StyleID]font.Face
}

// NewTrueType parses TrueType font data and creates a provider rendering
// at the given point size.
func NewTrueType(data []byte, size float64) (*TrueType, error) {
	face, err := parseFace(data, size)
	if err != nil {
		return nil, err
	}
	return &TrueType{
		base:  face,
		faces: make(map[document.StyleID]font.Face),
	}, nil
}

// RegisterStyle binds a style ID to its own font data and size, so bold
// and heading styles measure with their real faces.
func (t *TrueType) RegisterStyle(id document.StyleID, data []byte, size float64) error {
	face, err := parseFace(data, size)
	if err != nil {
		return err
	}
	t.faces[id] = face
	return nil
}

// Measure returns the advance width of text in the style's face.
func (t *TrueType) Measure(text string, style document.StyleID) float64 {
	return fixedToFloat(font.MeasureString(t.face(style), text))
}

// LineHeight returns the face's line height for the style.
func (t *TrueType) LineHeight(style document.StyleID) float64 {
	return fixedToFloat(t.face(style).Metrics().Height)
}

func (t *TrueType) face(style document.StyleID) font.Face {
	if f, ok := t.faces[style]; ok {
		return f
	}
	return t.base
}

func parseFace(data []byte, size float64) (font.Face, error) {
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	if size <= 0 {
		size = 12
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// fixedToFloat converts a 26.6 fixed-point value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
