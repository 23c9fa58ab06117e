package pdf

import (
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// Text metrics for item description wrapping
const (
	itemFontSize = 9.0
	itemLeading  = 10.0
	rowPadding   = 6.0
	minRowHeight = 22.0
)

// TextMeasurer wraps text into lines that fit a column width in points.
// The composer only depends on this, so layouts can be exercised with a
// deterministic measurer while rendering uses real font metrics.
type TextMeasurer interface {
	SplitLines(text string, width, fontSize float64) []string
}

// FpdfMeasurer measures with Helvetica metrics from an off-screen gofpdf
// instance. Not safe for concurrent use; each render owns one.
type FpdfMeasurer struct {
	f *gofpdf.Fpdf
}

func NewFpdfMeasurer() *FpdfMeasurer {
	f := gofpdf.New("P", "pt", "A4", "")
	f.SetFont("Helvetica", "", itemFontSize)
	return &FpdfMeasurer{f: f}
}

func (m *FpdfMeasurer) SplitLines(text string, width, fontSize float64) []string {
	if text == "" {
		return []string{""}
	}
	m.f.SetFontSize(fontSize)
	return m.f.SplitText(text, width)
}

// RuneWidthMeasurer wraps on a fixed average glyph width. Deterministic,
// used by layout tests.
type RuneWidthMeasurer struct {
	// GlyphWidth is the assumed width of one rune as a fraction of the font
	// size; 0.5 approximates Helvetica.
	GlyphWidth float64
}

func (m RuneWidthMeasurer) SplitLines(text string, width, fontSize float64) []string {
	gw := m.GlyphWidth
	if gw <= 0 {
		gw = 0.5
	}
	perLine := int(width / (gw * fontSize))
	if perLine < 1 {
		perLine = 1
	}
	var lines []string
	var current []string
	currentLen := 0
	for _, word := range strings.Fields(text) {
		wl := len([]rune(word))
		if currentLen > 0 && currentLen+1+wl > perLine {
			lines = append(lines, strings.Join(current, " "))
			current = current[:0]
			currentLen = 0
		}
		current = append(current, word)
		if currentLen > 0 {
			currentLen++
		}
		currentLen += wl
	}
	if len(current) > 0 || len(lines) == 0 {
		lines = append(lines, strings.Join(current, " "))
	}
	return lines
}

// RowHeight computes the height an item row occupies: the wrapped text
// height plus padding, never less than minHeight. Rows are not fixed
// height; a long description grows its row and pushes later rows down.
func RowHeight(lines int, minHeight float64) float64 {
	if lines < 1 {
		lines = 1
	}
	h := float64(lines)*itemLeading + rowPadding
	if h < minHeight {
		return minHeight
	}
	return h
}
