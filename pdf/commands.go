// Package pdf composes quotation and invoice documents onto fixed A4 pages.
//
// Layout is computed as a list of absolute draw commands per page, with a
// bottom-left coordinate origin. A separate gofpdf-backed renderer turns the
// command list into PDF bytes, so the layout itself stays deterministic and
// testable without touching the PDF writer.
package pdf

// Color is an opaque RGB color with 0-255 channels
type Color struct {
	R, G, B int
}

// Align is the horizontal anchor of a Text command relative to its X
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Command is a single absolute-positioned drawing primitive
type Command interface {
	command()
}

// Text draws a string anchored at (X, Y) baseline
type Text struct {
	X, Y  float64
	S     string
	Style string // "" regular, "B" bold, "I" italic
	Size  float64
	Color Color
	Align Align
}

// Rect draws a rectangle from its lower-left corner. Nil Fill or Stroke
// disables that aspect.
type Rect struct {
	X, Y, W, H float64
	Fill       *Color
	Stroke     *Color
	LineWidth  float64
}

// Line draws a straight segment
type Line struct {
	X1, Y1, X2, Y2 float64
	Color          Color
	Width          float64
}

// Circle draws a filled circle centered at (X, Y)
type Circle struct {
	X, Y, R float64
	Fill    Color
}

// Point is a polygon vertex
type Point struct {
	X, Y float64
}

// Polygon draws a filled closed path
type Polygon struct {
	Points []Point
	Fill   Color
}

// Image places PNG bytes at (X, Y) lower-left with the given box size.
// Name keys the image in the renderer's registry and must be unique per
// distinct Data.
type Image struct {
	Name       string
	Data       []byte
	X, Y, W, H float64
}

func (Text) command()    {}
func (Rect) command()    {}
func (Line) command()    {}
func (Circle) command()  {}
func (Polygon) command() {}
func (Image) command()   {}

// Page is the ordered command list for one page
type Page []Command

// PageList is a whole document
type PageList []Page
