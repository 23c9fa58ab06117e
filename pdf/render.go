package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// Render turns composed pages into PDF bytes. The command space uses a
// bottom-left origin; gofpdf draws from the top-left, so every Y flips here.
func Render(pages PageList) ([]byte, error) {
	f := gofpdf.New("P", "pt", "A4", "")
	f.SetAutoPageBreak(false, 0)
	f.SetMargins(0, 0, 0)

	registered := map[string]bool{}
	imgOpts := gofpdf.ImageOptions{ImageType: "PNG"}

	for _, page := range pages {
		f.AddPage()
		for _, cmd := range page {
			switch c := cmd.(type) {
			case Text:
				f.SetFont("Helvetica", c.Style, c.Size)
				f.SetTextColor(c.Color.R, c.Color.G, c.Color.B)
				x := c.X
				switch c.Align {
				case AlignCenter:
					x -= f.GetStringWidth(c.S) / 2
				case AlignRight:
					x -= f.GetStringWidth(c.S)
				}
				f.Text(x, PageHeight-c.Y, c.S)
			case Rect:
				style := ""
				if c.Fill != nil {
					f.SetFillColor(c.Fill.R, c.Fill.G, c.Fill.B)
					style += "F"
				}
				if c.Stroke != nil {
					f.SetDrawColor(c.Stroke.R, c.Stroke.G, c.Stroke.B)
					if c.LineWidth > 0 {
						f.SetLineWidth(c.LineWidth)
					}
					style += "D"
				}
				f.Rect(c.X, PageHeight-(c.Y+c.H), c.W, c.H, style)
			case Line:
				f.SetDrawColor(c.Color.R, c.Color.G, c.Color.B)
				if c.Width > 0 {
					f.SetLineWidth(c.Width)
				}
				f.Line(c.X1, PageHeight-c.Y1, c.X2, PageHeight-c.Y2)
			case Circle:
				f.SetFillColor(c.Fill.R, c.Fill.G, c.Fill.B)
				f.Circle(c.X, PageHeight-c.Y, c.R, "F")
			case Polygon:
				f.SetFillColor(c.Fill.R, c.Fill.G, c.Fill.B)
				pts := make([]gofpdf.PointType, len(c.Points))
				for i, p := range c.Points {
					pts[i] = gofpdf.PointType{X: p.X, Y: PageHeight - p.Y}
				}
				f.Polygon(pts, "F")
			case Image:
				if len(c.Data) == 0 {
					continue
				}
				if !registered[c.Name] {
					f.RegisterImageOptionsReader(c.Name, imgOpts, bytes.NewReader(c.Data))
					registered[c.Name] = true
				}
				f.ImageOptions(c.Name, c.X, PageHeight-(c.Y+c.H), c.W, c.H, false, imgOpts, 0, "")
			}
		}
	}

	if f.Err() {
		return nil, fmt.Errorf("render pdf: %w", f.Error())
	}
	var buf bytes.Buffer
	if err := f.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
