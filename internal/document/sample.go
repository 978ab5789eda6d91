package document

import (
	"golang.org/x/image/colornames"
)

// SampleDrawing returns a small drawing with one shape of every type.
func SampleDrawing() []Record {
	return []Record{
		{
			Type:       ShapeTypeRectangle,
			Points:     []Point{Pt(200, 200), Pt(360, 300)},
			Color:      FormatColor(ToNRGBA(colornames.Black)),
			FillColor:  FormatColor(ToNRGBA(colornames.Crimson)),
			Name:       "Card",
			DrawBorder: true,
			DrawFill:   true,
		},
		{
			Type:       ShapeTypeEllipse,
			Points:     []Point{Pt(420, 180), Pt(560, 280)},
			Color:      FormatColor(ToNRGBA(colornames.Navy)),
			FillColor:  FormatColor(ToNRGBA(colornames.Gold)),
			Name:       "Sun",
			DrawBorder: true,
			DrawFill:   true,
		},
		{
			Type:       ShapeTypeTriangle,
			Points:     []Point{Pt(600, 400), Pt(680, 260), Pt(760, 400)},
			Color:      FormatColor(ToNRGBA(colornames.Darkgreen)),
			FillColor:  FormatColor(ToNRGBA(colornames.Mediumseagreen)),
			Name:       "Peak",
			DrawBorder: true,
			DrawFill:   true,
		},
		{
			Type:       ShapeTypeLine,
			Points:     []Point{Pt(0, 0), Pt(100, 100)},
			Color:      FormatColor(ToNRGBA(colornames.Black)),
			FillColor:  FormatColor(ToNRGBA(colornames.White)),
			Name:       "Abdallah",
			DrawBorder: true,
			DrawFill:   false,
		},
	}
}
