package present

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
)

// HeatmapOptions sizes the PNG heat-map.
type HeatmapOptions struct {
	CellWidth  int
	CellHeight int
	LineWidth  int
	Off        color.Color
	On         color.Color
	Grid       color.Color
}

// DefaultHeatmapOptions uses the light and dark ends of a red sequential
// palette with black grid lines.
func DefaultHeatmapOptions() HeatmapOptions {
	return HeatmapOptions{
		CellWidth:  48,
		CellHeight: 24,
		LineWidth:  2,
		Off:        color.RGBA{R: 0xff, G: 0xf5, B: 0xf0, A: 0xff},
		On:         color.RGBA{R: 0x67, G: 0x00, B: 0x0d, A: 0xff},
		Grid:       color.Black,
	}
}

// Heatmap draws one cell per (function, config): rows are functions, columns
// are configs.
func Heatmap(t *Table, opts HeatmapOptions) (*image.RGBA, error) {
	if opts.CellWidth <= 0 || opts.CellHeight <= 0 || opts.LineWidth < 0 {
		return nil, fmt.Errorf("present: invalid heatmap geometry %dx%d line %d", opts.CellWidth, opts.CellHeight, opts.LineWidth)
	}

	cols := len(t.Columns)
	rows := len(t.Rows)
	lw := opts.LineWidth
	width := cols*opts.CellWidth + (cols+1)*lw
	height := rows*opts.CellHeight + (rows+1)*lw
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("present: nothing to draw")
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Grid), image.Point{}, draw.Src)

	on := image.NewUniform(opts.On)
	off := image.NewUniform(opts.Off)
	for r, row := range t.Rows {
		y0 := lw + r*(opts.CellHeight+lw)
		for c, bit := range row {
			x0 := lw + c*(opts.CellWidth+lw)
			fill := off
			if bit == 1 {
				fill = on
			}
			cell := image.Rect(x0, y0, x0+opts.CellWidth, y0+opts.CellHeight)
			draw.Draw(img, cell, fill, image.Point{}, draw.Src)
		}
	}
	return img, nil
}

// WriteHeatmapPNG renders the heat-map and encodes it as PNG.
func WriteHeatmapPNG(w io.Writer, t *Table, opts HeatmapOptions) error {
	img, err := Heatmap(t, opts)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("present: encode png: %w", err)
	}
	return nil
}
