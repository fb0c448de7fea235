// Package chart renders the bus's cycle lookup tables as a bar chart,
// adapted from the teacher's frame-time performance view: a gonum/plot
// plot drawn into an in-memory image via vgimg rather than onto a live
// GUI canvas.
package chart

import (
	"fmt"
	"image"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/thelolagemann/goadvance/internal/bus"
)

const pageCount = 16

var pageLabels = [pageCount]string{
	"BIOS", "01", "EWRAM", "IWRAM", "IOMEM", "PALRAM", "VRAM", "OAM",
	"WS0L", "WS0H", "WS1L", "WS1H", "WS2L", "WS2H", "SRAMLo", "SRAMHi",
}

// RenderCycleTables draws the four N/S x 16/32-bit cost rows of tables as
// a grouped bar chart, one group per logical page, and returns it as a
// width x height RGBA image.
func RenderCycleTables(tables *bus.CycleLookupTables, width, height int) (image.Image, error) {
	p := plot.New()
	p.Title.Text = "GBA bus cycle costs by page"
	p.Y.Label.Text = "cycles"
	p.X.Label.Text = "page"

	n16 := make(plotter.Values, pageCount)
	s16 := make(plotter.Values, pageCount)
	n32 := make(plotter.Values, pageCount)
	s32 := make(plotter.Values, pageCount)
	for i := 0; i < pageCount; i++ {
		n16[i] = float64(tables.NCycles16[i])
		s16[i] = float64(tables.SCycles16[i])
		n32[i] = float64(tables.NCycles32[i])
		s32[i] = float64(tables.SCycles32[i])
	}

	barWidth := vg.Points(6)
	groups := []struct {
		values plotter.Values
		offset vg.Length
		color  color.Color
		label  string
	}{
		{n16, -1.5 * barWidth, color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}, "N16"},
		{s16, -0.5 * barWidth, color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff}, "S16"},
		{n32, 0.5 * barWidth, color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff}, "N32"},
		{s32, 1.5 * barWidth, color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}, "S32"},
	}

	for _, g := range groups {
		bars, err := plotter.NewBarChart(g.values, barWidth)
		if err != nil {
			return nil, fmt.Errorf("chart: building bar group: %w", err)
		}
		bars.Offset = g.offset
		bars.Color = g.color
		p.Add(bars)
		p.Legend.Add(g.label, bars)
	}

	labels := make([]string, pageCount)
	copy(labels, pageLabels[:])
	p.NominalX(labels...)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	canvas := vgimg.NewWith(vgimg.UseImage(img))
	p.Draw(draw.New(canvas))

	return canvas.Image(), nil
}
