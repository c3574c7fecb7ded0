// 9 Oct 2026

// Package plot draws a contact map as a heat map in PNG form. Low values
// are white, high ones red and NaN is grey. A title, if there is one,
// goes in a strip at the top.
package plot

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"sync"

	tmatrix "github.com/andrew-torda/matrix"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

var ErrEmpty = errors.New("plot: empty matrix")

// Options for Heatmap. Zero values get defaults.
type Options struct {
	Cell     int     // pixels per bin, default 4
	FontSize float64 // title size in points, default 12
	Log      bool    // colour by log(1 + x)
}

var (
	NaNColour = color.RGBA{160, 160, 160, 255}
	titleBg   = color.RGBA{255, 255, 255, 255}
)

var regular = sync.OnceValues(func() (*truetype.Font, error) {
	return freetype.ParseFont(goregular.TTF)
})

// Colour gives the heat map colour for x, where lo and hi are the limits
// of the scale.
func Colour(x, lo, hi float64) color.RGBA {
	if math.IsNaN(x) {
		return NaNColour
	}
	f := 1.
	if hi > lo {
		f = (x - lo) / (hi - lo)
	}
	f = math.Max(0, math.Min(1, f))
	fade := uint8(math.Round(255 * (1 - f)))
	return color.RGBA{255, fade, fade, 255}
}

// scale finds the smallest and largest values, ignoring NaN.
func scale(m *tmatrix.FMatrix2d, tr func(float64) float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, row := range m.Mat {
		for _, x := range row {
			v := tr(float64(x))
			if math.IsNaN(v) {
				continue
			}
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
	}
	return lo, hi
}

// Render draws the map into an image.
func Render(m *tmatrix.FMatrix2d, title string, opts Options) (*image.RGBA, error) {
	n := len(m.Mat)
	if n == 0 || len(m.Mat[0]) == 0 {
		return nil, ErrEmpty
	}
	nc := len(m.Mat[0])
	cell, size := opts.Cell, opts.FontSize
	if cell <= 0 {
		cell = 4
	}
	if size <= 0 {
		size = 12
	}
	tr := func(x float64) float64 { return x }
	if opts.Log {
		tr = math.Log1p
	}
	strip := 0
	if title != "" {
		strip = int(2 * size)
	}

	img := image.NewRGBA(image.Rect(0, 0, nc*cell, n*cell+strip))
	draw.Draw(img, img.Bounds(), image.NewUniform(titleBg), image.Point{}, draw.Src)
	lo, hi := scale(m, tr)
	for i, row := range m.Mat {
		for j, x := range row {
			r := image.Rect(j*cell, strip+i*cell, (j+1)*cell, strip+(i+1)*cell)
			draw.Draw(img, r, image.NewUniform(Colour(tr(float64(x)), lo, hi)), image.Point{}, draw.Src)
		}
	}
	if title == "" {
		return img, nil
	}

	ft, err := regular()
	if err != nil {
		return nil, err
	}
	c := freetype.NewContext()
	c.SetDPI(72)
	c.SetFont(ft)
	c.SetFontSize(size)
	c.SetClip(image.Rect(0, 0, nc*cell, strip))
	c.SetDst(img)
	c.SetSrc(image.Black)
	pt := freetype.Pt(2, int(size*1.5))
	if _, err := c.DrawString(title, pt); err != nil {
		return nil, err
	}
	return img, nil
}

// Heatmap renders m and writes it to w as a PNG.
func Heatmap(w io.Writer, m *tmatrix.FMatrix2d, title string, opts Options) error {
	img, err := Render(m, title, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
