// Oct 2026

// Package plot draws a profile as a picture. Each column of the alignment
// becomes a bar, cut into pieces for A, C, G, T and gap, stacked from
// the bottom in that order. The labels are drawn with freetype in the Go
// Regular font.
package plot

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/andrew-torda/nwprof/pkg/profile"
)

// Options control the size of the picture.
type Options struct {
	BarWidth int     // pixels per column
	Height   int     // height of a bar with a sum of 1
	FontSize float64 // points, at 72 dpi
	Title    string
	TickStep int // label every TickStep'th column on the x axis
}

// DefaultOptions are used when WritePNG gets nil.
func DefaultOptions() *Options {
	return &Options{BarWidth: 12, Height: 200, FontSize: 12, TickStep: 10}
}

// Colours for the rows of a profile.
var Colours = [profile.NSym]color.RGBA{
	{0x10, 0x96, 0x18, 0xff}, // A green
	{0x1f, 0x3f, 0xd8, 0xff}, // C blue
	{0xf5, 0xa6, 0x00, 0xff}, // G orange
	{0xd6, 0x1a, 0x1a, 0xff}, // T red
	{0xc0, 0xc0, 0xc0, 0xff}, // gap
}

var ErrNoCols = errors.New("plot: no columns to draw")

const (
	dpi     = 72
	legendW = 60 // room for one legend entry
	tickLen = 4
)

// layout says where everything goes.
type layout struct {
	left, top     int // corner of the plotting area
	width, height int // of the plotting area
	imgW, imgH    int
	barW          int
	lineH         int // one line of text
}

func newLayout(ncol int, opts *Options) layout {
	var l layout
	l.lineH = int(opts.FontSize*1.5 + 0.5)
	l.barW = opts.BarWidth
	l.left = 4 * l.lineH
	l.top = 2*l.lineH + 2 // title and legend
	l.width = ncol * l.barW
	l.height = opts.Height
	l.imgW = l.left + l.width + l.lineH
	if minW := l.left + profile.NSym*legendW; l.imgW < minW {
		l.imgW = minW
	}
	l.imgH = l.top + l.height + 2*l.lineH
	return l
}

// Size returns the width and height of the picture for ncol columns.
func Size(ncol int, opts *Options) (int, int) {
	if opts == nil {
		opts = DefaultOptions()
	}
	l := newLayout(ncol, opts)
	return l.imgW, l.imgH
}

// barRect is the piece of bar icol running from fraction lo to hi.
func (l layout) barRect(icol int, lo, hi float64) image.Rectangle {
	base := l.top + l.height
	x0 := l.left + icol*l.barW
	return image.Rect(x0, base-int(hi*float64(l.height)+0.5), x0+l.barW-1, base-int(lo*float64(l.height)+0.5))
}

func fill(img draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(img, r, &image.Uniform{c}, image.Point{}, draw.Src)
}

// drawBars does the coloured parts of the picture
func drawBars(img draw.Image, l layout, cols []profile.Column) {
	for icol, c := range cols {
		var lo float64
		for irow, f := range c {
			if f <= 0 {
				continue
			}
			fill(img, l.barRect(icol, lo, lo+f), Colours[irow])
			lo += f
		}
	}
	for i := 0; i < profile.NSym; i++ {
		x := l.left + i*legendW
		fill(img, image.Rect(x, l.lineH+2, x+l.lineH/2, l.lineH+2+l.lineH/2), Colours[i])
	}
	axis := color.Black
	base := l.top + l.height
	fill(img, image.Rect(l.left-1, l.top, l.left, base+1), axis)
	fill(img, image.Rect(l.left-1, base, l.left+l.width, base+1), axis)
	for _, f := range []float64{0, 0.5, 1} {
		y := base - int(f*float64(l.height)+0.5)
		fill(img, image.Rect(l.left-1-tickLen, y, l.left-1, y+1), axis)
	}
}

// drawText puts in the title, legend and axis labels.
func drawText(img draw.Image, l layout, ncol int, opts *Options) error {
	fnt, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		return fmt.Errorf("plot: font: %w", err)
	}
	c := newContext(img, fnt, opts.FontSize)
	put := func(s string, x, y int) {
		if err == nil {
			_, err = c.DrawString(s, freetype.Pt(x, y))
		}
	}
	half := l.lineH / 2
	put(opts.Title, l.left, l.lineH-2)
	for i, s := range profile.Labels {
		put(s, l.left+i*legendW+half+4, 2*l.lineH)
	}
	base := l.top + l.height
	for _, f := range []float64{0, 0.5, 1} {
		y := base - int(f*float64(l.height)+0.5) + half/2
		put(fmt.Sprintf("%.1f", f), l.left-3*l.lineH, y)
	}
	step := opts.TickStep
	if step < 1 {
		step = 1
	}
	for i := 0; i < ncol; i += step {
		put(fmt.Sprint(i), l.left+i*l.barW, base+l.lineH+2)
	}
	return err
}

func newContext(img draw.Image, fnt *truetype.Font, size float64) *freetype.Context {
	c := freetype.NewContext()
	c.SetDPI(dpi)
	c.SetFont(fnt)
	c.SetFontSize(size)
	c.SetClip(img.Bounds())
	c.SetDst(img)
	c.SetSrc(image.Black)
	return c
}

// Draw makes the picture of a profile.
func Draw(cols []profile.Column, opts *Options) (*image.RGBA, error) {
	if len(cols) == 0 {
		return nil, ErrNoCols
	}
	if opts == nil {
		opts = DefaultOptions()
	}
	l := newLayout(len(cols), opts)
	img := image.NewRGBA(image.Rect(0, 0, l.imgW, l.imgH))
	fill(img, img.Bounds(), color.White)
	drawBars(img, l, cols)
	if err := drawText(img, l, len(cols), opts); err != nil {
		return nil, err
	}
	return img, nil
}

// WritePNG draws the profile and writes it to w in PNG format.
func WritePNG(w io.Writer, cols []profile.Column, opts *Options) error {
	img, err := Draw(cols, opts)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("plot: %w", err)
	}
	return nil
}
