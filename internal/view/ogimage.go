package view

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Social card dimensions recommended for Open Graph previews.
const (
	SocialCardWidth  = 1200
	SocialCardHeight = 630
)

var (
	cardTop    = color.RGBA{R: 0x4a, G: 0xde, B: 0x80, A: 0xff}
	cardBottom = color.RGBA{R: 0x16, G: 0xa3, B: 0x4a, A: 0xff}
)

// SocialCardText is the copy drawn on the card, one entry per line.
type SocialCardText struct {
	Title    string
	Tagline  string
	Subtitle string
}

// RenderSocialCard writes the Open Graph PNG to w.
func RenderSocialCard(w io.Writer, text SocialCardText) error {
	dst := image.NewRGBA(image.Rect(0, 0, SocialCardWidth, SocialCardHeight))

	for y := 0; y < SocialCardHeight; y++ {
		row := image.Rect(0, y, SocialCardWidth, y+1)
		draw.Draw(dst, row, image.NewUniform(blend(cardTop, cardBottom, y, SocialCardHeight)), image.Point{}, draw.Src)
	}

	drawScaledText(dst, text.Title, 10, 200, color.White)
	drawScaledText(dst, text.Tagline, 5, 360, color.White)
	drawScaledText(dst, text.Subtitle, 3, 480, color.RGBA{R: 0xf0, G: 0xfd, B: 0xf4, A: 0xff})

	return png.Encode(w, dst)
}

func blend(a, b color.RGBA, step, total int) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8((int(x)*(total-step) + int(y)*step) / total)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 0xff}
}

// drawScaledText renders text with the 7x13 bitmap face and enlarges it
// centered horizontally around centerY.
func drawScaledText(dst *image.RGBA, text string, scale, centerY int, col color.Color) {
	if text == "" || scale <= 0 {
		return
	}
	face := basicfont.Face7x13
	metrics := face.Metrics()

	measure := &font.Drawer{Face: face}
	width := measure.MeasureString(text).Ceil()
	height := (metrics.Ascent + metrics.Descent).Ceil()

	maxWidth := dst.Bounds().Dx() - 80
	for scale > 1 && width*scale > maxWidth {
		scale--
	}

	glyphs := image.NewRGBA(image.Rect(0, 0, width, height))
	d := &font.Drawer{
		Dst:  glyphs,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: 0, Y: metrics.Ascent},
	}
	d.DrawString(text)

	w, h := width*scale, height*scale
	x0 := (dst.Bounds().Dx() - w) / 2
	y0 := centerY - h/2
	draw.NearestNeighbor.Scale(dst, image.Rect(x0, y0, x0+w, y0+h), glyphs, glyphs.Bounds(), draw.Over, nil)
}
