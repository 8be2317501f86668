// Package display renders a memory mapped 32x32 framebuffer into an image.
// Each byte from FRAMEBUFFER onward is one pixel, row major, with the low
// nibble selecting one of 16 palette entries.
package display

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/jmchacon/65c02/memory"
)

const (
	// FRAMEBUFFER is the address of the top left pixel.
	FRAMEBUFFER = uint16(0x0200)
	// Width is the framebuffer width in pixels.
	Width = 32
	// Height is the framebuffer height in pixels.
	Height = 32
)

// Palette holds the 16 displayable colors.
var Palette = [16]color.NRGBA{
	{0x00, 0x00, 0x00, 0xFF}, // Black
	{0xFF, 0xFF, 0xFF, 0xFF}, // White
	{0x88, 0x00, 0x00, 0xFF}, // Red
	{0xAA, 0xFF, 0xEE, 0xFF}, // Cyan
	{0xCC, 0x44, 0xCC, 0xFF}, // Purple
	{0x00, 0xCC, 0x55, 0xFF}, // Green
	{0x00, 0x00, 0xAA, 0xFF}, // Blue
	{0xEE, 0xEE, 0x77, 0xFF}, // Yellow
	{0xDD, 0x88, 0x55, 0xFF}, // Orange
	{0x66, 0x44, 0x00, 0xFF}, // Brown
	{0xFF, 0x77, 0x77, 0xFF}, // Light red
	{0x33, 0x33, 0x33, 0xFF}, // Dark grey
	{0x77, 0x77, 0x77, 0xFF}, // Grey
	{0xAA, 0xFF, 0x66, 0xFF}, // Light green
	{0x00, 0x88, 0xFF, 0xFF}, // Light blue
	{0xBB, 0xBB, 0xBB, 0xFF}, // Light grey
}

// Render returns a new Width x Height image of the framebuffer held in r.
func Render(r memory.Bank) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, Width, Height))
	RenderInto(img, r)
	return img
}

// RenderInto draws the framebuffer held in r into img which must be at least Width x Height.
func RenderInto(img *image.NRGBA, r memory.Bank) {
	addr := FRAMEBUFFER
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			img.SetNRGBA(x, y, Palette[r.Read(addr)&0x0F])
			addr++
		}
	}
}

// Scale returns img enlarged by factor in each direction using nearest neighbor sampling.
// A factor less than 2 returns img unchanged.
func Scale(img *image.NRGBA, factor int) *image.NRGBA {
	if factor < 2 {
		return img
	}
	b := img.Bounds()
	d := image.NewNRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(d, d.Bounds(), img, b, draw.Src, nil)
	return d
}
