package display

import (
	"flag"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-test/deep"

	"github.com/jmchacon/65c02/memory"
)

var testImageDir = flag.String("test_image_dir", "", "If set will write rendered test images to this directory")

func writeImage(t *testing.T, name string, img image.Image) {
	if *testImageDir == "" {
		return
	}
	o, err := os.Create(filepath.Join(*testImageDir, name+".png"))
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	defer o.Close()
	if err := png.Encode(o, img); err != nil {
		t.Fatalf("%s: %v", name, err)
	}
}

func TestRender(t *testing.T) {
	r := memory.NewRAM(0x00)
	// Diagonal in every color, high nibble ignored.
	for i := 0; i < Width; i++ {
		r.Write(FRAMEBUFFER+uint16(i*Width+i), uint8(0xF0|i))
	}
	img := Render(r)
	writeImage(t, "render", img)
	if got, want := img.Bounds(), image.Rect(0, 0, Width, Height); got != want {
		t.Fatalf("Bad bounds: got %v want %v", got, want)
	}
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			want := Palette[0]
			if x == y {
				want = Palette[x&0x0F]
			}
			if diff := deep.Equal(img.NRGBAAt(x, y), want); diff != nil {
				t.Fatalf("Bad pixel at %d,%d: %v", x, y, diff)
			}
		}
	}
}

func TestScale(t *testing.T) {
	r := memory.NewRAM(0x00)
	r.Write(FRAMEBUFFER, 0x01)
	r.Write(FRAMEBUFFER+Width*Height-1, 0x02)
	img := Render(r)
	if got := Scale(img, 1); got != img {
		t.Error("Scale by 1 didn't return the original image")
	}
	s := Scale(img, 4)
	writeImage(t, "scale", s)
	if got, want := s.Bounds(), image.Rect(0, 0, Width*4, Height*4); got != want {
		t.Fatalf("Bad bounds: got %v want %v", got, want)
	}
	tests := []struct {
		x, y int
		want int
	}{
		{0, 0, 1},
		{3, 3, 1},
		{4, 0, 0},
		{0, 4, 0},
		{Width*4 - 1, Height*4 - 1, 2},
		{Width*4 - 4, Height*4 - 4, 2},
		{Width*4 - 5, Height*4 - 1, 0},
	}
	for _, test := range tests {
		if diff := deep.Equal(s.NRGBAAt(test.x, test.y), Palette[test.want]); diff != nil {
			t.Errorf("Bad pixel at %d,%d: %v", test.x, test.y, diff)
		}
	}
}
