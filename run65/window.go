package main

import (
	"fmt"
	"image"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"golang.org/x/image/draw"

	"github.com/jmchacon/65c02/display"
	"github.com/jmchacon/65c02/system"
)

// runWindowed runs s with an SDL window showing the framebuffer, redrawn
// once per frame and paced to 60Hz. Closing the window ends the run.
func runWindowed(s *system.System) error {
	var err error
	sdl.Main(func() {
		var window *sdl.Window
		var surface *sdl.Surface
		sdl.Do(func() {
			if err = sdl.Init(sdl.INIT_VIDEO); err != nil {
				err = fmt.Errorf("can't init SDL: %v", err)
				return
			}
			window, err = sdl.CreateWindow("run65", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, int32(display.Width**scale), int32(display.Height**scale), sdl.WINDOW_SHOWN)
			if err != nil {
				err = fmt.Errorf("can't create window: %v", err)
				return
			}
			surface, err = window.GetSurface()
			if err != nil {
				err = fmt.Errorf("can't get window surface: %v", err)
			}
		})
		if err != nil {
			return
		}
		defer sdl.Do(func() {
			window.Destroy()
			sdl.Quit()
		})

		next := time.Now()
		err = runLoop(s, func() bool {
			img := display.Scale(display.Render(s.RAM()), *scale)
			running := true
			sdl.Do(func() {
				draw.Draw(surface, surface.Bounds(), img, image.Point{}, draw.Src)
				window.UpdateSurface()
				for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
					if _, ok := ev.(*sdl.QuitEvent); ok {
						running = false
					}
				}
			})
			next = next.Add(time.Second / 60)
			time.Sleep(time.Until(next))
			return running
		})
	})
	return err
}
