package main

import (
	"image"
	"image/color"
	"log"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/nf/intcode/droid"
)

var (
	tileColors = map[droid.Tile]color.RGBA{
		droid.Unknown: {0x10, 0x10, 0x10, 0xff},
		droid.Wall:    {0x70, 0x70, 0x70, 0xff},
		droid.Free:    {0xe8, 0xe8, 0xe0, 0xff},
		droid.Goal:    {0x20, 0xc0, 0x40, 0xff},
		droid.Start:   {0x30, 0x60, 0xe0, 0xff},
	}
	droidColor = color.RGBA{0xe0, 0x20, 0x20, 0xff}
)

// mapImage draws the maze with one pixel per tile. The image origin is the
// top left corner of a.Bounds().
func mapImage(a droid.Area, pos droid.Point) *image.RGBA {
	b := a.Bounds()
	m := image.NewRGBA(image.Rect(0, 0, max(b.Dx(), 1), max(b.Dy(), 1)))
	xdraw.Draw(m, m.Bounds(), image.NewUniform(tileColors[droid.Unknown]), image.Point{}, xdraw.Src)
	for p, t := range a {
		m.SetRGBA(p.X-b.Min.X, p.Y-b.Min.Y, tileColors[t])
	}
	if _, ok := a[pos]; ok {
		m.SetRGBA(pos.X-b.Min.X, pos.Y-b.Min.Y, droidColor)
	}
	return m
}

// fitRect returns the largest rectangle centred in r whose size is an
// integer multiple of sz.
func fitRect(r image.Rectangle, sz image.Point) image.Rectangle {
	if sz.X <= 0 || sz.Y <= 0 {
		return image.Rectangle{}
	}
	k := max(min(r.Dx()/sz.X, r.Dy()/sz.Y), 1)
	s := sz.Mul(k)
	o := r.Min.Add(r.Size().Sub(s).Div(2))
	return image.Rectangle{Min: o, Max: o.Add(s)}
}

// window draws the maze in a desktop window.
type window struct {
	mapState
}

func (v *window) Run(done <-chan bool) (err error) {
	driver.Main(func(s screen.Screen) {
		w, werr := s.NewWindow(&screen.NewWindowOptions{
			Title:  "intcode droid",
			Width:  640,
			Height: 640,
		})
		if werr != nil {
			err = werr
			return
		}
		defer w.Release()

		type update struct{}
		type finished struct{}
		stop := make(chan bool)
		defer close(stop)
		go func() {
			t := time.NewTicker(time.Second / 30)
			defer t.Stop()
			for {
				select {
				case <-t.C:
					w.Send(update{})
				case <-done:
					w.Send(finished{})
					return
				case <-stop:
					return
				}
			}
		}()

		var (
			sz  size.Event
			buf screen.Buffer
			gen = -1
		)
		defer func() {
			if buf != nil {
				buf.Release()
			}
		}()
		for {
			switch e := w.NextEvent().(type) {
			case lifecycle.Event:
				if e.To == lifecycle.StageDead {
					err = errQuit
					return
				}
			case key.Event:
				if e.Direction == key.DirPress &&
					(e.Code == key.CodeEscape || e.Rune == 'q') {
					err = errQuit
					return
				}
			case size.Event:
				sz = e
				if sz.WidthPx+sz.HeightPx == 0 {
					err = errQuit
					return
				}
				gen = -1
			case paint.Event:
				gen = -1
			case update:
			case finished:
				return
			case error:
				log.Print(e)
			}

			a, pos, _, g := v.snapshot()
			if g == gen || a == nil || sz.WidthPx == 0 || sz.HeightPx == 0 {
				continue
			}
			gen = g
			if buf == nil || buf.Size() != sz.Size() {
				if buf != nil {
					buf.Release()
				}
				if buf, err = s.NewBuffer(sz.Size()); err != nil {
					return
				}
			}
			var (
				src = mapImage(a, pos)
				dst = buf.RGBA()
			)
			xdraw.Draw(dst, dst.Bounds(), image.Black, image.Point{}, xdraw.Src)
			xdraw.NearestNeighbor.Scale(dst, fitRect(dst.Bounds(), src.Bounds().Size()), src, src.Bounds(), xdraw.Src, nil)
			w.Upload(image.Point{}, buf, buf.Bounds())
			w.Publish()
		}
	})
	return err
}
