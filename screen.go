package main

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/nf/intcode/droid"
)

// termView draws the maze in the terminal.
type termView struct {
	mapState
	scr tcell.Screen
}

func newTermView() (*termView, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	return &termView{scr: s}, nil
}

var tileStyles = map[droid.Tile]tcell.Style{
	droid.Unknown: tcell.StyleDefault.Foreground(tcell.ColorDarkGrey),
	droid.Wall:    tcell.StyleDefault.Foreground(tcell.ColorGrey),
	droid.Free:    tcell.StyleDefault,
	droid.Goal:    tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true),
	droid.Start:   tcell.StyleDefault.Foreground(tcell.ColorBlue),
}

func (v *termView) Run(done <-chan bool) error {
	var once sync.Once
	fini := func() { once.Do(v.scr.Fini) }
	defer fini()

	stop := make(chan bool)
	defer close(stop)
	go func() {
		t := time.NewTicker(time.Second / 30)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				v.scr.PostEvent(tcell.NewEventInterrupt(nil))
			case <-done:
				fini()
				return
			case <-stop:
				return
			}
		}
	}()

	gen := -1
	for {
		switch ev := v.scr.PollEvent().(type) {
		case nil:
			// screen finalized
			return nil
		case *tcell.EventResize:
			v.scr.Sync()
			gen = -1
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
				(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
				return errQuit
			}
		}
		gen = v.draw(gen)
	}
}

// draw redraws the screen if the maze changed since generation gen, and
// returns the generation drawn.
func (v *termView) draw(gen int) int {
	a, pos, moves, g := v.snapshot()
	if g == gen || a == nil {
		return gen
	}
	v.scr.Clear()
	status := fmt.Sprintf("moves: %d droid: %v   (q to quit)", moves, pos)
	for x, r := range status {
		v.scr.SetContent(x, 0, r, nil, tcell.StyleDefault.Reverse(true))
	}
	var (
		b   = a.Bounds()
		ln  = strings.Split(droid.Render(a, pos), "\n")
		sty = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	)
	for y, line := range ln {
		for x, r := range line {
			p := droid.Point{X: b.Min.X + x, Y: b.Min.Y + y}
			s, ok := tileStyles[a[p]]
			if p == pos {
				s, ok = sty, true
			}
			if !ok {
				s = tcell.StyleDefault
			}
			v.scr.SetContent(x, y+1, r, nil, s)
		}
	}
	v.scr.Show()
	return g
}
