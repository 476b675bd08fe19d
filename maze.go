package main

import (
	"fmt"
	"io"
	"log"
	"maps"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/nf/intcode/droid"
	"github.com/nf/intcode/intcode"
)

var errQuit = errors.New("quit")

// mapView displays the maze while it is explored.
type mapView interface {
	Update(e *droid.Explorer)
	// Run displays the maze until done is closed or the user quits,
	// in which case it returns errQuit.
	Run(done <-chan bool) error
}

// mapState holds the latest copy of the explored maze, for views that draw
// from a different goroutine than the explorer.
type mapState struct {
	mu    sync.Mutex
	area  droid.Area
	pos   droid.Point
	moves int
	gen   int
}

func (s *mapState) Update(e *droid.Explorer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.area = maps.Clone(e.Area)
	s.pos = e.Pos
	s.moves = e.Moves
	s.gen++
}

func (s *mapState) snapshot() (a droid.Area, pos droid.Point, moves, gen int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.area, s.pos, s.moves, s.gen
}

type droidConfig struct {
	strategy string // "random" or "full"
	seed     int64
	maxMoves int
	delay    time.Duration
	gui      bool
	term     bool
}

// interruptible is a Controller that fails once quit is closed.
type interruptible struct {
	c     droid.Controller
	quit  <-chan bool
	delay time.Duration
}

func (c interruptible) Move(d droid.Direction) (droid.Reply, error) {
	select {
	case <-c.quit:
		return 0, errQuit
	default:
	}
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	return c.c.Move(d)
}

// droidMode runs prog as a repair droid, explores its maze and writes the
// map and the path and fill statistics to w.
func droidMode(w io.Writer, prog []int64, cfg droidConfig, opts []intcode.Option) error {
	var view mapView
	switch {
	case cfg.gui:
		view = &window{}
	case cfg.term:
		v, err := newTermView()
		if err != nil {
			log.Printf("terminal: %v", err)
			break
		}
		view = v
	}

	var (
		e    = droid.NewExplorer(cfg.seed)
		quit = make(chan bool)
		done = make(chan bool)
		c    = interruptible{
			c:     &droid.Remote{M: intcode.NewMachine(prog, nil, opts...)},
			quit:  quit,
			delay: cfg.delay,
		}
		err error
	)
	e.MaxMoves = cfg.maxMoves
	if view != nil {
		e.OnMove = func(e *droid.Explorer, _ droid.Direction, _ droid.Reply) { view.Update(e) }
		view.Update(e)
	} else {
		e.Logf = log.Printf
	}
	go func() {
		defer close(done)
		err = explore(e, c, cfg.strategy)
	}()
	if view != nil {
		if verr := view.Run(done); verr != nil {
			close(quit)
			<-done
			if verr != errQuit {
				return verr
			}
		}
	}
	<-done
	if err != nil && err != errQuit {
		return err
	}
	return report(w, e)
}

func explore(e *droid.Explorer, c droid.Controller, strategy string) error {
	switch strategy {
	case "random":
		_, err := e.FindGoal(c)
		return err
	case "full":
		return e.Map(c)
	}
	return errors.Errorf("unknown exploration strategy %q", strategy)
}

func report(w io.Writer, e *droid.Explorer) error {
	fmt.Fprint(w, droid.Render(e.Area, e.Pos))
	fmt.Fprintf(w, "moves: %d\n", e.Moves)
	goal, ok := e.Area.Find(droid.Goal)
	if !ok {
		fmt.Fprintln(w, "goal: not found")
		return nil
	}
	fmt.Fprintf(w, "goal: %v\n", goal)
	if n, ok := droid.ShortestPath(e.Area, droid.Point{}, goal); ok {
		fmt.Fprintf(w, "shortest path: %d\n", n)
	}
	fmt.Fprintf(w, "fill time: %d\n", droid.FillTime(e.Area, goal))
	return nil
}
