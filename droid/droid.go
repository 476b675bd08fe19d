// Package droid drives a repair droid through an unknown maze. The droid is
// controlled by an Intcode program that accepts movement commands as input
// and reports the outcome of each move as output.
package droid

import (
	"fmt"
	"image"

	"github.com/pkg/errors"

	"github.com/nf/intcode/intcode"
)

// Direction is a movement command, encoded as the program expects it.
type Direction int64

const (
	North Direction = 1
	South Direction = 2
	West  Direction = 3
	East  Direction = 4
)

// Directions lists every Direction in command order.
var Directions = [...]Direction{North, South, West, East}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case West:
		return "west"
	case East:
		return "east"
	}
	return fmt.Sprintf("Direction(%d)", int64(d))
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case West:
		return East
	case East:
		return West
	}
	return d
}

// Reply is the status code output after each move.
type Reply int64

const (
	HitWall     Reply = 0 // the droid did not move
	Moved       Reply = 1
	ReachedGoal Reply = 2 // the droid moved onto the goal
)

func (r Reply) String() string {
	switch r {
	case HitWall:
		return "wall"
	case Moved:
		return "moved"
	case ReachedGoal:
		return "goal"
	}
	return fmt.Sprintf("Reply(%d)", int64(r))
}

// Point is a location in the maze, relative to where the droid started.
// Y grows southwards.
type Point struct{ X, Y int }

// Move returns the point one step from p in direction d.
func (p Point) Move(d Direction) Point {
	switch d {
	case North:
		p.Y--
	case South:
		p.Y++
	case West:
		p.X--
	case East:
		p.X++
	}
	return p
}

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Tile is what is known about a Point.
type Tile byte

const (
	Unknown Tile = iota
	Wall
	Free
	Goal
	Start
)

// Passable reports whether the droid can stand on the tile.
func (t Tile) Passable() bool { return t == Free || t == Goal || t == Start }

// Area maps explored points to tiles. Points not in the map are Unknown.
type Area map[Point]Tile

// Bounds returns the smallest rectangle containing every explored point,
// with Max exclusive.
func (a Area) Bounds() image.Rectangle {
	var (
		r     image.Rectangle
		first = true
	)
	for p := range a {
		q := image.Rect(p.X, p.Y, p.X+1, p.Y+1)
		if first {
			r, first = q, false
		} else {
			r = r.Union(q)
		}
	}
	return r
}

// Find returns a point holding tile t.
func (a Area) Find(t Tile) (Point, bool) {
	for p, u := range a {
		if u == t {
			return p, true
		}
	}
	return Point{}, false
}

// Controller moves the droid.
type Controller interface {
	Move(Direction) (Reply, error)
}

// Remote is a Controller backed by an Intcode machine running the droid's
// control program.
type Remote struct {
	M *intcode.Machine
}

// ErrStopped is returned by Remote.Move when the control program has halted.
var ErrStopped = errors.New("control program halted")

// Move sends d to the control program and runs it until it asks for the
// next command.
func (r *Remote) Move(d Direction) (Reply, error) {
	if r.M.Status() == intcode.Halted {
		return 0, ErrStopped
	}
	n := r.M.NumOutputs()
	r.M.AppendInput(int64(d))
	if err := r.M.Run(); err != nil {
		return 0, errors.Wrapf(err, "moving %v", d)
	}
	if r.M.NumOutputs() == n {
		if r.M.Status() == intcode.Halted {
			return 0, ErrStopped
		}
		return 0, errors.Errorf("moving %v: no reply", d)
	}
	v, _ := r.M.LastOutput()
	switch reply := Reply(v); reply {
	case HitWall, Moved, ReachedGoal:
		return reply, nil
	default:
		return 0, errors.Errorf("moving %v: invalid reply %d", d, v)
	}
}
